package patterngen

import (
	"strings"

	"github.com/dariadocs/namescreen/internal/dictionaries"
	"github.com/dariadocs/namescreen/internal/morphology"
)

// NameSeed is a single watchlist entry to expand into screening
// patterns: a full name split into given/middle/surname parts plus its
// detected language.
type NameSeed struct {
	Given    string
	Middle   string
	Surname  string
	Language string
}

const maxVariantsPerGenerator = 20
const maxVariantsPerSeed = 200

// initialOf returns the capitalized first-letter initial with a
// trailing dot, or "" if name is empty.
func initialOf(name string) string {
	r := []rune(name)
	if len(r) == 0 {
		return ""
	}
	return strings.ToUpper(string(r[0])) + "."
}

// initialsPermutations produces the structured Last/First/Middle
// initial forms from spec §4.6: First Last -> First L., F. Last,
// F. M. Last, Last F.M., joined/spaced initials, comma form.
func initialsPermutations(s NameSeed) []string {
	var out []string
	gi := initialOf(s.Given)
	mi := initialOf(s.Middle)

	if s.Given != "" && s.Surname != "" {
		si := initialOf(s.Surname)
		out = append(out, s.Given+" "+si)
	}
	if gi != "" && s.Surname != "" {
		out = append(out, gi+" "+s.Surname)
		if mi != "" {
			out = append(out, gi+" "+mi+" "+s.Surname)
			out = append(out, s.Surname+" "+gi+mi)
			out = append(out, s.Surname+" "+gi+" "+mi)
		} else {
			out = append(out, s.Surname+" "+gi)
		}
	}
	if s.Given != "" && s.Surname != "" {
		if s.Middle != "" {
			out = append(out, s.Surname+", "+s.Given+" "+s.Middle)
		} else {
			out = append(out, s.Surname+", "+s.Given)
		}
	}
	return dedupStrings(out)
}

// spacingVariants normalizes whitespace and, for short names (<= 2
// words), also produces a concatenated no-space form.
func spacingVariants(full string) []string {
	collapsed := strings.Join(strings.Fields(full), " ")
	out := []string{collapsed}
	words := strings.Fields(collapsed)
	if len(words) <= 2 {
		out = append(out, strings.Join(words, ""))
	}
	return dedupStrings(out)
}

// hyphenationVariants produces with-hyphen, with-space, and
// concatenated forms of a compound surname (e.g. "Петров-Водкин").
func hyphenationVariants(surname string) []string {
	if !strings.Contains(surname, "-") {
		return nil
	}
	parts := strings.Split(surname, "-")
	return dedupStrings([]string{
		strings.Join(parts, "-"),
		strings.Join(parts, " "),
		strings.Join(parts, ""),
	})
}

// transliterationVariants produces Cyrillic<->Latin forms of full,
// preserving case, using the standard table.
func transliterationVariants(full string) []string {
	var out []string
	if hasCyrillic(full) {
		out = append(out, TransliterateCyrToLatin(full))
	}
	if hasLatin(full) {
		out = append(out, TransliterateLatinToCyr(full))
	}
	return dedupStrings(out)
}

func hasCyrillic(s string) bool {
	for _, r := range s {
		if (r >= 'а' && r <= 'я') || (r >= 'А' && r <= 'Я') || r == 'ё' || r == 'Ё' {
			return true
		}
	}
	return false
}

func hasLatin(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

// diminutiveVariants expands a given name into its known diminutives
// (and vice versa, if given is itself a diminutive) using the same
// dictionaries the morphology engine consults.
func diminutiveVariants(given, language string, dicts *dictionaries.Set) []string {
	lower := strings.ToLower(given)
	var out []string

	dict := dicts.DiminutivesRu
	if language == "uk" {
		dict = dicts.DiminutivesUk
	}

	if canonical, ok := dict[lower]; ok {
		out = append(out, titleCaseWord(canonical))
		for k, v := range dict {
			if strings.EqualFold(v, canonical) && !strings.EqualFold(k, lower) {
				out = append(out, titleCaseWord(k))
			}
		}
	} else {
		for k, v := range dict {
			if strings.EqualFold(v, lower) {
				out = append(out, titleCaseWord(k))
			}
		}
	}
	if len(out) > maxVariantsPerGenerator {
		out = out[:maxVariantsPerGenerator]
	}
	return dedupStrings(out)
}

// genderSwapVariants applies the surname-ending gender swap table
// (-ов <-> -ова, -ський <-> -ська, etc) using the morphology package's
// feminine-rule table as the single source of truth for the suffix
// pairs.
func genderSwapVariants(surname, language string) []string {
	lower := strings.ToLower(surname)
	var out []string
	for _, pair := range morphology.GenderSwapSuffixes(language) {
		if strings.HasSuffix(lower, pair.Feminine) {
			stem := lower[:len(lower)-len(pair.Feminine)]
			out = append(out, titleCaseWord(stem+pair.Masculine))
		}
		if strings.HasSuffix(lower, pair.Masculine) {
			stem := lower[:len(lower)-len(pair.Masculine)]
			out = append(out, titleCaseWord(stem+pair.Feminine))
		}
	}
	return dedupStrings(out)
}

func titleCaseWord(s string) string {
	r := []rune(strings.ToLower(s))
	if len(r) == 0 {
		return s
	}
	r[0] = toUpperASCII(r[0])
	if r[0] >= 'а' && r[0] <= 'я' {
		r[0] = r[0] - 32
	}
	return string(r)
}

func dedupStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
