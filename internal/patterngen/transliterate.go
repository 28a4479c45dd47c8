package patterngen

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// unidecode.Unidecode is used as the catch-all ASCII-fold for runes
// the explicit Cyrillic table below doesn't cover (e.g. Latin
// diacritics picked up by mixed-script seeds), the same role it plays
// in the teacher's unaccent() helper.

// cyrToLatinMultigraphs and cyrToLatinSingle are the standard
// transliteration table from spec §4.6; the multigraph entries are tried
// first,
// longest-match-first so multigraphs (zh, kh, sh, shch, yu, ya) are
// never split across a shorter single-letter match.
var cyrToLatinMultigraphs = []struct{ cyr, lat string }{
	{"щ", "shch"}, {"ё", "yo"}, {"ю", "yu"}, {"я", "ya"},
	{"ж", "zh"}, {"х", "kh"}, {"ш", "sh"}, {"ч", "ch"}, {"ц", "ts"},
	{"і", "i"}, {"ї", "i"}, {"є", "e"}, {"ґ", "g"},
}

var cyrToLatinSingle = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e",
	'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'ъ': "", 'ы': "y", 'ь': "", 'э': "e",
}

var latinToCyrMultigraphs = []struct{ lat, cyr string }{
	{"shch", "щ"}, {"yo", "ё"}, {"yu", "ю"}, {"ya", "я"},
	{"zh", "ж"}, {"kh", "х"}, {"sh", "ш"}, {"ch", "ч"}, {"ts", "ц"},
}

var latinToCyrSingle = map[rune]rune{
	'a': 'а', 'b': 'б', 'v': 'в', 'g': 'г', 'd': 'д', 'e': 'е',
	'z': 'з', 'i': 'и', 'y': 'й', 'k': 'к', 'l': 'л', 'm': 'м',
	'n': 'н', 'o': 'о', 'p': 'п', 'r': 'р', 's': 'с', 't': 'т',
	'u': 'у', 'f': 'ф',
}

// TransliterateCyrToLatin converts Cyrillic text to Latin using the
// standard table, preserving case and longest-match-first ordering
// for multigraphs.
func TransliterateCyrToLatin(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		lower := toLowerRune(runes[i])
		matched := false
		for _, mg := range cyrToLatinMultigraphs {
			mgRunes := []rune(mg.cyr)
			if matchesAt(runes, i, mgRunes) {
				out := mg.lat
				if isUpperRune(runes[i]) {
					out = capitalize(out)
				}
				b.WriteString(out)
				i += len(mgRunes) - 1
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		if lat, ok := cyrToLatinSingle[lower]; ok {
			if isUpperRune(runes[i]) {
				lat = capitalize(lat)
			}
			b.WriteString(lat)
			continue
		}
		if runes[i] > 127 {
			b.WriteString(unidecode.Unidecode(string(runes[i])))
			continue
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}

// TransliterateLatinToCyr converts Latin text back to Cyrillic, for
// round-trip variant generation.
func TransliterateLatinToCyr(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		lower := toLowerRune(runes[i])
		matched := false
		for _, mg := range latinToCyrMultigraphs {
			mgRunes := []rune(mg.lat)
			if matchesAtFold(runes, i, mgRunes) {
				out := mg.cyr
				if isUpperRune(runes[i]) {
					r := []rune(out)
					r[0] = unicodeToUpper(r[0])
					out = string(r)
				}
				b.WriteString(out)
				i += len(mgRunes) - 1
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		if cyr, ok := latinToCyrSingle[lower]; ok {
			if isUpperRune(runes[i]) {
				b.WriteRune(unicodeToUpper(cyr))
			} else {
				b.WriteRune(cyr)
			}
			continue
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}

func matchesAt(runes []rune, i int, target []rune) bool {
	if i+len(target) > len(runes) {
		return false
	}
	for j, r := range target {
		if toLowerRune(runes[i+j]) != r {
			return false
		}
	}
	return true
}

func matchesAtFold(runes []rune, i int, target []rune) bool {
	return matchesAt(runes, i, target)
}

func toLowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + 32
	}
	if r >= 'А' && r <= 'Я' {
		return r + 32
	}
	if r == 'Ё' {
		return 'ё'
	}
	return r
}

func isUpperRune(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'А' && r <= 'Я') || r == 'Ё'
}

func unicodeToUpper(r rune) rune {
	if r >= 'а' && r <= 'я' {
		return r - 32
	}
	if r == 'ё' {
		return 'Ё'
	}
	return r
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = toUpperASCII(r[0])
	return string(r)
}

func toUpperASCII(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 32
	}
	return r
}
