// Package morphology implements the Morphology Engine (C5): resolves
// tokens to nominative canonical form via diminutive dictionaries,
// gender-aware declension rules, and feminine-suffix preservation for
// surnames. Grounded on az-lang-nlp's morph.go rule/tag organization
// and the teacher's fuzzy-scoring helpers (address_matcher.go) for
// the diminutive near-miss fallback.
package morphology

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"

	"github.com/dariadocs/namescreen/internal/dictionaries"
	"github.com/dariadocs/namescreen/internal/flags"
	"github.com/dariadocs/namescreen/internal/nametrace"
)

// Engine holds the immutable dictionaries the morphology stage
// consults. Constructed once per process and shared across requests.
type Engine struct {
	dicts *dictionaries.Set
}

func New(dicts *dictionaries.Set) *Engine {
	return &Engine{dicts: dicts}
}

// NormalizeToken is C5's contract:
// normalize_token(token, role, language, flags) -> (canonical_form, trace).
func (e *Engine) NormalizeToken(tok nametrace.Token, language string, f flags.FeatureFlags) (string, nametrace.TokenTrace) {
	switch tok.Role {
	case nametrace.RoleInitial:
		return tok.Surface, nametrace.TokenTrace{Token: tok.Surface, Role: tok.Role, Rule: "morph.initial_preserved", Output: tok.Surface}

	case nametrace.RoleOrgLegalForm:
		upper := strings.ToUpper(tok.Surface)
		return upper, nametrace.TokenTrace{Token: tok.Surface, Role: tok.Role, Rule: "morph.org_legal_form_uppercased", Output: upper}

	case nametrace.RoleOrgName:
		return tok.Surface, nametrace.TokenTrace{Token: tok.Surface, Role: tok.Role, Rule: "morph.org_name_preserved", Output: tok.Surface}

	case nametrace.RoleStopword, nametrace.RoleNumeric, nametrace.RoleUnknown:
		return tok.Surface, nametrace.TokenTrace{Token: tok.Surface, Role: tok.Role, Rule: "morph.passthrough", Output: tok.Surface}

	case nametrace.RoleGiven:
		return e.normalizeGiven(tok, language, f)

	case nametrace.RoleSurname:
		return e.normalizeSurname(tok, language, f)

	case nametrace.RolePatronymic:
		return e.normalizeDeclension(tok, language, f)

	default:
		return tok.Surface, nametrace.TokenTrace{Token: tok.Surface, Role: tok.Role, Rule: "morph.passthrough", Output: tok.Surface}
	}
}

func (e *Engine) normalizeGiven(tok nametrace.Token, language string, f flags.FeatureFlags) (string, nametrace.TokenTrace) {
	surface := tok.Surface
	lower := strings.ToLower(surface)

	if language == "en" {
		if f.EnableEnNicknames {
			if canonical, ok := e.dicts.EnNicknames[lower]; ok {
				out := titleCase(canonical)
				return out, nametrace.TokenTrace{
					Token: surface, Role: tok.Role, Rule: "morph.diminutive_resolved",
					Output: out, MorphLang: "en",
					Value: map[string]interface{}{"action": "nickname_expansion", "before": lower, "after": canonical, "rule": "morph.diminutive_resolved"},
				}
			}
		}
		return surface, nametrace.TokenTrace{Token: surface, Role: tok.Role, Rule: "morph.passthrough", Output: surface}
	}

	if f.EnableEnhancedDiminutives {
		if canonical, hit, exact := e.lookupDiminutive(foldYo(lower), language, f); hit {
			out := titleCase(canonical)
			rule := "morph.diminutive_resolved"
			return out, nametrace.TokenTrace{
				Token: surface, Role: tok.Role, Rule: rule, Output: out, MorphLang: language,
				Fallback: !exact,
				Value: map[string]interface{}{"action": "diminutive_resolved", "before": lower, "after": canonical, "rule": rule},
			}
		}
	}

	return e.normalizeDeclension(tok, language, f)
}

// lookupDiminutive resolves a lowercased given-name surface to its
// canonical dictionary form. Tries an exact dictionary hit first;
// when use_diminutives_dictionary_only is false, falls back to a
// fuzzy nearest-neighbor match within the same dictionary.
// diminutives_allow_cross_lang controls whether the other language's
// dictionary is also consulted.
func (e *Engine) lookupDiminutive(lower, language string, f flags.FeatureFlags) (canonical string, hit bool, exact bool) {
	dicts := e.diminutiveDictsFor(language, f.DiminutivesAllowCrossLang)

	for _, d := range dicts {
		if c, ok := d[lower]; ok {
			return c, true, true
		}
	}

	if f.UseDiminutivesDictionaryOnly {
		return "", false, false
	}

	bestScore := 0.0
	bestCanonical := ""
	for _, d := range dicts {
		for key, c := range d {
			score := fuzzyScore(lower, key)
			if score > bestScore {
				bestScore = score
				bestCanonical = c
			}
		}
	}
	if bestScore >= 0.92 { // high bar: only near-identical spelling variants
		return bestCanonical, true, false
	}
	return "", false, false
}

// foldYo maps Cyrillic ё/Ё to е/Е for dictionary-key matching. The
// diminutive dictionaries are built with yo-folded keys only, so a
// surface that survived unicode normalization with ё intact (under
// yo=preserve) still needs folding at lookup time; the policy only
// governs what the *rendered* text looks like, resolved upstream in
// unicodesvc, not whether a dictionary hit is found.
func foldYo(s string) string {
	return strings.NewReplacer("ё", "е", "Ё", "Е").Replace(s)
}

func (e *Engine) diminutiveDictsFor(language string, crossLang bool) []map[string]string {
	var dicts []map[string]string
	switch language {
	case "ru":
		dicts = append(dicts, e.dicts.DiminutivesRu)
		if crossLang {
			dicts = append(dicts, e.dicts.DiminutivesUk)
		}
	case "uk":
		dicts = append(dicts, e.dicts.DiminutivesUk)
		if crossLang {
			dicts = append(dicts, e.dicts.DiminutivesRu)
		}
	default:
		dicts = append(dicts, e.dicts.DiminutivesRu, e.dicts.DiminutivesUk)
	}
	return dicts
}

// fuzzyScore combines Levenshtein and Jaro-Winkler into a single
// [0,1] similarity score, the same combined-metric idiom as the
// teacher's address_matcher.go sim() function.
func fuzzyScore(a, b string) float64 {
	dist := levenshtein.ComputeDistance(a, b)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1.0
	}
	levScore := 1.0 - float64(dist)/float64(maxLen)
	jw := smetrics.JaroWinkler(a, b, 0.7, 4)
	return (levScore + jw) / 2
}

func (e *Engine) normalizeSurname(tok nametrace.Token, language string, f flags.FeatureFlags) (string, nametrace.TokenTrace) {
	surface := tok.Surface
	lower := strings.ToLower(surface)

	if f.PreserveFeminineSurnames {
		if rule, ok := feminineSuffix(lower, language); ok {
			// The feminine suffix itself is already the nominative
			// feminine form; preservation means never swapping it for
			// the masculine equivalent, so the surface passes through.
			// Title-cased per hyphen segment, not as one flattened word,
			// so a compound surname like "Іванова-Петрова" keeps both
			// halves capitalized instead of losing the second to
			// titleCase's single-capital-letter rule.
			out := titleCaseHyphenated(lower)
			ruleName := "morph.preserve_feminine_suffix_" + language
			if rule.Language != language {
				ruleName = "morph.preserve_feminine_suffix_" + rule.Language
			}
			return out, nametrace.TokenTrace{
				Token: surface, Role: tok.Role, Rule: ruleName, Output: out, MorphLang: language,
				Notes: "feminine suffix preserved, not masculinized",
			}
		}
	}

	return e.normalizeDeclension(tok, language, f)
}

// oblique case endings stripped back to a nominative stem for common
// RU/UK productive paradigms. This is a simplified rule table (not a
// full morphological analyzer), matching the scope the spec asks for:
// "reduce oblique-case forms to nominative" via "a morphological
// analyzer that handles Cyrillic productive paradigms" — implemented
// here as an explicit suffix-rule table in the style of
// az-lang-nlp/morph.go rather than a statistical model.
type declensionRule struct {
	obliqueSuffix   string
	nominativeSuffix string
}

var ruDeclensionRules = []declensionRule{
	{"ову", "ов"}, {"ом", "а"}, {"е", "а"}, {"у", "а"}, {"ой", "ая"}, {"ый", "ый"},
}

var ukDeclensionRules = []declensionRule{
	{"ові", "о"}, {"ом", "о"}, {"у", "о"}, {"ою", "а"}, {"ій", "ій"},
}

func (e *Engine) normalizeDeclension(tok nametrace.Token, language string, f flags.FeatureFlags) (string, nametrace.TokenTrace) {
	surface := tok.Surface
	if !f.EnforceNominative || (language != "ru" && language != "uk") {
		return surface, nametrace.TokenTrace{Token: surface, Role: tok.Role, Rule: "morph.passthrough", Output: surface}
	}

	rules := ruDeclensionRules
	if language == "uk" {
		rules = ukDeclensionRules
	}

	lower := strings.ToLower(surface)
	for _, rule := range rules {
		if strings.HasSuffix(lower, rule.obliqueSuffix) && len([]rune(lower)) > len([]rune(rule.obliqueSuffix))+1 {
			stem := lower[:len(lower)-len(rule.obliqueSuffix)]
			candidate := titleCase(stem + rule.nominativeSuffix)
			if candidate != surface {
				return candidate, nametrace.TokenTrace{
					Token: surface, Role: tok.Role, Rule: "morph.nominative_reduction", Output: candidate,
					MorphLang: language, NormalForm: candidate,
				}
			}
		}
	}
	return surface, nametrace.TokenTrace{Token: surface, Role: tok.Role, Rule: "morph.passthrough", Output: surface}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	for i := 1; i < len(r); i++ {
		r[i] = unicode.ToLower(r[i])
	}
	return string(r)
}

// titleCaseHyphenated title-cases each hyphen-separated segment
// independently, mirroring the tokenizer's own
// preserve_hyphenated_case assembly rule so a compound surname like
// "іванова-петрова" renders as "Іванова-Петрова" rather than having
// titleCase's single-capital-letter rule flatten every segment after
// the first.
func titleCaseHyphenated(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		parts[i] = titleCase(p)
	}
	return strings.Join(parts, "-")
}
