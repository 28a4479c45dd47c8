// Package language implements the Language Detector (C2):
// config-driven script-ratio analysis classifying input as ru, uk,
// en, mixed, or unknown. Grounded directly on az-lang-nlp's
// single-pass character-classification detector, remapped from
// az/ru/en/tr to ru/uk/en.
package language

import (
	"strings"
	"unicode"
)

// Config holds the tunable thresholds for detection.
type Config struct {
	MinAlphabeticChars   int
	MaxNonAlphabeticRatio float64
	ScriptThreshold      float64 // minimum ratio for a script to be "present"
	MixedGap             float64 // |cyr_ratio - lat_ratio| below this -> mixed
	PreferUkBonus        float64
	PreferRuBonus        float64
	AcronymPenalty       float64
}

// DefaultConfig mirrors the thresholds implied by spec §4.2.
func DefaultConfig() Config {
	return Config{
		MinAlphabeticChars:    3,
		MaxNonAlphabeticRatio: 0.70,
		ScriptThreshold:       0.15,
		MixedGap:              0.10,
		PreferUkBonus:         0.02,
		PreferRuBonus:         0.02,
		AcronymPenalty:        0.4,
	}
}

// Result is the output of Detect.
type Result struct {
	Language        string
	Confidence      float64
	CyrillicChars   int
	LatinChars      int
	Digits          int
	Punctuation     int
	UkSpecificChars int
	RuSpecificChars int
	UppercaseCount  int
	CyrRatio        float64
	LatRatio        float64
	IsLikelyAcronym bool
	Reason          string
}

func (r Result) Details() map[string]interface{} {
	return map[string]interface{}{
		"cyrillic_chars":     r.CyrillicChars,
		"latin_chars":        r.LatinChars,
		"digits":             r.Digits,
		"punctuation":        r.Punctuation,
		"uk_specific_chars":  r.UkSpecificChars,
		"ru_specific_chars":  r.RuSpecificChars,
		"uppercase_count":    r.UppercaseCount,
		"cyr_ratio":          r.CyrRatio,
		"lat_ratio":          r.LatRatio,
		"is_likely_acronym":  r.IsLikelyAcronym,
		"reason":             r.Reason,
	}
}

var ukSpecific = map[rune]bool{'і': true, 'ї': true, 'є': true, 'ґ': true, 'І': true, 'Ї': true, 'Є': true, 'Ґ': true}
var ruSpecific = map[rune]bool{'ё': true, 'ъ': true, 'ы': true, 'э': true, 'Ё': true, 'Ъ': true, 'Ы': true, 'Э': true}

// ukFunctionWords / ruFunctionWords are used to break cyr/cyr ties
// when neither uk- nor ru-specific letters are present.
var ukFunctionWords = map[string]bool{"і": true, "та": true, "це": true, "який": true, "яка": true, "не": true, "з": true, "у": true}
var ruFunctionWords = map[string]bool{"и": true, "это": true, "который": true, "которая": true, "не": true, "с": true, "в": true}

var ukSurnameSuffixes = []string{"енко", "чук", "ський", "цький"}

// Detect classifies text per spec §4.2's algorithm.
func Detect(text string, cfg Config) Result {
	if text == "" {
		return Result{Language: "unknown", Confidence: 0, Reason: "empty_input"}
	}

	var cyr, lat, digits, punct, ukSpec, ruSpec, upper, total int
	for _, r := range text {
		total++
		switch {
		case r >= 0x0400 && r <= 0x04FF:
			cyr++
			if ukSpecific[r] {
				ukSpec++
			}
			if ruSpecific[r] {
				ruSpec++
			}
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			lat++
		case unicode.IsDigit(r):
			digits++
		case unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r):
			punct++
		}
		if unicode.IsUpper(r) {
			upper++
		}
	}

	alphabetic := cyr + lat
	if alphabetic < cfg.MinAlphabeticChars {
		return Result{Language: "unknown", Confidence: 0.3 * float64(alphabetic) / float64(cfg.MinAlphabeticChars), Reason: "too_few_alphabetic_chars",
			CyrillicChars: cyr, LatinChars: lat, Digits: digits, Punctuation: punct}
	}

	nonAlphaRatio := float64(total-alphabetic) / float64(total)
	if nonAlphaRatio > cfg.MaxNonAlphabeticRatio {
		return Result{Language: "unknown", Confidence: 0.2, Reason: "excessive_non_alphabetic_chars",
			CyrillicChars: cyr, LatinChars: lat, Digits: digits, Punctuation: punct}
	}

	cyrRatio := float64(cyr) / float64(alphabetic)
	latRatio := float64(lat) / float64(alphabetic)

	res := Result{
		CyrillicChars: cyr, LatinChars: lat, Digits: digits, Punctuation: punct,
		UkSpecificChars: ukSpec, RuSpecificChars: ruSpec, UppercaseCount: upper,
		CyrRatio: cyrRatio, LatRatio: latRatio,
	}

	switch {
	case cyrRatio < cfg.ScriptThreshold && latRatio < cfg.ScriptThreshold:
		res.Language = "unknown"
		res.Confidence = 0.2
		res.Reason = "no_dominant_script"
	case cyrRatio >= cfg.ScriptThreshold && latRatio >= cfg.ScriptThreshold && absFloat(cyrRatio-latRatio) < cfg.MixedGap:
		res.Language = "mixed"
		res.Confidence = 0.5
		res.Reason = "mixed_script"
	case cyrRatio > latRatio:
		res.Language, res.Reason = classifyCyrillic(text, ukSpec, ruSpec)
		res.Confidence = 0.75
		if res.Language == "uk" {
			res.Confidence += cfg.PreferUkBonus * minInt(ukSpec, 5)
		} else {
			res.Confidence += cfg.PreferRuBonus * minInt(ruSpec, 5)
		}
	default:
		res.Language = "en"
		res.Confidence = 0.75
		res.Reason = "latin_dominant"
	}

	if isLikelyAcronym(text, upper, alphabetic) {
		res.IsLikelyAcronym = true
		res.Confidence -= cfg.AcronymPenalty
	}

	if res.Confidence < 0 {
		res.Confidence = 0
	}
	if res.Confidence > 1 {
		res.Confidence = 1
	}
	return res
}

func classifyCyrillic(text string, ukSpec, ruSpec int) (string, string) {
	if ukSpec > ruSpec {
		return "uk", "uk_specific_letters"
	}
	if ruSpec > ukSpec {
		return "ru", "ru_specific_letters"
	}
	// Tie on specific letters: fall back to function-word / surname
	// suffix pattern matching.
	lower := strings.ToLower(text)
	ukHits, ruHits := 0, 0
	for _, w := range strings.Fields(lower) {
		if ukFunctionWords[w] {
			ukHits++
		}
		if ruFunctionWords[w] {
			ruHits++
		}
	}
	for _, suf := range ukSurnameSuffixes {
		if strings.HasSuffix(lower, suf) {
			ukHits++
		}
	}
	if ukHits > ruHits {
		return "uk", "pattern_matcher"
	}
	// Tie (including 0-0) defaults to ru.
	return "ru", "pattern_matcher_tie_default"
}

func isLikelyAcronym(text string, upper, alphabetic int) bool {
	if alphabetic == 0 {
		return false
	}
	// All-uppercase, short: likely an acronym rather than a detected
	// language signal.
	return upper == alphabetic && alphabetic <= 6
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func minInt(a, b int) float64 {
	if a < b {
		return float64(a)
	}
	return float64(b)
}
