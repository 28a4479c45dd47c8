package patterngen

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/dariadocs/namescreen/internal/nametrace"
)

// ExportForAhoCorasick is C6's second contract:
// export_for_aho_corasick(patterns) -> {tier_0..tier_3: []string}.
// Every pattern and its variants are folded through FoldForAC so the
// resulting automaton operates in a single alphabet.
func ExportForAhoCorasick(patterns []nametrace.UnifiedPattern) map[string][]string {
	out := map[string][]string{
		"tier_0": {},
		"tier_1": {},
		"tier_2": {},
		"tier_3": {},
	}
	seen := map[string]map[string]struct{}{
		"tier_0": {}, "tier_1": {}, "tier_2": {}, "tier_3": {},
	}

	for _, p := range patterns {
		key := tierKey(p.RecallTier)
		candidates := append([]string{p.Pattern}, p.Variants...)
		for _, c := range candidates {
			folded := FoldForAC(c)
			if folded == "" {
				continue
			}
			if _, ok := seen[key][folded]; ok {
				continue
			}
			seen[key][folded] = struct{}{}
			out[key] = append(out[key], folded)
		}
	}
	return out
}

func tierKey(t nametrace.RecallTier) string {
	switch t {
	case nametrace.Tier0:
		return "tier_0"
	case nametrace.Tier1:
		return "tier_1"
	case nametrace.Tier2:
		return "tier_2"
	default:
		return "tier_3"
	}
}

// FoldForAC normalizes a pattern the way the automaton requires:
// casefold + NFKC + ASCII apostrophe/dash unification, then a forced
// Cyrillic->Latin transliteration so every pattern, regardless of
// source script, lands in one alphabet before insertion. Grounded on
// foden303-moderation's ahocorasick.go preprocessing pass.
func FoldForAC(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = norm.NFD.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, s)
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '‘', '’', 'ʼ', '`':
			return '\''
		case '–', '—':
			return '-'
		}
		return r
	}, s)
	s = strings.ToLower(s)
	s = TransliterateCyrToLatin(s)
	return s
}
