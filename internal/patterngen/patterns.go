// Package patterngen implements the Pattern Generator (C6): expands
// watchlist name seeds into tiered, variant-rich screening patterns
// and exports them in the flat per-tier string format the
// Aho-Corasick automaton indexes. Grounded on the teacher's
// pattern_extractor.go (typed, tiered extraction) and
// foden303-moderation's ahocorasick.go for the export shape and the
// forced single-alphabet fold.
package patterngen

import (
	"sort"
	"strings"

	"github.com/dariadocs/namescreen/internal/dictionaries"
	"github.com/dariadocs/namescreen/internal/nametrace"
)

// Options tunes generation: whether to run each variant generator and
// the per-seed output cap.
type Options struct {
	EnableTransliteration bool
	EnableDiminutives     bool
	EnableGenderSwap      bool
	MaxPerSeed            int
}

func DefaultOptions() Options {
	return Options{
		EnableTransliteration: true,
		EnableDiminutives:     true,
		EnableGenderSwap:      true,
		MaxPerSeed:            maxVariantsPerSeed,
	}
}

// Generate is C6's contract: generate(name_variants, language, options)
// -> []UnifiedPattern. text is the raw seed document (used for Tier 0
// exact-document regex scanning); seeds are the parsed person/org name
// variants to expand into Tier 1-3 patterns.
func Generate(text string, seeds []NameSeed, dicts *dictionaries.Set, opts Options) []nametrace.UnifiedPattern {
	var patterns []nametrace.UnifiedPattern

	for _, hit := range Tier0Matches(text) {
		patterns = append(patterns, nametrace.UnifiedPattern{
			Pattern:       hit.pattern,
			PatternType:   hit.kind,
			RecallTier:    nametrace.Tier0,
			PrecisionHint: 0.99,
			Variants:      []string{hit.pattern},
			Confidence:    0.99,
		})
	}

	for _, seed := range seeds {
		patterns = append(patterns, generateForSeed(seed, dicts, opts)...)
	}

	return dedupSortCap(dropStopwordPatterns(patterns, dicts), opts.MaxPerSeed*len(seeds)+len(patterns))
}

// dropStopwordPatterns removes single-word patterns that are
// themselves a known stopword in any of the three dictionaries (a
// stray "та"/"и"/"the" token should never become a standalone
// screening pattern).
func dropStopwordPatterns(patterns []nametrace.UnifiedPattern, dicts *dictionaries.Set) []nametrace.UnifiedPattern {
	if dicts == nil {
		return patterns
	}
	var out []nametrace.UnifiedPattern
	for _, p := range patterns {
		words := strings.Fields(p.Pattern)
		if len(words) == 1 {
			lower := strings.ToLower(words[0])
			if dicts.StopwordsRu[lower] || dicts.StopwordsUk[lower] || dicts.StopwordsEn[lower] {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

func generateForSeed(seed NameSeed, dicts *dictionaries.Set, opts Options) []nametrace.UnifiedPattern {
	full := strings.TrimSpace(strings.Join(nonEmpty(seed.Given, seed.Middle, seed.Surname), " "))
	if full == "" {
		return nil
	}

	var variants []string
	variants = append(variants, full)
	variants = append(variants, initialsPermutations(seed)...)
	variants = append(variants, spacingVariants(full)...)
	if seed.Surname != "" {
		variants = append(variants, hyphenationVariants(seed.Surname)...)
	}
	if opts.EnableTransliteration {
		variants = append(variants, transliterationVariants(full)...)
	}
	if opts.EnableDiminutives && seed.Given != "" {
		for _, dv := range diminutiveVariants(seed.Given, seed.Language, dicts) {
			variants = append(variants, strings.TrimSpace(strings.Join(nonEmpty(dv, seed.Middle, seed.Surname), " ")))
		}
	}
	if opts.EnableGenderSwap && seed.Surname != "" {
		for _, gv := range genderSwapVariants(seed.Surname, seed.Language) {
			variants = append(variants, strings.TrimSpace(strings.Join(nonEmpty(seed.Given, seed.Middle, gv), " ")))
		}
	}

	variants = dedupStrings(variants)
	limit := opts.MaxPerSeed
	if limit <= 0 {
		limit = maxVariantsPerSeed
	}
	if len(variants) > limit {
		variants = variants[:limit]
	}

	var out []nametrace.UnifiedPattern
	for _, v := range variants {
		tier, precision := classifyTier(v, seed)
		out = append(out, nametrace.UnifiedPattern{
			Pattern:       v,
			PatternType:   patternType(seed),
			RecallTier:    tier,
			PrecisionHint: precision,
			Variants:      []string{v},
			Language:      seed.Language,
			Confidence:    precision,
		})
	}
	return out
}

func patternType(seed NameSeed) string {
	if seed.Given != "" && seed.Surname != "" {
		return "person_full_name"
	}
	if seed.Surname != "" {
		return "person_surname"
	}
	return "person_given_name"
}

// classifyTier assigns a pattern to one of the four recall tiers per
// spec §4.6: full names with 2+ words and strong signal are Tier 1;
// single words or initial triples are Tier 2; everything else
// (all-caps runs, loose abbreviations) falls to Tier 3.
func classifyTier(pattern string, seed NameSeed) (nametrace.RecallTier, float64) {
	words := strings.Fields(pattern)
	switch {
	case len(words) >= 2 && seed.Given != "" && seed.Surname != "":
		return nametrace.Tier1, 0.8
	case len(words) == 1 && seed.Surname != "":
		return nametrace.Tier2, 0.45
	case isAllInitials(words):
		return nametrace.Tier2, 0.5
	default:
		return nametrace.Tier3, 0.25
	}
}

func isAllInitials(words []string) bool {
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		w = strings.TrimSuffix(w, ".")
		if len([]rune(w)) != 1 {
			return false
		}
	}
	return true
}

func nonEmpty(parts ...string) []string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// dedupSortCap deduplicates patterns case-insensitively, sorts by
// (recall_tier, -len(pattern)) per spec §4.6, and caps the total
// output. Stopword-only patterns are removed earlier, by
// dropStopwordPatterns.
func dedupSortCap(patterns []nametrace.UnifiedPattern, maxTotal int) []nametrace.UnifiedPattern {
	seen := make(map[string]struct{}, len(patterns))
	var out []nametrace.UnifiedPattern
	for _, p := range patterns {
		key := strings.ToLower(p.Pattern)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RecallTier != out[j].RecallTier {
			return out[i].RecallTier < out[j].RecallTier
		}
		return len(out[i].Pattern) > len(out[j].Pattern)
	})

	if maxTotal > 0 && len(out) > maxTotal {
		out = out[:maxTotal]
	}
	return out
}
