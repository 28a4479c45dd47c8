package morphology

import "strings"

// FeminineRule maps a feminine surname suffix to its masculine
// equivalent for a given language. Kept as an extensible table rather
// than hardcoded branching, per SPEC_FULL.md §9 open-question 1: the
// exact coverage of Ukrainian feminine-surname preservation beyond
// -ська/-цька is not enumerated in the source, so this is driven by a
// table an implementer can extend by appending rows.
type FeminineRule struct {
	Language         string
	FeminineSuffix   string
	MasculineSuffix  string
}

// feminineRules is the seed table: RU forms are included too since
// yo-policy and cross-lookup already blur the RU/UK boundary at the
// dictionary level (SPEC_FULL.md §9 item 2).
var feminineRules = []FeminineRule{
	{Language: "ru", FeminineSuffix: "ова", MasculineSuffix: "ов"},
	{Language: "ru", FeminineSuffix: "ева", MasculineSuffix: "ев"},
	{Language: "ru", FeminineSuffix: "ина", MasculineSuffix: "ин"},
	{Language: "ru", FeminineSuffix: "ская", MasculineSuffix: "ский"},
	{Language: "ru", FeminineSuffix: "цкая", MasculineSuffix: "цкий"},
	{Language: "uk", FeminineSuffix: "ська", MasculineSuffix: "ський"},
	{Language: "uk", FeminineSuffix: "цька", MasculineSuffix: "цький"},
}

// feminineSuffix returns the matching rule for surname under
// language, preferring a same-language match but falling back to any
// matching suffix (the tables overlap intentionally at the -ська/-ова
// boundary since real names cross RU/UK lexicon lines).
func feminineSuffix(surnameLower, language string) (FeminineRule, bool) {
	var fallback FeminineRule
	found := false
	for _, rule := range feminineRules {
		if !strings.HasSuffix(surnameLower, rule.FeminineSuffix) {
			continue
		}
		if rule.Language == language {
			return rule, true
		}
		if !found {
			fallback = rule
			found = true
		}
	}
	return fallback, found
}

// IsFeminineSurname reports whether surname carries a recognized
// feminine marker for language.
func IsFeminineSurname(surname, language string) bool {
	_, ok := feminineSuffix(strings.ToLower(surname), language)
	return ok
}

// SuffixPair is a masculine/feminine surname ending pair for the
// pattern generator's gender-swap variant (spec §4.6: "-ов <-> -ова,
// -ський <-> -ська, etc").
type SuffixPair struct {
	Masculine string
	Feminine  string
}

// GenderSwapSuffixes exposes the same suffix table feminine-surname
// preservation uses, as masculine/feminine pairs for a language, so C6
// never maintains a second copy of the suffix list.
func GenderSwapSuffixes(language string) []SuffixPair {
	var pairs []SuffixPair
	for _, r := range feminineRules {
		if r.Language != language {
			continue
		}
		pairs = append(pairs, SuffixPair{Masculine: r.MasculineSuffix, Feminine: r.FeminineSuffix})
	}
	return pairs
}
