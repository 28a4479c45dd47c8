package patterngen

import "regexp"

// Tier 0 exact-document regexes: passport numbers, tax IDs, EDRPOU,
// IBAN. These are precision >= 0.99 hits, independent of language.
var (
	reRuPassport = regexp.MustCompile(`\b\d{4}\s?\d{6}\b`)
	reTaxID      = regexp.MustCompile(`\b\d{10}\b|\b\d{12}\b`)
	reEDRPOU     = regexp.MustCompile(`\b\d{8}\b`)
	reIBAN       = regexp.MustCompile(`\b[A-Z]{2}\d{2}[A-Z0-9]{10,30}\b`)
)

// Tier0Matches scans text for exact-document hits and returns them as
// tier0Hit records tagged with the matched document kind; Generate
// turns them into Tier 0 UnifiedPatterns.
func Tier0Matches(text string) []tier0Hit {
	var hits []tier0Hit
	for _, m := range reIBAN.FindAllString(text, -1) {
		hits = append(hits, tier0Hit{pattern: m, kind: "iban"})
	}
	for _, m := range reRuPassport.FindAllString(text, -1) {
		hits = append(hits, tier0Hit{pattern: m, kind: "passport"})
	}
	for _, m := range reTaxID.FindAllString(text, -1) {
		hits = append(hits, tier0Hit{pattern: m, kind: "tax_id"})
	}
	for _, m := range reEDRPOU.FindAllString(text, -1) {
		hits = append(hits, tier0Hit{pattern: m, kind: "edrpou"})
	}
	return hits
}

type tier0Hit struct {
	pattern string
	kind    string
}
