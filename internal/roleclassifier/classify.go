// Package roleclassifier implements the Role Classifier (C4): assigns
// each token a role (given, surname, patronymic, initial, org, stopword,
// unknown). Grounded on the teacher's typed-enum style in
// address_matcher.go and, for English names, dbryar-govhack2025's
// nameparser.go title/suffix handling.
package roleclassifier

import (
	"strings"
	"unicode"

	"github.com/dariadocs/namescreen/internal/flags"
	"github.com/dariadocs/namescreen/internal/nametrace"
)

var legalForms = map[string]bool{
	"ооо": true, "тов": true, "зао": true, "оао": true, "пао": true,
	"llc": true, "inc": true, "ltd": true, "corp": true, "gmbh": true, "co": true,
}

var ruPatronymicSuffixes = []string{"ович", "евич", "овна", "евна"}
var ukPatronymicSuffixes = []string{"ович", "івна", "ївна"}

// Classify assigns a role to each token in place and returns the
// (possibly re-ordered, for English nameparser output) token slice
// plus any traces produced.
func Classify(tokens []nametrace.Token, language string, f flags.FeatureFlags) ([]nametrace.Token, []nametrace.TokenTrace) {
	var traces []nametrace.TokenTrace

	if language == "en" && f.EnableNameparserEn {
		return classifyEnglish(tokens, f)
	}

	out := make([]nametrace.Token, len(tokens))
	copy(out, tokens)

	for i := range out {
		if out[i].Role == nametrace.RoleInitial || out[i].Role == nametrace.RoleStopword {
			continue // already assigned by the tokenizer
		}
		lower := strings.ToLower(out[i].Surface)

		if legalForms[lower] {
			out[i].Role = nametrace.RoleOrgLegalForm
			if i+1 < len(out) {
				out[i+1].Role = nametrace.RoleOrgName
			}
			continue
		}
		if out[i].Role == nametrace.RoleOrgName {
			continue
		}
		if allDigits(out[i].Surface) {
			out[i].Role = nametrace.RoleNumeric
			continue
		}
		if language == "ru" && hasSuffix(lower, ruPatronymicSuffixes) {
			out[i].Role = nametrace.RolePatronymic
			continue
		}
		if language == "uk" && hasSuffix(lower, ukPatronymicSuffixes) {
			out[i].Role = nametrace.RolePatronymic
			continue
		}

		// Position-aware heuristic: a token immediately followed or
		// preceded by an initial is very likely a surname; otherwise
		// the first unclassified token in a run is treated as given
		// name, subsequent ones as surname.
		if adjacentToInitial(out, i) {
			out[i].Role = nametrace.RoleSurname
			continue
		}
		if isFirstUnclassifiedInRun(out, i) {
			out[i].Role = nametrace.RoleGiven
		} else {
			out[i].Role = nametrace.RoleSurname
		}
	}

	return out, traces
}

func adjacentToInitial(tokens []nametrace.Token, i int) bool {
	if i > 0 && tokens[i-1].Role == nametrace.RoleInitial {
		return true
	}
	if i+1 < len(tokens) && tokens[i+1].Role == nametrace.RoleInitial {
		return true
	}
	return false
}

func isFirstUnclassifiedInRun(tokens []nametrace.Token, i int) bool {
	if i == 0 {
		return true
	}
	prev := tokens[i-1].Role
	return prev == nametrace.RoleStopword || prev == "" || prev == nametrace.RoleOrgName
}

func hasSuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
