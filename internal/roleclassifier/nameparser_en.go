package roleclassifier

import (
	"strings"

	"github.com/dariadocs/namescreen/internal/flags"
	"github.com/dariadocs/namescreen/internal/nametrace"
)

// titles and suffixes mirror the Western-name subset of
// dbryar-govhack2025's nameparser title/suffix dictionaries — this
// module only needs the English branch, not the full multi-culture
// parser.
var titles = map[string]bool{
	"dr.": true, "dr": true, "mr.": true, "mr": true, "mrs.": true, "mrs": true,
	"ms.": true, "ms": true, "prof.": true, "prof": true, "miss": true,
}

var suffixes = map[string]bool{
	"jr.": true, "jr": true, "sr.": true, "sr": true,
	"ii": true, "iii": true, "iv": true, "esq.": true, "esq": true,
}

// classifyEnglish assigns given/surname roles to English-language
// tokens, stripping titles and suffixes when filter_titles_suffixes is
// set (otherwise they are kept with role unknown), per spec §4.4's
// "enable_nameparser_en" delegation.
func classifyEnglish(tokens []nametrace.Token, f flags.FeatureFlags) ([]nametrace.Token, []nametrace.TokenTrace) {
	var traces []nametrace.TokenTrace
	var core []nametrace.Token

	for _, tok := range tokens {
		lower := strings.ToLower(tok.Surface)
		if titles[lower] {
			if f.FilterTitlesSuffixes {
				traces = append(traces, nametrace.TokenTrace{
					Token: tok.Surface, Rule: "roleclassifier.filter_title", Output: "",
				})
				continue
			}
			tok.Role = nametrace.RoleUnknown
			core = append(core, tok)
			continue
		}
		if suffixes[lower] {
			if f.FilterTitlesSuffixes {
				traces = append(traces, nametrace.TokenTrace{
					Token: tok.Surface, Rule: "roleclassifier.filter_suffix", Output: "",
				})
				continue
			}
			tok.Role = nametrace.RoleUnknown
			core = append(core, tok)
			continue
		}
		core = append(core, tok)
	}

	// Remaining core tokens: first is given, last is surname, any
	// middle tokens keep given-name role (a simplification of the
	// nameparser's fuller Western rule, matching what the spec
	// actually exercises: two- and three-word English names).
	for i := range core {
		if core[i].Role != "" {
			continue
		}
		switch {
		case len(core) == 1:
			core[i].Role = nametrace.RoleGiven
		case i == len(core)-1:
			core[i].Role = nametrace.RoleSurname
		default:
			core[i].Role = nametrace.RoleGiven
		}
	}

	return core, traces
}
