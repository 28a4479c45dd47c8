package orchestrator

import (
	"context"
	"strings"

	"github.com/dariadocs/namescreen/internal/dictionaries"
	"github.com/dariadocs/namescreen/internal/flags"
	"github.com/dariadocs/namescreen/internal/morphology"
	"github.com/dariadocs/namescreen/internal/nametrace"
	"github.com/dariadocs/namescreen/internal/unicodesvc"
)

// LegacyNormalizer is a deliberately simpler implementation: no
// homoglyph folding, no diminutive dictionary, no feminine-surname
// preservation — a direct casefold plus whitespace collapse per token.
// Selected when use_factory_normalizer=false, matching the distinction
// SPEC_FULL.md §2.3 draws between the two dispatch paths.
type LegacyNormalizer struct{}

func (LegacyNormalizer) Run(ctx context.Context, req Request, eff flags.FeatureFlags, dicts *dictionaries.Set, morph *morphology.Engine) (nametrace.NormalizationResult, []nametrace.TokenTrace, error) {
	opts := unicodesvc.Options{NormalizeHomoglyphs: false, Yo: unicodesvc.YoPreserve}
	return runPipeline(ctx, req, eff, dicts, morph, opts, false)
}

// legacyNormalizeToken is the legacy morphology stand-in: initials and
// organization legal forms are uppercased, every other token is
// titlecased; no dictionary lookups.
func legacyNormalizeToken(tok nametrace.Token) (string, nametrace.TokenTrace) {
	if tok.Role == nametrace.RoleInitial || tok.Role == nametrace.RoleOrgLegalForm {
		out := strings.ToUpper(tok.Surface)
		return out, nametrace.TokenTrace{Token: tok.Surface, Role: tok.Role, Rule: "legacy.passthrough_upper", Output: out}
	}
	out := legacyTitleCase(tok.Surface)
	return out, nametrace.TokenTrace{Token: tok.Surface, Role: tok.Role, Rule: "legacy.casefold", Output: out}
}

func legacyTitleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = toUpperRune(r[0])
	return string(r)
}

func toUpperRune(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 32
	}
	if r >= 'а' && r <= 'я' {
		return r - 32
	}
	if r == 'ё' {
		return 'Ё'
	}
	return r
}
