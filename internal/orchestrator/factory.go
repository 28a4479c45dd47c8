package orchestrator

import (
	"context"

	"github.com/dariadocs/namescreen/internal/dictionaries"
	"github.com/dariadocs/namescreen/internal/flags"
	"github.com/dariadocs/namescreen/internal/morphology"
	"github.com/dariadocs/namescreen/internal/nametrace"
	"github.com/dariadocs/namescreen/internal/unicodesvc"
)

// FactoryNormalizer is the full pipeline: homoglyph folding, yo-policy
// character mapping, and the complete morphology engine (diminutive
// dictionaries, feminine-surname preservation, nominative reduction).
// This is the default implementation (use_factory_normalizer=true).
type FactoryNormalizer struct{}

func (FactoryNormalizer) Run(ctx context.Context, req Request, eff flags.FeatureFlags, dicts *dictionaries.Set, morph *morphology.Engine) (nametrace.NormalizationResult, []nametrace.TokenTrace, error) {
	opts := unicodesvc.DefaultOptions()
	return runPipeline(ctx, req, eff, dicts, morph, opts, true)
}
