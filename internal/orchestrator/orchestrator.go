// Package orchestrator implements the Normalization Orchestrator (C7):
// the sequential pipeline wiring Unicode -> Language -> Tokenize ->
// Classify -> Morphology into one request, cache-backed, deadline
// aware, and dispatching between a legacy and a factory implementation
// per the effective feature flags. Grounded on the teacher's main.go
// service-construction wiring and original_source's
// orchestrator_factory.py legacy/factory dispatch idea, re-expressed
// here as a Go interface pair rather than a Python factory function.
package orchestrator

import (
	"context"
	"strings"
	"time"

	"github.com/dariadocs/namescreen/internal/cache"
	"github.com/dariadocs/namescreen/internal/dictionaries"
	"github.com/dariadocs/namescreen/internal/flags"
	"github.com/dariadocs/namescreen/internal/language"
	"github.com/dariadocs/namescreen/internal/morphology"
	"github.com/dariadocs/namescreen/internal/nameerrors"
	"github.com/dariadocs/namescreen/internal/nametrace"
	"github.com/dariadocs/namescreen/internal/roleclassifier"
	"github.com/dariadocs/namescreen/internal/tokenizer"
	"github.com/dariadocs/namescreen/internal/unicodesvc"

	"go.uber.org/zap"
)

// maxInputLength bounds request text per spec §4.7 step 1.
const maxInputLength = 10000

// Request is C7's input contract: process(text, flags_overrides).
type Request struct {
	Text              string
	LanguageOverride  string
	RequestID         string
	HighPerformance   bool
	FlagOverrides     map[string]bool
}

// Orchestrator wires every stage together and dispatches legacy vs
// factory per request.
type Orchestrator struct {
	flagsManager *flags.Manager
	dicts        *dictionaries.Set
	morph        *morphology.Engine
	cache        cache.Cache
	logger       *zap.Logger

	legacy  PipelineImpl
	factory PipelineImpl
}

// PipelineImpl is the interface both the legacy and factory
// normalizers satisfy, letting the orchestrator dispatch without
// knowing which concrete implementation it holds.
type PipelineImpl interface {
	Run(ctx context.Context, req Request, eff flags.FeatureFlags, dicts *dictionaries.Set, morph *morphology.Engine) (nametrace.NormalizationResult, []nametrace.TokenTrace, error)
}

// New constructs an Orchestrator. cacheImpl may be nil to disable
// memoization entirely.
func New(fm *flags.Manager, dicts *dictionaries.Set, morph *morphology.Engine, cacheImpl cache.Cache, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		flagsManager: fm,
		dicts:        dicts,
		morph:        morph,
		cache:        cacheImpl,
		logger:       logger,
		legacy:       LegacyNormalizer{},
		factory:      FactoryNormalizer{},
	}
}

// Process is C7's contract: process(text, flags_overrides) ->
// NormalizationResult.
func (o *Orchestrator) Process(ctx context.Context, req Request) (result nametrace.NormalizationResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result = failureResult(req.Text, nameerrors.New(nameerrors.InternalFailure, "unexpected failure in normalization pipeline"), start)
		}
	}()

	eff := o.flagsManager.Effective(req.FlagOverrides)

	// Step 1: validate/sanitize. Empty or whitespace-only input is a
	// valid boundary case, not an error (spec §8: "Empty string ->
	// result with success=true, normalized="", tokens=[]"), so it is
	// short-circuited before the invalid-input rejection below, which
	// exists for oversize input instead (control characters are
	// stripped, not rejected).
	if isBlank(req.Text) {
		return emptyResult(req.Text, start)
	}

	text, verr := sanitizeInput(req.Text)
	if verr != nil {
		return failureResult(req.Text, verr, start)
	}
	req.Text = text

	flagsTrace := nametrace.TokenTrace{
		Type:  "flags",
		Scope: "request",
		Rule:  "flags.effective",
		Value: boolMapToValue(eff.ToMap()),
	}

	// Step 2: cache lookup.
	var cacheKey string
	if o.cache != nil {
		cacheKey = cache.Fingerprint(req.Text, req.LanguageOverride, eff)
		if cached, hit, err := o.cache.Get(ctx, cacheKey); err == nil && hit {
			result := *cached
			result.ProcessingTimeMs = elapsedMs(start)
			return result
		}
	}

	if err := ctx.Err(); err != nil {
		return failureResult(req.Text, nameerrors.New(nameerrors.Timeout, "deadline exceeded before processing"), start)
	}

	useFactory := eff.ShouldUseFactory(req.LanguageOverride, req.RequestID, req.HighPerformance)
	impl := o.legacy
	if useFactory {
		impl = o.factory
	}

	result, traces, err := impl.Run(ctx, req, eff, o.dicts, o.morph)
	if err != nil {
		return failureResult(req.Text, err, start)
	}

	if eff.EnableDualProcessing {
		other := o.factory
		if useFactory {
			other = o.legacy
		}
		altResult, _, altErr := other.Run(ctx, req, eff, o.dicts, o.morph)
		if altErr == nil && altResult.Normalized != result.Normalized && o.logger != nil {
			factoryOut, legacyOut := result.Normalized, altResult.Normalized
			if !useFactory {
				factoryOut, legacyOut = altResult.Normalized, result.Normalized
			}
			o.logger.Warn("dual-processing discrepancy",
				zap.String("factory", factoryOut),
				zap.String("legacy", legacyOut))
		}
	}

	result.Trace = append(result.Trace, traces...)
	result.Trace = append(result.Trace, flagsTrace)
	result.ProcessingTimeMs = elapsedMs(start)
	result.Success = len(result.Errors) == 0

	if o.cache != nil {
		_ = o.cache.Set(ctx, cacheKey, &result)
	}

	return result
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

// isBlank reports whether text has no content once control characters
// are stripped and leading/trailing whitespace is trimmed — the same
// cleanup sanitizeInput performs, checked early so an empty result can
// be returned before the oversize rejection path.
func isBlank(text string) bool {
	var b strings.Builder
	for _, r := range text {
		if r == '\n' || r == '\t' || !isControl(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String()) == ""
}

// emptyResult is the successful, empty-input boundary result spec §8
// requires: no normalization work was done, but the request itself is
// not an error.
func emptyResult(text string, start time.Time) nametrace.NormalizationResult {
	return nametrace.NormalizationResult{
		Normalized:       "",
		Tokens:           nil,
		Success:          true,
		OriginalLength:   len([]rune(text)),
		ProcessingTimeMs: elapsedMs(start),
	}
}

func sanitizeInput(text string) (string, *nameerrors.Error) {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' || !isControl(r) {
			b.WriteRune(r)
		}
	}
	cleaned := strings.TrimSpace(b.String())

	if cleaned == "" {
		return "", nameerrors.New(nameerrors.InvalidInput, "input text is empty")
	}
	if len([]rune(cleaned)) > maxInputLength {
		return "", nameerrors.New(nameerrors.InvalidInput, "input text exceeds maximum length")
	}
	return cleaned, nil
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}

func failureResult(text string, err error, start time.Time) nametrace.NormalizationResult {
	return nametrace.NormalizationResult{
		Normalized:       text,
		Errors:           []string{err.Error()},
		Success:          false,
		OriginalLength:   len([]rune(text)),
		ProcessingTimeMs: elapsedMs(start),
	}
}

func boolMapToValue(m map[string]bool) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// runPipeline is the shared sequential C1->C5 pass both
// implementations call, differing only in which unicode/morphology
// options they pass in (spec §2.3: legacy is a direct casefold with no
// diminutive/feminine resolution, factory is the full pipeline).
func runPipeline(
	ctx context.Context,
	req Request,
	eff flags.FeatureFlags,
	dicts *dictionaries.Set,
	morph *morphology.Engine,
	unicodeOpts unicodesvc.Options,
	useMorphology bool,
) (nametrace.NormalizationResult, []nametrace.TokenTrace, error) {
	var traces []nametrace.TokenTrace

	if err := checkDeadline(ctx); err != nil {
		return nametrace.NormalizationResult{}, nil, err
	}

	// C1: Unicode.
	uniRes := unicodesvc.Normalize(req.Text, unicodeOpts)
	traces = append(traces, nametrace.TokenTrace{
		Rule: "unicode.normalize", Output: uniRes.Normalized,
		Value: map[string]interface{}{"changes_count": uniRes.ChangesCount, "idempotent": uniRes.Idempotent},
	})
	if uniRes.CharReplacements > 0 {
		traces = append(traces, nametrace.TokenTrace{
			Rule: "unicode.homoglyph_fold", Output: uniRes.Normalized,
			Value: map[string]interface{}{"replacements": uniRes.CharReplacements},
		})
	}

	if err := checkDeadline(ctx); err != nil {
		return nametrace.NormalizationResult{}, nil, err
	}

	// C2: Language detection, unless the request supplies an override,
	// or unless step 5's ASCII fastpath applies: pure-ASCII input with
	// no Cyrillic-script markers is assumed English and skips the
	// detector call entirely rather than running it only to discard
	// the result.
	lang := req.LanguageOverride
	var langConfidence float64 = 1.0
	asciiFastpath := eff.EnableAsciiFastpath && lang == "" && isPureASCII(uniRes.Normalized) && hasASCIILetter(uniRes.Normalized)

	switch {
	case lang != "":
		// override supplied, nothing to detect
	case asciiFastpath:
		lang = "en"
		traces = append(traces, nametrace.TokenTrace{Rule: "language.ascii_fastpath", Output: lang})
	default:
		langResult := language.Detect(uniRes.Normalized, language.DefaultConfig())
		lang = langResult.Language
		langConfidence = langResult.Confidence
		traces = append(traces, nametrace.TokenTrace{
			Rule: "language.detect", Output: lang,
			Value: langResult.Details(),
		})
	}

	if err := checkDeadline(ctx); err != nil {
		return nametrace.NormalizationResult{}, nil, err
	}

	// C3: Tokenize.
	stopwords := dicts.StopwordsFor(lang)
	tokOut := tokenizer.Tokenize(uniRes.Normalized, lang, tokenizer.FromFeatureFlags(eff), stopwords)
	traces = append(traces, tokOut.Traces...)

	if err := checkDeadline(ctx); err != nil {
		return nametrace.NormalizationResult{}, nil, err
	}

	// C4: Classify roles.
	classified, classifyTraces := roleclassifier.Classify(tokOut.Tokens, lang, eff)
	traces = append(traces, classifyTraces...)

	if err := checkDeadline(ctx); err != nil {
		return nametrace.NormalizationResult{}, nil, err
	}

	// C5: Morphology per token.
	outputTokens := make([]string, 0, len(classified))
	for _, tok := range classified {
		if tok.Role == nametrace.RoleStopword && eff.StrictStopwords {
			continue
		}
		var surface string
		var tt nametrace.TokenTrace
		if useMorphology {
			surface, tt = morph.NormalizeToken(tok, lang, eff)
		} else {
			surface, tt = legacyNormalizeToken(tok)
		}
		traces = append(traces, tt)
		outputTokens = append(outputTokens, surface)
	}

	normalized := strings.Join(outputTokens, " ")

	result := nametrace.NormalizationResult{
		Normalized:       normalized,
		Tokens:           outputTokens,
		Language:         lang,
		Confidence:       langConfidence,
		OriginalLength:   len([]rune(req.Text)),
		NormalizedLength: len([]rune(normalized)),
		TokenCount:       len(outputTokens),
	}

	return result, traces, nil
}

func checkDeadline(ctx context.Context) *nameerrors.Error {
	select {
	case <-ctx.Done():
		return nameerrors.New(nameerrors.Timeout, "deadline exceeded mid-pipeline")
	default:
		return nil
	}
}

func isPureASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return false
		}
	}
	return true
}

// hasASCIILetter guards the ASCII fastpath against digit/symbol-only
// input, which must still fall through to the language detector so it
// can be classified "unknown" per spec §8 rather than forced to "en".
func hasASCIILetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
