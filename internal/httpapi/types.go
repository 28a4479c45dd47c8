// Package httpapi is the thin gin adapter (HTTP surface) over the
// Normalization Orchestrator, exposing the two routes spec §6 names,
// POST /normalize and POST /process, plus GET /health. Grounded on the teacher's
// address_controller.go thin-handler style (bind request, call the
// service, map the result to a response struct) but stripped of the
// batch-job/NDJSON-streaming surface that has no equivalent here.
package httpapi

import "github.com/dariadocs/namescreen/internal/nametrace"

// RequestOptions carries the options.flags per-request override map
// (spec §6: "options?: {flags?: {...}}").
type RequestOptions struct {
	Flags map[string]bool `json:"flags"`
}

// NormalizeRequest is the POST /normalize body.
type NormalizeRequest struct {
	Text               string          `json:"text" binding:"required"`
	Language           string          `json:"language"`
	RemoveStopWords    bool            `json:"remove_stop_words"`
	PreserveNames      bool            `json:"preserve_names"`
	ApplyLemmatization bool            `json:"apply_lemmatization"`
	Options            *RequestOptions `json:"options"`
}

// ProcessRequest is the POST /process body: everything /normalize
// accepts, plus the two enrichment switches. generate_variants and
// generate_embeddings are accepted but have no effect here — this
// adapter does not call the pattern generator (internal/patterngen),
// and embeddings have no implementation in this module, so the
// corresponding response sections are always omitted.
type ProcessRequest struct {
	NormalizeRequest
	GenerateVariants   bool `json:"generate_variants"`
	GenerateEmbeddings bool `json:"generate_embeddings"`
}

// NormalizeResponse is the POST /normalize response shape, field names
// matching spec §6 exactly (normalized_text, not normalized).
type NormalizeResponse struct {
	NormalizedText   string                 `json:"normalized_text"`
	Tokens           []string               `json:"tokens"`
	Trace            []nametrace.TokenTrace `json:"trace"`
	Language         string                 `json:"language"`
	Success          bool                   `json:"success"`
	Errors           []string               `json:"errors"`
	ProcessingTimeMs float64                `json:"processing_time"`
}

// ProcessResponse enriches NormalizeResponse with the optional
// signals/decision sections spec §6 describes as produced by
// out-of-scope collaborators; both are always nil here.
type ProcessResponse struct {
	NormalizeResponse
	Signals  interface{} `json:"signals,omitempty"`
	Decision interface{} `json:"decision,omitempty"`
}

func toResponse(res nametrace.NormalizationResult) NormalizeResponse {
	return NormalizeResponse{
		NormalizedText:   res.Normalized,
		Tokens:           res.Tokens,
		Trace:            res.Trace,
		Language:         res.Language,
		Success:          res.Success,
		Errors:           res.Errors,
		ProcessingTimeMs: res.ProcessingTimeMs,
	}
}

// flagOverrides folds the request's top-level convenience switches
// together with options.flags into a single override map, the
// convenience fields taking the names of the closest FeatureFlags
// field they stand in for (spec §6 request shape, semantics resolved
// against original_source/src/ai_service/main.py's RequestModel):
// remove_stop_words -> strict_stopwords, apply_lemmatization ->
// enforce_nominative, preserve_names -> preserve_feminine_surnames.
// options.flags is applied last so it always wins on conflict.
func flagOverrides(req NormalizeRequest) map[string]bool {
	overrides := make(map[string]bool)
	if req.RemoveStopWords {
		overrides["strict_stopwords"] = true
	}
	if req.ApplyLemmatization {
		overrides["enforce_nominative"] = true
	}
	if req.PreserveNames {
		overrides["preserve_feminine_surnames"] = true
	}
	if req.Options != nil {
		for k, v := range req.Options.Flags {
			overrides[k] = v
		}
	}
	return overrides
}
