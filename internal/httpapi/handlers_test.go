package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dariadocs/namescreen/internal/dictionaries"
	"github.com/dariadocs/namescreen/internal/flags"
	"github.com/dariadocs/namescreen/internal/morphology"
	"github.com/dariadocs/namescreen/internal/orchestrator"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	dicts, err := dictionaries.Load()
	if err != nil {
		t.Fatalf("dictionaries.Load: %v", err)
	}
	fm := flags.NewManager(nil)
	morph := morphology.New(dicts)
	orch := orchestrator.New(fm, dicts, morph, nil, nil)
	return NewRouter(orch, nil)
}

func doPost(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestNormalizeEndpointReturnsNormalizedText(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	rec := doPost(t, router, "/normalize", NormalizeRequest{Text: "Иван Петров", Language: "ru"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp NormalizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.NormalizedText == "" || !resp.Success {
		t.Errorf("unexpected response: %+v", resp)
	}
	foundFlagsTrace := false
	for _, tr := range resp.Trace {
		if tr.Type == "flags" && tr.Scope == "request" {
			foundFlagsTrace = true
		}
	}
	if !foundFlagsTrace {
		t.Error("expected exactly one type=flags,scope=request trace entry")
	}
}

func TestNormalizeEndpointRejectsMissingText(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	rec := doPost(t, router, "/normalize", map[string]string{"language": "ru"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing text, got %d", rec.Code)
	}
}

func TestNormalizeEndpointAppliesOptionsFlags(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	rec := doPost(t, router, "/normalize", NormalizeRequest{
		Text:     "Иванов И.И.",
		Language: "ru",
		Options:  &RequestOptions{Flags: map[string]bool{"fix_initials_double_dot": true}},
	})

	var resp NormalizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.NormalizedText != "Иванов И. И." {
		t.Errorf("got %q", resp.NormalizedText)
	}
}

func TestProcessEndpointReturnsEnrichedShape(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	rec := doPost(t, router, "/process", ProcessRequest{
		NormalizeRequest:  NormalizeRequest{Text: "Dr. Bill Gates", Language: "en"},
		GenerateVariants:  true,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp ProcessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.NormalizedText == "" {
		t.Error("expected non-empty normalized_text")
	}
	if resp.Signals != nil || resp.Decision != nil {
		t.Error("expected signals/decision to remain nil (out-of-scope collaborators)")
	}
}

func TestNormalizeEndpointEmptyTextReturns400(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	rec := doPost(t, router, "/normalize", NormalizeRequest{Text: "   ", Language: "ru"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for whitespace-only text, got %d: %s", rec.Code, rec.Body.String())
	}
}
