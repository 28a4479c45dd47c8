package orchestrator

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dariadocs/namescreen/internal/cache"
	"github.com/dariadocs/namescreen/internal/dictionaries"
	"github.com/dariadocs/namescreen/internal/flags"
	"github.com/dariadocs/namescreen/internal/morphology"
	"github.com/dariadocs/namescreen/internal/nametrace"
)

func newTestCache(t *testing.T) (*cache.MemoryCache, error) {
	t.Helper()
	return cache.NewMemoryCache(64, time.Minute)
}

func newTestOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	dicts, err := dictionaries.Load()
	if err != nil {
		t.Fatalf("dictionaries.Load: %v", err)
	}
	fm := flags.NewManager(nil)
	morph := morphology.New(dicts)
	return New(fm, dicts, morph, nil, nil)
}

func hasRule(traces []nametrace.TokenTrace, rule string) bool {
	for _, tr := range traces {
		if tr.Rule == rule {
			return true
		}
	}
	return false
}

// --- literal end-to-end scenarios (spec §8) ---

func TestScenarioRussianDiminutive(t *testing.T) {
	t.Parallel()
	o := newTestOrchestrator(t)
	res := o.Process(context.Background(), Request{
		Text:             "Сашка Пушкин",
		LanguageOverride: "ru",
		FlagOverrides:    map[string]bool{"enable_enhanced_diminutives": true, "enforce_nominative": true},
	})
	if res.Normalized != "Александр Пушкин" {
		t.Fatalf("got %q", res.Normalized)
	}
	found := false
	for _, tr := range res.Trace {
		if tr.Rule == "morph.diminutive_resolved" {
			if v, ok := tr.Value["before"]; ok && v == "сашка" {
				if a, ok := tr.Value["after"]; ok && a == "александр" {
					found = true
				}
			}
		}
	}
	if !found {
		t.Error("expected morph.diminutive_resolved trace with before=сашка after=александр")
	}
}

func TestScenarioUkrainianDiminutive(t *testing.T) {
	t.Parallel()
	o := newTestOrchestrator(t)
	res := o.Process(context.Background(), Request{
		Text:             "Сашко Коваль",
		LanguageOverride: "uk",
		FlagOverrides:    map[string]bool{"enable_enhanced_diminutives": true, "enforce_nominative": true},
	})
	if res.Normalized != "Олександр Коваль" {
		t.Fatalf("got %q", res.Normalized)
	}
}

func TestScenarioDoubleDotInitials(t *testing.T) {
	t.Parallel()
	o := newTestOrchestrator(t)
	res := o.Process(context.Background(), Request{
		Text:             "Иванов И.И.",
		LanguageOverride: "ru",
		FlagOverrides:    map[string]bool{"fix_initials_double_dot": true},
	})
	if res.Normalized != "Иванов И. И." {
		t.Fatalf("got %q", res.Normalized)
	}
	if !hasRule(res.Trace, "tokenizer.collapse_double_dots") {
		t.Error("expected collapse_double_dots trace")
	}
}

func TestScenarioHyphenatedFeminineSurname(t *testing.T) {
	t.Parallel()
	o := newTestOrchestrator(t)
	res := o.Process(context.Background(), Request{
		Text:             "петрова-сидорова",
		LanguageOverride: "ru",
		FlagOverrides:    map[string]bool{"preserve_hyphenated_case": true, "preserve_feminine_surnames": true},
	})
	if res.Normalized != "Петрова-Сидорова" {
		t.Fatalf("got %q", res.Normalized)
	}
}

func TestScenarioEnglishTitleAndNickname(t *testing.T) {
	t.Parallel()
	o := newTestOrchestrator(t)
	res := o.Process(context.Background(), Request{
		Text:             "Dr. Bill Gates",
		LanguageOverride: "en",
		FlagOverrides:    map[string]bool{"enable_nameparser_en": true, "enable_en_nicknames": true, "filter_titles_suffixes": true},
	})
	if res.Normalized != "William Gates" {
		t.Fatalf("got %q", res.Normalized)
	}
	if strings.Contains(res.Normalized, "Dr") {
		t.Error("expected title Dr. absent from output")
	}
}

func TestScenarioHomoglyphFold(t *testing.T) {
	t.Parallel()
	o := newTestOrchestrator(t)
	res := o.Process(context.Background(), Request{
		Text:             "Pаvlov", // Latin P, Cyrillic а, Latin vlov
		LanguageOverride: "en",
	})
	if res.Normalized != "Pavlov" {
		t.Fatalf("got %q", res.Normalized)
	}
	found := false
	for _, tr := range res.Trace {
		if tr.Rule == "unicode.homoglyph_fold" {
			if n, ok := tr.Value["replacements"]; ok && n == 1 {
				found = true
			}
		}
	}
	if !found {
		t.Error("expected unicode.homoglyph_fold trace with one replacement")
	}
}

// --- boundary cases ---

func TestEmptyInputSucceedsWithEmptyResult(t *testing.T) {
	t.Parallel()
	o := newTestOrchestrator(t)
	res := o.Process(context.Background(), Request{Text: "", LanguageOverride: "en"})
	if !res.Success {
		t.Fatalf("expected empty input to succeed, got errors=%v", res.Errors)
	}
	if res.Normalized != "" || len(res.Tokens) != 0 {
		t.Errorf("expected empty normalized/tokens, got %q %v", res.Normalized, res.Tokens)
	}
}

func TestPureDigitsYieldsUnknownLowConfidence(t *testing.T) {
	t.Parallel()
	o := newTestOrchestrator(t)
	res := o.Process(context.Background(), Request{Text: "12345 !!!"})
	if res.Language != "unknown" {
		t.Errorf("expected unknown language, got %q", res.Language)
	}
	if res.Confidence > 0.3 {
		t.Errorf("expected confidence <= 0.3, got %f", res.Confidence)
	}
}

// --- testable properties (spec §8) ---

func TestNormalizedEqualsJoinedTokens(t *testing.T) {
	t.Parallel()
	o := newTestOrchestrator(t)
	res := o.Process(context.Background(), Request{Text: "Иван Петров", LanguageOverride: "ru"})
	if res.Normalized != strings.Join(res.Tokens, " ") {
		t.Errorf("normalized %q != joined tokens %q", res.Normalized, strings.Join(res.Tokens, " "))
	}
}

func TestConfidenceWithinBounds(t *testing.T) {
	t.Parallel()
	o := newTestOrchestrator(t)
	res := o.Process(context.Background(), Request{Text: "Иван Петров"})
	if res.Confidence < 0 || res.Confidence > 1 {
		t.Errorf("confidence out of bounds: %f", res.Confidence)
	}
}

func TestDeterministicForIdenticalInput(t *testing.T) {
	t.Parallel()
	o := newTestOrchestrator(t)
	req := Request{Text: "Иванова Мария", LanguageOverride: "ru", RequestID: "req-1"}
	a := o.Process(context.Background(), req)
	b := o.Process(context.Background(), req)
	if a.Normalized != b.Normalized || a.Language != b.Language {
		t.Error("expected identical output for identical input and flags")
	}
}

func TestApostropheVariantsEquivalent(t *testing.T) {
	t.Parallel()
	o := newTestOrchestrator(t)
	a := o.Process(context.Background(), Request{Text: "O'Connor Smith", LanguageOverride: "en"})
	b := o.Process(context.Background(), Request{Text: "O’Connor Smith", LanguageOverride: "en"})
	if a.Normalized != b.Normalized {
		t.Errorf("expected apostrophe variants to normalize equally, got %q vs %q", a.Normalized, b.Normalized)
	}
}

func TestIdempotentOnAlreadyNormalizedInput(t *testing.T) {
	t.Parallel()
	o := newTestOrchestrator(t)
	first := o.Process(context.Background(), Request{Text: "Иван Петров", LanguageOverride: "ru"})
	second := o.Process(context.Background(), Request{Text: first.Normalized, LanguageOverride: "ru"})
	if first.Normalized != second.Normalized {
		t.Errorf("expected idempotence, got %q then %q", first.Normalized, second.Normalized)
	}
}

// --- deadline handling ---

func TestDeadlineExceededReturnsTimeoutFailure(t *testing.T) {
	t.Parallel()
	o := newTestOrchestrator(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)
	res := o.Process(ctx, Request{Text: "Иван Петров", LanguageOverride: "ru"})
	if res.Success {
		t.Error("expected failure on exceeded deadline")
	}
	if len(res.Errors) == 0 {
		t.Error("expected an error message describing the timeout")
	}
}

// --- cache wiring ---

func TestCacheHitReturnsSameNormalizedResult(t *testing.T) {
	t.Parallel()
	dicts, err := dictionaries.Load()
	if err != nil {
		t.Fatalf("dictionaries.Load: %v", err)
	}
	fm := flags.NewManager(nil)
	morph := morphology.New(dicts)
	c, err := newTestCache(t)
	if err != nil {
		t.Fatalf("newTestCache: %v", err)
	}
	o := New(fm, dicts, morph, c, nil)

	req := Request{Text: "Иванова Мария", LanguageOverride: "ru", RequestID: "req-cache"}
	first := o.Process(context.Background(), req)
	second := o.Process(context.Background(), req)
	if first.Normalized != second.Normalized {
		t.Errorf("expected cached result to match, got %q vs %q", first.Normalized, second.Normalized)
	}
}
