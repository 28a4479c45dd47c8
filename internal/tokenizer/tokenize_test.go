package tokenizer

import (
	"testing"

	"github.com/dariadocs/namescreen/internal/nametrace"
)

// --- basic splitting ---

func TestTokenizeSplitsOnWhitespace(t *testing.T) {
	t.Parallel()
	out := Tokenize("Иван Петров", "ru", Flags{}, nil)
	if len(out.Tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(out.Tokens))
	}
}

func TestTokenizePreservesApostrophe(t *testing.T) {
	t.Parallel()
	out := Tokenize("O'Connor Smith", "en", Flags{}, nil)
	if out.Tokens[0].Surface != "O'Connor" {
		t.Errorf("expected O'Connor preserved, got %q", out.Tokens[0].Surface)
	}
}

func TestTokenizePreservesHyphen(t *testing.T) {
	t.Parallel()
	out := Tokenize("Jean-Baptiste Dupont", "en", Flags{}, nil)
	if out.Tokens[0].Surface != "Jean-Baptiste" {
		t.Errorf("expected Jean-Baptiste preserved, got %q", out.Tokens[0].Surface)
	}
}

// --- double-dot initial collapse ---

func TestCollapseDoubleDots(t *testing.T) {
	t.Parallel()
	out := Tokenize("Иванов И..", "ru", Flags{FixInitialsDoubleDot: true}, nil)
	last := out.Tokens[len(out.Tokens)-1]
	if last.Surface != "И." {
		t.Errorf("expected И., got %q", last.Surface)
	}
	foundTrace := false
	for _, tr := range out.Traces {
		if tr.Rule == "tokenizer.collapse_double_dots" {
			foundTrace = true
		}
	}
	if !foundTrace {
		t.Error("expected collapse_double_dots trace")
	}
}

func TestNoCollapseWhenFlagOff(t *testing.T) {
	t.Parallel()
	out := Tokenize("Иванов И..", "ru", Flags{FixInitialsDoubleDot: false}, nil)
	last := out.Tokens[len(out.Tokens)-1]
	if last.Surface != "И.." {
		t.Errorf("expected И.. unchanged, got %q", last.Surface)
	}
}

// --- hyphenated case preservation ---

func TestPreserveHyphenatedCase(t *testing.T) {
	t.Parallel()
	out := Tokenize("петрова-сидорова", "ru", Flags{PreserveHyphenatedCase: true}, nil)
	if out.Tokens[0].Surface != "Петрова-Сидорова" {
		t.Errorf("got %q want Петрова-Сидорова", out.Tokens[0].Surface)
	}
}

// --- initial recognition ---

func TestIsInitialRecognizesSingleLetterDot(t *testing.T) {
	t.Parallel()
	out := Tokenize("И. Петров", "ru", Flags{}, nil)
	if out.Tokens[0].Role != nametrace.RoleInitial {
		t.Errorf("expected initial role for И., got %q", out.Tokens[0].Role)
	}
}

// --- stopword filtering ---

func TestStrictStopwordsFiltersTokens(t *testing.T) {
	t.Parallel()
	stop := map[string]bool{"и": true}
	out := Tokenize("Иван и Петров", "ru", Flags{StrictStopwords: true}, stop)
	for _, tok := range out.Tokens {
		if tok.Surface == "и" {
			t.Error("stopword should have been filtered")
		}
	}
}

func TestNonStrictStopwordsMarkedNotFiltered(t *testing.T) {
	t.Parallel()
	stop := map[string]bool{"и": true}
	out := Tokenize("Иван и Петров", "ru", Flags{StrictStopwords: false}, stop)
	found := false
	for _, tok := range out.Tokens {
		if tok.Surface == "и" {
			found = true
		}
	}
	if !found {
		t.Error("stopword should remain in output when strict_stopwords is false")
	}
}
