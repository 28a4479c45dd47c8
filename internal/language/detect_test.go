package language

import "testing"

// --- basic classification ---

func TestDetectRussian(t *testing.T) {
	t.Parallel()
	res := Detect("Пушкин Александр Сергеевич", DefaultConfig())
	if res.Language != "ru" {
		t.Errorf("got %q want ru", res.Language)
	}
}

func TestDetectUkrainianBySpecificLetters(t *testing.T) {
	t.Parallel()
	res := Detect("Їжакевич Ґалина Коваль", DefaultConfig())
	if res.Language != "uk" {
		t.Errorf("got %q want uk", res.Language)
	}
}

func TestDetectUkrainianBySurnameSuffix(t *testing.T) {
	t.Parallel()
	res := Detect("Шевченко Петренко Кравчук", DefaultConfig())
	if res.Language != "uk" {
		t.Errorf("got %q want uk (suffix pattern match)", res.Language)
	}
}

func TestDetectEnglish(t *testing.T) {
	t.Parallel()
	res := Detect("William Shakespeare", DefaultConfig())
	if res.Language != "en" {
		t.Errorf("got %q want en", res.Language)
	}
}

func TestDetectMixedScript(t *testing.T) {
	t.Parallel()
	res := Detect("Ivanov Иванов test тест", DefaultConfig())
	if res.Language != "mixed" {
		t.Errorf("got %q want mixed", res.Language)
	}
}

// --- edge cases ---

func TestDetectEmptyInput(t *testing.T) {
	t.Parallel()
	res := Detect("", DefaultConfig())
	if res.Language != "unknown" || res.Confidence != 0 {
		t.Errorf("expected unknown/0 confidence for empty input, got %+v", res)
	}
}

func TestDetectTooFewAlphabeticChars(t *testing.T) {
	t.Parallel()
	res := Detect("12", DefaultConfig())
	if res.Language != "unknown" || res.Confidence > 0.3 {
		t.Errorf("expected unknown with confidence <= 0.3, got %+v", res)
	}
}

func TestDetectExcessiveNonAlphabetic(t *testing.T) {
	t.Parallel()
	res := Detect("!!!1234!!!1234abc", DefaultConfig())
	if res.Language != "unknown" || res.Confidence > 0.2 {
		t.Errorf("expected unknown with confidence <= 0.2, got %+v", res)
	}
}

func TestDetectAcronymPenalty(t *testing.T) {
	t.Parallel()
	res := Detect("ABC", DefaultConfig())
	if !res.IsLikelyAcronym {
		t.Error("expected short all-caps input flagged as likely acronym")
	}
}

// --- confidence bounds ---

func TestDetectConfidenceAlwaysInBounds(t *testing.T) {
	t.Parallel()
	inputs := []string{"Иван", "John", "123", "", "АБВ", "mixed Иван text", "Ковальчук"}
	for _, in := range inputs {
		res := Detect(in, DefaultConfig())
		if res.Confidence < 0 || res.Confidence > 1 {
			t.Errorf("confidence out of bounds for %q: %f", in, res.Confidence)
		}
	}
}
