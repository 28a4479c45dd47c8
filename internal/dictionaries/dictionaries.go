// Package dictionaries holds the long-lived immutable lexical tables
// the morphology engine and tokenizer consult: diminutive maps,
// English nickname maps, and per-language stopword sets. Loaded
// exactly once per process via go:embed, the same convention the
// teacher used for its rules YAML in internal/normalizer/rules_embed.go.
package dictionaries

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/diminutives_ru.json
var diminutivesRuJSON []byte

//go:embed data/diminutives_uk.json
var diminutivesUkJSON []byte

//go:embed data/en_nicknames.json
var enNicknamesJSON []byte

//go:embed data/stopwords_ru.json
var stopwordsRuJSON []byte

//go:embed data/stopwords_uk.json
var stopwordsUkJSON []byte

//go:embed data/stopwords_en.json
var stopwordsEnJSON []byte

// Set is the full collection of immutable dictionaries loaded at
// process start. All maps use lowercase keys (diminutive/nickname ->
// canonical form), per spec §6.
type Set struct {
	DiminutivesRu map[string]string
	DiminutivesUk map[string]string
	EnNicknames   map[string]string

	StopwordsRu map[string]bool
	StopwordsUk map[string]bool
	StopwordsEn map[string]bool
}

// Load parses the embedded JSON dictionaries exactly once. Callers
// should call this a single time at orchestrator construction and
// share the resulting Set across all requests — it is never mutated
// afterward.
func Load() (*Set, error) {
	s := &Set{}

	if err := json.Unmarshal(diminutivesRuJSON, &s.DiminutivesRu); err != nil {
		return nil, fmt.Errorf("loading diminutives_ru.json: %w", err)
	}
	if err := json.Unmarshal(diminutivesUkJSON, &s.DiminutivesUk); err != nil {
		return nil, fmt.Errorf("loading diminutives_uk.json: %w", err)
	}
	if err := json.Unmarshal(enNicknamesJSON, &s.EnNicknames); err != nil {
		return nil, fmt.Errorf("loading en_nicknames.json: %w", err)
	}

	var ruList, ukList, enList []string
	if err := json.Unmarshal(stopwordsRuJSON, &ruList); err != nil {
		return nil, fmt.Errorf("loading stopwords_ru.json: %w", err)
	}
	if err := json.Unmarshal(stopwordsUkJSON, &ukList); err != nil {
		return nil, fmt.Errorf("loading stopwords_uk.json: %w", err)
	}
	if err := json.Unmarshal(stopwordsEnJSON, &enList); err != nil {
		return nil, fmt.Errorf("loading stopwords_en.json: %w", err)
	}

	s.StopwordsRu = toSet(ruList)
	s.StopwordsUk = toSet(ukList)
	s.StopwordsEn = toSet(enList)

	return s, nil
}

func toSet(list []string) map[string]bool {
	m := make(map[string]bool, len(list))
	for _, w := range list {
		m[w] = true
	}
	return m
}

// StopwordsFor returns the stopword set for a detected language code,
// defaulting to an empty set for unrecognized/mixed/unknown languages.
func (s *Set) StopwordsFor(language string) map[string]bool {
	switch language {
	case "ru":
		return s.StopwordsRu
	case "uk":
		return s.StopwordsUk
	case "en":
		return s.StopwordsEn
	default:
		return nil
	}
}
