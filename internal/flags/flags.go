// Package flags implements the Feature Flag Manager (C8): an
// explicit, non-reflective merge of compiled-in defaults, a
// YAML config file, environment variables, and per-request
// overrides.
package flags

import (
	"os"
	"strconv"
	"strings"
)

// Implementation selects which normalizer trait implements the
// orchestrator's pipeline for a given request.
type Implementation string

const (
	ImplLegacy  Implementation = "legacy"
	ImplFactory Implementation = "factory"
	ImplAuto    Implementation = "auto"
)

// FeatureFlags is the full record of switches recognized by the
// pipeline. Every boolean field corresponds 1:1 to an
// AISVC_FLAG_<NAME> environment variable and a feature_flags.yaml key
// (see boolFieldTable); the implementation, rollout and per-language
// settings are read only from their own unprefixed environment
// variables in ApplyEnv, and the latency/confidence thresholds from
// neither.
type FeatureFlags struct {
	NormalizationImplementation Implementation
	FactoryRolloutPercentage    int
	LanguageOverrides           map[string]Implementation

	EnablePerformanceFallback bool
	MaxLatencyThresholdMs     float64
	EnableAccuracyMonitoring  bool
	MinConfidenceThreshold    float64
	EnableDualProcessing      bool
	LogImplementationChoice   bool
	DebugTracing              bool

	UseFactoryNormalizer   bool
	FixInitialsDoubleDot   bool
	PreserveHyphenatedCase bool
	StrictStopwords        bool
	EnableACTier0          bool
	EnableVectorFallback   bool
	EnableAsciiFastpath    bool

	MorphologyCustomRulesFirst bool

	EnableNameparserEn       bool
	EnableEnNicknames        bool
	EnUseNameparser          bool
	EnableEnNicknameExpansion bool
	FilterTitlesSuffixes     bool

	EnableSpacyNER       bool
	EnableSpacyUkNER     bool
	EnableSpacyEnNER     bool
	EnableFSMTunedRoles  bool

	EnableEnhancedDiminutives  bool
	EnableEnhancedGenderRules  bool
	PreserveFeminineSuffixUk   bool
	EnforceNominative          bool
	PreserveFeminineSurnames   bool

	UseDiminutivesDictionaryOnly bool
	DiminutivesAllowCrossLang    bool

	RequireTINDOBGate bool
}

// Defaults returns the compiled-in default flag set (lowest
// precedence in the merge chain), mirroring the original
// implementation's dataclass field defaults.
func Defaults() FeatureFlags {
	return FeatureFlags{
		NormalizationImplementation: ImplFactory,
		FactoryRolloutPercentage:    100,
		LanguageOverrides:           map[string]Implementation{},

		EnablePerformanceFallback: true,
		MaxLatencyThresholdMs:     100.0,
		EnableAccuracyMonitoring:  true,
		MinConfidenceThreshold:    0.8,
		EnableDualProcessing:      false,
		LogImplementationChoice:   true,
		DebugTracing:              false,

		UseFactoryNormalizer:   true,
		FixInitialsDoubleDot:   false,
		PreserveHyphenatedCase: false,
		StrictStopwords:        false,
		EnableACTier0:          true,
		EnableVectorFallback:   true,
		EnableAsciiFastpath:    true,

		MorphologyCustomRulesFirst: true,

		EnableNameparserEn:        true,
		EnableEnNicknames:         true,
		EnUseNameparser:           true,
		EnableEnNicknameExpansion: true,
		FilterTitlesSuffixes:      true,

		EnableSpacyNER:      true,
		EnableSpacyUkNER:    true,
		EnableSpacyEnNER:    true,
		EnableFSMTunedRoles: true,

		EnableEnhancedDiminutives: true,
		EnableEnhancedGenderRules: true,
		PreserveFeminineSuffixUk:  true,
		EnforceNominative:         true,
		PreserveFeminineSurnames:  true,

		UseDiminutivesDictionaryOnly: false,
		DiminutivesAllowCrossLang:    false,

		RequireTINDOBGate: true,
	}
}

// fieldOverride is a (name, apply) pair used to thread a source of
// overrides (file section, env, request map) through the same merge
// loop without reflection.
type fieldOverride func(name string, set func(bool))

// boolFieldTable maps every boolean field name to a pointer at that
// field. Kept as an explicit table (not reflection) per the design
// note requiring field-by-field loading.
func (f *FeatureFlags) boolFieldTable() map[string]*bool {
	return map[string]*bool{
		"enable_performance_fallback":    &f.EnablePerformanceFallback,
		"enable_accuracy_monitoring":     &f.EnableAccuracyMonitoring,
		"enable_dual_processing":         &f.EnableDualProcessing,
		"log_implementation_choice":      &f.LogImplementationChoice,
		"debug_tracing":                  &f.DebugTracing,
		"use_factory_normalizer":         &f.UseFactoryNormalizer,
		"fix_initials_double_dot":        &f.FixInitialsDoubleDot,
		"preserve_hyphenated_case":       &f.PreserveHyphenatedCase,
		"strict_stopwords":               &f.StrictStopwords,
		"enable_ac_tier0":                &f.EnableACTier0,
		"enable_vector_fallback":         &f.EnableVectorFallback,
		"enable_ascii_fastpath":          &f.EnableAsciiFastpath,
		"morphology_custom_rules_first":  &f.MorphologyCustomRulesFirst,
		"enable_nameparser_en":           &f.EnableNameparserEn,
		"enable_en_nicknames":            &f.EnableEnNicknames,
		"en_use_nameparser":              &f.EnUseNameparser,
		"enable_en_nickname_expansion":   &f.EnableEnNicknameExpansion,
		"filter_titles_suffixes":         &f.FilterTitlesSuffixes,
		"enable_spacy_ner":               &f.EnableSpacyNER,
		"enable_spacy_uk_ner":            &f.EnableSpacyUkNER,
		"enable_spacy_en_ner":            &f.EnableSpacyEnNER,
		"enable_fsm_tuned_roles":         &f.EnableFSMTunedRoles,
		"enable_enhanced_diminutives":    &f.EnableEnhancedDiminutives,
		"enable_enhanced_gender_rules":   &f.EnableEnhancedGenderRules,
		"preserve_feminine_suffix_uk":    &f.PreserveFeminineSuffixUk,
		"enforce_nominative":             &f.EnforceNominative,
		"preserve_feminine_surnames":     &f.PreserveFeminineSurnames,
		"use_diminutives_dictionary_only": &f.UseDiminutivesDictionaryOnly,
		"diminutives_allow_cross_lang":   &f.DiminutivesAllowCrossLang,
		"require_tin_dob_gate":           &f.RequireTINDOBGate,
	}
}

// ApplyMap merges a generic string->bool map (from a YAML section, a
// request's options.flags, or any other source) into f in place.
// Unknown keys are ignored, never rejected, per the merge rule.
func (f *FeatureFlags) ApplyMap(overrides map[string]bool) {
	table := f.boolFieldTable()
	for name, value := range overrides {
		if target, ok := table[name]; ok {
			*target = value
		}
	}
}

// ApplyEnv merges AISVC_FLAG_<NAME> environment variables (and the
// legacy unprefixed aliases) into f in place. Values are read with
// os.LookupEnv so an absent variable never overwrites an
// already-merged value from a lower-precedence source... except env
// sits above file in the merge chain, so this is called after the
// file layer and before request overrides.
func (f *FeatureFlags) ApplyEnv() {
	table := f.boolFieldTable()
	for name, target := range table {
		envName := "AISVC_FLAG_" + strings.ToUpper(name)
		if v, ok := lookupBoolEnv(envName); ok {
			*target = v
		}
	}
	// Legacy unprefixed aliases, accepted as a fallback when the
	// prefixed form is absent.
	legacyAliases := map[string]*bool{
		"USE_DIMINUTIVES_DICTIONARY_ONLY": &f.UseDiminutivesDictionaryOnly,
		"DIMINUTIVES_ALLOW_CROSS_LANG":    &f.DiminutivesAllowCrossLang,
		"FIX_INITIALS_DOUBLE_DOT":         &f.FixInitialsDoubleDot,
		"PRESERVE_HYPHENATED_CASE":        &f.PreserveHyphenatedCase,
	}
	for envName, target := range legacyAliases {
		prefixed := "AISVC_FLAG_" + envName
		if _, ok := os.LookupEnv(prefixed); ok {
			continue // prefixed form already applied above, takes priority
		}
		if v, ok := lookupBoolEnv(envName); ok {
			*target = v
		}
	}

	if v := os.Getenv("NORMALIZATION_IMPLEMENTATION"); v != "" {
		f.NormalizationImplementation = parseImplementation(v, f.NormalizationImplementation)
	}
	if v, ok := lookupIntEnv("FACTORY_ROLLOUT_PERCENTAGE"); ok {
		f.FactoryRolloutPercentage = clampPercentage(v)
	}
	for _, lang := range []string{"ru", "uk", "en"} {
		envKey := "NORMALIZATION_IMPLEMENTATION_" + strings.ToUpper(lang)
		if v, ok := os.LookupEnv(envKey); ok {
			if impl, ok := tryParseImplementation(v); ok {
				f.LanguageOverrides[lang] = impl
			}
		}
	}
}

func lookupBoolEnv(name string) (bool, bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return false, false
	}
	return strings.EqualFold(v, "true"), true
}

func lookupIntEnv(name string) (int, bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func clampPercentage(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func parseImplementation(s string, fallback Implementation) Implementation {
	if impl, ok := tryParseImplementation(s); ok {
		return impl
	}
	return fallback
}

func tryParseImplementation(s string) (Implementation, bool) {
	switch strings.ToLower(s) {
	case string(ImplLegacy):
		return ImplLegacy, true
	case string(ImplFactory):
		return ImplFactory, true
	case string(ImplAuto):
		return ImplAuto, true
	default:
		return "", false
	}
}

// Clone returns a deep-enough copy of f suitable for per-request
// mutation (the language-overrides map is copied so request overrides
// never leak between requests).
func (f FeatureFlags) Clone() FeatureFlags {
	clone := f
	clone.LanguageOverrides = make(map[string]Implementation, len(f.LanguageOverrides))
	for k, v := range f.LanguageOverrides {
		clone.LanguageOverrides[k] = v
	}
	return clone
}

// ToMap renders the effective flags as a map suitable for the
// request-scoped "flags" trace entry (spec §6).
func (f FeatureFlags) ToMap() map[string]bool {
	out := make(map[string]bool)
	table := f.boolFieldTable()
	for name, v := range table {
		out[name] = *v
	}
	return out
}
