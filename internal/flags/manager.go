package flags

import (
	"hash/fnv"
)

// Manager owns the effective flags for a process and knows how to
// derive a per-request effective set by layering request overrides on
// top, per the merge rule in spec §4.8: request > env > file >
// default.
type Manager struct {
	base FeatureFlags // defaults, with file+env already merged in at construction
}

// NewManager builds a Manager from compiled-in defaults, a YAML file
// section (may be nil), and the process environment, in that
// increasing-precedence order.
func NewManager(fileSection map[string]bool) *Manager {
	f := Defaults()
	f.ApplyMap(fileSection)
	f.ApplyEnv()
	return &Manager{base: f}
}

// Effective returns the per-request flag set: the process-wide base
// with requestOverrides (from options.flags in the request body)
// merged on top. Unknown request flags are ignored, not rejected.
func (m *Manager) Effective(requestOverrides map[string]bool) FeatureFlags {
	f := m.base.Clone()
	f.ApplyMap(requestOverrides)
	return f
}

// ShouldUseFactory decides legacy-vs-factory dispatch for a single
// request, following the original's priority order: the explicit
// use_factory_normalizer flag first, then a per-language override,
// then the primary implementation setting (with rollout-percentage
// gating in "factory" mode, and a small heuristic in "auto" mode).
func (f FeatureFlags) ShouldUseFactory(language, requestID string, highPerformanceRequired bool) bool {
	if f.UseFactoryNormalizer {
		return true
	}
	if override, ok := f.LanguageOverrides[language]; ok {
		switch override {
		case ImplLegacy:
			return false
		case ImplFactory:
			return true
		case ImplAuto:
			// fall through to main logic
		}
	}
	switch f.NormalizationImplementation {
	case ImplLegacy:
		return false
	case ImplFactory:
		return f.checkRolloutPercentage(requestID)
	case ImplAuto:
		if highPerformanceRequired {
			return false
		}
		return f.checkRolloutPercentage(requestID)
	default:
		return false
	}
}

// checkRolloutPercentage is a deterministic, hash-of-requestID rollout
// check: the same request id always yields the same decision, unlike
// the original's math/random fallback when no user id is present.
func (f FeatureFlags) checkRolloutPercentage(requestID string) bool {
	if f.FactoryRolloutPercentage >= 100 {
		return true
	}
	if f.FactoryRolloutPercentage <= 0 {
		return false
	}
	if requestID == "" {
		// No identifier to hash consistently: decide by whether the
		// rollout covers at least half of traffic rather than flip a
		// coin, since determinism is a hard requirement (spec §8).
		return f.FactoryRolloutPercentage >= 50
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(requestID))
	bucket := int(h.Sum32() % 100)
	return bucket < f.FactoryRolloutPercentage
}
