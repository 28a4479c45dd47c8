package main

import "testing"

func TestCalculateMetricsAllAgreeAndAccurate(t *testing.T) {
	t.Parallel()
	results := []caseResult{
		{id: "a", legacyOutput: "X", factoryOutput: "X", legacySuccess: true, factorySuccess: true, parityMatch: true, legacyAccurate: true, factoryAccurate: true, legacyTimeMs: 1, factoryTimeMs: 1},
		{id: "b", legacyOutput: "Y", factoryOutput: "Y", legacySuccess: true, factorySuccess: true, parityMatch: true, legacyAccurate: true, factoryAccurate: true, legacyTimeMs: 2, factoryTimeMs: 2},
	}
	th := defaultThresholds()
	m := calculateMetrics(results, th)

	if m.parityRate != 1.0 {
		t.Errorf("expected parity rate 1.0, got %f", m.parityRate)
	}
	if !m.passesThresholds {
		t.Errorf("expected thresholds to pass, failed checks: %v", m.failedChecks)
	}
}

func TestCalculateMetricsParityViolationFails(t *testing.T) {
	t.Parallel()
	results := []caseResult{
		{id: "a", parityMatch: false, legacySuccess: true, factorySuccess: true},
		{id: "b", parityMatch: false, legacySuccess: true, factorySuccess: true},
		{id: "c", parityMatch: false, legacySuccess: true, factorySuccess: true},
		{id: "d", parityMatch: true, legacySuccess: true, factorySuccess: true},
	}
	m := calculateMetrics(results, defaultThresholds())

	if m.passesThresholds {
		t.Fatal("expected a 25% parity rate to fail the 80% threshold")
	}
	if len(m.failedChecks) != 1 {
		t.Errorf("expected exactly one failed check, got %v", m.failedChecks)
	}
}

func TestCalculateMetricsLowSuccessRateFails(t *testing.T) {
	t.Parallel()
	results := make([]caseResult, 0, 10)
	for i := 0; i < 10; i++ {
		results = append(results, caseResult{
			parityMatch:    true,
			legacySuccess:  true,
			factorySuccess: i < 9, // one failure out of ten -> 90% < 95% threshold
		})
	}
	m := calculateMetrics(results, defaultThresholds())

	if m.passesThresholds {
		t.Fatal("expected 90% factory success rate to fail the 95% threshold")
	}
}

func TestCalculateMetricsHighLatencyFails(t *testing.T) {
	t.Parallel()
	results := []caseResult{
		{parityMatch: true, legacySuccess: true, factorySuccess: true, factoryTimeMs: 100},
		{parityMatch: true, legacySuccess: true, factorySuccess: true, factoryTimeMs: 120},
	}
	m := calculateMetrics(results, defaultThresholds())

	if m.passesThresholds {
		t.Fatal("expected factory latency far above threshold to fail")
	}
}

func TestPercentile95SingleValue(t *testing.T) {
	t.Parallel()
	if got := percentile95([]float64{5}); got != 5 {
		t.Errorf("expected 5, got %f", got)
	}
}

func TestMeanEmptyIsZero(t *testing.T) {
	t.Parallel()
	if got := mean(nil); got != 0 {
		t.Errorf("expected 0 for empty input, got %f", got)
	}
}
