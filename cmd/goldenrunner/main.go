// Command goldenrunner is the CI golden-case gate: it replays a fixed
// set of inputs through both the legacy and factory normalizers,
// checks that the two implementations agree (parity) and that the
// factory path stays within its latency and success-rate budget, then
// exits 0/1/2 for a build pipeline to key off of. Grounded on
// ci_golden_monitor.py's CIThresholds/CIMetrics shape, adapted from a
// standalone async script into a single-binary Go CLI.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dariadocs/namescreen/internal/dictionaries"
	"github.com/dariadocs/namescreen/internal/flags"
	"github.com/dariadocs/namescreen/internal/morphology"
	"github.com/dariadocs/namescreen/internal/orchestrator"
)

// exit codes per the CI contract: 0 build passes, 1 a quality
// threshold was violated, 2 the runner itself could not execute
// (bad fixture file, pipeline construction failure).
const (
	exitPass             = 0
	exitThresholdViolated = 1
	exitExecutionError    = 2
)

// thresholds mirrors CIThresholds from the original monitor script.
type thresholds struct {
	minParityRate    float64
	maxP95LatencyMs  float64
	maxAvgLatencyMs  float64
	minSuccessRate   float64
}

func defaultThresholds() thresholds {
	return thresholds{
		minParityRate:   0.8,
		maxP95LatencyMs: 50.0,
		maxAvgLatencyMs: 20.0,
		minSuccessRate:  0.95,
	}
}

// goldenCase is one fixture row. Simplified from the original's
// expected_personas list (this domain has no persona concept) down to
// a single expected normalized string per case.
type goldenCase struct {
	ID                 string `json:"id"`
	Input              string `json:"input"`
	Language           string `json:"language"`
	ExpectedNormalized string `json:"expected_normalized"`
}

// caseResult is one case's legacy-vs-factory comparison, mirroring
// TestResult.
type caseResult struct {
	id              string
	legacyOutput    string
	factoryOutput   string
	legacyTimeMs    float64
	factoryTimeMs   float64
	legacySuccess   bool
	factorySuccess  bool
	parityMatch     bool
	legacyAccurate  bool
	factoryAccurate bool
}

// metrics mirrors CIMetrics: aggregate rates, latency percentiles, and
// the pass/fail verdict with the reasons behind it.
type metrics struct {
	totalCases          int
	parityRate          float64
	legacyAccuracy      float64
	factoryAccuracy     float64
	legacySuccessRate   float64
	factorySuccessRate  float64
	legacyAvgLatencyMs  float64
	factoryAvgLatencyMs float64
	legacyP95LatencyMs  float64
	factoryP95LatencyMs float64
	passesThresholds    bool
	failedChecks        []string
}

func main() {
	fixturePath := flag.String("fixtures", "tests/golden_cases/golden_cases.json", "path to the golden case fixture file")
	flag.Parse()

	cases, err := loadGoldenCases(*fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "goldenrunner: failed to load fixtures: %v\n", err)
		os.Exit(exitExecutionError)
	}
	if len(cases) == 0 {
		fmt.Fprintln(os.Stderr, "goldenrunner: fixture file contains no cases")
		os.Exit(exitExecutionError)
	}

	orch, err := buildOrchestrator()
	if err != nil {
		fmt.Fprintf(os.Stderr, "goldenrunner: failed to build pipeline: %v\n", err)
		os.Exit(exitExecutionError)
	}

	results := make([]caseResult, 0, len(cases))
	for _, c := range cases {
		results = append(results, runSingleCase(orch, c))
	}

	th := defaultThresholds()
	m := calculateMetrics(results, th)
	printReport(m, th)

	if !m.passesThresholds {
		os.Exit(exitThresholdViolated)
	}
	os.Exit(exitPass)
}

func loadGoldenCases(path string) ([]goldenCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cases []goldenCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cases, nil
}

// buildOrchestrator wires the same collaborators cmd/api/main.go does,
// minus the cache and logger: the golden runner is a one-shot batch
// pass, not a long-lived service.
func buildOrchestrator() (*orchestrator.Orchestrator, error) {
	dicts, err := dictionaries.Load()
	if err != nil {
		return nil, fmt.Errorf("load dictionaries: %w", err)
	}
	morph := morphology.New(dicts)
	// With the implementation setting pinned to legacy, the per-request
	// use_factory_normalizer override alone picks the path: true selects
	// the factory, false the legacy normalizer.
	os.Setenv("NORMALIZATION_IMPLEMENTATION", "legacy")
	fm := flags.NewManager(nil)
	return orchestrator.New(fm, dicts, morph, nil, nil), nil
}

// runSingleCase runs one fixture through both dispatch paths by
// forcing use_factory_normalizer via FlagOverrides, the same knob
// ShouldUseFactory consults for auto-dispatch.
func runSingleCase(orch *orchestrator.Orchestrator, c goldenCase) caseResult {
	ctx := context.Background()

	legacyStart := time.Now()
	legacyRes := orch.Process(ctx, orchestrator.Request{
		Text:             c.Input,
		LanguageOverride: c.Language,
		RequestID:        "golden-" + c.ID,
		FlagOverrides:    map[string]bool{"use_factory_normalizer": false},
	})
	legacyElapsed := time.Since(legacyStart)

	factoryStart := time.Now()
	factoryRes := orch.Process(ctx, orchestrator.Request{
		Text:             c.Input,
		LanguageOverride: c.Language,
		RequestID:        "golden-" + c.ID,
		FlagOverrides:    map[string]bool{"use_factory_normalizer": true},
	})
	factoryElapsed := time.Since(factoryStart)

	return caseResult{
		id:              c.ID,
		legacyOutput:    legacyRes.Normalized,
		factoryOutput:   factoryRes.Normalized,
		legacyTimeMs:    legacyElapsed.Seconds() * 1000,
		factoryTimeMs:   factoryElapsed.Seconds() * 1000,
		legacySuccess:   legacyRes.Success,
		factorySuccess:  factoryRes.Success,
		parityMatch:     legacyRes.Normalized == factoryRes.Normalized,
		legacyAccurate:  legacyRes.Normalized == c.ExpectedNormalized,
		factoryAccurate: factoryRes.Normalized == c.ExpectedNormalized,
	}
}

func calculateMetrics(results []caseResult, th thresholds) metrics {
	total := len(results)
	var parityMatches, legacyAccurate, factoryAccurate, legacySuccesses, factorySuccesses int
	legacyTimes := make([]float64, 0, total)
	factoryTimes := make([]float64, 0, total)

	for _, r := range results {
		if r.parityMatch {
			parityMatches++
		}
		if r.legacyAccurate {
			legacyAccurate++
		}
		if r.factoryAccurate {
			factoryAccurate++
		}
		if r.legacySuccess {
			legacySuccesses++
		}
		if r.factorySuccess {
			factorySuccesses++
		}
		legacyTimes = append(legacyTimes, r.legacyTimeMs)
		factoryTimes = append(factoryTimes, r.factoryTimeMs)
	}

	m := metrics{
		totalCases:          total,
		parityRate:          float64(parityMatches) / float64(total),
		legacyAccuracy:      float64(legacyAccurate) / float64(total),
		factoryAccuracy:     float64(factoryAccurate) / float64(total),
		legacySuccessRate:   float64(legacySuccesses) / float64(total),
		factorySuccessRate:  float64(factorySuccesses) / float64(total),
		legacyAvgLatencyMs:  mean(legacyTimes),
		factoryAvgLatencyMs: mean(factoryTimes),
		legacyP95LatencyMs:  percentile95(legacyTimes),
		factoryP95LatencyMs: percentile95(factoryTimes),
	}

	var failed []string
	if m.parityRate < th.minParityRate {
		failed = append(failed, fmt.Sprintf("parity rate %.1f%% below threshold %.1f%%", m.parityRate*100, th.minParityRate*100))
	}
	if m.factoryP95LatencyMs > th.maxP95LatencyMs {
		failed = append(failed, fmt.Sprintf("factory p95 latency %.1fms above threshold %.1fms", m.factoryP95LatencyMs, th.maxP95LatencyMs))
	}
	if m.factoryAvgLatencyMs > th.maxAvgLatencyMs {
		failed = append(failed, fmt.Sprintf("factory avg latency %.1fms above threshold %.1fms", m.factoryAvgLatencyMs, th.maxAvgLatencyMs))
	}
	if m.factorySuccessRate < th.minSuccessRate {
		failed = append(failed, fmt.Sprintf("factory success rate %.1f%% below threshold %.1f%%", m.factorySuccessRate*100, th.minSuccessRate*100))
	}
	m.failedChecks = failed
	m.passesThresholds = len(failed) == 0
	return m
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// percentile95 returns the element at index floor(0.95*n) (clamped to
// the last element) of a sorted copy of xs, a small fixture-scale
// stand-in for statistics.quantiles.
func percentile95(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	idx := int(float64(len(sorted))*0.95)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func printReport(m metrics, th thresholds) {
	status := "PASS"
	if !m.passesThresholds {
		status = "FAIL"
	}
	fmt.Printf("golden test ci monitor: %s\n", status)
	fmt.Printf("  total cases:            %d\n", m.totalCases)
	fmt.Printf("  parity rate:            %.1f%% (threshold %.1f%%)\n", m.parityRate*100, th.minParityRate*100)
	fmt.Printf("  factory accuracy:       %.1f%%\n", m.factoryAccuracy*100)
	fmt.Printf("  legacy accuracy:        %.1f%%\n", m.legacyAccuracy*100)
	fmt.Printf("  factory success rate:   %.1f%% (threshold %.1f%%)\n", m.factorySuccessRate*100, th.minSuccessRate*100)
	fmt.Printf("  factory avg latency:    %.2fms (threshold %.1fms)\n", m.factoryAvgLatencyMs, th.maxAvgLatencyMs)
	fmt.Printf("  factory p95 latency:    %.2fms (threshold %.1fms)\n", m.factoryP95LatencyMs, th.maxP95LatencyMs)
	fmt.Printf("  legacy avg latency:     %.2fms\n", m.legacyAvgLatencyMs)
	fmt.Printf("  legacy p95 latency:     %.2fms\n", m.legacyP95LatencyMs)

	if len(m.failedChecks) == 0 {
		fmt.Println("  all checks passed")
		return
	}
	fmt.Println("  failed checks:")
	for _, f := range m.failedChecks {
		fmt.Printf("    - %s\n", f)
	}
}
