/*
PURPOSE:
  Defines the core data structures used throughout Runtime Bench.
  These models represent detected runtimes, per-trial timings, aggregate
  statistics, cross-runtime comparisons, and the persisted run report.

REQUIREMENTS:
  User-specified:
  - Record elapsed seconds, exit status, stderr per trial.
  - Track runtime name, version, executable per descriptor.
  - Whole report must round-trip through JSON exactly.

  Implementation-discovered:
  - Need JSON tags for the persisted report schema.
  - Statistics must be absent (not zero) when no trial succeeded; use a
    pointer so the distinction survives serialization.

ARCHITECTURE INTEGRATION:
  - Used by: internal/registry, internal/probe, internal/engine,
    internal/stats, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs).

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - Elapsed times are float64 seconds to match the persisted schema; the
    executor converts from time.Duration exactly once.

USAGE:
  rec := model.TrialRecord{Benchmark: "pure_loop", Runtime: "pypy", ...}

RELATED FILES:
  - internal/output/report.go
  - internal/stats/stats.go

MAINTENANCE:
  - Update when adding new metrics to capture.
*/

package model

import (
	"time"
)

// Status classifies the outcome of a (benchmark, runtime) pair or a trial.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
	StatusTimeout Status = "TIMEOUT"
	StatusSkipped Status = "SKIPPED"
)

// RuntimeDescriptor describes one candidate runtime executable.
// Created during detection and immutable afterwards.
type RuntimeDescriptor struct {
	Name       string `json:"name"`       // stable identifier, e.g. "pypy"
	Executable string `json:"executable"` // resolved path or bare command
	Version    string `json:"version"`
	Available  bool   `json:"available"`
}

// ProbeResult is the measured cost of acquiring one capability (startup,
// or a single module import) under one runtime.
type ProbeResult struct {
	Runtime string  `json:"runtime"`
	Probe   string  `json:"probe"`
	Seconds float64 `json:"seconds"` // -1 when the probe failed
	OK      bool    `json:"ok"`
}

// TrialRecord is one timed execution of a workload script under a runtime.
// Elapsed is always recorded, including on failure; a timed-out trial
// carries the configured timeout as its elapsed value.
type TrialRecord struct {
	Benchmark string  `json:"benchmark"`
	Runtime   string  `json:"runtime"`
	Index     int     `json:"index"` // 1-based
	Seconds   float64 `json:"seconds"`
	ExitCode  int     `json:"exit_code"`
	Status    Status  `json:"status"`
	Stderr    string  `json:"stderr,omitempty"`
}

// Success reports whether the trial counts toward statistics.
func (t TrialRecord) Success() bool {
	return t.Status == StatusSuccess
}

// Stats holds aggregate statistics over the successful trials of one
// (benchmark, runtime) pair.
type Stats struct {
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}

// BenchmarkResult is the outcome of one (benchmark, runtime) pair.
// Stats is nil unless at least one trial succeeded.
type BenchmarkResult struct {
	Benchmark       string        `json:"benchmark"`
	Runtime         string        `json:"runtime"`
	Status          Status        `json:"status"`
	Trials          []TrialRecord `json:"trials"`
	Stats           *Stats        `json:"stats,omitempty"`
	TrialsRequested int           `json:"trials_requested"`
	TrialsUsed      int           `json:"trials_used"` // successful trials contributing to Stats
	SkipReason      string        `json:"skip_reason,omitempty"`
}

// ComparisonRow maps each successful runtime to its speedup relative to the
// fastest runtime for one benchmark. Baseline is empty when no runtime
// succeeded; that benchmark is simply not comparable.
type ComparisonRow struct {
	Benchmark string             `json:"benchmark"`
	Baseline  string             `json:"baseline,omitempty"`
	Speedups  map[string]float64 `json:"speedups"` // baseline maps to exactly 1.0
}

// RunConfig echoes the configuration a run was executed with.
type RunConfig struct {
	Runtimes       []string `json:"runtimes"`
	Benchmarks     []string `json:"benchmarks"`
	Trials         int      `json:"trials"`
	Warmup         int      `json:"warmup"`
	TimeoutSeconds float64  `json:"timeout_seconds"`
}

// HostInfo is a snapshot of the machine the run executed on. Results are
// never normalized across machines, so this is descriptive metadata only.
type HostInfo struct {
	OS       string `json:"os"`
	Platform string `json:"platform"`
	CPUModel string `json:"cpu_model,omitempty"`
	CPUCores int    `json:"cpu_cores"`
	MemoryMB uint64 `json:"memory_mb"`
	Hostname string `json:"hostname,omitempty"`
}

// RunReport is the top-level persisted record of one invocation.
type RunReport struct {
	RunID       string              `json:"run_id"`
	Timestamp   time.Time           `json:"timestamp"`
	Config      RunConfig           `json:"config"`
	Host        HostInfo            `json:"host"`
	Runtimes    []RuntimeDescriptor `json:"runtimes"`
	Probes      []ProbeResult       `json:"probes"`
	Results     []BenchmarkResult   `json:"results"`
	Comparisons []ComparisonRow     `json:"comparisons"`
	Interrupted bool                `json:"interrupted,omitempty"`
}
