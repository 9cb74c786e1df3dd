/*
PURPOSE:
  Reduces per-trial timings into aggregate statistics and resolves the
  overall status of a (benchmark, runtime) pair.

REQUIREMENTS:
  User-specified:
  - Statistics cover successful trials only.
  - Sample standard deviation (n-1), defined as 0 for a single sample.
  - One successful trial makes the pair SUCCESS even if others failed;
    the effective sample size is recorded alongside the requested one.

  Implementation-discovered:
  - When zero trials succeed, TIMEOUT takes precedence over FAILED: a
    timeout means the combination is not viable, which is a stronger
    statement than flaky failures. Policy choice, recorded in DESIGN.md.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Consumes: internal/model.TrialRecord

ERROR HANDLING:
  - None. Every input shape maps to a valid BenchmarkResult.

IMPLEMENTATION RULES:
  - Pure functions, no I/O.

USAGE:
  res := stats.Aggregate("pure_python", "pypy", trials, cfg.Trials)

RELATED FILES:
  - internal/stats/compare.go
  - internal/model/types.go

MAINTENANCE:
  - Update if percentile statistics are ever added.
*/

package stats

import (
	"math"

	"github.com/rtbench/rtbench/internal/model"
)

// Aggregate reduces the trials of one (benchmark, runtime) pair into a
// BenchmarkResult. requested is the configured trial count; the pair may
// hold fewer records when a timeout cut the sequence short.
func Aggregate(benchmark, runtime string, trials []model.TrialRecord, requested int) model.BenchmarkResult {
	result := model.BenchmarkResult{
		Benchmark:       benchmark,
		Runtime:         runtime,
		Trials:          trials,
		TrialsRequested: requested,
	}

	var times []float64
	timedOut := false
	for _, t := range trials {
		if t.Success() {
			times = append(times, t.Seconds)
		} else if t.Status == model.StatusTimeout {
			timedOut = true
		}
	}

	if len(times) == 0 {
		if timedOut {
			result.Status = model.StatusTimeout
		} else {
			result.Status = model.StatusFailed
		}
		return result
	}

	result.Status = model.StatusSuccess
	result.TrialsUsed = len(times)
	result.Stats = summarize(times)
	return result
}

// Skipped builds the result for a pair where no trial was attempted
// because the runtime lacks a required capability.
func Skipped(benchmark, runtime, reason string, requested int) model.BenchmarkResult {
	return model.BenchmarkResult{
		Benchmark:       benchmark,
		Runtime:         runtime,
		Status:          model.StatusSkipped,
		TrialsRequested: requested,
		SkipReason:      reason,
	}
}

// summarize computes mean, extremes, and sample standard deviation over
// a non-empty sample.
func summarize(times []float64) *model.Stats {
	s := &model.Stats{Min: times[0], Max: times[0]}

	var sum float64
	for _, t := range times {
		sum += t
		if t < s.Min {
			s.Min = t
		}
		if t > s.Max {
			s.Max = t
		}
	}
	s.Mean = sum / float64(len(times))

	if len(times) > 1 {
		var sq float64
		for _, t := range times {
			d := t - s.Mean
			sq += d * d
		}
		s.StdDev = math.Sqrt(sq / float64(len(times)-1))
	}
	return s
}
