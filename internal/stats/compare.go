/*
PURPOSE:
  Selects the baseline runtime for a benchmark and computes relative
  speedups for every runtime that succeeded.

REQUIREMENTS:
  User-specified:
  - Baseline = lowest successful mean; ties broken by the configured
    runtime order so two runs over identical inputs agree.
  - Baseline speedup is exactly 1.0.
  - Non-SUCCESS entries are excluded from the mapping but stay in the
    underlying results for reporting.

  Implementation-discovered:
  - Zero successful entries is a normal outcome (uncomparable
    benchmark), expressed as an empty row, not an error.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Consumes: internal/model.BenchmarkResult

ERROR HANDLING:
  - None.

IMPLEMENTATION RULES:
  - Input slice order is the configured runtime order; selection uses
    strict less-than so the first of two equal means wins.

USAGE:
  row := stats.Compare("pure_python", resultsForBenchmark)

RELATED FILES:
  - internal/stats/stats.go

MAINTENANCE:
  - Update if a different baseline policy (e.g. median) is introduced.
*/

package stats

import (
	"github.com/rtbench/rtbench/internal/model"
)

// Compare builds the ComparisonRow for one benchmark from its per-runtime
// results. The slice must be in configured runtime order.
func Compare(benchmark string, results []model.BenchmarkResult) model.ComparisonRow {
	row := model.ComparisonRow{
		Benchmark: benchmark,
		Speedups:  map[string]float64{},
	}

	var baseline *model.BenchmarkResult
	for i := range results {
		r := &results[i]
		if r.Status != model.StatusSuccess || r.Stats == nil {
			continue
		}
		if baseline == nil || r.Stats.Mean < baseline.Stats.Mean {
			baseline = r
		}
	}
	if baseline == nil {
		return row
	}

	row.Baseline = baseline.Runtime
	for i := range results {
		r := &results[i]
		if r.Status != model.StatusSuccess || r.Stats == nil {
			continue
		}
		if r.Runtime == baseline.Runtime {
			row.Speedups[r.Runtime] = 1.0
			continue
		}
		row.Speedups[r.Runtime] = baseline.Stats.Mean / r.Stats.Mean
	}
	return row
}
