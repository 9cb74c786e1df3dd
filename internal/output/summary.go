/*
PURPOSE:
  Renders the human-readable run summary: per benchmark, each runtime's
  mean ± stddev and speedup relative to the baseline, fastest first.

REQUIREMENTS:
  User-specified:
  - Derived, read-only view over the RunReport; nothing here feeds back
    into the data.
  - Fastest runtime is marked "(baseline)", others get "(N.NNx)".

  Implementation-discovered:
  - Non-successful pairs are still listed (with their status) so a
    runtime silently vanishing from the table cannot be mistaken for it
    never having been requested.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go after persisting
  - Consumes: internal/model.RunReport

ERROR HANDLING:
  - Write errors on the destination writer are returned.

IMPLEMENTATION RULES:
  - text/tabwriter for column alignment; no TUI dependency for a batch
    tool's final printout.

USAGE:
  output.WriteSummary(os.Stdout, report)

RELATED FILES:
  - internal/stats/compare.go

MAINTENANCE:
  - Update when new per-runtime columns are reported.
*/

package output

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/rtbench/rtbench/internal/model"
)

// WriteSummary prints the grouped comparison table for a finished run.
func WriteSummary(w io.Writer, report *model.RunReport) error {
	byPair := make(map[string]map[string]*model.BenchmarkResult)
	for i := range report.Results {
		r := &report.Results[i]
		if byPair[r.Benchmark] == nil {
			byPair[r.Benchmark] = make(map[string]*model.BenchmarkResult)
		}
		byPair[r.Benchmark][r.Runtime] = r
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "BENCHMARK SUMMARY")

	for _, row := range report.Comparisons {
		fmt.Fprintf(w, "\n%s:\n", row.Benchmark)

		results := byPair[row.Benchmark]
		names := make([]string, 0, len(results))
		for name := range results {
			names = append(names, name)
		}
		// Fastest first; pairs without statistics sink to the bottom in
		// name order so the listing is stable.
		sort.Slice(names, func(i, j int) bool {
			a, b := results[names[i]], results[names[j]]
			switch {
			case a.Stats != nil && b.Stats != nil:
				return a.Stats.Mean < b.Stats.Mean
			case a.Stats != nil:
				return true
			case b.Stats != nil:
				return false
			default:
				return names[i] < names[j]
			}
		})

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, name := range names {
			r := results[name]
			if r.Stats == nil {
				fmt.Fprintf(tw, "  %s\t-\t%s\n", name, r.Status)
				continue
			}
			tag := fmt.Sprintf("(%.2fx)", row.Speedups[name])
			if name == row.Baseline {
				tag = "(baseline)"
			}
			fmt.Fprintf(tw, "  %s\t%.4fs ± %.4fs\t%s\n", name, r.Stats.Mean, r.Stats.StdDev, tag)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(w)
	return nil
}
