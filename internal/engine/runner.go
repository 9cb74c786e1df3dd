/*
PURPOSE:
  High-level runner that orchestrates the benchmarking process.
  Loops through Runtimes -> Benchmarks -> Trials and assembles the
  RunReport.

REQUIREMENTS:
  User-specified:
  - Run the suite against all detected runtimes.
  - Persist the full report as JSON plus a per-trial CSV audit file.
  - Print the comparison summary at the end.

  Implementation-discovered:
  - Strictly sequential: one runtime, one benchmark, one trial at a time.
    The trials measure wall-clock performance; anything else running
    concurrently is contention in the numbers.
  - An interrupt mid-run still persists everything aggregated so far.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/registry, internal/probe, internal/stats,
    internal/output, internal/sysinfo

ERROR HANDLING:
  - Measurement failures are data in the report; the run continues.
  - Fatal: invalid config, zero available runtimes, zero resolvable
    benchmark scripts, and any persistence failure.

IMPLEMENTATION RULES:
  - Phases in order: detect, overhead, execute, compare, persist,
    summarize.
  - Capability checks are cached per (runtime, module); one probe per
    pair, not one per benchmark.

USAGE:
  engine.Run(cfg)

RELATED FILES:
  - internal/engine/executor.go

MAINTENANCE:
  - Update iteration logic if per-benchmark runtime allowlists are
    introduced.
*/

package engine

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/rtbench/rtbench/internal/config"
	"github.com/rtbench/rtbench/internal/invoke"
	"github.com/rtbench/rtbench/internal/model"
	"github.com/rtbench/rtbench/internal/output"
	"github.com/rtbench/rtbench/internal/probe"
	"github.com/rtbench/rtbench/internal/registry"
	"github.com/rtbench/rtbench/internal/stats"
	"github.com/rtbench/rtbench/internal/sysinfo"
)

// Run executes the full benchmark suite.
func Run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Interrupt terminates the in-flight child (via context cancellation
	// inside the invoker) and falls through to persistence.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := invoke.Process{}

	// 1. Discovery Phase
	output.Logger.Info("Detecting runtimes", "candidates", cfg.Runtimes)
	descs := registry.Detect(ctx, runner, cfg.Runtimes, cfg.ProbeTimeout)

	var available []model.RuntimeDescriptor
	for _, d := range descs {
		if d.Available {
			output.Logger.Info("Runtime available", "runtime", d.Name, "version", d.Version)
			available = append(available, d)
		} else {
			output.Logger.Warn("Runtime not available, excluding from run", "runtime", d.Name)
		}
	}
	if len(available) == 0 {
		return fmt.Errorf("no available runtimes among %v", cfg.Runtimes)
	}

	benchmarks := resolveBenchmarks(cfg.Benchmarks)
	if len(benchmarks) == 0 {
		return fmt.Errorf("no benchmark scripts found")
	}

	report := &model.RunReport{
		RunID:     uuid.NewString(),
		Timestamp: time.Now(),
		Config: model.RunConfig{
			Runtimes:       runtimeNames(available),
			Benchmarks:     benchmarkNames(benchmarks),
			Trials:         cfg.Trials,
			Warmup:         cfg.Warmup,
			TimeoutSeconds: cfg.TrialTimeout.Seconds(),
		},
		Host:     sysinfo.Collect(),
		Runtimes: descs,
	}

	// Output files are opened before measuring so a persistence problem
	// surfaces before hours of trials, not after.
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}
	csvPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("trials_%s.csv", report.Timestamp.Format("20060102_150405")))
	csvWriter, err := output.NewCSVWriter(csvPath)
	if err != nil {
		return fmt.Errorf("failed to init CSV writer at %s: %w", csvPath, err)
	}
	defer csvWriter.Close()

	// 2. Overhead Phase
	for _, desc := range available {
		if ctx.Err() != nil {
			break
		}
		output.Logger.Info("Measuring runtime overhead", "runtime", desc.Name)
		report.Probes = append(report.Probes, probe.MeasureOverhead(ctx, runner, desc)...)
	}

	// 3. Execution Phase
	canImport := newCapabilityCache(runner)
	for _, bench := range benchmarks {
		if ctx.Err() != nil {
			break
		}
		output.Logger.Info("Benchmark starting", "benchmark", bench.Name)

		for _, desc := range available {
			if ctx.Err() != nil {
				break
			}

			if bench.Requires != "" && !canImport.check(ctx, desc, bench.Requires) {
				output.Logger.Warn("Skipping benchmark for runtime (missing capability)",
					"benchmark", bench.Name, "runtime", desc.Name, "requires", bench.Requires)
				report.Results = append(report.Results,
					stats.Skipped(bench.Name, desc.Name, "cannot import "+bench.Requires, cfg.Trials))
				continue
			}

			trials, err := RunTrials(ctx, runner, desc, bench, cfg.Warmup, cfg.Trials, cfg.TrialTimeout)
			if err != nil {
				// Unknown runtime cannot happen for detected descriptors;
				// record it as a failed pair rather than aborting the run.
				output.Logger.Error("Trial execution failed", "benchmark", bench.Name, "runtime", desc.Name, "error", err)
				report.Results = append(report.Results, stats.Aggregate(bench.Name, desc.Name, nil, cfg.Trials))
				continue
			}
			for _, t := range trials {
				if err := csvWriter.Write(t); err != nil {
					output.Logger.Error("Failed to write trial to CSV", "error", err)
				}
			}

			res := stats.Aggregate(bench.Name, desc.Name, trials, cfg.Trials)
			report.Results = append(report.Results, res)

			if res.Status == model.StatusSuccess {
				output.Logger.Info("Benchmark result",
					"benchmark", bench.Name, "runtime", desc.Name,
					"mean", fmt.Sprintf("%.4fs", res.Stats.Mean),
					"stddev", fmt.Sprintf("%.4fs", res.Stats.StdDev),
					"trials_used", fmt.Sprintf("%d/%d", res.TrialsUsed, res.TrialsRequested))
			} else {
				output.Logger.Warn("Benchmark produced no successful trials",
					"benchmark", bench.Name, "runtime", desc.Name, "status", res.Status)
			}
		}
	}

	// 4. Comparison Phase. Rows are built for every benchmark that has
	// results, even fully failed ones (empty row = uncomparable).
	for _, bench := range benchmarks {
		var forBench []model.BenchmarkResult
		for _, r := range report.Results {
			if r.Benchmark == bench.Name {
				forBench = append(forBench, r)
			}
		}
		if len(forBench) == 0 {
			continue
		}
		report.Comparisons = append(report.Comparisons, stats.Compare(bench.Name, forBench))
	}

	if ctx.Err() != nil {
		output.Logger.Warn("Run interrupted, persisting partial results")
		report.Interrupted = true
	}

	// 5. Persist. The only failure that discards work, so it is the only
	// measurement-adjacent failure that is fatal.
	path, err := output.WriteReport(cfg.OutputDir, cfg.OutputFile, report)
	if err != nil {
		return err
	}
	output.Logger.Info("Results saved", "path", path, "trial_log", csvPath)

	if err := output.WriteSummary(os.Stdout, report); err != nil {
		return err
	}

	if report.Interrupted {
		return fmt.Errorf("run interrupted")
	}
	return nil
}

// resolveBenchmarks keeps only benchmarks whose script exists, with the
// path made absolute so trials are independent of the working directory.
func resolveBenchmarks(benchmarks []config.Benchmark) []config.Benchmark {
	var resolved []config.Benchmark
	for _, b := range benchmarks {
		abs, err := filepath.Abs(b.Script)
		if err == nil {
			b.Script = abs
		}
		if _, err := os.Stat(b.Script); err != nil {
			output.Logger.Warn("Benchmark script not found, dropping", "benchmark", b.Name, "script", b.Script)
			continue
		}
		resolved = append(resolved, b)
	}
	return resolved
}

func runtimeNames(descs []model.RuntimeDescriptor) []string {
	names := make([]string, len(descs))
	for i, d := range descs {
		names[i] = d.Name
	}
	return names
}

func benchmarkNames(benchmarks []config.Benchmark) []string {
	names := make([]string, len(benchmarks))
	for i, b := range benchmarks {
		names[i] = b.Name
	}
	return names
}

// capabilityCache memoizes probe.CanImport per (runtime, module).
type capabilityCache struct {
	runner invoke.Runner
	known  map[string]bool
}

func newCapabilityCache(runner invoke.Runner) *capabilityCache {
	return &capabilityCache{runner: runner, known: make(map[string]bool)}
}

func (c *capabilityCache) check(ctx context.Context, desc model.RuntimeDescriptor, module string) bool {
	key := desc.Name + "\x00" + module
	if ok, seen := c.known[key]; seen {
		return ok
	}
	ok := probe.CanImport(ctx, c.runner, desc, module)
	c.known[key] = ok
	return ok
}
