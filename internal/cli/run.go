/*
PURPOSE:
  Defines the 'run' subcommand.
  Executes the full benchmark suite.

REQUIREMENTS:
  User-specified:
  - Run the benchmarks.
  - Specific flags for overrides (runtimes, benchmarks, trials, warmup,
    timeout, output).

  Implementation-discovered:
  - Need to load config first.
  - Apply flag overrides to config, then validate once.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Run()
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if config load fails or engine run fails.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load Config -> Override -> Engine.Run.

USAGE:
  rtbench run --runtimes python3,pypy --trials 5 --warmup 3

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rtbench/rtbench/internal/config"
	"github.com/rtbench/rtbench/internal/engine"
)

var (
	runtimesOverride   []string
	benchmarksOverride []string
	trialsOverride     int
	warmupOverride     int
	timeoutOverride    time.Duration
	outputDirOverride  string
	outputFileOverride string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark suite",
	Long: `Executes the full benchmark suite across every available runtime.
The process follows a strict protocol:
1. Detection: Resolves which candidate runtimes are installed.
2. Overhead: Measures startup and import cost per runtime.
3. Benchmarking: Runs warmups then timed trials for every benchmark on
   every runtime, strictly one child process at a time.

Results are saved as a JSON report (round-trip loadable) plus a per-trial
CSV audit file, and a comparison summary is printed, fastest first.`,
	Example: `  # Run with defaults (uses rtbench.yaml if present)
  rtbench run

  # Only CPython and PyPy, with more samples
  rtbench run --runtimes python3,pypy --trials 10 --warmup 5

  # One benchmark, short timeout, custom output directory
  rtbench run --benchmarks pure_python --timeout 60s -o ./results`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		// 2. Overrides
		if len(runtimesOverride) > 0 {
			cfg.Runtimes = runtimesOverride
		}
		if err := cfg.FilterBenchmarks(benchmarksOverride); err != nil {
			return err
		}
		if cmd.Flags().Changed("trials") {
			cfg.Trials = trialsOverride
		}
		if cmd.Flags().Changed("warmup") {
			cfg.Warmup = warmupOverride
		}
		if cmd.Flags().Changed("timeout") {
			cfg.TrialTimeout = timeoutOverride
		}
		if outputDirOverride != "" {
			cfg.OutputDir = outputDirOverride
		}
		if outputFileOverride != "" {
			cfg.OutputFile = outputFileOverride
		}

		// 3. Execution
		return engine.Run(cfg)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringSliceVar(&runtimesOverride, "runtimes", nil, "Comma-separated runtime allowlist (default: all detected)")
	runCmd.Flags().StringSliceVar(&benchmarksOverride, "benchmarks", nil, "Comma-separated benchmark allowlist (default: all configured)")
	runCmd.Flags().IntVar(&trialsOverride, "trials", 3, "Number of timed trials per benchmark (>= 1)")
	runCmd.Flags().IntVar(&warmupOverride, "warmup", 2, "Number of discarded warmup runs (>= 0)")
	runCmd.Flags().DurationVar(&timeoutOverride, "timeout", 600*time.Second, "Per-trial wall-clock timeout")
	runCmd.Flags().StringVarP(&outputDirOverride, "output-dir", "o", "", "Output directory for results (JSON/CSV)")
	runCmd.Flags().StringVar(&outputFileOverride, "output-file", "", "Results filename (default: timestamped)")
}
