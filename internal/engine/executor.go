/*
PURPOSE:
  Runs the warmup and timed trials for one (benchmark, runtime) pair.
  This is the measurement core: everything it records feeds aggregation
  unchanged.

REQUIREMENTS:
  User-specified:
  - Warmups run first and are discarded from statistics; their progress
    is logged.
  - Trials run strictly sequentially. Concurrency would contend for CPU
    cache and I/O and corrupt every measurement.
  - A timed-out trial is recorded with the configured timeout as its
    elapsed value and ends the pair: repeat timeouts are guaranteed, so
    running them only wastes the budget.
  - A failed (non-zero exit) trial is recorded and the remaining trials
    still run; failures can be transient.

  Implementation-discovered:
  - A warmup that times out skips the remaining warmups. The timed
    trials still run and make the viability call; skipping the warmups
    just avoids burning the timeout budget on runs that are discarded
    anyway.
  - Interrupt (canceled context) stops between trials without recording
    a synthetic failure for the killed child.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Uses: internal/invoke, internal/registry, internal/model

ERROR HANDLING:
  - Trial-level failures are data (TrialRecord.Status), never errors.
  - The only error return is an unbuildable argv (unknown runtime),
    which cannot happen for descriptors the registry produced.

IMPLEMENTATION RULES:
  - Stderr capture is truncated; diagnostics, not archives.

USAGE:
  trials, err := engine.RunTrials(ctx, runner, desc, bench, cfg.Warmup, cfg.Trials, cfg.TrialTimeout)

RELATED FILES:
  - internal/invoke/invoke.go
  - internal/stats/stats.go

MAINTENANCE:
  - Update if per-trial environment control is added.
*/

package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rtbench/rtbench/internal/config"
	"github.com/rtbench/rtbench/internal/invoke"
	"github.com/rtbench/rtbench/internal/model"
	"github.com/rtbench/rtbench/internal/output"
	"github.com/rtbench/rtbench/internal/registry"
)

// maxStderr bounds the diagnostic text kept per trial.
const maxStderr = 2000

// RunTrials executes warmup runs followed by timed trials of one
// benchmark under one runtime. The returned slice may be shorter than
// the requested trial count when a timeout or an interrupt cut it off.
func RunTrials(
	ctx context.Context,
	runner invoke.Runner,
	desc model.RuntimeDescriptor,
	bench config.Benchmark,
	warmup, trials int,
	timeout time.Duration,
) ([]model.TrialRecord, error) {
	argv, err := registry.ScriptArgv(desc, bench.Script)
	if err != nil {
		return nil, err
	}

	for i := 1; i <= warmup; i++ {
		if ctx.Err() != nil {
			return nil, nil
		}
		res := runner.Run(ctx, argv, timeout)
		if res.TimedOut {
			output.Logger.Warn("warmup timed out, skipping remaining warmups",
				"benchmark", bench.Name, "runtime", desc.Name, "warmup", i)
			break
		}
		output.Logger.Info("warmup complete",
			"benchmark", bench.Name, "runtime", desc.Name,
			"warmup", fmt.Sprintf("%d/%d", i, warmup))
	}

	var records []model.TrialRecord
	for i := 1; i <= trials; i++ {
		if ctx.Err() != nil {
			break
		}

		res := runner.Run(ctx, argv, timeout)
		if ctx.Err() != nil {
			// The child was killed by the interrupt, not by the workload.
			break
		}

		rec := model.TrialRecord{
			Benchmark: bench.Name,
			Runtime:   desc.Name,
			Index:     i,
			Seconds:   res.Seconds,
			ExitCode:  res.ExitCode,
		}

		switch {
		case res.TimedOut:
			rec.Status = model.StatusTimeout
			rec.Seconds = timeout.Seconds()
			records = append(records, rec)
			output.Logger.Warn("trial timed out, aborting pair",
				"benchmark", bench.Name, "runtime", desc.Name,
				"trial", fmt.Sprintf("%d/%d", i, trials),
				"timeout", timeout)
			return records, nil
		case res.ExitCode != 0:
			rec.Status = model.StatusFailed
			rec.Stderr = truncate(res.Stderr, maxStderr)
			records = append(records, rec)
			output.Logger.Warn("trial failed",
				"benchmark", bench.Name, "runtime", desc.Name,
				"trial", fmt.Sprintf("%d/%d", i, trials),
				"exit_code", res.ExitCode)
		default:
			rec.Status = model.StatusSuccess
			records = append(records, rec)
			output.Logger.Info("trial complete",
				"benchmark", bench.Name, "runtime", desc.Name,
				"trial", fmt.Sprintf("%d/%d", i, trials),
				"seconds", fmt.Sprintf("%.4f", rec.Seconds))
		}
	}

	return records, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + fmt.Sprintf("\n... [truncated, %d bytes total]", len(s))
}
