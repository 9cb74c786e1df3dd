/*
PURPOSE:
  Measures fixed per-runtime overhead: interpreter startup cost and the
  import cost of a fixed list of modules. Also answers capability
  questions ("can this runtime import numpy?") for benchmark gating.

REQUIREMENTS:
  User-specified:
  - Probe order is fixed by configuration, never data-dependent.
  - A failed probe is recorded and the remaining probes still run.

  Implementation-discovered:
  - Import cost must be timed inside the child (perf_counter around the
    import, printed to stdout); timing the whole process would fold
    interpreter startup into every import number.
  - Startup cost is the opposite: it IS the whole process, so wall-clock
    around the child is correct, averaged over several reps to smooth
    scheduler noise.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Uses: internal/invoke, internal/registry, internal/model

ERROR HANDLING:
  - No propagating errors. Failed probes carry Seconds=-1 and OK=false.

IMPLEMENTATION RULES:
  - Baseline modules always probed: sys, os, time, json.
  - numpy and scipy probed only when the numpy capability check passes,
    so a missing optional library costs one short probe, not two long
    timeouts.

USAGE:
  probes := probe.MeasureOverhead(ctx, invoke.Process{}, desc)

RELATED FILES:
  - internal/registry/registry.go

MAINTENANCE:
  - Keep probe timeouts short; these are startup measurements, not
    workloads.
*/

package probe

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rtbench/rtbench/internal/invoke"
	"github.com/rtbench/rtbench/internal/model"
	"github.com/rtbench/rtbench/internal/output"
	"github.com/rtbench/rtbench/internal/registry"
)

const (
	startupReps    = 5
	startupTimeout = 30 * time.Second
	importTimeout  = 60 * time.Second
	// capabilityTimeout bounds the "is numpy importable at all" check.
	capabilityTimeout = 10 * time.Second
)

// baselineModules are always probed, in this order.
var baselineModules = []string{"sys", "os", "time", "json"}

// optionalModules are probed only when CanImport reports numpy available.
var optionalModules = []string{"numpy", "scipy"}

// MeasureOverhead runs the full fixed probe sequence for one runtime:
// a startup probe followed by per-module import probes.
func MeasureOverhead(ctx context.Context, runner invoke.Runner, desc model.RuntimeDescriptor) []model.ProbeResult {
	results := []model.ProbeResult{measureStartup(ctx, runner, desc)}

	modules := baselineModules
	if CanImport(ctx, runner, desc, "numpy") {
		modules = append(append([]string{}, baselineModules...), optionalModules...)
	}

	for _, mod := range modules {
		results = append(results, measureImport(ctx, runner, desc, mod))
	}
	return results
}

// CanImport reports whether the runtime can import the given module.
func CanImport(ctx context.Context, runner invoke.Runner, desc model.RuntimeDescriptor, module string) bool {
	argv, err := registry.ExprArgv(desc, "import "+module)
	if err != nil {
		return false
	}
	return runner.Run(ctx, argv, capabilityTimeout).OK()
}

// measureStartup times startupReps minimal child processes and records
// their average. Failed reps are dropped; all reps failing yields a
// failed probe.
func measureStartup(ctx context.Context, runner invoke.Runner, desc model.RuntimeDescriptor) model.ProbeResult {
	pr := model.ProbeResult{Runtime: desc.Name, Probe: "startup", Seconds: -1}

	argv, err := registry.ExprArgv(desc, "import sys; sys.exit(0)")
	if err != nil {
		return pr
	}

	var times []float64
	for i := 0; i < startupReps; i++ {
		res := runner.Run(ctx, argv, startupTimeout)
		if res.OK() {
			times = append(times, res.Seconds)
		}
	}
	if len(times) == 0 {
		output.Logger.Warn("startup probe failed", "runtime", desc.Name)
		return pr
	}

	var sum, min, max float64
	min = times[0]
	max = times[0]
	for _, t := range times {
		sum += t
		if t < min {
			min = t
		}
		if t > max {
			max = t
		}
	}
	pr.Seconds = sum / float64(len(times))
	pr.OK = true
	output.Logger.Info("startup overhead",
		"runtime", desc.Name,
		"avg", fmt.Sprintf("%.6fs", pr.Seconds),
		"min", fmt.Sprintf("%.6fs", min),
		"max", fmt.Sprintf("%.6fs", max),
	)
	return pr
}

// measureImport times one module import inside the child so interpreter
// startup is excluded from the number.
func measureImport(ctx context.Context, runner invoke.Runner, desc model.RuntimeDescriptor, module string) model.ProbeResult {
	pr := model.ProbeResult{Runtime: desc.Name, Probe: "import " + module, Seconds: -1}

	expr := fmt.Sprintf(
		"import time; start=time.perf_counter(); import %s; print(time.perf_counter()-start)",
		module,
	)
	argv, err := registry.ExprArgv(desc, expr)
	if err != nil {
		return pr
	}

	res := runner.Run(ctx, argv, importTimeout)
	if !res.OK() {
		output.Logger.Warn("import probe failed", "runtime", desc.Name, "module", module)
		return pr
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(res.Stdout), 64)
	if err != nil {
		output.Logger.Warn("import probe produced unparseable output",
			"runtime", desc.Name, "module", module, "output", res.Stdout)
		return pr
	}

	pr.Seconds = seconds
	pr.OK = true
	output.Logger.Info("import overhead",
		"runtime", desc.Name, "module", module, "seconds", fmt.Sprintf("%.6f", seconds))
	return pr
}
