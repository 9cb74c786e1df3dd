/*
PURPOSE:
  Detects and validates available runtime executables (CPython, PyPy, uv)
  and knows how each one is invoked to run a script or an inline
  expression.

REQUIREMENTS:
  User-specified:
  - Absence of a runtime is data, never an error: detection must not fail
    the run because one candidate is missing.
  - Version query uses a short timeout so a hung executable cannot stall
    detection.

  Implementation-discovered:
  - CPython and PyPy print their version on stdout or stderr depending on
    the build; accept either.
  - uv needs a second check (`uv run python --version`) because the uv
    binary existing does not mean it can provide a Python.
  - uv must run scripts with --no-project so it does not try to build the
    current directory as a package.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (list-runtimes), internal/engine (run)
  - Uses: internal/invoke, internal/model

ERROR HANDLING:
  - Detect never returns an error; unavailable candidates come back with
    Available=false.
  - ScriptArgv/ExprArgv return an error for unknown runtime names, which
    can only happen on a config typo.

IMPLEMENTATION RULES:
  - Preserve the caller's candidate order; it is the baseline tiebreak
    order downstream.

USAGE:
  descs := registry.Detect(ctx, invoke.Process{}, []string{"python3", "pypy"}, 5*time.Second)

RELATED FILES:
  - internal/engine/runner.go

MAINTENANCE:
  - Add new candidates to the candidates table and the argv builders.
*/

package registry

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rtbench/rtbench/internal/invoke"
	"github.com/rtbench/rtbench/internal/model"
)

// candidates maps a runtime identifier to the executable it is probed
// through. Identifiers are what users pass on the command line.
var candidates = map[string]string{
	"python3": "python3",
	"pypy":    "pypy3",
	"uv":      "uv",
}

// KnownRuntimes returns the identifiers the registry can detect, in a
// fixed order.
func KnownRuntimes() []string {
	return []string{"python3", "pypy", "uv"}
}

// Detect resolves each candidate name into a RuntimeDescriptor. The
// result preserves the input order. Candidates that are not installed,
// exit non-zero, or hang past probeTimeout are marked unavailable.
func Detect(ctx context.Context, runner invoke.Runner, names []string, probeTimeout time.Duration) []model.RuntimeDescriptor {
	descs := make([]model.RuntimeDescriptor, 0, len(names))
	for _, name := range names {
		exe, ok := candidates[name]
		if !ok {
			descs = append(descs, model.RuntimeDescriptor{Name: name, Executable: name})
			continue
		}

		desc := model.RuntimeDescriptor{Name: name, Executable: exe}
		if path, err := exec.LookPath(exe); err == nil {
			desc.Executable = path
		} else {
			descs = append(descs, desc)
			continue
		}

		if name == "uv" {
			detectUV(ctx, runner, &desc, probeTimeout)
		} else {
			if v := queryVersion(ctx, runner, []string{desc.Executable, "--version"}, probeTimeout); v != "" {
				desc.Version = v
				desc.Available = true
			}
		}
		descs = append(descs, desc)
	}
	return descs
}

// queryVersion runs a version-query argv and returns the trimmed version
// string, or "" if the query failed. Version output may land on stdout
// or stderr.
func queryVersion(ctx context.Context, runner invoke.Runner, argv []string, timeout time.Duration) string {
	res := runner.Run(ctx, argv, timeout)
	if !res.OK() {
		return ""
	}
	out := res.Stdout
	if strings.TrimSpace(out) == "" {
		out = res.Stderr
	}
	return strings.TrimSpace(out)
}

// detectUV marks uv available only if it can actually provide a Python.
// The uv version string is composed with the managed Python's version so
// the report says which interpreter uv ran.
func detectUV(ctx context.Context, runner invoke.Runner, desc *model.RuntimeDescriptor, timeout time.Duration) {
	uvVersion := queryVersion(ctx, runner, []string{desc.Executable, "--version"}, timeout)
	if uvVersion == "" {
		return
	}

	// uv may need to resolve a Python on first use; give it double time.
	pyVersion := queryVersion(ctx, runner, []string{desc.Executable, "run", "python", "--version"}, 2*timeout)
	if pyVersion == "" {
		desc.Version = uvVersion
		return
	}

	desc.Version = fmt.Sprintf("%s (Python: %s)", uvVersion, pyVersion)
	desc.Available = true
}

// ScriptArgv returns the argv that runs a script file under a runtime.
func ScriptArgv(desc model.RuntimeDescriptor, scriptPath string) ([]string, error) {
	switch desc.Name {
	case "uv":
		return []string{desc.Executable, "run", "--no-project", "python", scriptPath}, nil
	case "python3", "pypy":
		return []string{desc.Executable, scriptPath}, nil
	default:
		return nil, fmt.Errorf("unknown runtime %q", desc.Name)
	}
}

// ExprArgv returns the argv that evaluates an inline expression (-c)
// under a runtime. Used by the overhead profiler.
func ExprArgv(desc model.RuntimeDescriptor, expr string) ([]string, error) {
	switch desc.Name {
	case "uv":
		return []string{desc.Executable, "run", "--no-project", "python", "-c", expr}, nil
	case "python3", "pypy":
		return []string{desc.Executable, "-c", expr}, nil
	default:
		return nil, fmt.Errorf("unknown runtime %q", desc.Name)
	}
}
