/*
PURPOSE:
  Single process-execution capability for Runtime Bench: run an argv as a
  child process with a wall-clock timeout, return exit status, captured
  output, and elapsed time. The registry, the overhead profiler, and the
  trial executor all invoke children exclusively through this package, so
  none of them needs to know how a runtime is located or killed.

REQUIREMENTS:
  User-specified:
  - Wall-clock timing from process start to confirmed process exit.
  - Timed-out children must be terminated and awaited, never abandoned.

  Implementation-discovered:
  - exec.CommandContext kills on deadline and Run() still waits for the
    child to be reaped, which gives the wait-not-poll guarantee for free.
  - "executable not found" must be reported as data (exit code -1 with
    the error text), not as a Go error, so detection can treat absence
    as a normal outcome.

ARCHITECTURE INTEGRATION:
  - Used by: internal/registry, internal/probe, internal/engine
  - Dependencies: os/exec, context

ERROR HANDLING:
  - No error returns. Every failure mode is encoded in Result.

IMPLEMENTATION RULES:
  - Start the clock immediately before Run and stop it immediately after
    Run returns (Run includes the wait).
  - Distinguish timeout from failure via the deadline on the context,
    not by parsing error strings.

USAGE:
  res := invoke.Process{}.Run(ctx, []string{"python3", "bench.py"}, 600*time.Second)

RELATED FILES:
  - internal/engine/executor.go

MAINTENANCE:
  - Update if per-child environment or working-directory control is needed.
*/

package invoke

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// Result is the outcome of one child-process invocation.
type Result struct {
	Seconds  float64 // wall-clock, start to confirmed exit
	ExitCode int     // -1 when the process did not run or was killed
	Stdout   string
	Stderr   string
	TimedOut bool
}

// OK reports whether the invocation ran to completion with exit code 0.
func (r Result) OK() bool {
	return !r.TimedOut && r.ExitCode == 0
}

// Runner executes an argv with a timeout. The interface exists so tests
// and higher layers can substitute a canned executor.
type Runner interface {
	Run(ctx context.Context, argv []string, timeout time.Duration) Result
}

// Process runs real child processes. The zero value is ready to use.
type Process struct{}

// Run executes argv, blocking until the child has exited or the timeout
// killed it. The returned elapsed time covers the full span including the
// wait for termination.
func (Process) Run(ctx context.Context, argv []string, timeout time.Duration) Result {
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(tctx, argv[0], argv[1:]...)

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	res := Result{
		Seconds: elapsed.Seconds(),
		Stdout:  outBuf.String(),
		Stderr:  errBuf.String(),
	}

	if tctx.Err() == context.DeadlineExceeded {
		res.TimedOut = true
		res.ExitCode = -1
		return res
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			// Launch failure (not found, permission). The child never ran.
			res.ExitCode = -1
			if res.Stderr == "" {
				res.Stderr = err.Error()
			}
		}
	}

	return res
}
