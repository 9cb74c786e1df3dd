package registry

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtbench/rtbench/internal/invoke"
	"github.com/rtbench/rtbench/internal/model"
)

// cannedRunner answers every invocation with the same result.
type cannedRunner struct {
	result invoke.Result
}

func (c cannedRunner) Run(ctx context.Context, argv []string, timeout time.Duration) invoke.Result {
	return c.result
}

func TestDetectUnknownCandidate(t *testing.T) {
	descs := Detect(context.Background(), cannedRunner{}, []string{"ruby"}, time.Second)

	require.Len(t, descs, 1)
	assert.Equal(t, "ruby", descs[0].Name)
	assert.False(t, descs[0].Available)
}

func TestDetectPreservesOrder(t *testing.T) {
	names := []string{"uv", "python3", "pypy"}
	descs := Detect(context.Background(), cannedRunner{}, names, time.Second)

	require.Len(t, descs, 3)
	for i, name := range names {
		assert.Equal(t, name, descs[i].Name)
	}
}

func TestDetectVersionOnStdout(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not on PATH")
	}

	runner := cannedRunner{result: invoke.Result{Stdout: "Python 3.12.0\n"}}
	descs := Detect(context.Background(), runner, []string{"python3"}, time.Second)

	require.Len(t, descs, 1)
	assert.True(t, descs[0].Available)
	assert.Equal(t, "Python 3.12.0", descs[0].Version)
}

func TestDetectVersionOnStderr(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not on PATH")
	}

	// Older CPython prints --version to stderr.
	runner := cannedRunner{result: invoke.Result{Stderr: "Python 2.7.18\n"}}
	descs := Detect(context.Background(), runner, []string{"python3"}, time.Second)

	require.Len(t, descs, 1)
	assert.True(t, descs[0].Available)
	assert.Equal(t, "Python 2.7.18", descs[0].Version)
}

func TestDetectVersionQueryFailure(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not on PATH")
	}

	runner := cannedRunner{result: invoke.Result{ExitCode: 1}}
	descs := Detect(context.Background(), runner, []string{"python3"}, time.Second)

	require.Len(t, descs, 1)
	assert.False(t, descs[0].Available)
}

func TestScriptArgv(t *testing.T) {
	py := model.RuntimeDescriptor{Name: "python3", Executable: "/usr/bin/python3"}
	argv, err := ScriptArgv(py, "/abs/bench.py")
	require.NoError(t, err)
	assert.Equal(t, []string{"/usr/bin/python3", "/abs/bench.py"}, argv)

	uv := model.RuntimeDescriptor{Name: "uv", Executable: "/usr/local/bin/uv"}
	argv, err = ScriptArgv(uv, "/abs/bench.py")
	require.NoError(t, err)
	assert.Equal(t, []string{"/usr/local/bin/uv", "run", "--no-project", "python", "/abs/bench.py"}, argv)

	_, err = ScriptArgv(model.RuntimeDescriptor{Name: "ruby"}, "x.rb")
	assert.Error(t, err)
}

func TestExprArgv(t *testing.T) {
	pypy := model.RuntimeDescriptor{Name: "pypy", Executable: "/usr/bin/pypy3"}
	argv, err := ExprArgv(pypy, "import sys; sys.exit(0)")
	require.NoError(t, err)
	assert.Equal(t, []string{"/usr/bin/pypy3", "-c", "import sys; sys.exit(0)"}, argv)

	uv := model.RuntimeDescriptor{Name: "uv", Executable: "uv"}
	argv, err = ExprArgv(uv, "import os")
	require.NoError(t, err)
	assert.Equal(t, []string{"uv", "run", "--no-project", "python", "-c", "import os"}, argv)

	_, err = ExprArgv(model.RuntimeDescriptor{Name: "node"}, "1+1")
	assert.Error(t, err)
}

func TestKnownRuntimes(t *testing.T) {
	assert.Equal(t, []string{"python3", "pypy", "uv"}, KnownRuntimes())
}
