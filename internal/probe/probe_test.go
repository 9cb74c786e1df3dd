package probe

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtbench/rtbench/internal/invoke"
	"github.com/rtbench/rtbench/internal/model"
)

var pyDesc = model.RuntimeDescriptor{Name: "python3", Executable: "/usr/bin/python3", Available: true}

// exprRunner dispatches on the -c expression so one fake can serve the
// whole probe sequence.
type exprRunner struct {
	hasNumpy    bool
	failModules map[string]bool
}

func (r exprRunner) Run(ctx context.Context, argv []string, timeout time.Duration) invoke.Result {
	expr := argv[len(argv)-1]

	switch {
	case strings.Contains(expr, "sys.exit(0)"):
		return invoke.Result{Seconds: 0.02}
	case expr == "import numpy":
		if r.hasNumpy {
			return invoke.Result{Seconds: 0.3}
		}
		return invoke.Result{Seconds: 0.1, ExitCode: 1, Stderr: "ModuleNotFoundError: No module named 'numpy'"}
	case strings.Contains(expr, "perf_counter"):
		for mod := range r.failModules {
			if strings.Contains(expr, "import "+mod+";") {
				return invoke.Result{Seconds: 0.1, ExitCode: 1}
			}
		}
		return invoke.Result{Seconds: 0.05, Stdout: "0.001234\n"}
	default:
		return invoke.Result{ExitCode: 1}
	}
}

func probeNames(probes []model.ProbeResult) []string {
	names := make([]string, len(probes))
	for i, p := range probes {
		names[i] = p.Probe
	}
	return names
}

func TestMeasureOverheadBaselineOnly(t *testing.T) {
	probes := MeasureOverhead(context.Background(), exprRunner{hasNumpy: false}, pyDesc)

	assert.Equal(t, []string{
		"startup", "import sys", "import os", "import time", "import json",
	}, probeNames(probes))

	for _, p := range probes {
		assert.True(t, p.OK, p.Probe)
		assert.GreaterOrEqual(t, p.Seconds, 0.0, p.Probe)
		assert.Equal(t, "python3", p.Runtime)
	}
}

func TestMeasureOverheadWithNumpy(t *testing.T) {
	probes := MeasureOverhead(context.Background(), exprRunner{hasNumpy: true}, pyDesc)

	assert.Equal(t, []string{
		"startup", "import sys", "import os", "import time", "import json",
		"import numpy", "import scipy",
	}, probeNames(probes))
}

func TestMeasureOverheadFailedProbeDoesNotBlockOthers(t *testing.T) {
	runner := exprRunner{hasNumpy: true, failModules: map[string]bool{"numpy": true}}
	probes := MeasureOverhead(context.Background(), runner, pyDesc)

	byName := make(map[string]model.ProbeResult)
	for _, p := range probes {
		byName[p.Probe] = p
	}

	numpy := byName["import numpy"]
	assert.False(t, numpy.OK)
	assert.Equal(t, -1.0, numpy.Seconds)

	// scipy comes after numpy in the fixed order and still ran.
	scipy, present := byName["import scipy"]
	require.True(t, present)
	assert.True(t, scipy.OK)
}

func TestMeasureImportParsesChildTiming(t *testing.T) {
	probes := MeasureOverhead(context.Background(), exprRunner{}, pyDesc)

	byName := make(map[string]model.ProbeResult)
	for _, p := range probes {
		byName[p.Probe] = p
	}
	osProbe := byName["import os"]
	require.True(t, osProbe.OK)
	// The child-reported duration, not the fake's process wall time.
	assert.InDelta(t, 0.001234, osProbe.Seconds, 1e-9)
}

func TestCanImport(t *testing.T) {
	assert.True(t, CanImport(context.Background(), exprRunner{hasNumpy: true}, pyDesc, "numpy"))
	assert.False(t, CanImport(context.Background(), exprRunner{hasNumpy: false}, pyDesc, "numpy"))
}

func TestMeasureOverheadUnknownRuntime(t *testing.T) {
	desc := model.RuntimeDescriptor{Name: "node", Available: true}
	probes := MeasureOverhead(context.Background(), exprRunner{}, desc)

	// Argv cannot be built; every probe is recorded as failed.
	require.NotEmpty(t, probes)
	for _, p := range probes {
		assert.False(t, p.OK)
		assert.Equal(t, -1.0, p.Seconds)
	}
}
