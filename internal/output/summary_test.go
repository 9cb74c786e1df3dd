package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtbench/rtbench/internal/model"
)

func summaryReport() *model.RunReport {
	return &model.RunReport{
		Results: []model.BenchmarkResult{
			{
				Benchmark: "pure_python", Runtime: "python3", Status: model.StatusSuccess,
				Stats: &model.Stats{Mean: 6.41, StdDev: 0.13},
			},
			{
				Benchmark: "pure_python", Runtime: "pypy", Status: model.StatusSuccess,
				Stats: &model.Stats{Mean: 2.68, StdDev: 0.05},
			},
			{
				Benchmark: "pure_python", Runtime: "uv", Status: model.StatusTimeout,
			},
		},
		Comparisons: []model.ComparisonRow{
			{
				Benchmark: "pure_python",
				Baseline:  "pypy",
				Speedups:  map[string]float64{"pypy": 1.0, "python3": 0.418},
			},
		},
	}
}

func TestWriteSummaryFastestFirst(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, summaryReport()))
	out := buf.String()

	assert.Contains(t, out, "pure_python:")
	assert.Contains(t, out, "(baseline)")
	assert.Contains(t, out, "(0.42x)")
	assert.Contains(t, out, "TIMEOUT")

	// pypy (fastest) listed before python3, which is before the
	// timed-out uv entry.
	pypyAt := strings.Index(out, "pypy")
	python3At := strings.Index(out, "python3")
	uvAt := strings.Index(out, "uv ")
	assert.Less(t, pypyAt, python3At)
	assert.Less(t, python3At, uvAt)
}

func TestWriteSummaryUncomparableBenchmark(t *testing.T) {
	report := &model.RunReport{
		Results: []model.BenchmarkResult{
			{Benchmark: "mixed_io", Runtime: "python3", Status: model.StatusFailed},
		},
		Comparisons: []model.ComparisonRow{
			{Benchmark: "mixed_io", Speedups: map[string]float64{}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, report))

	assert.Contains(t, buf.String(), "FAILED")
	assert.NotContains(t, buf.String(), "baseline")
}
