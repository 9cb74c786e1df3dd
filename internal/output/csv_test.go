package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtbench/rtbench/internal/model"
)

func TestCSVWriterWritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trials.csv")

	w, err := NewCSVWriter(path)
	require.NoError(t, err)

	require.NoError(t, w.Write(model.TrialRecord{
		Benchmark: "pure_python",
		Runtime:   "pypy",
		Index:     1,
		Seconds:   2.6789,
		Status:    model.StatusSuccess,
	}))
	require.NoError(t, w.Write(model.TrialRecord{
		Benchmark: "pure_python",
		Runtime:   "python3",
		Index:     2,
		Seconds:   600.0,
		ExitCode:  -1,
		Status:    model.StatusTimeout,
	}))
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "benchmark", rows[0][0])
	assert.Equal(t, []string{"pure_python", "pypy", "1", "2.6789", "0", "SUCCESS", ""}, rows[1])
	assert.Equal(t, []string{"pure_python", "python3", "2", "600.0000", "-1", "TIMEOUT", ""}, rows[2])
}

func TestCSVWriterFlushesPerWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trials.csv")

	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Write(model.TrialRecord{Benchmark: "b", Runtime: "r", Index: 1, Seconds: 0.1, Status: model.StatusSuccess}))

	// Written rows are visible before Close.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SUCCESS")
}
