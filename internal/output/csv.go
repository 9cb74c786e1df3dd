/*
PURPOSE:
  Writes every timed trial to a CSV audit file as it completes.
  Ensures data integrity by flushing writes immediately.

REQUIREMENTS:
  User-specified:
  - Raw per-trial timings must survive a crash mid-run; the JSON report
    is only written at the end.

  Implementation-discovered:
  - Needs to create file if not exists, truncating any previous run.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.TrialRecord

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write (critical for crash resilience).
  - Use Mutex; the engine is sequential today but the writer should not
    depend on that.

USAGE:
  w, err := output.NewCSVWriter("trials.csv")
  w.Write(rec)
  w.Close()

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update Write() mapping when TrialRecord changes.
*/

package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/rtbench/rtbench/internal/model"
)

// CSVWriter handles writing trial records to a CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter creates a new CSVWriter.
// It overwrites the file if it exists.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)

	header := []string{
		"benchmark", "runtime", "trial", "seconds", "exit_code", "status", "stderr",
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()

	return &CSVWriter{
		file:   f,
		writer: w,
	}, nil
}

// Write writes a single trial record to the CSV file.
// It is thread-safe.
func (cw *CSVWriter) Write(r model.TrialRecord) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	record := []string{
		r.Benchmark,
		r.Runtime,
		strconv.Itoa(r.Index),
		fmt.Sprintf("%.4f", r.Seconds),
		strconv.Itoa(r.ExitCode),
		string(r.Status),
		r.Stderr,
	}

	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.file.Close()
}
