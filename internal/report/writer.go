package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/allurefw/report/internal/model"
)

// SummaryFileName is the summary file written next to the report artifact.
const SummaryFileName = "summary.md"

// Writer defines the interface for build summary output.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// Write outputs the build summary to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(data *model.ReportData) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write summaries, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the summary to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(data *model.ReportData) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(data)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for summary writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// WriteSummaryFile writes the markdown summary into the report output
// directory as summary.md.
func WriteSummaryFile(outputDir string, data *model.ReportData) error {
	path := filepath.Join(outputDir, SummaryFileName)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}

	if _, err := NewMarkdownWriter(f).Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write summary file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close summary file: %w", err)
	}
	return nil
}
