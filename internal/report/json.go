package report

import (
	"encoding/json"
	"io"

	"github.com/allurefw/report/internal/model"
)

// JSONWriter outputs the build summary in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because:
// 1. It's part of the standard library (no extra dependencies)
// 2. It's sufficient for our needs
// 3. It provides consistent behavior across Go versions
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// summary is the JSON shape of the build summary. The full result list
// is deliberately omitted; tools that need it read data/results.json
// from the artifact.
type summary struct {
	Name            string             `json:"name"`
	GeneratedAt     string             `json:"generated_at"`
	Statistic       model.Statistic    `json:"statistic"`
	Sources         []model.SourceInfo `json:"sources"`
	DegradedPlugins []string           `json:"degraded_plugins,omitempty"`
}

// Write outputs the build summary in JSON format.
func (w *JSONWriter) Write(data *model.ReportData) (int, error) {
	s := summary{
		Name:            data.Name,
		GeneratedAt:     data.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		Statistic:       data.Statistic,
		Sources:         data.Sources,
		DegradedPlugins: data.DegradedPlugins,
	}

	var raw []byte
	var err error
	if w.indent {
		raw, err = json.MarshalIndent(s, w.indentPrefix, w.indentString)
	} else {
		raw, err = json.Marshal(s)
	}
	if err != nil {
		return 0, err
	}

	// Trailing newline for better terminal output.
	raw = append(raw, '\n')
	return w.output.Write(raw)
}
