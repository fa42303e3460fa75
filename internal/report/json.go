package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/nao1215/reportindex/internal/model"
)

// JSONWriter outputs the index in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because the document is small and flat, and the standard
// encoder is what every consumer of the output already speaks.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string

	// version is written to the document when non-empty.
	version string
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
	return WithIndent("", "  ")
}

// WithVersion records the reportindex version in the document.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
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

// JSONIndex is the document written by JSONWriter.
type JSONIndex struct {
	// Version is the reportindex version that generated this document.
	Version string `json:"version,omitempty"`

	// Title is the index title.
	Title string `json:"title"`

	// GeneratedAt is when the index was built.
	GeneratedAt time.Time `json:"generated_at"`

	// Latest is the name of the latest report, empty when there are none.
	Latest string `json:"latest,omitempty"`

	// Reports are ordered newest first.
	Reports []model.ReportEntry `json:"reports"`
}

// NewJSONIndex converts an index into its JSON document form.
// An empty version falls back to the version recorded in the index.
func NewJSONIndex(index *model.Index, version string) *JSONIndex {
	if version == "" {
		version = index.Version
	}
	doc := &JSONIndex{
		Version:     version,
		Title:       index.Title,
		GeneratedAt: index.GeneratedAt,
		Reports:     index.Entries,
	}
	if latest, ok := index.Latest(); ok {
		doc.Latest = latest.Name
	}
	if doc.Reports == nil {
		doc.Reports = []model.ReportEntry{}
	}
	return doc
}

// Write outputs the index in JSON format.
func (w *JSONWriter) Write(index *model.Index) (int, error) {
	var data []byte
	var err error

	doc := NewJSONIndex(index, w.version)
	if w.indent {
		data, err = json.MarshalIndent(doc, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
