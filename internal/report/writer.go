package report

import (
	"fmt"
	"io"

	"github.com/nao1215/reportindex/internal/model"
)

// Writer defines the interface for index output.
// Implementations write an ordered index in various formats.
type Writer interface {
	// Write outputs the index to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(index *model.Index) (int, error)
}

// Format identifies an output format.
type Format string

const (
	// FormatHTML is the static HTML index page.
	FormatHTML Format = "html"
	// FormatMarkdown is a GitHub Flavored Markdown table.
	FormatMarkdown Format = "markdown"
	// FormatJSON is a JSON document.
	FormatJSON Format = "json"
	// FormatText is plain text for terminals.
	FormatText Format = "text"
)

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// Extension returns the file extension used for the format, with the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatJSON:
		return ".json"
	case FormatText:
		return ".txt"
	default:
		return ".html"
	}
}

// NewWriter returns the Writer for format that outputs to output.
func NewWriter(format Format, output io.Writer) (Writer, error) {
	switch format {
	case FormatHTML, "":
		return NewHTMLWriter(output), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case FormatText:
		return NewSimpleWriter(output), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
