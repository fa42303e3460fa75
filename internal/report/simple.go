package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/reportindex/internal/model"
)

// SimpleWriter outputs a human-readable listing for terminal display.
// It is used by the list command to preview the order without writing a page.
type SimpleWriter struct {
	baseWriter

	// showURL adds the link of each report below its name.
	showURL bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowURL configures the writer to print each report's link.
func WithShowURL(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showURL = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the index as an aligned text listing.
func (w *SimpleWriter) Write(index *model.Index) (int, error) {
	var sb strings.Builder

	sb.WriteString(strings.ToUpper(index.Title))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")

	if index.Len() == 0 {
		sb.WriteString("No reports found.\n")
		return io.WriteString(w.output, sb.String())
	}

	width := len(fmt.Sprint(index.Len()))
	for i, e := range index.Entries {
		date := "undated"
		if e.Dated {
			date = e.Timestamp.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(&sb, "%*d. %-16s  %s", width, i+1, date, e.Name)
		if index.IsLatest(i) {
			sb.WriteString("  " + LatestMarker)
		}
		sb.WriteString("\n")
		if w.showURL {
			fmt.Fprintf(&sb, "%*s   %s\n", width, "", e.URL)
		}
	}

	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "TOTAL: %d\n", index.Len())

	return io.WriteString(w.output, sb.String())
}
