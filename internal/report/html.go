package report

import (
	"bytes"
	_ "embed"
	"html/template"
	"io"

	"github.com/nao1215/reportindex/internal/model"
)

// LatestMarker is the label appended to the latest report's link.
const LatestMarker = "⬅️ Latest"

//go:embed templates/index.html.tmpl
var indexTemplateText string

// indexTemplate renders the index page.
// html/template escapes folder names and URLs for the context they appear in,
// so a name such as "<script>" is shown as text instead of becoming markup.
var indexTemplate = template.Must(
	template.New("index").
		Funcs(template.FuncMap{"latestMarker": func() string { return LatestMarker }}).
		Parse(indexTemplateText),
)

// HTMLWriter outputs the static index page.
// It is the default format and the one published next to the reports.
type HTMLWriter struct {
	baseWriter
}

// NewHTMLWriter creates an HTMLWriter that outputs to the given writer.
func NewHTMLWriter(output io.Writer) *HTMLWriter {
	return &HTMLWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write renders the index page.
// The page is rendered into memory first so that a template error never
// leaves a half-written document behind.
func (w *HTMLWriter) Write(index *model.Index) (int, error) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, index); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}
