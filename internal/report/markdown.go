package report

import (
	"io"
	"net/url"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/reportindex/internal/model"
)

// MarkdownWriter outputs the index as a Markdown document.
// This format is meant for repositories that browse reports through a README.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Well-formed tables without manual padding
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the index in Markdown format.
func (w *MarkdownWriter) Write(index *model.Index) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1(index.Title)
	md.PlainText("")

	if index.Len() == 0 {
		md.Note("No reports found.")
		md.PlainText("")
	}

	rows := make([][]string, 0, index.Len())
	for i, e := range index.Entries {
		link := markdown.Link(escapeMarkdownText(e.Name), escapeMarkdownURL(e.URL))
		if index.IsLatest(i) {
			link = markdown.Bold(link) + " " + LatestMarker
		}
		rows = append(rows, []string{link})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Report"},
		Rows:   rows,
	})

	return len(md.String()), md.Build()
}

// markdownEscaper escapes the characters that would end a link label or a
// table cell early.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	`|`, `\|`,
	`[`, `\[`,
	`]`, `\]`,
	"`", "\\`",
	"\n", " ",
	"\r", " ",
)

// escapeMarkdownText escapes a folder name for use as link text in a table cell.
func escapeMarkdownText(s string) string {
	return markdownEscaper.Replace(s)
}

// escapeMarkdownURL percent-encodes a relative link so that spaces and
// parentheses in folder names do not terminate the link destination.
func escapeMarkdownURL(s string) string {
	u := &url.URL{Path: s}
	escaped := u.EscapedPath()
	escaped = strings.ReplaceAll(escaped, "(", "%28")
	escaped = strings.ReplaceAll(escaped, ")", "%29")
	return strings.ReplaceAll(escaped, "|", "%7C")
}
