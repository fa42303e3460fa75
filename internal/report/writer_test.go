package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/html"

	"github.com/nao1215/reportindex/internal/model"
)

// createTestIndex creates an index for the example folders
// report_Jan_5_2023_10_30, report_Dec_31_2023_23_59 and weird-name.
func createTestIndex() *model.Index {
	entries := model.BuildEntries(
		[]string{"report_Jan_5_2023_10_30", "report_Dec_31_2023_23_59", "weird-name"},
		model.DefaultURLPrefix,
		model.WithLocation(time.UTC),
	)
	return model.NewIndex("", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), entries)
}

// anchor is a parsed <a> element of the index page.
type anchor struct {
	href   string
	class  string
	hasCls bool
	text   string
}

// parseAnchors parses an HTML document and returns its anchors in order.
func parseAnchors(t *testing.T, doc []byte) []anchor {
	t.Helper()

	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		t.Fatalf("output is not valid HTML: %v", err)
	}

	var anchors []anchor
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			a := anchor{text: strings.TrimSpace(textContent(n))}
			for _, attr := range n.Attr {
				switch attr.Key {
				case "href":
					a.href = attr.Val
				case "class":
					a.class = attr.Val
					a.hasCls = true
				}
			}
			anchors = append(anchors, a)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return anchors
}

// findElements returns all elements named tag.
func findElements(n *html.Node, tag string) []*html.Node {
	var found []*html.Node
	if n.Type == html.ElementNode && n.Data == tag {
		found = append(found, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		found = append(found, findElements(c, tag)...)
	}
	return found
}

// textContent concatenates the text nodes below n.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}

// TestHTMLWriter tests the index page writer.
func TestHTMLWriter(t *testing.T) {
	t.Parallel()

	t.Run("links every report newest first", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewHTMLWriter(&buf).Write(createTestIndex()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		anchors := parseAnchors(t, buf.Bytes())
		expected := []string{
			"historical-reports/report_Dec_31_2023_23_59/index.html",
			"historical-reports/report_Jan_5_2023_10_30/index.html",
			"historical-reports/weird-name/index.html",
		}
		if len(anchors) != len(expected) {
			t.Fatalf("expected %d links, got %d", len(expected), len(anchors))
		}
		for i, href := range expected {
			if anchors[i].href != href {
				t.Errorf("link %d: expected href %q, got %q", i, href, anchors[i].href)
			}
		}
	})

	t.Run("marks only the first report as latest", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewHTMLWriter(&buf).Write(createTestIndex()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		anchors := parseAnchors(t, buf.Bytes())
		if anchors[0].class != "latest" {
			t.Errorf("expected first link to have class latest, got %q", anchors[0].class)
		}
		if anchors[0].text != "report_Dec_31_2023_23_59 "+LatestMarker {
			t.Errorf("unexpected first label %q", anchors[0].text)
		}
		for _, a := range anchors[1:] {
			if a.hasCls {
				t.Errorf("expected no class on %q, got %q", a.href, a.class)
			}
			if strings.Contains(a.text, LatestMarker) {
				t.Errorf("expected no latest marker on %q", a.text)
			}
		}
		if n := strings.Count(buf.String(), LatestMarker); n != 1 {
			t.Errorf("expected exactly one latest marker, got %d", n)
		}
	})

	t.Run("has title and single Report column", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewHTMLWriter(&buf).Write(createTestIndex()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		root, err := html.Parse(&buf)
		if err != nil {
			t.Fatalf("output is not valid HTML: %v", err)
		}
		titles := findElements(root, "title")
		if len(titles) != 1 || textContent(titles[0]) != model.DefaultTitle {
			t.Errorf("expected title %q", model.DefaultTitle)
		}
		headers := findElements(root, "th")
		if len(headers) != 1 || strings.TrimSpace(textContent(headers[0])) != "Report" {
			t.Errorf("expected a single Report column")
		}
		if rows := findElements(findElements(root, "tbody")[0], "tr"); len(rows) != 3 {
			t.Errorf("expected 3 rows, got %d", len(rows))
		}
	})

	t.Run("empty index has empty body and no marker", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		idx := model.NewIndex("", time.Now(), nil)
		if _, err := NewHTMLWriter(&buf).Write(idx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		root, err := html.Parse(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("output is not valid HTML: %v", err)
		}
		bodies := findElements(root, "tbody")
		if len(bodies) != 1 {
			t.Fatalf("expected one tbody, got %d", len(bodies))
		}
		if rows := findElements(bodies[0], "tr"); len(rows) != 0 {
			t.Errorf("expected no rows, got %d", len(rows))
		}
		if strings.Contains(buf.String(), LatestMarker) {
			t.Error("expected no latest marker")
		}
		if strings.Contains(buf.String(), `class="latest"`) {
			t.Error("expected no latest class")
		}
	})

	t.Run("escapes markup in folder names", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		entries := model.BuildEntries([]string{`<script>alert("x")</script>`}, model.DefaultURLPrefix)
		if _, err := NewHTMLWriter(&buf).Write(model.NewIndex("", time.Now(), entries)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		if strings.Contains(out, "<script>") {
			t.Errorf("expected folder name to be escaped, got %s", out)
		}
		root, err := html.Parse(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("output is not valid HTML: %v", err)
		}
		if scripts := findElements(root, "script"); len(scripts) != 0 {
			t.Errorf("expected no script elements, got %d", len(scripts))
		}
		anchors := parseAnchors(t, buf.Bytes())
		if len(anchors) != 1 || !strings.HasPrefix(anchors[0].text, `<script>alert("x")</script>`) {
			t.Errorf("expected the name as link text, got %+v", anchors)
		}
	})

	t.Run("custom title is escaped", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewHTMLWriter(&buf).Write(model.NewIndex("Nightly <E2E>", time.Now(), nil)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "<h1>Nightly &lt;E2E&gt;</h1>") {
			t.Errorf("expected escaped heading, got %s", buf.String())
		}
	})
}

// TestMarkdownWriter tests the Markdown writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes table newest first", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestIndex()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "# "+model.DefaultTitle) {
			t.Error("expected title heading")
		}
		dec := strings.Index(out, "report_Dec_31_2023_23_59")
		jan := strings.Index(out, "report_Jan_5_2023_10_30")
		weird := strings.Index(out, "weird-name")
		if dec < 0 || jan < 0 || weird < 0 || dec >= jan || jan >= weird {
			t.Errorf("unexpected order in output:\n%s", out)
		}
		if !strings.Contains(out, "**[report_Dec_31_2023_23_59](historical-reports/report_Dec_31_2023_23_59/index.html)**") {
			t.Errorf("expected bold latest link, got:\n%s", out)
		}
		if n := strings.Count(out, LatestMarker); n != 1 {
			t.Errorf("expected exactly one latest marker, got %d", n)
		}
	})

	t.Run("empty index notes missing reports", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(model.NewIndex("", time.Now(), nil)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No reports found.") {
			t.Errorf("expected note, got:\n%s", buf.String())
		}
		if strings.Contains(buf.String(), LatestMarker) {
			t.Error("expected no latest marker")
		}
	})
}

// TestEscapeMarkdown tests escaping of names and links.
func TestEscapeMarkdown(t *testing.T) {
	t.Parallel()

	if got := escapeMarkdownText("a|b[c]"); got != `a\|b\[c\]` {
		t.Errorf("unexpected text escape %q", got)
	}
	if got := escapeMarkdownURL("reports/my run (2)/index.html"); got != "reports/my%20run%20%282%29/index.html" {
		t.Errorf("unexpected url escape %q", got)
	}
}

// TestJSONWriter tests the JSON writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("outputs ordered reports and latest", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithVersion("1.2.3")).Write(createTestIndex()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var parsed JSONIndex
		if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if parsed.Version != "1.2.3" {
			t.Errorf("expected version 1.2.3, got %q", parsed.Version)
		}
		if parsed.Latest != "report_Dec_31_2023_23_59" {
			t.Errorf("unexpected latest %q", parsed.Latest)
		}
		if len(parsed.Reports) != 3 || parsed.Reports[2].Name != "weird-name" || parsed.Reports[2].Dated {
			t.Errorf("unexpected reports %+v", parsed.Reports)
		}
	})

	t.Run("compact output by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestIndex()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 1 {
			t.Errorf("expected compact output (1 line), got %d lines", len(lines))
		}
	})

	t.Run("pretty print with indent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createTestIndex()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) < 5 {
			t.Errorf("expected multi-line output, got %d lines", len(lines))
		}
	})

	t.Run("empty index has empty reports array", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(model.NewIndex("", time.Now(), nil)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), `"reports":[]`) {
			t.Errorf("expected empty array, got %s", buf.String())
		}
		if strings.Contains(buf.String(), `"latest"`) {
			t.Errorf("expected no latest field, got %s", buf.String())
		}
	})
}

// TestSimpleWriter tests the terminal listing.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("lists reports with dates", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithShowURL(true)).Write(createTestIndex()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "HISTORICAL REPORTS") {
			t.Error("expected header")
		}
		if !strings.Contains(out, "1. 2023-12-31 23:59  report_Dec_31_2023_23_59  "+LatestMarker) {
			t.Errorf("expected latest line, got:\n%s", out)
		}
		if !strings.Contains(out, "3. undated           weird-name") {
			t.Errorf("expected undated line, got:\n%s", out)
		}
		if !strings.Contains(out, "historical-reports/weird-name/index.html") {
			t.Error("expected URLs with WithShowURL")
		}
		if !strings.Contains(out, "TOTAL: 3") {
			t.Error("expected total")
		}
	})

	t.Run("empty index", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(model.NewIndex("", time.Now(), nil)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No reports found.") {
			t.Errorf("unexpected output %q", buf.String())
		}
	})
}

// TestNewWriter tests format selection.
func TestNewWriter(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		format Format
		ext    string
	}{
		{FormatHTML, ".html"},
		{FormatMarkdown, ".md"},
		{FormatJSON, ".json"},
		{FormatText, ".txt"},
	}
	for _, tc := range testCases {
		t.Run(tc.format.String(), func(t *testing.T) {
			t.Parallel()
			w, err := NewWriter(tc.format, &bytes.Buffer{})
			if err != nil || w == nil {
				t.Fatalf("expected writer, got %v", err)
			}
			if tc.format.Extension() != tc.ext {
				t.Errorf("expected extension %q, got %q", tc.ext, tc.format.Extension())
			}
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()
		if _, err := NewWriter(Format("pdf"), &bytes.Buffer{}); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

// TestWriteFile tests atomic file output.
func TestWriteFile(t *testing.T) {
	t.Parallel()

	t.Run("writes file and creates directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "site", "index.html")
		if err := WriteFile(path, FormatHTML, createTestIndex()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		if !strings.Contains(string(data), "report_Dec_31_2023_23_59") {
			t.Error("expected report in output")
		}
	})

	t.Run("replaces existing file and leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "index.html")
		if err := os.WriteFile(path, []byte("stale"), 0600); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}

		if err := WriteFile(path, FormatHTML, model.NewIndex("", time.Now(), nil)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		if strings.Contains(string(data), "stale") {
			t.Error("expected file to be regenerated")
		}

		files, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("failed to read dir: %v", err)
		}
		if len(files) != 1 {
			t.Errorf("expected only index.html, got %d files", len(files))
		}
	})

	t.Run("unknown format leaves existing file untouched", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "index.html")
		if err := os.WriteFile(path, []byte("keep"), 0600); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}

		if err := WriteFile(path, Format("pdf"), createTestIndex()); err == nil {
			t.Fatal("expected error")
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		if string(data) != "keep" {
			t.Errorf("expected file untouched, got %q", data)
		}
	})
}

// TestVersionMetadata tests that the tool version reaches the outputs.
func TestVersionMetadata(t *testing.T) {
	t.Parallel()

	t.Run("html generator meta tag", func(t *testing.T) {
		t.Parallel()

		idx := createTestIndex()
		idx.Version = "v1.2.3"

		var buf bytes.Buffer
		if _, err := NewHTMLWriter(&buf).Write(idx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), `<meta name="generator" content="reportindex v1.2.3">`) {
			t.Errorf("expected generator meta tag, got:\n%s", buf.String())
		}
	})

	t.Run("no meta tag without version", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewHTMLWriter(&buf).Write(createTestIndex()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(buf.String(), `name="generator"`) {
			t.Error("expected no generator meta tag")
		}
	})

	t.Run("json falls back to index version", func(t *testing.T) {
		t.Parallel()

		idx := createTestIndex()
		idx.Version = "v2.0.0"
		if doc := NewJSONIndex(idx, ""); doc.Version != "v2.0.0" {
			t.Errorf("expected index version, got %q", doc.Version)
		}
		if doc := NewJSONIndex(idx, "v3.0.0"); doc.Version != "v3.0.0" {
			t.Errorf("expected explicit version, got %q", doc.Version)
		}
	})
}
