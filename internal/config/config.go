package config

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/nao1215/reportindex/internal/model"
	"github.com/nao1215/reportindex/internal/report"
)

// Default configuration values.
// These reproduce the layout the index was originally generated for:
// report folders under historical-reports/ and the page beside them.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "reportindex"

	// DefaultRootDir is the directory that holds the reports directory and
	// receives the generated page. The working directory is used so that the
	// tool can be run from a CI job without extra flags.
	DefaultRootDir = "."

	// DefaultReportsDir is the directory, relative to the root, whose
	// immediate subdirectories are the report folders.
	DefaultReportsDir = model.DefaultURLPrefix

	// DefaultOutput is the generated page, relative to the root.
	DefaultOutput = model.ReportFileName

	// DefaultHistoryLimit is the number of generations the history command
	// prints when no limit is given.
	DefaultHistoryLimit = 20
)

// Config holds all configuration options for reportindex.
// This struct is populated from the configuration file and CLI flags and
// passed through the application rather than kept in global state.
//
// Design decision: We use a single flat struct, as the number of options is
// small and every one of them is a plain value.
type Config struct {
	// RootDir is the directory relative paths are resolved against.
	RootDir string

	// ReportsDir is the directory scanned for report folders.
	// Relative paths are resolved against RootDir.
	ReportsDir string

	// Output is the path of the generated index.
	// Relative paths are resolved against RootDir. "-" writes to stdout.
	// When left at DefaultOutput, the extension follows the selected format.
	Output string

	// Title is the page title and heading.
	Title string

	// URLPrefix is prepended to every report link.
	// When empty, the prefix is the path from the output's directory to
	// ReportsDir, so links work wherever the page is written.
	URLPrefix string

	// JSONReport selects JSON output instead of the HTML page.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output instead of the HTML page.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// SkipHidden excludes report folders whose names start with a dot.
	SkipHidden bool

	// History records every generation in the SQLite history store.
	History bool

	// HistoryLimit is the number of generations the history command prints.
	HistoryLimit int

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory (~/.local/share/reportindex on Linux).
	DBDir string

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the usual locations.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because most defaults are non-zero paths. This also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		RootDir:      DefaultRootDir,
		ReportsDir:   DefaultReportsDir,
		Output:       DefaultOutput,
		Title:        model.DefaultTitle,
		HistoryLimit: DefaultHistoryLimit,
		DBDir:        XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for reportindex.
// On Linux: ~/.local/share/reportindex
// On macOS: ~/Library/Application Support/reportindex
// On Windows: %LOCALAPPDATA%\reportindex
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for reportindex.
// On Linux: ~/.config/reportindex
// On macOS: ~/Library/Application Support/reportindex
// On Windows: %APPDATA%\reportindex
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the sentinel errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ReportsDir) == "" {
		return ErrEmptyReportsDir
	}

	if strings.TrimSpace(c.Output) == "" {
		return ErrEmptyOutput
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.HistoryLimit <= 0 {
		return ErrInvalidHistoryLimit
	}

	return nil
}

// Format returns the selected output format.
func (c *Config) Format() report.Format {
	switch {
	case c.JSONReport:
		return report.FormatJSON
	case c.MarkdownReport:
		return report.FormatMarkdown
	default:
		return report.FormatHTML
	}
}

// SetFormat selects the output format by name.
// An empty name selects HTML.
func (c *Config) SetFormat(name string) error {
	switch report.Format(strings.ToLower(strings.TrimSpace(name))) {
	case report.FormatHTML, "":
		c.JSONReport, c.MarkdownReport = false, false
	case report.FormatMarkdown, "md":
		c.JSONReport, c.MarkdownReport = false, true
	case report.FormatJSON:
		c.JSONReport, c.MarkdownReport = true, false
	default:
		return ErrUnknownFormat
	}
	return nil
}

// ReportsPath returns the reports directory resolved against RootDir.
func (c *Config) ReportsPath() string {
	return c.resolve(c.ReportsDir)
}

// OutputPath returns the output path resolved against RootDir.
// A default output name takes the extension of the selected format, so
// "--markdown" writes index.md instead of overwriting the HTML page.
func (c *Config) OutputPath() string {
	if c.Output == report.Stdout {
		return report.Stdout
	}

	out := c.Output
	if out == DefaultOutput {
		out = strings.TrimSuffix(DefaultOutput, filepath.Ext(DefaultOutput)) + c.Format().Extension()
	}
	return c.resolve(out)
}

// LinkPrefix returns the prefix used for report links.
// An explicit URLPrefix wins. Otherwise the prefix is the relative path
// from the directory of the output to the reports directory.
func (c *Config) LinkPrefix() string {
	if c.URLPrefix != "" {
		return c.URLPrefix
	}

	base := c.resolve(".")
	if out := c.OutputPath(); out != report.Stdout {
		base = filepath.Dir(out)
	}

	absBase, err := filepath.Abs(base)
	if err != nil {
		return filepath.ToSlash(filepath.Clean(c.ReportsDir))
	}
	absReports, err := filepath.Abs(c.ReportsPath())
	if err != nil {
		return filepath.ToSlash(filepath.Clean(c.ReportsDir))
	}
	rel, err := filepath.Rel(absBase, absReports)
	if err != nil {
		return filepath.ToSlash(filepath.Clean(c.ReportsDir))
	}
	return filepath.ToSlash(rel)
}

// resolve joins a relative path onto RootDir.
func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) || c.RootDir == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(c.RootDir, p)
}
