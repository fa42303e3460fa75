package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/reportindex/internal/config"
	"github.com/nao1215/reportindex/internal/database"
	"github.com/nao1215/reportindex/internal/model"
	"github.com/nao1215/reportindex/internal/report"
	"github.com/nao1215/reportindex/internal/scanner"
)

// HistoryRecorder stores a record of each generation.
// *database.HistoryDB satisfies it.
type HistoryRecorder interface {
	SaveGeneration(ctx context.Context, rec *database.GenerationRecord) error
}

// WriteFunc renders index in format and stores it at path.
type WriteFunc func(path string, format report.Format, index *model.Index) error

// Result describes a completed run.
type Result struct {
	// Output is the path the index was written to.
	Output string

	// Index is the index that was written.
	Index *model.Index

	// RunID identifies the history record, empty when history is off
	// or could not be recorded.
	RunID string
}

// Generator builds and writes the report index.
//
// Design decision: The generator holds resolved paths and collaborators
// rather than a *config.Config so that it can be driven from tests without
// going through flag and file resolution. FromConfig bridges the two.
type Generator struct {
	// reportsDir is the directory scanned for report folders.
	reportsDir string

	// output is the path of the generated index, or report.Stdout.
	output string

	// title is the page title.
	title string

	// urlPrefix is prepended to every report link.
	urlPrefix string

	// format selects the writer.
	format report.Format

	// skipHidden excludes dot-directories from the scan.
	skipHidden bool

	// logger is used for structured logging during the run.
	logger *slog.Logger

	// now returns the generation time.
	now func() time.Time

	// loc is the zone report folder names are interpreted in.
	loc *time.Location

	// history records successful runs when non-nil.
	history HistoryRecorder

	// write stores the rendered index.
	write WriteFunc

	// version is recorded in the index.
	version string
}

// Option is a function that configures a Generator.
type Option func(*Generator)

// WithLogger sets a custom logger for the generator.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithClock sets the function that returns the generation time.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithLocation sets the zone report folder names are interpreted in.
// If not set, time.Local is used.
func WithLocation(loc *time.Location) Option {
	return func(g *Generator) {
		g.loc = loc
	}
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(g *Generator) {
		g.title = title
	}
}

// WithURLPrefix sets the prefix of every report link.
func WithURLPrefix(prefix string) Option {
	return func(g *Generator) {
		g.urlPrefix = prefix
	}
}

// WithFormat sets the output format.
func WithFormat(format report.Format) Option {
	return func(g *Generator) {
		g.format = format
	}
}

// WithSkipHidden excludes report folders whose names start with a dot.
func WithSkipHidden(skip bool) Option {
	return func(g *Generator) {
		g.skipHidden = skip
	}
}

// WithHistory records every successful run in h.
func WithHistory(h HistoryRecorder) Option {
	return func(g *Generator) {
		g.history = h
	}
}

// WithWriteFunc replaces the function that stores the rendered index.
// If not set, report.WriteFile is used.
func WithWriteFunc(write WriteFunc) Option {
	return func(g *Generator) {
		g.write = write
	}
}

// WithVersion records the tool version in the generated index.
func WithVersion(version string) Option {
	return func(g *Generator) {
		g.version = version
	}
}

// New creates a Generator that scans reportsDir and writes output.
func New(reportsDir, output string, opts ...Option) *Generator {
	g := &Generator{
		reportsDir: reportsDir,
		output:     output,
		title:      model.DefaultTitle,
		urlPrefix:  model.DefaultURLPrefix,
		format:     report.FormatHTML,
		now:        time.Now,
		loc:        time.Local,
		write:      report.WriteFile,
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.logger == nil {
		g.logger = slog.Default()
	}

	return g
}

// FromConfig creates a Generator from a validated configuration.
// Additional options are applied after the configuration.
func FromConfig(cfg *config.Config, opts ...Option) *Generator {
	base := []Option{
		WithTitle(cfg.Title),
		WithURLPrefix(cfg.LinkPrefix()),
		WithFormat(cfg.Format()),
		WithSkipHidden(cfg.SkipHidden),
	}
	return New(cfg.ReportsPath(), cfg.OutputPath(), append(base, opts...)...)
}

// Output returns the path the index is written to.
func (g *Generator) Output() string {
	return g.output
}

// Build scans the reports directory and returns the ordered index
// without writing it.
func (g *Generator) Build(ctx context.Context) (*model.Index, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := scanner.New(
		scanner.WithLogger(g.logger),
		scanner.WithSkipHidden(g.skipHidden),
	)
	names, err := s.ScanDir(g.reportsDir)
	if err != nil {
		return nil, err
	}

	entries := model.BuildEntries(names, g.urlPrefix, model.WithLocation(g.loc))
	index := model.NewIndex(g.title, g.now(), entries)
	index.Version = g.version

	g.logger.Debug("built report index",
		"reportsDir", g.reportsDir,
		"reports", index.Len(),
	)
	if latest, ok := index.Latest(); ok {
		g.logger.Debug("latest report", "name", latest.Name, "dated", latest.Dated)
	}

	return index, nil
}

// Run builds the index and writes it.
// A cancelled context aborts the run before anything is written.
// A failure to record history is logged and does not fail the run.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	index, err := g.Build(ctx)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		g.logger.Warn("generation cancelled before write", "reason", err)
		return nil, err
	}

	if err := g.write(g.output, g.format, index); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", g.output, err)
	}

	result := &Result{
		Output: g.output,
		Index:  index,
	}

	g.logger.Info("index written",
		"output", g.output,
		"format", g.format.String(),
		"reports", index.Len(),
	)

	if g.history != nil {
		rec := newGenerationRecord(g.output, g.format, index)
		if err := g.history.SaveGeneration(ctx, rec); err != nil {
			g.logger.Warn("failed to record generation history", "error", err)
		} else {
			result.RunID = rec.RunID
		}
	}

	return result, nil
}

// newGenerationRecord describes a written index for the history store.
func newGenerationRecord(output string, format report.Format, index *model.Index) *database.GenerationRecord {
	rec := &database.GenerationRecord{
		GeneratedAt: index.GeneratedAt,
		Output:      output,
		Format:      format.String(),
		ReportCount: index.Len(),
		Reports:     make([]string, 0, index.Len()),
	}
	if latest, ok := index.Latest(); ok {
		rec.Latest = latest.Name
	}
	for _, e := range index.Entries {
		rec.Reports = append(rec.Reports, e.Name)
	}
	return rec
}
