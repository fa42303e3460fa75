package scanner

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/nao1215/reportindex/internal/model"
)

// Scanner lists report folders.
type Scanner struct {
	logger     *slog.Logger
	skipHidden bool
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger used for debug output about skipped entries.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSkipHidden skips folders whose name starts with a dot.
func WithSkipHidden(skip bool) Option {
	return func(s *Scanner) {
		s.skipHidden = skip
	}
}

// New creates a Scanner.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan returns the names of the immediate child directories of the root of
// fsys that contain a model.ReportFileName file, in lexical order.
//
// An error is returned only when the root itself cannot be read.
// Failing to stat a child's index.html is treated as "not a report".
func (s *Scanner) Scan(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()

		// Symlinks are not followed, only real directories count.
		if !e.IsDir() {
			s.logger.Debug("skipping non-directory entry", "name", name)
			continue
		}
		if s.skipHidden && strings.HasPrefix(name, ".") {
			s.logger.Debug("skipping hidden directory", "name", name)
			continue
		}

		info, err := fs.Stat(fsys, path.Join(name, model.ReportFileName))
		if err != nil {
			s.logger.Debug("skipping directory without report", "name", name, "error", err)
			continue
		}
		if info.IsDir() {
			s.logger.Debug("skipping directory whose report is a directory", "name", name)
			continue
		}

		names = append(names, name)
	}

	s.logger.Debug("scan finished", "found", len(names), "entries", len(entries))
	return names, nil
}

// ScanDir scans the directory at dir on the local filesystem.
// A missing or unreadable dir is returned as an error.
func (s *Scanner) ScanDir(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read reports directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to read reports directory: %w", &fs.PathError{
			Op:   "scan",
			Path: dir,
			Err:  ErrNotDirectory,
		})
	}

	names, err := s.Scan(os.DirFS(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to read reports directory %s: %w", dir, err)
	}
	return names, nil
}
