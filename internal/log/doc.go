// Package log provides the logger used by reportindex, built on top of the
// standard slog package.
//
// This package extends slog to provide:
//   - Neutralization of untrusted strings (report folder names, paths)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Untrusted Values
//
// Report folder names come straight from the filesystem. A name may contain
// newlines, terminal escape sequences or bidirectional override characters
// that would forge log lines or corrupt a terminal. SafeHandler rewrites such
// string values into an escaped, quoted form and caps their length before they
// reach the underlying handler, whatever that handler is.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//	logger.Debug("found report", "name", "evil\x1b[2Jname")
//	// name="evil\x1b[2Jname"
//
//	slog.SetDefault(logger)
package log
