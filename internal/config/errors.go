package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrEmptyReportsDir is returned when no reports directory is configured.
	ErrEmptyReportsDir = errors.New("invalid reports directory: must not be empty")

	// ErrEmptyOutput is returned when no output path is configured.
	ErrEmptyOutput = errors.New("invalid output path: must not be empty")

	// ErrInvalidHistoryLimit is returned when the history limit is not positive.
	ErrInvalidHistoryLimit = errors.New("invalid history limit: must be positive")

	// ErrUnknownFormat is returned when a configuration file names a format
	// other than html, markdown or json.
	ErrUnknownFormat = errors.New("unknown format: must be html, markdown or json")
)
