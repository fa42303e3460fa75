// Package report provides index rendering and output functionality.
//
// This package contains writers for different output formats:
//   - HTMLWriter: The static index page (default)
//   - MarkdownWriter: GitHub Flavored Markdown for repository READMEs
//   - JSONWriter: Structured JSON output for tool integration
//   - SimpleWriter: Human-readable text output for terminal display
//
// Design decision: We separate rendering from the data structures in the
// model package. This allows adding new output formats without modifying
// the core data structures.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably. WriteFile puts a rendered index on disk atomically.
package report
