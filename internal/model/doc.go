// Package model defines the core data structures used throughout reportindex.
//
// This package contains the following main types:
//   - ReportEntry: One report folder, with its link and parsed timestamp
//   - Index: The ordered set of entries handed to every report writer
//
// It also owns the only real logic of the tool: extracting a timestamp from a
// report folder name and ordering entries newest first.
//
// Design decision: We keep parsing and ordering here as pure functions so they
// can be tested without touching a filesystem. Directory scanning lives in the
// scanner package and document output in the report package.
package model
