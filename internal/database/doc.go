// Package database provides SQLite-based storage for reportindex.
//
// This package implements the HistoryDB, which records one row per
// generated index: when it was written, where, in which format, how many
// reports it linked and which one was the latest.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. WAL mode lets the history command read while a CI job writes
//
// Recording history is optional. The generated page never depends on it.
package database
