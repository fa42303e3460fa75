// Package main provides the entry point for the reportindex CLI.
//
// reportindex scans a directory of historical report folders and writes an
// index page that links to every report, newest first, with the most recent
// one marked as the latest.
//
// Usage:
//
//	reportindex
//	reportindex generate --dir ./site --markdown
//
// See --help for all available options.
package main

// main is the entry point for reportindex.
func main() {
	Execute()
}
