// Package scanner finds report folders on disk.
//
// A report folder is an immediate child directory of the reports directory
// that contains an index.html file. Anything else (plain files, directories
// without index.html) is skipped without error.
//
// Scanning works on an fs.FS so that tests can use fstest.MapFS instead of a
// real directory tree. ScanDir is the thin wrapper used by the CLI.
package scanner
