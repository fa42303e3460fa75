// Package generator builds the report index.
//
// A run scans the reports directory, orders the report folders newest
// first, renders the index in the configured format and writes it
// atomically. When a history store is attached, every successful run is
// recorded in it.
package generator
