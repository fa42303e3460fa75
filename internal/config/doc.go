// Package config provides configuration structures and utilities for reportindex.
// It defines where report folders are read from, where the index is written,
// how links are built, and whether generations are recorded in the history store.
package config
