package model

import (
	"cmp"
	"slices"
	"time"
)

// SortEntries orders entries newest first, in place.
// Entry a precedes entry b when a.SortKey() > b.SortKey().
//
// Undated entries share SentinelSortKey and therefore rank as the oldest.
// Ties keep their input order; the scanner returns names in lexical order,
// so equal keys end up sorted by name.
func SortEntries(entries []ReportEntry) {
	slices.SortStableFunc(entries, func(a, b ReportEntry) int {
		return cmp.Compare(b.SortKey(), a.SortKey())
	})
}

// BuildEntries creates one entry per name and returns them ordered newest first.
func BuildEntries(names []string, urlPrefix string, opts ...EntryOption) []ReportEntry {
	o := entryOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	entries := make([]ReportEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, NewReportEntry(name, urlPrefix, o.location))
	}
	SortEntries(entries)
	return entries
}

// EntryOption configures BuildEntries.
type EntryOption func(*entryOptions)

type entryOptions struct {
	location *time.Location
}

// WithLocation interprets report timestamps in loc instead of time.Local.
func WithLocation(loc *time.Location) EntryOption {
	return func(o *entryOptions) {
		o.location = loc
	}
}
