package model

import "time"

// DefaultTitle is the heading of a generated index page.
const DefaultTitle = "Historical Reports"

// Index is the ordered list of reports that writers render.
// Entries[0], if any, is the latest report.
type Index struct {
	// Title is the page title and top-level heading.
	Title string `json:"title"`

	// GeneratedAt is when the index was built.
	GeneratedAt time.Time `json:"generated_at"`

	// Entries are ordered newest first.
	Entries []ReportEntry `json:"entries"`

	// Version is the version of the tool that built the index, if known.
	Version string `json:"version,omitempty"`
}

// NewIndex creates an Index over already ordered entries.
// An empty title falls back to DefaultTitle.
func NewIndex(title string, generatedAt time.Time, entries []ReportEntry) *Index {
	if title == "" {
		title = DefaultTitle
	}
	if entries == nil {
		entries = []ReportEntry{}
	}
	return &Index{
		Title:       title,
		GeneratedAt: generatedAt,
		Entries:     entries,
	}
}

// Latest returns the first entry.
// The boolean is false for an empty index, which has no latest report.
func (i *Index) Latest() (ReportEntry, bool) {
	if i == nil || len(i.Entries) == 0 {
		return ReportEntry{}, false
	}
	return i.Entries[0], true
}

// IsLatest reports whether the entry at position idx is the latest report.
func (i *Index) IsLatest(idx int) bool {
	return idx == 0 && i != nil && len(i.Entries) > 0
}

// Len returns the number of entries.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.Entries)
}
