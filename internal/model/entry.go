package model

import (
	"strings"
	"time"
)

const (
	// DefaultURLPrefix is the link prefix used for report entries.
	// It matches the name of the directory the reports are scanned from.
	DefaultURLPrefix = "historical-reports"

	// ReportFileName is the file every report folder must contain to be listed.
	ReportFileName = "index.html"
)

// ReportEntry is one listed report folder.
// It is a value object: build it with NewReportEntry and do not mutate it.
type ReportEntry struct {
	// Name is the report folder name as found on disk.
	Name string `json:"name"`

	// URL is the relative link to the report page,
	// "<prefix>/<name>/index.html".
	URL string `json:"url"`

	// Timestamp is the instant parsed from Name.
	// It is the zero time when Dated is false.
	Timestamp time.Time `json:"timestamp,omitzero"`

	// Dated reports whether Name carried a parseable timestamp suffix.
	Dated bool `json:"dated"`
}

// NewReportEntry builds the entry for a report folder name.
// The URL is joined with forward slashes regardless of the host OS, and an
// empty prefix yields "<name>/index.html".
func NewReportEntry(name, urlPrefix string, loc *time.Location) ReportEntry {
	ts, ok := ParseReportTimeIn(name, loc)
	return ReportEntry{
		Name:      name,
		URL:       reportURL(urlPrefix, name),
		Timestamp: ts,
		Dated:     ok,
	}
}

// SortKey returns the value entries are ordered by: the epoch milliseconds of
// Timestamp, or SentinelSortKey for undated entries.
func (e ReportEntry) SortKey() int64 {
	if !e.Dated {
		return SentinelSortKey
	}
	return e.Timestamp.UnixMilli()
}

// reportURL joins prefix, name and the report file name with plain slashes.
// path.Join is not used so that the link keeps the folder name verbatim.
func reportURL(prefix, name string) string {
	prefix = strings.Trim(strings.ReplaceAll(prefix, "\\", "/"), "/")
	if prefix == "" {
		return name + "/" + ReportFileName
	}
	return prefix + "/" + name + "/" + ReportFileName
}
