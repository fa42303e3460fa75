package model

import (
	"regexp"
	"strconv"
	"time"
)

// SentinelSortKey is the sort key of a report name that carries no timestamp.
// It equals the Unix epoch in milliseconds, so undated reports rank as the oldest.
const SentinelSortKey int64 = 0

// reportTimeRE matches the trailing "_<Mon>_<D>_<YYYY>_<HH>_<MM>" suffix of a
// report folder name, like report_Jan_5_2023_10_30.
// The month alternation is the closed table below; any other token fails the match.
var reportTimeRE = regexp.MustCompile(
	`_(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)_(\d{1,2})_(\d{4})_(\d{2})_(\d{2})$`,
)

// monthAbbreviations maps the English three-letter month abbreviations to months.
var monthAbbreviations = map[string]time.Month{
	"Jan": time.January,
	"Feb": time.February,
	"Mar": time.March,
	"Apr": time.April,
	"May": time.May,
	"Jun": time.June,
	"Jul": time.July,
	"Aug": time.August,
	"Sep": time.September,
	"Oct": time.October,
	"Nov": time.November,
	"Dec": time.December,
}

// ParseReportTime extracts the timestamp embedded in a report folder name,
// interpreted in the local time zone of the process.
// The boolean is false when the name has no recognizable suffix.
func ParseReportTime(name string) (time.Time, bool) {
	return ParseReportTimeIn(name, time.Local)
}

// ParseReportTimeIn is like ParseReportTime but interprets the calendar fields
// in loc. A nil loc means time.Local.
//
// Out-of-range fields are normalized the way time.Date does it, so
// "x_Feb_30_2023_10_00" yields March 2nd.
func ParseReportTimeIn(name string, loc *time.Location) (time.Time, bool) {
	m := reportTimeRE.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	// The regexp guarantees 1-4 ASCII digits in every numeric group,
	// so Atoi cannot fail here.
	day, _ := strconv.Atoi(m[2])    //nolint:errcheck // digits only
	year, _ := strconv.Atoi(m[3])   //nolint:errcheck // digits only
	hour, _ := strconv.Atoi(m[4])   //nolint:errcheck // digits only
	minute, _ := strconv.Atoi(m[5]) //nolint:errcheck // digits only

	return time.Date(year, monthAbbreviations[m[1]], day, hour, minute, 0, 0, loc), true
}

// SortKey returns the epoch-millisecond value of the timestamp embedded in
// name, or SentinelSortKey when the name cannot be parsed.
func SortKey(name string) int64 {
	return SortKeyIn(name, time.Local)
}

// SortKeyIn is like SortKey but interprets the calendar fields in loc.
func SortKeyIn(name string, loc *time.Location) int64 {
	t, ok := ParseReportTimeIn(name, loc)
	if !ok {
		return SentinelSortKey
	}
	return t.UnixMilli()
}
