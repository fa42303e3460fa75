package model

import (
	"testing"
	"time"
)

// TestParseReportTimeIn verifies that valid suffixes map to the exact calendar moment.
func TestParseReportTimeIn(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*60*60)

	testCases := []struct {
		name     string
		input    string
		loc      *time.Location
		expected time.Time
	}{
		{
			name:     "single digit day",
			input:    "report_Jan_5_2023_10_30",
			loc:      time.UTC,
			expected: time.Date(2023, time.January, 5, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "two digit day",
			input:    "report_Dec_31_2023_23_59",
			loc:      time.UTC,
			expected: time.Date(2023, time.December, 31, 23, 59, 0, 0, time.UTC),
		},
		{
			name:     "zero padded day",
			input:    "nightly_May_07_2024_00_00",
			loc:      time.UTC,
			expected: time.Date(2024, time.May, 7, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "prefix may contain underscores",
			input:    "e2e_suite_chrome_Sep_12_2022_08_15",
			loc:      time.UTC,
			expected: time.Date(2022, time.September, 12, 8, 15, 0, 0, time.UTC),
		},
		{
			name:     "empty prefix",
			input:    "_Mar_1_2021_12_00",
			loc:      time.UTC,
			expected: time.Date(2021, time.March, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:     "interpreted in the given zone",
			input:    "report_Jul_4_2023_09_00",
			loc:      tokyo,
			expected: time.Date(2023, time.July, 4, 9, 0, 0, 0, tokyo),
		},
		{
			name:     "day overflow normalizes",
			input:    "report_Feb_30_2023_10_00",
			loc:      time.UTC,
			expected: time.Date(2023, time.March, 2, 10, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseReportTimeIn(tc.input, tc.loc)
			if !ok {
				t.Fatalf("expected %q to parse", tc.input)
			}
			if !got.Equal(tc.expected) {
				t.Errorf("got %v, expected %v", got, tc.expected)
			}
			if got.UnixMilli() != tc.expected.UnixMilli() {
				t.Errorf("got %d ms, expected %d ms", got.UnixMilli(), tc.expected.UnixMilli())
			}
		})
	}
}

// TestParseReportTimeAllMonths verifies every entry of the month table.
func TestParseReportTimeAllMonths(t *testing.T) {
	t.Parallel()

	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	for i, mon := range months {
		got, ok := ParseReportTimeIn("r_"+mon+"_1_2020_00_00", time.UTC)
		if !ok {
			t.Errorf("expected month %s to parse", mon)
			continue
		}
		if got.Month() != time.Month(i+1) {
			t.Errorf("month %s: got %v, expected %v", mon, got.Month(), time.Month(i+1))
		}
	}
}

// TestParseReportTimeUsesLocalZone verifies the default zone is the process zone.
func TestParseReportTimeUsesLocalZone(t *testing.T) {
	t.Parallel()

	got, ok := ParseReportTime("report_Jan_5_2023_10_30")
	if !ok {
		t.Fatal("expected name to parse")
	}
	expected := time.Date(2023, time.January, 5, 10, 30, 0, 0, time.Local)
	if got.UnixMilli() != expected.UnixMilli() {
		t.Errorf("got %d, expected %d", got.UnixMilli(), expected.UnixMilli())
	}
	if SortKey("report_Jan_5_2023_10_30") != expected.UnixMilli() {
		t.Errorf("SortKey disagrees with local time: %d", SortKey("report_Jan_5_2023_10_30"))
	}
}

// TestParseReportTimeRejects verifies that names without the suffix are not parsed
// and map to the sentinel key.
func TestParseReportTimeRejects(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no suffix", "weird-name"},
		{"unknown month", "report_Foo_5_2023_10_30"},
		{"lowercase month", "report_jan_5_2023_10_30"},
		{"full month name", "report_January_5_2023_10_30"},
		{"three digit day", "report_Jan_105_2023_10_30"},
		{"two digit year", "report_Jan_5_23_10_30"},
		{"single digit hour", "report_Jan_5_2023_1_30"},
		{"single digit minute", "report_Jan_5_2023_10_3"},
		{"trailing text", "report_Jan_5_2023_10_30_final"},
		{"missing leading underscore", "Jan_5_2023_10_30"},
		{"dashes instead of underscores", "report-Jan-5-2023-10-30"},
		{"non ascii digits", "report_Jan_５_2023_10_30"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got, ok := ParseReportTimeIn(tc.input, time.UTC); ok {
				t.Errorf("expected %q not to parse, got %v", tc.input, got)
			}
			if key := SortKeyIn(tc.input, time.UTC); key != SentinelSortKey {
				t.Errorf("expected sentinel key for %q, got %d", tc.input, key)
			}
		})
	}
}

// TestSortKeyIn verifies the key is epoch milliseconds.
func TestSortKeyIn(t *testing.T) {
	t.Parallel()

	key := SortKeyIn("report_Jan_1_1970_00_01", time.UTC)
	if key != 60_000 {
		t.Errorf("expected 60000, got %d", key)
	}
}
