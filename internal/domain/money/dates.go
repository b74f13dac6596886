package money

import (
	"fmt"
	"time"
)

// Ledger post/enter date layouts. GnuCash has written both over the
// years depending on version.
const (
	compactDateLayout = "20060102150405"
	sqliteDateLayout  = "2006-01-02 15:04:05"
	dayLayout         = "2006-01-02"
)

// ParseLedgerDate parses a GnuCash post/enter date string and truncates
// it to a calendar day in UTC. Matching compares dates, never times.
func ParseLedgerDate(s string) (time.Time, error) {
	for _, layout := range []string{compactDateLayout, sqliteDateLayout, dayLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t.Year(), t.Month(), t.Day()), nil
		}
	}
	return time.Time{}, fmt.Errorf("money: malformed ledger date %q", s)
}

// FormatLedgerDate renders a date in the layout GnuCash SQLite files
// expect for post_date and enter_date columns.
func FormatLedgerDate(t time.Time) string {
	return t.Format(sqliteDateLayout)
}

// Day builds a calendar date at midnight UTC.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a calendar date by a signed number of days.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// FormatDay renders a calendar date as yyyy-mm-dd.
func FormatDay(t time.Time) string {
	return t.Format(dayLayout)
}

// ParseDay parses a yyyy-mm-dd date, as accepted by CLI filters.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("money: malformed date %q (want yyyy-mm-dd)", s)
	}
	return t, nil
}
