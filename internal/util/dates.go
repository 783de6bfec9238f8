package util

import (
	"fmt"
	"time"
)

// ISODate is the wire format for dates throughout the app (form input,
// generation prompt, persisted plans).
const ISODate = "2006-01-02"

// ParseDate parses an ISO date string (YYYY-MM-DD).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(ISODate, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Today returns the current local date as an ISO string.
func Today() string {
	return time.Now().Format(ISODate)
}

// AddDays returns the ISO date string offset whole days from start.
func AddDays(start time.Time, days int) string {
	return start.AddDate(0, 0, days).Format(ISODate)
}

// DurationDays returns the inclusive day count between two dates:
// start == end is 1 day, the next day is 2, and so on. The sign of the
// range is ignored.
func DurationDays(start, end time.Time) int {
	diff := end.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	days := int(diff.Hours() / 24)
	return days + 1
}

// DayLabel formats a date for display, e.g. "Mon, Jan 2".
func DayLabel(t time.Time) string {
	return t.Format("Mon, Jan 2")
}
