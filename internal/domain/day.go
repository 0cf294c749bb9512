package domain

import (
	"fmt"
	"time"
)

// DayLayout is the calendar-day key format used on the wire and in storage
const DayLayout = "2006-01-02"

// Day normalizes t to midnight UTC of its calendar date in t's own location.
// Callers resolve the time zone first; the key itself carries no zone.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a "YYYY-MM-DD" key
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDay, s)
	}
	return t, nil
}

// FormatDay renders a day key
func FormatDay(day time.Time) string {
	return day.Format(DayLayout)
}

// PrevDay returns the calendar day before day
func PrevDay(day time.Time) time.Time {
	return Day(day).AddDate(0, 0, -1)
}
