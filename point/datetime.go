package point

import (
	"fmt"
	"time"
)

// dateLayout and timeLayout match the grammar's literal forms exactly: no
// timezone offset is ever present in source text, and the iCalendar importer
// normalizes to naive UTC before anything here runs.
const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
	timeLayoutNoSeconds = "15:04"
)

// ParseDate parses a YYYY-MM-DD literal as a naive (no-timezone) date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ParseTime parses an HH:MM or HH:MM:SS literal as a naive time-of-day,
// returned as a time.Time on the zero date so it can be combined with a date
// via Combine.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(timeLayoutNoSeconds, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t, nil
}

// Combine merges a date and a time-of-day into a single naive datetime in
// UTC.
func Combine(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC)
}

// FormatDate renders a naive date in the grammar's literal form.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatTime renders a naive time-of-day in the grammar's literal form,
// including seconds only when non-zero.
func FormatTime(t time.Time) string {
	if t.Second() != 0 {
		return t.Format(timeLayout)
	}
	return t.Format(timeLayoutNoSeconds)
}

// AddMinutes returns t shifted by n minutes, used by the simulator to
// advance the law's cursor.
func AddMinutes(t time.Time, n int64) time.Time {
	return t.Add(time.Duration(n) * time.Minute)
}

// DurationMinutes returns the signed number of minutes between two naive
// datetimes, end minus start.
func DurationMinutes(start, end time.Time) int64 {
	return int64(end.Sub(start) / time.Minute)
}
