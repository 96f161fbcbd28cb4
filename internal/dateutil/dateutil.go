// Package dateutil provides the calendar arithmetic the planning board is
// built on. All functions operate on and return midnight-UTC instants so that
// a calendar day has exactly one canonical representation regardless of the
// caller's timezone.
package dateutil

import "time"

// DayFormat is the wire format for calendar dates (YYYY-MM-DD).
const DayFormat = "2006-01-02"

// DayStart normalizes t to 00:00:00.000 UTC of its calendar day.
func DayStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayEnd returns the last representable instant of t's calendar day in UTC.
// Range queries use DayStart/DayEnd pairs so a day-record dated anywhere
// within the day is always matched.
func DayEnd(t time.Time) time.Time {
	return DayStart(t).Add(24*time.Hour - time.Nanosecond)
}

// AddDays shifts t by n calendar days, keeping midnight-UTC normalization.
func AddDays(t time.Time, n int) time.Time {
	return DayStart(t).AddDate(0, 0, n)
}

// SameDay reports whether a and b fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return DayStart(a).Equal(DayStart(b))
}

// StartOfWeek returns the Monday-aligned start of t's week at midnight UTC.
func StartOfWeek(t time.Time) time.Time {
	d := DayStart(t)
	// time.Weekday has Sunday=0; the board's weeks start on Monday.
	offset := int(d.Weekday()) - 1
	if offset < 0 {
		offset = 6
	}
	return d.AddDate(0, 0, -offset)
}

// WeekDays returns the 7 contiguous days of the week starting at start.
// The caller is expected to pass a Monday-aligned day; the sequence starts
// wherever start is.
func WeekDays(start time.Time) []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = AddDays(start, i)
	}
	return days
}

// FormatDay renders t as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return DayStart(t).Format(DayFormat)
}

// ParseDay parses a YYYY-MM-DD string into a midnight-UTC instant.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DayFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
