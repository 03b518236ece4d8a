package dateutil

import (
	"fmt"
	"time"
)

// Layout is the civil date format used everywhere in the app.
// All dates are plain YYYY-MM-DD strings; time of day never enters
// the scheduling or streak logic.
const Layout = "2006-01-02"

// Today returns the current civil date in the given location.
func Today(loc *time.Location) string {
	return time.Now().In(loc).Format(Layout)
}

// Parse validates and parses a YYYY-MM-DD date string.
func Parse(date string) (time.Time, error) {
	t, err := time.Parse(Layout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	return t, nil
}

// IsValid reports whether date is a well-formed YYYY-MM-DD string.
func IsValid(date string) bool {
	_, err := time.Parse(Layout, date)
	return err == nil
}

// Weekday returns the ISO 8601 weekday number for a date:
// 0=Monday .. 6=Sunday. This numbering must match the custom-day
// sets stored on tasks.
func Weekday(date string) (int, error) {
	t, err := Parse(date)
	if err != nil {
		return 0, err
	}
	// time.Weekday has 0=Sunday; shift to 0=Monday.
	return (int(t.Weekday()) + 6) % 7, nil
}

// AddDays returns the date n days after (or before, for negative n)
// the given date.
func AddDays(date string, n int) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(Layout), nil
}

// LastN returns the last n civil dates in loc ending with today,
// in chronological order (oldest first).
func LastN(loc *time.Location, n int) []string {
	now := time.Now().In(loc)
	dates := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		dates = append(dates, now.AddDate(0, 0, -i).Format(Layout))
	}
	return dates
}

// Range returns every date from start to end inclusive, in
// chronological order. An end before start yields an empty slice.
func Range(start, end string) ([]string, error) {
	from, err := Parse(start)
	if err != nil {
		return nil, err
	}
	to, err := Parse(end)
	if err != nil {
		return nil, err
	}

	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(Layout))
	}
	return dates, nil
}
