package util

import (
	"strconv"
	"time"
)

// ParseTime tries RFC3339, plain dates (2006-01-02), and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}

// TruncatePeriod floors t to the start of its reporting period in UTC:
// daily -> midnight, weekly -> Monday midnight, monthly -> first of month.
func TruncatePeriod(t time.Time, period string) time.Time {
	t = t.UTC()
	switch period {
	case "weekly":
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		// Weekday is Sunday=0; shift so weeks start on Monday
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case "monthly":
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default: // daily
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

// PeriodKey renders a bucket start as its canonical label.
func PeriodKey(t time.Time, period string) string {
	if period == "monthly" {
		return t.UTC().Format("2006-01")
	}
	return t.UTC().Format("2006-01-02")
}

// DaysBetween returns whole days elapsed from a to b (never negative).
func DaysBetween(a, b time.Time) int {
	d := int(b.Sub(a).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
