package utils

import (
	"strings"
	"time"
)

const (
	layoutDate    = "2006-01-02"
	layoutCompact = "20060102"
)

// ParseDate parses YYYY-MM-DD in local timezone (midnight).
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// FormatDateCompact formats time to YYYYMMDD, used in booking references.
func FormatDateCompact(t time.Time) string {
	return t.In(time.Local).Format(layoutCompact)
}

// DaysUntil counts whole days from today's date to the given travel date.
// Both sides are truncated to midnight so a booking made late tonight for
// tomorrow still counts as one day of lead time.
func DaysUntil(travelDate time.Time, now time.Time) int {
	y, m, d := now.In(time.Local).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return int(travelDate.Sub(today).Hours() / 24)
}
