package utils

import (
	"time"
)

// rippleEpochOffset is the offset in seconds between the XRP Ledger epoch
// (2000-01-01T00:00:00Z) and the Unix epoch.
const rippleEpochOffset = 946684800

// DayLayout is the calendar-day key format used across rollups, cohorts and
// the remote snapshot document. Always UTC.
const DayLayout = "2006-01-02"

// RippleTimeToUnixMs converts a close time expressed in seconds since the
// XRP Ledger epoch to Unix epoch milliseconds.
func RippleTimeToUnixMs(rippleSeconds int64) int64 {
	return (rippleSeconds + rippleEpochOffset) * 1000
}

// DayKey returns the UTC calendar-day key for t.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// DayKeyFromUnixMs returns the UTC calendar-day key for a Unix-ms timestamp.
func DayKeyFromUnixMs(ms int64) string {
	return DayKey(time.UnixMilli(ms))
}

// ParseDay parses a calendar-day key back into a UTC midnight time.
func ParseDay(day string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, day, time.UTC)
}

// DaysBetween returns the whole calendar days from an earlier day key to a
// later one. Unparseable keys count as zero days apart.
func DaysBetween(from, to string) int {
	a, err := ParseDay(from)
	if err != nil {
		return 0
	}
	b, err := ParseDay(to)
	if err != nil {
		return 0
	}
	return int(b.Sub(a).Hours() / 24)
}
