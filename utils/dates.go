package utils

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate accepts a plain ISO date or a full RFC3339 timestamp and returns
// the civil date pinned to midnight UTC. Bookings are date-only; every date
// in the system is a UTC midnight so comparisons never mix zones.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return StartOfDay(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return StartOfDay(t), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
}

// StartOfDay pins t's civil date to midnight UTC. The date is taken as the
// caller stated it (in t's own zone), not shifted to the UTC calendar.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the server's current civil date at midnight UTC, the same
// normalization StartOfDay applies to parsed dates.
func Today() time.Time {
	return StartOfDay(time.Now())
}

// Nights returns the length of stay in whole nights for a half-open
// [checkIn, checkOut) interval, rounding partial days up.
func Nights(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	n := int(d.Hours() / 24)
	if time.Duration(n)*24*time.Hour < d {
		n++
	}
	return n
}
