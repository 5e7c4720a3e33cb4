// Package datekey turns timestamps into the canonical day key shared by planned
// meals, intake records and their read predicates.
package datekey

import "time"

// StartOfDay returns midnight of t's calendar day in the process-local zone.
// The zone is read at call time; applying it twice yields the same value.
func StartOfDay(t time.Time) time.Time {
	local := t.In(time.Local)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
}

// IsStartOfDay reports whether t is already a canonical day key.
func IsStartOfDay(t time.Time) bool {
	return StartOfDay(t).Equal(t)
}

// ParseDay reads a "2006-01-02" string as a local calendar day.
func ParseDay(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, time.Local)
}
