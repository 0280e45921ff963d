// Package clock supplies the current instant and day-key helpers.
// Everything in the log is keyed and compared in UTC.
package clock

import "time"

// DayFormat is the calendar-day key format used throughout the timeline.
// Keys in this format sort lexicographically in chronological order.
const DayFormat = "2006-01-02"

// Clock provides the current instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// System returns a Clock backed by the system clock, in UTC.
func System() Clock {
	return systemClock{}
}

// DayKey returns the calendar-day key for t.
func DayKey(t time.Time) string {
	return t.Format(DayFormat)
}

// Midnight truncates t to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Fixed returns a Clock that always reports t. Intended for tests.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
