package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// It is used by the Navigator to determine "today" and the navigable range.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Today returns the local civil date of the clock.
func Today(c Clock) CivilDate {
	return CivilDateOf(c.Now())
}
