package clock

import "time"

// Clock provides current time.
type Clock interface {
	Now() time.Time
}

// Real is the default clock.
type Real struct{}

// Now returns current time in UTC.
func (Real) Now() time.Time { return time.Now().UTC() }
