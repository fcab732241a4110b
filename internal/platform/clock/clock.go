// Package clock abstracts the wall clock so the session engines can be
// tested against a fixed or scripted time source.
package clock

import "time"

// Clock provides the current time. The session engines derive deadlines and
// durations from it rather than calling time.Now directly.
type Clock interface {
	Now() time.Time
}

// systemClock reads the real wall clock in UTC.
type systemClock struct{}

// New returns a Clock backed by the system wall clock.
func New() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// Fixed returns a Clock that always reports the given instant. Intended for
// tests.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

// Stepped returns a Clock that starts at the given instant and can be moved
// forward explicitly. Intended for tests that need time to pass between
// actions.
func Stepped(t time.Time) *SteppedClock {
	return &SteppedClock{now: t}
}

// SteppedClock is a manually advanced Clock.
type SteppedClock struct {
	now time.Time
}

func (c *SteppedClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by d.
func (c *SteppedClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
