// Package clock provides time utilities for the application
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/KirkDiggler/pokequest/internal/pkg/clock Clock,Timer

// Clock provides time functionality
type Clock interface {
	Now() time.Time

	// NewTimer starts a timer that fires once after d
	NewTimer(d time.Duration) Timer
}

// Timer is a stoppable one-shot timer
type Timer interface {
	C() <-chan time.Time

	// Stop prevents the timer from firing. It reports whether the timer was still pending.
	Stop() bool
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now()
}

// NewTimer returns a timer backed by time.NewTimer
func (c *Real) NewTimer(d time.Duration) Timer {
	return &realTimer{t: time.NewTimer(d)}
}

type realTimer struct {
	t *time.Timer
}

func (r *realTimer) C() <-chan time.Time { return r.t.C }

func (r *realTimer) Stop() bool { return r.t.Stop() }

// New returns a new real clock
func New() Clock {
	return &Real{}
}
