package pacing

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Throttle lets the first call of a window through and drops the others
// until the window is over. The next call after that opens a new window.
type Throttle struct {
	clock    clockwork.Clock
	interval time.Duration
	closesAt time.Time
	open     bool
}

func NewThrottle(clock clockwork.Clock, interval time.Duration) *Throttle {
	return &Throttle{clock: clock, interval: interval}
}

// Allow reports whether a change arriving now opens a new window.
func (t *Throttle) Allow() bool {
	now := t.clock.Now()
	if t.open && now.Before(t.closesAt) {
		return false
	}
	t.open = true
	t.closesAt = now.Add(t.interval)
	return true
}

// Reset closes the current window.
func (t *Throttle) Reset() {
	t.open = false
}
