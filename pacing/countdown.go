package pacing

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Countdown is a one-shot timer where starting again supersedes the pending run.
//
// The expire callback runs on the timer goroutine and receives the generation
// of the run that fired. Its owner hands that generation back to Expired from
// its own goroutine: only the latest, still armed generation is accepted, so a
// run that fired while being superseded or stopped is ignored.
type Countdown struct {
	clock      clockwork.Clock
	delay      time.Duration
	expire     func(generation uint64)
	timer      clockwork.Timer
	generation uint64
	armed      bool
}

func NewCountdown(clock clockwork.Clock, delay time.Duration, expire func(generation uint64)) *Countdown {
	return &Countdown{clock: clock, delay: delay, expire: expire}
}

// Start (re)arms the countdown, cancelling any pending run.
func (c *Countdown) Start() {
	c.Stop()
	c.generation++
	c.armed = true
	generation := c.generation
	c.timer = c.clock.AfterFunc(c.delay, func() {
		c.expire(generation)
	})
}

// Stop disarms the countdown. A run already in flight will be refused by Expired.
func (c *Countdown) Stop() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.armed = false
}

// Expired consumes a fired generation and reports whether it is the live one.
func (c *Countdown) Expired(generation uint64) bool {
	if !c.armed || generation != c.generation {
		return false
	}
	c.armed = false
	c.timer = nil
	return true
}
