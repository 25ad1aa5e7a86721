package game

import "time"

// FrameClock measures time since start and between ticks.
type FrameClock struct {
	now   func() time.Time
	start time.Time
	last  time.Time
}

// NewFrameClock starts a clock. A nil now uses time.Now.
func NewFrameClock(now func() time.Time) *FrameClock {
	if now == nil {
		now = time.Now
	}
	t := now()
	return &FrameClock{now: now, start: t, last: t}
}

// Tick advances the clock and returns seconds since start and since the previous tick.
func (c *FrameClock) Tick() (elapsed, delta float64) {
	t := c.now()
	elapsed = t.Sub(c.start).Seconds()
	delta = t.Sub(c.last).Seconds()
	c.last = t
	return elapsed, delta
}

// Elapsed returns seconds since start without advancing the clock.
func (c *FrameClock) Elapsed() float64 {
	return c.now().Sub(c.start).Seconds()
}
