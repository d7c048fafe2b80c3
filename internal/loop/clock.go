package loop

import "time"

// DefaultMaxCatchUp bounds how many ticks a single Advance may return after a
// stall, so a long pause does not trigger a burst of catch-up ticks.
const DefaultMaxCatchUp = 8

// Clock converts wall-clock time into a whole number of fixed simulation ticks
// plus the fraction of the next tick already elapsed.
type Clock struct {
	tps         int
	step        time.Duration
	accumulator time.Duration
	last        time.Time

	// MaxCatchUp caps the ticks returned by one Advance. Time beyond the cap
	// is dropped. Zero or less means DefaultMaxCatchUp.
	MaxCatchUp int
}

// NewClock constructs a Clock targeting the given ticks per second. A rate of
// zero or less starts the clock paused.
func NewClock(tps int) *Clock {
	c := &Clock{}
	c.SetTPS(tps)
	return c
}

// SetTPS changes the tick rate. Zero or less pauses the clock; the elapsed
// fraction is kept so rendering holds still.
func (c *Clock) SetTPS(tps int) {
	if tps <= 0 {
		c.tps = 0
		return
	}
	frac := c.Fraction()
	c.tps = tps
	c.step = time.Second / time.Duration(tps)
	c.accumulator = time.Duration(frac * float64(c.step))
}

// TPS returns the tick rate, 0 when paused.
func (c *Clock) TPS() int { return c.tps }

// Paused reports whether the clock is stopped.
func (c *Clock) Paused() bool { return c.tps == 0 }

// Fraction returns how far the clock is into the next tick, in [0,1).
func (c *Clock) Fraction() float64 {
	if c.step <= 0 {
		return 0
	}
	return float64(c.accumulator) / float64(c.step)
}

// Advance accounts for the time elapsed since the previous call and reports
// how many ticks are due, together with the fraction of the next tick that
// has elapsed. The first call only starts the clock.
func (c *Clock) Advance(now time.Time) (ticks int, fraction float64) {
	if c.last.IsZero() {
		c.last = now
		return 0, c.Fraction()
	}
	delta := now.Sub(c.last)
	c.last = now
	if c.Paused() || delta <= 0 {
		return 0, c.Fraction()
	}

	limit := c.MaxCatchUp
	if limit <= 0 {
		limit = DefaultMaxCatchUp
	}

	c.accumulator += delta
	for c.accumulator >= c.step {
		c.accumulator -= c.step
		ticks++
		if ticks == limit {
			c.accumulator %= c.step
			break
		}
	}
	return ticks, c.Fraction()
}
