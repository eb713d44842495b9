// Package schedule implements the adaptive schedule engine: a countdown
// clock, the proportional scale calculator, the live budget calculator,
// and the presentation session that sequences segments over a document.
package schedule

import "time"

// Clock is a monotonically advancing elapsed-time counter over a fixed
// total duration. It has no knowledge of segments and does not own its
// tick cadence; the host delivers Tick once per second while running.
type Clock struct {
	totalSeconds     int
	elapsedSeconds   int
	remainingSeconds int
	startTime        time.Time
	running          bool

	now func() time.Time
}

// NewClock creates a stopped clock counting down from totalSeconds.
func NewClock(totalSeconds int) *Clock {
	return &Clock{
		totalSeconds:     totalSeconds,
		remainingSeconds: totalSeconds,
		now:              time.Now,
	}
}

// Start begins counting. The wall-clock start time is recorded only on
// the first start; resuming after a pause keeps the original start time.
// Starting a running clock is a no-op.
func (c *Clock) Start() {
	if c.running {
		return
	}
	if c.startTime.IsZero() {
		c.startTime = c.now()
	}
	c.running = true
}

// Pause stops counting. Elapsed and remaining freeze at their last tick.
func (c *Clock) Pause() {
	c.running = false
}

// Reset returns the clock to its initial stopped state with a new total
// duration.
func (c *Clock) Reset(totalSeconds int) {
	c.totalSeconds = totalSeconds
	c.elapsedSeconds = 0
	c.remainingSeconds = totalSeconds
	c.startTime = time.Time{}
	c.running = false
}

// Seek jumps the clock as if cumulativeSeconds had already elapsed and
// starts it. Remaining time is not floored here: seeking past the total
// leaves it negative, which signals overtime.
func (c *Clock) Seek(cumulativeSeconds int) {
	c.elapsedSeconds = cumulativeSeconds
	c.remainingSeconds = c.totalSeconds - cumulativeSeconds
	c.startTime = c.now().Add(-time.Duration(cumulativeSeconds) * time.Second)
	c.running = true
}

// Tick advances the clock by one second. Remaining time floors at zero;
// it never goes negative through ticking alone.
func (c *Clock) Tick() {
	if !c.running {
		return
	}
	c.elapsedSeconds++
	if c.remainingSeconds > 0 {
		c.remainingSeconds--
	}
}

// Elapsed returns the elapsed time in seconds.
func (c *Clock) Elapsed() int { return c.elapsedSeconds }

// Remaining returns the remaining time in seconds. It can be negative
// after a Seek past the total duration.
func (c *Clock) Remaining() int { return c.remainingSeconds }

// Total returns the total duration in seconds.
func (c *Clock) Total() int { return c.totalSeconds }

// IsRunning reports whether the clock is counting.
func (c *Clock) IsRunning() bool { return c.running }

// StartTime returns the wall-clock time of the first start, or the
// virtual start set by Seek. Zero until the clock has started.
func (c *Clock) StartTime() time.Time { return c.startTime }
