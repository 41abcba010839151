package session

import (
	"context"
	"time"
)

// DefaultPeriod is the simulation tick period (20 ticks per second).
const DefaultPeriod = 50 * time.Millisecond

// Plan decides how many ticks are due at now given the next deadline.
// When more than maxSkip+1 ticks are due the clock gives up catching up:
// it runs maxSkip+1 ticks and resynchronises to now.
func Plan(now, deadline time.Time, period time.Duration, maxSkip int) (ticks int, next time.Time) {
	if now.Before(deadline) {
		return 0, deadline
	}
	due := int(now.Sub(deadline)/period) + 1
	if due > maxSkip+1 {
		return maxSkip + 1, now.Add(period)
	}
	return due, deadline.Add(time.Duration(due) * period)
}

// Clock drives a fixed-period tick loop with frame skipping.
type Clock struct {
	Period  time.Duration
	MaxSkip int

	now func() time.Time
}

func NewClock(period time.Duration, maxSkip int) *Clock {
	if period <= 0 {
		period = DefaultPeriod
	}
	if maxSkip < 0 {
		maxSkip = 0
	}
	return &Clock{Period: period, MaxSkip: maxSkip, now: time.Now}
}

// Run calls tick until ctx is done or tick returns false. Catch-up ticks are
// called with render false; only the last due tick renders.
func (c *Clock) Run(ctx context.Context, tick func(render bool) bool) error {
	deadline := c.now().Add(c.Period)

	timer := time.NewTimer(c.Period)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		n, next := Plan(c.now(), deadline, c.Period, c.MaxSkip)
		for i := 0; i < n; i++ {
			if !tick(i == n-1) {
				return nil
			}
		}
		deadline = next

		sleep := deadline.Sub(c.now())
		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)
	}
}
