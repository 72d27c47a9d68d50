package clock

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/casperlabs/casper-go/model/casper"
	"github.com/casperlabs/casper-go/module"
)

// TickClock converts wall-clock instants into protocol ticks of a configured
// unit. Tick zero corresponds to the Unix epoch.
type TickClock struct {
	unit  time.Duration
	clock clock.Clock
}

var _ module.TickClock = (*TickClock)(nil)

// NewTickClock returns a tick clock over the system clock.
func NewTickClock(unit time.Duration) *TickClock {
	return NewTickClockWithClock(unit, clock.New())
}

// NewTickClockWithClock returns a tick clock over the given clock, which
// tests can replace with a mock.
func NewTickClockWithClock(unit time.Duration, c clock.Clock) *TickClock {
	if unit <= 0 {
		panic("tick unit must be positive")
	}
	return &TickClock{
		unit:  unit,
		clock: c,
	}
}

func (tc *TickClock) Now() casper.Tick {
	return casper.Tick(tc.clock.Now().UnixNano() / int64(tc.unit))
}

func (tc *TickClock) DurationUntil(tick casper.Tick) time.Duration {
	target := time.Unix(0, int64(tick)*int64(tc.unit))
	delay := target.Sub(tc.clock.Now())
	if delay < 0 {
		return 0
	}
	return delay
}

func (tc *TickClock) After(d time.Duration) <-chan time.Time {
	return tc.clock.After(d)
}
