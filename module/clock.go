package module

import (
	"time"

	"github.com/casperlabs/casper-go/model/casper"
)

// TickClock converts between the protocol's integer logical clock and wall
// time. It only needs to be monotone enough for scheduling; drift is
// tolerated by the round schedule's redundancy.
type TickClock interface {

	// Now returns the current tick.
	Now() casper.Tick

	// DurationUntil returns the wall-clock delay until the given tick,
	// clamped to zero for ticks in the past.
	DurationUntil(tick casper.Tick) time.Duration

	// After returns a channel that delivers the current time once the given
	// duration has elapsed.
	After(d time.Duration) <-chan time.Time
}
