package clock_test

import (
	"testing"
	"time"

	bclock "github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"

	"github.com/casperlabs/casper-go/model/casper"
	modclock "github.com/casperlabs/casper-go/module/clock"
)

func TestTickClockNow(t *testing.T) {
	mock := bclock.NewMock()
	tc := modclock.NewTickClockWithClock(time.Second, mock)

	assert.Equal(t, casper.Tick(0), tc.Now())

	mock.Add(90 * time.Second)
	assert.Equal(t, casper.Tick(90), tc.Now())

	// partial ticks truncate
	mock.Add(500 * time.Millisecond)
	assert.Equal(t, casper.Tick(90), tc.Now())
}

func TestTickClockDurationUntil(t *testing.T) {
	mock := bclock.NewMock()
	tc := modclock.NewTickClockWithClock(time.Second, mock)

	assert.Equal(t, 10*time.Second, tc.DurationUntil(10))

	// past ticks clamp to zero
	mock.Add(20 * time.Second)
	assert.Equal(t, time.Duration(0), tc.DurationUntil(10))
	assert.Equal(t, time.Duration(0), tc.DurationUntil(20))
}
