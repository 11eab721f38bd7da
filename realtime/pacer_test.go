package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"k8s.io/utils/clock"
	testclock "k8s.io/utils/clock/testing"
)

func TestHybridPacerSleepsToDeadline(t *testing.T) {
	start := time.Unix(1000, 0)
	clk := testclock.NewFakeClock(start)
	p := NewHybridPacer(clk, 250*time.Microsecond, 0)

	deadline := start.Add(10 * time.Millisecond)
	p.Wait(deadline)

	assert.Equal(t, deadline, clk.Now())
}

func TestHybridPacerPastDeadline(t *testing.T) {
	start := time.Unix(1000, 0)
	clk := testclock.NewFakeClock(start)
	p := NewHybridPacer(clk, 250*time.Microsecond, 200*time.Microsecond)

	p.Wait(start.Add(-time.Millisecond))
	p.Wait(start)

	assert.Equal(t, start, clk.Now())
}

func TestHybridPacerBusyWaitsMargin(t *testing.T) {
	clk := clock.RealClock{}
	p := NewHybridPacer(clk, DefaultSleepThreshold, DefaultBusyWaitMargin)

	for _, wait := range []time.Duration{100 * time.Microsecond, 2 * time.Millisecond} {
		deadline := clk.Now().Add(wait)
		p.Wait(deadline)
		assert.False(t, clk.Now().Before(deadline), "returned before deadline for wait %s", wait)
	}
}

func TestNoopPacer(t *testing.T) {
	start := time.Now()
	NoopPacer{}.Wait(start.Add(time.Hour))
	assert.Less(t, time.Since(start), time.Second)
}
