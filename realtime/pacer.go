package realtime

import (
	"runtime"
	"time"

	"k8s.io/utils/clock"
)

// Pacer holds the tick loop until the next tick is due.
type Pacer interface {
	// Wait returns once deadline has passed. A deadline already in the past
	// returns at once: overruns are not caught up.
	Wait(deadline time.Time)
}

// HybridPacer sleeps through the bulk of the wait and busy-waits the last
// Margin so that OS wake-up latency does not delay the tick.
type HybridPacer struct {
	Clock clock.Clock
	// Threshold is the shortest remaining wait worth sleeping for.
	Threshold time.Duration
	// Margin is subtracted from each sleep and spun instead.
	Margin time.Duration
}

var _ Pacer = (*HybridPacer)(nil)

// NewHybridPacer returns a HybridPacer on clk.
func NewHybridPacer(clk clock.Clock, threshold, margin time.Duration) *HybridPacer {
	return &HybridPacer{Clock: clk, Threshold: threshold, Margin: margin}
}

func (p *HybridPacer) Wait(deadline time.Time) {
	remaining := deadline.Sub(p.Clock.Now())
	if remaining <= 0 {
		return
	}
	if remaining > p.Threshold {
		if sleep := remaining - p.Margin; sleep > 0 {
			p.Clock.Sleep(sleep)
		}
	}
	for p.Clock.Now().Before(deadline) {
		runtime.Gosched()
	}
}

// NoopPacer never waits. It is used in simulation mode.
type NoopPacer struct{}

func (NoopPacer) Wait(time.Time) {}
