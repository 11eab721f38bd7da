package realtime

import (
	"time"

	"k8s.io/utils/clock"
)

// Timing owns the run/stop decision and the application clock of a run.
type Timing struct {
	period   time.Duration
	runTime  time.Duration
	realtime bool

	clock clock.PassiveClock
	pacer Pacer

	start          time.Time
	iterationStart time.Time
	appTime        time.Duration
}

// TickStats describes the iteration that just ended.
type TickStats struct {
	// Work is the time spent between the start of the iteration and the
	// moment pacing began.
	Work time.Duration
	// Overrun is set when Work exceeded the period.
	Overrun bool
}

// NewTiming returns the Timing for cfg. cfg must be validated.
func NewTiming(cfg Config, clk clock.PassiveClock, pacer Pacer) *Timing {
	if !cfg.Realtime || pacer == nil {
		pacer = NoopPacer{}
	}
	return &Timing{
		period:   cfg.Period(),
		runTime:  cfg.RunTime.Std(),
		realtime: cfg.Realtime,
		clock:    clk,
		pacer:    pacer,
	}
}

// Start marks the beginning of the run.
func (t *Timing) Start() {
	t.start = t.clock.Now()
	t.iterationStart = t.start
	t.appTime = 0
}

// ShouldRun reports whether a tick at appTime belongs to the run.
func (t *Timing) ShouldRun(appTime time.Duration) bool {
	return t.runTime == 0 || appTime < t.runTime
}

// Advance ends the current iteration: it paces (in realtime mode), starts
// the next iteration and updates the application time.
func (t *Timing) Advance() TickStats {
	work := t.clock.Since(t.iterationStart)
	if t.realtime {
		t.pacer.Wait(t.iterationStart.Add(t.period))
	}

	t.iterationStart = t.clock.Now()
	if t.realtime {
		t.appTime = t.iterationStart.Sub(t.start)
	} else {
		t.appTime += t.period
	}
	return TickStats{Work: work, Overrun: work > t.period}
}

// AppTime returns the application time of the current iteration.
func (t *Timing) AppTime() time.Duration { return t.appTime }

// Period returns the nominal tick period.
func (t *Timing) Period() time.Duration { return t.period }
