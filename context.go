package blockx

import "time"

// Context is the read-only clock view handed to every block call.
type Context interface {
	// Time is the application time of the current tick.
	Time() time.Duration
	// Timestep is the time elapsed since the previous tick. It reports false
	// on the first tick, when there is no previous sample.
	Timestep() (time.Duration, bool)
	// FundamentalTimestep is the nominal period of the run. It never changes.
	FundamentalTimestep() time.Duration
}

// StepContext is the Context the scheduler builds for each tick.
type StepContext struct {
	now         time.Duration
	timestep    time.Duration
	hasTimestep bool
	fundamental time.Duration
}

var _ Context = (*StepContext)(nil)

// FirstStep returns the context of the first tick of a run: time zero and no
// timestep.
func FirstStep(fundamental time.Duration) StepContext {
	return StepContext{fundamental: fundamental}
}

// NewStepContext returns a context for a tick at now, dt after the previous one.
func NewStepContext(now, dt, fundamental time.Duration) StepContext {
	return StepContext{now: now, timestep: dt, hasTimestep: true, fundamental: fundamental}
}

// Next returns the context of the tick that follows c after dt.
func (c StepContext) Next(dt time.Duration) StepContext {
	return NewStepContext(c.now+dt, dt, c.fundamental)
}

// At returns the context of the tick at now, computing the timestep from c.
func (c StepContext) At(now time.Duration) StepContext {
	return NewStepContext(now, now-c.now, c.fundamental)
}

func (c *StepContext) Time() time.Duration { return c.now }

func (c *StepContext) Timestep() (time.Duration, bool) { return c.timestep, c.hasTimestep }

func (c *StepContext) FundamentalTimestep() time.Duration { return c.fundamental }

// TimestepSeconds returns the timestep of ctx in seconds, or zero on the
// first tick.
func TimestepSeconds(ctx Context) float64 {
	dt, ok := ctx.Timestep()
	if !ok {
		return 0
	}
	return dt.Seconds()
}
