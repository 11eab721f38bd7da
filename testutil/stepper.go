package testutil

import (
	"time"

	"github.com/comalice/blockx"
)

// Stepper hands out the Contexts a scheduler would produce, so block tests
// can drive ticks deterministically without a runtime.
type Stepper struct {
	ctx     blockx.StepContext
	dt      time.Duration
	started bool
}

// NewStepper returns a Stepper whose run has a fundamental timestep of dt.
func NewStepper(dt time.Duration) *Stepper {
	return &Stepper{ctx: blockx.FirstStep(dt), dt: dt}
}

// Next returns the context of the next tick, dt after the previous one. The
// first call returns the first-tick context, which has no timestep.
func (s *Stepper) Next() blockx.Context {
	return s.Advance(s.dt)
}

// Advance is like Next with an explicit spacing. dt may be zero.
func (s *Stepper) Advance(dt time.Duration) blockx.Context {
	if !s.started {
		s.started = true
	} else {
		s.ctx = s.ctx.Next(dt)
	}
	c := s.ctx
	return &c
}

// Time returns the time of the last context handed out.
func (s *Stepper) Time() time.Duration {
	return s.ctx.Time()
}

// Drive feeds inputs through blk, one per tick, and collects the outputs.
func Drive[P, I, O any](blk blockx.ProcessBlock[P, I, O], p P, s *Stepper, inputs ...I) []O {
	out := make([]O, len(inputs))
	for i, in := range inputs {
		out[i] = blk.Process(p, s.Next(), in)
	}
	return out
}
