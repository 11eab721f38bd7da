package testutil

import (
	"context"
	"time"

	"github.com/comalice/blockx"
	"github.com/comalice/blockx/realtime"
	"github.com/comalice/blockx/signal"
)

// RunnerAdapter provides a common interface for driving an observable app by
// hand and through the scheduler. This allows running the same scenario on
// both and comparing the traces.
type RunnerAdapter interface {
	// Run executes ticks ticks of app and returns the flattened outputs of
	// every tick.
	Run(ctx context.Context, app ObservableApp, ticks int) ([][]float64, error)
}

// ObservableApp is an App that exposes telemetry.
type ObservableApp interface {
	blockx.App
	blockx.Observable
}

// SteppedAdapter drives the app with a Stepper, with no scheduler involved.
type SteppedAdapter struct {
	Period time.Duration
}

func (a SteppedAdapter) Run(_ context.Context, app ObservableApp, ticks int) ([][]float64, error) {
	s := NewStepper(a.Period)
	trace := make([][]float64, 0, ticks)
	for range ticks {
		app.Step(s.Next())
		trace = append(trace, signal.Flatten(app.Snapshot().Outputs...))
	}
	return trace, nil
}

// SimulationAdapter drives the app with a simulation-mode Runtime bounded to
// exactly ticks periods.
type SimulationAdapter struct {
	Frequency float64
	Options   []realtime.Option
}

func (a SimulationAdapter) Run(ctx context.Context, app ObservableApp, ticks int) ([][]float64, error) {
	if ticks < 1 {
		return nil, nil
	}
	cfg := realtime.Config{Frequency: a.Frequency}.WithDefaults()
	// Ending half a period after the last tick keeps rounding of the period
	// from adding or losing a tick.
	cfg.RunTime = realtime.Duration(time.Duration(ticks)*cfg.Period() - cfg.Period()/2)

	rec := &recorder{ObservableApp: app}
	rt, err := realtime.NewRuntime(cfg, a.Options...)
	if err != nil {
		return nil, err
	}
	if err := rt.Run(ctx, rec); err != nil {
		return rec.trace, err
	}
	return rec.trace, nil
}

// recorder snapshots the wrapped app after every step.
type recorder struct {
	ObservableApp
	trace [][]float64
}

func (r *recorder) Step(ctx blockx.Context) {
	r.ObservableApp.Step(ctx)
	r.trace = append(r.trace, signal.Flatten(r.Snapshot().Outputs...))
}
