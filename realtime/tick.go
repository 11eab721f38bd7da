package realtime

import (
	"github.com/pkg/errors"

	"github.com/comalice/blockx"
	"github.com/comalice/blockx/signal"
	"github.com/comalice/blockx/telemetry"
)

// processTick runs one complete tick.
func (rt *Runtime) processTick(app blockx.App, ctx blockx.Context) error {
	// Phase 1: every block, in wiring order
	app.Step(ctx)

	// Phase 2: hand the tick boundary to telemetry
	if err := rt.publishTick(app, ctx); err != nil {
		return err
	}

	n := rt.tickNum.Add(1)
	rt.logger.V(4).Info("Tick", "tick", n, "time", ctx.Time())
	return nil
}

// publishTick forwards the app's snapshot without ever waiting on the sink.
func (rt *Runtime) publishTick(app blockx.App, ctx blockx.Context) error {
	if rt.publisher == nil {
		return nil
	}
	obs, ok := app.(blockx.Observable)
	if !ok {
		return nil
	}

	snap := obs.Snapshot()
	if err := rt.checkShapes(snap.Outputs); err != nil {
		rt.logger.Error(err, "Telemetry outputs changed shape", "tick", rt.GetTickNumber())
		return err
	}

	rec := telemetry.Record{
		RunID:   rt.runID.String(),
		Tick:    rt.GetTickNumber(),
		Time:    ctx.Time(),
		StateID: snap.StateID,
		Values:  signal.Flatten(snap.Outputs...),
	}
	if !rt.publisher.Publish(rec) {
		rt.metrics.dropped()
	}
	return nil
}

// checkShapes pins the output shapes seen on the first tick.
func (rt *Runtime) checkShapes(outputs []signal.Value) error {
	for i, v := range outputs {
		if v == nil {
			return errors.Wrapf(ErrShapeChanged, "output %d is nil", i)
		}
	}
	if rt.shapes == nil {
		rt.shapes = make([]signal.Shape, len(outputs))
		for i, v := range outputs {
			rt.shapes[i] = signal.ShapeOf(v)
		}
		return nil
	}
	if len(outputs) != len(rt.shapes) {
		return errors.Wrapf(ErrShapeChanged, "%d outputs, first tick had %d", len(outputs), len(rt.shapes))
	}
	for i, v := range outputs {
		if s := signal.ShapeOf(v); !s.Equal(rt.shapes[i]) {
			return errors.Wrapf(ErrShapeChanged, "output %d is %s, first tick had %s", i, s, rt.shapes[i])
		}
	}
	return nil
}
