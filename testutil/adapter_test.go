package testutil

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/comalice/blockx"
	"github.com/comalice/blockx/blocks"
	"github.com/comalice/blockx/signal"
)

// rampApp slews toward a target and integrates the result.
type rampApp struct {
	limiter  *blocks.RateLimiter[float64]
	integral *blocks.Integral[float64]
	timer    *blocks.Timer[float64]
	pos, sum float64
	elapsed  float64
}

func newRampApp() *rampApp {
	return &rampApp{
		limiter:  blocks.NewRateLimiter[float64](),
		integral: blocks.NewIntegral[float64](),
		timer:    blocks.NewTimer[float64](),
	}
}

func (a *rampApp) Step(ctx blockx.Context) {
	a.pos = a.limiter.Process(blocks.RateLimiterParams[float64]{RisingRate: 2, FallingRate: -2}, ctx, 5)
	a.sum = a.integral.Process(blocks.IntegralParams[float64]{ClampLimit: math.Inf(1), Method: blocks.Rectangle}, ctx, blocks.IntegralInput[float64]{Sample: a.pos})
	a.elapsed = a.timer.Process(blocks.TimerParams{Mode: blocks.StopWatch}, ctx, 1)
}

func (a *rampApp) Snapshot() blockx.Snapshot {
	return blockx.Snapshot{Outputs: []signal.Value{
		signal.NewScalar(a.pos),
		signal.NewScalar(a.sum),
		signal.NewScalar(a.elapsed),
	}}
}

// TestAdaptersAgree verifies that hand-stepping and the simulation runtime
// hand blocks the same contexts.
func TestAdaptersAgree(t *testing.T) {
	const ticks = 50

	tests := []struct {
		name    string
		adapter RunnerAdapter
	}{
		{name: "Stepped", adapter: SteppedAdapter{Period: 100 * time.Millisecond}},
		{name: "Simulation", adapter: SimulationAdapter{Frequency: 10}},
	}

	var traces [][][]float64
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trace, err := tt.adapter.Run(context.Background(), newRampApp(), ticks)
			require.NoError(t, err)
			require.Len(t, trace, ticks)
			require.Equal(t, []float64{0, 0, 0}, trace[0])
			traces = append(traces, trace)
		})
	}

	require.Len(t, traces, 2)
	if diff := cmp.Diff(traces[0], traces[1], cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("stepped and simulated traces differ (-stepped +simulated):\n%s", diff)
	}
}
