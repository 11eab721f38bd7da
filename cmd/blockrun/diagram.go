package main

import (
	"math"
	"time"

	"github.com/comalice/blockx"
	"github.com/comalice/blockx/blocks"
	"github.com/comalice/blockx/signal"
)

// heaterDiagram is a small closed loop: a stepped u8 setpoint is scaled,
// smoothed and slew-limited into a target that a first-order plant follows.
// A debounce fires once the tracking error has stayed small, after which a
// stopwatch reports how long the loop has been settled.
type heaterDiagram struct {
	scale *signal.BinaryOp

	filter    *blocks.IIRFilter[float64]
	limiter   *blocks.RateLimiter[float64]
	plant     *blocks.Integral[float64]
	rate      *blocks.Derivative[float64]
	lag       *blocks.Delay[float64]
	settle    *blocks.DelayControl[bool]
	stopwatch *blocks.Timer[float64]

	filterParams  blocks.IIRFilterParams[float64]
	limiterParams blocks.RateLimiterParams[float64]
	plantParams   blocks.IntegralParams[float64]
	rateParams    blocks.DerivativeParams[float64]
	lagParams     blocks.DelayParams[float64]
	settleParams  blocks.DelayControlParams
	timerParams   blocks.TimerParams

	setpoint signal.Scalar
	target   float64
	temp     float64
	slope    float64
	lagged   float64
	settled  bool
	// since is the stopwatch reading, counted from the first settle.
	since float64
}

var (
	_ blockx.App        = (*heaterDiagram)(nil)
	_ blockx.Observable = (*heaterDiagram)(nil)
)

const (
	ambient     = 20.0
	plantGain   = 0.8
	settleBand  = 0.5
	setpointLow = 60
	setpointHi  = 120
	stepAt      = time.Second
)

// newHeaterDiagram instantiates every block once. A promotion or mode error
// here is a wiring defect and aborts startup.
func newHeaterDiagram() (*heaterDiagram, error) {
	scale, err := signal.NewGain(signal.U8, signal.F64)
	if err != nil {
		return nil, err
	}
	settleMode, err := blocks.ParseDelayControlMode("debounce")
	if err != nil {
		return nil, err
	}
	timerMode, err := blocks.ParseTimerMode("stop_watch")
	if err != nil {
		return nil, err
	}

	return &heaterDiagram{
		scale:     scale,
		filter:    blocks.NewIIRFilter[float64](),
		limiter:   blocks.NewRateLimiterWithIC(ambient),
		plant:     blocks.NewIntegral[float64](),
		rate:      blocks.NewDerivative[float64](5),
		lag:       blocks.NewDelayWithIC(3, ambient),
		settle:    blocks.NewDelayControl[bool](),
		stopwatch: blocks.NewTimer[float64](),

		filterParams:  blocks.IIRFilterParams[float64]{TimeConstant: 0.25, IC: ambient},
		limiterParams: blocks.RateLimiterParams[float64]{RisingRate: 15, FallingRate: -15},
		plantParams: blocks.IntegralParams[float64]{
			IC:         ambient,
			ClampLimit: 500,
			Method:     blocks.Trapezoidal,
		},
		settleParams: blocks.DelayControlParams{Delay: 500 * time.Millisecond, Mode: settleMode},
		timerParams:  blocks.TimerParams{Mode: timerMode},

		temp:   ambient,
		lagged: ambient,
	}, nil
}

// Step runs one tick, in wiring order.
func (d *heaterDiagram) Step(ctx blockx.Context) {
	cmd := uint8(setpointLow)
	if ctx.Time() >= stepAt {
		cmd = setpointHi
	}
	d.setpoint = signal.NewScalar(cmd)
	scaled := d.scale.Apply(d.setpoint, signal.NewScalar(0.5)).Float64()

	smoothed := d.filter.Process(d.filterParams, ctx, scaled)
	d.target = d.limiter.Process(d.limiterParams, ctx, smoothed)

	// The plant integrates its own tracking error from the previous tick.
	d.temp = d.plant.Process(d.plantParams, ctx, blocks.IntegralInput[float64]{
		Sample: plantGain * (d.target - d.temp),
	})
	d.slope = d.rate.Process(d.rateParams, ctx, d.temp)
	d.lagged = d.lag.Process(d.lagParams, ctx, d.temp)

	tracking := math.Abs(d.target-d.temp) > settleBand
	if d.settle.Process(d.settleParams, ctx, tracking) {
		d.settled = true
	}
	if tracking {
		d.settled = false
	}

	trigger := 0.0
	if d.settled {
		trigger = 1
	}
	d.since = d.stopwatch.Process(d.timerParams, ctx, trigger)
}

func (d *heaterDiagram) Snapshot() blockx.Snapshot {
	state := "tracking"
	if d.settled {
		state = "settled"
	}
	return blockx.Snapshot{
		StateID: state,
		Outputs: []signal.Value{
			d.setpoint,
			signal.NewScalar(d.target),
			signal.NewScalar(d.temp),
			signal.NewScalar(d.slope),
			signal.NewScalar(d.lagged),
			signal.NewScalar(d.since),
		},
	}
}
