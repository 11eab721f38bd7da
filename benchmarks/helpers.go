// Package benchmarks provides shared helpers for diagram and scheduler
// benchmarks.
package benchmarks

import (
	"github.com/comalice/blockx"
	"github.com/comalice/blockx/blocks"
	"github.com/comalice/blockx/signal"
)

// ChainDiagram feeds a constant through n stages of IIR filter, rate limiter
// and integral, one after the other.
type ChainDiagram struct {
	filters   []*blocks.IIRFilter[float64]
	limiters  []*blocks.RateLimiter[float64]
	integrals []*blocks.Integral[float64]
	out       float64
}

var (
	filterParams   = blocks.IIRFilterParams[float64]{TimeConstant: 0.1}
	limiterParams  = blocks.RateLimiterParams[float64]{RisingRate: 100, FallingRate: -100}
	integralParams = blocks.IntegralParams[float64]{ClampLimit: 1e6, Method: blocks.Trapezoidal}
)

// GenChainDiagram creates a chain of n stages. n below 1 is raised to 1.
func GenChainDiagram(n int) *ChainDiagram {
	n = max(n, 1)
	d := &ChainDiagram{
		filters:   make([]*blocks.IIRFilter[float64], n),
		limiters:  make([]*blocks.RateLimiter[float64], n),
		integrals: make([]*blocks.Integral[float64], n),
	}
	for i := range n {
		d.filters[i] = blocks.NewIIRFilter[float64]()
		d.limiters[i] = blocks.NewRateLimiter[float64]()
		d.integrals[i] = blocks.NewIntegral[float64]()
	}
	return d
}

func (d *ChainDiagram) Step(ctx blockx.Context) {
	v := 1.0
	for i := range d.filters {
		v = d.filters[i].Process(filterParams, ctx, v)
		v = d.limiters[i].Process(limiterParams, ctx, v)
		v = d.integrals[i].Process(integralParams, ctx, blocks.IntegralInput[float64]{Sample: v})
	}
	d.out = v
}

func (d *ChainDiagram) Snapshot() blockx.Snapshot {
	return blockx.Snapshot{StateID: "chain", Outputs: []signal.Value{signal.NewScalar(d.out)}}
}

// MatrixDiagram runs a rows x cols IIR filter and delay element-wise.
type MatrixDiagram struct {
	in     *signal.Matrix[float64]
	filter *blocks.MatrixIIRFilter[float64]
	delay  *blocks.MatrixDelay[float64]
	out    *signal.Matrix[float64]
}

func GenMatrixDiagram(rows, cols int) *MatrixDiagram {
	return &MatrixDiagram{
		in:     signal.FilledMatrix(rows, cols, 1.0),
		filter: blocks.NewMatrixIIRFilter[float64](rows, cols),
		delay:  blocks.NewMatrixDelay[float64](4, rows, cols),
	}
}

func (d *MatrixDiagram) Step(ctx blockx.Context) {
	f := d.filter.Process(blocks.MatrixIIRFilterParams[float64]{TimeConstant: 0.1}, ctx, d.in)
	d.out = d.delay.Process(blocks.MatrixDelayParams[float64]{}, ctx, f)
}
