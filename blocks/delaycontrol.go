package blocks

import (
	"time"

	"github.com/comalice/blockx"
	"github.com/comalice/blockx/signal"
)

// DelayControlParams configures DelayControl.
type DelayControlParams struct {
	Delay time.Duration
	Mode  DelayControlMode
}

// DelayControl debounces or throttles a truthy (non-zero) input.
//
// Debounce: a true input arms the block and outputs false. Once the input
// has been false for at least Delay since the last true sample, the block
// outputs true for one tick and disarms.
//
// Throttle: a true input outputs true when the block is idle, then the block
// ignores further true inputs until Delay has elapsed.
type DelayControl[T comparable] struct {
	last  time.Duration
	armed bool
}

var _ blockx.ProcessBlock[DelayControlParams, bool, bool] = (*DelayControl[bool])(nil)

func NewDelayControl[T comparable]() *DelayControl[T] {
	return &DelayControl[T]{}
}

// Process implements blockx.ProcessBlock.
func (d *DelayControl[T]) Process(p DelayControlParams, ctx blockx.Context, in T) bool {
	return d.step(p, ctx.Time(), signal.Truthy(in))
}

func (d *DelayControl[T]) step(p DelayControlParams, now time.Duration, high bool) bool {
	switch p.Mode {
	case Throttle:
		if d.armed && now-d.last >= p.Delay {
			d.armed = false
		}
		if high && !d.armed {
			d.armed = true
			d.last = now
			return true
		}
		return false
	case Debounce:
		if high {
			d.armed = true
			d.last = now
			return false
		}
		if d.armed && now-d.last >= p.Delay {
			d.armed = false
			return true
		}
		return false
	default:
		panic(unknownMode("delay control mode", uint8(p.Mode)))
	}
}

// MatrixDelayControl applies DelayControl element-wise.
type MatrixDelayControl[T signal.Element] struct {
	elems  []*DelayControl[T]
	output *signal.Matrix[bool]
}

func NewMatrixDelayControl[T signal.Element](rows, cols int) *MatrixDelayControl[T] {
	d := &MatrixDelayControl[T]{output: signal.NewMatrix[bool](rows, cols)}
	d.elems = newElements(d.output, NewDelayControl[T])
	return d
}

// Process implements blockx.ProcessBlock.
func (d *MatrixDelayControl[T]) Process(p DelayControlParams, ctx blockx.Context, in *signal.Matrix[T]) *signal.Matrix[bool] {
	signal.MustSameShape(d.output, in)
	now := ctx.Time()
	for i, e := range d.elems {
		d.output.SetIndex(i, e.step(p, now, signal.Truthy(in.Index(i))))
	}
	return d.output
}
