package blocks

import (
	"github.com/comalice/blockx"
	"github.com/comalice/blockx/signal"
)

// DerivativeParams configures Derivative.
type DerivativeParams[F signal.Float] struct {
	IC F
}

// Derivative estimates the slope of its input over a window of N samples:
//
//	out = (in[t] - in[t-(N-1)]) / ((N-1) * dt)
//
// It reports IC until the window holds N samples.
type Derivative[F signal.Float] struct {
	window ring[F]
	output F
}

var _ blockx.ProcessBlock[DerivativeParams[float64], float64, float64] = (*Derivative[float64])(nil)

// NewDerivative returns a derivative over n samples. It panics if n < 2.
func NewDerivative[F signal.Float](n int) *Derivative[F] {
	if n < 2 {
		panic("blocks: derivative needs at least 2 samples")
	}
	return &Derivative[F]{window: newRing[F](n, "derivative")}
}

// NewDerivativeWithIC is like NewDerivative but Output reports ic before the
// first call to Process.
func NewDerivativeWithIC[F signal.Float](n int, ic F) *Derivative[F] {
	d := NewDerivative[F](n)
	d.output = ic
	return d
}

// Process implements blockx.ProcessBlock. Outside the accumulation window it
// panics if ctx has no timestep; the scheduler only omits the timestep on the
// first tick, which always falls inside the window.
func (d *Derivative[F]) Process(p DerivativeParams[F], ctx blockx.Context, in F) F {
	d.window.samples[d.window.index] = in
	d.window.advance()
	if d.window.accumulating {
		d.output = p.IC
		return d.output
	}
	dt, ok := ctx.Timestep()
	if !ok {
		panic("blocks: derivative evaluated without a timestep")
	}
	oldest := d.window.samples[d.window.index]
	span := F(d.window.len()-1) * F(dt.Seconds())
	if span == 0 {
		return d.output
	}
	d.output = (in - oldest) / span
	return d.output
}

// Output returns the value returned by the last call to Process.
func (d *Derivative[F]) Output() F { return d.output }

// MatrixDerivativeParams configures MatrixDerivative. A nil IC is all zeros.
type MatrixDerivativeParams[F signal.Float] struct {
	IC *signal.Matrix[F]
}

// MatrixDerivative applies Derivative element-wise.
type MatrixDerivative[F signal.Float] struct {
	elems  []*Derivative[F]
	output *signal.Matrix[F]
}

// NewMatrixDerivative returns a derivative over n samples of rows x cols
// matrices.
func NewMatrixDerivative[F signal.Float](n, rows, cols int) *MatrixDerivative[F] {
	d := &MatrixDerivative[F]{output: signal.NewMatrix[F](rows, cols)}
	d.elems = newElements(d.output, func() *Derivative[F] { return NewDerivative[F](n) })
	return d
}

// Process implements blockx.ProcessBlock.
func (d *MatrixDerivative[F]) Process(p MatrixDerivativeParams[F], ctx blockx.Context, in *signal.Matrix[F]) *signal.Matrix[F] {
	signal.MustSameShape(d.output, in)
	mustMatchIC(d.output, p.IC)
	for i, e := range d.elems {
		d.output.SetIndex(i, e.Process(DerivativeParams[F]{IC: elementOf(p.IC, i)}, ctx, in.Index(i)))
	}
	return d.output
}
