package blocks

import (
	"github.com/comalice/blockx"
	"github.com/comalice/blockx/signal"
)

// IIRFilterParams configures IIRFilter.
type IIRFilterParams[F signal.Float] struct {
	// TimeConstant in seconds. Zero passes the input straight through once
	// time advances; negative values are treated as zero.
	TimeConstant F
	IC           F
}

// IIRFilter is a first-order low-pass filter:
//
//	alpha = dt / (dt + tau)
//	out   = alpha*in + (1-alpha)*prev
//
// A tick with no elapsed time (the first tick included) leaves the output
// unchanged.
type IIRFilter[F signal.Float] struct {
	output    F
	hasOutput bool
}

var _ blockx.ProcessBlock[IIRFilterParams[float64], float64, float64] = (*IIRFilter[float64])(nil)

func NewIIRFilter[F signal.Float]() *IIRFilter[F] {
	return &IIRFilter[F]{}
}

// Process implements blockx.ProcessBlock.
func (f *IIRFilter[F]) Process(p IIRFilterParams[F], ctx blockx.Context, in F) F {
	prev := p.IC
	if f.hasOutput {
		prev = f.output
	}
	alpha := iirAlpha(F(blockx.TimestepSeconds(ctx)), p.TimeConstant)
	f.output = alpha*in + (1-alpha)*prev
	f.hasOutput = true
	return f.output
}

// iirAlpha is zero for dt <= 0, which also covers the 0/0 case of a zero
// time constant.
func iirAlpha[F signal.Float](dt, tau F) F {
	if dt <= 0 {
		return 0
	}
	if tau < 0 {
		tau = 0
	}
	return dt / (dt + tau)
}

// MatrixIIRFilterParams configures MatrixIIRFilter. A nil IC is all zeros.
type MatrixIIRFilterParams[F signal.Float] struct {
	TimeConstant F
	IC           *signal.Matrix[F]
}

// MatrixIIRFilter applies IIRFilter element-wise.
type MatrixIIRFilter[F signal.Float] struct {
	elems  []*IIRFilter[F]
	output *signal.Matrix[F]
}

func NewMatrixIIRFilter[F signal.Float](rows, cols int) *MatrixIIRFilter[F] {
	f := &MatrixIIRFilter[F]{output: signal.NewMatrix[F](rows, cols)}
	f.elems = newElements(f.output, NewIIRFilter[F])
	return f
}

// Process implements blockx.ProcessBlock.
func (f *MatrixIIRFilter[F]) Process(p MatrixIIRFilterParams[F], ctx blockx.Context, in *signal.Matrix[F]) *signal.Matrix[F] {
	signal.MustSameShape(f.output, in)
	mustMatchIC(f.output, p.IC)
	for i, e := range f.elems {
		ep := IIRFilterParams[F]{TimeConstant: p.TimeConstant, IC: elementOf(p.IC, i)}
		f.output.SetIndex(i, e.Process(ep, ctx, in.Index(i)))
	}
	return f.output
}
