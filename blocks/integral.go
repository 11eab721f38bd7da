package blocks

import (
	"math"

	"github.com/comalice/blockx"
	"github.com/comalice/blockx/signal"
)

// IntegralParams configures Integral.
type IntegralParams[F signal.Float] struct {
	IC F
	// ClampLimit bounds the output to [-ClampLimit, +ClampLimit]; its sign is
	// ignored. Zero pins the output to zero. Use +Inf for no bound.
	ClampLimit F
	Method     IntegralMethod
}

// IntegralInput is the input pair of Integral.
type IntegralInput[F signal.Float] struct {
	Sample F
	// Reset clears the accumulated output. The sample of a reset tick is
	// ignored.
	Reset bool
}

// Integral accumulates its input over time, starting from IC.
type Integral[F signal.Float] struct {
	output      F
	hasOutput   bool
	previous    F
	hasPrevious bool
}

var _ blockx.ProcessBlock[IntegralParams[float64], IntegralInput[float64], float64] = (*Integral[float64])(nil)

// NewIntegral returns an integral with no accumulated output.
func NewIntegral[F signal.Float]() *Integral[F] {
	return &Integral[F]{}
}

// Process implements blockx.ProcessBlock.
func (b *Integral[F]) Process(p IntegralParams[F], ctx blockx.Context, in IntegralInput[F]) F {
	if in.Reset {
		b.hasOutput = false
		b.hasPrevious = false
		return p.IC
	}

	dt := F(blockx.TimestepSeconds(ctx))
	var delta F
	switch p.Method {
	case Trapezoidal:
		prev := p.IC
		if b.hasPrevious {
			prev = b.previous
		}
		delta = dt * (in.Sample + prev) / 2
	case Rectangle:
		delta = dt * in.Sample
	default:
		panic(unknownMode("integral method", uint8(p.Method)))
	}

	base := p.IC
	if b.hasOutput {
		base = b.output
	}
	b.output = clampSymmetric(base+delta, p.ClampLimit)
	b.hasOutput = true
	b.previous = in.Sample
	b.hasPrevious = true
	return b.output
}

func clampSymmetric[F signal.Float](v, limit F) F {
	if math.IsInf(float64(limit), 0) {
		return v
	}
	limit = F(math.Abs(float64(limit)))
	return min(max(v, -limit), limit)
}

// MatrixIntegralParams configures MatrixIntegral. A nil IC is all zeros; the
// clamp limit applies to every element separately.
type MatrixIntegralParams[F signal.Float] struct {
	IC         *signal.Matrix[F]
	ClampLimit F
	Method     IntegralMethod
}

// MatrixIntegralInput is the input pair of MatrixIntegral.
type MatrixIntegralInput[F signal.Float] struct {
	Sample *signal.Matrix[F]
	Reset  bool
}

// MatrixIntegral applies Integral element-wise.
type MatrixIntegral[F signal.Float] struct {
	elems  []*Integral[F]
	output *signal.Matrix[F]
}

// NewMatrixIntegral returns an integral over rows x cols matrices.
func NewMatrixIntegral[F signal.Float](rows, cols int) *MatrixIntegral[F] {
	b := &MatrixIntegral[F]{output: signal.NewMatrix[F](rows, cols)}
	b.elems = newElements(b.output, NewIntegral[F])
	return b
}

// Process implements blockx.ProcessBlock.
func (b *MatrixIntegral[F]) Process(p MatrixIntegralParams[F], ctx blockx.Context, in MatrixIntegralInput[F]) *signal.Matrix[F] {
	signal.MustSameShape(b.output, in.Sample)
	mustMatchIC(b.output, p.IC)
	for i, e := range b.elems {
		ep := IntegralParams[F]{IC: elementOf(p.IC, i), ClampLimit: p.ClampLimit, Method: p.Method}
		b.output.SetIndex(i, e.Process(ep, ctx, IntegralInput[F]{Sample: in.Sample.Index(i), Reset: in.Reset}))
	}
	return b.output
}
