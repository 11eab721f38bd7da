package blocks

import (
	"github.com/comalice/blockx"
	"github.com/comalice/blockx/signal"
)

// RateLimiterParams configures RateLimiter. Rates are in units per second;
// FallingRate is normally negative.
type RateLimiterParams[F signal.Float] struct {
	RisingRate  F
	FallingRate F
}

// RateLimiter bounds how fast its output may follow the input.
type RateLimiter[F signal.Float] struct {
	buffer F
}

var _ blockx.ProcessBlock[RateLimiterParams[float64], float64, float64] = (*RateLimiter[float64])(nil)

// NewRateLimiter returns a rate limiter whose output starts at zero.
func NewRateLimiter[F signal.Float]() *RateLimiter[F] {
	return &RateLimiter[F]{}
}

// NewRateLimiterWithIC returns a rate limiter whose output starts at ic.
func NewRateLimiterWithIC[F signal.Float](ic F) *RateLimiter[F] {
	return &RateLimiter[F]{buffer: ic}
}

// Process implements blockx.ProcessBlock. With no timestep the output is
// returned untouched.
func (r *RateLimiter[F]) Process(p RateLimiterParams[F], ctx blockx.Context, in F) F {
	dt, ok := ctx.Timestep()
	if !ok {
		return r.buffer
	}
	r.buffer = limitRate(r.buffer, in, F(dt.Seconds()), p.FallingRate, p.RisingRate)
	return r.buffer
}

// Output returns the value returned by the last call to Process.
func (r *RateLimiter[F]) Output() F { return r.buffer }

// limitRate moves buffer toward in by at most the clamped rate times dt. A
// NaN step (0/0 when dt is zero and the input already matches, or Inf*0 with
// an unbounded rate) leaves buffer as it was.
func limitRate[F signal.Float](buffer, in, dt, falling, rising F) F {
	rate := (in - buffer) / dt
	if isNaN(rate) {
		return buffer
	}
	step := min(max(rate, falling), rising) * dt
	if isNaN(step) {
		return buffer
	}
	return buffer + step
}

func isNaN[F signal.Float](v F) bool { return v != v }

// MatrixRateLimiter applies RateLimiter element-wise, each element with its
// own NaN guard.
type MatrixRateLimiter[F signal.Float] struct {
	elems  []*RateLimiter[F]
	output *signal.Matrix[F]
}

func NewMatrixRateLimiter[F signal.Float](rows, cols int) *MatrixRateLimiter[F] {
	r := &MatrixRateLimiter[F]{output: signal.NewMatrix[F](rows, cols)}
	r.elems = newElements(r.output, NewRateLimiter[F])
	return r
}

// Process implements blockx.ProcessBlock.
func (r *MatrixRateLimiter[F]) Process(p RateLimiterParams[F], ctx blockx.Context, in *signal.Matrix[F]) *signal.Matrix[F] {
	signal.MustSameShape(r.output, in)
	for i, e := range r.elems {
		r.output.SetIndex(i, e.Process(p, ctx, in.Index(i)))
	}
	return r.output
}
