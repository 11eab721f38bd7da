package blocks

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/blockx/signal"
	"github.com/comalice/blockx/testutil"
)

func TestDelayScenario(t *testing.T) {
	d := NewDelay[float64](3)
	got := testutil.Drive[DelayParams[float64], float64, float64](d, DelayParams[float64]{IC: 0},
		testutil.NewStepper(time.Millisecond), 1, 2, 3, 4, 5, 6, 7)
	assert.Equal(t, []float64{0, 0, 0, 1, 2, 3, 4}, got)
}

func TestDelayOutputsInputNTicksLater(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for n := 1; n <= 6; n++ {
		d := NewDelay[int32](n)
		s := testutil.NewStepper(time.Millisecond)
		inputs := make([]int32, 20)
		for i := range inputs {
			inputs[i] = rng.Int31()
		}
		const ic = -1
		for i, in := range inputs {
			out := d.Process(DelayParams[int32]{IC: ic}, s.Next(), in)
			if i < n {
				require.Equal(t, int32(ic), out, "n=%d tick %d", n, i)
			} else {
				require.Equal(t, inputs[i-n], out, "n=%d tick %d", n, i)
			}
		}
	}
}

func TestDelayWithICVisibleBeforeFirstTick(t *testing.T) {
	d := NewDelayWithIC(2, true)
	assert.True(t, d.Output())
	assert.Equal(t, 2, d.Len())

	assert.False(t, NewDelay[bool](2).Output())
}

func TestDelayICOnlyMattersWhileFilling(t *testing.T) {
	d := NewDelay[float64](2)
	s := testutil.NewStepper(time.Millisecond)

	assert.Equal(t, 9.0, d.Process(DelayParams[float64]{IC: 9}, s.Next(), 1))
	assert.Equal(t, 7.0, d.Process(DelayParams[float64]{IC: 7}, s.Next(), 2))
	assert.Equal(t, 1.0, d.Process(DelayParams[float64]{IC: 100}, s.Next(), 3))
	assert.Equal(t, 2.0, d.Process(DelayParams[float64]{IC: 100}, s.Next(), 4))
	assert.Equal(t, 2.0, d.Output())
}

func TestDelayInvalidLength(t *testing.T) {
	assert.Panics(t, func() { NewDelay[float64](0) })
	assert.Panics(t, func() { NewMatrixDelay[float64](0, 1, 1) })
}

func TestMatrixDelay(t *testing.T) {
	d := NewMatrixDelay[float32](2, 1, 2)
	s := testutil.NewStepper(time.Millisecond)
	ic := signal.MustMatrixFromRows([][]float32{{-1, -2}})
	in := signal.NewMatrix[float32](1, 2)

	var outs [][]float32
	for i := 1; i <= 4; i++ {
		// the same input matrix is rewritten every tick
		in.Set(0, 0, float32(i))
		in.Set(0, 1, float32(10*i))
		out := d.Process(MatrixDelayParams[float32]{IC: ic}, s.Next(), in)
		outs = append(outs, append([]float32(nil), out.Data()...))
	}
	assert.Equal(t, [][]float32{{-1, -2}, {-1, -2}, {1, 10}, {2, 20}}, outs)
}

func TestMatrixDelayZeroICAndSeeded(t *testing.T) {
	ic := signal.FilledMatrix[int16](2, 2, 5)
	d := NewMatrixDelayWithIC(1, ic)
	assert.Equal(t, []int16{5, 5, 5, 5}, d.Output().Data())

	s := testutil.NewStepper(time.Millisecond)
	out := d.Process(MatrixDelayParams[int16]{}, s.Next(), signal.FilledMatrix[int16](2, 2, 3))
	assert.Equal(t, []int16{0, 0, 0, 0}, out.Data())
	out = d.Process(MatrixDelayParams[int16]{}, s.Next(), signal.FilledMatrix[int16](2, 2, 4))
	assert.Equal(t, []int16{3, 3, 3, 3}, out.Data())

	assert.Panics(t, func() {
		d.Process(MatrixDelayParams[int16]{}, s.Next(), signal.NewMatrix[int16](1, 4))
	})
}

func TestMatrixDelayRejectedInputLeavesStateAlone(t *testing.T) {
	d := NewMatrixDelay[float64](1, 2, 1)
	s := testutil.NewStepper(time.Millisecond)
	d.Process(MatrixDelayParams[float64]{}, s.Next(), signal.FilledMatrix(2, 1, 7.0))
	prev := d.Output().Clone()

	assert.Panics(t, func() {
		d.Process(MatrixDelayParams[float64]{}, s.Next(), signal.FilledMatrix(1, 2, 9.0))
	})
	assert.Equal(t, prev.Data(), d.Output().Data())

	out := d.Process(MatrixDelayParams[float64]{}, s.Next(), signal.FilledMatrix(2, 1, 8.0))
	assert.Equal(t, []float64{7, 7}, out.Data())
}

func BenchmarkDelay(b *testing.B) {
	d := NewDelay[float64](64)
	s := testutil.NewStepper(time.Millisecond)
	ctx := s.Next()
	p := DelayParams[float64]{}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		d.Process(p, ctx, float64(i))
	}
}
