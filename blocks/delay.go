package blocks

import (
	"github.com/comalice/blockx"
	"github.com/comalice/blockx/signal"
)

// DelayParams configures Delay.
type DelayParams[T any] struct {
	// IC is reported until the line has filled. Changing it after that has
	// no effect.
	IC T
}

// Delay is a fixed-length delay line: on tick i it outputs the input of tick
// i-N, and IC for the first N ticks.
type Delay[T any] struct {
	line   ring[T]
	output T
}

var _ blockx.ProcessBlock[DelayParams[float64], float64, float64] = (*Delay[float64])(nil)

// NewDelay returns a delay line of n samples. It panics if n < 1.
func NewDelay[T any](n int) *Delay[T] {
	return &Delay[T]{line: newRing[T](n, "delay")}
}

// NewDelayWithIC is like NewDelay but Output reports ic before the first
// call to Process.
func NewDelayWithIC[T any](n int, ic T) *Delay[T] {
	d := NewDelay[T](n)
	d.output = ic
	return d
}

// Process implements blockx.ProcessBlock.
func (d *Delay[T]) Process(p DelayParams[T], _ blockx.Context, in T) T {
	if d.line.accumulating {
		d.output = p.IC
	} else {
		d.output = d.line.samples[d.line.index]
	}
	d.line.samples[d.line.index] = in
	d.line.advance()
	return d.output
}

// Output returns the value returned by the last call to Process.
func (d *Delay[T]) Output() T { return d.output }

// Len returns the length of the line.
func (d *Delay[T]) Len() int { return d.line.len() }

// MatrixDelayParams configures MatrixDelay. A nil IC is all zeros.
type MatrixDelayParams[T signal.Element] struct {
	IC *signal.Matrix[T]
}

// MatrixDelay is a Delay over matrix samples. The line stores its own copies
// so callers may reuse their input matrices between ticks.
type MatrixDelay[T signal.Element] struct {
	line   ring[*signal.Matrix[T]]
	output *signal.Matrix[T]
}

// NewMatrixDelay returns a delay line of n rows x cols matrices.
func NewMatrixDelay[T signal.Element](n, rows, cols int) *MatrixDelay[T] {
	d := &MatrixDelay[T]{
		line:   newRing[*signal.Matrix[T]](n, "delay"),
		output: signal.NewMatrix[T](rows, cols),
	}
	for i := range d.line.samples {
		d.line.samples[i] = signal.NewMatrix[T](rows, cols)
	}
	return d
}

// NewMatrixDelayWithIC is like NewMatrixDelay but Output reports a copy of ic
// before the first call to Process.
func NewMatrixDelayWithIC[T signal.Element](n int, ic *signal.Matrix[T]) *MatrixDelay[T] {
	d := NewMatrixDelay[T](n, ic.Rows(), ic.Cols())
	d.output.CopyFrom(ic)
	return d
}

// Process implements blockx.ProcessBlock.
func (d *MatrixDelay[T]) Process(p MatrixDelayParams[T], _ blockx.Context, in *signal.Matrix[T]) *signal.Matrix[T] {
	signal.MustSameShape(d.output, in)
	mustMatchIC(d.output, p.IC)
	slot := d.line.samples[d.line.index]
	switch {
	case !d.line.accumulating:
		d.output.CopyFrom(slot)
	case p.IC != nil:
		d.output.CopyFrom(p.IC)
	default:
		var zero T
		d.output.Fill(zero)
	}
	slot.CopyFrom(in)
	d.line.advance()
	return d.output
}

// Output returns the matrix returned by the last call to Process.
func (d *MatrixDelay[T]) Output() *signal.Matrix[T] { return d.output }
