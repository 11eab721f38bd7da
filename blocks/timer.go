package blocks

import (
	"time"

	"github.com/comalice/blockx"
	"github.com/comalice/blockx/signal"
)

// TimerParams configures Timer.
type TimerParams struct {
	Mode TimerMode
	// Interruptable lets a trigger restart a running timer.
	Interruptable bool
	// CountdownTime is the CountDown duration. Unused by StopWatch.
	CountdownTime time.Duration
}

// Timer starts on a positive input. StopWatch reports the seconds elapsed
// since it started, forever. CountDown reports the seconds remaining until
// CountdownTime has elapsed, then reports 0 and stops.
type Timer[T signal.Number] struct {
	running bool
	start   time.Duration
	output  float64
}

var _ blockx.ProcessBlock[TimerParams, float64, float64] = (*Timer[float64])(nil)

func NewTimer[T signal.Number]() *Timer[T] {
	return &Timer[T]{}
}

// Process implements blockx.ProcessBlock.
func (t *Timer[T]) Process(p TimerParams, ctx blockx.Context, in T) float64 {
	if p.Mode != CountDown && p.Mode != StopWatch {
		panic(unknownMode("timer mode", uint8(p.Mode)))
	}
	triggered := in > 0
	if !t.running && !triggered {
		return t.output
	}

	now := ctx.Time()
	if triggered && (!t.running || p.Interruptable) {
		t.start = now
		t.running = true
	}

	elapsed := now - t.start
	switch p.Mode {
	case StopWatch:
		t.output = elapsed.Seconds()
	case CountDown:
		if elapsed < p.CountdownTime {
			t.output = (p.CountdownTime - elapsed).Seconds()
		} else {
			t.output = 0
			t.running = false
		}
	}
	return t.output
}

// Running reports whether the timer is counting.
func (t *Timer[T]) Running() bool { return t.running }

// Output returns the value returned by the last call to Process.
func (t *Timer[T]) Output() float64 { return t.output }
