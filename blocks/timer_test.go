package blocks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/comalice/blockx/testutil"
)

func TestTimerCountDown(t *testing.T) {
	tm := NewTimer[float64]()
	p := TimerParams{Mode: CountDown, CountdownTime: 2 * time.Second}
	s := testutil.NewStepper(500 * time.Millisecond)

	got := testutil.Drive[TimerParams, float64, float64](tm, p, s,
		0,  // 0.0 idle
		1,  // 0.5 start
		0,  // 1.0
		1,  // 1.5 retrigger ignored
		0,  // 2.0
		0,  // 2.5 done
		-1, // 3.0
	)
	assert.Equal(t, []float64{0, 2, 1.5, 1, 0.5, 0, 0}, got)
	assert.False(t, tm.Running())
}

func TestTimerCountDownInterruptable(t *testing.T) {
	tm := NewTimer[int8]()
	p := TimerParams{Mode: CountDown, Interruptable: true, CountdownTime: 2 * time.Second}
	s := testutil.NewStepper(500 * time.Millisecond)

	got := testutil.Drive[TimerParams, int8, float64](tm, p, s, 1, 0, 1, 0, 0)
	assert.Equal(t, []float64{2, 1.5, 2, 1.5, 1}, got)
	assert.True(t, tm.Running())
}

func TestTimerStopWatch(t *testing.T) {
	tm := NewTimer[float32]()
	p := TimerParams{Mode: StopWatch}
	s := testutil.NewStepper(250 * time.Millisecond)

	got := testutil.Drive[TimerParams, float32, float64](tm, p, s, 0, 0, 1, 0, 0, 0)
	assert.Equal(t, []float64{0, 0, 0, 0.25, 0.5, 0.75}, got)
	assert.Equal(t, 0.75, tm.Output())
}

func TestTimerHoldsOutputWhileIdle(t *testing.T) {
	tm := NewTimer[float64]()
	p := TimerParams{Mode: CountDown, CountdownTime: time.Second}
	s := testutil.NewStepper(time.Second)
	tm.Process(p, s.Next(), 1)
	assert.Equal(t, 0.0, tm.Process(p, s.Next(), 0))
	assert.Equal(t, 0.0, tm.Process(p, s.Next(), 0))
	assert.Equal(t, 1.0, tm.Process(p, s.Next(), 1))
}
