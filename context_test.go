package blockx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFirstStepHasNoTimestep(t *testing.T) {
	ctx := FirstStep(10 * time.Millisecond)
	dt, ok := ctx.Timestep()
	assert.False(t, ok)
	assert.Zero(t, dt)
	assert.Zero(t, ctx.Time())
	assert.Equal(t, 10*time.Millisecond, ctx.FundamentalTimestep())
	assert.Zero(t, TimestepSeconds(&ctx))
}

func TestNextAdvancesTime(t *testing.T) {
	ctx := FirstStep(time.Second)
	ctx = ctx.Next(time.Second)
	ctx = ctx.Next(500 * time.Millisecond)

	dt, ok := ctx.Timestep()
	assert.True(t, ok)
	assert.Equal(t, 500*time.Millisecond, dt)
	assert.Equal(t, 1500*time.Millisecond, ctx.Time())
	assert.Equal(t, time.Second, ctx.FundamentalTimestep())
	assert.InDelta(t, 0.5, TimestepSeconds(&ctx), 1e-12)
}

func TestAtComputesTimestep(t *testing.T) {
	ctx := NewStepContext(2*time.Second, time.Second, time.Second)
	next := ctx.At(2250 * time.Millisecond)
	dt, ok := next.Timestep()
	assert.True(t, ok)
	assert.Equal(t, 250*time.Millisecond, dt)
}

func TestAppFunc(t *testing.T) {
	var calls int
	var app App = AppFunc(func(Context) { calls++ })
	ctx := FirstStep(time.Millisecond)
	app.Step(&ctx)
	app.Step(&ctx)
	assert.Equal(t, 2, calls)
}
