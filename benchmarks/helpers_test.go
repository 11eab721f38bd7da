package benchmarks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/blockx"
)

func TestChainDiagramIntegratesInput(t *testing.T) {
	d := GenChainDiagram(0)
	require.Len(t, d.filters, 1)

	ctx := blockx.FirstStep(10 * time.Millisecond)
	for range 1000 {
		d.Step(&ctx)
		ctx = ctx.Next(10 * time.Millisecond)
	}
	// After ten seconds the filtered constant is ~1, so the integral is ~10.
	assert.InDelta(t, 10.0, d.out, 0.5)
	assert.Len(t, d.Snapshot().Outputs, 1)
}

func TestMatrixDiagramShape(t *testing.T) {
	d := GenMatrixDiagram(3, 2)
	ctx := blockx.FirstStep(time.Millisecond)
	d.Step(&ctx)
	assert.Equal(t, 3, d.out.Rows())
	assert.Equal(t, 2, d.out.Cols())
}
