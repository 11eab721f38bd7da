// Package blockx is the runtime contract for code generated from block
// diagrams.
//
// A diagram is a fixed set of blocks. Generated glue builds every block once,
// then on each tick calls them in wiring order, handing each block the
// parameters it was generated with, a Context describing the tick clock, and
// the outputs its upstream blocks produced during the same tick.
//
// # Block contracts
//
//   - ProcessBlock: Process(params, ctx, input) -> output
//   - GeneratorBlock: Generate(params, ctx) -> output, for sources
//   - InputBlock / OutputBlock: the same shapes, implemented by hardware
//     adapters that live outside this module
//
// Blocks own their state privately and never block, yield or spawn work
// inside a call. The only thing that flows between blocks is the value one
// call returns.
//
// # Example
//
//	delay := blocks.NewDelay[float64](3)
//	ctx := blockx.FirstStep(10 * time.Millisecond)
//	for i := 0; i < 5; i++ {
//		out := delay.Process(blocks.DelayParams[float64]{}, &ctx, float64(i))
//		_ = out
//		ctx = ctx.Next(10 * time.Millisecond)
//	}
//
// The realtime package drives an App with this Context, either paced to a
// wall-clock rate or as fast as possible in simulation.
package blockx
