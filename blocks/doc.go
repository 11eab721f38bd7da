// Package blocks implements the stateful, time-aware blocks of the runtime:
// Delay, Derivative, Integral, IIRFilter, RateLimiter, DelayControl and Timer.
//
// Every block is built once, then its Process method is called exactly once
// per tick with the block's parameters, the tick Context and its input.
// Parameters may change from one tick to the next; state only changes through
// Process. On the first tick of a run the Context carries no timestep, and
// every block treats that exactly like a tick on which no time has passed.
//
// Scalar blocks are generic over the element type. Matrix variants apply the
// scalar behaviour element-wise, each element carrying independent state, and
// return a matrix owned by the block: callers read it, never write it, and
// must not hold on to it past the next call.
package blocks
