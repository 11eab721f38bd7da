package blockx

import "github.com/comalice/blockx/signal"

// ProcessBlock transforms an input into an output once per tick.
type ProcessBlock[P, I, O any] interface {
	Process(params P, ctx Context, input I) O
}

// GeneratorBlock produces an output from nothing but its parameters and the
// clock.
type GeneratorBlock[P, O any] interface {
	Generate(params P, ctx Context) O
}

// InputBlock reads a value from the outside world. Implementations are
// hardware adapters and must follow the same Context rules as every other
// block.
type InputBlock[P, O any] interface {
	GeneratorBlock[P, O]
}

// OutputBlock writes a value to the outside world.
type OutputBlock[P, I any] interface {
	Process(params P, ctx Context, input I)
}

// App is a compiled diagram. Step runs every block once, in wiring order.
type App interface {
	Step(ctx Context)
}

// Snapshot is the per-tick view handed to telemetry: the name of the state
// the diagram is in and its recorded outputs in a stable order.
type Snapshot struct {
	StateID string
	Outputs []signal.Value
}

// Observable is implemented by apps that expose telemetry at the tick
// boundary.
type Observable interface {
	Snapshot() Snapshot
}

// AppFunc adapts a plain function to App.
type AppFunc func(ctx Context)

func (f AppFunc) Step(ctx Context) { f(ctx) }
