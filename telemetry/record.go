package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/go-logr/logr"
)

// Record is the telemetry of one tick.
type Record struct {
	RunID   string        `json:"run_id" yaml:"run_id"`
	Tick    uint64        `json:"tick" yaml:"tick"`
	Time    time.Duration `json:"time" yaml:"time"`
	StateID string        `json:"state_id,omitempty" yaml:"state_id,omitempty"`
	Values  []float64     `json:"values" yaml:"values"`
}

// Sink consumes records off the tick loop.
type Sink interface {
	Write(ctx context.Context, rec Record) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, rec Record) error

func (f SinkFunc) Write(ctx context.Context, rec Record) error { return f(ctx, rec) }

// LogSink writes every record to a logger at the given verbosity.
type LogSink struct {
	Logger logr.Logger
	Level  int
}

func (s LogSink) Write(_ context.Context, rec Record) error {
	s.Logger.V(s.Level).Info("Telemetry",
		"tick", rec.Tick,
		"time", rec.Time,
		"state", rec.StateID,
		"values", rec.Values,
	)
	return nil
}

// Buffer is a Sink that keeps every record in memory.
type Buffer struct {
	mu      sync.Mutex
	records []Record
}

func (b *Buffer) Write(_ context.Context, rec Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = append(b.records, rec)
	return nil
}

// Records returns a copy of the records written so far.
func (b *Buffer) Records() []Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Record, len(b.records))
	copy(out, b.records)
	return out
}

// Len returns the number of records written so far.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.records)
}
