package telemetry

import (
	"context"
	"sync"

	"github.com/go-logr/logr"
	"go.uber.org/multierr"
)

// Publisher accepts records from the tick loop. Publish must never block;
// it reports false when the record was dropped.
type Publisher interface {
	Publish(rec Record) bool
}

// ChannelPublisher is a Publisher backed by a bounded channel.
// Non-blocking publish with drop on backpressure.
type ChannelPublisher struct {
	ch        chan Record
	closeOnce sync.Once
}

var _ Publisher = (*ChannelPublisher)(nil)

// NewChannelPublisher returns a ChannelPublisher buffering up to size
// records. A size below 1 is raised to 1.
func NewChannelPublisher(size int) *ChannelPublisher {
	return &ChannelPublisher{ch: make(chan Record, max(size, 1))}
}

func (p *ChannelPublisher) Publish(rec Record) bool {
	select {
	case p.ch <- rec:
		return true
	default:
		return false
	}
}

// Records is the receive side of the publisher.
func (p *ChannelPublisher) Records() <-chan Record { return p.ch }

// Close closes the channel. Publish must not be called afterwards.
func (p *ChannelPublisher) Close() error {
	p.closeOnce.Do(func() { close(p.ch) })
	return nil
}

// Forward writes every record from records to sink until records is closed
// or ctx is done. A failed write is logged and the record skipped; the
// errors of all failed writes are returned together.
func Forward(ctx context.Context, records <-chan Record, sink Sink, logger logr.Logger) error {
	var errs error
	for {
		select {
		case <-ctx.Done():
			return errs
		case rec, ok := <-records:
			if !ok {
				return errs
			}
			if err := sink.Write(ctx, rec); err != nil {
				logger.Error(err, "Telemetry write failed", "tick", rec.Tick)
				errs = multierr.Append(errs, err)
			}
		}
	}
}
