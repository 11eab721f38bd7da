package telemetry

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/util/wait"
)

// DefaultBackoff is used by NewRetryingSink when no backoff is given.
var DefaultBackoff = wait.Backoff{
	Duration: 5 * time.Millisecond,
	Factor:   2,
	Jitter:   0.1,
	Steps:    4,
}

// RetryingSink retries failed writes of the wrapped sink with exponential
// backoff. It gives up after the backoff's steps are used up, returning the
// last write error.
type RetryingSink struct {
	Sink    Sink
	Backoff wait.Backoff
}

var _ Sink = (*RetryingSink)(nil)

// NewRetryingSink wraps sink with DefaultBackoff.
func NewRetryingSink(sink Sink) *RetryingSink {
	return &RetryingSink{Sink: sink, Backoff: DefaultBackoff}
}

func (s *RetryingSink) Write(ctx context.Context, rec Record) error {
	var lastErr error
	err := wait.ExponentialBackoffWithContext(ctx, s.Backoff, func(ctx context.Context) (bool, error) {
		lastErr = s.Sink.Write(ctx, rec)
		return lastErr == nil, nil
	})
	if err == nil {
		return nil
	}
	if lastErr != nil {
		return errors.Wrapf(lastErr, "telemetry write of tick %d", rec.Tick)
	}
	return err
}
