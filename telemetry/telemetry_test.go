package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"k8s.io/apimachinery/pkg/util/wait"
)

func TestChannelPublisherDropsWhenFull(t *testing.T) {
	p := NewChannelPublisher(2)
	assert.True(t, p.Publish(Record{Tick: 0}))
	assert.True(t, p.Publish(Record{Tick: 1}))
	assert.False(t, p.Publish(Record{Tick: 2}))

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	var ticks []uint64
	for rec := range p.Records() {
		ticks = append(ticks, rec.Tick)
	}
	assert.Equal(t, []uint64{0, 1}, ticks)
}

func TestNewChannelPublisherMinimumSize(t *testing.T) {
	p := NewChannelPublisher(0)
	assert.True(t, p.Publish(Record{}))
	assert.False(t, p.Publish(Record{}))
}

func TestForward(t *testing.T) {
	p := NewChannelPublisher(8)
	want := []Record{
		{RunID: "r", Tick: 0, Values: []float64{1}},
		{RunID: "r", Tick: 1, Time: 10 * time.Millisecond, Values: []float64{2, 3}},
	}
	for _, rec := range want {
		require.True(t, p.Publish(rec))
	}
	require.NoError(t, p.Close())

	var buf Buffer
	require.NoError(t, Forward(context.Background(), p.Records(), &buf, logr.Discard()))
	if diff := cmp.Diff(want, buf.Records()); diff != "" {
		t.Errorf("forwarded records mismatch (-want +got):\n%s", diff)
	}
}

func TestForwardCollectsWriteErrors(t *testing.T) {
	p := NewChannelPublisher(8)
	for i := range 4 {
		require.True(t, p.Publish(Record{Tick: uint64(i)}))
	}
	require.NoError(t, p.Close())

	var written []uint64
	sink := SinkFunc(func(_ context.Context, rec Record) error {
		if rec.Tick%2 == 1 {
			return errors.New("odd tick")
		}
		written = append(written, rec.Tick)
		return nil
	})

	err := Forward(context.Background(), p.Records(), sink, logr.Discard())
	assert.Len(t, multierr.Errors(err), 2)
	assert.Equal(t, []uint64{0, 2}, written)
}

func TestForwardStopsOnCancel(t *testing.T) {
	p := NewChannelPublisher(1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Forward(ctx, p.Records(), &Buffer{}, logr.Discard())
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Forward did not return after cancel")
	}
}

func TestRetryingSink(t *testing.T) {
	fast := wait.Backoff{Duration: time.Millisecond, Factor: 1, Steps: 3}

	t.Run("succeeds after transient failures", func(t *testing.T) {
		attempts := 0
		var buf Buffer
		s := &RetryingSink{Backoff: fast, Sink: SinkFunc(func(ctx context.Context, rec Record) error {
			attempts++
			if attempts < 3 {
				return errors.New("busy")
			}
			return buf.Write(ctx, rec)
		})}

		require.NoError(t, s.Write(context.Background(), Record{Tick: 7}))
		assert.Equal(t, 3, attempts)
		assert.Equal(t, 1, buf.Len())
	})

	t.Run("gives up with the last error", func(t *testing.T) {
		attempts := 0
		sinkErr := errors.New("down")
		s := &RetryingSink{Backoff: fast, Sink: SinkFunc(func(context.Context, Record) error {
			attempts++
			return sinkErr
		})}

		err := s.Write(context.Background(), Record{Tick: 7})
		assert.ErrorIs(t, err, sinkErr)
		assert.Contains(t, err.Error(), "tick 7")
		assert.Equal(t, 3, attempts)
	})
}

func TestNewRetryingSinkDefaults(t *testing.T) {
	s := NewRetryingSink(&Buffer{})
	assert.Equal(t, DefaultBackoff, s.Backoff)
}

func TestLogSink(t *testing.T) {
	assert.NoError(t, LogSink{Logger: logr.Discard()}.Write(context.Background(), Record{Tick: 1}))
}
