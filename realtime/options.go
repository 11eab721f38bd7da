package realtime

import (
	"github.com/go-logr/logr"
	"k8s.io/utils/clock"

	"github.com/comalice/blockx/telemetry"
)

// Option configures a Runtime.
type Option func(rt *Runtime)

// WithClock replaces the wall clock. Tests inject a fake clock here.
func WithClock(c clock.Clock) Option {
	return func(rt *Runtime) {
		rt.clock = c
	}
}

// WithPacer replaces the hybrid sleep/busy-wait pacer used in realtime mode.
func WithPacer(p Pacer) Option {
	return func(rt *Runtime) {
		rt.pacer = p
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logr.Logger) Option {
	return func(rt *Runtime) {
		rt.logger = l
	}
}

// WithMetrics records tick statistics into m.
func WithMetrics(m *Metrics) Option {
	return func(rt *Runtime) {
		rt.metrics = m
	}
}

// WithPublisher hands a telemetry record to p after every tick of an app
// that implements blockx.Observable.
func WithPublisher(p telemetry.Publisher) Option {
	return func(rt *Runtime) {
		rt.publisher = p
	}
}
