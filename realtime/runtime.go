package realtime

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"k8s.io/utils/clock"

	"github.com/comalice/blockx"
	"github.com/comalice/blockx/signal"
	"github.com/comalice/blockx/telemetry"
)

var (
	// ErrAlreadyStarted is returned by Run on a Runtime that has run before.
	ErrAlreadyStarted = errors.New("runtime already started")
	// ErrShapeChanged is returned by Run when an app's telemetry outputs
	// change shape between ticks.
	ErrShapeChanged = errors.New("output shape changed")
)

// State is the lifecycle state of a Runtime.
type State int32

const (
	NotStarted State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case Running:
		return "Running"
	case Stopped:
		return "Stopped"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Runtime drives an App tick by tick on the calling goroutine. Blocks run
// strictly sequentially; the only concurrency is the cancellation of the
// context passed to Run, which is observed between ticks.
type Runtime struct {
	cfg       Config
	clock     clock.Clock
	pacer     Pacer
	logger    logr.Logger
	metrics   *Metrics
	publisher telemetry.Publisher
	runID     uuid.UUID

	state   atomic.Int32
	tickNum atomic.Uint64
	appTime atomic.Int64

	shapes []signal.Shape
}

// NewRuntime validates cfg (after applying defaults) and returns a Runtime.
func NewRuntime(cfg Config, opts ...Option) (*Runtime, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid runtime config")
	}
	rt := &Runtime{
		cfg:    cfg,
		clock:  clock.RealClock{},
		logger: logr.Discard(),
		runID:  uuid.New(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.pacer == nil {
		rt.pacer = NewHybridPacer(rt.clock, cfg.SleepThreshold.Std(), cfg.BusyWaitMargin.Std())
	}
	rt.logger = rt.logger.WithValues("run", rt.runID.String())
	return rt, nil
}

// Run executes app until the configured run time has elapsed or ctx is
// cancelled. It returns nil when the run time elapses and ctx.Err() when it
// was cancelled. A Runtime runs once.
func (rt *Runtime) Run(ctx context.Context, app blockx.App) error {
	if !rt.state.CompareAndSwap(int32(NotStarted), int32(Running)) {
		return ErrAlreadyStarted
	}
	defer rt.state.Store(int32(Stopped))

	timing := NewTiming(rt.cfg, rt.clock, rt.pacer)
	rt.logger.Info("Starting run",
		"frequency", rt.cfg.Frequency,
		"period", timing.Period(),
		"realtime", rt.cfg.Realtime,
		"runTime", rt.cfg.RunTime.Std(),
	)

	timing.Start()
	step := blockx.FirstStep(timing.Period())
	for timing.ShouldRun(step.Time()) {
		select {
		case <-ctx.Done():
			rt.logger.Info("Run cancelled", "ticks", rt.GetTickNumber(), "appTime", step.Time())
			return ctx.Err()
		default:
		}

		if err := rt.processTick(app, &step); err != nil {
			return err
		}

		stats := timing.Advance()
		rt.metrics.observe(stats)
		if stats.Overrun {
			rt.logger.V(1).Info("Tick overran its period", "tick", rt.GetTickNumber(), "work", stats.Work)
		}
		step = step.At(timing.AppTime())
		rt.appTime.Store(int64(step.Time()))
	}

	rt.logger.Info("Run complete", "ticks", rt.GetTickNumber(), "appTime", step.Time())
	return nil
}

// State returns the lifecycle state.
func (rt *Runtime) State() State { return State(rt.state.Load()) }

// GetTickNumber returns the number of completed ticks.
func (rt *Runtime) GetTickNumber() uint64 { return rt.tickNum.Load() }

// AppTime returns the application time of the tick about to run.
func (rt *Runtime) AppTime() time.Duration { return time.Duration(rt.appTime.Load()) }

// RunID identifies this run in logs and telemetry.
func (rt *Runtime) RunID() uuid.UUID { return rt.runID }

// Config returns the effective configuration.
func (rt *Runtime) Config() Config { return rt.cfg }
