package realtime

import (
	"github.com/prometheus/client_golang/prometheus"
)

const subsystem = "blockx"

// Metrics are the Prometheus collectors of one Runtime.
type Metrics struct {
	ticks            prometheus.Counter
	overruns         prometheus.Counter
	tickWork         prometheus.Histogram
	telemetryDropped prometheus.Counter
}

// NewMetrics builds the runtime collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "ticks_total",
			Help:      "Number of diagram ticks executed.",
		}),
		overruns: prometheus.NewCounter(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "tick_overruns_total",
			Help:      "Number of ticks whose work took longer than the nominal period.",
		}),
		tickWork: prometheus.NewHistogram(prometheus.HistogramOpts{
			Subsystem: subsystem,
			Name:      "tick_work_seconds",
			Help:      "Time spent running the diagram in one tick, excluding pacing.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
		telemetryDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "telemetry_dropped_total",
			Help:      "Number of telemetry records dropped because the sink fell behind.",
		}),
	}
	for _, c := range []prometheus.Collector{m.ticks, m.overruns, m.tickWork, m.telemetryDropped} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(stats TickStats) {
	if m == nil {
		return
	}
	m.ticks.Inc()
	m.tickWork.Observe(stats.Work.Seconds())
	if stats.Overrun {
		m.overruns.Inc()
	}
}

func (m *Metrics) dropped() {
	if m == nil {
		return
	}
	m.telemetryDropped.Inc()
}
