package events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments an event stream. A nil *Metrics records nothing.
type Metrics struct {
	enqueued *prometheus.CounterVec
	dropped  prometheus.Counter
	depth    prometheus.Gauge
}

// NewMetrics registers the stream collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		enqueued: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "persistui",
			Name:      "events_total",
			Help:      "Events enqueued on the stream, by kind.",
		}, []string{"kind"}),
		dropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "persistui",
			Name:      "events_dropped_total",
			Help:      "Events sent after the consumer closed the stream.",
		}),
		depth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "persistui",
			Name:      "event_queue_depth",
			Help:      "Events waiting to be consumed.",
		}),
	}
}

func (m *Metrics) observeEnqueued(ev Event, depth int) {
	if m == nil {
		return
	}
	m.enqueued.WithLabelValues(Kind(ev)).Inc()
	m.depth.Set(float64(depth))
}

func (m *Metrics) observeDropped() {
	if m == nil {
		return
	}
	m.dropped.Inc()
}

func (m *Metrics) observeDepth(depth int) {
	if m == nil {
		return
	}
	m.depth.Set(float64(depth))
}
