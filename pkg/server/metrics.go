package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rangeslider"

type metrics struct {
	eventsTotal    *prometheus.CounterVec
	eventDuration  *prometheus.HistogramVec
	patchesSent    prometheus.Counter
	activeSessions prometheus.Gauge
	rejectedWrites *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Total number of browser events processed",
		}, []string{"type", "status"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "event_duration_seconds",
			Help:      "Event processing duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"type"}),

		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "patches_sent_total",
			Help:      "Total number of patches sent to clients",
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of open live sessions",
		}),

		rejectedWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_writes_total",
			Help:      "Option writes discarded by validation",
		}, []string{"option"}),
	}
}

// Event statuses.
const (
	statusOK        = "ok"
	statusNoHandler = "no_handler"
	statusPanic     = "panic"
)
