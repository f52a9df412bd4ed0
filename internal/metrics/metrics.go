package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "digitdraw"

// Metrics groups the service collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	RoundsGenerated prometheus.Counter
	RoundsRevealed  prometheus.Counter
	RoundsRecorded  prometheus.Counter
	HistoryLength   prometheus.Gauge

	HTTPRequests    *prometheus.CounterVec
	LiveSubscribers *prometheus.GaugeVec
}

// New builds and registers every collector, plus the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RoundsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_generated_total",
			Help:      "Rounds computed and held pending reveal.",
		}),
		RoundsRevealed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_revealed_total",
			Help:      "Pending rounds promoted to current.",
		}),
		RoundsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_recorded_total",
			Help:      "Rounds pushed onto the history.",
		}),
		HistoryLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_length",
			Help:      "Entries currently held in the history.",
		}),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		LiveSubscribers: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "live_subscribers",
				Help:      "Connected live-update clients by transport.",
			},
			[]string{"transport"},
		),
	}
	m.Registry.MustRegister(
		m.RoundsGenerated,
		m.RoundsRevealed,
		m.RoundsRecorded,
		m.HistoryLength,
		m.HTTPRequests,
		m.LiveSubscribers,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
