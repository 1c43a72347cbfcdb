package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/modulesio/prsnt/domain"
)

const outcomeMalformed = "malformed"

// Metrics collects registry counters. Build one per process with NewMetrics.
type Metrics struct {
	announcements *prometheus.CounterVec
	probeDuration *prometheus.HistogramVec
	listedServers prometheus.Gauge
}

// NewMetrics registers the registry collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		announcements: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prsnt",
			Name:      "announcements_total",
			Help:      "Announcements handled, by outcome.",
		}, []string{"outcome"}),
		probeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "prsnt",
			Name:      "probe_duration_seconds",
			Help:      "Duration of liveness probes, by outcome.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"outcome"}),
		listedServers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "prsnt",
			Name:      "listed_servers",
			Help:      "Number of servers returned by the last listing.",
		}),
	}
}

func (m *Metrics) observeMalformed() {
	m.announcements.WithLabelValues(outcomeMalformed).Inc()
}

func (m *Metrics) observeProbe(outcome domain.ProbeOutcome, took time.Duration) {
	m.announcements.WithLabelValues(outcome.String()).Inc()
	m.probeDuration.WithLabelValues(outcome.String()).Observe(took.Seconds())
}

func (m *Metrics) observeListing(n int) {
	m.listedServers.Set(float64(n))
}
