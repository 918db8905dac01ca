package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup outcomes recorded on the peppol_lookups_total counter.
const (
	OutcomeRegistered    = "registered"
	OutcomeNotRegistered = "not_registered"
	OutcomeError         = "error"
)

// Metrics holds the Prometheus collectors for the lookup gateway.
type Metrics struct {
	lookupsTotal   *prometheus.CounterVec
	lookupDuration prometheus.Histogram
}

// NewMetrics creates gateway metrics registered on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		lookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "peppol_lookups_total",
				Help: "Total number of participant lookups by outcome",
			},
			[]string{"outcome"},
		),
		lookupDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "peppol_lookup_duration_seconds",
				Help:    "Duration of participant lookups in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
	}
}

// ObserveLookup records one completed lookup with its outcome and duration.
func (m *Metrics) ObserveLookup(outcome string, duration time.Duration) {
	m.lookupsTotal.WithLabelValues(outcome).Inc()
	m.lookupDuration.Observe(duration.Seconds())
}
