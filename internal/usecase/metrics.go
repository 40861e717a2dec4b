package usecase

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics aggregates analysis counters on an isolated prometheus registry.
type Metrics struct {
	registry *prometheus.Registry

	analysesTotal    *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	rejectedTotal    *prometheus.CounterVec
}

// NewMetrics builds and registers the analyzer metric set.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	analysesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leaf",
			Subsystem: "analyzer",
			Name:      "analyses_total",
			Help:      "Completed analyses by diagnostic category.",
		},
		[]string{"estado"},
	)
	analysisDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "leaf",
			Subsystem: "analyzer",
			Name:      "analysis_duration_seconds",
			Help:      "End-to-end analysis duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
	)
	rejectedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leaf",
			Subsystem: "analyzer",
			Name:      "rejected_uploads_total",
			Help:      "Uploads rejected before classification, by reason.",
		},
		[]string{"motivo"},
	)

	registry.MustRegister(analysesTotal, analysisDuration, rejectedTotal)

	return &Metrics{
		registry:         registry,
		analysesTotal:    analysesTotal,
		analysisDuration: analysisDuration,
		rejectedTotal:    rejectedTotal,
	}
}

// Handler exposes the registry in prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordAnalysis counts one completed analysis.
func (m *Metrics) RecordAnalysis(estado string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.analysesTotal.WithLabelValues(estado).Inc()
	m.analysisDuration.Observe(elapsed.Seconds())
}

// RecordRejection counts one rejected upload.
func (m *Metrics) RecordRejection(motivo string) {
	if m == nil {
		return
	}
	m.rejectedTotal.WithLabelValues(motivo).Inc()
}
