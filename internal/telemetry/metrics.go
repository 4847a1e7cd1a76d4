// Package telemetry exposes Prometheus metrics for the decision engine.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	EvaluationsTotal   *prometheus.CounterVec
	EvaluationDuration prometheus.Histogram
	StoreErrorsTotal   prometheus.Counter
	ProgramsEvaluated  prometheus.Histogram
}

// NewMetrics builds and registers the engine collectors on the given
// registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EvaluationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "underwrite",
			Name:      "evaluations_total",
			Help:      "Completed evaluations by overall qualification status.",
		}, []string{"status"}),
		EvaluationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "underwrite",
			Name:      "evaluation_duration_seconds",
			Help:      "End to end evaluation latency.",
			Buckets:   prometheus.DefBuckets,
		}),
		StoreErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "underwrite",
			Name:      "rule_store_errors_total",
			Help:      "Rule store lookup failures.",
		}),
		ProgramsEvaluated: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "underwrite",
			Name:      "programs_evaluated",
			Help:      "Programs evaluated per request.",
			Buckets:   []float64{1, 2, 3, 4, 5, 10},
		}),
	}
	reg.MustRegister(m.EvaluationsTotal, m.EvaluationDuration, m.StoreErrorsTotal, m.ProgramsEvaluated)
	return m
}

// NopMetrics returns collectors bound to a throwaway registry, for tests and
// callers that do not scrape.
func NopMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
