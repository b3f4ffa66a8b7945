package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QuoteMetrics records configurator evaluation outcomes.
type QuoteMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewQuoteMetrics registers the quote metrics on the provided registerer.
func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	if reg == nil {
		return &QuoteMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quote_duration_seconds",
		Help:    "Duration of configurator quote evaluations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_success",
		Help: "Successful configurator evaluations.",
	}, []string{"operation"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_failure",
		Help: "Failed configurator evaluations.",
	}, []string{"operation"})
	reg.MustRegister(duration, success, failure)
	return &QuoteMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named operation.
func (q *QuoteMetrics) ObserveDuration(operation string, duration time.Duration) {
	if q == nil || q.duration == nil {
		return
	}
	q.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named operation.
func (q *QuoteMetrics) IncSuccess(operation string) {
	if q == nil || q.success == nil {
		return
	}
	q.success.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncFailure increments the failure counter for the named operation.
func (q *QuoteMetrics) IncFailure(operation string) {
	if q == nil || q.failure == nil {
		return
	}
	q.failure.WithLabelValues(normalizeLabel(operation)).Inc()
}

func normalizeLabel(operation string) string {
	if operation == "" {
		return "unknown"
	}
	return operation
}
