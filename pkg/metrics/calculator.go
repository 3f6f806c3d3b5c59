package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CalculatorMetrics records outcomes for calculation and export operations.
type CalculatorMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewCalculatorMetrics registers the calculator metrics on the provided registerer.
func NewCalculatorMetrics(reg prometheus.Registerer) *CalculatorMetrics {
	if reg == nil {
		return &CalculatorMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tariff_operation_duration_seconds",
		Help:    "Duration of tariff calculations and exports in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tariff_operation_success",
		Help: "Successful tariff operations.",
	}, []string{"operation"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tariff_operation_failure",
		Help: "Failed tariff operations.",
	}, []string{"operation"})
	reg.MustRegister(duration, success, failure)
	return &CalculatorMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named operation.
func (c *CalculatorMetrics) ObserveDuration(operation string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named operation.
func (c *CalculatorMetrics) IncSuccess(operation string) {
	if c == nil || c.success == nil {
		return
	}
	c.success.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncFailure increments the failure counter for the named operation.
func (c *CalculatorMetrics) IncFailure(operation string) {
	if c == nil || c.failure == nil {
		return
	}
	c.failure.WithLabelValues(normalizeLabel(operation)).Inc()
}

func normalizeLabel(operation string) string {
	if operation == "" {
		return "unknown"
	}
	return operation
}
