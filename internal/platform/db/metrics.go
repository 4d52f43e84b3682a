package db

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "stock_watchlist"

// metrics is nil-safe: a Database opened without a registerer records nothing.
type metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	inflight   *prometheus.GaugeVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}
	m := &metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "db",
			Name:      "operations_total",
			Help:      "Database units of work by handler, operation and outcome.",
		}, []string{"handler", "operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "db",
			Name:      "operation_duration_seconds",
			Help:      "Time from submission to completion of a unit of work, including queueing for a worker.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"handler", "operation"}),
		inflight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "db",
			Name:      "inflight",
			Help:      "Units of work queued or running.",
		}, []string{"handler"}),
	}
	reg.MustRegister(m.operations, m.duration, m.inflight)
	return m
}

func (m *metrics) begin(handler string) {
	if m == nil {
		return
	}
	m.inflight.WithLabelValues(handler).Inc()
}

func (m *metrics) end(handler string) {
	if m == nil {
		return
	}
	m.inflight.WithLabelValues(handler).Dec()
}

func (m *metrics) observe(handler, operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(handler, operation, outcome(err)).Inc()
	m.duration.WithLabelValues(handler, operation).Observe(time.Since(start).Seconds())
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotConfigured):
		return "not_configured"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
