package services

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the workflow counters exposed on /metrics. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	attemptsTotal    *prometheus.CounterVec
	providerCalls    *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	attemptsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stylist",
			Subsystem: "generation",
			Name:      "attempts_total",
			Help:      "Outfit generation attempts by result.",
		},
		[]string{"result"},
	)
	providerCalls := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stylist",
			Subsystem: "provider",
			Name:      "calls_total",
			Help:      "Generative provider calls by operation and status.",
		},
		[]string{"operation", "status"},
	)
	providerDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stylist",
			Subsystem: "provider",
			Name:      "call_duration_seconds",
			Help:      "Generative provider call duration in seconds.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		},
		[]string{"operation"},
	)

	registry.MustRegister(
		attemptsTotal,
		providerCalls,
		providerDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry:         registry,
		attemptsTotal:    attemptsTotal,
		providerCalls:    providerCalls,
		providerDuration: providerDuration,
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveAttempt(result string) {
	if m == nil {
		return
	}
	m.attemptsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveProviderCall(operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.providerCalls.WithLabelValues(operation, status).Inc()
	m.providerDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}
