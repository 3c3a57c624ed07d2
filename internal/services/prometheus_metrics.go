package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	apiRequests          *prometheus.CounterVec
	apiRequestDuration   prometheus.Histogram
	apiRequestsRejected  *prometheus.CounterVec
	tokenRefreshes       *prometheus.CounterVec
	tokenRefreshDuration prometheus.Histogram
	sessionEvents        *prometheus.CounterVec
	validationFailures   *prometheus.CounterVec
	circuitBreakerState  *prometheus.GaugeVec
	sessionAuthenticated prometheus.Gauge
}

// NewPrometheusMetrics registers the session metrics on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		apiRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "session_api_requests_total",
				Help: "Total number of backend requests by method and status",
			},
			[]string{"method", "status"},
		),
		apiRequestDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "session_api_request_duration_seconds",
				Help:    "Backend request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		apiRequestsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "session_api_requests_rejected_total",
				Help: "Backend requests rejected locally before sending",
			},
			[]string{"reason"},
		),
		tokenRefreshes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "session_token_refresh_total",
				Help: "Total number of access token refresh attempts",
			},
			[]string{"result"},
		),
		tokenRefreshDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "session_token_refresh_duration_milliseconds",
				Help:    "Token refresh duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		sessionEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "session_events_total",
				Help: "Total number of session lifecycle events",
			},
			[]string{"event"},
		),
		validationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "session_validation_failures_total",
				Help: "Credential validation failures by field",
			},
			[]string{"field"},
		),
		circuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
			},
			[]string{"service"},
		),
		sessionAuthenticated: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "session_authenticated",
				Help: "1 while a user is signed in",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	status := tags["status"]

	switch name {
	case "api.request":
		m.apiRequests.WithLabelValues(tags["method"], status).Inc()
	case "api.request.rejected":
		m.apiRequestsRejected.WithLabelValues(status).Inc()
	case "token.refresh.success":
		m.tokenRefreshes.WithLabelValues("success").Inc()
	case "token.refresh.failed":
		m.tokenRefreshes.WithLabelValues("failed").Inc()
	case "session.event":
		if event := tags["event"]; event != "" {
			m.sessionEvents.WithLabelValues(event).Inc()
		}
	case "validation.failed":
		if field := tags["field"]; field != "" {
			m.validationFailures.WithLabelValues(field).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "api.request":
		m.apiRequestDuration.Observe(duration.Seconds())
	case "token.refresh":
		m.tokenRefreshDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "circuit_breaker.state":
		m.circuitBreakerState.WithLabelValues(tags["service"]).Set(value)
	case "session.authenticated":
		m.sessionAuthenticated.Set(value)
	}
}
