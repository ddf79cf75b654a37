// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Outbound pipeline metrics
	PipelineRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_requests_total",
			Help: "Total number of outbound API requests by outcome",
		},
		[]string{"method", "endpoint", "outcome"}, // outcome: ok or the error kind
	)

	PipelineRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_request_duration_seconds",
			Help:    "Outbound API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_notifications_total",
			Help: "User-facing error notifications by kind and disposition",
		},
		[]string{"kind", "disposition"}, // disposition: shown, suppressed
	)

	SessionExpiriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_expiries_total",
			Help: "Total number of 401 responses handled",
		},
		[]string{"action"}, // action: redirected, cleared_only
	)

	// Visit recorder metrics
	VisitDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visit_decisions_total",
			Help: "Route transitions seen by the visit recorder by decision",
		},
		[]string{"decision"}, // decision: ineligible, throttled, reported
	)

	VisitReportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visit_reports_total",
			Help: "Completed visit report attempts by result",
		},
		[]string{"result"}, // result: success, failure, rejected
	)

	VisitThrottleEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "visit_throttle_entries",
			Help: "Current number of paths in the visit throttle cache",
		},
	)

	VisitSweepEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "visit_sweep_evictions_total",
			Help: "Total number of stale throttle entries removed by the sweeper",
		},
	)

	// Agent API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of agent API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Agent API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active agent API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
		[]string{"type"},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordPipelineRequest records one outbound request and its outcome.
func RecordPipelineRequest(method, endpoint, outcome string, duration time.Duration) {
	PipelineRequestsTotal.WithLabelValues(method, endpoint, outcome).Inc()
	PipelineRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordNotification records whether an error notification was shown or suppressed.
func RecordNotification(kind string, shown bool) {
	disposition := "suppressed"
	if shown {
		disposition = "shown"
	}
	NotificationsTotal.WithLabelValues(kind, disposition).Inc()
}

// RecordSessionExpiry records a handled 401.
func RecordSessionExpiry(redirected bool) {
	action := "cleared_only"
	if redirected {
		action = "redirected"
	}
	SessionExpiriesTotal.WithLabelValues(action).Inc()
}

// RecordVisitDecision records the recorder's decision for one transition.
func RecordVisitDecision(decision string) {
	VisitDecisionsTotal.WithLabelValues(decision).Inc()
}

// RecordVisitReport records the result of one delivered (or rejected) report.
func RecordVisitReport(result string) {
	VisitReportsTotal.WithLabelValues(result).Inc()
}

// RecordSweep records a sweeper pass.
func RecordSweep(evicted, remaining int) {
	VisitSweepEvictions.Add(float64(evicted))
	VisitThrottleEntries.Set(float64(remaining))
}

// RecordAPIRequest records an agent API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
