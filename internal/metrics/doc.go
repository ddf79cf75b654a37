// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

/*
Package metrics provides Prometheus metrics for the SBlog agent.

All collectors are registered on the default registry through promauto and
exposed by the agent at /metrics.

# Available Metrics

Pipeline:
  - pipeline_requests_total{method,endpoint,outcome}
  - pipeline_request_duration_seconds{method,endpoint}
  - pipeline_notifications_total{kind,disposition}
  - session_expiries_total{action}

Visit recorder:
  - visit_decisions_total{decision}
  - visit_reports_total{result}
  - visit_throttle_entries
  - visit_sweep_evictions_total

Agent API and WebSocket:
  - api_requests_total, api_request_duration_seconds, api_active_requests
  - api_rate_limit_hits_total
  - websocket_connections, websocket_messages_sent_total, websocket_errors_total

Circuit breaker:
  - circuit_breaker_state, circuit_breaker_requests_total
  - circuit_breaker_consecutive_failures, circuit_breaker_state_transitions_total
*/
package metrics
