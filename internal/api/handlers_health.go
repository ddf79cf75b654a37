// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/sblog-agent/internal/session"
)

// HealthResponse summarizes component state.
type HealthResponse struct {
	Status          string        `json:"status"`
	Uptime          float64       `json:"uptime_seconds"`
	Session         session.State `json:"session"`
	ThrottleEntries int           `json:"throttle_entries"`
	BreakerState    string        `json:"breaker_state,omitempty"`
	WSClients       int           `json:"ws_clients"`
}

// Health reports liveness. It never calls the backend.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	state, err := session.CurrentState(r.Context(), h.store)
	if err != nil {
		state = session.StateAnonymous
	}

	resp := HealthResponse{
		Status:  "ok",
		Uptime:  time.Since(h.startTime).Seconds(),
		Session: state,
	}
	if h.recorder != nil {
		resp.ThrottleEntries = h.recorder.Cache().Len()
	}
	if h.breaker != nil {
		resp.BreakerState = h.breaker.State().String()
	}
	if h.hub != nil {
		resp.WSClients = h.hub.ClientCount()
	}

	NewResponseWriter(w, r).Success(resp)
}
