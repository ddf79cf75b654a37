// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package api

import (
	"net/http"

	"github.com/tomtom215/sblog-agent/internal/navigation"
	"github.com/tomtom215/sblog-agent/internal/validation"
	"github.com/tomtom215/sblog-agent/internal/visit"
)

// NavigateResponse reports what the visit guard did with a transition.
type NavigateResponse struct {
	Decision visit.Decision `json:"decision"`
	Location string         `json:"location"`
}

// Navigate accepts one committed transition from the routing layer and runs
// the visit guard. It answers 202 without waiting for any report.
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	var tr navigation.Transition
	if !decodeJSON(w, r, &tr) {
		return
	}
	if err := validation.ValidateStruct(&tr); err != nil {
		writeError(w, r, err)
		return
	}

	decision := h.guard.OnTransition(r.Context(), tr)

	NewResponseWriter(w, r).Accepted(NavigateResponse{
		Decision: decision,
		Location: h.location.String(),
	})
}
