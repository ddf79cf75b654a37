// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sblog-agent/internal/account"
	"github.com/tomtom215/sblog-agent/internal/navigation"
	"github.com/tomtom215/sblog-agent/internal/session"
	"github.com/tomtom215/sblog-agent/internal/visit"
	"github.com/tomtom215/sblog-agent/internal/websocket"
)

const maxBodySize = 64 * 1024

// HandlerDeps are the components the handlers drive. Recorder, Hub and
// Breaker are optional.
type HandlerDeps struct {
	Accounts *account.Service
	Store    session.Store
	Location *navigation.Location
	Guard    *visit.Guard
	Recorder *visit.Recorder
	Hub      *websocket.Hub
	Breaker  *visit.BreakerReporter
}

// Handler serves the agent API.
type Handler struct {
	accounts  *account.Service
	store     session.Store
	location  *navigation.Location
	guard     *visit.Guard
	recorder  *visit.Recorder
	hub       *websocket.Hub
	breaker   *visit.BreakerReporter
	startTime time.Time
}

// NewHandler creates a Handler.
func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		accounts:  deps.Accounts,
		store:     deps.Store,
		location:  deps.Location,
		guard:     deps.Guard,
		recorder:  deps.Recorder,
		hub:       deps.Hub,
		breaker:   deps.Breaker,
		startTime: time.Now(),
	}
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		msg := "invalid JSON body"
		if errors.Is(err, io.EOF) {
			msg = "request body is required"
		}
		NewResponseWriter(w, r).BadRequest(msg)
		return false
	}
	return true
}
