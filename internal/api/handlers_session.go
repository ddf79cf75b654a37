// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/sblog-agent/internal/account"
	"github.com/tomtom215/sblog-agent/internal/logging"
	"github.com/tomtom215/sblog-agent/internal/session"
)

// SessionStatusResponse describes the local session.
type SessionStatusResponse struct {
	State     session.State `json:"state"`
	Location  string        `json:"location"`
	Route     string        `json:"route"`
	Subject   string        `json:"subject,omitempty"`
	ExpiresAt *time.Time    `json:"expires_at,omitempty"`
	Expired   bool          `json:"expired,omitempty"`
}

// SessionStatus reports whether a credential is held and, when it is a JWT,
// its subject and expiry. Expiry is informational; only a 401 from the
// backend ends the session.
func (h *Handler) SessionStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := SessionStatusResponse{
		State:    session.StateAnonymous,
		Location: h.location.String(),
		Route:    h.location.Route(),
	}

	token, err := h.store.Credential(ctx)
	switch {
	case err == nil:
		resp.State = session.StateAuthenticated
		if info, err := session.InspectToken(token); err == nil {
			resp.Subject = info.Subject
			if !info.ExpiresAt.IsZero() {
				exp := info.ExpiresAt
				resp.ExpiresAt = &exp
				resp.Expired = info.ExpiredAt(time.Now())
			}
		} else {
			logging.Ctx(ctx).Trace().Err(err).Msg("Credential is not a readable JWT")
		}
	case errors.Is(err, session.ErrNoCredential):
	default:
		writeError(w, r, err)
		return
	}

	NewResponseWriter(w, r).Success(resp)
}

// Login forwards credentials to the backend and stores the returned token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds account.Credentials
	if !decodeJSON(w, r, &creds) {
		return
	}

	user, err := h.accounts.Login(r.Context(), creds)
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(user)
}

// Logout ends the session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.Logout(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(map[string]string{"state": string(session.StateAnonymous)})
}

// Register creates an account on the backend.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var reg account.Registration
	if !decodeJSON(w, r, &reg) {
		return
	}
	if err := h.accounts.Register(r.Context(), reg); err != nil {
		writeError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(map[string]string{"username": reg.Username})
}

// CurrentUser returns the backend's view of the logged-in user.
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.accounts.Info(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(user)
}

// CheckUsername reports whether ?username= is taken.
func (h *Handler) CheckUsername(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		NewResponseWriter(w, r).BadRequest("username is required")
		return
	}

	exists, err := h.accounts.UsernameExists(r.Context(), username)
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(map[string]any{"username": username, "exists": exists})
}
