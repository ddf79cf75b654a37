// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package client

import (
	"errors"
	"net/http"

	"github.com/tomtom215/sblog-agent/internal/logging"
	"github.com/tomtom215/sblog-agent/internal/session"
)

const (
	headerAuthorization = "Authorization"
	headerRequestID     = "X-Request-ID"
	headerUserAgent     = "User-Agent"
)

// authTransport injects the stored credential into every outbound request.
type authTransport struct {
	base      http.RoundTripper
	store     session.Store
	userAgent string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	req = req.Clone(ctx)

	token, err := t.store.Credential(ctx)
	switch {
	case err == nil:
		req.Header.Set(headerAuthorization, "Bearer "+token)
	case errors.Is(err, session.ErrNoCredential):
	default:
		// A broken store must not block the call; the backend decides.
		logging.Ctx(ctx).Warn().Err(err).Msg("Credential lookup failed, sending request without it")
	}

	if req.Header.Get(headerRequestID) == "" {
		requestID := logging.RequestIDFromContext(ctx)
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}
		req.Header.Set(headerRequestID, requestID)
	}
	if t.userAgent != "" && req.Header.Get(headerUserAgent) == "" {
		req.Header.Set(headerUserAgent, t.userAgent)
	}

	return t.base.RoundTrip(req)
}
