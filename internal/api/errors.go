// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/sblog-agent/internal/client"
	"github.com/tomtom215/sblog-agent/internal/logging"
	"github.com/tomtom215/sblog-agent/internal/validation"
)

type statusMapping struct {
	status int
	code   string
}

// upstreamStatus maps pipeline error kinds to agent responses.
var upstreamStatus = map[client.Kind]statusMapping{
	client.KindValidation:      {http.StatusBadRequest, ErrCodeBadRequest},
	client.KindAuthExpired:     {http.StatusUnauthorized, ErrCodeUnauthorized},
	client.KindForbidden:       {http.StatusForbidden, ErrCodeForbidden},
	client.KindNotFound:        {http.StatusNotFound, ErrCodeNotFound},
	client.KindServer:          {http.StatusBadGateway, ErrCodeUpstreamFailed},
	client.KindInvalidResponse: {http.StatusBadGateway, ErrCodeUpstreamFailed},
	client.KindStatus:          {http.StatusBadGateway, ErrCodeUpstreamFailed},
	client.KindNetwork:         {http.StatusBadGateway, ErrCodeUpstreamFailed},
	client.KindTimeout:         {http.StatusGatewayTimeout, ErrCodeUpstreamTimeout},
	client.KindCanceled:        {http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
}

// writeError maps err to a response. Validation errors carry field details;
// backend rejections and pipeline errors keep the backend's message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)

	var verr *validation.RequestValidationError
	if errors.As(err, &verr) {
		rw.ValidationError(verr.Error(), verr.Fields())
		return
	}

	var rejected *client.RejectedError
	if errors.As(err, &rejected) {
		rw.Error(http.StatusUnprocessableEntity, ErrCodeRejected, rejected.Message)
		return
	}

	var apiErr *client.Error
	if errors.As(err, &apiErr) {
		mapping, ok := upstreamStatus[apiErr.Kind]
		if !ok {
			mapping = statusMapping{http.StatusBadGateway, ErrCodeUpstreamFailed}
		}
		rw.Error(mapping.status, mapping.code, apiErr.Message)
		return
	}

	logging.Ctx(r.Context()).Error().Err(err).Msg("Request failed")
	rw.InternalError("internal error")
}
