// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package visit

import (
	"context"
	"errors"

	"golang.org/x/time/rate"

	"github.com/tomtom215/sblog-agent/internal/client"
)

// DefaultEndpoint is the visit-logging path relative to the API base URL.
const DefaultEndpoint = "/admin/visit-log/record"

// ErrRateLimited is returned when the local report budget is exhausted.
var ErrRateLimited = errors.New("visit report rate limit exceeded")

// Reporter delivers one visit event. Any non-nil error counts as a failed delivery.
type Reporter interface {
	Report(ctx context.Context, ev Event) error
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, ev Event) error

// Report calls f.
func (f ReporterFunc) Report(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}

// APIReporter posts visit events through the authenticated request pipeline.
type APIReporter struct {
	client   *client.Client
	endpoint string
	limiter  *rate.Limiter
}

// NewAPIReporter creates a reporter posting to endpoint. reportsPerSecond <= 0
// disables the local rate limit.
func NewAPIReporter(c *client.Client, endpoint string, reportsPerSecond float64, burst int) *APIReporter {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	r := &APIReporter{client: c, endpoint: endpoint}
	if reportsPerSecond > 0 {
		if burst < 1 {
			burst = 1
		}
		r.limiter = rate.NewLimiter(rate.Limit(reportsPerSecond), burst)
	}
	return r
}

// Report posts ev. The response body is not inspected.
func (r *APIReporter) Report(ctx context.Context, ev Event) error {
	if r.limiter != nil && !r.limiter.Allow() {
		return ErrRateLimited
	}
	return r.client.Post(ctx, r.endpoint, ev, nil)
}
