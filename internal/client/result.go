// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package client

import (
	"context"
	"errors"
	"fmt"
)

// CodeSuccess is the envelope code of an accepted call.
const CodeSuccess = 200

// ErrRejected matches any *RejectedError.
var ErrRejected = errors.New("rejected by backend")

// RejectedError is a call the backend answered with a 2xx status but a
// non-success envelope code, such as a taken username or a wrong password.
// The pipeline does not notify for it; the caller decides what to show.
type RejectedError struct {
	Code    int
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("rejected (code %d): %s", e.Code, e.Message)
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}

// Result is the backend's response envelope.
type Result[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Err returns a *RejectedError unless the envelope reports success.
// A missing code (empty body) counts as success.
func (r *Result[T]) Err() error {
	if r.Code == 0 || r.Code == CodeSuccess {
		return nil
	}
	msg := r.Message
	if msg == "" {
		msg = fmt.Sprintf("Request failed (%d)", r.Code)
	}
	return &RejectedError{Code: r.Code, Message: msg}
}

// Fetch performs req and returns the envelope's data. A rejected envelope is
// returned as a *RejectedError.
func Fetch[T any](ctx context.Context, c *Client, req Request) (T, error) {
	var res Result[T]
	var zero T
	if err := c.Do(ctx, req, &res); err != nil {
		return zero, err
	}
	if err := res.Err(); err != nil {
		return zero, err
	}
	return res.Data, nil
}
