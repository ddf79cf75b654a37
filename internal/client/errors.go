// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Kind classifies a failed call.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindAuthExpired     Kind = "auth_expired"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindServer          Kind = "server_error"
	KindStatus          Kind = "unclassified_status"
	KindTimeout         Kind = "timeout"
	KindNetwork         Kind = "network_unreachable"
	KindInvalidResponse Kind = "invalid_response"
	KindCanceled        Kind = "canceled"
)

// fallbackMessages maps each kind to its user-facing message.
// KindStatus is formatted with the status code.
var fallbackMessages = map[Kind]string{
	KindValidation:      "Invalid request parameters",
	KindAuthExpired:     "Unauthorized, please log in again",
	KindForbidden:       "Access denied",
	KindNotFound:        "Requested resource not found",
	KindServer:          "Server error",
	KindStatus:          "Request failed (%d)",
	KindTimeout:         "Request timed out",
	KindNetwork:         "Network connection failed",
	KindInvalidResponse: "Invalid response from server",
	KindCanceled:        "Request canceled",
}

// serverMessageWins lists the kinds where a server-supplied message replaces the fallback.
var serverMessageWins = map[Kind]bool{
	KindValidation: true,
	KindForbidden:  true,
	KindNotFound:   true,
	KindServer:     true,
	KindStatus:     true,
}

var statusKinds = map[int]Kind{
	http.StatusBadRequest:          KindValidation,
	http.StatusUnauthorized:        KindAuthExpired,
	http.StatusForbidden:           KindForbidden,
	http.StatusNotFound:            KindNotFound,
	http.StatusInternalServerError: KindServer,
}

// Error is a classified pipeline failure. It is returned to the caller after
// the pipeline has done its own handling (notification, expiry).
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind, so callers can write
// errors.Is(err, client.ErrAuthExpired).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrValidation  = &Error{Kind: KindValidation}
	ErrAuthExpired = &Error{Kind: KindAuthExpired}
	ErrForbidden   = &Error{Kind: KindForbidden}
	ErrNotFound    = &Error{Kind: KindNotFound}
	ErrServer      = &Error{Kind: KindServer}
	ErrTimeout     = &Error{Kind: KindTimeout}
	ErrNetwork     = &Error{Kind: KindNetwork}
)

// KindOf returns the kind of a pipeline error, or "" for other errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// newStatusError classifies a non-2xx response.
func newStatusError(status int, serverMessage string) *Error {
	kind, ok := statusKinds[status]
	if !ok {
		kind = KindStatus
	}
	return &Error{Kind: kind, Status: status, Message: messageFor(kind, status, serverMessage)}
}

// newTransportError classifies a call that produced no response.
func newTransportError(err error) *Error {
	kind := classifyTransport(err)
	return &Error{Kind: kind, Message: messageFor(kind, 0, ""), Err: err}
}

func classifyTransport(err error) Kind {
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return KindTimeout
	default:
		return KindNetwork
	}
}

func messageFor(kind Kind, status int, serverMessage string) string {
	if serverMessage != "" && serverMessageWins[kind] {
		return serverMessage
	}
	if kind == KindStatus {
		return fmt.Sprintf(fallbackMessages[KindStatus], status)
	}
	return fallbackMessages[kind]
}
