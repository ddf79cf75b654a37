// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package client

import (
	"context"
	"time"

	"github.com/tomtom215/sblog-agent/internal/logging"
)

// Notification is the transient, user-visible error message for one failed call.
type Notification struct {
	Kind      Kind      `json:"kind"`
	Status    int       `json:"status,omitempty"`
	Message   string    `json:"message"`
	Method    string    `json:"method,omitempty"`
	Path      string    `json:"path,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Notifier surfaces notifications to the user. Notify must not block.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notification)

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, n Notification) {
	f(ctx, n)
}

// LogNotifier writes notifications to the log.
type LogNotifier struct{}

// Notify logs n at warn level.
func (LogNotifier) Notify(ctx context.Context, n Notification) {
	logging.Ctx(ctx).Warn().
		Str("kind", string(n.Kind)).
		Int("status", n.Status).
		Str("method", n.Method).
		Str("path", n.Path).
		Msg(n.Message)
}

// MultiNotifier fans a notification out to several notifiers.
type MultiNotifier []Notifier

// Notify calls every notifier in order.
func (m MultiNotifier) Notify(ctx context.Context, n Notification) {
	for _, notifier := range m {
		notifier.Notify(ctx, n)
	}
}
