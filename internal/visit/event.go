// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package visit

import (
	"time"

	"github.com/tomtom215/sblog-agent/internal/navigation"
)

// Event is one reportable visit. Only the JSON fields are sent.
type Event struct {
	Path      string            `json:"path"`
	FullPath  string            `json:"fullPath"`
	Query     map[string]string `json:"query"`
	Referrer  string            `json:"referrer"`
	Timestamp time.Time         `json:"-"`
}

// NewEvent builds the visit event for a transition. Query is never nil so it
// encodes as {}.
func NewEvent(tr navigation.Transition, at time.Time) Event {
	query := make(map[string]string, len(tr.Query))
	for k, v := range tr.Query {
		query[k] = v
	}
	return Event{
		Path:      tr.To,
		FullPath:  tr.Destination(),
		Query:     query,
		Referrer:  tr.Referrer,
		Timestamp: at,
	}
}
