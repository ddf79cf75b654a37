// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package navigation

// Transition is one committed navigation supplied by the routing layer.
type Transition struct {
	From     string            `json:"from" validate:"omitempty,startswith=/"`
	To       string            `json:"to" validate:"required,startswith=/"`
	FullPath string            `json:"fullPath" validate:"omitempty,startswith=/"`
	Query    map[string]string `json:"query"`
	Referrer string            `json:"referrer"`
}

// NoOp reports whether the transition stays on the same path.
func (t Transition) NoOp() bool {
	return t.From == t.To
}

// Destination returns the full destination path, falling back to To when
// the routing layer did not supply one.
func (t Transition) Destination() string {
	if t.FullPath != "" {
		return t.FullPath
	}
	return t.To
}
