// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package visit

import (
	"context"

	"github.com/tomtom215/sblog-agent/internal/metrics"
	"github.com/tomtom215/sblog-agent/internal/navigation"
)

// Guard is the navigation hook: it runs once per committed transition,
// keeps the location in sync and hands real moves to the recorder.
type Guard struct {
	recorder *Recorder
	location *navigation.Location
}

// NewGuard creates a guard. location may be nil when nothing tracks it.
// A nil recorder keeps the location in sync but reports nothing.
func NewGuard(recorder *Recorder, location *navigation.Location) *Guard {
	return &Guard{recorder: recorder, location: location}
}

// OnTransition records the new location and, unless from equals to, passes
// the transition to the recorder. Navigation never waits on the report.
func (g *Guard) OnTransition(ctx context.Context, tr navigation.Transition) Decision {
	if g.location != nil {
		g.location.SetRoute(tr.Destination())
	}
	if tr.NoOp() {
		metrics.RecordVisitDecision(string(DecisionNoOp))
		return DecisionNoOp
	}
	if g.recorder == nil {
		return DecisionDisabled
	}
	return g.recorder.Record(ctx, tr)
}
