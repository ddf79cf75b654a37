// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package visit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/sblog-agent/internal/logging"
	"github.com/tomtom215/sblog-agent/internal/metrics"
	"github.com/tomtom215/sblog-agent/internal/navigation"
)

// Decision is what the recorder did with one transition.
type Decision string

const (
	DecisionNoOp       Decision = "noop"
	DecisionIneligible Decision = "ineligible"
	DecisionThrottled  Decision = "throttled"
	DecisionReported   Decision = "reported"
	DecisionStopped    Decision = "stopped"
	DecisionDisabled   Decision = "disabled"
)

// Option configures a Recorder.
type Option func(*Recorder)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		r.now = now
	}
}

// Recorder decides per navigation whether to report a visit and delivers
// reports in the background.
type Recorder struct {
	cache    *ThrottleCache
	filter   *Filter
	reporter Reporter
	now      func() time.Time
	logger   zerolog.Logger

	baseCtx context.Context
	cancel  context.CancelFunc

	mu       sync.Mutex
	stopped  bool
	inflight sync.WaitGroup
}

// NewRecorder creates a recorder. Reports run on a context that is only
// canceled by Close.
func NewRecorder(cache *ThrottleCache, filter *Filter, reporter Reporter, opts ...Option) *Recorder {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Recorder{
		cache:    cache,
		filter:   filter,
		reporter: reporter,
		now:      time.Now,
		logger:   logging.WithComponent("visit-recorder"),
		baseCtx:  ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Cache returns the recorder's throttle cache.
func (r *Recorder) Cache() *ThrottleCache {
	return r.cache
}

// Record evaluates tr and, when it is eligible and not throttled, starts a
// background report. It never waits for delivery.
func (r *Recorder) Record(ctx context.Context, tr navigation.Transition) Decision {
	if err := r.filter.Check(tr.To); err != nil {
		r.logger.Trace().Str("path", tr.To).Err(err).Msg("Visit not eligible")
		metrics.RecordVisitDecision(string(DecisionIneligible))
		return DecisionIneligible
	}

	now := r.now()

	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return DecisionStopped
	}
	ticket, ok := r.cache.TryAcquire(tr.To, now)
	if !ok {
		r.mu.Unlock()
		metrics.RecordVisitDecision(string(DecisionThrottled))
		return DecisionThrottled
	}
	r.inflight.Add(1)
	r.mu.Unlock()

	metrics.RecordVisitDecision(string(DecisionReported))

	reportCtx := r.baseCtx
	if requestID := logging.RequestIDFromContext(ctx); requestID != "" {
		reportCtx = logging.ContextWithRequestID(reportCtx, requestID)
	}
	go r.deliver(reportCtx, ticket, NewEvent(tr, now))

	return DecisionReported
}

func (r *Recorder) deliver(ctx context.Context, ticket Ticket, ev Event) {
	defer r.inflight.Done()

	err := r.reporter.Report(ctx, ev)
	if err == nil {
		metrics.RecordVisitReport("success")
		return
	}

	released := r.cache.Release(ticket)

	result := "failure"
	if errors.Is(err, ErrRateLimited) || errors.Is(err, context.Canceled) {
		result = "rejected"
	}
	metrics.RecordVisitReport(result)

	logging.Ctx(ctx).Debug().
		Str("component", "visit-recorder").
		Str("path", ev.Path).
		Bool("released", released).
		Err(err).
		Msg("Visit report failed")
}

// Wait blocks until every in-flight report has finished.
func (r *Recorder) Wait() {
	r.inflight.Wait()
}

// Close stops accepting transitions, cancels in-flight reports and waits for them.
func (r *Recorder) Close() {
	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()

	r.cancel()
	r.inflight.Wait()
}
