// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package visit

import (
	"context"
	"time"

	"github.com/tomtom215/sblog-agent/internal/logging"
	"github.com/tomtom215/sblog-agent/internal/metrics"
)

// Sweeper periodically evicts stale throttle entries. It implements
// suture.Service.
type Sweeper struct {
	cache    *ThrottleCache
	interval time.Duration
	now      func() time.Time
}

// NewSweeper creates a sweeper that runs every cache window.
func NewSweeper(cache *ThrottleCache) *Sweeper {
	return &Sweeper{
		cache:    cache,
		interval: cache.Window(),
		now:      time.Now,
	}
}

// SweepOnce runs a single pass and returns the number of evicted entries.
func (s *Sweeper) SweepOnce() int {
	evicted, remaining := s.cache.Sweep(s.now())
	metrics.RecordSweep(evicted, remaining)
	if evicted > 0 {
		logging.Debug().Int("evicted", evicted).Int("remaining", remaining).Msg("Swept visit throttle cache")
	}
	return evicted
}

// Serve sweeps on every tick until ctx is canceled.
func (s *Sweeper) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.SweepOnce()
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (s *Sweeper) String() string {
	return "visit-sweeper"
}
