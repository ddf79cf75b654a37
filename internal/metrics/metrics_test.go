// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Collectors are process-global, so assertions compare deltas.

func TestRecordPipelineRequest(t *testing.T) {
	counter := PipelineRequestsTotal.WithLabelValues("GET", "/test/pipeline", "timeout")
	before := testutil.ToFloat64(counter)

	RecordPipelineRequest("GET", "/test/pipeline", "timeout", 20*time.Millisecond)

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("pipeline_requests_total delta = %v, want 1", got)
	}
}

func TestRecordNotification(t *testing.T) {
	shown := NotificationsTotal.WithLabelValues("test_kind", "shown")
	suppressed := NotificationsTotal.WithLabelValues("test_kind", "suppressed")
	beforeShown := testutil.ToFloat64(shown)
	beforeSuppressed := testutil.ToFloat64(suppressed)

	RecordNotification("test_kind", true)
	RecordNotification("test_kind", false)
	RecordNotification("test_kind", false)

	if got := testutil.ToFloat64(shown) - beforeShown; got != 1 {
		t.Errorf("shown delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(suppressed) - beforeSuppressed; got != 2 {
		t.Errorf("suppressed delta = %v, want 2", got)
	}
}

func TestRecordSessionExpiry(t *testing.T) {
	redirected := SessionExpiriesTotal.WithLabelValues("redirected")
	cleared := SessionExpiriesTotal.WithLabelValues("cleared_only")
	beforeRedirected := testutil.ToFloat64(redirected)
	beforeCleared := testutil.ToFloat64(cleared)

	RecordSessionExpiry(true)
	RecordSessionExpiry(false)

	if got := testutil.ToFloat64(redirected) - beforeRedirected; got != 1 {
		t.Errorf("redirected delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(cleared) - beforeCleared; got != 1 {
		t.Errorf("cleared_only delta = %v, want 1", got)
	}
}

func TestRecordSweep(t *testing.T) {
	before := testutil.ToFloat64(VisitSweepEvictions)

	RecordSweep(3, 7)

	if got := testutil.ToFloat64(VisitSweepEvictions) - before; got != 3 {
		t.Errorf("evictions delta = %v, want 3", got)
	}
	if got := testutil.ToFloat64(VisitThrottleEntries); got != 7 {
		t.Errorf("visit_throttle_entries = %v, want 7", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	TrackActiveRequest(false)

	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 1 {
		t.Errorf("api_active_requests delta = %v, want 1", got)
	}
	TrackActiveRequest(false)
}
