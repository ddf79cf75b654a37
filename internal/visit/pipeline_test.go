// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package visit

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/sblog-agent/internal/client"
	"github.com/tomtom215/sblog-agent/internal/navigation"
	"github.com/tomtom215/sblog-agent/internal/session"
)

type capturedRequest struct {
	method string
	path   string
	auth   string
	body   string
}

type visitBackend struct {
	mu       sync.Mutex
	requests []capturedRequest
}

func (b *visitBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.requests = append(b.requests, capturedRequest{
		method: r.Method,
		path:   r.URL.Path,
		auth:   r.Header.Get("Authorization"),
		body:   string(body),
	})
	b.mu.Unlock()
	_, _ = w.Write([]byte(`{"code":200,"message":"success","data":null}`))
}

func (b *visitBackend) all() []capturedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]capturedRequest(nil), b.requests...)
}

func newPipelineRecorder(t *testing.T, baseURL string, clock *fakeClock) (*Recorder, session.Store) {
	t.Helper()

	loc, err := navigation.NewLocation("http://localhost:5173/#/")
	if err != nil {
		t.Fatal(err)
	}
	store := session.NewMemoryStore()
	quiet := client.NotifierFunc(func(context.Context, client.Notification) {})

	c, err := client.New(client.Options{BaseURL: baseURL, Timeout: 2 * time.Second}, store, loc, quiet)
	if err != nil {
		t.Fatalf("client.New() error = %v", err)
	}

	r := NewRecorder(
		NewThrottleCache(5*time.Second),
		NewFilter("/admin", nil),
		NewAPIReporter(c, DefaultEndpoint, 0, 0),
		WithClock(clock.Now),
	)
	t.Cleanup(r.Close)
	return r, store
}

func TestPipeline_HappyPathScenario(t *testing.T) {
	t.Parallel()

	backend := &visitBackend{}
	srv := httptest.NewServer(backend)
	defer srv.Close()

	clock := newFakeClock(t0)
	r, store := newPipelineRecorder(t, srv.URL+"/api", clock)
	_ = store.SetCredential(context.Background(), "reader-token")
	ctx := context.Background()

	categories := navigation.Transition{From: "/", To: "/categories", FullPath: "/categories"}

	if got := r.Record(ctx, categories); got != DecisionReported {
		t.Fatalf("decision at t0 = %q, want reported", got)
	}
	r.Wait()

	if at, ok := r.Cache().LastReported("/categories"); !ok || !at.Equal(t0) {
		t.Errorf("cache entry = %v, %v; want /categories -> t0", at, ok)
	}

	reqs := backend.all()
	if len(reqs) != 1 {
		t.Fatalf("backend requests = %d, want 1", len(reqs))
	}
	got := reqs[0]
	if got.method != http.MethodPost || got.path != "/api/admin/visit-log/record" {
		t.Errorf("request = %s %s, want POST /api/admin/visit-log/record", got.method, got.path)
	}
	if got.auth != "Bearer reader-token" {
		t.Errorf("Authorization = %q", got.auth)
	}
	wantBody := `{"path":"/categories","fullPath":"/categories","query":{},"referrer":""}`
	if got.body != wantBody {
		t.Errorf("body = %s, want %s", got.body, wantBody)
	}

	clock.Set(t0.Add(2000 * time.Millisecond))
	if got := r.Record(ctx, categories); got != DecisionThrottled {
		t.Errorf("decision at t0+2000ms = %q, want throttled", got)
	}
	r.Wait()
	if n := len(backend.all()); n != 1 {
		t.Errorf("backend requests after throttled call = %d, want 1", n)
	}

	later := t0.Add(6000 * time.Millisecond)
	clock.Set(later)
	if got := r.Record(ctx, categories); got != DecisionReported {
		t.Errorf("decision at t0+6000ms = %q, want reported", got)
	}
	r.Wait()

	if n := len(backend.all()); n != 2 {
		t.Errorf("backend requests after scenario = %d, want 2", n)
	}
	if at, ok := r.Cache().LastReported("/categories"); !ok || !at.Equal(later) {
		t.Errorf("cache entry = %v, %v; want /categories -> t0+6000ms", at, ok)
	}
}

func TestPipeline_FailureRetryScenario(t *testing.T) {
	t.Parallel()

	down := httptest.NewServer(http.NotFoundHandler())
	downURL := down.URL
	down.Close()

	clock := newFakeClock(t0)
	r, _ := newPipelineRecorder(t, downURL+"/api", clock)
	ctx := context.Background()

	if got := r.Record(ctx, to("/tags")); got != DecisionReported {
		t.Fatalf("decision = %q, want reported", got)
	}
	r.Wait()

	if _, ok := r.Cache().LastReported("/tags"); ok {
		t.Fatal("cache entry for /tags should be absent after a network failure")
	}
	if got := r.Record(ctx, to("/tags")); got != DecisionReported {
		t.Errorf("immediate re-navigation decision = %q, want reported", got)
	}
	r.Wait()
}
