// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/sblog-agent/internal/navigation"
	"github.com/tomtom215/sblog-agent/internal/session"
)

type recordingNotifier struct {
	mu    sync.Mutex
	notes []Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	r.notes = append(r.notes, n)
	r.mu.Unlock()
}

func (r *recordingNotifier) all() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.notes...)
}

type testEnv struct {
	client   *Client
	store    *session.MemoryStore
	location *navigation.Location
	notifier *recordingNotifier
}

func newTestEnv(t *testing.T, baseURL, route string, timeout time.Duration) *testEnv {
	t.Helper()

	loc, err := navigation.NewLocation("http://localhost:5173/#" + route)
	if err != nil {
		t.Fatalf("NewLocation() error = %v", err)
	}
	store := session.NewMemoryStore()
	notifier := &recordingNotifier{}

	c, err := New(Options{BaseURL: baseURL, Timeout: timeout, UserAgent: "sblog-agent-test"}, store, loc, notifier)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return &testEnv{client: c, store: store, location: loc, notifier: notifier}
}

func statusServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	loc, _ := navigation.NewLocation("http://localhost:5173/")
	store := session.NewMemoryStore()

	if _, err := New(Options{BaseURL: "/api"}, store, loc, nil); err == nil {
		t.Error("relative base URL should be rejected")
	}
	if _, err := New(Options{BaseURL: "http://localhost/api"}, nil, loc, nil); err == nil {
		t.Error("nil store should be rejected")
	}
	if _, err := New(Options{BaseURL: "http://localhost/api"}, store, nil, nil); err == nil {
		t.Error("nil location should be rejected")
	}
}

func TestClient_InjectsCredential(t *testing.T) {
	t.Parallel()

	var gotAuth, gotPath, gotRequestID, gotUA atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		gotPath.Store(r.URL.Path)
		gotRequestID.Store(r.Header.Get("X-Request-ID"))
		gotUA.Store(r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"code":200,"message":"ok","data":null}`))
	}))
	defer srv.Close()

	env := newTestEnv(t, srv.URL+"/api", "/home", time.Second)
	ctx := context.Background()

	if err := env.client.Get(ctx, "/articles", nil, nil); err != nil {
		t.Fatalf("Get() without credential error = %v", err)
	}
	if got := gotAuth.Load().(string); got != "" {
		t.Errorf("Authorization without credential = %q, want empty", got)
	}
	if got := gotPath.Load().(string); got != "/api/articles" {
		t.Errorf("path = %q, want /api/articles", got)
	}
	if got := gotRequestID.Load().(string); got == "" {
		t.Error("X-Request-ID should be set")
	}
	if got := gotUA.Load().(string); got != "sblog-agent-test" {
		t.Errorf("User-Agent = %q", got)
	}

	_ = env.store.SetCredential(ctx, "jwt-token-value")
	if err := env.client.Get(ctx, "/articles", nil, nil); err != nil {
		t.Fatalf("Get() with credential error = %v", err)
	}
	if got := gotAuth.Load().(string); got != "Bearer jwt-token-value" {
		t.Errorf("Authorization = %q, want Bearer jwt-token-value", got)
	}
}

func TestFetch_UnwrapsEnvelope(t *testing.T) {
	t.Parallel()

	srv := statusServer(t, http.StatusOK, `{"code":200,"message":"success","data":{"id":7,"name":"go"}}`)
	env := newTestEnv(t, srv.URL+"/api", "/", time.Second)

	type tag struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	got, err := Fetch[tag](context.Background(), env.client, Request{Method: http.MethodGet, Path: "/tags/7"})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got.ID != 7 || got.Name != "go" {
		t.Errorf("Fetch() = %+v, want {7 go}", got)
	}
}

func TestFetch_RejectedEnvelope(t *testing.T) {
	t.Parallel()

	srv := statusServer(t, http.StatusOK, `{"code":500,"message":"username already exists","data":null}`)
	env := newTestEnv(t, srv.URL+"/api", "/register", time.Second)

	_, err := Fetch[struct{}](context.Background(), env.client, Request{Method: http.MethodPost, Path: "/admin/users/register"})
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("Fetch() error = %v, want ErrRejected", err)
	}
	var rejected *RejectedError
	if !errors.As(err, &rejected) || rejected.Code != 500 || rejected.Message != "username already exists" {
		t.Errorf("Fetch() error = %v, want code 500 with backend message", err)
	}
	if KindOf(err) != "" {
		t.Errorf("KindOf() = %q, a rejection is not a pipeline failure", KindOf(err))
	}
	if n := len(env.notifier.all()); n != 0 {
		t.Errorf("notifications = %d, want 0", n)
	}
}

func TestResult_Err(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		res     Result[int]
		wantErr bool
		wantMsg string
	}{
		{"success", Result[int]{Code: 200, Data: 1}, false, ""},
		{"missing code", Result[int]{}, false, ""},
		{"failure with message", Result[int]{Code: 500, Message: "nope"}, true, "nope"},
		{"failure without message", Result[int]{Code: 403}, true, "Request failed (403)"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.res.Err()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Err() = %v, wantErr %v", err, tt.wantErr)
			}
			var rejected *RejectedError
			if tt.wantErr && (!errors.As(err, &rejected) || rejected.Message != tt.wantMsg) {
				t.Errorf("Err() = %v, want message %q", err, tt.wantMsg)
			}
		})
	}
}

func TestClient_EmptySuccessBody(t *testing.T) {
	t.Parallel()

	srv := statusServer(t, http.StatusNoContent, "")
	env := newTestEnv(t, srv.URL, "/", time.Second)

	var out map[string]any
	if err := env.client.Post(context.Background(), "/admin/users/logout", nil, &out); err != nil {
		t.Fatalf("Post() with empty body error = %v", err)
	}
}

func TestClient_StatusClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		wantKind Kind
		wantMsg  string
	}{
		{"400 with server message", 400, `{"code":400,"message":"Title is required"}`, KindValidation, "Title is required"},
		{"400 without message", 400, ``, KindValidation, "Invalid request parameters"},
		{"403 fallback", 403, `{}`, KindForbidden, "Access denied"},
		{"403 with server message", 403, `{"message":"Admins only"}`, KindForbidden, "Admins only"},
		{"404 fallback", 404, `not json`, KindNotFound, "Requested resource not found"},
		{"500 fallback", 500, `{"code":500}`, KindServer, "Server error"},
		{"500 with server message", 500, `{"message":"Database unavailable"}`, KindServer, "Database unavailable"},
		{"502 unclassified", 502, ``, KindStatus, "Request failed (502)"},
		{"418 with server message", 418, `{"message":"teapot"}`, KindStatus, "teapot"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := statusServer(t, tt.status, tt.body)
			env := newTestEnv(t, srv.URL, "/categories", time.Second)

			err := env.client.Get(context.Background(), "/categories", nil, nil)

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want *Error", err)
			}
			if apiErr.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", apiErr.Kind, tt.wantKind)
			}
			if apiErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.status)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMsg)
			}

			notes := env.notifier.all()
			if len(notes) != 1 {
				t.Fatalf("notifications = %d, want exactly 1", len(notes))
			}
			if notes[0].Message != tt.wantMsg || notes[0].Kind != tt.wantKind {
				t.Errorf("notification = %+v", notes[0])
			}
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	env := newTestEnv(t, srv.URL, "/home", 50*time.Millisecond)
	err := env.client.Get(context.Background(), "/slow", nil, nil)

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("error = %v, want timeout", err)
	}
	notes := env.notifier.all()
	if len(notes) != 1 || notes[0].Message != "Request timed out" {
		t.Errorf("notifications = %+v, want one timeout notification", notes)
	}
}

func TestClient_NetworkUnreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	env := newTestEnv(t, url, "/home", time.Second)
	err := env.client.Get(context.Background(), "/tags", nil, nil)

	if KindOf(err) != KindNetwork {
		t.Fatalf("KindOf(%v) = %q, want %q", err, KindOf(err), KindNetwork)
	}
	notes := env.notifier.all()
	if len(notes) != 1 || notes[0].Message != "Network connection failed" {
		t.Errorf("notifications = %+v, want one network notification", notes)
	}
}

func TestClient_CanceledIsNotNotified(t *testing.T) {
	t.Parallel()

	srv := statusServer(t, http.StatusOK, `{}`)
	env := newTestEnv(t, srv.URL, "/home", time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := env.client.Get(ctx, "/articles", nil, nil)
	if KindOf(err) != KindCanceled {
		t.Fatalf("KindOf(%v) = %q, want canceled", err, KindOf(err))
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("canceled error should wrap context.Canceled")
	}
	if n := len(env.notifier.all()); n != 0 {
		t.Errorf("notifications = %d, want 0", n)
	}
}

func TestClient_RequestBuildErrorPassesThrough(t *testing.T) {
	t.Parallel()

	srv := statusServer(t, http.StatusOK, `{}`)
	env := newTestEnv(t, srv.URL, "/home", time.Second)

	err := env.client.Post(context.Background(), "/articles", map[string]any{"bad": make(chan int)}, nil)
	if err == nil {
		t.Fatal("unencodable body should fail")
	}
	if KindOf(err) != "" {
		t.Errorf("build errors must not be classified, got kind %q", KindOf(err))
	}
	if n := len(env.notifier.all()); n != 0 {
		t.Errorf("notifications = %d, want 0", n)
	}
}

func TestClient_NotificationSuppressedOnLogin(t *testing.T) {
	t.Parallel()

	srv := statusServer(t, http.StatusBadRequest, `{"message":"Wrong password"}`)
	env := newTestEnv(t, srv.URL, "/login", time.Second)

	err := env.client.Post(context.Background(), "/admin/users/login", map[string]string{"username": "a"}, nil)

	if !errors.Is(err, ErrValidation) {
		t.Fatalf("error = %v, want validation error", err)
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "Wrong password" {
		t.Errorf("caller should still see the server message, got %q", apiErr.Message)
	}
	if n := len(env.notifier.all()); n != 0 {
		t.Errorf("notifications on login = %d, want 0", n)
	}
}

func TestClient_SessionExpiry(t *testing.T) {
	t.Parallel()

	srv := statusServer(t, http.StatusUnauthorized, `{"message":"token expired"}`)
	env := newTestEnv(t, srv.URL+"/api", "/categories", time.Second)
	ctx := context.Background()
	_ = env.store.SetCredential(ctx, "stale")

	err := env.client.Get(ctx, "/admin/users/info", nil, nil)

	if !errors.Is(err, ErrAuthExpired) {
		t.Fatalf("error = %v, want auth expired", err)
	}
	if _, err := env.store.Credential(ctx); !errors.Is(err, session.ErrNoCredential) {
		t.Errorf("credential should be cleared, Credential() error = %v", err)
	}
	if got := env.location.String(); got != "http://localhost:5173/#/login" {
		t.Errorf("location = %q, want http://localhost:5173/#/login", got)
	}
	notes := env.notifier.all()
	if len(notes) != 1 || notes[0].Message != "Unauthorized, please log in again" {
		t.Errorf("notifications = %+v, want one unauthorized notification", notes)
	}
}

func TestClient_ConcurrentExpiryRedirectsOnce(t *testing.T) {
	t.Parallel()

	srv := statusServer(t, http.StatusUnauthorized, ``)
	env := newTestEnv(t, srv.URL, "/categories", 5*time.Second)
	ctx := context.Background()
	_ = env.store.SetCredential(ctx, "stale")

	var redirects atomic.Int32
	env.location.OnRedirect(func(string) { redirects.Add(1) })

	const calls = 20
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_ = env.client.Get(ctx, "/articles", nil, nil)
		}()
	}
	close(start)
	wg.Wait()

	if got := redirects.Load(); got != 1 {
		t.Errorf("redirects = %d, want 1", got)
	}
	if n := len(env.notifier.all()); n != 1 {
		t.Errorf("notifications = %d, want 1", n)
	}
	if _, err := env.store.Credential(ctx); !errors.Is(err, session.ErrNoCredential) {
		t.Errorf("credential should be cleared")
	}
	if !env.location.IsAt("/login") {
		t.Errorf("location = %q, want login", env.location.String())
	}
}

func TestClient_ExpiryOnRegisterDoesNotRedirect(t *testing.T) {
	t.Parallel()

	srv := statusServer(t, http.StatusUnauthorized, ``)
	env := newTestEnv(t, srv.URL, "/register", time.Second)
	ctx := context.Background()
	_ = env.store.SetCredential(ctx, "stale")

	var redirects atomic.Int32
	env.location.OnRedirect(func(string) { redirects.Add(1) })

	_ = env.client.Get(ctx, "/admin/users/check-username", nil, nil)

	if redirects.Load() != 0 {
		t.Errorf("redirected from register route")
	}
	if !env.location.IsAt("/register") {
		t.Errorf("location = %q, want register", env.location.String())
	}
	if _, err := env.store.Credential(ctx); !errors.Is(err, session.ErrNoCredential) {
		t.Errorf("credential should still be cleared on register route")
	}
	if n := len(env.notifier.all()); n != 1 {
		t.Errorf("notifications = %d, want 1 (only login suppresses)", n)
	}
}

func TestClient_ExpiryOnLoginIsSilent(t *testing.T) {
	t.Parallel()

	srv := statusServer(t, http.StatusUnauthorized, ``)
	env := newTestEnv(t, srv.URL, "/login", time.Second)

	var redirects atomic.Int32
	env.location.OnRedirect(func(string) { redirects.Add(1) })

	_ = env.client.Get(context.Background(), "/admin/users/info", nil, nil)

	if redirects.Load() != 0 {
		t.Errorf("redirected while already on login")
	}
	if n := len(env.notifier.all()); n != 0 {
		t.Errorf("notifications = %d, want 0", n)
	}
}
