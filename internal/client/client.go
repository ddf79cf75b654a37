// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/sblog-agent/internal/logging"
	"github.com/tomtom215/sblog-agent/internal/metrics"
	"github.com/tomtom215/sblog-agent/internal/navigation"
	"github.com/tomtom215/sblog-agent/internal/session"
)

// maxErrorBodySize limits how much of an error response is read for the server message.
const maxErrorBodySize = 64 * 1024

// Options configures a Client.
type Options struct {
	BaseURL       string
	Timeout       time.Duration
	UserAgent     string
	LoginRoute    string
	RegisterRoute string

	// Transport is the underlying transport; http.DefaultTransport when nil.
	Transport http.RoundTripper
}

// Request describes one outbound call. Path is relative to the base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Header http.Header
}

// Client is the authenticated request pipeline. It is safe for concurrent use.
type Client struct {
	baseURL       *url.URL
	http          *http.Client
	store         session.Store
	location      *navigation.Location
	notifier      Notifier
	loginRoute    string
	registerRoute string
	logger        zerolog.Logger

	// expiryMu serializes session-expiry handling across concurrent 401s.
	expiryMu sync.Mutex
}

// New creates a Client sharing store and location with the rest of the agent.
func New(opts Options, store session.Store, location *navigation.Location, notifier Notifier) (*Client, error) {
	if store == nil || location == nil {
		return nil, errors.New("client: store and location are required")
	}
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseURL)
	}
	if notifier == nil {
		notifier = LogNotifier{}
	}
	if opts.LoginRoute == "" {
		opts.LoginRoute = "/login"
	}
	if opts.RegisterRoute == "" {
		opts.RegisterRoute = "/register"
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: &authTransport{base: transport, store: store, userAgent: opts.UserAgent},
		},
		store:         store,
		location:      location,
		notifier:      notifier,
		loginRoute:    opts.LoginRoute,
		registerRoute: opts.RegisterRoute,
		logger:        logging.WithComponent("pipeline"),
	}, nil
}

// Store returns the session store the client reads credentials from.
func (c *Client) Store() session.Store {
	return c.store
}

// Location returns the browsing context the client redirects on expiry.
func (c *Client) Location() *navigation.Location {
	return c.location
}

// Get performs a GET request and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, out)
}

// Do performs req and decodes a successful body into out (which may be nil).
//
// Failures are classified, notified and expiry-handled before being returned
// as *Error. Errors building the request are returned unchanged.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return c.fail(ctx, req, newTransportError(err), start)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := readBodyForError(resp.Body)
		return c.fail(ctx, req, newStatusError(resp.StatusCode, serverMessage(body)), start)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			apiErr := &Error{
				Kind:    KindInvalidResponse,
				Status:  resp.StatusCode,
				Message: fallbackMessages[KindInvalidResponse],
				Err:     err,
			}
			return c.fail(ctx, req, apiErr, start)
		}
	}

	metrics.RecordPipelineRequest(req.Method, req.Path, "ok", time.Since(start))
	return nil
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	u := c.baseURL.JoinPath(req.Path)
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	return httpReq, nil
}

// fail runs the cross-cutting failure handling and returns apiErr.
func (c *Client) fail(ctx context.Context, req Request, apiErr *Error, start time.Time) error {
	metrics.RecordPipelineRequest(req.Method, req.Path, string(apiErr.Kind), time.Since(start))

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Str("kind", string(apiErr.Kind)).
		Int("status", apiErr.Status).
		Err(apiErr.Err).
		Msg("Request failed")

	switch apiErr.Kind {
	case KindCanceled:
		// The caller gave up; nothing to tell the user.
	case KindAuthExpired:
		c.expire(ctx, req, apiErr)
	default:
		c.notify(ctx, req, apiErr, !c.location.IsAt(c.loginRoute))
	}
	return apiErr
}

// expire clears the credential and redirects to login once per expiry.
func (c *Client) expire(ctx context.Context, req Request, apiErr *Error) {
	c.expiryMu.Lock()
	defer c.expiryMu.Unlock()

	wasOnLogin := c.location.IsAt(c.loginRoute)

	if err := c.store.ClearCredential(context.WithoutCancel(ctx)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to clear credential after 401")
	}

	redirect := !c.location.IsAt(c.loginRoute, c.registerRoute)
	if redirect {
		target := c.location.Redirect(c.loginRoute)
		c.logger.Info().Str("location", target).Msg("Session expired, redirected to login")
	}
	metrics.RecordSessionExpiry(redirect)

	c.notify(ctx, req, apiErr, !wasOnLogin)
}

func (c *Client) notify(ctx context.Context, req Request, apiErr *Error, show bool) {
	metrics.RecordNotification(string(apiErr.Kind), show)
	if !show {
		return
	}
	c.notifier.Notify(ctx, Notification{
		Kind:      apiErr.Kind,
		Status:    apiErr.Status,
		Message:   apiErr.Message,
		Method:    req.Method,
		Path:      req.Path,
		RequestID: logging.RequestIDFromContext(ctx),
		Timestamp: time.Now().UTC(),
	})
}

// readBodyForError reads at most maxErrorBodySize bytes of an error response.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return nil
	}
	return body
}

// serverMessage extracts the envelope's message from an error body, if any.
func serverMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return envelope.Message
}
