// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

// Package account wraps the backend's user endpoints and owns the
// credential lifecycle: login stores it, logout removes it.
package account

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tomtom215/sblog-agent/internal/client"
	"github.com/tomtom215/sblog-agent/internal/logging"
	"github.com/tomtom215/sblog-agent/internal/session"
	"github.com/tomtom215/sblog-agent/internal/validation"
)

const (
	loginPath         = "/admin/users/login"
	registerPath      = "/admin/users/register"
	logoutPath        = "/admin/users/logout"
	infoPath          = "/admin/users/info"
	checkUsernamePath = "/admin/users/check-username"
)

// ErrEmptyToken is returned when a login succeeds without a credential.
var ErrEmptyToken = errors.New("login response carried no token")

// Credentials is the login form.
type Credentials struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// Registration is the sign-up form.
type Registration struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
}

// User is the backend's public user record.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
	Status   string `json:"status,omitempty"`
}

// LoginResponse is the data of a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Service performs account calls through the pipeline.
type Service struct {
	client *client.Client
	store  session.Store
}

// NewService creates a Service using the client's credential store.
func NewService(c *client.Client) *Service {
	return &Service{client: c, store: c.Store()}
}

// Login authenticates and stores the returned credential, moving the
// session from Anonymous to Authenticated.
func (s *Service) Login(ctx context.Context, creds Credentials) (*User, error) {
	if err := validation.ValidateStruct(&creds); err != nil {
		return nil, err
	}

	resp, err := client.Fetch[LoginResponse](ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   loginPath,
		Body:   creds,
	})
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, ErrEmptyToken
	}

	if err := s.store.SetCredential(ctx, resp.Token); err != nil {
		return nil, fmt.Errorf("store credential: %w", err)
	}
	logging.Ctx(ctx).Info().Str("username", resp.User.Username).Msg("Logged in")
	return &resp.User, nil
}

// Register creates an account. It does not log in.
func (s *Service) Register(ctx context.Context, reg Registration) error {
	if err := validation.ValidateStruct(&reg); err != nil {
		return err
	}
	_, err := client.Fetch[struct{}](ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   registerPath,
		Body:   reg,
	})
	return err
}

// Logout tells the backend and clears the credential. The credential is
// cleared even when the backend call fails.
func (s *Service) Logout(ctx context.Context) error {
	_, callErr := client.Fetch[struct{}](ctx, s.client, client.Request{Method: http.MethodPost, Path: logoutPath})

	if err := s.store.ClearCredential(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	logging.Ctx(ctx).Info().Msg("Logged out")

	// A 401 here means the session had already ended.
	if callErr != nil && !errors.Is(callErr, client.ErrAuthExpired) {
		return callErr
	}
	return nil
}

// Info returns the current user.
func (s *Service) Info(ctx context.Context) (*User, error) {
	user, err := client.Fetch[User](ctx, s.client, client.Request{Method: http.MethodGet, Path: infoPath})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameExists reports whether username is already taken. The backend
// answers with availability, so its data is inverted here.
func (s *Service) UsernameExists(ctx context.Context, username string) (bool, error) {
	if username == "" {
		return false, errors.New("username is required")
	}
	available, err := client.Fetch[bool](ctx, s.client, client.Request{
		Method: http.MethodGet,
		Path:   checkUsernamePath,
		Query:  url.Values{"username": {username}},
	})
	if err != nil {
		return false, err
	}
	return !available, nil
}
