// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

// Package session holds the bearer credential for the current browsing
// session and reports whether the session is authenticated.
package session

import (
	"context"
	"errors"
)

// ErrNoCredential is returned when no credential is stored.
var ErrNoCredential = errors.New("no credential stored")

// CredentialKey is the storage key the credential is kept under.
const CredentialKey = "token"

// Store persists at most one bearer credential.
// Implementations must be safe for concurrent use.
type Store interface {
	// Credential returns the stored credential or ErrNoCredential.
	Credential(ctx context.Context) (string, error)

	// SetCredential stores (or replaces) the credential.
	SetCredential(ctx context.Context, token string) error

	// ClearCredential removes the credential. Clearing an empty store is not an error.
	ClearCredential(ctx context.Context) error
}

// State is the session state derived from credential presence.
type State string

const (
	// StateAuthenticated means a credential is present.
	StateAuthenticated State = "authenticated"

	// StateAnonymous means no credential is present.
	StateAnonymous State = "anonymous"
)

// CurrentState reports Authenticated when the store holds a credential.
// Store errors other than ErrNoCredential are returned with StateAnonymous.
func CurrentState(ctx context.Context, store Store) (State, error) {
	_, err := store.Credential(ctx)
	switch {
	case err == nil:
		return StateAuthenticated, nil
	case errors.Is(err, ErrNoCredential):
		return StateAnonymous, nil
	default:
		return StateAnonymous, err
	}
}
