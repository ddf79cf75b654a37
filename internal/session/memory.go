// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package session

import (
	"context"
	"sync"
)

// MemoryStore keeps the credential in process memory. It does not survive restarts.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore creates an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Credential returns the stored credential.
func (s *MemoryStore) Credential(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" {
		return "", ErrNoCredential
	}
	return s.token, nil
}

// SetCredential stores the credential. An empty token clears the store.
func (s *MemoryStore) SetCredential(_ context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// ClearCredential removes the credential.
func (s *MemoryStore) ClearCredential(_ context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}
