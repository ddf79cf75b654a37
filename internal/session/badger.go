// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

const badgerCredentialKey = "session:" + CredentialKey

// credentialRecord is the persisted form of the credential.
type credentialRecord struct {
	Token    string    `json:"token"`
	StoredAt time.Time `json:"stored_at"`
}

// BadgerStore persists the credential in BadgerDB so it survives agent restarts.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStoreFromDB creates a BadgerStore on an existing DB connection.
func NewBadgerStoreFromDB(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Credential returns the stored credential.
func (s *BadgerStore) Credential(_ context.Context) (string, error) {
	var rec credentialRecord

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerCredentialKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNoCredential
		}
		if err != nil {
			return fmt.Errorf("get credential: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return "", err
	}
	if rec.Token == "" {
		return "", ErrNoCredential
	}
	return rec.Token, nil
}

// SetCredential stores the credential. An empty token clears the store.
func (s *BadgerStore) SetCredential(ctx context.Context, token string) error {
	if token == "" {
		return s.ClearCredential(ctx)
	}

	data, err := json.Marshal(credentialRecord{Token: token, StoredAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(badgerCredentialKey), data); err != nil {
			return fmt.Errorf("set credential: %w", err)
		}
		return nil
	})
}

// ClearCredential removes the credential.
func (s *BadgerStore) ClearCredential(_ context.Context) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(badgerCredentialKey))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete credential: %w", err)
		}
		return nil
	})
}
