// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package session

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// StoreType selects the credential storage backend.
type StoreType string

const (
	// StoreMemory keeps the credential in memory (default, not persistent).
	StoreMemory StoreType = "memory"

	// StoreBadger persists the credential in BadgerDB.
	StoreBadger StoreType = "badger"
)

// StoreFactory creates credential stores based on configuration.
type StoreFactory struct {
	db *badger.DB
}

// NewStoreFactory creates a store factory. For StoreBadger it opens a
// BadgerDB at path; for StoreMemory no database is opened.
func NewStoreFactory(storeType StoreType, path string) (*StoreFactory, error) {
	factory := &StoreFactory{}

	switch storeType {
	case StoreBadger:
		opts := badger.DefaultOptions(path)
		opts.Logger = nil

		db, err := badger.Open(opts)
		if err != nil {
			return nil, fmt.Errorf("open badger db for credentials: %w", err)
		}
		factory.db = db
	case StoreMemory, "":
	default:
		return nil, fmt.Errorf("unknown session store type %q", storeType)
	}

	return factory, nil
}

// CreateStore returns a Store for the factory's backend.
func (f *StoreFactory) CreateStore() Store {
	if f.db != nil {
		return NewBadgerStoreFromDB(f.db)
	}
	return NewMemoryStore()
}

// Close closes the underlying BadgerDB if one was opened.
func (f *StoreFactory) Close() error {
	if f.db != nil {
		return f.db.Close()
	}
	return nil
}
