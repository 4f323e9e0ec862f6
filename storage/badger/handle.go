// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/mealplan/storage"
)

// HandleStore remembers the directory handle the user last granted, under
// a single fixed key. It is meant to live in its own database, apart from
// the entity collections.
type HandleStore struct {
	backend *Backend
	logger  *slog.Logger
}

// HandleStoreOption configures a HandleStore.
type HandleStoreOption func(*HandleStore)

// WithHandleLogger sets a custom logger.
// Default is slog.Default().
func WithHandleLogger(logger *slog.Logger) HandleStoreOption {
	return func(s *HandleStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandleStore creates a new HandleStore.
func NewHandleStore(backend *Backend, opts ...HandleStoreOption) *HandleStore {
	s := &HandleStore{
		backend: backend,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store upserts the handle and reads it back after the commit.
// A read-back that does not match returns storage.ErrHandleVerifyFailed.
func (s *HandleStore) Store(ctx context.Context, handle storage.DirectoryHandle) error {
	value := storage.MarshalHandle(handle)
	err := s.backend.WithTransaction(ctx, func(tx *badger.Txn) error {
		return tx.Set([]byte(rootDirectoryKey), value)
	})
	if err != nil {
		return err
	}

	var stored []byte
	err = s.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		stored, err = readValue(tx, []byte(rootDirectoryKey))
		return err
	}, false)
	if err != nil {
		return err
	}
	if !bytes.Equal(stored, value) {
		return storage.ErrHandleVerifyFailed
	}
	s.logger.Debug("stored directory handle", "name", handle.Name)
	return nil
}

// Lookup returns the stored handle.
// Returns storage.ErrNotFound if none is stored and
// storage.ErrMalformedHandle if the stored envelope is not valid.
func (s *HandleStore) Lookup(ctx context.Context) (storage.DirectoryHandle, error) {
	if s.backend.IsClosed() {
		return storage.DirectoryHandle{}, storage.ErrStorageClosed
	}
	var raw []byte
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		raw, err = readValue(tx, []byte(rootDirectoryKey))
		return err
	}, false)
	if err != nil {
		return storage.DirectoryHandle{}, err
	}
	if raw == nil {
		return storage.DirectoryHandle{}, storage.ErrNotFound
	}
	return storage.UnmarshalHandle(raw)
}

// Get returns the stored handle, or false if none is stored or it cannot
// be read. Errors are logged, never returned.
func (s *HandleStore) Get(ctx context.Context) (storage.DirectoryHandle, bool) {
	handle, err := s.Lookup(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("error reading directory handle", "err", err)
		}
		return storage.DirectoryHandle{}, false
	}
	return handle, true
}

// Clear removes the stored handle. Clearing an empty store is not an error.
func (s *HandleStore) Clear(ctx context.Context) error {
	return s.backend.WithTransaction(ctx, func(tx *badger.Txn) error {
		return tx.Delete([]byte(rootDirectoryKey))
	})
}

