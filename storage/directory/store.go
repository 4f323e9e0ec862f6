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


package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/poiesic/mealplan/core"
	"github.com/poiesic/mealplan/storage"
)

// State is a step of the connection protocol.
type State int

const (
	StateNoHandle State = iota
	StateHandleFound
	StateHandleValid
	StateAwaitingUserSelection
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateNoHandle:
		return "no-handle"
	case StateHandleFound:
		return "handle-found"
	case StateHandleValid:
		return "handle-valid"
	case StateAwaitingUserSelection:
		return "awaiting-user-selection"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Store implements storage.Backend on a user-granted folder.
type Store struct {
	access  Access
	handles HandleStore
	logger  *slog.Logger

	mu      sync.Mutex
	state   State
	handle  storage.DirectoryHandle
	dataDir string
}

var _ storage.Backend = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a Store in the NoHandle state.
func NewStore(access Access, handles HandleStore, opts ...Option) *Store {
	s := &Store{
		access:  access,
		handles: handles,
		logger:  slog.Default(),
		state:   StateNoHandle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current protocol state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Handle returns the active directory handle, if any.
func (s *Store) Handle() (storage.DirectoryHandle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle, !s.handle.IsZero()
}

func (s *Store) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	s.logger.Debug("directory store state", "state", state.String())
}

// Connect tries to reuse the remembered handle. It returns true when the
// store reached the Loading state and Load can run without user action;
// false means the caller must ask the user to select a folder.
//
// An already granted permission is used as is: no prompt is shown. A
// malformed or refused handle is forgotten so the next session does not
// retry it.
func (s *Store) Connect(ctx context.Context) bool {
	s.setState(StateNoHandle)

	handle, err := s.handles.Lookup(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.setState(StateAwaitingUserSelection)
		return false
	case errors.Is(err, storage.ErrMalformedHandle):
		s.logger.Warn("discarding malformed directory handle", "err", err)
		s.forget(ctx)
		s.setState(StateAwaitingUserSelection)
		return false
	case err != nil:
		s.logger.Error("error reading directory handle", "err", err)
		s.setState(StateAwaitingUserSelection)
		return false
	}
	s.setState(StateHandleFound)
	s.setState(StateHandleValid)

	permission, err := s.access.QueryPermission(ctx, handle, ModeReadWrite)
	if err != nil {
		s.logger.Warn("error querying directory permission", "name", handle.Name, "err", err)
	}
	if permission != PermissionGranted {
		permission, err = s.access.RequestPermission(ctx, handle, ModeReadWrite)
		if err != nil {
			s.logger.Warn("error requesting directory permission", "name", handle.Name, "err", err)
		}
	}
	if permission != PermissionGranted {
		s.logger.Info("directory permission not granted", "name", handle.Name, "permission", permission)
		s.forget(ctx)
		s.setState(StateAwaitingUserSelection)
		return false
	}

	s.mu.Lock()
	s.handle = handle
	s.mu.Unlock()
	s.setState(StateLoading)
	return true
}

// SelectFolder lets the user pick a folder, remembers its handle and
// creates the expected subfolders. On success the store is in the Loading
// state.
func (s *Store) SelectFolder(ctx context.Context) error {
	handle, err := s.access.PickDirectory(ctx, ModeReadWrite)
	if err != nil {
		return err
	}
	if err := s.handles.Store(ctx, handle); err != nil {
		// The folder is still usable for this session.
		s.logger.Warn("error storing directory handle", "name", handle.Name, "err", err)
	}
	if err := ensureLayout(handle.Path); err != nil {
		return err
	}

	s.mu.Lock()
	s.handle = handle
	s.mu.Unlock()
	s.setState(StateLoading)
	return nil
}

// ensureLayout creates data/ and data/archive/menus/ if missing.
func ensureLayout(root string) error {
	return os.MkdirAll(filepath.Join(root, DataFolder, filepath.FromSlash(MenuArchive)), 0o755)
}

// Load reads all documents from the connected folder.
func (s *Store) Load(ctx context.Context) (core.Snapshot, error) {
	handle, ok := s.Handle()
	if !ok {
		return core.EmptySnapshot(), storage.ErrNotReady
	}
	if err := ctx.Err(); err != nil {
		return core.EmptySnapshot(), err
	}

	snap, rel := ReadSnapshot(os.DirFS(handle.Path))

	s.mu.Lock()
	s.dataDir = filepath.Join(handle.Path, rel)
	s.mu.Unlock()
	s.setState(StateReady)

	s.logger.Debug("loaded documents", "folder", handle.Name, "dataDir", rel,
		"recipes", len(snap.Recipes), "ingredients", len(snap.Ingredients), "allergens", len(snap.Allergens))
	return snap, nil
}

// Save writes the document holding kind. Catalog kinds always write the
// combined data.json built from snap.
func (s *Store) Save(ctx context.Context, kind storage.EntityType, snap core.Snapshot) error {
	s.mu.Lock()
	dir, ready := s.dataDir, s.state == StateReady
	s.mu.Unlock()
	if !ready {
		return storage.ErrNotReady
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var name string
	var doc any
	switch {
	case kind.IsCatalog():
		name = CombinedFile
		doc = Catalog{
			Recipes:     snap.Recipes,
			Ingredients: snap.Ingredients,
			Allergens:   snap.Allergens,
		}.normalize()
	case kind == storage.CurrentMenu:
		name = MenuFile
		doc = snap.Menu
		if snap.Menu == nil {
			doc = core.Menu{}
		}
	case kind == storage.AppSettings:
		name = SettingsFile
		doc = snap.Settings
	default:
		return fmt.Errorf("%w: %q", storage.ErrUnknownEntityType, kind)
	}

	data, err := storage.MarshalDocument(doc)
	if err != nil {
		return err
	}
	if err := atomicWrite(filepath.Join(dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Close releases resources. The handle store is owned by the caller.
func (s *Store) Close() error {
	return nil
}

func (s *Store) forget(ctx context.Context) {
	if err := s.handles.Clear(ctx); err != nil {
		s.logger.Error("error clearing directory handle", "err", err)
	}
	s.mu.Lock()
	s.handle = storage.DirectoryHandle{}
	s.dataDir = ""
	s.mu.Unlock()
}
