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


package mealplan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/mealplan/core"
	"github.com/poiesic/mealplan/storage"
	"github.com/poiesic/mealplan/storage/badger"
	"github.com/poiesic/mealplan/storage/directory"
)

// Status is the value shown by the sync indicator.
type Status string

const (
	// StatusConnected means a user folder is loaded and the last write succeeded.
	StatusConnected Status = "connected"
	// StatusLocal means data lives in the embedded database.
	StatusLocal Status = "local"
	// StatusAwaitingFolder means the user has to pick a folder.
	StatusAwaitingFolder Status = "awaiting-folder"
	// StatusError means the last load or write failed.
	StatusError Status = "error"
)

// Adapter owns the in-memory model and persists it through exactly one
// backend, chosen when the Adapter is created. All mutations go through
// Save; accessors return copies.
type Adapter struct {
	useFileSystem bool
	logger        *slog.Logger
	now           func() time.Time

	backend  storage.Backend
	dir      *directory.Store
	backends []*badger.Backend

	pool   *ants.Pool
	queues map[storage.EntityType]*writeQueue
	writes sync.WaitGroup

	mu     sync.RWMutex
	snap   core.Snapshot
	status Status
	closed bool
}

// Option configures an Adapter.
type Option func(*adapterOptions)

type adapterOptions struct {
	host    any
	logger  *slog.Logger
	seed    func() core.Snapshot
	seedSet bool
	now     func() time.Time
}

// WithHost sets the host environment. A host implementing
// directory.Access selects folder storage; anything else selects the
// embedded database.
func WithHost(host any) Option {
	return func(o *adapterOptions) {
		o.host = host
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *adapterOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSeedData sets the dataset written to an empty embedded database.
// Passing nil disables seeding. Default is core.SampleData.
func WithSeedData(seed func() core.Snapshot) Option {
	return func(o *adapterOptions) {
		o.seed = seed
		o.seedSet = true
	}
}

// WithClock sets the time source used for export timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *adapterOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// New creates an Adapter. Capability detection runs once here; the
// resulting backend is used for the Adapter's whole lifetime.
func New(cfg *Config, opts ...Option) (*Adapter, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &adapterOptions{
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(options)
	}

	pool, err := ants.NewPool(cfg.WriteWorkers)
	if err != nil {
		return nil, err
	}

	a := &Adapter{
		logger: options.logger,
		now:    options.now,
		pool:   pool,
		queues: make(map[storage.EntityType]*writeQueue, len(storage.EntityTypes)),
		snap:   core.EmptySnapshot(),
	}
	for _, kind := range storage.EntityTypes {
		if _, ok := a.queues[queueKey(kind)]; !ok {
			a.queues[queueKey(kind)] = &writeQueue{}
		}
	}

	access, ok := DetectDirectoryAccess(options.host)
	a.useFileSystem = ok
	if ok {
		err = a.openDirectory(cfg, access)
	} else {
		err = a.openEmbedded(cfg, options)
	}
	if err != nil {
		a.release()
		return nil, err
	}

	if a.useFileSystem {
		a.status = StatusAwaitingFolder
	} else {
		a.status = StatusLocal
	}
	a.logger.Debug("storage adapter created", "fileSystem", a.useFileSystem, "stateDir", cfg.StateDir, "inMemory", cfg.InMemory)
	return a, nil
}

func (a *Adapter) openDirectory(cfg *Config, access directory.Access) error {
	backend, err := badger.OpenBackend(cfg.databasePath(HandleDatabaseName), cfg.InMemory)
	if err != nil {
		return fmt.Errorf("open handle database: %w", err)
	}
	a.backends = append(a.backends, backend)

	handles := badger.NewHandleStore(backend, badger.WithHandleLogger(a.logger))
	a.dir = directory.NewStore(access, handles, directory.WithLogger(a.logger))
	a.backend = a.dir
	return nil
}

func (a *Adapter) openEmbedded(cfg *Config, options *adapterOptions) error {
	backend, err := badger.OpenBackend(cfg.databasePath(badger.DatabaseName), cfg.InMemory)
	if err != nil {
		return fmt.Errorf("open %s: %w", badger.DatabaseName, err)
	}
	a.backends = append(a.backends, backend)

	storeOpts := []badger.EntityStoreOption{badger.WithEntityLogger(a.logger)}
	if options.seedSet {
		storeOpts = append(storeOpts, badger.WithSeedData(options.seed))
	}
	entities, err := badger.NewEntityStore(backend, storeOpts...)
	if err != nil {
		return err
	}
	a.backend = entities
	return nil
}

// UsesFileSystem reports whether data lives in a user-selected folder.
func (a *Adapter) UsesFileSystem() bool {
	return a.useFileSystem
}

// Status returns the current sync status.
func (a *Adapter) Status() Status {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.status
}

// Folder returns the connected folder when folder storage is active.
func (a *Adapter) Folder() (storage.DirectoryHandle, bool) {
	if a.dir == nil {
		return storage.DirectoryHandle{}, false
	}
	return a.dir.Handle()
}

func (a *Adapter) setStatus(status Status) {
	a.mu.Lock()
	a.status = status
	a.mu.Unlock()
}

// Init loads persisted data. It returns true when data is ready to show.
// With folder storage it returns false when the user has to select a
// folder; the in-memory model then keeps its defaults. With the embedded
// database it always returns true, falling back to defaults on error.
func (a *Adapter) Init(ctx context.Context) bool {
	if a.isClosed() {
		a.logger.Warn("init on closed adapter")
		return false
	}
	if a.useFileSystem {
		if !a.dir.Connect(ctx) {
			a.setStatus(StatusAwaitingFolder)
			return false
		}
		return a.load(ctx)
	}
	a.load(ctx)
	return true
}

// SelectFolder asks the user for a folder and loads it. It reports
// whether data is ready to show. Without folder storage it does nothing.
func (a *Adapter) SelectFolder(ctx context.Context) bool {
	if !a.useFileSystem {
		a.logger.Warn("folder selection requested without directory access")
		return false
	}
	if a.isClosed() {
		a.logger.Warn("folder selection on closed adapter")
		return false
	}
	if err := a.dir.SelectFolder(ctx); err != nil {
		if errors.Is(err, directory.ErrSelectionCanceled) {
			a.logger.Info("folder selection canceled")
		} else {
			a.logger.Error("error selecting folder", "err", err)
		}
		return false
	}
	return a.load(ctx)
}

func (a *Adapter) load(ctx context.Context) bool {
	snap, err := a.backend.Load(ctx)
	if err != nil {
		a.logger.Error("error loading data", "err", err)
		a.setStatus(StatusError)
		return false
	}

	a.mu.Lock()
	a.snap = snap.Clone()
	a.status = a.healthyStatus()
	a.mu.Unlock()

	a.logger.Info("data loaded", "recipes", len(snap.Recipes), "ingredients", len(snap.Ingredients),
		"allergens", len(snap.Allergens), "menuDays", len(snap.Menu))
	return true
}

func (a *Adapter) healthyStatus() Status {
	if a.useFileSystem {
		return StatusConnected
	}
	return StatusLocal
}

// Save replaces the collection of the given kind with data and persists
// it. data must be []core.Recipe, []core.Ingredient, []core.Allergen,
// core.Menu or core.Settings to match kind. An unknown kind or a
// mismatched type is logged and ignored.
//
// Writes that target the same document are applied in call order; the
// three catalog kinds count as one document. Save waits for its
// write; canceling ctx stops the wait, not the write. Failures are
// logged and reflected in Status.
func (a *Adapter) Save(ctx context.Context, kind storage.EntityType, data any) {
	queue, ok := a.queues[queueKey(kind)]
	if !ok {
		a.logger.Warn("ignoring save of unknown entity type", "type", string(kind))
		return
	}

	job := &writeJob{
		ctx:  context.WithoutCancel(ctx),
		kind: kind,
		done: make(chan error, 1),
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		a.logger.Warn("ignoring save on closed adapter", "type", string(kind))
		return
	}
	if err := a.apply(kind, data); err != nil {
		a.mu.Unlock()
		a.logger.Warn("ignoring save", "type", string(kind), "err", err)
		return
	}
	job.snap = a.snap.Clone()
	start := queue.push(job)
	a.writes.Add(1)
	a.mu.Unlock()

	if start {
		a.startDrain(queue)
	}

	select {
	case err := <-job.done:
		a.writes.Done()
		a.recordWrite(kind, err)
	case <-ctx.Done():
		a.logger.Warn("stopped waiting for save", "type", string(kind), "err", ctx.Err())
		go func() {
			a.recordWrite(kind, <-job.done)
			a.writes.Done()
		}()
	}
}

// apply replaces the in-memory collection. Callers hold a.mu.
func (a *Adapter) apply(kind storage.EntityType, data any) error {
	switch kind {
	case storage.Recipes:
		v, ok := data.([]core.Recipe)
		if !ok {
			return fmt.Errorf("%w %s: %T", ErrUnexpectedData, kind, data)
		}
		a.snap.Recipes = core.CloneRecipes(v)
	case storage.Ingredients:
		v, ok := data.([]core.Ingredient)
		if !ok {
			return fmt.Errorf("%w %s: %T", ErrUnexpectedData, kind, data)
		}
		a.snap.Ingredients = core.CloneIngredients(v)
	case storage.Allergens:
		v, ok := data.([]core.Allergen)
		if !ok {
			return fmt.Errorf("%w %s: %T", ErrUnexpectedData, kind, data)
		}
		a.snap.Allergens = core.CloneAllergens(v)
	case storage.CurrentMenu:
		v, ok := data.(core.Menu)
		if !ok {
			return fmt.Errorf("%w %s: %T", ErrUnexpectedData, kind, data)
		}
		a.snap.Menu = v.Clone()
	case storage.AppSettings:
		v, ok := data.(core.Settings)
		if !ok {
			return fmt.Errorf("%w %s: %T", ErrUnexpectedData, kind, data)
		}
		a.snap.Settings = v.Clone()
	default:
		return fmt.Errorf("%w: %q", storage.ErrUnknownEntityType, kind)
	}
	return nil
}

func (a *Adapter) startDrain(queue *writeQueue) {
	err := a.pool.Submit(func() {
		queue.drain(a.write)
	})
	if err != nil {
		a.logger.Error("error scheduling write", "err", err)
		queue.fail(err)
	}
}

func (a *Adapter) write(job *writeJob) error {
	start := time.Now()
	err := a.backend.Save(job.ctx, job.kind, job.snap)
	a.logger.Debug("write finished", "type", string(job.kind), "duration", time.Since(start), "err", err)
	return err
}

func (a *Adapter) recordWrite(kind storage.EntityType, err error) {
	if err != nil {
		a.logger.Error("error saving data", "type", string(kind), "err", err)
		a.setStatus(StatusError)
		return
	}
	a.setStatus(a.healthyStatus())
}

// Snapshot returns a copy of the whole in-memory model.
func (a *Adapter) Snapshot() core.Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snap.Clone()
}

// Recipes returns a copy of the recipe collection.
func (a *Adapter) Recipes() []core.Recipe {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return core.CloneRecipes(a.snap.Recipes)
}

// Ingredients returns a copy of the ingredient collection.
func (a *Adapter) Ingredients() []core.Ingredient {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return core.CloneIngredients(a.snap.Ingredients)
}

// Allergens returns a copy of the allergen collection.
func (a *Adapter) Allergens() []core.Allergen {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return core.CloneAllergens(a.snap.Allergens)
}

// Menu returns a copy of the current menu.
func (a *Adapter) Menu() core.Menu {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snap.Menu.Clone()
}

// Settings returns a copy of the user settings.
func (a *Adapter) Settings() core.Settings {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snap.Settings.Clone()
}

func (a *Adapter) isClosed() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.closed
}

// Close waits for pending writes, then releases the worker pool and the
// embedded databases. It is safe to call more than once.
func (a *Adapter) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	a.writes.Wait()
	return a.release()
}

func (a *Adapter) release() error {
	if a.pool != nil {
		a.pool.Release()
	}
	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			a.logger.Error("error closing store", "err", err)
		}
	}

	var errs []error
	for _, backend := range a.backends {
		if err := backend.Close(); err != nil {
			a.logger.Error("error closing backend storage", "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
