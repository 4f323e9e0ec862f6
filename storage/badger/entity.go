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
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/mealplan/core"
	"github.com/poiesic/mealplan/storage"
)

const (
	// DatabaseName is the fixed name of the embedded entity database.
	DatabaseName = "MenuPlannerDB"
	// DatabaseVersion is the schema version created by NewEntityStore.
	DatabaseVersion uint64 = 1
)

// EntityStore implements storage.Backend on BadgerDB with one collection
// per entity type. recipes, ingredients and allergens are keyed by the
// entity ID; menu and settings hold a single blob each.
type EntityStore struct {
	backend *Backend
	seed    func() core.Snapshot
	logger  *slog.Logger
}

var _ storage.Backend = (*EntityStore)(nil)

// EntityStoreOption configures an EntityStore.
type EntityStoreOption func(*EntityStore)

// WithEntityLogger sets a custom logger.
// Default is slog.Default().
func WithEntityLogger(logger *slog.Logger) EntityStoreOption {
	return func(s *EntityStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSeedData sets the dataset written on first load.
// Passing nil disables seeding. Default is core.SampleData.
func WithSeedData(seed func() core.Snapshot) EntityStoreOption {
	return func(s *EntityStore) {
		s.seed = seed
	}
}

// NewEntityStore creates an EntityStore and upgrades the schema if the
// database was created by an older version (or never before).
func NewEntityStore(backend *Backend, opts ...EntityStoreOption) (*EntityStore, error) {
	s := &EntityStore{
		backend: backend,
		seed:    core.SampleData,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.upgrade(); err != nil {
		return nil, fmt.Errorf("upgrade %s to version %d: %w", DatabaseName, DatabaseVersion, err)
	}
	return s, nil
}

// Close releases resources. The backend is owned by the caller.
func (s *EntityStore) Close() error {
	return nil
}

// Version returns the schema version recorded in the database.
func (s *EntityStore) Version() (uint64, error) {
	var version uint64
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		version, err = readVersion(tx)
		return err
	}, false)
	return version, err
}

func (s *EntityStore) upgrade() error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		version, err := readVersion(tx)
		if err != nil {
			return err
		}
		if version >= DatabaseVersion {
			return nil
		}
		s.logger.Info("upgrading embedded database", "name", DatabaseName, "from", version, "to", DatabaseVersion)
		for _, collection := range allCollections {
			if err := tx.Set(makeCollectionMarkerKey(collection), []byte{1}); err != nil {
				return err
			}
		}
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, DatabaseVersion)
		if err := tx.Set([]byte(metaVersionKey), buf); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Load reads every collection. A failing collection is logged and left at
// its default without affecting the others. If the recipe collection is
// empty and the database has never been seeded or explicitly saved to,
// the seed dataset is written through and the database is read again.
func (s *EntityStore) Load(ctx context.Context) (core.Snapshot, error) {
	if s.backend.IsClosed() {
		return core.EmptySnapshot(), storage.ErrStorageClosed
	}

	snap := s.read()
	if len(snap.Recipes) == 0 && s.seed != nil {
		seeded, err := s.seedIfNeeded(ctx)
		if err != nil {
			s.logger.Error("error writing sample data", "err", err)
		} else if seeded {
			snap = s.read()
		}
	}
	return snap, nil
}

func (s *EntityStore) read() core.Snapshot {
	snap := core.EmptySnapshot()
	if recipes, err := readCollection[core.Recipe](s.backend, collectionRecipes); err != nil {
		s.logger.Error("error loading collection", "collection", collectionRecipes, "err", err)
	} else {
		snap.Recipes = recipes
	}
	if ingredients, err := readCollection[core.Ingredient](s.backend, collectionIngredients); err != nil {
		s.logger.Error("error loading collection", "collection", collectionIngredients, "err", err)
	} else {
		snap.Ingredients = ingredients
	}
	if allergens, err := readCollection[core.Allergen](s.backend, collectionAllergens); err != nil {
		s.logger.Error("error loading collection", "collection", collectionAllergens, "err", err)
	} else {
		snap.Allergens = allergens
	}

	var menu core.Menu
	if found, err := readBlob(s.backend, collectionMenu, menuBlobKey, &menu); err != nil {
		s.logger.Error("error loading collection", "collection", collectionMenu, "err", err)
	} else if found && menu != nil {
		snap.Menu = menu
	}
	var settings core.Settings
	if found, err := readBlob(s.backend, collectionSettings, settingsBlobKey, &settings); err != nil {
		s.logger.Error("error loading collection", "collection", collectionSettings, "err", err)
	} else if found {
		if settings.Language == "" {
			settings.Language = core.DefaultLanguage
		}
		snap.Settings = settings
	}
	return snap
}

// seedIfNeeded writes the seed dataset unless the seed marker is present
// and reports whether it did. Sample ingredients and allergens are added
// next to stored ones and never replace an item with the same ID. Menu
// and settings are only written when nothing is stored for them.
func (s *EntityStore) seedIfNeeded(ctx context.Context) (bool, error) {
	sample := s.seed()
	seeded := false

	err := s.backend.WithTransaction(ctx, func(tx *badger.Txn) error {
		marker, err := readValue(tx, []byte(metaSeededKey))
		if err != nil {
			return err
		}
		if marker != nil {
			return nil
		}

		if err := replaceItems(tx, collectionRecipes, sample.Recipes, func(r core.Recipe) string { return r.ID }); err != nil {
			return err
		}
		if err := insertMissingItems(tx, collectionIngredients, sample.Ingredients, func(i core.Ingredient) string { return i.ID }); err != nil {
			return err
		}
		if err := insertMissingItems(tx, collectionAllergens, sample.Allergens, func(a core.Allergen) string { return a.ID }); err != nil {
			return err
		}
		if err := putBlobIfAbsent(tx, collectionMenu, menuBlobKey, sample.Menu); err != nil {
			return err
		}
		if err := putBlobIfAbsent(tx, collectionSettings, settingsBlobKey, sample.Settings); err != nil {
			return err
		}
		if err := tx.Set([]byte(metaSeededKey), []byte{1}); err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if err != nil || !seeded {
		return false, err
	}

	s.logger.Info("populated empty database with sample data",
		"recipes", len(sample.Recipes), "ingredients", len(sample.Ingredients), "allergens", len(sample.Allergens))
	return true, nil
}

// Save persists kind from snap. Keyed collections are cleared and fully
// re-inserted; menu and settings are overwritten.
func (s *EntityStore) Save(ctx context.Context, kind storage.EntityType, snap core.Snapshot) error {
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return s.backend.WithTransaction(ctx, func(tx *badger.Txn) error {
		switch kind {
		case storage.Recipes:
			if err := replaceItems(tx, collectionRecipes, snap.Recipes, func(r core.Recipe) string { return r.ID }); err != nil {
				return err
			}
			// An explicit recipe save, even an empty one, is user data.
			return tx.Set([]byte(metaSeededKey), []byte{1})
		case storage.Ingredients:
			return replaceItems(tx, collectionIngredients, snap.Ingredients, func(i core.Ingredient) string { return i.ID })
		case storage.Allergens:
			return replaceItems(tx, collectionAllergens, snap.Allergens, func(a core.Allergen) string { return a.ID })
		case storage.CurrentMenu:
			return putBlob(tx, collectionMenu, menuBlobKey, snap.Menu)
		case storage.AppSettings:
			return putBlob(tx, collectionSettings, settingsBlobKey, snap.Settings)
		default:
			return fmt.Errorf("%w: %q", storage.ErrUnknownEntityType, kind)
		}
	})
}

// DropCollection removes a collection and its contents, as if its object
// store had never been created.
func (s *EntityStore) DropCollection(ctx context.Context, collection string) error {
	return s.backend.WithTransaction(ctx, func(tx *badger.Txn) error {
		if err := tx.Delete(makeCollectionMarkerKey(collection)); err != nil {
			return err
		}
		return deletePrefix(tx, makeItemPrefix(collection))
	})
}

// Helper functions

func readVersion(tx *badger.Txn) (uint64, error) {
	val, err := readValue(tx, []byte(metaVersionKey))
	if err != nil || val == nil {
		return 0, err
	}
	if len(val) != 8 {
		return 0, fmt.Errorf("%w: version value has %d bytes", storage.ErrSerializationFailed, len(val))
	}
	return binary.BigEndian.Uint64(val), nil
}

func collectionExists(tx *badger.Txn, collection string) (bool, error) {
	val, err := readValue(tx, makeCollectionMarkerKey(collection))
	return val != nil, err
}

// readCollection returns every item of a keyed collection in key order.
func readCollection[T any](b *Backend, collection string) ([]T, error) {
	items := []T{}
	err := b.WithTx(func(tx *badger.Txn) error {
		exists, err := collectionExists(tx, collection)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("collection %s: %w", collection, storage.ErrNotFound)
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeItemPrefix(collection)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				var item T
				if err := json.Unmarshal(val, &item); err != nil {
					return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
				}
				items = append(items, item)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return []T{}, err
	}
	return items, nil
}

// readBlob decodes the single value of a blob collection into v.
// Returns false if nothing has been stored yet.
func readBlob(b *Backend, collection, key string, v any) (bool, error) {
	var found bool
	err := b.WithTx(func(tx *badger.Txn) error {
		exists, err := collectionExists(tx, collection)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("collection %s: %w", collection, storage.ErrNotFound)
		}
		val, err := readValue(tx, []byte(key))
		if err != nil || val == nil {
			return err
		}
		found = true
		return storage.UnmarshalDocument(val, v)
	}, false)
	return found, err
}

// replaceItems clears a keyed collection and inserts every item.
func replaceItems[T any](tx *badger.Txn, collection string, items []T, id func(T) string) error {
	if err := tx.Set(makeCollectionMarkerKey(collection), []byte{1}); err != nil {
		return err
	}
	if err := deletePrefix(tx, makeItemPrefix(collection)); err != nil {
		return err
	}
	for _, item := range items {
		key := id(item)
		if key == "" {
			return fmt.Errorf("%w: %s item without id", storage.ErrSerializationFailed, collection)
		}
		value, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
		}
		if err := tx.Set(makeItemKey(collection, key), value); err != nil {
			return err
		}
	}
	return nil
}

// insertMissingItems adds the items whose ID is not stored yet.
func insertMissingItems[T any](tx *badger.Txn, collection string, items []T, id func(T) string) error {
	if err := tx.Set(makeCollectionMarkerKey(collection), []byte{1}); err != nil {
		return err
	}
	for _, item := range items {
		key := id(item)
		if key == "" {
			return fmt.Errorf("%w: %s item without id", storage.ErrSerializationFailed, collection)
		}
		existing, err := readValue(tx, makeItemKey(collection, key))
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		value, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
		}
		if err := tx.Set(makeItemKey(collection, key), value); err != nil {
			return err
		}
	}
	return nil
}

func putBlob(tx *badger.Txn, collection, key string, v any) error {
	if err := tx.Set(makeCollectionMarkerKey(collection), []byte{1}); err != nil {
		return err
	}
	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return tx.Set([]byte(key), value)
}

func putBlobIfAbsent(tx *badger.Txn, collection, key string, v any) error {
	existing, err := readValue(tx, []byte(key))
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return putBlob(tx, collection, key, v)
}
