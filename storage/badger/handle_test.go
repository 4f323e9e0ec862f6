package badger

import (
	"context"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/mealplan/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandleStore(t *testing.T) *HandleStore {
	t.Helper()
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return NewHandleStore(backend)
}

func TestHandleStore_StoreAndGet(t *testing.T) {
	store := newTestHandleStore(t)
	ctx := context.Background()

	_, ok := store.Get(ctx)
	assert.False(t, ok)

	handle := storage.DirectoryHandle{Name: "menus", Path: "/home/cook/menus"}
	require.NoError(t, store.Store(ctx, handle))

	got, ok := store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, handle, got)

	// Upsert replaces the previous handle.
	other := storage.DirectoryHandle{Name: "kitchen", Path: "/srv/kitchen"}
	require.NoError(t, store.Store(ctx, other))
	got, ok = store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, other, got)
}

func TestHandleStore_Clear(t *testing.T) {
	store := newTestHandleStore(t)
	ctx := context.Background()

	// Clearing nothing is fine.
	require.NoError(t, store.Clear(ctx))

	require.NoError(t, store.Store(ctx, storage.DirectoryHandle{Name: "m", Path: "/m"}))
	require.NoError(t, store.Clear(ctx))

	_, err := store.Lookup(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestHandleStore_MalformedValue(t *testing.T) {
	store := newTestHandleStore(t)
	ctx := context.Background()

	err := store.backend.WithTransaction(ctx, func(tx *badger.Txn) error {
		return tx.Set([]byte(rootDirectoryKey), []byte(`{"kind":"directory","name":"menus"}`))
	})
	require.NoError(t, err)

	_, err = store.Lookup(ctx)
	assert.ErrorIs(t, err, storage.ErrMalformedHandle)

	_, ok := store.Get(ctx)
	assert.False(t, ok)
}

func TestHandleStore_ClosedBackend(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	store := NewHandleStore(backend)
	require.NoError(t, backend.Close())

	_, ok := store.Get(context.Background())
	assert.False(t, ok)
}

func TestNewMemoryStores(t *testing.T) {
	entities, handles, cleanup, err := NewMemoryStores(WithSeedData(nil))
	require.NoError(t, err)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, handles.Store(ctx, storage.DirectoryHandle{Path: "/tmp/x"}))

	// The handle database is separate from the entity collections.
	snap, err := entities.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Recipes)
	assert.NotSame(t, entities.backend, handles.backend)
}
