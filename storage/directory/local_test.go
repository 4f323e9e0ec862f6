package directory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/mealplan/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalAccess_PickDirectory(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("no picker", func(t *testing.T) {
		_, err := (&LocalAccess{}).PickDirectory(ctx, ModeReadWrite)
		assert.ErrorIs(t, err, ErrNoPicker)
	})

	t.Run("canceled", func(t *testing.T) {
		_, err := (&LocalAccess{Picker: StaticPicker("")}).PickDirectory(ctx, ModeReadWrite)
		assert.ErrorIs(t, err, ErrSelectionCanceled)
	})

	t.Run("regular file", func(t *testing.T) {
		file := filepath.Join(dir, "notes.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
		_, err := (&LocalAccess{Picker: StaticPicker(file)}).PickDirectory(ctx, ModeReadWrite)
		assert.ErrorIs(t, err, ErrNotDirectory)
	})

	t.Run("missing folder", func(t *testing.T) {
		_, err := (&LocalAccess{Picker: StaticPicker(filepath.Join(dir, "nope"))}).PickDirectory(ctx, ModeReadWrite)
		assert.Error(t, err)
	})

	t.Run("folder", func(t *testing.T) {
		handle, err := (&LocalAccess{Picker: StaticPicker(dir)}).PickDirectory(ctx, ModeReadWrite)
		require.NoError(t, err)
		assert.Equal(t, filepath.Base(dir), handle.Name)
		assert.True(t, filepath.IsAbs(handle.Path))
	})
}

func TestLocalAccess_Permissions(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	handle := storage.DirectoryHandle{Name: "menus", Path: dir}

	access := &LocalAccess{}
	perm, err := access.QueryPermission(ctx, handle, ModeReadWrite)
	require.NoError(t, err)
	assert.Equal(t, PermissionGranted, perm)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "write probe must clean up after itself")

	perm, err = access.QueryPermission(ctx, storage.DirectoryHandle{Path: filepath.Join(dir, "gone")}, ModeRead)
	require.NoError(t, err)
	assert.Equal(t, PermissionDenied, perm)

	refusing := &LocalAccess{Approve: func(context.Context, storage.DirectoryHandle, Mode) bool { return false }}
	perm, err = refusing.RequestPermission(ctx, handle, ModeReadWrite)
	require.NoError(t, err)
	assert.Equal(t, PermissionDenied, perm)

	perm, err = access.RequestPermission(ctx, handle, ModeReadWrite)
	require.NoError(t, err)
	assert.Equal(t, PermissionGranted, perm)
}
