package directory

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/poiesic/mealplan/storage"
)

// LocalAccess implements Access on the local filesystem.
//
// Picker supplies the folder the user chose; Approve, when set, is
// consulted by RequestPermission and models the user's answer to a
// permission prompt. Without Approve every request for an accessible
// folder is granted.
type LocalAccess struct {
	Picker  func(ctx context.Context) (string, error)
	Approve func(ctx context.Context, handle storage.DirectoryHandle, mode Mode) bool
}

var _ Access = (*LocalAccess)(nil)

// StaticPicker returns a picker that always selects path.
func StaticPicker(path string) func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		return path, nil
	}
}

// PickDirectory resolves the picked folder to an absolute path.
func (a *LocalAccess) PickDirectory(ctx context.Context, mode Mode) (storage.DirectoryHandle, error) {
	if a.Picker == nil {
		return storage.DirectoryHandle{}, ErrNoPicker
	}
	path, err := a.Picker(ctx)
	if err != nil {
		return storage.DirectoryHandle{}, err
	}
	if path == "" {
		return storage.DirectoryHandle{}, ErrSelectionCanceled
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return storage.DirectoryHandle{}, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return storage.DirectoryHandle{}, err
	}
	if !info.IsDir() {
		return storage.DirectoryHandle{}, fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}
	return storage.DirectoryHandle{Name: filepath.Base(abs), Path: abs}, nil
}

// QueryPermission reports granted when the folder exists and allows the
// requested access, denied otherwise. It never prompts.
func (a *LocalAccess) QueryPermission(ctx context.Context, handle storage.DirectoryHandle, mode Mode) (Permission, error) {
	info, err := os.Stat(handle.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return PermissionDenied, nil
		}
		return PermissionDenied, err
	}
	if !info.IsDir() {
		return PermissionDenied, nil
	}
	if _, err := os.ReadDir(handle.Path); err != nil {
		return PermissionDenied, nil
	}
	if mode == ModeReadWrite {
		probe, err := os.CreateTemp(handle.Path, ".mealplan-access-*")
		if err != nil {
			return PermissionDenied, nil
		}
		probe.Close()
		_ = os.Remove(probe.Name())
	}
	return PermissionGranted, nil
}

// RequestPermission asks Approve, then checks the folder is accessible.
func (a *LocalAccess) RequestPermission(ctx context.Context, handle storage.DirectoryHandle, mode Mode) (Permission, error) {
	if a.Approve != nil && !a.Approve(ctx, handle, mode) {
		return PermissionDenied, nil
	}
	return a.QueryPermission(ctx, handle, mode)
}
