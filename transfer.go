package mealplan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/poiesic/mealplan/core"
	"github.com/poiesic/mealplan/storage"
)

// ExportDocument is the backup format written by Export and read by Import.
type ExportDocument struct {
	Recipes     []core.Recipe     `json:"recipes"`
	Ingredients []core.Ingredient `json:"ingredients"`
	Allergens   []core.Allergen   `json:"allergens"`
	CurrentMenu core.Menu         `json:"currentMenu"`
	AppSettings core.Settings     `json:"appSettings"`
	ExportDate  time.Time         `json:"exportDate"`
}

// ExportFileName returns the backup file name for the day of t.
func ExportFileName(t time.Time) string {
	return "menu-planner-backup-" + t.Format(core.MenuDateLayout) + ".json"
}

// Export writes the whole in-memory model to w. It works the same with
// either backend and never touches storage. A closed adapter returns
// ErrAdapterClosed.
func (a *Adapter) Export(ctx context.Context, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if a.isClosed() {
		return ErrAdapterClosed
	}
	snap := a.Snapshot()
	now := a.now().UTC()
	doc := ExportDocument{
		Recipes:     snap.Recipes,
		Ingredients: snap.Ingredients,
		Allergens:   snap.Allergens,
		CurrentMenu: snap.Menu,
		AppSettings: snap.Settings,
		ExportDate:  now,
	}
	data, err := storage.MarshalDocument(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ExportToDir writes a dated backup file into dir and returns its path.
func (a *Adapter) ExportToDir(ctx context.Context, dir string) (string, error) {
	var buf bytes.Buffer
	if err := a.Export(ctx, &buf); err != nil {
		return "", err
	}
	path := filepath.Join(dir, ExportFileName(a.now().UTC()))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	a.logger.Info("backup exported", "path", path)
	return path, nil
}

// pendingImport is one decoded collection waiting to be saved.
type pendingImport struct {
	kind storage.EntityType
	data any
}

// Import reads a document in the Export format. Every top-level key that
// is present replaces its collection and is persisted through Save; keys
// that are missing or null are left untouched. It returns false, without
// changing anything, when the document cannot be parsed.
func (a *Adapter) Import(ctx context.Context, r io.Reader) bool {
	data, err := io.ReadAll(r)
	if err != nil {
		a.logger.Error("error reading import", "err", err)
		return false
	}
	var raw map[string]json.RawMessage
	if err := storage.UnmarshalDocument(data, &raw); err != nil {
		a.logger.Warn("rejecting import", "err", err)
		return false
	}
	if raw == nil {
		a.logger.Warn("rejecting import", "err", ErrInvalidExport)
		return false
	}

	var updates []pendingImport
	decoders := []func() error{
		func() error { return decodeImport[[]core.Recipe](raw, "recipes", storage.Recipes, &updates) },
		func() error { return decodeImport[[]core.Ingredient](raw, "ingredients", storage.Ingredients, &updates) },
		func() error { return decodeImport[[]core.Allergen](raw, "allergens", storage.Allergens, &updates) },
		func() error { return decodeImport[core.Menu](raw, "currentMenu", storage.CurrentMenu, &updates) },
		func() error { return decodeImport[core.Settings](raw, "appSettings", storage.AppSettings, &updates) },
	}
	for _, decode := range decoders {
		if err := decode(); err != nil {
			a.logger.Warn("rejecting import", "err", err)
			return false
		}
	}

	for _, u := range updates {
		if settings, ok := u.data.(core.Settings); ok && settings.Language == "" {
			settings.Language = core.DefaultLanguage
			u.data = settings
		}
		a.Save(ctx, u.kind, u.data)
	}
	a.logger.Info("import applied", "collections", len(updates))
	return true
}

func decodeImport[T any](raw map[string]json.RawMessage, key string, kind storage.EntityType, updates *[]pendingImport) error {
	value, ok := raw[key]
	if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
		return nil
	}
	var v T
	if err := json.Unmarshal(value, &v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidExport, key, err)
	}
	*updates = append(*updates, pendingImport{kind: kind, data: v})
	return nil
}
