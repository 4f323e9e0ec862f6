package directory

import (
	"encoding/json"
	"io/fs"

	"github.com/poiesic/mealplan/core"
)

// Document names.
const (
	DataFolder      = "data"
	MenuArchive     = "archive/menus"
	CombinedFile    = "data.json"
	RecipesFile     = "recipes.json"
	IngredientsFile = "ingredients.json"
	AllergensFile   = "allergens.json"
	MenuFile        = "menus.json"
	LegacyMenuFile  = "currentMenu.json"
	SettingsFile    = "settings.json"
)

// Catalog holds the three collections stored together in data.json.
type Catalog struct {
	Recipes     []core.Recipe     `json:"recipes"`
	Ingredients []core.Ingredient `json:"ingredients"`
	Allergens   []core.Allergen   `json:"allergens"`
}

// normalize replaces missing collections with empty ones.
func (c Catalog) normalize() Catalog {
	return Catalog{
		Recipes:     core.CloneRecipes(c.Recipes),
		Ingredients: core.CloneIngredients(c.Ingredients),
		Allergens:   core.CloneAllergens(c.Allergens),
	}
}

// Probe reads one candidate on-disk format. It returns false when the
// format is not present (or not readable) in fsys.
type Probe[T any] func(fsys fs.FS) (T, bool)

// CatalogProbes are tried in order: combined document, then split files.
var CatalogProbes = []Probe[Catalog]{ProbeCombined, ProbeSplit}

// MenuProbes are tried in order: menus.json, then currentMenu.json.
var MenuProbes = []Probe[core.Menu]{ProbeMenuFile(MenuFile), ProbeMenuFile(LegacyMenuFile)}

// SettingsProbes read settings.json.
var SettingsProbes = []Probe[core.Settings]{ProbeSettings}

// FirstMatch returns the result of the first probe that matches, or
// fallback if none does.
func FirstMatch[T any](fsys fs.FS, probes []Probe[T], fallback T) T {
	for _, probe := range probes {
		if v, ok := probe(fsys); ok {
			return v
		}
	}
	return fallback
}

// ProbeCombined reads the combined data.json document. Each collection is
// decoded on its own, and within a collection items that do not decode are
// skipped, so one bad entry never drops its siblings.
func ProbeCombined(fsys fs.FS) (Catalog, bool) {
	var doc map[string]json.RawMessage
	if !readJSON(fsys, CombinedFile, &doc) || doc == nil {
		return Catalog{}, false
	}
	return Catalog{
		Recipes:     decodeItems[core.Recipe](doc["recipes"]),
		Ingredients: decodeItems[core.Ingredient](doc["ingredients"]),
		Allergens:   decodeItems[core.Allergen](doc["allergens"]),
	}.normalize(), true
}

// ProbeSplit reads the legacy one-file-per-type layout. A missing file
// yields an empty collection, so this probe always matches.
func ProbeSplit(fsys fs.FS) (Catalog, bool) {
	return Catalog{
		Recipes:     decodeItems[core.Recipe](readRaw(fsys, RecipesFile)),
		Ingredients: decodeItems[core.Ingredient](readRaw(fsys, IngredientsFile)),
		Allergens:   decodeItems[core.Allergen](readRaw(fsys, AllergensFile)),
	}.normalize(), true
}

// decodeItems decodes a JSON array item by item, dropping items that do
// not fit T. Anything other than an array yields nil.
func decodeItems[T any](raw json.RawMessage) []T {
	if len(raw) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// ProbeMenuFile returns a probe reading the menu from name.
func ProbeMenuFile(name string) Probe[core.Menu] {
	return func(fsys fs.FS) (core.Menu, bool) {
		var m core.Menu
		if !readJSON(fsys, name, &m) {
			return nil, false
		}
		if m == nil {
			m = core.Menu{}
		}
		return m, true
	}
}

// ProbeSettings reads settings.json, filling in the default language.
func ProbeSettings(fsys fs.FS) (core.Settings, bool) {
	var s core.Settings
	if !readJSON(fsys, SettingsFile, &s) {
		return core.Settings{}, false
	}
	if s.Language == "" {
		s.Language = core.DefaultLanguage
	}
	return s, true
}

// readJSON decodes name into v, reporting whether it succeeded.
// On failure v may be partially written; callers discard it.
func readJSON(fsys fs.FS, name string, v any) bool {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// readRaw returns the contents of name, or nil if it cannot be read.
func readRaw(fsys fs.FS, name string) json.RawMessage {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil
	}
	return data
}

// resolveDataFS prefers the data/ subfolder and falls back to the root.
// It returns the chosen filesystem and its path relative to the root.
func resolveDataFS(root fs.FS) (fs.FS, string) {
	if info, err := fs.Stat(root, DataFolder); err == nil && info.IsDir() {
		if sub, err := fs.Sub(root, DataFolder); err == nil {
			return sub, DataFolder
		}
	}
	return root, "."
}

// ReadSnapshot loads the full model from a folder, defaulting everything
// that is missing or unreadable. It also returns the relative data folder
// the documents were read from.
func ReadSnapshot(root fs.FS) (core.Snapshot, string) {
	fsys, rel := resolveDataFS(root)
	catalog := FirstMatch(fsys, CatalogProbes, Catalog{}.normalize())
	return core.Snapshot{
		Recipes:     catalog.Recipes,
		Ingredients: catalog.Ingredients,
		Allergens:   catalog.Allergens,
		Menu:        FirstMatch(fsys, MenuProbes, core.Menu{}),
		Settings:    FirstMatch(fsys, SettingsProbes, core.DefaultSettings()),
	}, rel
}
