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


package core

import (
	"encoding/json"
	"bytes"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// DefaultLanguage is the language used when no settings have been persisted.
const DefaultLanguage = "en"

// NewID generates an opaque, unique identifier for a new entity.
// IDs are assigned once at creation and never reused.
func NewID() string {
	return uuid.NewString()
}

// Category classifies a recipe for menu slot assignment.
type Category string

const (
	CategorySoup    Category = "soup"
	CategoryMain    Category = "main"
	CategoryDessert Category = "dessert"
	CategoryOther   Category = "other"
)

// Ref is a reference to another entity by ID.
// References may dangle; consumers treat unknown IDs as "not found".
type Ref struct {
	ID string `json:"id"`
}

// Recipe is a dish that can be placed into a menu slot.
type Recipe struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Category        Category `json:"category"`
	PortionSize     string   `json:"portionSize"`
	Calories        *float64 `json:"calories,omitempty"`
	Instructions    string   `json:"instructions,omitempty"`
	Ingredients     []Ref    `json:"ingredients"`
	ManualAllergens []Ref    `json:"manualAllergens"`
}

// Clone returns a deep copy of the recipe.
func (r Recipe) Clone() Recipe {
	out := r
	if r.Calories != nil {
		c := *r.Calories
		out.Calories = &c
	}
	out.Ingredients = cloneRefs(r.Ingredients)
	out.ManualAllergens = cloneRefs(r.ManualAllergens)
	return out
}

// UnmarshalJSON accepts calories as a number or a numeric string, as form
// inputs store them. Empty or non-numeric values leave Calories nil.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	type plain Recipe
	aux := struct {
		*plain
		Calories json.RawMessage `json:"calories,omitempty"`
	}{plain: (*plain)(r)}

	*r = Recipe{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Calories = parseCalories(aux.Calories)
	return nil
}

func parseCalories(raw json.RawMessage) *float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var text string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil
		}
		text = strings.TrimSpace(text)
	} else {
		text = string(raw)
	}
	if text == "" {
		return nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Ingredient is a component of a recipe carrying allergen references.
type Ingredient struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Allergens []string `json:"allergens"`
}

// Clone returns a deep copy of the ingredient.
func (i Ingredient) Clone() Ingredient {
	out := i
	if i.Allergens != nil {
		out.Allergens = slices.Clone(i.Allergens)
	} else {
		out.Allergens = []string{}
	}
	return out
}

// Allergen is a labelled allergen. System allergens come from the
// regulatory catalog but are otherwise ordinary, editable entities.
type Allergen struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	IsSystem bool   `json:"isSystem,omitempty"`
}

// MenuSlot is one meal position within a day.
// A nil Recipe means the slot has a category but no dish yet.
type MenuSlot struct {
	Category Category `json:"category"`
	Recipe   *string  `json:"recipe"`
}

// DayMenu maps slot IDs (slot1..slot4) to their assignment.
type DayMenu map[string]MenuSlot

// Menu maps ISO dates (YYYY-MM-DD) to the day's slots.
// A missing date means nothing is planned that day.
type Menu map[string]DayMenu

// Clone returns a deep copy of the menu.
func (m Menu) Clone() Menu {
	out := make(Menu, len(m))
	for date, day := range m {
		d := make(DayMenu, len(day))
		for slot, entry := range day {
			if entry.Recipe != nil {
				id := *entry.Recipe
				entry.Recipe = &id
			}
			d[slot] = entry
		}
		out[date] = d
	}
	return out
}

// Settings holds user preferences. Keys other than "language" are kept
// verbatim in Extra so they survive a load/save cycle.
type Settings struct {
	Language string
	Extra    map[string]json.RawMessage
}

// DefaultSettings returns the settings used when none are stored.
func DefaultSettings() Settings {
	return Settings{Language: DefaultLanguage}
}

// Clone returns a deep copy of the settings.
func (s Settings) Clone() Settings {
	out := Settings{Language: s.Language}
	if s.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(s.Extra))
		for k, v := range s.Extra {
			out.Extra[k] = slices.Clone(v)
		}
	}
	return out
}

// MarshalJSON flattens Extra next to the language key.
func (s Settings) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(s.Extra)+1)
	maps.Copy(out, s.Extra)
	lang, err := json.Marshal(s.Language)
	if err != nil {
		return nil, err
	}
	out["language"] = lang
	return json.Marshal(out)
}

// UnmarshalJSON reads the language key and keeps every other key in Extra.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Settings{}
	if v, ok := raw["language"]; ok {
		if err := json.Unmarshal(v, &s.Language); err != nil {
			return err
		}
		delete(raw, "language")
	}
	if len(raw) > 0 {
		s.Extra = raw
	}
	return nil
}

// Snapshot is the complete in-memory model shared by both backends.
type Snapshot struct {
	Recipes     []Recipe
	Ingredients []Ingredient
	Allergens   []Allergen
	Menu        Menu
	Settings    Settings
}

// EmptySnapshot returns a snapshot holding the documented defaults:
// empty collections, an empty menu and default settings.
func EmptySnapshot() Snapshot {
	return Snapshot{
		Recipes:     []Recipe{},
		Ingredients: []Ingredient{},
		Allergens:   []Allergen{},
		Menu:        Menu{},
		Settings:    DefaultSettings(),
	}
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Recipes:     CloneRecipes(s.Recipes),
		Ingredients: CloneIngredients(s.Ingredients),
		Allergens:   CloneAllergens(s.Allergens),
		Menu:        s.Menu.Clone(),
		Settings:    s.Settings.Clone(),
	}
}

// CloneRecipes deep-copies a recipe slice. Nil becomes empty.
func CloneRecipes(in []Recipe) []Recipe {
	out := make([]Recipe, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}

// CloneIngredients deep-copies an ingredient slice. Nil becomes empty.
func CloneIngredients(in []Ingredient) []Ingredient {
	out := make([]Ingredient, len(in))
	for i, ing := range in {
		out[i] = ing.Clone()
	}
	return out
}

// CloneAllergens copies an allergen slice. Nil becomes empty.
func CloneAllergens(in []Allergen) []Allergen {
	out := make([]Allergen, len(in))
	copy(out, in)
	return out
}

func cloneRefs(in []Ref) []Ref {
	if in == nil {
		return []Ref{}
	}
	return slices.Clone(in)
}
