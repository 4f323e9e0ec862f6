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


package storage

import (
	"context"
	"slices"

	"github.com/poiesic/mealplan/core"
)

// EntityType names a persisted collection.
type EntityType string

const (
	Recipes     EntityType = "recipes"
	Ingredients EntityType = "ingredients"
	Allergens   EntityType = "allergens"
	CurrentMenu EntityType = "currentMenu"
	AppSettings EntityType = "appSettings"
)

// EntityTypes lists every recognized entity type.
var EntityTypes = []EntityType{Recipes, Ingredients, Allergens, CurrentMenu, AppSettings}

// Valid reports whether t is a recognized entity type.
func (t EntityType) Valid() bool {
	return slices.Contains(EntityTypes, t)
}

// IsCatalog reports whether t is one of the three collections stored
// together in the combined document.
func (t EntityType) IsCatalog() bool {
	return t == Recipes || t == Ingredients || t == Allergens
}

// Backend is a concrete persistence strategy.
// Implementations must be safe for use from multiple goroutines, but
// overlapping saves of the same entity type are the caller's to serialize.
type Backend interface {
	// Load reads the full model. Missing data is not an error: absent
	// collections come back as their documented defaults.
	Load(ctx context.Context) (core.Snapshot, error)

	// Save persists the entity type kind. snap carries the current
	// in-memory model so backends that store several kinds together can
	// write the untouched ones alongside.
	Save(ctx context.Context, kind EntityType, snap core.Snapshot) error

	// Close releases resources.
	Close() error
}

// DirectoryHandle is the capability for a user-granted folder.
// It is meaningful only to the host that issued it and must be
// re-validated through a permission check before use in a new session.
type DirectoryHandle struct {
	Name string
	Path string
}

// IsZero reports whether h references nothing.
func (h DirectoryHandle) IsZero() bool {
	return h.Path == ""
}
