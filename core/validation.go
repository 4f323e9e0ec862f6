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
	"fmt"
	"slices"
	"time"
)

// MenuDateLayout is the key format of Menu entries.
const MenuDateLayout = "2006-01-02"

// Slots lists the fixed meal positions of a day, in display order.
var Slots = []string{"slot1", "slot2", "slot3", "slot4"}

// ValidateCategory checks that c is one of the known recipe categories.
func ValidateCategory(c Category) error {
	switch c {
	case CategorySoup, CategoryMain, CategoryDessert, CategoryOther:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidCategory, c)
}

// ValidateRecipe validates a Recipe according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//   - Name must not be empty
//   - Category must be soup, main, dessert or other
//
// NOT validated:
//   - Ingredient and allergen references (dangling references are tolerated)
func ValidateRecipe(recipe *Recipe) error {
	if recipe == nil {
		return fmt.Errorf("%w: recipe is nil", ErrInvalidRecipe)
	}
	if recipe.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecipe, ErrEmptyID)
	}
	if recipe.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecipe, ErrEmptyName)
	}
	if err := ValidateCategory(recipe.Category); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecipe, err)
	}
	return nil
}

// ValidateMenuDate checks that key is a calendar date in YYYY-MM-DD form.
func ValidateMenuDate(key string) error {
	if _, err := time.Parse(MenuDateLayout, key); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidMenuDate, key)
	}
	return nil
}

// ValidateSlot checks that slot is one of slot1..slot4.
func ValidateSlot(slot string) error {
	if !slices.Contains(Slots, slot) {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	return nil
}

// MenuKey formats t as a Menu key.
func MenuKey(t time.Time) string {
	return t.Format(MenuDateLayout)
}
