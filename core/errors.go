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

import "errors"

// Domain validation errors
var (
	// ErrInvalidRecipe indicates a Recipe failed validation.
	ErrInvalidRecipe = errors.New("invalid recipe")

	// ErrEmptyID indicates an entity has no ID.
	ErrEmptyID = errors.New("id cannot be empty")

	// ErrEmptyName indicates an entity has no name.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrInvalidCategory indicates an unknown recipe category.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidMenuDate indicates a menu key that is not a YYYY-MM-DD date.
	ErrInvalidMenuDate = errors.New("invalid menu date")

	// ErrInvalidSlot indicates a slot ID outside slot1..slot4.
	ErrInvalidSlot = errors.New("invalid menu slot")
)
