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

// SystemAllergens returns the regulated EU allergen catalog (Regulation
// (EU) No 1169/2011, Annex II), flagged as system allergens.
func SystemAllergens() []Allergen {
	return []Allergen{
		{ID: "sys-gluten", Name: "Gluten", Color: "#d4a373", IsSystem: true},
		{ID: "sys-crustaceans", Name: "Crustaceans", Color: "#e76f51", IsSystem: true},
		{ID: "sys-eggs", Name: "Eggs", Color: "#f4d35e", IsSystem: true},
		{ID: "sys-fish", Name: "Fish", Color: "#457b9d", IsSystem: true},
		{ID: "sys-peanuts", Name: "Peanuts", Color: "#bc6c25", IsSystem: true},
		{ID: "sys-soybeans", Name: "Soybeans", Color: "#a7c957", IsSystem: true},
		{ID: "sys-milk", Name: "Milk", Color: "#a8dadc", IsSystem: true},
		{ID: "sys-nuts", Name: "Nuts", Color: "#8d5524", IsSystem: true},
		{ID: "sys-celery", Name: "Celery", Color: "#6a994e", IsSystem: true},
		{ID: "sys-mustard", Name: "Mustard", Color: "#e9c46a", IsSystem: true},
		{ID: "sys-sesame", Name: "Sesame", Color: "#ddb892", IsSystem: true},
		{ID: "sys-sulphites", Name: "Sulphites", Color: "#9d4edd", IsSystem: true},
		{ID: "sys-lupin", Name: "Lupin", Color: "#4361ee", IsSystem: true},
		{ID: "sys-molluscs", Name: "Molluscs", Color: "#2a9d8f", IsSystem: true},
	}
}

// SampleData returns the dataset written on a brand-new install so the
// planner is never empty on first start.
func SampleData() Snapshot {
	allergens := []Allergen{
		{ID: "sys-gluten", Name: "Gluten", Color: "#d4a373", IsSystem: true},
		{ID: "sys-eggs", Name: "Eggs", Color: "#f4d35e", IsSystem: true},
		{ID: "sys-milk", Name: "Milk", Color: "#a8dadc", IsSystem: true},
		{ID: "sys-celery", Name: "Celery", Color: "#6a994e", IsSystem: true},
	}
	ingredients := []Ingredient{
		{ID: "ing-flour", Name: "Wheat flour", Allergens: []string{"sys-gluten"}},
		{ID: "ing-milk", Name: "Milk", Allergens: []string{"sys-milk"}},
		{ID: "ing-eggs", Name: "Eggs", Allergens: []string{"sys-eggs"}},
		{ID: "ing-celery", Name: "Celery root", Allergens: []string{"sys-celery"}},
		{ID: "ing-carrot", Name: "Carrot", Allergens: []string{}},
		{ID: "ing-potato", Name: "Potato", Allergens: []string{}},
	}
	recipes := []Recipe{
		{
			ID:           "rec-vegetable-soup",
			Name:         "Vegetable soup",
			Category:     CategorySoup,
			PortionSize:  "300ml",
			Instructions: "Dice the vegetables, cover with water and simmer for 30 minutes.",
			Ingredients: []Ref{
				{ID: "ing-carrot"}, {ID: "ing-potato"}, {ID: "ing-celery"},
			},
			ManualAllergens: []Ref{},
		},
		{
			ID:           "rec-pancakes",
			Name:         "Pancakes",
			Category:     CategoryDessert,
			PortionSize:  "2 pieces",
			Instructions: "Whisk flour, milk and eggs into a batter and fry thin pancakes.",
			Ingredients: []Ref{
				{ID: "ing-flour"}, {ID: "ing-milk"}, {ID: "ing-eggs"},
			},
			ManualAllergens: []Ref{},
		},
	}
	return Snapshot{
		Recipes:     recipes,
		Ingredients: ingredients,
		Allergens:   allergens,
		Menu:        Menu{},
		Settings:    DefaultSettings(),
	}
}
