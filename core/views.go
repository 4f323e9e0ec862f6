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

// FindRecipe returns the recipe with the given ID, or nil if none exists.
func FindRecipe(recipes []Recipe, id string) *Recipe {
	for i := range recipes {
		if recipes[i].ID == id {
			return &recipes[i]
		}
	}
	return nil
}

// FindIngredient returns the ingredient with the given ID, or nil if none exists.
func FindIngredient(ingredients []Ingredient, id string) *Ingredient {
	for i := range ingredients {
		if ingredients[i].ID == id {
			return &ingredients[i]
		}
	}
	return nil
}

// FindAllergen returns the allergen with the given ID, or nil if none exists.
func FindAllergen(allergens []Allergen, id string) *Allergen {
	for i := range allergens {
		if allergens[i].ID == id {
			return &allergens[i]
		}
	}
	return nil
}

// RecipeIngredients resolves a recipe's ingredient references.
// Unknown and repeated IDs are skipped.
func RecipeIngredients(recipe Recipe, ingredients []Ingredient) []Ingredient {
	seen := make(map[string]struct{}, len(recipe.Ingredients))
	out := make([]Ingredient, 0, len(recipe.Ingredients))
	for _, ref := range recipe.Ingredients {
		if _, dup := seen[ref.ID]; dup {
			continue
		}
		seen[ref.ID] = struct{}{}
		if ing := FindIngredient(ingredients, ref.ID); ing != nil {
			out = append(out, *ing)
		}
	}
	return out
}

// RecipeAllergens returns every allergen touched by a recipe: those set
// manually plus those carried by its ingredients. The result is
// de-duplicated by ID and keeps first-seen order; dangling references
// are skipped.
func RecipeAllergens(recipe Recipe, ingredients []Ingredient, allergens []Allergen) []Allergen {
	seen := make(map[string]struct{})
	var out []Allergen
	add := func(id string) {
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		if a := FindAllergen(allergens, id); a != nil {
			out = append(out, *a)
		}
	}

	for _, ref := range recipe.ManualAllergens {
		add(ref.ID)
	}
	for _, ing := range RecipeIngredients(recipe, ingredients) {
		for _, id := range ing.Allergens {
			add(id)
		}
	}
	return out
}

// DayRecipes resolves the recipes assigned to a day in slot order.
// Empty slots and unknown recipes are skipped.
func DayRecipes(day DayMenu, recipes []Recipe) []Recipe {
	var out []Recipe
	for _, slot := range Slots {
		entry, ok := day[slot]
		if !ok || entry.Recipe == nil {
			continue
		}
		if r := FindRecipe(recipes, *entry.Recipe); r != nil {
			out = append(out, *r)
		}
	}
	return out
}
