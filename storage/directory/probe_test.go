package directory

import (
	"testing"
	"testing/fstest"

	"github.com/poiesic/mealplan/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogProbes_PreferCombined(t *testing.T) {
	fsys := fstest.MapFS{
		"data.json":    {Data: []byte(`{"recipes":[{"id":"r-combined","name":"Soup","category":"soup"}],"ingredients":[],"allergens":[]}`)},
		"recipes.json": {Data: []byte(`[{"id":"r-split","name":"Old","category":"main"}]`)},
	}

	c := FirstMatch(fsys, CatalogProbes, Catalog{})
	assert.Len(t, c.Recipes, 1)
	assert.Equal(t, "r-combined", c.Recipes[0].ID)
	assert.NotNil(t, c.Recipes[0].Ingredients)
}

func TestCatalogProbes_SplitFallback(t *testing.T) {
	fsys := fstest.MapFS{
		"recipes.json":     {Data: []byte(`[{"id":"r1","name":"Soup","category":"soup","ingredients":[{"id":"i1"}]}]`)},
		"ingredients.json": {Data: []byte(`[{"id":"i1","name":"Carrot","allergens":[]}]`)},
	}

	c := FirstMatch(fsys, CatalogProbes, Catalog{})
	assert.Len(t, c.Recipes, 1)
	assert.Len(t, c.Ingredients, 1)
	assert.Equal(t, []core.Allergen{}, c.Allergens)
}

func TestCatalogProbes_CorruptCombinedFallsBack(t *testing.T) {
	fsys := fstest.MapFS{
		"data.json":      {Data: []byte(`{"recipes": [`)},
		"allergens.json": {Data: []byte(`[{"id":"a1","name":"Milk","color":"#fff"}]`)},
		"recipes.json":   {Data: []byte(`not json`)},
	}

	c := FirstMatch(fsys, CatalogProbes, Catalog{})
	assert.Equal(t, []core.Recipe{}, c.Recipes)
	assert.Equal(t, []core.Ingredient{}, c.Ingredients)
	assert.Equal(t, []core.Allergen{{ID: "a1", Name: "Milk", Color: "#fff"}}, c.Allergens)
}

func TestProbeCombined_MissingKeys(t *testing.T) {
	fsys := fstest.MapFS{"data.json": {Data: []byte(`{"recipes":[]}`)}}

	c, ok := ProbeCombined(fsys)
	assert.True(t, ok)
	assert.NotNil(t, c.Ingredients)
	assert.NotNil(t, c.Allergens)
}

func TestMenuProbes(t *testing.T) {
	current := `{"2025-01-06":{"slot1":{"category":"soup","recipe":"r1"}}}`
	preferred := `{"2025-02-03":{"slot2":{"category":"main","recipe":null}}}`

	t.Run("menus.json preferred", func(t *testing.T) {
		fsys := fstest.MapFS{
			"menus.json":       {Data: []byte(preferred)},
			"currentMenu.json": {Data: []byte(current)},
		}
		m := FirstMatch(fsys, MenuProbes, core.Menu{})
		assert.Contains(t, m, "2025-02-03")
		assert.Nil(t, m["2025-02-03"]["slot2"].Recipe)
	})

	t.Run("currentMenu.json fallback", func(t *testing.T) {
		fsys := fstest.MapFS{"currentMenu.json": {Data: []byte(current)}}
		m := FirstMatch(fsys, MenuProbes, core.Menu{})
		assert.Equal(t, "r1", *m["2025-01-06"]["slot1"].Recipe)
	})

	t.Run("default empty", func(t *testing.T) {
		m := FirstMatch(fstest.MapFS{}, MenuProbes, core.Menu{})
		assert.Equal(t, core.Menu{}, m)
	})

	t.Run("null document", func(t *testing.T) {
		fsys := fstest.MapFS{"menus.json": {Data: []byte(`null`)}}
		m := FirstMatch(fsys, MenuProbes, nil)
		assert.Equal(t, core.Menu{}, m)
	})
}

func TestSettingsProbes(t *testing.T) {
	s := FirstMatch(fstest.MapFS{}, SettingsProbes, core.DefaultSettings())
	assert.Equal(t, core.DefaultSettings(), s)

	fsys := fstest.MapFS{"settings.json": {Data: []byte(`{"theme":"dark"}`)}}
	s = FirstMatch(fsys, SettingsProbes, core.DefaultSettings())
	assert.Equal(t, core.DefaultLanguage, s.Language)
	assert.Contains(t, s.Extra, "theme")
}

func TestReadSnapshot_DataFolderPreferred(t *testing.T) {
	fsys := fstest.MapFS{
		"data/data.json":     {Data: []byte(`{"recipes":[{"id":"in-data","name":"A","category":"main"}]}`)},
		"data/settings.json": {Data: []byte(`{"language":"de"}`)},
		"data.json":          {Data: []byte(`{"recipes":[{"id":"in-root","name":"B","category":"main"}]}`)},
	}

	snap, rel := ReadSnapshot(fsys)
	assert.Equal(t, DataFolder, rel)
	assert.Equal(t, "in-data", snap.Recipes[0].ID)
	assert.Equal(t, "de", snap.Settings.Language)
	assert.Equal(t, core.Menu{}, snap.Menu)
}

func TestReadSnapshot_RootFallback(t *testing.T) {
	fsys := fstest.MapFS{
		"recipes.json":     {Data: []byte(`[{"id":"legacy","name":"C","category":"dessert"}]`)},
		"currentMenu.json": {Data: []byte(`{}`)},
	}

	snap, rel := ReadSnapshot(fsys)
	assert.Equal(t, ".", rel)
	assert.Equal(t, "legacy", snap.Recipes[0].ID)
}

func TestReadSnapshot_EmptyFolder(t *testing.T) {
	snap, _ := ReadSnapshot(fstest.MapFS{})
	assert.Equal(t, core.EmptySnapshot(), snap)
}

func TestProbeCombined_StringCalories(t *testing.T) {
	fsys := fstest.MapFS{
		"data.json": {Data: []byte(`{
			"recipes":[{"id":"r1","name":"Soup","category":"soup","calories":"250","ingredients":[],"manualAllergens":[]}],
			"ingredients":[{"id":"i1","name":"Leek","allergens":[]}],
			"allergens":[{"id":"a1","name":"Celery","color":"#0f0"}]
		}`)},
	}

	c := FirstMatch(fsys, CatalogProbes, Catalog{})
	require.Len(t, c.Recipes, 1)
	require.NotNil(t, c.Recipes[0].Calories)
	assert.Equal(t, 250.0, *c.Recipes[0].Calories)
	assert.Len(t, c.Ingredients, 1)
	assert.Len(t, c.Allergens, 1)
}

func TestProbeCombined_BadEntriesKeepSiblings(t *testing.T) {
	fsys := fstest.MapFS{
		"data.json": {Data: []byte(`{
			"recipes":[{"id":"r1","name":"Soup","category":"soup"},{"id":"r2","name":42},"junk"],
			"ingredients":"not a list",
			"allergens":[{"id":"a1","name":"Celery","color":"#0f0"}]
		}`)},
		"ingredients.json": {Data: []byte(`[{"id":"i-split","name":"Ignored"}]`)},
	}

	c, ok := ProbeCombined(fsys)
	require.True(t, ok)
	require.Len(t, c.Recipes, 1)
	assert.Equal(t, "r1", c.Recipes[0].ID)
	assert.Equal(t, []core.Ingredient{}, c.Ingredients)
	assert.Equal(t, []core.Allergen{{ID: "a1", Name: "Celery", Color: "#0f0"}}, c.Allergens)
}

func TestProbeSplit_BadEntriesSkipped(t *testing.T) {
	fsys := fstest.MapFS{
		"recipes.json": {Data: []byte(`[{"id":"r1","name":"Stew","calories":"310"},{"id":7}]`)},
	}

	c, ok := ProbeSplit(fsys)
	require.True(t, ok)
	require.Len(t, c.Recipes, 1)
	assert.Equal(t, 310.0, *c.Recipes[0].Calories)
}
