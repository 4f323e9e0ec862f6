package badger

// Key prefixes for different data types
const (
	metaVersionKey     = "meta:version"
	metaSeededKey      = "meta:seeded"
	metaCollectionPart = "meta:collection:"
	menuBlobKey        = "menu:currentMenu"
	settingsBlobKey    = "settings:appSettings"
	rootDirectoryKey   = "handles:rootDirectory"
)

// Collection names, one per entity store in the embedded database.
const (
	collectionRecipes     = "recipes"
	collectionIngredients = "ingredients"
	collectionAllergens   = "allergens"
	collectionMenu        = "menu"
	collectionSettings    = "settings"
)

var allCollections = []string{
	collectionRecipes,
	collectionIngredients,
	collectionAllergens,
	collectionMenu,
	collectionSettings,
}

// makeCollectionMarkerKey generates the key recording that a collection exists.
func makeCollectionMarkerKey(collection string) []byte {
	return []byte(metaCollectionPart + collection)
}

// makeItemPrefix generates the prefix shared by all items of a keyed collection.
// Format: collection:
func makeItemPrefix(collection string) []byte {
	return []byte(collection + ":")
}

// makeItemKey generates a key for an item of a keyed collection by its ID.
// Format: collection:id
func makeItemKey(collection, id string) []byte {
	prefix := makeItemPrefix(collection)
	buf := make([]byte, len(prefix)+len(id))
	offset := copy(buf, prefix)
	copy(buf[offset:], id)
	return buf
}
