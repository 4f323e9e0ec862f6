package badger

// NewMemoryStores creates in-memory entity and handle stores for testing.
// Each store gets its own backend, mirroring the on-disk layout.
// The returned cleanup closes both backends.
func NewMemoryStores(opts ...EntityStoreOption) (*EntityStore, *HandleStore, func(), error) {
	entityBackend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, err
	}

	handleBackend, err := OpenBackend("", true)
	if err != nil {
		entityBackend.Close()
		return nil, nil, nil, err
	}

	entities, err := NewEntityStore(entityBackend, opts...)
	if err != nil {
		handleBackend.Close()
		entityBackend.Close()
		return nil, nil, nil, err
	}

	cleanup := func() {
		handleBackend.Close()
		entityBackend.Close()
	}
	return entities, NewHandleStore(handleBackend), cleanup, nil
}
