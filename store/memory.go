package store

import "sync"

type MemoryStore struct {
	data map[string]State
	mu   sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]State),
	}
}

func (ms *MemoryStore) Get(key string) (State, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	st, exists := ms.data[key]
	if !exists {
		return State{}, ErrNotFound
	}

	// Value copy, callers never alias the stored record
	return st, nil
}

func (ms *MemoryStore) Set(key string, st State) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.data[key] = st
	return nil
}

func (ms *MemoryStore) Delete(key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.data[key]; !exists {
		return ErrNotFound
	}

	delete(ms.data, key)
	return nil
}

func (ms *MemoryStore) Exists(key string) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	_, exists := ms.data[key]
	return exists
}
