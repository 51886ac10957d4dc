package preference

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store. Methods on a nil *MemoryStore return ErrNilStore.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns a store holding a copy of initial.
func NewMemoryStore(initial map[string]string) *MemoryStore {
	values := make(map[string]string, len(initial))
	for k, v := range initial {
		values[k] = v
	}

	return &MemoryStore{values: values}
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	if m == nil {
		return "", false, ErrNilStore
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]

	return v, ok, nil
}

// Set implements Store.
func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	if m == nil {
		return ErrNilStore
	}

	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()

	return nil
}

// SetIfAbsent implements AbsentSetter.
func (m *MemoryStore) SetIfAbsent(_ context.Context, key, value string) (bool, error) {
	if m == nil {
		return false, ErrNilStore
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.values[key]; ok {
		return false, nil
	}

	m.values[key] = value

	return true, nil
}

// Delete removes key. It reports whether the key existed.
func (m *MemoryStore) Delete(_ context.Context, key string) (bool, error) {
	if m == nil {
		return false, ErrNilStore
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.values[key]
	delete(m.values, key)

	return ok, nil
}

// All returns a snapshot of every stored value.
func (m *MemoryStore) All(_ context.Context) (map[string]string, error) {
	if m == nil {
		return nil, ErrNilStore
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}

	return out, nil
}
