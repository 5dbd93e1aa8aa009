package preferences

import (
	"context"
	"net/http"
	"sync"
)

// MemoryStore is a process local Store. Every request served through a
// MemoryProvider shares it, so it only suits tests and single user development.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

type MemoryProvider struct {
	Store *MemoryStore
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{Store: NewMemoryStore()}
}

func (p *MemoryProvider) For(http.ResponseWriter, *http.Request) Store {
	return p.Store
}
