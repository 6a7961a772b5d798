package session

import "sync"

// MemoryStore is the in-memory Store used by the console. A single instance
// is shared by every component that needs login state.
type MemoryStore struct {
	mu      sync.RWMutex
	current Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *MemoryStore) Set(s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = s
}

func (m *MemoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = Session{}
}
