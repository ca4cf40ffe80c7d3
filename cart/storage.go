package cart

import (
	"context"
	"sync"
)

// State is what a Storage adapter persists per cart key.
type State struct {
	Items  []Item `json:"items"`
	Frozen bool   `json:"frozen"`
}

// Storage is the pluggable persistence adapter behind a cart Store.
// Load returns nil when no state exists for the key.
type Storage interface {
	Load(ctx context.Context, key string) (*State, error)
	Save(ctx context.Context, key string, state *State) error
	Delete(ctx context.Context, key string) error
}

// MemoryStorage keeps cart state in process memory.
type MemoryStorage struct {
	mu     sync.RWMutex
	states map[string]State
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{states: make(map[string]State)}
}

func (m *MemoryStorage) Load(ctx context.Context, key string) (*State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.states[key]
	if !ok {
		return nil, nil
	}
	cp := State{Items: append([]Item(nil), state.Items...), Frozen: state.Frozen}
	return &cp, nil
}

func (m *MemoryStorage) Save(ctx context.Context, key string, state *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[key] = State{Items: append([]Item(nil), state.Items...), Frozen: state.Frozen}
	return nil
}

func (m *MemoryStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, key)
	return nil
}
