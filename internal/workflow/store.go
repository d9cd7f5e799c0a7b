package workflow

import (
	"context"
	"fmt"
	"sync"
)

// Store persists one state record per conversation key. Load returns
// ErrConversationNotFound when no record exists; Save replaces the record
// wholesale.
type Store interface {
	Load(ctx context.Context, conversationKey string) (*State, error)
	Save(ctx context.Context, s *State) error
}

// MemoryStore is an in-process Store used by tests and single-node setups.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]State)}
}

func (m *MemoryStore) Load(_ context.Context, conversationKey string) (*State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.states[conversationKey]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrConversationNotFound, conversationKey)
	}

	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, s *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.states[s.ConversationKey] = *s
	return nil
}
