package transcript

import (
	"context"
	"sync"
)

// MemoryRepository is the in-process fallback used when no Redis URL is
// configured, and in tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	turns map[string][]Turn
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{turns: make(map[string][]Turn)}
}

func (m *MemoryRepository) Append(_ context.Context, conversationID string, turn Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns[conversationID] = append(m.turns[conversationID], turn)
	return nil
}

func (m *MemoryRepository) History(_ context.Context, conversationID string) ([]Turn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	src := m.turns[conversationID]
	out := make([]Turn, len(src))
	copy(out, src)
	return out, nil
}

func (m *MemoryRepository) Clear(_ context.Context, conversationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.turns, conversationID)
	return nil
}

func (m *MemoryRepository) Count(_ context.Context, conversationID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.turns[conversationID]), nil
}

var _ Repository = (*MemoryRepository)(nil)
