package session

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store for tests and local development.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
	}
}

func (m *MemoryStore) Create(ctx context.Context, s *Session) error {
	return m.Update(ctx, s)
}

func (m *MemoryStore) Update(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[s.ID] = clone(s)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, sessionID string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	m.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if s.Expired() {
		m.mu.Lock()
		delete(m.sessions, sessionID)
		m.mu.Unlock()
		return nil, nil
	}
	return clone(s), nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionID)
	return nil
}

// clone keeps stored sessions isolated from caller mutation, matching
// the serialize-on-write behavior of the Redis store.
func clone(s *Session) *Session {
	out := &Session{
		ID:        s.ID,
		ExpiresAt: s.ExpiresAt,
	}
	if s.Values != nil {
		out.Values = make(map[string]any, len(s.Values))
		for k, v := range s.Values {
			out.Values[k] = v
		}
	}
	return out
}
