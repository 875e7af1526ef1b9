package builder

import "sync"

// Store holds the live authoring sessions. Sessions are in-memory by
// design: the wizard is a short-lived, single-author interaction and a
// cancelled or crashed session must not leave partial state anywhere.
type Store interface {
	Put(session *Session)
	Get(id string) (*Session, bool)
	Delete(id string)
	Len() int
}

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() Store {
	return &memoryStore{
		sessions: make(map[string]*Session),
	}
}

func (m *memoryStore) Put(session *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
}

func (m *memoryStore) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	return session, ok
}

func (m *memoryStore) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *memoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
