package http

import (
	"sync"

	"github.com/google/uuid"
)

const sessionTokenHeader = "X-Session-Token"

// SessionManager maps opaque login tokens to user ids. Tokens live for the
// process lifetime; there is no expiry or refresh in this version.
type SessionManager struct {
	mu     sync.RWMutex
	tokens map[string]int
}

func NewSessionManager() *SessionManager {
	return &SessionManager{tokens: make(map[string]int)}
}

// Create issues a new token for the given user.
func (m *SessionManager) Create(userID int) string {
	token := uuid.New().String()
	m.mu.Lock()
	m.tokens[token] = userID
	m.mu.Unlock()
	return token
}

// UserID resolves a token to the user it was issued for.
func (m *SessionManager) UserID(token string) (int, bool) {
	if token == "" {
		return 0, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.tokens[token]
	return id, ok
}
