package store

import (
	"encoding/json"
	"sync"
)

// Keys for the four persisted resources.
const (
	KeyGameState   = "game-state"
	KeyPosts       = "posts"
	KeyLeaderboard = "leaderboard"
	KeyUsers       = "users"
)

// Store is the keyed persistence collaborator. Values are JSON documents.
// Load reports found=false for a missing key and leaves dest untouched, so
// callers keep their pre-filled defaults.
type Store interface {
	Load(key string, dest any) (bool, error)
	Save(key string, value any) error
}

// Memory is a map-backed Store used in tests.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Load(key string, dest any) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *Memory) Save(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}
