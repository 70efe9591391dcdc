package game

import (
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// MemoryGameStateTracker keeps the state blobs in process. Used by tests and
// single-node development; it round-trips through the same JSON encoding as
// the redis tracker so both exercise identical serialization.
type MemoryGameStateTracker struct {
	mu          sync.Mutex
	activeGames map[string][]byte
	expiries    map[string]time.Time
}

func NewMemoryGameStateTracker() *MemoryGameStateTracker {
	return &MemoryGameStateTracker{
		activeGames: make(map[string][]byte),
		expiries:    make(map[string]time.Time),
	}
}

func (m *MemoryGameStateTracker) Load(gameCode string) (*GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stateBytes, ok := m.activeGames[gameCode]
	if !ok {
		return nil, ErrGameNotFound
	}
	if expiry, ok := m.expiries[gameCode]; ok && time.Now().After(expiry) {
		delete(m.activeGames, gameCode)
		delete(m.expiries, gameCode)
		return nil, ErrGameNotFound
	}
	state := &GameState{}
	err := jsoniter.Unmarshal(stateBytes, state)
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (m *MemoryGameStateTracker) Save(gameCode string, state *GameState, ttl time.Duration) error {
	stateInBytes, err := jsoniter.Marshal(state)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activeGames[gameCode] = stateInBytes
	if ttl > 0 {
		m.expiries[gameCode] = time.Now().Add(ttl)
	} else {
		delete(m.expiries, gameCode)
	}
	return nil
}

func (m *MemoryGameStateTracker) Remove(gameCode string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.activeGames, gameCode)
	delete(m.expiries, gameCode)
	return nil
}
