package game

import "time"

// PersistGameState is the narrow load/store contract the engine's caller
// depends on. The ttl is an advisory expiry window; cleanup, not correctness.
type PersistGameState interface {
	Load(gameCode string) (*GameState, error)
	Save(gameCode string, state *GameState, ttl time.Duration) error
	Remove(gameCode string) error
}
