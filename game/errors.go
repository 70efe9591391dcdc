package game

import (
	"errors"

	"pokerduel.com/server/poker"
)

// Structural errors: malformed input, a caller bug.
var (
	ErrInvalidPlayerCount = errors.New("exactly two distinct players are required")
	ErrPlayerNotInGame    = errors.New("player is not part of this game")
	ErrInvalidAction      = errors.New("invalid action. Use: bet, call, raise, or fold")
	ErrInvalidIndex       = errors.New("invalid card index (use 0-4)")
	ErrTooManyDiscards    = errors.New("maximum 3 cards can be discarded")
)

// Turn/phase errors: stale or out-of-order intents. Expected under async
// multi-client access; callers should treat them as refresh-and-retry.
var (
	ErrNotPlayersTurn = errors.New("not your turn")
	ErrInvalidPhase   = errors.New("action not allowed in the current phase")
)

// Economic errors: player-initiated invalid actions, surfaced verbatim.
var (
	ErrBelowMinimum      = errors.New("bet is below the required minimum")
	ErrInsufficientChips = errors.New("not enough chips")
)

// Persistence boundary.
var (
	ErrGameNotFound = errors.New("game not found or expired")
)

// IsCorruptedState reports whether an operation failed because the persisted
// state no longer reconstitutes a full deck. Such a match must be terminated,
// not patched.
func IsCorruptedState(err error) bool {
	return errors.Is(err, poker.ErrInsufficientCards)
}
