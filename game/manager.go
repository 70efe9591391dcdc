package game

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"pokerduel.com/server/logging"
)

var managerLogger = logging.GetZeroLogger("game::manager", nil)

// Notifier is the outbound side of the notification gateway. The manager
// hands it structured next-actor data; delivery channel, retries and failures
// are its problem, never the game's.
type Notifier interface {
	PlayerTurn(gameCode string, actor *NextActor) error
	HandSettled(gameCode string, result *HandResult) error
}

// NopNotifier drops all notifications. Used by tests and by deployments
// without a push channel.
type NopNotifier struct{}

func (NopNotifier) PlayerTurn(gameCode string, actor *NextActor) error    { return nil }
func (NopNotifier) HandSettled(gameCode string, result *HandResult) error { return nil }

// GameManager owns the load-modify-store cycle around the engine. It
// serializes mutations per game code so two near-simultaneous actions from
// the two players never both apply against the same stale snapshot.
type GameManager struct {
	config   GameConfig
	persist  PersistGameState
	notifier Notifier

	lock      sync.Mutex
	gameLocks map[string]*sync.Mutex
}

func NewGameManager(config GameConfig, persist PersistGameState, notifier Notifier) *GameManager {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &GameManager{
		config:    config,
		persist:   persist,
		notifier:  notifier,
		gameLocks: make(map[string]*sync.Mutex),
	}
}

func (m *GameManager) GameConfig() GameConfig {
	return m.config
}

// StartMatch creates a new match between two registered players and persists
// its initial state.
func (m *GameManager) StartMatch(players [2]PlayerInfo) (*GameState, *NextActor, error) {
	gameCode := NewGameCode()
	state, next, err := NewMatch(gameCode, m.config, players)
	if err != nil {
		return nil, nil, err
	}
	if err := m.persist.Save(gameCode, state, m.config.StateTTL()); err != nil {
		return nil, nil, errors.Wrap(err, "Unable to save new game state")
	}
	m.notifyTurn(gameCode, next)
	return state, next, nil
}

// PlaceBet applies a betting intent to the named game.
func (m *GameManager) PlaceBet(gameCode string, playerID string, action PlayerAction, amount int32) (*BetOutcome, error) {
	gameLock := m.lockFor(gameCode)
	gameLock.Lock()
	defer gameLock.Unlock()

	state, err := m.persist.Load(gameCode)
	if err != nil {
		return nil, err
	}
	outcome, err := state.PlaceBet(playerID, action, amount)
	if err != nil {
		return nil, err
	}
	if err := m.persist.Save(gameCode, state, m.config.StateTTL()); err != nil {
		return nil, errors.Wrap(err, "Unable to save game state")
	}
	if outcome.HandResult != nil {
		m.notifySettled(gameCode, outcome.HandResult)
	}
	m.notifyTurn(gameCode, outcome.Next)
	return outcome, nil
}

// DiscardDraw applies a discard/draw intent to the named game. A deck
// underflow means the persisted state is corrupted; the match is terminated
// rather than silently patched.
func (m *GameManager) DiscardDraw(gameCode string, playerID string, indices []int) (*DrawOutcome, error) {
	gameLock := m.lockFor(gameCode)
	gameLock.Lock()
	defer gameLock.Unlock()

	state, err := m.persist.Load(gameCode)
	if err != nil {
		return nil, err
	}
	outcome, err := state.DiscardDraw(playerID, indices)
	if err != nil {
		if IsCorruptedState(err) {
			managerLogger.Error().
				Str(logging.GameCodeKey, gameCode).
				Msg("Deck underflow detected. Terminating the match.")
			if removeErr := m.persist.Remove(gameCode); removeErr != nil {
				managerLogger.Error().
					Str(logging.GameCodeKey, gameCode).
					Msgf("Unable to remove corrupted game state: %v", removeErr)
			}
			return nil, errors.Wrap(err, "Corrupted game state. Match terminated")
		}
		return nil, err
	}
	if err := m.persist.Save(gameCode, state, m.config.StateTTL()); err != nil {
		return nil, errors.Wrap(err, "Unable to save game state")
	}
	m.notifyTurn(gameCode, outcome.Next)
	return outcome, nil
}

// Status returns the public projection for one player of the named game.
func (m *GameManager) Status(gameCode string, playerID string) (*GameStatus, error) {
	state, err := m.persist.Load(gameCode)
	if err != nil {
		return nil, err
	}
	return state.StatusFor(playerID)
}

// HandFor returns the caller's own hand view for the named game.
func (m *GameManager) HandFor(gameCode string, playerID string) (*HandView, error) {
	state, err := m.persist.Load(gameCode)
	if err != nil {
		return nil, err
	}
	return state.HandViewFor(playerID)
}

func (m *GameManager) lockFor(gameCode string) *sync.Mutex {
	m.lock.Lock()
	defer m.lock.Unlock()
	gameLock, ok := m.gameLocks[gameCode]
	if !ok {
		gameLock = &sync.Mutex{}
		m.gameLocks[gameCode] = gameLock
	}
	return gameLock
}

func (m *GameManager) notifyTurn(gameCode string, actor *NextActor) {
	if actor == nil {
		return
	}
	if err := m.notifier.PlayerTurn(gameCode, actor); err != nil {
		managerLogger.Error().
			Str(logging.GameCodeKey, gameCode).
			Str(logging.PlayerIDKey, actor.PlayerID).
			Msgf("Unable to deliver turn notification: %v", err)
	}
}

func (m *GameManager) notifySettled(gameCode string, result *HandResult) {
	if err := m.notifier.HandSettled(gameCode, result); err != nil {
		managerLogger.Error().
			Str(logging.GameCodeKey, gameCode).
			Msgf("Unable to deliver hand-settled notification: %v", err)
	}
}

// NewGameCode generates an opaque match identifier.
func NewGameCode() string {
	return "poker-" + strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}
