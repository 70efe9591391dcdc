package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingNotifier captures notifications so tests can assert on delivery
// without a messaging server.
type recordingNotifier struct {
	turns   []*NextActor
	settled []*HandResult
}

func (n *recordingNotifier) PlayerTurn(gameCode string, actor *NextActor) error {
	n.turns = append(n.turns, actor)
	return nil
}

func (n *recordingNotifier) HandSettled(gameCode string, result *HandResult) error {
	n.settled = append(n.settled, result)
	return nil
}

func newTestManager() (*GameManager, *MemoryGameStateTracker, *recordingNotifier) {
	tracker := NewMemoryGameStateTracker()
	notifier := &recordingNotifier{}
	return NewGameManager(DefaultGameConfig(), tracker, notifier), tracker, notifier
}

func TestStartMatchPersistsAndNotifies(t *testing.T) {
	manager, tracker, notifier := newTestManager()

	state, next, err := manager.StartMatch(testPlayers)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, int32(0), next.Seat)

	loaded, err := tracker.Load(state.GameCode)
	require.NoError(t, err)
	assert.Equal(t, state.GameCode, loaded.GameCode)
	assert.Equal(t, GamePhase_FIRST_BET, loaded.Phase)
	assert.Equal(t, loaded.Seats[0].Cards, state.Seats[0].Cards, "hand must survive the persistence round trip")

	require.Len(t, notifier.turns, 1)
	assert.Equal(t, testPlayers[0].ID, notifier.turns[0].PlayerID)
	assert.Equal(t, ReasonTurnToBet, notifier.turns[0].Reason)
}

func TestManagerHandFlow(t *testing.T) {
	manager, _, notifier := newTestManager()
	state, _, err := manager.StartMatch(testPlayers)
	require.NoError(t, err)
	gameCode := state.GameCode
	alice := testPlayers[0].ID
	bob := testPlayers[1].ID

	_, err = manager.PlaceBet(gameCode, alice, ActionBet, 10)
	require.NoError(t, err)
	out, err := manager.PlaceBet(gameCode, bob, ActionCall, 0)
	require.NoError(t, err)
	assert.Equal(t, GamePhase_DRAW, out.Phase)

	drawOut, err := manager.DiscardDraw(gameCode, alice, []int{0})
	require.NoError(t, err)
	assert.Equal(t, 1, drawOut.CardsDrawn)
	_, err = manager.DiscardDraw(gameCode, bob, nil)
	require.NoError(t, err)

	_, err = manager.PlaceBet(gameCode, alice, ActionBet, 10)
	require.NoError(t, err)
	betOut, err := manager.PlaceBet(gameCode, bob, ActionFold, 0)
	require.NoError(t, err)
	require.NotNil(t, betOut.HandResult)

	// Every turn change was pushed, plus one hand-settled notification and
	// the first actor of the freshly dealt hand.
	require.Len(t, notifier.settled, 1)
	assert.True(t, notifier.settled[0].ByFold)
	assert.Equal(t, alice, notifier.turns[len(notifier.turns)-1].PlayerID)

	// The settled state was persisted: hand two is live.
	status, err := manager.Status(gameCode, alice)
	require.NoError(t, err)
	assert.Equal(t, int32(2), status.HandNum)
	assert.Equal(t, int32(110), status.Players[0].Stack)
}

func TestManagerUnknownGame(t *testing.T) {
	manager, _, _ := newTestManager()

	_, err := manager.PlaceBet("poker-missing", testPlayers[0].ID, ActionBet, 10)
	assert.Equal(t, ErrGameNotFound, err)

	_, err = manager.Status("poker-missing", testPlayers[0].ID)
	assert.Equal(t, ErrGameNotFound, err)
}

func TestManagerValidationErrorDoesNotPersist(t *testing.T) {
	manager, tracker, _ := newTestManager()
	state, _, err := manager.StartMatch(testPlayers)
	require.NoError(t, err)

	_, err = manager.PlaceBet(state.GameCode, testPlayers[0].ID, ActionBet, 3)
	assert.Equal(t, ErrBelowMinimum, err)

	loaded, err := tracker.Load(state.GameCode)
	require.NoError(t, err)
	assert.Equal(t, int32(0), loaded.Pot)
	assert.Equal(t, int32(100), loaded.Seats[0].Stack)
}

func TestCorruptedStateTerminatesMatch(t *testing.T) {
	manager, tracker, _ := newTestManager()

	// A draw-phase state whose deck cannot cover the replacement cards.
	state := &GameState{
		GameCode:    "poker-corrupt",
		Config:      DefaultGameConfig(),
		Phase:       GamePhase_DRAW,
		HandNum:     1,
		CurrentSeat: 0,
	}
	state.Seats[0] = Seat{Player: testPlayers[0], Stack: 90, Cards: cards("Ah", "Kd", "Qs", "Jc", "9h")}
	state.Seats[1] = Seat{Player: testPlayers[1], Stack: 90, Cards: cards("As", "Kh", "Qd", "Js", "9c")}
	require.NoError(t, tracker.Save(state.GameCode, state, 0))

	_, err := manager.DiscardDraw(state.GameCode, testPlayers[0].ID, []int{0})
	require.Error(t, err)
	assert.True(t, IsCorruptedState(err))
	assert.Contains(t, err.Error(), "Match terminated")

	// The corrupted state is gone, not left to poison further actions.
	_, err = tracker.Load(state.GameCode)
	assert.Equal(t, ErrGameNotFound, err)
}

func TestMemoryTrackerHonorsTTL(t *testing.T) {
	tracker := NewMemoryGameStateTracker()
	state, _, err := NewMatch("poker-ttl", DefaultGameConfig(), testPlayers)
	require.NoError(t, err)

	require.NoError(t, tracker.Save(state.GameCode, state, 10*time.Millisecond))
	_, err = tracker.Load(state.GameCode)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	_, err = tracker.Load(state.GameCode)
	assert.Equal(t, ErrGameNotFound, err)
}

func TestMemoryTrackerRoundTrip(t *testing.T) {
	tracker := NewMemoryGameStateTracker()
	state, _, err := NewMatch("poker-rt", DefaultGameConfig(), testPlayers)
	require.NoError(t, err)
	require.NoError(t, tracker.Save(state.GameCode, state, 0))

	loaded, err := tracker.Load(state.GameCode)
	require.NoError(t, err)
	assert.Equal(t, state.Seats, loaded.Seats)
	assert.Equal(t, state.Phase, loaded.Phase)
	assert.Equal(t, state.RemainingDeck, loaded.RemainingDeck)

	require.NoError(t, tracker.Remove(state.GameCode))
	_, err = tracker.Load(state.GameCode)
	assert.Equal(t, ErrGameNotFound, err)
}

func TestNewGameCodeShape(t *testing.T) {
	code := NewGameCode()
	assert.Regexp(t, `^poker-[0-9a-f]{8}$`, code)
	assert.NotEqual(t, code, NewGameCode())
}
