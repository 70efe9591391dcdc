package game

import (
	"fmt"
	"time"

	"pokerduel.com/server/poker"
)

// GamePhase is the stage of the current hand within a match.
type GamePhase int32

const (
	GamePhase_FIRST_BET GamePhase = iota
	GamePhase_DRAW
	GamePhase_SECOND_BET
	GamePhase_SHOWDOWN
	GamePhase_FINISHED
)

var gamePhaseToString = map[GamePhase]string{
	GamePhase_FIRST_BET:  "awaiting-first-bet",
	GamePhase_DRAW:       "draw",
	GamePhase_SECOND_BET: "awaiting-second-bet",
	GamePhase_SHOWDOWN:   "showdown",
	GamePhase_FINISHED:   "finished",
}

var stringToGamePhase = map[string]GamePhase{}

func init() {
	for phase, str := range gamePhaseToString {
		stringToGamePhase[str] = phase
	}
}

func (p GamePhase) String() string {
	if s, ok := gamePhaseToString[p]; ok {
		return s
	}
	return fmt.Sprintf("phase(%d)", int32(p))
}

func (p *GamePhase) MarshalJSON() ([]byte, error) {
	return []byte("\"" + p.String() + "\""), nil
}

func (p *GamePhase) UnmarshalJSON(b []byte) error {
	phase, ok := stringToGamePhase[string(b[1:len(b)-1])]
	if !ok {
		return fmt.Errorf("unknown game phase %s", string(b))
	}
	*p = phase
	return nil
}

// PlayerAction is a betting-round intent.
type PlayerAction string

const (
	ActionBet   PlayerAction = "bet"
	ActionCall  PlayerAction = "call"
	ActionRaise PlayerAction = "raise"
	ActionFold  PlayerAction = "fold"
)

// TurnReason tags why a player is being told to act. Forwarded to the
// notification gateway as-is.
type TurnReason string

const (
	ReasonTurnToBet   TurnReason = "your-turn-to-bet"
	ReasonTurnToDraw  TurnReason = "your-turn-to-draw"
	ReasonHandSettled TurnReason = "hand-settled"
)

// PlayerInfo identifies one participant of a match.
type PlayerInfo struct {
	ID   string `json:"playerId"`
	Name string `json:"name"`
}

// Seat is one of the two fixed positions of a match.
type Seat struct {
	Player   PlayerInfo   `json:"player"`
	Stack    int32        `json:"stack"`
	Cards    []poker.Card `json:"cards"`
	RoundBet int32        `json:"roundBet"`
	Folded   bool         `json:"folded"`
	// Acted tracks whether the seat acted in the current betting round,
	// so a check-check round can close.
	Acted bool `json:"acted"`
	// Drawn tracks whether the seat completed (or skipped) its draw.
	Drawn bool `json:"drawn"`
}

// MatchResult is populated once the match reaches the finished phase.
type MatchResult struct {
	Drawn       bool     `json:"drawn"`
	WinnerSeat  int32    `json:"winnerSeat"` // -1 on a drawn match
	WinnerID    string   `json:"winnerId,omitempty"`
	WinnerName  string   `json:"winnerName,omitempty"`
	FinalStacks [2]int32 `json:"finalStacks"`
}

// GameState is the authoritative snapshot of one match. It is created by
// NewMatch, mutated only by engine operations, and persisted as a blob
// between player actions.
type GameState struct {
	GameCode      string       `json:"gameCode"`
	Config        GameConfig   `json:"config"`
	Seats         [2]Seat      `json:"seats"`
	Phase         GamePhase    `json:"phase"`
	CurrentSeat   int32        `json:"currentSeat"`
	Pot           int32        `json:"pot"`
	HandNum       int32        `json:"handNum"`
	RemainingDeck []poker.Card `json:"deck"`
	Discards      []poker.Card `json:"discards"`
	Result        *MatchResult `json:"result,omitempty"`
	StartedAt     time.Time    `json:"startedAt"`
}

// NextActor says whose action is awaited and why. The engine produces it as
// data; delivery to the player is the notification gateway's job.
type NextActor struct {
	Seat     int32      `json:"seat"`
	PlayerID string     `json:"playerId"`
	Name     string     `json:"name"`
	Reason   TurnReason `json:"reason"`
}

// HandResult summarizes one settled hand.
type HandResult struct {
	HandNum     int32  `json:"handNum"`
	ByFold      bool   `json:"byFold"`
	Tied        bool   `json:"tied"`
	WinnerSeat  int32  `json:"winnerSeat"` // -1 on a tie
	WinnerID    string `json:"winnerId,omitempty"`
	WinnerName  string `json:"winnerName,omitempty"`
	WonChips    int32  `json:"wonChips"`
	WinningHand string `json:"winningHand,omitempty"`
}

// BetOutcome is the structured result of a successful PlaceBet.
type BetOutcome struct {
	Phase      GamePhase   `json:"phase"`
	Pot        int32       `json:"pot"`
	Stacks     [2]int32    `json:"stacks"`
	Next       *NextActor  `json:"next,omitempty"`
	HandResult *HandResult `json:"handResult,omitempty"`
	MatchOver  bool        `json:"matchOver"`
}

// DrawOutcome is the structured result of a successful DiscardDraw.
type DrawOutcome struct {
	CardsDrawn int        `json:"cardsDrawn"`
	HandSize   int        `json:"handSize"`
	Phase      GamePhase  `json:"phase"`
	Next       *NextActor `json:"next,omitempty"`
}

// PlayerStatus is the per-seat slice of the status projection.
type PlayerStatus struct {
	Name     string `json:"name"`
	Stack    int32  `json:"stack"`
	RoundBet int32  `json:"roundBet"`
	Folded   bool   `json:"folded"`
}

// GameStatus is a projection of GameState safe to show either player.
// It never contains hand contents.
type GameStatus struct {
	GameCode      string          `json:"gameCode"`
	Phase         GamePhase       `json:"phase"`
	Pot           int32           `json:"pot"`
	HandNum       int32           `json:"handNum"`
	HandsPerMatch int32           `json:"handsPerMatch"`
	CurrentPlayer string          `json:"currentPlayer,omitempty"`
	Players       [2]PlayerStatus `json:"players"`
	Result        *MatchResult    `json:"result,omitempty"`
}

// HandView is the caller's own hand plus public context.
type HandView struct {
	GameCode      string    `json:"gameCode"`
	Player        string    `json:"player"`
	Cards         []string  `json:"cards"`     // pretty form for display
	CardCodes     []string  `json:"cardCodes"` // wire form for follow-up intents
	Stack         int32     `json:"stack"`
	Phase         GamePhase `json:"phase"`
	Pot           int32     `json:"pot"`
	CurrentPlayer string    `json:"currentPlayer,omitempty"`
}
