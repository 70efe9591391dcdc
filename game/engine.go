package game

import (
	"time"

	"pokerduel.com/server/logging"
	"pokerduel.com/server/poker"
)

var engineLogger = logging.GetZeroLogger("game::engine", nil)

// Seat 0, the first identity passed to NewMatch, acts first in every betting
// and draw round of every hand. The same seat receives the odd chip when a
// tied showdown splits an uneven pot.
const firstActorSeat int32 = 0

// NewMatch creates the state for a fresh match and deals the first hand.
func NewMatch(gameCode string, config GameConfig, players [2]PlayerInfo) (*GameState, *NextActor, error) {
	if players[0].ID == "" || players[1].ID == "" || players[0].ID == players[1].ID {
		return nil, nil, ErrInvalidPlayerCount
	}

	g := &GameState{
		GameCode:  gameCode,
		Config:    config,
		HandNum:   1,
		StartedAt: time.Now().UTC(),
	}
	g.Seats[0] = Seat{Player: players[0], Stack: config.StartingChips}
	g.Seats[1] = Seat{Player: players[1], Stack: config.StartingChips}

	if err := g.dealHand(); err != nil {
		return nil, nil, err
	}

	engineLogger.Info().
		Str(logging.GameCodeKey, gameCode).
		Msgf("Match started: %s vs %s (%d chips each)", players[0].Name, players[1].Name, config.StartingChips)
	return g, g.nextActor(ReasonTurnToBet), nil
}

// dealHand builds a fresh shuffled deck and deals five cards to each seat in
// seating order. Per-hand bookkeeping is reset; the hand counter is not.
func (g *GameState) dealHand() error {
	deck := poker.NewDeck(nil)
	for i := range g.Seats {
		cards, err := deck.Draw(5)
		if err != nil {
			return err
		}
		seat := &g.Seats[i]
		seat.Cards = cards
		seat.RoundBet = 0
		seat.Folded = false
		seat.Acted = false
		seat.Drawn = false
	}
	g.Pot = 0
	g.RemainingDeck = deck.Cards()
	g.Discards = nil
	g.Phase = GamePhase_FIRST_BET
	g.CurrentSeat = firstActorSeat
	return nil
}

// PlaceBet applies a bet, call, raise, or fold intent. All validation happens
// before any mutation; a returned error means the state was not touched.
func (g *GameState) PlaceBet(playerID string, action PlayerAction, amount int32) (*BetOutcome, error) {
	seatNo := g.seatIndex(playerID)
	if seatNo < 0 {
		return nil, ErrPlayerNotInGame
	}
	if g.Phase != GamePhase_FIRST_BET && g.Phase != GamePhase_SECOND_BET {
		return nil, ErrInvalidPhase
	}
	if seatNo != g.CurrentSeat {
		return nil, ErrNotPlayersTurn
	}

	seat := &g.Seats[seatNo]
	opp := &g.Seats[otherSeat(seatNo)]

	switch action {
	case ActionFold:
		seat.Folded = true
		result, err := g.settleHand(otherSeat(seatNo), true)
		if err != nil {
			return nil, err
		}
		return g.settledOutcome(result), nil

	case ActionBet, ActionRaise:
		required := opp.RoundBet + g.Config.BetIncrement
		if required < g.Config.MinBet {
			required = g.Config.MinBet
		}
		if amount < required {
			return nil, ErrBelowMinimum
		}
		// amount is the seat's new round total; only the delta moves.
		delta := amount - seat.RoundBet
		if delta > seat.Stack {
			return nil, ErrInsufficientChips
		}
		seat.Stack -= delta
		seat.RoundBet = amount
		g.Pot += delta
		seat.Acted = true
		g.CurrentSeat = otherSeat(seatNo)
		return g.bettingOutcome(), nil

	case ActionCall:
		target := opp.RoundBet
		delta := target - seat.RoundBet
		if delta > seat.Stack {
			return nil, ErrInsufficientChips
		}
		seat.Stack -= delta
		seat.RoundBet = target
		g.Pot += delta
		seat.Acted = true
		// The round closes on a matched nonzero bet, or once both seats
		// have checked.
		if target > 0 || opp.Acted {
			return g.closeBettingRound()
		}
		g.CurrentSeat = otherSeat(seatNo)
		return g.bettingOutcome(), nil

	default:
		return nil, ErrInvalidAction
	}
}

// closeBettingRound advances out of a matched betting round: first round to
// draw, second round through the transient showdown to hand settlement.
func (g *GameState) closeBettingRound() (*BetOutcome, error) {
	if g.Phase == GamePhase_FIRST_BET {
		for i := range g.Seats {
			g.Seats[i].RoundBet = 0
			g.Seats[i].Acted = false
		}
		g.Phase = GamePhase_DRAW
		g.CurrentSeat = firstActorSeat
		return g.bettingOutcome(), nil
	}

	// Showdown is transient: entered and resolved within this call, never
	// observed as a phase awaiting player action.
	g.Phase = GamePhase_SHOWDOWN
	cmp := poker.Compare(g.Seats[0].Cards, g.Seats[1].Cards)
	winner := int32(-1)
	if cmp > 0 {
		winner = 0
	} else if cmp < 0 {
		winner = 1
	}
	result, err := g.settleHand(winner, false)
	if err != nil {
		return nil, err
	}
	return g.settledOutcome(result), nil
}

// DiscardDraw replaces up to three of the seat's cards with cards from the
// remaining deck, in index order. After both seats have drawn (or stood pat
// with an empty index list) the phase advances to the second betting round.
func (g *GameState) DiscardDraw(playerID string, indices []int) (*DrawOutcome, error) {
	seatNo := g.seatIndex(playerID)
	if seatNo < 0 {
		return nil, ErrPlayerNotInGame
	}
	if g.Phase != GamePhase_DRAW {
		return nil, ErrInvalidPhase
	}
	if seatNo != g.CurrentSeat {
		return nil, ErrNotPlayersTurn
	}
	if len(indices) > 3 {
		return nil, ErrTooManyDiscards
	}
	seen := make(map[int]bool, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx > 4 || seen[idx] {
			return nil, ErrInvalidIndex
		}
		seen[idx] = true
	}

	deck := poker.DeckFromCards(g.RemainingDeck)
	drawn, err := deck.Draw(len(indices))
	if err != nil {
		return nil, err
	}

	seat := &g.Seats[seatNo]
	for i, idx := range indices {
		g.Discards = append(g.Discards, seat.Cards[idx])
		seat.Cards[idx] = drawn[i]
	}
	g.RemainingDeck = deck.Cards()
	seat.Drawn = true

	outcome := &DrawOutcome{
		CardsDrawn: len(indices),
		HandSize:   len(seat.Cards),
	}
	if g.Seats[0].Drawn && g.Seats[1].Drawn {
		g.Phase = GamePhase_SECOND_BET
		g.CurrentSeat = firstActorSeat
		outcome.Next = g.nextActor(ReasonTurnToBet)
	} else {
		g.CurrentSeat = otherSeat(seatNo)
		outcome.Next = g.nextActor(ReasonTurnToDraw)
	}
	outcome.Phase = g.Phase
	return outcome, nil
}

// settleHand awards the pot, advances the hand counter, and either finishes
// the match or deals the next hand. winnerSeat -1 means a tied showdown: the
// pot splits evenly and seat 0 takes the odd chip.
func (g *GameState) settleHand(winnerSeat int32, byFold bool) (*HandResult, error) {
	result := &HandResult{
		HandNum:    g.HandNum,
		ByFold:     byFold,
		WinnerSeat: winnerSeat,
		WonChips:   g.Pot,
	}
	if winnerSeat >= 0 {
		winner := &g.Seats[winnerSeat]
		winner.Stack += g.Pot
		result.WinnerID = winner.Player.ID
		result.WinnerName = winner.Player.Name
		if !byFold {
			result.WinningHand = poker.Evaluate(winner.Cards).Rank.String()
		}
	} else {
		result.Tied = true
		half := g.Pot / 2
		g.Seats[0].Stack += g.Pot - half
		g.Seats[1].Stack += half
	}
	g.Pot = 0
	for i := range g.Seats {
		g.Seats[i].RoundBet = 0
		g.Seats[i].Acted = false
	}

	engineLogger.Info().
		Str(logging.GameCodeKey, g.GameCode).
		Int32(logging.HandNumKey, result.HandNum).
		Msgf("Hand settled: winner seat %d won %d chips (fold=%v)", result.WinnerSeat, result.WonChips, byFold)

	g.HandNum++
	if g.HandNum > g.Config.HandsPerMatch {
		g.finishMatch()
		return result, nil
	}
	if err := g.dealHand(); err != nil {
		return nil, err
	}
	return result, nil
}

func (g *GameState) finishMatch() {
	g.Phase = GamePhase_FINISHED
	stacks := [2]int32{g.Seats[0].Stack, g.Seats[1].Stack}
	result := &MatchResult{
		Drawn:       true,
		WinnerSeat:  -1,
		FinalStacks: stacks,
	}
	if stacks[0] != stacks[1] {
		winnerSeat := int32(0)
		if stacks[1] > stacks[0] {
			winnerSeat = 1
		}
		result.Drawn = false
		result.WinnerSeat = winnerSeat
		result.WinnerID = g.Seats[winnerSeat].Player.ID
		result.WinnerName = g.Seats[winnerSeat].Player.Name
	}
	g.Result = result

	engineLogger.Info().
		Str(logging.GameCodeKey, g.GameCode).
		Msgf("Match finished. Final stacks: %d/%d", stacks[0], stacks[1])
}

// StatusFor projects the state for one player. The projection is safe to
// expose: it never includes hand contents.
func (g *GameState) StatusFor(playerID string) (*GameStatus, error) {
	if g.seatIndex(playerID) < 0 {
		return nil, ErrPlayerNotInGame
	}
	status := &GameStatus{
		GameCode:      g.GameCode,
		Phase:         g.Phase,
		Pot:           g.Pot,
		HandNum:       g.HandNum,
		HandsPerMatch: g.Config.HandsPerMatch,
		Result:        g.Result,
	}
	for i := range g.Seats {
		seat := &g.Seats[i]
		status.Players[i] = PlayerStatus{
			Name:     seat.Player.Name,
			Stack:    seat.Stack,
			RoundBet: seat.RoundBet,
			Folded:   seat.Folded,
		}
	}
	if g.Phase != GamePhase_SHOWDOWN && g.Phase != GamePhase_FINISHED {
		status.CurrentPlayer = g.Seats[g.CurrentSeat].Player.Name
	}
	return status, nil
}

// HandViewFor returns the requesting player's own cards plus public context.
func (g *GameState) HandViewFor(playerID string) (*HandView, error) {
	seatNo := g.seatIndex(playerID)
	if seatNo < 0 {
		return nil, ErrPlayerNotInGame
	}
	seat := &g.Seats[seatNo]
	view := &HandView{
		GameCode:  g.GameCode,
		Player:    seat.Player.Name,
		Cards:     poker.PrettyCards(seat.Cards),
		CardCodes: poker.CardCodes(seat.Cards),
		Stack:     seat.Stack,
		Phase:     g.Phase,
		Pot:       g.Pot,
	}
	if g.Phase != GamePhase_SHOWDOWN && g.Phase != GamePhase_FINISHED {
		view.CurrentPlayer = g.Seats[g.CurrentSeat].Player.Name
	}
	return view, nil
}

func (g *GameState) seatIndex(playerID string) int32 {
	for i := range g.Seats {
		if g.Seats[i].Player.ID == playerID {
			return int32(i)
		}
	}
	return -1
}

func otherSeat(seatNo int32) int32 {
	return 1 - seatNo
}

func (g *GameState) nextActor(reason TurnReason) *NextActor {
	seat := &g.Seats[g.CurrentSeat]
	return &NextActor{
		Seat:     g.CurrentSeat,
		PlayerID: seat.Player.ID,
		Name:     seat.Player.Name,
		Reason:   reason,
	}
}

func (g *GameState) stacks() [2]int32 {
	return [2]int32{g.Seats[0].Stack, g.Seats[1].Stack}
}

// bettingOutcome reports a turn change within a hand.
func (g *GameState) bettingOutcome() *BetOutcome {
	reason := ReasonTurnToBet
	if g.Phase == GamePhase_DRAW {
		reason = ReasonTurnToDraw
	}
	return &BetOutcome{
		Phase:  g.Phase,
		Pot:    g.Pot,
		Stacks: g.stacks(),
		Next:   g.nextActor(reason),
	}
}

// settledOutcome reports a settled hand: either the next hand's first actor
// or the end of the match.
func (g *GameState) settledOutcome(result *HandResult) *BetOutcome {
	outcome := &BetOutcome{
		Phase:      g.Phase,
		Pot:        g.Pot,
		Stacks:     g.stacks(),
		HandResult: result,
	}
	if g.Phase == GamePhase_FINISHED {
		outcome.MatchOver = true
	} else {
		outcome.Next = g.nextActor(ReasonTurnToBet)
	}
	return outcome
}
