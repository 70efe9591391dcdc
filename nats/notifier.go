package nats

import (
	"encoding/json"
	"fmt"

	natsgo "github.com/nats-io/nats.go"
	"github.com/pkg/errors"

	"pokerduel.com/server/game"
	"pokerduel.com/server/logging"
)

var natsLogger = logging.GetZeroLogger("nats::notifier", nil)

// TurnNotifier pushes whose-turn-is-it messages over NATS. The surrounding
// messaging system subscribes and forwards them to the player's device; the
// game never learns whether delivery succeeded.
type TurnNotifier struct {
	natsConn *natsgo.Conn
}

func NewTurnNotifier(natsURL string) (*TurnNotifier, error) {
	nc, err := natsgo.Connect(natsURL)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to connect to NATS server [%s]", natsURL)
	}
	natsLogger.Info().Msgf("Connected to NATS at %s", natsURL)
	return &TurnNotifier{natsConn: nc}, nil
}

// turnMessage is the wire payload for a player-turn push.
type turnMessage struct {
	GameCode string `json:"gameCode"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
}

func (t *TurnNotifier) PlayerTurn(gameCode string, actor *game.NextActor) error {
	msg := turnMessage{
		GameCode: gameCode,
		PlayerID: actor.PlayerID,
		Name:     actor.Name,
		Reason:   string(actor.Reason),
		Message:  turnText(actor),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return t.natsConn.Publish(GetPlayerTurnSubject(gameCode), data)
}

// resultMessage is the wire payload for a settled hand.
type resultMessage struct {
	GameCode    string `json:"gameCode"`
	HandNum     int32  `json:"handNum"`
	ByFold      bool   `json:"byFold"`
	Tied        bool   `json:"tied"`
	WinnerName  string `json:"winnerName,omitempty"`
	WonChips    int32  `json:"wonChips"`
	WinningHand string `json:"winningHand,omitempty"`
}

func (t *TurnNotifier) HandSettled(gameCode string, result *game.HandResult) error {
	msg := resultMessage{
		GameCode:    gameCode,
		HandNum:     result.HandNum,
		ByFold:      result.ByFold,
		Tied:        result.Tied,
		WinnerName:  result.WinnerName,
		WonChips:    result.WonChips,
		WinningHand: result.WinningHand,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return t.natsConn.Publish(GetHandResultSubject(gameCode), data)
}

func (t *TurnNotifier) Close() {
	t.natsConn.Close()
}

func turnText(actor *game.NextActor) string {
	switch actor.Reason {
	case game.ReasonTurnToDraw:
		return fmt.Sprintf("%s, your turn to draw. Discard up to 3 cards or stand pat.", actor.Name)
	case game.ReasonHandSettled:
		return fmt.Sprintf("Hand settled. %s, you are up.", actor.Name)
	default:
		return fmt.Sprintf("%s, your turn to bet: bet/call/raise/fold.", actor.Name)
	}
}
