package nats

import (
	"fmt"
)

func GetPlayerTurnSubject(gameCode string) string {
	return fmt.Sprintf("poker.%s.turn", gameCode)
}

func GetHandResultSubject(gameCode string) string {
	return fmt.Sprintf("poker.%s.result", gameCode)
}
