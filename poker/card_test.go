package poker

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	testCases := []struct {
		str       string
		rankValue int32
		suit      uint8
	}{
		{"2s", 2, 1},
		{"5h", 5, 2},
		{"9d", 9, 4},
		{"Tc", 10, 8},
		{"Jh", 11, 2},
		{"Qd", 12, 4},
		{"Ks", 13, 1},
		{"Ah", 14, 2},
	}

	for _, tc := range testCases {
		card := NewCard(tc.str)
		assert.Equal(t, tc.str, card.String(), "string round trip for %s", tc.str)
		assert.Equal(t, tc.rankValue, card.RankValue(), "rank value for %s", tc.str)
		assert.Equal(t, tc.suit, card.Suit(), "suit for %s", tc.str)
	}
}

func TestCardByteRoundTrip(t *testing.T) {
	for _, str := range []string{"2s", "7c", "Td", "Ah"} {
		card := NewCard(str)
		assert.Equal(t, card, NewCardFromByte(card.GetByte()))
	}
}

func TestCardJSON(t *testing.T) {
	hand := []Card{NewCard("Ah"), NewCard("Td"), NewCard("2c")}
	data, err := json.Marshal(hand)
	require.NoError(t, err)
	assert.Equal(t, `["Ah","Td","2c"]`, string(data))

	var decoded []Card
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, hand, decoded)
}

func TestPrettyCards(t *testing.T) {
	pretty := PrettyCards([]Card{NewCard("As"), NewCard("Th")})
	assert.Equal(t, []string{"A♠", "T❤"}, pretty)
}
