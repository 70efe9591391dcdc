package poker

import (
	"fmt"
	"strings"
)

// Card encodes a playing card in a single byte.
// High 4 bits: rank index into "23456789TJQKA" (0 = deuce, 12 = ace).
// Low 4 bits: suit bit (1 = spade, 2 = heart, 4 = diamond, 8 = club).
type Card uint8

var (
	strRanks = "23456789TJQKA"
)

var (
	charRankToIntRank = map[uint8]uint8{}
	charSuitToIntSuit = map[uint8]uint8{
		's': 1, // spades
		'h': 2, // hearts
		'd': 4, // diamonds
		'c': 8, // clubs
	}
	intSuitToCharSuit = "xshxdxxxc"
)

var (
	prettySuits = map[uint8]string{
		1: "♠", // spades
		2: "❤", // hearts
		4: "♦", // diamonds
		8: "♣", // clubs
	}
)

func init() {
	for i := range strRanks {
		charRankToIntRank[strRanks[i]] = uint8(i)
	}
}

// NewCard parses a two-character card string such as "Ah" or "Td".
func NewCard(s string) Card {
	rankInt := charRankToIntRank[s[0]]
	suitInt := charSuitToIntSuit[s[1]]
	return Card((rankInt << 4) | suitInt)
}

func NewCardFromByte(cardByte uint8) Card {
	return Card(cardByte)
}

func (c *Card) MarshalJSON() ([]byte, error) {
	return []byte("\"" + c.String() + "\""), nil
}

func (c *Card) UnmarshalJSON(b []byte) error {
	*c = NewCard(string(b[1:3]))
	return nil
}

func (c Card) String() string {
	return string(strRanks[c.Rank()]) + string(intSuitToCharSuit[c.Suit()])
}

// Rank returns the rank index 0-12 (0 = deuce, 12 = ace).
func (c Card) Rank() uint8 {
	return (uint8(c) >> 4) & 0xF
}

// RankValue returns the comparable rank 2-14 (14 = ace).
func (c Card) RankValue() int32 {
	return int32(c.Rank()) + 2
}

func (c Card) Suit() uint8 {
	return uint8(c) & 0xF
}

func (c Card) GetByte() uint8 {
	return uint8(c)
}

// Pretty renders the card with a unicode suit symbol for player-facing messages.
func (c Card) Pretty() string {
	return string(strRanks[c.Rank()]) + prettySuits[c.Suit()]
}

func CardsToString(cards []Card) string {
	var b strings.Builder
	b.Grow(32)
	fmt.Fprintf(&b, "[")
	for _, c := range cards {
		fmt.Fprintf(&b, " %s ", c.Pretty())
	}
	fmt.Fprintf(&b, "]")
	return b.String()
}

// PrettyCards returns the player-facing form of each card.
func PrettyCards(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Pretty()
	}
	return out
}

// CardCodes returns the two-character wire form of each card.
func CardCodes(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
