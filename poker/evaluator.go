package poker

import (
	"fmt"
	"sort"
)

// HandRank is the standard five-card draw hand category.
type HandRank int32

const (
	HighCard HandRank = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

var handRankToString = map[HandRank]string{
	HighCard:      "High Card",
	OnePair:       "One Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
}

func (hr HandRank) String() string {
	if s, ok := handRankToString[hr]; ok {
		return s
	}
	return fmt.Sprintf("rank(%d)", int32(hr))
}

// HandValue totally orders five-card hands. Key holds the tie-break ranks
// (2-14 values, most significant first, zero padded) for the category.
type HandValue struct {
	Rank HandRank
	Key  [5]int32
}

func (hv HandValue) String() string {
	return hv.Rank.String()
}

// Compare returns 1 if hv beats other, -1 if other beats hv, and 0 on a
// true tie (identical category and tie-break key).
func (hv HandValue) Compare(other HandValue) int {
	if hv.Rank != other.Rank {
		if hv.Rank > other.Rank {
			return 1
		}
		return -1
	}
	for i := 0; i < 5; i++ {
		if hv.Key[i] != other.Key[i] {
			if hv.Key[i] > other.Key[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// Evaluate ranks exactly five cards into a category plus tie-break key.
func Evaluate(cards []Card) HandValue {
	if len(cards) != 5 {
		panic("Only 5 card hands are supported.")
	}

	var rankCount [15]int // indexed by rank value 2..14
	flush := true
	for i, c := range cards {
		rankCount[c.RankValue()]++
		if i > 0 && c.Suit() != cards[0].Suit() {
			flush = false
		}
	}

	straightHigh := straightHighValue(rankCount)

	// Rank groups ordered by multiplicity, then rank, both descending.
	type group struct {
		value int32
		count int
	}
	var groups []group
	for v := int32(14); v >= 2; v-- {
		if rankCount[v] > 0 {
			groups = append(groups, group{value: v, count: rankCount[v]})
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].count > groups[j].count
	})

	key := func(values ...int32) [5]int32 {
		var k [5]int32
		copy(k[:], values)
		return k
	}
	flatKey := func() [5]int32 {
		var k [5]int32
		i := 0
		for _, g := range groups {
			for n := 0; n < g.count; n++ {
				k[i] = g.value
				i++
			}
		}
		return k
	}

	switch {
	case flush && straightHigh > 0:
		return HandValue{Rank: StraightFlush, Key: key(straightHigh)}
	case groups[0].count == 4:
		return HandValue{Rank: FourOfAKind, Key: key(groups[0].value, groups[1].value)}
	case groups[0].count == 3 && groups[1].count == 2:
		return HandValue{Rank: FullHouse, Key: key(groups[0].value, groups[1].value)}
	case flush:
		return HandValue{Rank: Flush, Key: flatKey()}
	case straightHigh > 0:
		return HandValue{Rank: Straight, Key: key(straightHigh)}
	case groups[0].count == 3:
		return HandValue{Rank: ThreeOfAKind, Key: key(groups[0].value, groups[1].value, groups[2].value)}
	case groups[0].count == 2 && groups[1].count == 2:
		return HandValue{Rank: TwoPair, Key: key(groups[0].value, groups[1].value, groups[2].value)}
	case groups[0].count == 2:
		return HandValue{Rank: OnePair, Key: key(groups[0].value, groups[1].value, groups[2].value, groups[3].value)}
	default:
		return HandValue{Rank: HighCard, Key: flatKey()}
	}
}

// Compare evaluates two five-card hands and returns 1, -1 or 0.
func Compare(hand1 []Card, hand2 []Card) int {
	return Evaluate(hand1).Compare(Evaluate(hand2))
}

// straightHighValue returns the high card value of a straight, or 0.
// The wheel (A-2-3-4-5) counts as a 5-high straight.
func straightHighValue(rankCount [15]int) int32 {
	run := 0
	for v := int32(14); v >= 2; v-- {
		if rankCount[v] == 0 {
			run = 0
			continue
		}
		if rankCount[v] > 1 {
			return 0
		}
		run++
		if run == 5 {
			return v + 4
		}
	}
	// Wheel: ace plays low below the deuce.
	if run == 4 && rankCount[5] > 0 && rankCount[14] > 0 {
		return 5
	}
	return 0
}
