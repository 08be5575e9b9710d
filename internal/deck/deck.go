package deck

import rand "math/rand/v2"

// Size is the number of cards in a standard deck
const Size = 52

// NewOrderedDeck returns the 52 canonical cards in suit-major, rank-ascending
// order. The ordering is deterministic and intended only as shuffle input.
func NewOrderedDeck() []Card {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// Shuffle permutes cards in place using Fisher-Yates. The caller supplies the
// RNG so games can be replayed deterministically from a seed.
func Shuffle(cards []Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
