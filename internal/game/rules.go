package game

import "github.com/lox/donkey/internal/deck"

// canPlayOnStarterPile reports whether a card may be appended to its
// matching-suit starter pile: an empty pile accepts only the Ace, a non-empty
// pile accepts exactly the next rank up. Suit matching is the caller's job.
func canPlayOnStarterPile(card deck.Card, pile []deck.Card) bool {
	if len(pile) == 0 {
		return card.Rank == deck.Ace
	}
	top := pile[len(pile)-1]
	return card.Rank.Value() == top.Rank.Value()+1
}

// canPlayOnPersonalPile reports whether a card may be appended to another
// player's personal pile: the pile must already be open and the card must be
// exactly one rank above its top. Suit is irrelevant. An empty pile can never
// be opened from outside.
func canPlayOnPersonalPile(card deck.Card, pile []deck.Card) bool {
	if len(pile) == 0 {
		return false
	}
	top := pile[len(pile)-1]
	return card.Rank.Value() == top.Rank.Value()+1
}

// reversed returns a reversed copy of cards. Flipping a pile into a deck
// preserves play order: the card placed first comes back as the last draw.
func reversed(cards []deck.Card) []deck.Card {
	out := make([]deck.Card, len(cards))
	for i, c := range cards {
		out[len(cards)-1-i] = c
	}
	return out
}
