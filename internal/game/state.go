package game

import (
	rand "math/rand/v2"

	"github.com/lox/donkey/internal/deck"
)

const (
	// MinPlayers is the minimum number of players in a game
	MinPlayers = 2
	// MaxPlayers is the maximum number of players in a game
	MaxPlayers = 6
)

// PlayerState holds one seated player's cards. Decks and piles are ordered
// slices: the draw deck pops from the tail, pile tops are the tail element.
type PlayerState struct {
	ID           string      `json:"id"`
	Deck         []deck.Card `json:"deck"`
	PersonalPile []deck.Card `json:"personalPile"`
	Drawn        *deck.Card  `json:"drawnCard,omitempty"`
}

// IsOut reports whether the player holds no cards. A staged drawn card is in
// transit and does not count toward either deck or pile.
func (p *PlayerState) IsOut() bool {
	return len(p.Deck) == 0 && len(p.PersonalPile) == 0
}

// CardCount returns the total cards held, including any staged card
func (p *PlayerState) CardCount() int {
	n := len(p.Deck) + len(p.PersonalPile)
	if p.Drawn != nil {
		n++
	}
	return n
}

// State is the authoritative state of one game. It is not safe for
// concurrent use; the owning room serializes all access.
type State struct {
	Players      []*PlayerState            `json:"players"`
	StarterPiles map[deck.Suit][]deck.Card `json:"starterPiles"`
	TurnOrder    []string                  `json:"turnOrder"`
	TurnIndex    int                       `json:"currentTurnIndex"`
	Started      bool                      `json:"gameStarted"`
	Over         bool                      `json:"gameOver"`
	Donkey       string                    `json:"donkey,omitempty"`
	OverReason   string                    `json:"reason,omitempty"`
}

// Start shuffles a full deck with the provided RNG and deals it as evenly as
// possible to the given players: floor(52/n) cards each, in turn order. Any
// remainder is deliberately never dealt. Turn order is the input order.
func Start(rng *rand.Rand, playerIDs []string) (*State, error) {
	if len(playerIDs) < MinPlayers || len(playerIDs) > MaxPlayers {
		return nil, ErrInvalidPlayerCount
	}

	cards := deck.NewOrderedDeck()
	deck.Shuffle(cards, rng)

	perPlayer := len(cards) / len(playerIDs)

	s := &State{
		Players:      make([]*PlayerState, 0, len(playerIDs)),
		StarterPiles: make(map[deck.Suit][]deck.Card, len(deck.Suits)),
		TurnOrder:    append([]string(nil), playerIDs...),
		Started:      true,
	}
	// Empty piles marshal as [] rather than null on the wire.
	for _, suit := range deck.Suits {
		s.StarterPiles[suit] = []deck.Card{}
	}

	for i, id := range playerIDs {
		hand := make([]deck.Card, perPlayer)
		copy(hand, cards[i*perPlayer:(i+1)*perPlayer])
		s.Players = append(s.Players, &PlayerState{
			ID:           id,
			Deck:         hand,
			PersonalPile: []deck.Card{},
		})
	}

	return s, nil
}

// Player returns the player state for an identity, or nil if not seated
func (s *State) Player(id string) *PlayerState {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// CurrentPlayerID returns the identity whose turn it is
func (s *State) CurrentPlayerID() string {
	return s.TurnOrder[s.TurnIndex]
}

// InProgress reports whether moves may still be applied
func (s *State) InProgress() bool {
	return s.Started && !s.Over
}

// requireTurn validates that the game accepts moves and it is id's turn,
// returning the acting player's state.
func (s *State) requireTurn(id string) (*PlayerState, error) {
	if !s.InProgress() {
		return nil, ErrGameNotInProgress
	}
	if s.CurrentPlayerID() != id {
		return nil, ErrNotYourTurn
	}
	p := s.Player(id)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	return p, nil
}

// advanceTurn moves the turn pointer to the next player in order
func (s *State) advanceTurn() {
	s.TurnIndex = (s.TurnIndex + 1) % len(s.TurnOrder)
}

// checkGameOver runs after every successful mutation. The game ends when at
// most one player still holds cards; a sole remaining holder is the donkey.
// Returns true if the game just ended.
func (s *State) checkGameOver() bool {
	var holding []*PlayerState
	for _, p := range s.Players {
		if !p.IsOut() {
			holding = append(holding, p)
		}
	}

	if len(holding) > 1 {
		return false
	}
	if len(holding) == 1 {
		s.Donkey = holding[0].ID
	}
	s.Over = true
	return true
}

// ForceOver ends the game immediately, recording why. Used when a player
// leaves or disconnects mid-game. No donkey is determined.
func (s *State) ForceOver(reason string) {
	if s.Over {
		return
	}
	s.Over = true
	s.OverReason = reason
}
