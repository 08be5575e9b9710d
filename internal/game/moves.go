package game

import "github.com/lox/donkey/internal/deck"

// PlayResult describes a successful placement so the caller can notify the
// room without re-deriving what happened.
type PlayResult struct {
	Card         deck.Card
	Target       Target
	TurnAdvanced bool
	GameEnded    bool
}

// Draw pops the tail card of the acting player's deck and stages it for a
// placement decision. If the deck is exhausted but the personal pile is not,
// the pile is first flipped back into the deck. The turn never advances on a
// draw: the same player owes a placement.
func (s *State) Draw(id string) (deck.Card, error) {
	p, err := s.requireTurn(id)
	if err != nil {
		return deck.Card{}, err
	}

	if p.Drawn != nil {
		return deck.Card{}, ErrAlreadyDrawn
	}

	if len(p.Deck) == 0 && len(p.PersonalPile) > 0 {
		p.Deck = reversed(p.PersonalPile)
		p.PersonalPile = []deck.Card{}
	}

	if len(p.Deck) == 0 {
		return deck.Card{}, ErrNoCardsToDraw
	}

	card := p.Deck[len(p.Deck)-1]
	p.Deck = p.Deck[:len(p.Deck)-1]
	p.Drawn = &card

	return card, nil
}

// PlaceDrawnCard resolves the staged card. Placing on the actor's own
// personal pile is always legal and is the only placement that advances the
// turn; starter and player placements keep the turn with the actor. On an
// illegal target nothing changes and the card stays staged, so the actor can
// retry a different target.
func (s *State) PlaceDrawnCard(id string, target Target) (PlayResult, error) {
	p, err := s.requireTurn(id)
	if err != nil {
		return PlayResult{}, err
	}

	if p.Drawn == nil {
		return PlayResult{}, ErrNothingToStage
	}
	card := *p.Drawn

	// Validate before committing so a rejection never mutates anything.
	switch target.Kind {
	case TargetPersonal:
		// Unconditionally legal.
	case TargetStarter:
		if card.Suit != target.Suit || !canPlayOnStarterPile(card, s.StarterPiles[target.Suit]) {
			return PlayResult{}, ErrIllegalPlacement
		}
	case TargetPlayer:
		tp := s.Player(target.PlayerID)
		if target.PlayerID == id || tp == nil || !canPlayOnPersonalPile(card, tp.PersonalPile) {
			return PlayResult{}, ErrIllegalPlacement
		}
	default:
		return PlayResult{}, ErrIllegalPlacement
	}

	switch target.Kind {
	case TargetPersonal:
		p.PersonalPile = append(p.PersonalPile, card)
	case TargetStarter:
		s.StarterPiles[target.Suit] = append(s.StarterPiles[target.Suit], card)
	case TargetPlayer:
		tp := s.Player(target.PlayerID)
		tp.PersonalPile = append(tp.PersonalPile, card)
	}
	p.Drawn = nil

	res := PlayResult{Card: card, Target: target, GameEnded: s.checkGameOver()}
	if !res.GameEnded && target.Kind == TargetPersonal {
		s.advanceTurn()
		res.TurnAdvanced = true
	}
	return res, nil
}

// PlayFromPersonalPile plays the top card of the actor's own personal pile
// onto a starter pile or another player's pile. The actor's own pile is not a
// valid destination, and a staged drawn card must be resolved first. A
// successful play never advances the turn: the actor keeps acting.
func (s *State) PlayFromPersonalPile(id string, target Target) (PlayResult, error) {
	p, err := s.requireTurn(id)
	if err != nil {
		return PlayResult{}, err
	}

	if p.Drawn != nil {
		return PlayResult{}, ErrAlreadyDrawn
	}
	if len(p.PersonalPile) == 0 {
		return PlayResult{}, ErrNothingToStage
	}
	card := p.PersonalPile[len(p.PersonalPile)-1]

	switch target.Kind {
	case TargetStarter:
		if card.Suit != target.Suit || !canPlayOnStarterPile(card, s.StarterPiles[target.Suit]) {
			return PlayResult{}, ErrIllegalPlacement
		}
	case TargetPlayer:
		tp := s.Player(target.PlayerID)
		if target.PlayerID == id || tp == nil || !canPlayOnPersonalPile(card, tp.PersonalPile) {
			return PlayResult{}, ErrIllegalPlacement
		}
	default:
		return PlayResult{}, ErrIllegalPlacement
	}

	p.PersonalPile = p.PersonalPile[:len(p.PersonalPile)-1]
	switch target.Kind {
	case TargetStarter:
		s.StarterPiles[target.Suit] = append(s.StarterPiles[target.Suit], card)
	case TargetPlayer:
		s.Player(target.PlayerID).PersonalPile = append(s.Player(target.PlayerID).PersonalPile, card)
	}

	return PlayResult{Card: card, Target: target, GameEnded: s.checkGameOver()}, nil
}

// FlipPersonalPile reverses the actor's personal pile back into their draw
// deck. Only legal once the deck is exhausted. The turn stays with the actor,
// who still needs to draw.
func (s *State) FlipPersonalPile(id string) error {
	p, err := s.requireTurn(id)
	if err != nil {
		return err
	}

	if len(p.Deck) > 0 {
		return ErrStillHasDeckCards
	}
	if len(p.PersonalPile) == 0 {
		return ErrNothingToFlip
	}

	p.Deck = reversed(p.PersonalPile)
	p.PersonalPile = []deck.Card{}
	return nil
}
