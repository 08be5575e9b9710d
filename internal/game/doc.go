// Package game implements the authoritative state machine for a single game
// of donkey.
//
// The main type is State, which owns the players' decks and piles, the four
// shared starter piles, and the turn pointer. State is pure computation: it
// performs no I/O, never blocks, and reports every rejection synchronously as
// a typed error while leaving the state untouched. Callers (the room layer)
// are responsible for serializing access.
//
// # Basic Usage
//
// Start a game and apply moves:
//
//	s, err := game.Start(randutil.New(42), []string{"alice", "bob"})
//	card, err := s.Draw("alice")
//	res, err := s.PlaceDrawnCard("alice", game.PersonalTarget())
//	// res.TurnAdvanced is true, it's now bob's move
//
// # Deterministic Testing
//
// Start takes a *rand.Rand so tests can replay exact deals from a fixed
// seed. Two games started with the same seed and player list are identical.
package game
