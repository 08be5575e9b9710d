package game

import "errors"

// Rejections of a single requested action. None of these are fatal to the
// room: state is left exactly as it was before the attempt.
var (
	ErrInvalidPlayerCount = errors.New("games require between 2 and 6 players")
	ErrGameNotInProgress  = errors.New("game not in progress")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrNoCardsToDraw      = errors.New("no cards to draw")
	ErrAlreadyDrawn       = errors.New("drawn card must be placed first")
	ErrNothingToStage     = errors.New("no card staged to play")
	ErrIllegalPlacement   = errors.New("cannot play that card there")
	ErrStillHasDeckCards  = errors.New("still have cards to draw")
	ErrNothingToFlip      = errors.New("no personal cards to flip")
	ErrPlayerNotFound     = errors.New("player not in game")
)
