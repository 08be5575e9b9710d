package server

import (
	"errors"

	"github.com/lox/donkey/internal/game"
	"github.com/lox/donkey/internal/room"
)

// errorCode maps a rejection to the stable wire code sent to the requester
func errorCode(err error) string {
	switch {
	case errors.Is(err, errNameRequired):
		return "invalid_name"
	case errors.Is(err, room.ErrNotInRoom):
		return "not_in_room"
	case errors.Is(err, room.ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, room.ErrGameAlreadyStarted):
		return "game_already_started"
	case errors.Is(err, room.ErrRoomFull):
		return "room_full"
	case errors.Is(err, room.ErrAlreadyJoined):
		return "already_joined"
	case errors.Is(err, room.ErrNotHost):
		return "not_host"
	case errors.Is(err, game.ErrInvalidPlayerCount):
		return "invalid_player_count"
	case errors.Is(err, game.ErrGameNotInProgress):
		return "game_not_in_progress"
	case errors.Is(err, game.ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, game.ErrNoCardsToDraw):
		return "no_cards_to_draw"
	case errors.Is(err, game.ErrAlreadyDrawn):
		return "already_drawn"
	case errors.Is(err, game.ErrNothingToStage):
		return "nothing_to_stage"
	case errors.Is(err, game.ErrIllegalPlacement):
		return "illegal_placement"
	case errors.Is(err, game.ErrStillHasDeckCards):
		return "still_has_deck_cards"
	case errors.Is(err, game.ErrNothingToFlip):
		return "nothing_to_flip"
	default:
		return "internal_error"
	}
}
