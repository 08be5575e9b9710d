package room

import "errors"

// Room-level rejections, reported synchronously to the requester
var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrGameAlreadyStarted = errors.New("game already started")
	ErrRoomFull           = errors.New("room is full")
	ErrAlreadyJoined      = errors.New("already in room")
	ErrNotInRoom          = errors.New("not in a room")
	ErrNotHost            = errors.New("only the host can start the game")
)
