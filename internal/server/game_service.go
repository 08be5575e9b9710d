package server

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/donkey/internal/game"
	"github.com/lox/donkey/internal/room"
)

// errNameRequired rejects create/join requests without a display name
var errNameRequired = errors.New("player name required")

// GameService routes client actions to the correct room's state machine and
// broadcasts the results. Every successful mutation of shared room state is
// broadcast to all current members; rejections go only to the requester (the
// connection layer handles that from the returned error).
type GameService struct {
	server   *Server
	registry *room.Registry
	logger   *log.Logger
}

// NewGameService creates a game service backed by the given registry
func NewGameService(server *Server, registry *room.Registry, logger *log.Logger) *GameService {
	return &GameService{
		server:   server,
		registry: registry,
		logger:   logger.WithPrefix("game-service"),
	}
}

// Stats exposes the registry's operational summary
func (gs *GameService) Stats() room.Stats {
	return gs.registry.Stats()
}

// CreateRoom creates a room with the requester as host
func (gs *GameService) CreateRoom(playerID, playerName string) error {
	if playerName == "" {
		return errNameRequired
	}
	if _, ok := gs.registry.RoomForPlayer(playerID); ok {
		return room.ErrAlreadyJoined
	}

	rm := gs.registry.CreateRoom(playerID, playerName)

	gs.sendToPlayer(playerID, MessageTypeRoomCreated, RoomSummaryData{
		RoomCode:   rm.Code,
		PlayerID:   playerID,
		PlayerName: playerName,
		IsHost:     true,
	})
	gs.broadcast(rm, MessageTypePlayersUpdate, PlayersUpdateData{Players: rm.Members()})
	return nil
}

// JoinRoom seats the requester in an existing room
func (gs *GameService) JoinRoom(playerID, roomCode, playerName string) error {
	if playerName == "" {
		return errNameRequired
	}
	if _, ok := gs.registry.RoomForPlayer(playerID); ok {
		return room.ErrAlreadyJoined
	}

	rm, err := gs.registry.JoinRoom(roomCode, playerID, playerName)
	if err != nil {
		return err
	}

	gs.sendToPlayer(playerID, MessageTypeRoomJoined, RoomSummaryData{
		RoomCode:   rm.Code,
		PlayerID:   playerID,
		PlayerName: playerName,
		IsHost:     false,
	})
	gs.broadcast(rm, MessageTypePlayersUpdate, PlayersUpdateData{Players: rm.Members()})
	return nil
}

// StartGame deals a game to the requester's room. Host only.
func (gs *GameService) StartGame(playerID string) error {
	rm, ok := gs.registry.RoomForPlayer(playerID)
	if !ok {
		return room.ErrNotInRoom
	}
	if !rm.IsHost(playerID) {
		return room.ErrNotHost
	}

	rm, err := gs.registry.StartGame(rm.Code)
	if err != nil {
		return err
	}

	gs.broadcastState(rm, MessageTypeGameStarted)
	return nil
}

// Draw stages the next card for the requester and notifies the room which
// card was drawn. The turn stays with the requester pending placement.
func (gs *GameService) Draw(playerID string) error {
	rm, ok := gs.registry.RoomForPlayer(playerID)
	if !ok {
		return room.ErrNotInRoom
	}
	playerName := rm.MemberName(playerID)

	var msgs []*Message
	err := rm.Apply(func(s *game.State) error {
		card, err := s.Draw(playerID)
		if err != nil {
			return err
		}

		msgs = append(msgs, mustMessage(MessageTypeCardDrawn, CardDrawnData{
			PlayerID:   playerID,
			PlayerName: playerName,
			Card:       card,
		}))
		msgs = append(msgs, mustMessage(MessageTypeGameUpdate, s))
		return nil
	})
	if err != nil {
		return err
	}

	gs.broadcastAll(rm, msgs)
	return nil
}

// PlaceDrawnCard resolves the requester's staged card onto a target
func (gs *GameService) PlaceDrawnCard(playerID string, target game.Target) error {
	return gs.play(playerID, target, func(s *game.State) (game.PlayResult, error) {
		return s.PlaceDrawnCard(playerID, target)
	})
}

// PlayPersonalCard plays the top of the requester's personal pile onto a target
func (gs *GameService) PlayPersonalCard(playerID string, target game.Target) error {
	return gs.play(playerID, target, func(s *game.State) (game.PlayResult, error) {
		return s.PlayFromPersonalPile(playerID, target)
	})
}

// play applies a placement move and broadcasts its consequences: a play
// notification for shared-pile placements, then either the updated state or
// the final state if the move ended the game.
func (gs *GameService) play(playerID string, target game.Target, move func(*game.State) (game.PlayResult, error)) error {
	rm, ok := gs.registry.RoomForPlayer(playerID)
	if !ok {
		return room.ErrNotInRoom
	}
	playerName := rm.MemberName(playerID)

	var msgs []*Message
	err := rm.Apply(func(s *game.State) error {
		res, err := move(s)
		if err != nil {
			return err
		}

		if res.Target.Kind != game.TargetPersonal {
			msgs = append(msgs, mustMessage(MessageTypeCardPlayed, CardPlayedData{
				PlayerID:   playerID,
				PlayerName: playerName,
				Card:       res.Card,
				Target:     res.Target,
			}))
		}
		if res.GameEnded {
			msgs = append(msgs, mustMessage(MessageTypeGameOver, s))
		} else {
			msgs = append(msgs, mustMessage(MessageTypeGameUpdate, s))
		}
		return nil
	})
	if err != nil {
		return err
	}

	gs.broadcastAll(rm, msgs)
	return nil
}

// FlipPersonalPile flips the requester's personal pile back into their deck
func (gs *GameService) FlipPersonalPile(playerID string) error {
	rm, ok := gs.registry.RoomForPlayer(playerID)
	if !ok {
		return room.ErrNotInRoom
	}

	var msgs []*Message
	err := rm.Apply(func(s *game.State) error {
		if err := s.FlipPersonalPile(playerID); err != nil {
			return err
		}
		msgs = append(msgs, mustMessage(MessageTypeGameUpdate, s))
		return nil
	})
	if err != nil {
		return err
	}

	gs.broadcastAll(rm, msgs)
	return nil
}

// LeaveRoom removes the requester from their room. Remaining members get a
// membership update, and a game in progress ends for everyone.
func (gs *GameService) LeaveRoom(playerID string) error {
	rm, ok := gs.registry.RoomForPlayer(playerID)
	if !ok {
		return room.ErrNotInRoom
	}

	res, err := gs.registry.LeaveRoom(rm.Code, playerID)
	if err != nil {
		return err
	}

	gs.sendToPlayer(playerID, MessageTypeLeftRoom, struct{}{})
	gs.afterLeave(rm, res)
	return nil
}

// HandleDisconnect treats a dropped connection exactly like a leave. Called
// from the server's unregister path; errors are irrelevant during cleanup.
func (gs *GameService) HandleDisconnect(playerID string) {
	rm, ok := gs.registry.RoomForPlayer(playerID)
	if !ok {
		return
	}

	res, err := gs.registry.LeaveRoom(rm.Code, playerID)
	if err != nil {
		return
	}

	gs.logger.Info("Cleaned up disconnected player", "player", playerID, "room", rm.Code)
	gs.afterLeave(rm, res)
}

func (gs *GameService) afterLeave(rm *room.Room, res room.LeaveResult) {
	if res.RoomDeleted {
		return
	}

	gs.broadcast(rm, MessageTypePlayersUpdate, PlayersUpdateData{Players: rm.Members()})
	if res.GameEnded {
		gs.broadcastState(rm, MessageTypeGameOver)
	}
}

// Chat relays a chat line to everyone in the requester's room
func (gs *GameService) Chat(playerID, text string) error {
	rm, ok := gs.registry.RoomForPlayer(playerID)
	if !ok {
		return room.ErrNotInRoom
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	gs.broadcast(rm, MessageTypeChatMessage, ChatMessageData{
		PlayerID:   playerID,
		PlayerName: rm.MemberName(playerID),
		Message:    text,
		Timestamp:  time.Now(),
	})
	return nil
}

// broadcastState snapshots the room's game state under its lock and sends it
// to every member.
func (gs *GameService) broadcastState(rm *room.Room, messageType MessageType) {
	var msg *Message
	ok := rm.WithGame(func(s *game.State) {
		msg = mustMessage(messageType, s)
	})
	if !ok {
		return
	}
	gs.server.BroadcastToPlayers(rm.MemberIDs(), msg)
}

func (gs *GameService) broadcast(rm *room.Room, messageType MessageType, data interface{}) {
	gs.server.BroadcastToPlayers(rm.MemberIDs(), mustMessage(messageType, data))
}

func (gs *GameService) broadcastAll(rm *room.Room, msgs []*Message) {
	ids := rm.MemberIDs()
	for _, msg := range msgs {
		gs.server.BroadcastToPlayers(ids, msg)
	}
}

func (gs *GameService) sendToPlayer(playerID string, messageType MessageType, data interface{}) {
	if err := gs.server.SendToPlayer(playerID, mustMessage(messageType, data)); err != nil {
		gs.logger.Debug("Failed to send message", "player", playerID, "error", err)
	}
}

// mustMessage builds a message from data we control; marshal failures here
// are defects, not recoverable errors.
func mustMessage(messageType MessageType, data interface{}) *Message {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		panic("failed to marshal " + messageType.String() + " message: " + err.Error())
	}
	return msg
}
