package server

import (
	"encoding/json"
	"time"

	"github.com/lox/donkey/internal/deck"
	"github.com/lox/donkey/internal/game"
	"github.com/lox/donkey/internal/room"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type CreateRoomData struct {
	PlayerName string `json:"playerName"`
}

type JoinRoomData struct {
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
}

type PlaceDrawnCardData struct {
	Target game.Target `json:"target"`
}

type PlayPersonalCardData struct {
	Target game.Target `json:"target"`
}

type ChatData struct {
	Message string `json:"message"`
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RoomSummaryData struct {
	RoomCode   string `json:"roomCode"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	IsHost     bool   `json:"isHost"`
}

type PlayersUpdateData struct {
	Players []room.Member `json:"players"`
}

type CardDrawnData struct {
	PlayerID   string    `json:"playerId"`
	PlayerName string    `json:"playerName"`
	Card       deck.Card `json:"card"`
}

type CardPlayedData struct {
	PlayerID   string      `json:"playerId"`
	PlayerName string      `json:"playerName"`
	Card       deck.Card   `json:"card"`
	Target     game.Target `json:"target"`
}

type ChatMessageData struct {
	PlayerID   string    `json:"playerId"`
	PlayerName string    `json:"playerName"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

// Game state broadcasts (game_started, game_update, game_over) carry the full
// game.State as their payload: every player sees the complete state.
