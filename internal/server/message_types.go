package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
// These are used for client-server communication protocol
const (
	// Client to server messages
	MessageTypeCreateRoom       MessageType = "create_room"
	MessageTypeJoinRoom         MessageType = "join_room"
	MessageTypeStartGame        MessageType = "start_game"
	MessageTypeDrawCard         MessageType = "draw_card"
	MessageTypePlaceDrawnCard   MessageType = "place_drawn_card"
	MessageTypePlayPersonalCard MessageType = "play_personal_card"
	MessageTypeFlipPersonalPile MessageType = "flip_personal_pile"
	MessageTypeLeaveRoom        MessageType = "leave_room"
	MessageTypeChat             MessageType = "chat"

	// Server to client messages
	MessageTypeRoomCreated   MessageType = "room_created"
	MessageTypeRoomJoined    MessageType = "room_joined"
	MessageTypePlayersUpdate MessageType = "players_update"
	MessageTypeGameStarted   MessageType = "game_started"
	MessageTypeCardDrawn     MessageType = "card_drawn"
	MessageTypeCardPlayed    MessageType = "card_played"
	MessageTypeGameUpdate    MessageType = "game_update"
	MessageTypeGameOver      MessageType = "game_over"
	MessageTypeLeftRoom      MessageType = "left_room"
	MessageTypeChatMessage   MessageType = "chat_message"
	MessageTypeError         MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
