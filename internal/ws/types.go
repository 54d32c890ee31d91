package ws

import (
	"encoding/json"

	"github.com/Pe-ter-M/chess-backend/internal/chess"
)

// MessageType names the kinds of messages that travel over a game socket.
type MessageType string

const (
	// client to server
	MessageTypeSelect MessageType = "select"
	MessageTypeMove   MessageType = "move"
	MessageTypeReset  MessageType = "reset"

	// server to client
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message is the envelope every WebSocket frame carries.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// SelectPayload is a click on a square.
type SelectPayload struct {
	Pos chess.Position `json:"pos"`
}

// ErrorPayload carries a rejected request's reason back to the client.
type ErrorPayload struct {
	Message string `json:"message"`
}
