package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/websocket/v2"

	"github.com/Pe-ter-M/chess-backend/internal/model"
	"github.com/Pe-ter-M/chess-backend/internal/service"
	"github.com/Pe-ter-M/chess-backend/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection runs one socket's read loop until the peer drops.
// The socket is subscribed to its game first, so the client's opening
// frame is the full game state.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		// A duplicate socket was already shut by the game; the live one
		// stays registered, so there is nothing to unregister here.
		if !errors.Is(err, model.ErrAlreadyConnected) {
			log.Printf("register connection for %s on game %s: %v", playerID, gameID, err)
			c.Close()
		}
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("game %s: read from %s: %v", gameID, playerID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.gameService.SendGameError(gameID, playerID, "malformed message")
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			wsc.gameService.SendGameError(gameID, playerID, err.Error())
		}
	}
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeSelect:
		var payload ws.SelectPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("bad select payload: %w", err)
		}
		return wsc.gameService.HandleSelect(gameID, playerID, payload.Pos)

	case ws.MessageTypeMove:
		var req model.MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return fmt.Errorf("bad move payload: %w", err)
		}
		return wsc.gameService.HandleMove(gameID, playerID, req)

	case ws.MessageTypeReset:
		return wsc.gameService.HandleReset(gameID, playerID)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
