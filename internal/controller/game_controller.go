package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Pe-ter-M/chess-backend/internal/chess"
	"github.com/Pe-ter-M/chess-backend/internal/model"
	"github.com/Pe-ter-M/chess-backend/internal/service"
)

// matchPollTimeout bounds one matchmaking long poll. Clients are
// expected to poll again on 204.
const matchPollTimeout = 25 * time.Second

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	Mode    string `json:"mode"`
	AIColor string `json:"aiColor"`
	Depth   int    `json:"depth"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "malformed request body",
			})
		}
	}

	switch model.Mode(req.Mode) {
	case "", model.ModeHumanVsHuman, model.ModeHumanVsAI, model.ModeAIVsAI:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown game mode: " + req.Mode,
		})
	}
	switch chess.Color(req.AIColor) {
	case "", chess.White, chess.Black:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown color: " + req.AIColor,
		})
	}

	gameID, err := gc.gameService.CreateGame(service.CreateGameOptions{
		Mode:    model.Mode(req.Mode),
		AIColor: chess.Color(req.AIColor),
		Depth:   req.Depth,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, model.ErrGameFull):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch game state",
		})
	}

	return c.JSON(gameState)
}

// ResumeGame loads a saved game back into play and returns its state.
func (gc *GameController) ResumeGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	gameState, err := gc.gameService.ResumeGame(gameID)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resume game",
		})
	}

	return c.JSON(gameState)
}

func (gc *GameController) GetStats(c *fiber.Ctx) error {
	stats, err := gc.gameService.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch stats",
		})
	}
	return c.JSON(stats)
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.JoinMatchmaking(playerID); err != nil && !errors.Is(err, model.ErrAlreadyQueued) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to join matchmaking",
		})
	}

	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

func (gc *GameController) LeaveMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	gc.gameService.LeaveMatchmaking(playerID)
	return c.JSON(fiber.Map{
		"status": "left",
	})
}

// MatchmakingEvents long polls for this player's next match. It
// answers the match event as JSON, or 204 when the poll times out.
func (gc *GameController) MatchmakingEvents(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	ch := make(chan string, 1)
	gc.gameService.RegisterMatchmakingChannel(playerID, ch)
	defer gc.gameService.UnregisterMatchmakingChannel(playerID)

	select {
	case event, ok := <-ch:
		if !ok {
			// A newer poll from the same player replaced this one.
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Type("json").SendString(event)
	case <-time.After(matchPollTimeout):
		// Unregister before draining: after that no send can land,
		// so a match that squeaked in is still delivered.
		gc.gameService.UnregisterMatchmakingChannel(playerID)
		select {
		case event, ok := <-ch:
			if ok {
				return c.Type("json").SendString(event)
			}
		default:
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
