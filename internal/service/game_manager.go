package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/Pe-ter-M/chess-backend/internal/ai"
	"github.com/Pe-ter-M/chess-backend/internal/chess"
	"github.com/Pe-ter-M/chess-backend/internal/model"
	"github.com/Pe-ter-M/chess-backend/internal/store"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// CreateGameOptions carry a create request down to the model layer.
type CreateGameOptions struct {
	Mode    model.Mode
	AIColor chess.Color
	Depth   int
}

// GameManager keeps every live game, runs matchmaking and schedules
// engine moves. Games are persisted through the store after every
// state change so a restarted server can resume them.
type GameManager struct {
	mu               sync.RWMutex
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan string
	store            *store.Store
}

// NewGameManager starts the matchmaking loop. st may be nil, which
// disables persistence.
func NewGameManager(st *store.Store) *GameManager {
	gm := &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
		store:            st,
	}
	go gm.processMatchmaking()
	return gm
}

func (gm *GameManager) CreateGame(gameID string, opts CreateGameOptions) error {
	gm.mu.Lock()
	if _, exists := gm.games[gameID]; exists {
		gm.mu.Unlock()
		return ErrGameExists
	}
	game := model.NewGame(gameID, model.Options{
		Mode:    opts.Mode,
		AIColor: opts.AIColor,
		AIDepth: opts.Depth,
	})
	gm.games[gameID] = game
	gm.mu.Unlock()

	gm.persist(game)
	gm.maybeScheduleAI(game)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (chess.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	color, err := game.AddPlayer(playerID)
	if err != nil {
		return "", err
	}
	gm.persist(game)
	return color, nil
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) HandleSelect(gameID, playerID string, pos chess.Position) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.HandleSelect(playerID, pos)
}

func (gm *GameManager) HandleMove(gameID, playerID string, req model.MoveRequest) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	if err := game.HandleMove(playerID, req); err != nil {
		return err
	}
	gm.afterMove(game)
	return nil
}

func (gm *GameManager) HandleReset(gameID, playerID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	if err := game.HandleReset(playerID); err != nil {
		return err
	}
	gm.persist(game)
	gm.maybeScheduleAI(game)
	return nil
}

// ResumeGame brings a saved game back into the live registry. A game
// that is already live is handed back untouched.
func (gm *GameManager) ResumeGame(gameID string) (model.GameState, error) {
	gm.mu.RLock()
	game, exists := gm.games[gameID]
	gm.mu.RUnlock()
	if exists {
		return game.GetState(), nil
	}

	if gm.store == nil {
		return model.GameState{}, ErrGameNotFound
	}
	saved, err := gm.store.LoadGame(gameID)
	if errors.Is(err, store.ErrNotFound) {
		return model.GameState{}, ErrGameNotFound
	}
	if err != nil {
		return model.GameState{}, err
	}
	game, err = model.RestoreGame(saved)
	if err != nil {
		return model.GameState{}, fmt.Errorf("restore game %s: %w", gameID, err)
	}

	gm.mu.Lock()
	if existing, ok := gm.games[gameID]; ok {
		// Another request resumed it first.
		gm.mu.Unlock()
		return existing.GetState(), nil
	}
	gm.games[gameID] = game
	gm.mu.Unlock()

	gm.maybeScheduleAI(game)
	return game.GetState(), nil
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return gm.queue.Add(model.Player{ID: playerID})
}

func (gm *GameManager) LeaveMatchmaking(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.queue.Remove(playerID)
}

// RegisterMatchmakingChannel parks the player's long poll channel
// until a match shows up. A replaced channel is closed so its poll
// returns straight away.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, ok := gm.matchingChannels[playerID]; ok {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
}

// UnregisterMatchmakingChannel drops the channel without closing it.
// The poll handler that created it still selects on it.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	delete(gm.matchingChannels, playerID)
}

func (gm *GameManager) processMatchmaking() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		gm.matchWaitingPlayers()
	}
}

func (gm *GameManager) matchWaitingPlayers() {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for {
		p1, p2, ok := gm.queue.NextPair()
		if !ok {
			return
		}

		gameID := uuid.New().String()
		game := model.NewGame(gameID, model.Options{})
		c1, err := game.AddPlayer(p1.ID)
		if err != nil {
			log.Printf("matchmaking: seat %s: %v", p1.ID, err)
			continue
		}
		c2, err := game.AddPlayer(p2.ID)
		if err != nil {
			log.Printf("matchmaking: seat %s: %v", p2.ID, err)
			continue
		}
		gm.games[gameID] = game
		gm.persist(game)

		gm.notifyMatch(p1.ID, model.MatchFoundEvent{GameID: gameID, Color: c1})
		gm.notifyMatch(p2.ID, model.MatchFoundEvent{GameID: gameID, Color: c2})
	}
}

// notifyMatch hands the event to the player's waiting poll. Callers
// hold gm.mu.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		log.Printf("matchmaking: player %s has no poll open, match %s dropped", playerID, event.GameID)
		return
	}
	select {
	case ch <- mustJSON(event):
		delete(gm.matchingChannels, playerID)
		close(ch)
	default:
		log.Printf("matchmaking: player %s poll is not draining, match %s dropped", playerID, event.GameID)
	}
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID)
}

// SendGameError relays a rejection to one player's socket.
func (gm *GameManager) SendGameError(gameID, playerID, message string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.SendError(playerID, message)
}

func (gm *GameManager) Stats() (store.Stats, error) {
	if gm.store == nil {
		return store.Stats{}, nil
	}
	return gm.store.Stats()
}

// persist writes the game through to the store, when there is one.
func (gm *GameManager) persist(game *model.Game) {
	if gm.store == nil {
		return
	}
	if err := gm.store.SaveGame(game.Save()); err != nil {
		log.Printf("persist game %s: %v", game.ID, err)
	}
}

// afterMove runs the bookkeeping a committed move owes: save or
// retire the game, then wake the engine if it is due.
func (gm *GameManager) afterMove(game *model.Game) {
	outcome := game.Outcome()
	if !outcome.Terminal() {
		gm.persist(game)
		gm.maybeScheduleAI(game)
		return
	}
	if gm.store == nil {
		return
	}
	if err := gm.store.RecordOutcome(outcome); err != nil {
		log.Printf("record outcome of game %s: %v", game.ID, err)
	}
	if err := gm.store.DeleteGame(game.ID); err != nil {
		log.Printf("retire game %s: %v", game.ID, err)
	}
}

func (gm *GameManager) maybeScheduleAI(game *model.Game) {
	if _, ok := game.AISeatToMove(); ok {
		go gm.playAIMove(game)
	}
}

// playAIMove searches on a clone and feeds the result through the
// same move path a human uses. A move that went stale while the
// engine was thinking is simply dropped.
func (gm *GameManager) playAIMove(game *model.Game) {
	color, ok := game.AISeatToMove()
	if !ok {
		return
	}
	engine := ai.New(game.AIDepth())
	move, promotion, ok := engine.ChooseMove(game.BoardClone())
	if !ok {
		return
	}
	req := model.MoveRequest{From: move.From, To: move.To, Promotion: promotion}
	err := game.HandleMove(model.AISeatID(color), req)
	if errors.Is(err, model.ErrNotYourTurn) || errors.Is(err, model.ErrGameOver) {
		return
	}
	if err != nil {
		log.Printf("engine move rejected in game %s: %v", game.ID, err)
		return
	}
	gm.afterMove(game)
}

func mustJSON(v interface{}) string {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(raw)
}
