package model

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Pe-ter-M/chess-backend/internal/chess"
	"github.com/Pe-ter-M/chess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

// Mode says who is sitting at the board.
type Mode string

const (
	ModeHumanVsHuman Mode = "human_vs_human"
	ModeHumanVsAI    Mode = "human_vs_ai"
	ModeAIVsAI       Mode = "ai_vs_ai"
)

const (
	DefaultClock   = 10 * time.Minute
	DefaultAIDepth = 3
)

var (
	ErrGameFull         = errors.New("game is full")
	ErrNotSeated        = errors.New("player is not seated at this game")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrGameOver         = errors.New("game is over")
	ErrAlreadyConnected = errors.New("player already connected to this game")
)

// Options configure a new game. Zero values mean a two human game with
// the default clock.
type Options struct {
	Mode    Mode
	AIColor chess.Color // seat the engine takes in human_vs_ai games
	AIDepth int
	Clock   time.Duration
}

// GameConnections fans game state out to everyone watching one game.
type GameConnections struct {
	mu          sync.RWMutex
	connections map[string]*websocket.Conn // playerID -> connection
}

func newGameConnections() *GameConnections {
	return &GameConnections{connections: make(map[string]*websocket.Conn)}
}

// Game couples one board session with its seats, clocks, move history
// and subscribers. All game input funnels through its Handle methods,
// which broadcast the refreshed state to every connection.
type Game struct {
	ID string

	mu          sync.Mutex
	session     *chess.Session
	mode        Mode
	aiDepth     int
	white       Player
	black       Player
	history     []MovePair
	sound       string
	clockBudget time.Duration
	whiteClock  *Clock
	blackClock  *Clock
	connections *GameConnections
}

func NewGame(id string, opts Options) *Game {
	if opts.Mode == "" {
		opts.Mode = ModeHumanVsHuman
	}
	if opts.Clock <= 0 {
		opts.Clock = DefaultClock
	}
	if opts.AIDepth <= 0 {
		opts.AIDepth = DefaultAIDepth
	}

	g := &Game{
		ID:          id,
		session:     chess.NewSession(),
		mode:        opts.Mode,
		aiDepth:     opts.AIDepth,
		clockBudget: opts.Clock,
		whiteClock:  NewClock(opts.Clock),
		blackClock:  NewClock(opts.Clock),
		connections: newGameConnections(),
	}
	switch opts.Mode {
	case ModeHumanVsAI:
		color := opts.AIColor
		if color != chess.White && color != chess.Black {
			color = chess.Black
		}
		g.seatAI(color)
	case ModeAIVsAI:
		g.seatAI(chess.White)
		g.seatAI(chess.Black)
	}
	return g
}

func (g *Game) seatAI(c chess.Color) {
	seat := Player{ID: AISeatID(c), Name: "engine", AI: true}
	if c == chess.White {
		g.white = seat
	} else {
		g.black = seat
	}
}

func (g *Game) Mode() Mode {
	return g.mode
}

func (g *Game) AIDepth() int {
	return g.aiDepth
}

// AddPlayer seats playerID on the first free color, white first. A
// player already seated keeps their seat, which is what lets them
// rejoin a resumed game.
func (g *Game) AddPlayer(playerID string) (chess.Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if playerID != "" {
		if g.white.ID == playerID {
			return chess.White, nil
		}
		if g.black.ID == playerID {
			return chess.Black, nil
		}
	}
	if g.white.ID == "" {
		g.white = Player{ID: playerID}
		return chess.White, nil
	}
	if g.black.ID == "" {
		g.black = Player{ID: playerID}
		return chess.Black, nil
	}
	return "", ErrGameFull
}

func (g *Game) seatOf(playerID string) (chess.Color, bool) {
	if playerID == "" {
		return "", false
	}
	switch playerID {
	case g.white.ID:
		return chess.White, true
	case g.black.ID:
		return chess.Black, true
	}
	return "", false
}

func (g *Game) seat(c chess.Color) Player {
	if c == chess.White {
		return g.white
	}
	return g.black
}

func (g *Game) clock(c chess.Color) *Clock {
	if c == chess.White {
		return g.whiteClock
	}
	return g.blackClock
}

// Outcome is the game's standing after the latest committed move.
func (g *Game) Outcome() chess.Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session.Outcome()
}

// AISeatToMove reports which engine seat is due to move, if any.
func (g *Game) AISeatToMove() (chess.Color, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.session.Outcome().Terminal() {
		return "", false
	}
	toMove := g.session.Board().ToMove()
	if g.seat(toMove).AI {
		return toMove, true
	}
	return "", false
}

// BoardClone hands out a private copy of the position, for engines to
// search on without touching the live game.
func (g *Game) BoardClone() *chess.Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session.Board().Clone()
}

// HandleSelect routes a square click from the seated player whose turn
// it is. Selection changes only move highlights around, so the updated
// state is broadcast but nothing is committed.
func (g *Game) HandleSelect(playerID string, pos chess.Position) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	seat, ok := g.seatOf(playerID)
	if !ok {
		return ErrNotSeated
	}
	if g.session.Outcome().Terminal() {
		return ErrGameOver
	}
	if seat != g.session.Board().ToMove() {
		return ErrNotYourTurn
	}
	g.session.HandleClick(pos)
	g.broadcastStateLocked()
	return nil
}

// HandleMove commits a move for the seated player whose turn it is,
// then swaps the clocks, extends the history and broadcasts. A pawn
// reaching the far rank without a promotion kind leaves the position
// untouched and reports the pending choice.
func (g *Game) HandleMove(playerID string, req MoveRequest) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	seat, ok := g.seatOf(playerID)
	if !ok {
		return ErrNotSeated
	}
	if g.session.Outcome().Terminal() {
		return ErrGameOver
	}
	board := g.session.Board()
	if seat != board.ToMove() {
		return ErrNotYourTurn
	}
	if ev := g.session.Select(req.From); ev != chess.EventSelected {
		return chess.ErrIllegalMove
	}
	notation := board.MoveNotation(req.From, req.To)

	switch ev := g.session.Commit(req.To, req.Promotion); ev {
	case chess.EventCommitted:
	case chess.EventPromotionRequired:
		g.broadcastStateLocked()
		return chess.ErrPromotionRequired
	default:
		return chess.ErrIllegalMove
	}

	g.clock(seat).Stop()
	last := board.LastMove()
	ply := &Ply{
		Piece:    last.Piece,
		From:     last.From,
		To:       last.To,
		Captured: last.Captured,
		Notation: notation,
	}
	if landed := board.PieceAt(last.To); landed != nil && last.Piece.Kind == chess.Pawn && landed.Kind != chess.Pawn {
		ply.Promotion = landed.Kind
	}
	g.appendHistory(seat, ply)

	outcome := g.session.Outcome()
	g.sound = moveSound(last, outcome)
	if outcome.Terminal() {
		g.clock(seat.Opponent()).Stop()
	} else {
		g.clock(seat.Opponent()).Start()
	}
	g.broadcastStateLocked()
	return nil
}

// HandleReset starts the game over: fresh position, clocks and history.
func (g *Game) HandleReset(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.seatOf(playerID); !ok {
		return ErrNotSeated
	}
	g.whiteClock.Stop()
	g.blackClock.Stop()
	g.session.Reset()
	g.history = nil
	g.sound = ""
	g.whiteClock = NewClock(g.clockBudget)
	g.blackClock = NewClock(g.clockBudget)
	g.broadcastStateLocked()
	return nil
}

func (g *Game) appendHistory(mover chess.Color, ply *Ply) {
	if mover == chess.White {
		g.history = append(g.history, MovePair{White: ply})
		return
	}
	if n := len(g.history); n > 0 && g.history[n-1].Black == nil {
		g.history[n-1].Black = ply
		return
	}
	// A restored game can open on black's move.
	g.history = append(g.history, MovePair{Black: ply})
}

func moveSound(last *chess.LastMove, outcome chess.Outcome) string {
	if outcome == chess.OutcomeWhiteCheck || outcome == chess.OutcomeBlackCheck ||
		outcome == chess.OutcomeWhiteWin || outcome == chess.OutcomeBlackWin {
		return "check"
	}
	if last.Captured != nil {
		return "capture"
	}
	if last.Piece.Kind == chess.King && (last.To.Col-last.From.Col == 2 || last.From.Col-last.To.Col == 2) {
		return "castle"
	}
	return "move"
}

// CapturedPieces are the taken pieces of each color, in capture order.
type CapturedPieces struct {
	White []chess.Piece `json:"white"`
	Black []chess.Piece `json:"black"`
}

// SeatedPlayers are the two seats as shown to clients.
type SeatedPlayers struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// GameState is the full client view of a game, broadcast after every
// accepted input.
type GameState struct {
	GameID          string             `json:"gameId"`
	Mode            Mode               `json:"mode"`
	Sound           string             `json:"sound"`
	Board           [8][8]chess.Square `json:"board"`
	ToMove          chess.Color        `json:"toMove"`
	Outcome         chess.Outcome      `json:"outcome"`
	MoveHistory     []MovePair         `json:"moveHistory"`
	Captured        CapturedPieces     `json:"capturedPieces"`
	SelectedSquare  *chess.Position    `json:"selectedSquare"`
	LegalMoves      []chess.Position   `json:"legalMoves"`
	PromotionSquare *chess.Position    `json:"promotionSquare"`
	LastMove        *chess.LastMove    `json:"lastMove"`
	Players         SeatedPlayers      `json:"players"`
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stateLocked()
}

// stateLocked builds the client view. Slices come back non-nil so the
// JSON shows [] rather than null.
func (g *Game) stateLocked() GameState {
	board := g.session.Board()
	legal := g.session.LegalDestinations()
	if legal == nil {
		legal = []chess.Position{}
	}
	history := append(make([]MovePair, 0, len(g.history)), g.history...)
	captured := CapturedPieces{
		White: append([]chess.Piece{}, board.Captured(chess.White)...),
		Black: append([]chess.Piece{}, board.Captured(chess.Black)...),
	}
	return GameState{
		GameID:          g.ID,
		Mode:            g.mode,
		Sound:           g.sound,
		Board:           board.Squares(),
		ToMove:          board.ToMove(),
		Outcome:         g.session.Outcome(),
		MoveHistory:     history,
		Captured:        captured,
		SelectedSquare:  g.session.Selected(),
		LegalMoves:      legal,
		PromotionSquare: g.session.PendingPromotion(),
		LastMove:        board.LastMove(),
		Players: SeatedPlayers{
			White: g.clientPlayer(chess.White),
			Black: g.clientPlayer(chess.Black),
		},
	}
}

func (g *Game) clientPlayer(c chess.Color) ClientPlayer {
	seat := g.seat(c)
	return ClientPlayer{
		ID:       seat.ID,
		Name:     seat.Name,
		AI:       seat.AI,
		Color:    c,
		TimeLeft: g.clock(c).TimeLeft().Milliseconds(),
	}
}

// RegisterConnection subscribes a connection to this game's state
// broadcasts. Spectators are welcome; seats only gate moves. A second
// connection under the same id is turned away so a stale tab cannot
// hijack a live one.
func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "connection already exists"),
		)
		conn.Close()
		return ErrAlreadyConnected
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	g.mu.Lock()
	g.broadcastStateLocked()
	g.mu.Unlock()
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	delete(g.connections.connections, playerID)
}

// SendError reports a rejected input to one player's socket. It takes
// g.mu so the write cannot interleave with a state broadcast.
func (g *Game) SendError(playerID, message string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.connections.mu.RLock()
	conn, ok := g.connections.connections[playerID]
	g.connections.mu.RUnlock()
	if !ok {
		return
	}

	payload, err := json.Marshal(ws.ErrorPayload{Message: message})
	if err != nil {
		return
	}
	if err := conn.WriteJSON(ws.Message{Type: ws.MessageTypeError, Payload: payload}); err != nil {
		log.Printf("game %s: send error to %s: %v", g.ID, playerID, err)
	}
}

// broadcastStateLocked pushes the current state to every subscriber.
// Callers hold g.mu, which also serializes writes to each socket.
// Connections that fail to take the write are dropped.
func (g *Game) broadcastStateLocked() {
	payload, err := json.Marshal(g.stateLocked())
	if err != nil {
		log.Printf("game %s: marshal state: %v", g.ID, err)
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: payload}

	g.connections.mu.RLock()
	conns := make(map[string]*websocket.Conn, len(g.connections.connections))
	for id, conn := range g.connections.connections {
		conns[id] = conn
	}
	g.connections.mu.RUnlock()

	var failed []string
	for id, conn := range conns {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("game %s: send state to %s: %v", g.ID, id, err)
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		g.connections.mu.Lock()
		for _, id := range failed {
			delete(g.connections.connections, id)
		}
		g.connections.mu.Unlock()
	}
}
