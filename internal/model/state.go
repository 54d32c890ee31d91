package model

import (
	"time"

	"github.com/Pe-ter-M/chess-backend/internal/chess"
)

// SavedGame is the durable form of a game: everything needed to put the
// board, seats, clocks and history back the way they were.
type SavedGame struct {
	ID            string         `json:"id"`
	Mode          Mode           `json:"mode"`
	AIDepth       int            `json:"aiDepth,omitempty"`
	White         Player         `json:"white"`
	Black         Player         `json:"black"`
	Position      chess.Snapshot `json:"position"`
	History       []MovePair     `json:"history,omitempty"`
	CapturedWhite []chess.Piece  `json:"capturedWhite,omitempty"`
	CapturedBlack []chess.Piece  `json:"capturedBlack,omitempty"`
	WhiteTimeLeft int64          `json:"whiteTimeLeftMs"`
	BlackTimeLeft int64          `json:"blackTimeLeftMs"`
	Outcome       chess.Outcome  `json:"outcome"`
	SavedAt       time.Time      `json:"savedAt"`
}

// Save captures the game for storage.
func (g *Game) Save() SavedGame {
	g.mu.Lock()
	defer g.mu.Unlock()

	board := g.session.Board()
	return SavedGame{
		ID:            g.ID,
		Mode:          g.mode,
		AIDepth:       g.aiDepth,
		White:         g.white,
		Black:         g.black,
		Position:      board.Snapshot(),
		History:       append([]MovePair(nil), g.history...),
		CapturedWhite: board.Captured(chess.White),
		CapturedBlack: board.Captured(chess.Black),
		WhiteTimeLeft: g.whiteClock.TimeLeft().Milliseconds(),
		BlackTimeLeft: g.blackClock.TimeLeft().Milliseconds(),
		Outcome:       g.session.Outcome(),
		SavedAt:       time.Now(),
	}
}

// RestoreGame rebuilds a live game from its saved form. Clocks come
// back paused with the recorded time; they start ticking again on the
// first move.
func RestoreGame(saved SavedGame) (*Game, error) {
	g := NewGame(saved.ID, Options{Mode: saved.Mode, AIDepth: saved.AIDepth})
	if err := g.session.Restore(saved.Position); err != nil {
		return nil, err
	}
	g.session.Board().RestoreCaptured(saved.CapturedWhite, saved.CapturedBlack)
	g.white = saved.White
	g.black = saved.Black
	g.history = append([]MovePair(nil), saved.History...)
	g.whiteClock = NewClock(time.Duration(saved.WhiteTimeLeft) * time.Millisecond)
	g.blackClock = NewClock(time.Duration(saved.BlackTimeLeft) * time.Millisecond)
	return g, nil
}
