package model

import "github.com/Pe-ter-M/chess-backend/internal/chess"

// Player is a seat at the board. Engine seats carry the reserved
// "ai:<color>" id and the AI flag.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	AI   bool   `json:"ai,omitempty"`
}

// ClientPlayer is a seat as serialized into game state, clock included.
// TimeLeft is in milliseconds.
type ClientPlayer struct {
	ID       string      `json:"id"`
	Name     string      `json:"name,omitempty"`
	AI       bool        `json:"ai,omitempty"`
	Color    chess.Color `json:"color"`
	TimeLeft int64       `json:"timeLeft"`
}

// AISeatID is the seat id the engine plays color under.
func AISeatID(c chess.Color) string {
	return "ai:" + string(c)
}
