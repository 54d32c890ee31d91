package model

import "github.com/Pe-ter-M/chess-backend/internal/chess"

// MoveRequest is a client's order to move a piece. Promotion is only
// needed when the move pushes a pawn onto the far rank.
type MoveRequest struct {
	From      chess.Position  `json:"from"`
	To        chess.Position  `json:"to"`
	Promotion chess.PieceKind `json:"promotion,omitempty"`
}

// Ply is one committed half move as kept in the game history.
type Ply struct {
	Piece     chess.Piece     `json:"piece"`
	From      chess.Position  `json:"from"`
	To        chess.Position  `json:"to"`
	Captured  *chess.Piece    `json:"captured,omitempty"`
	Promotion chess.PieceKind `json:"promotion,omitempty"`
	Notation  string          `json:"notation"`
}

// MovePair groups white's ply with black's answer, the way move lists
// are printed. Black is nil while white's move is still unanswered.
type MovePair struct {
	White *Ply `json:"white,omitempty"`
	Black *Ply `json:"black,omitempty"`
}
