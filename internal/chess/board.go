// Package chess implements the rules of chess over a plain 8x8 grid:
// move generation, check-safety filtering, castling, en passant,
// promotion and terminal-state detection.
package chess

import "fmt"

// Highlight is the render category of a square. Picking colors for the
// categories is the client's business.
type Highlight string

const (
	HighlightNone      Highlight = ""
	HighlightSelected  Highlight = "selected"
	HighlightLegal     Highlight = "legalMove"
	HighlightCapture   Highlight = "legalCapture"
	HighlightEnPassant Highlight = "enPassant"
	HighlightCheck     Highlight = "check"
)

// Square is one cell of the grid: an optional occupant plus transient
// highlight state. A piece is referenced by exactly one square at a time.
type Square struct {
	Piece     *Piece    `json:"piece"`
	Highlight Highlight `json:"highlight,omitempty"`
}

// LastMove records the single most recent committed move. One ply is all
// the rules ever need; longer history is the caller's concern.
type LastMove struct {
	Piece         Piece    `json:"piece"`
	From          Position `json:"from"`
	To            Position `json:"to"`
	WasDoubleStep bool     `json:"wasDoubleStep"`
	Captured      *Piece   `json:"captured,omitempty"`
}

func (lm *LastMove) clone() *LastMove {
	if lm == nil {
		return nil
	}
	out := *lm
	if lm.Captured != nil {
		captured := *lm.Captured
		out.Captured = &captured
	}
	return &out
}

// Move pairs an origin square with a destination square.
type Move struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Board holds a full position: the grid, whose turn it is, the one-ply
// move record and the pieces taken so far. It is not safe for concurrent
// use; callers exploring lines concurrently must work on Clones.
type Board struct {
	squares       [8][8]Square
	toMove        Color
	lastMove      *LastMove
	capturedWhite []Piece // white pieces taken by black
	capturedBlack []Piece // black pieces taken by white
}

// NewBoard returns a board in the standard starting position, white to move.
func NewBoard() *Board {
	b := &Board{}
	b.setup()
	return b
}

var backRank = [8]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func (b *Board) setup() {
	b.squares = [8][8]Square{}
	for col, kind := range backRank {
		b.squares[0][col].Piece = &Piece{Color: Black, Kind: kind}
		b.squares[7][col].Piece = &Piece{Color: White, Kind: kind}
	}
	for col := 0; col < 8; col++ {
		b.squares[1][col].Piece = &Piece{Color: Black, Kind: Pawn}
		b.squares[6][col].Piece = &Piece{Color: White, Kind: Pawn}
	}
	b.toMove = White
	b.lastMove = nil
	b.capturedWhite = nil
	b.capturedBlack = nil
}

// Reset restores the starting position for a new game.
func (b *Board) Reset() {
	b.setup()
}

// ToMove returns the side whose turn it is.
func (b *Board) ToMove() Color {
	return b.toMove
}

// PieceAt returns the occupant of pos, or nil when the square is empty or
// pos is off the board.
func (b *Board) PieceAt(pos Position) *Piece {
	if !pos.InBounds() {
		return nil
	}
	return b.squares[pos.Row][pos.Col].Piece
}

// LastMove returns a copy of the most recent committed move, nil before
// the first one.
func (b *Board) LastMove() *LastMove {
	return b.lastMove.clone()
}

// Captured lists the pieces of color that have been taken, in capture order.
func (b *Board) Captured(c Color) []Piece {
	if c == White {
		return append([]Piece(nil), b.capturedWhite...)
	}
	return append([]Piece(nil), b.capturedBlack...)
}

func (b *Board) addCaptured(p Piece) {
	if p.Color == White {
		b.capturedWhite = append(b.capturedWhite, p)
	} else {
		b.capturedBlack = append(b.capturedBlack, p)
	}
}

// Squares returns a deep copy of the grid, safe to hand to renderers and
// encoders while the live board keeps changing.
func (b *Board) Squares() [8][8]Square {
	var out [8][8]Square
	for row := range b.squares {
		for col := range b.squares[row] {
			sq := b.squares[row][col]
			if sq.Piece != nil {
				piece := *sq.Piece
				sq.Piece = &piece
			}
			out[row][col] = sq
		}
	}
	return out
}

// Clone deep-copies the whole position. Exploratory play (search, legality
// probing by outside callers) must happen on a clone, never the live board.
func (b *Board) Clone() *Board {
	clone := &Board{toMove: b.toMove}
	clone.squares = b.Squares()
	clone.lastMove = b.lastMove.clone()
	clone.capturedWhite = append([]Piece(nil), b.capturedWhite...)
	clone.capturedBlack = append([]Piece(nil), b.capturedBlack...)
	return clone
}

// kingPosition locates color's king. A board with no king of either color
// is corrupt, so this panics rather than limping on.
func (b *Board) kingPosition(c Color) Position {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			pc := b.squares[row][col].Piece
			if pc != nil && pc.Kind == King && pc.Color == c {
				return Position{Row: row, Col: col}
			}
		}
	}
	panic(fmt.Sprintf("chess: no %s king on the board", c))
}

func (b *Board) clearHighlights() {
	for row := range b.squares {
		for col := range b.squares[row] {
			b.squares[row][col].Highlight = HighlightNone
		}
	}
}

// MaterialBalance sums signed piece values over the board, positive when
// white is ahead.
func (b *Board) MaterialBalance() int {
	total := 0
	for row := range b.squares {
		for col := range b.squares[row] {
			if pc := b.squares[row][col].Piece; pc != nil {
				total += pc.Value()
			}
		}
	}
	return total
}
