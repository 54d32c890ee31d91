package chess

import "fmt"

// Position addresses one square. Row 0 is black's home rank and row 7 is
// white's, so white pieces advance toward decreasing rows.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < 8 && p.Col >= 0 && p.Col < 8
}

func (p Position) offset(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Notation renders the square in algebraic form, a8 for (0,0) through h1
// for (7,7).
func (p Position) Notation() string {
	return fmt.Sprintf("%c%d", 'a'+p.Col, 8-p.Row)
}

func (p Position) fileNotation() string {
	return fmt.Sprintf("%c", 'a'+p.Col)
}

// forward is the row direction color's pawns advance in.
func forward(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

func homeRow(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

func promotionRow(c Color) int {
	if c == White {
		return 0
	}
	return 7
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
