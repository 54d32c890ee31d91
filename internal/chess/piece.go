package chess

// Color is the side a piece or player belongs to. There is no third value.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// PieceKind is the closed set of piece types. Behavior dispatches on it
// with exhaustive switches rather than per-kind types.
type PieceKind string

const (
	King   PieceKind = "king"
	Queen  PieceKind = "queen"
	Rook   PieceKind = "rook"
	Bishop PieceKind = "bishop"
	Knight PieceKind = "knight"
	Pawn   PieceKind = "pawn"
)

// Value is the material worth of the kind. The king carries a sentinel
// value far above everything else; it never actually leaves the board.
func (k PieceKind) Value() int {
	switch k {
	case Pawn:
		return 1
	case Knight:
		return 3
	case Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	case King:
		return 100
	}
	return 0
}

func (k PieceKind) notation() string {
	switch k {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

// Piece is a single man on the board. Its square is not stored here; the
// grid owns placement and a piece lives on exactly one square.
type Piece struct {
	Color    Color     `json:"color"`
	Kind     PieceKind `json:"kind"`
	HasMoved bool      `json:"hasMoved"`
}

// Value is the signed material worth, positive for white and negative
// for black. Used by evaluation only, never by the rules.
func (p Piece) Value() int {
	if p.Color == Black {
		return -p.Kind.Value()
	}
	return p.Kind.Value()
}
