package chess

import "errors"

var (
	// ErrPromotionRequired means a pawn reached the far rank and no
	// promotion kind was supplied. The board stays untouched; commit
	// again with the chosen kind.
	ErrPromotionRequired = errors.New("promotion choice required")

	ErrWrongTurn   = errors.New("not this color's turn")
	ErrIllegalMove = errors.New("illegal move")
)

func validPromotion(k PieceKind) bool {
	switch k {
	case Queen, Rook, Bishop, Knight:
		return true
	}
	return false
}

// Play commits the move from->to for the side to move. The destination is
// validated against the piece's legal set; a rejected move leaves the
// board exactly as it was. promotion is consulted only when a pawn
// reaches the far rank, where it is mandatory.
func (b *Board) Play(from, to Position, promotion PieceKind) error {
	pc := b.PieceAt(from)
	if pc == nil {
		return ErrIllegalMove
	}
	if pc.Color != b.toMove {
		return ErrWrongTurn
	}
	if !b.isLegalDestination(from, to) {
		return ErrIllegalMove
	}
	if pc.Kind == Pawn && to.Row == promotionRow(pc.Color) {
		if promotion == "" {
			return ErrPromotionRequired
		}
		if !validPromotion(promotion) {
			return ErrIllegalMove
		}
	} else {
		promotion = ""
	}
	b.execute(from, to, promotion)
	return nil
}

// execute applies an already validated move: castle, en passant or plain
// relocation. It updates the capture lists and the one-ply move record,
// then hands the turn over unless the move delivered mate.
func (b *Board) execute(from, to Position, promotion PieceKind) {
	pc := b.squares[from.Row][from.Col].Piece
	record := LastMove{Piece: *pc, From: from, To: to}

	switch {
	case pc.Kind == King && abs(to.Col-from.Col) == 2:
		side := Queenside
		if to.Col > from.Col {
			side = Kingside
		}
		b.executeCastle(pc.Color, side)

	case b.isEnPassantMove(from, to):
		victimPos := Position{Row: from.Row, Col: to.Col}
		victim := *b.squares[victimPos.Row][victimPos.Col].Piece
		b.squares[victimPos.Row][victimPos.Col].Piece = nil
		b.addCaptured(victim)
		record.Captured = &victim

		b.squares[to.Row][to.Col].Piece = pc
		b.squares[from.Row][from.Col].Piece = nil
		pc.HasMoved = true

	default:
		if target := b.squares[to.Row][to.Col].Piece; target != nil {
			captured := *target
			b.addCaptured(captured)
			record.Captured = &captured
		}
		b.squares[to.Row][to.Col].Piece = pc
		b.squares[from.Row][from.Col].Piece = nil
		pc.HasMoved = true
		if promotion != "" {
			pc.Kind = promotion
		}
	}

	record.WasDoubleStep = record.Piece.Kind == Pawn && abs(to.Row-from.Row) == 2
	b.lastMove = &record

	// Checkmate ends the game where it stands; the turn stops advancing.
	// Stalemate still hands the turn over, that side just has nothing to
	// play.
	opponent := pc.Color.Opponent()
	if !b.IsCheckmate(opponent) {
		b.toMove = opponent
	}
}
