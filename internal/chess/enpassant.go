package chess

// enPassantRank is the row color's pawns capture en passant from: the rank
// reached by their own double step, three rows into enemy territory.
func enPassantRank(c Color) int {
	if c == White {
		return 3
	}
	return 4
}

// enPassantDestinations lists the square the pawn at from may capture en
// passant into. The window is a single ply wide: the very last committed
// move must have been an enemy pawn double-stepping onto the square right
// beside this pawn.
func (b *Board) enPassantDestinations(from Position) []Position {
	pc := b.PieceAt(from)
	if pc == nil || pc.Kind != Pawn {
		return nil
	}
	lm := b.lastMove
	if lm == nil || lm.Piece.Kind != Pawn || !lm.WasDoubleStep || lm.Piece.Color == pc.Color {
		return nil
	}
	if from.Row != enPassantRank(pc.Color) {
		return nil
	}
	if lm.To.Row != from.Row || abs(lm.To.Col-from.Col) != 1 {
		return nil
	}
	to := Position{Row: from.Row + forward(pc.Color), Col: lm.To.Col}
	if !to.InBounds() || b.PieceAt(to) != nil {
		return nil
	}
	return []Position{to}
}

// isEnPassantMove reports whether from->to is an eligible en passant
// capture: the pawn lands on the empty diagonal square while the captured
// pawn is removed from the square beside its starting one.
func (b *Board) isEnPassantMove(from, to Position) bool {
	for _, dest := range b.enPassantDestinations(from) {
		if dest == to {
			return true
		}
	}
	return false
}
