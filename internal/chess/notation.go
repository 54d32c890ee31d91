package chess

// MoveNotation renders from->to as a short move report: castle words, the
// piece letter, a pawn file specifier and x on captures, then the landing
// square. Call it before the move is played; afterwards the origin square
// is empty. Reporting only, there is no parser.
func (b *Board) MoveNotation(from, to Position) string {
	pc := b.PieceAt(from)
	if pc == nil {
		return ""
	}
	if pc.Kind == King && abs(to.Col-from.Col) == 2 {
		if to.Col > from.Col {
			return "O-O"
		}
		return "O-O-O"
	}
	notation := pc.Kind.notation()
	if pc.Kind == Pawn && from.Col != to.Col {
		notation += from.fileNotation()
	}
	if b.PieceAt(to) != nil || b.isEnPassantMove(from, to) {
		notation += "x"
	}
	return notation + to.Notation()
}
