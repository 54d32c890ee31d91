package chess

// InCheck reports whether color's king currently stands in some opposing
// piece's raw capture set.
func (b *Board) InCheck(c Color) bool {
	return b.isSquareAttacked(b.kingPosition(c), c)
}

// isSquareAttacked reports whether any piece opposing defender could
// capture onto pos right now. It works from raw capture sets so the
// legality filter, which depends on it, never recurses into itself.
func (b *Board) isSquareAttacked(pos Position, defender Color) bool {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			pc := b.squares[row][col].Piece
			if pc == nil || pc.Color == defender {
				continue
			}
			_, captures := b.RawMoves(Position{Row: row, Col: col})
			for _, target := range captures {
				if target == pos {
					return true
				}
			}
		}
	}
	return false
}

// leavesKingSafe simulates from->to and reports whether the mover's own
// king survives it. The board is restored exactly before returning: the
// same piece pointers end up on the same squares with flags untouched.
func (b *Board) leavesKingSafe(from, to Position) bool {
	mover := b.squares[from.Row][from.Col].Piece
	if mover == nil {
		return false
	}

	// An en passant capture removes a pawn from a third square, so the
	// simulation has to remove it too or the scan would keep a phantom
	// attacker in play.
	var epSquare Position
	var epCaptured *Piece
	if b.isEnPassantMove(from, to) {
		epSquare = Position{Row: from.Row, Col: to.Col}
		epCaptured = b.squares[epSquare.Row][epSquare.Col].Piece
		b.squares[epSquare.Row][epSquare.Col].Piece = nil
	}

	captured := b.squares[to.Row][to.Col].Piece
	b.squares[to.Row][to.Col].Piece = mover
	b.squares[from.Row][from.Col].Piece = nil

	safe := !b.InCheck(mover.Color)

	b.squares[from.Row][from.Col].Piece = mover
	b.squares[to.Row][to.Col].Piece = captured
	if epCaptured != nil {
		b.squares[epSquare.Row][epSquare.Col].Piece = epCaptured
	}
	return safe
}

// LegalMoves returns the destinations the piece at from may actually play,
// split into quiet moves and captures. Castle destinations count as quiet
// moves, en passant destinations as captures. Every candidate, special
// moves included, passes through the same simulate-and-test filter.
func (b *Board) LegalMoves(from Position) (quiet, captures []Position) {
	pc := b.PieceAt(from)
	if pc == nil {
		return nil, nil
	}
	rawQuiet, rawCaptures := b.RawMoves(from)
	if pc.Kind == King {
		rawQuiet = append(rawQuiet, b.castleDestinations(pc.Color)...)
	}
	if pc.Kind == Pawn {
		rawCaptures = append(rawCaptures, b.enPassantDestinations(from)...)
	}
	for _, to := range rawQuiet {
		if b.leavesKingSafe(from, to) {
			quiet = append(quiet, to)
		}
	}
	for _, to := range rawCaptures {
		if b.leavesKingSafe(from, to) {
			captures = append(captures, to)
		}
	}
	return quiet, captures
}

func (b *Board) isLegalDestination(from, to Position) bool {
	quiet, captures := b.LegalMoves(from)
	for _, pos := range quiet {
		if pos == to {
			return true
		}
	}
	for _, pos := range captures {
		if pos == to {
			return true
		}
	}
	return false
}

// AllLegalMoves aggregates every legal move available to color, scanning
// the grid in row-major order so the result is deterministic.
func (b *Board) AllLegalMoves(c Color) []Move {
	var moves []Move
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			from := Position{Row: row, Col: col}
			pc := b.squares[row][col].Piece
			if pc == nil || pc.Color != c {
				continue
			}
			quiet, captures := b.LegalMoves(from)
			for _, to := range quiet {
				moves = append(moves, Move{From: from, To: to})
			}
			for _, to := range captures {
				moves = append(moves, Move{From: from, To: to})
			}
		}
	}
	return moves
}

func (b *Board) hasLegalMove(c Color) bool {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			from := Position{Row: row, Col: col}
			pc := b.squares[row][col].Piece
			if pc == nil || pc.Color != c {
				continue
			}
			quiet, captures := b.LegalMoves(from)
			if len(quiet) > 0 || len(captures) > 0 {
				return true
			}
		}
	}
	return false
}

// IsCheckmate reports whether color is in check with no legal move left.
func (b *Board) IsCheckmate(c Color) bool {
	return b.InCheck(c) && !b.hasLegalMove(c)
}

// IsStalemate reports whether color has no legal move while not in check.
func (b *Board) IsStalemate(c Color) bool {
	return !b.InCheck(c) && !b.hasLegalMove(c)
}
