package chess

var (
	rookDirs   = [4]Position{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	bishopDirs = [4]Position{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs  = [8]Position{{0, 1}, {0, -1}, {1, 0}, {-1, 0}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

	knightOffsets = [8]Position{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingOffsets   = [8]Position{{0, 1}, {0, -1}, {1, 0}, {-1, 0}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// RawMoves lists the squares geometrically reachable by the piece at from,
// split into quiet relocations and captures. The sets depend only on
// occupancy: no king-safety filtering, no castling, no en passant. An
// empty or off-board from yields two empty sets.
func (b *Board) RawMoves(from Position) (quiet, captures []Position) {
	pc := b.PieceAt(from)
	if pc == nil {
		return nil, nil
	}
	switch pc.Kind {
	case Pawn:
		return b.pawnMoves(from, pc)
	case Knight:
		return b.stepMoves(from, pc, knightOffsets[:])
	case Bishop:
		return b.rayMoves(from, pc, bishopDirs[:])
	case Rook:
		return b.rayMoves(from, pc, rookDirs[:])
	case Queen:
		return b.rayMoves(from, pc, queenDirs[:])
	case King:
		return b.stepMoves(from, pc, kingOffsets[:])
	}
	return nil, nil
}

func (b *Board) pawnMoves(from Position, pc *Piece) (quiet, captures []Position) {
	dir := forward(pc.Color)
	one := from.offset(dir, 0)
	if one.InBounds() && b.PieceAt(one) == nil {
		quiet = append(quiet, one)
		two := from.offset(2*dir, 0)
		if !pc.HasMoved && two.InBounds() && b.PieceAt(two) == nil {
			quiet = append(quiet, two)
		}
	}
	for _, dCol := range [2]int{-1, 1} {
		diag := from.offset(dir, dCol)
		if !diag.InBounds() {
			continue
		}
		if target := b.PieceAt(diag); target != nil && target.Color != pc.Color {
			captures = append(captures, diag)
		}
	}
	return quiet, captures
}

// stepMoves covers the fixed-offset movers, knight and king.
func (b *Board) stepMoves(from Position, pc *Piece, offsets []Position) (quiet, captures []Position) {
	for _, off := range offsets {
		to := from.offset(off.Row, off.Col)
		if !to.InBounds() {
			continue
		}
		target := b.PieceAt(to)
		switch {
		case target == nil:
			quiet = append(quiet, to)
		case target.Color != pc.Color:
			captures = append(captures, to)
		}
	}
	return quiet, captures
}

// rayMoves walks each direction outward until the board edge or the first
// occupied square, which ends the ray and counts as a capture only when
// the occupant is hostile.
func (b *Board) rayMoves(from Position, pc *Piece, dirs []Position) (quiet, captures []Position) {
	for _, dir := range dirs {
		for to := from.offset(dir.Row, dir.Col); to.InBounds(); to = to.offset(dir.Row, dir.Col) {
			target := b.PieceAt(to)
			if target == nil {
				quiet = append(quiet, to)
				continue
			}
			if target.Color != pc.Color {
				captures = append(captures, to)
			}
			break
		}
	}
	return quiet, captures
}
