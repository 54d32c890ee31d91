package chess

// CastleSide distinguishes the short (kingside) from the long (queenside)
// castle.
type CastleSide string

const (
	Kingside  CastleSide = "king"
	Queenside CastleSide = "queen"
)

// CanCastle reports whether color could castle on side right now: king and
// rook unmoved on their home squares, every square between them empty, the
// king not in check and the king's transit squares not attacked. Kingside
// that is the f-file square; queenside the c- and d-file squares (the
// b-file square only has to be empty, the king never crosses it). The
// landing square goes through the regular legality filter like any other
// king move.
func (b *Board) CanCastle(c Color, side CastleSide) bool {
	row := homeRow(c)
	rookCol := 0
	betweenCols := []int{1, 2, 3}
	attackCols := []int{2, 3}
	if side == Kingside {
		rookCol = 7
		betweenCols = []int{5, 6}
		attackCols = []int{5}
	}

	king := b.squares[row][4].Piece
	if king == nil || king.Kind != King || king.Color != c || king.HasMoved {
		return false
	}
	rook := b.squares[row][rookCol].Piece
	if rook == nil || rook.Kind != Rook || rook.Color != c || rook.HasMoved {
		return false
	}
	if b.InCheck(c) {
		return false
	}
	for _, col := range betweenCols {
		if b.squares[row][col].Piece != nil {
			return false
		}
	}
	for _, col := range attackCols {
		if b.isSquareAttacked(Position{Row: row, Col: col}, c) {
			return false
		}
	}
	return true
}

// castleDestinations lists the king landing squares of the castles color
// may play, g-file for kingside and c-file for queenside.
func (b *Board) castleDestinations(c Color) []Position {
	row := homeRow(c)
	var dests []Position
	if b.CanCastle(c, Kingside) {
		dests = append(dests, Position{Row: row, Col: 6})
	}
	if b.CanCastle(c, Queenside) {
		dests = append(dests, Position{Row: row, Col: 2})
	}
	return dests
}

// executeCastle relocates king and rook as one transition and marks both
// moved. Callers vet eligibility beforehand.
func (b *Board) executeCastle(c Color, side CastleSide) {
	row := homeRow(c)
	kingTo, rookFrom, rookTo := 6, 7, 5
	if side == Queenside {
		kingTo, rookFrom, rookTo = 2, 0, 3
	}

	king := b.squares[row][4].Piece
	b.squares[row][kingTo].Piece = king
	b.squares[row][4].Piece = nil
	king.HasMoved = true

	rook := b.squares[row][rookFrom].Piece
	b.squares[row][rookTo].Piece = rook
	b.squares[row][rookFrom].Piece = nil
	rook.HasMoved = true
}
