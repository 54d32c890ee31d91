package chess

// Outcome classifies a position after a committed move.
type Outcome string

const (
	OutcomePlaying    Outcome = "playing"
	OutcomeWhiteCheck Outcome = "white_check"
	OutcomeBlackCheck Outcome = "black_check"
	OutcomeWhiteWin   Outcome = "white_win"
	OutcomeBlackWin   Outcome = "black_win"
	OutcomeStalemate  Outcome = "stalemate"
)

// Terminal reports whether the game is over.
func (o Outcome) Terminal() bool {
	switch o {
	case OutcomeWhiteWin, OutcomeBlackWin, OutcomeStalemate:
		return true
	}
	return false
}

// Winner returns the winning color of a decided game, false otherwise.
func (o Outcome) Winner() (Color, bool) {
	switch o {
	case OutcomeWhiteWin:
		return White, true
	case OutcomeBlackWin:
		return Black, true
	}
	return "", false
}

// GameOutcome derives the game's standing from the position alone, mates
// first, then stalemate for the side to move, then checks. It never
// mutates the board.
func (b *Board) GameOutcome() Outcome {
	switch {
	case b.IsCheckmate(White):
		return OutcomeBlackWin
	case b.IsCheckmate(Black):
		return OutcomeWhiteWin
	case b.IsStalemate(b.toMove):
		return OutcomeStalemate
	case b.InCheck(White):
		return OutcomeWhiteCheck
	case b.InCheck(Black):
		return OutcomeBlackCheck
	}
	return OutcomePlaying
}
