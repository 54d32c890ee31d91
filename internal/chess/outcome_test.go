package chess

import "testing"

func TestCheckmateOnTheDiagonal(t *testing.T) {
	b := emptyBoard(White)
	place(b, White, King, "e1")
	placeMoved(b, White, Queen, "g5")
	place(b, Black, King, "e8")
	place(b, Black, Rook, "d8")
	place(b, Black, Bishop, "f8")
	place(b, Black, Pawn, "d7")
	place(b, Black, Pawn, "e7")
	place(b, Black, Pawn, "h7")

	if got := b.GameOutcome(); got != OutcomePlaying {
		t.Fatalf("outcome before the blow = %s, want playing", got)
	}
	mustPlay(t, b, "g5", "h5")

	if !b.InCheck(Black) {
		t.Fatalf("black should be in check from h5")
	}
	if !b.IsCheckmate(Black) {
		t.Fatalf("black should be checkmated, no flight, block or capture exists")
	}
	if got := b.GameOutcome(); got != OutcomeWhiteWin {
		t.Fatalf("outcome = %s, want white_win", got)
	}
	if b.ToMove() != White {
		t.Fatalf("the turn must not advance past mate, toMove = %s", b.ToMove())
	}
	if winner, ok := OutcomeWhiteWin.Winner(); !ok || winner != White {
		t.Fatalf("Winner() = %s, %v", winner, ok)
	}
}

func TestCheckmateAgainstWhite(t *testing.T) {
	b := emptyBoard(Black)
	place(b, White, King, "e1")
	place(b, White, Rook, "d1")
	place(b, White, Bishop, "f1")
	place(b, White, Pawn, "d2")
	place(b, White, Pawn, "e2")
	place(b, White, Pawn, "h2")
	place(b, Black, King, "e8")
	placeMoved(b, Black, Queen, "g4")

	mustPlay(t, b, "g4", "h4")

	if !b.IsCheckmate(White) {
		t.Fatalf("white should be checkmated along the h4 diagonal")
	}
	if got := b.GameOutcome(); got != OutcomeBlackWin {
		t.Fatalf("outcome = %s, want black_win", got)
	}
	if b.ToMove() != Black {
		t.Fatalf("the turn must not advance past mate, toMove = %s", b.ToMove())
	}
}

func TestScholarsMate(t *testing.T) {
	b := NewBoard()
	for _, m := range []struct{ from, to string }{
		{"e2", "e4"}, {"e7", "e5"},
		{"d1", "h5"}, {"b8", "c6"},
		{"f1", "c4"}, {"g8", "f6"},
	} {
		mustPlay(t, b, m.from, m.to)
		if got := b.GameOutcome(); got != OutcomePlaying {
			t.Fatalf("after %s-%s outcome = %s, want playing", m.from, m.to, got)
		}
	}
	mustPlay(t, b, "h5", "f7")

	if got := b.GameOutcome(); got != OutcomeWhiteWin {
		t.Fatalf("outcome = %s, want white_win", got)
	}
	if got := b.Captured(Black); len(got) != 1 || got[0].Kind != Pawn {
		t.Fatalf("captured black pieces = %+v, want the f7 pawn", got)
	}
	if b.ToMove() != White {
		t.Fatalf("turn advanced past mate")
	}
	if moves := b.AllLegalMoves(Black); len(moves) != 0 {
		t.Fatalf("a mated side has no legal moves, got %d", len(moves))
	}
}

func TestStalemate(t *testing.T) {
	b := emptyBoard(White)
	place(b, Black, King, "a8")
	placeMoved(b, White, King, "b6")
	placeMoved(b, White, Queen, "c2")

	mustPlay(t, b, "c2", "c7")

	if b.InCheck(Black) {
		t.Fatalf("stalemate means no check")
	}
	if b.IsCheckmate(Black) {
		t.Fatalf("stalemate is not checkmate")
	}
	if !b.IsStalemate(Black) {
		t.Fatalf("black has no legal move and should be stalemated")
	}
	if b.ToMove() != Black {
		t.Fatalf("stalemate still hands the turn over, toMove = %s", b.ToMove())
	}
	got := b.GameOutcome()
	if got != OutcomeStalemate {
		t.Fatalf("outcome = %s, want stalemate", got)
	}
	if !got.Terminal() {
		t.Fatalf("stalemate ends the game")
	}
	if winner, ok := got.Winner(); ok {
		t.Fatalf("stalemate has no winner, got %s", winner)
	}
}

func TestCheckOutcomes(t *testing.T) {
	t.Run("white king attacked", func(t *testing.T) {
		b := emptyBoard(White)
		place(b, White, King, "e1")
		place(b, Black, King, "g8")
		placeMoved(b, Black, Rook, "e4")

		got := b.GameOutcome()
		if got != OutcomeWhiteCheck {
			t.Fatalf("outcome = %s, want white_check", got)
		}
		if got.Terminal() {
			t.Fatalf("a bare check does not end the game")
		}
	})

	t.Run("black king attacked", func(t *testing.T) {
		b := emptyBoard(Black)
		place(b, White, King, "e1")
		placeMoved(b, White, Rook, "e4")
		place(b, Black, King, "e8")

		if got := b.GameOutcome(); got != OutcomeBlackCheck {
			t.Fatalf("outcome = %s, want black_check", got)
		}
	})
}

func TestStalemateOnlyChargedToSideToMove(t *testing.T) {
	// Black would be stalemated were it black's turn, but it is white's,
	// so the game keeps going.
	b := emptyBoard(White)
	place(b, Black, King, "a8")
	placeMoved(b, White, King, "b6")
	placeMoved(b, White, Queen, "c7")

	if !b.IsStalemate(Black) {
		t.Fatalf("black taken in isolation is out of moves")
	}
	if got := b.GameOutcome(); got != OutcomePlaying {
		t.Fatalf("outcome = %s, want playing while white is to move", got)
	}
}

func TestOutcomeStrings(t *testing.T) {
	pairs := []struct {
		o    Outcome
		want string
	}{
		{OutcomePlaying, "playing"},
		{OutcomeWhiteCheck, "white_check"},
		{OutcomeBlackCheck, "black_check"},
		{OutcomeWhiteWin, "white_win"},
		{OutcomeBlackWin, "black_win"},
		{OutcomeStalemate, "stalemate"},
	}
	for _, p := range pairs {
		if string(p.o) != p.want {
			t.Fatalf("outcome literal %q, want %q", string(p.o), p.want)
		}
	}
}
