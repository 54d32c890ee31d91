package chess

import "testing"

func TestEnPassantEligibility(t *testing.T) {
	t.Run("opens after an adjacent double step", func(t *testing.T) {
		b := NewBoard()
		mustPlay(t, b, "e2", "e4")
		mustPlay(t, b, "a7", "a6")
		mustPlay(t, b, "e4", "e5")
		mustPlay(t, b, "f7", "f5")

		dests := b.enPassantDestinations(sq("e5"))
		if len(dests) != 1 || dests[0] != sq("f6") {
			t.Fatalf("en passant destinations = %v, want [f6]", sortedNotations(dests))
		}
	})

	t.Run("closes one ply later", func(t *testing.T) {
		b := NewBoard()
		mustPlay(t, b, "e2", "e4")
		mustPlay(t, b, "a7", "a6")
		mustPlay(t, b, "e4", "e5")
		mustPlay(t, b, "f7", "f5")
		mustPlay(t, b, "h2", "h3")

		if dests := b.enPassantDestinations(sq("e5")); len(dests) != 0 {
			t.Fatalf("the window must close after an unrelated move, got %v", sortedNotations(dests))
		}
	})

	t.Run("single step does not open it", func(t *testing.T) {
		b := NewBoard()
		mustPlay(t, b, "e2", "e4")
		mustPlay(t, b, "a7", "a6")
		mustPlay(t, b, "e4", "e5")
		mustPlay(t, b, "f7", "f6")

		if dests := b.enPassantDestinations(sq("e5")); len(dests) != 0 {
			t.Fatalf("single step opened en passant: %v", sortedNotations(dests))
		}
	})

	t.Run("own double step does not open it", func(t *testing.T) {
		b := emptyBoard(White)
		place(b, White, King, "e1")
		place(b, Black, King, "e8")
		place(b, White, Pawn, "c2")
		placeMoved(b, White, Pawn, "b4")
		mustPlay(t, b, "c2", "c4")

		if dests := b.enPassantDestinations(sq("b4")); len(dests) != 0 {
			t.Fatalf("a pawn cannot take its own side en passant, got %v", sortedNotations(dests))
		}
	})

	t.Run("capturing pawn must sit on the fifth rank", func(t *testing.T) {
		b := emptyBoard(Black)
		place(b, White, King, "e1")
		place(b, Black, King, "e8")
		placeMoved(b, White, Pawn, "e4")
		place(b, Black, Pawn, "f7")
		mustPlay(t, b, "f7", "f5")

		if dests := b.enPassantDestinations(sq("e4")); len(dests) != 0 {
			t.Fatalf("a fourth rank pawn took en passant: %v", sortedNotations(dests))
		}
	})
}

func TestEnPassantCapture(t *testing.T) {
	b := NewBoard()
	mustPlay(t, b, "e2", "e4")
	mustPlay(t, b, "a7", "a6")
	mustPlay(t, b, "e4", "e5")
	mustPlay(t, b, "f7", "f5")
	mustPlay(t, b, "e5", "f6")

	if pc := b.PieceAt(sq("f6")); pc == nil || pc.Kind != Pawn || pc.Color != White {
		t.Fatalf("white pawn should stand on f6, got %+v", pc)
	}
	if b.PieceAt(sq("f5")) != nil {
		t.Fatalf("the captured pawn must leave f5")
	}
	if b.PieceAt(sq("e5")) != nil {
		t.Fatalf("e5 must be empty after the capture")
	}

	captured := b.Captured(Black)
	if len(captured) != 1 || captured[0].Kind != Pawn {
		t.Fatalf("captured black pieces = %+v, want one pawn", captured)
	}
	lm := b.LastMove()
	if lm == nil || lm.Captured == nil || lm.Captured.Kind != Pawn || lm.Captured.Color != Black {
		t.Fatalf("last move should record the captured pawn, got %+v", lm)
	}
	if lm.WasDoubleStep {
		t.Fatalf("the capture itself is not a double step")
	}
	if b.ToMove() != Black {
		t.Fatalf("turn should pass to black")
	}
}

func TestEnPassantBySecondPlayer(t *testing.T) {
	b := emptyBoard(White)
	place(b, White, King, "e1")
	place(b, Black, King, "e8")
	place(b, White, Pawn, "e2")
	placeMoved(b, Black, Pawn, "d4")

	mustPlay(t, b, "e2", "e4")

	dests := b.enPassantDestinations(sq("d4"))
	if len(dests) != 1 || dests[0] != sq("e3") {
		t.Fatalf("en passant destinations = %v, want [e3]", sortedNotations(dests))
	}
	mustPlay(t, b, "d4", "e3")

	if pc := b.PieceAt(sq("e3")); pc == nil || pc.Color != Black || pc.Kind != Pawn {
		t.Fatalf("black pawn should stand on e3, got %+v", pc)
	}
	if b.PieceAt(sq("e4")) != nil {
		t.Fatalf("the white pawn must leave e4 even though the capture passed behind it")
	}
	if got := b.Captured(White); len(got) != 1 || got[0].Kind != Pawn {
		t.Fatalf("captured white pieces = %+v, want one pawn", got)
	}
}

func TestEnPassantRefusedWhenItExposesTheKing(t *testing.T) {
	b := emptyBoard(Black)
	place(b, White, King, "b5")
	placeMoved(b, White, Pawn, "e5")
	place(b, Black, King, "h8")
	place(b, Black, Rook, "h5")
	place(b, Black, Pawn, "f7")

	mustPlay(t, b, "f7", "f5")

	// Geometric eligibility holds, only the king safety filter may refuse.
	if dests := b.enPassantDestinations(sq("e5")); len(dests) != 1 || dests[0] != sq("f6") {
		t.Fatalf("en passant destinations = %v, want [f6]", sortedNotations(dests))
	}
	_, captures := b.LegalMoves(sq("e5"))
	if containsPos(captures, sq("f6")) {
		t.Fatalf("taking en passant would clear the rank onto the king")
	}
	if err := b.Play(sq("e5"), sq("f6"), ""); err != ErrIllegalMove {
		t.Fatalf("Play = %v, want ErrIllegalMove", err)
	}
	quiet, _ := b.LegalMoves(sq("e5"))
	if !containsPos(quiet, sq("e6")) {
		t.Fatalf("the plain advance leaves f5 blocking the rank and stays legal")
	}
}
