package chess

import "testing"

func TestMoveNotation(t *testing.T) {
	t.Run("opening moves", func(t *testing.T) {
		b := NewBoard()
		if got := b.MoveNotation(sq("e2"), sq("e4")); got != "e4" {
			t.Fatalf("pawn push = %q, want e4", got)
		}
		if got := b.MoveNotation(sq("g1"), sq("f3")); got != "Nf3" {
			t.Fatalf("knight move = %q, want Nf3", got)
		}
		if got := b.MoveNotation(sq("e4"), sq("e5")); got != "" {
			t.Fatalf("empty origin = %q, want empty string", got)
		}
	})

	t.Run("captures", func(t *testing.T) {
		b := NewBoard()
		mustPlay(t, b, "e2", "e4")
		mustPlay(t, b, "d7", "d5")
		if got := b.MoveNotation(sq("e4"), sq("d5")); got != "exd5" {
			t.Fatalf("pawn capture = %q, want exd5", got)
		}
		mustPlay(t, b, "e4", "d5")
		if got := b.MoveNotation(sq("d8"), sq("d5")); got != "Qxd5" {
			t.Fatalf("queen capture = %q, want Qxd5", got)
		}
	})

	t.Run("en passant shows the capture", func(t *testing.T) {
		b := NewBoard()
		mustPlay(t, b, "e2", "e4")
		mustPlay(t, b, "a7", "a6")
		mustPlay(t, b, "e4", "e5")
		mustPlay(t, b, "f7", "f5")
		if got := b.MoveNotation(sq("e5"), sq("f6")); got != "exf6" {
			t.Fatalf("en passant = %q, want exf6", got)
		}
	})

	t.Run("castles", func(t *testing.T) {
		b := castleBase(White)
		if got := b.MoveNotation(sq("e1"), sq("g1")); got != "O-O" {
			t.Fatalf("kingside = %q, want O-O", got)
		}
		if got := b.MoveNotation(sq("e1"), sq("c1")); got != "O-O-O" {
			t.Fatalf("queenside = %q, want O-O-O", got)
		}
	})
}
