package chess

import "testing"

func clickSquares(t *testing.T, s *Session, squares ...string) {
	t.Helper()
	for _, name := range squares {
		s.HandleClick(sq(name))
	}
}

func TestSessionClickTaxonomy(t *testing.T) {
	t.Run("idle click on own piece selects", func(t *testing.T) {
		s := NewSession()
		if got := s.HandleClick(sq("e2")); got != EventSelected {
			t.Fatalf("event = %s, want selected", got)
		}
		if sel := s.Selected(); sel == nil || *sel != sq("e2") {
			t.Fatalf("selected = %v, want e2", sel)
		}
		dests := s.LegalDestinations()
		if !containsPos(dests, sq("e3")) || !containsPos(dests, sq("e4")) {
			t.Fatalf("destinations = %v, want e3 and e4", sortedNotations(dests))
		}
	})

	t.Run("idle click on empty square is a no-op", func(t *testing.T) {
		s := NewSession()
		if got := s.HandleClick(sq("e4")); got != EventNone {
			t.Fatalf("event = %s, want none", got)
		}
		if s.Selected() != nil {
			t.Fatalf("nothing should be selected")
		}
	})

	t.Run("idle click on enemy piece is a no-op", func(t *testing.T) {
		s := NewSession()
		if got := s.HandleClick(sq("e7")); got != EventNone {
			t.Fatalf("event = %s, want none", got)
		}
	})

	t.Run("clicking the selection again deselects", func(t *testing.T) {
		s := NewSession()
		clickSquares(t, s, "e2")
		if got := s.HandleClick(sq("e2")); got != EventDeselected {
			t.Fatalf("event = %s, want deselected", got)
		}
		if s.Selected() != nil {
			t.Fatalf("selection should be gone")
		}
	})

	t.Run("clicking another own piece reselects", func(t *testing.T) {
		s := NewSession()
		clickSquares(t, s, "e2")
		if got := s.HandleClick(sq("g1")); got != EventSelected {
			t.Fatalf("event = %s, want selected", got)
		}
		if sel := s.Selected(); sel == nil || *sel != sq("g1") {
			t.Fatalf("selected = %v, want g1", sel)
		}
	})

	t.Run("illegal empty destination deselects", func(t *testing.T) {
		s := NewSession()
		clickSquares(t, s, "e2")
		before := snapshotJSON(t, s.Board())
		if got := s.HandleClick(sq("e5")); got != EventDeselected {
			t.Fatalf("event = %s, want deselected", got)
		}
		if snapshotJSON(t, s.Board()) != before {
			t.Fatalf("a rejected click must not move anything")
		}
	})

	t.Run("unreachable enemy piece deselects", func(t *testing.T) {
		s := NewSession()
		clickSquares(t, s, "e2")
		if got := s.HandleClick(sq("d7")); got != EventDeselected {
			t.Fatalf("event = %s, want deselected", got)
		}
	})

	t.Run("out of range clicks are ignored", func(t *testing.T) {
		s := NewSession()
		if got := s.HandleClick(Position{Row: -1, Col: 3}); got != EventNone {
			t.Fatalf("event = %s, want none", got)
		}
		clickSquares(t, s, "e2")
		if got := s.HandleClick(Position{Row: 8, Col: 0}); got != EventNone {
			t.Fatalf("event = %s, want none", got)
		}
		if sel := s.Selected(); sel == nil || *sel != sq("e2") {
			t.Fatalf("selection should survive an out of range click")
		}
	})

	t.Run("legal destination commits", func(t *testing.T) {
		s := NewSession()
		clickSquares(t, s, "e2")
		if got := s.HandleClick(sq("e4")); got != EventCommitted {
			t.Fatalf("event = %s, want committed", got)
		}
		if s.Selected() != nil {
			t.Fatalf("commit should clear the selection")
		}
		if pc := s.Board().PieceAt(sq("e4")); pc == nil || pc.Kind != Pawn {
			t.Fatalf("pawn should stand on e4")
		}
		if s.Board().ToMove() != Black {
			t.Fatalf("turn should pass to black")
		}
	})
}

func TestSessionCapturesThroughClicks(t *testing.T) {
	s := NewSession()
	clickSquares(t, s, "e2", "e4", "d7", "d5")
	clickSquares(t, s, "e4")
	if got := s.HandleClick(sq("d5")); got != EventCommitted {
		t.Fatalf("event = %s, want committed", got)
	}
	if got := s.Board().Captured(Black); len(got) != 1 || got[0].Kind != Pawn {
		t.Fatalf("captured black pieces = %+v, want one pawn", got)
	}
}

func TestSessionHighlights(t *testing.T) {
	t.Run("selection and destinations", func(t *testing.T) {
		s := NewSession()
		clickSquares(t, s, "e2", "e4", "d7", "d5")
		clickSquares(t, s, "e4")

		squares := s.Board().Squares()
		if got := squares[sq("e4").Row][sq("e4").Col].Highlight; got != HighlightSelected {
			t.Fatalf("e4 highlight = %q, want selected", got)
		}
		if got := squares[sq("e5").Row][sq("e5").Col].Highlight; got != HighlightLegal {
			t.Fatalf("e5 highlight = %q, want legalMove", got)
		}
		if got := squares[sq("d5").Row][sq("d5").Col].Highlight; got != HighlightCapture {
			t.Fatalf("d5 highlight = %q, want legalCapture", got)
		}
	})

	t.Run("en passant square gets its own category", func(t *testing.T) {
		s := NewSession()
		clickSquares(t, s, "e2", "e4", "a7", "a6", "e4", "e5", "f7", "f5")
		clickSquares(t, s, "e5")

		squares := s.Board().Squares()
		if got := squares[sq("f6").Row][sq("f6").Col].Highlight; got != HighlightEnPassant {
			t.Fatalf("f6 highlight = %q, want enPassant", got)
		}
		if got := squares[sq("e6").Row][sq("e6").Col].Highlight; got != HighlightLegal {
			t.Fatalf("e6 highlight = %q, want legalMove", got)
		}
	})

	t.Run("checked king is flagged after the commit", func(t *testing.T) {
		s := NewSession()
		clickSquares(t, s, "e2", "e4", "f7", "f5", "d1", "h5")

		if got := s.Outcome(); got != OutcomeBlackCheck {
			t.Fatalf("outcome = %s, want black_check", got)
		}
		squares := s.Board().Squares()
		if got := squares[sq("e8").Row][sq("e8").Col].Highlight; got != HighlightCheck {
			t.Fatalf("e8 highlight = %q, want check", got)
		}
	})

	t.Run("deselect clears every highlight", func(t *testing.T) {
		s := NewSession()
		clickSquares(t, s, "e2", "e2")
		for _, row := range s.Board().Squares() {
			for _, square := range row {
				if square.Highlight != HighlightNone {
					t.Fatalf("leftover highlight %q", square.Highlight)
				}
			}
		}
	})
}

func TestSessionPromotionGate(t *testing.T) {
	s := NewSession()
	s.board = emptyBoard(White)
	place(s.board, White, King, "h1")
	place(s.board, Black, King, "a5")
	placeMoved(s.board, White, Pawn, "e7")

	clickSquares(t, s, "e7")
	if got := s.HandleClick(sq("e8")); got != EventPromotionRequired {
		t.Fatalf("event = %s, want promotionRequired", got)
	}
	if pc := s.Board().PieceAt(sq("e7")); pc == nil || pc.Kind != Pawn {
		t.Fatalf("the pawn must stay on e7 until the kind is chosen")
	}
	if pending := s.PendingPromotion(); pending == nil || *pending != sq("e8") {
		t.Fatalf("pending promotion = %v, want e8", pending)
	}
	if sel := s.Selected(); sel == nil || *sel != sq("e7") {
		t.Fatalf("selection must survive the promotion prompt")
	}

	if got := s.Commit(sq("e8"), Queen); got != EventCommitted {
		t.Fatalf("event = %s, want committed", got)
	}
	pc := s.Board().PieceAt(sq("e8"))
	if pc == nil || pc.Kind != Queen || pc.Color != White || !pc.HasMoved {
		t.Fatalf("e8 = %+v, want a moved white queen", pc)
	}
	if s.PendingPromotion() != nil {
		t.Fatalf("pending promotion should be cleared")
	}
	if s.Board().ToMove() != Black {
		t.Fatalf("turn should pass to black after the promotion")
	}
}

func TestSessionReselectDropsPendingPromotion(t *testing.T) {
	s := NewSession()
	s.board = emptyBoard(White)
	place(s.board, White, King, "h1")
	place(s.board, Black, King, "a5")
	placeMoved(s.board, White, Pawn, "e7")
	placeMoved(s.board, White, Rook, "b2")

	clickSquares(t, s, "e7", "e8")
	if s.PendingPromotion() == nil {
		t.Fatalf("promotion should be pending")
	}
	if got := s.HandleClick(sq("b2")); got != EventSelected {
		t.Fatalf("event = %s, want selected", got)
	}
	if s.PendingPromotion() != nil {
		t.Fatalf("reselecting must drop the pending promotion")
	}
}

func TestSessionFreezesAfterMate(t *testing.T) {
	s := NewSession()
	clickSquares(t, s,
		"e2", "e4", "e7", "e5",
		"d1", "h5", "b8", "c6",
		"f1", "c4", "g8", "f6",
		"h5", "f7",
	)
	if got := s.Outcome(); got != OutcomeWhiteWin {
		t.Fatalf("outcome = %s, want white_win", got)
	}
	for _, square := range []string{"e1", "d8", "f7", "a2"} {
		if got := s.HandleClick(sq(square)); got != EventNone {
			t.Fatalf("click on %s after mate = %s, want none", square, got)
		}
	}
	if s.Selected() != nil {
		t.Fatalf("no selection may form after the game ends")
	}
}

func TestSessionReset(t *testing.T) {
	s := NewSession()
	clickSquares(t, s, "e2", "e4", "d7", "d5", "e4", "d5")
	clickSquares(t, s, "d8")
	s.Reset()

	if s.Outcome() != OutcomePlaying {
		t.Fatalf("outcome after reset = %s, want playing", s.Outcome())
	}
	if s.Selected() != nil || s.PendingPromotion() != nil {
		t.Fatalf("reset must clear selection state")
	}
	if snapshotJSON(t, s.Board()) != snapshotJSON(t, NewBoard()) {
		t.Fatalf("reset must restore the starting position")
	}
	if len(s.Board().Captured(White))+len(s.Board().Captured(Black)) != 0 {
		t.Fatalf("reset must clear the capture lists")
	}
}

func TestSessionCommitWhileIdle(t *testing.T) {
	s := NewSession()
	if got := s.Commit(sq("e4"), ""); got != EventNone {
		t.Fatalf("commit without a selection = %s, want none", got)
	}
}
