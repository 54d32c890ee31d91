package chess

import "errors"

// Event reports what a click or commit did to the session.
type Event string

const (
	EventNone              Event = ""
	EventSelected          Event = "selected"
	EventDeselected        Event = "deselected"
	EventCommitted         Event = "committed"
	EventPromotionRequired Event = "promotionRequired"
)

// Session turns raw square input into moves on the board it owns. One
// click selects a piece of the side to move, the next commits a move,
// deselects or reselects. Rejected input never mutates the board, it only
// moves the selection around. Not safe for concurrent use; callers
// serialize access.
type Session struct {
	board            *Board
	selected         *Position
	pendingPromotion *Position
	outcome          Outcome
}

// NewSession starts a fresh game.
func NewSession() *Session {
	return &Session{
		board:   NewBoard(),
		outcome: OutcomePlaying,
	}
}

// Board exposes the live position for reads and cloning. Mutate it
// through the session only.
func (s *Session) Board() *Board {
	return s.board
}

// Outcome is the standing after the latest committed move.
func (s *Session) Outcome() Outcome {
	return s.outcome
}

// Selected returns the currently selected origin square, nil when idle.
func (s *Session) Selected() *Position {
	if s.selected == nil {
		return nil
	}
	sel := *s.selected
	return &sel
}

// PendingPromotion returns the destination of a commit that is waiting on
// a promotion choice, nil when none is pending.
func (s *Session) PendingPromotion() *Position {
	if s.pendingPromotion == nil {
		return nil
	}
	pending := *s.pendingPromotion
	return &pending
}

// LegalDestinations lists the selected piece's playable squares, quiet
// moves first.
func (s *Session) LegalDestinations() []Position {
	if s.selected == nil {
		return nil
	}
	quiet, captures := s.board.LegalMoves(*s.selected)
	return append(quiet, captures...)
}

// Reset starts a new game: starting position, no selection, white to move.
func (s *Session) Reset() {
	s.board.Reset()
	s.selected = nil
	s.pendingPromotion = nil
	s.outcome = OutcomePlaying
}

// Select handles an origin click. Clicking a piece of the side to move
// selects it (or reselects it from any prior selection); anything else
// drops the selection. Out-of-range input is a no-op. After the game has
// ended every click is ignored.
func (s *Session) Select(pos Position) Event {
	if s.outcome.Terminal() {
		return EventNone
	}
	if !pos.InBounds() {
		return EventNone
	}
	pc := s.board.PieceAt(pos)
	switch {
	case pc != nil && pc.Color == s.board.ToMove():
		s.setSelection(pos)
		return EventSelected
	case s.selected != nil:
		s.clearSelection()
		return EventDeselected
	}
	return EventNone
}

// Commit handles a destination click for the current selection. A legal
// destination plays the move; a pawn reaching the far rank without a
// promotion kind leaves the board untouched and reports the choice is
// needed. An illegal destination falls back to the click rules: own piece
// reselects, anything else deselects.
func (s *Session) Commit(to Position, promotion PieceKind) Event {
	if s.outcome.Terminal() || s.selected == nil {
		return EventNone
	}
	if !to.InBounds() {
		return EventNone
	}
	from := *s.selected
	if to == from {
		s.clearSelection()
		return EventDeselected
	}

	err := s.board.Play(from, to, promotion)
	switch {
	case err == nil:
		s.selected = nil
		s.pendingPromotion = nil
		s.outcome = s.board.GameOutcome()
		s.refreshHighlights()
		return EventCommitted
	case errors.Is(err, ErrPromotionRequired):
		s.pendingPromotion = &to
		return EventPromotionRequired
	}

	if pc := s.board.PieceAt(to); pc != nil && pc.Color == s.board.ToMove() {
		s.setSelection(to)
		return EventSelected
	}
	s.clearSelection()
	return EventDeselected
}

// HandleClick routes a raw click through the selection machine: select
// when idle, commit or re-route when a piece is already selected. Castle
// and en passant commits work through here; promotion needs Commit with
// an explicit kind, so a far-rank click reports the pending choice.
func (s *Session) HandleClick(pos Position) Event {
	if s.selected == nil {
		return s.Select(pos)
	}
	return s.Commit(pos, "")
}

func (s *Session) setSelection(pos Position) {
	sel := pos
	s.selected = &sel
	s.pendingPromotion = nil
	s.refreshHighlights()
}

func (s *Session) clearSelection() {
	s.selected = nil
	s.pendingPromotion = nil
	s.refreshHighlights()
}

// refreshHighlights recomputes every square's render category: the
// selection, its legal quiet, capture and en passant destinations, and
// the checked king if any.
func (s *Session) refreshHighlights() {
	b := s.board
	b.clearHighlights()
	if s.selected != nil {
		from := *s.selected
		b.squares[from.Row][from.Col].Highlight = HighlightSelected
		quiet, captures := b.LegalMoves(from)
		for _, to := range quiet {
			b.squares[to.Row][to.Col].Highlight = HighlightLegal
		}
		for _, to := range captures {
			b.squares[to.Row][to.Col].Highlight = HighlightCapture
		}
		for _, to := range b.enPassantDestinations(from) {
			b.squares[to.Row][to.Col].Highlight = HighlightEnPassant
		}
	}
	for _, c := range [2]Color{White, Black} {
		if b.InCheck(c) {
			king := b.kingPosition(c)
			b.squares[king.Row][king.Col].Highlight = HighlightCheck
		}
	}
}
