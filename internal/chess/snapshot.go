package chess

import "fmt"

// Snapshot is the serialized form of a position: the square-major grid of
// occupants plus the two fields that make it self-contained. Marshal it
// however the surrounding program stores things; every field is plain data.
type Snapshot struct {
	Squares  [8][8]*Piece `json:"squares"`
	ToMove   Color        `json:"toMove"`
	LastMove *LastMove    `json:"lastMove,omitempty"`
}

// Snapshot captures the current position. The copy shares nothing with
// the live board.
func (b *Board) Snapshot() Snapshot {
	snap := Snapshot{ToMove: b.toMove, LastMove: b.lastMove.clone()}
	for row := range b.squares {
		for col := range b.squares[row] {
			if pc := b.squares[row][col].Piece; pc != nil {
				piece := *pc
				snap.Squares[row][col] = &piece
			}
		}
	}
	return snap
}

// Restore replaces the whole position with the snapshot's. Snapshots come
// from outside the engine, so the basics are validated instead of
// trusted: a playable position names a side to move and has exactly one
// king per color. Capture lists restart empty; callers that track them
// keep their own records.
func (b *Board) Restore(snap Snapshot) error {
	if snap.ToMove != White && snap.ToMove != Black {
		return fmt.Errorf("bad side to move %q", snap.ToMove)
	}
	kings := map[Color]int{}
	for row := range snap.Squares {
		for col := range snap.Squares[row] {
			pc := snap.Squares[row][col]
			if pc == nil {
				continue
			}
			if pc.Color != White && pc.Color != Black {
				return fmt.Errorf("bad piece color %q at %s", pc.Color, Position{Row: row, Col: col}.Notation())
			}
			if pc.Kind.Value() == 0 {
				return fmt.Errorf("bad piece kind %q at %s", pc.Kind, Position{Row: row, Col: col}.Notation())
			}
			if pc.Kind == King {
				kings[pc.Color]++
			}
		}
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return fmt.Errorf("need one king per color, have %d white and %d black", kings[White], kings[Black])
	}

	b.squares = [8][8]Square{}
	for row := range snap.Squares {
		for col := range snap.Squares[row] {
			if pc := snap.Squares[row][col]; pc != nil {
				piece := *pc
				b.squares[row][col].Piece = &piece
			}
		}
	}
	b.toMove = snap.ToMove
	b.lastMove = snap.LastMove.clone()
	b.capturedWhite = nil
	b.capturedBlack = nil
	return nil
}

// RestoreCaptured reinstates the capture lists alongside Restore when a
// saved game is loaded.
func (b *Board) RestoreCaptured(white, black []Piece) {
	b.capturedWhite = append([]Piece(nil), white...)
	b.capturedBlack = append([]Piece(nil), black...)
}

// Restore loads a saved position into the session and drops any selection.
func (s *Session) Restore(snap Snapshot) error {
	if err := s.board.Restore(snap); err != nil {
		return err
	}
	s.selected = nil
	s.pendingPromotion = nil
	s.outcome = s.board.GameOutcome()
	s.refreshHighlights()
	return nil
}
