// Package ai picks moves for engine seats by minimax search with
// alpha-beta pruning. The search works on board clones, so a live game
// is never touched while the engine thinks.
package ai

import "github.com/Pe-ter-M/chess-backend/internal/chess"

const (
	mateScore = 100000
	infScore  = 1 << 30
)

// Engine searches Depth plies deep. It is deterministic: among equal
// scores the first move in scan order wins, so the same position always
// produces the same move.
type Engine struct {
	Depth int
}

func New(depth int) *Engine {
	if depth < 1 {
		depth = 1
	}
	return &Engine{Depth: depth}
}

// ChooseMove returns the engine's move for the side to move, plus the
// promotion kind when the move needs one. ok is false when the game is
// over and nothing is left to play.
func (e *Engine) ChooseMove(b *chess.Board) (chess.Move, chess.PieceKind, bool) {
	if b.GameOutcome().Terminal() {
		return chess.Move{}, "", false
	}
	mover := b.ToMove()
	moves := b.AllLegalMoves(mover)
	if len(moves) == 0 {
		return chess.Move{}, "", false
	}

	best := moves[0]
	bestPromotion := promotionFor(b, moves[0])
	bestScore := -infScore
	alpha, beta := -infScore, infScore

	for _, m := range moves {
		promotion := promotionFor(b, m)
		probe := b.Clone()
		if err := probe.Play(m.From, m.To, promotion); err != nil {
			continue
		}
		score := e.search(probe, e.Depth-1, alpha, beta, mover)
		if score > bestScore {
			bestScore, best, bestPromotion = score, m, promotion
		}
		if score > alpha {
			alpha = score
		}
	}
	return best, bestPromotion, true
}

// search scores a position from mover's point of view. depth is the
// remaining lookahead; mates found earlier keep a higher score so the
// engine goes for the fastest one.
func (e *Engine) search(b *chess.Board, depth, alpha, beta int, mover chess.Color) int {
	outcome := b.GameOutcome()
	switch outcome {
	case chess.OutcomeWhiteWin, chess.OutcomeBlackWin:
		winner, _ := outcome.Winner()
		if winner == mover {
			return mateScore + depth
		}
		return -(mateScore + depth)
	case chess.OutcomeStalemate:
		return 0
	}
	if depth <= 0 {
		return e.evaluate(b, mover)
	}

	turn := b.ToMove()
	moves := b.AllLegalMoves(turn)
	if turn == mover {
		best := -infScore
		for _, m := range moves {
			probe := b.Clone()
			if err := probe.Play(m.From, m.To, promotionFor(b, m)); err != nil {
				continue
			}
			if score := e.search(probe, depth-1, alpha, beta, mover); score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if alpha >= beta {
				break
			}
		}
		return best
	}

	best := infScore
	for _, m := range moves {
		probe := b.Clone()
		if err := probe.Play(m.From, m.To, promotionFor(b, m)); err != nil {
			continue
		}
		if score := e.search(probe, depth-1, alpha, beta, mover); score < best {
			best = score
		}
		if best < beta {
			beta = best
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// evaluate scores a quiet position: material dominates, mobility breaks
// ties.
func (e *Engine) evaluate(b *chess.Board, mover chess.Color) int {
	material := b.MaterialBalance()
	if mover == chess.Black {
		material = -material
	}
	mobility := len(b.AllLegalMoves(mover)) - len(b.AllLegalMoves(mover.Opponent()))
	return material*10 + mobility
}

// promotionFor supplies the kind a pawn move onto the far rank needs.
// The engine always queens; underpromotion never figures in its lines.
func promotionFor(b *chess.Board, m chess.Move) chess.PieceKind {
	pc := b.PieceAt(m.From)
	if pc == nil || pc.Kind != chess.Pawn {
		return ""
	}
	if (pc.Color == chess.White && m.To.Row == 0) || (pc.Color == chess.Black && m.To.Row == 7) {
		return chess.Queen
	}
	return ""
}
