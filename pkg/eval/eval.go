// Package eval contains static position evaluation: a material-only baseline and the
// production "V0"/"V1" positional evaluators, per spec.md section 4.2.
package eval

import (
	"context"

	"github.com/herohde/basilisk/pkg/board"
)

// Evaluator is a pure function from a board to a White-positive scalar score.
type Evaluator interface {
	Evaluate(ctx context.Context, b *board.Board) Score
}

// Material is the nominal material balance, White minus Black.
type Material struct{}

func (Material) Evaluate(ctx context.Context, b *board.Board) Score {
	pos := b.Position()
	var white, black Score
	for p := board.ZeroPiece; p < board.NumPieces; p++ {
		white += Score(pos.Piece(board.White, p).PopCount()) * NominalValue(p)
		black += Score(pos.Piece(board.Black, p).PopCount()) * NominalValue(p)
	}
	return white - black
}

// NominalValue is the absolute material value of a piece type in pawn units. The 0.01 on the
// bishop breaks knight/bishop ties deterministically in its favor. The king has no material
// value here; its presence is invariant and never traded.
func NominalValue(p board.Piece) Score {
	switch p {
	case board.Pawn:
		return 1
	case board.Knight:
		return 3
	case board.Bishop:
		return 3.01
	case board.Rook:
		return 5
	case board.Queen:
		return 9
	default:
		return 0
	}
}

// endgameThreshold is the fullmove number past which the evaluator switches to endgame
// piece-square terms. Move ordering uses a different threshold (50); the two differ
// intentionally, per spec.md section 6.
const endgameThreshold = 60

// V0 is the production positional evaluator: material plus piece-square terms, an endgame
// decisive-advantage override, a simplification offset that favors the side already ahead,
// a check penalty, and optional tie-break noise.
type V0 struct {
	Noise Random
}

func (v V0) Evaluate(ctx context.Context, b *board.Board) Score {
	pos := b.Position()
	endgame := b.FullMoveNumber() > endgameThreshold

	var white, black Score
	for sq, p := range b.PiecesMap() {
		c, _, _ := pos.At(sq)
		tableSq := sq
		if c == board.Black {
			tableSq = sq.MirrorRank()
		}
		value := NominalValue(p) + positionalValue(p, tableSq, endgame)
		if c == board.White {
			white += value
		} else {
			black += value
		}
	}

	sign := Score(1)
	if white < black {
		sign = -1
	}
	worse, better := Min(white, black), Max(white, black)

	switch {
	case worse == 0 && better >= 6.5:
		return sign * (50 + better)
	case worse == 0 && better >= 5:
		return sign * (10 + better)
	case worse > 0 && worse < 2 && better >= 10:
		return sign * (10 + better)
	}

	diff := white - black
	if diff.Abs() > 1.95 {
		percentageLeft := (white + black) / 78
		offsetSign := Score(1)
		if diff < 0 {
			offsetSign = -1
		}
		diff += (1 - percentageLeft) * offsetSign
	}

	if b.IsCheck() {
		if b.Turn() == board.White {
			diff -= 0.2
		} else {
			diff += 0.2
		}
	}

	return diff + v.Noise.Next()
}

// promotionBonus is added to a move's material gain when it promotes a pawn on the last
// rank, per spec.md section 4.2's one-ply tactical lookahead.
const promotionBonus Score = 8

// V1 is V0 plus a one-ply tactical lookahead: the best immediate material gain available to
// the side to move, scaled and signed toward that side. A move that forces checkmate
// short-circuits the scan to a mate-magnitude score.
type V1 struct {
	V0
}

func (v V1) Evaluate(ctx context.Context, b *board.Board) Score {
	base := v.V0.Evaluate(ctx, b)

	mover := b.Turn()
	sign := Score(1)
	if mover == board.Black {
		sign = -1
	}

	var maxGain Score
	for _, m := range b.LegalMoves() {
		gain := NominalValue(b.PieceTypeAt(m.To))
		if m.Promotion != board.NoPiece {
			gain += promotionBonus
		}

		b.Push(m)
		result, over := b.CheckGameOver()
		b.Pop()
		if over && result.Outcome != board.Draw {
			return sign * MateEvaluation
		}

		if gain > maxGain {
			maxGain = gain
		}
	}

	return base + 0.7*sign*maxGain
}
