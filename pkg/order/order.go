// Package order ranks legal moves so that alpha-beta cutoffs in pkg/search fire as early as
// possible, per spec.md section 4.3.
package order

import (
	"sort"

	"github.com/herohde/basilisk/pkg/board"
	"github.com/herohde/basilisk/pkg/eval"
)

// middlegameThreshold is the fullmove number past which move ordering switches to its
// endgame piece-order table. The evaluator's own endgame threshold (60) differs
// intentionally; see spec.md section 6.
const middlegameThreshold = 50

// pieceOrderValue is the Basilisk variant's piece-type-of-mover rank table.
func pieceOrderValue(p board.Piece, endgame bool) float32 {
	if endgame {
		switch p {
		case board.Queen:
			return 6
		case board.Pawn:
			return 5
		case board.Rook:
			return 4
		case board.King:
			return 3
		case board.Bishop:
			return 2
		case board.Knight:
			return 1
		default:
			return 0
		}
	}
	switch p {
	case board.Bishop, board.Knight:
		return 4
	case board.Pawn:
		return 3
	case board.Queen:
		return 2
	case board.Rook:
		return 1
	default:
		return 0 // king
	}
}

// Score implements the Basilisk single-scalar move-ordering formula: capture value dominates,
// then castling, then mover piece type, then generation index as a stable tie-break.
func Score(b *board.Board, m board.Move, i int) float32 {
	endgame := b.FullMoveNumber() > middlegameThreshold
	captureValue := float32(eval.NominalValue(b.PieceTypeAt(m.To)))

	var castlingBonus float32
	if b.IsCastling(m) {
		castlingBonus = 3
	}

	mover := b.PieceTypeAt(m.From)
	return captureValue + castlingBonus + 0.25*pieceOrderValue(mover, endgame) - 0.1111*float32(i)
}

// Order returns moves sorted by descending Score, stable on ties so that equally scored
// moves retain their generation order.
func Order(b *board.Board, moves []board.Move) []board.Move {
	type scored struct {
		move  board.Move
		score float32
	}

	list := make([]scored, len(moves))
	for i, m := range moves {
		list[i] = scored{m, Score(b, m, i)}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].score > list[j].score
	})

	ordered := make([]board.Move, len(list))
	for i, s := range list {
		ordered[i] = s.move
	}
	return ordered
}
