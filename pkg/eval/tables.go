package eval

import "github.com/herohde/basilisk/pkg/board"

// Piece-square tables, precomputed once at init time rather than recomputed per lookup.
// Always expressed from White's perspective; Black pieces are looked up by mirroring the
// square across the rank (board.Square.MirrorRank) before indexing, per spec.md section 4.2.
var (
	pawnMiddlegameTable  [board.NumSquares]float32
	pawnEndgameTable     [board.NumSquares]float32
	knightBishopTable    [board.NumSquares]float32
	rookTable            [board.NumSquares]float32
	kingMiddlegameTable  [board.NumSquares]float32
	kingEndgameTable     [board.NumSquares]float32
	queenMiddlegameTable [board.NumSquares]float32
)

func init() {
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		r := float64(sq.Rank().V())
		f := sq.File()
		fv := float64(f.V())

		if f == board.FileD || f == board.FileE {
			pawnMiddlegameTable[sq] = float32(0.03 * r)
		}
		pawnEndgameTable[sq] = float32(0.03 * r)

		if r < 2 || r > 5 || fv < 2 || fv > 5 {
			knightBishopTable[sq] = float32(-0.015 * (absF(3.5-r) + absF(3.5-fv)))
		}

		rookTable[sq] = float32(0.02 * (absF(3.5-r) - absF(3.5-fv)))

		centralization := 0.01 * (absF(3.5-r) + absF(3.5-fv))
		kingMiddlegameTable[sq] = float32(centralization)
		kingEndgameTable[sq] = float32(-centralization)

		queenMiddlegameTable[sq] = float32(0.03 * (absF(1-r) + absF(3.5-fv)))
	}
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// positionalValue is the table term for a piece type at sq (already mirrored for Black), in
// the given phase.
func positionalValue(p board.Piece, sq board.Square, endgame bool) Score {
	switch p {
	case board.Pawn:
		if endgame {
			return Score(pawnEndgameTable[sq])
		}
		return Score(pawnMiddlegameTable[sq])
	case board.Knight, board.Bishop:
		return Score(knightBishopTable[sq])
	case board.Rook:
		return Score(rookTable[sq])
	case board.King:
		if endgame {
			return Score(kingEndgameTable[sq])
		}
		return Score(kingMiddlegameTable[sq])
	case board.Queen:
		if endgame {
			return 0
		}
		return Score(queenMiddlegameTable[sq])
	default:
		return 0
	}
}
