package movegen_test

import (
	"testing"

	"github.com/herohde/basilisk/pkg/board"
	"github.com/herohde/basilisk/pkg/board/fen"
	_ "github.com/herohde/basilisk/internal/movegen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perft(b *board.Board, depth int) int {
	if depth == 0 {
		return 1
	}
	count := 0
	for _, m := range b.LegalMoves() {
		b.Push(m)
		count += perft(b, depth-1)
		b.Pop()
	}
	return count
}

func TestPerftInitialPosition(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	assert.Equal(t, 20, perft(b, 1))
	assert.Equal(t, 400, perft(b, 2))
	assert.Equal(t, 8902, perft(b, 3))
}

func TestPawnDoublePushRespectsBlockingPiece(t *testing.T) {
	b, err := fen.Decode("4k3/8/8/8/4n3/8/4P3/4K3 w - - 0 1")
	require.NoError(t, err)

	for _, m := range b.LegalMoves() {
		assert.NotEqual(t, board.Move{From: board.E2, To: board.E4}, m, "e-pawn is blocked and cannot jump")
	}
}

func TestEnPassantCandidate(t *testing.T) {
	b, err := fen.Decode("4k3/8/8/8/3pP3/8/8/4K3 b - e3 0 1")
	require.NoError(t, err)

	found := false
	for _, m := range b.LegalMoves() {
		if m == (board.Move{From: board.D4, To: board.E3}) {
			found = true
		}
	}
	assert.True(t, found, "expected en-passant capture d4xe3 to be legal")
}

func TestCastlingBlockedByAttackedTransitSquare(t *testing.T) {
	// White king on e1 may not castle kingside: f1 is attacked by the black rook on f8.
	b, err := fen.Decode("4kr2/8/8/8/8/8/8/4K2R w K - 0 1")
	require.NoError(t, err)

	for _, m := range b.LegalMoves() {
		assert.NotEqual(t, board.Move{From: board.E1, To: board.G1}, m)
	}
}

func TestCastlingAvailableWhenPathIsSafe(t *testing.T) {
	b, err := fen.Decode("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	require.NoError(t, err)

	found := false
	for _, m := range b.LegalMoves() {
		if m == (board.Move{From: board.E1, To: board.G1}) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPromotionGeneratesAllFourPieces(t *testing.T) {
	b, err := fen.Decode("4k3/3P4/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	var promos []board.Piece
	for _, m := range b.LegalMoves() {
		if m.From == board.D7 && m.To == board.D8 {
			promos = append(promos, m.Promotion)
		}
	}
	assert.ElementsMatch(t, []board.Piece{board.Queen, board.Rook, board.Bishop, board.Knight}, promos)
}
