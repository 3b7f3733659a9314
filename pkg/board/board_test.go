package board_test

import (
	"testing"

	"github.com/herohde/basilisk/pkg/board"
	"github.com/herohde/basilisk/pkg/board/fen"
	_ "github.com/herohde/basilisk/internal/movegen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushPopRoundTrip(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	before := fen.Encode(b)
	for _, m := range b.LegalMoves() {
		b.Push(m)
		undone := b.Pop()
		assert.Equal(t, m, undone)
		assert.Equal(t, before, fen.Encode(b), "push/pop must restore FEN exactly for %v", m)
	}
}

func TestPushPopRestoresPiecesMap(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	snapshot := make(map[board.Square]board.Piece, len(b.PiecesMap()))
	for sq, p := range b.PiecesMap() {
		snapshot[sq] = p
	}

	for _, m := range b.LegalMoves()[:5] {
		b.Push(m)
		b.Pop()
		assert.Equal(t, snapshot, b.PiecesMap())
	}
}

func TestCastlingRightsLostOnKingMove(t *testing.T) {
	b, err := fen.Decode("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	require.NoError(t, err)

	b.Push(board.Move{From: board.E1, To: board.E2})
	assert.False(t, b.Castling().IsAllowed(board.WhiteKingSideCastle))
}

func TestCastlingRightsLostOnRookCapture(t *testing.T) {
	b, err := fen.Decode("r3k3/8/8/8/8/8/8/R3K3 b Qq - 0 1")
	require.NoError(t, err)

	b.Push(board.Move{From: board.A8, To: board.A1})
	assert.False(t, b.Castling().IsAllowed(board.WhiteQueenSideCastle))
}

func TestIsCastlingDetectsTwoFileKingMove(t *testing.T) {
	b, err := fen.Decode("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	require.NoError(t, err)

	assert.True(t, b.IsCastling(board.Move{From: board.E1, To: board.G1}))
	assert.False(t, b.IsCastling(board.Move{From: board.E1, To: board.F1}))
}

func TestEnPassantCaptureRemovesCapturedPawn(t *testing.T) {
	b, err := fen.Decode("4k3/8/8/8/3pP3/8/8/4K3 b - e3 0 1")
	require.NoError(t, err)

	assert.True(t, b.IsEnPassant(board.Move{From: board.D4, To: board.E3}))
	b.Push(board.Move{From: board.D4, To: board.E3})

	assert.Equal(t, board.NoPiece, b.PieceTypeAt(board.E4), "captured pawn must be removed")
	assert.Equal(t, board.Pawn, b.PieceTypeAt(board.E3))
}

func TestCheckGameOverCheckmate(t *testing.T) {
	// Fool's mate position: black has just delivered checkmate.
	b, err := fen.Decode("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)

	result, over := b.CheckGameOver()
	require.True(t, over)
	assert.Equal(t, board.BlackWins, result.Outcome)
}

func TestCheckGameOverStalemate(t *testing.T) {
	b, err := fen.Decode("7k/8/6Q1/8/8/8/8/6K1 b - - 0 1")
	require.NoError(t, err)

	result, over := b.CheckGameOver()
	require.True(t, over)
	assert.Equal(t, board.Draw, result.Outcome)
	assert.Equal(t, board.Stalemate, result.Reason)
}

func TestCheckGameOverInsufficientMaterial(t *testing.T) {
	b, err := fen.Decode("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	result, over := b.CheckGameOver()
	require.True(t, over)
	assert.Equal(t, board.Draw, result.Outcome)
	assert.Equal(t, board.InsufficientMaterial, result.Reason)
}

func TestCheckGameOverFiftyMoveRule(t *testing.T) {
	b, err := fen.Decode("4k3/8/8/8/8/8/8/R3K3 w - - 100 60")
	require.NoError(t, err)

	result, over := b.CheckGameOver()
	require.True(t, over)
	assert.Equal(t, board.Draw, result.Outcome)
	assert.Equal(t, board.FiftyMoveRule, result.Reason)
}

func TestCheckGameOverTwoFoldRepetition(t *testing.T) {
	// The white rook keeps the insufficient-material rule from firing first.
	b, err := fen.Decode("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)

	shuttle := []board.Move{
		{From: board.E1, To: board.E2},
		{From: board.E8, To: board.E7},
		{From: board.E2, To: board.E1},
		{From: board.E7, To: board.E8},
	}
	for _, m := range shuttle {
		b.Push(m)
	}

	result, over := b.CheckGameOver()
	assert.True(t, over, "position has now recurred twice, which this engine treats as a draw (not FIDE's 3-fold)")
	assert.Equal(t, board.Repetition, result.Reason)
}

func TestCloneIsIndependent(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	cp := b.Clone()
	cp.Push(board.Move{From: board.E2, To: board.E4})

	assert.Equal(t, 0, b.UndoDepth())
	assert.Equal(t, 1, cp.UndoDepth())
	assert.NotEqual(t, fen.Encode(b), fen.Encode(cp))
}
