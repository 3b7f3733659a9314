package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/herohde/basilisk/pkg/board"
	"github.com/herohde/basilisk/pkg/board/fen"
	"github.com/herohde/basilisk/pkg/eval"
	_ "github.com/herohde/basilisk/internal/movegen"
	"github.com/herohde/basilisk/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBudget = 500 * time.Millisecond

func TestChooseMoveReturnsLegalMove(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	pv, err := search.ChooseMove(context.Background(), b, testBudget, search.Options{})
	require.NoError(t, err)
	require.NotEmpty(t, pv.Moves)

	legal := b.LegalMoves()
	assert.Contains(t, legal, pv.Moves[0], "root PV's first move must be legal")
}

func TestChooseMoveFoundScenarios(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		expected []board.Move
	}{
		{
			name:     "mate in 1",
			fen:      "4k3/1R4p1/3KP2p/p7/8/6r1/PP6/8 w - - 1 2",
			expected: []board.Move{{From: board.B7, To: board.B8}},
		},
		{
			name: "mate in 1, choice of two",
			fen:  "2K5/k7/8/8/1Q6/8/8/N7 w - - 105 195",
			expected: []board.Move{
				{From: board.B4, To: board.B7},
				{From: board.B4, To: board.A5},
			},
		},
		{
			name:     "mate in 2",
			fen:      "2R5/5ppk/7p/p2P4/4P3/2P1n1B1/r6P/7K b - - 1 1",
			expected: []board.Move{{From: board.A2, To: board.A1}},
		},
		{
			name:     "mate in 3",
			fen:      "2Q1R3/5pkp/1r2p1p1/p7/8/4PB2/P4PPP/6K1 b - - 0 1",
			expected: []board.Move{{From: board.B6, To: board.B1}},
		},
		{
			name:     "mate in 5",
			fen:      "5k2/2N2p2/2B2P2/5q2/2b5/2P1KP2/1P4rP/R2Q3R b - - 0 29",
			expected: []board.Move{{From: board.F5, To: board.E5}},
		},
		{
			name: "simplification while winning",
			fen:  "6K1/8/k7/8/3Q4/2n5/P7/1r3R2 w - - 2 96",
			expected: []board.Move{
				{From: board.D4, To: board.C3},
				{From: board.F1, To: board.B1},
				{From: board.D4, To: board.B3},
			},
		},
		{
			name:     "promotion seen",
			fen:      "7r/4P3/1pn5/p1p2kB1/8/2P3K1/PPP5/4R3 w - - 2 34",
			expected: []board.Move{{From: board.E7, To: board.E8, Promotion: board.Queen}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := fen.Decode(tt.fen)
			require.NoError(t, err)

			pv, err := search.ChooseMove(context.Background(), b, testBudget, search.Options{Evaluator: eval.V1{}})
			require.NoError(t, err)
			require.NotEmpty(t, pv.Moves)

			assert.Contains(t, tt.expected, pv.Moves[0])
		})
	}
}

func TestChooseMoveDeterministicUnderFixedSeed(t *testing.T) {
	fenStr := "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4"

	first, err := fen.Decode(fenStr)
	require.NoError(t, err)
	second, err := fen.Decode(fenStr)
	require.NoError(t, err)

	pv1, err := search.ChooseMove(context.Background(), first, testBudget, search.Options{Evaluator: eval.V0{Noise: eval.NewRandom(42)}})
	require.NoError(t, err)
	pv2, err := search.ChooseMove(context.Background(), second, testBudget, search.Options{Evaluator: eval.V0{Noise: eval.NewRandom(42)}})
	require.NoError(t, err)

	assert.Equal(t, pv1.Moves, pv2.Moves)
}

func TestAchievedDepthWithinRootStartAndMaxDepth(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	pv, err := search.ChooseMove(context.Background(), b, testBudget, search.Options{MaxDepth: 3})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pv.Depth, 2, "the Basilisk variant's root loop starts at depth 2")
	assert.LessOrEqual(t, pv.Depth, 3)
}
