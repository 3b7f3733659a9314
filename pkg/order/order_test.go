package order_test

import (
	"testing"

	"github.com/herohde/basilisk/pkg/board"
	"github.com/herohde/basilisk/pkg/board/fen"
	_ "github.com/herohde/basilisk/internal/movegen"
	"github.com/herohde/basilisk/pkg/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderPutsCapturesBeforeQuietMoves(t *testing.T) {
	b, err := fen.Decode("4k3/8/3p4/8/4N3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	ordered := order.Order(b, b.LegalMoves())
	require.NotEmpty(t, ordered)
	assert.Equal(t, board.Move{From: board.E4, To: board.D6}, ordered[0], "the capturing knight move should sort first")
}

func TestOrderIsPermutationOfInput(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	moves := b.LegalMoves()
	ordered := order.Order(b, moves)
	assert.Len(t, ordered, len(moves))

	seen := make(map[board.Move]bool, len(ordered))
	for _, m := range ordered {
		seen[m] = true
	}
	for _, m := range moves {
		assert.True(t, seen[m], "ordering must be a permutation of the input")
	}
}
