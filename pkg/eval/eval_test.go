package eval_test

import (
	"context"
	"testing"

	"github.com/herohde/basilisk/pkg/board"
	"github.com/herohde/basilisk/pkg/board/fen"
	"github.com/herohde/basilisk/pkg/eval"
	_ "github.com/herohde/basilisk/internal/movegen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestV0FavorsMaterialAdvantage(t *testing.T) {
	// White is up a rook with no decisive-advantage cutoff or check in play.
	b, err := fen.Decode("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)

	v0 := eval.V0{}
	assert.Greater(t, float32(v0.Evaluate(context.Background(), b)), float32(0))
}

func TestV0SymmetricUnderColorMirror(t *testing.T) {
	white, err := fen.Decode("4k3/8/8/8/8/8/3R4/4K3 w - - 0 1")
	require.NoError(t, err)
	black, err := fen.Decode("4k3/3r4/8/8/8/8/8/4K3 b - - 0 1")
	require.NoError(t, err)

	v0 := eval.V0{}
	a := v0.Evaluate(context.Background(), white)
	bScore := v0.Evaluate(context.Background(), black)
	assert.InDelta(t, float32(a), float32(-bScore), 1e-4)
}

func TestV0CheckPenaltyFavorsSideNotInCheck(t *testing.T) {
	notInCheck, err := fen.Decode("4k3/8/8/8/8/3r4/8/4K3 w - - 0 1")
	require.NoError(t, err)
	require.False(t, notInCheck.IsCheck())

	inCheck, err := fen.Decode("4k3/8/8/8/8/3r4/8/3K4 w - - 0 1")
	require.NoError(t, err)
	require.True(t, inCheck.IsCheck())

	v0 := eval.V0{}
	scoreSafe := v0.Evaluate(context.Background(), notInCheck)
	scoreChecked := v0.Evaluate(context.Background(), inCheck)
	assert.Greater(t, float32(scoreSafe), float32(scoreChecked))
}

func TestV0EndgameDecisiveAdvantageOverride(t *testing.T) {
	// White: king + queen + rook vs lone black king. The lone king's table term (0.04) keeps
	// worse above zero, so the 0 < worse < 2, better >= 10 branch fires: 10 + 14.115.
	b, err := fen.Decode("4k3/8/8/8/8/8/8/R3KQ2 w - - 0 1")
	require.NoError(t, err)

	v0 := eval.V0{}
	score := v0.Evaluate(context.Background(), b)
	assert.InDelta(t, float32(24.115), float32(score), 1e-3)
}

func TestV1PrefersImmediateMateOverMaterialGain(t *testing.T) {
	// Scholar's mate trap, one move from completion: Qxf7 is mate, bishop-defended.
	b, err := fen.Decode("r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4")
	require.NoError(t, err)

	v1 := eval.V1{}
	score := v1.Evaluate(context.Background(), b)
	assert.Equal(t, eval.MateEvaluation, score)
}

func TestNominalValueBishopBreaksKnightTie(t *testing.T) {
	assert.Greater(t, float32(eval.NominalValue(board.Bishop)), float32(eval.NominalValue(board.Knight)))
}
