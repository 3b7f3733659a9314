package driver_test

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/herohde/basilisk/pkg/board"
	"github.com/herohde/basilisk/pkg/board/fen"
	"github.com/herohde/basilisk/pkg/driver"
	"github.com/herohde/basilisk/pkg/engine"
	_ "github.com/herohde/basilisk/internal/movegen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gameBudget = 150 * time.Millisecond

func newTestEngine(t *testing.T, name string) *engine.Engine {
	t.Helper()
	return engine.New(context.Background(), name, "test", engine.WithOptions(engine.Options{MaxDepth: 3}))
}

func TestPlayGameReachesMateInOneImmediately(t *testing.T) {
	white := newTestEngine(t, "white")
	black := newTestEngine(t, "black")

	startFEN := "4k3/1R4p1/3KP2p/p7/8/6r1/PP6/8 w - - 1 2"
	res, err := driver.PlayGame(context.Background(), driver.Players{White: white, Black: black}, startFEN, gameBudget, 10)
	require.NoError(t, err)

	assert.Equal(t, board.WhiteWins, res.Outcome.Outcome)
	assert.Equal(t, board.Move{From: board.B7, To: board.B8}, res.Moves[0])
	assert.Equal(t, float64(1), res.Score())
}

func TestPlayGameStopsAtMoveLimit(t *testing.T) {
	white := newTestEngine(t, "white")
	black := newTestEngine(t, "black")

	res, err := driver.PlayGame(context.Background(), driver.Players{White: white, Black: black}, fen.Initial, gameBudget, 1)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(res.Moves), 2, "move limit 1 allows at most one full move (two plies)")
}

func TestOpeningPoolPicksFromConfiguredSet(t *testing.T) {
	pool := driver.NewOpeningPool(
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2",
	)
	picked := pool.Pick(rand.New(rand.NewSource(1)))
	assert.Equal(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2", picked)
}

func TestEmptyOpeningPoolFallsBackToInitialPosition(t *testing.T) {
	pool := driver.NewOpeningPool()
	assert.Equal(t, fen.Initial, pool.Pick(nil))
}

func TestWritePGNContainsTagsAndMovetext(t *testing.T) {
	white := newTestEngine(t, "white")
	black := newTestEngine(t, "black")

	startFEN := "4k3/1R4p1/3KP2p/p7/8/6r1/PP6/8 w - - 1 2"
	res, err := driver.PlayGame(context.Background(), driver.Players{White: white, Black: black}, startFEN, gameBudget, 10)
	require.NoError(t, err)

	pgn := driver.WritePGN(driver.Headers{Event: "basilisk self-play", White: "basilisk", Black: "basilisk"}, startFEN, res)

	assert.Contains(t, pgn, `[Result "1-0"]`)
	assert.Contains(t, pgn, `[SetUp "1"]`)
	assert.Contains(t, pgn, `[FEN "`+startFEN+`"]`)
	assert.Contains(t, pgn, "1. b7b8")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(pgn), "1-0"))
}

func TestRunMatchAggregatesGameScores(t *testing.T) {
	startFEN := "4k3/1R4p1/3KP2p/p7/8/6r1/PP6/8 w - - 1 2"
	pool := driver.NewOpeningPool(startFEN)

	opt := driver.MatchOptions{
		Games:       3,
		Concurrency: 2,
		Budget:      gameBudget,
		MoveLimit:   10,
		Openings:    pool,
		Seed:        7,
	}

	res, err := driver.RunMatch(context.Background(), func() *engine.Engine {
		return newTestEngine(t, "white")
	}, func() *engine.Engine {
		return newTestEngine(t, "black")
	}, opt)
	require.NoError(t, err)

	require.Len(t, res.Games, 3)
	assert.Equal(t, float64(3), res.WhiteScore, "mate-in-1 start position should be won by White in every game")
}
