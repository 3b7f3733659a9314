package driver

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/herohde/basilisk/pkg/engine"
	"github.com/seekerror/logw"
	"golang.org/x/sync/errgroup"
)

// MatchOptions configures RunMatch. Games run against fresh engine instances returned by the
// NewWhite/NewBlack factories passed to RunMatch, so each game gets an isolated board — mirrors
// the original rungame.py driving many independent Game() instances through a process pool,
// reworked here as one goroutine pool within a single process.
type MatchOptions struct {
	Games       int
	Concurrency int // <= 0 means unbounded.
	Budget      time.Duration
	MoveLimit   int
	Openings    *OpeningPool
	// Seed must never be derived from wall-clock time (spec.md section 9); each game's opening
	// draw uses Seed+gameIndex so a match is reproducible.
	Seed int64
}

// MatchResult aggregates the per-game results of a RunMatch call.
type MatchResult struct {
	Games      []Result
	WhiteScore float64
}

// RunMatch plays opt.Games independent games between engines built by newWhite/newBlack,
// running up to opt.Concurrency of them at a time, and aggregates the outcome. Per spec.md
// section 5, concurrency here is at the game-pairing level only — never inside a single
// search.
func RunMatch(ctx context.Context, newWhite, newBlack func() *engine.Engine, opt MatchOptions) (MatchResult, error) {
	if opt.Games <= 0 {
		return MatchResult{}, fmt.Errorf("driver: match requires at least one game")
	}
	openings := opt.Openings
	if openings == nil {
		openings = NewOpeningPool()
	}

	g, gctx := errgroup.WithContext(ctx)
	if opt.Concurrency > 0 {
		g.SetLimit(opt.Concurrency)
	}

	results := make([]Result, opt.Games)
	for i := 0; i < opt.Games; i++ {
		i := i
		r := rand.New(rand.NewSource(opt.Seed + int64(i)))
		startFEN := openings.Pick(r)

		g.Go(func() error {
			white, black := newWhite(), newBlack()
			res, err := PlayGame(gctx, Players{White: white, Black: black}, startFEN, opt.Budget, opt.MoveLimit)
			if err != nil {
				return fmt.Errorf("game %v: %w", i, err)
			}
			results[i] = res
			logw.Infof(gctx, "driver: game %v finished %v in %v plies (%v)", i, res.Outcome, len(res.Moves), res.Elapsed)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return MatchResult{}, err
	}

	var whiteScore float64
	for _, r := range results {
		whiteScore += r.Score()
	}
	return MatchResult{Games: results, WhiteScore: whiteScore}, nil
}
