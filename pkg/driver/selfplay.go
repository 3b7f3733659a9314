package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/herohde/basilisk/pkg/board"
	"github.com/herohde/basilisk/pkg/engine"
	"github.com/seekerror/logw"
)

// Players pairs the two engines contesting a game.
type Players struct {
	White, Black *engine.Engine
}

// Result is one completed (or move-limit-truncated) game.
type Result struct {
	Outcome   board.Result
	Moves     []board.Move
	StartFEN  string
	FullMoves int
	Elapsed   time.Duration
	Nodes     uint64
	DepthSum  int
}

// Score returns 1, 0.5 or 0 for White, per the standard PGN scoring convention.
func (r Result) Score() float64 {
	switch r.Outcome.Outcome {
	case board.WhiteWins:
		return 1
	case board.Draw:
		return 0.5
	default:
		return 0
	}
}

// PlayGame plays one game by alternating ChooseMove calls between players.White and
// players.Black and pushing the chosen move onto an authoritative board, per spec.md section
// 4.5. Both engines are reset to startFEN first and kept synchronized with the authoritative
// board for the rest of the game, so each engine always searches from its own, correctly
// mirrored copy of the position.
//
// Termination is detected with Board.CheckGameOver, which already applies the engine's
// draw-by-claim policy unconditionally (2-fold repetition, 50-move rule) rather than requiring
// an explicit claim — the Go analogue of the original's is_game_over(claim_draw=True). A
// moveLimit <= 0 means unbounded.
func PlayGame(ctx context.Context, players Players, startFEN string, budget time.Duration, moveLimit int) (Result, error) {
	if err := players.White.Reset(ctx, startFEN); err != nil {
		return Result{}, fmt.Errorf("driver: %w", err)
	}
	if err := players.Black.Reset(ctx, startFEN); err != nil {
		return Result{}, fmt.Errorf("driver: %w", err)
	}

	b := players.White.Board().Clone()
	start := time.Now()

	var moves []board.Move
	var nodes uint64
	var depthSum int

	for {
		if _, over := b.CheckGameOver(); over {
			break
		}
		if moveLimit > 0 && b.FullMoveNumber() > moveLimit {
			break
		}

		mover := players.White
		if b.Turn() == board.Black {
			mover = players.Black
		}

		pv, err := mover.ChooseMove(ctx, budget)
		if err != nil {
			return Result{}, fmt.Errorf("driver: move %v: %w", len(moves)+1, err)
		}
		m := pv.Moves[0]

		b.Push(m)
		players.White.Push(ctx, m)
		players.Black.Push(ctx, m)

		moves = append(moves, m)
		nodes += pv.Nodes
		depthSum += pv.Depth

		logw.Debugf(ctx, "driver: ply %v %v (depth=%v score=%v)", len(moves), m, pv.Depth, pv.Score)
	}

	outcome, _ := b.CheckGameOver()
	return Result{
		Outcome:   outcome,
		Moves:     moves,
		StartFEN:  startFEN,
		FullMoves: b.FullMoveNumber(),
		Elapsed:   time.Since(start),
		Nodes:     nodes,
		DepthSum:  depthSum,
	}, nil
}
