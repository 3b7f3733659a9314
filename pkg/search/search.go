// Package search implements the iterative-deepening alpha-beta move search: spec.md section
// 4.4. Scoring is White-positive throughout; White maximizes, Black minimizes. There is no
// transposition table (spec.md's Non-goals exclude one) and no quiescence search beyond what
// the V1 evaluator's one-ply tactical lookahead already provides.
package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/herohde/basilisk/pkg/board"
	"github.com/herohde/basilisk/pkg/eval"
	"github.com/herohde/basilisk/pkg/order"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// ErrTimeout is returned once the search's deadline has been reached. It propagates as an
// ordinary Go error up through the recursion to the root, which catches it and falls back to
// the principal variation of the deepest depth that completed a full sweep of root moves.
// This is the Go-idiomatic analogue of spec.md's "distinguished condition that unwinds to the
// root".
var ErrTimeout = errors.New("search: timed out")

// timeoutSlack is left on the clock so a cutoff check never straddles the true deadline.
const timeoutSlack = 10 * time.Millisecond

// killerCutoffPenalty is subtracted (signed by mover) from later, unvisited moves in a
// beta-cutoff iteration so re-sorting at the next depth tries them after the moves the
// current iteration already explored.
const killerCutoffPenalty = 1000

// maxSearchDepth is the iterative-deepening ceiling at the root.
const maxSearchDepth = 12

// rootStartDepth is the first depth ChooseMove attempts. The Basilisk variant's base case
// (maxDepth <= 1 delegates to the evaluator) cannot itself produce a root move, so the root
// loop starts at 2 rather than 1 — spec.md section 4.4's "(or 2)" allowance.
const rootStartDepth = 2

// Context carries state shared across one root search: the deadline, evaluator, and running
// node count. Not safe for concurrent use — exactly one ChooseMove call owns a Context.
type Context struct {
	Deadline  time.Time
	Evaluator eval.Evaluator
	Nodes     uint64
}

func (c *Context) expired(ctx context.Context) bool {
	if contextx.IsCancelled(ctx) {
		return true
	}
	return !c.Deadline.IsZero() && !time.Now().Before(c.Deadline.Add(-timeoutSlack))
}

// PV is the principal variation produced by a completed search at some depth.
type PV struct {
	Moves []board.Move
	Score eval.Score
	Depth int
	Nodes uint64
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v pv=%v", p.Depth, p.Score, p.Nodes, p.Moves)
}

// entry is one candidate move and its score from the most recently completed depth, re-sorted
// between internal iterative-deepening passes.
type entry struct {
	move  board.Move
	score eval.Score
}

// FindMove implements spec.md section 4.4's recursive search exactly: the base cases, the
// internal iterative-deepening loop from min_depth to maxDepth with re-sorting between
// passes, and the killer/penalty adjustment on a beta cutoff (the Basilisk formulation: the
// cutoff move is promoted to the side-favoring optimum so it is tried first next iteration,
// and later untried moves are penalized so they sort after moves this iteration explored).
func FindMove(ctx context.Context, sctx *Context, b *board.Board, maxDepth int, alpha, beta eval.Score, isRoot bool) ([]board.Move, eval.Score, error) {
	if sctx.expired(ctx) {
		return nil, 0, ErrTimeout
	}
	sctx.Nodes++

	if maxDepth <= 1 {
		return nil, sctx.Evaluator.Evaluate(ctx, b), nil
	}

	if !isRoot {
		if result, over := b.CheckGameOver(); over {
			return nil, outcomeSign(result) * (eval.MateEvaluation + eval.Score(maxDepth)), nil
		}
	}

	moves := b.LegalMoves()
	if len(moves) == 0 {
		result, _ := b.CheckGameOver()
		return nil, outcomeSign(result) * (eval.MateEvaluation + eval.Score(maxDepth)), nil
	}

	white := b.Turn() == board.White
	antiOptimum, optimum := eval.MinScore, eval.MaxScore
	if !white {
		antiOptimum, optimum = eval.MaxScore, eval.MinScore
	}
	sign := eval.Score(1)
	if !white {
		sign = -1
	}

	table := make([]entry, len(moves))
	for i, m := range order.Order(b, moves) {
		table[i] = entry{move: m, score: antiOptimum}
	}

	minDepth := maxDepth
	if isRoot || maxDepth >= 4 {
		minDepth = 3
	}
	if minDepth > maxDepth {
		minDepth = maxDepth
	}

	var bestLine []board.Move
	bestResult := antiOptimum

	for d := minDepth; d <= maxDepth; d++ {
		a, be := alpha, beta
		bestResult = antiOptimum
		bestLine = nil

		sort.SliceStable(table, func(i, j int) bool {
			if white {
				return table[i].score > table[j].score
			}
			return table[i].score < table[j].score
		})

		for i := range table {
			if sctx.expired(ctx) {
				return nil, 0, ErrTimeout
			}

			b.Push(table[i].move)
			line, score, err := FindMove(ctx, sctx, b, d-1, a, be, false)
			b.Pop()
			if err != nil {
				return nil, 0, err
			}
			table[i].score = score

			if white {
				if score > bestResult {
					bestResult, bestLine = score, prepend(table[i].move, line)
				}
				if score > a {
					a = score
				}
			} else {
				if score < bestResult {
					bestResult, bestLine = score, prepend(table[i].move, line)
				}
				if score < be {
					be = score
				}
			}

			if be <= a {
				if d == maxDepth {
					return bestLine, bestResult, nil
				}
				table[i].score = optimum
				for j := i + 1; j < len(table); j++ {
					table[j].score -= sign * killerCutoffPenalty
				}
				break
			}
		}
	}

	return bestLine, bestResult, nil
}

func prepend(m board.Move, rest []board.Move) []board.Move {
	line := make([]board.Move, 0, len(rest)+1)
	line = append(line, m)
	return append(line, rest...)
}

// outcomeSign maps a decided Result to spec.md's r ∈ {-1, 0, +1}.
func outcomeSign(result board.Result) eval.Score {
	switch result.Outcome {
	case board.WhiteWins:
		return 1
	case board.BlackWins:
		return -1
	default:
		return 0
	}
}

// Options configures ChooseMove.
type Options struct {
	MaxDepth  int // 0 means maxSearchDepth
	Evaluator eval.Evaluator
}

// ChooseMove is the root iterative-deepening driver: it calls FindMove for increasing depths
// until the time budget is exhausted, returning the PV of the deepest depth that completed a
// full sweep of root moves. Convention: Moves[0] is the move to play.
func ChooseMove(ctx context.Context, b *board.Board, budget time.Duration, opt Options) (PV, error) {
	maxDepth := opt.MaxDepth
	if maxDepth <= 0 || maxDepth > maxSearchDepth {
		maxDepth = maxSearchDepth
	}
	evaluator := opt.Evaluator
	if evaluator == nil {
		evaluator = eval.V0{}
	}

	sctx := &Context{Deadline: time.Now().Add(budget), Evaluator: evaluator}

	var best PV
	for depth := rootStartDepth; depth <= maxDepth; depth++ {
		start := time.Now()
		line, score, err := FindMove(ctx, sctx, b, depth, eval.MinScore, eval.MaxScore, true)
		if err != nil {
			if errors.Is(err, ErrTimeout) {
				logw.Debugf(ctx, "search: depth %v timed out, keeping depth %v", depth, best.Depth)
				break
			}
			return PV{}, err
		}
		best = PV{Moves: line, Score: score, Depth: depth, Nodes: sctx.Nodes}
		logw.Debugf(ctx, "search: %v (%v)", best, time.Since(start))
	}

	if len(best.Moves) == 0 {
		return PV{}, fmt.Errorf("search: depth %v did not complete within budget %v", rootStartDepth, budget)
	}
	return best, nil
}
