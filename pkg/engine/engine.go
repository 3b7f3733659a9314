// Package engine wraps pkg/search and pkg/eval into a single-position, single-threaded
// game-playing component: spec.md section 4.5's "driver" collaborator, minus the actual
// game loop (see pkg/driver).
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/herohde/basilisk/pkg/board"
	"github.com/herohde/basilisk/pkg/board/fen"
	"github.com/herohde/basilisk/pkg/eval"
	"github.com/herohde/basilisk/pkg/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

// Options are engine creation options.
type Options struct {
	// MaxDepth bounds the iterative-deepening search. Zero means the default ceiling
	// (spec.md's max_depth = 12).
	MaxDepth int
	// Variant selects the positional evaluator: "v0" (default) or "v1" (adds the one-ply
	// tactical lookahead).
	Variant string
	// NoiseSeed seeds the evaluator's tie-break noise. Per spec.md section 9, this must never
	// be derived from wall-clock time. Noise is switched on by NoiseOn alone; NoiseSeed is
	// ignored while NoiseOn is false, and zero is an ordinary seed.
	NoiseSeed int64
	NoiseOn   bool
}

func (o Options) String() string {
	return fmt.Sprintf("{maxDepth=%v, variant=%v, noise=%v}", o.MaxDepth, o.Variant, o.NoiseOn)
}

// Engine encapsulates one game's board plus the search/eval configuration used to choose
// moves for it. Not safe for concurrent use — an engine instance must not be invoked
// concurrently from two goroutines, per spec.md section 5.
type Engine struct {
	name, author string
	opts         Options
	evaluator    eval.Evaluator

	mu sync.Mutex
	b  *board.Board
}

// Option is an engine creation option.
type Option func(*Engine)

// WithOptions sets the engine's search and evaluator configuration.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// New creates an engine initialized to the standard starting position.
func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{name: name, author: author}
	for _, fn := range opts {
		fn(e)
	}
	e.evaluator = newEvaluator(e.opts)

	if err := e.Reset(ctx, fen.Initial); err != nil {
		panic(fmt.Sprintf("engine: invalid initial position: %v", err))
	}
	logw.Infof(ctx, "Initialized engine: %v %v, opts=%v", name, version, e.opts)
	return e
}

func newEvaluator(opts Options) eval.Evaluator {
	var noise eval.Random
	if opts.NoiseOn {
		noise = eval.NewRandom(opts.NoiseSeed)
	}
	if opts.Variant == "v1" {
		return eval.V1{V0: eval.V0{Noise: noise}}
	}
	return eval.V0{Noise: noise}
}

func (e *Engine) Name() string   { return e.name }
func (e *Engine) Author() string { return e.author }

// Reset replaces the current position with the one described by the given FEN.
func (e *Engine) Reset(ctx context.Context, position string) error {
	b, err := fen.Decode(position)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.b = b
	logw.Infof(ctx, "New position: %v", position)
	return nil
}

// Board returns the engine's current position. The returned pointer must not be mutated by
// the caller; use Push/Takeback to advance it.
func (e *Engine) Board() *board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.b
}

// Push plays m on the engine's board. m must be legal.
func (e *Engine) Push(ctx context.Context, m board.Move) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.b.Push(m)
	logw.Infof(ctx, "Move %v: %v", m, fen.Encode(e.b))
}

// Takeback undoes the most recent move.
func (e *Engine) Takeback(ctx context.Context) board.Move {
	e.mu.Lock()
	defer e.mu.Unlock()
	m := e.b.Pop()
	logw.Infof(ctx, "Takeback %v", m)
	return m
}

// ChooseMove searches the current position for up to budget and returns the chosen PV,
// without playing it. Callers that want the move applied call Push with pv.Moves[0].
func (e *Engine) ChooseMove(ctx context.Context, budget time.Duration) (search.PV, error) {
	e.mu.Lock()
	b := e.b.Clone()
	e.mu.Unlock()

	pv, err := search.ChooseMove(ctx, b, budget, search.Options{
		MaxDepth:  e.opts.MaxDepth,
		Evaluator: newEvaluator(e.opts), // fresh noise stream, seeded per search
	})
	if err != nil {
		return search.PV{}, fmt.Errorf("engine: %w", err)
	}
	return pv, nil
}
