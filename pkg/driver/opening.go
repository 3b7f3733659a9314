// Package driver implements the game-pairing collaborator described in spec.md section 4.5:
// alternating engine.ChooseMove calls onto an authoritative board, detecting termination, and
// recording the result as PGN. It also runs self-play matches across many concurrent game
// pairs, mirroring the original engine's rungame.py driver script.
package driver

import (
	"fmt"
	"math/rand"

	"github.com/BurntSushi/toml"
	"github.com/herohde/basilisk/pkg/board/fen"
)

// openingPoolConfig is the on-disk TOML shape: a flat list of opening FENs under the "fen" key.
//
//	fen = [
//	  "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
//	  "rnbqkb1r/pppp1ppp/5n2/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
//	]
type openingPoolConfig struct {
	FEN []string `toml:"fen"`
}

// OpeningPool is a set of opening FENs that self-play games may start from, drawn uniformly at
// random per spec.md section 6. An empty pool always yields the standard initial position.
type OpeningPool struct {
	fens []string
}

// NewOpeningPool builds a pool directly from a list of FENs, e.g. for tests.
func NewOpeningPool(fens ...string) *OpeningPool {
	return &OpeningPool{fens: fens}
}

// LoadOpeningPool reads a TOML-encoded opening pool from path.
func LoadOpeningPool(path string) (*OpeningPool, error) {
	var cfg openingPoolConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("driver: decode opening pool %v: %w", path, err)
	}
	if len(cfg.FEN) == 0 {
		return nil, fmt.Errorf("driver: opening pool %v has no fen entries", path)
	}
	return &OpeningPool{fens: cfg.FEN}, nil
}

// Pick draws a starting FEN uniformly at random using r. Callers own r's seeding, so a match
// run is reproducible under a fixed seed per spec.md section 9's ban on wall-clock-derived
// randomness. An empty pool always returns the standard initial position.
func (p *OpeningPool) Pick(r *rand.Rand) string {
	if len(p.fens) == 0 {
		return fen.Initial
	}
	return p.fens[r.Intn(len(p.fens))]
}

// Len reports the number of FENs in the pool.
func (p *OpeningPool) Len() int {
	return len(p.fens)
}
