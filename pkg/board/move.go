package board

import "fmt"

// Move is a (not necessarily legal) chess move. It carries only the minimal information
// spec'd: origin, destination and an optional promotion piece. Whether a move is a capture,
// castle or en-passant is never stored on the move itself — it is always derived from the
// board state the move is about to be applied to (IsCastling, IsEnPassant), mirroring the
// original engine's ExtendedBoard.
//
// The null move, From=0 To=0, is a reserved sentinel and is never produced by LegalMoves.
type Move struct {
	From, To  Square
	Promotion Piece // NoPiece unless this is a promotion.
}

// IsNull reports whether m is the reserved null-move sentinel.
func (m Move) IsNull() bool {
	return m.From == ZeroSquare && m.To == ZeroSquare
}

func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

// ParseMove parses a move in UCI long algebraic notation, e.g. "e2e4" or "e7e8q".
func ParseMove(str string) (Move, error) {
	runes := []rune(str)
	if len(runes) < 4 || len(runes) > 5 {
		return Move{}, fmt.Errorf("invalid move: %q", str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return Move{}, fmt.Errorf("invalid from square in move %q: %w", str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return Move{}, fmt.Errorf("invalid to square in move %q: %w", str, err)
	}

	if len(runes) == 5 {
		promo, ok := ParsePiece(runes[4])
		if !ok || promo == Pawn || promo == King {
			return Move{}, fmt.Errorf("invalid promotion in move %q", str)
		}
		return Move{From: from, To: to, Promotion: promo}, nil
	}
	return Move{From: from, To: to}, nil
}

func (m Move) String() string {
	if m.Promotion.IsValid() {
		return fmt.Sprintf("%v%v%v", m.From, m.To, m.Promotion)
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}
