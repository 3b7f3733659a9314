package board

import "strings"

// Castling represents the set of castling rights still available. 4 bits.
type Castling uint8

const (
	WhiteKingSideCastle Castling = 1 << iota
	WhiteQueenSideCastle
	BlackKingSideCastle
	BlackQueenSideCastle
)

const (
	NoCastlingRights  Castling = 0
	FullCastlingRights Castling = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

func (c Castling) IsAllowed(right Castling) bool {
	return c&right != 0
}

func (c Castling) String() string {
	if c == 0 {
		return "-"
	}

	var sb strings.Builder
	if c.IsAllowed(WhiteKingSideCastle) {
		sb.WriteString("K")
	}
	if c.IsAllowed(WhiteQueenSideCastle) {
		sb.WriteString("Q")
	}
	if c.IsAllowed(BlackKingSideCastle) {
		sb.WriteString("k")
	}
	if c.IsAllowed(BlackQueenSideCastle) {
		sb.WriteString("q")
	}
	return sb.String()
}

// castlingRookMove gives the fixed rook (from, to) pair for each of the four
// castling king moves, per spec.md section 4.1.
var castlingRookMove = map[[2]Square]([2]Square){
	{E1, G1}: {H1, F1},
	{E1, C1}: {A1, D1},
	{E8, G8}: {H8, F8},
	{E8, C8}: {A8, D8},
}

// lostCastlingRights returns the rights forfeited when a piece leaves (or arrives on,
// in the case of a rook capture) the given square.
func lostCastlingRights(sq Square) Castling {
	switch sq {
	case E1:
		return WhiteKingSideCastle | WhiteQueenSideCastle
	case A1:
		return WhiteQueenSideCastle
	case H1:
		return WhiteKingSideCastle
	case E8:
		return BlackKingSideCastle | BlackQueenSideCastle
	case A8:
		return BlackQueenSideCastle
	case H8:
		return BlackKingSideCastle
	default:
		return NoCastlingRights
	}
}
