// Package movegen is the delegated chess rules collaborator: it generates pseudo-legal
// moves from a bare piece-placement Position plus game state. It knows nothing about search,
// evaluation or the undo stack. spec.md section 1 treats legal move generation as out of
// scope for the engine core proper; this package is that boundary, wired into pkg/board
// through a registration hook rather than a direct import to avoid a cycle (pkg/board.Board
// needs to call it, and it needs pkg/board's types).
package movegen

import "github.com/herohde/basilisk/pkg/board"

func init() {
	board.RegisterPseudoLegalGenerator(PseudoLegalMoves)
}

// PseudoLegalMoves returns every pseudo-legal move for turn in pos: normal piece moves,
// pawn pushes/jumps/captures/promotions/en-passant candidates, and castling candidates. A
// returned move may still leave the mover's own king in check; pkg/board.Board.LegalMoves
// filters those out by simulating the push.
func PseudoLegalMoves(pos *board.Position, turn board.Color, castling board.Castling, ep board.Square, epOK bool) []board.Move {
	own := pos.Color(turn)
	opp := pos.Color(turn.Opponent())
	empty := ^pos.Occupied()

	var moves []board.Move
	for _, sq := range own.Squares() {
		switch p := pos.PieceTypeAt(sq); p {
		case board.Pawn:
			moves = appendPawnMoves(moves, turn, sq, empty, opp, ep, epOK)
		default:
			targets := board.Attackboard(pos.Rotated(), sq, p) &^ own
			for _, to := range targets.Squares() {
				moves = append(moves, board.Move{From: sq, To: to})
			}
		}
	}
	return appendCastlingMoves(moves, pos, turn, castling)
}

func appendPawnMoves(moves []board.Move, turn board.Color, sq board.Square, empty, opp board.Bitboard, ep board.Square, epOK bool) []board.Move {
	pawn := board.BitMask(sq)
	promoRank := board.PawnPromotionRank(turn)

	pushes := board.PawnPushboard(empty, turn, pawn)
	for _, to := range pushes.Squares() {
		moves = appendPawnDestination(moves, sq, to, promoRank)
	}
	if pushes != 0 && pawn&board.PawnStartRank(turn) != 0 {
		jumps := board.PawnPushboard(empty, turn, pushes) & board.PawnJumpRank(turn)
		for _, to := range jumps.Squares() {
			moves = append(moves, board.Move{From: sq, To: to})
		}
	}

	captures := board.PawnCaptureboard(turn, pawn)
	for _, to := range (captures & opp).Squares() {
		moves = appendPawnDestination(moves, sq, to, promoRank)
	}
	if epOK {
		for _, to := range (captures & board.BitMask(ep)).Squares() {
			moves = append(moves, board.Move{From: sq, To: to})
		}
	}
	return moves
}

func appendPawnDestination(moves []board.Move, from, to board.Square, promoRank board.Bitboard) []board.Move {
	if board.BitMask(to)&promoRank == 0 {
		return append(moves, board.Move{From: from, To: to})
	}
	for _, promo := range [...]board.Piece{board.Queen, board.Rook, board.Bishop, board.Knight} {
		moves = append(moves, board.Move{From: from, To: to, Promotion: promo})
	}
	return moves
}

type castlingCandidate struct {
	right              board.Castling
	kingFrom, kingTo   board.Square
	transit            board.Square
	mustBeEmpty        board.Bitboard
}

var whiteCastlingCandidates = [...]castlingCandidate{
	{board.WhiteKingSideCastle, board.E1, board.G1, board.F1, board.BitMask(board.F1) | board.BitMask(board.G1)},
	{board.WhiteQueenSideCastle, board.E1, board.C1, board.D1, board.BitMask(board.D1) | board.BitMask(board.C1) | board.BitMask(board.B1)},
}

var blackCastlingCandidates = [...]castlingCandidate{
	{board.BlackKingSideCastle, board.E8, board.G8, board.F8, board.BitMask(board.F8) | board.BitMask(board.G8)},
	{board.BlackQueenSideCastle, board.E8, board.C8, board.D8, board.BitMask(board.D8) | board.BitMask(board.C8) | board.BitMask(board.B8)},
}

// appendCastlingMoves adds a candidate king move for each castling right still held, for
// which the squares between king and rook are empty and the king does not start, pass
// through, or land on an attacked square.
func appendCastlingMoves(moves []board.Move, pos *board.Position, turn board.Color, castling board.Castling) []board.Move {
	candidates := whiteCastlingCandidates[:]
	if turn == board.Black {
		candidates = blackCastlingCandidates[:]
	}

	occupied := pos.Occupied()
	opp := turn.Opponent()
	for _, c := range candidates {
		if !castling.IsAllowed(c.right) {
			continue
		}
		if occupied&c.mustBeEmpty != 0 {
			continue
		}
		if pos.IsAttacked(c.kingFrom, opp) || pos.IsAttacked(c.transit, opp) || pos.IsAttacked(c.kingTo, opp) {
			continue
		}
		moves = append(moves, board.Move{From: c.kingFrom, To: c.kingTo})
	}
	return moves
}
