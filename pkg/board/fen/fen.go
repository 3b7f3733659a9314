// Package fen reads and writes chess positions in Forsyth-Edwards Notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/herohde/basilisk/pkg/board"
)

// Initial is the FEN of the standard chess starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a FEN record into a ready-to-use Board.
func Decode(fen string) (*board.Board, error) {
	parts := strings.Split(strings.TrimSpace(fen), " ")
	if len(parts) != 6 {
		return nil, fmt.Errorf("fen: invalid number of fields: %q", fen)
	}

	var placements []board.Placement
	sq := board.A8
	for _, r := range parts[0] {
		switch {
		case r == '/':
			// Rank separator. Cosmetic.
		case unicode.IsDigit(r):
			sq -= board.Square(r - '0')
		case unicode.IsLetter(r):
			color, piece, ok := parsePiece(r)
			if !ok {
				return nil, fmt.Errorf("fen: invalid piece %q in %q", r, fen)
			}
			placements = append(placements, board.Placement{Square: sq, Color: color, Piece: piece})
			sq--
		default:
			return nil, fmt.Errorf("fen: invalid character %q in %q", r, fen)
		}
	}
	if sq+1 != board.H1 {
		return nil, fmt.Errorf("fen: wrong number of squares in %q", fen)
	}

	turn, ok := parseColor(parts[1])
	if !ok {
		return nil, fmt.Errorf("fen: invalid active color in %q", fen)
	}

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, fmt.Errorf("fen: invalid castling availability in %q", fen)
	}

	var ep board.Square
	epOK := parts[3] != "-"
	if epOK {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, fmt.Errorf("fen: invalid en passant target in %q: %w", fen, err)
		}
		ep = sq
	}

	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		return nil, fmt.Errorf("fen: invalid halfmove clock in %q", fen)
	}

	fullmove, err := strconv.Atoi(parts[5])
	if err != nil || fullmove < 1 {
		return nil, fmt.Errorf("fen: invalid fullmove number in %q", fen)
	}

	pos, err := board.NewPosition(placements)
	if err != nil {
		return nil, fmt.Errorf("fen: %q: %w", fen, err)
	}
	return board.NewBoard(pos, turn, castling, ep, epOK, halfmove, fullmove), nil
}

// Encode renders b in FEN notation.
func Encode(b *board.Board) string {
	var sb strings.Builder

	for r := board.NumRanks - 1; ; r-- {
		blanks := 0
		for f := board.NumFiles - 1; ; f-- {
			sq := board.NewSquare(f, r)
			if p := b.PieceTypeAt(sq); p == board.NoPiece {
				blanks++
			} else {
				if blanks > 0 {
					sb.WriteString(strconv.Itoa(blanks))
					blanks = 0
				}
				c, _, _ := b.Position().At(sq)
				sb.WriteRune(printPiece(c, p))
			}
			if f == 0 {
				break
			}
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r == 0 {
			break
		}
		sb.WriteString("/")
	}

	ep := "-"
	if sq, ok := b.EnPassant(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), printColor(b.Turn()), printCastling(b.Castling()), ep, b.HalfMoveClock(), b.FullMoveNumber())
}

func parseCastling(str string) (board.Castling, bool) {
	var ret board.Castling
	if str == "-" {
		return ret, true
	}
	for _, r := range str {
		switch r {
		case 'K':
			ret |= board.WhiteKingSideCastle
		case 'Q':
			ret |= board.WhiteQueenSideCastle
		case 'k':
			ret |= board.BlackKingSideCastle
		case 'q':
			ret |= board.BlackQueenSideCastle
		default:
			return 0, false
		}
	}
	return ret, true
}

func printCastling(c board.Castling) string {
	return c.String()
}

func parseColor(str string) (board.Color, bool) {
	switch str {
	case "w":
		return board.White, true
	case "b":
		return board.Black, true
	default:
		return 0, false
	}
}

func printColor(c board.Color) string {
	return c.String()
}

func parsePiece(r rune) (board.Color, board.Piece, bool) {
	p, ok := board.ParsePiece(r)
	if !ok {
		return 0, 0, false
	}
	if unicode.IsUpper(r) {
		return board.White, p, true
	}
	return board.Black, p, true
}

func printPiece(c board.Color, p board.Piece) rune {
	r := []rune(p.String())[0]
	if c == board.White {
		return []rune(strings.ToUpper(string(r)))[0]
	}
	return r
}
