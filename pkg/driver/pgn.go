package driver

import (
	"fmt"
	"strings"
	"time"

	"github.com/herohde/basilisk/pkg/board"
	"github.com/herohde/basilisk/pkg/board/fen"
)

// Headers are the PGN tags that identify a game, following the seven-tag roster (Event, Site,
// Date, Round, White, Black, Result).
type Headers struct {
	Event, Site, White, Black string
	Date                      time.Time
}

// WritePGN renders a completed or in-progress game as a PGN string. Movetext uses UCI long
// algebraic notation (e.g. "e2e4", "e7e8q") rather than full SAN: spec.md's external interface
// already commits the engine to long algebraic for move I/O, and SAN's disambiguation and
// check/mate-suffix rules are outside this package's scope.
func WritePGN(h Headers, startFEN string, r Result) string {
	var sb strings.Builder

	writeTag(&sb, "Event", orDefault(h.Event, "?"))
	writeTag(&sb, "Site", orDefault(h.Site, "?"))
	writeTag(&sb, "Date", h.Date.Format("2006.01.02"))
	writeTag(&sb, "Round", "?")
	writeTag(&sb, "White", orDefault(h.White, "?"))
	writeTag(&sb, "Black", orDefault(h.Black, "?"))
	writeTag(&sb, "Result", resultTag(r.Outcome))
	if startFEN != "" && startFEN != fen.Initial {
		writeTag(&sb, "SetUp", "1")
		writeTag(&sb, "FEN", startFEN)
	}
	writeTag(&sb, "PlyCount", fmt.Sprintf("%d", len(r.Moves)))
	writeTag(&sb, "Termination", terminationTag(r.Outcome))
	sb.WriteString("\n")

	for i, m := range r.Moves {
		if i%2 == 0 {
			fmt.Fprintf(&sb, "%d. ", i/2+1)
		}
		fmt.Fprintf(&sb, "%v ", m)
	}
	sb.WriteString(resultTag(r.Outcome))
	sb.WriteString("\n")
	return sb.String()
}

func writeTag(sb *strings.Builder, key, value string) {
	fmt.Fprintf(sb, "[%s %q]\n", key, value)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func resultTag(r board.Result) string {
	switch r.Outcome {
	case board.WhiteWins:
		return "1-0"
	case board.BlackWins:
		return "0-1"
	case board.Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

func terminationTag(r board.Result) string {
	switch r.Reason {
	case board.Stalemate:
		return "Stalemate"
	case board.InsufficientMaterial:
		return "Insufficient material"
	case board.FiftyMoveRule:
		return "Fifty-move rule"
	case board.Repetition:
		return "Repetition"
	default:
		if r.Outcome == board.WhiteWins || r.Outcome == board.BlackWins {
			return "Normal"
		}
		return "Unterminated"
	}
}
