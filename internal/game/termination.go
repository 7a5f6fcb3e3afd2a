package game

import (
	"strings"

	"github.com/chessviz/pgn2gif/internal/pgn"
)

// TerminationKind classifies how a game ended. Draw subtypes (agreement,
// repetition, insufficient material, fifty-move, stalemate) are collapsed
// into a single Draw for rendering purposes.
type TerminationKind int

const (
	InProgress TerminationKind = iota
	Checkmate
	Resigned
	TimeForfeit
	Draw
	Unknown
)

func (k TerminationKind) String() string {
	switch k {
	case InProgress:
		return "in progress"
	case Checkmate:
		return "checkmate"
	case Resigned:
		return "resignation"
	case TimeForfeit:
		return "time forfeit"
	case Draw:
		return "draw"
	}
	return "unknown"
}

// Termination is the resolved end state of a game. Winner is set only for
// decisive kinds.
type Termination struct {
	Kind   TerminationKind
	Winner Color
}

// Decisive reports whether one side won.
func (t Termination) Decisive() bool {
	return t.Kind == Checkmate || t.Kind == Resigned || t.Kind == TimeForfeit
}

// DeriveTermination resolves the end state from the final position and the
// header. Engine-detected checkmate or stalemate always wins over header
// text; otherwise the Termination tag is pattern-matched, then the Result
// tag decides. A record with no resolvable outcome at all is InProgress and
// gets no marker.
func DeriveTermination(final *Position, record *pgn.GameRecord) Termination {
	if final.Checkmate {
		return Termination{Kind: Checkmate, Winner: final.Turn.Other()}
	}
	if final.Stalemate {
		return Termination{Kind: Draw}
	}

	winner, drawn, resolved := parseResult(record.Tag("Result"))
	if !resolved {
		// No result tag: assume the side left to move is the loser.
		winner = final.Turn.Other()
	}

	switch text := strings.ToLower(record.Tag("Termination")); {
	case text == "":
		// no termination tag, decide on the result alone below
	case strings.Contains(text, "time"):
		return Termination{Kind: TimeForfeit, Winner: winner}
	case strings.Contains(text, "resign"), strings.Contains(text, "abandon"):
		return Termination{Kind: Resigned, Winner: winner}
	case containsAny(text, "draw", "agreement", "repetition", "insufficient", "fifty", "stalemate"):
		return Termination{Kind: Draw}
	default:
		// unrecognized termination text is assumed to mean resignation
		if drawn {
			return Termination{Kind: Draw}
		}
		return Termination{Kind: Resigned, Winner: winner}
	}

	switch {
	case drawn:
		return Termination{Kind: Draw}
	case resolved:
		return Termination{Kind: Resigned, Winner: winner}
	}
	return Termination{Kind: InProgress}
}

func parseResult(result string) (winner Color, drawn, resolved bool) {
	switch strings.TrimSpace(result) {
	case "1-0":
		return White, false, true
	case "0-1":
		return Black, false, true
	case "1/2-1/2":
		return NoColor, true, true
	}
	return NoColor, false, false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
