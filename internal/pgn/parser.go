package pgn

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/chessviz/pgn2gif/pkg/pgntok"
)

// MalformedRecordError reports a token that could not be mapped into the game
// record. The whole record is rejected; no partial result is returned.
type MalformedRecordError struct {
	TokenIndex int
	Token      string
	Reason     string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at token %d (%q): %s", e.TokenIndex, e.Token, e.Reason)
}

var (
	// sanShape accepts castling and standard algebraic moves with optional
	// capture, disambiguation, promotion and check/mate suffixes.
	sanShape = regexp.MustCompile(`^(O-O(-O)?|[KQRBN]?[a-h]?[1-8]?x?[a-h][1-8](=[QRBN])?)[+#]?$`)

	// clockPattern matches the time inside %clk-style comments: h:mm:ss with
	// an optional fractional second, assuming no other time-like text occurs
	// in a comment.
	clockPattern = regexp.MustCompile(`(\d{1,2}):(\d{2}):(\d{2}(?:\.\d{1,3})?)`)
)

// Parse turns a lexed token stream into a GameRecord. Tag pairs fill the
// header, move tokens become plies in order, and comments attach to the ply
// they follow (extracting a clock reading when one is present).
func Parse(stream *pgntok.Stream) (*GameRecord, error) {
	rec := &GameRecord{Header: make(map[string]string)}

	for i, tok := range stream.Tokens {
		switch tok.Kind {
		case pgntok.TagPair:
			if tok.Name == "" {
				return nil, &MalformedRecordError{TokenIndex: i, Token: tok.Value, Reason: "tag pair without a name"}
			}
			rec.Header[tok.Name] = tok.Value

		case pgntok.Move:
			san := strings.TrimRight(tok.Value, "!?")
			if !sanShape.MatchString(san) {
				return nil, &MalformedRecordError{TokenIndex: i, Token: tok.Value, Reason: "not a legal algebraic move shape"}
			}
			rec.Plies = append(rec.Plies, Ply{Index: len(rec.Plies), SAN: san})

		case pgntok.Comment:
			if len(rec.Plies) == 0 {
				continue // pre-game commentary carries no clock
			}
			ply := &rec.Plies[len(rec.Plies)-1]
			ply.Comment = strings.TrimSpace(tok.Value)
			clk, ok, err := extractClock(tok.Value)
			if err != nil {
				return nil, &MalformedRecordError{TokenIndex: i, Token: tok.Value, Reason: err.Error()}
			}
			if ok {
				ply.Clock = &clk
			}

		case pgntok.Result:
			if rec.Header["Result"] == "" {
				rec.Header["Result"] = tok.Value
			}

		default:
			return nil, &MalformedRecordError{TokenIndex: i, Token: tok.Value, Reason: "unknown token kind"}
		}
	}

	return rec, nil
}

// extractClock scans a comment body for a clock reading. The boolean reports
// whether one was found; an error means a reading was found but would not
// parse into a duration.
func extractClock(comment string) (Clock, bool, error) {
	m := clockPattern.FindStringSubmatch(comment)
	if m == nil {
		return Clock{}, false, nil
	}

	hours, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return Clock{}, false, fmt.Errorf("clock hours %q: %w", m[1], err)
	}
	minutes, err := strconv.ParseUint(m[2], 10, 32)
	if err != nil {
		return Clock{}, false, fmt.Errorf("clock minutes %q: %w", m[2], err)
	}
	if minutes >= 60 {
		return Clock{}, false, fmt.Errorf("clock minutes out of range: %s", m[2])
	}
	seconds, err := strconv.ParseFloat(m[3], 64)
	if err != nil || seconds >= 60 {
		return Clock{}, false, fmt.Errorf("clock seconds out of range: %s", m[3])
	}

	total := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds*float64(time.Second))
	return Clock{Remaining: total}, true, nil
}
