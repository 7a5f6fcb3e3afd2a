package pgn

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chessviz/pgn2gif/pkg/pgntok"
)

// Lex reads raw PGN text and produces the token stream consumed by Parse.
// Only the mainline is kept: variations in parentheses are skipped, numeric
// annotation glyphs and move numbers are dropped. Reading stops after the
// first game.
func Lex(r io.Reader) (*pgntok.Stream, error) {
	br := bufio.NewReader(r)
	stream := &pgntok.Stream{}

	inMovetext := false
	depth := 0 // parenthesis nesting for skipped variations
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			trimmed := strings.TrimSpace(line)
			switch {
			case trimmed == "":
				if inMovetext && len(stream.Tokens) > 0 {
					return stream, nil // blank line ends the first game's movetext
				}
			case strings.HasPrefix(trimmed, "["):
				if inMovetext {
					return stream, nil // next game's tag section
				}
				name, value, perr := lexTagPair(trimmed)
				if perr != nil {
					return nil, perr
				}
				stream.Tokens = append(stream.Tokens, pgntok.Token{Kind: pgntok.TagPair, Name: name, Value: value})
			default:
				inMovetext = true
				if lerr := lexMovetextLine(trimmed, br, stream, &depth); lerr != nil {
					return nil, lerr
				}
			}
		}
		if err == io.EOF {
			return stream, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read pgn: %w", err)
		}
	}
}

func lexTagPair(line string) (name, value string, err error) {
	if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "]") {
		return "", "", fmt.Errorf("unterminated tag pair: %s", line)
	}
	body := line[1 : len(line)-1]
	open := strings.IndexByte(body, '"')
	last := strings.LastIndexByte(body, '"')
	if open < 0 || last <= open {
		return "", "", fmt.Errorf("tag pair without quoted value: %s", line)
	}
	return strings.TrimSpace(body[:open]), body[open+1 : last], nil
}

var resultStrings = map[string]bool{"1-0": true, "0-1": true, "1/2-1/2": true, "*": true}

// lexMovetextLine tokenizes one movetext line. Brace comments and variations
// may span lines, so the reader is consulted when a comment is left open and
// the variation depth persists across calls.
func lexMovetextLine(line string, br *bufio.Reader, stream *pgntok.Stream, depth *int) error {
	rest := line

	for rest != "" {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			break
		}

		switch rest[0] {
		case '{':
			body, remainder, err := readBraceComment(rest[1:], br)
			if err != nil {
				return err
			}
			if *depth == 0 {
				stream.Tokens = append(stream.Tokens, pgntok.Token{Kind: pgntok.Comment, Value: body})
			}
			rest = remainder
			continue
		case ';':
			rest = "" // comment to end of line
			continue
		case '(':
			*depth++
			rest = rest[1:]
			continue
		case ')':
			if *depth > 0 {
				*depth--
			}
			rest = rest[1:]
			continue
		}

		word := rest
		if i := strings.IndexAny(rest, " \t{};()"); i >= 0 {
			word, rest = rest[:i], rest[i:]
		} else {
			rest = ""
		}
		if *depth > 0 {
			continue
		}

		switch {
		case word == "", strings.HasPrefix(word, "$"):
			// numeric annotation glyph
		case resultStrings[word]:
			stream.Tokens = append(stream.Tokens, pgntok.Token{Kind: pgntok.Result, Value: word})
		default:
			san := stripMoveNumber(word)
			if san != "" {
				stream.Tokens = append(stream.Tokens, pgntok.Token{Kind: pgntok.Move, Value: san})
			}
		}
	}

	return nil
}

// readBraceComment consumes text until the closing brace, pulling more lines
// from the reader if needed. Returns the comment body and the unread tail of
// the current line.
func readBraceComment(rest string, br *bufio.Reader) (body, remainder string, err error) {
	var sb strings.Builder
	for {
		if i := strings.IndexByte(rest, '}'); i >= 0 {
			sb.WriteString(rest[:i])
			return sb.String(), rest[i+1:], nil
		}
		sb.WriteString(rest)
		sb.WriteByte(' ')
		line, rerr := br.ReadString('\n')
		if line == "" && rerr != nil {
			return "", "", fmt.Errorf("unterminated comment")
		}
		rest = strings.TrimRight(line, "\r\n")
	}
}

// stripMoveNumber drops a leading move number with its dots ("12." or
// "12..."), returning the SAN part that may follow in the same word.
func stripMoveNumber(word string) string {
	i := 0
	for i < len(word) && word[i] >= '0' && word[i] <= '9' {
		i++
	}
	if i == 0 {
		return word
	}
	j := i
	for j < len(word) && word[j] == '.' {
		j++
	}
	if j == i {
		return word // bare digits belong to SAN-like garbage, let Parse reject it
	}
	return word[j:]
}
