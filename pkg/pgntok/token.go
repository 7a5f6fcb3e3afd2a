// Package pgntok defines the token stream exchanged between a PGN lexer and
// the game record parser. A lexer produces tokens in source order; the parser
// consumes them without ever seeing the raw text.
package pgntok

// Kind discriminates the token variants of a PGN game.
type Kind int

const (
	// TagPair is a header entry like [White "Carlsen, M."].
	TagPair Kind = iota
	// Move is a single SAN move token from the movetext, with move numbers
	// and check/mate suffixes left intact.
	Move
	// Comment is the body of a {...} brace comment, attached to the move
	// token that precedes it.
	Comment
	// Result is the game result terminator (1-0, 0-1, 1/2-1/2 or *).
	Result
)

// Token is one lexed element of a PGN game.
type Token struct {
	Kind  Kind
	Name  string // tag name, set for TagPair
	Value string // tag value, SAN text, comment body or result string
}

// Stream is an ordered, fully lexed PGN game.
type Stream struct {
	Tokens []Token
}
