// Package game tracks board state across a recorded chess game. The rules of
// chess live behind the Rules capability; this package only orchestrates.
package game

import "fmt"

// Color identifies a side.
type Color int8

const (
	NoColor Color = iota
	White
	Black
)

// Other returns the opposing side.
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

// Kind is a piece kind without color.
type Kind int8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Piece is a colored piece. The zero value means an empty square.
type Piece struct {
	Kind  Kind
	Color Color
}

// Empty reports whether the square holds no piece.
func (p Piece) Empty() bool { return p.Kind == NoKind }

// Square indexes the board from a1=0 to h8=63, file-major within each rank.
type Square int8

// Sq builds a square from zero-based file and rank.
func Sq(file, rank int) Square { return Square(rank*8 + file) }

// File returns the zero-based file (a=0).
func (s Square) File() int { return int(s) % 8 }

// Rank returns the zero-based rank (1st=0).
func (s Square) Rank() int { return int(s) / 8 }

func (s Square) String() string {
	return fmt.Sprintf("%c%d", 'a'+s.File(), s.Rank()+1)
}

// Move is the from/to span of a played move, used for highlights.
type Move struct {
	From Square
	To   Square
}

// Position is a complete board snapshot after some number of plies, together
// with the derived facts rendering needs. Produced by a Rules game; value
// semantics, safe to share read-only across goroutines.
type Position struct {
	Squares   [64]Piece
	Turn      Color
	LastMove  *Move
	Check     bool
	Checkmate bool
	Stalemate bool
}

// King locates the king of the given color.
func (p *Position) King(c Color) (Square, bool) {
	for sq, piece := range p.Squares {
		if piece.Kind == King && piece.Color == c {
			return Square(sq), true
		}
	}
	return 0, false
}
