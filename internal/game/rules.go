package game

import (
	"fmt"

	nchess "github.com/corentings/chess/v2"
)

// Rules is the capability the state machine needs from a chess rules engine.
// Implementations own all rule knowledge: legality, special moves, mate and
// stalemate detection.
type Rules interface {
	// NewGame returns a cursor over a fresh game at the standard starting
	// position.
	NewGame() Cursor
}

// Cursor walks one game forward. Not safe for concurrent use; the machine
// drives it single-threaded.
type Cursor interface {
	// Push decodes a SAN move against the current position and applies it.
	// The error is the engine's own rejection, wrapped by the machine.
	Push(san string) error
	// Snapshot captures the current position as an immutable value.
	Snapshot() Position
}

// ChessEngine adapts github.com/corentings/chess/v2 to the Rules capability.
type ChessEngine struct{}

// NewChessEngine returns the default rules engine.
func NewChessEngine() *ChessEngine { return &ChessEngine{} }

func (*ChessEngine) NewGame() Cursor {
	return &chessCursor{game: nchess.NewGame()}
}

type chessCursor struct {
	game *nchess.Game
}

func (c *chessCursor) Push(san string) error {
	if err := c.game.PushNotationMove(san, nchess.AlgebraicNotation{}, nil); err != nil {
		return fmt.Errorf("decode %q: %w", san, err)
	}
	return nil
}

func (c *chessCursor) Snapshot() Position {
	pos := Position{Turn: colorFrom(c.game.Position().Turn())}

	board := c.game.Position().Board()
	for sq := 0; sq < 64; sq++ {
		piece := board.Piece(nchess.Square(sq))
		if piece == nchess.NoPiece {
			continue
		}
		pos.Squares[sq] = Piece{Kind: kindFrom(piece.Type()), Color: colorFrom(piece.Color())}
	}

	if moves := c.game.Moves(); len(moves) > 0 {
		last := moves[len(moves)-1]
		pos.LastMove = &Move{From: Square(last.S1()), To: Square(last.S2())}
		pos.Check = last.HasTag(nchess.Check)
	}

	switch c.game.Method() {
	case nchess.Checkmate:
		pos.Checkmate = true
		pos.Check = true
	case nchess.Stalemate:
		pos.Stalemate = true
	}

	return pos
}

func colorFrom(c nchess.Color) Color {
	switch c {
	case nchess.White:
		return White
	case nchess.Black:
		return Black
	}
	return NoColor
}

func kindFrom(t nchess.PieceType) Kind {
	switch t {
	case nchess.Pawn:
		return Pawn
	case nchess.Knight:
		return Knight
	case nchess.Bishop:
		return Bishop
	case nchess.Rook:
		return Rook
	case nchess.Queen:
		return Queen
	case nchess.King:
		return King
	}
	return NoKind
}
