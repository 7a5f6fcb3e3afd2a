package game

import (
	"fmt"

	"github.com/chessviz/pgn2gif/internal/pgn"
)

// IllegalMoveError reports a ply the rules engine rejected against the
// position it was applied to.
type IllegalMoveError struct {
	PlyIndex int
	SAN      string
	Err      error
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %q at ply %d: %v", e.SAN, e.PlyIndex, e.Err)
}

func (e *IllegalMoveError) Unwrap() error { return e.Err }

// Machine applies a game record ply by ply through a rules engine.
type Machine struct {
	rules Rules
}

// NewMachine builds a state machine over the given rules capability.
func NewMachine(rules Rules) *Machine {
	return &Machine{rules: rules}
}

// Positions replays the whole record and returns every board position in
// order, starting with the initial one: len(result) == len(record.Plies)+1.
// The first illegal ply aborts with no partial result.
func (m *Machine) Positions(record *pgn.GameRecord) ([]Position, error) {
	cursor := m.rules.NewGame()
	positions := make([]Position, 0, len(record.Plies)+1)
	positions = append(positions, cursor.Snapshot())

	for i, ply := range record.Plies {
		if err := cursor.Push(ply.SAN); err != nil {
			return nil, &IllegalMoveError{PlyIndex: i, SAN: ply.SAN, Err: err}
		}
		positions = append(positions, cursor.Snapshot())
	}

	return positions, nil
}

// Initial returns the canonical starting position.
func (m *Machine) Initial() Position {
	return m.rules.NewGame().Snapshot()
}
