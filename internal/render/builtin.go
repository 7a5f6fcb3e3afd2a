package render

import (
	"fmt"

	"github.com/chessviz/pgn2gif/internal/game"
)

// builtinPieces is a flat geometric piece set used when no piece directory
// is configured. Shapes are drawn in a 45x45 viewbox to match common piece
// asset conventions.
type builtinPieces struct{}

// BuiltinPieces returns the built-in flat piece set.
func BuiltinPieces() PieceProvider { return builtinPieces{} }

func (builtinPieces) PieceSVG(kind game.Kind, c game.Color) ([]byte, error) {
	fill, stroke := "#f8f8f8", "#1a1a1a"
	if c == game.Black {
		fill, stroke = "#2b2b2b", "#e6e6e6"
	}

	var body string
	switch kind {
	case game.Pawn:
		body = `<circle cx="22.5" cy="18" r="7"/><path d="M 13 38 Q 13 26 22.5 26 Q 32 26 32 38 Z"/>`
	case game.Knight:
		body = `<path d="M 12 38 L 12 30 Q 12 14 26 11 L 24 7 L 33 13 Q 35 24 28 26 L 30 38 Z"/>`
	case game.Bishop:
		body = `<path d="M 22.5 7 Q 31 16 31 24 Q 31 31 22.5 31 Q 14 31 14 24 Q 14 16 22.5 7 Z"/><rect x="13" y="33" width="19" height="5"/>`
	case game.Rook:
		body = `<path d="M 12 38 L 12 14 L 16 14 L 16 18 L 20 18 L 20 14 L 25 14 L 25 18 L 29 18 L 29 14 L 33 14 L 33 38 Z"/>`
	case game.Queen:
		body = `<path d="M 11 38 L 8 15 L 16 24 L 22.5 8 L 29 24 L 37 15 L 34 38 Z"/>`
	case game.King:
		body = `<rect x="20.5" y="6" width="4" height="10"/><rect x="17.5" y="9" width="10" height="4"/><path d="M 13 38 Q 11 20 22.5 18 Q 34 20 32 38 Z"/>`
	default:
		return nil, &MissingAssetError{Asset: fmt.Sprintf("piece %v", kind)}
	}

	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 45 45"><g fill="%s" stroke="%s" stroke-width="1.5">%s</g></svg>`,
		fill, stroke, body)
	return []byte(svg), nil
}
