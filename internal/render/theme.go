package render

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme holds the board palette: the two square colors plus the colors
// derived from them for highlights, bars and coordinates.
type Theme struct {
	Dark  color.NRGBA
	Light color.NRGBA

	highlight color.NRGBA // last-move tint
	check     color.NRGBA // checked-king tint
	barPanel  color.NRGBA
	barText   color.NRGBA
	clockText color.NRGBA
}

// Marker colors are fixed, not theme-derived, so the end-of-game signal reads
// the same across board styles.
var (
	winMarker         = color.NRGBA{R: 91, G: 172, B: 74, A: 230}
	checkmateMarker   = color.NRGBA{R: 200, G: 46, B: 38, A: 230}
	timeForfeitMarker = color.NRGBA{R: 74, G: 118, B: 188, A: 230}
	resignationMarker = color.NRGBA{R: 120, G: 122, B: 128, A: 230}
	drawMarker        = color.NRGBA{R: 142, G: 144, B: 150, A: 220}
)

// DefaultTheme matches the classic green/cream board.
func DefaultTheme() Theme {
	t, err := NewTheme("#769656", "#eeeed2")
	if err != nil {
		panic(err) // the defaults are compile-time constants
	}
	return t
}

// NewTheme builds a theme from hex square colors and derives the rest.
func NewTheme(dark, light string) (Theme, error) {
	dc, err := colorful.Hex(dark)
	if err != nil {
		return Theme{}, fmt.Errorf("dark square color %q: %w", dark, err)
	}
	lc, err := colorful.Hex(light)
	if err != nil {
		return Theme{}, fmt.Errorf("light square color %q: %w", light, err)
	}

	yellow, _ := colorful.Hex("#f6e27a")
	red, _ := colorful.Hex("#d8453c")
	panel, _ := colorful.Hex("#1c1f2e")

	return Theme{
		Dark:      toNRGBA(dc, 255),
		Light:     toNRGBA(lc, 255),
		highlight: toNRGBA(lc.BlendLab(yellow, 0.75), 150),
		check:     toNRGBA(red, 170),
		barPanel:  toNRGBA(panel, 235),
		barText:   color.NRGBA{R: 236, G: 239, B: 255, A: 255},
		clockText: color.NRGBA{R: 204, G: 210, B: 236, A: 255},
	}, nil
}

// SquareColor returns the fill for a square given its parity.
func (t Theme) SquareColor(dark bool) color.NRGBA {
	if dark {
		return t.Dark
	}
	return t.Light
}

func toNRGBA(c colorful.Color, alpha uint8) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}
}
