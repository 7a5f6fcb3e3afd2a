package render

import (
	"image"
	"image/color"

	"github.com/chessviz/pgn2gif/internal/game"
)

// drawTermination draws the end-of-game marker on the king squares of the
// final frame. Decisive games get a win ring on the winner's king and a
// reason-colored disc on the loser's; draws get a neutral ring on both. An
// unresolved game draws nothing regardless of the toggle.
func (r *Renderer) drawTermination(img *image.RGBA, pos *game.Position, term game.Termination) {
	switch term.Kind {
	case game.InProgress, game.Unknown:
		return
	case game.Draw:
		r.drawKingMarkerRing(img, pos, game.White, drawMarker)
		r.drawKingMarkerRing(img, pos, game.Black, drawMarker)
		return
	}

	var reason color.NRGBA
	switch term.Kind {
	case game.Checkmate:
		reason = checkmateMarker
	case game.TimeForfeit:
		reason = timeForfeitMarker
	default:
		reason = resignationMarker
	}

	r.drawKingMarkerRing(img, pos, term.Winner, winMarker)
	r.drawKingMarkerDisc(img, pos, term.Winner.Other(), reason)
}

func (r *Renderer) drawKingMarkerRing(img *image.RGBA, pos *game.Position, side game.Color, clr color.NRGBA) {
	center, ok := r.kingCenter(pos, side)
	if !ok {
		return
	}
	outer := r.squareSize() * 21 / 50
	drawRing(img, center, outer, outer*3/4, clr)
}

func (r *Renderer) drawKingMarkerDisc(img *image.RGBA, pos *game.Position, side game.Color, clr color.NRGBA) {
	center, ok := r.kingCenter(pos, side)
	if !ok {
		return
	}
	drawDisc(img, center, r.squareSize()*21/50, clr)
}

func (r *Renderer) kingCenter(pos *game.Position, side game.Color) (image.Point, bool) {
	king, ok := pos.King(side)
	if !ok {
		return image.Point{}, false
	}
	rect := r.squareRect(king)
	return image.Point{X: rect.Min.X + rect.Dx()/2, Y: rect.Min.Y + rect.Dy()/2}, true
}
