package render

import (
	"image"

	"golang.org/x/image/font"
)

// drawPlayerBars overlays translucent strips at the top and bottom of the
// frame. The side shown at the bottom of the board gets the bottom bar, so
// the bars follow the flip setting. Frame dimensions never change; bars only
// repaint their own regions.
func (r *Renderer) drawPlayerBars(img *image.RGBA, bars Bars) error {
	if r.face == nil {
		return &MissingAssetError{Asset: "font (player bars enabled)"}
	}

	barHeight := r.squareSize() / 2
	topRect := image.Rect(0, 0, r.cfg.Size, barHeight)
	bottomRect := image.Rect(0, r.cfg.Size-barHeight, r.cfg.Size, r.cfg.Size)

	topText, topClock := bars.BlackText, bars.BlackClock
	bottomText, bottomClock := bars.WhiteText, bars.WhiteClock
	if r.cfg.Flip {
		topText, topClock, bottomText, bottomClock = bottomText, bottomClock, topText, topClock
	}

	r.drawBar(img, topRect, topText, topClock)
	r.drawBar(img, bottomRect, bottomText, bottomClock)
	return nil
}

func (r *Renderer) drawBar(img *image.RGBA, rect image.Rectangle, text, clock string) {
	overlayRect(img, rect, r.cfg.Theme.barPanel)

	// Clip text to the bar strip so tall glyphs never bleed onto the board.
	strip := img.SubImage(rect).(*image.RGBA)
	drawer := &font.Drawer{Dst: strip, Face: r.face}
	metrics := r.face.Metrics()
	baseline := rect.Min.Y + (rect.Dy()+metrics.Ascent.Ceil()-metrics.Descent.Ceil())/2
	pad := r.squareSize() / 4

	clockWidth := 0
	if clock != "" {
		clockWidth = drawer.MeasureString(clock).Round()
		drawString(drawer, clock, rect.Max.X-pad-clockWidth, baseline, r.cfg.Theme.clockText)
	}

	if text != "" {
		maxWidth := rect.Dx() - pad*2 - clockWidth
		drawString(drawer, truncateWithEllipsis(r.face, text, maxWidth), rect.Min.X+pad, baseline, r.cfg.Theme.barText)
	}
}
