// Package render turns board positions into composited raster frames:
// square grid, move highlights, piece artwork, player bars and the
// end-of-game marker. Rendering is deterministic and side-effect free, so
// frames can be produced in parallel.
package render

import (
	"fmt"
	"image"
	imagedraw "image/draw"

	"golang.org/x/image/font"

	"github.com/chessviz/pgn2gif/internal/game"
)

// Config is the rendering surface of one run. Size is the square frame edge
// in pixels and must be a positive multiple of 8; toggles select the layers
// drawn on top of the board.
type Config struct {
	Size         int
	PlayerBars   bool
	Terminations bool
	Coords       bool
	Flip         bool
	Theme        Theme
}

// Assets bundles the read-only resources shared by every render call. The
// face may be nil when neither bars nor coordinates are enabled.
type Assets struct {
	Pieces PieceProvider
	Face   font.Face
}

// Bars carries the per-frame player bar content, precomputed by the caller.
// Empty strings are omitted, not placeholder-filled.
type Bars struct {
	WhiteText  string
	BlackText  string
	WhiteClock string
	BlackClock string
}

func (b Bars) present() bool { return b.WhiteText != "" || b.BlackText != "" }

// Renderer produces frames for one game. Safe for concurrent use.
type Renderer struct {
	cfg    Config
	face   font.Face
	pieces *pieceSet
}

// New validates the config and binds the asset bundle.
func New(cfg Config, assets Assets) (*Renderer, error) {
	if cfg.Size <= 0 || cfg.Size%8 != 0 {
		return nil, fmt.Errorf("frame size %d is not a positive multiple of 8", cfg.Size)
	}
	if cfg.Theme.Dark.A == 0 && cfg.Theme.Light.A == 0 {
		cfg.Theme = DefaultTheme()
	}
	if cfg.Coords && assets.Face == nil {
		return nil, &MissingAssetError{Asset: "font (coordinates enabled)"}
	}
	return &Renderer{
		cfg:    cfg,
		face:   assets.Face,
		pieces: newPieceSet(assets.Pieces),
	}, nil
}

// Size returns the frame edge in pixels.
func (r *Renderer) Size() int { return r.cfg.Size }

func (r *Renderer) squareSize() int { return r.cfg.Size / 8 }

// Render composites one frame for the position. The termination marker is
// drawn only when this is the final frame, the toggle is on and the game
// actually resolved to an outcome.
func (r *Renderer) Render(pos *game.Position, final bool, term game.Termination, bars Bars) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, r.cfg.Size, r.cfg.Size))

	r.drawSquares(img)
	r.drawHighlights(img, pos)
	if err := r.drawPieces(img, pos); err != nil {
		return nil, err
	}
	if r.cfg.Coords {
		r.drawCoordinates(img)
	}
	if r.cfg.PlayerBars && bars.present() {
		if err := r.drawPlayerBars(img, bars); err != nil {
			return nil, err
		}
	}
	if final && r.cfg.Terminations {
		r.drawTermination(img, pos, term)
	}

	return img, nil
}

// squareRect maps a board square to its pixel rectangle, honoring the flip
// setting (white at the bottom by default).
func (r *Renderer) squareRect(sq game.Square) image.Rectangle {
	size := r.squareSize()
	col := sq.File()
	row := 7 - sq.Rank()
	if r.cfg.Flip {
		col = 7 - col
		row = 7 - row
	}
	x := col * size
	y := row * size
	return image.Rect(x, y, x+size, y+size)
}

// squareAt is the inverse of squareRect for visual grid cells.
func (r *Renderer) squareAt(row, col int) game.Square {
	if r.cfg.Flip {
		return game.Sq(7-col, row)
	}
	return game.Sq(col, 7-row)
}

func darkSquare(sq game.Square) bool {
	return (sq.File()+sq.Rank())%2 == 0
}

func (r *Renderer) drawSquares(img *image.RGBA) {
	for sq := game.Square(0); sq < 64; sq++ {
		fillRect(img, r.squareRect(sq), r.cfg.Theme.SquareColor(darkSquare(sq)))
	}
}

func (r *Renderer) drawHighlights(img *image.RGBA, pos *game.Position) {
	if pos.LastMove != nil {
		overlayRect(img, r.squareRect(pos.LastMove.From), r.cfg.Theme.highlight)
		overlayRect(img, r.squareRect(pos.LastMove.To), r.cfg.Theme.highlight)
	}
	if pos.Check {
		if king, ok := pos.King(pos.Turn); ok {
			overlayRect(img, r.squareRect(king), r.cfg.Theme.check)
		}
	}
}

func (r *Renderer) drawPieces(img *image.RGBA, pos *game.Position) error {
	size := r.squareSize()
	for sq := game.Square(0); sq < 64; sq++ {
		piece := pos.Squares[sq]
		if piece.Empty() {
			continue
		}
		pieceImg, err := r.pieces.image(piece, size)
		if err != nil {
			return err
		}
		imagedraw.Draw(img, r.squareRect(sq), pieceImg, image.Point{}, imagedraw.Over)
	}
	return nil
}

// drawCoordinates puts rank digits in the left column and file letters in
// the bottom row, colored with the opposite square color.
func (r *Renderer) drawCoordinates(img *image.RGBA) {
	drawer := &font.Drawer{Dst: img, Face: r.face}
	ascent := r.face.Metrics().Ascent.Ceil()
	size := r.squareSize()
	pad := size / 16

	for row := 0; row < 8; row++ {
		sq := r.squareAt(row, 0)
		label := fmt.Sprintf("%d", sq.Rank()+1)
		clr := r.cfg.Theme.SquareColor(!darkSquare(sq))
		drawString(drawer, label, pad, row*size+pad+ascent, clr)
	}
	for col := 0; col < 8; col++ {
		sq := r.squareAt(7, col)
		label := string(rune('a' + sq.File()))
		clr := r.cfg.Theme.SquareColor(!darkSquare(sq))
		width := drawer.MeasureString(label).Round()
		drawString(drawer, label, (col+1)*size-width-pad, r.cfg.Size-pad, clr)
	}
}
