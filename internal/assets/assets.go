// Package assets loads piece artwork and fonts from disk.
package assets

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"

	"github.com/chessviz/pgn2gif/internal/game"
	"github.com/chessviz/pgn2gif/internal/render"
)

// DiskPieces serves piece SVGs from a directory laid out as wK.svg, bN.svg
// and so on. Files are read lazily; the renderer caches the rasterized
// result.
type DiskPieces struct {
	dir string
}

func NewDiskPieces(dir string) *DiskPieces {
	return &DiskPieces{dir: dir}
}

func (p *DiskPieces) PieceSVG(kind game.Kind, c game.Color) ([]byte, error) {
	name := pieceFile(kind, c)
	data, err := os.ReadFile(filepath.Join(p.dir, name))
	if err != nil {
		return nil, &render.MissingAssetError{Asset: name, Err: err}
	}
	return data, nil
}

func pieceFile(kind game.Kind, c game.Color) string {
	side := "w"
	if c == game.Black {
		side = "b"
	}
	letters := map[game.Kind]string{
		game.Pawn:   "P",
		game.Knight: "N",
		game.Bishop: "B",
		game.Rook:   "R",
		game.Queen:  "Q",
		game.King:   "K",
	}
	return side + letters[kind] + ".svg"
}

// LoadFace opens a TTF or OTF file sized for text overlays. An empty path
// falls back to the built-in bitmap face.
func LoadFace(path string, points float64) (font.Face, error) {
	if path == "" {
		return basicfont.Face7x13, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &render.MissingAssetError{Asset: path, Err: err}
	}
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, &render.MissingAssetError{Asset: path, Err: fmt.Errorf("parse font: %w", err)}
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, &render.MissingAssetError{Asset: path, Err: err}
	}
	return face, nil
}
