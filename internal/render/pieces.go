package render

import (
	"bytes"
	"fmt"
	"image"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/chessviz/pgn2gif/internal/game"
)

// MissingAssetError reports a piece or font resource that is required by an
// enabled feature but unavailable. Fatal to the whole run.
type MissingAssetError struct {
	Asset string
	Err   error
}

func (e *MissingAssetError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("missing asset %s: %v", e.Asset, e.Err)
	}
	return fmt.Sprintf("missing asset %s", e.Asset)
}

func (e *MissingAssetError) Unwrap() error { return e.Err }

// PieceProvider supplies piece artwork as SVG documents keyed by kind and
// color. Implementations must be safe for concurrent use; rendering tasks
// share one provider.
type PieceProvider interface {
	PieceSVG(kind game.Kind, color game.Color) ([]byte, error)
}

type pieceCacheKey struct {
	piece game.Piece
	size  int
}

// pieceSet rasterizes provider SVGs at a fixed square size, caching results.
type pieceSet struct {
	provider PieceProvider

	mu    sync.RWMutex
	cache map[pieceCacheKey]image.Image
}

func newPieceSet(provider PieceProvider) *pieceSet {
	return &pieceSet{provider: provider, cache: make(map[pieceCacheKey]image.Image)}
}

func (s *pieceSet) image(piece game.Piece, size int) (image.Image, error) {
	key := pieceCacheKey{piece: piece, size: size}

	s.mu.RLock()
	if img, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return img, nil
	}
	s.mu.RUnlock()

	if s.provider == nil {
		return nil, &MissingAssetError{Asset: pieceName(piece)}
	}
	data, err := s.provider.PieceSVG(piece.Kind, piece.Color)
	if err != nil {
		return nil, &MissingAssetError{Asset: pieceName(piece), Err: err}
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(sanitizeSVG(data)))
	if err != nil {
		return nil, &MissingAssetError{Asset: pieceName(piece), Err: fmt.Errorf("parse svg: %w", err)}
	}

	if icon.ViewBox.W <= 0 {
		icon.ViewBox.W = float64(size)
	}
	if icon.ViewBox.H <= 0 {
		icon.ViewBox.H = float64(size)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	s.mu.Lock()
	s.cache[key] = img
	s.mu.Unlock()

	return img, nil
}

func pieceName(piece game.Piece) string {
	var kind string
	switch piece.Kind {
	case game.King:
		kind = "K"
	case game.Queen:
		kind = "Q"
	case game.Rook:
		kind = "R"
	case game.Bishop:
		kind = "B"
	case game.Knight:
		kind = "N"
	case game.Pawn:
		kind = "P"
	default:
		kind = "?"
	}
	prefix := "b"
	if piece.Color == game.White {
		prefix = "w"
	}
	return prefix + kind
}
