package assets

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/chessviz/pgn2gif/internal/game"
	"github.com/chessviz/pgn2gif/internal/render"
)

func TestDiskPiecesReadsNamedFiles(t *testing.T) {
	dir := t.TempDir()
	want := []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`)
	if err := os.WriteFile(filepath.Join(dir, "bQ.svg"), want, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := NewDiskPieces(dir).PieceSVG(game.Queen, game.Black)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("wrong file content")
	}
}

func TestDiskPiecesMissingFile(t *testing.T) {
	_, err := NewDiskPieces(t.TempDir()).PieceSVG(game.King, game.White)

	var maErr *render.MissingAssetError
	if !errors.As(err, &maErr) {
		t.Fatalf("expected MissingAssetError, got %v", err)
	}
	if maErr.Asset != "wK.svg" {
		t.Fatalf("asset name: got %q", maErr.Asset)
	}
}

func TestLoadFaceFallback(t *testing.T) {
	face, err := LoadFace("", 14)
	if err != nil {
		t.Fatalf("fallback face: %v", err)
	}
	if face != basicfont.Face7x13 {
		t.Fatalf("expected built-in bitmap face")
	}
}

func TestLoadFaceRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "font.ttf")
	if err := os.WriteFile(path, []byte("not a font"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	var maErr *render.MissingAssetError
	if _, err := LoadFace(path, 14); !errors.As(err, &maErr) {
		t.Fatalf("expected MissingAssetError, got %v", err)
	}
}
