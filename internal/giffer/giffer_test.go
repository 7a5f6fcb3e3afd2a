package giffer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/gif"
	"testing"
	"time"

	"golang.org/x/image/font/basicfont"

	"github.com/chessviz/pgn2gif/internal/game"
	"github.com/chessviz/pgn2gif/internal/gifenc"
	"github.com/chessviz/pgn2gif/internal/pgn"
	"github.com/chessviz/pgn2gif/internal/render"
)

type fakePieces struct{}

func (fakePieces) PieceSVG(kind game.Kind, c game.Color) ([]byte, error) {
	fill := "#303030"
	if c == game.White {
		fill = "#e8e8e8"
	}
	svg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 45 45"><circle cx="22.5" cy="22.5" r="%d" fill="%s"/></svg>`, 8+int(kind)*2, fill)
	return []byte(svg), nil
}

func record(header map[string]string, moves ...string) *pgn.GameRecord {
	if header == nil {
		header = map[string]string{}
	}
	rec := &pgn.GameRecord{Header: header}
	for i, san := range moves {
		rec.Plies = append(rec.Plies, pgn.Ply{Index: i, SAN: san})
	}
	return rec
}

func newGiffer(t *testing.T, opts Options) *Giffer {
	t.Helper()
	if opts.Render.Size == 0 {
		opts.Render.Size = 64
	}
	if opts.Delay.Default == 0 {
		opts.Delay.Default = 100 * time.Millisecond
	}
	g, err := New(game.NewChessEngine(), render.Assets{Pieces: fakePieces{}, Face: basicfont.Face7x13}, opts, nil)
	if err != nil {
		t.Fatalf("giffer: %v", err)
	}
	return g
}

func runToGIF(t *testing.T, g *Giffer, rec *pgn.GameRecord) (*gif.GIF, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if err := g.Run(context.Background(), rec, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	raw := buf.Bytes()
	decoded, err := gif.DecodeAll(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return decoded, raw
}

// Two plies with a fixed delay: three frames, all with the same delay and no
// marker since nothing terminates the game.
func TestRunTwoPliesFixedDelay(t *testing.T) {
	rec := record(nil, "e4", "e5")

	withMarkers := newGiffer(t, Options{Render: render.Config{Terminations: true}})
	decoded, rawA := runToGIF(t, withMarkers, rec)

	if len(decoded.Image) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(decoded.Image))
	}
	for i, d := range decoded.Delay {
		if d != 10 {
			t.Fatalf("frame %d delay: got %dcs, want 10cs", i, d)
		}
	}

	noMarkers := newGiffer(t, Options{Render: render.Config{Terminations: false}})
	_, rawB := runToGIF(t, noMarkers, rec)
	if !bytes.Equal(rawA, rawB) {
		t.Fatalf("marker drawn for an unresolved game")
	}
}

// A mate-in-one: the final frame carries the marker, earlier frames do not.
func TestRunCheckmateMarkerOnFinalFrame(t *testing.T) {
	rec := record(nil, "f3", "e5", "g4", "Qh4#")

	marked, _ := runToGIF(t, newGiffer(t, Options{Render: render.Config{Terminations: true}}), rec)
	plain, _ := runToGIF(t, newGiffer(t, Options{Render: render.Config{Terminations: false}}), rec)

	if len(marked.Image) != 5 {
		t.Fatalf("expected 5 frames, got %d", len(marked.Image))
	}
	last := len(marked.Image) - 1
	for i := 0; i < last; i++ {
		if !bytes.Equal(marked.Image[i].Pix, plain.Image[i].Pix) {
			t.Fatalf("frame %d carries a marker before the game ended", i)
		}
	}
	if bytes.Equal(marked.Image[last].Pix, plain.Image[last].Pix) {
		t.Fatalf("final frame of a mate carries no marker")
	}
}

// Time-forfeit header without clock annotations: fixed delays still apply
// and the final frame is marked.
func TestRunTimeForfeitHeader(t *testing.T) {
	header := map[string]string{"Termination": "Time forfeit"}
	rec := record(header, "e4", "e5")

	marked, _ := runToGIF(t, newGiffer(t, Options{Render: render.Config{Terminations: true}}), rec)
	plain, _ := runToGIF(t, newGiffer(t, Options{Render: render.Config{Terminations: false}}), rec)

	for i, d := range marked.Delay {
		if d != 10 {
			t.Fatalf("frame %d delay: got %dcs, want fixed 10cs", i, d)
		}
	}
	last := len(marked.Image) - 1
	if bytes.Equal(marked.Image[last].Pix, plain.Image[last].Pix) {
		t.Fatalf("time forfeit marker missing from final frame")
	}
}

// Player bars toggled on and off: identical dimensions, different content.
func TestRunBarsKeepDimensions(t *testing.T) {
	header := map[string]string{"White": "A", "Black": "B", "WhiteElo": "1700", "BlackElo": "1650"}
	rec := record(header, "e4", "e5")

	withBars, rawA := runToGIF(t, newGiffer(t, Options{Render: render.Config{PlayerBars: true}}), rec)
	withoutBars, rawB := runToGIF(t, newGiffer(t, Options{Render: render.Config{PlayerBars: false}}), rec)

	if withBars.Config.Width != withoutBars.Config.Width || withBars.Config.Height != withoutBars.Config.Height {
		t.Fatalf("bars changed animation dimensions")
	}
	if bytes.Equal(rawA, rawB) {
		t.Fatalf("bars toggle had no visible effect")
	}
}

func TestRunRealTimeDelays(t *testing.T) {
	rec := record(nil, "e4", "e5", "Nf3", "Nc6")
	clocks := []time.Duration{
		60 * time.Second, // white after e4
		60 * time.Second, // black after e5
		55 * time.Second, // white after Nf3: spent 5s
		52 * time.Second, // black after Nc6: spent 8s
	}
	for i := range rec.Plies {
		rec.Plies[i].Clock = &pgn.Clock{Remaining: clocks[i]}
	}

	g := newGiffer(t, Options{Delay: gifenc.DelayConfig{Mode: gifenc.RealTime, Default: 100 * time.Millisecond}})
	decoded, _ := runToGIF(t, g, rec)

	want := []int{10, 10, 500, 800, 10}
	for i, d := range decoded.Delay {
		if d != want[i] {
			t.Fatalf("frame %d delay: got %dcs, want %dcs", i, d, want[i])
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	header := map[string]string{"White": "A", "Black": "B", "Result": "1-0"}
	build := func() []byte {
		rec := record(header, "e4", "e5", "Nf3")
		g := newGiffer(t, Options{Render: render.Config{PlayerBars: true, Terminations: true, Coords: true}})
		_, raw := runToGIF(t, g, rec)
		return raw
	}

	if !bytes.Equal(build(), build()) {
		t.Fatalf("pipeline is not deterministic")
	}
}

func TestRunIllegalMoveAborts(t *testing.T) {
	g := newGiffer(t, Options{})
	var buf bytes.Buffer
	err := g.Run(context.Background(), record(nil, "e4", "Ke4"), &buf)

	var imErr *game.IllegalMoveError
	if !errors.As(err, &imErr) {
		t.Fatalf("expected IllegalMoveError, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("partial output written after failure")
	}
}
