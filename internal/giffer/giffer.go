// Package giffer wires the pipeline together: replay the game record into
// positions, render every frame in parallel, and feed the ordered result to
// the GIF encoder.
package giffer

import (
	"context"
	"image"
	"io"
	"runtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chessviz/pgn2gif/internal/game"
	"github.com/chessviz/pgn2gif/internal/gifenc"
	"github.com/chessviz/pgn2gif/internal/pgn"
	"github.com/chessviz/pgn2gif/internal/render"
)

// Options collects the pipeline knobs. Workers caps the render pool; zero
// means one worker per available core.
type Options struct {
	Render  render.Config
	Delay   gifenc.DelayConfig
	Workers int
}

// Giffer runs the full record-to-animation pipeline. One instance per
// configuration; Run may be called for multiple records.
type Giffer struct {
	machine  *game.Machine
	renderer *render.Renderer
	opts     Options
	log      *zap.Logger
}

// New builds a pipeline over the given rules engine and asset bundle.
func New(rules game.Rules, assets render.Assets, opts Options, log *zap.Logger) (*Giffer, error) {
	renderer, err := render.New(opts.Render, assets)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Giffer{
		machine:  game.NewMachine(rules),
		renderer: renderer,
		opts:     opts,
		log:      log,
	}, nil
}

// Run converts one game record into an animated GIF written to out. The
// first failure anywhere in the pipeline aborts the run; partially rendered
// frames are discarded.
func (g *Giffer) Run(ctx context.Context, record *pgn.GameRecord, out io.Writer) error {
	log := g.log.With(zap.String("run_id", uuid.NewString()))
	log.Info("building position sequence", zap.Int("plies", len(record.Plies)))

	positions, err := g.machine.Positions(record)
	if err != nil {
		return err
	}
	final := &positions[len(positions)-1]
	term := game.DeriveTermination(final, record)
	log.Info("termination resolved",
		zap.String("kind", term.Kind.String()),
		zap.String("winner", term.Winner.String()),
	)

	delays := gifenc.Schedule(record, len(positions), g.opts.Delay)
	bars := barSchedule(record, len(positions))

	frames := make([]*image.RGBA, len(positions))
	workers := g.opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := range positions {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			frame, err := g.renderer.Render(&positions[i], i == len(positions)-1, term, bars[i])
			if err != nil {
				return err
			}
			frames[i] = frame
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	log.Info("frames rendered", zap.Int("frames", len(frames)), zap.Int("workers", workers))

	enc := gifenc.NewEncoder()
	for i, frame := range frames {
		if err := enc.Add(frame, delays[i]); err != nil {
			return err
		}
	}
	if err := enc.Encode(out); err != nil {
		return err
	}
	log.Info("animation encoded", zap.Int("frames", enc.FrameCount()))
	return nil
}

// barSchedule precomputes the player bar content per frame: fixed identity
// lines plus each side's latest clock reading at that point in the game.
// Absent header data leaves fields empty so the renderer omits them.
func barSchedule(record *pgn.GameRecord, frameCount int) []render.Bars {
	var whiteText, blackText string
	if p := record.White(); p.Known() {
		whiteText = p.String()
	}
	if p := record.Black(); p.Known() {
		blackText = p.String()
	}

	bars := make([]render.Bars, frameCount)
	var whiteClock, blackClock string
	for i := range bars {
		if i > 0 {
			if ply := record.Plies[i-1]; ply.Clock != nil {
				if ply.WhiteMove() {
					whiteClock = ply.Clock.String()
				} else {
					blackClock = ply.Clock.String()
				}
			}
		}
		bars[i] = render.Bars{
			WhiteText:  whiteText,
			BlackText:  blackText,
			WhiteClock: whiteClock,
			BlackClock: blackClock,
		}
	}
	return bars
}
