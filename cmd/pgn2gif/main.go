package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chessviz/pgn2gif/internal/assets"
	appcfg "github.com/chessviz/pgn2gif/internal/config"
	"github.com/chessviz/pgn2gif/internal/game"
	"github.com/chessviz/pgn2gif/internal/gifenc"
	"github.com/chessviz/pgn2gif/internal/giffer"
	"github.com/chessviz/pgn2gif/internal/obslog"
	"github.com/chessviz/pgn2gif/internal/pgn"
	"github.com/chessviz/pgn2gif/internal/render"
)

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, classify(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		output     string
		size       int
		delay      string
		firstDelay time.Duration
		lastDelay  time.Duration
		flip       bool
		noBars     bool
		noCoords   bool
		noTerm     bool
		dark       string
		light      string
		piecesDir  string
		fontPath   string
		workers    int
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:          "pgn2gif [pgn-file]",
		Short:        "pgn2gif renders a chess game record as an animated GIF",
		Long:         "pgn2gif replays a PGN game move by move and writes the board states as an animated GIF, with frame delays taken from the embedded clock annotations when available.",
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appcfg.Load(configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("output") {
				cfg.Output = output
			}
			if flags.Changed("size") {
				cfg.Size = size
			}
			if flags.Changed("delay") {
				if delay == appcfg.DelayModeReal {
					cfg.DelayMode = appcfg.DelayModeReal
				} else {
					d, err := time.ParseDuration(delay)
					if err != nil {
						return fmt.Errorf("invalid --delay %q: %w", delay, err)
					}
					cfg.DelayMode = ""
					cfg.Delay = d
				}
			}
			if flags.Changed("first-frame-delay") {
				cfg.FirstFrameDelay = firstDelay
			}
			if flags.Changed("last-frame-delay") {
				cfg.LastFrameDelay = lastDelay
			}
			if flags.Changed("flip") {
				cfg.Flip = flip
			}
			if flags.Changed("no-player-bars") {
				cfg.PlayerBars = !noBars
			}
			if flags.Changed("no-coords") {
				cfg.Coords = !noCoords
			}
			if flags.Changed("no-terminations") {
				cfg.Terminations = !noTerm
			}
			if flags.Changed("dark") {
				cfg.DarkColor = dark
			}
			if flags.Changed("light") {
				cfg.LightColor = light
			}
			if flags.Changed("pieces") {
				cfg.PiecesDir = piecesDir
			}
			if flags.Changed("font") {
				cfg.FontPath = fontPath
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := obslog.Init(cfg.LogLevel); err != nil {
				return err
			}
			defer obslog.Sync()

			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			return generate(cmd.Context(), cfg, input)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVarP(&output, "output", "o", "chess.gif", "output GIF path, - for stdout")
	cmd.Flags().IntVarP(&size, "size", "s", 640, "board edge in pixels, must be a multiple of 8")
	cmd.Flags().StringVarP(&delay, "delay", "d", appcfg.DelayModeReal, "frame delay: a duration like 800ms, or real to follow the game clocks")
	cmd.Flags().DurationVar(&firstDelay, "first-frame-delay", time.Second, "how long the initial position stays on screen")
	cmd.Flags().DurationVar(&lastDelay, "last-frame-delay", 5*time.Second, "how long the final position stays on screen")
	cmd.Flags().BoolVar(&flip, "flip", false, "render from Black's point of view")
	cmd.Flags().BoolVar(&noBars, "no-player-bars", false, "omit the player name and clock bars")
	cmd.Flags().BoolVar(&noCoords, "no-coords", false, "omit rank and file labels")
	cmd.Flags().BoolVar(&noTerm, "no-terminations", false, "omit the game result markers on the final frame")
	cmd.Flags().StringVar(&dark, "dark", "#769656", "dark square color")
	cmd.Flags().StringVar(&light, "light", "#eeeed2", "light square color")
	cmd.Flags().StringVar(&piecesDir, "pieces", "", "directory with piece SVGs named wK.svg, bN.svg, ...")
	cmd.Flags().StringVar(&fontPath, "font", "", "TTF/OTF font for labels, built-in bitmap font if unset")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel frame renderers, 0 means GOMAXPROCS")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

func generate(ctx context.Context, cfg *appcfg.AppConfig, input string) error {
	log := obslog.L()

	record, err := readRecord(input)
	if err != nil {
		return err
	}
	log.Info("parsed game record",
		zap.String("white", record.White().String()),
		zap.String("black", record.Black().String()),
		zap.Int("plies", len(record.Plies)))

	theme, err := render.NewTheme(cfg.DarkColor, cfg.LightColor)
	if err != nil {
		return err
	}

	var pieces render.PieceProvider = render.BuiltinPieces()
	if cfg.PiecesDir != "" {
		pieces = assets.NewDiskPieces(cfg.PiecesDir)
	}
	face, err := assets.LoadFace(cfg.FontPath, float64(cfg.Size)/32)
	if err != nil {
		return err
	}

	opts := giffer.Options{
		Render: render.Config{
			Size:         cfg.Size,
			PlayerBars:   cfg.PlayerBars,
			Terminations: cfg.Terminations,
			Coords:       cfg.Coords,
			Flip:         cfg.Flip,
			Theme:        theme,
		},
		Delay: gifenc.DelayConfig{
			Default:    cfg.Delay,
			FirstFrame: cfg.FirstFrameDelay,
			LastFrame:  cfg.LastFrameDelay,
		},
		Workers: cfg.Workers,
	}
	if cfg.RealTime() {
		opts.Delay.Mode = gifenc.RealTime
	}

	g, err := giffer.New(game.NewChessEngine(), render.Assets{Pieces: pieces, Face: face}, opts, log)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cfg.Output)
	if err != nil {
		return err
	}

	if err := g.Run(ctx, record, out); err != nil {
		closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return fmt.Errorf("write %s: %w", cfg.Output, err)
	}
	log.Info("animation written", zap.String("output", cfg.Output))
	return nil
}

func readRecord(input string) (*pgn.GameRecord, error) {
	var r io.Reader = os.Stdin
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", input, err)
		}
		defer f.Close()
		r = f
	}

	stream, err := pgn.Lex(r)
	if err != nil {
		return nil, err
	}
	return pgn.Parse(stream)
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, f.Close, nil
}

// classify turns pipeline errors into one-line messages naming the failure
// stage.
func classify(err error) string {
	var (
		malformed *pgn.MalformedRecordError
		illegal   *game.IllegalMoveError
		missing   *render.MissingAssetError
		encoding  *gifenc.EncodingError
	)
	switch {
	case errors.As(err, &malformed):
		return fmt.Sprintf("pgn2gif: invalid game record: %v", malformed)
	case errors.As(err, &illegal):
		return fmt.Sprintf("pgn2gif: game replay failed: %v", illegal)
	case errors.As(err, &missing):
		return fmt.Sprintf("pgn2gif: asset error: %v", missing)
	case errors.As(err, &encoding):
		return fmt.Sprintf("pgn2gif: encoding failed: %v", encoding)
	default:
		return fmt.Sprintf("pgn2gif: %v", err)
	}
}
