// Package config loads generator settings from an optional YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DelayModeReal selects clock-derived frame delays instead of a fixed one.
const DelayModeReal = "real"

type AppConfig struct {
	Output string `yaml:"output"`

	Size int  `yaml:"size"`
	Flip bool `yaml:"flip"`

	DelayMode       string        `yaml:"delay_mode"`
	Delay           time.Duration `yaml:"delay"`
	FirstFrameDelay time.Duration `yaml:"first_frame_delay"`
	LastFrameDelay  time.Duration `yaml:"last_frame_delay"`

	PlayerBars   bool `yaml:"player_bars"`
	Coords       bool `yaml:"coords"`
	Terminations bool `yaml:"terminations"`

	DarkColor  string `yaml:"dark_color"`
	LightColor string `yaml:"light_color"`

	PiecesDir string `yaml:"pieces_dir"`
	FontPath  string `yaml:"font_path"`

	Workers  int    `yaml:"workers"`
	LogLevel string `yaml:"log_level"`
}

func defaults() *AppConfig {
	return &AppConfig{
		Output:          "chess.gif",
		Size:            640,
		DelayMode:       DelayModeReal,
		Delay:           time.Second,
		FirstFrameDelay: time.Second,
		LastFrameDelay:  5 * time.Second,
		PlayerBars:      true,
		Coords:          true,
		Terminations:    true,
		DarkColor:       "#769656",
		LightColor:      "#eeeed2",
		LogLevel:        "info",
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// PGN2GIF_* environment variables, in that order. An empty path skips the
// file layer unless PGN2GIF_CONFIG names one.
func Load(path string) (*AppConfig, error) {
	cfg := defaults()

	if path == "" {
		path = strings.TrimSpace(os.Getenv("PGN2GIF_CONFIG"))
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv("PGN2GIF_OUTPUT")); v != "" {
		cfg.Output = v
	}
	if v := strings.TrimSpace(os.Getenv("PGN2GIF_SIZE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Size = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("PGN2GIF_FLIP")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Flip = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("PGN2GIF_DELAY")); v != "" {
		if v == DelayModeReal {
			cfg.DelayMode = DelayModeReal
		} else if d, err := time.ParseDuration(v); err == nil {
			cfg.DelayMode = ""
			cfg.Delay = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("PGN2GIF_FIRST_FRAME_DELAY")); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.FirstFrameDelay = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("PGN2GIF_LAST_FRAME_DELAY")); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.LastFrameDelay = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("PGN2GIF_DARK")); v != "" {
		cfg.DarkColor = v
	}
	if v := strings.TrimSpace(os.Getenv("PGN2GIF_LIGHT")); v != "" {
		cfg.LightColor = v
	}
	if v := strings.TrimSpace(os.Getenv("PGN2GIF_PIECES_DIR")); v != "" {
		cfg.PiecesDir = v
	}
	if v := strings.TrimSpace(os.Getenv("PGN2GIF_FONT")); v != "" {
		cfg.FontPath = v
	}
	if v := strings.TrimSpace(os.Getenv("PGN2GIF_WORKERS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("PGN2GIF_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
}

func (c *AppConfig) Validate() error {
	if c.Output == "" {
		return errors.New("output path is required")
	}
	if c.Size <= 0 || c.Size%8 != 0 {
		return fmt.Errorf("size must be a positive multiple of 8, got %d", c.Size)
	}
	if c.Delay <= 0 {
		return errors.New("delay must be positive")
	}
	if c.FirstFrameDelay < 0 || c.LastFrameDelay < 0 {
		return errors.New("frame delay overrides must not be negative")
	}
	if c.DelayMode != "" && c.DelayMode != DelayModeReal {
		return fmt.Errorf("unknown delay mode %q", c.DelayMode)
	}
	if !strings.HasPrefix(c.DarkColor, "#") || !strings.HasPrefix(c.LightColor, "#") {
		return errors.New("board colors must be hex values like #769656")
	}
	return nil
}

// RealTime reports whether frame delays come from the game clocks.
func (c *AppConfig) RealTime() bool {
	return c.DelayMode == DelayModeReal
}
