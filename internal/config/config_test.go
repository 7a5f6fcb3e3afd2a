package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Size != 640 {
		t.Fatalf("default size: got %d", cfg.Size)
	}
	if !cfg.RealTime() {
		t.Fatalf("default delay mode should be real")
	}
	if cfg.LastFrameDelay != 5*time.Second {
		t.Fatalf("default last frame delay: got %v", cfg.LastFrameDelay)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pgn2gif.yaml")
	body := "size: 320\ndelay_mode: \"\"\ndelay: 250ms\nflip: true\ndark_color: \"#333333\"\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Size != 320 || !cfg.Flip || cfg.Delay != 250*time.Millisecond {
		t.Fatalf("yaml values not applied: %+v", cfg)
	}
	if cfg.RealTime() {
		t.Fatalf("fixed delay mode not applied")
	}
	if cfg.DarkColor != "#333333" {
		t.Fatalf("dark color: got %q", cfg.DarkColor)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pgn2gif.yaml")
	if err := os.WriteFile(path, []byte("size: 320\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("PGN2GIF_SIZE", "160")
	t.Setenv("PGN2GIF_DELAY", "80ms")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Size != 160 {
		t.Fatalf("env size override lost: got %d", cfg.Size)
	}
	if cfg.RealTime() || cfg.Delay != 80*time.Millisecond {
		t.Fatalf("env delay override lost: mode=%q delay=%v", cfg.DelayMode, cfg.Delay)
	}
}

func TestValidateRejectsBadSize(t *testing.T) {
	for _, size := range []int{0, -8, 100} {
		cfg := defaults()
		cfg.Size = size
		if err := cfg.Validate(); err == nil {
			t.Fatalf("size %d accepted", size)
		}
	}
}

func TestValidateRejectsBadDelayMode(t *testing.T) {
	cfg := defaults()
	cfg.DelayMode = "approximate"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("unknown delay mode accepted")
	}
}
