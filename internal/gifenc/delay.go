// Package gifenc serializes rendered frames into an animated GIF and owns
// the timing rules that map clock readings to frame delays.
package gifenc

import (
	"time"

	"github.com/chessviz/pgn2gif/internal/pgn"
)

// centisecond is the minimum delay unit representable in a GIF.
const centisecond = 10 * time.Millisecond

// DelayMode selects how frame delays are assigned.
type DelayMode int

const (
	// FixedDelay gives every frame the same configured duration.
	FixedDelay DelayMode = iota
	// RealTime derives each frame's delay from the mover's clock readings,
	// falling back to the fixed default frame by frame when readings are
	// missing or inconsistent.
	RealTime
)

// DelayConfig is the timing surface of one run. FirstFrame and LastFrame are
// optional overrides; zero means the regular per-frame rule applies.
type DelayConfig struct {
	Mode       DelayMode
	Default    time.Duration
	FirstFrame time.Duration
	LastFrame  time.Duration
}

// Schedule assigns a display delay to every frame of the animation. Frame i
// stays on screen while ply i is being played, so its delay is the time the
// mover of ply i spent: remaining(previous) + increment - remaining(current)
// on that mover's own clock. Missing readings or a non-positive difference
// substitute the fixed default for that frame only.
func Schedule(record *pgn.GameRecord, frameCount int, cfg DelayConfig) []time.Duration {
	delays := make([]time.Duration, frameCount)
	white, black := record.ClockReadings()
	increment := record.Increment()

	for i := range delays {
		switch {
		case i == frameCount-1 && cfg.LastFrame > 0:
			delays[i] = cfg.LastFrame
		case i == 0 && cfg.FirstFrame > 0:
			delays[i] = cfg.FirstFrame
		case cfg.Mode == RealTime && i < frameCount-1:
			delays[i] = realDelay(white, black, i, increment, cfg.Default)
		default:
			delays[i] = cfg.Default
		}
	}
	return delays
}

// realDelay computes the clock time consumed by ply i (zero-based), displayed
// as frame i's delay.
func realDelay(white, black []*pgn.Clock, ply int, increment, fallback time.Duration) time.Duration {
	readings := white
	if ply%2 != 0 {
		readings = black
	}
	move := ply / 2
	if move == 0 || move >= len(readings) {
		return fallback // first move of the side, or no reading recorded
	}

	prev, cur := readings[move-1], readings[move]
	if prev == nil || cur == nil {
		return fallback
	}
	diff := prev.Remaining + increment - cur.Remaining
	if diff <= 0 {
		return fallback
	}
	return diff
}

// Quantize rounds a delay to GIF centiseconds, clamping to the minimum
// representable unit so no frame flashes by with zero delay.
func Quantize(d time.Duration) int {
	cs := int((d + centisecond/2) / centisecond)
	if cs < 1 {
		cs = 1
	}
	return cs
}
