package gifenc

import (
	"testing"
	"time"

	"github.com/chessviz/pgn2gif/internal/pgn"
)

func clk(d time.Duration) *pgn.Clock { return &pgn.Clock{Remaining: d} }

func timedRecord(times ...*pgn.Clock) *pgn.GameRecord {
	rec := &pgn.GameRecord{Header: map[string]string{}}
	for i, c := range times {
		rec.Plies = append(rec.Plies, pgn.Ply{Index: i, SAN: "e4", Clock: c})
	}
	return rec
}

func TestScheduleFixed(t *testing.T) {
	rec := timedRecord(nil, nil)
	delays := Schedule(rec, 3, DelayConfig{Mode: FixedDelay, Default: 100 * time.Millisecond})

	if len(delays) != 3 {
		t.Fatalf("expected 3 delays, got %d", len(delays))
	}
	for i, d := range delays {
		if d != 100*time.Millisecond {
			t.Fatalf("frame %d: got %v, want 100ms", i, d)
		}
	}
}

func TestScheduleRealTimeLaw(t *testing.T) {
	// White: 60s, 59.1s, 55.3s. Black: 60s, 58.5s.
	rec := timedRecord(
		clk(60*time.Second),
		clk(60*time.Second),
		clk(59*time.Second+100*time.Millisecond),
		clk(58*time.Second+500*time.Millisecond),
		clk(55*time.Second+300*time.Millisecond),
	)
	fallback := time.Second
	delays := Schedule(rec, 6, DelayConfig{Mode: RealTime, Default: fallback})

	// Frames 0 and 1 precede each side's second move: no previous reading.
	if delays[0] != fallback || delays[1] != fallback {
		t.Fatalf("first moves must fall back: %v", delays[:2])
	}
	// Frame 2's delay is white's second move: 60s - 59.1s = 900ms.
	if delays[2] != 900*time.Millisecond {
		t.Fatalf("frame 2: got %v, want 900ms", delays[2])
	}
	// Frame 3's delay is black's second move: 60s - 58.5s = 1.5s.
	if delays[3] != 1500*time.Millisecond {
		t.Fatalf("frame 3: got %v, want 1.5s", delays[3])
	}
	// Frame 4's delay is white's third move: 59.1s - 55.3s = 3.8s.
	if delays[4] != 3800*time.Millisecond {
		t.Fatalf("frame 4: got %v, want 3.8s", delays[4])
	}
	// Last frame has no following ply.
	if delays[5] != fallback {
		t.Fatalf("last frame: got %v, want fallback", delays[5])
	}
}

func TestScheduleRealTimeIncrement(t *testing.T) {
	rec := timedRecord(
		clk(60*time.Second),
		nil,
		clk(61*time.Second+100*time.Millisecond), // gained time: only the increment explains it
	)
	rec.Header["TimeControl"] = "60+3"
	delays := Schedule(rec, 4, DelayConfig{Mode: RealTime, Default: time.Second})

	// White's second move: 60s + 3s - 61.1s = 1.9s.
	if delays[2] != 1900*time.Millisecond {
		t.Fatalf("increment not applied: got %v, want 1.9s", delays[2])
	}
}

func TestScheduleRealTimeFallbacks(t *testing.T) {
	fallback := 250 * time.Millisecond

	// Missing reading on one endpoint.
	rec := timedRecord(clk(60*time.Second), nil, nil)
	delays := Schedule(rec, 4, DelayConfig{Mode: RealTime, Default: fallback})
	if delays[2] != fallback {
		t.Fatalf("missing endpoint must fall back, got %v", delays[2])
	}

	// Non-positive difference (clock went up without an increment).
	rec = timedRecord(clk(60*time.Second), nil, clk(65*time.Second))
	delays = Schedule(rec, 4, DelayConfig{Mode: RealTime, Default: fallback})
	if delays[2] != fallback {
		t.Fatalf("non-positive difference must fall back, got %v", delays[2])
	}

	// No clock data at all: every frame uses the fixed default.
	rec = timedRecord(nil, nil)
	for i, d := range Schedule(rec, 3, DelayConfig{Mode: RealTime, Default: fallback}) {
		if d != fallback {
			t.Fatalf("frame %d without clocks: got %v", i, d)
		}
	}
}

func TestScheduleFirstLastOverrides(t *testing.T) {
	rec := timedRecord(nil, nil)
	cfg := DelayConfig{
		Mode:       FixedDelay,
		Default:    100 * time.Millisecond,
		FirstFrame: time.Second,
		LastFrame:  5 * time.Second,
	}
	delays := Schedule(rec, 3, cfg)

	if delays[0] != time.Second || delays[1] != 100*time.Millisecond || delays[2] != 5*time.Second {
		t.Fatalf("overrides misapplied: %v", delays)
	}
}

func TestQuantize(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want int
	}{
		{0, 1},
		{4 * time.Millisecond, 1},
		{10 * time.Millisecond, 1},
		{95 * time.Millisecond, 10},
		{100 * time.Millisecond, 10},
		{time.Second, 100},
	}
	for _, c := range cases {
		if got := Quantize(c.in); got != c.want {
			t.Fatalf("quantize(%v): got %d, want %d", c.in, got, c.want)
		}
	}
}
