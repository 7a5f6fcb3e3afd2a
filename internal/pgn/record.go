package pgn

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock is a single remaining-time reading attached to a move.
type Clock struct {
	Remaining time.Duration
}

// String formats the reading the way it appears on a player bar: h:mm:ss.t.
func (c Clock) String() string {
	millis := c.Remaining.Milliseconds()
	tenths := millis / 100
	secs := millis / 1000
	minutes := secs / 60
	hours := minutes / 60

	tenths -= secs * 10
	secs -= minutes * 60
	minutes -= hours * 60

	return fmt.Sprintf("%d:%02d:%02d.%d", hours, minutes, secs, tenths)
}

// Ply is one half-move of the recorded game. Order is significant and the
// index is the sole key: even indices are white moves.
type Ply struct {
	Index   int
	SAN     string
	Clock   *Clock
	Comment string
}

// WhiteMove reports whether this ply was played by white.
func (p Ply) WhiteMove() bool { return p.Index%2 == 0 }

// Player holds the header-derived identity of one side. Absent fields stay
// zero and are omitted from display.
type Player struct {
	Name  string
	Title string
	Elo   int
}

// Known reports whether any header field was present for this player.
func (p Player) Known() bool {
	return p.Name != "" || p.Title != "" || p.Elo != 0
}

// String renders "TITLE Name (ELO)", dropping absent parts. A player with a
// rating or title but no name becomes "Anonymous".
func (p Player) String() string {
	name := p.Name
	if name == "" {
		name = "Anonymous"
	}
	if p.Title != "" {
		name = p.Title + " " + name
	}
	if p.Elo != 0 {
		return fmt.Sprintf("%s (%d)", name, p.Elo)
	}
	return name
}

// GameRecord is a fully parsed game: header tag pairs plus the ordered ply
// list. Immutable once returned by Parse.
type GameRecord struct {
	Header map[string]string
	Plies  []Ply
}

// Tag returns the header value for key, or "" when absent.
func (r *GameRecord) Tag(key string) string {
	if r == nil || r.Header == nil {
		return ""
	}
	return r.Header[key]
}

// White assembles the white player from the header.
func (r *GameRecord) White() Player {
	return Player{
		Name:  r.Tag("White"),
		Title: r.Tag("WhiteTitle"),
		Elo:   atoiSafe(r.Tag("WhiteElo")),
	}
}

// Black assembles the black player from the header.
func (r *GameRecord) Black() Player {
	return Player{
		Name:  r.Tag("Black"),
		Title: r.Tag("BlackTitle"),
		Elo:   atoiSafe(r.Tag("BlackElo")),
	}
}

// Increment returns the per-move increment from a TimeControl tag of the
// "base+inc" form, or zero when absent or malformed.
func (r *GameRecord) Increment() time.Duration {
	tc := r.Tag("TimeControl")
	i := strings.IndexByte(tc, '+')
	if i < 0 {
		return 0
	}
	secs, err := strconv.Atoi(tc[i+1:])
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// ClockReadings splits the per-ply clock readings by side: element j of a
// slice is that side's remaining time after its j-th move, nil when the move
// carried no reading. Indices stay aligned even for sparse annotations.
func (r *GameRecord) ClockReadings() (white, black []*Clock) {
	for _, ply := range r.Plies {
		if ply.WhiteMove() {
			white = append(white, ply.Clock)
		} else {
			black = append(black, ply.Clock)
		}
	}
	return white, black
}

func atoiSafe(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
