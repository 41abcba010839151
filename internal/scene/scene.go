// Package scene turns a running session into plain drawing data. The GL
// renderer, the PNG frame dump and the terminal view all draw from a Frame.
package scene

import (
	"fmt"
	"hash/fnv"

	"snakenet/internal/arena"
	"snakenet/internal/engine"
	"snakenet/internal/session"
)

// SpriteFloats is the number of floats per point sprite:
// x, y, size, r, g, b, a, rotation.
const SpriteFloats = 8

// TrailLen is how many pixel trail entries are drawn behind each head.
const TrailLen = 48

// SnakeColors are the local player colours in slot order.
var SnakeColors = [...]arena.RGB{
	{R: 80, G: 220, B: 90},
	{R: 240, G: 110, B: 60},
	{R: 90, G: 160, B: 250},
	{R: 230, G: 210, B: 70},
}

var pickupColors = map[session.PickupKind]arena.RGB{
	session.PickupGrow:  arena.Palette.Pickup,
	session.PickupSpeed: {R: 255, G: 90, B: 90},
	session.PickupSlow:  {R: 110, G: 200, B: 255},
}

func PickupColor(k session.PickupKind) arena.RGB {
	if c, ok := pickupColors[k]; ok {
		return c
	}
	return arena.Palette.Pickup
}

// Snake is one snake as drawn.
type Snake struct {
	ID    string
	Local bool
	State engine.State
	Parts []engine.Segment // head first
	Trail []engine.PixelEntry
	Color arena.RGB
	Score int
}

// Visible reports whether the snake is drawn at all.
func (s Snake) Visible() bool {
	return s.State != engine.StateUnknown && s.State != engine.StateInvisible
}

type Frame struct {
	Tick    uint64
	Map     *arena.Map
	Snakes  []Snake
	Pickups []session.Pickup
	Scores  []session.Score
	Over    bool
	Reason  session.OverReason
	Loser   string
}

// Capture copies what is needed to draw g. Each snake is read under its
// own lock, so a frame never shows a half-moved snake.
func Capture(g *session.Game) Frame {
	over, reason, loser := g.Over()
	f := Frame{
		Tick:    g.Ticks(),
		Map:     g.Map(),
		Pickups: g.Pickups(),
		Scores:  g.Scoreboard().Scores(),
		Over:    over,
		Reason:  reason,
		Loser:   loser,
	}
	points := make(map[string]int, len(f.Scores))
	for _, s := range f.Scores {
		points[s.ID] = s.Points
	}

	locals := len(g.Locals())
	for i, b := range g.Bodies() {
		s := Snake{
			ID:    b.ID(),
			Local: i < locals,
			State: b.State(),
			Parts: b.Parts(),
			Trail: b.RecentTrail(TrailLen),
			Score: points[b.ID()],
		}
		if s.Local {
			s.Color = SnakeColors[i%len(SnakeColors)]
		} else {
			s.Color = RemoteColor(s.ID)
		}
		f.Snakes = append(f.Snakes, s)
	}
	return f
}

// RemoteColor derives a stable colour from a snake ID.
func RemoteColor(id string) arena.RGB {
	h := fnv.New32a()
	h.Write([]byte(id))
	v := h.Sum32()
	return arena.RGB{R: 96 + uint8(v%160), G: 96 + uint8(v>>8%160), B: 96 + uint8(v>>16%160)}
}

// Alpha returns the body opacity for the snake's state at tick.
func Alpha(st engine.State, tick uint64) float32 {
	switch st {
	case engine.StateCrashed:
		return 0.55
	case engine.StateInvulnerable:
		if tick/3%2 == 0 {
			return 0.35
		}
		return 0.85
	case engine.StateActive:
		return 1
	}
	return 0
}

func rgb(c arena.RGB) (r, g, b float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255
}

// Sprites appends trail and body sprites for every visible snake to buf.
// Positions are part centres in map pixels.
func (f Frame) Sprites(buf []float32) []float32 {
	half := float32(engine.PartSize / 2)
	for _, s := range f.Snakes {
		if !s.Visible() {
			continue
		}
		a := Alpha(s.State, f.Tick)
		r, g, b := rgb(s.Color)

		// Trail: faint dots fading towards the oldest entry.
		for i, e := range s.Trail {
			t := float32(i+1) / float32(len(s.Trail))
			buf = append(buf, float32(e.X)+half, float32(e.Y)+half, 3,
				r, g, b, 0.35*t*a, 0)
		}

		// Tail first so the head is drawn on top.
		n := len(s.Parts)
		for i := n - 1; i >= 0; i-- {
			p := s.Parts[i]
			t := float32(i) / float32(max(n, 1))
			size := float32(engine.PartSize) * (1 - t*0.35)
			x, y := float32(p.X)+half, float32(p.Y)+half
			buf = append(buf,
				x+2, y+3, size*1.2, 0, 0, 0, 0.3*a, 0,
				x, y, size, r*(1-t*0.3), g*(1-t*0.3), b*(1-t*0.3), a, 0,
			)
		}
	}
	return buf
}

// PickupSprites appends one box sprite per live pickup. The rotation slot
// carries a slow spin driven by the tick.
func (f Frame) PickupSprites(buf []float32) []float32 {
	spin := float32(f.Tick%120) / 120 * 6.2831855
	for _, p := range f.Pickups {
		r, g, b := rgb(PickupColor(p.Kind))
		buf = append(buf,
			float32(p.X+session.PickupSize/2), float32(p.Y+session.PickupSize/2),
			session.PickupSize*1.4, r, g, b, 1, spin)
	}
	return buf
}

// HUD returns the status lines shown over the arena.
func (f Frame) HUD() []string {
	lines := make([]string, 0, len(f.Scores)+2)
	for _, s := range f.Scores {
		lines = append(lines, fmt.Sprintf("%-12s %4d", short(s.ID), s.Points))
	}
	lines = append(lines, fmt.Sprintf("tick %d", f.Tick))
	if f.Over {
		switch f.Reason {
		case session.ReasonScore:
			lines = append(lines, fmt.Sprintf("GAME OVER: %s hit the score floor", short(f.Loser)))
		default:
			lines = append(lines, "GAME OVER: time is up")
		}
	}
	return lines
}

// short trims relay-assigned UUIDs for display.
func short(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
