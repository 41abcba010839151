package session

import (
	"sort"
	"sync"

	"snakenet/internal/engine"
)

// Score changes per event.
const (
	PenaltySelf  = -1
	PenaltyOther = -1
	PenaltyWall  = -3
	BonusGrow    = 1
)

// Score is one row of the scoreboard.
type Score struct {
	ID     string
	Points int
}

// Scoreboard keeps per-snake scores fed by engine events.
type Scoreboard struct {
	mu     sync.RWMutex
	points map[string]int
}

func NewScoreboard() *Scoreboard {
	return &Scoreboard{points: make(map[string]int)}
}

// Subscribe wires the score rules into bus.
func (sb *Scoreboard) Subscribe(bus *engine.EventBus) {
	rules := map[engine.EventType]int{
		engine.EventSelfCollision:  PenaltySelf,
		engine.EventOtherCollision: PenaltyOther,
		engine.EventWallCollision:  PenaltyWall,
		engine.EventGrow:           BonusGrow,
	}
	for et, delta := range rules {
		delta := delta
		bus.Subscribe(et, func(e engine.Event) { sb.Add(e.Snake, delta) })
	}
}

// Join registers id with zero points.
func (sb *Scoreboard) Join(id string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if _, ok := sb.points[id]; !ok {
		sb.points[id] = 0
	}
}

func (sb *Scoreboard) Add(id string, delta int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.points[id] += delta
}

func (sb *Scoreboard) Points(id string) int {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return sb.points[id]
}

// Scores returns all rows, highest first, ties by ID.
func (sb *Scoreboard) Scores() []Score {
	sb.mu.RLock()
	out := make([]Score, 0, len(sb.points))
	for id, p := range sb.points {
		out = append(out, Score{ID: id, Points: p})
	}
	sb.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// AtOrBelow reports whether any score has fallen to floor.
func (sb *Scoreboard) AtOrBelow(floor int) (string, bool) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	for id, p := range sb.points {
		if p <= floor {
			return id, true
		}
	}
	return "", false
}
