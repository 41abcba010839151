package engine

import "testing"

// testMap is an open field with optional walls. Probes outside the map are
// blocked.
type testMap struct {
	w, h   int
	wall   func(x, y int) bool
	spawns [][3]float64
}

func (m *testMap) IsFree(px, py int) bool {
	if px < 0 || py < 0 || px >= m.w || py >= m.h {
		return false
	}
	return m.wall == nil || !m.wall(px, py)
}

func (m *testMap) SpawnPoint(slot int) (float64, float64, float64) {
	s := m.spawns[slot%len(m.spawns)]
	return s[0], s[1], s[2]
}

func (m *testMap) Width() int  { return m.w }
func (m *testMap) Height() int { return m.h }

func openMap(spawns ...[3]float64) *testMap {
	return &testMap{w: 640, h: 480, spawns: spawns}
}

// recorder collects every event raised on a bus.
type recorder struct {
	events []Event
}

func newRecorder() (*EventBus, *recorder) {
	bus := NewEventBus()
	r := &recorder{}
	for t := EventSelfCollision; t <= EventStateChanged; t++ {
		bus.Subscribe(t, func(e Event) { r.events = append(r.events, e) })
	}
	return bus, r
}

func (r *recorder) count(t EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func (r *recorder) types() []EventType {
	out := make([]EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func (r *recorder) reset() { r.events = nil }

func mustSnake(t *testing.T, cfg Config) *Snake {
	t.Helper()
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

// checkInvariants asserts the body and lifecycle invariants that hold
// between ticks.
func checkInvariants(t *testing.T, s *Snake) {
	t.Helper()
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.body.Count() < StartParts || s.body.Count() > MaxParts {
		t.Fatalf("count %d out of range", s.body.Count())
	}
	if s.body.Window() != s.body.Count()*PointDist {
		t.Fatalf("window %d != count*PointDist %d", s.body.Window(), s.body.Count()*PointDist)
	}
	if s.state == StateCrashed && s.timers.HitGrace == 0 {
		t.Fatal("crashed with no hit grace left")
	}
	if s.timers.Starting < 0 || s.timers.HitGrace < 0 {
		t.Fatalf("negative timers %+v", s.timers)
	}
	if s.heading < 0 || s.heading >= 360 {
		t.Fatalf("heading %v outside [0, 360)", s.heading)
	}
}
