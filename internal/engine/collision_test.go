package engine

import (
	"reflect"
	"testing"
)

// coiledBody returns a body of 6 parts whose tail sits where cand lands.
func coiledBody(cand Segment) *BodyBuffer {
	var b BodyBuffer
	b.seed(Segment{X: 300, Y: 300}, StartParts+1)
	b.set(b.TailIndex(), cand)
	return &b
}

func TestDetectorPriority(t *testing.T) {
	cand := Segment{X: 100, Y: 100}
	walled := openMap()
	walled.wall = func(x, y int) bool { return x >= 100 && x < 120 }

	tests := []struct {
		name     string
		mode     CollisionMode
		hitGrace int
		starting int
		want     Collision
	}{
		{"own before wall", collideAll, 0, 0, CollisionOwn},
		{"wall when own disabled", CollideWall | CollideOther, 0, 0, CollisionWall},
		{"wall during hit grace", collideAll, 5, 0, CollisionWall},
		{"wall while starting", collideAll, 0, 3, CollisionWall},
		{"nothing enabled", 0, 0, 0, CollisionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := detector{mode: tt.mode, m: walled}.evaluate(probe{
				body:     coiledBody(cand),
				prev:     Segment{X: 104, Y: 100},
				cand:     cand,
				starting: tt.starting,
				hitGrace: tt.hitGrace,
			})
			if v.hit != tt.want {
				t.Fatalf("hit = %v, want %v", v.hit, tt.want)
			}
		})
	}
}

func TestDetectorSelfNeedsMoreThanStartParts(t *testing.T) {
	cand := Segment{X: 100, Y: 100}
	var b BodyBuffer
	b.seed(Segment{X: 300, Y: 300}, StartParts)
	b.set(b.TailIndex(), cand)

	v := detector{mode: CollideOwn, m: openMap()}.evaluate(probe{body: &b, prev: cand, cand: cand})
	if v.hit != CollisionNone {
		t.Fatalf("hit = %v for a StartParts body", v.hit)
	}
}

func TestDetectorNeckIsExempt(t *testing.T) {
	var b BodyBuffer
	b.seed(Segment{X: 300, Y: 300}, StartParts+3)
	// Put the candidate on a slot inside the neck window.
	cand := Segment{X: 100, Y: 100}
	b.set(b.HeadIndex()-SelfGraceSlots+1, cand)

	v := detector{mode: CollideOwn, m: openMap()}.evaluate(probe{body: &b, prev: b.Head(), cand: cand})
	if v.hit != CollisionNone {
		t.Fatalf("neck slot hit = %v", v.hit)
	}

	b.set(b.HeadIndex()-SelfGraceSlots, cand)
	v = detector{mode: CollideOwn, m: openMap()}.evaluate(probe{body: &b, prev: b.Head(), cand: cand})
	if v.hit != CollisionOwn {
		t.Fatalf("first slot past the neck hit = %v, want own", v.hit)
	}
}

func TestDetectorSkipsUnknownPeers(t *testing.T) {
	var b BodyBuffer
	b.seed(Segment{X: 100, Y: 100}, StartParts)
	peer := View{ID: "p", HeadRect: Segment{X: 100, Y: 100}.Rect(), Count: MaxParts}

	v := detector{mode: CollideOther, m: openMap()}.evaluate(probe{body: &b, prev: b.Head(), cand: b.Head(), peers: []View{peer}})
	if v.hit != CollisionNone {
		t.Fatalf("unknown peer hit = %v", v.hit)
	}

	peer.State = StateActive
	v = detector{mode: CollideOther, m: openMap()}.evaluate(probe{body: &b, prev: b.Head(), cand: b.Head(), peers: []View{peer}})
	if v.hit != CollisionOther || v.peer != "p" {
		t.Fatalf("active peer hit = %v (%q)", v.hit, v.peer)
	}
}

// facingPair builds A (StartParts) and B (StartParts+extra) whose heads move
// towards each other along y=100.
func facingPair(t *testing.T, extra int) (a, b *Snake, rec *recorder) {
	t.Helper()
	bus, rec := newRecorder()
	m := openMap([3]float64{100, 100, 180}, [3]float64{130, 100, 0})
	var all []Peer
	peers := func() []Peer { return all }

	a = mustSnake(t, Config{ID: "a", Slot: 0, Map: m, Mode: CollideOther, Events: bus, Peers: peers})
	b = mustSnake(t, Config{ID: "b", Slot: 1, Map: m, Mode: CollideOther, Events: bus, Peers: peers})
	for i := 0; i < extra; i++ {
		b.Grow()
	}
	all = []Peer{a, b}
	rec.reset()
	return a, b, rec
}

func TestHeadToHeadShorterLoses(t *testing.T) {
	a, b, rec := facingPair(t, 3)

	for i := 0; i < 4; i++ {
		a.Advance(0)
		b.Advance(0)
	}

	var hit []string
	for _, e := range rec.events {
		if e.Type == EventOtherCollision {
			hit = append(hit, e.Snake+">"+e.Other)
		}
	}
	if !reflect.DeepEqual(hit, []string{"a>b"}) {
		t.Fatalf("other collisions = %v, want [a>b]", hit)
	}
	if a.State() != StateCrashed {
		t.Errorf("a state = %v, want crashed", a.State())
	}
	if b.State() != StateActive {
		t.Errorf("b state = %v, want active", b.State())
	}
	checkInvariants(t, a)
	checkInvariants(t, b)
}

func TestHeadToHeadEqualLengthPasses(t *testing.T) {
	a, b, rec := facingPair(t, 0)

	for i := 0; i < 4; i++ {
		a.Advance(0)
		b.Advance(0)
	}
	if n := rec.count(EventOtherCollision); n != 0 {
		t.Fatalf("%d other collisions for equal lengths", n)
	}
}

func TestPeerHeadInBodyCrashesBody(t *testing.T) {
	bus, rec := newRecorder()
	// A runs right along y=100 while B comes down across its body.
	m := openMap([3]float64{60, 100, 180}, [3]float64{84, 60, 270})
	var all []Peer
	peers := func() []Peer { return all }
	a := mustSnake(t, Config{ID: "a", Slot: 0, Map: m, Mode: CollideOther, Events: bus, Peers: peers})
	b := mustSnake(t, Config{ID: "b", Slot: 1, Map: m, Events: bus, Peers: peers})
	all = []Peer{a, b}
	rec.reset()

	for i := 1; i <= 8; i++ {
		b.Advance(0)
		a.Advance(0)
		if a.State() != StateActive {
			t.Fatalf("tick %d: a state = %v before contact", i, a.State())
		}
	}
	b.Advance(0)
	a.Advance(0)

	if a.State() != StateCrashed {
		t.Fatalf("a state = %v, want crashed", a.State())
	}
	want := []EventType{EventBump, EventOtherCollision, EventStateChanged}
	if got := rec.types(); !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	if e := rec.events[1]; e.Snake != "a" || e.Other != "b" {
		t.Errorf("collision event = %+v", e)
	}
	if b.State() != StateActive {
		t.Errorf("b state = %v", b.State())
	}
}

func TestAdvanceReportsOnlySelfWhenWallAlsoHit(t *testing.T) {
	bus, rec := newRecorder()
	m := openMap([3]float64{100, 100, 180})
	m.wall = func(x, y int) bool { return x >= 110 }
	s := mustSnake(t, Config{ID: "a", Map: m, Mode: collideAll, Events: bus})
	s.Grow()

	// Every slot still sits on the spawn point, so the first move overlaps
	// the body and lands its candidate head on the wall.
	s.mu.Lock()
	s.timers.Starting = 0
	s.mu.Unlock()
	rec.reset()

	s.Advance(0)
	if rec.count(EventSelfCollision) != 1 {
		t.Fatalf("events = %v, want a self collision", rec.types())
	}
	if rec.count(EventWallCollision) != 0 || rec.count(EventRespawn) != 0 {
		t.Fatalf("wall handled too: %v", rec.types())
	}
	if s.State() != StateCrashed {
		t.Fatalf("state = %v", s.State())
	}
}
