package engine

import (
	"errors"
	"testing"
)

func TestRemoteFollowsSnapshots(t *testing.T) {
	local := mustSnake(t, Config{ID: "a", Map: openMap([3]float64{100, 200, 180}), Mode: collideAll})
	local.SetSpeedModifier(1)
	for i := 0; i < 4; i++ {
		local.Grow()
	}

	r := NewRemote("a")
	if r.State() != StateUnknown {
		t.Fatalf("fresh remote state = %v", r.State())
	}
	if err := r.ApplySnapshot(local.Snapshot()); err != nil {
		t.Fatal(err)
	}
	r.PixelTrail()

	for i := 0; i < 10; i++ {
		local.Advance(0)
		if err := r.ApplySnapshot(local.Snapshot()); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}

	if got, want := r.HeadSegment(), local.HeadSegment(); got != want {
		t.Fatalf("remote head %+v != local %+v", got, want)
	}
	if r.SegmentCount() != local.SegmentCount() {
		t.Errorf("count %d != %d", r.SegmentCount(), local.SegmentCount())
	}
	if r.SpeedModifier() != 1 {
		t.Errorf("inferred modifier = %d, want 1", r.SpeedModifier())
	}
	if n := len(r.PixelTrail()); n != 10*(BaseStep+1) {
		t.Errorf("trail = %d entries, want %d", n, 10*(BaseStep+1))
	}
	if r.State() != StateActive {
		t.Errorf("state = %v", r.State())
	}
}

func TestRemoteFillsSkippedSlots(t *testing.T) {
	r := NewRemote("b")
	r.ApplySnapshot(Snapshot{Head: Segment{X: 100, Y: 50}, HeadIndex: 15, TailIndex: 0, State: StateActive, Tick: 1})
	r.ApplySnapshot(Snapshot{Head: Segment{X: 112, Y: 50}, HeadIndex: 18, TailIndex: 3, State: StateActive, Tick: 4})

	live := r.LiveSegments()
	tail := live[len(live)-4:]
	want := []float64{100, 104, 108, 112}
	for i, s := range tail {
		if s.X != want[i] {
			t.Errorf("slot %d X = %v, want %v", i, s.X, want[i])
		}
	}
	if r.SpeedModifier() != 0 {
		t.Errorf("modifier = %d", r.SpeedModifier())
	}
}

func TestRemoteImplausibleJumpKeepsStep(t *testing.T) {
	r := NewRemote("b")
	r.ApplySnapshot(Snapshot{Head: Segment{X: 100, Y: 50}, HeadIndex: 15, TailIndex: 0, State: StateActive, Tick: 1})
	r.ApplySnapshot(Snapshot{Head: Segment{X: 112, Y: 50}, HeadIndex: 17, TailIndex: 2, State: StateActive, Tick: 3})
	if r.SpeedModifier() != 2 {
		t.Fatalf("modifier = %d, want 2", r.SpeedModifier())
	}
	r.PixelTrail()

	// Wrapped across the map in one slot.
	r.ApplySnapshot(Snapshot{Head: Segment{X: 630, Y: 50}, HeadIndex: 18, TailIndex: 3, State: StateActive, Tick: 4})

	if r.SpeedModifier() != 2 {
		t.Errorf("modifier after jump = %d, want 2", r.SpeedModifier())
	}
	trail := r.PixelTrail()
	if len(trail) != BaseStep+2 {
		t.Fatalf("trail = %d entries, want %d", len(trail), BaseStep+2)
	}
	for _, e := range trail {
		if e.X != 630 {
			t.Fatalf("trail streaked across the map: %+v", trail)
		}
	}
}

func TestRemoteRejectsBadSnapshots(t *testing.T) {
	r := NewRemote("b")
	good := Snapshot{Head: Segment{X: 100, Y: 50}, HeadIndex: 15, TailIndex: 0, State: StateActive, Tick: 1}
	if err := r.ApplySnapshot(good); err != nil {
		t.Fatal(err)
	}

	bad := []Snapshot{
		{Head: Segment{X: 1}, HeadIndex: MaxPoints, TailIndex: 0, Tick: 2},
		{Head: Segment{X: 1}, HeadIndex: 3, TailIndex: -1, Tick: 2},
	}
	for _, sn := range bad {
		if err := r.ApplySnapshot(sn); !errors.Is(err, ErrSnapshotOutOfRange) {
			t.Fatalf("ApplySnapshot(%+v) = %v", sn, err)
		}
	}
	if h := r.HeadSegment(); h != good.Head {
		t.Fatalf("head after rejected snapshots = %+v", h)
	}

	// Stale snapshots are dropped silently.
	if err := r.ApplySnapshot(Snapshot{Head: Segment{X: 7}, HeadIndex: 16, TailIndex: 1, Tick: 1}); err != nil {
		t.Fatal(err)
	}
	if h := r.HeadSegment(); h != good.Head {
		t.Fatalf("stale snapshot applied: %+v", h)
	}
}

func TestRemoteCountFromWindow(t *testing.T) {
	r := NewRemote("b")
	r.ApplySnapshot(Snapshot{HeadIndex: 40, TailIndex: 10, State: StateActive})
	if r.SegmentCount() != 10 {
		t.Fatalf("count = %d, want 10", r.SegmentCount())
	}
	// Windows shorter than StartParts are clamped.
	r = NewRemote("c")
	r.ApplySnapshot(Snapshot{HeadIndex: 3, TailIndex: 0, State: StateActive})
	if r.SegmentCount() != StartParts {
		t.Fatalf("count = %d, want %d", r.SegmentCount(), StartParts)
	}
}

func TestLocalCollidesWithRemote(t *testing.T) {
	bus, rec := newRecorder()
	r := NewRemote("r")
	// A longer, stationary remote and a local snake running head first into it.
	r.ApplySnapshot(Snapshot{Head: Segment{X: 90, Y: 100}, HeadIndex: 24, TailIndex: 0, State: StateActive})

	s := mustSnake(t, Config{
		ID: "a", Map: openMap([3]float64{70, 100, 180}), Mode: CollideOther, Events: bus,
		Peers: func() []Peer { return []Peer{r} },
	})
	rec.reset()
	for i := 0; i < 6 && s.State() == StateActive; i++ {
		s.Advance(0)
	}
	if rec.count(EventOtherCollision) != 1 {
		t.Fatalf("events = %v", rec.types())
	}
	if h := s.HeadSegment(); h.X != 82 {
		t.Errorf("head X = %v, want 82 (move abandoned)", h.X)
	}
}

func TestRemoteJumpsOnRespawn(t *testing.T) {
	r := NewRemote("b")
	r.ApplySnapshot(Snapshot{Head: Segment{X: 100, Y: 50}, HeadIndex: 15, TailIndex: 0, State: StateActive, Tick: 1})
	r.ApplySnapshot(Snapshot{Head: Segment{X: 104, Y: 50}, HeadIndex: 16, TailIndex: 1, State: StateActive, Tick: 2})
	r.PixelTrail()

	// Respawned 12px back along the row: a plausible distance for the
	// 15 walked slots, but a jump all the same.
	r.ApplySnapshot(Snapshot{Head: Segment{X: 92, Y: 50}, HeadIndex: 31, TailIndex: 16, State: StateInvulnerable, Tick: 3})

	for _, s := range r.LiveSegments()[1:] {
		if s.X != 92 {
			t.Fatalf("walked slot interpolated: %+v", s)
		}
	}
	for _, e := range r.PixelTrail() {
		if e.X != 92 {
			t.Fatalf("trail streaked across the respawn: %+v", e)
		}
	}
	if r.SpeedModifier() != 0 {
		t.Errorf("modifier = %d, want 0", r.SpeedModifier())
	}
	if r.State() != StateInvulnerable {
		t.Errorf("state = %v", r.State())
	}
}
