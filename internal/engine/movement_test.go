package engine

import (
	"math"
	"testing"
)

func TestAdvanceStraight(t *testing.T) {
	s := mustSnake(t, Config{ID: "a", Map: openMap([3]float64{100, 100, 0}), Mode: collideAll})
	s.PixelTrail() // spawn entry

	for i := 0; i < 4; i++ {
		s.Advance(0)
		checkInvariants(t, s)
	}

	if h := s.HeadSegment(); h.X != 84 || h.Y != 100 {
		t.Fatalf("head = (%v, %v), want (84, 100)", h.X, h.Y)
	}
	trail := s.PixelTrail()
	if len(trail) != 4*BaseStep {
		t.Fatalf("trail = %d entries, want %d", len(trail), 4*BaseStep)
	}
	for i, e := range trail {
		if want := 100 - float64(i+1); e.X != want || e.Y != 100 {
			t.Errorf("entry %d = (%v, %v), want (%v, 100)", i, e.X, e.Y, want)
		}
	}
	if s.State() != StateActive {
		t.Errorf("state = %v", s.State())
	}
}

func TestAdvanceTurnNormalizesHeading(t *testing.T) {
	s := mustSnake(t, Config{ID: "a", Map: openMap([3]float64{300, 200, 5}), Mode: collideAll})

	s.Advance(-TurnStep)
	if got := s.Heading(); got != 355 {
		t.Fatalf("heading = %v, want 355", got)
	}
	for i := 0; i < 36; i++ {
		s.Advance(TurnStep)
		checkInvariants(t, s)
	}
	if got := s.Heading(); math.Abs(got-355) > 1e-9 {
		t.Fatalf("heading after full turn = %v, want 355", got)
	}
}

func TestAdvanceSpeedModifier(t *testing.T) {
	s := mustSnake(t, Config{ID: "a", Map: openMap([3]float64{300, 100, 180}), Mode: collideAll})
	s.SetSpeedModifier(2)
	s.PixelTrail()

	s.Advance(0)
	if h := s.HeadSegment(); math.Abs(h.X-306) > 1e-9 {
		t.Fatalf("head X = %v, want 306", h.X)
	}
	if n := len(s.PixelTrail()); n != BaseStep+2 {
		t.Fatalf("trail = %d entries, want %d", n, BaseStep+2)
	}

	s.SetSpeedModifier(100)
	if got := s.SpeedModifier(); got != MaxSpeedModifier {
		t.Errorf("clamped modifier = %d, want %d", got, MaxSpeedModifier)
	}
	s.SetSpeedModifier(-100)
	if got := s.SpeedModifier(); got != MinSpeedModifier {
		t.Errorf("clamped modifier = %d, want %d", got, MinSpeedModifier)
	}
	s.ClearSpeedModifier()
	if got := s.SpeedModifier(); got != 0 {
		t.Errorf("cleared modifier = %d", got)
	}
}

func TestWraparoundLeftEdge(t *testing.T) {
	s := mustSnake(t, Config{ID: "a", Map: openMap([3]float64{3, 100, 0}), Mode: collideAll})
	s.PixelTrail()

	s.Advance(0) // -1
	s.Advance(0) // -5, inside tolerance
	if h := s.HeadSegment(); h.X != -5 {
		t.Fatalf("head X = %v, want -5", h.X)
	}
	s.PixelTrail()
	heading, count := s.Heading(), s.SegmentCount()

	s.Advance(0) // -9 wraps
	if h := s.HeadSegment(); h.X != 640-9 {
		t.Fatalf("wrapped head X = %v, want %v", h.X, 640-9)
	}
	if s.Heading() != heading || s.SegmentCount() != count {
		t.Errorf("wrap changed heading %v -> %v or count %d -> %d", heading, s.Heading(), count, s.SegmentCount())
	}
	want := []float64{-6 + 640, -7 + 640, -8 + 640, -9 + 640}
	got := s.PixelTrail()
	if len(got) != len(want) {
		t.Fatalf("trail = %d entries", len(got))
	}
	for i := range want {
		if got[i].X != want[i] {
			t.Errorf("entry %d X = %v, want %v", i, got[i].X, want[i])
		}
	}
}

func TestWraparoundBlockedKeepsAxis(t *testing.T) {
	m := openMap([3]float64{100, 1, 90})
	m.wall = func(x, y int) bool { return y >= 470 && x >= 100 && x < 120 }
	s := mustSnake(t, Config{ID: "a", Map: m, Mode: collideAll})

	s.Advance(0) // -3
	s.Advance(0) // -7 would wrap onto the wall
	h := s.HeadSegment()
	if h.Y != -3 {
		t.Fatalf("head Y = %v, want -3 (wrap refused)", h.Y)
	}
	if s.State() != StateActive {
		t.Errorf("state = %v", s.State())
	}
}

func TestWrapRoundTrip(t *testing.T) {
	m := openMap([3]float64{320, 240, 180})
	s := mustSnake(t, Config{ID: "a", Map: m, Mode: collideAll})

	// One full lap of the map returns to the start.
	for i := 0; i < 640/BaseStep; i++ {
		s.Advance(0)
		h := s.HeadSegment()
		if h.X < -WrapTolerance || h.X > 640+WrapTolerance {
			t.Fatalf("tick %d: head X %v outside tolerance band", i, h.X)
		}
	}
	if h := s.HeadSegment(); math.Abs(h.X-320) > 1e-6 {
		t.Fatalf("head X after lap = %v, want 320", h.X)
	}
}
