package engine

import "testing"

func TestInterpolate(t *testing.T) {
	prev := Segment{X: 0, Y: 0, Heading: 10}
	next := Segment{X: 4, Y: -8, Heading: 20}

	got := Interpolate(prev, next, 4)
	want := []PixelEntry{
		{X: 1, Y: -2, Heading: 10},
		{X: 2, Y: -4, Heading: 10},
		{X: 3, Y: -6, Heading: 10},
		{X: 4, Y: -8, Heading: 20},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestInferStep(t *testing.T) {
	tests := []struct {
		name  string
		next  Segment
		slots int
		last  int
		want  int
		ok    bool
	}{
		{"base step", Segment{X: 8}, 2, 5, 4, true},
		{"fast", Segment{Y: 18}, 3, 4, 6, true},
		{"slowest", Segment{X: 1}, 1, 4, 1, true},
		{"wraparound jump", Segment{X: 600}, 1, 5, 5, false},
		{"standing still", Segment{}, 2, 3, 3, false},
		{"no slots", Segment{X: 4}, 0, 4, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := InferStep(Segment{}, tt.next, tt.slots, tt.last)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("InferStep = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestTrailDrainAndRecent(t *testing.T) {
	var tr PixelTrail
	tr.reset(Segment{X: 1})

	if got := tr.Drain(); len(got) != 1 || got[0].X != 1 {
		t.Fatalf("first drain = %+v", got)
	}
	if got := tr.Drain(); len(got) != 0 {
		t.Fatalf("second drain = %d entries, want 0", len(got))
	}

	tr.push(Interpolate(Segment{X: 1}, Segment{X: 5}, 4)...)
	got := tr.Drain()
	if len(got) != 4 || got[0].X != 2 || got[3].X != 5 {
		t.Fatalf("drain after push = %+v", got)
	}
	if r := tr.Recent(100); len(r) != 5 {
		t.Errorf("recent = %d entries, want 5", len(r))
	}
}

func TestTrailOverwritesOldest(t *testing.T) {
	var tr PixelTrail
	tr.reset(Segment{})
	for i := 1; i <= TrailCapacity+10; i++ {
		tr.push(PixelEntry{X: float64(i)})
	}
	if tr.Len() != TrailCapacity {
		t.Fatalf("len = %d, want %d", tr.Len(), TrailCapacity)
	}
	got := tr.Drain()
	if len(got) != TrailCapacity {
		t.Fatalf("drain = %d entries, want %d", len(got), TrailCapacity)
	}
	if got[0].X != 11 || got[len(got)-1].X != TrailCapacity+10 {
		t.Errorf("drain spans %v..%v", got[0].X, got[len(got)-1].X)
	}
	if last, _ := tr.Last(); last.X != TrailCapacity+10 {
		t.Errorf("last = %v", last.X)
	}
}

func TestShiftWrapped(t *testing.T) {
	entries := []PixelEntry{{X: -3}, {X: -5}, {X: -6}, {X: -7}}
	shiftWrapped(entries, 640, 0, 640, 480)

	want := []float64{-3, -5, 634, 633}
	for i, e := range entries {
		if e.X != want[i] {
			t.Errorf("entry %d X = %v, want %v", i, e.X, want[i])
		}
	}
}
