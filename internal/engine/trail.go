package engine

import "math"

// PixelTrail is the fine-grained ring of interpolated head positions.
// Every tick appends step entries between the previous and the new head.
// The renderer drains what it has not seen yet; RecentTrail keeps working
// for drawing the whole body.
type PixelTrail struct {
	entries [TrailCapacity]PixelEntry
	write   int // next slot to write
	size    int // valid entries, up to TrailCapacity
	unread  int // entries appended since the last Drain
	step    int // last step written, reused when a remote step is implausible
}

func (t *PixelTrail) reset(s Segment) {
	t.write = 0
	t.size = 0
	t.unread = 0
	t.step = BaseStep
	t.push(PixelEntry{X: s.X, Y: s.Y, Heading: s.Heading})
}

func (t *PixelTrail) push(entries ...PixelEntry) {
	for _, e := range entries {
		t.entries[t.write] = e
		t.write = ringAdd(t.write, 1, TrailCapacity)
		if t.size < TrailCapacity {
			t.size++
		}
		if t.unread < TrailCapacity {
			t.unread++
		}
	}
}

// Step returns the step size of the last accepted interpolation.
func (t *PixelTrail) Step() int { return t.step }

// Len returns the number of valid entries.
func (t *PixelTrail) Len() int { return t.size }

// Last returns the newest entry.
func (t *PixelTrail) Last() (PixelEntry, bool) {
	if t.size == 0 {
		return PixelEntry{}, false
	}
	return t.entries[ringAdd(t.write, -1, TrailCapacity)], true
}

// Drain returns the entries appended since the previous Drain, oldest first.
func (t *PixelTrail) Drain() []PixelEntry {
	out := t.tail(t.unread)
	t.unread = 0
	return out
}

// Recent returns up to n newest entries, oldest first.
func (t *PixelTrail) Recent(n int) []PixelEntry {
	return t.tail(n)
}

func (t *PixelTrail) tail(n int) []PixelEntry {
	if n > t.size {
		n = t.size
	}
	if n <= 0 {
		return nil
	}
	out := make([]PixelEntry, n)
	start := ringAdd(t.write, -n, TrailCapacity)
	for i := 0; i < n; i++ {
		out[i] = t.entries[ringAdd(start, i, TrailCapacity)]
	}
	return out
}

// Interpolate returns steps evenly spaced entries from prev (exclusive) to
// next (inclusive). All entries carry prev's heading except the last one,
// which carries next's.
func Interpolate(prev, next Segment, steps int) []PixelEntry {
	if steps < 1 {
		steps = 1
	}
	out := make([]PixelEntry, steps)
	for i := 1; i <= steps; i++ {
		f := float64(i) / float64(steps)
		out[i-1] = PixelEntry{
			X:       lerp(prev.X, next.X, f),
			Y:       lerp(prev.Y, next.Y, f),
			Heading: prev.Heading,
		}
	}
	out[steps-1].Heading = next.Heading
	return out
}

// InferStep derives the per-tick step of a remote snake from the straight
// line distance its head covered over slots ticks. Results outside
// [1, MaxStep] are wraparound or resync artifacts; last is returned instead
// and ok is false.
func InferStep(prev, next Segment, slots, last int) (step int, ok bool) {
	if slots <= 0 {
		return last, false
	}
	s := int(math.Round(distance(prev, next) / float64(slots)))
	if s < 1 || s > MaxStep {
		return last, false
	}
	return s, true
}

// shiftWrapped moves entries that fell past a map edge by the same offset
// the wraparound applied to the head.
func shiftWrapped(entries []PixelEntry, dx, dy float64, w, h int) {
	for i := range entries {
		if dx != 0 && outside(entries[i].X, w) {
			entries[i].X += dx
		}
		if dy != 0 && outside(entries[i].Y, h) {
			entries[i].Y += dy
		}
	}
}

func outside(v float64, size int) bool {
	return v < -WrapTolerance || v > float64(size)+WrapTolerance
}
