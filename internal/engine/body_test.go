package engine

import "testing"

func TestBodySeedWindow(t *testing.T) {
	var b BodyBuffer
	b.seed(Segment{X: 10, Y: 20}, StartParts)

	if got, want := b.Window(), StartParts*PointDist; got != want {
		t.Fatalf("window = %d, want %d", got, want)
	}
	if got := len(b.Live()); got != StartParts*PointDist+1 {
		t.Errorf("live slots = %d, want %d", got, StartParts*PointDist+1)
	}
	if got := len(b.Parts()); got != StartParts+1 {
		t.Errorf("parts = %d, want %d", got, StartParts+1)
	}
	if h := b.Head(); h.X != 10 || h.Y != 20 {
		t.Errorf("head = %+v", h)
	}
}

func TestBodyPushKeepsWindowAcrossWrap(t *testing.T) {
	var b BodyBuffer
	b.seed(Segment{}, StartParts)

	for i := 1; i <= MaxPoints*3; i++ {
		b.push(Segment{X: float64(i)})
		if b.Window() != b.Count()*PointDist {
			t.Fatalf("push %d: window %d != count*PointDist %d", i, b.Window(), b.Count()*PointDist)
		}
	}
	if got := b.Head().X; got != MaxPoints*3 {
		t.Errorf("head X = %v, want %d", got, MaxPoints*3)
	}
	// Parts are PointDist slots apart, head first.
	parts := b.Parts()
	for i := 1; i < len(parts); i++ {
		if d := parts[i-1].X - parts[i].X; d != PointDist {
			t.Fatalf("part %d spacing = %v, want %d", i, d, PointDist)
		}
	}
}

func TestBodyGrowShrinkSaturate(t *testing.T) {
	var b BodyBuffer
	b.seed(Segment{}, StartParts)

	if b.shrink() {
		t.Fatal("shrink below StartParts succeeded")
	}
	for i := StartParts; i < MaxParts; i++ {
		if !b.grow() {
			t.Fatalf("grow at count %d failed", b.Count())
		}
	}
	if b.grow() {
		t.Fatal("grow above MaxParts succeeded")
	}
	if b.Count() != MaxParts || b.Window() != MaxParts*PointDist {
		t.Fatalf("count %d window %d at saturation", b.Count(), b.Window())
	}
	for b.shrink() {
	}
	if b.Count() != StartParts || b.Window() != StartParts*PointDist {
		t.Fatalf("count %d window %d after shrinking", b.Count(), b.Window())
	}
}

func TestBodyGrowReexposesPath(t *testing.T) {
	var b BodyBuffer
	b.seed(Segment{}, StartParts)
	for i := 1; i <= 30; i++ {
		b.push(Segment{X: float64(i)})
	}
	oldTail := b.At(b.TailIndex())
	b.grow()
	if got := b.At(b.TailIndex() + PointDist); got != oldTail {
		t.Fatalf("slot behind old tail changed: %+v != %+v", got, oldTail)
	}
	if got := b.At(b.TailIndex()).X; got != oldTail.X-PointDist {
		t.Errorf("new tail X = %v, want %v", got, oldTail.X-PointDist)
	}
}
