package engine

// Collision is the outcome of evaluating a candidate move.
type Collision int

const (
	CollisionNone Collision = iota
	CollisionOwn
	CollisionWall
	CollisionOther
)

func (c Collision) String() string {
	switch c {
	case CollisionOwn:
		return "own"
	case CollisionWall:
		return "wall"
	case CollisionOther:
		return "other"
	}
	return "none"
}

type stage int

const (
	stageOwn stage = iota
	stageWall
	stageWrap
	stageOther
)

// tickStages is the fixed evaluation order. The first collision wins and
// ends the tick.
var tickStages = [...]stage{stageOwn, stageWall, stageWrap, stageOther}

// probe is everything the detector needs about the moving snake.
type probe struct {
	body     *BodyBuffer
	prev     Segment
	cand     Segment
	starting int
	hitGrace int
	peers    []View
}

// verdict carries the outcome and the head to commit when nothing was hit.
type verdict struct {
	hit    Collision
	peer   string // ID of the peer hit by an other collision
	next   Segment
	dx, dy float64 // wrap offsets applied to next
}

type detector struct {
	mode CollisionMode
	m    ObstacleMap
}

func (d detector) evaluate(p probe) verdict {
	v := verdict{next: p.cand}
	for _, st := range tickStages {
		switch st {
		case stageOwn:
			if d.mode.Has(CollideOwn) && p.body.Count() > StartParts &&
				p.starting == 0 && p.hitGrace == 0 && hitsOwnBody(p.body, p.cand) {
				v.hit = CollisionOwn
				return v
			}
		case stageWall:
			if d.mode.Has(CollideWall) && hitsWall(d.m, p.cand) {
				v.hit = CollisionWall
				return v
			}
		case stageWrap:
			v.next, v.dx, v.dy = resolveWrap(p.cand, p.prev, d.m)
		case stageOther:
			if !d.mode.Has(CollideOther) || p.hitGrace != 0 {
				continue
			}
			if id, ok := hitsPeer(p.body, v.next, p.peers); ok {
				v.hit = CollisionOther
				v.peer = id
				return v
			}
		}
	}
	return v
}

// hitsOwnBody tests the candidate head against the live window from tail up
// to SelfGraceSlots behind the head.
func hitsOwnBody(b *BodyBuffer, cand Segment) bool {
	r := cand.Rect()
	n := b.Window() - SelfGraceSlots
	for i := 0; i <= n; i++ {
		if b.At(b.TailIndex() + i).Rect().Intersects(r) {
			return true
		}
	}
	return false
}

// hitsWall probes the candidate's center. Probes outside the map are left to
// wraparound.
func hitsWall(m ObstacleMap, cand Segment) bool {
	cx, cy := cand.Center()
	if cx < 0 || cy < 0 || cx >= float64(m.Width()) || cy >= float64(m.Height()) {
		return false
	}
	return !probeFree(m, cand.X, cand.Y)
}

// hitsPeer tests each visible peer's head against this body. At the head
// slot the candidate is used and only the shorter snake loses, so equal
// lengths pass through. Any other slot is a bite and always counts.
func hitsPeer(b *BodyBuffer, cand Segment, peers []View) (string, bool) {
	headRect := cand.Rect()
	for _, p := range peers {
		if p.State == StateUnknown {
			continue
		}
		if headRect.Intersects(p.HeadRect) {
			if b.Count() < p.Count {
				return p.ID, true
			}
			continue
		}
		n := b.Window()
		for i := 0; i < n; i++ {
			if b.At(b.TailIndex() + i).Rect().Intersects(p.HeadRect) {
				return p.ID, true
			}
		}
	}
	return "", false
}
