package session

import (
	"snakenet/internal/arena"
	"snakenet/internal/engine"
)

type PickupKind int

const (
	PickupGrow PickupKind = iota
	PickupSpeed
	PickupSlow

	pickupKindCount // must stay last
)

func (k PickupKind) String() string {
	switch k {
	case PickupGrow:
		return "grow"
	case PickupSpeed:
		return "speed"
	case PickupSlow:
		return "slow"
	}
	return "unknown"
}

// Pickup tuning.
const (
	PickupSize     = 10   // box side in pixels
	BoostTicks     = 100  // duration of a speed or slow boost
	BoostAmount    = 2    // speed modifier applied by a boost
	PickupRespawn  = 60   // ticks before a collected box is replaced
	pickupMinSpace = 48.0 // minimum distance between live boxes
)

// Pickup is one box on the arena. X, Y is the top-left corner.
type Pickup struct {
	X, Y  float64
	Kind  PickupKind
	Alive bool
}

func (p Pickup) Rect() engine.RectF {
	return engine.RectF{X0: p.X, Y0: p.Y, X1: p.X + PickupSize, Y1: p.Y + PickupSize}
}

// Collected reports a box taken by a snake.
type Collected struct {
	Snake string
	Kind  PickupKind
}

// Target is the part of a local snake pickups act on.
type Target interface {
	ID() string
	HeadRect() engine.RectF
	Grow()
	SetSpeedModifier(int)
	ClearSpeedModifier()
}

// PickupSystem places boxes on free ground and applies timed boosts.
type PickupSystem struct {
	Boxes    []Pickup
	seed     uint64
	spawnSeq uint64
	maxBoxes int
	timer    int

	boosts map[string]int // remaining ticks per snake
}

func NewPickupSystem(seed uint64, maxBoxes int) *PickupSystem {
	return &PickupSystem{
		seed:     seed,
		maxBoxes: maxBoxes,
		boosts:   make(map[string]int),
	}
}

func (ps *PickupSystem) nextSpawnRand() *arena.Rand {
	ps.spawnSeq++
	return arena.NewRand(ps.seed ^ ps.spawnSeq*0x9E3779B185EBCA87)
}

// Fill tops up the arena to maxBoxes live boxes.
func (ps *PickupSystem) Fill(m *arena.Map) {
	for ps.alive() < ps.maxBoxes {
		if !ps.spawn(m) {
			return
		}
	}
}

func (ps *PickupSystem) spawn(m *arena.Map) bool {
	r := ps.nextSpawnRand()
	for try := 0; try < 8; try++ {
		x, y, ok := m.RandomFree(r, PickupSize)
		if !ok {
			return false
		}
		fx, fy := float64(x), float64(y)
		if ps.nearAlive(fx, fy) {
			continue
		}
		kind := PickupKind(r.Intn(int(pickupKindCount)))
		ps.Boxes = append(ps.Boxes, Pickup{X: fx, Y: fy, Kind: kind, Alive: true})
		return true
	}
	return false
}

func (ps *PickupSystem) nearAlive(x, y float64) bool {
	for _, b := range ps.Boxes {
		if !b.Alive {
			continue
		}
		dx, dy := b.X-x, b.Y-y
		if dx*dx+dy*dy < pickupMinSpace*pickupMinSpace {
			return true
		}
	}
	return false
}

func (ps *PickupSystem) alive() int {
	n := 0
	for _, b := range ps.Boxes {
		if b.Alive {
			n++
		}
	}
	return n
}

// Update runs one tick: expires boosts, refills the arena once the respawn
// delay has passed and lets each snake collect boxes its head overlaps.
// While fewer than maxBoxes are live the refill keeps being retried.
func (ps *PickupSystem) Update(m *arena.Map, snakes []Target) []Collected {
	for _, s := range snakes {
		left, ok := ps.boosts[s.ID()]
		if !ok {
			continue
		}
		if left <= 1 {
			delete(ps.boosts, s.ID())
			s.ClearSpeedModifier()
			continue
		}
		ps.boosts[s.ID()] = left - 1
	}

	if ps.timer > 0 {
		ps.timer--
		if ps.timer == 0 {
			ps.Fill(m)
		}
	}

	var got []Collected
	for _, s := range snakes {
		head := s.HeadRect()
		for i := range ps.Boxes {
			b := &ps.Boxes[i]
			if !b.Alive || !head.Intersects(b.Rect()) {
				continue
			}
			b.Alive = false
			ps.apply(s, b.Kind)
			got = append(got, Collected{Snake: s.ID(), Kind: b.Kind})
		}
	}

	// A short arena, from a collection or a Fill that could not place every
	// box, is retried after the respawn delay.
	if ps.timer == 0 && ps.alive() < ps.maxBoxes {
		ps.timer = PickupRespawn
	}

	// Drop dead boxes so the slice does not grow without bound.
	live := ps.Boxes[:0]
	for _, b := range ps.Boxes {
		if b.Alive {
			live = append(live, b)
		}
	}
	ps.Boxes = live

	return got
}

func (ps *PickupSystem) apply(s Target, kind PickupKind) {
	switch kind {
	case PickupGrow:
		s.Grow()
	case PickupSpeed:
		s.SetSpeedModifier(BoostAmount)
		ps.boosts[s.ID()] = BoostTicks
	case PickupSlow:
		s.SetSpeedModifier(-BoostAmount)
		ps.boosts[s.ID()] = BoostTicks
	}
}

// Boost returns the remaining boost ticks of a snake.
func (ps *PickupSystem) Boost(id string) int {
	return ps.boosts[id]
}

// Live returns a copy of the live boxes.
func (ps *PickupSystem) Live() []Pickup {
	out := make([]Pickup, 0, len(ps.Boxes))
	for _, b := range ps.Boxes {
		if b.Alive {
			out = append(out, b)
		}
	}
	return out
}
