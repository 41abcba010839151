package engine

import (
	"fmt"
	"math"
)

// Snapshot is the replicated state of a snake: its head segment and ring
// indices plus the lifecycle state. Tick orders snapshots from one source.
type Snapshot struct {
	Head      Segment
	HeadIndex int
	TailIndex int
	State     State
	Tick      uint64
}

// Remote is a non-authoritative replica driven only by snapshots. It runs
// no collision checks of its own but serves as a Peer for local snakes.
type Remote struct {
	core

	seeded   bool
	lastTick uint64
}

func NewRemote(id string) *Remote {
	return &Remote{core: core{id: id}}
}

// ApplySnapshot moves the replica to the snapshot. Intermediate body slots
// and pixel trail entries are interpolated from the previous head, and the
// speed modifier is inferred from the distance covered. Malformed snapshots
// are rejected and leave the replica unchanged; stale ones are ignored.
func (r *Remote) ApplySnapshot(sn Snapshot) error {
	if sn.HeadIndex < 0 || sn.HeadIndex >= MaxPoints || sn.TailIndex < 0 || sn.TailIndex >= MaxPoints {
		return fmt.Errorf("%w: head %d tail %d", ErrSnapshotOutOfRange, sn.HeadIndex, sn.TailIndex)
	}
	if math.IsNaN(sn.Head.X) || math.IsNaN(sn.Head.Y) || math.IsInf(sn.Head.X, 0) || math.IsInf(sn.Head.Y, 0) {
		return fmt.Errorf("%w: non-finite head", ErrSnapshotOutOfRange)
	}
	sn.Head.Heading = normalizeHeading(sn.Head.Heading)

	count := clamp(int(math.Round(float64(ringDist(sn.TailIndex, sn.HeadIndex, MaxPoints))/PointDist)), StartParts, MaxParts)
	tail := ringAdd(sn.HeadIndex, -count*PointDist, MaxPoints)

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.seeded {
		r.body.seed(sn.Head, count)
		r.body.place(sn.HeadIndex, tail, count)
		r.trail.reset(sn.Head)
		r.speed = 0
		r.state = sn.State
		r.lastTick = sn.Tick
		r.seeded = true
		return nil
	}
	if sn.Tick != 0 && sn.Tick <= r.lastTick {
		return nil
	}

	prev := r.body.Head()
	from := r.body.HeadIndex()
	slots := ringDist(from, sn.HeadIndex, MaxPoints)

	// Entering INVULNERABLE means the snake respawned: the head moved to its
	// spawn slot however near that is, so treat it like a resync.
	respawned := sn.State == StateInvulnerable && r.state != StateInvulnerable

	if slots > 0 {
		step, ok := InferStep(prev, sn.Head, slots, r.trail.Step())
		if respawned {
			step, ok = r.trail.Step(), false
		}
		if ok {
			for i := 1; i < slots; i++ {
				f := float64(i) / float64(slots)
				r.body.set(from+i, Segment{
					X:       lerp(prev.X, sn.Head.X, f),
					Y:       lerp(prev.Y, sn.Head.Y, f),
					Heading: prev.Heading,
				})
			}
			r.trail.push(Interpolate(prev, sn.Head, step*slots)...)
		} else {
			// Wraparound, resync or respawn: jump instead of streaking across the map.
			for i := 1; i < slots; i++ {
				r.body.set(from+i, sn.Head)
			}
			r.trail.push(Interpolate(sn.Head, sn.Head, step*slots)...)
		}
		r.trail.step = step
		r.speed = step - BaseStep
	}

	r.body.set(sn.HeadIndex, sn.Head)
	r.body.place(sn.HeadIndex, tail, count)
	r.state = sn.State
	r.lastTick = sn.Tick
	return nil
}
