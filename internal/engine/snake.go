package engine

import "fmt"

// Config describes one authoritative snake.
type Config struct {
	ID     string
	Slot   int // spawn slot on the map
	Map    ObstacleMap
	Mode   CollisionMode
	Events *EventBus
	// Peers lists the other snakes in the session. It is called at the
	// start of every tick, outside the snake's lock.
	Peers func() []Peer
}

// Snake is a locally simulated snake. Advance is called from the tick
// goroutine; the read API may be used from any goroutine.
type Snake struct {
	core

	slot    int
	m       ObstacleMap
	mode    CollisionMode
	events  *EventBus
	peers   func() []Peer
	heading float64
	timers  GraceTimers
	tick    uint64

	pending []Event
}

func New(cfg Config) (*Snake, error) {
	if !cfg.Mode.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCollisionMode, cfg.Mode)
	}
	if cfg.Map == nil {
		return nil, ErrNoObstacleMap
	}
	x, y, _ := cfg.Map.SpawnPoint(cfg.Slot)
	if x < 0 || y < 0 || x >= float64(cfg.Map.Width()) || y >= float64(cfg.Map.Height()) {
		return nil, fmt.Errorf("%w: slot %d at (%.0f,%.0f)", ErrSpawnOutOfBounds, cfg.Slot, x, y)
	}

	s := &Snake{
		core:   core{id: cfg.ID},
		slot:   cfg.Slot,
		m:      cfg.Map,
		mode:   cfg.Mode,
		events: cfg.Events,
		peers:  cfg.Peers,
	}

	s.mu.Lock()
	s.spawn()
	events := s.takeEvents()
	s.mu.Unlock()
	s.dispatch(events)
	return s, nil
}

// spawn places a fresh body of StartParts at the spawn slot.
func (s *Snake) spawn() {
	x, y, h := s.m.SpawnPoint(s.slot)
	seg := Segment{X: x, Y: y, Heading: normalizeHeading(h)}
	s.body.seed(seg, StartParts)
	s.trail.reset(seg)
	s.heading = seg.Heading
	s.speed = 0
	s.timers = GraceTimers{Starting: StartParts * PointDist}
	s.setState(StateActive)
}

// Advance runs one simulation tick with the given heading change in degrees.
// Events raised during the tick are dispatched before Advance returns, after
// the snake's lock has been released.
func (s *Snake) Advance(turn float64) {
	peers := s.peerViews()

	s.mu.Lock()
	s.advance(turn, peers)
	events := s.takeEvents()
	s.mu.Unlock()

	s.dispatch(events)
}

func (s *Snake) advance(turn float64, peers []View) {
	s.tick++
	s.timers.tick()
	s.expireGrace()

	// The heading change sticks even when the move is abandoned.
	s.heading = normalizeHeading(s.heading + turn)
	step := BaseStep + s.speed
	prev := s.body.Head()
	cand := candidateHead(prev, s.heading, step)

	v := detector{mode: s.mode, m: s.m}.evaluate(probe{
		body:     &s.body,
		prev:     prev,
		cand:     cand,
		starting: s.timers.Starting,
		hitGrace: s.timers.HitGrace,
		peers:    peers,
	})

	switch v.hit {
	case CollisionOwn:
		s.onBodyHit(EventSelfCollision, "")
		return
	case CollisionWall:
		s.onWallHit()
		return
	case CollisionOther:
		s.onBodyHit(EventOtherCollision, v.peer)
		return
	}
	s.commit(prev, v, step)
}

// commit pushes the accepted head and interpolates the pixel trail towards
// the unwrapped destination, shifting entries that crossed an edge.
func (s *Snake) commit(prev Segment, v verdict, step int) {
	s.body.push(v.next)

	target := Segment{X: v.next.X - v.dx, Y: v.next.Y - v.dy, Heading: v.next.Heading}
	entries := Interpolate(prev, target, step)
	if v.dx != 0 || v.dy != 0 {
		shiftWrapped(entries, v.dx, v.dy, s.m.Width(), s.m.Height())
	}
	s.trail.step = step
	s.trail.push(entries...)
}

func (s *Snake) peerViews() []View {
	if s.peers == nil {
		return nil
	}
	ps := s.peers()
	views := make([]View, 0, len(ps))
	for _, p := range ps {
		if o, ok := p.(*Snake); ok && o == s {
			continue
		}
		v := p.View()
		if v.ID != "" && v.ID == s.id {
			continue
		}
		views = append(views, v)
	}
	return views
}

func (s *Snake) takeEvents() []Event {
	ev := s.pending
	s.pending = nil
	return ev
}

func (s *Snake) dispatch(events []Event) {
	for _, e := range events {
		s.events.Emit(e)
	}
}

// Grow adds one part, saturating at MaxParts.
func (s *Snake) Grow() {
	s.mu.Lock()
	s.growLocked()
	events := s.takeEvents()
	s.mu.Unlock()
	s.dispatch(events)
}

// Shrink removes one part, saturating at StartParts.
func (s *Snake) Shrink() {
	s.mu.Lock()
	s.shrinkLocked()
	events := s.takeEvents()
	s.mu.Unlock()
	s.dispatch(events)
}

// SetSpeedModifier sets the step offset, clamped so the step stays in
// [1, MaxStep].
func (s *Snake) SetSpeedModifier(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speed = clamp(v, MinSpeedModifier, MaxSpeedModifier)
}

func (s *Snake) ClearSpeedModifier() {
	s.SetSpeedModifier(0)
}

func (s *Snake) Heading() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.heading
}

func (s *Snake) Slot() int { return s.slot }

// Snapshot returns the state a remote replica needs to follow this snake.
func (s *Snake) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Head:      s.body.Head(),
		HeadIndex: s.body.HeadIndex(),
		TailIndex: s.body.TailIndex(),
		State:     s.state,
		Tick:      s.tick,
	}
}
