package engine

// GraceTimers count down once per tick and never go below zero.
// Starting suppresses self collision after a (re)spawn; HitGrace suppresses
// own and other collisions after a crash or respawn.
type GraceTimers struct {
	Starting int
	HitGrace int
}

func (g *GraceTimers) tick() {
	if g.Starting > 0 {
		g.Starting--
	}
	g.tickHit()
}

func (g *GraceTimers) tickHit() {
	if g.HitGrace > 0 {
		g.HitGrace--
	}
}

// The helpers below run with s.mu held.

func (s *Snake) emit(t EventType, data int) {
	head := s.body.Head()
	s.pending = append(s.pending, Event{Type: t, Snake: s.id, X: head.X, Y: head.Y, Data: data})
}

func (s *Snake) setState(st State) {
	if s.state == st {
		return
	}
	s.state = st
	s.emit(EventStateChanged, int(st))
}

// expireGrace returns a crashed or freshly respawned snake to ACTIVE once
// its hit grace has run out.
func (s *Snake) expireGrace() {
	if s.timers.HitGrace == 0 && (s.state == StateCrashed || s.state == StateInvulnerable) {
		s.setState(StateActive)
	}
}

func (s *Snake) growLocked() {
	if s.body.grow() {
		s.emit(EventGrow, s.body.Count())
	}
}

func (s *Snake) shrinkLocked() {
	if s.body.shrink() {
		s.emit(EventShrink, s.body.Count())
	}
}

// onBodyHit handles own and other collisions: the snake loses a part and is
// briefly CRASHED without moving.
func (s *Snake) onBodyHit(kind EventType, peer string) {
	s.emit(EventBump, 0)
	head := s.body.Head()
	s.pending = append(s.pending, Event{Type: kind, Snake: s.id, Other: peer, X: head.X, Y: head.Y})
	s.shrinkLocked()
	s.timers.HitGrace = CrashGraceTicks
	s.setState(StateCrashed)
}

func (s *Snake) onWallHit() {
	s.emit(EventWallCollision, 0)
	s.emit(EventDie, s.body.Count())
	s.respawn()
}

// respawn moves the snake to its spawn slot keeping its length. The body is
// walked in place so every live slot sits on the spawn point. The walk runs
// without collision checks, so the invulnerable window that follows it is
// the same for every length.
func (s *Snake) respawn() {
	x, y, h := s.m.SpawnPoint(s.slot)
	spawn := Segment{X: x, Y: y, Heading: normalizeHeading(h)}
	s.heading = spawn.Heading
	s.speed = 0

	walk := s.body.Count() * PointDist
	for i := 0; i < walk; i++ {
		s.body.push(spawn)
	}
	s.body.set(s.body.TailIndex(), spawn)
	s.timers.Starting = walk
	s.timers.HitGrace = RespawnGraceTicks
	s.setState(StateInvulnerable)
	s.trail.reset(spawn)
	s.emit(EventRespawn, s.body.Count())
}
