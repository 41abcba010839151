package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"snakenet/internal/arena"
	"snakenet/internal/audio"
	"snakenet/internal/engine"
)

var ErrNoPlayers = errors.New("session: no local players")

// Config describes one game session.
type Config struct {
	Map      *arena.Map
	Mode     engine.CollisionMode
	LocalIDs []string // one authoritative snake per ID, in slot order
	// FirstSlot offsets the spawn slots of local snakes so clients sharing a
	// relay do not spawn on top of each other.
	FirstSlot int
	// ScoreFloor ends the session when a score drops to it; 0 disables.
	ScoreFloor    int
	TimeLimit     int // ticks, 0 for none
	SnapshotEvery int // ticks between published snapshots, 0 for every tick
	Pickups       int // live pickup boxes, 0 disables pickups
	Seed          uint64
	Effects       audio.Player // optional
	Log           *slog.Logger
}

// Body is the read API shared by local and remote snakes.
type Body interface {
	engine.Peer
	ID() string
	SegmentCount() int
	State() engine.State
	HeadSegment() engine.Segment
	Parts() []engine.Segment
	RecentTrail(n int) []engine.PixelEntry
}

// Published is a snapshot of a local snake ready to send.
type Published struct {
	ID       string
	Snapshot engine.Snapshot
}

type inbound struct {
	id     string
	snap   engine.Snapshot
	forget bool
}

// Game owns the local snakes, the remote replicas and the collaborators that
// react to their events. Tick must be called from one goroutine; the read
// methods may be used from any goroutine.
type Game struct {
	cfg   Config
	log   *slog.Logger
	bus   *engine.EventBus
	score *Scoreboard

	local []*engine.Snake

	mu       sync.Mutex
	remotes  map[string]*engine.Remote
	queue    []inbound
	pickups  *PickupSystem
	tick     uint64
	state    GameState
	reason   OverReason
	loser    string
	lastGain []Collected

	// peers is rebuilt at the start of every tick and only read by the
	// tick goroutine.
	peers []engine.Peer
}

func NewGame(cfg Config) (*Game, error) {
	if len(cfg.LocalIDs) == 0 {
		return nil, ErrNoPlayers
	}
	if cfg.Map == nil {
		return nil, engine.ErrNoObstacleMap
	}
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}

	g := &Game{
		cfg:     cfg,
		log:     log,
		bus:     engine.NewEventBus(),
		score:   NewScoreboard(),
		remotes: make(map[string]*engine.Remote),
		pickups: NewPickupSystem(cfg.Seed^0xB0B5EED, cfg.Pickups),
	}
	g.score.Subscribe(g.bus)
	if cfg.Effects != nil {
		for _, id := range cfg.LocalIDs {
			audio.Subscribe(g.bus, cfg.Effects, id)
		}
	}
	g.bus.Subscribe(engine.EventWallCollision, func(e engine.Event) {
		g.log.Debug("wall collision", "snake", e.Snake, "x", e.X, "y", e.Y)
	})
	g.bus.Subscribe(engine.EventOtherCollision, func(e engine.Event) {
		g.log.Debug("other collision", "snake", e.Snake, "peer", e.Other)
	})

	for i, id := range cfg.LocalIDs {
		s, err := engine.New(engine.Config{
			ID:     id,
			Slot:   cfg.FirstSlot + i,
			Map:    cfg.Map,
			Mode:   cfg.Mode,
			Events: g.bus,
			Peers:  g.peerList,
		})
		if err != nil {
			return nil, fmt.Errorf("session: snake %s: %w", id, err)
		}
		g.local = append(g.local, s)
		g.score.Join(id)
	}
	g.pickups.Fill(cfg.Map)

	g.log.Info("session started",
		"players", len(g.local), "map", cfg.Map.Name, "collision", cfg.Mode.String())
	return g, nil
}

func (g *Game) peerList() []engine.Peer { return g.peers }

// Bus exposes the event bus for extra subscribers. Subscribe before the
// first tick.
func (g *Game) Bus() *engine.EventBus { return g.bus }

func (g *Game) Map() *arena.Map { return g.cfg.Map }

func (g *Game) Scoreboard() *Scoreboard { return g.score }

// Local returns the i-th local snake.
func (g *Game) Local(i int) *engine.Snake { return g.local[i] }

func (g *Game) Locals() []*engine.Snake {
	return append([]*engine.Snake(nil), g.local...)
}

// Enqueue schedules a remote snapshot; it is applied at the start of the
// next tick on the tick goroutine.
func (g *Game) Enqueue(id string, snap engine.Snapshot) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.queue = append(g.queue, inbound{id: id, snap: snap})
}

// Forget removes a remote snake at the start of the next tick.
func (g *Game) Forget(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.queue = append(g.queue, inbound{id: id, forget: true})
}

// Tick advances the session by one tick. turns holds the heading change of
// each local snake in slot order; missing entries mean straight ahead.
// It returns false once the session is over.
func (g *Game) Tick(turns ...float64) bool {
	g.mu.Lock()
	if g.state == StateOver {
		g.mu.Unlock()
		return false
	}
	g.applyQueue()
	g.peers = g.buildPeers()
	g.tick++
	g.mu.Unlock()

	for i, s := range g.local {
		turn := 0.0
		if i < len(turns) {
			turn = turns[i]
		}
		s.Advance(turn)
	}

	targets := make([]Target, len(g.local))
	for i, s := range g.local {
		targets[i] = s
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastGain = g.pickups.Update(g.cfg.Map, targets)
	for _, c := range g.lastGain {
		if c.Kind != PickupGrow && g.cfg.Effects != nil {
			g.cfg.Effects.Play(audio.SoundSpeed)
		}
	}
	g.checkOver()
	return g.state == StatePlaying
}

func (g *Game) applyQueue() {
	for _, in := range g.queue {
		if in.forget {
			delete(g.remotes, in.id)
			g.log.Info("remote snake left", "snake", in.id)
			continue
		}
		r, ok := g.remotes[in.id]
		if !ok {
			r = engine.NewRemote(in.id)
			g.remotes[in.id] = r
			g.score.Join(in.id)
			g.log.Info("remote snake joined", "snake", in.id)
		}
		if err := r.ApplySnapshot(in.snap); err != nil {
			g.log.Warn("remote snapshot dropped", "snake", in.id, "err", err)
		}
	}
	g.queue = g.queue[:0]
}

func (g *Game) buildPeers() []engine.Peer {
	peers := make([]engine.Peer, 0, len(g.local)+len(g.remotes))
	for _, s := range g.local {
		peers = append(peers, s)
	}
	for _, id := range g.remoteIDs() {
		peers = append(peers, g.remotes[id])
	}
	return peers
}

func (g *Game) remoteIDs() []string {
	ids := make([]string, 0, len(g.remotes))
	for id := range g.remotes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (g *Game) checkOver() {
	if g.cfg.ScoreFloor < 0 {
		if id, ok := g.score.AtOrBelow(g.cfg.ScoreFloor); ok {
			g.end(ReasonScore, id)
			return
		}
	}
	if g.cfg.TimeLimit > 0 && g.tick >= uint64(g.cfg.TimeLimit) {
		g.end(ReasonTime, "")
	}
}

func (g *Game) end(reason OverReason, loser string) {
	g.state = StateOver
	g.reason = reason
	g.loser = loser
	if g.cfg.Effects != nil {
		g.cfg.Effects.Play(audio.SoundGameOver)
	}
	g.log.Info("session over", "reason", reason.String(), "loser", loser, "tick", g.tick)
}

// Over reports whether the session ended and why.
func (g *Game) Over() (bool, OverReason, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state == StateOver, g.reason, g.loser
}

func (g *Game) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Game) Ticks() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tick
}

// PublishDue reports whether local snapshots should be sent this tick.
func (g *Game) PublishDue() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cfg.SnapshotEvery <= 1 || g.tick%uint64(g.cfg.SnapshotEvery) == 0
}

// Snapshots returns the current snapshot of every local snake.
func (g *Game) Snapshots() []Published {
	out := make([]Published, len(g.local))
	for i, s := range g.local {
		out[i] = Published{ID: s.ID(), Snapshot: s.Snapshot()}
	}
	return out
}

// Bodies returns local snakes followed by remote snakes ordered by ID.
func (g *Game) Bodies() []Body {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Body, 0, len(g.local)+len(g.remotes))
	for _, s := range g.local {
		out = append(out, s)
	}
	for _, id := range g.remoteIDs() {
		out = append(out, g.remotes[id])
	}
	return out
}

// Pickups returns the live pickup boxes.
func (g *Game) Pickups() []Pickup {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pickups.Live()
}

// Collected returns the boxes collected during the last tick.
func (g *Game) Collected() []Collected {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Collected(nil), g.lastGain...)
}
