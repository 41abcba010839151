package engine

import "sync"

// ObstacleMap answers terrain queries in map pixels.
type ObstacleMap interface {
	IsFree(px, py int) bool
	SpawnPoint(slot int) (x, y, heading float64)
	Width() int
	Height() int
}

// View is a consistent copy of a snake taken under its read lock.
type View struct {
	ID       string
	Head     Segment
	HeadRect RectF
	Segments []Segment // live window, tail first
	Count    int
	State    State
}

// Peer is anything whose body another snake collides against.
type Peer interface {
	View() View
}

// core holds the state shared by authoritative and remote snakes and the
// read API both expose. Only the embedding type mutates it.
type core struct {
	mu    sync.RWMutex
	id    string
	body  BodyBuffer
	trail PixelTrail
	state State
	speed int
}

func (c *core) ID() string { return c.id }

func (c *core) HeadSegment() Segment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.body.Head()
}

func (c *core) HeadRect() RectF {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.body.Head().Rect()
}

// LiveSegments returns every slot of the live window, tail first.
func (c *core) LiveSegments() []Segment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.body.Live()
}

// Parts returns the visible parts, head first.
func (c *core) Parts() []Segment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.body.Parts()
}

func (c *core) SegmentCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.body.Count()
}

func (c *core) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// SpeedModifier is the active modifier of a local snake, or the one inferred
// from displacement for a remote snake.
func (c *core) SpeedModifier() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.speed
}

// PixelTrail returns the trail entries written since the previous call.
func (c *core) PixelTrail() []PixelEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trail.Drain()
}

// RecentTrail returns up to n newest trail entries without consuming them.
func (c *core) RecentTrail(n int) []PixelEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trail.Recent(n)
}

func (c *core) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	head := c.body.Head()
	return View{
		ID:       c.id,
		Head:     head,
		HeadRect: head.Rect(),
		Segments: c.body.Live(),
		Count:    c.body.Count(),
		State:    c.state,
	}
}
