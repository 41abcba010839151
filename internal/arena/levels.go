package arena

import "fmt"

// LevelConfig describes how an arena is built.
type LevelConfig struct {
	Name   string
	Border bool
	// Blocks are fixed walls given as fractions of the map size:
	// {x0, y0, x1, y1}.
	Blocks [][4]float64
	// Scatter adds that many seeded random blocks away from the spawns.
	Scatter int
}

// GetLevelConfig returns settings for a given level.
// Levels 1-4 are hand-made; beyond that more blocks are scattered.
func GetLevelConfig(level int) LevelConfig {
	switch level {
	case 1:
		// Open field, every edge wraps.
		return LevelConfig{Name: "open"}
	case 2:
		// Walled box, no wraparound.
		return LevelConfig{Name: "box", Border: true}
	case 3:
		return LevelConfig{Name: "pillars", Border: true, Blocks: [][4]float64{
			{0.45, 0.1, 0.55, 0.2},
			{0.45, 0.8, 0.55, 0.9},
			{0.05, 0.45, 0.15, 0.55},
			{0.85, 0.45, 0.95, 0.55},
		}}
	case 4:
		// Cross through the middle; the open edges still wrap.
		return LevelConfig{Name: "cross", Blocks: [][4]float64{
			{0.48, 0.0, 0.52, 0.4},
			{0.48, 0.6, 0.52, 1.0},
			{0.0, 0.47, 0.4, 0.53},
			{0.6, 0.47, 1.0, 0.53},
		}}
	}
	if level < 1 {
		return GetLevelConfig(1)
	}
	return LevelConfig{
		Name:    fmt.Sprintf("scatter-%d", level),
		Border:  true,
		Scatter: 4 + 2*(level-5),
	}
}

// spawnClearance keeps scattered blocks this far from any spawn point.
const spawnClearance = 64

// Build creates a w x h arena for cfg.
func Build(cfg LevelConfig, w, h int, seed uint64) (*Map, error) {
	m, err := New(w, h)
	if err != nil {
		return nil, err
	}
	m.Name = cfg.Name
	m.Fill(seed)
	if cfg.Border {
		m.AddBorder(2)
	}
	fw, fh := float64(w), float64(h)
	for _, b := range cfg.Blocks {
		m.AddBlock(int(b[0]*fw), int(b[1]*fh), int(b[2]*fw), int(b[3]*fh), BlockHeight)
	}
	if cfg.Scatter > 0 {
		m.scatter(NewRand(seed), cfg.Scatter)
	}
	m.Shade()
	return m, nil
}

// Level builds the numbered level at the default size.
func Level(n int, seed uint64) (*Map, error) {
	return Build(GetLevelConfig(n), DefaultWidth, DefaultHeight, seed)
}

func (m *Map) scatter(r *Rand, n int) {
	for placed, tries := 0, 0; placed < n && tries < n*32; tries++ {
		bw := r.Range(16, 64)
		bh := r.Range(16, 64)
		x := r.Intn(m.w - bw)
		y := r.Intn(m.h - bh)
		if m.nearSpawn(x, y, x+bw, y+bh) {
			continue
		}
		m.AddBlock(x, y, x+bw, y+bh, BlockHeight)
		placed++
	}
}

func (m *Map) nearSpawn(x0, y0, x1, y1 int) bool {
	for _, s := range m.spawns {
		sx, sy := int(s.X), int(s.Y)
		if sx+spawnClearance > x0 && sx-spawnClearance < x1 &&
			sy+spawnClearance > y0 && sy-spawnClearance < y1 {
			return true
		}
	}
	return false
}
