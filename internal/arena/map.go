package arena

import (
	"errors"
	"fmt"
	"math"
)

// Default arena size in map pixels.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// Spawn slots per arena.
const SpawnSlots = 4

// Wall heights. Any height above zero blocks movement; taller walls cast
// longer shadows.
const (
	BorderHeight = 12
	BlockHeight  = 8
)

var ErrBadSize = errors.New("arena: bad size")

// Spawn is a start position: the top-left of the head part and a heading in
// degrees.
type Spawn struct {
	X, Y    float64
	Heading float64
}

// Map is the obstacle grid snakes move on.
// Pixels is RGBA8: RGB is the base colour, A encodes shade (255=lit).
type Map struct {
	Name string

	w, h    int
	Pixels  []uint8
	Heights []uint8 // per-pixel height (0=ground, >0=wall)
	spawns  [SpawnSlots]Spawn

	// NeedsUpload is set whenever Pixels changed since the renderer last
	// uploaded the texture.
	NeedsUpload bool
}

func New(w, h int) (*Map, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadSize, w, h)
	}
	m := &Map{
		w:           w,
		h:           h,
		Pixels:      make([]uint8, w*h*4),
		Heights:     make([]uint8, w*h),
		NeedsUpload: true,
	}
	m.defaultSpawns()
	return m, nil
}

// defaultSpawns places one slot in each quadrant, facing the center.
func (m *Map) defaultSpawns() {
	qx, qy := float64(m.w)/4, float64(m.h)/4
	m.spawns = [SpawnSlots]Spawn{
		{X: qx, Y: qy, Heading: 180},
		{X: 3 * qx, Y: 3 * qy, Heading: 0},
		{X: 3 * qx, Y: qy, Heading: 0},
		{X: qx, Y: 3 * qy, Heading: 180},
	}
}

func (m *Map) Width() int  { return m.w }
func (m *Map) Height() int { return m.h }

func (m *Map) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.w && y < m.h
}

func (m *Map) idx(x, y int) int { return y*m.w + x }

// HeightAt returns the wall height at a map pixel. Outside the map is solid.
func (m *Map) HeightAt(x, y int) uint8 {
	if !m.in(x, y) {
		return 255
	}
	return m.Heights[m.idx(x, y)]
}

// IsFree reports whether a snake may occupy the pixel.
func (m *Map) IsFree(x, y int) bool {
	return m.HeightAt(x, y) == 0
}

func (m *Map) ColorAt(x, y int) RGB {
	if !m.in(x, y) {
		return Palette.Border
	}
	o := m.idx(x, y) * 4
	return RGB{R: m.Pixels[o], G: m.Pixels[o+1], B: m.Pixels[o+2]}
}

func (m *Map) set(x, y int, col RGB, height uint8) {
	i := m.idx(x, y)
	o := i * 4
	m.Pixels[o+0] = col.R
	m.Pixels[o+1] = col.G
	m.Pixels[o+2] = col.B
	m.Pixels[o+3] = ShadeLit
	m.Heights[i] = height
	m.NeedsUpload = true
}

// Fill paints the whole map as ground with a faint deterministic pattern.
func (m *Map) Fill(seed uint64) {
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			col := Palette.Ground
			if hash2D(seed, x/8, y/8)%5 == 0 {
				col = Palette.GroundPatch
			}
			m.set(x, y, col, 0)
		}
	}
}

// AddBlock raises a wall over [x0,x1) x [y0,y1), clipped to the map.
func (m *Map) AddBlock(x0, y0, x1, y1 int, height uint8) {
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, m.w), min(y1, m.h)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			col := Palette.Wall
			if x == x0 || y == y0 {
				col = Palette.WallTop
			}
			m.set(x, y, col, height)
		}
	}
}

// AddBorder walls off the outer ring of the map, which disables wraparound.
func (m *Map) AddBorder(thickness int) {
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if x < thickness || y < thickness || x >= m.w-thickness || y >= m.h-thickness {
				m.set(x, y, Palette.Border, BorderHeight)
			}
		}
	}
}

// SetSpawn overrides a spawn slot.
func (m *Map) SetSpawn(slot int, s Spawn) {
	m.spawns[slot%SpawnSlots] = s
}

// SpawnPoint returns the spawn slot's head position and heading. Slots
// beyond SpawnSlots reuse the table.
func (m *Map) SpawnPoint(slot int) (x, y, heading float64) {
	if slot < 0 {
		slot = -slot
	}
	s := m.spawns[slot%SpawnSlots]
	return s.X, s.Y, s.Heading
}

// SpawnFree reports whether a part of size px placed at the slot lies on
// free ground.
func (m *Map) SpawnFree(slot int, px float64) bool {
	x, y, _ := m.SpawnPoint(slot)
	return m.areaFree(int(math.Floor(x)), int(math.Floor(y)), int(px), int(px))
}

func (m *Map) areaFree(x, y, w, h int) bool {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			if !m.IsFree(xx, yy) {
				return false
			}
		}
	}
	return true
}

// RandomFree picks a free size x size area using r. It gives up after a
// bounded number of tries.
func (m *Map) RandomFree(r *Rand, size int) (x, y int, ok bool) {
	if size <= 0 || size > m.w || size > m.h {
		return 0, 0, false
	}
	for try := 0; try < 256; try++ {
		x = r.Intn(m.w - size + 1)
		y = r.Intn(m.h - size + 1)
		if m.areaFree(x, y, size, size) {
			return x, y, true
		}
	}
	return 0, 0, false
}

// FreeCount returns the number of free pixels.
func (m *Map) FreeCount() int {
	n := 0
	for _, h := range m.Heights {
		if h == 0 {
			n++
		}
	}
	return n
}
