package arena

// Directional shadow settings.
const (
	SunDx         = -1
	SunDy         = -1
	SunSlope      = 1
	MaxShadowDist = 24
	ShadeLit      = 255
	ShadeDark     = 160
)

// Shade recalculates per-pixel shadows from the height map: a pixel is dark
// when a taller wall lies towards the sun within MaxShadowDist pixels.
func (m *Map) Shade() {
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			i := m.idx(x, y)
			shade := uint8(ShadeLit)
			if m.shadowed(x, y, m.Heights[i]) {
				shade = ShadeDark
			}
			m.Pixels[i*4+3] = shade
		}
	}
	m.NeedsUpload = true
}

func (m *Map) shadowed(x, y int, h uint8) bool {
	for step := 1; step <= MaxShadowDist; step++ {
		sx := x + SunDx*step
		sy := y + SunDy*step
		if !m.in(sx, sy) {
			return false
		}
		oh := m.Heights[m.idx(sx, sy)]
		if float64(oh)-float64(step*SunSlope) > float64(h) {
			return true
		}
	}
	return false
}

// ShadeAt returns the shade byte of a pixel.
func (m *Map) ShadeAt(x, y int) uint8 {
	if !m.in(x, y) {
		return ShadeDark
	}
	return m.Pixels[m.idx(x, y)*4+3]
}
