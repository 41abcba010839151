package engine

import "math"

// Segment is one logical body position.
// Heading is in degrees, [0, 360).
type Segment struct {
	X, Y    float64
	Heading float64
}

// Rect returns the inset collision box of the part drawn at s.
func (s Segment) Rect() RectF {
	return boxAt(s.X, s.Y)
}

// Center returns the visual center of the part sprite.
func (s Segment) Center() (float64, float64) {
	return s.X + PartSize/2, s.Y + PartSize/2
}

// PixelEntry is one interpolated position of the pixel trail.
type PixelEntry struct {
	X, Y    float64
	Heading float64
}

func distance(a, b Segment) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
