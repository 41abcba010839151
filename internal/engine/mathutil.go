package engine

import "math"

// normalizeHeading maps any angle in degrees into [0, 360).
func normalizeHeading(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ringAdd steps index i by d slots in a ring of size n.
func ringAdd(i, d, n int) int {
	i = (i + d) % n
	if i < 0 {
		i += n
	}
	return i
}

// ringDist is the forward distance from a to b in a ring of size n.
func ringDist(a, b, n int) int {
	return ringAdd(b, -a, n)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
