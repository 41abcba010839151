package engine

import "math"

// displacement returns the per-tick vector for heading (degrees) and step.
func displacement(heading float64, step int) (dx, dy float64) {
	r := heading * math.Pi / 180
	return float64(step) * math.Cos(r), float64(step) * math.Sin(r)
}

// candidateHead is the unvalidated next head. Movement subtracts the
// displacement, so heading 0 travels towards -x.
func candidateHead(head Segment, heading float64, step int) Segment {
	dx, dy := displacement(heading, step)
	return Segment{X: head.X - dx, Y: head.Y - dy, Heading: heading}
}

// probeFree queries the map at the visual center of a part placed at (x, y).
// The field is a torus, so a center past an edge is looked up on the other
// side.
func probeFree(m ObstacleMap, x, y float64) bool {
	px := ringAdd(int(math.Floor(x+PartSize/2)), 0, m.Width())
	py := ringAdd(int(math.Floor(y+PartSize/2)), 0, m.Height())
	return m.IsFree(px, py)
}

// resolveWrap applies edge wraparound per axis. An axis that crossed an edge
// wraps when the destination is free and otherwise keeps prev's coordinate.
// dx, dy report the offset applied by a successful wrap.
func resolveWrap(cand, prev Segment, m ObstacleMap) (out Segment, dx, dy float64) {
	w, h := float64(m.Width()), float64(m.Height())
	out = cand

	switch {
	case cand.X < -WrapTolerance:
		dx = w
	case cand.X > w+WrapTolerance:
		dx = -w
	}
	if dx != 0 {
		if probeFree(m, cand.X+dx, cand.Y) {
			out.X = cand.X + dx
		} else {
			out.X = prev.X
			dx = 0
		}
	}

	switch {
	case cand.Y < -WrapTolerance:
		dy = h
	case cand.Y > h+WrapTolerance:
		dy = -h
	}
	if dy != 0 {
		if probeFree(m, out.X, cand.Y+dy) {
			out.Y = cand.Y + dy
		} else {
			out.Y = prev.Y
			dy = 0
		}
	}
	return out, dx, dy
}
