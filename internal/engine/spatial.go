package engine

// RectF is an axis-aligned rectangle in map-pixel space.
type RectF struct {
	X0, Y0 float64
	X1, Y1 float64
}

func (r RectF) Intersects(o RectF) bool {
	return r.X0 < o.X1 && r.X1 > o.X0 && r.Y0 < o.Y1 && r.Y1 > o.Y0
}

func (r RectF) Contains(o RectF) bool {
	return o.X0 >= r.X0 && o.X1 <= r.X1 && o.Y0 >= r.Y0 && o.Y1 <= r.Y1
}

// boxAt returns the inset collision box of a part whose top-left corner is (x, y).
func boxAt(x, y float64) RectF {
	return RectF{
		X0: x + CollisionInset, Y0: y + CollisionInset,
		X1: x + PartSize - CollisionInset, Y1: y + PartSize - CollisionInset,
	}
}
