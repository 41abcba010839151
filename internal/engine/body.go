package engine

// BodyBuffer is the fixed-capacity ring of logical segments.
// The live window runs forward from tail to head (inclusive) and always spans
// count*PointDist slots. Slots behind tail keep the path the snake walked, so
// growing simply re-exposes them.
type BodyBuffer struct {
	slots [MaxPoints]Segment
	head  int
	tail  int
	count int
}

// seed fills the whole ring with s and opens a window of count parts.
func (b *BodyBuffer) seed(s Segment, count int) {
	for i := range b.slots {
		b.slots[i] = s
	}
	b.count = clamp(count, StartParts, MaxParts)
	b.tail = 0
	b.head = b.count * PointDist
}

// Head returns the segment at the head slot.
func (b *BodyBuffer) Head() Segment {
	return b.slots[b.head]
}

func (b *BodyBuffer) HeadIndex() int { return b.head }
func (b *BodyBuffer) TailIndex() int { return b.tail }
func (b *BodyBuffer) Count() int     { return b.count }

// Window returns the number of slots between tail and head.
func (b *BodyBuffer) Window() int {
	return ringDist(b.tail, b.head, MaxPoints)
}

// At returns the segment stored at ring index i.
func (b *BodyBuffer) At(i int) Segment {
	return b.slots[ringAdd(i, 0, MaxPoints)]
}

// push advances head then tail by one slot and writes s at the new head.
func (b *BodyBuffer) push(s Segment) {
	b.head = ringAdd(b.head, 1, MaxPoints)
	b.tail = ringAdd(b.tail, 1, MaxPoints)
	b.slots[b.head] = s
}

// grow adds one part by moving tail back. Saturates at MaxParts.
func (b *BodyBuffer) grow() bool {
	if b.count >= MaxParts {
		return false
	}
	b.count++
	b.tail = ringAdd(b.tail, -PointDist, MaxPoints)
	return true
}

// shrink drops one part by moving tail forward. Saturates at StartParts.
func (b *BodyBuffer) shrink() bool {
	if b.count <= StartParts {
		return false
	}
	b.count--
	b.tail = ringAdd(b.tail, PointDist, MaxPoints)
	return true
}

// Live copies the live window, tail first.
func (b *BodyBuffer) Live() []Segment {
	n := b.Window() + 1
	out := make([]Segment, n)
	for i := 0; i < n; i++ {
		out[i] = b.slots[ringAdd(b.tail, i, MaxPoints)]
	}
	return out
}

// Parts copies the visible parts, head first, one every PointDist slots.
func (b *BodyBuffer) Parts() []Segment {
	out := make([]Segment, 0, b.count+1)
	for i := 0; i <= b.count; i++ {
		out = append(out, b.slots[ringAdd(b.head, -i*PointDist, MaxPoints)])
	}
	return out
}

// place repositions the window at the given indices; count is derived from
// the window length. Used by the snapshot path only.
func (b *BodyBuffer) place(head, tail, count int) {
	b.head = head
	b.tail = tail
	b.count = count
}

// set writes s at ring index i without moving the window.
func (b *BodyBuffer) set(i int, s Segment) {
	b.slots[ringAdd(i, 0, MaxPoints)] = s
}
