package arena

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

func (c RGB) Add(dr, dg, db int) RGB {
	return RGB{R: addU8(c.R, dr), G: addU8(c.G, dg), B: addU8(c.B, db)}
}

func addU8(v uint8, d int) uint8 {
	r := int(v) + d
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}

// Palette holds the arena colours.
var Palette = struct {
	Ground      RGB
	GroundPatch RGB
	Wall        RGB
	WallTop     RGB
	Border      RGB
	Pickup      RGB
}{
	Ground:      RGB{R: 140, G: 136, B: 91},
	GroundPatch: RGB{R: 122, G: 120, B: 78},
	Wall:        RGB{R: 104, G: 108, B: 112},
	WallTop:     RGB{R: 153, G: 144, B: 133},
	Border:      RGB{R: 0, G: 0, B: 0},
	Pickup:      RGB{R: 255, G: 200, B: 90},
}
