package arena

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

var ErrSpawnBlocked = errors.New("arena: spawn slot covered by a wall")

// maskThreshold is the grey level below which a mask pixel is a wall.
const maskThreshold = 128

// spawnArea is the square that must be free around each spawn point.
const spawnArea = 12

// LoadMask builds a w x h arena from an image file. Dark pixels become walls;
// the image is scaled to the arena size.
func LoadMask(path string, w, h int, seed uint64) (*Map, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("arena: open mask %s: %w", path, err)
	}
	m, err := FromImage(img, w, h, seed)
	if err != nil {
		return nil, fmt.Errorf("arena: mask %s: %w", path, err)
	}
	return m, nil
}

// FromImage builds a w x h arena from img. Every spawn slot must stay free.
func FromImage(img image.Image, w, h int, seed uint64) (*Map, error) {
	m, err := New(w, h)
	if err != nil {
		return nil, err
	}
	m.Name = "mask"
	m.Fill(seed)

	grey := imaging.Grayscale(imaging.Resize(img, w, h, imaging.NearestNeighbor))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Grayscale leaves R == G == B.
			if grey.Pix[grey.PixOffset(x, y)] < maskThreshold {
				m.set(x, y, Palette.Wall, BlockHeight)
			}
		}
	}
	for slot := 0; slot < SpawnSlots; slot++ {
		if !m.SpawnFree(slot, spawnArea) {
			return nil, fmt.Errorf("%w: slot %d", ErrSpawnBlocked, slot)
		}
	}
	m.Shade()
	return m, nil
}
