// Package framedump writes PNG snapshots of a scene.Frame.
package framedump

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"snakenet/internal/arena"
	"snakenet/internal/scene"
)

// ArenaImage converts the map's RGBA8 buffer, where alpha holds the shade,
// into an opaque image.
func ArenaImage(m *arena.Map) *image.RGBA {
	w, h := m.Width(), m.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		o := i * 4
		shade := m.Pixels[o+3]
		c := arena.RGB{R: m.Pixels[o], G: m.Pixels[o+1], B: m.Pixels[o+2]}.Mul(shade)
		img.Pix[o+0] = c.R
		img.Pix[o+1] = c.G
		img.Pix[o+2] = c.B
		img.Pix[o+3] = 255
	}
	return img
}

// Draw renders f scaled by scale: arena, pickups, snakes and the HUD.
func Draw(f scene.Frame, scale float64) image.Image {
	if scale <= 0 {
		scale = 1
	}
	w, h := f.Map.Width(), f.Map.Height()
	dc := gg.NewContext(int(float64(w)*scale), int(float64(h)*scale))
	dc.Scale(scale, scale)
	dc.DrawImage(ArenaImage(f.Map), 0, 0)

	pickups := f.PickupSprites(nil)
	for i := 0; i+scene.SpriteFloats <= len(pickups); i += scene.SpriteFloats {
		s := pickups[i : i+scene.SpriteFloats]
		x, y, size := float64(s[0]), float64(s[1]), float64(s[2])*0.8
		dc.Push()
		dc.RotateAbout(float64(s[7]), x, y)
		dc.DrawRectangle(x-size/2, y-size/2, size, size)
		dc.SetRGBA(float64(s[3]), float64(s[4]), float64(s[5]), float64(s[6]))
		dc.FillPreserve()
		dc.SetRGB(0.04, 0.04, 0.04)
		dc.SetLineWidth(1)
		dc.Stroke()
		dc.Pop()
	}

	sprites := f.Sprites(nil)
	for i := 0; i+scene.SpriteFloats <= len(sprites); i += scene.SpriteFloats {
		s := sprites[i : i+scene.SpriteFloats]
		x, y, size := float64(s[0]), float64(s[1]), float64(s[2])
		dc.DrawRectangle(x-size/2, y-size/2, size, size)
		dc.SetRGBA(float64(s[3]), float64(s[4]), float64(s[5]), float64(s[6]))
		dc.Fill()
	}

	dc.Identity()
	for i, line := range f.HUD() {
		y := 14 + float64(i)*14
		dc.SetColor(color.Black)
		dc.DrawString(line, 7, y+1)
		dc.SetColor(color.White)
		dc.DrawString(line, 6, y)
	}
	return dc.Image()
}

// Write saves f as a PNG at path.
func Write(path string, f scene.Frame, scale float64) error {
	if err := gg.SavePNG(path, Draw(f, scale)); err != nil {
		return fmt.Errorf("framedump: %w", err)
	}
	return nil
}

// Dump writes f into dir as frame-<tick>.png and returns the file path.
func Dump(dir string, f scene.Frame, scale float64) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("framedump: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%08d.png", f.Tick))
	if err := Write(path, f, scale); err != nil {
		return "", err
	}
	return path, nil
}
