package framedump

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"snakenet/internal/arena"
	"snakenet/internal/engine"
	"snakenet/internal/scene"
)

func testFrame(t *testing.T) scene.Frame {
	t.Helper()
	m, err := arena.Build(arena.GetLevelConfig(1), 64, 48, 1)
	if err != nil {
		t.Fatal(err)
	}
	return scene.Frame{
		Tick: 9,
		Map:  m,
		Snakes: []scene.Snake{{
			ID:    "p1",
			Local: true,
			State: engine.StateActive,
			Parts: []engine.Segment{{X: 30, Y: 28}},
			Color: scene.SnakeColors[0],
		}},
	}
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -2 && d <= 2
}

func rgbAt(img image.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func TestArenaImageAppliesShade(t *testing.T) {
	m, _ := arena.New(8, 8)
	m.Fill(1)
	m.AddBlock(0, 0, 8, 8, arena.BlockHeight)
	m.Pixels[3] = arena.ShadeDark

	img := ArenaImage(m)
	want := m.ColorAt(0, 0).Mul(arena.ShadeDark)
	if r, g, b := rgbAt(img, 0, 0); r != want.R || g != want.G || b != want.B {
		t.Fatalf("shaded pixel = %d,%d,%d want %+v", r, g, b, want)
	}
	if img.Pix[3] != 255 {
		t.Fatal("arena image is not opaque")
	}
}

func TestDrawPutsSnakeOnArena(t *testing.T) {
	f := testFrame(t)
	img := Draw(f, 1)
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Fatalf("bounds = %v", b)
	}

	c := scene.SnakeColors[0]
	if r, g, b := rgbAt(img, 36, 34); !near(r, c.R) || !near(g, c.G) || !near(b, c.B) {
		t.Fatalf("head pixel = %d,%d,%d want %+v", r, g, b, c)
	}
	ground := f.Map.ColorAt(60, 2)
	if r, g, b := rgbAt(img, 60, 2); r != ground.R || g != ground.G || b != ground.B {
		t.Fatalf("ground pixel = %d,%d,%d want %+v", r, g, b, ground)
	}

	big := Draw(f, 2)
	if b := big.Bounds(); b.Dx() != 128 || b.Dy() != 96 {
		t.Fatalf("scaled bounds = %v", b)
	}
}

func TestDump(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	path, err := Dump(dir, testFrame(t), 1)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "frame-00000009.png" {
		t.Fatalf("path = %s", path)
	}
	img, err := imaging.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Fatalf("saved bounds = %v", b)
	}
}
