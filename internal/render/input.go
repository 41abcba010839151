package render

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"snakenet/internal/engine"
)

// Steering keys per local player.
var playerKeys = [][2]glfw.Key{
	{glfw.KeyLeft, glfw.KeyRight},
	{glfw.KeyA, glfw.KeyD},
}

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{prevKeys: make(map[glfw.Key]bool)}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Turns returns the heading change of each of n local players for this tick:
// one TurnStep left or right while a steering key is held.
func Turns(window *glfw.Window, n int) []float64 {
	turns := make([]float64, n)
	for i := 0; i < n && i < len(playerKeys); i++ {
		left := window.GetKey(playerKeys[i][0]) == glfw.Press
		right := window.GetKey(playerKeys[i][1]) == glfw.Press
		switch {
		case left && !right:
			turns[i] = -engine.TurnStep
		case right && !left:
			turns[i] = engine.TurnStep
		}
	}
	return turns
}
