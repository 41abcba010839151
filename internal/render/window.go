package render

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// glHints request the GL 4.1 core context the shaders are written for.
var glHints = []struct {
	hint  glfw.Hint
	value int
}{
	{glfw.ContextVersionMajor, 4},
	{glfw.ContextVersionMinor, 1},
	{glfw.OpenGLProfile, glfw.OpenGLCoreProfile},
	{glfw.OpenGLForwardCompatible, glfw.True},
	{glfw.Resizable, glfw.True},
}

// OpenArenaWindow opens a window showing an arena of mapW x mapH pixels at
// scale. The window keeps the arena's aspect ratio and cannot shrink below
// one map pixel per screen pixel. The caller must have locked the OS thread
// and must call glfw.Terminate when done.
func OpenArenaWindow(title string, mapW, mapH, scale int) (*glfw.Window, error) {
	if mapW <= 0 || mapH <= 0 {
		return nil, fmt.Errorf("render: arena %dx%d", mapW, mapH)
	}
	scale = max(scale, 1)
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}
	for _, h := range glHints {
		glfw.WindowHint(h.hint, h.value)
	}

	win, err := glfw.CreateWindow(mapW*scale, mapH*scale, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.SetSizeLimits(mapW, mapH, glfw.DontCare, glfw.DontCare)
	win.SetAspectRatio(mapW, mapH)
	win.MakeContextCurrent()
	glfw.SwapInterval(1)
	return win, nil
}
