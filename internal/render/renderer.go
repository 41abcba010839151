// Package render draws scene frames with OpenGL 4.1 into a glfw window.
package render

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"snakenet/internal/arena"
	"snakenet/internal/scene"
)

// MaxSprites caps the point sprites uploaded per draw call.
const MaxSprites = 8192

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Camera maps map pixels to the framebuffer: X, Y is the map point shown at
// the framebuffer centre.
type Camera struct {
	X, Y float64
	Zoom float64
}

// FitCamera shows the whole map, letterboxed.
func FitCamera(mapW, mapH, fbW, fbH int) Camera {
	zoom := math.Min(float64(fbW)/float64(mapW), float64(fbH)/float64(mapH))
	if zoom <= 0 {
		zoom = 1
	}
	return Camera{X: float64(mapW) / 2, Y: float64(mapH) / 2, Zoom: zoom}
}

type Renderer struct {
	// Arena program: one textured quad.
	arenaProg uint32
	arenaVAO  uint32
	arenaVBO  uint32
	arenaTex  uint32
	texW      int
	texH      int

	uMapSize    int32
	uCamera     int32
	uZoom       int32
	uResolution int32
	uTex        int32

	// Sprite programs share one streaming VAO/VBO.
	spriteProg uint32
	pickupProg uint32
	spriteVAO  uint32
	spriteVBO  uint32

	spUCamera     int32
	spUZoom       int32
	spUResolution int32
	pkUCamera     int32
	pkUZoom       int32
	pkUResolution int32

	// Reusable buffers to avoid per-frame allocations.
	spriteBuf []float32
	pickupBuf []float32
}

func NewRenderer() (*Renderer, error) {
	arenaProg, err := linkProgram(arenaVertSrc, arenaFragSrc)
	if err != nil {
		return nil, fmt.Errorf("arena program: %w", err)
	}
	spriteProg, err := linkProgram(spriteVertSrc, spriteFragSrc)
	if err != nil {
		gl.DeleteProgram(arenaProg)
		return nil, fmt.Errorf("sprite program: %w", err)
	}
	pickupProg, err := linkProgram(spriteVertSrc, pickupFragSrc)
	if err != nil {
		gl.DeleteProgram(arenaProg)
		gl.DeleteProgram(spriteProg)
		return nil, fmt.Errorf("pickup program: %w", err)
	}

	r := &Renderer{
		arenaProg:  arenaProg,
		spriteProg: spriteProg,
		pickupProg: pickupProg,
	}

	// Arena VAO/VBO: a unit quad (6 vertices, 2 triangles).
	gl.GenVertexArrays(1, &r.arenaVAO)
	gl.GenBuffers(1, &r.arenaVBO)
	gl.BindVertexArray(r.arenaVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.arenaVBO)

	quadVerts := [12]float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVerts)*4, gl.Ptr(&quadVerts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))

	gl.UseProgram(arenaProg)
	r.uMapSize = gl.GetUniformLocation(arenaProg, gl.Str("uMapSize\x00"))
	r.uCamera = gl.GetUniformLocation(arenaProg, gl.Str("uCamera\x00"))
	r.uZoom = gl.GetUniformLocation(arenaProg, gl.Str("uZoom\x00"))
	r.uResolution = gl.GetUniformLocation(arenaProg, gl.Str("uResolution\x00"))
	r.uTex = gl.GetUniformLocation(arenaProg, gl.Str("uTex\x00"))
	gl.Uniform1i(r.uTex, 0)

	// Sprite VAO/VBO: streaming buffer for point sprites.
	// Each sprite: 8 floats (x, y, size, r, g, b, a, rotation).
	gl.GenVertexArrays(1, &r.spriteVAO)
	gl.GenBuffers(1, &r.spriteVBO)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)

	stride := int32(scene.SpriteFloats * 4)
	gl.BufferData(gl.ARRAY_BUFFER, MaxSprites*int(stride), nil, gl.STREAM_DRAW)
	// aWorldPos (vec2)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	// aSize (float)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))
	// aRotation (float)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 1, gl.FLOAT, false, stride, glOffset(7*4))

	gl.UseProgram(spriteProg)
	r.spUCamera = gl.GetUniformLocation(spriteProg, gl.Str("uCamera\x00"))
	r.spUZoom = gl.GetUniformLocation(spriteProg, gl.Str("uZoom\x00"))
	r.spUResolution = gl.GetUniformLocation(spriteProg, gl.Str("uResolution\x00"))

	gl.UseProgram(pickupProg)
	r.pkUCamera = gl.GetUniformLocation(pickupProg, gl.Str("uCamera\x00"))
	r.pkUZoom = gl.GetUniformLocation(pickupProg, gl.Str("uZoom\x00"))
	r.pkUResolution = gl.GetUniformLocation(pickupProg, gl.Str("uResolution\x00"))

	gl.BindVertexArray(0)

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.ClearColor(0, 0, 0, 1)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.arenaVBO, r.spriteVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.arenaVAO, r.spriteVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.arenaProg, r.spriteProg, r.pickupProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	if r.arenaTex != 0 {
		gl.DeleteTextures(1, &r.arenaTex)
	}
}

// UploadArena (re)uploads the map texture when it changed.
func (r *Renderer) UploadArena(m *arena.Map) {
	w, h := m.Width(), m.Height()
	if r.arenaTex == 0 || r.texW != w || r.texH != h {
		if r.arenaTex != 0 {
			gl.DeleteTextures(1, &r.arenaTex)
		}
		gl.GenTextures(1, &r.arenaTex)
		gl.BindTexture(gl.TEXTURE_2D, r.arenaTex)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		gl.TexImage2D(
			gl.TEXTURE_2D, 0, gl.RGBA8,
			int32(w), int32(h), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(m.Pixels),
		)
		r.texW, r.texH = w, h
		m.NeedsUpload = false
		return
	}
	if !m.NeedsUpload {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, r.arenaTex)
	gl.TexSubImage2D(
		gl.TEXTURE_2D, 0, 0, 0,
		int32(w), int32(h),
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(m.Pixels),
	)
	m.NeedsUpload = false
}

// DrawFrame clears the framebuffer and draws arena, pickups and snakes.
func (r *Renderer) DrawFrame(f scene.Frame, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)

	r.UploadArena(f.Map)
	cam := FitCamera(f.Map.Width(), f.Map.Height(), fbW, fbH)

	gl.UseProgram(r.arenaProg)
	gl.BindVertexArray(r.arenaVAO)
	gl.Uniform2f(r.uMapSize, float32(f.Map.Width()), float32(f.Map.Height()))
	gl.Uniform2f(r.uCamera, float32(cam.X), float32(cam.Y))
	gl.Uniform1f(r.uZoom, float32(cam.Zoom))
	gl.Uniform2f(r.uResolution, float32(fbW), float32(fbH))
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.arenaTex)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)

	r.pickupBuf = f.PickupSprites(r.pickupBuf[:0])
	r.drawSprites(r.pickupProg, r.pkUCamera, r.pkUZoom, r.pkUResolution, r.pickupBuf, cam, fbW, fbH)

	r.spriteBuf = f.Sprites(r.spriteBuf[:0])
	r.drawSprites(r.spriteProg, r.spUCamera, r.spUZoom, r.spUResolution, r.spriteBuf, cam, fbW, fbH)

	gl.BindVertexArray(0)
}

func (r *Renderer) drawSprites(prog uint32, uCam, uZoom, uRes int32, buf []float32, cam Camera, fbW, fbH int) {
	if len(buf) == 0 {
		return
	}
	count := len(buf) / scene.SpriteFloats
	if count > MaxSprites {
		count = MaxSprites
	}

	gl.UseProgram(prog)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)

	gl.Uniform2f(uCam, float32(cam.X), float32(cam.Y))
	gl.Uniform1f(uZoom, float32(cam.Zoom))
	gl.Uniform2f(uRes, float32(fbW), float32(fbH))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.BufferData(gl.ARRAY_BUFFER, count*scene.SpriteFloats*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))

	gl.Disable(gl.BLEND)
}
