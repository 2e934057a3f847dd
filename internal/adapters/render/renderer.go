//go:build !android

package render

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"tacsim/internal/sim"
)

func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Renderer draws a battlefield top-down view: one colored billboard
// per live unit and projectile, camera-transformed the way the
// teacher's chunk/sprite programs are.
type Renderer struct {
	prog uint32
	vao  uint32
	vbo  uint32

	uWorldPos   int32
	uSize       int32
	uCamera     int32
	uZoom       int32
	uResolution int32
	uColor      int32

	Camera [2]float32
	Zoom   float32
}

var quadVerts = []float32{0, 0, 1, 0, 0, 1, 1, 1}

func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	prog, err := linkProgram(billboardVertSrc, billboardFragSrc)
	if err != nil {
		return nil, err
	}

	r := &Renderer{prog: prog, Zoom: 1}
	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVerts)*4, gl.Ptr(quadVerts), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))
	gl.EnableVertexAttribArray(0)

	r.uWorldPos = gl.GetUniformLocation(r.prog, gl.Str("uWorldPos\x00"))
	r.uSize = gl.GetUniformLocation(r.prog, gl.Str("uSize\x00"))
	r.uCamera = gl.GetUniformLocation(r.prog, gl.Str("uCamera\x00"))
	r.uZoom = gl.GetUniformLocation(r.prog, gl.Str("uZoom\x00"))
	r.uResolution = gl.GetUniformLocation(r.prog, gl.Str("uResolution\x00"))
	r.uColor = gl.GetUniformLocation(r.prog, gl.Str("uColor\x00"))

	return r, nil
}

// DrawFrame renders every live unit and projectile in s against the
// current window resolution. Colors distinguish owners by player slot
// so a desync is visually obvious in a split-screen debug harness.
func (r *Renderer) DrawFrame(s *sim.Simulation, resW, resH int) {
	gl.Viewport(0, 0, int32(resW), int32(resH))
	gl.ClearColor(0.05, 0.05, 0.08, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(r.prog)
	gl.BindVertexArray(r.vao)
	gl.Uniform2f(r.uCamera, r.Camera[0], r.Camera[1])
	gl.Uniform1f(r.uZoom, r.Zoom)
	gl.Uniform2f(r.uResolution, float32(resW), float32(resH))

	s.Units.Each(func(u *sim.UnitState) {
		if u.LifeState == sim.Dead {
			return
		}
		cr, cg, cb := playerColor(u.Owner)
		gl.Uniform3f(r.uColor, cr, cg, cb)
		gl.Uniform2f(r.uWorldPos, float32(u.Position.X.ToFloat64()), float32(u.Position.Z.ToFloat64()))
		gl.Uniform1f(r.uSize, 8)
		gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	})

	s.Projectiles.Each(func(p *sim.Projectile) {
		gl.Uniform3f(r.uColor, 1, 0.9, 0.2)
		gl.Uniform2f(r.uWorldPos, float32(p.Position.X.ToFloat64()), float32(p.Position.Z.ToFloat64()))
		gl.Uniform1f(r.uSize, 2)
		gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	})
}

func playerColor(id sim.PlayerId) (float32, float32, float32) {
	palette := [sim.MaxPlayers][3]float32{
		{0.9, 0.2, 0.2}, {0.2, 0.4, 0.9}, {0.2, 0.8, 0.3}, {0.9, 0.8, 0.2},
		{0.7, 0.2, 0.8}, {0.2, 0.8, 0.8}, {0.9, 0.5, 0.1}, {0.6, 0.6, 0.6},
		{0.3, 0.3, 0.9}, {0.8, 0.3, 0.5},
	}
	c := palette[id.Slot()%sim.MaxPlayers]
	return c[0], c[1], c[2]
}

func (r *Renderer) Close() {
	gl.DeleteVertexArrays(1, &r.vao)
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteProgram(r.prog)
}
