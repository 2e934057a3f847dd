//go:build !android

// Package render is the OpenGL/glfw presentation adapter: it reads a
// *sim.Simulation snapshot and draws it, but never mutates it — all
// simulation-affecting input flows back out as sim.PlayerCommand
// values, never by calling into the simulation directly.
package render

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window wraps a single glfw window sized for the overhead battlefield
// view, following the teacher's initWindow layout.
type Window struct {
	win *glfw.Window
}

// OpenWindow creates and makes current a glfw/OpenGL 4.1 core window.
func OpenWindow(title string, width, height int) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("render: glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	w, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("render: create window: %w", err)
	}
	w.MakeContextCurrent()
	glfw.SwapInterval(1)

	return &Window{win: w}, nil
}

func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }
func (w *Window) SwapBuffers()      { w.win.SwapBuffers() }
func (w *Window) PollEvents()       { glfw.PollEvents() }
func (w *Window) Size() (int, int)  { return w.win.GetSize() }
func (w *Window) Close()            { w.win.Destroy(); glfw.Terminate() }
