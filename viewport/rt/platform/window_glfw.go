//go:build !js

// Package platform opens the editor's native surfaces and feeds their
// pointer events into an input.Tracker.
package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/gekko-editor/viewport/rt/input"
)

// Window is a glfw window with a current OpenGL 4.1 core context. It must
// be created, polled and destroyed on the main thread.
type Window struct {
	win     *glfw.Window
	tracker *input.Tracker

	arrow *glfw.Cursor
	hand  *glfw.Cursor
	hover bool
}

func init() {
	// glfw calls must stay on the main OS thread.
	runtime.LockOSThread()
}

func NewWindow(width, height int, title string) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	return &Window{
		win:   win,
		arrow: glfw.CreateStandardCursor(glfw.ArrowCursor),
		hand:  glfw.CreateStandardCursor(glfw.HandCursor),
	}, nil
}

// Size is the framebuffer size in pixels, which is what the viewport and
// the cursor coordinates are measured in on scaled displays.
func (w *Window) Size() (int, int) {
	return w.win.GetFramebufferSize()
}

// Poll pumps glfw events into t. Callbacks are attached on the first call.
func (w *Window) Poll(t *input.Tracker) {
	if w.tracker != t {
		w.attach(t)
	}
	glfw.PollEvents()
}

func (w *Window) attach(t *input.Tracker) {
	w.tracker = t

	width, height := w.Size()
	t.Resize(width, height)
	if x, y := w.win.GetCursorPos(); w.win.GetAttrib(glfw.Hovered) == glfw.True {
		t.MoveTo(w.toPixels(x, y))
		t.Enter()
	}

	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		t.MoveTo(w.toPixels(x, y))
	})
	w.win.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if entered {
			t.Enter()
		} else {
			t.Leave()
		}
	})
	w.win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		switch action {
		case glfw.Press:
			t.Press()
		case glfw.Release:
			t.Release()
		}
	})
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		t.Resize(width, height)
	})
}

// toPixels converts window coordinates to framebuffer pixels.
func (w *Window) toPixels(x, y float64) (float32, float32) {
	ww, wh := w.win.GetSize()
	fw, fh := w.win.GetFramebufferSize()
	sx, sy := 1.0, 1.0
	if ww > 0 && wh > 0 {
		sx, sy = float64(fw)/float64(ww), float64(fh)/float64(wh)
	}
	return float32(x * sx), float32(y * sy)
}

// SetHoverCursor shows a hand while the pointer is over a gizmo handle.
func (w *Window) SetHoverCursor(hover bool) {
	if hover == w.hover {
		return
	}
	w.hover = hover
	if hover {
		w.win.SetCursor(w.hand)
	} else {
		w.win.SetCursor(w.arrow)
	}
}

func (w *Window) SwapBuffers()      { w.win.SwapBuffers() }
func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

func (w *Window) Destroy() {
	w.arrow.Destroy()
	w.hand.Destroy()
	w.win.Destroy()
	glfw.Terminate()
}
