// Package platform opens the GLFW window and GL context and feeds its events
// into an input.State.
package platform

import (
	"fmt"
	"log"

	"block-breaker-3d/internal/config"
	"block-breaker-3d/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is a GLFW window with a current OpenGL 4.1 core context. All
// methods must be called from the main thread.
type Window struct {
	win *glfw.Window
	in  *input.State
}

// NewWindow initialises GLFW, opens a window sized from cfg and routes its
// key, mouse button and cursor events into in.
func NewWindow(cfg config.Config, in *input.State) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()

	// Pacing is done by the engine.
	glfw.SwapInterval(0)

	w := &Window{win: win, in: in}
	w.bindInput()
	log.Printf("platform: %dx%d window %q", cfg.Width, cfg.Height, cfg.Title)
	return w, nil
}

func (w *Window) bindInput() {
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		w.in.HandleKeyEvent(key, action)
	})
	w.win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		w.in.HandleMouseButtonEvent(button, action)
	})
	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.in.HandleCursorPos(x, y)
	})
	w.win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if !focused {
			// Releases are lost while unfocused.
			w.in.Reset()
		}
	})
}

func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

func (w *Window) PollEvents() { glfw.PollEvents() }

// SetRelativeMouse hides and locks the cursor when on; mouse motion then
// arrives as unbounded deltas.
func (w *Window) SetRelativeMouse(on bool) {
	if on {
		w.win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		if glfw.RawMouseMotionSupported() {
			w.win.SetInputMode(glfw.RawMouseMotion, glfw.True)
		}
		return
	}
	if glfw.RawMouseMotionSupported() {
		w.win.SetInputMode(glfw.RawMouseMotion, glfw.False)
	}
	w.win.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
}

// Size is the window size in screen coordinates, which UI layout uses.
func (w *Window) Size() (int, int) { return w.win.GetSize() }

// FramebufferSize is the drawable size in pixels.
func (w *Window) FramebufferSize() (int, int) { return w.win.GetFramebufferSize() }

func (w *Window) SwapBuffers() { w.win.SwapBuffers() }

// Destroy closes the window and terminates GLFW.
func (w *Window) Destroy() {
	w.win.Destroy()
	glfw.Terminate()
}
