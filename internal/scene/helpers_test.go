package scene

import (
	"block-breaker-3d/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	keyBack  = glfw.KeyEscape
	keyLeft  = glfw.KeyLeft
	keyRight = glfw.KeyRight
)

// pressKey starts a new frame with key pressed.
func pressKey(in *input.State, key glfw.Key) {
	in.EndFrame()
	in.HandleKeyEvent(key, glfw.Press)
}

// release starts a new frame with key let go.
func release(in *input.State, key glfw.Key) {
	in.EndFrame()
	in.HandleKeyEvent(key, glfw.Release)
}
