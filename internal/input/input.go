package input

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Action is a logical game action, not a physical key.
type Action int

const (
	ActionMoveLeft Action = iota
	ActionMoveRight
	ActionLaunch
	ActionBack
	ActionConfirm
	ActionNavUp
	ActionNavDown
	ActionToggleFly
	ActionFlyForward
	ActionFlyBackward
	ActionFlyLeft
	ActionFlyRight
	ActionFlyUp
	ActionFlyDown
	ActionMouseLeft
	ActionMouseRight
	ActionMouseMiddle
	ActionCount // Sentinel value for array sizing
)

// State maps physical keys and buttons to actions and keeps two frames of
// state for edge detection. Previous is only refreshed by EndFrame, so edge
// queries are stable for the whole update and render of a frame.
type State struct {
	keyToActions         map[glfw.Key][]Action
	mouseButtonToActions map[glfw.MouseButton][]Action

	current [ActionCount]bool
	prev    [ActionCount]bool

	mouse     mgl32.Vec2
	prevMouse mgl32.Vec2
	delta     mgl32.Vec2
	haveMouse bool
}

// NewState creates a State with the default bindings.
func NewState() *State {
	s := &State{
		keyToActions:         make(map[glfw.Key][]Action),
		mouseButtonToActions: make(map[glfw.MouseButton][]Action),
	}

	s.BindKey(glfw.KeyLeft, ActionMoveLeft)
	s.BindKey(glfw.KeyA, ActionMoveLeft)
	s.BindKey(glfw.KeyRight, ActionMoveRight)
	s.BindKey(glfw.KeyD, ActionMoveRight)
	s.BindKey(glfw.KeySpace, ActionLaunch)
	s.BindKey(glfw.KeyEscape, ActionBack)
	s.BindKey(glfw.KeyEnter, ActionConfirm)
	s.BindKey(glfw.KeyKPEnter, ActionConfirm)
	s.BindKey(glfw.KeyUp, ActionNavUp)
	s.BindKey(glfw.KeyDown, ActionNavDown)
	s.BindKey(glfw.KeyF1, ActionToggleFly)

	// Fly camera shares A/D with the paddle; the game scene only reads one
	// set at a time.
	s.BindKey(glfw.KeyW, ActionFlyForward)
	s.BindKey(glfw.KeyS, ActionFlyBackward)
	s.BindKey(glfw.KeyA, ActionFlyLeft)
	s.BindKey(glfw.KeyD, ActionFlyRight)
	s.BindKey(glfw.KeyE, ActionFlyUp)
	s.BindKey(glfw.KeyQ, ActionFlyDown)

	s.BindMouseButton(glfw.MouseButtonLeft, ActionMouseLeft)
	s.BindMouseButton(glfw.MouseButtonRight, ActionMouseRight)
	s.BindMouseButton(glfw.MouseButtonMiddle, ActionMouseMiddle)

	return s
}

// BindKey binds a physical key to an action. A key may drive several
// actions and an action may have several keys.
func (s *State) BindKey(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	s.keyToActions[key] = append(s.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key.
func (s *State) UnbindKey(key glfw.Key) {
	delete(s.keyToActions, key)
}

// BindMouseButton binds a mouse button to an action.
func (s *State) BindMouseButton(button glfw.MouseButton, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	s.mouseButtonToActions[button] = append(s.mouseButtonToActions[button], action)
}

// HandleKeyEvent records a key press or release. Repeats count as held.
func (s *State) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	pressed := action == glfw.Press || action == glfw.Repeat
	for _, act := range s.keyToActions[key] {
		s.current[act] = pressed
	}
}

// HandleMouseButtonEvent records a mouse button press or release.
func (s *State) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	pressed := action == glfw.Press
	for _, act := range s.mouseButtonToActions[button] {
		s.current[act] = pressed
	}
}

// HandleCursorPos records the absolute cursor position and accumulates the
// relative motion since the last EndFrame. The first sample only seeds the
// position so a fresh window does not produce a jump.
func (s *State) HandleCursorPos(x, y float64) {
	p := mgl32.Vec2{float32(x), float32(y)}
	if !s.haveMouse {
		s.mouse, s.prevMouse = p, p
		s.haveMouse = true
		return
	}
	s.delta = s.delta.Add(p.Sub(s.mouse))
	s.mouse = p
}

// AddMouseDelta accumulates relative motion reported directly by the
// platform, as in relative mouse mode.
func (s *State) AddMouseDelta(dx, dy float32) {
	s.delta = s.delta.Add(mgl32.Vec2{dx, dy})
}

// IsActive reports whether the action is held this frame.
func (s *State) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	return s.current[action]
}

// JustPressed reports a rising edge: held now, not held last frame.
func (s *State) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	return s.current[action] && !s.prev[action]
}

// JustReleased reports a falling edge.
func (s *State) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	return !s.current[action] && s.prev[action]
}

// Mouse returns the cursor position in window pixels.
func (s *State) Mouse() mgl32.Vec2 { return s.mouse }

// PrevMouse returns the cursor position at the previous EndFrame.
func (s *State) PrevMouse() mgl32.Vec2 { return s.prevMouse }

// MouseDelta returns the relative motion accumulated this frame.
func (s *State) MouseDelta() mgl32.Vec2 { return s.delta }

// EndFrame copies current state into previous and clears the frame's
// mouse delta. Call once per frame after update and render.
func (s *State) EndFrame() {
	s.prev = s.current
	s.prevMouse = s.mouse
	s.delta = mgl32.Vec2{}
}

// Reset releases every action, as when the window loses focus.
func (s *State) Reset() {
	s.current = [ActionCount]bool{}
	s.prev = [ActionCount]bool{}
	s.delta = mgl32.Vec2{}
}
