package scene

import (
	"strings"
	"testing"

	"block-breaker-3d/internal/input"
	"block-breaker-3d/internal/ui"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const menuJSON = `{
  "entities": [
    {"mesh": 2, "texture": 8, "scale": [4, 1, 1], "is_active": true, "tag": "logo"}
  ],
  "textfields": [
    {"text": "PLAY", "position": [100, 100], "is_visible": true},
    {"text": "OPTIONS", "position": [100, 200], "is_visible": true},
    {"text": "QUIT", "position": [100, 300], "is_visible": true}
  ],
  "elements": [
    {"bounds": [90, 60, 200, 50], "textfield": 0, "action": "play"},
    {"bounds": [90, 160, 200, 50], "textfield": 1, "action": "options"},
    {"bounds": [90, 260, 200, 50], "textfield": 2, "action": "quit"}
  ]
}`

func newTestMenu(t *testing.T) *Menu {
	t.Helper()
	d, err := ParseDescription([]byte(menuJSON))
	if err != nil {
		t.Fatal(err)
	}
	return newMenuFrom(d, Env{Resolution: mgl32.Vec2{1280, 720}})
}

func click(in *input.State, x, y float64) {
	in.EndFrame()
	in.HandleCursorPos(x, y)
	in.HandleMouseButtonEvent(glfw.MouseButtonLeft, glfw.Press)
}

func TestMenuClickTransitions(t *testing.T) {
	cases := []struct {
		y    float64
		want Request
	}{
		{80, Push(TypeGame)},
		{180, Push(TypeOptions)},
		{280, Quit()},
	}
	for _, c := range cases {
		m := newTestMenu(t)
		in := input.NewState()
		in.HandleCursorPos(0, 0)
		click(in, 150, c.y)
		if got := m.Update(in, 0.016); got != c.want {
			t.Errorf("click at y=%v: %v, want %v", c.y, got, c.want)
		}
	}
}

func TestMenuClickOutsideDoesNothing(t *testing.T) {
	m := newTestMenu(t)
	in := input.NewState()
	click(in, 1000, 700)
	if got := m.Update(in, 0.016); got.Kind != RequestNone {
		t.Errorf("got %v", got)
	}
}

func TestMenuKeyboardNavigation(t *testing.T) {
	m := newTestMenu(t)
	in := input.NewState()

	// Down from nothing selects the first entry, up wraps to the last.
	pressKey(in, glfw.KeyDown)
	m.Update(in, 0)
	if m.fields[0].Color != ui.DefaultHover || m.fields[1].Color != ui.DefaultNormal {
		t.Errorf("highlight after down: %v %v", m.fields[0].Color, m.fields[1].Color)
	}
	release(in, glfw.KeyDown)
	pressKey(in, glfw.KeyUp)
	m.Update(in, 0)
	if m.fields[2].Color != ui.DefaultHover {
		t.Errorf("up from first should wrap to last")
	}

	release(in, glfw.KeyUp)
	pressKey(in, glfw.KeyEnter)
	if got := m.Update(in, 0); got != Quit() {
		t.Errorf("enter on quit = %v", got)
	}
}

func TestMenuHoverSelects(t *testing.T) {
	m := newTestMenu(t)
	in := input.NewState()
	in.HandleCursorPos(0, 0)
	in.EndFrame()
	in.HandleCursorPos(150, 180)
	m.Update(in, 0)
	if m.fields[1].Color != ui.DefaultHover {
		t.Errorf("hovered entry not highlighted")
	}
	pressKey(in, glfw.KeyEnter)
	if got := m.Update(in, 0); got != Push(TypeOptions) {
		t.Errorf("enter after hover = %v", got)
	}
}

func TestMenuLogoSpins(t *testing.T) {
	m := newTestMenu(t)
	in := input.NewState()
	for i := 0; i < 10; i++ {
		m.Update(in, 1)
	}
	// 10 s at 45 deg/s wraps to 90.
	if got := m.entities[m.logo].Rotation.Y(); got != 90 {
		t.Errorf("logo yaw = %v, want 90", got)
	}
	if m.entities[m.logo].Transform == (mgl32.Mat4{}) {
		t.Errorf("transform not updated")
	}
}

func TestOptionsCyclesSkybox(t *testing.T) {
	opts := &Options{SkyboxCount: 3}
	o, err := NewOptions(Env{Options: opts})
	if err != nil {
		t.Fatal(err)
	}
	label := func() string { return o.fields[skyboxLabelField].Text }
	if label() != "SKYBOX 1 / 3" {
		t.Errorf("initial label %q", label())
	}

	in := input.NewState()
	pressKey(in, keyRight)
	o.Update(in, 0)
	if opts.Skybox != 1 || label() != "SKYBOX 2 / 3" {
		t.Errorf("after next: %d %q", opts.Skybox, label())
	}

	release(in, keyRight)
	pressKey(in, keyLeft)
	o.Update(in, 0)
	release(in, keyLeft)
	pressKey(in, keyLeft)
	o.Update(in, 0)
	if opts.Skybox != 2 {
		t.Errorf("two prevs from 1 = %d, want 2", opts.Skybox)
	}

	// Holding a key does not repeat.
	in.EndFrame()
	o.Update(in, 0)
	if opts.Skybox != 2 {
		t.Errorf("held key stepped again")
	}

	release(in, keyLeft)
	pressKey(in, keyBack)
	if got := o.Update(in, 0); got != Pop() {
		t.Errorf("back = %v", got)
	}
	if !strings.HasPrefix(label(), "SKYBOX 3") {
		t.Errorf("label %q", label())
	}
}

func TestOptionsWithoutSharedState(t *testing.T) {
	o, err := NewOptions(Env{})
	if err != nil {
		t.Fatal(err)
	}
	in := input.NewState()
	pressKey(in, keyRight)
	o.Update(in, 0)
	if got := o.fields[skyboxLabelField].Text; got != "SKYBOX 1 / 1" {
		t.Errorf("label %q", got)
	}
}
