package scene

import (
	"block-breaker-3d/internal/camera"
	"block-breaker-3d/internal/entity"
	"block-breaker-3d/internal/input"
	"block-breaker-3d/internal/ui"

	"github.com/go-gl/mathgl/mgl32"
)

// logoSpin is the logo's rotation speed in degrees per second.
const logoSpin = 45

// Menu is the title screen.
type Menu struct {
	base
	env  Env
	nav  navigator
	logo int
}

// NewMenu builds the title screen from its built-in description.
func NewMenu(env Env) (*Menu, error) {
	d, err := builtinDescription("menu")
	if err != nil {
		return nil, err
	}
	return newMenuFrom(d, env), nil
}

func newMenuFrom(d *Description, env Env) *Menu {
	m := &Menu{env: env, nav: newNavigator()}
	m.entities = d.BuildEntities()
	m.fields = d.BuildTextFields()
	m.elements = d.BuildElements(m.fields, env.Atlas, env.Resolution)
	m.cam = *camera.New(mgl32.Vec3{0, 0, 3})
	m.logo = m.find(entity.TagLogo)
	return m
}

func (m *Menu) Type() Type          { return TypeMenu }
func (m *Menu) RelativeMouse() bool { return false }

// Update spins the logo and turns element activation into a transition.
func (m *Menu) Update(in *input.State, dt float32) Request {
	if m.logo >= 0 {
		l := &m.entities[m.logo]
		l.Rotation[1] = wrapDegrees(l.Rotation[1] + logoSpin*dt)
	}
	m.updateTransforms()

	switch act := m.nav.update(in, m.elements, m.fields, m.env.Resolution); act {
	case ui.ActionPlay:
		return Push(TypeGame)
	case ui.ActionOptions:
		return Push(TypeOptions)
	case ui.ActionQuit:
		return Quit()
	}
	return Request{}
}

func wrapDegrees(d float32) float32 {
	for d >= 360 {
		d -= 360
	}
	for d < 0 {
		d += 360
	}
	return d
}
