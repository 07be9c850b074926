package scene

import (
	"fmt"

	"block-breaker-3d/internal/camera"
	"block-breaker-3d/internal/input"
	"block-breaker-3d/internal/ui"

	"github.com/go-gl/mathgl/mgl32"
)

const skyboxLabelField = 1

// OptionsScene lets the player pick the skybox.
type OptionsScene struct {
	base
	env   Env
	nav   navigator
	label int
}

// NewOptions builds the options screen from its built-in description.
func NewOptions(env Env) (*OptionsScene, error) {
	d, err := builtinDescription("options")
	if err != nil {
		return nil, err
	}
	return newOptionsFrom(d, env), nil
}

func newOptionsFrom(d *Description, env Env) *OptionsScene {
	if env.Options == nil {
		env.Options = &Options{}
	}
	o := &OptionsScene{env: env, nav: newNavigator(), label: -1}
	o.entities = d.BuildEntities()
	o.fields = d.BuildTextFields()
	o.elements = d.BuildElements(o.fields, env.Atlas, env.Resolution)
	o.cam = *camera.New(mgl32.Vec3{0, 0, 3})
	if len(o.fields) > skyboxLabelField {
		o.label = skyboxLabelField
	}
	o.refreshLabel()
	return o
}

func (o *OptionsScene) Type() Type          { return TypeOptions }
func (o *OptionsScene) RelativeMouse() bool { return false }

// Update cycles the shared skybox selection and pops on back.
func (o *OptionsScene) Update(in *input.State, dt float32) Request {
	for i := range o.entities {
		if o.entities[i].Tag == "decor" {
			o.entities[i].Rotation[1] = wrapDegrees(o.entities[i].Rotation[1] + logoSpin*dt)
		}
	}
	o.updateTransforms()

	act := o.nav.update(in, o.elements, o.fields, o.env.Resolution)
	switch {
	case in.JustPressed(input.ActionMoveLeft):
		act = ui.ActionSkyboxPrev
	case in.JustPressed(input.ActionMoveRight):
		act = ui.ActionSkyboxNext
	case in.JustPressed(input.ActionBack):
		act = ui.ActionBack
	}

	switch act {
	case ui.ActionSkyboxPrev:
		o.env.Options.PrevSkybox()
	case ui.ActionSkyboxNext:
		o.env.Options.NextSkybox()
	case ui.ActionBack:
		return Pop()
	}
	o.refreshLabel()
	return Request{}
}

func (o *OptionsScene) refreshLabel() {
	if o.label < 0 || o.env.Options == nil {
		return
	}
	o.fields[o.label].Text = fmt.Sprintf("SKYBOX %d / %d", o.env.Options.Skybox+1, max(o.env.Options.SkyboxCount, 1))
}
