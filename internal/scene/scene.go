// Package scene implements the menu, options and game screens and the stack
// that decides which one is live.
package scene

import (
	"errors"
	"fmt"

	"block-breaker-3d/internal/assets"
	"block-breaker-3d/internal/camera"
	"block-breaker-3d/internal/entity"
	"block-breaker-3d/internal/input"
	"block-breaker-3d/internal/ui"

	"github.com/go-gl/mathgl/mgl32"
)

// Type names a concrete scene.
type Type int

const (
	TypeMenu Type = iota
	TypeOptions
	TypeGame
)

func (t Type) String() string {
	switch t {
	case TypeMenu:
		return "menu"
	case TypeOptions:
		return "options"
	case TypeGame:
		return "game"
	}
	return fmt.Sprintf("scene(%d)", int(t))
}

var ErrUnknownScene = errors.New("scene: unknown scene type")

// RequestKind says what the stack should do after an update.
type RequestKind int

const (
	RequestNone RequestKind = iota
	RequestPush
	RequestPop
	RequestQuit
)

// Request is returned from Update. Target is only read for RequestPush.
type Request struct {
	Kind   RequestKind
	Target Type
}

func Push(t Type) Request { return Request{Kind: RequestPush, Target: t} }
func Pop() Request        { return Request{Kind: RequestPop} }
func Quit() Request       { return Request{Kind: RequestQuit} }

func (r Request) String() string {
	switch r.Kind {
	case RequestNone:
		return "none"
	case RequestPush:
		return "push " + r.Target.String()
	case RequestPop:
		return "pop"
	case RequestQuit:
		return "quit"
	}
	return "unknown"
}

// Scene is one screen. Only the top of the stack is updated and drawn; the
// engine reads the slices and camera but never writes them.
type Scene interface {
	Type() Type
	Update(in *input.State, dt float32) Request
	Entities() []entity.Entity
	TextFields() []ui.TextField
	Elements() []ui.Element
	Camera() *camera.Camera
	// RelativeMouse reports whether the cursor should be hidden and captured
	// while this scene is on top.
	RelativeMouse() bool
}

// Options is state shared across scenes for the lifetime of the engine.
type Options struct {
	Skybox      int
	SkyboxCount int
}

// NextSkybox selects the next skybox, wrapping around.
func (o *Options) NextSkybox() { o.stepSkybox(1) }

// PrevSkybox selects the previous skybox, wrapping around.
func (o *Options) PrevSkybox() { o.stepSkybox(-1) }

func (o *Options) stepSkybox(d int) {
	if o.SkyboxCount <= 0 {
		o.Skybox = 0
		return
	}
	o.Skybox = ((o.Skybox+d)%o.SkyboxCount + o.SkyboxCount) % o.SkyboxCount
}

// Env is what scenes need from the engine at construction.
type Env struct {
	Options          *Options
	Atlas            *assets.FontAtlas
	Resolution       mgl32.Vec2
	MouseSensitivity float32
}

// New builds a scene of type t from its built-in description.
func New(t Type, env Env) (Scene, error) {
	switch t {
	case TypeMenu:
		return NewMenu(env)
	case TypeOptions:
		return NewOptions(env)
	case TypeGame:
		return NewGame(env)
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownScene, int(t))
}

// base carries the state every scene owns.
type base struct {
	entities []entity.Entity
	fields   []ui.TextField
	elements []ui.Element
	cam      camera.Camera
}

func (b *base) Entities() []entity.Entity  { return b.entities }
func (b *base) TextFields() []ui.TextField { return b.fields }
func (b *base) Elements() []ui.Element     { return b.elements }
func (b *base) Camera() *camera.Camera     { return &b.cam }

func (b *base) updateTransforms() {
	for i := range b.entities {
		b.entities[i].UpdateTransform()
	}
}

// find returns the index of the first entity with tag, or -1.
func (b *base) find(tag string) int {
	for i := range b.entities {
		if b.entities[i].Tag == tag {
			return i
		}
	}
	return -1
}
