// Package engine runs the frame loop: it polls the window, advances the top
// scene, applies its transition and records the frame into the device.
package engine

import (
	"fmt"
	"log"
	"time"

	"block-breaker-3d/internal/assets"
	"block-breaker-3d/internal/config"
	"block-breaker-3d/internal/gpu"
	"block-breaker-3d/internal/input"
	"block-breaker-3d/internal/profiling"
	"block-breaker-3d/internal/scene"
	"block-breaker-3d/internal/ui"

	"github.com/go-gl/mathgl/mgl32"
)

// Window is what the engine needs from the platform window. Input events
// are delivered to the input.State the window was created with during
// PollEvents.
type Window interface {
	ShouldClose() bool
	PollEvents()
	// SetRelativeMouse hides and captures the cursor when on.
	SetRelativeMouse(on bool)
	Size() (width, height int)
}

// Engine owns the loop state shared by every scene.
type Engine struct {
	cfg config.Config
	win Window
	dev gpu.Device
	lib *assets.Library
	in  *input.State

	stack   *scene.Stack
	options *scene.Options
	pacer   *FramePacer

	ui    *ui.Buffer
	uiVBO gpu.Buffer

	running  bool
	relative bool
}

// New builds the engine and pushes the menu. lib must already be uploaded
// to dev. clock may be nil for the wall clock.
func New(cfg config.Config, win Window, dev gpu.Device, lib *assets.Library, in *input.State, clock Clock) (*Engine, error) {
	vbo, err := dev.CreateVertexBuffer(ui.BufferBytes)
	if err != nil {
		return nil, fmt.Errorf("create ui vertex buffer: %w", err)
	}
	e := &Engine{
		cfg:     cfg,
		win:     win,
		dev:     dev,
		lib:     lib,
		in:      in,
		options: &scene.Options{SkyboxCount: len(lib.Skyboxes)},
		pacer:   NewFramePacer(cfg.TargetFPS, clock),
		ui:      ui.NewBuffer(),
		uiVBO:   vbo,
		running: true,
	}
	e.stack, err = scene.NewStack(scene.TypeMenu, e.env())
	if err != nil {
		return nil, fmt.Errorf("build menu: %w", err)
	}
	e.syncMouseMode(true)
	return e, nil
}

func (e *Engine) env() scene.Env {
	w, h := e.win.Size()
	return scene.Env{
		Options:          e.options,
		Atlas:            e.lib.Font,
		Resolution:       mgl32.Vec2{float32(w), float32(h)},
		MouseSensitivity: e.cfg.MouseSensitivity,
	}
}

// Running reports whether the loop should continue.
func (e *Engine) Running() bool { return e.running }

// Stack exposes the scene stack.
func (e *Engine) Stack() *scene.Stack { return e.stack }

// Options returns the state shared across scenes.
func (e *Engine) Options() *scene.Options { return e.options }

// Run ticks until a scene quits or the window closes. The first render
// error ends the loop and is returned.
func (e *Engine) Run() error {
	log.Printf("engine: running at %d fps target", e.cfg.TargetFPS)
	for e.running {
		if err := e.Tick(); err != nil {
			return err
		}
	}
	log.Printf("engine: stopped")
	return nil
}

// Tick runs one frame: input, update, render, pacing and the end-of-frame
// input copy.
func (e *Engine) Tick() error {
	profiling.ResetFrame()
	dt := e.pacer.Begin()

	e.Input()
	if !e.running {
		return nil
	}
	if err := e.Update(dt); err != nil {
		return err
	}
	if !e.running {
		return nil
	}
	if err := e.Render(); err != nil {
		return err
	}

	if limit := time.Duration(e.cfg.SlowFrameLogMillis) * time.Millisecond; limit > 0 {
		if took := e.pacer.Elapsed(); took > limit {
			log.Printf("Slow frame: %v. Top tasks: %s", took, profiling.TopN(5))
		}
	}
	e.pacer.Wait()
	e.in.EndFrame()
	return nil
}

// Input pumps window events into the input state.
func (e *Engine) Input() {
	defer profiling.Track("engine.Input")()
	e.win.PollEvents()
	if e.win.ShouldClose() {
		log.Printf("engine: window closed")
		e.running = false
	}
}

// Update advances the top scene by dt seconds and applies the transition it
// asks for.
func (e *Engine) Update(dt float32) error {
	defer profiling.Track("engine.Update")()
	top := e.stack.Top()
	req := top.Update(e.in, dt)
	running, err := e.stack.Apply(req)
	if err != nil {
		return err
	}
	if !running {
		e.running = false
		return nil
	}
	e.syncMouseMode(false)
	return nil
}

func (e *Engine) syncMouseMode(force bool) {
	want := e.stack.Top().RelativeMouse()
	if want == e.relative && !force {
		return
	}
	e.relative = want
	e.win.SetRelativeMouse(want)
}
