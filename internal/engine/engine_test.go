package engine

import (
	"errors"
	"slices"
	"testing"
	"time"

	"block-breaker-3d/internal/assets"
	"block-breaker-3d/internal/camera"
	"block-breaker-3d/internal/config"
	"block-breaker-3d/internal/entity"
	"block-breaker-3d/internal/gpu"
	"block-breaker-3d/internal/gpu/gputest"
	"block-breaker-3d/internal/input"
	"block-breaker-3d/internal/scene"
	"block-breaker-3d/internal/ui"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// fakeClock advances a little on every read so spin loops terminate.
type fakeClock struct {
	t      time.Time
	slept  time.Duration
	sleeps int
}

func newFakeClock() *fakeClock { return &fakeClock{t: time.Unix(1000, 0)} }

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Microsecond)
	return c.t
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.t = c.t.Add(d)
	c.slept += d
	c.sleeps++
}

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// fakeWindow replays one event function per PollEvents call.
type fakeWindow struct {
	in       *input.State
	frames   []func(in *input.State)
	polls    int
	closed   bool
	relative []bool
}

func (w *fakeWindow) ShouldClose() bool { return w.closed }

func (w *fakeWindow) PollEvents() {
	if w.polls < len(w.frames) && w.frames[w.polls] != nil {
		w.frames[w.polls](w.in)
	}
	w.polls++
}

func (w *fakeWindow) SetRelativeMouse(on bool) { w.relative = append(w.relative, on) }
func (w *fakeWindow) Size() (int, int)         { return 1280, 720 }

func press(key glfw.Key) func(*input.State) {
	return func(in *input.State) { in.HandleKeyEvent(key, glfw.Press) }
}

type rig struct {
	eng   *Engine
	dev   *gputest.Device
	win   *fakeWindow
	clock *fakeClock
}

func newRig(t *testing.T, frames ...func(*input.State)) *rig {
	t.Helper()
	dev := gputest.NewDevice()
	lib, err := assets.Load(dev, config.Manifest{}, "", 32)
	if err != nil {
		t.Fatal(err)
	}
	in := input.NewState()
	win := &fakeWindow{in: in, frames: frames}
	clock := newFakeClock()
	cfg := config.Default()
	cfg.SlowFrameLogMillis = 0
	eng, err := New(cfg, win, dev, lib, in, clock)
	if err != nil {
		t.Fatal(err)
	}
	dev.Reset()
	return &rig{eng: eng, dev: dev, win: win, clock: clock}
}

func indexOf(ops []string, op string, from int) int {
	for i := from; i < len(ops); i++ {
		if ops[i] == op {
			return i
		}
	}
	return -1
}

func TestRenderPassOrder(t *testing.T) {
	r := newRig(t)
	if err := r.eng.Render(); err != nil {
		t.Fatal(err)
	}
	ops := r.dev.Ops()

	sky := indexOf(ops, "BindPipeline(skybox)", 0)
	unshaded := indexOf(ops, "BindPipeline(no-phong)", 0)
	shaded := indexOf(ops, "BindPipeline(phong)", 0)
	upload := indexOf(ops, "UploadVertices", 0)
	uiPipe := indexOf(ops, "BindPipeline(ui)", 0)
	submit := indexOf(ops, "Submit", 0)
	order := []int{sky, unshaded, shaded, upload, uiPipe, submit}
	if slices.Contains(order, -1) || !slices.IsSorted(order) {
		t.Fatalf("bad order %v in %v", order, ops)
	}
	if submit != len(ops)-1 {
		t.Errorf("submit is not the last command")
	}
	if ops[sky+4] != "Draw(36)" {
		t.Errorf("skybox draw = %q", ops[sky+4])
	}
	if r.dev.Submits != 1 {
		t.Errorf("submits = %d", r.dev.Submits)
	}

	var passes []gputest.Command
	for _, c := range r.dev.Commands {
		if c.Op == "BeginRenderPass" {
			passes = append(passes, c)
		}
	}
	if len(passes) != 3 {
		t.Fatalf("passes = %d, want 3", len(passes))
	}
	if passes[0].Color.Load != gpu.LoadOpClear || passes[0].Depth != nil {
		t.Errorf("skybox pass should clear colour without depth")
	}
	if passes[1].Color.Load != gpu.LoadOpLoad || passes[1].Depth == nil || passes[1].Depth.Load != gpu.LoadOpClear {
		t.Errorf("model pass should load colour and clear depth")
	}
	if passes[2].Color.Load != gpu.LoadOpLoad || passes[2].Depth != nil {
		t.Errorf("ui pass should load colour without depth")
	}
}

func TestSkyboxUsesRotationOnlyView(t *testing.T) {
	r := newRig(t)
	r.eng.Options().Skybox = 1
	if err := r.eng.Render(); err != nil {
		t.Fatal(err)
	}
	cam := r.eng.Stack().Top().Camera()
	want := camera.Projection(1280, 720).Mul4(cam.SkyboxView())
	for i, c := range r.dev.Commands {
		if c.Op != "BindPipeline" || c.Pipeline != gpu.PipelineSkybox {
			continue
		}
		sampler := r.dev.Commands[i+2]
		if sampler.Texture != r.eng.lib.Skyboxes[1] {
			t.Errorf("sampler = %+v, want skybox 1", sampler.Texture)
		}
		if got := r.dev.Commands[i+3].Vertex.MVP; !got.ApproxEqual(want) {
			t.Errorf("skybox mvp = %v, want %v", got, want)
		}
		return
	}
	t.Fatal("no skybox pipeline bound")
}

// lampScene is a scene with many unshaded entities and one shaded one.
type lampScene struct {
	entities []entity.Entity
	cam      *camera.Camera
}

func newLampScene(lamps int) *lampScene {
	s := &lampScene{cam: camera.New(mgl32.Vec3{0, 0, 5})}
	for i := 0; i < lamps; i++ {
		s.entities = append(s.entities, entity.New(entity.MeshSphere, entity.TextureWhite,
			mgl32.Vec3{float32(i), 1, 0}, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, false))
	}
	hidden := entity.New(entity.MeshSphere, entity.TextureWhite, mgl32.Vec3{99, 0, 0}, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, false)
	hidden.IsActive = false
	s.entities = append(s.entities, hidden,
		entity.New(entity.MeshCube, entity.TextureStone, mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, true))
	return s
}

func (s *lampScene) Type() scene.Type                           { return scene.TypeGame }
func (s *lampScene) Update(*input.State, float32) scene.Request { return scene.Request{} }
func (s *lampScene) Entities() []entity.Entity                  { return s.entities }
func (s *lampScene) TextFields() []ui.TextField                 { return nil }
func (s *lampScene) Elements() []ui.Element                     { return nil }
func (s *lampScene) Camera() *camera.Camera                     { return s.cam }
func (s *lampScene) RelativeMouse() bool                        { return false }

func TestLightsCappedAndShadedDrawnLast(t *testing.T) {
	r := newRig(t)
	r.eng.Stack().Push(newLampScene(gpu.MaxLights + 3))
	if err := r.eng.Render(); err != nil {
		t.Fatal(err)
	}

	var frag *gputest.Command
	pipeline := gpu.PipelineCount
	draws := map[gpu.Pipeline]int{}
	for i := range r.dev.Commands {
		c := &r.dev.Commands[i]
		switch c.Op {
		case "BindPipeline":
			pipeline = c.Pipeline
		case "DrawIndexed":
			draws[pipeline]++
		case "PushFragmentUniforms":
			if pipeline != gpu.PipelinePhong {
				t.Errorf("fragment uniforms pushed under %v", pipeline)
			}
			frag = c
		}
	}
	if draws[gpu.PipelineNoPhong] != gpu.MaxLights+3 || draws[gpu.PipelinePhong] != 1 {
		t.Errorf("draws = %v", draws)
	}
	if frag == nil {
		t.Fatal("no fragment uniforms")
	}
	if frag.Fragment.LightCount != gpu.MaxLights {
		t.Errorf("light count = %d, want %d", frag.Fragment.LightCount, gpu.MaxLights)
	}
	for i, p := range frag.Fragment.LightPositions {
		if p != (mgl32.Vec3{float32(i), 1, 0}) {
			t.Errorf("light %d = %v", i, p)
		}
	}
	if frag.Fragment.ViewPos != (mgl32.Vec3{0, 0, 5}) {
		t.Errorf("view pos = %v", frag.Fragment.ViewPos)
	}
	// Empty text list: the UI pass is begun and ended without drawing.
	if indexOf(r.dev.Ops(), "BindPipeline(ui)", 0) != -1 {
		t.Errorf("ui pipeline bound with nothing to draw")
	}
}

func TestRenderFailsOnAcquire(t *testing.T) {
	r := newRig(t)
	r.dev.FailAcquire = true
	err := r.eng.Render()
	if !errors.Is(err, gputest.ErrAcquire) {
		t.Fatalf("err = %v, want ErrAcquire", err)
	}
	if r.dev.Submits != 0 {
		t.Errorf("submitted after failed acquire")
	}
}

func TestRunStopsWhenWindowCloses(t *testing.T) {
	r := newRig(t, nil, nil)
	r.win.frames[1] = func(*input.State) { r.win.closed = true }
	if err := r.eng.Run(); err != nil {
		t.Fatal(err)
	}
	if r.eng.Running() || r.win.polls != 2 || r.dev.Submits != 1 {
		t.Errorf("running=%v polls=%d submits=%d", r.eng.Running(), r.win.polls, r.dev.Submits)
	}
}

func TestMenuQuitStopsRun(t *testing.T) {
	// Up from no selection lands on QUIT; Enter confirms it.
	r := newRig(t,
		press(glfw.KeyUp),
		func(in *input.State) {
			in.HandleKeyEvent(glfw.KeyUp, glfw.Release)
			in.HandleKeyEvent(glfw.KeyEnter, glfw.Press)
		},
	)
	if err := r.eng.Run(); err != nil {
		t.Fatal(err)
	}
	if r.win.polls != 2 {
		t.Errorf("polls = %d, want 2", r.win.polls)
	}
	if r.eng.Stack().Len() != 1 {
		t.Errorf("depth = %d", r.eng.Stack().Len())
	}
}

func TestPlayCapturesMouseAndBackReleasesIt(t *testing.T) {
	r := newRig(t,
		press(glfw.KeyDown),
		func(in *input.State) {
			in.HandleKeyEvent(glfw.KeyDown, glfw.Release)
			in.HandleKeyEvent(glfw.KeyEnter, glfw.Press)
		},
		func(in *input.State) {
			in.HandleKeyEvent(glfw.KeyEnter, glfw.Release)
			in.HandleKeyEvent(glfw.KeyEscape, glfw.Press)
		},
	)
	for i := 0; i < 3; i++ {
		if err := r.eng.Tick(); err != nil {
			t.Fatal(err)
		}
		if i == 1 && r.eng.Stack().Top().Type() != scene.TypeGame {
			t.Fatalf("after enter: top = %v", r.eng.Stack().Top().Type())
		}
	}
	if r.eng.Stack().Top().Type() != scene.TypeMenu {
		t.Errorf("after escape: top = %v", r.eng.Stack().Top().Type())
	}
	// Initial sync, capture on play, release on back.
	if want := []bool{false, true, false}; !slices.Equal(r.win.relative, want) {
		t.Errorf("relative mouse calls = %v, want %v", r.win.relative, want)
	}
}

func TestTickPacesFrames(t *testing.T) {
	r := newRig(t, nil, nil, nil)
	for i := 0; i < 3; i++ {
		if err := r.eng.Tick(); err != nil {
			t.Fatal(err)
		}
	}
	if r.clock.sleeps == 0 {
		t.Errorf("pacer never slept")
	}
	if r.dev.Submits != 3 {
		t.Errorf("submits = %d", r.dev.Submits)
	}
}
