package engine

import (
	"errors"
	"fmt"
	"log"

	"block-breaker-3d/internal/camera"
	"block-breaker-3d/internal/entity"
	"block-breaker-3d/internal/gpu"
	"block-breaker-3d/internal/profiling"
	"block-breaker-3d/internal/ui"

	"github.com/go-gl/mathgl/mgl32"
)

const skyboxVertexCount = 36

var clearColor = mgl32.Vec4{0, 0, 0, 1}

// Render records the top scene as three passes: skybox, models, UI.
func (e *Engine) Render() error {
	defer profiling.Track("engine.Render")()

	cmd, err := e.dev.AcquireCommandBuffer()
	if err != nil {
		return fmt.Errorf("acquire command buffer: %w", err)
	}
	swap, err := cmd.AcquireSwapchainTexture()
	if err != nil {
		return fmt.Errorf("acquire swapchain texture: %w", err)
	}

	top := e.stack.Top()
	cam := top.Camera()
	w, h := e.win.Size()
	proj := camera.Projection(w, h)

	if err := e.drawSkybox(cmd, swap, cam, proj); err != nil {
		return err
	}
	if err := e.drawModels(cmd, swap, top.Entities(), cam, proj); err != nil {
		return err
	}
	if err := e.drawUI(cmd, swap, top.TextFields(), w, h); err != nil {
		return err
	}

	if err := cmd.Submit(); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	return nil
}

func (e *Engine) drawSkybox(cmd gpu.CommandBuffer, swap gpu.Texture, cam *camera.Camera, proj mgl32.Mat4) error {
	pass, err := cmd.BeginRenderPass(gpu.ColorTarget{Texture: swap, Load: gpu.LoadOpClear, ClearColor: clearColor}, nil)
	if err != nil {
		return fmt.Errorf("begin skybox pass: %w", err)
	}
	pass.BindPipeline(gpu.PipelineSkybox)
	pass.BindVertexBuffer(e.lib.SkyboxVBO)
	pass.BindFragmentSampler(e.lib.Skybox(e.options.Skybox))
	pass.PushVertexUniforms(gpu.VertexUniforms{MVP: proj.Mul4(cam.SkyboxView())})
	pass.Draw(skyboxVertexCount, 1, 0)
	pass.End()
	return nil
}

// drawModels draws unshaded entities first, collecting their positions as
// point lights for the shaded entities drawn after them.
func (e *Engine) drawModels(cmd gpu.CommandBuffer, swap gpu.Texture, entities []entity.Entity, cam *camera.Camera, proj mgl32.Mat4) error {
	pass, err := cmd.BeginRenderPass(
		gpu.ColorTarget{Texture: swap, Load: gpu.LoadOpLoad},
		&gpu.DepthTarget{Load: gpu.LoadOpClear, ClearDepth: 1},
	)
	if err != nil {
		return fmt.Errorf("begin model pass: %w", err)
	}
	viewProj := proj.Mul4(cam.ViewMatrix())

	var lights [gpu.MaxLights]mgl32.Vec3
	count := 0

	pass.BindPipeline(gpu.PipelineNoPhong)
	for i := range entities {
		en := &entities[i]
		if !en.IsActive || en.IsShaded {
			continue
		}
		if !e.drawEntity(pass, en, viewProj) {
			continue
		}
		if count < gpu.MaxLights {
			lights[count] = en.Position
			count++
		}
	}

	pass.BindPipeline(gpu.PipelinePhong)
	pass.PushFragmentUniforms(gpu.FragmentUniforms{
		ObjectColor:    e.cfg.ObjectColor,
		LightColor:     e.cfg.LightColor,
		ViewPos:        cam.Position,
		LightCount:     int32(count),
		LightPositions: lights,
	})
	for i := range entities {
		en := &entities[i]
		if !en.IsActive || !en.IsShaded {
			continue
		}
		e.drawEntity(pass, en, viewProj)
	}
	pass.End()
	return nil
}

func (e *Engine) drawEntity(pass gpu.RenderPass, en *entity.Entity, viewProj mgl32.Mat4) bool {
	mesh, ok := e.lib.Mesh(en.Mesh)
	if !ok {
		log.Printf("engine: entity %q has unknown mesh %d", en.Tag, en.Mesh)
		return false
	}
	tex, ok := e.lib.Texture(en.Texture)
	if !ok {
		log.Printf("engine: entity %q has unknown texture %d", en.Tag, en.Texture)
		return false
	}
	pass.PushVertexUniforms(gpu.VertexUniforms{Model: en.Transform, MVP: viewProj.Mul4(en.Transform)})
	en.Draw(pass, mesh, tex)
	return true
}

func (e *Engine) drawUI(cmd gpu.CommandBuffer, swap gpu.Texture, fields []ui.TextField, w, h int) error {
	defer e.ui.Flush()

	res := mgl32.Vec2{float32(w), float32(h)}
	for _, f := range fields {
		if err := e.ui.PushText(f, e.lib.Font, res); err != nil && !errors.Is(err, ui.ErrBufferFull) {
			return fmt.Errorf("push text: %w", err)
		}
	}
	if n := e.ui.Dropped(); n > 0 {
		log.Printf("engine: ui buffer full, dropped %d glyphs this frame", n)
	}

	count := e.ui.VertexCount()
	if count > 0 {
		if err := cmd.UploadVertices(e.uiVBO, 0, e.ui.Vertices()); err != nil {
			return fmt.Errorf("upload ui vertices: %w", err)
		}
	}

	pass, err := cmd.BeginRenderPass(gpu.ColorTarget{Texture: swap, Load: gpu.LoadOpLoad}, nil)
	if err != nil {
		return fmt.Errorf("begin ui pass: %w", err)
	}
	if count > 0 {
		pass.BindPipeline(gpu.PipelineUI)
		pass.BindVertexBuffer(e.uiVBO)
		pass.BindFragmentSampler(e.lib.FontTexture)
		pass.PushVertexUniforms(gpu.VertexUniforms{MVP: mgl32.Ortho(0, float32(w), float32(h), 0, -1, 1)})
		pass.Draw(uint32(count), 1, 0)
	}
	pass.End()
	return nil
}
