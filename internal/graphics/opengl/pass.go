package opengl

import (
	"fmt"
	"log"

	"block-breaker-3d/internal/gpu"

	"github.com/go-gl/gl/v4.1-core/gl"
)

type commandBuffer struct {
	d         *Device
	submitted bool
}

// AcquireSwapchainTexture stands for the default framebuffer.
func (c *commandBuffer) AcquireSwapchainTexture() (gpu.Texture, error) {
	w, h := c.d.surface.FramebufferSize()
	if w <= 0 || h <= 0 {
		// Minimised: keep a 1x1 viewport so the frame still records.
		w, h = 1, 1
	}
	return gpu.Texture{Kind: gpu.TextureSwapchain, Width: w, Height: h}, nil
}

func (c *commandBuffer) UploadVertices(buf gpu.Buffer, offset int, data []float32) error {
	if len(data) == 0 {
		return nil
	}
	end := (offset + len(data)) * 4
	if offset < 0 || end > buf.Size {
		return fmt.Errorf("upload vertices: %d bytes at float %d overflows buffer of %d", len(data)*4, offset, buf.Size)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, buf.ID)
	gl.BufferSubData(gl.ARRAY_BUFFER, offset*4, len(data)*4, gl.Ptr(data))
	return nil
}

func (c *commandBuffer) BeginRenderPass(color gpu.ColorTarget, depth *gpu.DepthTarget) (gpu.RenderPass, error) {
	if c.submitted {
		return nil, fmt.Errorf("begin render pass: command buffer already submitted")
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(color.Texture.Width), int32(color.Texture.Height))

	var mask uint32
	if color.Load == gpu.LoadOpClear {
		cc := color.ClearColor
		gl.ClearColor(cc[0], cc[1], cc[2], cc[3])
		mask |= gl.COLOR_BUFFER_BIT
	}
	if depth != nil {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthMask(true)
		if depth.Load == gpu.LoadOpClear {
			gl.ClearDepth(float64(depth.ClearDepth))
			mask |= gl.DEPTH_BUFFER_BIT
		}
	} else {
		gl.Disable(gl.DEPTH_TEST)
		gl.DepthMask(false)
	}
	if mask != 0 {
		gl.Clear(mask)
	}
	return &renderPass{d: c.d}, nil
}

// Submit presents the frame. GL errors raised while recording are logged,
// not returned.
func (c *commandBuffer) Submit() error {
	if c.submitted {
		return fmt.Errorf("submit: command buffer already submitted")
	}
	c.submitted = true
	if code := gl.GetError(); code != gl.NO_ERROR {
		log.Printf("opengl: error 0x%x during frame", code)
	}
	c.d.surface.SwapBuffers()
	return nil
}

type renderPass struct {
	d    *Device
	prog *program
}

func (p *renderPass) BindPipeline(pl gpu.Pipeline) {
	if pl < 0 || pl >= gpu.PipelineCount {
		log.Printf("opengl: unknown pipeline %d", pl)
		return
	}
	p.prog = p.d.programs[pl]
	gl.UseProgram(p.prog.id)
	gl.BindVertexArray(p.d.vao)
	if p.prog.blend {
		gl.Enable(gl.BLEND)
	} else {
		gl.Disable(gl.BLEND)
	}
	if p.prog.texture >= 0 {
		gl.Uniform1i(p.prog.texture, 0)
	}
}

func (p *renderPass) BindVertexBuffer(b gpu.Buffer) {
	if p.prog == nil {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.ID)
	p.prog.layout.apply()
}

func (p *renderPass) BindIndexBuffer(b gpu.Buffer) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ID)
}

func (p *renderPass) BindFragmentSampler(t gpu.Texture) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(textureTarget(t.Kind), t.ID)
}

func (p *renderPass) PushVertexUniforms(u gpu.VertexUniforms) {
	if p.prog == nil {
		return
	}
	if p.prog.model >= 0 {
		gl.UniformMatrix4fv(p.prog.model, 1, false, &u.Model[0])
	}
	if p.prog.mvp >= 0 {
		gl.UniformMatrix4fv(p.prog.mvp, 1, false, &u.MVP[0])
	}
}

func (p *renderPass) PushFragmentUniforms(u gpu.FragmentUniforms) {
	if p.prog == nil {
		return
	}
	if p.prog.objectColor >= 0 {
		gl.Uniform3fv(p.prog.objectColor, 1, &u.ObjectColor[0])
	}
	if p.prog.lightColor >= 0 {
		gl.Uniform3fv(p.prog.lightColor, 1, &u.LightColor[0])
	}
	if p.prog.viewPos >= 0 {
		gl.Uniform3fv(p.prog.viewPos, 1, &u.ViewPos[0])
	}
	if p.prog.lightCount >= 0 {
		gl.Uniform1i(p.prog.lightCount, min(u.LightCount, gpu.MaxLights))
	}
	if p.prog.lightPos >= 0 {
		gl.Uniform3fv(p.prog.lightPos, gpu.MaxLights, &u.LightPositions[0][0])
	}
}

func (p *renderPass) Draw(vertexCount, instanceCount, firstVertex uint32) {
	if instanceCount > 1 {
		gl.DrawArraysInstanced(gl.TRIANGLES, int32(firstVertex), int32(vertexCount), int32(instanceCount))
		return
	}
	gl.DrawArrays(gl.TRIANGLES, int32(firstVertex), int32(vertexCount))
}

func (p *renderPass) DrawIndexed(indexCount, instanceCount uint32) {
	if instanceCount > 1 {
		gl.DrawElementsInstanced(gl.TRIANGLES, int32(indexCount), gl.UNSIGNED_SHORT, nil, int32(instanceCount))
		return
	}
	gl.DrawElements(gl.TRIANGLES, int32(indexCount), gl.UNSIGNED_SHORT, nil)
}

func (p *renderPass) End() {
	gl.DepthMask(true)
	p.prog = nil
}
