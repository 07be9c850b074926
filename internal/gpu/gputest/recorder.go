// Package gputest provides a gpu.Device that records commands instead of
// drawing, for asserting render order in tests.
package gputest

import (
	"errors"
	"fmt"
	"image"

	"block-breaker-3d/internal/gpu"
)

// Command is one recorded call.
type Command struct {
	Op       string
	Pipeline gpu.Pipeline
	Buffer   gpu.Buffer
	Texture  gpu.Texture
	Vertex   gpu.VertexUniforms
	Fragment gpu.FragmentUniforms
	Count    uint32
	Offset   int
	Floats   int
	Color    *gpu.ColorTarget
	Depth    *gpu.DepthTarget
}

func (c Command) String() string {
	switch c.Op {
	case "BindPipeline":
		return "BindPipeline(" + c.Pipeline.String() + ")"
	case "Draw", "DrawIndexed":
		return fmt.Sprintf("%s(%d)", c.Op, c.Count)
	}
	return c.Op
}

// Device records everything submitted through it.
type Device struct {
	Commands []Command
	Submits  int

	// FailAcquire makes AcquireSwapchainTexture fail.
	FailAcquire bool

	nextID uint32
}

var ErrAcquire = errors.New("gputest: swapchain unavailable")

func NewDevice() *Device { return &Device{nextID: 1} }

func (d *Device) id() uint32 {
	d.nextID++
	return d.nextID
}

func (d *Device) record(c Command) { d.Commands = append(d.Commands, c) }

// Ops returns the recorded commands as strings.
func (d *Device) Ops() []string {
	out := make([]string, len(d.Commands))
	for i, c := range d.Commands {
		out[i] = c.String()
	}
	return out
}

// Reset drops the recorded commands.
func (d *Device) Reset() {
	d.Commands = d.Commands[:0]
	d.Submits = 0
}

func (d *Device) UploadMesh(vertices []float32, indices []uint16) (gpu.Mesh, error) {
	return gpu.Mesh{
		VBO:         gpu.Buffer{ID: d.id(), Size: len(vertices) * 4},
		IBO:         gpu.Buffer{ID: d.id(), Size: len(indices) * 2},
		VertexCount: uint32(len(vertices) / 8),
		IndexCount:  uint32(len(indices)),
	}, nil
}

func (d *Device) CreateVertexBuffer(size int) (gpu.Buffer, error) {
	return gpu.Buffer{ID: d.id(), Size: size}, nil
}

func (d *Device) UploadVertexBuffer(vertices []float32) (gpu.Buffer, error) {
	return gpu.Buffer{ID: d.id(), Size: len(vertices) * 4}, nil
}

func (d *Device) UploadTexture(img *image.RGBA) (gpu.Texture, error) {
	b := img.Bounds()
	return gpu.Texture{ID: d.id(), Kind: gpu.Texture2D, Width: b.Dx(), Height: b.Dy()}, nil
}

func (d *Device) UploadAlphaTexture(img *image.Alpha) (gpu.Texture, error) {
	b := img.Bounds()
	return gpu.Texture{ID: d.id(), Kind: gpu.TextureAlpha, Width: b.Dx(), Height: b.Dy()}, nil
}

func (d *Device) UploadCubemap(faces [6]*image.RGBA) (gpu.Texture, error) {
	b := faces[0].Bounds()
	return gpu.Texture{ID: d.id(), Kind: gpu.TextureCube, Width: b.Dx(), Height: b.Dy()}, nil
}

func (d *Device) AcquireCommandBuffer() (gpu.CommandBuffer, error) {
	d.record(Command{Op: "AcquireCommandBuffer"})
	return &commandBuffer{d: d}, nil
}

func (d *Device) Destroy() {}

type commandBuffer struct {
	d *Device
}

func (c *commandBuffer) AcquireSwapchainTexture() (gpu.Texture, error) {
	if c.d.FailAcquire {
		return gpu.Texture{}, ErrAcquire
	}
	c.d.record(Command{Op: "AcquireSwapchainTexture"})
	return gpu.Texture{Kind: gpu.TextureSwapchain}, nil
}

func (c *commandBuffer) UploadVertices(buf gpu.Buffer, offset int, data []float32) error {
	c.d.record(Command{Op: "UploadVertices", Buffer: buf, Offset: offset, Floats: len(data)})
	return nil
}

func (c *commandBuffer) BeginRenderPass(color gpu.ColorTarget, depth *gpu.DepthTarget) (gpu.RenderPass, error) {
	cmd := Command{Op: "BeginRenderPass", Color: &color}
	if depth != nil {
		dc := *depth
		cmd.Depth = &dc
	}
	c.d.record(cmd)
	return &renderPass{d: c.d}, nil
}

func (c *commandBuffer) Submit() error {
	c.d.record(Command{Op: "Submit"})
	c.d.Submits++
	return nil
}

type renderPass struct {
	d *Device
}

func (p *renderPass) BindPipeline(pl gpu.Pipeline) {
	p.d.record(Command{Op: "BindPipeline", Pipeline: pl})
}

func (p *renderPass) BindVertexBuffer(b gpu.Buffer) {
	p.d.record(Command{Op: "BindVertexBuffer", Buffer: b})
}

func (p *renderPass) BindIndexBuffer(b gpu.Buffer) {
	p.d.record(Command{Op: "BindIndexBuffer", Buffer: b})
}

func (p *renderPass) BindFragmentSampler(t gpu.Texture) {
	p.d.record(Command{Op: "BindFragmentSampler", Texture: t})
}

func (p *renderPass) PushVertexUniforms(u gpu.VertexUniforms) {
	p.d.record(Command{Op: "PushVertexUniforms", Vertex: u})
}

func (p *renderPass) PushFragmentUniforms(u gpu.FragmentUniforms) {
	p.d.record(Command{Op: "PushFragmentUniforms", Fragment: u})
}

func (p *renderPass) Draw(vertexCount, instanceCount, firstVertex uint32) {
	p.d.record(Command{Op: "Draw", Count: vertexCount})
}

func (p *renderPass) DrawIndexed(indexCount, instanceCount uint32) {
	p.d.record(Command{Op: "DrawIndexed", Count: indexCount})
}

func (p *renderPass) End() {
	p.d.record(Command{Op: "EndRenderPass"})
}
