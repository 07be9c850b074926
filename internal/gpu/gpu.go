// Package gpu defines the command-recording surface the engine draws
// through. A backend (OpenGL in this module, a recorder in tests) implements
// Device, CommandBuffer and RenderPass.
package gpu

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxLights is the number of point lights the phong pipeline accepts.
const MaxLights = 8

// Pipeline selects one of the fixed graphics pipelines.
type Pipeline int

const (
	PipelineSkybox Pipeline = iota
	PipelineNoPhong
	PipelinePhong
	PipelineUI
	PipelineCount
)

func (p Pipeline) String() string {
	switch p {
	case PipelineSkybox:
		return "skybox"
	case PipelineNoPhong:
		return "no-phong"
	case PipelinePhong:
		return "phong"
	case PipelineUI:
		return "ui"
	}
	return "unknown"
}

// TextureKind tells the backend how to bind a texture.
type TextureKind int

const (
	Texture2D TextureKind = iota
	TextureCube
	TextureAlpha
	TextureSwapchain
)

// Buffer is a backend buffer handle.
type Buffer struct {
	ID   uint32
	Size int
}

// Texture is a backend texture handle.
type Texture struct {
	ID            uint32
	Kind          TextureKind
	Width, Height int
}

// Mesh is an uploaded indexed mesh.
type Mesh struct {
	VBO         Buffer
	IBO         Buffer
	VertexCount uint32
	IndexCount  uint32
}

// LoadOp says what happens to a target at the start of a pass.
type LoadOp int

const (
	LoadOpLoad LoadOp = iota
	LoadOpClear
)

type ColorTarget struct {
	Texture    Texture
	Load       LoadOp
	ClearColor mgl32.Vec4
}

type DepthTarget struct {
	Load       LoadOp
	ClearDepth float32
}

// VertexUniforms is the vertex-stage uniform block. Pipelines that only
// need a single matrix read MVP.
type VertexUniforms struct {
	Model mgl32.Mat4
	MVP   mgl32.Mat4
}

// FragmentUniforms is the phong fragment-stage uniform block.
type FragmentUniforms struct {
	ObjectColor    mgl32.Vec3
	LightColor     mgl32.Vec3
	ViewPos        mgl32.Vec3
	LightCount     int32
	LightPositions [MaxLights]mgl32.Vec3
}

// Device owns GPU resources. Upload methods block until the data has been
// handed to the GPU so the source slices may be reused immediately.
type Device interface {
	UploadMesh(vertices []float32, indices []uint16) (Mesh, error)
	CreateVertexBuffer(size int) (Buffer, error)
	UploadVertexBuffer(vertices []float32) (Buffer, error)
	UploadTexture(img *image.RGBA) (Texture, error)
	UploadAlphaTexture(img *image.Alpha) (Texture, error)
	UploadCubemap(faces [6]*image.RGBA) (Texture, error)
	AcquireCommandBuffer() (CommandBuffer, error)
	Destroy()
}

// CommandBuffer records one frame.
type CommandBuffer interface {
	AcquireSwapchainTexture() (Texture, error)
	// UploadVertices copies data into buf at a float offset before any
	// pass that reads it.
	UploadVertices(buf Buffer, offset int, data []float32) error
	BeginRenderPass(color ColorTarget, depth *DepthTarget) (RenderPass, error)
	Submit() error
}

// RenderPass records draw state and draw calls. Uniform pushes apply to the
// pipeline bound at the time of the push.
type RenderPass interface {
	BindPipeline(p Pipeline)
	BindVertexBuffer(b Buffer)
	BindIndexBuffer(b Buffer)
	BindFragmentSampler(t Texture)
	PushVertexUniforms(u VertexUniforms)
	PushFragmentUniforms(u FragmentUniforms)
	Draw(vertexCount, instanceCount, firstVertex uint32)
	DrawIndexed(indexCount, instanceCount uint32)
	End()
}
