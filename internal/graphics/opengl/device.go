// Package opengl implements gpu.Device on an OpenGL 4.1 core context. Every
// recorded command executes immediately; Submit presents the frame.
package opengl

import (
	"fmt"
	"image"
	"log"

	"block-breaker-3d/internal/gpu"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Surface is the window the context renders into.
type Surface interface {
	SwapBuffers()
	FramebufferSize() (width, height int)
}

// Device owns the programs and every buffer and texture uploaded through
// it. It must be used from the thread that owns the GL context.
type Device struct {
	surface  Surface
	programs [gpu.PipelineCount]*program
	vao      uint32
	arena    *gpu.TransferArena

	buffers  []uint32
	textures []uint32
}

// NewDevice loads the GL bindings for the current context and compiles the
// pipelines.
func NewDevice(s Surface) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init gl: %w", err)
	}
	log.Printf("opengl: %s on %s", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))

	d := &Device{surface: s, arena: gpu.NewTransferArena(64 * 1024)}
	for p := gpu.Pipeline(0); p < gpu.PipelineCount; p++ {
		prog, err := newProgram(p)
		if err != nil {
			d.Destroy()
			return nil, err
		}
		d.programs[p] = prog
	}
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	// The logo quad spins, so back faces are visible.
	gl.Disable(gl.CULL_FACE)
	gl.DepthFunc(gl.LEQUAL)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	return d, nil
}

func (d *Device) newBuffer(target uint32, data []byte, size int, usage uint32) gpu.Buffer {
	var id uint32
	gl.GenBuffers(1, &id)
	gl.BindBuffer(target, id)
	if len(data) > 0 {
		gl.BufferData(target, len(data), gl.Ptr(data), usage)
	} else {
		gl.BufferData(target, size, nil, usage)
	}
	d.buffers = append(d.buffers, id)
	return gpu.Buffer{ID: id, Size: size}
}

// UploadMesh packs vertices and indices through the transfer arena into a
// vertex and an index buffer.
func (d *Device) UploadMesh(vertices []float32, indices []uint16) (gpu.Mesh, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return gpu.Mesh{}, fmt.Errorf("upload mesh: empty vertex or index data")
	}
	d.arena.Reset()
	vtx, idx := gpu.PackMesh(d.arena, vertices, indices)

	// The element binding belongs to the VAO; keep the shared one bound.
	gl.BindVertexArray(d.vao)
	m := gpu.Mesh{
		VBO:         d.newBuffer(gl.ARRAY_BUFFER, d.arena.Bytes(vtx), vtx.Size, gl.STATIC_DRAW),
		IBO:         d.newBuffer(gl.ELEMENT_ARRAY_BUFFER, d.arena.Bytes(idx), idx.Size, gl.STATIC_DRAW),
		VertexCount: uint32(len(vertices) / 8),
		IndexCount:  uint32(len(indices)),
	}
	return m, nil
}

func (d *Device) CreateVertexBuffer(size int) (gpu.Buffer, error) {
	if size <= 0 {
		return gpu.Buffer{}, fmt.Errorf("create vertex buffer: bad size %d", size)
	}
	return d.newBuffer(gl.ARRAY_BUFFER, nil, size, gl.DYNAMIC_DRAW), nil
}

func (d *Device) UploadVertexBuffer(vertices []float32) (gpu.Buffer, error) {
	if len(vertices) == 0 {
		return gpu.Buffer{}, fmt.Errorf("upload vertex buffer: no data")
	}
	d.arena.Reset()
	r := d.arena.AppendFloat32s(vertices)
	return d.newBuffer(gl.ARRAY_BUFFER, d.arena.Bytes(r), r.Size, gl.STATIC_DRAW), nil
}

func (d *Device) newTexture(target uint32) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(target, id)
	d.textures = append(d.textures, id)
	return id
}

// UploadTexture uploads a mipmapped, repeating RGBA texture.
func (d *Device) UploadTexture(img *image.RGBA) (gpu.Texture, error) {
	size := img.Rect.Size()
	if size.X == 0 || size.Y == 0 {
		return gpu.Texture{}, fmt.Errorf("upload texture: empty image")
	}
	id := d.newTexture(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(size.X), int32(size.Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return gpu.Texture{ID: id, Kind: gpu.Texture2D, Width: size.X, Height: size.Y}, nil
}

// UploadAlphaTexture uploads a single-channel texture read from red.
func (d *Device) UploadAlphaTexture(img *image.Alpha) (gpu.Texture, error) {
	size := img.Rect.Size()
	if size.X == 0 || size.Y == 0 {
		return gpu.Texture{}, fmt.Errorf("upload alpha texture: empty image")
	}
	id := d.newTexture(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(size.X), int32(size.Y), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return gpu.Texture{ID: id, Kind: gpu.TextureAlpha, Width: size.X, Height: size.Y}, nil
}

// UploadCubemap uploads faces in +X, -X, +Y, -Y, +Z, -Z order.
func (d *Device) UploadCubemap(faces [6]*image.RGBA) (gpu.Texture, error) {
	for i, f := range faces {
		if f == nil {
			return gpu.Texture{}, fmt.Errorf("upload cubemap: face %d missing", i)
		}
	}
	size := faces[0].Rect.Size()
	id := d.newTexture(gl.TEXTURE_CUBE_MAP)
	for i, f := range faces {
		gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(f.Stride/4))
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA8,
			int32(f.Rect.Dx()), int32(f.Rect.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(f.Pix))
	}
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return gpu.Texture{ID: id, Kind: gpu.TextureCube, Width: size.X, Height: size.Y}, nil
}

func (d *Device) AcquireCommandBuffer() (gpu.CommandBuffer, error) {
	return &commandBuffer{d: d}, nil
}

// Destroy frees everything the device created.
func (d *Device) Destroy() {
	for _, p := range d.programs {
		if p != nil {
			gl.DeleteProgram(p.id)
		}
	}
	if len(d.buffers) > 0 {
		gl.DeleteBuffers(int32(len(d.buffers)), &d.buffers[0])
	}
	if len(d.textures) > 0 {
		gl.DeleteTextures(int32(len(d.textures)), &d.textures[0])
	}
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
	}
	d.buffers, d.textures, d.vao = nil, nil, 0
}

func textureTarget(k gpu.TextureKind) uint32 {
	if k == gpu.TextureCube {
		return gl.TEXTURE_CUBE_MAP
	}
	return gl.TEXTURE_2D
}
