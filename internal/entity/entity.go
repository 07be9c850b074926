package entity

import (
	"block-breaker-3d/internal/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

// MeshType indexes the mesh table loaded at startup.
type MeshType int

const (
	MeshCube MeshType = iota
	MeshSphere
	MeshQuad
	MeshCount
)

// TextureType indexes the texture table loaded at startup.
type TextureType int

const (
	TextureWhite TextureType = iota
	TextureStone
	TextureMetal
	TextureGemRed
	TextureGemGreen
	TextureGemBlue
	TextureGemYellow
	TextureGemPurple
	TextureLogo
	TextureCount
)

// Tags scenes use to find their actors.
const (
	TagPaddle = "paddle"
	TagBall   = "ball"
	TagBlock  = "block"
	TagLogo   = "logo"
)

// Entity is a drawable object owned by a scene. Rotation is in degrees.
type Entity struct {
	Mesh    MeshType
	Texture TextureType
	Tag     string

	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
	Velocity mgl32.Vec3

	Transform mgl32.Mat4

	IsShaded bool
	IsActive bool
}

// New returns an active entity with its transform already computed.
func New(mesh MeshType, tex TextureType, pos, rot, scale mgl32.Vec3, shaded bool) Entity {
	e := Entity{
		Mesh:     mesh,
		Texture:  tex,
		Position: pos,
		Rotation: rot,
		Scale:    scale,
		IsShaded: shaded,
		IsActive: true,
	}
	e.UpdateTransform()
	return e
}

// UpdateTransform rebuilds Transform as T * Rx * Ry * Rz * S.
func (e *Entity) UpdateTransform() {
	m := mgl32.Translate3D(e.Position.X(), e.Position.Y(), e.Position.Z())
	m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(e.Rotation.X())))
	m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(e.Rotation.Y())))
	m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(e.Rotation.Z())))
	e.Transform = m.Mul4(mgl32.Scale3D(e.Scale.X(), e.Scale.Y(), e.Scale.Z()))
}

// Draw records the bindings and one indexed draw of mesh. It does not wait
// on the GPU.
func (e *Entity) Draw(pass gpu.RenderPass, mesh gpu.Mesh, tex gpu.Texture) {
	pass.BindVertexBuffer(mesh.VBO)
	pass.BindIndexBuffer(mesh.IBO)
	pass.BindFragmentSampler(tex)
	pass.DrawIndexed(mesh.IndexCount, 1)
}
