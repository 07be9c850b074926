package entity

import (
	"testing"

	"block-breaker-3d/internal/gpu"
	"block-breaker-3d/internal/gpu/gputest"

	"github.com/go-gl/mathgl/mgl32"
)

func TestUpdateTransformOrder(t *testing.T) {
	e := New(MeshCube, TextureWhite,
		mgl32.Vec3{1, 0, 0},
		mgl32.Vec3{0, 90, 0},
		mgl32.Vec3{2, 1, 1},
		true)

	// Scale first: (0.5,0.5,0.5) -> (1,0.5,0.5). Ry(90): (x,y,z) -> (z,y,-x)
	// gives (0.5,0.5,-1). Translate by (1,0,0): (1.5,0.5,-1).
	got := e.Transform.Mul4x1(mgl32.Vec4{0.5, 0.5, 0.5, 1})
	want := mgl32.Vec4{1.5, 0.5, -1, 1}
	if !got.ApproxEqualThreshold(want, 1e-5) {
		t.Fatalf("transformed vertex = %v, want %v", got, want)
	}

	// Same result as an explicit product in the documented order.
	explicit := mgl32.Translate3D(1, 0, 0).
		Mul4(mgl32.HomogRotate3DX(0)).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(90))).
		Mul4(mgl32.HomogRotate3DZ(0)).
		Mul4(mgl32.Scale3D(2, 1, 1))
	if !e.Transform.ApproxEqualThreshold(explicit, 1e-6) {
		t.Errorf("transform = %v, want %v", e.Transform, explicit)
	}

	// Scaling after placement would give a different point; guard the order.
	wrong := mgl32.Scale3D(2, 1, 1).Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(90))).Mul4(mgl32.Translate3D(1, 0, 0))
	if e.Transform.ApproxEqualThreshold(wrong, 1e-6) {
		t.Errorf("transform matches the reversed composition")
	}
}

func TestUpdateTransformAllAxes(t *testing.T) {
	e := Entity{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.Vec3{90, 0, 90},
		Scale:    mgl32.Vec3{1, 1, 1},
	}
	e.UpdateTransform()
	// Rz(90) maps +x to +y, then Rx(90) maps +y to +z.
	got := e.Transform.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	want := mgl32.Vec4{0, 0, 1, 1}
	if !got.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDrawRecordsBindingsThenDraw(t *testing.T) {
	dev := gputest.NewDevice()
	mesh, _ := dev.UploadMesh(make([]float32, 24), []uint16{0, 1, 2})
	cb, _ := dev.AcquireCommandBuffer()
	pass, _ := cb.BeginRenderPass(gpu.ColorTarget{}, nil)
	dev.Reset()

	e := New(MeshCube, TextureWhite, mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, false)
	e.Draw(pass, mesh, gpu.Texture{ID: 9})

	ops := dev.Ops()
	want := []string{"BindVertexBuffer", "BindIndexBuffer", "BindFragmentSampler", "DrawIndexed(3)"}
	if len(ops) != len(want) {
		t.Fatalf("ops = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("op %d = %s, want %s", i, ops[i], want[i])
		}
	}
	if dev.Commands[2].Texture.ID != 9 {
		t.Errorf("bound texture %d, want 9", dev.Commands[2].Texture.ID)
	}
}
