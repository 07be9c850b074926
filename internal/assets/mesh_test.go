package assets

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func vertexAt(m MeshData, i uint16) (pos, normal mgl32.Vec3) {
	v := m.Vertices[int(i)*FloatsPerVertex:]
	return mgl32.Vec3{v[0], v[1], v[2]}, mgl32.Vec3{v[3], v[4], v[5]}
}

// Every triangle must wind counter-clockwise when seen along its normal.
func checkOutwardWinding(t *testing.T, name string, m MeshData) {
	t.Helper()
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, n := vertexAt(m, m.Indices[i])
		b, _ := vertexAt(m, m.Indices[i+1])
		c, _ := vertexAt(m, m.Indices[i+2])
		face := b.Sub(a).Cross(c.Sub(a))
		if face.Len() < 1e-9 {
			continue // degenerate pole triangle
		}
		if face.Dot(n) <= 0 {
			t.Fatalf("%s: triangle %d winds inward", name, i/3)
		}
	}
}

func TestPrimitiveShapes(t *testing.T) {
	tests := []struct {
		name         string
		mesh         MeshData
		wantVertices int
		wantIndices  int
	}{
		{"cube", Cube(), 24, 36},
		{"quad", Quad(), 4, 6},
		{"sphere", Sphere(8, 4), 9 * 5, 8 * 4 * 6},
		{"sphere clamps", Sphere(1, 1), 4 * 3, 3 * 2 * 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mesh.VertexCount(); got != tt.wantVertices {
				t.Errorf("vertices = %d, want %d", got, tt.wantVertices)
			}
			if got := len(tt.mesh.Indices); got != tt.wantIndices {
				t.Errorf("indices = %d, want %d", got, tt.wantIndices)
			}
			for _, idx := range tt.mesh.Indices {
				if int(idx) >= tt.mesh.VertexCount() {
					t.Fatalf("index %d out of range", idx)
				}
			}
			checkOutwardWinding(t, tt.name, tt.mesh)
		})
	}
}

func TestCubeFitsUnitBox(t *testing.T) {
	m := Cube()
	for i := 0; i < m.VertexCount(); i++ {
		p, n := vertexAt(m, uint16(i))
		for k := 0; k < 3; k++ {
			if p[k] != 0.5 && p[k] != -0.5 {
				t.Fatalf("vertex %d = %v, want corners of the unit cube", i, p)
			}
		}
		if !mgl32.FloatEqual(n.Len(), 1) {
			t.Errorf("normal %v not unit", n)
		}
	}
}

func TestSkyboxVertices(t *testing.T) {
	v := SkyboxVertices()
	if len(v) != 36*3 {
		t.Fatalf("len = %d, want 108", len(v))
	}
	// Each triangle faces the cube centre.
	for i := 0; i < 36; i += 3 {
		a := mgl32.Vec3{v[i*3], v[i*3+1], v[i*3+2]}
		b := mgl32.Vec3{v[i*3+3], v[i*3+4], v[i*3+5]}
		c := mgl32.Vec3{v[i*3+6], v[i*3+7], v[i*3+8]}
		centroid := a.Add(b).Add(c).Mul(1.0 / 3)
		if b.Sub(a).Cross(c.Sub(a)).Dot(centroid) >= 0 {
			t.Fatalf("triangle %d faces outward", i/3)
		}
	}
}

func writeTriangleGLTF(t *testing.T, withIndices bool) string {
	t.Helper()
	var buf bytes.Buffer
	for _, f := range []float32{0, 0, 0, 1, 0, 0, 0, 1, 0} {
		_ = binary.Write(&buf, binary.LittleEndian, f)
	}
	for _, i := range []uint16{0, 1, 2} {
		_ = binary.Write(&buf, binary.LittleEndian, i)
	}
	buf.Write([]byte{0, 0})

	indices := ""
	if withIndices {
		indices = `, "indices": 1`
	}
	doc := fmt.Sprintf(`{
  "asset": {"version": "2.0"},
  "buffers": [{"byteLength": %d, "uri": "data:application/octet-stream;base64,%s"}],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36},
    {"buffer": 0, "byteOffset": 36, "byteLength": 6}
  ],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]},
    {"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
  ],
  "meshes": [{"primitives": [{"attributes": {"POSITION": 0}%s}]}]
}`, buf.Len(), base64.StdEncoding.EncodeToString(buf.Bytes()), indices)

	path := filepath.Join(t.TempDir(), "triangle.gltf")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMeshTriangle(t *testing.T) {
	for _, withIndices := range []bool{true, false} {
		m, err := LoadMesh(writeTriangleGLTF(t, withIndices))
		if err != nil {
			t.Fatalf("LoadMesh (indices=%v): %v", withIndices, err)
		}
		if m.VertexCount() != 3 || len(m.Indices) != 3 {
			t.Fatalf("got %d vertices / %d indices", m.VertexCount(), len(m.Indices))
		}
		p, n := vertexAt(m, 1)
		if p != (mgl32.Vec3{1, 0, 0}) {
			t.Errorf("vertex 1 = %v", p)
		}
		if n != (mgl32.Vec3{0, 1, 0}) {
			t.Errorf("missing normals should default to +y, got %v", n)
		}
	}
}

func TestLoadMeshMissingFile(t *testing.T) {
	if _, err := LoadMesh(filepath.Join(t.TempDir(), "nope.glb")); err == nil {
		t.Fatal("expected error")
	}
}
