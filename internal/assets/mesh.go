package assets

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// FloatsPerVertex is the model vertex layout: position(3), normal(3), uv(2).
const FloatsPerVertex = 8

// MeshData is CPU-side geometry ready for upload.
type MeshData struct {
	Vertices []float32
	Indices  []uint16
}

// VertexCount returns the number of vertices in the mesh.
func (m MeshData) VertexCount() int { return len(m.Vertices) / FloatsPerVertex }

func (m *MeshData) add(pos, normal mgl32.Vec3, uv mgl32.Vec2) {
	m.Vertices = append(m.Vertices,
		pos[0], pos[1], pos[2],
		normal[0], normal[1], normal[2],
		uv[0], uv[1])
}

type cubeFace struct {
	n, u, v mgl32.Vec3
}

// u x v == n so corners walk counter-clockwise seen from outside.
var cubeFaces = [6]cubeFace{
	{n: mgl32.Vec3{1, 0, 0}, u: mgl32.Vec3{0, 0, -1}, v: mgl32.Vec3{0, 1, 0}},
	{n: mgl32.Vec3{-1, 0, 0}, u: mgl32.Vec3{0, 0, 1}, v: mgl32.Vec3{0, 1, 0}},
	{n: mgl32.Vec3{0, 1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, -1}},
	{n: mgl32.Vec3{0, -1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, 1}},
	{n: mgl32.Vec3{0, 0, 1}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
	{n: mgl32.Vec3{0, 0, -1}, u: mgl32.Vec3{-1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
}

var quadCorners = [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// Cube returns a unit cube centred on the origin with per-face normals.
func Cube() MeshData {
	var m MeshData
	for _, f := range cubeFaces {
		base := uint16(m.VertexCount())
		for _, c := range quadCorners {
			pos := f.n.Mul(0.5).Add(f.u.Mul(c[0] - 0.5)).Add(f.v.Mul(c[1] - 0.5))
			m.add(pos, f.n, mgl32.Vec2{c[0], 1 - c[1]})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base+2, base+3, base)
	}
	return m
}

// Sphere returns a UV sphere of diameter 1.
func Sphere(segments, rings int) MeshData {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}
	var m MeshData
	for ring := 0; ring <= rings; ring++ {
		phi := float32(ring) * math32.Pi / float32(rings)
		sinPhi, cosPhi := math32.Sincos(phi)
		for seg := 0; seg <= segments; seg++ {
			theta := float32(seg) * 2 * math32.Pi / float32(segments)
			sinTheta, cosTheta := math32.Sincos(theta)
			n := mgl32.Vec3{sinPhi * cosTheta, cosPhi, sinPhi * sinTheta}
			uv := mgl32.Vec2{float32(seg) / float32(segments), float32(ring) / float32(rings)}
			m.add(n.Mul(0.5), n, uv)
		}
	}
	stride := uint16(segments + 1)
	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			cur := uint16(ring)*stride + uint16(seg)
			next := cur + stride
			m.Indices = append(m.Indices, cur, cur+1, next, cur+1, next+1, next)
		}
	}
	return m
}

// Quad returns a unit quad in the x/y plane facing +z.
func Quad() MeshData {
	var m MeshData
	n := mgl32.Vec3{0, 0, 1}
	for _, c := range quadCorners {
		m.add(mgl32.Vec3{c[0] - 0.5, c[1] - 0.5, 0}, n, mgl32.Vec2{c[0], 1 - c[1]})
	}
	m.Indices = []uint16{0, 1, 2, 2, 3, 0}
	return m
}

// SkyboxVertices returns the 36 positions of an inward-facing unit cube
// with half size 1, three floats per vertex.
func SkyboxVertices() []float32 {
	out := make([]float32, 0, 36*3)
	for _, f := range cubeFaces {
		var corners [4]mgl32.Vec3
		for i, c := range quadCorners {
			corners[i] = f.n.Add(f.u.Mul(c[0]*2 - 1)).Add(f.v.Mul(c[1]*2 - 1))
		}
		// Reverse winding so the faces are visible from inside.
		for _, i := range [...]int{0, 2, 1, 0, 3, 2} {
			out = append(out, corners[i][0], corners[i][1], corners[i][2])
		}
	}
	return out
}

// LoadMesh reads the first primitive of the first mesh in a glTF or GLB
// file. Missing normals default to +y and missing texture coordinates to 0.
func LoadMesh(path string) (MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return MeshData{}, fmt.Errorf("gltf open %q: %w", path, err)
	}
	if len(doc.Meshes) == 0 || len(doc.Meshes[0].Primitives) == 0 {
		return MeshData{}, fmt.Errorf("gltf %q: no mesh primitives", path)
	}
	m, err := meshFromPrimitive(doc, doc.Meshes[0].Primitives[0])
	if err != nil {
		return MeshData{}, fmt.Errorf("gltf %q: %w", path, err)
	}
	return m, nil
}

func meshFromPrimitive(doc *gltf.Document, prim *gltf.Primitive) (MeshData, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return MeshData{}, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return MeshData{}, fmt.Errorf("positions: %w", err)
	}
	if len(positions) > math.MaxUint16+1 {
		return MeshData{}, fmt.Errorf("%d vertices do not fit 16-bit indices", len(positions))
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}

	var m MeshData
	m.Vertices = make([]float32, 0, len(positions)*FloatsPerVertex)
	for i, p := range positions {
		n := mgl32.Vec3{0, 1, 0}
		if i < len(normals) {
			n = normals[i]
		}
		var uv mgl32.Vec2
		if i < len(uvs) {
			uv = uvs[i]
		}
		m.add(p, n, uv)
	}

	if prim.Indices == nil {
		m.Indices = make([]uint16, len(positions))
		for i := range m.Indices {
			m.Indices[i] = uint16(i)
		}
		return m, nil
	}
	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return MeshData{}, fmt.Errorf("indices: %w", err)
	}
	m.Indices = make([]uint16, len(indices))
	for i, idx := range indices {
		m.Indices[i] = uint16(idx)
	}
	return m, nil
}
