package ui

import (
	"errors"

	"block-breaker-3d/internal/assets"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// FloatsPerVertex is the UI vertex layout: position(2), uv(2), rgba(4).
	FloatsPerVertex = 8
	MaxQuads        = 300
	MaxVertices     = MaxQuads * 6
	// BufferBytes is the size of the GPU vertex buffer backing a Buffer.
	BufferBytes = MaxVertices * FloatsPerVertex * 4
)

// ErrBufferFull is returned when a push runs out of quads. Glyphs that did
// not fit are dropped.
var ErrBufferFull = errors.New("ui: vertex buffer full")

// Buffer accumulates text quads for one frame. Flush rewinds it.
type Buffer struct {
	vertices []float32
	dropped  int
}

// NewBuffer returns an empty buffer with room for MaxQuads quads.
func NewBuffer() *Buffer {
	return &Buffer{vertices: make([]float32, 0, MaxVertices*FloatsPerVertex)}
}

// PushText appends one quad per visible glyph of f. Invisible fields and
// whitespace push nothing; whitespace still advances the pen.
func (b *Buffer) PushText(f TextField, atlas *assets.FontAtlas, resolution mgl32.Vec2) error {
	if !f.Visible || f.Text == "" {
		return nil
	}
	size := atlas.Image.Bounds().Size()
	aw, ah := float32(size.X), float32(size.Y)
	s := f.EffectiveScale()
	pen := f.Origin(atlas, resolution)

	var err error
	for _, c := range f.Text {
		g := atlas.Glyph(c)
		if g.Width > 0 && g.Height > 0 {
			if b.VertexCount()+6 > MaxVertices {
				b.dropped++
				err = ErrBufferFull
				continue
			}
			x0 := pen[0] + float32(g.BearingX)*s
			y0 := pen[1] - float32(g.BearingY)*s
			x1 := x0 + float32(g.Width)*s
			y1 := y0 + float32(g.Height)*s

			u0 := float32(g.AtlasX) / aw
			v0 := float32(g.AtlasY) / ah
			u1 := float32(g.AtlasX+g.Width) / aw
			v1 := float32(g.AtlasY+g.Height) / ah

			b.vertex(x0, y0, u0, v0, f.Color)
			b.vertex(x0, y1, u0, v1, f.Color)
			b.vertex(x1, y1, u1, v1, f.Color)
			b.vertex(x0, y0, u0, v0, f.Color)
			b.vertex(x1, y1, u1, v1, f.Color)
			b.vertex(x1, y0, u1, v0, f.Color)
		}
		pen[0] += float32(g.Advance) * s
	}
	return err
}

func (b *Buffer) vertex(x, y, u, v float32, c mgl32.Vec4) {
	b.vertices = append(b.vertices, x, y, u, v, c[0], c[1], c[2], c[3])
}

// Vertices returns the packed vertex data written since the last Flush.
func (b *Buffer) Vertices() []float32 { return b.vertices }

// VertexCount returns the number of vertices written since the last Flush.
func (b *Buffer) VertexCount() int { return len(b.vertices) / FloatsPerVertex }

// Dropped returns how many glyphs were dropped since the last Flush.
func (b *Buffer) Dropped() int { return b.dropped }

// Flush resets the write cursor.
func (b *Buffer) Flush() {
	b.vertices = b.vertices[:0]
	b.dropped = 0
}
