// Package ui holds screen-space text fields, clickable elements and the
// vertex arena the UI pass draws from.
package ui

import (
	"block-breaker-3d/internal/assets"

	"github.com/go-gl/mathgl/mgl32"
)

// TextField is a line of text in window pixels, origin top-left. Position
// is the pen position on the baseline. A negative component anchors from the
// opposite edge: x < 0 places the text's right end |x| pixels from the
// right edge, y < 0 places the baseline |y| pixels above the bottom.
type TextField struct {
	Text     string
	Position mgl32.Vec2
	Color    mgl32.Vec4
	Visible  bool
	// Scale multiplies the atlas pixel size; zero means 1.
	Scale float32
}

// EffectiveScale returns Scale, or 1 when unset.
func (f TextField) EffectiveScale() float32 {
	if f.Scale <= 0 {
		return 1
	}
	return f.Scale
}

// Origin resolves the baseline start point for a window of the given size.
func (f TextField) Origin(atlas *assets.FontAtlas, resolution mgl32.Vec2) mgl32.Vec2 {
	p := f.Position
	if p[0] < 0 {
		p[0] = resolution[0] + p[0] - atlas.Measure(f.Text, f.EffectiveScale())
	}
	if p[1] < 0 {
		p[1] = resolution[1] + p[1]
	}
	return p
}

// Bounds returns the field's rectangle as (x, y, w, h), from the top of the
// ascent to the baseline.
func (f TextField) Bounds(atlas *assets.FontAtlas, resolution mgl32.Vec2) mgl32.Vec4 {
	s := f.EffectiveScale()
	o := f.Origin(atlas, resolution)
	h := float32(atlas.Ascent) * s
	return mgl32.Vec4{o[0], o[1] - h, atlas.Measure(f.Text, s), h}
}
