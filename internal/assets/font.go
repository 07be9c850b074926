package assets

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	// FontCellSize is the side of one glyph cell in the atlas.
	FontCellSize = 64
	fontColumns  = 16

	FirstGlyph = 32
	LastGlyph  = 126
)

// Glyph describes one character's cell in the atlas and its metrics, all in
// pixels at the atlas' pixel size.
type Glyph struct {
	AtlasX, AtlasY int
	Width, Height  int
	// Bearing is the offset from the pen position on the baseline to the
	// glyph's top-left corner, y measured upward.
	BearingX, BearingY int
	Advance            int
}

// FontAtlas is a single-channel glyph sheet plus metadata indexed by ASCII
// code. Codes outside FirstGlyph..LastGlyph have zero metadata.
type FontAtlas struct {
	Image      *image.Alpha
	Glyphs     [128]Glyph
	PixelSize  int
	LineHeight int
	Ascent     int
}

// LoadFontAtlas builds an atlas from a TrueType/OpenType file, or from the
// built-in Go Regular face when path is empty.
func LoadFontAtlas(path string, pixels int) (*FontAtlas, error) {
	data := goregular.TTF
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
	}
	return BuildFontAtlas(data, pixels)
}

func newFace(ttf []byte, pixels int) (font.Face, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(pixels), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return face, nil
}

// BuildFontAtlas rasterises printable ASCII into a grid of FontCellSize
// cells, sixteen per row. Glyphs larger than a cell are clipped.
func BuildFontAtlas(ttf []byte, pixels int) (*FontAtlas, error) {
	face, err := newFace(ttf, pixels)
	if err != nil {
		return nil, err
	}
	defer func() { _ = face.Close() }()

	count := LastGlyph - FirstGlyph + 1
	rows := (count + fontColumns - 1) / fontColumns
	atlas := &FontAtlas{
		Image:     image.NewAlpha(image.Rect(0, 0, fontColumns*FontCellSize, rows*FontCellSize)),
		PixelSize: pixels,
	}
	m := face.Metrics()
	atlas.LineHeight = m.Height.Ceil()
	atlas.Ascent = m.Ascent.Ceil()

	for r := rune(FirstGlyph); r <= LastGlyph; r++ {
		i := int(r) - FirstGlyph
		cx := (i % fontColumns) * FontCellSize
		cy := (i / fontColumns) * FontCellSize

		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		g := Glyph{
			AtlasX:   cx,
			AtlasY:   cy,
			BearingX: dr.Min.X,
			BearingY: -dr.Min.Y,
			Advance:  int(math.Round(float64(advance) / 64.0)),
		}
		if mask != nil && dr.Dx() > 0 && dr.Dy() > 0 {
			g.Width = min(dr.Dx(), FontCellSize)
			g.Height = min(dr.Dy(), FontCellSize)
			dst := image.Rect(cx, cy, cx+g.Width, cy+g.Height)
			draw.Draw(atlas.Image, dst, mask, maskp, draw.Src)
		}
		atlas.Glyphs[r] = g
	}
	return atlas, nil
}

// Glyph returns the metadata for c, substituting '?' for characters the
// atlas does not cover.
func (a *FontAtlas) Glyph(c rune) Glyph {
	if c < FirstGlyph || c > LastGlyph {
		c = '?'
	}
	return a.Glyphs[c]
}

// Measure returns the advance width of s at the given scale.
func (a *FontAtlas) Measure(s string, scale float32) float32 {
	var w int
	for _, c := range s {
		w += a.Glyph(c).Advance
	}
	return float32(w) * scale
}

// RenderLabel draws text centred on a size.X x size.Y RGBA image, used for
// textured title plates.
func RenderLabel(ttf []byte, text string, pixels int, size image.Point, fg, bg color.RGBA) (*image.RGBA, error) {
	face, err := newFace(ttf, pixels)
	if err != nil {
		return nil, err
	}
	defer func() { _ = face.Close() }()

	img := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Src: image.NewUniform(fg), Face: face}
	width := d.MeasureString(text)
	m := face.Metrics()
	baseline := (fixed.I(size.Y) + m.Ascent - m.Descent) / 2
	d.Dot = fixed.Point26_6{X: (fixed.I(size.X) - width) / 2, Y: baseline}
	d.DrawString(text)
	return img, nil
}
