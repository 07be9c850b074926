package assets

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"github.com/anthonynsimon/bild/transform"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// LoadImage decodes a PNG, JPEG, BMP or WebP file into RGBA.
func LoadImage(path string) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", path, err)
	}
	return toRGBA(img), nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// Cubemap face order: +x, -x, +y, -y, +z, -z.
const (
	FacePosX = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// LoadCubemap loads six faces. Face 0 must be square; the others are
// resampled to its size when they differ.
func LoadCubemap(paths [6]string) ([6]*image.RGBA, error) {
	var faces [6]*image.RGBA
	for i, p := range paths {
		img, err := LoadImage(p)
		if err != nil {
			return faces, fmt.Errorf("cubemap face %d: %w", i, err)
		}
		faces[i] = img
	}
	size := faces[0].Bounds().Size()
	if size.X != size.Y {
		return faces, fmt.Errorf("cubemap face 0 is %dx%d, want square", size.X, size.Y)
	}
	for i := 1; i < len(faces); i++ {
		if got := faces[i].Bounds().Size(); got != size {
			log.Printf("assets: cubemap face %d is %dx%d, resizing to %dx%d", i, got.X, got.Y, size.X, size.Y)
			faces[i] = transform.Resize(faces[i], size.X, size.Y, transform.Linear)
		}
	}
	return faces, nil
}

// SolidImage returns a size x size image of one colour.
func SolidImage(c color.RGBA, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// CheckerImage returns a checkerboard with cells of cell pixels.
func CheckerImage(a, b color.RGBA, size, cell int) *image.RGBA {
	if cell < 1 {
		cell = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// GemImage returns a bevelled tile: a bright centre fading to a darker rim.
func GemImage(c color.RGBA, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	half := float32(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := math32.Abs(float32(x)+0.5-half) / half
			dy := math32.Abs(float32(y)+0.5-half) / half
			k := 1 - 0.5*mgl32.Clamp(max(dx, dy), 0, 1)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(float32(c.R) * k),
				G: uint8(float32(c.G) * k),
				B: uint8(float32(c.B) * k),
				A: c.A,
			})
		}
	}
	return img
}

// GradientCubemap builds a sky from a zenith and a horizon colour. Side
// faces blend top to bottom, the top face is the zenith colour and the
// bottom face the horizon colour.
func GradientCubemap(zenith, horizon mgl32.Vec3, size int) [6]*image.RGBA {
	var faces [6]*image.RGBA
	for i := range faces {
		img := image.NewRGBA(image.Rect(0, 0, size, size))
		for y := 0; y < size; y++ {
			t := float32(y) / float32(max(size-1, 1))
			var c mgl32.Vec3
			switch i {
			case FacePosY:
				c = zenith
			case FaceNegY:
				c = horizon
			default:
				c = zenith.Mul(1 - t).Add(horizon.Mul(t))
			}
			rgba := vecToRGBA(c)
			for x := 0; x < size; x++ {
				img.SetRGBA(x, y, rgba)
			}
		}
		faces[i] = img
	}
	return faces
}

func vecToRGBA(c mgl32.Vec3) color.RGBA {
	return color.RGBA{
		R: uint8(mgl32.Clamp(c[0], 0, 1) * 255),
		G: uint8(mgl32.Clamp(c[1], 0, 1) * 255),
		B: uint8(mgl32.Clamp(c[2], 0, 1) * 255),
		A: 255,
	}
}
