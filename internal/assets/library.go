package assets

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"block-breaker-3d/internal/config"
	"block-breaker-3d/internal/entity"
	"block-breaker-3d/internal/gpu"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	textureSize = 64
	skyboxSize  = 128
	logoTitle   = "BLOCK BREAKER 3D"
)

var gemColors = map[entity.TextureType]color.RGBA{
	entity.TextureGemRed:    {220, 40, 50, 255},
	entity.TextureGemGreen:  {40, 200, 80, 255},
	entity.TextureGemBlue:   {50, 110, 230, 255},
	entity.TextureGemYellow: {235, 205, 40, 255},
	entity.TextureGemPurple: {150, 60, 210, 255},
}

var defaultSkies = [...][2]mgl32.Vec3{
	{{0.25, 0.45, 0.85}, {0.80, 0.88, 0.95}}, // day
	{{0.20, 0.10, 0.35}, {0.95, 0.55, 0.30}}, // dusk
	{{0.01, 0.01, 0.05}, {0.08, 0.10, 0.22}}, // night
}

// Library holds every GPU resource the scenes draw with. It is filled once
// before the first frame.
type Library struct {
	Meshes    [entity.MeshCount]gpu.Mesh
	Textures  [entity.TextureCount]gpu.Texture
	Skyboxes  []gpu.Texture
	SkyboxVBO gpu.Buffer

	Font        *FontAtlas
	FontTexture gpu.Texture
}

// Load builds the CPU-side assets, from the manifest where it names a file
// and procedurally otherwise, and uploads them to dev.
func Load(dev gpu.Device, m config.Manifest, fontPath string, fontPixels int) (*Library, error) {
	lib := &Library{}

	for i := entity.MeshType(0); i < entity.MeshCount; i++ {
		data, err := meshFor(i, m.Meshes[int(i)])
		if err != nil {
			return nil, err
		}
		lib.Meshes[i], err = dev.UploadMesh(data.Vertices, data.Indices)
		if err != nil {
			return nil, fmt.Errorf("upload mesh %d: %w", i, err)
		}
	}
	warnUnknownSlots("mesh", m.Meshes, int(entity.MeshCount))

	for i := entity.TextureType(0); i < entity.TextureCount; i++ {
		img, err := textureFor(i, m.Textures[int(i)])
		if err != nil {
			return nil, err
		}
		lib.Textures[i], err = dev.UploadTexture(img)
		if err != nil {
			return nil, fmt.Errorf("upload texture %d: %w", i, err)
		}
	}
	warnUnknownSlots("texture", m.Textures, int(entity.TextureCount))

	skies, err := skyboxFaces(m.Skyboxes)
	if err != nil {
		return nil, err
	}
	for i, faces := range skies {
		tex, err := dev.UploadCubemap(faces)
		if err != nil {
			return nil, fmt.Errorf("upload skybox %d: %w", i, err)
		}
		lib.Skyboxes = append(lib.Skyboxes, tex)
	}
	lib.SkyboxVBO, err = dev.UploadVertexBuffer(SkyboxVertices())
	if err != nil {
		return nil, fmt.Errorf("upload skybox vertices: %w", err)
	}

	lib.Font, err = LoadFontAtlas(fontPath, fontPixels)
	if err != nil {
		return nil, err
	}
	lib.FontTexture, err = dev.UploadAlphaTexture(lib.Font.Image)
	if err != nil {
		return nil, fmt.Errorf("upload font atlas: %w", err)
	}

	log.Printf("assets: %d meshes, %d textures, %d skyboxes, font %dpx",
		len(lib.Meshes), len(lib.Textures), len(lib.Skyboxes), lib.Font.PixelSize)
	return lib, nil
}

func meshFor(t entity.MeshType, path string) (MeshData, error) {
	if path != "" {
		return LoadMesh(path)
	}
	switch t {
	case entity.MeshSphere:
		return Sphere(24, 16), nil
	case entity.MeshQuad:
		return Quad(), nil
	default:
		return Cube(), nil
	}
}

func textureFor(t entity.TextureType, path string) (*image.RGBA, error) {
	if path != "" {
		return LoadImage(path)
	}
	if c, ok := gemColors[t]; ok {
		return GemImage(c, textureSize), nil
	}
	switch t {
	case entity.TextureStone:
		return CheckerImage(color.RGBA{110, 110, 115, 255}, color.RGBA{90, 90, 95, 255}, textureSize, 8), nil
	case entity.TextureMetal:
		return CheckerImage(color.RGBA{190, 195, 205, 255}, color.RGBA{160, 165, 175, 255}, textureSize, 16), nil
	case entity.TextureLogo:
		return RenderLabel(goregular.TTF, logoTitle, 48, image.Pt(512, 128),
			color.RGBA{255, 255, 255, 255}, color.RGBA{30, 30, 60, 255})
	default:
		return SolidImage(color.RGBA{255, 255, 255, 255}, textureSize), nil
	}
}

func skyboxFaces(paths [][6]string) ([][6]*image.RGBA, error) {
	var out [][6]*image.RGBA
	for i, p := range paths {
		faces, err := LoadCubemap(p)
		if err != nil {
			return nil, fmt.Errorf("skybox %d: %w", i, err)
		}
		out = append(out, faces)
	}
	if len(out) > 0 {
		return out, nil
	}
	for _, sky := range defaultSkies {
		out = append(out, GradientCubemap(sky[0], sky[1], skyboxSize))
	}
	return out, nil
}

func warnUnknownSlots(kind string, slots map[int]string, count int) {
	for k, v := range slots {
		if k < 0 || k >= count {
			log.Printf("assets: ignoring %s slot %d (%s): out of range", kind, k, v)
		}
	}
}

// Mesh returns the mesh for t, or false when t is out of range.
func (l *Library) Mesh(t entity.MeshType) (gpu.Mesh, bool) {
	if t < 0 || t >= entity.MeshCount {
		return gpu.Mesh{}, false
	}
	return l.Meshes[t], true
}

// Texture returns the texture for t, or false when t is out of range.
func (l *Library) Texture(t entity.TextureType) (gpu.Texture, bool) {
	if t < 0 || t >= entity.TextureCount {
		return gpu.Texture{}, false
	}
	return l.Textures[t], true
}

// Skybox returns skybox i, clamped into range.
func (l *Library) Skybox(i int) gpu.Texture {
	if len(l.Skyboxes) == 0 {
		return gpu.Texture{}
	}
	return l.Skyboxes[max(0, min(i, len(l.Skyboxes)-1))]
}
