package scene

import (
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"block-breaker-3d/internal/assets"
	"block-breaker-3d/internal/entity"
	"block-breaker-3d/internal/ui"

	"github.com/go-gl/mathgl/mgl32"
)

//go:embed data/*.json
var builtin embed.FS

// Description is the JSON form of a scene.
type Description struct {
	Entities   []EntityDesc    `json:"entities"`
	TextFields []TextFieldDesc `json:"textfields"`
	Elements   []ElementDesc   `json:"elements"`
	BlockGrid  *BlockGrid      `json:"block_grid"`
}

type EntityDesc struct {
	Mesh     int        `json:"mesh"`
	Texture  int        `json:"texture"`
	Position [3]float32 `json:"position"`
	Rotation [3]float32 `json:"rotation"`
	Scale    [3]float32 `json:"scale"`
	IsShaded bool       `json:"is_shaded"`
	IsActive bool       `json:"is_active"`
	Tag      string     `json:"tag"`
}

type TextFieldDesc struct {
	Text      string     `json:"text"`
	Position  [2]float32 `json:"position"`
	Color     [4]float32 `json:"color"`
	IsVisible bool       `json:"is_visible"`
	Scale     float32    `json:"scale"`
}

// ElementDesc binds a clickable area to a text field. All-zero bounds are
// derived from the text field's extent.
type ElementDesc struct {
	Bounds    [4]float32 `json:"bounds"`
	TextField int        `json:"textfield"`
	Action    string     `json:"action"`
}

// BlockGrid lays out breakable blocks row by row. Cell values are texture
// indices; 0 leaves the cell empty. Row r, column c sits at
// origin + (c*spacing[0], 0, r*spacing[1]).
type BlockGrid struct {
	Origin  [3]float32 `json:"origin"`
	Spacing [2]float32 `json:"spacing"`
	Scale   [3]float32 `json:"scale"`
	Cells   [][]int    `json:"cells"`
}

// ParseDescription decodes a scene description.
func ParseDescription(data []byte) (*Description, error) {
	var d Description
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("could not unmarshal scene json: %w", err)
	}
	return &d, nil
}

// LoadDescription reads and decodes a scene description file.
func LoadDescription(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read scene file: %w", err)
	}
	d, err := ParseDescription(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func builtinDescription(name string) (*Description, error) {
	data, err := builtin.ReadFile("data/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("could not read built-in scene %q: %w", name, err)
	}
	d, err := ParseDescription(data)
	if err != nil {
		return nil, fmt.Errorf("built-in scene %q: %w", name, err)
	}
	return d, nil
}

func vec3(a [3]float32) mgl32.Vec3 { return mgl32.Vec3(a) }

// BuildEntities converts the declared entities followed by the block grid.
// Entries with an unknown mesh or texture are skipped and logged.
func (d *Description) BuildEntities() []entity.Entity {
	out := make([]entity.Entity, 0, len(d.Entities))
	for i, ed := range d.Entities {
		if !validMesh(ed.Mesh) || !validTexture(ed.Texture) {
			log.Printf("scene: skipping entity %d: mesh %d / texture %d out of range", i, ed.Mesh, ed.Texture)
			continue
		}
		e := entity.New(entity.MeshType(ed.Mesh), entity.TextureType(ed.Texture),
			vec3(ed.Position), vec3(ed.Rotation), vec3(ed.Scale), ed.IsShaded)
		e.IsActive = ed.IsActive
		e.Tag = ed.Tag
		out = append(out, e)
	}
	if d.BlockGrid != nil {
		out = append(out, d.BlockGrid.Blocks()...)
	}
	return out
}

// Blocks returns one active, shaded cube per non-empty cell.
func (g *BlockGrid) Blocks() []entity.Entity {
	var out []entity.Entity
	origin := vec3(g.Origin)
	for r, row := range g.Cells {
		for c, tex := range row {
			if tex == 0 {
				continue
			}
			if !validTexture(tex) {
				log.Printf("scene: skipping block (%d,%d): texture %d out of range", r, c, tex)
				continue
			}
			pos := origin.Add(mgl32.Vec3{float32(c) * g.Spacing[0], 0, float32(r) * g.Spacing[1]})
			e := entity.New(entity.MeshCube, entity.TextureType(tex), pos, mgl32.Vec3{}, vec3(g.Scale), true)
			e.Tag = entity.TagBlock
			out = append(out, e)
		}
	}
	return out
}

// BuildTextFields converts the declared text fields.
func (d *Description) BuildTextFields() []ui.TextField {
	out := make([]ui.TextField, len(d.TextFields))
	for i, td := range d.TextFields {
		out[i] = ui.TextField{
			Text:     td.Text,
			Position: mgl32.Vec2(td.Position),
			Color:    mgl32.Vec4(td.Color),
			Visible:  td.IsVisible,
			Scale:    td.Scale,
		}
	}
	return out
}

// BuildElements converts the declared elements. Elements bound to a missing
// text field are skipped and logged; unknown actions are kept inert.
func (d *Description) BuildElements(fields []ui.TextField, atlas *assets.FontAtlas, resolution mgl32.Vec2) []ui.Element {
	const pad = 8
	var out []ui.Element
	for i, ed := range d.Elements {
		if ed.TextField < 0 || ed.TextField >= len(fields) {
			log.Printf("scene: skipping element %d: text field %d out of range", i, ed.TextField)
			continue
		}
		act := ui.Action(ed.Action)
		if !knownAction(act) {
			log.Printf("scene: element %d has unknown action %q", i, ed.Action)
			act = ui.ActionNone
		}
		bounds := mgl32.Vec4(ed.Bounds)
		if bounds == (mgl32.Vec4{}) && atlas != nil {
			b := fields[ed.TextField].Bounds(atlas, resolution)
			bounds = mgl32.Vec4{b[0] - pad, b[1] - pad, b[2] + 2*pad, b[3] + 2*pad}
		}
		out = append(out, ui.Element{Bounds: bounds, TextField: ed.TextField, Action: act})
	}
	return out
}

func knownAction(a ui.Action) bool {
	switch a {
	case ui.ActionNone, ui.ActionPlay, ui.ActionOptions, ui.ActionQuit,
		ui.ActionBack, ui.ActionSkyboxNext, ui.ActionSkyboxPrev:
		return true
	}
	return false
}

func validMesh(m int) bool    { return m >= 0 && m < int(entity.MeshCount) }
func validTexture(t int) bool { return t >= 0 && t < int(entity.TextureCount) }
