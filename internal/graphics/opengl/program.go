package opengl

import (
	"fmt"
	"strings"

	"block-breaker-3d/internal/assets"
	"block-breaker-3d/internal/gpu"
	"block-breaker-3d/internal/ui"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// attrib is one float vertex attribute.
type attrib struct {
	location uint32
	size     int32
	offset   int // in floats
}

// layout describes how a pipeline reads its bound vertex buffer.
type layout struct {
	stride  int // in floats
	attribs []attrib
}

var (
	skyboxLayout = layout{stride: 3, attribs: []attrib{{0, 3, 0}}}
	modelLayout  = layout{stride: assets.FloatsPerVertex, attribs: []attrib{{0, 3, 0}, {1, 3, 3}, {2, 2, 6}}}
	uiLayout     = layout{stride: ui.FloatsPerVertex, attribs: []attrib{{0, 2, 0}, {1, 2, 2}, {2, 4, 4}}}
)

var pipelineLayouts = [gpu.PipelineCount]layout{
	gpu.PipelineSkybox:  skyboxLayout,
	gpu.PipelineNoPhong: modelLayout,
	gpu.PipelinePhong:   modelLayout,
	gpu.PipelineUI:      uiLayout,
}

// apply points the layout's attributes at the bound ARRAY_BUFFER.
func (l layout) apply() {
	for _, a := range l.attribs {
		gl.EnableVertexAttribArray(a.location)
		gl.VertexAttribPointer(a.location, a.size, gl.FLOAT, false, int32(l.stride*4), gl.PtrOffset(a.offset*4))
	}
}

// program is a linked pipeline program with its uniform locations. Missing
// uniforms have location -1 and are skipped.
type program struct {
	id     uint32
	layout layout
	blend  bool

	model, mvp  int32
	texture     int32
	objectColor int32
	lightColor  int32
	viewPos     int32
	lightCount  int32
	lightPos    int32
}

func newProgram(p gpu.Pipeline) (*program, error) {
	src := pipelineSources[p]
	id, err := compileProgram(src.vert, src.frag)
	if err != nil {
		return nil, fmt.Errorf("%v pipeline: %w", p, err)
	}
	loc := func(name string) int32 { return gl.GetUniformLocation(id, gl.Str(name+"\x00")) }
	return &program{
		id:          id,
		layout:      pipelineLayouts[p],
		blend:       p == gpu.PipelineUI,
		model:       loc("uModel"),
		mvp:         loc("uMVP"),
		texture:     loc("uTexture"),
		objectColor: loc("uObjectColor"),
		lightColor:  loc("uLightColor"),
		viewPos:     loc("uViewPos"),
		lightCount:  loc("uLightCount"),
		lightPos:    loc("uLightPos[0]"),
	}, nil
}

func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}
	defer gl.DeleteShader(vertexShader)
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("failed to link program: %v", strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("failed to compile shader: %v", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}
