// Package shading holds the two lighting programs of the viewer and the switch between them.
// Both programs bind the same uniform contract, so switching never touches scene state.
package shading

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
)

//go:embed assets/gouraud.wgsl
var gouraudSource string

//go:embed assets/phong.wgsl
var phongSource string

// Mode names a shading technique.
type Mode int

const (
	// Gouraud evaluates lighting per vertex and interpolates the color.
	Gouraud Mode = iota

	// Phong interpolates normals and evaluates lighting per fragment.
	Phong
)

// ModeOf maps the phong option to a Mode.
func ModeOf(phong bool) Mode {
	if phong {
		return Phong
	}
	return Gouraud
}

func (m Mode) String() string {
	switch m {
	case Gouraud:
		return "gouraud"
	case Phong:
		return "phong"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Source returns the WGSL source of the mode's program.
func (m Mode) Source() string {
	if m == Phong {
		return phongSource
	}
	return gouraudSource
}

// PipelineKey names the pipeline variant of a program for one combination of fixed-function
// state. WebGPU bakes culling and depth compare into the pipeline object, so each combination
// is its own pipeline.
//
// Parameters:
//   - mode: the shading mode
//   - cull: whether back faces are culled
//   - depth: whether the depth test is on
//
// Returns:
//   - string: a key such as "phong/cull/depth" or "gouraud/-/depth"
func PipelineKey(mode Mode, cull, depth bool) string {
	c, d := "-", "-"
	if cull {
		c = "cull"
	}
	if depth {
		d = "depth"
	}
	return mode.String() + "/" + c + "/" + d
}

// program is the implementation of the Program interface.
type program struct {
	mode     Mode
	vertex   shader.Shader
	fragment shader.Shader
	uniforms map[string]shader.UniformLocation
}

// Program is one shading technique: its shader pair and its uniform-location table.
type Program interface {
	// Mode returns the shading technique.
	Mode() Mode

	// Key returns the program name, "gouraud" or "phong".
	Key() string

	// VertexShader returns the parsed vertex stage.
	VertexShader() shader.Shader

	// FragmentShader returns the parsed fragment stage.
	FragmentShader() shader.Shader

	// Uniforms returns the program's uniform-location table, the union of both stages.
	//
	// Returns:
	//   - map[string]shader.UniformLocation: locations keyed by dotted name
	Uniforms() map[string]shader.UniformLocation

	// Uniform looks up one entry of the uniform-location table.
	//
	// Parameters:
	//   - name: a dotted name such as "lights.kind"
	//
	// Returns:
	//   - shader.UniformLocation: the location
	//   - bool: false if the program has no such input
	Uniform(name string) (shader.UniformLocation, bool)

	// PipelineKey returns the key of this program's variant for the given state.
	PipelineKey(cull, depth bool) string

	// Pipeline builds the pipeline description of this program's variant for the given state.
	// Front faces are counter-clockwise.
	//
	// Parameters:
	//   - cull: whether back faces are culled
	//   - depth: whether the depth test is on
	//
	// Returns:
	//   - pipeline.Pipeline: an unregistered pipeline description
	Pipeline(cull, depth bool) pipeline.Pipeline
}

var _ Program = &program{}

// NewProgram parses both stages of a mode's program.
//
// Parameters:
//   - mode: the shading mode
//
// Returns:
//   - Program: the parsed program
//   - error: a shader parse error
func NewProgram(mode Mode) (Program, error) {
	vs, err := shader.ParseShader(mode.String()+"_vs", shader.ShaderTypeVertex, mode.Source())
	if err != nil {
		return nil, fmt.Errorf("shading: %s: %w", mode, err)
	}
	fs, err := shader.ParseShader(mode.String()+"_fs", shader.ShaderTypeFragment, mode.Source())
	if err != nil {
		return nil, fmt.Errorf("shading: %s: %w", mode, err)
	}

	uniforms := make(map[string]shader.UniformLocation, len(vs.Uniforms()))
	for name, loc := range vs.Uniforms() {
		uniforms[name] = loc
	}
	for name, loc := range fs.Uniforms() {
		uniforms[name] = loc
	}
	return &program{mode: mode, vertex: vs, fragment: fs, uniforms: uniforms}, nil
}

func (p *program) Mode() Mode {
	return p.mode
}

func (p *program) Key() string {
	return p.mode.String()
}

func (p *program) VertexShader() shader.Shader {
	return p.vertex
}

func (p *program) FragmentShader() shader.Shader {
	return p.fragment
}

func (p *program) Uniforms() map[string]shader.UniformLocation {
	return p.uniforms
}

func (p *program) Uniform(name string) (shader.UniformLocation, bool) {
	loc, ok := p.uniforms[name]
	return loc, ok
}

func (p *program) PipelineKey(cull, depth bool) string {
	return PipelineKey(p.mode, cull, depth)
}

func (p *program) Pipeline(cull, depth bool) pipeline.Pipeline {
	return pipeline.NewPipeline(p.PipelineKey(cull, depth),
		pipeline.WithVertexShader(p.vertex),
		pipeline.WithFragmentShader(p.fragment),
		pipeline.WithBackfaceCulling(cull),
		pipeline.WithDepthTest(depth),
	)
}
