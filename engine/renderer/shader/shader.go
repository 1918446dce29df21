package shader

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies which render stage a shader provides.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

// String returns the stage name.
func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderType(%d)", int(t))
	}
}

// renderVisibility is applied to every binding of a render shader. Both shading programs bind
// the same groups and read lights from different stages, so one set of bind groups serves both.
const renderVisibility = wgpu.ShaderStageVertex | wgpu.ShaderStageFragment

// ErrNoEntryPoint is returned when the source has no entry point for the requested stage.
var ErrNoEntryPoint = errors.New("shader: no entry point for stage")

// shader is the implementation of the Shader interface.
// It holds all of the persistent shader data required for pipeline creation and bind group wiring.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	vertexLayouts              map[int][]wgpu.VertexBufferLayout
	uniforms                   map[string]UniformLocation
	declarations               []Annotation
	entryPoint                 string
	module                     *wgpu.ShaderModuleDescriptor
}

// Shader is a pre-processed and parsed WGSL shader stage. It exposes the layout metadata the
// renderer needs to build pipelines and bind groups, and the named uniform table of the program.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the expanded WGSL source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// BindGroupLayoutDescriptor retrieves the bind group layout descriptor for a group index.
	//
	// Parameters:
	//   - bindingKey: the group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor, or an empty descriptor if not set
	BindGroupLayoutDescriptor(bindingKey int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors retrieves all parsed bind group layout descriptors keyed by group index.
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName retrieves the variable name declared at a group and binding, or "".
	BindGroupVarName(group, binding int) string

	// BindGroupFromVarName retrieves the binding index of a variable name within a group.
	//
	// Parameters:
	//   - group: the bind group index
	//   - varName: the variable name within the group
	//
	// Returns:
	//   - int: the binding index, or -1 if not found
	//   - bool: true if the variable name was found
	BindGroupFromVarName(group int, varName string) (int, bool)

	// VertexLayout retrieves the vertex buffer layout for a specific key, or nil.
	VertexLayout(key int) []wgpu.VertexBufferLayout

	// VertexLayouts retrieves all vertex buffer layouts. Fragment shaders return an empty map.
	VertexLayouts() map[int][]wgpu.VertexBufferLayout

	// Uniforms returns the named uniform table, keyed "var" and "var.member".
	//
	// Returns:
	//   - map[string]UniformLocation: every bound variable and struct member with its location
	Uniforms() map[string]UniformLocation

	// Uniform looks up a single uniform location by dotted name.
	//
	// Parameters:
	//   - name: e.g. "camera.mView" or "lights.kind"
	//
	// Returns:
	//   - UniformLocation: the location
	//   - bool: false if the program has no such input
	Uniform(name string) (UniformLocation, bool)

	// EntryPoint returns the entry point name for this shader's stage.
	EntryPoint() string

	// Module returns the wgpu.ShaderModuleDescriptor built from the expanded source.
	Module() *wgpu.ShaderModuleDescriptor

	// ShaderType returns the stage of the shader.
	ShaderType() ShaderType

	// Declarations returns the @oxy group and provider annotations found in the source.
	// The scene uses them to match bind groups with their owning providers.
	Declarations() []Annotation
}

var _ Shader = &shader{}

// ParseShader pre-processes and parses WGSL source for one stage.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - shaderType: the stage to extract from the source
//   - source: WGSL source, possibly containing @oxy annotations
//
// Returns:
//   - Shader: the parsed shader
//   - error: an annotation error, or ErrNoEntryPoint if the stage has no entry point
func ParseShader(key string, shaderType ShaderType, source string) (Shader, error) {
	pp := NewPreProcessor()
	expanded, err := pp.Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader: pre-processing %s: %w", key, err)
	}

	s := &shader{
		key:           key,
		source:        expanded,
		shaderType:    shaderType,
		vertexLayouts: make(map[int][]wgpu.VertexBufferLayout),
		declarations:  append([]Annotation(nil), pp.Declarations()...),
	}
	s.entryPoint = parseEntryPoint(expanded, shaderType)
	if s.entryPoint == "" {
		return nil, fmt.Errorf("%w: %s %s", ErrNoEntryPoint, key, shaderType)
	}
	s.module = &wgpu.ShaderModuleDescriptor{
		Label: key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: expanded,
		},
	}
	if shaderType == ShaderTypeVertex {
		s.vertexLayouts = parseVertexLayouts(expanded)
	}
	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(expanded, renderVisibility)
	s.uniforms = parseUniformTable(expanded)
	return s, nil
}

// NewShader is ParseShader for sources embedded at build time; it panics on failure.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - shaderType: the stage to extract from the source
//   - source: WGSL source, possibly containing @oxy annotations
//
// Returns:
//   - Shader: the parsed shader
func NewShader(key string, shaderType ShaderType, source string) Shader {
	s, err := ParseShader(key, shaderType, source)
	if err != nil {
		panic(err.Error())
	}
	return s
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexLayout(key int) []wgpu.VertexBufferLayout {
	return s.vertexLayouts[key]
}

func (s *shader) VertexLayouts() map[int][]wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) BindGroupLayoutDescriptor(bindingKey int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[bindingKey]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	return s.bindingVarNames[group][binding]
}

func (s *shader) BindGroupFromVarName(group int, varName string) (int, bool) {
	for binding, name := range s.bindingVarNames[group] {
		if name == varName {
			return binding, true
		}
	}
	return -1, false
}

func (s *shader) Uniforms() map[string]UniformLocation {
	return s.uniforms
}

func (s *shader) Uniform(name string) (UniformLocation, bool) {
	u, ok := s.uniforms[name]
	return u, ok
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) Declarations() []Annotation {
	return s.declarations
}
