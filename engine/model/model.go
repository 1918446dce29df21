package model

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
)

// model is the implementation of the Model interface.
type model struct {
	name                  string
	vertices              []GPUVertex
	indices               []uint32
	meshProvider          bind_group_provider.BindGroupProvider
	boundsMin, boundsMax  mgl32.Vec3
	vertexData, indexData []byte
}

// Model defines the interface for a drawable triangle mesh.
// A Model holds CPU-side vertices and indices plus the BindGroupProvider that owns
// the uploaded vertex and index buffers once the renderer has registered it.
// The scene treats a Model as an opaque geometry provider.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Vertices retrieves the CPU-side vertex list.
	//
	// Returns:
	//   - []GPUVertex: the vertices
	Vertices() []GPUVertex

	// Indices retrieves the CPU-side triangle list (counter-clockwise front faces).
	//
	// Returns:
	//   - []uint32: the indices
	Indices() []uint32

	// VertexData returns the marshaled vertex buffer for this model's mesh.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the marshaled uint32 index buffer for this model's mesh.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of indices in the model's mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// Bounds returns the axis-aligned bounding box of the mesh in model space.
	//
	// Returns:
	//   - mgl32.Vec3: the minimum corner
	//   - mgl32.Vec3: the maximum corner
	Bounds() (mgl32.Vec3, mgl32.Vec3)

	// MeshProvider retrieves the BindGroupProvider holding GPU mesh resources.
	// Returns nil until the renderer has uploaded the mesh.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// SetMeshProvider assigns the BindGroupProvider holding the uploaded mesh buffers.
	//
	// Parameters:
	//   - provider: the mesh provider
	SetMeshProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
// Vertex and index buffers are marshaled once here.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	m.boundsMin, m.boundsMax = Bounds(m.vertices)
	m.vertexData = MarshalVertices(m.vertices)
	m.indexData = MarshalIndices(m.indices)
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Vertices() []GPUVertex {
	return m.vertices
}

func (m *model) Indices() []uint32 {
	return m.indices
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) IndexCount() int {
	return len(m.indices)
}

func (m *model) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	return m.boundsMin, m.boundsMax
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) SetMeshProvider(provider bind_group_provider.BindGroupProvider) {
	m.meshProvider = provider
}
