package bind_group_provider

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrGroupConflict is returned by Arrange when two providers claim the same group index.
	ErrGroupConflict = errors.New("bind_group_provider: group index bound twice")

	// ErrGroupGap is returned by Arrange when a group below the highest index has no provider.
	ErrGroupGap = errors.New("bind_group_provider: missing provider for group")
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is used in GPU object labels for debugging.
	label string
	// group is the @group index the bind group is set at.
	group int

	// The fields below are GPU resources populated by the Renderer and freed by Release.

	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout
	// ownsLayout is false when the layout was borrowed through WithBindGroupLayout.
	ownsLayout bool
	// buffers holds the uniform and storage buffers keyed by binding index.
	buffers map[int]*wgpu.Buffer

	// Mesh providers carry vertex and index buffers instead of a bind group.

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int
}

// BindGroupProvider owns the GPU resources behind one bind group or one mesh.
//
// The scene holds a camera provider, a lights provider and one provider per entry (material
// plus draw uniforms); the loader holds one mesh provider per model. Renderer.InitBindGroup
// and Renderer.InitMeshBuffers fill in the GPU objects, BufferWrites update them each frame,
// and Renderer.DrawCall binds them in the order Arrange produces.
type BindGroupProvider interface {
	// Release frees every GPU resource held by this provider.
	Release()

	// Label returns the debug label for this provider.
	Label() string

	// Group returns the @group index this provider binds at.
	Group() int

	// BindGroup returns the created bind group, or nil before InitBindGroup.
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the layout the bind group was created with, or nil.
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the buffer at a binding index, or nil.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer, or nil if not created
	Buffer(binding int) *wgpu.Buffer

	// Buffers returns all buffers keyed by binding index.
	Buffers() map[int]*wgpu.Buffer

	// VertexBuffer returns the mesh vertex buffer, or nil.
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the mesh index buffer, or nil.
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices drawn for the mesh.
	IndexCount() int

	// SetBindGroup sets the bind group.
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBindGroupLayout sets the bind group layout.
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetBuffer sets the buffer for a binding index.
	//
	// Parameters:
	//   - binding: the binding index
	//   - buf: the buffer
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetVertexBuffer sets the mesh vertex buffer.
	SetVertexBuffer(buf *wgpu.Buffer)

	// SetIndexBuffer sets the mesh index buffer.
	SetIndexBuffer(buf *wgpu.Buffer)

	// SetIndexCount sets the number of indices for draw calls.
	//
	// Parameters:
	//   - count: the index count
	SetIndexCount(count int)
}

// Compile-time check that bindGroupProvider implements BindGroupProvider
var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new BindGroupProvider with the provided options.
//
// Parameters:
//   - label: the debug label used for GPU objects
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - BindGroupProvider: a new instance of BindGroupProvider configured with the provided options
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:   label,
		buffers: make(map[int]*wgpu.Buffer),
	}
	for _, opt := range options {
		opt(p)
	}
	if p.group < 0 {
		panic(fmt.Sprintf("bind_group_provider: negative group %d for %q", p.group, label))
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) Group() int {
	return p.group
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) Buffers() map[int]*wgpu.Buffer {
	return p.buffers
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
	p.ownsLayout = bgl != nil
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer) {
	p.vertexBuffer = buf
}

func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer) {
	p.indexBuffer = buf
}

func (p *bindGroupProvider) SetIndexCount(count int) {
	p.indexCount = count
}

func (p *bindGroupProvider) Release() {
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil && p.ownsLayout {
		p.bindGroupLayout.Release()
	}
	p.bindGroupLayout = nil
	p.ownsLayout = false
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.indexCount = 0
}

// Arrange places providers at their group index so the result can be bound in slice order.
// dst is reused when it has capacity.
//
// Parameters:
//   - dst: a scratch slice to reuse; its contents are discarded
//   - providers: the providers for one draw call, in any order
//
// Returns:
//   - []BindGroupProvider: providers indexed by group
//   - error: ErrGroupConflict or ErrGroupGap
func Arrange(dst []BindGroupProvider, providers ...BindGroupProvider) ([]BindGroupProvider, error) {
	n := 0
	for _, p := range providers {
		n = max(n, p.Group()+1)
	}
	dst = dst[:0]
	for range n {
		dst = append(dst, nil)
	}
	for _, p := range providers {
		if dst[p.Group()] != nil {
			return nil, fmt.Errorf("%w: group %d (%s, %s)", ErrGroupConflict, p.Group(), dst[p.Group()].Label(), p.Label())
		}
		dst[p.Group()] = p
	}
	for i, p := range dst {
		if p == nil {
			return nil, fmt.Errorf("%w: %d", ErrGroupGap, i)
		}
	}
	return dst, nil
}
