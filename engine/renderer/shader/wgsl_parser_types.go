package shader

import "github.com/cogentcore/webgpu/wgpu"

// vertexFormatInfo holds the wgpu vertex format and its byte size for offset calculation
type vertexFormatInfo struct {
	format wgpu.VertexFormat
	size   uint64
}

// wgslTypeLayout holds the byte size and alignment for a WGSL type.
// Used to compute MinBindingSize for buffer bindings and field offsets for the uniform table.
type wgslTypeLayout struct {
	size  uint64
	align uint64
}

// parsedField represents a single field extracted from a WGSL struct during parsing
type parsedField struct {
	name      string
	typeName  string
	location  int
	isBuiltin bool
}

// parsedStruct represents a WGSL struct block extracted during parsing
type parsedStruct struct {
	name   string
	fields []parsedField
}

// fieldLayout is a struct member placed at its aligned byte offset.
type fieldLayout struct {
	name   string
	offset uint64
	size   uint64
}

// UniformLocation locates one named shader input inside the buffers bound to a program.
// Fields of array elements carry the element stride so element i lives at Offset + i*Stride.
type UniformLocation struct {
	Group   int
	Binding int
	Offset  uint64
	Size    uint64
	Stride  uint64
}
