package model

import (
	_ "embed"
	"encoding/binary"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct shared by both shading programs.
// Matches GPUVertex layout exactly (24 bytes, tightly packed vertex buffer).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Matches the WGSL VertexInput struct layout exactly (see GPUVertexSource).
// Size: 24 bytes.
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12: unit vertex normal (12 bytes)
}

// NewGPUVertex packs a position and normal into a GPUVertex.
//
// Parameters:
//   - pos: model-space position
//   - normal: unit normal
//
// Returns:
//   - GPUVertex: the packed vertex
func NewGPUVertex(pos, normal mgl32.Vec3) GPUVertex {
	return GPUVertex{Position: [3]float32(pos), Normal: [3]float32(normal)}
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 24-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, g.Size())
	off := common.PutFloat32s(buf, 0, g.Position[:]...)
	common.PutFloat32s(buf, off, g.Normal[:]...)
	return buf
}

// MarshalVertices serializes a vertex slice into one contiguous vertex buffer.
func MarshalVertices(vertices []GPUVertex) []byte {
	var v GPUVertex
	stride := v.Size()
	buf := make([]byte, 0, len(vertices)*stride)
	for i := range vertices {
		buf = append(buf, vertices[i].Marshal()...)
	}
	return buf
}

// MarshalIndices serializes a uint32 index slice into a little-endian index buffer.
func MarshalIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}
