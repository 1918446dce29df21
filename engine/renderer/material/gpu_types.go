package material

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// GPUMaterialSource is the canonical WGSL definition of the Material struct.
// Matches GPUMaterial layout exactly (48 bytes).
//
//go:embed assets/material.wgsl
var GPUMaterialSource string

// GPUMaterial is the GPU-aligned representation of a Phong material.
// Matches the WGSL Material struct layout exactly (see GPUMaterialSource).
// Colors stay in the 0-255 range; the shaders normalize them.
// Size: 48 bytes.
type GPUMaterial struct {
	Ka        [3]float32 // offset  0: ambient reflectance
	Shininess float32    // offset 12: specular exponent
	Kd        [3]float32 // offset 16: diffuse reflectance
	_pad0     float32    // offset 28
	Ks        [3]float32 // offset 32: specular reflectance
	_pad1     float32    // offset 44
}

// Size returns the size of the GPUMaterial struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (48)
func (g *GPUMaterial) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterial struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload
func (g *GPUMaterial) Marshal() []byte {
	buf := make([]byte, g.Size())
	off := common.PutFloat32s(buf, 0, g.Ka[:]...)
	off = common.PutFloat32s(buf, off, g.Shininess)
	off = common.PutFloat32s(buf, off, g.Kd[:]...)
	off = common.PutFloat32s(buf, off, 0)
	off = common.PutFloat32s(buf, off, g.Ks[:]...)
	common.PutFloat32s(buf, off, 0)
	return buf
}
