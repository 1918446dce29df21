package light

import (
	_ "embed"
	"encoding/binary"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// GPULightSource is the canonical WGSL definition of the Light struct.
// Matches GPULight layout exactly (80 bytes, std430 aligned).
//
//go:embed assets/light.wgsl
var GPULightSource string

// GPULight is the GPU-aligned, view-space representation of a single light.
// Matches the WGSL Light struct layout exactly (see GPULightSource).
// Size: 80 bytes (std430 / WGSL aligned).
type GPULight struct {
	Position [4]float32 // offset  0: view-space position, w = 0 for directional lights
	Axis     [3]float32 // offset 16: view-space cone axis
	Kind     uint32     // offset 28: 0 = point, 1 = directional, 2 = spotlight
	Ambient  [3]float32 // offset 32: effective ambient intensity (0-255)
	Aperture float32    // offset 44: cone half-angle in degrees
	Diffuse  [3]float32 // offset 48: effective diffuse intensity (0-255)
	Cutoff   float32    // offset 60: cone falloff exponent
	Specular [3]float32 // offset 64: effective specular intensity (0-255)
	_pad     float32    // offset 76: padding to 80 bytes
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, g.Size())
	off := common.PutFloat32s(buf, 0, g.Position[:]...)
	off = common.PutFloat32s(buf, off, g.Axis[:]...)
	binary.LittleEndian.PutUint32(buf[off:], g.Kind)
	off = common.PutFloat32s(buf, off+4, g.Ambient[:]...)
	off = common.PutFloat32s(buf, off, g.Aperture)
	off = common.PutFloat32s(buf, off, g.Diffuse[:]...)
	off = common.PutFloat32s(buf, off, g.Cutoff)
	off = common.PutFloat32s(buf, off, g.Specular[:]...)
	common.PutFloat32s(buf, off, 0) // _pad
	return buf
}

// GPULightHeaderSource is the canonical WGSL definition of the LightHeader struct.
// Matches GPULightHeader layout exactly (16 bytes).
//
//go:embed assets/light_header.wgsl
var GPULightHeaderSource string

// GPULightHeader precedes the light array and bounds the shader's light loop.
// Size: 16 bytes (u32 padded to a 16-byte uniform slot).
type GPULightHeader struct {
	LightCount uint32    // offset 0: number of lights in the array
	_pad       [3]uint32 // offset 4: padding to 16 bytes
}

// Size returns the size of the GPULightHeader struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (h *GPULightHeader) Size() int {
	return int(unsafe.Sizeof(*h))
}

// Marshal serializes the GPULightHeader struct into a byte buffer suitable for
// GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload
func (h *GPULightHeader) Marshal() []byte {
	buf := make([]byte, h.Size())
	binary.LittleEndian.PutUint32(buf[0:4], h.LightCount)
	return buf
}

// FrameLights is the per-frame light uniform data: the header and one GPULight per slot.
type FrameLights struct {
	Header GPULightHeader
	Lights []GPULight
}

// MarshalLights serializes the light array (without the header) for the storage binding.
//
// Returns:
//   - []byte: len(Lights) * 80 bytes
func (f *FrameLights) MarshalLights() []byte {
	lightSize := (&GPULight{}).Size()
	buf := make([]byte, 0, len(f.Lights)*lightSize)
	for i := range f.Lights {
		buf = append(buf, f.Lights[i].Marshal()...)
	}
	return buf
}
