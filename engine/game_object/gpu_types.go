package game_object

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUDrawUniformSource is the canonical WGSL definition of the DrawUniform struct.
// Matches GPUDrawUniform layout exactly (128 bytes).
//
//go:embed assets/draw_uniform.wgsl
var GPUDrawUniformSource string

// GPUDrawUniform is the per-draw transform block: the object's model-view matrix and its
// normal transform, both column-major.
// Size: 128 bytes.
type GPUDrawUniform struct {
	ModelView [16]float32 // offset  0: model-view matrix
	Normals   [16]float32 // offset 64: inverse-transpose of the model-view linear part
}

// NewGPUDrawUniform packs a model-view matrix and the normal matrix derived from it.
//
// Parameters:
//   - modelView: the object's model-view matrix
//
// Returns:
//   - GPUDrawUniform: the packed uniform
func NewGPUDrawUniform(modelView mgl32.Mat4) GPUDrawUniform {
	return GPUDrawUniform{
		ModelView: [16]float32(modelView),
		Normals:   [16]float32(common.NormalMatrix(modelView)),
	}
}

// Size returns the size of the GPUDrawUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (128)
func (g *GPUDrawUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUDrawUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 128-byte buffer ready for GPU upload
func (g *GPUDrawUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	off := common.PutFloat32s(buf, 0, g.ModelView[:]...)
	common.PutFloat32s(buf, off, g.Normals[:]...)
	return buf
}
