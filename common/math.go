package common

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// clipDepthCorrection remaps OpenGL clip depth [-1, 1] into WebGPU clip depth [0, 1].
// Column-major.
var clipDepthCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Perspective creates a perspective projection matrix for WebGPU clip space [0, 1].
//
// Parameters:
//   - fovyDeg: vertical field of view in degrees
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovyDeg, aspect, near, far float32) mgl32.Mat4 {
	return clipDepthCorrection.Mul4(mgl32.Perspective(mgl32.DegToRad(fovyDeg), aspect, near, far))
}

// LookAt creates a right-handed view matrix looking from eye toward at.
// The result is undefined when eye == at or up is parallel to the view direction.
//
// Parameters:
//   - eye: camera position
//   - at: look-at target
//   - up: up direction
//
// Returns:
//   - mgl32.Mat4: the column-major view matrix
func LookAt(eye, at, up mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(eye, at, up)
}

// Rotate creates a rotation of angleDeg degrees about axis.
// A zero-length axis yields the identity.
//
// Parameters:
//   - angleDeg: rotation angle in degrees
//   - axis: rotation axis (need not be normalized)
//
// Returns:
//   - mgl32.Mat4: the rotation matrix
func Rotate(angleDeg float32, axis mgl32.Vec3) mgl32.Mat4 {
	if axis.Len() == 0 {
		return mgl32.Ident4()
	}
	return mgl32.HomogRotate3D(mgl32.DegToRad(angleDeg), axis.Normalize())
}

// NormalMatrix returns the inverse-transpose of the upper 3x3 of a model-view matrix,
// embedded in a 4x4 with the remaining entries taken from the identity.
// A singular linear part yields the zero 3x3 (mgl32 convention).
//
// Parameters:
//   - modelView: the model-view matrix
//
// Returns:
//   - mgl32.Mat4: the normal transform
func NormalMatrix(modelView mgl32.Mat4) mgl32.Mat4 {
	return modelView.Mat3().Inv().Transpose().Mat4()
}

// PutFloat32s writes vals into buf as little-endian float32s starting at offset.
//
// Parameters:
//   - buf: destination buffer
//   - offset: byte offset into buf
//   - vals: values to write
//
// Returns:
//   - int: the byte offset just past the last written value
func PutFloat32s(buf []byte, offset int, vals ...float32) int {
	for _, v := range vals {
		binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(v))
		offset += 4
	}
	return offset
}
