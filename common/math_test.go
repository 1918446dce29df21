package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestPerspectiveDepthRange(t *testing.T) {
	p := Perspective(90, 1, 0.1, 20)

	near := p.Mul4x1(mgl32.Vec4{0, 0, -0.1, 1})
	far := p.Mul4x1(mgl32.Vec4{0, 0, -20, 1})
	assert.InDelta(t, 0, near.Z()/near.W(), 1e-5)
	assert.InDelta(t, 1, far.Z()/far.W(), 1e-5)
}

func TestNormalMatrixUndoesNonUniformScale(t *testing.T) {
	mv := mgl32.Scale3D(10, 0.5, 10)
	n := NormalMatrix(mv)

	// A surface tilted 45 degrees in xy keeps a normal perpendicular to the scaled tangent.
	tangent := mv.Mul4x1(mgl32.Vec4{1, -1, 0, 0}).Vec3()
	normal := n.Mul4x1(mgl32.Vec4{1, 1, 0, 0}).Vec3()
	assert.InDelta(t, 0, tangent.Dot(normal), 1e-5)
	assert.Equal(t, float32(1), n[15])
}

func TestRotateZeroAxisIsIdentity(t *testing.T) {
	assert.Equal(t, mgl32.Ident4(), Rotate(30, mgl32.Vec3{}))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(1), Clamp(float32(0.2), 1, 179))
	assert.Equal(t, float32(179), Clamp(float32(400), 1, 179))
	assert.Equal(t, 5, Clamp(5, 0, 10))
}

func TestPutFloat32s(t *testing.T) {
	buf := make([]byte, 8)
	end := PutFloat32s(buf, 0, 1, 2)
	assert.Equal(t, 8, end)
	assert.Equal(t, []byte{0, 0, 0x80, 0x3f, 0, 0, 0, 0x40}, buf)
}
