package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVecInDelta(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], delta, "component %d", i)
	}
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, mgl32.Vec3{0, 5.5, 9}, c.Eye())
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, c.At())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c.Up())
	assert.Equal(t, float32(90), c.Fovy())
	assert.Equal(t, float32(1), c.Aspect())
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(20), c.Far())
}

func TestNewCameraOptions(t *testing.T) {
	c := NewCamera(
		WithEye(3, 4, 5),
		WithAt(0, 1, 0),
		WithUp(0, 0, 1),
		WithFovy(400),
		WithAspect(1.5),
		WithNearFar(9.8, 10),
	)
	assert.Equal(t, mgl32.Vec3{3, 4, 5}, c.Eye())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c.At())
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, c.Up())
	assert.Equal(t, MaxFovy, c.Fovy())
	assert.Equal(t, float32(1.5), c.Aspect())
	assert.InDelta(t, 9.5, c.Near(), 1e-6)
	assert.Equal(t, float32(10), c.Far())

	// The options define the reset snapshot, not just the initial state.
	c.SetEye(mgl32.Vec3{})
	c.Reset()
	assert.Equal(t, mgl32.Vec3{3, 4, 5}, c.Eye())
}

func TestNearFarSeparation(t *testing.T) {
	tests := []struct {
		name  string
		edits func(c Camera)
	}{
		{"raise near past far", func(c Camera) { c.SetNear(25) }},
		{"lower far below near", func(c Camera) { c.SetFar(0) }},
		{"near then far", func(c Camera) { c.SetNear(10); c.SetFar(5) }},
		{"far then near", func(c Camera) { c.SetFar(3); c.SetNear(3) }},
		{"negative near", func(c Camera) { c.SetNear(-3) }},
		{"oversized far", func(c Camera) { c.SetFar(500) }},
		{"negative near and oversized far", func(c Camera) { c.SetNear(-3); c.SetFar(500) }},
		{"alternating", func(c Camera) {
			for i := range 20 {
				c.SetNear(float32(i))
				c.SetFar(float32(20 - i))
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera()
			tt.edits(c)
			assert.LessOrEqual(t, c.Near(), c.Far()-MinDepthSeparation+1e-6)
			assert.GreaterOrEqual(t, c.Near(), MinNear)
			assert.LessOrEqual(t, c.Far(), MaxFar)
		})
	}
}

func TestClampDepth(t *testing.T) {
	tests := []struct {
		name              string
		near, far         float32
		wantNear, wantFar float32
	}{
		{"in range", 1, 10, 1, 10},
		{"zero near", 0, 10, MinNear, 10},
		{"negative near", -3, 10, MinNear, 10},
		{"oversized far", 1, 500, 1, MaxFar},
		{"near past far", 15, 10, 9.5, 10},
		{"far below minimum", 0.1, 0, MinNear, 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			near, far := ClampDepth(tt.near, tt.far)
			assert.InDelta(t, tt.wantNear, near, 1e-6)
			assert.InDelta(t, tt.wantFar, far, 1e-6)
		})
	}
}

func TestNewCameraClampsDepth(t *testing.T) {
	c := NewCamera(WithNearFar(-1, 100))
	assert.Equal(t, MinNear, c.Near())
	assert.Equal(t, MaxFar, c.Far())
	assert.Equal(t, MinNear, c.Defaults().Near)
}

func TestSetNearClampsToFar(t *testing.T) {
	c := NewCamera()
	c.SetNear(19.9)
	assert.InDelta(t, 19.5, c.Near(), 1e-6)
	c.SetFar(1)
	assert.InDelta(t, 20, c.Far(), 1e-6)
}

func TestFovyClamp(t *testing.T) {
	c := NewCamera()
	c.SetFovy(500)
	assert.Equal(t, MaxFovy, c.Fovy())
	c.SetFovy(-3)
	assert.Equal(t, MinFovy, c.Fovy())

	for range 100 {
		c.Zoom(-900)
	}
	assert.Equal(t, MaxFovy, c.Fovy())
	for range 100 {
		c.Zoom(900)
	}
	assert.Equal(t, MinFovy, c.Fovy())
}

func TestZoomScenario(t *testing.T) {
	c := NewCamera()
	c.Zoom(-100)
	assert.InDelta(t, 99, c.Fovy(), 1e-4)
}

func TestReset(t *testing.T) {
	c := NewCamera()
	c.SetEye(mgl32.Vec3{1, 2, 3})
	c.SetAt(mgl32.Vec3{4, 5, 6})
	c.SetUp(mgl32.Vec3{1, 0, 0})
	c.SetFovy(30)
	c.SetFar(15)
	c.SetNear(2)
	c.SetAspect(2)

	c.Reset()
	d := c.Defaults()
	assert.Equal(t, d.Eye, c.Eye())
	assert.Equal(t, d.At, c.At())
	assert.Equal(t, d.Up, c.Up())
	assert.Equal(t, d.Fovy, c.Fovy())
	assert.Equal(t, d.Near, c.Near())
	assert.Equal(t, d.Far, c.Far())
	assert.Equal(t, float32(2), c.Aspect())
}

func TestOrbitPreservesRadius(t *testing.T) {
	c := NewCamera()
	before := c.Eye()
	radius := before.Sub(c.At()).Len()

	c.Orbit(10, 0)

	after := c.Eye()
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, c.At())
	assert.InDelta(t, radius, after.Sub(c.At()).Len(), 1e-4)
	assert.NotEqual(t, before.Y(), after.Y())
	assert.NotEqual(t, before.Z(), after.Z())
	assert.InDelta(t, 1, c.Up().Len(), 1e-5)
}

func TestOrbitVerticalDragTiltsInViewPlane(t *testing.T) {
	c := NewCamera()
	radius := c.Eye().Len()

	c.Orbit(0, 20)

	after := c.Eye()
	assert.InDelta(t, 0, after.X(), 1e-4)
	assert.InDelta(t, radius, after.Len(), 1e-4)
	assert.InDelta(t, 0, c.Up().X(), 1e-5)
	assert.InDelta(t, 1, c.Up().Len(), 1e-5)
}

func TestOrbitZeroDeltaIsNoop(t *testing.T) {
	c := NewCamera()
	c.Orbit(0, 0)
	assert.Equal(t, mgl32.Vec3{0, 5.5, 9}, c.Eye())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c.Up())
}

func TestDolly(t *testing.T) {
	c := NewCamera()
	dir := c.At().Sub(c.Eye()).Normalize()

	c.Dolly(1000, false)
	assertVecInDelta(t, mgl32.Vec3{0, 5.5, 9}.Add(dir), c.Eye(), 1e-5)
	assert.Equal(t, mgl32.Vec3{}, c.At())

	c.Dolly(-500, true)
	assertVecInDelta(t, dir.Mul(-0.5), c.At(), 1e-5)
}

func TestViewMatrixMapsEyeToOrigin(t *testing.T) {
	c := NewCamera()
	p := c.ViewMatrix().Mul4x1(c.Eye().Vec4(1))
	assertVecInDelta(t, mgl32.Vec3{}, p.Vec3(), 1e-5)

	target := c.ViewMatrix().Mul4x1(c.At().Vec4(1))
	assert.Less(t, target.Z(), float32(0))
}

func TestUniformMarshal(t *testing.T) {
	c := NewCamera()
	u := c.Uniform()
	require.Equal(t, 128, u.Size())
	buf := u.Marshal()
	assert.Len(t, buf, 128)
	assert.Equal(t, c.ViewMatrix(), mgl32.Mat4(u.View))
}

func TestControllerDragOrbits(t *testing.T) {
	c := NewCamera()
	cc := NewCameraController(c)

	cc.MouseMove(50, 50)
	assert.Equal(t, mgl32.Vec3{0, 5.5, 9}, c.Eye(), "no drag without a button held")

	cc.MouseDown(50, 50)
	cc.MouseMove(60, 50)
	assert.NotEqual(t, mgl32.Vec3{0, 5.5, 9}, c.Eye())
	assert.True(t, cc.Dragging())

	cc.MouseUp()
	moved := c.Eye()
	cc.MouseMove(100, 100)
	assert.Equal(t, moved, c.Eye())
}

func TestControllerWheelModifiers(t *testing.T) {
	tests := []struct {
		name     string
		mods     int
		wantFovy float32
		wantAt   bool
		wantEye  bool
	}{
		{name: "bare wheel zooms", mods: 0, wantFovy: 99},
		{name: "super dollies eye", mods: 0x0008, wantFovy: 90, wantEye: true},
		{name: "ctrl dollies eye and target", mods: 0x0002, wantFovy: 90, wantEye: true, wantAt: true},
		{name: "alt is ignored", mods: 0x0004, wantFovy: 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera()
			cc := NewCameraController(c)
			cc.Scroll(1, tt.mods)

			assert.InDelta(t, tt.wantFovy, c.Fovy(), 1e-4)
			assert.Equal(t, tt.wantEye, c.Eye() != mgl32.Vec3{0, 5.5, 9})
			assert.Equal(t, tt.wantAt, c.At() != mgl32.Vec3{})
		})
	}
}
