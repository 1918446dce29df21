package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MinFovy and MaxFovy bound the vertical field of view in degrees.
	MinFovy float32 = 1
	MaxFovy float32 = 179

	// MinDepthSeparation is the smallest allowed gap between the near and far planes.
	MinDepthSeparation float32 = 0.5

	// MinNear and MaxFar bound the clipping planes.
	MinNear float32 = 0.1
	MaxFar  float32 = 20

	// OrbitDegreesPerPixel scales the length of a drag delta into an orbit angle.
	OrbitDegreesPerPixel float32 = 0.5

	// WheelScale converts a wheel delta into a fovy factor or a dolly distance.
	WheelScale float32 = 1.0 / 1000.0
)

// Defaults is the immutable snapshot a Camera resets to.
type Defaults struct {
	Eye    mgl32.Vec3
	At     mgl32.Vec3
	Up     mgl32.Vec3
	Fovy   float32
	Aspect float32
	Near   float32
	Far    float32
}

// DefaultSettings returns the viewer's stock camera: looking at the origin from above and behind.
func DefaultSettings() Defaults {
	return Defaults{
		Eye:    mgl32.Vec3{0, 5.5, 9},
		At:     mgl32.Vec3{0, 0, 0},
		Up:     mgl32.Vec3{0, 1, 0},
		Fovy:   90,
		Aspect: 1,
		Near:   0.1,
		Far:    20,
	}
}

type cameraImpl struct {
	mu *sync.Mutex

	eye mgl32.Vec3
	at  mgl32.Vec3
	up  mgl32.Vec3

	fovy   float32
	aspect float32
	near   float32
	far    float32

	defaults Defaults
}

// Camera is a look-at perspective camera. All edits clamp at the edit boundary so that
// fovy stays within [MinFovy, MaxFovy] and near stays at least MinDepthSeparation below far.
// Thread-safe for concurrent access.
type Camera interface {
	// Eye returns the camera position.
	Eye() mgl32.Vec3

	// At returns the look-at target.
	At() mgl32.Vec3

	// Up returns the up vector.
	Up() mgl32.Vec3

	// Fovy returns the vertical field of view in degrees.
	Fovy() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// Defaults returns the snapshot Reset restores. It never changes after NewCamera.
	Defaults() Defaults

	// SetEye sets the camera position.
	SetEye(eye mgl32.Vec3)

	// SetAt sets the look-at target.
	SetAt(at mgl32.Vec3)

	// SetUp sets the up vector.
	SetUp(up mgl32.Vec3)

	// SetFovy sets the vertical field of view, clamped to [MinFovy, MaxFovy].
	//
	// Parameters:
	//   - fovy: field of view in degrees
	SetFovy(fovy float32)

	// SetAspect sets the aspect ratio. Only viewport resizes should call this.
	SetAspect(aspect float32)

	// SetNear sets the near plane, clamped to [MinNear, far - MinDepthSeparation].
	//
	// Parameters:
	//   - near: requested near plane distance
	SetNear(near float32)

	// SetFar sets the far plane, clamped to [near + MinDepthSeparation, MaxFar].
	//
	// Parameters:
	//   - far: requested far plane distance
	SetFar(far float32)

	// Reset restores eye, at, up, fovy, near and far from the defaults snapshot.
	// Aspect is left alone since it tracks the viewport.
	Reset()

	// Orbit rotates eye-at and up about the screen-space axis (-dy, -dx, 0), expressed in
	// camera space, by OrbitDegreesPerPixel per pixel of |(dx, dy)|. The target stays fixed
	// and the eye-target distance is preserved.
	//
	// Parameters:
	//   - dx, dy: cursor delta in pixels
	Orbit(dx, dy float32)

	// Dolly moves the eye along the normalized view direction by deltaY * WheelScale.
	//
	// Parameters:
	//   - deltaY: wheel delta
	//   - moveTarget: also move the look-at target by the same offset
	Dolly(deltaY float32, moveTarget bool)

	// Zoom scales fovy by (1 - deltaY * WheelScale), clamped to [MinFovy, MaxFovy].
	//
	// Parameters:
	//   - deltaY: wheel delta
	Zoom(deltaY float32)

	// ViewMatrix returns the look-at matrix for the current eye, at and up.
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the perspective matrix for WebGPU clip space.
	ProjectionMatrix() mgl32.Mat4

	// Uniform returns the GPU camera uniform for the current state.
	//
	// Returns:
	//   - GPUCameraUniform: view and projection matrices
	Uniform() GPUCameraUniform
}

var _ Camera = &cameraImpl{}

// ClampDepth fits a near/far pair into [MinNear, MaxFar] with at least MinDepthSeparation
// between them. Far is settled first, then near is pulled below it.
//
// Parameters:
//   - near: requested near plane distance
//   - far: requested far plane distance
//
// Returns:
//   - float32: the clamped near plane
//   - float32: the clamped far plane
func ClampDepth(near, far float32) (float32, float32) {
	far = common.Clamp(far, MinNear+MinDepthSeparation, MaxFar)
	near = common.Clamp(near, MinNear, far-MinDepthSeparation)
	return near, far
}

// NewCamera creates a new Camera starting from DefaultSettings. Options override both the
// live state and the reset snapshot.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		defaults: DefaultSettings(),
	}
	for _, option := range options {
		option(c)
	}
	c.defaults.Fovy = common.Clamp(c.defaults.Fovy, MinFovy, MaxFovy)
	c.defaults.Near, c.defaults.Far = ClampDepth(c.defaults.Near, c.defaults.Far)
	c.aspect = c.defaults.Aspect
	c.reset()
	return c
}

func (c *cameraImpl) Eye() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eye
}

func (c *cameraImpl) At() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.at
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Fovy() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fovy
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Defaults() Defaults {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.defaults
}

func (c *cameraImpl) SetEye(eye mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eye = eye
}

func (c *cameraImpl) SetAt(at mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.at = at
}

func (c *cameraImpl) SetUp(up mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
}

func (c *cameraImpl) SetFovy(fovy float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fovy = common.Clamp(fovy, MinFovy, MaxFovy)
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = common.Clamp(near, MinNear, c.far-MinDepthSeparation)
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = common.Clamp(far, c.near+MinDepthSeparation, MaxFar)
}

func (c *cameraImpl) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

func (c *cameraImpl) Orbit(dx, dy float32) {
	if dx == 0 && dy == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	angle := OrbitDegreesPerPixel * math32.Sqrt(dx*dx+dy*dy)
	view := common.LookAt(c.eye, c.at, c.up)
	inCameraSpace := view.Inv().Mul4(common.Rotate(angle, mgl32.Vec3{-dy, -dx, 0})).Mul4(view)

	eyeAt := inCameraSpace.Mul4x1(c.eye.Sub(c.at).Vec4(0)).Vec3()
	c.up = inCameraSpace.Mul4x1(c.up.Vec4(0)).Vec3()
	c.eye = c.at.Add(eyeAt)
}

func (c *cameraImpl) Dolly(deltaY float32, moveTarget bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dir := c.at.Sub(c.eye)
	if dir.Len() == 0 {
		return
	}
	offset := dir.Normalize().Mul(deltaY * WheelScale)
	c.eye = c.eye.Add(offset)
	if moveTarget {
		c.at = c.at.Add(offset)
	}
}

func (c *cameraImpl) Zoom(deltaY float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fovy = common.Clamp(c.fovy*(1-deltaY*WheelScale), MinFovy, MaxFovy)
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.LookAt(c.eye, c.at, c.up)
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.Perspective(c.fovy, c.aspect, c.near, c.far)
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return GPUCameraUniform{
		View:       common.LookAt(c.eye, c.at, c.up),
		Projection: common.Perspective(c.fovy, c.aspect, c.near, c.far),
	}
}

// reset copies the defaults snapshot into the live state field by field.
// Caller must hold the mutex.
func (c *cameraImpl) reset() {
	d := c.defaults
	c.eye = d.Eye
	c.at = d.At
	c.up = d.Up
	c.fovy = d.Fovy
	c.near = d.Near
	c.far = d.Far
}
