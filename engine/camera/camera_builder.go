package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraBuilderOption is a functional option for configuring a Camera.
// Options write the reset snapshot, which NewCamera then copies into the live state.
type CameraBuilderOption func(*cameraImpl)

// WithEye sets the camera's default position.
//
// Parameters:
//   - x, y, z: eye position
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's eye
func WithEye(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.defaults.Eye = mgl32.Vec3{x, y, z}
	}
}

// WithAt sets the camera's default look-at target.
//
// Parameters:
//   - x, y, z: target position
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's target
func WithAt(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.defaults.At = mgl32.Vec3{x, y, z}
	}
}

// WithUp sets the camera's default up vector.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.defaults.Up = mgl32.Vec3{x, y, z}
	}
}

// WithFovy sets the camera's default vertical field of view in degrees.
//
// Parameters:
//   - fovy: field of view in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFovy(fovy float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.defaults.Fovy = fovy
	}
}

// WithAspect sets the camera's initial aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.defaults.Aspect = aspect
	}
}

// WithNearFar sets the camera's default clipping planes.
// Near is pulled down if it sits within MinDepthSeparation of far.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the clipping planes
func WithNearFar(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.defaults.Near = near
		c.defaults.Far = far
	}
}

// WithDefaults replaces the whole reset snapshot.
func WithDefaults(d Defaults) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.defaults = d
	}
}
