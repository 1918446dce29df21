package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// wheelLineDelta converts one GLFW scroll step into a DOM-style wheel deltaY.
// GLFW reports +1 for scrolling up; browsers report roughly -100 for the same gesture.
const wheelLineDelta float32 = -100

// CameraController translates raw pointer and wheel input into Camera operations.
// Dragging with a mouse button held orbits, the bare wheel zooms, the wheel with
// super dollies the eye, and the wheel with ctrl dollies both eye and target.
type CameraController interface {
	// Camera returns the controlled camera.
	Camera() Camera

	// MouseDown starts a drag at the given cursor position.
	//
	// Parameters:
	//   - x, y: cursor position in pixels
	MouseDown(x, y float64)

	// MouseUp ends the current drag.
	MouseUp()

	// MouseMove orbits the camera by the delta since the last recorded position while
	// a drag is active. Without an active drag it does nothing.
	//
	// Parameters:
	//   - x, y: cursor position in pixels
	MouseMove(x, y float64)

	// Wheel applies a DOM-style wheel delta with the given modifier bits (common.Mod*).
	//
	// Parameters:
	//   - deltaY: wheel delta, positive away from the user
	//   - mods: modifier key bitmask
	Wheel(deltaY float32, mods int)

	// Scroll adapts a GLFW scroll event to Wheel.
	//
	// Parameters:
	//   - yoff: GLFW vertical scroll offset
	//   - mods: modifier key bitmask
	Scroll(yoff float64, mods int)

	// Dragging reports whether a drag is active.
	Dragging() bool
}

type cameraControllerImpl struct {
	mu *sync.Mutex

	cam   Camera
	down  bool
	lastX float64
	lastY float64
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller driving cam.
//
// Parameters:
//   - cam: the camera to drive
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(cam Camera) CameraController {
	if cam == nil {
		panic("camera: NewCameraController requires a non-nil Camera")
	}
	return &cameraControllerImpl{mu: &sync.Mutex{}, cam: cam}
}

func (cc *cameraControllerImpl) Camera() Camera {
	return cc.cam
}

func (cc *cameraControllerImpl) MouseDown(x, y float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.down = true
	cc.lastX, cc.lastY = x, y
}

func (cc *cameraControllerImpl) MouseUp() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.down = false
}

func (cc *cameraControllerImpl) MouseMove(x, y float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.down {
		return
	}
	dx := float32(x - cc.lastX)
	dy := float32(y - cc.lastY)
	if dx == 0 && dy == 0 {
		return
	}
	cc.cam.Orbit(dx, dy)
	cc.lastX, cc.lastY = x, y
}

func (cc *cameraControllerImpl) Wheel(deltaY float32, mods int) {
	alt := mods&common.ModAlt != 0
	super := mods&common.ModSuper != 0
	ctrl := mods&common.ModControl != 0

	switch {
	case !alt && !super && !ctrl:
		cc.cam.Zoom(deltaY)
	case super || ctrl:
		cc.cam.Dolly(deltaY, ctrl)
	}
}

func (cc *cameraControllerImpl) Scroll(yoff float64, mods int) {
	cc.Wheel(float32(yoff)*wheelLineDelta, mods)
}

func (cc *cameraControllerImpl) Dragging() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.down
}
