package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling for the viewer.
// Input is delivered raw (cursor pixels, wheel offsets, modifier bits); mapping it to camera
// and option changes is the session's job.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse wheel events.
	//
	// Parameters:
	//   - callback: function receiving the vertical wheel offset (positive = away from the user)
	//     and the modifier bits held at the time (common.ModControl, common.ModAlt, common.ModSuper)
	SetScrollCallback(callback func(yoff float64, mods int))

	// SetKeyDownCallback sets the callback for key press events. Repeats are not reported.
	//
	// Parameters:
	//   - callback: function receiving the key code and modifier bits
	SetKeyDownCallback(callback func(keyCode uint32, mods int))

	// SetMouseDownCallback sets the callback for a mouse button press of any button.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in pixels
	SetMouseDownCallback(callback func(x, y float64))

	// SetMouseUpCallback sets the callback for a mouse button release of any button.
	SetMouseUpCallback(callback func(x, y float64))

	// SetMouseMoveCallback sets the callback for cursor movement.
	SetMouseMoveCallback(callback func(x, y float64))

	// SurfaceDescriptor returns a platform-appropriate wgpu.SurfaceDescriptor created by the
	// wgpuglfw bridge from the underlying GLFW window, or nil if the window is not initialized.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop until the window is closed,
	// calling the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	title string

	// minimum and maximum client sizes enforced by the platform during resize
	minWidth, minHeight int
	maxWidth, maxHeight int

	// width and height are the current framebuffer size in pixels.
	width  int
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate    func()
	onResize    func(width, height int)
	onScroll    func(yoff float64, mods int)
	onKeyDown   func(keyCode uint32, mods int)
	onMouseDown func(x, y float64)
	onMouseUp   func(x, y float64)
	onMouseMove func(x, y float64)
}

var _ Window = &engineWindow{}

// NewWindow creates and spawns a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     "oxy-viewer",
		minWidth:  200,
		minHeight: 200,
		maxWidth:  3840,
		maxHeight: 2160,
		width:     1024,
		height:    768,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("window: failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(yoff float64, mods int)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32, mods int)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetMouseDownCallback(callback func(x, y float64)) {
	w.onMouseDown = callback
}

func (w *engineWindow) SetMouseUpCallback(callback func(x, y float64)) {
	w.onMouseUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y float64)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
