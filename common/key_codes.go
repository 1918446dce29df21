package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyC   = 67  // C key (ASCII), toggle backface culling
	KeyP   = 80  // P key (ASCII), toggle Phong shading
	KeyR   = 82  // R key (ASCII), reset camera
	KeyT   = 84  // T key (ASCII), cycle selected light type
	KeyZ   = 90  // Z key (ASCII), toggle depth test
	KeyEsc = 256 // Escape key (GLFW)

	Key1 = 49 // 1 key (ASCII)
	Key2 = 50 // 2 key (ASCII)
	Key3 = 51 // 3 key (ASCII)
)

// Modifier bits as reported by GLFW with key, button and scroll events.
const (
	ModShift   = 0x0001
	ModControl = 0x0002
	ModAlt     = 0x0004
	ModSuper   = 0x0008
)
