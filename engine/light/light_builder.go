package light

import "github.com/go-gl/mathgl/mgl32"

// LightBuilderOption is a functional option for configuring a Light.
// Use the With* functions to create options.
type LightBuilderOption func(*lightImpl)

// WithPosition sets the light's world-space position (or direction toward the light for
// directional lights).
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = mgl32.Vec3{x, y, z}
	}
}

// WithIntensities sets the ambient, diffuse and specular intensities as 0-255 RGB triples.
//
// Parameters:
//   - ambient, diffuse, specular: intensity triples
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithIntensities(ambient, diffuse, specular mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.ambient, l.diffuse, l.specular = ambient, diffuse, specular
	}
}

// WithAxis sets the spotlight cone axis.
//
// Parameters:
//   - x, y, z: axis components
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithAxis(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.axis = mgl32.Vec3{x, y, z}
	}
}

// WithCone sets the aperture (half-angle in degrees) and cutoff (falloff exponent).
// Both are clamped to [0, MaxConeParam].
//
// Parameters:
//   - aperture: cone half-angle in degrees
//   - cutoff: falloff exponent
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithCone(aperture, cutoff float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.SetAperture(aperture)
		l.SetCutoff(cutoff)
	}
}

// WithEnabled sets whether the light starts switched on.
//
// Parameters:
//   - enabled: whether the light is on
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}
