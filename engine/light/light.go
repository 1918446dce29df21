package light

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source. The numeric value is the type code
// the shaders receive.
type LightType uint32

const (
	// LightTypePoint emits in all directions from its position.
	LightTypePoint LightType = iota

	// LightTypeDirectional is a light at infinity. Its position is read as a direction.
	LightTypeDirectional

	// LightTypeSpotlight emits in a cone around its axis from its position.
	LightTypeSpotlight
)

// MaxConeParam bounds aperture and cutoff.
const MaxConeParam float32 = 150

var lightTypeNames = [...]string{
	LightTypePoint:       "Point",
	LightTypeDirectional: "Directional",
	LightTypeSpotlight:   "Spotlight",
}

// String returns the display name of the light type.
func (t LightType) String() string {
	if int(t) < len(lightTypeNames) {
		return lightTypeNames[t]
	}
	return fmt.Sprintf("LightType(%d)", uint32(t))
}

// W returns the homogeneous w coordinate for positions of this light type:
// 0 for directional lights (a point at infinity), 1 otherwise.
func (t LightType) W() float32 {
	if t == LightTypeDirectional {
		return 0
	}
	return 1
}

// Next returns the following light type, wrapping after Spotlight.
func (t LightType) Next() LightType {
	return (t + 1) % LightType(len(lightTypeNames))
}

// Prev returns the preceding light type, wrapping before Point.
func (t LightType) Prev() LightType {
	n := LightType(len(lightTypeNames))
	return (t + n - 1) % n
}

// ParseLightType parses a light type name, case-insensitively.
//
// Parameters:
//   - s: one of "Point", "Directional" or "Spotlight"
//
// Returns:
//   - LightType: the parsed type
//   - error: ErrUnknownLightType if s names no light type
func ParseLightType(s string) (LightType, error) {
	for i, name := range lightTypeNames {
		if strings.EqualFold(s, name) {
			return LightType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLightType, s)
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType LightType
	position  mgl32.Vec3
	ambient   mgl32.Vec3
	diffuse   mgl32.Vec3
	specular  mgl32.Vec3
	axis      mgl32.Vec3
	aperture  float32
	cutoff    float32
	enabled   bool
}

// Light is one of the scene's light sources. Intensities are 0-255 RGB triples.
//
// The homogeneous position is derived from the type on every read and never stored,
// and switching a light off leaves its intensities untouched.
// Not safe for concurrent use; the owning session serializes access.
type Light interface {
	// Type returns the kind of light source.
	Type() LightType

	// SetType changes the kind of light source.
	SetType(t LightType)

	// Position returns the world-space position, or the direction toward the light for
	// directional lights.
	Position() mgl32.Vec3

	// SetPosition sets the world-space position.
	SetPosition(p mgl32.Vec3)

	// HomogeneousPosition returns Position extended with the w implied by Type.
	//
	// Returns:
	//   - mgl32.Vec4: (x, y, z, 0) for directional lights, (x, y, z, 1) otherwise
	HomogeneousPosition() mgl32.Vec4

	// Ambient returns the stored ambient intensity.
	Ambient() mgl32.Vec3

	// Diffuse returns the stored diffuse intensity.
	Diffuse() mgl32.Vec3

	// Specular returns the stored specular intensity.
	Specular() mgl32.Vec3

	// SetIntensities replaces all three stored intensities.
	//
	// Parameters:
	//   - ambient, diffuse, specular: 0-255 RGB triples
	SetIntensities(ambient, diffuse, specular mgl32.Vec3)

	// EmittedIntensities returns what the light contributes this frame: the stored
	// intensities when enabled, zero vectors otherwise.
	//
	// Returns:
	//   - ambient, diffuse, specular: effective intensities
	EmittedIntensities() (ambient, diffuse, specular mgl32.Vec3)

	// Axis returns the spotlight cone axis.
	Axis() mgl32.Vec3

	// SetAxis sets the spotlight cone axis.
	SetAxis(axis mgl32.Vec3)

	// Aperture returns the cone half-angle in degrees.
	Aperture() float32

	// SetAperture sets the cone half-angle, clamped to [0, MaxConeParam].
	SetAperture(deg float32)

	// Cutoff returns the cone falloff exponent.
	Cutoff() float32

	// SetCutoff sets the cone falloff exponent, clamped to [0, MaxConeParam].
	SetCutoff(cutoff float32)

	// Enabled returns whether this light is switched on.
	Enabled() bool

	// SetEnabled switches the light on or off.
	SetEnabled(enabled bool)

	// ToGPU converts the light into its view-space GPU representation.
	//
	// Parameters:
	//   - view: the current view matrix
	//
	// Returns:
	//   - GPULight: the uniform bundle for this light
	ToGPU(view mgl32.Mat4) GPULight
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the given type. It starts enabled with zero intensities
// and an axis pointing down -Z.
//
// Parameters:
//   - lightType: the kind of light
//   - options: functional options to configure the light
//
// Returns:
//   - Light: the newly created light
func NewLight(lightType LightType, options ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		axis:      mgl32.Vec3{0, 0, -1},
		enabled:   true,
	}
	for _, option := range options {
		option(l)
	}
	return l
}

func (l *lightImpl) Type() LightType { return l.lightType }

func (l *lightImpl) SetType(t LightType) { l.lightType = t }

func (l *lightImpl) Position() mgl32.Vec3 { return l.position }

func (l *lightImpl) SetPosition(p mgl32.Vec3) { l.position = p }

func (l *lightImpl) HomogeneousPosition() mgl32.Vec4 {
	return l.position.Vec4(l.lightType.W())
}

func (l *lightImpl) Ambient() mgl32.Vec3 { return l.ambient }

func (l *lightImpl) Diffuse() mgl32.Vec3 { return l.diffuse }

func (l *lightImpl) Specular() mgl32.Vec3 { return l.specular }

func (l *lightImpl) SetIntensities(ambient, diffuse, specular mgl32.Vec3) {
	l.ambient, l.diffuse, l.specular = ambient, diffuse, specular
}

func (l *lightImpl) EmittedIntensities() (ambient, diffuse, specular mgl32.Vec3) {
	if !l.enabled {
		return mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}
	}
	return l.ambient, l.diffuse, l.specular
}

func (l *lightImpl) Axis() mgl32.Vec3 { return l.axis }

func (l *lightImpl) SetAxis(axis mgl32.Vec3) { l.axis = axis }

func (l *lightImpl) Aperture() float32 { return l.aperture }

func (l *lightImpl) SetAperture(deg float32) {
	l.aperture = common.Clamp(deg, 0, MaxConeParam)
}

func (l *lightImpl) Cutoff() float32 { return l.cutoff }

func (l *lightImpl) SetCutoff(cutoff float32) {
	l.cutoff = common.Clamp(cutoff, 0, MaxConeParam)
}

func (l *lightImpl) Enabled() bool { return l.enabled }

func (l *lightImpl) SetEnabled(enabled bool) { l.enabled = enabled }

func (l *lightImpl) ToGPU(view mgl32.Mat4) GPULight {
	ambient, diffuse, specular := l.EmittedIntensities()
	return GPULight{
		Position: view.Mul4x1(l.HomogeneousPosition()),
		Axis:     view.Mul4x1(l.axis.Vec4(0)).Vec3(),
		Kind:     uint32(l.lightType),
		Ambient:  ambient,
		Aperture: l.aperture,
		Diffuse:  diffuse,
		Cutoff:   l.cutoff,
		Specular: specular,
	}
}
