package light

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// NumLights is the fixed number of lights in a LightSet. Slot i maps to uniform array
// element i and to lamp marker i in the scene.
const NumLights = 3

// LightSet is the ordered, fixed-size collection of scene lights. Lights are never
// added or removed, only toggled, retyped and edited.
type LightSet interface {
	// Len returns NumLights.
	Len() int

	// Light returns the light in slot i.
	//
	// Parameters:
	//   - i: slot index in [0, NumLights)
	//
	// Returns:
	//   - Light: the light
	//   - error: ErrLightIndex if i is out of range
	Light(i int) (Light, error)

	// Lights returns all lights in slot order.
	Lights() [NumLights]Light

	// PrepareFrameUniforms converts every light, in slot order, into view-space uniform
	// data. Disabled lights are still emitted with zero intensities so slot order holds.
	//
	// Parameters:
	//   - view: the current view matrix
	//
	// Returns:
	//   - FrameLights: header with the light count plus one GPULight per slot
	PrepareFrameUniforms(view mgl32.Mat4) FrameLights
}

type lightSet struct {
	lights [NumLights]Light
}

var _ LightSet = &lightSet{}

// NewLightSet creates a LightSet from exactly NumLights lights.
// Panics if any light is nil.
//
// Parameters:
//   - lights: the lights in slot order
//
// Returns:
//   - LightSet: the new set
func NewLightSet(lights [NumLights]Light) LightSet {
	for i, l := range lights {
		if l == nil {
			panic(fmt.Sprintf("light: NewLightSet slot %d is nil", i))
		}
	}
	return &lightSet{lights: lights}
}

// DefaultLights returns the viewer's stock lighting rig: a point light on the left,
// a directional light overhead and a spotlight on the right pointing down.
func DefaultLights() [NumLights]Light {
	ambient := mgl32.Vec3{20, 20, 20}
	warm := mgl32.Vec3{255, 250, 240}
	return [NumLights]Light{
		NewLight(LightTypePoint,
			WithPosition(-5, 5, 0),
			WithIntensities(ambient, warm, warm),
			WithAxis(0, 0, -1),
			WithCone(10, 10),
		),
		NewLight(LightTypeDirectional,
			WithPosition(0, 5, 0),
			WithIntensities(ambient, warm, warm),
			WithAxis(0, 0, -1),
			WithCone(10, 10),
		),
		NewLight(LightTypeSpotlight,
			WithPosition(5, 5, 0),
			WithIntensities(ambient, warm, warm),
			WithAxis(0, -1, 0),
			WithCone(20, 10),
		),
	}
}

func (s *lightSet) Len() int {
	return NumLights
}

func (s *lightSet) Light(i int) (Light, error) {
	if i < 0 || i >= NumLights {
		return nil, fmt.Errorf("%w: %d", ErrLightIndex, i)
	}
	return s.lights[i], nil
}

func (s *lightSet) Lights() [NumLights]Light {
	return s.lights
}

func (s *lightSet) PrepareFrameUniforms(view mgl32.Mat4) FrameLights {
	out := FrameLights{
		Header: GPULightHeader{LightCount: NumLights},
		Lights: make([]GPULight, NumLights),
	}
	for i, l := range s.lights {
		out.Lights[i] = l.ToGPU(view)
	}
	return out
}
