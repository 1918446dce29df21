package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomogeneousPositionFollowsType(t *testing.T) {
	tests := []struct {
		lightType LightType
		wantW     float32
		wantCode  uint32
	}{
		{LightTypePoint, 1, 0},
		{LightTypeDirectional, 0, 1},
		{LightTypeSpotlight, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.lightType.String(), func(t *testing.T) {
			l := NewLight(LightTypeDirectional, WithPosition(1, 2, 3))
			// Retype after construction so no prior state leaks into w.
			l.SetType(tt.lightType)

			g := l.ToGPU(mgl32.Ident4())
			assert.Equal(t, tt.wantW, g.Position[3])
			assert.Equal(t, tt.wantCode, g.Kind)
			assert.Equal(t, mgl32.Vec3{1, 2, 3}, l.Position())
		})
	}
}

func TestDisabledLightEmitsZeroAndKeepsIntensities(t *testing.T) {
	amb, dif, spec := mgl32.Vec3{20, 20, 20}, mgl32.Vec3{255, 250, 240}, mgl32.Vec3{1, 2, 3}
	l := NewLight(LightTypePoint, WithIntensities(amb, dif, spec))

	l.SetEnabled(false)
	g := l.ToGPU(mgl32.Ident4())
	assert.Equal(t, [3]float32{}, g.Ambient)
	assert.Equal(t, [3]float32{}, g.Diffuse)
	assert.Equal(t, [3]float32{}, g.Specular)

	l.SetEnabled(true)
	g = l.ToGPU(mgl32.Ident4())
	assert.Equal(t, [3]float32(amb), g.Ambient)
	assert.Equal(t, [3]float32(dif), g.Diffuse)
	assert.Equal(t, [3]float32(spec), g.Specular)
}

func TestSpotlightScenario(t *testing.T) {
	lights := DefaultLights()
	l := lights[0]
	l.SetType(LightTypeSpotlight)
	l.SetEnabled(true)

	g := l.ToGPU(mgl32.Ident4())
	assert.Equal(t, uint32(2), g.Kind)
	assert.Equal(t, float32(1), g.Position[3])
	assert.Equal(t, [3]float32{20, 20, 20}, g.Ambient)
	assert.Equal(t, [3]float32{255, 250, 240}, g.Diffuse)
	assert.Equal(t, [3]float32{255, 250, 240}, g.Specular)
}

func TestToGPUTransformsIntoViewSpace(t *testing.T) {
	view := mgl32.Translate3D(0, -5, 0)
	l := NewLight(LightTypePoint, WithPosition(-5, 5, 0), WithAxis(0, -1, 0))

	g := l.ToGPU(view)
	assert.Equal(t, [4]float32{-5, 0, 0, 1}, g.Position)
	// Axes are directions: translation does not apply.
	assert.Equal(t, [3]float32{0, -1, 0}, g.Axis)

	l.SetType(LightTypeDirectional)
	g = l.ToGPU(view)
	assert.Equal(t, [4]float32{-5, 5, 0, 0}, g.Position)
}

func TestConeParamsClamp(t *testing.T) {
	l := NewLight(LightTypeSpotlight, WithCone(400, -1))
	assert.Equal(t, MaxConeParam, l.Aperture())
	assert.Equal(t, float32(0), l.Cutoff())
}

func TestParseLightType(t *testing.T) {
	lt, err := ParseLightType("spotlight")
	require.NoError(t, err)
	assert.Equal(t, LightTypeSpotlight, lt)

	_, err = ParseLightType("area")
	assert.ErrorIs(t, err, ErrUnknownLightType)

	assert.Equal(t, LightTypePoint, LightTypeSpotlight.Next())
	assert.Equal(t, LightTypeSpotlight, LightTypePoint.Prev())
	assert.Equal(t, LightTypeDirectional, LightTypeSpotlight.Prev())
}

func TestPrepareFrameUniforms(t *testing.T) {
	set := NewLightSet(DefaultLights())
	l1, err := set.Light(1)
	require.NoError(t, err)
	l1.SetEnabled(false)

	frame := set.PrepareFrameUniforms(mgl32.Ident4())
	require.Len(t, frame.Lights, NumLights)
	assert.Equal(t, uint32(NumLights), frame.Header.LightCount)

	assert.Equal(t, uint32(0), frame.Lights[0].Kind)
	assert.Equal(t, uint32(1), frame.Lights[1].Kind)
	assert.Equal(t, uint32(2), frame.Lights[2].Kind)
	assert.Equal(t, float32(0), frame.Lights[1].Position[3])
	assert.Equal(t, [3]float32{}, frame.Lights[1].Diffuse)
	assert.Equal(t, float32(20), frame.Lights[2].Aperture)

	_, err = set.Light(NumLights)
	assert.ErrorIs(t, err, ErrLightIndex)
}

func TestGPULightLayout(t *testing.T) {
	g := GPULight{
		Position: [4]float32{1, 2, 3, 1},
		Axis:     [3]float32{0, -1, 0},
		Kind:     2,
		Aperture: 20,
		Cutoff:   10,
		Specular: [3]float32{7, 8, 9},
	}
	require.Equal(t, 80, g.Size())
	buf := g.Marshal()
	require.Len(t, buf, 80)

	f32 := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }
	assert.Equal(t, float32(3), f32(8))
	assert.Equal(t, float32(-1), f32(20))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(buf[28:]))
	assert.Equal(t, float32(20), f32(44))
	assert.Equal(t, float32(10), f32(60))
	assert.Equal(t, float32(9), f32(72))

	header := GPULightHeader{LightCount: 3}
	assert.Equal(t, 16, header.Size())
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(header.Marshal()))

	frame := FrameLights{Lights: []GPULight{g, g}}
	assert.Len(t, frame.MarshalLights(), 160)
}
