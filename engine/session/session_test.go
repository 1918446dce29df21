package session

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/shading"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession() Session {
	return NewSession(WithSwitch(shading.MustSwitch()))
}

func TestNewSession_Defaults(t *testing.T) {
	s := newTestSession()

	assert.Equal(t, Options{BackfaceCulling: false, DepthTest: true, Phong: false}, s.Options())
	assert.Len(t, s.Scene().Entries(), 8)
	assert.Equal(t, 0, s.SelectedLight())
}

func TestNewSession_Options(t *testing.T) {
	lights := light.DefaultLights()
	lights[1].SetEnabled(false)
	s := NewSession(
		WithSwitch(shading.MustSwitch()),
		WithLights(light.NewLightSet(lights)),
		WithOptions(Options{BackfaceCulling: true, DepthTest: true, Phong: true}),
	)

	frame, err := s.Frame()
	require.NoError(t, err)
	assert.Equal(t, "phong/cull/depth", frame.PipelineKey)
	assert.Equal(t, "lampOff", frame.Items[6].MaterialName)
	assert.Equal(t, "lamp", frame.Items[5].MaterialName)
}

func TestMouseDrag_OrbitPreservesRadius(t *testing.T) {
	s := newTestSession()

	var radius float32
	require.NoError(t, s.Edit(func(st State) error {
		radius = st.Camera.Eye().Sub(st.Camera.At()).Len()
		return nil
	}))

	s.MouseDown(100, 100)
	s.MouseMove(130, 90)
	s.MouseMove(150, 120)
	s.MouseUp()
	// Moves after release are ignored.
	s.MouseMove(400, 400)

	require.NoError(t, s.Edit(func(st State) error {
		assert.Equal(t, mgl32.Vec3{0, 0, 0}, st.Camera.At())
		assert.InDelta(t, radius, st.Camera.Eye().Sub(st.Camera.At()).Len(), 1e-4)
		return nil
	}))
}

func TestScroll(t *testing.T) {
	tests := []struct {
		name     string
		yoff     float64
		mods     int
		wantFovy float32
		eyeMoves bool
	}{
		{name: "bare wheel zooms out", yoff: 1, wantFovy: 99},
		{name: "bare wheel zooms in", yoff: -1, wantFovy: 81},
		{name: "alt is ignored", yoff: 1, mods: common.ModAlt, wantFovy: 90},
		{name: "super dollies", yoff: 1, mods: common.ModSuper, wantFovy: 90, eyeMoves: true},
		{name: "ctrl dollies", yoff: 1, mods: common.ModControl, wantFovy: 90, eyeMoves: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession()
			s.Scroll(tt.yoff, tt.mods)

			require.NoError(t, s.Edit(func(st State) error {
				assert.InDelta(t, tt.wantFovy, st.Camera.Fovy(), 1e-4)
				assert.Equal(t, tt.eyeMoves, st.Camera.Eye() != mgl32.Vec3{0, 5.5, 9})
				return nil
			}))
		})
	}
}

func TestKeyDown_Toggles(t *testing.T) {
	tests := []struct {
		name string
		key  uint32
		want Options
	}{
		{name: "P toggles phong", key: common.KeyP, want: Options{DepthTest: true, Phong: true}},
		{name: "C toggles culling", key: common.KeyC, want: Options{BackfaceCulling: true, DepthTest: true}},
		{name: "Z toggles depth", key: common.KeyZ, want: Options{}},
		{name: "unbound key", key: 'Q', want: DefaultOptions()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession()
			s.KeyDown(tt.key, 0)
			assert.Equal(t, tt.want, s.Options())
		})
	}
}

func TestKeyDown_LightSlots(t *testing.T) {
	s := newTestSession()

	s.KeyDown(common.Key3, 0)
	assert.Equal(t, 2, s.SelectedLight())

	require.NoError(t, s.Edit(func(st State) error {
		l, err := st.Lights.Light(2)
		require.NoError(t, err)
		assert.False(t, l.Enabled())
		return nil
	}))

	frame, err := s.Frame()
	require.NoError(t, err)
	assert.Equal(t, material.LampOff, frame.Items[7].MaterialName)
	assert.Equal(t, [3]float32{}, frame.Lights.Lights[2].Diffuse)

	s.KeyDown(common.Key3, 0)
	frame, err = s.Frame()
	require.NoError(t, err)
	assert.Equal(t, material.Lamp, frame.Items[7].MaterialName)
}

func TestKeyDown_CycleLightType(t *testing.T) {
	s := newTestSession()

	// Slot 0 starts as a point light.
	s.KeyDown(common.Key1, 0)
	s.KeyDown(common.Key1, 0)
	s.KeyDown(common.KeyT, 0)
	s.KeyDown(common.KeyT, 0)

	frame, err := s.Frame()
	require.NoError(t, err)
	assert.Equal(t, uint32(light.LightTypeSpotlight), frame.Lights.Lights[0].Kind)
	assert.Equal(t, float32(1), frame.Lights.Lights[0].Position[3])

	s.KeyDown(common.KeyT, 0)
	frame, err = s.Frame()
	require.NoError(t, err)
	assert.Equal(t, uint32(light.LightTypePoint), frame.Lights.Lights[0].Kind)
}

func TestKeyDown_ShiftCyclesLightTypeBackwards(t *testing.T) {
	s := newTestSession()

	// Slot 1 starts as a directional light.
	s.KeyDown(common.Key2, 0)
	s.KeyDown(common.Key2, 0)

	tests := []struct {
		mods int
		want light.LightType
	}{
		{common.ModShift, light.LightTypePoint},
		{common.ModShift, light.LightTypeSpotlight},
		{0, light.LightTypePoint},
		{common.ModShift | common.ModControl, light.LightTypeSpotlight},
	}
	for i, tt := range tests {
		s.KeyDown(common.KeyT, tt.mods)
		frame, err := s.Frame()
		require.NoError(t, err)
		assert.Equal(t, uint32(tt.want), frame.Lights.Lights[1].Kind, "step %d", i)
	}
}

func TestKeyDown_ResetCamera(t *testing.T) {
	s := newTestSession()
	s.Scroll(1, 0)
	s.MouseDown(0, 0)
	s.MouseMove(50, 0)
	s.MouseUp()

	s.KeyDown(common.KeyR, 0)

	require.NoError(t, s.Edit(func(st State) error {
		assert.Equal(t, mgl32.Vec3{0, 5.5, 9}, st.Camera.Eye())
		assert.Equal(t, float32(90), st.Camera.Fovy())
		return nil
	}))
}

func TestResize(t *testing.T) {
	s := newTestSession()

	s.Resize(1600, 800)
	s.Resize(1600, 0)

	require.NoError(t, s.Edit(func(st State) error {
		assert.Equal(t, float32(2), st.Camera.Aspect())
		return nil
	}))
}

func TestFrame_SelectsProgramAndPipeline(t *testing.T) {
	s := newTestSession()

	gouraud, err := s.Frame()
	require.NoError(t, err)
	assert.Equal(t, shading.Gouraud, gouraud.Program.Mode())
	assert.Equal(t, "gouraud/-/depth", gouraud.PipelineKey)

	s.KeyDown(common.KeyP, 0)
	s.KeyDown(common.KeyC, 0)
	phong, err := s.Frame()
	require.NoError(t, err)
	assert.Equal(t, shading.Phong, phong.Program.Mode())
	assert.Equal(t, "phong/cull/depth", phong.PipelineKey)

	// Switching programs leaves every other part of the frame untouched.
	assert.Equal(t, gouraud.View, phong.View)
	assert.Equal(t, gouraud.Projection, phong.Projection)
	assert.Equal(t, gouraud.Lights, phong.Lights)
	require.Len(t, phong.Items, len(gouraud.Items))
	for i := range phong.Items {
		assert.Equal(t, gouraud.Items[i].DrawData, phong.Items[i].DrawData)
		assert.Equal(t, gouraud.Items[i].MaterialData, phong.Items[i].MaterialData)
	}
}

func TestFrame_CameraUniformMatchesMatrices(t *testing.T) {
	s := newTestSession()

	frame, err := s.Frame()
	require.NoError(t, err)
	assert.Equal(t, [16]float32(frame.View), frame.Camera.View)
	assert.Equal(t, [16]float32(frame.Projection), frame.Camera.Projection)
	assert.Equal(t, uint32(light.NumLights), frame.Lights.Header.LightCount)
}
