package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/shading"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStockScene(t *testing.T) (Scene, light.LightSet) {
	t.Helper()
	lights := light.NewLightSet(light.DefaultLights())
	s := NewScene(
		WithEntries(DefaultEntries(DefaultMeshes(nil), lights)...),
		WithComputeWorkers(2),
	)
	return s, lights
}

func TestDefaultEntries_DrawOrder(t *testing.T) {
	s, _ := newStockScene(t)

	var names []string
	for _, e := range s.Entries() {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"platform", "torus", "cube", "cylinder", "bunny", "lamp1", "lamp2", "lamp3"}, names)
}

func TestAssemble_ModelViewIsViewTimesPlacement(t *testing.T) {
	s, _ := newStockScene(t)
	view := common.LookAt(mgl32.Vec3{0, 5.5, 9}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})

	items, err := s.Assemble(view)
	require.NoError(t, err)
	require.Len(t, items, 8)

	tests := []struct {
		idx   int
		local mgl32.Mat4
	}{
		{0, mgl32.Scale3D(10, 0.5, 10).Mul4(mgl32.Translate3D(0, -0.25, 0))},
		{1, mgl32.Scale3D(2, 2, 2).Mul4(mgl32.Translate3D(1.25, 0.25, 1.25))},
		{2, mgl32.Scale3D(2, 2, 2).Mul4(mgl32.Translate3D(1.25, 0.5, -1.25))},
		{3, mgl32.Scale3D(2, 2, 2).Mul4(mgl32.Translate3D(-1.25, 0.5, -1.25))},
		{4, mgl32.Scale3D(2, 2, 2).Mul4(mgl32.Translate3D(-1.25, 0.5, 1.25))},
		{5, mgl32.Translate3D(-5, 5, 0).Mul4(mgl32.Scale3D(0.4, 0.4, 0.4))},
	}
	for _, tt := range tests {
		t.Run(items[tt.idx].Name, func(t *testing.T) {
			want := view.Mul4(tt.local)
			assert.True(t, want.ApproxEqualThreshold(items[tt.idx].ModelView, 1e-5))
		})
	}
}

func TestAssemble_FillsUniformData(t *testing.T) {
	s, _ := newStockScene(t)
	view := mgl32.Translate3D(0, 0, -5)

	items, err := s.Assemble(view)
	require.NoError(t, err)

	for _, item := range items {
		assert.Len(t, item.DrawData, 128, item.Name)
		assert.Len(t, item.MaterialData, 48, item.Name)
		assert.True(t, common.NormalMatrix(item.ModelView).ApproxEqualThreshold(item.Normal, 1e-5), item.Name)
		assert.NotNil(t, item.Model, item.Name)
		assert.Equal(t, item.MaterialName, item.Material.Name())
	}
	assert.Equal(t, material.Platform, items[0].MaterialName)
	assert.Equal(t, material.Bunny, items[4].MaterialName)
}

func TestAssemble_LampsFollowLights(t *testing.T) {
	s, lights := newStockScene(t)

	l, err := lights.Light(1)
	require.NoError(t, err)
	l.SetEnabled(false)
	l.SetPosition(mgl32.Vec3{1, 2, 3})

	items, err := s.Assemble(mgl32.Ident4())
	require.NoError(t, err)

	assert.Equal(t, material.Lamp, items[5].MaterialName)
	assert.Equal(t, material.LampOff, items[6].MaterialName)
	assert.Equal(t, material.Lamp, items[7].MaterialName)
	assert.True(t, mgl32.Vec3{1, 2, 3}.ApproxEqual(items[6].ModelView.Col(3).Vec3()))
}

func TestAssemble_SkipsDisabledEntries(t *testing.T) {
	s, _ := newStockScene(t)
	s.Entry(EntryTorus).SetEnabled(false)

	items, err := s.Assemble(mgl32.Ident4())
	require.NoError(t, err)
	require.Len(t, items, 7)
	assert.Equal(t, EntryCube, items[1].Name)
}

func TestAssemble_UnknownMaterial(t *testing.T) {
	s := NewScene(WithEntries(game_object.NewGameObject(
		game_object.WithName("ghost"),
		game_object.WithMaterial("chrome"),
	)))

	_, err := s.Assemble(mgl32.Ident4())
	assert.ErrorIs(t, err, material.ErrUnknownMaterial)
}

func TestAssemble_SeesBunnyEdits(t *testing.T) {
	table := material.NewTable()
	lights := light.NewLightSet(light.DefaultLights())
	s := NewScene(
		WithEntries(DefaultEntries(DefaultMeshes(nil), lights)...),
		WithMaterials(table),
	)

	require.NoError(t, table.MustGet(material.Bunny).SetShininess(5))
	items, err := s.Assemble(mgl32.Ident4())
	require.NoError(t, err)
	assert.Equal(t, float32(5), items[4].Material.Shininess())
}

func TestNewScene_DuplicateNamesPanic(t *testing.T) {
	assert.Panics(t, func() {
		NewScene(WithEntries(
			game_object.NewGameObject(game_object.WithName("a")),
			game_object.NewGameObject(game_object.WithName("a")),
		))
	})
}

func TestGPUOperations_WithoutRenderer(t *testing.T) {
	s, _ := newStockScene(t)
	program, err := shading.NewProgram(shading.Phong)
	require.NoError(t, err)

	assert.ErrorIs(t, s.InitGPU(program), ErrNoRenderer)
	assert.ErrorIs(t, s.WriteFrame(camera.GPUCameraUniform{}, light.FrameLights{}, nil), ErrNoRenderer)
	assert.ErrorIs(t, s.DrawCalls("phong/-/depth", nil), ErrNoRenderer)
}

func TestResolveUniformLayout(t *testing.T) {
	for _, mode := range []shading.Mode{shading.Gouraud, shading.Phong} {
		t.Run(mode.String(), func(t *testing.T) {
			program, err := shading.NewProgram(mode)
			require.NoError(t, err)

			l, err := resolveUniformLayout(program.VertexShader())
			require.NoError(t, err)
			assert.Equal(t, slot{0, 0}, l.camera)
			assert.Equal(t, slot{1, 0}, l.lightHeader)
			assert.Equal(t, slot{1, 1}, l.lights)
			assert.Equal(t, slot{2, 0}, l.material)
			assert.Equal(t, slot{2, 1}, l.draw)
			assert.Len(t, l.descriptors, 3)
		})
	}
}

func TestMeshes_ModelsDeduplicates(t *testing.T) {
	m := DefaultMeshes(nil)
	assert.Same(t, m.Sphere, m.Bunny)
	assert.Len(t, m.Models(), 4)
}
