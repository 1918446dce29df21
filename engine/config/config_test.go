package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/session"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
bunny_path = "assets/bunny.glb"

[window]
width = 1280
height = 720
present_mode = "uncapped"

[camera]
fovy = 60.0
near = 1.0

[options]
phong = true

[bunny]
shininess = 5000.0
kd = [10.0, 20.0, 30.0]

[[lights]]
enabled = false

[[lights]]
type = "spotlight"
aperture = 400.0
`

const sampleYAML = `
bunny_path: assets/bunny.glb
window:
  width: 1280
  height: 720
  present_mode: uncapped
camera:
  fovy: 60
  near: 1
options:
  phong: true
bunny:
  shininess: 5000
  kd: [10, 20, 30]
lights:
  - enabled: false
  - type: spotlight
    aperture: 400
`

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"viewer.toml", FormatTOML, false},
		{"viewer.YAML", FormatYAML, false},
		{"conf/viewer.yml", FormatYAML, false},
		{"viewer.json", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatOf(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_BothFormatsAgree(t *testing.T) {
	fromTOML, err := Decode(strings.NewReader(sampleTOML), FormatTOML)
	require.NoError(t, err)
	fromYAML, err := Decode(strings.NewReader(sampleYAML), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, fromTOML, fromYAML)
	assert.Equal(t, "assets/bunny.glb", fromTOML.BunnyPath)
	assert.Equal(t, 1280, fromTOML.Window.Width)
	require.NotNil(t, fromTOML.Camera.Fovy)
	assert.Equal(t, float32(60), *fromTOML.Camera.Fovy)
	assert.Nil(t, fromTOML.Camera.Eye)
	require.Len(t, fromTOML.Lights, 2)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"unknown toml key", FormatTOML, "colour = 1\n"},
		{"unknown yaml key", FormatYAML, "colour: 1\n"},
		{"bad light type", FormatTOML, "[[lights]]\ntype = \"laser\"\n"},
		{"too many lights", FormatYAML, "lights: [{}, {}, {}, {}]\n"},
		{"negative size", FormatTOML, "[window]\nwidth = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestDecode_EmptyYAML(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, cfg.Lights)
}

func TestApply_UsesClampingSetters(t *testing.T) {
	cfg, err := Decode(strings.NewReader(sampleTOML), FormatTOML)
	require.NoError(t, err)
	s := session.NewSession()

	require.NoError(t, cfg.Apply(s))

	assert.True(t, s.Options().Phong)
	assert.True(t, s.Options().DepthTest)
	require.NoError(t, s.Edit(func(st session.State) error {
		assert.Equal(t, float32(60), st.Camera.Fovy())
		assert.Equal(t, float32(1), st.Camera.Near())
		// Unset fields keep their defaults.
		assert.Equal(t, mgl32.Vec3{0, 5.5, 9}, st.Camera.Eye())

		l0, _ := st.Lights.Light(0)
		assert.False(t, l0.Enabled())
		assert.Equal(t, light.LightTypePoint, l0.Type())

		l1, _ := st.Lights.Light(1)
		assert.Equal(t, light.LightTypeSpotlight, l1.Type())
		assert.Equal(t, light.MaxConeParam, l1.Aperture())

		bunny := st.Materials.MustGet(material.Bunny)
		assert.Equal(t, material.MaxShininess, bunny.Shininess())
		assert.Equal(t, mgl32.Vec3{10, 20, 30}, bunny.Kd())
		assert.Equal(t, mgl32.Vec3{150, 150, 150}, bunny.Ka())
		return nil
	}))
}

// readOnlyBunnyTable serves the stock table with a fixed bunny material.
type readOnlyBunnyTable struct {
	material.Table
	bunny material.Material
}

func (t readOnlyBunnyTable) Get(name string) (material.Material, error) {
	if name == material.Bunny {
		return t.bunny, nil
	}
	return t.Table.Get(name)
}

func (t readOnlyBunnyTable) MustGet(name string) material.Material {
	m, err := t.Get(name)
	if err != nil {
		panic(err)
	}
	return m
}

func TestApply_FailureLeavesSessionUntouched(t *testing.T) {
	table := readOnlyBunnyTable{
		Table: material.NewTable(),
		bunny: material.NewMaterial(material.Bunny, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1}, 5),
	}
	s := session.NewSession(session.WithMaterials(table))

	cfg, err := Decode(strings.NewReader(sampleTOML), FormatTOML)
	require.NoError(t, err)
	require.ErrorIs(t, cfg.Apply(s), material.ErrReadOnly)

	assert.False(t, s.Options().Phong)
	require.NoError(t, s.Edit(func(st session.State) error {
		assert.Equal(t, float32(90), st.Camera.Fovy())
		assert.Equal(t, float32(0.1), st.Camera.Near())
		l0, _ := st.Lights.Light(0)
		assert.True(t, l0.Enabled())
		l1, _ := st.Lights.Light(1)
		assert.Equal(t, light.LightTypeDirectional, l1.Type())
		return nil
	}))

	// Without bunny fields the same table is fine.
	cfg.Bunny = MaterialConfig{}
	require.NoError(t, cfg.Apply(s))
	assert.True(t, s.Options().Phong)
}

func TestApply_ClampsDepth(t *testing.T) {
	cfg := &Config{Camera: CameraConfig{Near: ptr(float32(-2)), Far: ptr(float32(300))}}
	s := session.NewSession()

	require.NoError(t, cfg.Apply(s))
	require.NoError(t, s.Edit(func(st session.State) error {
		assert.Equal(t, camera.MinNear, st.Camera.Near())
		assert.Equal(t, camera.MaxFar, st.Camera.Far())
		return nil
	}))

	d := cfg.CameraDefaults(camera.DefaultSettings())
	assert.Equal(t, camera.MinNear, d.Near)
	assert.Equal(t, camera.MaxFar, d.Far)
}

func TestCameraDefaults(t *testing.T) {
	cfg := &Config{Camera: CameraConfig{Eye: ptr(Vec3{1, 2, 3}), Fovy: ptr(float32(500)), Far: ptr(float32(0.2))}}

	d := cfg.CameraDefaults(camera.DefaultSettings())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, d.Eye)
	assert.Equal(t, camera.MaxFovy, d.Fovy)
	assert.InDelta(t, 0.6, d.Far, 1e-6)
}

func TestClone_IsDeep(t *testing.T) {
	cfg, err := Decode(strings.NewReader(sampleTOML), FormatTOML)
	require.NoError(t, err)

	clone, err := cfg.Clone()
	require.NoError(t, err)
	assert.Equal(t, cfg, clone)

	*clone.Camera.Fovy = 10
	clone.Lights[0].Enabled = ptr(true)
	assert.Equal(t, float32(60), *cfg.Camera.Fovy)
	assert.False(t, *cfg.Lights[0].Enabled)
}

func TestFromSession_RoundTrip(t *testing.T) {
	s := session.NewSession()
	s.KeyDown('2', 0)
	captured := FromSession(s)
	require.Len(t, captured.Lights, light.NumLights)

	for _, format := range []Format{FormatTOML, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, captured.Encode(&buf, format))

			decoded, err := Decode(&buf, format)
			require.NoError(t, err)
			assert.Equal(t, captured, decoded)
			assert.False(t, *decoded.Lights[1].Enabled)
		})
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewer.toml")
	require.NoError(t, os.WriteFile(path, []byte("[options]\nphong = false\n"), 0o644))

	s := session.NewSession()
	var reloads atomic.Int32
	w := NewWatcher(path, s, WithOnReload(func(cfg *Config, err error) {
		if err == nil {
			reloads.Add(1)
		}
	}))
	require.NoError(t, w.Start())
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("[options]\nphong = true\nbackface_culling = true\n"), 0o644))

	require.Eventually(t, func() bool {
		return reloads.Load() > 0 && s.Options().Phong
	}, 5*time.Second, 20*time.Millisecond)
	assert.True(t, s.Options().BackfaceCulling)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("options:\n  phong: false\n"), 0o644))

	s := session.NewSession()
	var calls atomic.Int32
	w := NewWatcher(path, s, WithOnReload(func(*Config, error) { calls.Add(1) }))
	require.NoError(t, w.Start())
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("options:\n  phong: true\n"), 0o644))
	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, calls.Load())
	assert.False(t, s.Options().Phong)
}
