package shading

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	s, err := NewSwitch()
	require.NoError(t, err)

	assert.Equal(t, Gouraud, s.Select(false).Mode())
	assert.Equal(t, Phong, s.Select(true).Mode())
	assert.Same(t, s.Select(true), s.Select(true))
	assert.NotEqual(t, s.Select(false).Key(), s.Select(true).Key())
}

func TestPrograms_ShareUniformContract(t *testing.T) {
	s := MustSwitch()
	gouraud, phong := s.Select(false), s.Select(true)

	names := []string{
		"camera.mView", "camera.mProjection",
		"light_header.count",
		"lights.kind", "lights.position", "lights.axis", "lights.ambient",
		"lights.diffuse", "lights.specular", "lights.aperture", "lights.cutoff",
		"material.Ka", "material.Kd", "material.Ks", "material.shininess",
		"draw.mModelView", "draw.mNormals",
	}
	for _, name := range names {
		g, ok := gouraud.Uniform(name)
		require.True(t, ok, name)
		p, ok := phong.Uniform(name)
		require.True(t, ok, name)
		assert.Equal(t, g, p, name)
	}

	for _, p := range s.Programs() {
		assert.Equal(t, "vs_main", p.VertexShader().EntryPoint())
		assert.Equal(t, "fs_main", p.FragmentShader().EntryPoint())
		assert.Equal(t, uint64(24), p.VertexShader().VertexLayout(0)[0].ArrayStride)
		assert.Len(t, p.VertexShader().BindGroupLayoutDescriptors(), 3)
	}
}

func TestPrograms_LightUniformLayout(t *testing.T) {
	p := MustSwitch().Select(true)

	kind, _ := p.Uniform("lights.kind")
	assert.Equal(t, shader.UniformLocation{Group: 1, Binding: 1, Offset: 28, Size: 4, Stride: 80}, kind)
	shininess, _ := p.Uniform("material.shininess")
	assert.Equal(t, uint64(12), shininess.Offset)
}

func TestVariants(t *testing.T) {
	vs := MustSwitch().Variants()
	require.Len(t, vs, 8)

	keys := make(map[string]bool, len(vs))
	for _, v := range vs {
		keys[v.Key()] = true
		p := v.Program.Pipeline(v.Cull, v.Depth)
		assert.Equal(t, v.Key(), p.PipelineKey())
		assert.Equal(t, v.Depth, p.DepthTestEnabled())
		assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
		if v.Cull {
			assert.Equal(t, wgpu.CullModeBack, p.CullMode())
		} else {
			assert.Equal(t, wgpu.CullModeNone, p.CullMode())
		}
	}
	assert.Len(t, keys, 8)
}

func TestPipelineKey(t *testing.T) {
	tests := []struct {
		mode        Mode
		cull, depth bool
		want        string
	}{
		{Gouraud, false, true, "gouraud/-/depth"},
		{Phong, true, true, "phong/cull/depth"},
		{Phong, false, false, "phong/-/-"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PipelineKey(tt.mode, tt.cull, tt.depth))
	}
	assert.Equal(t, "Mode(7)", Mode(7).String())
}
