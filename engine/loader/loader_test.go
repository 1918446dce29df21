package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTriangleGLB saves a single counter-clockwise triangle in the XY plane without normals.
func writeTriangleGLB(t *testing.T) string {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {4, 0, 0}, {0, 2, 0}})
	idx := modeler.WriteIndices(doc, []uint32{0, 1, 2})
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: pos},
		}},
	}}

	path := filepath.Join(t.TempDir(), "tri.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

func TestLoad_NormalizesAndComputesNormals(t *testing.T) {
	l := NewLoader(BackendTypeGLTF)
	m, err := l.Load(writeTriangleGLB(t))
	require.NoError(t, err)

	assert.Equal(t, "tri", m.Name())
	assert.Equal(t, 3, m.IndexCount())

	lo, hi := m.Bounds()
	assert.True(t, lo.ApproxEqualThreshold(mgl32.Vec3{-0.5, -0.25, 0}, 1e-5), "lo %v", lo)
	assert.True(t, hi.ApproxEqualThreshold(mgl32.Vec3{0.5, 0.25, 0}, 1e-5), "hi %v", hi)
	for _, v := range m.Vertices() {
		assert.Equal(t, [3]float32{0, 0, 1}, v.Normal)
	}
}

func TestLoad_Caches(t *testing.T) {
	path := writeTriangleGLB(t)
	l := NewLoader(BackendTypeGLTF)

	first, err := l.Load(path)
	require.NoError(t, err)
	second, err := l.Load(path)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Same(t, first, l.Get(path))
	assert.Len(t, l.Models(), 1)
}

func TestLoadReader(t *testing.T) {
	f, err := os.Open(writeTriangleGLB(t))
	require.NoError(t, err)
	defer f.Close()

	m, err := NewLoader(BackendTypeGLTF).LoadReader("bunny", f)
	require.NoError(t, err)
	assert.Equal(t, 3, m.IndexCount())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"unsupported extension", "bunny.obj"},
		{"missing file", filepath.Join(t.TempDir(), "missing.glb")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(BackendTypeGLTF).Load(tt.path)
			assert.Error(t, err)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	fallback := model.Sphere(8, 4)
	l := NewLoader(BackendTypeGLTF)

	assert.Same(t, fallback, l.LoadOrDefault("", fallback))
	assert.Same(t, fallback, l.LoadOrDefault("nope.glb", fallback))

	loaded := l.LoadOrDefault(writeTriangleGLB(t), fallback)
	assert.NotSame(t, fallback, loaded)
}

func TestInitMeshGPU_RequiresRenderer(t *testing.T) {
	err := NewLoader(BackendTypeGLTF).InitMeshGPU(model.Cube())
	assert.Error(t, err)
}

func TestSmoothNormals_UnreferencedVertex(t *testing.T) {
	normals := smoothNormals([][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 0, -1}, {9, 9, 9}}, []uint32{0, 1, 2})
	assert.Equal(t, [3]float32{0, 1, 0}, normals[0])
	assert.Equal(t, [3]float32{0, 1, 0}, normals[3])
}
