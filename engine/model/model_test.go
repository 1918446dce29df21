package model

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stockPrimitives() map[string]Model {
	return map[string]Model{
		"cube":     Cube(),
		"sphere":   Sphere(SphereSlices, SphereStacks),
		"cylinder": Cylinder(CylinderSlices),
		"torus":    Torus(TorusMajorRadius, TorusMinorRadius, TorusRings, TorusSides),
	}
}

func TestPrimitives_CounterClockwiseFromOutside(t *testing.T) {
	for name, m := range stockPrimitives() {
		t.Run(name, func(t *testing.T) {
			verts := m.Vertices()
			idx := m.Indices()
			require.NotEmpty(t, idx)
			require.Zero(t, len(idx)%3)

			for k := 0; k < len(idx); k += 3 {
				a, b, c := verts[idx[k]], verts[idx[k+1]], verts[idx[k+2]]
				pa, pb, pc := mgl32.Vec3(a.Position), mgl32.Vec3(b.Position), mgl32.Vec3(c.Position)
				face := pb.Sub(pa).Cross(pc.Sub(pa))
				avg := mgl32.Vec3(a.Normal).Add(mgl32.Vec3(b.Normal)).Add(mgl32.Vec3(c.Normal))
				assert.Greater(t, face.Dot(avg), float32(0), "triangle %d winds clockwise", k/3)
			}
		})
	}
}

func TestPrimitives_FitUnitBox(t *testing.T) {
	for name, m := range stockPrimitives() {
		t.Run(name, func(t *testing.T) {
			lo, hi := m.Bounds()
			for k := 0; k < 3; k++ {
				assert.GreaterOrEqual(t, lo[k], float32(-0.5-1e-5))
				assert.LessOrEqual(t, hi[k], float32(0.5+1e-5))
			}
			for _, v := range m.Vertices() {
				assert.InDelta(t, 1, mgl32.Vec3(v.Normal).Len(), 1e-4)
			}
		})
	}
}

func TestTorus_LiesFlat(t *testing.T) {
	lo, hi := Torus(TorusMajorRadius, TorusMinorRadius, TorusRings, TorusSides).Bounds()
	assert.InDelta(t, -TorusMinorRadius, lo.Y(), 1e-5)
	assert.InDelta(t, TorusMinorRadius, hi.Y(), 1e-5)
	assert.InDelta(t, 0.5, hi.X(), 1e-5)
}

func TestModel_BuffersMatchMesh(t *testing.T) {
	m := Cube()
	var v GPUVertex
	assert.Equal(t, 24, v.Size())
	assert.Len(t, m.VertexData(), len(m.Vertices())*24)
	assert.Len(t, m.IndexData(), m.IndexCount()*4)
	assert.Equal(t, 36, m.IndexCount())
	assert.Nil(t, m.MeshProvider())
}

func TestNormalizeToUnitBox(t *testing.T) {
	tests := []struct {
		name   string
		points []mgl32.Vec3
		lo, hi mgl32.Vec3
	}{
		{
			name:   "offset tall box",
			points: []mgl32.Vec3{{10, 0, 0}, {12, 4, 1}},
			lo:     mgl32.Vec3{-0.25, -0.5, -0.125},
			hi:     mgl32.Vec3{0.25, 0.5, 0.125},
		},
		{
			name:   "single point",
			points: []mgl32.Vec3{{3, 3, 3}},
			lo:     mgl32.Vec3{},
			hi:     mgl32.Vec3{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verts := make([]GPUVertex, len(tt.points))
			for i, p := range tt.points {
				verts[i] = NewGPUVertex(p, mgl32.Vec3{0, 1, 0})
			}
			NormalizeToUnitBox(verts)
			lo, hi := Bounds(verts)
			assert.True(t, lo.ApproxEqualThreshold(tt.lo, 1e-5), "lo %v", lo)
			assert.True(t, hi.ApproxEqualThreshold(tt.hi, 1e-5), "hi %v", hi)
			assert.Equal(t, [3]float32{0, 1, 0}, verts[0].Normal)
		})
	}
}
