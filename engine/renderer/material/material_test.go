package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableDefaults(t *testing.T) {
	tbl := NewTable()
	assert.Equal(t, []string{Bunny, Cube, Cylinder, Lamp, LampOff, Platform, Torus}, tbl.Names())

	tests := []struct {
		name      string
		ka        mgl32.Vec3
		ks        mgl32.Vec3
		shininess float32
		editable  bool
	}{
		{Platform, mgl32.Vec3{100, 50, 50}, mgl32.Vec3{100, 100, 100}, 50, false},
		{Torus, mgl32.Vec3{200, 25, 200}, mgl32.Vec3{200, 200, 200}, 80, false},
		{Cube, mgl32.Vec3{255, 230, 25}, mgl32.Vec3{255, 255, 255}, 60, false},
		{Cylinder, mgl32.Vec3{0, 150, 200}, mgl32.Vec3{200, 200, 200}, 70, false},
		{Lamp, mgl32.Vec3{255, 255, 255}, mgl32.Vec3{200, 200, 200}, 1, false},
		{LampOff, mgl32.Vec3{50, 50, 50}, mgl32.Vec3{0, 0, 0}, 1, false},
		{Bunny, mgl32.Vec3{150, 150, 150}, mgl32.Vec3{200, 200, 200}, 100, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tbl.Get(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.ka, m.Ka())
			assert.Equal(t, tt.ks, m.Ks())
			assert.Equal(t, tt.shininess, m.Shininess())
			assert.Equal(t, tt.editable, m.Editable())
		})
	}

	_, err := tbl.Get("marble")
	assert.ErrorIs(t, err, ErrUnknownMaterial)
	assert.Panics(t, func() { tbl.MustGet("marble") })
}

func TestFixedMaterialRejectsEdits(t *testing.T) {
	m := NewTable().MustGet(Cube)
	assert.ErrorIs(t, m.SetShininess(5), ErrReadOnly)
	assert.ErrorIs(t, m.SetKa(mgl32.Vec3{}), ErrReadOnly)
	assert.Equal(t, float32(60), m.Shininess())
}

func TestBunnyEditsClamp(t *testing.T) {
	m := NewTable().MustGet(Bunny)
	require.NoError(t, m.SetShininess(5000))
	assert.Equal(t, MaxShininess, m.Shininess())
	require.NoError(t, m.SetShininess(-2))
	assert.Equal(t, float32(0), m.Shininess())

	require.NoError(t, m.SetKd(mgl32.Vec3{-10, 128, 300}))
	assert.Equal(t, mgl32.Vec3{0, 128, 255}, m.Kd())
}

func TestGPUMaterialLayout(t *testing.T) {
	g := NewTable().MustGet(Torus).ToGPU()
	require.Equal(t, 48, g.Size())
	buf := g.Marshal()
	require.Len(t, buf, 48)

	f32 := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }
	assert.Equal(t, float32(200), f32(0))
	assert.Equal(t, float32(80), f32(12))
	assert.Equal(t, float32(25), f32(20))
	assert.Equal(t, float32(200), f32(40))
}
