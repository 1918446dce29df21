package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestLocalTransform_FirstOpIsLeftmost(t *testing.T) {
	obj := NewGameObject(WithPlacement(UniformScale(2), Translate(1.25, 0.5, -1.25)))

	got := obj.LocalTransform()
	want := mgl32.Scale3D(2, 2, 2).Mul4(mgl32.Translate3D(1.25, 0.5, -1.25))
	assert.True(t, want.ApproxEqual(got))

	// The translation is scaled because it is applied inside the scale.
	assert.InDelta(t, 2.5, got.Col(3).X(), 1e-6)
	assert.InDelta(t, 1.0, got.Col(3).Y(), 1e-6)
}

func TestLampMarker_FollowsLight(t *testing.T) {
	l := light.NewLight(light.LightTypePoint, light.WithPosition(-5, 5, 0))
	obj := NewGameObject(WithMaterial(material.Cube), WithLamp(l))

	assert.Equal(t, material.Lamp, obj.MaterialName())
	l.SetEnabled(false)
	assert.Equal(t, material.LampOff, obj.MaterialName())

	l.SetPosition(mgl32.Vec3{1, 2, 3})
	m := obj.LocalTransform()
	assert.True(t, mgl32.Vec3{1, 2, 3}.ApproxEqual(m.Col(3).Vec3()))
	assert.InDelta(t, LampScale, m.At(0, 0), 1e-6)

	obj.SetLamp(nil)
	assert.Equal(t, material.Cube, obj.MaterialName())
	assert.Empty(t, obj.Placement())
}

func TestNewGameObject_Defaults(t *testing.T) {
	obj := NewGameObject(WithID(7), WithName("torus"))
	assert.True(t, obj.Enabled())
	assert.Equal(t, uint64(7), obj.ID())
	assert.Equal(t, "torus", obj.Name())
	assert.Nil(t, obj.Model())
	assert.True(t, mgl32.Ident4().ApproxEqual(obj.LocalTransform()))

	obj.SetEnabled(false)
	assert.False(t, obj.Enabled())
}
