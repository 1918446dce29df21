package game_object

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the object's unique identifier.
//
// Parameters:
//   - id: the ID to assign
//
// Returns:
//   - GameObjectBuilderOption: the option function
func WithID(id uint64) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.id = id
	}
}

// WithName sets the entry name.
//
// Parameters:
//   - name: the entry name
//
// Returns:
//   - GameObjectBuilderOption: the option function
func WithName(name string) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.name = name
	}
}

// WithEnabled sets whether the object is drawn.
//
// Parameters:
//   - enabled: true to enable
//
// Returns:
//   - GameObjectBuilderOption: the option function
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.enabled.Store(enabled)
	}
}

// WithModel sets the Model associated with this object.
//
// Parameters:
//   - m: the Model to associate
//
// Returns:
//   - GameObjectBuilderOption: the option function
func WithModel(m model.Model) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.mdl = m
	}
}

// WithMaterial sets the material table key for this object.
//
// Parameters:
//   - name: the material name
//
// Returns:
//   - GameObjectBuilderOption: the option function
func WithMaterial(name string) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.materialName = name
	}
}

// WithPlacement sets the ordered placement operations.
//
// Parameters:
//   - ops: placement operations, first applied first
//
// Returns:
//   - GameObjectBuilderOption: the option function
func WithPlacement(ops ...Op) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.placement = ops
	}
}

// WithLamp makes the object a marker for the given light.
//
// Parameters:
//   - l: the Light to mark
//
// Returns:
//   - GameObjectBuilderOption: the option function
func WithLamp(l light.Light) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.lamp = l
	}
}
