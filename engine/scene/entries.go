package scene

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
)

// Entry names of the stock scene, in draw order. Lamp markers are named by LampEntryName.
const (
	EntryPlatform = "platform"
	EntryTorus    = "torus"
	EntryCube     = "cube"
	EntryCylinder = "cylinder"
	EntryBunny    = "bunny"
)

// LampEntryName returns the entry name of the marker for light slot i, counting from 1.
func LampEntryName(i int) string {
	return fmt.Sprintf("lamp%d", i+1)
}

// Meshes are the models the stock scene draws.
type Meshes struct {
	Cube     model.Model
	Sphere   model.Model
	Cylinder model.Model
	Torus    model.Model
	Bunny    model.Model
}

// DefaultMeshes builds the procedural primitives. A nil bunny falls back to a sphere.
//
// Parameters:
//   - bunny: the loaded bunny mesh, or nil
//
// Returns:
//   - Meshes: the stock mesh set
func DefaultMeshes(bunny model.Model) Meshes {
	m := Meshes{
		Cube:     model.Cube(),
		Sphere:   model.Sphere(model.SphereSlices, model.SphereStacks),
		Cylinder: model.Cylinder(model.CylinderSlices),
		Torus:    model.Torus(model.TorusMajorRadius, model.TorusMinorRadius, model.TorusRings, model.TorusSides),
		Bunny:    bunny,
	}
	if m.Bunny == nil {
		m.Bunny = m.Sphere
	}
	return m
}

// Models returns the distinct meshes, for upload.
func (m Meshes) Models() []model.Model {
	out := make([]model.Model, 0, 5)
	seen := make(map[model.Model]bool, 5)
	for _, mdl := range []model.Model{m.Cube, m.Sphere, m.Cylinder, m.Torus, m.Bunny} {
		if mdl == nil || seen[mdl] {
			continue
		}
		seen[mdl] = true
		out = append(out, mdl)
	}
	return out
}

// DefaultEntries builds the eight entries of the stock scene: the platform, four objects
// and one lamp marker per light. Placements list scale before translate, so the object is
// moved in its scaled frame.
//
// Parameters:
//   - meshes: the models to draw
//   - lights: the light set the lamp markers follow
//
// Returns:
//   - []game_object.GameObject: the entries in draw order
func DefaultEntries(meshes Meshes, lights light.LightSet) []game_object.GameObject {
	entry := func(name string, mdl model.Model, mat string, ops ...game_object.Op) game_object.GameObject {
		return game_object.NewGameObject(
			game_object.WithName(name),
			game_object.WithModel(mdl),
			game_object.WithMaterial(mat),
			game_object.WithPlacement(ops...),
		)
	}

	entries := []game_object.GameObject{
		entry(EntryPlatform, meshes.Cube, material.Platform,
			game_object.Scale(10, 0.5, 10), game_object.Translate(0, -0.25, 0)),
		entry(EntryTorus, meshes.Torus, material.Torus,
			game_object.UniformScale(2), game_object.Translate(1.25, 0.25, 1.25)),
		entry(EntryCube, meshes.Cube, material.Cube,
			game_object.UniformScale(2), game_object.Translate(1.25, 0.5, -1.25)),
		entry(EntryCylinder, meshes.Cylinder, material.Cylinder,
			game_object.UniformScale(2), game_object.Translate(-1.25, 0.5, -1.25)),
		entry(EntryBunny, meshes.Bunny, material.Bunny,
			game_object.UniformScale(2), game_object.Translate(-1.25, 0.5, 1.25)),
	}
	for i, l := range lights.Lights() {
		entries = append(entries, game_object.NewGameObject(
			game_object.WithName(LampEntryName(i)),
			game_object.WithModel(meshes.Sphere),
			game_object.WithLamp(l),
		))
	}
	return entries
}
