package session

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/shading"
	"go.uber.org/zap"
)

// SessionBuilderOption is a functional option for configuring a Session.
type SessionBuilderOption func(s *session)

// WithLogger sets the session's logger. The scene inherits it.
func WithLogger(logger *zap.Logger) SessionBuilderOption {
	return func(s *session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCamera sets the camera. Defaults to camera.NewCamera().
func WithCamera(cam camera.Camera) SessionBuilderOption {
	return func(s *session) {
		s.cam = cam
	}
}

// WithLights sets the light set. Defaults to light.DefaultLights().
func WithLights(lights light.LightSet) SessionBuilderOption {
	return func(s *session) {
		s.lights = lights
	}
}

// WithMaterials sets the material table. Defaults to material.NewTable().
func WithMaterials(table material.Table) SessionBuilderOption {
	return func(s *session) {
		s.materials = table
	}
}

// WithOptions sets the initial options. Defaults to DefaultOptions().
func WithOptions(opts Options) SessionBuilderOption {
	return func(s *session) {
		s.options = opts
	}
}

// WithSwitch sets the shading switch. Defaults to shading.MustSwitch().
func WithSwitch(sw shading.Switch) SessionBuilderOption {
	return func(s *session) {
		s.sw = sw
	}
}

// WithMeshes sets the models the scene draws. Defaults to scene.DefaultMeshes(nil).
//
// Parameters:
//   - meshes: the scene meshes
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithMeshes(meshes scene.Meshes) SessionBuilderOption {
	return func(s *session) {
		s.meshes = &meshes
	}
}

// WithSceneOptions forwards extra options to the scene, such as its Renderer or worker count.
// They are applied after the session's own scene options.
//
// Parameters:
//   - options: scene builder options
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithSceneOptions(options ...scene.SceneBuilderOption) SessionBuilderOption {
	return func(s *session) {
		s.sceneOptions = append(s.sceneOptions, options...)
	}
}
