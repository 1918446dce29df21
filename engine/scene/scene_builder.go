package scene

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"go.uber.org/zap"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithRenderer attaches the Renderer used by InitGPU, WriteFrame and DrawCalls.
// A scene without one can still Assemble.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) SceneBuilderOption {
	return func(s *scene) {
		s.r = r
	}
}

// WithLogger sets the scene's logger.
func WithLogger(logger *zap.Logger) SceneBuilderOption {
	return func(s *scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEntries sets the scene entries in draw order.
// Entries without IDs are assigned their 1-based position.
//
// Parameters:
//   - entries: the entries
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithEntries(entries ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		s.entries = append(s.entries, entries...)
	}
}

// WithMaterials sets the material table entries resolve against.
//
// Parameters:
//   - table: the material table
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithMaterials(table material.Table) SceneBuilderOption {
	return func(s *scene) {
		s.materials = table
	}
}

// WithComputeWorkers sets the number of worker goroutines used for the parallel phase
// of Assemble. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of compute workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithComputeWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.computeWorkers = n
	}
}
