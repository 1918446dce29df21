package pipeline

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithVertexShader sets the vertex shader for this pipeline.
//
// Parameters:
//   - s: the vertex shader to use for this pipeline
//
// Returns:
//   - PipelineBuilderOption: a function that sets the vertex shader for this pipeline
func WithVertexShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexShader = s
	}
}

// WithFragmentShader sets the fragment shader for this pipeline.
//
// Parameters:
//   - s: the fragment shader to use for this pipeline
//
// Returns:
//   - PipelineBuilderOption: a function that sets the fragment shader for this pipeline
func WithFragmentShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.fragmentShader = s
	}
}

// WithDepthTest turns the depth test on or off. A disabled test also disables depth writes,
// matching a GL pipeline with DEPTH_TEST off.
//
// Parameters:
//   - enabled: whether fragments are depth-compared
//
// Returns:
//   - PipelineBuilderOption: a function that sets the depth state for this pipeline
func WithDepthTest(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthTestEnabled = enabled
		p.depthWriteEnabled = enabled
	}
}

// WithBackfaceCulling culls back faces when enabled and nothing otherwise.
//
// Parameters:
//   - enabled: whether back faces are culled
//
// Returns:
//   - PipelineBuilderOption: a function that sets the cull mode for this pipeline
func WithBackfaceCulling(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		if enabled {
			p.cullMode = wgpu.CullModeBack
		} else {
			p.cullMode = wgpu.CullModeNone
		}
	}
}
