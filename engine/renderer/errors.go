package renderer

import "errors"

var (
	// ErrPipelineNotFound is returned by DrawCall for a key that was never registered.
	ErrPipelineNotFound = errors.New("renderer: render pipeline not found in cache")

	// ErrFrameInFlight is returned by BeginFrame while the previous surface texture is unpresented.
	ErrFrameInFlight = errors.New("renderer: previous frame surface not yet presented")

	// ErrIncompletePipeline is returned when a pipeline lacks its vertex or fragment shader.
	ErrIncompletePipeline = errors.New("renderer: both vertex and fragment shaders must be set")
)
