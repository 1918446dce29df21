package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend
	logger      *zap.Logger

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           wgpu.Color
}

// Renderer is the viewer's high-level GPU API. It caches registered pipelines by key, creates
// mesh and bind group resources for providers, and records one render pass per frame.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key, or nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the cached pipeline, or nil
	Pipeline(key string) pipeline.Pipeline

	// Pipelines returns a copy of the pipeline cache.
	Pipelines() map[string]pipeline.Pipeline

	// RegisterPipelines creates GPU pipelines for the given descriptions and caches them by key.
	// Keys already in the cache are skipped.
	//
	// Parameters:
	//   - pipelines: render pipeline descriptions with both shaders set
	//
	// Returns:
	//   - error: the first pipeline creation error
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize reconfigures the surface and the depth and MSAA targets. Zero sizes are ignored.
	//
	// Parameters:
	//   - width, height: the new framebuffer size in pixels
	Resize(width, height int)

	// InitMeshBuffers creates and fills the vertex and index buffers of a mesh provider.
	//
	// Parameters:
	//   - provider: the mesh provider receiving the buffers
	//   - vertexData: tightly packed vertex bytes
	//   - indexData: little-endian uint32 indices
	//   - indexCount: the number of indices
	//
	// Returns:
	//   - error: a buffer creation error
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates the layout, any missing buffers and the bind group of a provider.
	// Buffers are sized by the entry's MinBindingSize unless bufferSizeOverrides names the binding.
	//
	// Parameters:
	//   - provider: the provider receiving the bind group
	//   - descriptor: the bind group layout descriptor parsed from a shader
	//   - bufferUsageOverrides: extra usage flags per binding
	//   - bufferSizeOverrides: buffer sizes per binding
	//
	// Returns:
	//   - error: a layout, buffer or bind group creation error
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error

	// WriteBuffers uploads a batch of writes to provider buffers. Writes failing Validate are
	// logged and dropped; writes to missing buffers are skipped.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next surface texture and begins the frame's render pass,
	// clearing color and depth.
	//
	// Returns:
	//   - error: an error if the surface texture cannot be acquired
	BeginFrame() error

	// DrawCall records one indexed draw with the keyed pipeline. Bind groups are set at
	// indices matching their position in bindGroups.
	//
	// Parameters:
	//   - pipelineKey: the key of a registered pipeline
	//   - meshProvider: the provider holding the vertex and index buffers
	//   - bindGroups: the providers for groups 0..n-1
	//
	// Returns:
	//   - error: an error if the pipeline is not registered
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the render pass and submits the frame's commands.
	EndFrame()

	// Present presents the frame's surface texture.
	Present()

	// SetPresentMode changes the present mode; it takes effect on the next Resize.
	SetPresentMode(mode PresentMode)

	// Release frees the device, surface and render targets.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer for the given window. The surface is configured to the
// window's current framebuffer size.
//
// Parameters:
//   - backendType: the type of rendering backend to use
//   - window: the window providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
		logger:        zap.NewNop(),
		presentMode:   PresentModeVSync,
		msaa:          MSAA4x,
		clearColor:    wgpu.Color{R: 0, G: 0, B: 0, A: 1},
	}

	// Options are applied first so config flags are available before the adapter is requested.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa, r.clearColor)
	}
	r.backend.SetPresentMode(r.presentMode)
	r.backend.ConfigureSurface(window.Width(), window.Height())
	r.logger.Info("renderer ready",
		zap.Int("width", window.Width()),
		zap.Int("height", window.Height()),
		zap.Uint32("msaa", uint32(r.msaa)),
	)
	return r
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Pipelines() map[string]pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]pipeline.Pipeline, len(r.pipelineCache))
	for k, p := range r.pipelineCache {
		out[k] = p
	}
	return out
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("renderer: registering pipeline %q: %w", key, err)
		}
		r.pipelineCache[key] = p
		r.logger.Debug("registered pipeline", zap.String("key", key))
	}
	return nil
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error {
	return r.backend.InitBindGroup(provider, descriptor, bufferUsageOverrides, bufferSizeOverrides)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	valid := make([]bind_group_provider.BufferWrite, 0, len(writes))
	for _, w := range writes {
		if err := w.Validate(); err != nil {
			r.logger.Warn("dropping buffer write", zap.Error(err))
			continue
		}
		valid = append(valid, w)
	}
	r.backend.WriteBuffers(valid)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	r.mu.Unlock()

	if !exists {
		return fmt.Errorf("%w: %q", ErrPipelineNotFound, pipelineKey)
	}

	r.backend.DrawCall(p, meshProvider, bindGroups)
	return nil
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.backend.Release()
}
