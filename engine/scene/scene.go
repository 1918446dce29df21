package scene

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/common/transform"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/shading"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

var (
	// ErrNoRenderer is returned by GPU operations on a Scene built without a Renderer.
	ErrNoRenderer = errors.New("scene: no renderer attached")

	// ErrNotInitialized is returned when frame data is written or drawn before InitGPU.
	ErrNotInitialized = errors.New("scene: GPU resources not initialized")

	// ErrMeshNotUploaded is returned when an entry's model has no mesh provider at draw time.
	ErrMeshNotUploaded = errors.New("scene: mesh not uploaded")
)

// DrawItem is one assembled scene entry, ready for upload and drawing.
type DrawItem struct {
	// Name is the entry name.
	Name string

	// ModelView is the entry's model-view matrix, view * placement.
	ModelView mgl32.Mat4

	// Normal is the inverse-transpose of ModelView's upper 3x3, embedded in a 4x4.
	Normal mgl32.Mat4

	// MaterialName is the material bound for this draw.
	MaterialName string

	// Material is the material bound for this draw.
	Material material.Material

	// Model is the entry's mesh.
	Model model.Model

	// DrawData is the marshaled per-draw uniform (model-view and normal matrices).
	DrawData []byte

	// MaterialData is the marshaled material uniform.
	MaterialData []byte
}

// Scene is the viewer's fixed scene: an ordered list of entries drawn in the same order
// every frame, the material table they resolve against, and the GPU uniform providers
// that feed the shading programs. The entry list never changes after construction; only
// the lights and the bunny material that entries read from do.
// Thread-safe for concurrent access.
type Scene interface {
	// Entries returns the scene entries in draw order.
	Entries() []game_object.GameObject

	// Entry looks up an entry by name.
	//
	// Parameters:
	//   - name: the entry name
	//
	// Returns:
	//   - game_object.GameObject: the entry or nil
	Entry(name string) game_object.GameObject

	// Materials returns the material table entries resolve against.
	Materials() material.Table

	// Assemble walks the entries with a transform stack loaded with view and returns one
	// DrawItem per enabled entry, in draw order. Normal matrices and uniform bytes are
	// computed on the scene's worker pool and joined before returning.
	//
	// Parameters:
	//   - view: the current view matrix
	//
	// Returns:
	//   - []DrawItem: the assembled draws
	//   - error: error wrapping material.ErrUnknownMaterial if an entry names a missing material
	Assemble(view mgl32.Mat4) ([]DrawItem, error)

	// InitGPU creates the camera, light and per-entry uniform providers using the bind group
	// layouts of program. Both programs share one layout, so this runs once.
	//
	// Parameters:
	//   - program: a shading program whose declarations name the uniform providers
	//
	// Returns:
	//   - error: ErrNoRenderer, a layout resolution error or a GPU allocation error
	InitGPU(program shading.Program) error

	// WriteFrame uploads the frame's camera, light and per-entry uniforms in one batch.
	//
	// Parameters:
	//   - cam: the camera uniform
	//   - lights: the view-space light uniforms
	//   - items: the assembled draws
	//
	// Returns:
	//   - error: ErrNoRenderer or ErrNotInitialized
	WriteFrame(cam camera.GPUCameraUniform, lights light.FrameLights, items []DrawItem) error

	// DrawCalls issues one draw call per item with the keyed pipeline. Must be called
	// between the renderer's BeginFrame and EndFrame.
	//
	// Parameters:
	//   - pipelineKey: the active program's pipeline variant key
	//   - items: the assembled draws
	//
	// Returns:
	//   - error: the first draw error, or ErrMeshNotUploaded
	DrawCalls(pipelineKey string, items []DrawItem) error

	// Release frees the scene's uniform providers. Meshes belong to the loader.
	Release()
}

type scene struct {
	mu *sync.RWMutex

	r         renderer.Renderer
	logger    *zap.Logger
	entries   []game_object.GameObject
	materials material.Table
	stack     transform.Stack

	// GPU uniform providers, populated by InitGPU.
	layout       uniformLayout
	cameraBGP    bind_group_provider.BindGroupProvider
	lightsBGP    bind_group_provider.BindGroupProvider
	entryBGPs    map[string]bind_group_provider.BindGroupProvider
	initialized  bool
	writePool    []bind_group_provider.BufferWrite
	drawBGPsPool []bind_group_provider.BindGroupProvider

	// computePool runs the per-entry normal matrix and marshal work. Workers persist
	// across frames.
	computePool    worker.DynamicWorkerPool
	computeWorkers int
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene. Without WithEntries the scene is empty, and without
// WithMaterials it resolves against material.NewTable().
// Panics if two entries share a name.
//
// Parameters:
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:             &sync.RWMutex{},
		logger:         zap.NewNop(),
		computeWorkers: max(runtime.NumCPU()-1, 1),
		entryBGPs:      make(map[string]bind_group_provider.BindGroupProvider),
		drawBGPsPool:   make([]bind_group_provider.BindGroupProvider, 0, 3),
	}

	for _, option := range options {
		option(s)
	}

	if s.materials == nil {
		s.materials = material.NewTable()
	}

	seen := make(map[string]bool, len(s.entries))
	for i, e := range s.entries {
		if seen[e.Name()] {
			panic(fmt.Sprintf("scene: NewScene duplicate entry name %q", e.Name()))
		}
		seen[e.Name()] = true
		if e.ID() == 0 {
			e.SetID(uint64(i + 1))
		}
	}

	// Base entry plus one pushed entry per draw.
	s.stack = transform.NewStack(2)

	// Initialize the compute pool after options so WithComputeWorkers can override the default.
	s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)
	return s
}

func (s *scene) Entries() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]game_object.GameObject, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *scene) Entry(name string) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.Name() == name {
			return e
		}
	}
	return nil
}

func (s *scene) Materials() material.Table {
	return s.materials
}

func (s *scene) Assemble(view mgl32.Mat4) ([]DrawItem, error) {
	// The stack is shared scene state, so the walk takes the write lock.
	s.mu.Lock()
	defer s.mu.Unlock()

	// Phase 1: serial stack walk. Each entry composes onto a fresh copy of the view.
	items := make([]DrawItem, 0, len(s.entries))
	s.stack.Load(view)
	for _, e := range s.entries {
		if !e.Enabled() {
			continue
		}
		s.stack.Push()
		for _, op := range e.Placement() {
			s.stack.Multiply(op.Matrix())
		}
		modelView := s.stack.Top()
		s.stack.Pop()

		name := e.MaterialName()
		mat, err := s.materials.Get(name)
		if err != nil {
			return nil, fmt.Errorf("scene: entry %q: %w", e.Name(), err)
		}
		items = append(items, DrawItem{
			Name:         e.Name(),
			ModelView:    modelView,
			MaterialName: name,
			Material:     mat,
			Model:        e.Model(),
		})
	}

	// Phase 2: parallel normal matrix and marshal work on the compute pool. Each task owns
	// one item, so no further locking is needed. A WaitGroup is the per-frame barrier.
	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		item := &items[i]
		s.computePool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				draw := game_object.NewGPUDrawUniform(item.ModelView)
				item.Normal = mgl32.Mat4(draw.Normals)
				item.DrawData = draw.Marshal()
				gpuMat := item.Material.ToGPU()
				item.MaterialData = gpuMat.Marshal()
				return nil, nil
			},
		})
	}
	wg.Wait()

	return items, nil
}

func (s *scene) InitGPU(program shading.Program) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.r == nil {
		return ErrNoRenderer
	}
	if s.initialized {
		return nil
	}

	layout, err := resolveUniformLayout(program.VertexShader())
	if err != nil {
		return err
	}
	s.layout = layout

	s.cameraBGP = bind_group_provider.NewBindGroupProvider("camera", bind_group_provider.WithGroup(layout.camera.group))
	if err := s.r.InitBindGroup(s.cameraBGP, layout.descriptor(layout.camera.group), nil, nil); err != nil {
		return fmt.Errorf("scene: failed to init camera bind group: %w", err)
	}

	// The light array is a runtime-sized storage binding, so its size comes from the set.
	lightsSize := map[int]uint64{
		layout.lights.binding: uint64(light.NumLights * (&light.GPULight{}).Size()),
	}
	s.lightsBGP = bind_group_provider.NewBindGroupProvider("lights", bind_group_provider.WithGroup(layout.lights.group))
	if err := s.r.InitBindGroup(s.lightsBGP, layout.descriptor(layout.lights.group), nil, lightsSize); err != nil {
		return fmt.Errorf("scene: failed to init lights bind group: %w", err)
	}

	// Entries share the first entry's layout; only its provider releases it.
	var entryLayout *wgpu.BindGroupLayout
	for _, e := range s.entries {
		opts := []bind_group_provider.BindGroupProviderOption{bind_group_provider.WithGroup(layout.material.group)}
		if entryLayout != nil {
			opts = append(opts, bind_group_provider.WithBindGroupLayout(entryLayout))
		}
		bgp := bind_group_provider.NewBindGroupProvider(e.Name()+"_uniforms", opts...)
		if err := s.r.InitBindGroup(bgp, layout.descriptor(layout.material.group), nil, nil); err != nil {
			return fmt.Errorf("scene: failed to init bind group for %q: %w", e.Name(), err)
		}
		entryLayout = bgp.BindGroupLayout()
		s.entryBGPs[e.Name()] = bgp
	}

	s.initialized = true
	s.logger.Info("scene uniforms ready",
		zap.Int("entries", len(s.entries)),
		zap.Int("computeWorkers", s.computeWorkers),
	)
	return nil
}

func (s *scene) WriteFrame(cam camera.GPUCameraUniform, lights light.FrameLights, items []DrawItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.r == nil {
		return ErrNoRenderer
	}
	if !s.initialized {
		return ErrNotInitialized
	}

	writes := s.writePool[:0]
	writes = append(writes,
		bind_group_provider.BufferWrite{Provider: s.cameraBGP, Binding: s.layout.camera.binding, Data: cam.Marshal()},
		bind_group_provider.BufferWrite{Provider: s.lightsBGP, Binding: s.layout.lightHeader.binding, Data: lights.Header.Marshal()},
		bind_group_provider.BufferWrite{Provider: s.lightsBGP, Binding: s.layout.lights.binding, Data: lights.MarshalLights()},
	)
	for _, item := range items {
		bgp, ok := s.entryBGPs[item.Name]
		if !ok {
			continue
		}
		writes = append(writes,
			bind_group_provider.BufferWrite{Provider: bgp, Binding: s.layout.material.binding, Data: item.MaterialData},
			bind_group_provider.BufferWrite{Provider: bgp, Binding: s.layout.draw.binding, Data: item.DrawData},
		)
	}
	s.r.WriteBuffers(writes)
	s.writePool = writes
	return nil
}

func (s *scene) DrawCalls(pipelineKey string, items []DrawItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.r == nil {
		return ErrNoRenderer
	}
	if !s.initialized {
		return ErrNotInitialized
	}

	for _, item := range items {
		if item.Model == nil || item.Model.MeshProvider() == nil {
			return fmt.Errorf("%w: %q", ErrMeshNotUploaded, item.Name)
		}
		bgp, ok := s.entryBGPs[item.Name]
		if !ok {
			continue
		}
		bindGroups, err := bind_group_provider.Arrange(s.drawBGPsPool, s.cameraBGP, s.lightsBGP, bgp)
		if err != nil {
			return fmt.Errorf("scene: draw %q: %w", item.Name, err)
		}
		s.drawBGPsPool = bindGroups
		if err := s.r.DrawCall(pipelineKey, item.Model.MeshProvider(), bindGroups); err != nil {
			return fmt.Errorf("scene: draw %q: %w", item.Name, err)
		}
	}
	return nil
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cameraBGP != nil {
		s.cameraBGP.Release()
		s.cameraBGP = nil
	}
	if s.lightsBGP != nil {
		s.lightsBGP.Release()
		s.lightsBGP = nil
	}
	for name, bgp := range s.entryBGPs {
		bgp.Release()
		delete(s.entryBGPs, name)
	}
	s.initialized = false
}
