package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"go.uber.org/zap"
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	renderer renderer.Renderer
	logger   *zap.Logger

	modelCache map[string]model.Model

	backend loaderBackend
}

// Loader defines the public-facing interface for loading and caching meshes.
// It abstracts the file format behind a backend, normalizes every loaded mesh into
// the unit box, and uploads mesh buffers when a Renderer is configured.
type Loader interface {
	// Load imports a mesh file and caches the result by path.
	// If the mesh is already cached, the cached version is returned.
	// The backend is selected based on the file extension (.gltf/.glb → glTF backend).
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - model.Model: the loaded and cached model
	//   - error: error if loading fails
	Load(path string) (model.Model, error)

	// LoadReader imports a mesh from a reader stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key for the loaded model
	//   - r: the reader providing glTF or GLB data
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader) (model.Model, error)

	// LoadOrDefault loads path, falling back to the given model when path is empty
	// or loading fails. Failures are logged, never returned.
	//
	// Parameters:
	//   - path: the file path to the model file, may be empty
	//   - fallback: the model to use when no mesh can be loaded
	//
	// Returns:
	//   - model.Model: the loaded model or the fallback
	LoadOrDefault(path string, fallback model.Model) model.Model

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(name string) model.Model

	// Models returns a copy of the model cache.
	//
	// Returns:
	//   - map[string]model.Model: all cached models keyed by name
	Models() map[string]model.Model

	// InitMeshGPU uploads the vertex and index buffers of a model and attaches the resulting
	// provider. Procedural primitives use this directly since they bypass Load.
	// Models that already own a provider are left untouched.
	//
	// Parameters:
	//   - m: the model to upload
	//
	// Returns:
	//   - error: error if no Renderer is configured or the upload fails
	InitMeshGPU(m model.Model) error
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeGLTF)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:         sync.RWMutex{},
		logger:     zap.NewNop(),
		modelCache: make(map[string]model.Model),
	}

	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (model.Model, error) {
	if m := l.Get(path); m != nil {
		return m, nil
	}

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	imported, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	if imported.Name == "" {
		imported.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return l.store(path, imported)
}

func (l *loader) LoadReader(name string, r io.Reader) (model.Model, error) {
	if m := l.Get(name); m != nil {
		return m, nil
	}

	imported, err := l.backend.LoadReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}
	if imported.Name == "" {
		imported.Name = name
	}
	return l.store(name, imported)
}

func (l *loader) LoadOrDefault(path string, fallback model.Model) model.Model {
	if path == "" {
		return fallback
	}
	m, err := l.Load(path)
	if err != nil {
		l.logger.Warn("mesh load failed, using fallback",
			zap.String("path", path),
			zap.String("fallback", fallback.Name()),
			zap.Error(err))
		return fallback
	}
	l.logger.Info("mesh loaded",
		zap.String("path", path),
		zap.Int("vertices", len(m.Vertices())),
		zap.Int("indices", m.IndexCount()))
	return m
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}

func (l *loader) InitMeshGPU(m model.Model) error {
	if l.renderer == nil {
		return fmt.Errorf("loader: cannot InitMeshGPU without a Renderer")
	}
	if m.MeshProvider() != nil {
		return nil
	}
	provider := bind_group_provider.NewBindGroupProvider(m.Name() + "_mesh")
	if err := l.renderer.InitMeshBuffers(provider, m.VertexData(), m.IndexData(), m.IndexCount()); err != nil {
		return fmt.Errorf("failed to init mesh buffers for %q: %w", m.Name(), err)
	}
	m.SetMeshProvider(provider)
	return nil
}

// resolveBackend selects an appropriate loader backend based on the file extension.
// Currently only glTF/GLB is supported.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gltf", ".glb":
		return l.backend, nil
	default:
		return nil, fmt.Errorf("unsupported model format: %s", ext)
	}
}

// store normalizes an imported mesh into the unit box, builds the Model, uploads it when a
// Renderer is available and caches it under key.
func (l *loader) store(key string, imported *importedMesh) (model.Model, error) {
	model.NormalizeToUnitBox(imported.Vertices)
	m := model.NewModel(
		model.WithName(imported.Name),
		model.WithMesh(imported.Vertices, imported.Indices),
	)

	if l.renderer != nil {
		if err := l.InitMeshGPU(m); err != nil {
			return nil, err
		}
	}

	l.mu.Lock()
	l.modelCache[key] = m
	l.mu.Unlock()
	return m, nil
}
