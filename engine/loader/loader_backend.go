package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
)

// importedMesh is the CPU-side result of a backend import: every triangle primitive in
// the file merged into one vertex list and one index list.
type importedMesh struct {
	Name     string
	Vertices []model.GPUVertex
	Indices  []uint32
}

// loaderBackend defines the generic interface for loading meshes from files or streams.
// Concrete implementations (e.g., gltfLoaderBackendImpl) handle format-specific details.
type loaderBackend interface {
	// Load imports every triangle mesh from the given file path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *importedMesh: the merged mesh data
	//   - error: error if loading fails
	Load(path string) (*importedMesh, error)

	// LoadReader imports every triangle mesh from a reader stream.
	// Buffers referenced by external URIs cannot be resolved from a stream.
	//
	// Parameters:
	//   - r: the reader providing model data (glTF JSON or GLB)
	//
	// Returns:
	//   - *importedMesh: the merged mesh data
	//   - error: error if loading fails
	LoadReader(r io.Reader) (*importedMesh, error)
}
