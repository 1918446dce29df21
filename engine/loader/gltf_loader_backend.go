package loader

import (
	"errors"
	"fmt"
	"io"

	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ErrNoTriangles is returned when a file holds no triangle primitives with positions.
var ErrNoTriangles = errors.New("loader: no triangle primitives found")

// gltfLoaderBackendImpl is a loaderBackend implementation for glTF/GLB files backed by qmuntal/gltf.
type gltfLoaderBackendImpl struct{}

var _ loaderBackend = &gltfLoaderBackendImpl{}

// newGLTFLoaderBackend creates a new glTF loader backend.
//
// Returns:
//   - loaderBackend: the loader backend for glTF/GLB files
func newGLTFLoaderBackend() loaderBackend {
	return &gltfLoaderBackendImpl{}
}

func (b *gltfLoaderBackendImpl) Load(path string) (*importedMesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open gltf: %w", err)
	}
	return b.extract(doc)
}

func (b *gltfLoaderBackendImpl) LoadReader(r io.Reader) (*importedMesh, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to decode gltf: %w", err)
	}
	return b.extract(doc)
}

// extract merges every triangle primitive of every mesh into one indexed mesh.
// Node transforms are not applied; callers normalize the result to a unit box.
func (b *gltfLoaderBackendImpl) extract(doc *gltf.Document) (*importedMesh, error) {
	out := &importedMesh{}
	for mi, mesh := range doc.Meshes {
		if out.Name == "" {
			out.Name = mesh.Name
		}
		for pi, prim := range mesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			if err := b.appendPrimitive(out, doc, prim); err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
		}
	}
	if len(out.Indices) == 0 {
		return nil, ErrNoTriangles
	}
	return out, nil
}

func (b *gltfLoaderBackendImpl) appendPrimitive(out *importedMesh, doc *gltf.Document, prim *gltf.Primitive) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("failed to read positions: %w", err)
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return fmt.Errorf("failed to read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	var normals [][3]float32
	if nIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err = modeler.ReadNormal(doc, doc.Accessors[nIdx], nil)
		if err != nil {
			return fmt.Errorf("failed to read normals: %w", err)
		}
	}
	if len(normals) != len(positions) {
		normals = smoothNormals(positions, indices)
	}

	base := uint32(len(out.Vertices))
	for i := range positions {
		out.Vertices = append(out.Vertices, model.GPUVertex{Position: positions[i], Normal: normals[i]})
	}
	for _, idx := range indices {
		if int(idx) >= len(positions) {
			return fmt.Errorf("index %d out of range (%d vertices)", idx, len(positions))
		}
		out.Indices = append(out.Indices, base+idx)
	}
	return nil
}

// smoothNormals computes area-weighted vertex normals from counter-clockwise triangles.
// Vertices touched by no triangle get +Y.
func smoothNormals(positions [][3]float32, indices []uint32) [][3]float32 {
	acc := make([]mgl32.Vec3, len(positions))
	for k := 0; k+2 < len(indices); k += 3 {
		ia, ib, ic := indices[k], indices[k+1], indices[k+2]
		if int(ia) >= len(positions) || int(ib) >= len(positions) || int(ic) >= len(positions) {
			continue
		}
		a, bb, c := mgl32.Vec3(positions[ia]), mgl32.Vec3(positions[ib]), mgl32.Vec3(positions[ic])
		n := bb.Sub(a).Cross(c.Sub(a))
		acc[ia] = acc[ia].Add(n)
		acc[ib] = acc[ib].Add(n)
		acc[ic] = acc[ic].Add(n)
	}

	normals := make([][3]float32, len(positions))
	for i, n := range acc {
		if n.Len() == 0 {
			normals[i] = [3]float32{0, 1, 0}
			continue
		}
		normals[i] = [3]float32(n.Normalize())
	}
	return normals
}
