package model

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Tessellation used by the stock primitives.
const (
	SphereSlices   = 32
	SphereStacks   = 16
	CylinderSlices = 32
	TorusRings     = 48
	TorusSides     = 24

	// TorusMajorRadius and TorusMinorRadius keep the torus inside the unit box
	// (outer radius 0.5) lying flat in the XZ plane.
	TorusMajorRadius = 0.35
	TorusMinorRadius = 0.15
)

// degenerateArea is the squared cross-product length under which a grid triangle is dropped.
const degenerateArea = 1e-12

// Cube builds a unit cube spanning [-0.5, 0.5] on every axis with flat face normals.
func Cube() Model {
	faces := []struct{ n, u mgl32.Vec3 }{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
	}

	vertices := make([]GPUVertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		// u x v == n keeps each quad counter-clockwise seen from outside.
		v := f.n.Cross(f.u)
		c := f.n.Mul(0.5)
		base := uint32(len(vertices))
		corners := []mgl32.Vec3{
			c.Sub(f.u.Mul(0.5)).Sub(v.Mul(0.5)),
			c.Add(f.u.Mul(0.5)).Sub(v.Mul(0.5)),
			c.Add(f.u.Mul(0.5)).Add(v.Mul(0.5)),
			c.Sub(f.u.Mul(0.5)).Add(v.Mul(0.5)),
		}
		for _, p := range corners {
			vertices = append(vertices, NewGPUVertex(p, f.n))
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return NewModel(WithName("cube"), WithMesh(vertices, indices))
}

// Sphere builds a UV sphere of radius 0.5 centered at the origin.
//
// Parameters:
//   - slices: longitudinal segments (minimum 3)
//   - stacks: latitudinal segments (minimum 2)
//
// Returns:
//   - Model: the sphere mesh
func Sphere(slices, stacks int) Model {
	slices = max(slices, 3)
	stacks = max(stacks, 2)
	vertices, indices := grid(stacks, slices, func(i, j int) (mgl32.Vec3, mgl32.Vec3) {
		theta := math32.Pi * float32(i) / float32(stacks)
		phi := 2 * math32.Pi * float32(j) / float32(slices)
		sinT, cosT := sincos(theta)
		sinP, cosP := sincos(phi)
		n := mgl32.Vec3{sinT * cosP, cosT, sinT * sinP}
		return n.Mul(0.5), n
	})
	return NewModel(WithName("sphere"), WithMesh(vertices, indices))
}

// Cylinder builds a capped cylinder of radius 0.5 spanning y in [-0.5, 0.5].
//
// Parameters:
//   - slices: radial segments (minimum 3)
//
// Returns:
//   - Model: the cylinder mesh
func Cylinder(slices int) Model {
	slices = max(slices, 3)
	ring := func(i int) (float32, float32) {
		return sincos(2 * math32.Pi * float32(i) / float32(slices))
	}

	vertices, indices := grid(slices, 1, func(i, j int) (mgl32.Vec3, mgl32.Vec3) {
		sinP, cosP := ring(i)
		n := mgl32.Vec3{cosP, 0, sinP}
		return mgl32.Vec3{0.5 * cosP, float32(j) - 0.5, 0.5 * sinP}, n
	})

	for _, y := range []float32{0.5, -0.5} {
		n := mgl32.Vec3{0, 1, 0}
		if y < 0 {
			n = mgl32.Vec3{0, -1, 0}
		}
		center := uint32(len(vertices))
		vertices = append(vertices, NewGPUVertex(mgl32.Vec3{0, y, 0}, n))
		for i := 0; i <= slices; i++ {
			sinP, cosP := ring(i)
			vertices = append(vertices, NewGPUVertex(mgl32.Vec3{0.5 * cosP, y, 0.5 * sinP}, n))
		}
		for i := uint32(0); i < uint32(slices); i++ {
			a, b := center+1+i, center+2+i
			if y > 0 {
				indices = append(indices, center, b, a)
			} else {
				indices = append(indices, center, a, b)
			}
		}
	}
	return NewModel(WithName("cylinder"), WithMesh(vertices, indices))
}

// Torus builds a torus lying flat in the XZ plane with the given radii.
//
// Parameters:
//   - major: distance from the origin to the tube center
//   - minor: tube radius
//   - rings: segments around the major circle (minimum 3)
//   - sides: segments around the tube (minimum 3)
//
// Returns:
//   - Model: the torus mesh
func Torus(major, minor float32, rings, sides int) Model {
	rings = max(rings, 3)
	sides = max(sides, 3)
	vertices, indices := grid(rings, sides, func(i, j int) (mgl32.Vec3, mgl32.Vec3) {
		sinP, cosP := sincos(2 * math32.Pi * float32(i) / float32(rings))
		sinS, cosS := sincos(2 * math32.Pi * float32(j) / float32(sides))
		n := mgl32.Vec3{cosS * cosP, sinS, cosS * sinP}
		r := major + minor*cosS
		return mgl32.Vec3{r * cosP, minor * sinS, r * sinP}, n
	})
	return NewModel(WithName("torus"), WithMesh(vertices, indices))
}

// grid tessellates a (rows+1) x (cols+1) parametric patch.
// The surface must satisfy d(col) x d(row) pointing along the outward normal,
// which makes every emitted triangle counter-clockwise from outside.
// Triangles collapsed at poles are skipped.
func grid(rows, cols int, at func(i, j int) (mgl32.Vec3, mgl32.Vec3)) ([]GPUVertex, []uint32) {
	stride := cols + 1
	vertices := make([]GPUVertex, 0, (rows+1)*stride)
	for i := 0; i <= rows; i++ {
		for j := 0; j <= cols; j++ {
			vertices = append(vertices, NewGPUVertex(at(i, j)))
		}
	}

	indices := make([]uint32, 0, rows*cols*6)
	emit := func(a, b, c int) {
		pa := mgl32.Vec3(vertices[a].Position)
		pb := mgl32.Vec3(vertices[b].Position)
		pc := mgl32.Vec3(vertices[c].Position)
		if n := pb.Sub(pa).Cross(pc.Sub(pa)); n.Dot(n) < degenerateArea {
			return
		}
		indices = append(indices, uint32(a), uint32(b), uint32(c))
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			a := i*stride + j
			b := a + 1
			c := a + stride
			d := c + 1
			emit(a, b, c)
			emit(b, d, c)
		}
	}
	return vertices, indices
}

func sincos(x float32) (float32, float32) {
	return math32.Sin(x), math32.Cos(x)
}

// Bounds computes the axis-aligned bounding box of a vertex list.
// An empty list yields two zero vectors.
//
// Parameters:
//   - vertices: the vertices to measure
//
// Returns:
//   - mgl32.Vec3: the minimum corner
//   - mgl32.Vec3: the maximum corner
func Bounds(vertices []GPUVertex) (mgl32.Vec3, mgl32.Vec3) {
	if len(vertices) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	lo := mgl32.Vec3(vertices[0].Position)
	hi := lo
	for _, v := range vertices[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = math32.Min(lo[k], v.Position[k])
			hi[k] = math32.Max(hi[k], v.Position[k])
		}
	}
	return lo, hi
}

// NormalizeToUnitBox recenters vertices on the origin and scales them uniformly so the
// largest extent is 1, placing the mesh inside [-0.5, 0.5]^3. Normals are unchanged.
// A zero-extent mesh is only recentered.
//
// Parameters:
//   - vertices: the vertices to normalize in place
func NormalizeToUnitBox(vertices []GPUVertex) {
	lo, hi := Bounds(vertices)
	center := lo.Add(hi).Mul(0.5)
	ext := hi.Sub(lo)
	extent := math32.Max(ext[0], math32.Max(ext[1], ext[2]))
	scale := float32(1)
	if extent > 0 {
		scale = 1 / extent
	}
	for i := range vertices {
		p := mgl32.Vec3(vertices[i].Position).Sub(center).Mul(scale)
		vertices[i].Position = [3]float32(p)
	}
}
