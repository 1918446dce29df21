package session

// Options are the viewer's render toggles.
type Options struct {
	// BackfaceCulling culls back faces. Front faces wind counter-clockwise.
	BackfaceCulling bool `toml:"backface_culling" yaml:"backface_culling"`

	// DepthTest enables the depth compare and depth writes.
	DepthTest bool `toml:"depth_test" yaml:"depth_test"`

	// Phong selects per-fragment shading. Gouraud is used otherwise.
	Phong bool `toml:"phong" yaml:"phong"`
}

// DefaultOptions returns culling off, depth test on and Gouraud shading.
func DefaultOptions() Options {
	return Options{
		BackfaceCulling: false,
		DepthTest:       true,
		Phong:           false,
	}
}
