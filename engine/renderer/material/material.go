package material

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MaxColor is the upper bound of a reflectance component.
	MaxColor float32 = 255

	// MaxShininess is the upper bound of the specular exponent.
	MaxShininess float32 = 999
)

// ErrReadOnly is returned when editing a material that is not editable.
var ErrReadOnly = errors.New("material: read-only material")

// material is the implementation of the Material interface.
type material struct {
	mu *sync.Mutex

	name      string
	ka        mgl32.Vec3
	kd        mgl32.Vec3
	ks        mgl32.Vec3
	shininess float32
	editable  bool
}

// Material is a Phong surface description: ambient, diffuse and specular reflectance as
// 0-255 RGB triples plus a shininess exponent.
//
// Fixed materials reject edits with ErrReadOnly. Editable materials clamp colors to
// [0, MaxColor] and shininess to [0, MaxShininess].
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Ka returns the ambient reflectance.
	Ka() mgl32.Vec3

	// Kd returns the diffuse reflectance.
	Kd() mgl32.Vec3

	// Ks returns the specular reflectance.
	Ks() mgl32.Vec3

	// Shininess returns the specular exponent.
	Shininess() float32

	// Editable reports whether the Set* methods are accepted.
	Editable() bool

	// SetKa sets the ambient reflectance.
	//
	// Returns:
	//   - error: ErrReadOnly for fixed materials
	SetKa(ka mgl32.Vec3) error

	// SetKd sets the diffuse reflectance.
	//
	// Returns:
	//   - error: ErrReadOnly for fixed materials
	SetKd(kd mgl32.Vec3) error

	// SetKs sets the specular reflectance.
	//
	// Returns:
	//   - error: ErrReadOnly for fixed materials
	SetKs(ks mgl32.Vec3) error

	// SetShininess sets the specular exponent.
	//
	// Returns:
	//   - error: ErrReadOnly for fixed materials
	SetShininess(shininess float32) error

	// ToGPU converts the material to its GPU layout.
	//
	// Returns:
	//   - GPUMaterial: the uniform bundle for this material
	ToGPU() GPUMaterial
}

var _ Material = &material{}

// NewMaterial creates a fixed (read-only) material.
//
// Parameters:
//   - name: the material identifier
//   - ka, kd, ks: reflectance triples in 0-255
//   - shininess: specular exponent
//
// Returns:
//   - Material: the new material
func NewMaterial(name string, ka, kd, ks mgl32.Vec3, shininess float32) Material {
	return &material{mu: &sync.Mutex{}, name: name, ka: ka, kd: kd, ks: ks, shininess: shininess}
}

// NewEditableMaterial creates a material that accepts edits. Initial values are clamped
// the same way edits are.
//
// Parameters:
//   - name: the material identifier
//   - ka, kd, ks: reflectance triples in 0-255
//   - shininess: specular exponent
//
// Returns:
//   - Material: the new material
func NewEditableMaterial(name string, ka, kd, ks mgl32.Vec3, shininess float32) Material {
	return &material{
		mu:        &sync.Mutex{},
		name:      name,
		ka:        clampColor(ka),
		kd:        clampColor(kd),
		ks:        clampColor(ks),
		shininess: common.Clamp(shininess, 0, MaxShininess),
		editable:  true,
	}
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Ka() mgl32.Vec3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ka
}

func (m *material) Kd() mgl32.Vec3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.kd
}

func (m *material) Ks() mgl32.Vec3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ks
}

func (m *material) Shininess() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shininess
}

func (m *material) Editable() bool {
	return m.editable
}

func (m *material) SetKa(ka mgl32.Vec3) error {
	return m.edit(func() { m.ka = clampColor(ka) })
}

func (m *material) SetKd(kd mgl32.Vec3) error {
	return m.edit(func() { m.kd = clampColor(kd) })
}

func (m *material) SetKs(ks mgl32.Vec3) error {
	return m.edit(func() { m.ks = clampColor(ks) })
}

func (m *material) SetShininess(shininess float32) error {
	return m.edit(func() { m.shininess = common.Clamp(shininess, 0, MaxShininess) })
}

func (m *material) ToGPU() GPUMaterial {
	m.mu.Lock()
	defer m.mu.Unlock()
	return GPUMaterial{Ka: m.ka, Kd: m.kd, Ks: m.ks, Shininess: m.shininess}
}

// edit applies fn under the lock when the material is editable.
func (m *material) edit(fn func()) error {
	if !m.editable {
		return fmt.Errorf("%w: %s", ErrReadOnly, m.name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	fn()
	return nil
}

func clampColor(c mgl32.Vec3) mgl32.Vec3 {
	for i := range c {
		c[i] = common.Clamp(c[i], 0, MaxColor)
	}
	return c
}
