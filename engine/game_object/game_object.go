package game_object

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// LampScale is the uniform scale applied to lamp markers after translating them to their light.
const LampScale = 0.4

// OpKind identifies a placement operation.
type OpKind int

const (
	// OpTranslate moves the object by V.
	OpTranslate OpKind = iota
	// OpScale scales the object by V per axis.
	OpScale
)

// Op is one placement operation. A placement is a list of Ops applied to the transform
// stack in order, so the first Op ends up as the leftmost factor of the local transform.
type Op struct {
	Kind OpKind
	V    mgl32.Vec3
}

// Translate returns a translation Op.
func Translate(x, y, z float32) Op {
	return Op{Kind: OpTranslate, V: mgl32.Vec3{x, y, z}}
}

// Scale returns a per-axis scale Op.
func Scale(x, y, z float32) Op {
	return Op{Kind: OpScale, V: mgl32.Vec3{x, y, z}}
}

// UniformScale returns a scale Op with the same factor on every axis.
func UniformScale(s float32) Op {
	return Scale(s, s, s)
}

// Matrix returns the 4x4 matrix for the Op.
func (o Op) Matrix() mgl32.Mat4 {
	if o.Kind == OpScale {
		return mgl32.Scale3D(o.V.X(), o.V.Y(), o.V.Z())
	}
	return mgl32.Translate3D(o.V.X(), o.V.Y(), o.V.Z())
}

type gameObject struct {
	id           uint64
	name         string
	enabled      atomic.Bool
	mdl          model.Model
	materialName string
	placement    []Op
	lamp         light.Light
}

// GameObject defines the interface for a fixed scene entry: a mesh, the name of its
// material in the material table, and the placement that positions it in the scene.
// A GameObject with an attached lamp Light is a lamp marker: its placement follows the
// light's position and its material follows the light's enabled flag.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the entry name, used for logging and draw-order lookups.
	//
	// Returns:
	//   - string: the entry name
	Name() string

	// Enabled returns whether this object is drawn.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Model returns the Model associated with this object, or nil if not set.
	//
	// Returns:
	//   - model.Model: the associated model or nil
	Model() model.Model

	// MaterialName returns the material table key to bind for this object this frame.
	// Lamp markers resolve to material.Lamp while their light is enabled and material.LampOff otherwise.
	//
	// Returns:
	//   - string: the material name
	MaterialName() string

	// Placement returns the ordered placement operations for this frame.
	// Lamp markers translate to their light's world position then scale by LampScale.
	//
	// Returns:
	//   - []Op: the placement operations, first applied first
	Placement() []Op

	// LocalTransform composes Placement into one matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the product of every placement matrix in order
	LocalTransform() mgl32.Mat4

	// Lamp returns the Light this object marks, or nil for ordinary entries.
	//
	// Returns:
	//   - light.Light: the marked light or nil
	Lamp() light.Light

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled sets whether the object is drawn.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetModel assigns a Model to this object.
	//
	// Parameters:
	//   - m: the Model to associate
	SetModel(m model.Model)

	// SetLamp turns this object into a marker for l. Pass nil to detach.
	//
	// Parameters:
	//   - l: the Light to mark, or nil to detach
	SetLamp(l light.Light)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// Objects are enabled by default.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) MaterialName() string {
	if g.lamp == nil {
		return g.materialName
	}
	if g.lamp.Enabled() {
		return material.Lamp
	}
	return material.LampOff
}

func (g *gameObject) Placement() []Op {
	if g.lamp == nil {
		return g.placement
	}
	p := g.lamp.Position()
	return []Op{Translate(p.X(), p.Y(), p.Z()), UniformScale(LampScale)}
}

func (g *gameObject) LocalTransform() mgl32.Mat4 {
	m := mgl32.Ident4()
	for _, op := range g.Placement() {
		m = m.Mul4(op.Matrix())
	}
	return m
}

func (g *gameObject) Lamp() light.Light {
	return g.lamp
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetModel(m model.Model) {
	g.mdl = m
}

func (g *gameObject) SetLamp(l light.Light) {
	g.lamp = l
}
