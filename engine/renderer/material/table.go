package material

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Material names in the viewer's table.
const (
	Platform = "platform"
	Torus    = "torus"
	Cube     = "cube"
	Cylinder = "cylinder"
	Bunny    = "bunny"
	Lamp     = "lamp"
	LampOff  = "lampOff"
)

// ErrUnknownMaterial is returned when a table lookup misses.
var ErrUnknownMaterial = errors.New("material: unknown material")

// Table is the fixed set of named scene materials. Only the bunny material is editable.
type Table interface {
	// Get looks up a material by name.
	//
	// Parameters:
	//   - name: the material name
	//
	// Returns:
	//   - Material: the material
	//   - error: ErrUnknownMaterial if no material has that name
	Get(name string) (Material, error)

	// MustGet looks up a material by name and panics on a miss.
	MustGet(name string) Material

	// Names returns the material names in sorted order.
	Names() []string
}

type table struct {
	materials map[string]Material
}

var _ Table = &table{}

func rgb(r, g, b float32) mgl32.Vec3 {
	return mgl32.Vec3{r, g, b}
}

// NewTable creates the stock material table.
//
// Returns:
//   - Table: a table holding the six fixed materials and the editable bunny material
func NewTable() Table {
	mats := []Material{
		NewMaterial(Platform, rgb(100, 50, 50), rgb(50, 50, 50), rgb(100, 100, 100), 50),
		NewMaterial(Torus, rgb(200, 25, 200), rgb(200, 25, 200), rgb(200, 200, 200), 80),
		NewMaterial(Cube, rgb(255, 230, 25), rgb(255, 230, 25), rgb(255, 255, 255), 60),
		NewMaterial(Cylinder, rgb(0, 150, 200), rgb(0, 150, 200), rgb(200, 200, 200), 70),
		NewMaterial(Lamp, rgb(255, 255, 255), rgb(255, 255, 255), rgb(200, 200, 200), 1),
		NewMaterial(LampOff, rgb(50, 50, 50), rgb(50, 50, 50), rgb(0, 0, 0), 1),
		NewEditableMaterial(Bunny, rgb(150, 150, 150), rgb(150, 150, 150), rgb(200, 200, 200), 100),
	}
	t := &table{materials: make(map[string]Material, len(mats))}
	for _, m := range mats {
		t.materials[m.Name()] = m
	}
	return t
}

func (t *table) Get(name string) (Material, error) {
	m, ok := t.materials[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
	}
	return m, nil
}

func (t *table) MustGet(name string) Material {
	m, err := t.Get(name)
	if err != nil {
		panic(err)
	}
	return m
}

func (t *table) Names() []string {
	names := make([]string, 0, len(t.materials))
	for name := range t.materials {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
