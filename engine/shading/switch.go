package shading

import "fmt"

// modeSwitch is the implementation of the Switch interface.
type modeSwitch struct {
	programs [2]Program
}

// Switch owns both programs and selects the active one from the phong option.
type Switch interface {
	// Select returns the program for the phong option. It only chooses; no state is touched.
	//
	// Parameters:
	//   - phong: true for per-fragment lighting
	//
	// Returns:
	//   - Program: the active program
	Select(phong bool) Program

	// Programs returns both programs, Gouraud first.
	Programs() []Program

	// Variants returns every pipeline description the renderer must register: each program
	// under each combination of culling and depth test.
	Variants() []Variant
}

// Variant pairs a program with one fixed-function state.
type Variant struct {
	Program Program
	Cull    bool
	Depth   bool
}

// Key returns the variant's pipeline key.
func (v Variant) Key() string {
	return v.Program.PipelineKey(v.Cull, v.Depth)
}

var _ Switch = &modeSwitch{}

// NewSwitch parses both embedded programs.
//
// Returns:
//   - Switch: the mode switch
//   - error: a shader parse error
func NewSwitch() (Switch, error) {
	s := &modeSwitch{}
	for _, mode := range []Mode{Gouraud, Phong} {
		p, err := NewProgram(mode)
		if err != nil {
			return nil, err
		}
		s.programs[mode] = p
	}
	return s, nil
}

// MustSwitch is NewSwitch for callers that treat a broken embedded program as fatal.
func MustSwitch() Switch {
	s, err := NewSwitch()
	if err != nil {
		panic(fmt.Sprintf("shading: %v", err))
	}
	return s
}

func (s *modeSwitch) Select(phong bool) Program {
	return s.programs[ModeOf(phong)]
}

func (s *modeSwitch) Programs() []Program {
	return s.programs[:]
}

func (s *modeSwitch) Variants() []Variant {
	out := make([]Variant, 0, 8)
	for _, p := range s.programs {
		for _, cull := range []bool{false, true} {
			for _, depth := range []bool{false, true} {
				out = append(out, Variant{Program: p, Cull: cull, Depth: depth})
			}
		}
	}
	return out
}
