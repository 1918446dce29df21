package transform

import "github.com/go-gl/mathgl/mgl32"

// Stack is a LIFO stack of 4x4 model-view matrices. The top entry is the current
// composed transform. A Stack is owned by a single frame traversal and is not safe
// for concurrent use.
type Stack interface {
	// Load replaces the entire stack with a single base entry.
	//
	// Parameters:
	//   - m: the new base matrix
	Load(m mgl32.Mat4)

	// Push duplicates the top entry.
	// Panics if the stack has not been loaded.
	Push()

	// Pop removes the top entry.
	// Panics if doing so would remove the base entry.
	Pop()

	// Multiply right-multiplies the top entry in place: top = top * local.
	// Panics if the stack has not been loaded.
	//
	// Parameters:
	//   - local: the local transform to compose
	Multiply(local mgl32.Mat4)

	// Translate composes a translation onto the top entry.
	Translate(x, y, z float32)

	// Scale composes a scale onto the top entry.
	Scale(x, y, z float32)

	// Top returns the top entry without mutating the stack.
	// Panics if the stack has not been loaded.
	//
	// Returns:
	//   - mgl32.Mat4: a copy of the top matrix
	Top() mgl32.Mat4

	// Depth returns the number of entries, including the base.
	Depth() int
}

type stack struct {
	entries []mgl32.Mat4
}

var _ Stack = &stack{}

// NewStack creates an empty Stack. Load must be called before any other operation.
//
// Parameters:
//   - capacity: expected maximum depth, used to pre-size the backing slice
//
// Returns:
//   - Stack: the new stack
func NewStack(capacity int) Stack {
	return &stack{entries: make([]mgl32.Mat4, 0, max(capacity, 1))}
}

func (s *stack) Load(m mgl32.Mat4) {
	s.entries = append(s.entries[:0], m)
}

func (s *stack) Push() {
	s.entries = append(s.entries, s.top())
}

func (s *stack) Pop() {
	if len(s.entries) <= 1 {
		panic("transform: pop would underflow the base entry")
	}
	s.entries = s.entries[:len(s.entries)-1]
}

func (s *stack) Multiply(local mgl32.Mat4) {
	i := s.topIndex()
	s.entries[i] = s.entries[i].Mul4(local)
}

func (s *stack) Translate(x, y, z float32) {
	s.Multiply(mgl32.Translate3D(x, y, z))
}

func (s *stack) Scale(x, y, z float32) {
	s.Multiply(mgl32.Scale3D(x, y, z))
}

func (s *stack) Top() mgl32.Mat4 {
	return s.top()
}

func (s *stack) Depth() int {
	return len(s.entries)
}

func (s *stack) top() mgl32.Mat4 {
	return s.entries[s.topIndex()]
}

func (s *stack) topIndex() int {
	if len(s.entries) == 0 {
		panic("transform: stack used before Load")
	}
	return len(s.entries) - 1
}
