package graphicsstate

import "errors"

// ErrStackUnderflow is returned when Q has no matching q
var ErrStackUnderflow = errors.New("graphics state stack underflow")

// Stack is the graphics state stack used by q and Q. It always holds at
// least the initial state.
type Stack struct {
	states []*GraphicsState
}

// NewStack creates a stack holding a copy of initial
func NewStack(initial *GraphicsState) *Stack {
	return &Stack{states: []*GraphicsState{initial.Clone()}}
}

// Push saves the current state (q operator). The new top is a deep copy of
// the previous one and is returned.
func (s *Stack) Push() *GraphicsState {
	top := s.Top().Clone()
	s.states = append(s.states, top)
	return top
}

// Pop restores the previously saved state (Q operator)
func (s *Stack) Pop() error {
	if len(s.states) <= 1 {
		return ErrStackUnderflow
	}
	s.states[len(s.states)-1] = nil
	s.states = s.states[:len(s.states)-1]
	return nil
}

// Top returns the current state
func (s *Stack) Top() *GraphicsState {
	return s.states[len(s.states)-1]
}

// Depth returns the number of saved states above the initial one
func (s *Stack) Depth() int {
	return len(s.states) - 1
}

// Len returns the number of states, including the initial one
func (s *Stack) Len() int {
	return len(s.states)
}

// At returns the state at index i, 0 being the initial state
func (s *Stack) At(i int) *GraphicsState {
	return s.states[i]
}

// View returns a read-only view of the stack
func (s *Stack) View() View {
	return View{s: s}
}

// View gives handlers read access to the state stack. States are returned
// by value; slices inside them must not be modified.
type View struct {
	s *Stack
}

// Top returns a copy of the current state
func (v View) Top() GraphicsState {
	return *v.s.Top()
}

// At returns a copy of the state at index i
func (v View) At(i int) GraphicsState {
	return *v.s.At(i)
}

// Len returns the number of states
func (v View) Len() int {
	return v.s.Len()
}

// Depth returns the number of saved states above the initial one
func (v View) Depth() int {
	return v.s.Depth()
}
