// Package scope implements the persistent lexical scope chain of
// spec.md §3.3: a cons-list of frames, each an ordered array of bindings
// that are either an unevaluated thunk address or an already-computed
// value. The one-way thunk → value transition is the only mutation this
// package permits (spec.md §3.3's invariant), guarded by the VM's
// single-threaded execution model (spec.md §5).
package scope

import "github.com/rail44/spctr/internal/object"

// State distinguishes an unevaluated binding from an evaluated one.
type State uint8

const (
	Cmd State = iota
	Evaluated
)

// Binding is one named slot in a Frame. It mirrors original_source's
// Bind::Cmd / Bind::Evaluated transition (see DESIGN.md).
type Binding struct {
	State State
	Addr  int // instruction address of the thunk, valid when State == Cmd
	Value object.Value
}

// Frame is one lexical level's ordered array of binding slots.
type Frame struct {
	Bindings []Binding
}

// NewFrame allocates a frame of n unevaluated bindings, each a thunk
// starting at addrs[i] (spec.md §4.2.2's Block instruction).
func NewFrame(addrs []int) *Frame {
	f := &Frame{Bindings: make([]Binding, len(addrs))}
	for i, a := range addrs {
		f.Bindings[i] = Binding{State: Cmd, Addr: a}
	}
	return f
}

// NewEvaluatedFrame allocates a frame whose slots already hold values
// (spec.md §4.2.3's argument frame for a function call).
func NewEvaluatedFrame(values []object.Value) *Frame {
	f := &Frame{Bindings: make([]Binding, len(values))}
	for i, v := range values {
		f.Bindings[i] = Binding{State: Evaluated, Value: v}
	}
	return f
}

// Scope is a persistently-shared cons-list of frames. Pushing returns a
// new head; existing references to the old Scope remain valid because the
// tail is never mutated (spec.md §3.3).
type Scope struct {
	Frame  *Frame
	Parent *Scope
}

// Push prepends frame onto scope (scope may be nil for the outermost push).
func Push(parent *Scope, frame *Frame) *Scope {
	return &Scope{Frame: frame, Parent: parent}
}

// Pop returns the scope with its head frame removed.
func (s *Scope) Pop() *Scope {
	if s == nil {
		return nil
	}
	return s.Parent
}

// Ancestor walks depth frames outward (0 = s itself).
func (s *Scope) Ancestor(depth int) *Scope {
	cur := s
	for i := 0; i < depth && cur != nil; i++ {
		cur = cur.Parent
	}
	return cur
}

// Get returns the binding at slot in s's own frame.
func (s *Scope) Get(slot int) Binding {
	return s.Frame.Bindings[slot]
}

// SetEvaluated upgrades slot to an evaluated value. Per spec.md §3.3 this
// transition happens at most once per binding.
func (s *Scope) SetEvaluated(slot int, v object.Value) {
	s.Frame.Bindings[slot] = Binding{State: Evaluated, Value: v}
}
