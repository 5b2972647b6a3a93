// Package vm implements the stack machine of spec.md §4.2: it executes the
// flat Cmd stream a compiler.Chunk holds against a value stack, a call
// stack, and a persistent scope chain (internal/scope).
package vm

import (
	"github.com/rail44/spctr/internal/compiler"
	"github.com/rail44/spctr/internal/object"
	"github.com/rail44/spctr/internal/scope"
)

// callFrame is spec.md §3.4's call-stack entry: an optional function
// identity (non-empty only for user-function entry frames, used for
// tail-call recognition), a return instruction address, and the scope to
// restore on Return.
type callFrame struct {
	funcID     string
	returnIP   int
	savedScope *scope.Scope

	// funcScope is the callee's captured scope at the moment this frame's
	// function was entered, non-nil only when funcID is non-empty. It is
	// compared against a prospective tail call's callee.Scope to decide
	// whether the call is genuine self-recursion (spec.md §4.2.3).
	funcScope *scope.Scope
}

// VM holds all execution state for one run of a chunk. It is not safe for
// concurrent use from multiple goroutines (spec.md §5's single-threaded
// invariant) — run separate VM instances for separate interpreter
// instances.
type VM struct {
	chunk *compiler.Chunk
	ip    int

	stack []object.Value
	calls []callFrame
	sc    *scope.Scope
}

// New constructs a VM ready to execute chunk from instruction 0 with an
// empty scope chain.
func New(chunk *compiler.Chunk) *VM {
	return &VM{
		chunk: chunk,
		stack: make([]object.Value, 0, 64),
		calls: make([]callFrame, 0, 64),
	}
}

// Run executes the chunk to completion and returns the final value left on
// the stack (spec.md §6: "the final value is printed to standard output").
func Run(chunk *compiler.Chunk) (object.Value, error) {
	v := New(chunk)
	return v.run()
}

func (v *VM) push(val object.Value) {
	v.stack = append(v.stack, val)
}

func (v *VM) pop() (object.Value, error) {
	n := len(v.stack)
	if n == 0 {
		return object.Value{}, errStackUnderflow
	}
	val := v.stack[n-1]
	v.stack = v.stack[:n-1]
	return val, nil
}

func (v *VM) peek() (object.Value, error) {
	n := len(v.stack)
	if n == 0 {
		return object.Value{}, errStackUnderflow
	}
	return v.stack[n-1], nil
}
