// Package object is the value model shared by the compiler and the VM
// (spec.md §3.2). Compound values implement Object and are shared,
// immutable, and owned by Go's garbage collector (see SPEC_FULL.md §6 on
// why this repo doesn't hand-roll reference counting).
package object

// Type identifies the runtime kind of a heap Object.
type Type string

const (
	StringType   Type = "STRING"
	ListType     Type = "LIST"
	FunctionType Type = "FUNCTION"
	BlockType    Type = "BLOCK"

	// NativeRecordType is a host-constructed record of already-evaluated
	// fields (SPEC_FULL.md §4's stdlib modules and decoded Json objects),
	// distinct from BlockType because it has no compiled entry address or
	// captured scope to lazily re-enter.
	NativeRecordType Type = "NATIVE_RECORD"
)

// Object is implemented by every heap-allocated (ValObj-kind) value.
type Object interface {
	Type() Type
	Inspect() string
	// Equals reports equality against another Object of possibly different
	// concrete type (cross-kind comparisons are false). Strings and lists
	// compare structurally; functions, blocks and native records compare
	// by identity.
	Equals(other Object) bool
}
