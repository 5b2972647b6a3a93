// Package compiler implements the translator of spec.md §4.1: lowering an
// AST Statement into a flat Cmd instruction stream with resolved lexical
// addresses and thunk scaffolding for lazy bindings.
package compiler

// Op is a single VM instruction, spec.md §4.1's complete Cmd enumeration.
type Op byte

const (
	// Arithmetic
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpSurplus

	// Comparison
	OpEqual
	OpGreaterThan
	OpLessThan
	OpNot

	// Literal push
	OpNumberConst
	OpStringConst
	OpNullConst

	// Collection build
	OpConstructList
	OpConstructFunction
	OpConstructForeignFunction
	OpConstructBlock

	// OpNativeRecord pushes a host-built record (SPEC_FULL.md §4's stdlib
	// modules), not part of spec.md's core Cmd set but needed to seed the
	// outermost scope without re-deriving every stdlib value from bytecode.
	OpNativeRecord

	// Scope
	OpBlock
	OpExitScope

	// Binding access
	OpLoad
	OpStore

	// Control
	OpJumpRel
	OpJumpRelUnless
	OpReturn

	// Call
	OpCall
	OpAccess
	OpIndex
)

var opNames = map[Op]string{
	OpAdd: "Add", OpSub: "Sub", OpMul: "Mul", OpDiv: "Div", OpSurplus: "Surplus",
	OpEqual: "Equal", OpGreaterThan: "GreaterThan", OpLessThan: "LessThan", OpNot: "Not",
	OpNumberConst: "NumberConst", OpStringConst: "StringConst", OpNullConst: "NullConst",
	OpConstructList: "ConstructList", OpConstructFunction: "ConstructFunction",
	OpConstructForeignFunction: "ConstructForeignFunction", OpConstructBlock: "ConstructBlock",
	OpNativeRecord: "NativeRecord",
	OpBlock: "Block", OpExitScope: "ExitScope",
	OpLoad: "Load", OpStore: "Store",
	OpJumpRel: "JumpRel", OpJumpRelUnless: "JumpRelUnless", OpReturn: "Return",
	OpCall: "Call", OpAccess: "Access", OpIndex: "Index",
}

func (op Op) String() string {
	if n, ok := opNames[op]; ok {
		return n
	}
	return "UNKNOWN"
}
