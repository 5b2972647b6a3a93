package object

// Invoker lets a foreign (Go-implemented) function call back into the
// running program: invoke any function value synchronously, or force a
// block's lazily-evaluated field. The vm package's VM implements this;
// object never imports vm, for the same reason it never imports scope
// (see ScopeRef) — it is only an opaque capability handed to callbacks.
type Invoker interface {
	Invoke(fn Value, args []Value) (Value, error)
	ForceField(blk *Block, name string) (Value, error)
}
