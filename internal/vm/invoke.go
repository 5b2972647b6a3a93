package vm

import (
	"github.com/rail44/spctr/internal/object"
	"github.com/rail44/spctr/internal/scope"
)

// Invoke lets a foreign function call back into the program: it runs fn to
// completion (recursively dispatching if fn is native) and returns its
// value, then resumes the dispatch that was in progress when the foreign
// function was entered. Implements object.Invoker.
func (v *VM) Invoke(fnVal object.Value, args []object.Value) (object.Value, error) {
	if !fnVal.IsObj() || fnVal.Obj.Type() != object.FunctionType {
		return object.Value{}, typeError("expected a function, got %s", fnVal.TypeName())
	}
	fn := fnVal.Obj.(*object.Function)
	if !fn.IsNative {
		return fn.Foreign(v, args)
	}

	calleeScope, _ := fn.Scope.(*scope.Scope)
	stopDepth := len(v.calls)
	outerIP := v.ip

	v.calls = append(v.calls, callFrame{
		funcID:     fn.ID,
		returnIP:   -1,
		savedScope: v.sc,
		funcScope:  calleeScope,
	})
	v.sc = scope.Push(calleeScope, scope.NewEvaluatedFrame(args))
	v.ip = fn.Entry

	result, err := v.loop(stopDepth)
	v.ip = outerIP
	return result, err
}

// ForceField forces a block's field thunk to its value (or returns the
// already-memoized value), without otherwise disturbing the in-progress
// dispatch. Implements object.Invoker.
func (v *VM) ForceField(blk *object.Block, name string) (object.Value, error) {
	slot, ok := blk.Fields[name]
	if !ok {
		return object.Value{}, typeError("block has no field `%s`", name)
	}

	blockScope, _ := blk.Scope.(*scope.Scope)
	stopDepth := len(v.calls)
	outerIP := v.ip

	v.calls = append(v.calls, callFrame{returnIP: -1, savedScope: v.sc})
	v.sc = blockScope
	v.ip = blk.Entry + blk.Offsets[slot]

	result, err := v.loop(stopDepth)
	v.ip = outerIP
	return result, err
}
