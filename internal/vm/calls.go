package vm

import (
	"github.com/rail44/spctr/internal/compiler"
	"github.com/rail44/spctr/internal/object"
	"github.com/rail44/spctr/internal/scope"
)

// execCall implements spec.md §4.2.3's Call(argc): pop the arguments and
// the callee, then either jump into a native function body (with
// self-tail-call recognition) or invoke a foreign callback.
func (v *VM) execCall(argc int) error {
	args := make([]object.Value, argc)
	for i := argc - 1; i >= 0; i-- {
		arg, err := v.pop()
		if err != nil {
			return err
		}
		args[i] = arg
	}
	callee, err := v.pop()
	if err != nil {
		return err
	}
	if !callee.IsObj() || callee.Obj.Type() != object.FunctionType {
		return typeError("Call requires a function, got %s", callee.TypeName())
	}
	fn := callee.Obj.(*object.Function)

	if !fn.IsNative {
		return v.callForeign(fn, args)
	}
	return v.callNative(fn, args)
}

func (v *VM) callForeign(fn *object.Function, args []object.Value) error {
	result, err := fn.Foreign(v, args)
	if err != nil {
		return err
	}
	v.push(result)
	v.ip += 3
	return nil
}

func (v *VM) callNative(fn *object.Function, args []object.Value) error {
	calleeScope, _ := fn.Scope.(*scope.Scope)
	returnIP := v.ip + 3

	if v.isSelfTailCall(fn, calleeScope, returnIP) {
		v.sc = scope.Push(calleeScope, scope.NewEvaluatedFrame(args))
		v.ip = fn.Entry
		return nil
	}

	v.calls = append(v.calls, callFrame{
		funcID:     fn.ID,
		returnIP:   returnIP,
		savedScope: v.sc,
		funcScope:  calleeScope,
	})
	v.sc = scope.Push(calleeScope, scope.NewEvaluatedFrame(args))
	v.ip = fn.Entry
	return nil
}

// isSelfTailCall implements spec.md §4.2.3's lookahead: scan past any
// pending ExitScope instructions starting at returnIP; if the first
// non-ExitScope instruction is Return, and the nearest enclosing
// function-call frame shares fn's id and captured scope, this call can
// reuse that frame instead of pushing a new one.
func (v *VM) isSelfTailCall(fn *object.Function, calleeScope *scope.Scope, returnIP int) bool {
	code := v.chunk.Code
	pos := returnIP
	for pos < len(code) && compiler.Op(code[pos]) == compiler.OpExitScope {
		pos++
	}
	if pos >= len(code) || compiler.Op(code[pos]) != compiler.OpReturn {
		return false
	}

	for i := len(v.calls) - 1; i >= 0; i-- {
		frame := v.calls[i]
		if frame.funcID == "" {
			continue
		}
		return frame.funcID == fn.ID && frame.funcScope == calleeScope
	}
	return false
}

// execAccess implements spec.md §4.2.4's Access: pop a field name and a
// block, then re-enter the VM at the field's Load/Return pair. A
// NativeRecord has no compiled entry to re-enter: its fields are already
// evaluated, so Access is a direct map lookup (SPEC_FULL.md §4). String
// and List receivers dispatch to a built-in property table instead,
// grounded in original_source/src/types.rs's Type::get_prop match.
func (v *VM) execAccess() error {
	name, err := v.pop()
	if err != nil {
		return err
	}
	recv, err := v.pop()
	if err != nil {
		return err
	}
	if !name.IsObj() || name.Obj.Type() != object.StringType {
		return typeError("Access requires a string field name, got %s", name.TypeName())
	}
	fieldName := name.Obj.(*object.String).Value

	if !recv.IsObj() {
		return typeError("Access requires a block, got %s", recv.TypeName())
	}

	if handled, err := v.recordFieldLookup(recv.Obj, fieldName); handled {
		return err
	}

	switch recvObj := recv.Obj.(type) {
	case *object.String:
		val, ok := stringIntrinsic(recvObj, fieldName)
		if !ok {
			return typeError("string has no field `%s`", fieldName)
		}
		v.push(val)
		v.ip++
		return nil

	case *object.List:
		val, ok := listIntrinsic(recvObj, fieldName)
		if !ok {
			return typeError("list has no field `%s`", fieldName)
		}
		v.push(val)
		v.ip++
		return nil

	default:
		return typeError("Access requires a block, got %s", recv.TypeName())
	}
}

// recordFieldLookup looks up name on a NativeRecord or Block receiver,
// shared between Access (dot) and Index (bracket-with-string-key, spec.md
// §8 scenario 2's `hoge[key]`). handled is false when obj is neither kind,
// letting the caller fall through to its own receiver handling (String/List
// intrinsics for Access, a type error for Index).
func (v *VM) recordFieldLookup(obj object.Object, name string) (handled bool, err error) {
	switch recvObj := obj.(type) {
	case *object.NativeRecord:
		val, ok := recvObj.Fields[name]
		if !ok {
			return true, typeError("record has no field `%s`", name)
		}
		v.push(val)
		v.ip++
		return true, nil

	case *object.Block:
		slot, ok := recvObj.Fields[name]
		if !ok {
			return true, typeError("block has no field `%s`", name)
		}
		blockScope, _ := recvObj.Scope.(*scope.Scope)
		v.calls = append(v.calls, callFrame{returnIP: v.ip + 1, savedScope: v.sc})
		v.sc = blockScope
		v.ip = recvObj.Entry + recvObj.Offsets[slot]
		return true, nil

	default:
		return false, nil
	}
}
