package vm

import (
	"fmt"
	"math"

	"github.com/rail44/spctr/internal/compiler"
	"github.com/rail44/spctr/internal/object"
	"github.com/rail44/spctr/internal/scope"
)

// run drives the top-level program to completion.
func (v *VM) run() (object.Value, error) {
	return v.loop(-1)
}

// loop is the dispatch loop of spec.md §4.2: fetch, execute, advance. With
// stopDepth < 0 it runs until ip falls off the end of the chunk (the
// top-level program, which never returns to a caller). With stopDepth >= 0
// it instead stops as soon as a Return unwinds the call stack back down to
// stopDepth — used by Invoke/ForceField to run a nested call synchronously
// from a foreign function and then resume the outer dispatch.
func (v *VM) loop(stopDepth int) (object.Value, error) {
	code := v.chunk.Code
	for v.ip < len(code) {
		op := compiler.Op(code[v.ip])
		if op == compiler.OpReturn {
			if err := v.execReturn(); err != nil {
				return object.Value{}, err
			}
			if stopDepth >= 0 && len(v.calls) == stopDepth {
				return v.pop()
			}
			continue
		}
		switch op {
		case compiler.OpAdd, compiler.OpSub, compiler.OpMul, compiler.OpDiv, compiler.OpSurplus:
			if err := v.execArith(op); err != nil {
				return object.Value{}, err
			}
			v.ip++

		case compiler.OpEqual, compiler.OpGreaterThan, compiler.OpLessThan:
			if err := v.execCompare(op); err != nil {
				return object.Value{}, err
			}
			v.ip++

		case compiler.OpNot:
			b, err := v.pop()
			if err != nil {
				return object.Value{}, err
			}
			if !b.IsBool() {
				return object.Value{}, typeError("Not requires a bool, got %s", b.TypeName())
			}
			v.push(object.Bool(!b.AsBool()))
			v.ip++

		case compiler.OpNumberConst, compiler.OpStringConst:
			idx := compiler.ReadU16(code, v.ip+1)
			v.push(v.chunk.Constants[idx])
			v.ip += 3

		case compiler.OpNullConst:
			v.push(object.Null())
			v.ip++

		case compiler.OpConstructList:
			n := compiler.ReadU16(code, v.ip+1)
			elems := make([]object.Value, n)
			for i := n - 1; i >= 0; i-- {
				val, err := v.pop()
				if err != nil {
					return object.Value{}, err
				}
				elems[i] = val
			}
			v.push(object.FromObject(object.NewList(elems)))
			v.ip += 3

		case compiler.OpConstructFunction:
			idIdx := compiler.ReadU16(code, v.ip+1)
			bodyLen := compiler.ReadU16(code, v.ip+3)
			id := v.chunk.Constants[idIdx].Obj.(*object.String).Value
			fn := &object.Function{
				ID:       id,
				IsNative: true,
				Entry:    v.ip + 5,
				Chunk:    v.chunk,
				Scope:    v.sc,
			}
			v.push(object.FromObject(fn))
			v.ip += 5 + bodyLen

		case compiler.OpConstructForeignFunction:
			fIdx := compiler.ReadU16(code, v.ip+1)
			fn := &object.Function{
				IsNative: false,
				Foreign:  v.chunk.Foreigns[fIdx],
				Scope:    v.sc,
			}
			v.push(object.FromObject(fn))
			v.ip += 3

		case compiler.OpNativeRecord:
			idx := compiler.ReadU16(code, v.ip+1)
			v.push(object.FromObject(v.chunk.NativeRecords[idx]))
			v.ip += 3

		case compiler.OpConstructBlock:
			ftIdx := compiler.ReadU16(code, v.ip+1)
			bodyLen := compiler.ReadU16(code, v.ip+3)
			ft := v.chunk.FieldTables[ftIdx]
			blk := &object.Block{
				Entry:   v.ip + 5,
				Fields:  ft.Slots,
				Order:   ft.Order,
				Offsets: ft.Offsets,
				Scope:   v.sc,
			}
			v.push(object.FromObject(blk))
			v.ip += 5 + bodyLen

		case compiler.OpBlock:
			n := int(code[v.ip+1])
			addrs := make([]int, n)
			pos := v.ip + 2
			base := v.ip + 2 + 2*n
			for i := 0; i < n; i++ {
				sz := compiler.ReadU16(code, pos)
				addrs[i] = base
				base += sz
				pos += 2
			}
			v.sc = scope.Push(v.sc, scope.NewFrame(addrs))
			v.ip = base

		case compiler.OpExitScope:
			v.sc = v.sc.Pop()
			v.ip++

		case compiler.OpLoad:
			slot := compiler.ReadU16(code, v.ip+1)
			depth := compiler.ReadU16(code, v.ip+3)
			if err := v.execLoad(slot, depth); err != nil {
				return object.Value{}, err
			}

		case compiler.OpStore:
			slot := compiler.ReadU16(code, v.ip+1)
			val, err := v.peek()
			if err != nil {
				return object.Value{}, err
			}
			v.sc.SetEvaluated(slot, val)
			v.ip += 3

		case compiler.OpJumpRel:
			n := compiler.ReadU16(code, v.ip+1)
			v.ip = v.ip + 3 + n

		case compiler.OpJumpRelUnless:
			n := compiler.ReadU16(code, v.ip+1)
			cond, err := v.pop()
			if err != nil {
				return object.Value{}, err
			}
			if !cond.IsBool() {
				return object.Value{}, typeError("if condition requires a bool, got %s", cond.TypeName())
			}
			if !cond.AsBool() {
				v.ip = v.ip + 3 + n
			} else {
				v.ip += 3
			}

		case compiler.OpCall:
			argc := compiler.ReadU16(code, v.ip+1)
			if err := v.execCall(argc); err != nil {
				return object.Value{}, err
			}

		case compiler.OpAccess:
			if err := v.execAccess(); err != nil {
				return object.Value{}, err
			}

		case compiler.OpIndex:
			if err := v.execIndex(); err != nil {
				return object.Value{}, err
			}

		default:
			return object.Value{}, typeError("unknown opcode %d", op)
		}
	}

	if stopDepth >= 0 {
		return object.Value{}, fmt.Errorf("vm: program ended before a nested call returned")
	}
	return v.pop()
}

func (v *VM) execArith(op compiler.Op) error {
	rhs, err := v.pop()
	if err != nil {
		return err
	}
	lhs, err := v.pop()
	if err != nil {
		return err
	}
	if !lhs.IsNumber() || !rhs.IsNumber() {
		return typeError("%s requires two numbers, got %s and %s", op, lhs.TypeName(), rhs.TypeName())
	}
	a, b := lhs.AsNumber(), rhs.AsNumber()
	var r float64
	switch op {
	case compiler.OpAdd:
		r = a + b
	case compiler.OpSub:
		r = a - b
	case compiler.OpMul:
		r = a * b
	case compiler.OpDiv:
		r = a / b
	case compiler.OpSurplus:
		r = math.Mod(a, b)
	}
	v.push(object.Number(r))
	return nil
}

func (v *VM) execCompare(op compiler.Op) error {
	rhs, err := v.pop()
	if err != nil {
		return err
	}
	lhs, err := v.pop()
	if err != nil {
		return err
	}
	switch op {
	case compiler.OpEqual:
		v.push(object.Bool(lhs.Equals(rhs)))
		return nil
	case compiler.OpGreaterThan, compiler.OpLessThan:
		if !lhs.IsNumber() || !rhs.IsNumber() {
			return typeError("%s requires two numbers, got %s and %s", op, lhs.TypeName(), rhs.TypeName())
		}
		a, b := lhs.AsNumber(), rhs.AsNumber()
		if op == compiler.OpGreaterThan {
			v.push(object.Bool(a > b))
		} else {
			v.push(object.Bool(a < b))
		}
		return nil
	}
	return typeError("unhandled comparison opcode %s", op)
}

// execLoad implements spec.md §4.2.2's Load(i,d): if the target slot is
// already evaluated, push its value; otherwise jump into its thunk, with
// the scope swapped to the thunk's defining context.
func (v *VM) execLoad(slot, depth int) error {
	target := v.sc.Ancestor(depth)
	if target == nil || slot >= len(target.Frame.Bindings) {
		return unboundLoad(slot)
	}
	b := target.Frame.Bindings[slot]
	if b.State == scope.Evaluated {
		v.push(b.Value)
		v.ip += 5
		return nil
	}

	v.calls = append(v.calls, callFrame{returnIP: v.ip + 5, savedScope: v.sc})
	v.sc = target
	v.ip = b.Addr
	return nil
}

func (v *VM) execReturn() error {
	n := len(v.calls)
	if n == 0 {
		return errStackUnderflow
	}
	frame := v.calls[n-1]
	v.calls = v.calls[:n-1]
	v.ip = frame.returnIP
	v.sc = frame.savedScope
	return nil
}

// execIndex implements spec.md §4.2.5's Index for a List receiver (a
// numeric offset) and, for a Block or NativeRecord receiver, a string-key
// field lookup equivalent to Access (spec.md §8 scenario 2's `hoge[key]`) —
// the two differ only in where the key comes from: a literal field name
// after `.` versus a computed string value inside `[...]`.
func (v *VM) execIndex() error {
	idx, err := v.pop()
	if err != nil {
		return err
	}
	recv, err := v.pop()
	if err != nil {
		return err
	}
	if !recv.IsObj() {
		return typeError("Index requires a list or a record, got %s", recv.TypeName())
	}

	if idx.IsObj() && idx.Obj.Type() == object.StringType {
		key := idx.Obj.(*object.String).Value
		if handled, err := v.recordFieldLookup(recv.Obj, key); handled {
			return err
		}
		return typeError("Index with a string key requires a block or record, got %s", recv.TypeName())
	}

	if recv.Obj.Type() != object.ListType {
		return typeError("Index requires a list, got %s", recv.TypeName())
	}
	if !idx.IsNumber() {
		return typeError("Index requires a numeric index, got %s", idx.TypeName())
	}
	l := recv.Obj.(*object.List)
	i := int(idx.AsNumber())
	if i < 0 || i >= len(l.Elements) {
		return rangeError("index %d out of range for list of length %d", i, len(l.Elements))
	}
	v.push(l.Elements[i])
	v.ip++
	return nil
}

func unboundLoad(slot int) error {
	return fmt.Errorf("%w `arg%d`", ErrUnboundParameter, slot)
}
