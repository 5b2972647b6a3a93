package object

import (
	"fmt"
	"math"
)

// Kind tags a Value's payload (spec.md §3.2).
type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindBool
	KindObj
)

// Value is a stack-allocated tagged union, following the teacher's
// technique of keeping Number/Bool/Null unboxed (Data holds the bit
// pattern) and only heap-allocating through Obj for String/List/Function/
// Block (spec.md §3.2's "compound value", shared and immutable).
type Value struct {
	Kind Kind
	Data uint64 // float64 bits (Number) or 0/1 (Bool)
	Obj  Object
}

func Null() Value { return Value{Kind: KindNull} }

func Number(v float64) Value { return Value{Kind: KindNumber, Data: math.Float64bits(v)} }

func Bool(v bool) Value {
	var d uint64
	if v {
		d = 1
	}
	return Value{Kind: KindBool, Data: d}
}

func FromObject(o Object) Value { return Value{Kind: KindObj, Obj: o} }

func (v Value) AsNumber() float64 { return math.Float64frombits(v.Data) }
func (v Value) AsBool() bool      { return v.Data == 1 }

func (v Value) IsNull() bool   { return v.Kind == KindNull }
func (v Value) IsNumber() bool { return v.Kind == KindNumber }
func (v Value) IsBool() bool   { return v.Kind == KindBool }
func (v Value) IsObj() bool    { return v.Kind == KindObj }

// numberEpsilon is the tolerance spec.md §3.2/§8 require for Number
// equality ("within IEEE epsilon"), matching original_source/src/vm.rs's
// `(a - b).abs() < f64::EPSILON`.
const numberEpsilon = 2.2204460492503131e-16

// Equals implements spec.md §3.2's equality: numbers compare by magnitude,
// nulls are mutually equal, cross-kind comparisons (other than the
// implicit same-Number-kind case) are false, and same-kind compound values
// defer to Object.Equals (structural for strings and lists, identity for
// functions, blocks and native records).
func (v Value) Equals(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindNumber:
		return math.Abs(v.AsNumber()-other.AsNumber()) < numberEpsilon
	case KindBool:
		return v.AsBool() == other.AsBool()
	case KindObj:
		if v.Obj == nil || other.Obj == nil {
			return v.Obj == other.Obj
		}
		if v.Obj.Type() != other.Obj.Type() {
			return false
		}
		return v.Obj.Equals(other.Obj)
	default:
		return false
	}
}

// Inspect renders a Value for CLI output and error messages.
func (v Value) Inspect() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindNumber:
		return formatNumber(v.AsNumber())
	case KindBool:
		return fmt.Sprintf("%t", v.AsBool())
	case KindObj:
		if v.Obj == nil {
			return "<nil>"
		}
		return v.Obj.Inspect()
	default:
		return "<?>"
	}
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// TypeName names a Value's kind for error messages (spec.md §7 TypeError).
func (v Value) TypeName() string {
	switch v.Kind {
	case KindNull:
		return "Null"
	case KindNumber:
		return "Number"
	case KindBool:
		return "Bool"
	case KindObj:
		if v.Obj == nil {
			return "Null"
		}
		return string(v.Obj.Type())
	default:
		return "Unknown"
	}
}
