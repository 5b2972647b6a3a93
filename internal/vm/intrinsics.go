package vm

import (
	"strings"
	"unicode/utf8"

	"github.com/rail44/spctr/internal/object"
)

// stringIntrinsic and listIntrinsic dispatch Access on String/List
// receivers to a fixed set of built-in properties, grounded in the
// original implementation's Type::get_prop match on receiver kind
// (original_source/src/types.rs): there each Rust enum variant owns its
// own property table instead of routing through a field map, which this
// mirrors for String and List.
func stringIntrinsic(s *object.String, name string) (object.Value, bool) {
	switch name {
	case "count":
		return object.Number(float64(utf8.RuneCountInString(s.Value))), true
	case "concat":
		return foreignMethod(func(inv object.Invoker, args []object.Value) (object.Value, error) {
			other, err := wantString(args, 0, "concat")
			if err != nil {
				return object.Value{}, err
			}
			return object.FromObject(object.NewString(s.Value + other)), nil
		}), true
	case "to_upper":
		return foreignMethod(func(inv object.Invoker, args []object.Value) (object.Value, error) {
			return object.FromObject(object.NewString(strings.ToUpper(s.Value))), nil
		}), true
	case "to_lower":
		return foreignMethod(func(inv object.Invoker, args []object.Value) (object.Value, error) {
			return object.FromObject(object.NewString(strings.ToLower(s.Value))), nil
		}), true
	case "split":
		return foreignMethod(func(inv object.Invoker, args []object.Value) (object.Value, error) {
			sep, err := wantString(args, 0, "split")
			if err != nil {
				return object.Value{}, err
			}
			parts := strings.Split(s.Value, sep)
			elems := make([]object.Value, len(parts))
			for i, p := range parts {
				elems[i] = object.FromObject(object.NewString(p))
			}
			return object.FromObject(object.NewList(elems)), nil
		}), true
	default:
		return object.Value{}, false
	}
}

func listIntrinsic(l *object.List, name string) (object.Value, bool) {
	switch name {
	case "count":
		return object.Number(float64(len(l.Elements))), true
	case "to_list":
		return object.FromObject(l), true
	case "concat":
		return foreignMethod(func(inv object.Invoker, args []object.Value) (object.Value, error) {
			other, err := wantList(args, 0, "concat")
			if err != nil {
				return object.Value{}, err
			}
			out := make([]object.Value, 0, len(l.Elements)+len(other.Elements))
			out = append(out, l.Elements...)
			out = append(out, other.Elements...)
			return object.FromObject(object.NewList(out)), nil
		}), true
	case "take":
		return foreignMethod(func(inv object.Invoker, args []object.Value) (object.Value, error) {
			n, err := wantNumber(args, 0, "take")
			if err != nil {
				return object.Value{}, err
			}
			k := int(n)
			if k < 0 {
				k = 0
			}
			if k > len(l.Elements) {
				k = len(l.Elements)
			}
			out := make([]object.Value, k)
			copy(out, l.Elements[:k])
			return object.FromObject(object.NewList(out)), nil
		}), true
	case "map":
		return foreignMethod(func(inv object.Invoker, args []object.Value) (object.Value, error) {
			if len(args) < 1 {
				return object.Value{}, typeError("map requires a function argument")
			}
			out := make([]object.Value, len(l.Elements))
			for i, e := range l.Elements {
				v, err := inv.Invoke(args[0], []object.Value{e})
				if err != nil {
					return object.Value{}, err
				}
				out[i] = v
			}
			return object.FromObject(object.NewList(out)), nil
		}), true
	case "filter":
		return foreignMethod(func(inv object.Invoker, args []object.Value) (object.Value, error) {
			if len(args) < 1 {
				return object.Value{}, typeError("filter requires a function argument")
			}
			var out []object.Value
			for _, e := range l.Elements {
				v, err := inv.Invoke(args[0], []object.Value{e})
				if err != nil {
					return object.Value{}, err
				}
				if !v.IsBool() {
					return object.Value{}, typeError("filter predicate must return a bool, got %s", v.TypeName())
				}
				if v.AsBool() {
					out = append(out, e)
				}
			}
			return object.FromObject(object.NewList(out)), nil
		}), true
	case "reduce":
		return foreignMethod(func(inv object.Invoker, args []object.Value) (object.Value, error) {
			if len(args) < 2 {
				return object.Value{}, typeError("reduce requires an initial value and a function")
			}
			acc := args[0]
			for _, e := range l.Elements {
				v, err := inv.Invoke(args[1], []object.Value{acc, e})
				if err != nil {
					return object.Value{}, err
				}
				acc = v
			}
			return acc, nil
		}), true
	case "join":
		return foreignMethod(func(inv object.Invoker, args []object.Value) (object.Value, error) {
			sep, err := wantString(args, 0, "join")
			if err != nil {
				return object.Value{}, err
			}
			parts := make([]string, len(l.Elements))
			for i, e := range l.Elements {
				if !e.IsObj() || e.Obj.Type() != object.StringType {
					return object.Value{}, typeError("join requires a list of strings, found %s", e.TypeName())
				}
				parts[i] = e.Obj.(*object.String).Value
			}
			return object.FromObject(object.NewString(strings.Join(parts, sep))), nil
		}), true
	default:
		return object.Value{}, false
	}
}

func foreignMethod(fn func(inv object.Invoker, args []object.Value) (object.Value, error)) object.Value {
	return object.FromObject(&object.Function{Foreign: fn})
}

func wantString(args []object.Value, i int, who string) (string, error) {
	if i >= len(args) {
		return "", typeError("%s requires %d argument(s)", who, i+1)
	}
	a := args[i]
	if !a.IsObj() || a.Obj.Type() != object.StringType {
		return "", typeError("%s requires a string, got %s", who, a.TypeName())
	}
	return a.Obj.(*object.String).Value, nil
}

func wantList(args []object.Value, i int, who string) (*object.List, error) {
	if i >= len(args) {
		return nil, typeError("%s requires %d argument(s)", who, i+1)
	}
	a := args[i]
	if !a.IsObj() || a.Obj.Type() != object.ListType {
		return nil, typeError("%s requires a list, got %s", who, a.TypeName())
	}
	return a.Obj.(*object.List), nil
}

func wantNumber(args []object.Value, i int, who string) (float64, error) {
	if i >= len(args) {
		return 0, typeError("%s requires %d argument(s)", who, i+1)
	}
	a := args[i]
	if !a.IsNumber() {
		return 0, typeError("%s requires a number, got %s", who, a.TypeName())
	}
	return a.AsNumber(), nil
}
