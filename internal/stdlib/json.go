package stdlib

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/rail44/spctr/internal/compiler"
	"github.com/rail44/spctr/internal/object"
)

// jsonModule grounds SPEC_FULL.md's Json binding on original_source's
// json.rs JsonModule. The original's `Parse` re-enters the interpreter
// (JSON object syntax happens to overlap with Spctr block-literal syntax
// there); spec.md §1 classifies `Json.parse`/`Json.stringify` as "thin
// standard-library surface wrappers" with "straightforward host code", so
// this implementation takes the direct route spec.md itself licenses: the
// one stdlib-justified use of the standard library's encoding/json, per
// SPEC_FULL.md §3.
func jsonModule() compiler.StdlibModule {
	return compiler.StdlibModule{
		Name: "Json",
		Natives: []compiler.NativeField{
			{Name: "parse", Fn: jsonParse},
			{Name: "stringify", Fn: jsonStringify},
		},
	}
}

func jsonParse(inv object.Invoker, args []object.Value) (object.Value, error) {
	if err := wantArgc("Json.parse", args, 1); err != nil {
		return object.Value{}, err
	}
	s, err := wantString(args, 0, "Json.parse")
	if err != nil {
		return object.Value{}, err
	}
	var decoded interface{}
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		return object.Value{}, typeError("Json.parse: %s", err)
	}
	return fromJSON(decoded), nil
}

func fromJSON(v interface{}) object.Value {
	switch x := v.(type) {
	case nil:
		return object.Null()
	case bool:
		return object.Bool(x)
	case float64:
		return object.Number(x)
	case string:
		return object.FromObject(object.NewString(x))
	case []interface{}:
		elems := make([]object.Value, len(x))
		for i, e := range x {
			elems[i] = fromJSON(e)
		}
		return object.FromObject(object.NewList(elems))
	case map[string]interface{}:
		fields := make(map[string]object.Value, len(x))
		for k, e := range x {
			fields[k] = fromJSON(e)
		}
		return object.FromObject(object.NewNativeRecord("", fields))
	default:
		return object.Null()
	}
}

func jsonStringify(inv object.Invoker, args []object.Value) (object.Value, error) {
	if err := wantArgc("Json.stringify", args, 1); err != nil {
		return object.Value{}, err
	}
	var sb strings.Builder
	if err := writeJSON(inv, &sb, args[0]); err != nil {
		return object.Value{}, err
	}
	return object.FromObject(object.NewString(sb.String())), nil
}

// writeJSON renders v as JSON text. Block fields are forced in field-table
// declaration order (ft.Order), so stringifying a block is deterministic
// and reflects source order rather than map iteration order.
func writeJSON(inv object.Invoker, sb *strings.Builder, v object.Value) error {
	switch {
	case v.IsNull():
		sb.WriteString("null")
		return nil
	case v.IsBool():
		if v.AsBool() {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
		return nil
	case v.IsNumber():
		enc, err := json.Marshal(v.AsNumber())
		if err != nil {
			return typeError("Json.stringify: %s", err)
		}
		sb.Write(enc)
		return nil
	case v.IsObj():
		return writeJSONObject(inv, sb, v.Obj)
	default:
		return typeError("Json.stringify: unsupported value")
	}
}

func writeJSONObject(inv object.Invoker, sb *strings.Builder, obj object.Object) error {
	switch o := obj.(type) {
	case *object.String:
		enc, err := json.Marshal(o.Value)
		if err != nil {
			return typeError("Json.stringify: %s", err)
		}
		sb.Write(enc)
		return nil
	case *object.List:
		sb.WriteByte('[')
		for i, e := range o.Elements {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := writeJSON(inv, sb, e); err != nil {
				return err
			}
		}
		sb.WriteByte(']')
		return nil
	case *object.Block:
		sb.WriteByte('{')
		for i, name := range o.Order {
			if i > 0 {
				sb.WriteByte(',')
			}
			v, err := inv.ForceField(o, name)
			if err != nil {
				return err
			}
			key, _ := json.Marshal(name)
			sb.Write(key)
			sb.WriteByte(':')
			if err := writeJSON(inv, sb, v); err != nil {
				return err
			}
		}
		sb.WriteByte('}')
		return nil
	case *object.NativeRecord:
		names := make([]string, 0, len(o.Fields))
		for k := range o.Fields {
			names = append(names, k)
		}
		sort.Strings(names)
		sb.WriteByte('{')
		for i, name := range names {
			if i > 0 {
				sb.WriteByte(',')
			}
			key, _ := json.Marshal(name)
			sb.Write(key)
			sb.WriteByte(':')
			if err := writeJSON(inv, sb, o.Fields[name]); err != nil {
				return err
			}
		}
		sb.WriteByte('}')
		return nil
	default:
		return typeError("Json.stringify: cannot stringify a %s", obj.Type())
	}
}
