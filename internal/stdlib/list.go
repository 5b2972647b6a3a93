package stdlib

import (
	"github.com/rail44/spctr/internal/compiler"
	"github.com/rail44/spctr/internal/object"
)

// listModule grounds SPEC_FULL.md's List binding on original_source's
// ListModule (src/list.rs): "range" builds a List of Number(start..end)
// with an exclusive end, the one static function the original module
// exposes. concat/join are the module-level counterparts of the
// receiver-style list intrinsics in internal/vm/intrinsics.go, grounded
// on original_source/src/lib/list.rs's Concat native.
func listModule() compiler.StdlibModule {
	return compiler.StdlibModule{
		Name: "List",
		Natives: []compiler.NativeField{
			{Name: "range", Fn: listRange},
			{Name: "concat", Fn: listConcat},
			{Name: "join", Fn: listJoin},
		},
	}
}

func listRange(inv object.Invoker, args []object.Value) (object.Value, error) {
	if err := wantArgc("List.range", args, 2); err != nil {
		return object.Value{}, err
	}
	start, err := wantNumber(args, 0, "List.range")
	if err != nil {
		return object.Value{}, err
	}
	end, err := wantNumber(args, 1, "List.range")
	if err != nil {
		return object.Value{}, err
	}
	s, e := int(start), int(end)
	if e < s {
		e = s
	}
	elems := make([]object.Value, 0, e-s)
	for i := s; i < e; i++ {
		elems = append(elems, object.Number(float64(i)))
	}
	return object.FromObject(object.NewList(elems)), nil
}

func listConcat(inv object.Invoker, args []object.Value) (object.Value, error) {
	if err := wantArgc("List.concat", args, 2); err != nil {
		return object.Value{}, err
	}
	a, err := wantList(args, 0, "List.concat")
	if err != nil {
		return object.Value{}, err
	}
	b, err := wantList(args, 1, "List.concat")
	if err != nil {
		return object.Value{}, err
	}
	out := make([]object.Value, 0, len(a.Elements)+len(b.Elements))
	out = append(out, a.Elements...)
	out = append(out, b.Elements...)
	return object.FromObject(object.NewList(out)), nil
}

func listJoin(inv object.Invoker, args []object.Value) (object.Value, error) {
	if err := wantArgc("List.join", args, 2); err != nil {
		return object.Value{}, err
	}
	l, err := wantList(args, 0, "List.join")
	if err != nil {
		return object.Value{}, err
	}
	sep, err := wantString(args, 1, "List.join")
	if err != nil {
		return object.Value{}, err
	}
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		if !e.IsObj() || e.Obj.Type() != object.StringType {
			return object.Value{}, typeError("List.join requires a list of strings, found %s", e.TypeName())
		}
		parts[i] = e.Obj.(*object.String).Value
	}
	return object.FromObject(object.NewString(joinStrings(parts, sep))), nil
}
