package stdlib

import (
	"sort"

	"github.com/rail44/spctr/internal/compiler"
	"github.com/rail44/spctr/internal/object"
)

// mapModule grounds SPEC_FULL.md's Map binding on original_source's
// map.rs MapModule (`keys`/`values`, operating on a record by forcing each
// field's thunk through the same eval-on-access path Access uses), widened
// to the fuller `get`/`set`/`has` surface SPEC_FULL.md §4 adds. A Spctr
// record is either a lazily-evaluated Block or an already-evaluated
// NativeRecord (e.g. the result of Json.parse); Map's operations accept
// either receiver uniformly through mapEntries/mapGet below.
func mapModule() compiler.StdlibModule {
	return compiler.StdlibModule{
		Name: "Map",
		Natives: []compiler.NativeField{
			{Name: "keys", Fn: mapKeys},
			{Name: "values", Fn: mapValues},
			{Name: "get", Fn: mapGetField},
			{Name: "set", Fn: mapSet},
			{Name: "has", Fn: mapHas},
		},
	}
}

// fieldNames returns a receiver's field names in a deterministic order: a
// Block's declaration order (ft.Order, carried at construction, see
// compiler.compileFieldedBlock), or alphabetical for a NativeRecord, which
// has no declaration order of its own.
func fieldNames(recv object.Value) ([]string, error) {
	if !recv.IsObj() {
		return nil, typeError("Map operation requires a record, got %s", recv.TypeName())
	}
	switch r := recv.Obj.(type) {
	case *object.Block:
		return append([]string(nil), r.Order...), nil
	case *object.NativeRecord:
		names := make([]string, 0, len(r.Fields))
		for k := range r.Fields {
			names = append(names, k)
		}
		sort.Strings(names)
		return names, nil
	default:
		return nil, typeError("Map operation requires a record, got %s", recv.TypeName())
	}
}

// forceField resolves one named field of recv to a value, running a Block
// field's thunk via inv.ForceField (spec.md §4.2.4) or reading a
// NativeRecord's already-evaluated map directly.
func forceField(inv object.Invoker, recv object.Value, name string) (object.Value, bool, error) {
	if !recv.IsObj() {
		return object.Value{}, false, typeError("Map operation requires a record, got %s", recv.TypeName())
	}
	switch r := recv.Obj.(type) {
	case *object.Block:
		if _, ok := r.Fields[name]; !ok {
			return object.Value{}, false, nil
		}
		v, err := inv.ForceField(r, name)
		if err != nil {
			return object.Value{}, false, err
		}
		return v, true, nil
	case *object.NativeRecord:
		v, ok := r.Fields[name]
		return v, ok, nil
	default:
		return object.Value{}, false, typeError("Map operation requires a record, got %s", recv.TypeName())
	}
}

func mapKeys(inv object.Invoker, args []object.Value) (object.Value, error) {
	if err := wantArgc("Map.keys", args, 1); err != nil {
		return object.Value{}, err
	}
	names, err := fieldNames(args[0])
	if err != nil {
		return object.Value{}, err
	}
	elems := make([]object.Value, len(names))
	for i, n := range names {
		elems[i] = object.FromObject(object.NewString(n))
	}
	return object.FromObject(object.NewList(elems)), nil
}

func mapValues(inv object.Invoker, args []object.Value) (object.Value, error) {
	if err := wantArgc("Map.values", args, 1); err != nil {
		return object.Value{}, err
	}
	names, err := fieldNames(args[0])
	if err != nil {
		return object.Value{}, err
	}
	elems := make([]object.Value, len(names))
	for i, n := range names {
		v, ok, err := forceField(inv, args[0], n)
		if err != nil {
			return object.Value{}, err
		}
		if !ok {
			return object.Value{}, typeError("Map.values: field %q vanished mid-enumeration", n)
		}
		elems[i] = v
	}
	return object.FromObject(object.NewList(elems)), nil
}

func mapGetField(inv object.Invoker, args []object.Value) (object.Value, error) {
	if err := wantArgc("Map.get", args, 2); err != nil {
		return object.Value{}, err
	}
	name, err := wantString(args, 1, "Map.get")
	if err != nil {
		return object.Value{}, err
	}
	v, ok, err := forceField(inv, args[0], name)
	if err != nil {
		return object.Value{}, err
	}
	if !ok {
		return object.Value{}, typeError("record has no field %q", name)
	}
	return v, nil
}

func mapHas(inv object.Invoker, args []object.Value) (object.Value, error) {
	if err := wantArgc("Map.has", args, 2); err != nil {
		return object.Value{}, err
	}
	name, err := wantString(args, 1, "Map.has")
	if err != nil {
		return object.Value{}, err
	}
	_, ok, err := forceField(inv, args[0], name)
	if err != nil {
		return object.Value{}, err
	}
	return object.Bool(ok), nil
}

// mapSet returns a new record with name bound to value, leaving the
// receiver untouched (spec.md §3.2's "no mutation of bindings after first
// evaluation" extends to records: `set` is persistent, not in-place).
// The result is always a NativeRecord: every existing field is forced
// eagerly so the new record needs no captured scope or compiled entry of
// its own.
func mapSet(inv object.Invoker, args []object.Value) (object.Value, error) {
	if err := wantArgc("Map.set", args, 3); err != nil {
		return object.Value{}, err
	}
	name, err := wantString(args, 1, "Map.set")
	if err != nil {
		return object.Value{}, err
	}
	names, err := fieldNames(args[0])
	if err != nil {
		return object.Value{}, err
	}
	fields := make(map[string]object.Value, len(names)+1)
	for _, n := range names {
		v, ok, err := forceField(inv, args[0], n)
		if err != nil {
			return object.Value{}, err
		}
		if ok {
			fields[n] = v
		}
	}
	fields[name] = args[2]
	return object.FromObject(object.NewNativeRecord("", fields)), nil
}
