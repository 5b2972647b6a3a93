package stdlib

import (
	"strings"
	"unicode/utf8"

	"github.com/rail44/spctr/internal/compiler"
	"github.com/rail44/spctr/internal/object"
)

// stringModule grounds SPEC_FULL.md's String binding on original_source's
// lib/string.rs Concat native, generalized to the fuller surface named in
// SPEC_FULL.md §4 (concat, split, to_upper, to_lower, len, slice); the
// per-receiver `.concat`/`.to_upper`/... properties in internal/vm/
// intrinsics.go cover the postfix-access spelling, this module covers the
// `String.concat(a, b)` static spelling scenario 4 exercises.
func stringModule() compiler.StdlibModule {
	return compiler.StdlibModule{
		Name: "String",
		Natives: []compiler.NativeField{
			{Name: "concat", Fn: stringConcat},
			{Name: "split", Fn: stringSplit},
			{Name: "to_upper", Fn: stringToUpper},
			{Name: "to_lower", Fn: stringToLower},
			{Name: "len", Fn: stringLen},
			{Name: "slice", Fn: stringSlice},
		},
	}
}

func stringConcat(inv object.Invoker, args []object.Value) (object.Value, error) {
	if err := wantArgc("String.concat", args, 2); err != nil {
		return object.Value{}, err
	}
	a, err := wantString(args, 0, "String.concat")
	if err != nil {
		return object.Value{}, err
	}
	b, err := wantString(args, 1, "String.concat")
	if err != nil {
		return object.Value{}, err
	}
	return object.FromObject(object.NewString(a + b)), nil
}

func stringSplit(inv object.Invoker, args []object.Value) (object.Value, error) {
	if err := wantArgc("String.split", args, 2); err != nil {
		return object.Value{}, err
	}
	s, err := wantString(args, 0, "String.split")
	if err != nil {
		return object.Value{}, err
	}
	sep, err := wantString(args, 1, "String.split")
	if err != nil {
		return object.Value{}, err
	}
	parts := strings.Split(s, sep)
	elems := make([]object.Value, len(parts))
	for i, p := range parts {
		elems[i] = object.FromObject(object.NewString(p))
	}
	return object.FromObject(object.NewList(elems)), nil
}

func stringToUpper(inv object.Invoker, args []object.Value) (object.Value, error) {
	if err := wantArgc("String.to_upper", args, 1); err != nil {
		return object.Value{}, err
	}
	s, err := wantString(args, 0, "String.to_upper")
	if err != nil {
		return object.Value{}, err
	}
	return object.FromObject(object.NewString(strings.ToUpper(s))), nil
}

func stringToLower(inv object.Invoker, args []object.Value) (object.Value, error) {
	if err := wantArgc("String.to_lower", args, 1); err != nil {
		return object.Value{}, err
	}
	s, err := wantString(args, 0, "String.to_lower")
	if err != nil {
		return object.Value{}, err
	}
	return object.FromObject(object.NewString(strings.ToLower(s))), nil
}

func stringLen(inv object.Invoker, args []object.Value) (object.Value, error) {
	if err := wantArgc("String.len", args, 1); err != nil {
		return object.Value{}, err
	}
	s, err := wantString(args, 0, "String.len")
	if err != nil {
		return object.Value{}, err
	}
	return object.Number(float64(utf8.RuneCountInString(s))), nil
}

func stringSlice(inv object.Invoker, args []object.Value) (object.Value, error) {
	if err := wantArgc("String.slice", args, 3); err != nil {
		return object.Value{}, err
	}
	s, err := wantString(args, 0, "String.slice")
	if err != nil {
		return object.Value{}, err
	}
	from, err := wantNumber(args, 1, "String.slice")
	if err != nil {
		return object.Value{}, err
	}
	to, err := wantNumber(args, 2, "String.slice")
	if err != nil {
		return object.Value{}, err
	}
	runes := []rune(s)
	start, end := int(from), int(to)
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if end < start {
		end = start
	}
	return object.FromObject(object.NewString(string(runes[start:end]))), nil
}
