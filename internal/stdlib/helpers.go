package stdlib

import (
	"strings"

	"github.com/rail44/spctr/internal/object"
)

func wantString(args []object.Value, i int, who string) (string, error) {
	a := args[i]
	if !a.IsObj() || a.Obj.Type() != object.StringType {
		return "", typeError("%s requires a string, got %s", who, a.TypeName())
	}
	return a.Obj.(*object.String).Value, nil
}

func wantList(args []object.Value, i int, who string) (*object.List, error) {
	a := args[i]
	if !a.IsObj() || a.Obj.Type() != object.ListType {
		return nil, typeError("%s requires a list, got %s", who, a.TypeName())
	}
	return a.Obj.(*object.List), nil
}

func wantNumber(args []object.Value, i int, who string) (float64, error) {
	a := args[i]
	if !a.IsNumber() {
		return 0, typeError("%s requires a number, got %s", who, a.TypeName())
	}
	return a.AsNumber(), nil
}

func wantBlock(args []object.Value, i int, who string) (*object.Block, error) {
	a := args[i]
	if !a.IsObj() || a.Obj.Type() != object.BlockType {
		return nil, typeError("%s requires a block, got %s", who, a.TypeName())
	}
	return a.Obj.(*object.Block), nil
}

func joinStrings(parts []string, sep string) string {
	return strings.Join(parts, sep)
}
