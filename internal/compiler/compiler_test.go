package compiler_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rail44/spctr/internal/compiler"
	"github.com/rail44/spctr/internal/object"
	"github.com/rail44/spctr/internal/parser"
)

func compile(t *testing.T, src string) *compiler.Chunk {
	t.Helper()
	program, err := parser.ParseProgram(src)
	require.NoError(t, err)
	chunk, err := compiler.CompileProgram(nil, program)
	require.NoError(t, err)
	return chunk
}

func TestCompileProgramSimpleExpression(t *testing.T) {
	chunk := compile(t, "1 + 2")
	require.NotEmpty(t, chunk.Code)
}

// TestUnresolvedIdentifierFails exercises spec.md §4.1's ResolutionError:
// referencing a name with no visible binding must fail at compile time.
func TestUnresolvedIdentifierFails(t *testing.T) {
	program, err := parser.ParseProgram("nonexistent")
	require.NoError(t, err)

	_, err = compiler.CompileProgram(nil, program)
	require.Error(t, err)
	require.True(t, errors.Is(err, compiler.ErrUnresolvedIdentifier))
}

func TestCompileProgramSeedsStdlibModules(t *testing.T) {
	modules := []compiler.StdlibModule{
		{
			Name: "Test",
			Natives: []compiler.NativeField{
				{Name: "one", Fn: func(inv object.Invoker, args []object.Value) (object.Value, error) {
					return object.Number(1), nil
				}},
			},
		},
	}
	program, err := parser.ParseProgram("Test.one")
	require.NoError(t, err)

	chunk, err := compiler.CompileProgram(modules, program)
	require.NoError(t, err)
	require.NotEmpty(t, chunk.Code)
}

func TestDisassembleProducesHeader(t *testing.T) {
	chunk := compile(t, "1 + 2")
	out := compiler.Disassemble(chunk, "test")
	require.Contains(t, out, "== test ==")
}

func TestCompileBlockLiteralRegistersFieldTable(t *testing.T) {
	chunk := compile(t, "{ a: 1, b: a + 1 }.b")
	require.NotEmpty(t, chunk.FieldTables)
}
