package stdlib_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rail44/spctr/internal/compiler"
	"github.com/rail44/spctr/internal/object"
	"github.com/rail44/spctr/internal/parser"
	"github.com/rail44/spctr/internal/stdlib"
	"github.com/rail44/spctr/internal/vm"
)

func run(t *testing.T, src string) object.Value {
	t.Helper()
	program, err := parser.ParseProgram(src)
	require.NoError(t, err)
	chunk, err := compiler.CompileProgram(stdlib.Modules(), program)
	require.NoError(t, err)
	result, err := vm.Run(chunk)
	require.NoError(t, err)
	return result
}

func runErr(t *testing.T, src string) error {
	t.Helper()
	program, err := parser.ParseProgram(src)
	require.NoError(t, err)
	chunk, err := compiler.CompileProgram(stdlib.Modules(), program)
	require.NoError(t, err)
	_, err = vm.Run(chunk)
	return err
}

func requireNumber(t *testing.T, v object.Value, want float64) {
	t.Helper()
	require.True(t, v.IsNumber())
	require.Equal(t, want, v.AsNumber())
}

func requireString(t *testing.T, v object.Value, want string) {
	t.Helper()
	require.True(t, v.IsObj())
	require.Equal(t, object.StringType, v.Obj.Type())
	require.Equal(t, want, v.Obj.(*object.String).Value)
}

func requireNumberList(t *testing.T, v object.Value, want []float64) {
	t.Helper()
	require.True(t, v.IsObj())
	require.Equal(t, object.ListType, v.Obj.Type())
	l := v.Obj.(*object.List)
	require.Len(t, l.Elements, len(want))
	for i, w := range want {
		requireNumber(t, l.Elements[i], w)
	}
}

func TestListRange(t *testing.T) {
	requireNumberList(t, run(t, "List.range(1, 5)"), []float64{1, 2, 3, 4})
}

func TestListConcat(t *testing.T) {
	requireNumberList(t, run(t, "List.concat([1, 2], [3])"), []float64{1, 2, 3})
}

func TestListJoin(t *testing.T) {
	requireString(t, run(t, `List.join(["a", "b", "c"], "-")`), "a-b-c")
}

func TestListRangeFilterMapReduce(t *testing.T) {
	src := `List.range(1, 6).filter((n) => n % 2 = 0).map((n) => n * 10).reduce(0, (acc, n) => acc + n)`
	requireNumber(t, run(t, src), 60)
}

func TestStringConcatSplitCase(t *testing.T) {
	requireString(t, run(t, `String.concat("foo", "bar")`), "foobar")
	requireNumberList(t, run(t, `List.range(0, String.split("a,b,c", ",").count)`), []float64{0, 1, 2})
	requireString(t, run(t, `String.to_upper("abc")`), "ABC")
	requireString(t, run(t, `String.to_lower("ABC")`), "abc")
}

func TestStringLenAndSlice(t *testing.T) {
	requireNumber(t, run(t, `String.len("hello")`), 5)
	requireString(t, run(t, `String.slice("hello", 1, 3)`), "el")
}

func TestMapKeysValuesGetHas(t *testing.T) {
	src := `r: { a: 1, b: 2 }, Map.keys(r)`
	requireString(t, run(t, src+`[0]`), "a")

	requireNumber(t, run(t, `r: { a: 1, b: 2 }, Map.get(r, "b")`), 2)

	v := run(t, `r: { a: 1 }, Map.has(r, "a")`)
	require.True(t, v.IsBool())
	require.True(t, v.AsBool())

	v = run(t, `r: { a: 1 }, Map.has(r, "z")`)
	require.True(t, v.IsBool())
	require.False(t, v.AsBool())
}

func TestMapSetReturnsNewRecordWithoutMutatingOriginal(t *testing.T) {
	src := `r: { a: 1 }, updated: Map.set(r, "a", 99), Map.get(r, "a")`
	requireNumber(t, run(t, src), 1)

	src2 := `r: { a: 1 }, updated: Map.set(r, "a", 99), Map.get(updated, "a")`
	requireNumber(t, run(t, src2), 99)
}

func TestJsonParseAndStringifyRoundTrip(t *testing.T) {
	v := run(t, `Json.parse("[1, 2, 3]")`)
	requireNumberList(t, v, []float64{1, 2, 3})

	requireString(t, run(t, `Json.stringify([1, 2, 3])`), "[1,2,3]")
	requireString(t, run(t, `Json.stringify("hi")`), `"hi"`)
	requireString(t, run(t, `Json.stringify({ a: 1, b: 2 })`), `{"a":1,"b":2}`)
}

func TestJsonParseInvalidInputErrors(t *testing.T) {
	err := runErr(t, `Json.parse("not json")`)
	require.Error(t, err)
}

func TestIteratorFromListMapFilterCount(t *testing.T) {
	src := `
it: Iterator.from_list([1, 2, 3, 4, 5]),
doubled: Iterator.map(it, (n) => n * 2),
big: Iterator.filter(doubled, (n) => n > 4),
Iterator.count(big)
`
	requireNumber(t, run(t, src), 3)
}

func TestIteratorToListRoundTrip(t *testing.T) {
	src := `Iterator.to_list(Iterator.from_list([1, 2, 3]))`
	requireNumberList(t, run(t, src), []float64{1, 2, 3})
}

func TestIteratorTake(t *testing.T) {
	src := `Iterator.to_list(Iterator.take(Iterator.from_list(List.range(0, 100)), 3))`
	requireNumberList(t, run(t, src), []float64{0, 1, 2})
}
