package vm_test

import (
	"testing"

	"github.com/rail44/spctr/internal/compiler"
	"github.com/rail44/spctr/internal/object"
	"github.com/rail44/spctr/internal/parser"
	"github.com/rail44/spctr/internal/stdlib"
	"github.com/rail44/spctr/internal/vm"
)

// runVM parses, compiles and runs a full program, following the teacher's
// vm_test.go parse/compile/run helper but seeded with the stdlib modules
// every real program sees (spec.md §4.3).
func runVM(t *testing.T, input string) object.Value {
	t.Helper()
	program, err := parser.ParseProgram(input)
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}
	chunk, err := compiler.CompileProgram(stdlib.Modules(), program)
	if err != nil {
		t.Fatalf("compile error: %s", err)
	}
	result, err := vm.Run(chunk)
	if err != nil {
		t.Fatalf("runtime error: %s", err)
	}
	return result
}

func testNumberValue(t *testing.T, v object.Value, expected float64) {
	t.Helper()
	if !v.IsNumber() {
		t.Fatalf("value is not a Number, got %s", v.TypeName())
	}
	if v.AsNumber() != expected {
		t.Errorf("value has wrong number: got %v, want %v", v.AsNumber(), expected)
	}
}

func testBoolValue(t *testing.T, v object.Value, expected bool) {
	t.Helper()
	if !v.IsBool() {
		t.Fatalf("value is not a Bool, got %s", v.TypeName())
	}
	if v.AsBool() != expected {
		t.Errorf("value has wrong bool: got %v, want %v", v.AsBool(), expected)
	}
}

func testStringValue(t *testing.T, v object.Value, expected string) {
	t.Helper()
	if !v.IsObj() || v.Obj.Type() != object.StringType {
		t.Fatalf("value is not a String, got %s", v.TypeName())
	}
	if got := v.Obj.(*object.String).Value; got != expected {
		t.Errorf("value has wrong string: got %q, want %q", got, expected)
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"1", 1},
		{"1 + 2", 3},
		{"1 - 2", -1},
		{"2 * 3", 6},
		{"6 / 2", 3},
		{"7 % 3", 1},
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"-5 + 10", 5},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			testNumberValue(t, runVM(t, tt.input), tt.expected)
		})
	}
}

func TestComparisons(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"1 = 1", true},
		{"1 = 2", false},
		{"1 != 2", true},
		{"1 < 2", true},
		{"2 < 1", false},
		{"2 > 1", true},
		{"1 >= 1", true},
		{"1 <= 0", false},
		{"10 % 3 = 1", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			testBoolValue(t, runVM(t, tt.input), tt.expected)
		})
	}
}

func TestBindings(t *testing.T) {
	testNumberValue(t, runVM(t, "x: 1, y: 2, x + y"), 3)
	testNumberValue(t, runVM(t, "x: 1, y: x + 1, y"), 2)
}

func TestIf(t *testing.T) {
	testNumberValue(t, runVM(t, "if true 1 2"), 1)
	testNumberValue(t, runVM(t, "if false 1 2"), 2)
	testNumberValue(t, runVM(t, "if 1 < 2 10 20"), 10)
}

func TestFunctionLiteralAndCall(t *testing.T) {
	testNumberValue(t, runVM(t, "add: (a, b) => a + b, add(1, 2)"), 3)
}

func TestClosureCapturesEnclosingScope(t *testing.T) {
	testNumberValue(t, runVM(t, "make_adder: (n) => (m) => n + m, add_five: make_adder(5), add_five(3)"), 8)
}

// TestSelfRecursion exercises spec.md §4.2.3's tail-call recognition: a
// sufficiently large n would blow the call stack without it.
func TestSelfRecursion(t *testing.T) {
	src := `
fact: (n, acc) => if n <= 1 acc fact(n - 1, acc * n),
fact(10, 1)
`
	testNumberValue(t, runVM(t, src), 3628800)
}

func TestDeepSelfTailRecursionDoesNotOverflow(t *testing.T) {
	src := `
count: (n, acc) => if n <= 0 acc count(n - 1, acc + 1),
count(100000, 0)
`
	testNumberValue(t, runVM(t, src), 100000)
}

func TestListLiteralAndIndex(t *testing.T) {
	testNumberValue(t, runVM(t, "[1, 3][1]"), 3)
}

func TestBlockLiteralFieldAccess(t *testing.T) {
	src := `
hoge: { foo: 1, bar: foo + 1, baz: hoge.bar + 1 },
hoge.baz
`
	testNumberValue(t, runVM(t, src), 3)
}

// TestFunctionBodyAsBraceImmediateBlock exercises spec.md §8 scenario 3:
// `{ fuga + 1 }` as a function body is an immediate block evaluating to
// its bare trailing expression, not a fields-only record.
func TestFunctionBodyAsBraceImmediateBlock(t *testing.T) {
	src := `hoge: (fuga) => { fuga + 1 }, hoge(1)`
	testNumberValue(t, runVM(t, src), 2)
}

func TestBlockIndexByStringKey(t *testing.T) {
	src := `
hoge: { foo: "bar" },
key: "foo",
hoge[key]
`
	testStringValue(t, runVM(t, src), "bar")
}

func TestStringLiteralAndConcat(t *testing.T) {
	testStringValue(t, runVM(t, `"a".concat("b")`), "ab")
}

func TestListStdlibRangeFilterCount(t *testing.T) {
	src := `List.range(1, 11).filter((n) => n % 3 = 0).count`
	testNumberValue(t, runVM(t, src), 3)
}
