package parser_test

import (
	"testing"

	"github.com/rail44/spctr/internal/ast"
	"github.com/rail44/spctr/internal/parser"
)

func mustParse(t *testing.T, src string) *ast.Statement {
	t.Helper()
	stmt, err := parser.ParseProgram(src)
	if err != nil {
		t.Fatalf("parse error for %q: %s", src, err)
	}
	return stmt
}

func TestParseSimpleExpression(t *testing.T) {
	mustParse(t, "1 + 2 * 3")
}

func TestParseBindingsThenBody(t *testing.T) {
	stmt := mustParse(t, "x: 1, y: 2, x + y")
	if len(stmt.Definitions) != 2 {
		t.Fatalf("expected 2 bindings, got %d", len(stmt.Definitions))
	}
}

// TestParseIfHasNoThenElseKeywords exercises the surface grammar's bare
// cond/cons/alt triple (no then/else), per spec.md §3.1.
func TestParseIfHasNoThenElseKeywords(t *testing.T) {
	mustParse(t, "if a < b a b")
}

func TestParseFunctionLiteral(t *testing.T) {
	mustParse(t, "(a, b) => a + b")
}

func TestParseImmediateBlockStatement(t *testing.T) {
	mustParse(t, "(a: 1, b: a + 1, b)")
}

func TestParseBlockLiteral(t *testing.T) {
	mustParse(t, "{ a: 1, b: a + 1 }")
}

// TestParseBraceWithTrailingBareBody exercises spec.md §8 scenario 3's
// function-body shorthand `(fuga) => { fuga + 1 }`: a brace form whose
// final item isn't a `name:` binding is an immediate-block statement, not
// a fields-only record.
func TestParseBraceWithTrailingBareBody(t *testing.T) {
	mustParse(t, "hoge: (fuga) => { fuga + 1 }, hoge(1)")
}

func TestParseBraceWithBindingsThenBareBody(t *testing.T) {
	mustParse(t, "{ a: 1, b: 2, a + b }")
}

func TestParseListLiteral(t *testing.T) {
	mustParse(t, "[1, 2, 3][1]")
}

func TestParseChainedAccessCallIndexPostfix(t *testing.T) {
	mustParse(t, "foo.bar(1, 2)[0]")
}

// TestParseNestedIfWithoutParens exercises the "bare literal immediately
// followed by '(' parses as a call" ambiguity the Iterator stdlib source
// has to route around: `null` as the outer if's consequent, directly
// followed by a nested if as its alternative (rather than `null (...)`),
// must parse as two separate If branches, not a call of `null`.
func TestParseNestedIfWithoutParens(t *testing.T) {
	mustParse(t, "if a = null null if b a b")
}

func TestParseStringLiteralWithEscapes(t *testing.T) {
	mustParse(t, `"a\"b"`)
}

func TestParseComparisonChain(t *testing.T) {
	for _, src := range []string{"a = b", "a != b", "a < b", "a > b", "a <= b", "a >= b"} {
		mustParse(t, src)
	}
}
