package lexer_test

import (
	"testing"

	"github.com/rail44/spctr/internal/lexer"
	"github.com/rail44/spctr/internal/token"
)

func collectTypes(input string) []token.TokenType {
	l := lexer.New(input)
	var types []token.TokenType
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
		types = append(types, tok.Type)
	}
	return types
}

// TestSingleEqualsIsComparison is the regression test for the lexer bug:
// the surface grammar has no assignment operator (bindings use `name:
// expr`), so a bare '=' must tokenize as EQ, matching scenario 6's
// `i % 3 = 0`.
func TestSingleEqualsIsComparison(t *testing.T) {
	types := collectTypes("a = b")
	want := []token.TokenType{token.IDENT, token.EQ, token.IDENT}
	assertTypesEqual(t, want, types)
}

func TestDoubleEqualsIsAlsoComparison(t *testing.T) {
	types := collectTypes("a == b")
	want := []token.TokenType{token.IDENT, token.EQ, token.IDENT}
	assertTypesEqual(t, want, types)
}

func TestArrowIsDistinctFromEquals(t *testing.T) {
	types := collectTypes("(a) => a")
	want := []token.TokenType{
		token.LPAREN, token.IDENT, token.RPAREN, token.ARROW, token.IDENT,
	}
	assertTypesEqual(t, want, types)
}

func TestModuloThenEqualsMatchesScenarioSix(t *testing.T) {
	types := collectTypes("i % 3 = 0")
	want := []token.TokenType{
		token.IDENT, token.PERCENT, token.NUMBER, token.EQ, token.NUMBER,
	}
	assertTypesEqual(t, want, types)
}

func TestStringEscapes(t *testing.T) {
	l := lexer.New(`"a\"b\\c\nd"`)
	tok := l.NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("expected STRING, got %v", tok.Type)
	}
	want := "a\"b\\c\nd"
	if tok.Literal != want {
		t.Errorf("got %q, want %q", tok.Literal, want)
	}
}

func TestNumberLiteralWithDecimal(t *testing.T) {
	l := lexer.New("3.14")
	tok := l.NextToken()
	if tok.Type != token.NUMBER || tok.Literal != "3.14" {
		t.Errorf("got %v %q, want NUMBER \"3.14\"", tok.Type, tok.Literal)
	}
}

func assertTypesEqual(t *testing.T, want, got []token.TokenType) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("token count mismatch: got %v, want %v", got, want)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
