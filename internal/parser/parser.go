// Package parser implements a recursive-descent parser producing the AST
// of spec.md §3.1 from Spctr surface syntax (spec.md §6). This package is
// an external collaborator per spec.md §1 — the compiler only depends on
// the AST shape, not on this specific grammar implementation.
package parser

import (
	"fmt"
	"strconv"

	"github.com/rail44/spctr/internal/ast"
	"github.com/rail44/spctr/internal/lexer"
	"github.com/rail44/spctr/internal/token"
)

// Parser holds the two-token lookahead state used throughout.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []error
}

// New creates a Parser and primes curToken/peekToken.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) skipNewlines() {
	for p.curToken.Type == token.NEWLINE {
		p.nextToken()
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expect(t token.TokenType) bool {
	if p.curTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errorf("expected %s, got %s (%q) at %d:%d", t, p.curToken.Type, p.curToken.Literal, p.curToken.Line, p.curToken.Column)
	return false
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errors = append(p.errors, fmt.Errorf(format, args...))
}

// Errors returns every parse error accumulated so far.
func (p *Parser) Errors() []error { return p.errors }

// ParseProgram parses an entire source text as one top-level Statement.
func ParseProgram(input string) (*ast.Statement, error) {
	p := New(lexer.New(input))
	stmt := p.parseStatementBody(token.EOF)
	if len(p.errors) == 0 && !p.curTokenIs(token.EOF) {
		p.errorf("unexpected token %s (%q) after program body at %d:%d", p.curToken.Type, p.curToken.Literal, p.curToken.Line, p.curToken.Column)
	}
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return stmt, nil
}

// parseStatementBody parses a comma-separated sequence of `name: expr`
// bindings followed by a body expression, terminated by `end` (EOF or
// RBRACE/RPAREN depending on context).
func (p *Parser) parseStatementBody(end token.TokenType) *ast.Statement {
	stmt := &ast.Statement{Token: p.curToken}

	for {
		p.skipNewlines()
		if p.curTokenIs(end) {
			p.errorf("statement has no body expression")
			return stmt
		}

		// A binding is `ident: expr,` — distinguished from the body by
		// lookahead for IDENT COLON that isn't itself the start of a block
		// literal (block literals are only ever a Primary, never here).
		if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.COLON) {
			name := p.curToken.Literal
			p.nextToken() // consume ident
			p.nextToken() // consume ':'
			p.skipNewlines()
			val := p.parseExpression()
			stmt.Definitions = append(stmt.Definitions, ast.Binding{Name: name, Value: val})
			p.skipNewlines()
			if p.curTokenIs(token.COMMA) {
				p.nextToken()
				continue
			}
			// No comma: this must have been the body if nothing follows,
			// but spec.md's grammar separates bindings from body with commas,
			// so a missing comma before `end` means val was actually the body.
			if p.curTokenIs(end) {
				// Reinterpret: last "binding" was in fact the body.
				last := stmt.Definitions[len(stmt.Definitions)-1]
				stmt.Definitions = stmt.Definitions[:len(stmt.Definitions)-1]
				stmt.Body = last.Value
				return stmt
			}
			continue
		}

		// Otherwise this is the final body expression.
		stmt.Body = p.parseExpression()
		p.skipNewlines()
		return stmt
	}
}

// parseExpression parses one Comparison (the widest precedence level).
func (p *Parser) parseExpression() ast.Expression {
	return p.parseComparison()
}

func (p *Parser) parseComparison() ast.Expression {
	tok := p.curToken
	left := p.parseAdditive()

	var rights []ast.CompareRight
	for {
		var op ast.CompareOp
		switch p.curToken.Type {
		case token.EQ:
			op = ast.OpEq
		case token.NOT_EQ:
			op = ast.OpNotEq
		case token.GT:
			op = ast.OpGt
		case token.LT:
			op = ast.OpLt
		case token.GTE:
			op = ast.OpGte
		case token.LTE:
			op = ast.OpLte
		default:
			if len(rights) == 0 {
				return left
			}
			return &ast.Comparison{Token: tok, Left: left, Rights: rights}
		}
		p.nextToken()
		p.skipNewlines()
		operand := p.parseAdditive()
		rights = append(rights, ast.CompareRight{Op: op, Operand: operand})
	}
}

func (p *Parser) parseAdditive() ast.Expression {
	tok := p.curToken
	left := p.parseMultitive()

	var rights []ast.AdditiveRight
	for {
		var op ast.AdditiveOp
		switch p.curToken.Type {
		case token.PLUS:
			op = ast.OpAdd
		case token.MINUS:
			op = ast.OpSub
		default:
			if len(rights) == 0 {
				return left
			}
			return &ast.Additive{Token: tok, Left: left, Rights: rights}
		}
		p.nextToken()
		p.skipNewlines()
		operand := p.parseMultitive()
		rights = append(rights, ast.AdditiveRight{Op: op, Operand: operand})
	}
}

func (p *Parser) parseMultitive() ast.Expression {
	tok := p.curToken
	left := p.parseOperation()

	var rights []ast.MultitiveRight
	for {
		var op ast.MultitiveOp
		switch p.curToken.Type {
		case token.ASTERISK:
			op = ast.OpMul
		case token.SLASH:
			op = ast.OpDiv
		case token.PERCENT:
			op = ast.OpMod
		default:
			if len(rights) == 0 {
				return left
			}
			return &ast.Multitive{Token: tok, Left: left, Rights: rights}
		}
		p.nextToken()
		p.skipNewlines()
		operand := p.parseOperation()
		rights = append(rights, ast.MultitiveRight{Op: op, Operand: operand})
	}
}

func (p *Parser) parseOperation() ast.Expression {
	tok := p.curToken
	left := p.parsePrimary()

	var rights []ast.Postfix
	for {
		switch p.curToken.Type {
		case token.DOT:
			p.nextToken()
			if !p.curTokenIs(token.IDENT) {
				p.errorf("expected field name after '.' at %d:%d", p.curToken.Line, p.curToken.Column)
				return left
			}
			name := p.curToken.Literal
			p.nextToken()
			rights = append(rights, ast.AccessPostfix{Name: name})
		case token.LPAREN:
			p.nextToken()
			var args []ast.Expression
			p.skipNewlines()
			for !p.curTokenIs(token.RPAREN) {
				args = append(args, p.parseExpression())
				p.skipNewlines()
				if p.curTokenIs(token.COMMA) {
					p.nextToken()
					p.skipNewlines()
				}
			}
			p.expect(token.RPAREN)
			rights = append(rights, ast.CallPostfix{Args: args})
		case token.LBRACKET:
			p.nextToken()
			idx := p.parseExpression()
			p.expect(token.RBRACKET)
			rights = append(rights, ast.IndexPostfix{Index: idx})
		default:
			if len(rights) == 0 {
				return left
			}
			return &ast.Operation{Token: tok, Left: left, Rights: rights}
		}
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.curToken
	switch tok.Type {
	case token.NUMBER:
		p.nextToken()
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.errorf("invalid number literal %q at %d:%d", tok.Literal, tok.Line, tok.Column)
		}
		return &ast.NumberLiteral{Token: tok, Value: v}
	case token.MINUS:
		// Unary negative numeric literal: -4
		p.nextToken()
		inner := p.parsePrimary()
		if n, ok := inner.(*ast.NumberLiteral); ok {
			n.Value = -n.Value
			return n
		}
		p.errorf("unary '-' only supported on numeric literals at %d:%d", tok.Line, tok.Column)
		return inner
	case token.STRING:
		p.nextToken()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case token.NULL:
		p.nextToken()
		return &ast.NullLiteral{Token: tok}
	case token.IDENT:
		p.nextToken()
		return &ast.Identifier{Token: tok, Name: tok.Literal}
	case token.IF:
		p.nextToken()
		cond := p.parseExpression()
		p.skipNewlines()
		cons := p.parseExpression()
		p.skipNewlines()
		alt := p.parseExpression()
		return &ast.If{Token: tok, Cond: cond, Cons: cons, Alt: alt}
	case token.LBRACKET:
		p.nextToken()
		var elems []ast.Expression
		p.skipNewlines()
		for !p.curTokenIs(token.RBRACKET) {
			elems = append(elems, p.parseExpression())
			p.skipNewlines()
			if p.curTokenIs(token.COMMA) {
				p.nextToken()
				p.skipNewlines()
			}
		}
		p.expect(token.RBRACKET)
		return &ast.ListLiteral{Token: tok, Elements: elems}
	case token.LBRACE:
		return p.parseBlockLiteral()
	case token.LPAREN:
		return p.parseParenForm()
	default:
		p.errorf("unexpected token %s (%q) at %d:%d", tok.Type, tok.Literal, tok.Line, tok.Column)
		p.nextToken()
		return &ast.NullLiteral{Token: tok}
	}
}

// parseBlockLiteral parses `{ ... }`. The brace form is generically a
// comma-separated sequence of `name: expr` bindings, same as a parenthesised
// statement, but terminated by `}` instead of `)`; the fields-only record
// (spec.md §3.1's "block literal") is the special case where every item is
// a binding. When a trailing non-`name:` item appears (spec.md §8 scenario
// 3's `{ fuga + 1 }`), grounded on original_source/src/token.rs's generic
// `Rule::block => Primary::Block(Source::from(...))`, the bindings seen so
// far become ordinary lexical bindings of an immediate-block statement
// rather than record fields, and that trailing expression is its body.
// Rejects duplicate field names per spec.md §3.1's invariant.
func (p *Parser) parseBlockLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken() // consume '{'
	p.skipNewlines()

	seen := map[string]bool{}
	var binds []ast.Binding
	for {
		if p.curTokenIs(token.RBRACE) {
			p.expect(token.RBRACE)
			return &ast.BlockLiteral{Token: tok, Binds: binds}
		}

		if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.COLON) {
			name := p.curToken.Literal
			p.nextToken() // consume ident
			p.nextToken() // consume ':'
			p.skipNewlines()
			val := p.parseExpression()
			if seen[name] {
				p.errorf("duplicate field %q in block literal", name)
			}
			seen[name] = true
			binds = append(binds, ast.Binding{Name: name, Value: val})
			p.skipNewlines()
			if p.curTokenIs(token.COMMA) {
				p.nextToken()
				p.skipNewlines()
			}
			continue
		}

		body := p.parseExpression()
		p.skipNewlines()
		p.expect(token.RBRACE)
		return &ast.ImmediateBlock{Token: tok, Stmt: &ast.Statement{
			Token:       tok,
			Definitions: binds,
			Body:        body,
		}}
	}
}

// parseParenForm disambiguates `(args) => expr` function literals from a
// parenthesised immediate-block statement `(n1: e1, ..., body)`.
func (p *Parser) parseParenForm() ast.Expression {
	tok := p.curToken

	if looksLikeFunctionLiteral(p) {
		return p.parseFunctionLiteral()
	}

	p.nextToken() // consume '('
	inner := p.parseStatementBody(token.RPAREN)
	p.expect(token.RPAREN)
	return &ast.ImmediateBlock{Token: tok, Stmt: inner}
}

// looksLikeFunctionLiteral scans ahead (without consuming) for `(` ident,ident,... `)` `=>`.
func looksLikeFunctionLiteral(p *Parser) bool {
	save := *p
	savedLexer := *p.l

	ok := func() bool {
		if !p.curTokenIs(token.LPAREN) {
			return false
		}
		p.nextToken()
		for !p.curTokenIs(token.RPAREN) {
			if !p.curTokenIs(token.IDENT) {
				return false
			}
			p.nextToken()
			if p.curTokenIs(token.COMMA) {
				p.nextToken()
				continue
			}
			if p.curTokenIs(token.RPAREN) {
				break
			}
			return false
		}
		if !p.curTokenIs(token.RPAREN) {
			return false
		}
		p.nextToken()
		return p.curTokenIs(token.ARROW)
	}()

	*p = save
	*p.l = savedLexer
	return ok
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	tok := p.curToken
	p.expect(token.LPAREN)

	seen := map[string]bool{}
	var params []string
	for !p.curTokenIs(token.RPAREN) {
		name := p.curToken.Literal
		if seen[name] {
			p.errorf("duplicate parameter name %q", name)
		}
		seen[name] = true
		params = append(params, name)
		p.nextToken()
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	p.expect(token.RPAREN)
	p.expect(token.ARROW)
	p.skipNewlines()
	body := p.parseExpression()
	return &ast.FunctionLiteral{Token: tok, Params: params, Body: body}
}
