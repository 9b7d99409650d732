// Package parser implements a recursive-descent/precedence-climbing
// parser that turns a lexer.Lexer's token stream into an *ast.Program.
//
// Structure follows the pipeline's "no global mutable parser state"
// design note: every Parser owns its own lexer cursor, its own error
// list, and nothing else, so two parses never interfere and a Parser
// is safe to discard after one ParseProgram call.
package parser

import (
	"fmt"

	"github.com/minilang/minic/internal/ast"
	"github.com/minilang/minic/internal/lexer"
)

// Parser is a one-shot recursive-descent parser over a single token
// stream, with one token of lookahead (curToken/peekToken).
type Parser struct {
	l         *lexer.Lexer
	curToken  lexer.Token
	peekToken lexer.Token
	errors    []*ParseError
}

// New creates a Parser over l's token stream and primes the first two
// tokens of lookahead.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns every ParseError accumulated so far. Like the lexer,
// the parser never aborts on the first error: it records a
// synchronizing placeholder and keeps parsing so one invocation can
// surface several independent mistakes.
func (p *Parser) Errors() []*ParseError {
	return p.errors
}

func (p *Parser) errorf(pos lexer.Position, format string, args ...any) {
	p.errors = append(p.errors, &ParseError{Message: fmt.Sprintf(format, args...), Pos: pos})
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// expect checks the current token's type and advances past it when it
// matches. On a mismatch it records an error and leaves the current
// token in place, so the caller's next step sees it again.
func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	tok := p.curToken
	if tok.Type != tt {
		p.errorf(tok.Pos, "expected %s, got %s (%q)", tt, tok.Type, tok.Literal)
	} else {
		p.nextToken()
	}
	return tok
}

// ParseProgram parses an entire source file: zero or more global
// `var` declarations, then one or more `func` declarations, then EOF.
// A `var` seen after the first `func` is a ParseError but does not
// stop parsing; callers must check Errors() before trusting the
// returned *ast.Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}

	for p.curToken.Type == lexer.VAR {
		prog.Globals = append(prog.Globals, p.parseVarDecl())
	}

	if p.curToken.Type != lexer.FUNC {
		p.errorf(p.curToken.Pos, "expected a function declaration, got %s", p.curToken.Type)
	}

	for p.curToken.Type == lexer.FUNC || p.curToken.Type == lexer.VAR {
		if p.curToken.Type == lexer.VAR {
			p.errorf(p.curToken.Pos, "'var' declarations must precede all functions")
			p.parseVarDecl() // consume and discard to keep synchronized
			continue
		}
		prog.Funcs = append(prog.Funcs, p.parseFuncDecl())
	}

	if p.curToken.Type != lexer.EOF {
		p.errorf(p.curToken.Pos, "unexpected token %s (%q) after last declaration", p.curToken.Type, p.curToken.Literal)
	}

	return prog
}

// parseVarDecl parses `var NAME: Int`. The binder, not the parser,
// assigns Scope/Slot; VarDecl.Scope is Unresolved here.
func (p *Parser) parseVarDecl() *ast.VarDecl {
	tok := p.expect(lexer.VAR)
	name := p.curToken
	p.expect(lexer.IDENT)
	p.expect(lexer.COLON)
	p.expect(lexer.INTTYPE)
	return &ast.VarDecl{Token: tok, Name: name.Literal}
}

// parseFuncDecl parses `func NAME(NAME: Int, ...): Int { BODY }`.
func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	tok := p.expect(lexer.FUNC)
	name := p.curToken
	p.expect(lexer.IDENT)
	p.expect(lexer.LPAREN)

	var params []*ast.Param
	seen := make(map[string]bool)
	for p.curToken.Type != lexer.RPAREN && p.curToken.Type != lexer.EOF {
		if len(params) > 0 {
			p.expect(lexer.COMMA)
		}
		pname := p.curToken
		p.expect(lexer.IDENT)
		p.expect(lexer.COLON)
		p.expect(lexer.INTTYPE)
		if seen[pname.Literal] {
			p.errorf(pname.Pos, "duplicate parameter name %q", pname.Literal)
		}
		seen[pname.Literal] = true
		params = append(params, &ast.Param{NamePos: pname.Pos, Name: pname.Literal})
	}
	p.expect(lexer.RPAREN)
	p.expect(lexer.COLON)
	p.expect(lexer.INTTYPE)
	p.expect(lexer.LBRACE)
	body := p.parseBody()
	p.expect(lexer.RBRACE)

	return &ast.FuncDecl{Token: tok, Name: name.Literal, Params: params, Body: body}
}

// parseBody parses zero or more local `var` declarations followed by
// zero or more statements, ending at (but not consuming) RBRACE.
func (p *Parser) parseBody() *ast.Body {
	body := &ast.Body{}

	for p.curToken.Type == lexer.VAR {
		body.Locals = append(body.Locals, p.parseVarDecl())
	}

	for p.curToken.Type != lexer.RBRACE && p.curToken.Type != lexer.EOF {
		if p.curToken.Type == lexer.VAR {
			p.errorf(p.curToken.Pos, "'var' declarations must precede all statements in a function body")
			p.parseVarDecl()
			continue
		}
		body.Stmts = append(body.Stmts, p.parseStatement())
	}

	return body
}
