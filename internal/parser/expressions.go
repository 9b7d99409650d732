package parser

import (
	"math/big"

	"github.com/minilang/minic/internal/ast"
	"github.com/minilang/minic/internal/lexer"
)

// Precedence levels, lowest to highest; mirrors the table in §4.2.
// `=` sits below every binary operator since it is the only
// right-associative, lowest-precedence operator in the grammar.
const (
	lowestPrec = 0
	assignPrec = 1
	orPrec     = 10
	andPrec    = 20
	bitOrPrec  = 30
	bitXorPrec = 40
	bitAndPrec = 50
	eqPrec     = 60
	relPrec    = 70
	shiftPrec  = 80
	addPrec    = 90
	mulPrec    = 100
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN: assignPrec,
	lexer.OROR:   orPrec,
	lexer.ANDAND: andPrec,
	lexer.PIPE:   bitOrPrec,
	lexer.CARET:  bitXorPrec,
	lexer.AMP:    bitAndPrec,
	lexer.EQ:     eqPrec,
	lexer.NE:     eqPrec,
	lexer.LT:     relPrec,
	lexer.LE:     relPrec,
	lexer.GT:     relPrec,
	lexer.GE:     relPrec,
	lexer.SHL:    shiftPrec,
	lexer.SHR:    shiftPrec,
	lexer.PLUS:   addPrec,
	lexer.MINUS:  addPrec,
	lexer.STAR:   mulPrec,
	lexer.SLASH:  mulPrec,
	lexer.PERCENT: mulPrec,
}

var unaryOps = map[lexer.TokenType]bool{
	lexer.PLUS:  true,
	lexer.MINUS: true,
	lexer.TILDE: true,
	lexer.BANG:  true,
}

// parseExpression is the precedence-climbing core. minPrec controls
// how far the loop below will climb: for `=`, the recursive call on
// the right-hand side reuses the operator's own precedence (making it
// right-associative); for every other operator it uses precedence+1
// (making it left-associative), per §4.2.
func (p *Parser) parseExpression(minPrec int) ast.Expr {
	left := p.parseUnary()

	for {
		opPrec, ok := precedences[p.curToken.Type]
		if !ok || opPrec < minPrec {
			break
		}
		opTok := p.curToken

		if opTok.Type == lexer.ASSIGN {
			if _, isVar := left.(*ast.VarExpr); !isVar {
				p.errorf(opTok.Pos, "left-hand side of '=' must be an identifier")
			}
			p.nextToken()
			right := p.parseExpression(opPrec) // same precedence: right-associative
			left = &ast.BinaryExpr{Token: opTok, Op: opTok.Type, Lhs: left, Rhs: right}
			continue
		}

		p.nextToken()
		right := p.parseExpression(opPrec + 1) // precedence+1: left-associative
		left = &ast.BinaryExpr{Token: opTok, Op: opTok.Type, Lhs: left, Rhs: right}
	}

	return left
}

// parseUnary handles the prefix operators `+ - ~ !`, which bind
// tighter than any binary operator and associate right: a run of them
// is a stack, e.g. `--x` is Unary(-, Unary(-, x)).
func (p *Parser) parseUnary() ast.Expr {
	if unaryOps[p.curToken.Type] {
		tok := p.curToken
		p.nextToken()
		operand := p.parseUnary()
		return &ast.UnaryExpr{Token: tok, Op: tok.Type, X: operand}
	}
	return p.parseTerm()
}

// parseTerm parses the atoms of the grammar: a numeric literal, a
// parenthesized expression, an identifier, or a named-argument call.
func (p *Parser) parseTerm() ast.Expr {
	tok := p.curToken

	switch tok.Type {
	case lexer.NUMBER:
		p.nextToken()
		value := tok.Number
		if value == nil {
			value = big.NewInt(0)
		}
		return &ast.NumberLit{Token: tok, Value: value}

	case lexer.LPAREN:
		p.nextToken()
		expr := p.parseExpression(lowestPrec)
		p.expect(lexer.RPAREN)
		return expr

	case lexer.IDENT:
		if p.peekToken.Type == lexer.LPAREN {
			return p.parseCall()
		}
		p.nextToken()
		return &ast.VarExpr{Token: tok, Name: tok.Literal}

	default:
		p.errorf(tok.Pos, "unexpected token %s (%q) in expression", tok.Type, tok.Literal)
		p.nextToken()
		return &ast.NumberLit{Token: tok, Value: big.NewInt(0)}
	}
}

// parseCall parses `callee(name: expr, ...)`. Argument order here is
// source order, kept only for diagnostics/unparsing; the code
// generator re-evaluates arguments in the callee's declared parameter
// order regardless of how they were written at the call site.
func (p *Parser) parseCall() ast.Expr {
	tok := p.curToken
	callee := tok.Literal
	p.nextToken() // consume callee ident
	p.expect(lexer.LPAREN)

	var args []ast.CallArg
	seen := make(map[string]bool)
	for p.curToken.Type != lexer.RPAREN && p.curToken.Type != lexer.EOF {
		if len(args) > 0 {
			p.expect(lexer.COMMA)
		}
		nameTok := p.curToken
		p.expect(lexer.IDENT)
		p.expect(lexer.COLON)
		value := p.parseExpression(assignPrec)
		if seen[nameTok.Literal] {
			p.errorf(nameTok.Pos, "duplicate named argument %q", nameTok.Literal)
		}
		seen[nameTok.Literal] = true
		args = append(args, ast.CallArg{NamePos: nameTok.Pos, Name: nameTok.Literal, Value: value})
	}
	p.expect(lexer.RPAREN)

	return &ast.CallExpr{Token: tok, Callee: callee, Args: args}
}
