// Package ast defines the abstract syntax tree node types produced by
// the parser and consumed by the binder and code generator.
package ast

import (
	"strings"

	"github.com/minilang/minic/internal/lexer"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() lexer.Position
}

// Expr is any node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node that performs an action.
type Stmt interface {
	Node
	stmtNode()
}

// ScopeKind classifies which table a Var resolves into. Unresolved is
// the zero value, valid only before the binder has run.
type ScopeKind int

const (
	Unresolved ScopeKind = iota
	ScopeGlobal
	ScopeParam
	ScopeLocal
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeParam:
		return "param"
	case ScopeLocal:
		return "local"
	default:
		return "unresolved"
	}
}

// Program is the root node: global variable declarations in source
// order followed by function declarations in source order.
type Program struct {
	Globals []*VarDecl
	Funcs   []*FuncDecl
}

func (p *Program) TokenLiteral() string {
	if len(p.Globals) > 0 {
		return p.Globals[0].TokenLiteral()
	}
	if len(p.Funcs) > 0 {
		return p.Funcs[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() lexer.Position {
	if len(p.Globals) > 0 {
		return p.Globals[0].Pos()
	}
	if len(p.Funcs) > 0 {
		return p.Funcs[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var out strings.Builder
	for _, g := range p.Globals {
		out.WriteString(g.String())
		out.WriteString("\n")
	}
	for i, f := range p.Funcs {
		if i > 0 || len(p.Globals) > 0 {
			out.WriteString("\n")
		}
		out.WriteString(f.String())
		out.WriteString("\n")
	}
	return out.String()
}

// VarDecl is `var NAME: Int`, used both for globals and for locals
// inside a function body. The binder fills in Scope/Slot.
type VarDecl struct {
	Token lexer.Token // the "var" token
	Name  string
	Scope ScopeKind
	Slot  int
}

func (v *VarDecl) TokenLiteral() string    { return v.Token.Literal }
func (v *VarDecl) Pos() lexer.Position     { return v.Token.Pos }
func (v *VarDecl) String() string          { return "var " + v.Name + ": Int" }

// Param is one declared function parameter. The binder fills in Slot.
type Param struct {
	NamePos lexer.Position
	Name    string
	Slot    int
}

// FuncDecl is `func NAME(params): Int { body }`. Return type is always
// Int; it is not stored since no other type exists.
type FuncDecl struct {
	Token  lexer.Token // the "func" token
	Name   string
	Params []*Param
	Body   *Body

	// FrameSize is the flattened count of local slots assigned by the
	// binder (params occupy slots [0,len(Params)), locals continue
	// from there), used by the code generator to size each frame.
	FrameSize int
}

func (f *FuncDecl) TokenLiteral() string { return f.Token.Literal }
func (f *FuncDecl) Pos() lexer.Position  { return f.Token.Pos }

func (f *FuncDecl) String() string {
	var out strings.Builder
	out.WriteString("func ")
	out.WriteString(f.Name)
	out.WriteString("(")
	for i, p := range f.Params {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(p.Name)
		out.WriteString(": Int")
	}
	out.WriteString("): Int {\n")
	out.WriteString(f.Body.String())
	out.WriteString("}")
	return out.String()
}

// Body is the zero-or-more local VarDecls followed by zero-or-more
// Statements that make up a function's code.
type Body struct {
	Locals []*VarDecl
	Stmts  []Stmt
}

func (b *Body) String() string {
	var out strings.Builder
	for _, l := range b.Locals {
		out.WriteString("  ")
		out.WriteString(l.String())
		out.WriteString("\n")
	}
	for _, s := range b.Stmts {
		out.WriteString("  ")
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}
