package ast

import (
	"math/big"
	"strings"

	"github.com/minilang/minic/internal/lexer"
)

// NumberLit is an arbitrary-precision integer literal.
type NumberLit struct {
	Token lexer.Token
	Value *big.Int
}

func (e *NumberLit) exprNode()            {}
func (e *NumberLit) TokenLiteral() string { return e.Token.Literal }
func (e *NumberLit) Pos() lexer.Position  { return e.Token.Pos }
func (e *NumberLit) String() string       { return e.Value.String() }

// VarExpr references a declared variable by name. The binder resolves
// it to exactly one slot in exactly one table and fills Scope/Slot in
// place; Scope is Unresolved until then.
type VarExpr struct {
	Token lexer.Token
	Name  string
	Scope ScopeKind
	Slot  int
}

func (e *VarExpr) exprNode()            {}
func (e *VarExpr) TokenLiteral() string { return e.Token.Literal }
func (e *VarExpr) Pos() lexer.Position  { return e.Token.Pos }
func (e *VarExpr) String() string       { return e.Name }

// BinaryExpr is `lhs op rhs`, including assignment (`=`); Op is the
// lexer token type of the operator spelling.
type BinaryExpr struct {
	Token lexer.Token // the operator token
	Op    lexer.TokenType
	Lhs   Expr
	Rhs   Expr
}

func (e *BinaryExpr) exprNode()            {}
func (e *BinaryExpr) TokenLiteral() string { return e.Token.Literal }
func (e *BinaryExpr) Pos() lexer.Position  { return e.Token.Pos }
func (e *BinaryExpr) String() string {
	return "(" + e.Lhs.String() + " " + e.Op.String() + " " + e.Rhs.String() + ")"
}

// UnaryExpr is a prefix operator (`+ - ~ !`) applied to one operand.
type UnaryExpr struct {
	Token lexer.Token // the operator token
	Op    lexer.TokenType
	X     Expr
}

func (e *UnaryExpr) exprNode()            {}
func (e *UnaryExpr) TokenLiteral() string { return e.Token.Literal }
func (e *UnaryExpr) Pos() lexer.Position  { return e.Token.Pos }
func (e *UnaryExpr) String() string       { return "(" + e.Op.String() + e.X.String() + ")" }

// CallArg is one `name: expr` pair at a call site, kept in source
// order for diagnostics and canonical unparsing; the code generator
// re-evaluates arguments in the callee's declared parameter order
// regardless of this order (see bytecode.Compiler).
type CallArg struct {
	NamePos lexer.Position
	Name    string
	Value   Expr
}

// CallExpr is `callee(name: expr, ...)`. Named_args is an unordered
// mapping from parameter name to expression; Args preserves source
// order only for presentation, never for evaluation order.
type CallExpr struct {
	Token  lexer.Token // the callee identifier token
	Callee string
	Args   []CallArg
}

func (e *CallExpr) exprNode()            {}
func (e *CallExpr) TokenLiteral() string { return e.Token.Literal }
func (e *CallExpr) Pos() lexer.Position  { return e.Token.Pos }
func (e *CallExpr) String() string {
	var out strings.Builder
	out.WriteString(e.Callee)
	out.WriteString("(")
	for i, a := range e.Args {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(a.Name)
		out.WriteString(": ")
		out.WriteString(a.Value.String())
	}
	out.WriteString(")")
	return out.String()
}

// ArgMap builds a name->expr map for binder/codegen lookups. Callers
// have already verified there are no duplicate names (the parser
// rejects that as a ParseError before this is used in anger).
func (e *CallExpr) ArgMap() map[string]Expr {
	m := make(map[string]Expr, len(e.Args))
	for _, a := range e.Args {
		m[a.Name] = a.Value
	}
	return m
}
