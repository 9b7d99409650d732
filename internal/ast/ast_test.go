package ast

import (
	"math/big"
	"testing"

	"github.com/minilang/minic/internal/lexer"
)

func TestProgramString(t *testing.T) {
	prog := &Program{
		Globals: []*VarDecl{{Name: "counter"}},
		Funcs: []*FuncDecl{
			{
				Name:   "main",
				Params: nil,
				Body: &Body{
					Stmts: []Stmt{
						&ReturnStmt{Value: &NumberLit{Value: big.NewInt(0)}},
					},
				},
			},
		},
	}

	got := prog.String()
	want := "var counter: Int\nfunc main(): Int {\n  return 0\n}\n"
	if got != want {
		t.Fatalf("Program.String() =\n%q\nwant\n%q", got, want)
	}
}

func TestCallExprString(t *testing.T) {
	call := &CallExpr{
		Callee: "sub",
		Args: []CallArg{
			{Name: "b", Value: &NumberLit{Value: big.NewInt(3)}},
			{Name: "a", Value: &NumberLit{Value: big.NewInt(10)}},
		},
	}
	if got, want := call.String(), "sub(b: 3, a: 10)"; got != want {
		t.Fatalf("CallExpr.String() = %q, want %q", got, want)
	}
	m := call.ArgMap()
	if len(m) != 2 || m["a"] == nil || m["b"] == nil {
		t.Fatalf("ArgMap incomplete: %v", m)
	}
}

func TestBinaryExprString(t *testing.T) {
	e := &BinaryExpr{
		Op:  lexer.PLUS,
		Lhs: &NumberLit{Value: big.NewInt(1)},
		Rhs: &NumberLit{Value: big.NewInt(2)},
	}
	if got, want := e.String(), "(1 + 2)"; got != want {
		t.Fatalf("BinaryExpr.String() = %q, want %q", got, want)
	}
}

func TestVarExprScopeString(t *testing.T) {
	if got, want := ScopeGlobal.String(), "global"; got != want {
		t.Fatalf("ScopeGlobal.String() = %q, want %q", got, want)
	}
	if got, want := Unresolved.String(), "unresolved"; got != want {
		t.Fatalf("Unresolved.String() = %q, want %q", got, want)
	}
}
