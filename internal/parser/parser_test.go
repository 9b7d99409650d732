package parser

import (
	"testing"

	"github.com/minilang/minic/internal/ast"
	"github.com/minilang/minic/internal/lexer"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src))
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, p.Errors())
	}
	return prog
}

func TestParseMinimalProgram(t *testing.T) {
	prog := parseProgram(t, `func main(): Int { return 0 }`)
	if len(prog.Funcs) != 1 || prog.Funcs[0].Name != "main" {
		t.Fatalf("expected one func 'main', got %+v", prog.Funcs)
	}
}

func TestParseGlobalsBeforeFuncs(t *testing.T) {
	prog := parseProgram(t, `
		var a: Int
		var b: Int
		func main(): Int { return a + b }
	`)
	if len(prog.Globals) != 2 {
		t.Fatalf("expected 2 globals, got %d", len(prog.Globals))
	}
}

func TestVarAfterFuncIsError(t *testing.T) {
	p := New(lexer.New(`
		func main(): Int { return 0 }
		var a: Int
	`))
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected an error for var after func")
	}
}

func TestVarAfterStatementIsError(t *testing.T) {
	p := New(lexer.New(`
		func main(): Int {
			return 0
			var a: Int
		}
	`))
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected an error for var after statement in body")
	}
}

func exprString(t *testing.T, src string) string {
	t.Helper()
	prog := parseProgram(t, `func main(): Int { return `+src+` }`)
	ret := prog.Funcs[0].Body.Stmts[0].(*ast.ReturnStmt)
	return ret.Value.String()
}

func TestPrecedence(t *testing.T) {
	tests := []struct{ src, want string }{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"1 << 2 + 3", "(1 << (2 + 3))"},
		{"1 < 2 << 3", "(1 < (2 << 3))"},
		{"1 == 2 < 3", "(1 == (2 < 3))"},
		{"1 & 2 == 3", "(1 & (2 == 3))"},
		{"1 ^ 2 & 3", "(1 ^ (2 & 3))"},
		{"1 | 2 ^ 3", "(1 | (2 ^ 3))"},
		{"1 && 2 | 3", "(1 && (2 | 3))"},
		{"1 || 2 && 3", "(1 || (2 && 3))"},
	}
	for _, tt := range tests {
		if got := exprString(t, tt.src); got != tt.want {
			t.Errorf("%q => %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestAssignmentRightAssociative(t *testing.T) {
	prog := parseProgram(t, `
		var a: Int
		var b: Int
		var c: Int
		func main(): Int { a = b = c  return 0 }
	`)
	stmt := prog.Funcs[0].Body.Stmts[0].(*ast.ExprStmt)
	if got, want := stmt.X.String(), "(a = (b = c))"; got != want {
		t.Fatalf("a = b = c => %q, want %q", got, want)
	}
}

func TestUnaryAssociatesRight(t *testing.T) {
	if got, want := exprString(t, "- - 1"), "(-(-1))"; got != want {
		t.Fatalf("- - 1 => %q, want %q", got, want)
	}
	if got, want := exprString(t, "!~1"), "(!(~1))"; got != want {
		t.Fatalf("!~1 => %q, want %q", got, want)
	}
}

func TestUnaryBindsTighterThanBinary(t *testing.T) {
	if got, want := exprString(t, "-1 * 2"), "((-1) * 2)"; got != want {
		t.Fatalf("-1 * 2 => %q, want %q", got, want)
	}
}

func TestNonLvalueAssignmentIsError(t *testing.T) {
	p := New(lexer.New(`func main(): Int { 1 = 2  return 0 }`))
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected an error assigning to a non-identifier")
	}
}

func TestNamedArgumentCall(t *testing.T) {
	got := exprString(t, "sub(b: 3, a: 10)")
	if want := "sub(b: 3, a: 10)"; got != want {
		t.Fatalf("call string = %q, want %q", got, want)
	}
}

func TestIfElseChain(t *testing.T) {
	prog := parseProgram(t, `
		func main(): Int {
			if (1) { return 1 } else if (0) { return 2 } else { return 3 }
		}
	`)
	ifStmt := prog.Funcs[0].Body.Stmts[0].(*ast.IfStmt)
	if ifStmt.Else == nil {
		t.Fatalf("expected an else branch")
	}
	if _, ok := ifStmt.Else.(*ast.IfStmt); !ok {
		t.Fatalf("expected 'else if' to parse as a nested IfStmt, got %T", ifStmt.Else)
	}
}

func TestWhileAndPass(t *testing.T) {
	prog := parseProgram(t, `
		func main(): Int {
			while (1) { pass }
			return 0
		}
	`)
	while := prog.Funcs[0].Body.Stmts[0].(*ast.WhileStmt)
	block := while.Body.(*ast.BlockStmt)
	if _, ok := block.Stmts[0].(*ast.PassStmt); !ok {
		t.Fatalf("expected a PassStmt inside the loop body, got %T", block.Stmts[0])
	}
}
