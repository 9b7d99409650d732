package binder

import (
	"strings"

	"github.com/minilang/minic/internal/ast"
)

// bindStmt resolves every Var and validates every Call reachable from
// s, recursing into nested statements.
func (b *Binder) bindStmt(s ast.Stmt, sc *scope) {
	switch n := s.(type) {
	case *ast.IfStmt:
		b.bindExpr(n.Cond, sc)
		b.bindStmt(n.Then, sc)
		if n.Else != nil {
			b.bindStmt(n.Else, sc)
		}
	case *ast.WhileStmt:
		b.bindExpr(n.Cond, sc)
		b.bindStmt(n.Body, sc)
	case *ast.BlockStmt:
		for _, st := range n.Stmts {
			b.bindStmt(st, sc)
		}
	case *ast.ReturnStmt:
		b.bindExpr(n.Value, sc)
	case *ast.ExprStmt:
		b.bindExpr(n.X, sc)
	case *ast.PassStmt:
		// no-op: carries no names to resolve
	}
}

func (b *Binder) bindExpr(e ast.Expr, sc *scope) {
	switch n := e.(type) {
	case *ast.NumberLit:
		// carries no name
	case *ast.VarExpr:
		scopeKind, slot, ok := b.resolve(sc, n.Name)
		if !ok {
			b.errors = append(b.errors, &BindError{
				Message: "unknown identifier " + quote(n.Name),
				Pos:     n.Pos(),
			})
			return
		}
		n.Scope = scopeKind
		n.Slot = slot
	case *ast.BinaryExpr:
		b.bindExpr(n.Lhs, sc)
		b.bindExpr(n.Rhs, sc)
	case *ast.UnaryExpr:
		b.bindExpr(n.X, sc)
	case *ast.CallExpr:
		b.bindCall(n, sc)
	}
}

func (b *Binder) bindCall(call *ast.CallExpr, sc *scope) {
	info, ok := b.functions[call.Callee]
	if !ok {
		b.errors = append(b.errors, &BindError{
			Message: "call to unknown function " + quote(call.Callee),
			Pos:     call.Pos(),
		})
		// still bind argument expressions so later errors are reported too
		for _, a := range call.Args {
			b.bindExpr(a.Value, sc)
		}
		return
	}

	want := info.paramSet()
	got := make(map[string]bool, len(call.Args))
	for _, a := range call.Args {
		b.bindExpr(a.Value, sc)
		got[a.Name] = true
	}

	var missing, extra []string
	for name := range want {
		if !got[name] {
			missing = append(missing, name)
		}
	}
	for name := range got {
		if !want[name] {
			extra = append(extra, name)
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		msg := "call to " + quote(call.Callee) + " has a named-argument mismatch"
		if len(missing) > 0 {
			msg += "; missing: " + strings.Join(missing, ", ")
		}
		if len(extra) > 0 {
			msg += "; unexpected: " + strings.Join(extra, ", ")
		}
		b.errors = append(b.errors, &BindError{Message: msg, Pos: call.Pos()})
	}
}
