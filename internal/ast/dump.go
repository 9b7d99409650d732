package ast

import (
	"fmt"
	"strings"
)

// Dump renders prog as an indented structural tree, one line per
// node with children indented two spaces under their parent. It is
// purely presentational (backing --dump-ast): unlike String(), which
// reconstructs valid source, Dump exposes the tree shape itself,
// including scope/slot annotations once the binder has run.
func Dump(prog *Program) string {
	var sb strings.Builder
	sb.WriteString("Program\n")
	for _, g := range prog.Globals {
		dumpVarDecl(&sb, g, 1)
	}
	for _, f := range prog.Funcs {
		dumpFunc(&sb, f, 1)
	}
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}

func dumpVarDecl(sb *strings.Builder, v *VarDecl, depth int) {
	indent(sb, depth)
	fmt.Fprintf(sb, "VarDecl %s (%s:%d)\n", v.Name, v.Scope, v.Slot)
}

func dumpFunc(sb *strings.Builder, f *FuncDecl, depth int) {
	indent(sb, depth)
	fmt.Fprintf(sb, "FuncDecl %s frameSize=%d\n", f.Name, f.FrameSize)
	for _, p := range f.Params {
		indent(sb, depth+1)
		fmt.Fprintf(sb, "Param %s (slot %d)\n", p.Name, p.Slot)
	}
	for _, l := range f.Body.Locals {
		dumpVarDecl(sb, l, depth+1)
	}
	for _, s := range f.Body.Stmts {
		dumpStmt(sb, s, depth+1)
	}
}

func dumpStmt(sb *strings.Builder, s Stmt, depth int) {
	switch n := s.(type) {
	case *IfStmt:
		indent(sb, depth)
		sb.WriteString("IfStmt\n")
		dumpExpr(sb, n.Cond, depth+1)
		dumpStmt(sb, n.Then, depth+1)
		if n.Else != nil {
			indent(sb, depth)
			sb.WriteString("Else\n")
			dumpStmt(sb, n.Else, depth+1)
		}
	case *WhileStmt:
		indent(sb, depth)
		sb.WriteString("WhileStmt\n")
		dumpExpr(sb, n.Cond, depth+1)
		dumpStmt(sb, n.Body, depth+1)
	case *BlockStmt:
		indent(sb, depth)
		sb.WriteString("BlockStmt\n")
		for _, st := range n.Stmts {
			dumpStmt(sb, st, depth+1)
		}
	case *ReturnStmt:
		indent(sb, depth)
		sb.WriteString("ReturnStmt\n")
		dumpExpr(sb, n.Value, depth+1)
	case *ExprStmt:
		indent(sb, depth)
		sb.WriteString("ExprStmt\n")
		dumpExpr(sb, n.X, depth+1)
	case *PassStmt:
		indent(sb, depth)
		sb.WriteString("PassStmt\n")
	default:
		indent(sb, depth)
		fmt.Fprintf(sb, "<unknown stmt %T>\n", s)
	}
}

func dumpExpr(sb *strings.Builder, e Expr, depth int) {
	switch n := e.(type) {
	case *NumberLit:
		indent(sb, depth)
		fmt.Fprintf(sb, "NumberLit %s\n", n.Value.String())
	case *VarExpr:
		indent(sb, depth)
		fmt.Fprintf(sb, "VarExpr %s (%s:%d)\n", n.Name, n.Scope, n.Slot)
	case *BinaryExpr:
		indent(sb, depth)
		fmt.Fprintf(sb, "BinaryExpr %s\n", n.Op)
		dumpExpr(sb, n.Lhs, depth+1)
		dumpExpr(sb, n.Rhs, depth+1)
	case *UnaryExpr:
		indent(sb, depth)
		fmt.Fprintf(sb, "UnaryExpr %s\n", n.Op)
		dumpExpr(sb, n.X, depth+1)
	case *CallExpr:
		indent(sb, depth)
		fmt.Fprintf(sb, "CallExpr %s\n", n.Callee)
		for _, a := range n.Args {
			indent(sb, depth+1)
			fmt.Fprintf(sb, "Arg %s:\n", a.Name)
			dumpExpr(sb, a.Value, depth+2)
		}
	default:
		indent(sb, depth)
		fmt.Fprintf(sb, "<unknown expr %T>\n", e)
	}
}
