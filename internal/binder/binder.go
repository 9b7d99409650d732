// Package binder walks a parsed *ast.Program once, resolving every
// variable reference to a slot in exactly one of the globals,
// parameter, or locals tables, and validating every call against its
// callee's declared signature.
package binder

import (
	"github.com/minilang/minic/internal/ast"
)

// Binder accumulates BindErrors across an entire program, mirroring
// the lexer and parser's accumulate-don't-abort discipline.
type Binder struct {
	globals   map[string]int
	functions map[string]*funcInfo
	errors    []*BindError
}

// New creates a Binder pre-seeded with the three builtins (§4.5):
// input() and exit() take no arguments, print(val: Int) takes exactly
// one named "val". They are opcodes, not user-callable functions the
// code generator CALLs, but the binder still needs their signatures to
// validate a call site's named-argument set against them.
func New() *Binder {
	b := &Binder{
		globals:   make(map[string]int),
		functions: make(map[string]*funcInfo),
	}
	b.functions["input"] = &funcInfo{name: "input", paramSlot: map[string]int{}, builtin: true}
	b.functions["exit"] = &funcInfo{name: "exit", paramSlot: map[string]int{}, builtin: true}
	b.functions["print"] = &funcInfo{
		name:       "print",
		paramOrder: []string{"val"},
		paramSlot:  map[string]int{"val": 0},
		builtin:    true,
	}
	return b
}

// Errors returns every BindError accumulated during Bind.
func (b *Binder) Errors() []*BindError {
	return b.errors
}

// Bind resolves scope for every Var in prog and validates every Call.
// It mutates the AST in place (annotating VarExpr.Scope/Slot and
// FuncDecl.FrameSize) per the "AST as tagged variants, decorated
// in-place" design note. Callers must check len(Errors()) == 0 before
// handing the program to the code generator.
func (b *Binder) Bind(prog *ast.Program) {
	b.bindGlobals(prog)
	b.collectFunctionSignatures(prog)
	for _, fn := range prog.Funcs {
		b.bindFunction(fn)
	}
	b.checkMain(prog)
}

func (b *Binder) bindGlobals(prog *ast.Program) {
	for i, g := range prog.Globals {
		if _, dup := b.globals[g.Name]; dup {
			b.errors = append(b.errors, &BindError{
				Message: "duplicate global variable " + quote(g.Name),
				Pos:     g.Pos(),
			})
			continue
		}
		g.Scope = ast.ScopeGlobal
		g.Slot = i
		b.globals[g.Name] = i
	}
}

func (b *Binder) collectFunctionSignatures(prog *ast.Program) {
	for _, fn := range prog.Funcs {
		if _, dup := b.functions[fn.Name]; dup {
			b.errors = append(b.errors, &BindError{
				Message: "duplicate function " + quote(fn.Name),
				Pos:     fn.Pos(),
			})
			continue
		}
		info := &funcInfo{name: fn.Name, paramSlot: make(map[string]int)}
		for i, p := range fn.Params {
			if _, dup := info.paramSlot[p.Name]; dup {
				b.errors = append(b.errors, &BindError{
					Message: "duplicate parameter name " + quote(p.Name) + " in function " + quote(fn.Name),
					Pos:     p.NamePos,
				})
				continue
			}
			p.Slot = i
			info.paramSlot[p.Name] = i
			info.paramOrder = append(info.paramOrder, p.Name)
		}
		b.functions[fn.Name] = info
	}
}

func (b *Binder) bindFunction(fn *ast.FuncDecl) {
	info := b.functions[fn.Name]
	sc := newScope()
	for name, slot := range info.paramSlot {
		sc.params[name] = slot
	}

	nextLocal := len(fn.Params)
	for _, local := range fn.Body.Locals {
		if _, dup := sc.locals[local.Name]; dup {
			b.errors = append(b.errors, &BindError{
				Message: "duplicate local variable " + quote(local.Name) + " in function " + quote(fn.Name),
				Pos:     local.Pos(),
			})
			continue
		}
		local.Scope = ast.ScopeLocal
		local.Slot = nextLocal
		sc.locals[local.Name] = nextLocal
		nextLocal++
	}
	fn.FrameSize = nextLocal
	if info != nil {
		info.frameSize = nextLocal
	}

	for _, s := range fn.Body.Stmts {
		b.bindStmt(s, sc)
	}
}

// resolve looks a name up in lookup order locals -> parameters ->
// globals (§4.3) and reports the scope/slot it was found in, or ok =
// false if it is unresolved in every table.
func (b *Binder) resolve(sc *scope, name string) (ast.ScopeKind, int, bool) {
	if slot, ok := sc.locals[name]; ok {
		return ast.ScopeLocal, slot, true
	}
	if slot, ok := sc.params[name]; ok {
		return ast.ScopeParam, slot, true
	}
	if slot, ok := b.globals[name]; ok {
		return ast.ScopeGlobal, slot, true
	}
	return ast.Unresolved, 0, false
}

func (b *Binder) checkMain(prog *ast.Program) {
	for _, fn := range prog.Funcs {
		if fn.Name != "main" {
			continue
		}
		if len(fn.Params) != 0 {
			b.errors = append(b.errors, &BindError{
				Message: "'main' must take no parameters",
				Pos:     fn.Pos(),
			})
		}
		return
	}
	pos := prog.Pos()
	b.errors = append(b.errors, &BindError{
		Message: "program has no 'main' function",
		Pos:     pos,
	})
}

func quote(s string) string { return "\"" + s + "\"" }
