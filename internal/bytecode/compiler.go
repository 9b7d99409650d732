// Compiler lowers a bound *ast.Program into a *Chunk. It assumes the
// program has already passed the binder: every ast.VarExpr carries a
// resolved Scope/Slot and every ast.CallExpr names a declared
// function, so codegen itself cannot fail — there is no compiler
// error type, matching §7's "all front-end errors abort compilation
// before any VM execution begins".
package bytecode

import (
	"math/big"

	"github.com/minilang/minic/internal/ast"
)

// labelRef pairs an already-emitted jump instruction with the label
// id it targets, so a single pass after all code generation can
// rewrite every jump's placeholder B operand to the label's resolved
// absolute offset. Generating with symbolic labels into this side
// table (rather than back-patching instruction indices as each loop
// or branch closes) is the two-pass scheme the frame/label design
// notes call for.
type labelRef struct {
	instrIdx int
	label    int
}

// Compiler holds the one chunk being built and the bookkeeping for
// its still-unresolved jump targets.
type Compiler struct {
	chunk     *Chunk
	nextLabel int
	labelOff  map[int]int
	refs      []labelRef
}

// Compile produces a complete Chunk from a bound program.
func Compile(prog *ast.Program) *Chunk {
	c := &Compiler{
		chunk:    NewChunk(),
		labelOff: make(map[int]int),
	}
	c.chunk.Globals = len(prog.Globals)

	for i, fn := range prog.Funcs {
		names := make([]string, len(fn.Params))
		for j, p := range fn.Params {
			names[j] = p.Name
		}
		c.chunk.FuncIndex[fn.Name] = i
		c.chunk.Funcs = append(c.chunk.Funcs, FuncEntry{
			Name:       fn.Name,
			Arity:      len(fn.Params),
			FrameSize:  fn.FrameSize,
			ParamOrder: names,
		})
	}

	for i, fn := range prog.Funcs {
		c.chunk.Funcs[i].Entry = len(c.chunk.Code)
		c.chunk.Labels[len(c.chunk.Code)] = fn.Name
		c.compileFunc(fn)
	}

	c.resolveJumps()
	return c.chunk
}

func (c *Compiler) resolveJumps() {
	for _, ref := range c.refs {
		offset, ok := c.labelOff[ref.label]
		if !ok {
			panic("bytecode: unresolved label (compiler bug)")
		}
		inst := c.chunk.Code[ref.instrIdx]
		c.chunk.Code[ref.instrIdx] = MakeInstruction(inst.OpCode(), inst.A(), uint16(offset))
	}
}

func (c *Compiler) emit(op OpCode, a byte, b uint16) int {
	idx := len(c.chunk.Code)
	c.chunk.Code = append(c.chunk.Code, MakeInstruction(op, a, b))
	return idx
}

func (c *Compiler) emitSimple(op OpCode) int {
	return c.emit(op, 0, 0)
}

// emitJump emits a jump-family instruction with a placeholder operand
// and records it against label for the final fixup pass.
func (c *Compiler) emitJump(op OpCode, label int) {
	idx := c.emit(op, 0, 0)
	c.refs = append(c.refs, labelRef{instrIdx: idx, label: label})
}

func (c *Compiler) newLabel() int {
	id := c.nextLabel
	c.nextLabel++
	return id
}

func (c *Compiler) placeLabel(label int) {
	c.labelOff[label] = len(c.chunk.Code)
}

// compileFunc emits one function's body. The prologue is implicit:
// the caller already placed argc values into slots [0, argc) before
// transferring control (see VM.call), so there is nothing to emit for
// parameter binding itself; locals are zero-initialized by the frame
// allocation in the VM, not by instructions here. The epilogue is the
// implicit `PUSH_IMM 0; RET` appended unconditionally so a function
// that falls off the end without an explicit return still returns 0.
func (c *Compiler) compileFunc(fn *ast.FuncDecl) {
	for _, s := range fn.Body.Stmts {
		c.compileStmt(s)
	}
	zero := c.chunk.addConstant(bigZero)
	c.emit(OpPushImm, 0, zero)
	c.emitSimple(OpRet)
}

func (c *Compiler) compileStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.IfStmt:
		c.compileIf(n)
	case *ast.WhileStmt:
		c.compileWhile(n)
	case *ast.BlockStmt:
		for _, st := range n.Stmts {
			c.compileStmt(st)
		}
	case *ast.ReturnStmt:
		c.compileExpr(n.Value)
		c.emitSimple(OpRet)
	case *ast.ExprStmt:
		c.compileExpr(n.X)
		c.emitSimple(OpPop)
	case *ast.PassStmt:
		// emits nothing
	}
}

func (c *Compiler) compileIf(n *ast.IfStmt) {
	elseLbl := c.newLabel()
	endLbl := c.newLabel()

	c.compileExpr(n.Cond)
	c.emitJump(OpJz, elseLbl)
	c.compileStmt(n.Then)
	c.emitJump(OpJmp, endLbl)
	c.placeLabel(elseLbl)
	if n.Else != nil {
		c.compileStmt(n.Else)
	}
	c.placeLabel(endLbl)
}

func (c *Compiler) compileWhile(n *ast.WhileStmt) {
	topLbl := c.newLabel()
	endLbl := c.newLabel()

	c.placeLabel(topLbl)
	c.compileExpr(n.Cond)
	c.emitJump(OpJz, endLbl)
	c.compileStmt(n.Body)
	c.emitJump(OpJmp, topLbl)
	c.placeLabel(endLbl)
}

var bigZero = big.NewInt(0)
