package bytecode

import (
	"math/big"

	"github.com/minilang/minic/internal/ast"
	"github.com/minilang/minic/internal/lexer"
)

// binaryOps maps an arithmetic, bitwise, or comparison operator token
// to its opcode. Assignment and the two short-circuit logical
// operators are handled separately in compileExpr since none of them
// lower to "compile both sides, then emit one opcode".
var binaryOps = map[lexer.TokenType]OpCode{
	lexer.PLUS:    OpAdd,
	lexer.MINUS:   OpSub,
	lexer.STAR:    OpMul,
	lexer.SLASH:   OpDiv,
	lexer.PERCENT: OpMod,

	lexer.SHL:   OpShl,
	lexer.SHR:   OpShr,
	lexer.AMP:   OpAnd,
	lexer.PIPE:  OpOr,
	lexer.CARET: OpXor,

	lexer.LT: OpLt,
	lexer.LE: OpLe,
	lexer.GT: OpGt,
	lexer.GE: OpGe,
	lexer.EQ: OpEq,
	lexer.NE: OpNe,
}

var unaryOps = map[lexer.TokenType]OpCode{
	lexer.PLUS:  OpPos,
	lexer.MINUS: OpNeg,
	lexer.TILDE: OpNot,
	lexer.BANG:  OpLNot,
}

func (c *Compiler) compileExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.NumberLit:
		idx := c.chunk.addConstant(n.Value)
		c.emit(OpPushImm, 0, idx)

	case *ast.VarExpr:
		c.emitLoad(n.Scope, n.Slot)

	case *ast.UnaryExpr:
		c.compileExpr(n.X)
		c.emitSimple(unaryOps[n.Op])

	case *ast.BinaryExpr:
		c.compileBinary(n)

	case *ast.CallExpr:
		c.compileCall(n)
	}
}

func (c *Compiler) compileBinary(n *ast.BinaryExpr) {
	switch n.Op {
	case lexer.ASSIGN:
		c.compileAssign(n)
	case lexer.ANDAND:
		c.compileAnd(n)
	case lexer.OROR:
		c.compileOr(n)
	default:
		c.compileExpr(n.Lhs)
		c.compileExpr(n.Rhs)
		c.emitSimple(binaryOps[n.Op])
	}
}

// compileAssign lowers `lhs = rhs`: evaluate rhs, duplicate it so one
// copy can be stored and the other left on the stack as the
// expression's own value (assignment is an expression here, so
// `x = (y = 1)` and `f(x: y = 1)` are both legal).
func (c *Compiler) compileAssign(n *ast.BinaryExpr) {
	target := n.Lhs.(*ast.VarExpr)
	c.compileExpr(n.Rhs)
	c.emitSimple(OpDup)
	c.emitStore(target.Scope, target.Slot)
}

func (c *Compiler) emitLoad(scope ast.ScopeKind, slot int) {
	if scope == ast.ScopeGlobal {
		c.emit(OpLoadGlobal, 0, uint16(slot))
	} else {
		c.emit(OpLoadLocal, 0, uint16(slot))
	}
}

func (c *Compiler) emitStore(scope ast.ScopeKind, slot int) {
	if scope == ast.ScopeGlobal {
		c.emit(OpStoreGlobal, 0, uint16(slot))
	} else {
		c.emit(OpStoreLocal, 0, uint16(slot))
	}
}

// compileAnd lowers `a && b` purely through branches: if a is falsy
// the result is 0 without ever evaluating b.
func (c *Compiler) compileAnd(n *ast.BinaryExpr) {
	falseLbl := c.newLabel()
	endLbl := c.newLabel()

	c.compileExpr(n.Lhs)
	c.emitJump(OpJz, falseLbl)
	c.compileExpr(n.Rhs)
	c.emitJump(OpJz, falseLbl)
	one := c.chunk.addConstant(bigOne)
	c.emit(OpPushImm, 0, one)
	c.emitJump(OpJmp, endLbl)
	c.placeLabel(falseLbl)
	zero := c.chunk.addConstant(bigZero)
	c.emit(OpPushImm, 0, zero)
	c.placeLabel(endLbl)
}

// compileOr mirrors compileAnd: if a is truthy the result is 1
// without ever evaluating b.
func (c *Compiler) compileOr(n *ast.BinaryExpr) {
	trueLbl := c.newLabel()
	falseLbl := c.newLabel()
	endLbl := c.newLabel()

	c.compileExpr(n.Lhs)
	c.emitJump(OpJnz, trueLbl)
	c.compileExpr(n.Rhs)
	c.emitJump(OpJz, falseLbl)
	c.placeLabel(trueLbl)
	one := c.chunk.addConstant(bigOne)
	c.emit(OpPushImm, 0, one)
	c.emitJump(OpJmp, endLbl)
	c.placeLabel(falseLbl)
	zero := c.chunk.addConstant(bigZero)
	c.emit(OpPushImm, 0, zero)
	c.placeLabel(endLbl)
}

// compileCall reorders the call site's named arguments into the
// callee's declared parameter order before emitting them, since CALL
// itself carries no argument names at runtime — only positions. The
// three builtins are opcodes rather than callable functions (§4.5),
// so they never reach CALL at all.
func (c *Compiler) compileCall(n *ast.CallExpr) {
	switch n.Callee {
	case "input":
		c.emitSimple(OpReadInt)
		return
	case "print":
		args := n.ArgMap()
		c.compileExpr(args["val"])
		c.emitSimple(OpPrintInt)
		return
	case "exit":
		c.emitSimple(OpHalt)
		return
	}

	fnIdx := c.chunk.FuncIndex[n.Callee]
	entry := c.chunk.Funcs[fnIdx]
	args := n.ArgMap()
	for _, name := range entry.ParamOrder {
		c.compileExpr(args[name])
	}
	c.emit(OpCall, byte(entry.Arity), uint16(fnIdx))
}

var bigOne = big.NewInt(1)
