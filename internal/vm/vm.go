// Package vm executes a compiled *bytecode.Chunk: a single-threaded,
// stack-based interpreter over arbitrary-precision integers.
package vm

import (
	"bufio"
	"fmt"
	"io"
	"math/big"

	"github.com/minilang/minic/internal/bytecode"
)

// VM holds all execution state for one run of a chunk: the operand
// stack, the globals vector, the current frame plus the call stack of
// suspended frames, and the program counter. Everything here is owned
// by a single goroutine; §5 rules out any concurrent access.
type VM struct {
	chunk *bytecode.Chunk

	stack     []*big.Int
	globals   []*big.Int
	frame     *frame
	callStack []*frame
	pc        int

	in  *bufio.Reader
	out io.Writer
}

// New creates a VM ready to execute chunk, reading input() values from
// in and writing print() output to out.
func New(chunk *bytecode.Chunk, in io.Reader, out io.Writer) *VM {
	globals := make([]*big.Int, chunk.Globals)
	for i := range globals {
		globals[i] = big.NewInt(0)
	}
	return &VM{
		chunk:   chunk,
		globals: globals,
		in:      bufio.NewReader(in),
		out:     out,
	}
}

// Run executes the program to completion: main returning, exit()
// firing, or a RuntimeError aborting it. There is no way to interrupt
// it from outside — §5 rules out cancellation as a VM feature.
func (vm *VM) Run() (*big.Int, error) {
	result, _, err := vm.run(0)
	return result, err
}

// RunBounded executes at most maxSteps dispatched instructions before
// stopping on its own, regardless of whether the program has halted.
// It exists solely so a test can drive an intentionally infinite loop
// (the global-counter-loop scenario) for a fixed number of steps and
// then inspect the globals vector; a compiled program has no way to
// observe or trigger this budget. ranOut reports whether the step
// budget was exhausted before the program halted.
func (vm *VM) RunBounded(maxSteps int) (result *big.Int, ranOut bool, err error) {
	res, halted, err := vm.run(maxSteps)
	return res, !halted, err
}

// Globals exposes the globals vector for tests (e.g. RunBounded
// scenarios that inspect state mid-flight rather than a return value).
func (vm *VM) Globals() []*big.Int { return vm.globals }

func (vm *VM) run(maxSteps int) (result *big.Int, halted bool, err error) {
	mainIdx, ok := vm.chunk.FuncIndex["main"]
	if !ok {
		return nil, false, vm.errorf("no 'main' entry point in chunk")
	}
	entry := vm.chunk.Funcs[mainIdx]
	vm.frame = newFrame(entry.FrameSize, -1)
	vm.pc = entry.Entry

	steps := 0
	for {
		if maxSteps > 0 && steps >= maxSteps {
			return nil, false, nil
		}
		steps++

		if vm.pc < 0 || vm.pc >= len(vm.chunk.Code) {
			return nil, false, vm.errorf("program counter ran off the end of the instruction stream")
		}
		inst := vm.chunk.Code[vm.pc]
		vm.pc++

		rv, done, derr := vm.dispatch(inst)
		if derr != nil {
			return nil, false, derr
		}
		if done {
			return rv, true, nil
		}
	}
}

// dispatch executes one instruction. done is true only when the
// outermost frame (main's) returns, ending the program; rv is then
// its return value.
func (vm *VM) dispatch(inst bytecode.Instruction) (rv *big.Int, done bool, err error) {
	switch inst.OpCode() {
	case bytecode.OpPushImm:
		idx := int(inst.B())
		if idx >= len(vm.chunk.Constants) {
			return nil, false, vm.errorf("constant index %d out of range", idx)
		}
		vm.push(vm.chunk.Constants[idx])

	case bytecode.OpPop:
		if _, err := vm.pop(); err != nil {
			return nil, false, err
		}

	case bytecode.OpDup:
		v, err := vm.top()
		if err != nil {
			return nil, false, err
		}
		vm.push(v)

	case bytecode.OpLoadGlobal:
		vm.push(vm.globals[inst.B()])
	case bytecode.OpStoreGlobal:
		v, err := vm.pop()
		if err != nil {
			return nil, false, err
		}
		vm.globals[inst.B()] = v
	case bytecode.OpLoadLocal:
		vm.push(vm.frame.slots[inst.B()])
	case bytecode.OpStoreLocal:
		v, err := vm.pop()
		if err != nil {
			return nil, false, err
		}
		vm.frame.slots[inst.B()] = v

	case bytecode.OpAdd, bytecode.OpSub, bytecode.OpMul, bytecode.OpDiv, bytecode.OpMod,
		bytecode.OpShl, bytecode.OpShr, bytecode.OpAnd, bytecode.OpOr, bytecode.OpXor,
		bytecode.OpLt, bytecode.OpLe, bytecode.OpGt, bytecode.OpGe, bytecode.OpEq, bytecode.OpNe,
		bytecode.OpLAnd, bytecode.OpLOr:
		return nil, false, vm.binaryOp(inst.OpCode())

	case bytecode.OpNot, bytecode.OpLNot, bytecode.OpNeg, bytecode.OpPos:
		return nil, false, vm.unaryOp(inst.OpCode())

	case bytecode.OpJmp:
		vm.pc = int(inst.B())
	case bytecode.OpJz:
		v, err := vm.pop()
		if err != nil {
			return nil, false, err
		}
		if v.Sign() == 0 {
			vm.pc = int(inst.B())
		}
	case bytecode.OpJnz:
		v, err := vm.pop()
		if err != nil {
			return nil, false, err
		}
		if v.Sign() != 0 {
			vm.pc = int(inst.B())
		}

	case bytecode.OpCall:
		return nil, false, vm.call(inst)
	case bytecode.OpRet:
		return vm.ret()

	case bytecode.OpReadInt:
		return nil, false, vm.readInt()
	case bytecode.OpPrintInt:
		return nil, false, vm.printInt()
	case bytecode.OpHalt:
		v := big.NewInt(0)
		return v, true, nil

	default:
		return nil, false, vm.errorf("unimplemented opcode %s", inst.OpCode())
	}
	return nil, false, nil
}

func (vm *VM) call(inst bytecode.Instruction) error {
	argc := int(inst.A())
	fnIdx := int(inst.B())
	if fnIdx >= len(vm.chunk.Funcs) {
		return vm.errorf("call to undefined function index %d", fnIdx)
	}
	entry := vm.chunk.Funcs[fnIdx]
	if len(vm.stack) < argc {
		return vm.errorf("stack underflow preparing call to %s", entry.Name)
	}

	args := vm.stack[len(vm.stack)-argc:]
	next := newFrame(entry.FrameSize, vm.pc)
	copy(next.slots, args)
	vm.stack = vm.stack[:len(vm.stack)-argc]

	vm.callStack = append(vm.callStack, vm.frame)
	vm.frame = next
	vm.pc = entry.Entry
	return nil
}

func (vm *VM) ret() (rv *big.Int, done bool, err error) {
	v, err := vm.pop()
	if err != nil {
		return nil, false, err
	}
	if vm.frame.returnPC == -1 {
		return v, true, nil
	}
	vm.pc = vm.frame.returnPC
	vm.frame = vm.callStack[len(vm.callStack)-1]
	vm.callStack = vm.callStack[:len(vm.callStack)-1]
	vm.push(v)
	return nil, false, nil
}

func (vm *VM) readInt() error {
	var n big.Int
	if _, err := fmt.Fscan(vm.in, &n); err != nil {
		return vm.errorf("reading input: %v", err)
	}
	vm.push(&n)
	return nil
}

// printInt pops its argument, writes it, and pushes 0 back: every call
// expression leaves exactly one value on the stack (§4.4), and print
// is used as an expression (typically discarded by an ExprStmt) just
// like a call to a user function would be.
func (vm *VM) printInt() error {
	v, err := vm.pop()
	if err != nil {
		return err
	}
	fmt.Fprintln(vm.out, v.String())
	vm.push(big.NewInt(0))
	return nil
}

func (vm *VM) push(v *big.Int) {
	vm.stack = append(vm.stack, v)
}

func (vm *VM) pop() (*big.Int, error) {
	if len(vm.stack) == 0 {
		return nil, vm.errorf("stack underflow")
	}
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v, nil
}

func (vm *VM) top() (*big.Int, error) {
	if len(vm.stack) == 0 {
		return nil, vm.errorf("stack underflow")
	}
	return vm.stack[len(vm.stack)-1], nil
}
