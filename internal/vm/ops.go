package vm

import (
	"math/big"

	"github.com/minilang/minic/internal/bytecode"
)

// maxShift bounds SHL/SHR's shift count: per §4.5, "shifts larger than
// an implementation-chosen bound may still succeed but must preserve
// arbitrary-precision semantics" — this repo chooses to reject shifts
// past a bound no legitimate program needs, rather than let a hostile
// one allocate gigabytes of zero bits.
const maxShift = 1 << 24

func boolInt(b bool) *big.Int {
	if b {
		return big.NewInt(1)
	}
	return big.NewInt(0)
}

// binaryOp pops b then a (a was pushed first), computes a <op> b, and
// pushes the result — every arithmetic, bitwise, comparison, and
// eager-logical opcode shares this shape.
func (vm *VM) binaryOp(op bytecode.OpCode) error {
	b, err := vm.pop()
	if err != nil {
		return err
	}
	a, err := vm.pop()
	if err != nil {
		return err
	}

	switch op {
	case bytecode.OpAdd:
		vm.push(new(big.Int).Add(a, b))
	case bytecode.OpSub:
		vm.push(new(big.Int).Sub(a, b))
	case bytecode.OpMul:
		vm.push(new(big.Int).Mul(a, b))
	case bytecode.OpDiv:
		if b.Sign() == 0 {
			return vm.errorf("division by zero")
		}
		vm.push(new(big.Int).Quo(a, b))
	case bytecode.OpMod:
		if b.Sign() == 0 {
			return vm.errorf("modulo by zero")
		}
		vm.push(new(big.Int).Rem(a, b))

	case bytecode.OpShl, bytecode.OpShr:
		if b.Sign() < 0 {
			return vm.errorf("negative shift count")
		}
		if b.BitLen() > 32 || b.Uint64() > maxShift {
			return vm.errorf("shift count exceeds implementation bound")
		}
		n := uint(b.Uint64())
		if op == bytecode.OpShl {
			vm.push(new(big.Int).Lsh(a, n))
		} else {
			vm.push(new(big.Int).Rsh(a, n))
		}
	case bytecode.OpAnd:
		vm.push(new(big.Int).And(a, b))
	case bytecode.OpOr:
		vm.push(new(big.Int).Or(a, b))
	case bytecode.OpXor:
		vm.push(new(big.Int).Xor(a, b))

	case bytecode.OpLt:
		vm.push(boolInt(a.Cmp(b) < 0))
	case bytecode.OpLe:
		vm.push(boolInt(a.Cmp(b) <= 0))
	case bytecode.OpGt:
		vm.push(boolInt(a.Cmp(b) > 0))
	case bytecode.OpGe:
		vm.push(boolInt(a.Cmp(b) >= 0))
	case bytecode.OpEq:
		vm.push(boolInt(a.Cmp(b) == 0))
	case bytecode.OpNe:
		vm.push(boolInt(a.Cmp(b) != 0))

	case bytecode.OpLAnd:
		vm.push(boolInt(a.Sign() != 0 && b.Sign() != 0))
	case bytecode.OpLOr:
		vm.push(boolInt(a.Sign() != 0 || b.Sign() != 0))

	default:
		return vm.errorf("unimplemented binary opcode %s", op)
	}
	return nil
}

func (vm *VM) unaryOp(op bytecode.OpCode) error {
	a, err := vm.pop()
	if err != nil {
		return err
	}
	switch op {
	case bytecode.OpNeg:
		vm.push(new(big.Int).Neg(a))
	case bytecode.OpPos:
		vm.push(a)
	case bytecode.OpNot:
		vm.push(new(big.Int).Not(a))
	case bytecode.OpLNot:
		vm.push(boolInt(a.Sign() == 0))
	default:
		return vm.errorf("unimplemented unary opcode %s", op)
	}
	return nil
}
