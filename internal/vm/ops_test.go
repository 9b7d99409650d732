package vm

import (
	"math/big"
	"testing"

	"github.com/minilang/minic/internal/bytecode"
)

// OpLAnd/OpLOr are real ISA opcodes per the logical-operator table,
// even though the compiler always lowers && and || to branches
// instead of emitting them (see compileAnd/compileOr in
// internal/bytecode). These tests hand-drive binaryOp the way a
// disassembled-then-hand-assembled program would, since no compiled
// minic source ever reaches these opcodes itself.
func TestBinaryOpLAndIsEagerNonShortCircuit(t *testing.T) {
	cases := []struct {
		a, b int64
		want int64
	}{
		{0, 0, 0},
		{0, 5, 0},
		{5, 0, 0},
		{3, 7, 1},
	}
	for _, c := range cases {
		vm := &VM{}
		vm.push(big.NewInt(c.a))
		vm.push(big.NewInt(c.b))
		if err := vm.binaryOp(bytecode.OpLAnd); err != nil {
			t.Fatalf("LAND(%d, %d): unexpected error: %v", c.a, c.b, err)
		}
		got, err := vm.pop()
		if err != nil {
			t.Fatalf("LAND(%d, %d): pop: %v", c.a, c.b, err)
		}
		if got.Int64() != c.want {
			t.Fatalf("LAND(%d, %d) = %s, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestBinaryOpLOrIsEagerNonShortCircuit(t *testing.T) {
	cases := []struct {
		a, b int64
		want int64
	}{
		{0, 0, 0},
		{0, 5, 1},
		{5, 0, 1},
		{3, 7, 1},
	}
	for _, c := range cases {
		vm := &VM{}
		vm.push(big.NewInt(c.a))
		vm.push(big.NewInt(c.b))
		if err := vm.binaryOp(bytecode.OpLOr); err != nil {
			t.Fatalf("LOR(%d, %d): unexpected error: %v", c.a, c.b, err)
		}
		got, err := vm.pop()
		if err != nil {
			t.Fatalf("LOR(%d, %d): pop: %v", c.a, c.b, err)
		}
		if got.Int64() != c.want {
			t.Fatalf("LOR(%d, %d) = %s, want %d", c.a, c.b, got, c.want)
		}
	}
}

// dispatch must also be able to execute a hand-assembled instruction
// that uses these opcodes directly, not just binaryOp in isolation.
func TestDispatchExecutesLAndInstruction(t *testing.T) {
	vm := &VM{}
	vm.push(big.NewInt(1))
	vm.push(big.NewInt(1))
	inst := bytecode.MakeSimpleInstruction(bytecode.OpLAnd)
	if _, _, err := vm.dispatch(inst); err != nil {
		t.Fatalf("dispatch(LAND): unexpected error: %v", err)
	}
	got, err := vm.pop()
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if got.Int64() != 1 {
		t.Fatalf("dispatch(LAND) = %s, want 1", got)
	}
}
