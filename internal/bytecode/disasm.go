package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble renders chunk as a line-oriented textual listing: one
// instruction per line, annotated with function entry points; jump
// targets are printed as raw instruction offsets. Purely for --dump-assembly.
// It never affects program semantics and has no bearing on the VM.
func Disassemble(chunk *Chunk) string {
	var out strings.Builder

	fmt.Fprintf(&out, "; constants: %d, globals: %d\n", len(chunk.Constants), chunk.Globals)
	for i, v := range chunk.Constants {
		fmt.Fprintf(&out, ";   [%d] %s\n", i, v.String())
	}

	funcAt := make(map[int]string, len(chunk.Funcs))
	for _, f := range chunk.Funcs {
		funcAt[f.Entry] = f.Name
	}

	for off, inst := range chunk.Code {
		if name, ok := funcAt[off]; ok {
			fmt.Fprintf(&out, "\nfunc %s:\n", name)
		}
		if label, ok := chunk.Labels[off]; ok && funcAt[off] == "" {
			fmt.Fprintf(&out, "%s:\n", label)
		}
		fmt.Fprintf(&out, "%6d  %s\n", off, disasmInstruction(chunk, off, inst))
	}
	return out.String()
}

func disasmInstruction(chunk *Chunk, off int, inst Instruction) string {
	op := inst.OpCode()
	switch op {
	case OpPushImm:
		idx := inst.B()
		val := "?"
		if int(idx) < len(chunk.Constants) {
			val = chunk.Constants[idx].String()
		}
		return fmt.Sprintf("%-12s %d  ; %s", op, idx, val)

	case OpLoadGlobal, OpStoreGlobal, OpLoadLocal, OpStoreLocal:
		return fmt.Sprintf("%-12s %d", op, inst.B())

	case OpJmp, OpJz, OpJnz:
		return fmt.Sprintf("%-12s %d", op, inst.B())

	case OpCall:
		name := "?"
		if int(inst.B()) < len(chunk.Funcs) {
			name = chunk.Funcs[inst.B()].Name
		}
		return fmt.Sprintf("%-12s argc=%d  ; %s", op, inst.A(), name)

	default:
		return op.String()
	}
}
