package bytecode

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func TestDisassembleFactorial(t *testing.T) {
	chunk := compileSource(t, `
		func factorial(n: Int): Int {
			if (n <= 1) {
				return 1
			}
			return n * factorial(n: n - 1)
		}
		func main(): Int { return factorial(n: 5) }
	`)
	snaps.MatchSnapshot(t, "factorial_disasm", Disassemble(chunk))
}

func TestDisassembleGlobalCounterLoop(t *testing.T) {
	chunk := compileSource(t, `
		var total: Int
		func main(): Int {
			var i: Int
			i = 0
			while (i < 10) {
				total = total + i
				i = i + 1
			}
			return total
		}
	`)
	snaps.MatchSnapshot(t, "counter_loop_disasm", Disassemble(chunk))
}
