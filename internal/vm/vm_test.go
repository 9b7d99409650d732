package vm

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/minilang/minic/internal/binder"
	"github.com/minilang/minic/internal/bytecode"
	"github.com/minilang/minic/internal/lexer"
	"github.com/minilang/minic/internal/parser"
)

func run(t *testing.T, src, stdin string) (result *big.Int, stdout string, err error) {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	b := binder.New()
	b.Bind(prog)
	if errs := b.Errors(); len(errs) != 0 {
		t.Fatalf("bind errors: %v", errs)
	}
	chunk := bytecode.Compile(prog)

	var out bytes.Buffer
	machine := New(chunk, strings.NewReader(stdin), &out)
	result, err = machine.Run()
	return result, out.String(), err
}

func TestArithmeticPrecedence(t *testing.T) {
	res, _, err := run(t, `func main(): Int { return 1 + 2 * 3 - 4 / 2 }`, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Int64() != 5 {
		t.Fatalf("expected 5, got %s", res)
	}
}

func TestRightAssociativeAssignment(t *testing.T) {
	res, _, err := run(t, `
		var a: Int
		var b: Int
		func main(): Int { a = b = 7  return a + b }
	`, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Int64() != 14 {
		t.Fatalf("expected 14, got %s", res)
	}
}

func TestNamedArgumentReordering(t *testing.T) {
	res, _, err := run(t, `
		func sub(a: Int, b: Int): Int { return a - b }
		func main(): Int { return sub(b: 3, a: 10) }
	`, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Int64() != 7 {
		t.Fatalf("expected 7, got %s", res)
	}
}

func TestBigIntegerArithmetic(t *testing.T) {
	res, _, err := run(t, `func main(): Int { return 2 * 10000000000000000000000 }`, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, _ := new(big.Int).SetString("20000000000000000000000", 10)
	if res.Cmp(want) != 0 {
		t.Fatalf("expected %s, got %s", want, res)
	}
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	_, _, err := run(t, `func main(): Int { return 1 / 0 }`, "")
	if err == nil {
		t.Fatalf("expected a runtime error")
	}
	if _, ok := err.(*RuntimeError); !ok {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
}

func TestModuloByZeroIsRuntimeError(t *testing.T) {
	_, _, err := run(t, `func main(): Int { return 1 % 0 }`, "")
	if err == nil {
		t.Fatalf("expected a runtime error")
	}
}

func TestNegativeShiftIsRuntimeError(t *testing.T) {
	_, _, err := run(t, `func main(): Int { return 1 << (0 - 1) }`, "")
	if err == nil {
		t.Fatalf("expected a runtime error")
	}
}

func TestFactorialReadsInputAndPrints(t *testing.T) {
	src := `
		func factorial(n: Int): Int {
			if (n <= 1) {
				return 1
			}
			return n * factorial(n: n - 1)
		}
		func main(): Int {
			var n: Int
			n = input()
			print(val: factorial(n: n))
			return 0
		}
	`
	res, out, err := run(t, src, "5\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Int64() != 0 {
		t.Fatalf("expected exit 0, got %s", res)
	}
	if strings.TrimSpace(out) != "120" {
		t.Fatalf("expected printed 120, got %q", out)
	}
}

func TestShortCircuitAndNeverEvaluatesRHSSideEffect(t *testing.T) {
	// side effects are observable only through print(); rhs must not
	// run when lhs is falsy.
	src := `
		func rhs(): Int { print(val: 99)  return 1 }
		func main(): Int {
			var x: Int
			x = 0 && rhs()
			return x
		}
	`
	res, out, err := run(t, src, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Int64() != 0 {
		t.Fatalf("expected 0, got %s", res)
	}
	if strings.TrimSpace(out) != "" {
		t.Fatalf("rhs should never have run, got output %q", out)
	}
}

func TestShortCircuitOrNeverEvaluatesRHSSideEffect(t *testing.T) {
	src := `
		func rhs(): Int { print(val: 99)  return 1 }
		func main(): Int {
			var x: Int
			x = 1 || rhs()
			return x
		}
	`
	res, out, err := run(t, src, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Int64() != 1 {
		t.Fatalf("expected 1, got %s", res)
	}
	if strings.TrimSpace(out) != "" {
		t.Fatalf("rhs should never have run, got output %q", out)
	}
}

func TestGlobalCounterLoopRunBounded(t *testing.T) {
	src := `
		var counter: Int
		func main(): Int {
			while (1) {
				counter = counter + 1
				if (counter > 10) {
					counter = 0
				}
			}
			return 0
		}
	`
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	b := binder.New()
	b.Bind(prog)
	if errs := b.Errors(); len(errs) != 0 {
		t.Fatalf("bind errors: %v", errs)
	}
	chunk := bytecode.Compile(prog)

	var out bytes.Buffer
	machine := New(chunk, strings.NewReader(""), &out)
	_, ranOut, err := machine.RunBounded(1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ranOut {
		t.Fatalf("expected the infinite loop to exhaust its step budget")
	}
	counter := machine.Globals()[0]
	if counter.Sign() < 0 || counter.Cmp(big.NewInt(10)) > 0 {
		t.Fatalf("counter must stay within 0..10, got %s", counter)
	}
}
