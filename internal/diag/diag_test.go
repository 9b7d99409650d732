package diag

import (
	"strings"
	"testing"

	"github.com/minilang/minic/internal/lexer"
)

func TestFormatIncludesSourceLineAndCaret(t *testing.T) {
	source := "func main(): Int {\n  return @\n}"
	e := New("unexpected character '@'", source, "prog.mc", lexer.Position{Line: 2, Column: 10})

	out := e.Format(false)
	if !strings.Contains(out, "prog.mc:2:10: error: unexpected character '@'") {
		t.Fatalf("missing header, got:\n%s", out)
	}
	if !strings.Contains(out, "return @") {
		t.Fatalf("missing source line, got:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("missing caret, got:\n%s", out)
	}
}

func TestFormatWithoutPositionOmitsSourceLine(t *testing.T) {
	e := New("division by zero", "", "prog.mc", lexer.Position{})
	out := e.Format(false)
	if !strings.Contains(out, "prog.mc: error: division by zero") {
		t.Fatalf("unexpected format, got:\n%s", out)
	}
	if strings.Contains(out, "^") {
		t.Fatalf("runtime error should have no caret, got:\n%s", out)
	}
}

func TestFormatAllSummarizesMultipleErrors(t *testing.T) {
	errs := []*Error{
		New("first problem", "", "a.mc", lexer.Position{}),
		New("second problem", "", "a.mc", lexer.Position{}),
	}
	out := FormatAll(errs, false)
	if !strings.Contains(out, "2 error(s):") {
		t.Fatalf("expected a summary line, got:\n%s", out)
	}
	if !strings.Contains(out, "first problem") || !strings.Contains(out, "second problem") {
		t.Fatalf("expected both messages, got:\n%s", out)
	}
}

func TestFormatAllSingleErrorHasNoSummary(t *testing.T) {
	errs := []*Error{New("only problem", "", "a.mc", lexer.Position{})}
	out := FormatAll(errs, false)
	if strings.Contains(out, "error(s):") {
		t.Fatalf("single error must not get a summary line, got:\n%s", out)
	}
}
