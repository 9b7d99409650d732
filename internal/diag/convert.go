package diag

import (
	"github.com/minilang/minic/internal/binder"
	"github.com/minilang/minic/internal/lexer"
	"github.com/minilang/minic/internal/parser"
	"github.com/minilang/minic/internal/vm"
)

// FromLexErrors, FromParseErrors, and FromBindErrors each adapt one
// stage's accumulated error slice to the shared presentation type; the
// CLI calls whichever of these ran before giving up on a source file.
func FromLexErrors(errs []lexer.LexError, source, file string) []*Error {
	out := make([]*Error, len(errs))
	for i, e := range errs {
		out[i] = New(e.Message, source, file, e.Pos)
	}
	return out
}

func FromParseErrors(errs []*parser.ParseError, source, file string) []*Error {
	out := make([]*Error, len(errs))
	for i, e := range errs {
		out[i] = New(e.Message, source, file, e.Pos)
	}
	return out
}

func FromBindErrors(errs []*binder.BindError, source, file string) []*Error {
	out := make([]*Error, len(errs))
	for i, e := range errs {
		out[i] = New(e.Message, source, file, e.Pos)
	}
	return out
}

// FromRuntimeError adapts a VM failure, which carries a bytecode
// offset rather than a source position — the program has already left
// the source text behind by the time the VM runs, so this diagnostic
// has no caret-annotated line.
func FromRuntimeError(err *vm.RuntimeError, file string) *Error {
	return &Error{Message: err.Error(), File: file}
}
