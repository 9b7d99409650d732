package binder

import (
	"fmt"

	"github.com/minilang/minic/internal/lexer"
)

// BindError is one semantic diagnostic: a duplicate name in one
// scope, an unresolved identifier or function, a named-argument
// mismatch, or a missing/malformed `main`.
type BindError struct {
	Message string
	Pos     lexer.Position
}

func (e *BindError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}
