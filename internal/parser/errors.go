package parser

import (
	"fmt"

	"github.com/minilang/minic/internal/lexer"
)

// ParseError is one syntax diagnostic: an unexpected token, a `var`
// declared out of position, a missing `else` body, a non-lvalue left
// of `=`, or a mismatched bracket.
type ParseError struct {
	Message string
	Pos     lexer.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}
