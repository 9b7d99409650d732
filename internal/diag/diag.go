// Package diag turns the front end's positioned errors (LexError,
// ParseError, BindError) and the VM's RuntimeError into one uniform,
// source-annotated presentation, grounded on the same
// position+source+caret formatting the teacher toolchain's
// internal/errors package uses for its own compiler diagnostics.
package diag

import (
	"fmt"
	"strings"

	"github.com/minilang/minic/internal/lexer"
)

// Error is one positioned diagnostic ready for display. Pos.IsValid()
// false means "no useful source position" (a RuntimeError has none,
// since the program has already left the source text behind by the
// time the VM runs).
type Error struct {
	Message string
	Source  string
	File    string
	Pos     lexer.Position
}

func New(message, source, file string, pos lexer.Position) *Error {
	return &Error{Message: message, Source: source, File: file, Pos: pos}
}

func (e *Error) Error() string { return e.Format(false) }

// Format renders one diagnostic: a "<file>:<line>:<col>: error: <msg>"
// header, the offending source line, and a caret under the column.
func (e *Error) Format(color bool) string {
	var sb strings.Builder

	if e.Pos.IsValid() {
		fmt.Fprintf(&sb, "%s:%d:%d: error: %s\n", e.File, e.Pos.Line, e.Pos.Column, e.Message)
		if line := sourceLine(e.Source, e.Pos.Line); line != "" {
			lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
			sb.WriteString(lineNumStr)
			sb.WriteString(line)
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
			writeCaret(&sb, color)
		}
	} else {
		fmt.Fprintf(&sb, "%s: error: %s\n", e.File, e.Message)
	}

	return sb.String()
}

func writeCaret(sb *strings.Builder, color bool) {
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString("^")
	if color {
		sb.WriteString("\033[0m")
	}
	sb.WriteString("\n")
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders a batch of diagnostics from one front-end pass
// (the lexer, parser, and binder all accumulate rather than abort),
// with a summary line when there is more than one.
func FormatAll(errs []*Error, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d error(s):\n\n", len(errs))
	for i, e := range errs {
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
