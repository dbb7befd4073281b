// Package errors implements Flowby's closed error taxonomy and formats
// errors with source context and a caret.
package errors

import (
	"fmt"
	"strings"

	"github.com/flowbylang/flowby/internal/token"
)

// Kind is the closed set of error categories.
type Kind string

const (
	LexError      Kind = "LexError"
	ParseError    Kind = "ParseError"
	SemanticError Kind = "SemanticError"
	RuntimeError  Kind = "RuntimeError"
	ModuleError   Kind = "ModuleError"
)

// Frame is one entry of a formatted call-frame list attached to a
// RuntimeError.
type Frame struct {
	FunctionName string
	Line         int
}

// FlowbyError is every error kind the core can produce: kind, message,
// position, optional origin file, and an optional call-frame list. Key,
// when set, is the canonical i18n message key the Message was rendered
// from, so hosts can re-resolve it against their own catalog.
type FlowbyError struct {
	Kind    Kind
	Key     string
	Message string
	Pos     token.Position
	Frames  []Frame
}

func New(kind Kind, pos token.Position, format string, args ...any) *FlowbyError {
	return &FlowbyError{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// NewKeyed builds an error whose message was already resolved from the
// given canonical key (see internal/i18n).
func NewKeyed(kind Kind, pos token.Position, key, message string) *FlowbyError {
	return &FlowbyError{Kind: kind, Key: key, Message: message, Pos: pos}
}

func (e *FlowbyError) Error() string { return e.Format("", false) }

// Format renders origin:line:column, a source-line caret (when source is
// provided), the message, and any call-frame list.
func (e *FlowbyError) Format(source string, color bool) string {
	var sb strings.Builder

	if e.Pos.Origin != "" {
		fmt.Fprintf(&sb, "%s: %s:%d:%d: %s\n", e.Kind, e.Pos.Origin, e.Pos.Line, e.Pos.Column, e.Message)
	} else {
		fmt.Fprintf(&sb, "%s: line %d:%d: %s\n", e.Kind, e.Pos.Line, e.Pos.Column, e.Message)
	}

	if line := sourceLine(source, e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	for _, f := range e.Frames {
		fmt.Fprintf(&sb, "  at %s (line %d)\n", f.FunctionName, f.Line)
	}

	return sb.String()
}

func sourceLine(source string, n int) string {
	if source == "" || n < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// ExitOutcome is the result of a full program run.
type ExitOutcome struct {
	Completed bool
	Code      int
	Message   string
}

func Completed() ExitOutcome { return ExitOutcome{Completed: true} }
func Failed(code int, message string) ExitOutcome {
	return ExitOutcome{Completed: false, Code: code, Message: message}
}
