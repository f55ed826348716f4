// Package errors implements the four fatal error kinds of the semantic
// pipeline and their source-located formatting, grounded on the teacher's
// CompilerError (internal/errors/errors.go) but cut down to the kinds named
// by the pipeline: SyntaxError, ReferenceError, TypeError, and
// NotImplementedError. Errors are raised at the first violation and abort
// the pipeline; there is no recovery and no retry.
package errors

import (
	"fmt"
	"strings"

	"github.com/p7g/llvm-lang/pkg/token"
)

// Kind distinguishes the four fatal error categories.
type Kind int

const (
	// Syntax marks structural violations that don't require type
	// information: misplaced return/break/continue, invalid assignment
	// targets, redeclared bindings in a scope.
	Syntax Kind = iota
	// Reference marks unresolved identifiers, unresolved type names, and
	// unbound type variables surviving to verification.
	Reference
	// TypeMismatch marks arity mismatches, assignability failures,
	// non-numeric operands, wrong-kind field/index access, duplicate
	// variant/field/parameter/type-variable names, and invalid numeric
	// sizes.
	TypeMismatch
	// NotImplemented is reserved for deliberately unsupported features,
	// such as walking the body of a generic function before
	// specialization.
	NotImplemented
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "SyntaxError"
	case Reference:
		return "ReferenceError"
	case TypeMismatch:
		return "TypeError"
	case NotImplemented:
		return "NotImplementedError"
	default:
		return "Error"
	}
}

// CompilerError is the single typed failure surface of the pipeline. It
// always carries a Kind and a human-readable message naming the offending
// symbol and its declared vs. actual types where applicable.
type CompilerError struct {
	Kind    Kind
	Pos     token.Position
	Message string
}

func (e *CompilerError) Error() string {
	if e.Pos.IsZero() {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Pos, e.Message)
}

func new(kind Kind, pos token.Position, format string, args ...any) *CompilerError {
	return &CompilerError{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// NewSyntaxError builds a Syntax-kind error.
func NewSyntaxError(pos token.Position, format string, args ...any) *CompilerError {
	return new(Syntax, pos, format, args...)
}

// NewReferenceError builds a Reference-kind error.
func NewReferenceError(pos token.Position, format string, args ...any) *CompilerError {
	return new(Reference, pos, format, args...)
}

// NewTypeError builds a TypeMismatch-kind error.
func NewTypeError(pos token.Position, format string, args ...any) *CompilerError {
	return new(TypeMismatch, pos, format, args...)
}

// NewNotImplementedError builds a NotImplemented-kind error.
func NewNotImplementedError(pos token.Position, format string, args ...any) *CompilerError {
	return new(NotImplemented, pos, format, args...)
}

// Format renders err against source, with a caret under the offending
// column. When color is true (decided by the caller via go-isatty on the
// output stream) the kind and caret are wrapped in ANSI escapes.
func Format(err *CompilerError, source, filename string, color bool) string {
	var b strings.Builder

	kind := err.Kind.String()
	if color {
		kind = "\x1b[31;1m" + kind + "\x1b[0m"
	}

	if err.Pos.IsZero() {
		fmt.Fprintf(&b, "%s: %s: %s\n", filename, kind, err.Message)
		return b.String()
	}

	fmt.Fprintf(&b, "%s:%d:%d: %s: %s\n", filename, err.Pos.Line, err.Pos.Column, kind, err.Message)

	lines := strings.Split(source, "\n")
	if err.Pos.Line-1 >= 0 && err.Pos.Line-1 < len(lines) {
		line := lines[err.Pos.Line-1]
		fmt.Fprintf(&b, "  %s\n", line)
		caret := strings.Repeat(" ", max(err.Pos.Column-1, 0)) + "^"
		if color {
			caret = "\x1b[31;1m" + caret + "\x1b[0m"
		}
		fmt.Fprintf(&b, "  %s\n", caret)
	}

	return b.String()
}
