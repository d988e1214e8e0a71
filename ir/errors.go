package ir

import (
	"fmt"
)

// ErrorKind classifies a compilation failure. Kinds are themselves errors so
// callers can test for them with errors.Is.
type ErrorKind uint8

const (
	TypeMismatch ErrorKind = iota + 1
	InvalidOperandType
	InvalidLvalue
	DuplicateSwizzleTarget
	UnsupportedConversion
	EntryPointError
	SyntaxError
	UndeclaredIdentifier
	Redeclaration
	Unsupported
	InternalError
)

var errorKindNames = [...]string{
	TypeMismatch:           "type mismatch",
	InvalidOperandType:     "invalid operand type",
	InvalidLvalue:          "invalid lvalue",
	DuplicateSwizzleTarget: "duplicate swizzle target",
	UnsupportedConversion:  "unsupported conversion",
	EntryPointError:        "entry point error",
	SyntaxError:            "syntax error",
	UndeclaredIdentifier:   "undeclared identifier",
	Redeclaration:          "redeclaration",
	Unsupported:            "unsupported",
	InternalError:          "internal error",
}

// Error implements the error interface.
func (k ErrorKind) Error() string {
	if int(k) < len(errorKindNames) && errorKindNames[k] != "" {
		return errorKindNames[k]
	}
	return fmt.Sprintf("error kind %d", uint8(k))
}

// Position is a 1-based line and column in the source text.
type Position struct {
	Line   int
	Column int
}

// Error is a diagnostic produced while building the tree.
type Error struct {
	Kind    ErrorKind
	Message string
	Pos     Position
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Pos.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s on line %d", e.Message, e.Pos.Line)
}

// Unwrap exposes the kind for errors.Is.
func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(pos Position, kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	}
}
