package glsl

import (
	"errors"
	"fmt"
	"strings"

	"modernc.org/mathutil"

	"github.com/gogpu/glasm/ir"
)

// SourceError represents an error with source location information.
//
// Kind classifies the failure; errors.Is(err, ir.TypeMismatch) and the like
// work on a SourceError.
type SourceError struct {
	Kind    ir.ErrorKind
	Message string
	Span    Span
	Source  string // Original source code (for context display)
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	if e.Span.Start.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d:%d: %s", e.Span.Start.Line, e.Span.Start.Column, e.Message)
}

// Unwrap exposes the error kind.
func (e *SourceError) Unwrap() error {
	if e.Kind == 0 {
		return nil
	}
	return e.Kind
}

// FormatWithContext returns the error message with source context.
// Shows the problematic line with a caret pointing to the error location.
func (e *SourceError) FormatWithContext() string {
	if e.Source == "" || e.Span.Start.Line == 0 {
		return e.Error()
	}

	lines := strings.Split(e.Source, "\n")
	lineNum := e.Span.Start.Line
	if lineNum < 1 || lineNum > len(lines) {
		return e.Error()
	}

	line := strings.TrimRight(lines[lineNum-1], "\r")
	col := mathutil.Clamp(e.Span.Start.Column, 1, len(line)+1)

	var sb strings.Builder
	fmt.Fprintf(&sb, "error: %s\n", e.Message)
	fmt.Fprintf(&sb, "  --> line %d:%d\n", lineNum, col)
	sb.WriteString("   |\n")
	fmt.Fprintf(&sb, "%3d| %s\n", lineNum, line)
	fmt.Fprintf(&sb, "   | %s^\n", strings.Repeat(" ", col-1))

	return sb.String()
}

// NewSourceError creates a new SourceError.
func NewSourceError(kind ir.ErrorKind, message string, span Span, source string) *SourceError {
	return &SourceError{
		Kind:    kind,
		Message: message,
		Span:    span,
		Source:  source,
	}
}

// NewSourceErrorf creates a new SourceError with formatted message.
func NewSourceErrorf(kind ir.ErrorKind, span Span, source string, format string, args ...interface{}) *SourceError {
	return &SourceError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
		Source:  source,
	}
}

// fromIR converts an error returned by an ir constructor. Errors without a
// position are placed at fallback.
func fromIR(err error, fallback Span, source string) *SourceError {
	var se *SourceError
	if errors.As(err, &se) {
		return se
	}
	var ie *ir.Error
	if !errors.As(err, &ie) {
		return NewSourceError(ir.InternalError, err.Error(), fallback, source)
	}
	span := fallback
	if ie.Pos.Line != 0 {
		span = Span{Start: Position{Line: ie.Pos.Line, Column: ie.Pos.Column}}
	}
	return NewSourceError(ie.Kind, ie.Message, span, source)
}
