package glsl

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nalgeon/be"

	"github.com/gogpu/glasm/ir"
)

func TestSourceErrorFormat(t *testing.T) {
	source := "void main() {\n    float x = y;\n}"
	_, err := Parse(source, Options{})

	var se *SourceError
	be.True(t, errors.As(err, &se))
	be.Equal(t, se.Kind, ir.UndeclaredIdentifier)

	want := "error: undeclared identifier y\n" +
		"  --> line 2:15\n" +
		"   |\n" +
		"  2|     float x = y;\n" +
		"   |               ^\n"
	be.Equal(t, se.FormatWithContext(), want)
}

func TestSourceErrorFormatClampsColumn(t *testing.T) {
	se := NewSourceError(ir.SyntaxError, "unexpected end of input", Span{Start: Position{Line: 1, Column: 40}}, "int x")
	want := "error: unexpected end of input\n" +
		"  --> line 1:6\n" +
		"   |\n" +
		"  1| int x\n" +
		"   |      ^\n"
	be.Equal(t, se.FormatWithContext(), want)
}

func TestSourceErrorWithoutPosition(t *testing.T) {
	se := NewSourceErrorf(ir.InternalError, Span{}, "", "broken %s", "thing")
	be.Equal(t, se.Error(), "broken thing")
	be.Equal(t, se.FormatWithContext(), "broken thing")
}

func TestSourceErrorUnwrap(t *testing.T) {
	se := NewSourceError(ir.TypeMismatch, "bad", Span{}, "")
	be.True(t, errors.Is(se, ir.TypeMismatch))
	be.True(t, !errors.Is(se, ir.SyntaxError))

	wrapped := fmt.Errorf("compile: %w", se)
	be.Err(t, wrapped, ir.TypeMismatch)

	var zero SourceError
	be.Equal(t, zero.Unwrap(), error(nil))
}

func TestFromIR(t *testing.T) {
	fallback := Span{Start: Position{Line: 7, Column: 3}}

	located := &ir.Error{Kind: ir.TypeMismatch, Message: "m", Pos: ir.Position{Line: 2, Column: 5}}
	se := fromIR(located, fallback, "")
	be.Equal(t, se.Span.Start, Position{Line: 2, Column: 5})
	be.Equal(t, se.Kind, ir.TypeMismatch)

	unlocated := &ir.Error{Kind: ir.InvalidLvalue, Message: "m"}
	be.Equal(t, fromIR(unlocated, fallback, "").Span, fallback)

	other := fromIR(errors.New("plain"), fallback, "")
	be.Equal(t, other.Kind, ir.InternalError)
	be.Equal(t, other.Message, "plain")

	same := NewSourceError(ir.SyntaxError, "s", fallback, "")
	be.Equal(t, fromIR(same, Span{}, ""), same)
}
