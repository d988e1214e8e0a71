package ir

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestConstantFolding(t *testing.T) {
	ctx := NewContext()
	binary := func(l Expr, op string, r Expr) Expr {
		e, err := ctx.Binary(l, op, r)
		be.Err(t, err, nil)
		return e
	}
	unary := func(op string, arg Expr) Expr {
		e, err := ctx.Unary(op, arg)
		be.Err(t, err, nil)
		return e
	}

	tests := []struct {
		name string
		expr Expr
		want Value
	}{
		{"int add", binary(IntLiteral(40), "+", IntLiteral(2)), IntValue(42)},
		{"int wraps", binary(IntLiteral(2147483647), "+", IntLiteral(1)), IntValue(-2147483648)},
		{"int division truncates", binary(IntLiteral(7), "/", IntLiteral(2)), IntValue(3)},
		{"negative division truncates", binary(IntLiteral(-7), "/", IntLiteral(2)), IntValue(-3)},
		{"int division by zero", binary(IntLiteral(7), "/", IntLiteral(0)), IntValue(0)},
		{"float folds in double precision", binary(FloatLiteral(0.1), "+", FloatLiteral(0.2)), FloatValue(0.30000000000000004)},
		{"float product is not narrowed", binary(FloatLiteral(1.1), "*", FloatLiteral(1.1)), FloatValue(1.2100000000000002)},
		{"comparison", binary(IntLiteral(2), "<", IntLiteral(3)), BoolValue(true)},
		{"float equality", binary(FloatLiteral(1), "==", FloatLiteral(2)), BoolValue(false)},
		{"negation", unary("-", IntLiteral(5)), IntValue(-5)},
		{"not", unary("!", BoolLiteral(true)), BoolValue(false)},
		{"nested", binary(binary(IntLiteral(6), "*", IntLiteral(7)), "-", unary("-", IntLiteral(1))), IntValue(43)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ConstantOf(tt.expr)
			be.True(t, ok)
			be.Equal(t, got, tt.want)
		})
	}
}

func TestConstantOfLogical(t *testing.T) {
	ctx := NewContext()
	e, err := ctx.Logical(BoolLiteral(true), "&&", BoolLiteral(false))
	be.Err(t, err, nil)
	got, ok := ConstantOf(e)
	be.True(t, ok)
	be.Equal(t, got, BoolValue(false))

	e, err = ctx.Logical(BoolLiteral(true), "^^", BoolLiteral(false))
	be.Err(t, err, nil)
	got, ok = ConstantOf(e)
	be.True(t, ok)
	be.Equal(t, got, BoolValue(true))
}

func TestConstantOfVariable(t *testing.T) {
	ctx := NewContext()
	e, err := ctx.Binary(&Ident{Name: "n", Typ: TypeInt}, "+", IntLiteral(1))
	be.Err(t, err, nil)
	_, ok := ConstantOf(e)
	be.Equal(t, ok, false)
}

func TestValueString(t *testing.T) {
	be.Equal(t, IntValue(-3).String(), "-3")
	be.Equal(t, FloatValue(2).String(), "2.0")
	be.Equal(t, BoolValue(true).String(), "1")
	be.True(t, BoolValue(true).Bool())
	be.Equal(t, FloatValue(0).Bool(), false)
}
