package ir

import (
	"math"
	"testing"

	"github.com/nalgeon/be"
)

func TestCast(t *testing.T) {
	n := &Ident{Name: "n", Typ: TypeInt}
	x := &Ident{Name: "x", Typ: TypeFloat}
	v := &Ident{Name: "v", Typ: TypeVec3}
	a := &Ident{Name: "a", Typ: TypeInt, Size: 4}

	tests := []struct {
		name   string
		expr   Expr
		target Type
		op     string
		typ    Type
		size   int
	}{
		{"int to float", n, TypeFloat, "+", TypeFloat, 0},
		{"float to int", x, TypeInt, "~~", TypeInt, 0},
		{"int to int", n, TypeInt, "|", TypeInt, 0},
		{"float to bool", x, TypeBool, "~~", TypeBool, 0},
		{"vector keeps label", v, TypeVec3, "|", TypeVec3, 0},
		{"array keeps element type", a, TypeInt, "|", TypeInt, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cast(tt.expr, tt.target)
			be.Err(t, err, nil)
			be.Equal(t, got.Type(), tt.typ)
			be.Equal(t, got.ArraySize(), tt.size)
			switch c := got.(type) {
			case *Unary:
				be.Equal(t, c.Op, tt.op)
				be.True(t, c.Cast)
			case *Binary:
				be.Equal(t, c.Op, tt.op)
				be.True(t, c.Cast)
			default:
				t.Fatalf("Cast returned %T", got)
			}
		})
	}
}

func TestCastIdempotent(t *testing.T) {
	n := &Ident{Name: "n", Typ: TypeInt}
	for _, target := range []Type{TypeInt, TypeFloat, TypeBool, TypeVec2} {
		once, err := Cast(n, target)
		be.Err(t, err, nil)
		twice, err := Cast(once, target)
		be.Err(t, err, nil)
		be.True(t, once == twice)
	}
}

func TestCastLiteral(t *testing.T) {
	lit := IntLiteral(3)
	got, err := Cast(lit, TypeInt)
	be.Err(t, err, nil)
	be.True(t, got == Expr(lit))

	f := FloatLiteral(1.5)
	got, err = Cast(f, TypeFloat)
	be.Err(t, err, nil)
	be.True(t, got == Expr(f))
}

func TestCastUnsupported(t *testing.T) {
	_, err := Cast(&Ident{Name: "n", Typ: TypeInt}, TypeVoid)
	be.Err(t, err, UnsupportedConversion)
}

func TestCastArrayMismatch(t *testing.T) {
	a := &Ident{Name: "a", Typ: TypeInt, Size: 4}
	for _, target := range []Type{TypeFloat, TypeBool, TypeIVec4} {
		_, err := Cast(a, target)
		be.Err(t, err, UnsupportedConversion)
	}
}

func TestToInt32(t *testing.T) {
	tests := []struct {
		in   float64
		want int32
	}{
		{3.9, 3},
		{-3.9, -3},
		{4294967301, 5},
		{2147483648, math.MinInt32},
		{-2147483649, math.MaxInt32},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
	}
	for _, tt := range tests {
		be.Equal(t, ToInt32(tt.in), tt.want)
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1.0"},
		{0, "0.0"},
		{-2, "-2.0"},
		{0.5, "0.5"},
		{1e21, "1000000000000000000000.0"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
	}
	for _, tt := range tests {
		be.Equal(t, FormatFloat(tt.in), tt.want)
	}
}
