package ir

import (
	"testing"

	"github.com/nalgeon/be"
)

func vecIdent(name string, t Type) *Ident {
	return &Ident{Name: name, Typ: t}
}

func TestBinaryElementwise(t *testing.T) {
	ctx := NewContext()
	v, w := vecIdent("v", TypeVec3), vecIdent("w", TypeVec3)

	tests := []struct {
		name  string
		left  Expr
		right Expr
	}{
		{"vector and vector", v, w},
		{"vector and scalar", v, FloatLiteral(2)},
		{"scalar and vector", FloatLiteral(2), v},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := ctx.Binary(tt.left, "*", tt.right)
			be.Err(t, err, nil)
			comp, ok := e.(*Composite)
			be.True(t, ok)
			be.Equal(t, comp.Type(), TypeVec3)
			be.Equal(t, len(comp.Elements), 3)
			for _, el := range comp.Elements {
				b, ok := el.(*Binary)
				be.True(t, ok)
				be.Equal(t, b.Op, "*")
				be.Equal(t, b.Type(), TypeFloat)
			}
		})
	}
}

func TestBinaryEquality(t *testing.T) {
	ctx := NewContext()
	v, w := vecIdent("v", TypeIVec3), vecIdent("w", TypeIVec3)

	eq, err := ctx.Binary(v, "==", w)
	be.Err(t, err, nil)
	be.Equal(t, eq.Type(), TypeBool)

	// ((v0 == w0 && v1 == w1) && v2 == w2)
	outer, ok := eq.(*Logical)
	be.True(t, ok)
	be.Equal(t, outer.Op, "&&")
	inner, ok := outer.Left.(*Logical)
	be.True(t, ok)
	_, ok = inner.Left.(*Binary)
	be.True(t, ok)
	last, ok := outer.Right.(*Binary)
	be.True(t, ok)
	be.Equal(t, last.Op, "==")

	ne, err := ctx.Binary(v, "!=", w)
	be.Err(t, err, nil)
	not, ok := ne.(*Unary)
	be.True(t, ok)
	be.Equal(t, not.Op, "!")
	_, ok = not.Arg.(*Logical)
	be.True(t, ok)
}

func TestBinaryIntDivision(t *testing.T) {
	ctx := NewContext()
	e, err := ctx.Binary(vecIdent("a", TypeInt), "/", vecIdent("b", TypeInt))
	be.Err(t, err, nil)
	b, ok := e.(*Binary)
	be.True(t, ok)
	be.Equal(t, b.Op, "|")
	be.True(t, b.Cast)

	e, err = ctx.Binary(vecIdent("x", TypeFloat), "/", vecIdent("y", TypeFloat))
	be.Err(t, err, nil)
	be.Equal(t, e.(*Binary).Op, "/")
}

func TestBinaryErrors(t *testing.T) {
	ctx := NewContext()
	n := vecIdent("n", TypeInt)
	x := vecIdent("x", TypeFloat)
	p := vecIdent("p", TypeBool)
	arr := &Ident{Name: "arr", Typ: TypeInt, Size: 4}

	tests := []struct {
		name  string
		left  Expr
		op    string
		right Expr
		kind  ErrorKind
	}{
		{"mixed scalars", n, "+", x, TypeMismatch},
		{"bool arithmetic", p, "+", p, InvalidOperandType},
		{"bool ordering", p, "<", p, InvalidOperandType},
		{"array operand", arr, "+", n, InvalidOperandType},
		{"vector ordering", vecIdent("v", TypeVec2), "<", vecIdent("w", TypeVec2), InvalidOperandType},
		{"vector sizes", vecIdent("v", TypeVec2), "+", vecIdent("w", TypeVec3), TypeMismatch},
		{"vector component types", vecIdent("v", TypeVec2), "+", n, TypeMismatch},
		{"bool vectors", vecIdent("v", TypeBVec2), "+", vecIdent("w", TypeBVec2), InvalidOperandType},
		{"unknown operator", n, "%", n, SyntaxError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ctx.Binary(tt.left, tt.op, tt.right)
			be.Err(t, err, tt.kind)
		})
	}
}

func TestUnary(t *testing.T) {
	ctx := NewContext()

	e, err := ctx.Unary("-", vecIdent("v", TypeVec4))
	be.Err(t, err, nil)
	comp, ok := e.(*Composite)
	be.True(t, ok)
	be.Equal(t, len(comp.Elements), 4)

	_, err = ctx.Unary("!", vecIdent("n", TypeInt))
	be.Err(t, err, InvalidOperandType)
	_, err = ctx.Unary("-", vecIdent("p", TypeBool))
	be.Err(t, err, InvalidOperandType)
	_, err = ctx.Unary("~", vecIdent("n", TypeInt))
	be.Err(t, err, SyntaxError)
}

func TestLogical(t *testing.T) {
	ctx := NewContext()
	p, q := vecIdent("p", TypeBool), vecIdent("q", TypeBool)

	e, err := ctx.Logical(p, "||", q)
	be.Err(t, err, nil)
	be.Equal(t, e.(*Logical).Op, "||")

	e, err = ctx.Logical(p, "^^", q)
	be.Err(t, err, nil)
	be.Equal(t, e.(*Binary).Op, "!=")

	_, err = ctx.Logical(vecIdent("n", TypeInt), "&&", q)
	be.Err(t, err, InvalidOperandType)
}

func TestAssign(t *testing.T) {
	ctx := NewContext()
	n := vecIdent("n", TypeInt)

	e, err := ctx.Assign(n, "+=", IntLiteral(1))
	be.Err(t, err, nil)
	a, ok := e.(*Assign)
	be.True(t, ok)
	be.True(t, a.Left == Expr(n))
	cast, ok := a.Right.(*Binary)
	be.True(t, ok)
	be.Equal(t, cast.Op, "|")

	tests := []struct {
		name  string
		left  Expr
		right Expr
		kind  ErrorKind
	}{
		{"literal target", IntLiteral(1), IntLiteral(2), InvalidLvalue},
		{"hidden target", vecIdent("$$t0", TypeInt), IntLiteral(2), InvalidLvalue},
		{"type mismatch", n, FloatLiteral(2), TypeMismatch},
		{"array target", &Ident{Name: "arr", Typ: TypeInt, Size: 2}, IntLiteral(0), InvalidOperandType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ctx.Assign(tt.left, "=", tt.right)
			be.Err(t, err, tt.kind)
		})
	}
}

func TestAssignVector(t *testing.T) {
	ctx := NewContext()
	v, w := vecIdent("v", TypeVec3), vecIdent("w", TypeVec3)

	e, err := ctx.Assign(v, "=", w)
	be.Err(t, err, nil)
	comp, ok := e.(*Composite)
	be.True(t, ok)
	be.Equal(t, len(comp.Pre), 3)
	for _, p := range comp.Pre {
		_, ok := p.(*Assign)
		be.True(t, ok)
	}
}

func TestSwizzle(t *testing.T) {
	ctx := NewContext()
	v := vecIdent("v", TypeVec4)

	e, err := ctx.Field(v, "zyx")
	be.Err(t, err, nil)
	sw, ok := e.(*Swizzle)
	be.True(t, ok)
	be.Equal(t, sw.Type(), TypeVec3)
	be.Equal(t, sw.Offsets, []int{2, 1, 0})

	e, err = ctx.Field(v, "g")
	be.Err(t, err, nil)
	be.Equal(t, e.Type(), TypeFloat)

	tests := []struct {
		name   string
		target Expr
		field  string
	}{
		{"out of range", vecIdent("u", TypeVec2), "z"},
		{"mixed sets", v, "xg"},
		{"unknown letter", v, "xq"},
		{"too long", v, "xyzwx"},
		{"scalar", vecIdent("n", TypeInt), "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ctx.Field(tt.target, tt.field)
			be.Err(t, err, InvalidOperandType)
		})
	}
}

func TestSwizzleDuplicateTarget(t *testing.T) {
	ctx := NewContext()
	sw, err := ctx.Field(vecIdent("v", TypeVec3), "xx")
	be.Err(t, err, nil)

	_, err = ctx.Assign(sw, "=", vecIdent("w", TypeVec2))
	be.Err(t, err, DuplicateSwizzleTarget)

	sw, err = ctx.Field(vecIdent("v", TypeVec3), "zx")
	be.Err(t, err, nil)
	_, err = ctx.Assign(sw, "=", vecIdent("w", TypeVec2))
	be.Err(t, err, nil)
}

func TestUpdate(t *testing.T) {
	ctx := NewContext()

	e, err := ctx.Update("++", false, vecIdent("n", TypeInt))
	be.Err(t, err, nil)
	u, ok := e.(*Update)
	be.True(t, ok)
	be.Equal(t, u.Prefix, false)

	e, err = ctx.Update("--", true, vecIdent("v", TypeIVec2))
	be.Err(t, err, nil)
	be.Equal(t, len(e.(*Composite).Elements), 2)

	_, err = ctx.Update("++", true, vecIdent("p", TypeBool))
	be.Err(t, err, InvalidOperandType)
	_, err = ctx.Update("++", true, IntLiteral(1))
	be.Err(t, err, InvalidLvalue)
}

func TestUpdateSwizzle(t *testing.T) {
	ctx := NewContext()
	v := vecIdent("v", TypeVec3)

	sw, err := ctx.Field(v, "xx")
	be.Err(t, err, nil)
	_, err = ctx.Update("++", false, sw)
	be.Err(t, err, DuplicateSwizzleTarget)

	// zy.yy writes y twice through the inner swizzle
	inner, err := ctx.Field(v, "zy")
	be.Err(t, err, nil)
	outer, err := ctx.Field(inner, "yy")
	be.Err(t, err, nil)
	_, err = ctx.Update("--", true, outer)
	be.Err(t, err, DuplicateSwizzleTarget)

	sw, err = ctx.Field(v, "zx")
	be.Err(t, err, nil)
	e, err := ctx.Update("++", false, sw)
	be.Err(t, err, nil)
	be.Equal(t, len(e.(*Composite).Elements), 2)
}

func TestComma(t *testing.T) {
	ctx := NewContext()
	a, b := vecIdent("a", TypeInt), vecIdent("b", TypeFloat)

	_, err := ctx.Comma(nil)
	be.Err(t, err, SyntaxError)

	e, err := ctx.Comma([]Expr{a, b})
	be.Err(t, err, nil)
	seq, ok := e.(*Sequence)
	be.True(t, ok)
	be.Equal(t, len(seq.Exprs), 2)
	be.Equal(t, e.Type(), TypeFloat)

	// a composite without effects contributes nothing
	pureVec := &Composite{Elements: []Expr{FloatLiteral(0), FloatLiteral(1)}, Typ: TypeVec2}
	e, err = ctx.Comma([]Expr{pureVec, b})
	be.Err(t, err, nil)
	be.True(t, e == Expr(b))

	_, err = ctx.Comma([]Expr{&Ident{Name: "arr", Typ: TypeInt, Size: 2}, b})
	be.Err(t, err, InvalidOperandType)
}

func TestConditional(t *testing.T) {
	ctx := NewContext()
	p := vecIdent("p", TypeBool)

	e, err := ctx.Conditional(p, IntLiteral(1), IntLiteral(2))
	be.Err(t, err, nil)
	be.Equal(t, e.Type(), TypeInt)

	_, err = ctx.Conditional(vecIdent("n", TypeInt), IntLiteral(1), IntLiteral(2))
	be.Err(t, err, InvalidOperandType)
	_, err = ctx.Conditional(p, IntLiteral(1), FloatLiteral(2))
	be.Err(t, err, TypeMismatch)
}
