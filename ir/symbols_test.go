package ir

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestSymbolTableScopes(t *testing.T) {
	st := NewSymbolTable()
	outer := &Symbol{Name: "x"}
	inner := &Symbol{Name: "x"}

	be.True(t, st.Declare("x", outer))
	be.Equal(t, st.Declare("x", inner), false)

	st.EnterScope()
	be.Equal(t, st.Depth(), 2)
	_, ok := st.LookupLocal("x")
	be.Equal(t, ok, false)
	be.True(t, st.Declare("x", inner))
	got, _ := st.Lookup("x")
	be.True(t, got == inner)

	st.ExitScope()
	got, _ = st.Lookup("x")
	be.True(t, got == outer)

	st.ExitScope()
	be.Equal(t, st.Depth(), 1)
}

func TestNamer(t *testing.T) {
	n := newNamer()
	be.Equal(t, n.call("x"), "x")
	be.Equal(t, n.call("x"), "x_1")
	be.Equal(t, n.call("var"), "_var")
	be.Equal(t, n.call("Math_sin"), "_Math_sin")
	be.Equal(t, n.call(""), "_unnamed")
	be.Equal(t, n.call("stdlib"), "_stdlib")

	f := n.fork()
	be.Equal(t, f.call("x"), "x_2")
	be.Equal(t, f.call("y"), "y")
	be.Equal(t, n.call("y"), "y")
}

func TestStackAllocator(t *testing.T) {
	s := NewStackAllocator()

	seq := s.Materialize(TypeFloat, []Expr{FloatLiteral(1), FloatLiteral(2), FloatLiteral(3)}, TypeVec3, 0)
	// store and bump per component, then the base address
	be.Equal(t, len(seq.Exprs), 7)
	be.Equal(t, seq.Type(), TypeVec3)

	r := s.Reserve(TypeMat2, 0)
	be.Equal(t, len(r.Exprs), 2)
	be.Equal(t, r.Type(), TypeMat2)

	a := s.Reserve(TypeInt, 5)
	be.Equal(t, a.ArraySize(), 5)

	be.Equal(t, s.Sites(), 3)
	be.Equal(t, s.Footprint(), 12+16+20)
}

func TestTypes(t *testing.T) {
	tests := []struct {
		typ       Type
		name      string
		count     int
		component Type
	}{
		{TypeInt, "int", 1, TypeInt},
		{TypeBVec3, "bvec3", 3, TypeBool},
		{TypeVec4, "vec4", 4, TypeFloat},
		{TypeMat3, "mat3", 9, TypeFloat},
	}
	for _, tt := range tests {
		be.Equal(t, tt.typ.String(), tt.name)
		be.Equal(t, tt.typ.ComponentCount(), tt.count)
		be.Equal(t, tt.typ.ComponentType(), tt.component)
		got, ok := TypeByName(tt.name)
		be.True(t, ok)
		be.Equal(t, got, tt.typ)
	}

	be.Equal(t, VectorOf(TypeInt, 3), TypeIVec3)
	be.Equal(t, VectorOf(TypeFloat, 1), TypeFloat)
	be.Equal(t, VectorOf(TypeFloat, 5), TypeInvalid)
	be.Equal(t, MatrixOf(4), TypeMat4)
	be.Equal(t, TypeMat2.MatrixDim(), 2)
	be.Equal(t, typeName(TypeFloat, 3), "float[3]")
}
