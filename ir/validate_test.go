package ir

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func finishedFunction(t *testing.T, name string, result Type, body Block) *Function {
	t.Helper()
	fn := NewFunction(name, &Ident{Name: name, Typ: result}, result, nil)
	be.Err(t, fn.SetBody(body), nil)
	return fn
}

func TestValidate_ValidProgram(t *testing.T) {
	p := NewProgram()
	p.AddGlobal(&Ident{Name: "g", Typ: TypeFloat}, FloatValue(1))
	i := &Ident{Name: "i", Typ: TypeInt}
	loop := &StmtWhile{
		Test: &Binary{Left: i, Op: "<", Right: IntLiteral(3), Typ: TypeBool},
		Body: &StmtBlock{Block: Block{&StmtBreak{}}},
	}
	p.AddFunction(finishedFunction(t, "main", TypeVoid, Block{loop, &StmtReturn{}}))

	errs, err := Validate(p)
	be.Err(t, err, nil)
	be.Equal(t, len(errs), 0)
}

func TestValidate_NilProgram(t *testing.T) {
	_, err := Validate(nil)
	be.Err(t, err)
}

func TestValidate_Errors(t *testing.T) {
	n := &Ident{Name: "n", Typ: TypeInt}

	tests := []struct {
		name   string
		result Type
		body   Block
		want   string
	}{
		{"break outside loop", TypeVoid, Block{&StmtBreak{}}, "break outside of a loop"},
		{"continue outside loop", TypeVoid, Block{&StmtContinue{}}, "continue outside of a loop"},
		{"int condition", TypeVoid, Block{&StmtIf{Test: n, Then: &StmtEmpty{}}}, "condition has type int"},
		{"missing value", TypeInt, Block{&StmtReturn{}}, "missing return value of type int"},
		{"void returns value", TypeVoid, Block{&StmtReturn{Value: n}}, "void function returns a value"},
		{"wrong return type", TypeFloat, Block{&StmtReturn{Value: n}}, "returns int, expected float"},
		{"composite left in tree", TypeVoid, Block{&StmtExpr{X: &Composite{Elements: []Expr{n, n}, Typ: TypeIVec2}}}, "never materialized"},
		{"swizzle left in tree", TypeVoid, Block{&StmtExpr{X: &Swizzle{Vector: &Ident{Name: "v", Typ: TypeVec2}, Offsets: []int{1, 0}, Typ: TypeVec2}}}, "unresolved swizzle"},
		{"host node", TypeVoid, Block{&StmtExpr{X: &Object{}}}, "host node"},
		{"assign to literal", TypeVoid, Block{&StmtExpr{X: &Assign{Left: IntLiteral(1), Right: n}}}, "cannot assign"},
		{"logical on ints", TypeVoid, Block{&StmtExpr{X: &Logical{Left: n, Op: "&&", Right: n}}}, "logical operator on non-bool"},
		{"float store index", TypeVoid, Block{&StmtExpr{X: &Member{Object: &Ident{Name: StackIntName, Typ: TypeInt}, Property: FloatLiteral(0), Computed: true, Typ: TypeInt}}}, "store index has type float"},
		{"non-literal var", TypeVoid, Block{&StmtVar{Name: n, Init: n}}, "var initializer must be a literal"},
		{"var kind mismatch", TypeVoid, Block{&StmtVar{Name: n, Init: FloatLiteral(0)}}, "initialized with float"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProgram()
			p.AddFunction(finishedFunction(t, "f", tt.result, tt.body))
			errs, err := Validate(p)
			be.Err(t, err, nil)
			be.True(t, len(errs) > 0)
			be.True(t, strings.Contains(errs[0].Error(), tt.want))
			be.Equal(t, errs[0].Function, "f")
		})
	}
}

func TestValidate_ProgramErrors(t *testing.T) {
	p := NewProgram()
	p.StackSize = 1000
	p.AddGlobal(&Ident{Name: "g", Typ: TypeInt}, FloatValue(1))
	p.AddFunction(NewFunction("h", &Ident{Name: "h", Typ: TypeVoid}, TypeVoid, nil))

	errs, err := Validate(p)
	be.Err(t, err, nil)
	be.Equal(t, len(errs), 3)
	be.Equal(t, errs[0].Error(), "global g of type int has a float value")
	be.Equal(t, errs[1].Error(), "in function h: function body was never finalized")
	be.Equal(t, errs[2].Error(), "stack size 1000 is not a power of two of at least 4096")
}

func TestValidationErrorFormat(t *testing.T) {
	be.Equal(t, ValidationError{Message: "m", Statement: -1}.Error(), "m")
	be.Equal(t, ValidationError{Message: "m", Function: "f", Statement: -1}.Error(), "in function f: m")
	be.Equal(t, ValidationError{Message: "m", Function: "f", Statement: 2}.Error(), "in function f, statement 2: m")
}
