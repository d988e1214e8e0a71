package ir

// Expr is a node of the lowered expression tree.
//
// Every node knows its resolved Type and, for arrays, its element count.
// The set of implementations is closed; constructors in builder.go validate
// operands and return fully typed nodes.
type Expr interface {
	Type() Type
	ArraySize() int
	exprNode()
}

// ComponentAddressable is implemented by expressions whose components can be
// produced without reading the backing stores.
type ComponentAddressable interface {
	Expr
	Component(i int) Expr
}

// ConstantFoldable is implemented by expressions that may reduce to a
// compile-time constant.
type ConstantFoldable interface {
	Expr
	Constant() (Value, bool)
}

// Literal is a constant scalar. Booleans are stored as 0 or 1.
type Literal struct {
	Value Value
}

func (e *Literal) Type() Type              { return e.Value.Type }
func (e *Literal) ArraySize() int          { return 0 }
func (e *Literal) Constant() (Value, bool) { return e.Value, true }
func (*Literal) exprNode()                 {}

// Ident references a variable, parameter, function or host binding.
type Ident struct {
	Name string
	Typ  Type
	Size int
}

func (e *Ident) Type() Type     { return e.Typ }
func (e *Ident) ArraySize() int { return e.Size }
func (*Ident) exprNode()        {}

// Unary applies a prefix operator. Besides the source operators + - !, the
// coercions "+" (promote to float) and "~~" (truncate to int) are unaries
// with Cast set.
type Unary struct {
	Op   string
	Arg  Expr
	Typ  Type
	Cast bool
}

func (e *Unary) Type() Type     { return e.Typ }
func (e *Unary) ArraySize() int { return 0 }
func (*Unary) exprNode()        {}

// Constant folds the unary when its argument is constant.
func (e *Unary) Constant() (Value, bool) {
	arg, ok := constantOf(e.Arg)
	if !ok {
		return Value{}, false
	}
	if e.Op == "+" && !e.Cast {
		return arg, true
	}
	v, err := evalUnary(e.Op, arg)
	if err != nil {
		return Value{}, false
	}
	if e.Typ == TypeBool && v.Type == TypeInt {
		v.Type = TypeBool
	}
	return v, true
}

// Binary applies an infix operator. Besides the source operators, "|" with a
// zero right operand (int coercion), ">>" and "<<" appear in lowered code.
type Binary struct {
	Left  Expr
	Op    string
	Right Expr
	Typ   Type
	Size  int
	Cast  bool
}

func (e *Binary) Type() Type     { return e.Typ }
func (e *Binary) ArraySize() int { return e.Size }
func (*Binary) exprNode()        {}

// Constant folds the binary when both operands are constant.
func (e *Binary) Constant() (Value, bool) {
	left, ok := constantOf(e.Left)
	if !ok {
		return Value{}, false
	}
	right, ok := constantOf(e.Right)
	if !ok {
		return Value{}, false
	}
	v, err := evalBinary(left, e.Op, right)
	if err != nil {
		return Value{}, false
	}
	if e.Typ == TypeBool && v.Type == TypeInt {
		v.Type = TypeBool
	}
	return v, true
}

// Logical is a short-circuiting && or ||.
type Logical struct {
	Left  Expr
	Op    string
	Right Expr
}

func (e *Logical) Type() Type     { return TypeBool }
func (e *Logical) ArraySize() int { return 0 }
func (*Logical) exprNode()        {}

// Constant folds the logical expression when both operands are constant.
func (e *Logical) Constant() (Value, bool) {
	left, ok := constantOf(e.Left)
	if !ok {
		return Value{}, false
	}
	right, ok := constantOf(e.Right)
	if !ok {
		return Value{}, false
	}
	v, err := evalBinary(left, e.Op, right)
	return v, err == nil
}

// Assign is a plain scalar store. Compound and composite assignments are
// rewritten into sequences of these.
type Assign struct {
	Left  Expr
	Right Expr
}

func (e *Assign) Type() Type     { return e.Left.Type() }
func (e *Assign) ArraySize() int { return e.Left.ArraySize() }
func (*Assign) exprNode()        {}

// Update is ++ or --, prefix or postfix.
type Update struct {
	Op     string
	Prefix bool
	Arg    Expr
}

func (e *Update) Type() Type     { return e.Arg.Type() }
func (e *Update) ArraySize() int { return 0 }
func (*Update) exprNode()        {}

// Conditional is the ternary operator.
type Conditional struct {
	Test       Expr
	Consequent Expr
	Alternate  Expr
}

func (e *Conditional) Type() Type     { return e.Consequent.Type() }
func (e *Conditional) ArraySize() int { return e.Consequent.ArraySize() }
func (*Conditional) exprNode()        {}

// Call invokes a function. Callee is usually an Ident; the module wrapper
// calls a FunctionExpr.
type Call struct {
	Callee Expr
	Args   []Expr
	Typ    Type
}

func (e *Call) Type() Type     { return e.Typ }
func (e *Call) ArraySize() int { return 0 }
func (*Call) exprNode()        {}

// Member is object[property] when Computed, object.property otherwise.
// Reads and writes of composite components are computed members of a
// backing store; root names the variable the access goes through.
type Member struct {
	Object   Expr
	Property Expr
	Computed bool
	Typ      Type

	root *Ident
}

func (e *Member) Type() Type     { return e.Typ }
func (e *Member) ArraySize() int { return 0 }
func (*Member) exprNode()        {}

// Swizzle selects vector components by offset. It only exists while the
// tree is being built and is resolved to Member accesses when consumed.
// Pre holds expressions that must run before any component is read.
type Swizzle struct {
	Vector  Expr
	Offsets []int
	Typ     Type
	Pre     []Expr
}

func (e *Swizzle) Type() Type     { return e.Typ }
func (e *Swizzle) ArraySize() int { return 0 }
func (*Swizzle) exprNode()        {}

// Component returns the source vector's component at Offsets[i].
func (e *Swizzle) Component(i int) Expr {
	return Component(e.Vector, e.Offsets[i])
}

// Composite is a vector, matrix or array whose elements are known
// expressions that have not been written to a backing store yet. Pre holds
// expressions that must run before the elements are evaluated.
type Composite struct {
	Elements []Expr
	Typ      Type
	Size     int
	Pre      []Expr
}

func (e *Composite) Type() Type           { return e.Typ }
func (e *Composite) ArraySize() int       { return e.Size }
func (e *Composite) Component(i int) Expr { return e.Elements[i] }
func (*Composite) exprNode()              {}

// Address is a composite located at a fixed byte offset from another
// composite's address, such as a matrix column.
type Address struct {
	Base   Expr
	Offset int
	Typ    Type
}

func (e *Address) Type() Type     { return e.Typ }
func (e *Address) ArraySize() int { return 0 }
func (*Address) exprNode()        {}

// Component reads slot i of the addressed composite.
func (e *Address) Component(i int) Expr {
	typ := e.Typ.ComponentType()
	return &Member{
		Object:   stackFor(typ),
		Property: componentAddress(e.Base, e.Offset/WordSize+i),
		Computed: true,
		Typ:      typ,
		root:     rootOf(e.Base),
	}
}

// New is a host constructor call such as new stdlib.Int32Array(stack).
type New struct {
	Callee Expr
	Args   []Expr
}

func (e *New) Type() Type     { return TypeVoid }
func (e *New) ArraySize() int { return 0 }
func (*New) exprNode()        {}

// Object is a host object literal.
type Object struct {
	Properties []*Property
}

func (e *Object) Type() Type     { return TypeVoid }
func (e *Object) ArraySize() int { return 0 }
func (*Object) exprNode()        {}

// Property is one key: value entry of an Object.
type Property struct {
	Key   *Ident
	Value Expr
}

func (e *Property) Type() Type     { return TypeVoid }
func (e *Property) ArraySize() int { return 0 }
func (*Property) exprNode()        {}

// Sequence evaluates its expressions left to right and yields the last.
type Sequence struct {
	Exprs []Expr
}

func (e *Sequence) Type() Type {
	if len(e.Exprs) == 0 {
		return TypeInvalid
	}
	return e.Exprs[len(e.Exprs)-1].Type()
}

func (e *Sequence) ArraySize() int {
	if len(e.Exprs) == 0 {
		return 0
	}
	return e.Exprs[len(e.Exprs)-1].ArraySize()
}

func (*Sequence) exprNode() {}

// FunctionExpr is an anonymous host function; only the module wrapper uses it.
type FunctionExpr struct {
	Params []*Ident
	Body   Block
}

func (e *FunctionExpr) Type() Type     { return TypeVoid }
func (e *FunctionExpr) ArraySize() int { return 0 }
func (*FunctionExpr) exprNode()        {}

// Sentinel addresses of the backing stores and the stack top.
const (
	StackTopName = "$$STACKTOP"
	StackIntName = "$$STACK_I"
	StackFltName = "$$STACK_F"
	ReturnPtr    = "$$rp"
	FramePtr     = "$$sp"
)

// IntLiteral returns an int literal.
func IntLiteral(v int) *Literal {
	return &Literal{Value: IntValue(int32(v))}
}

// FloatLiteral returns a float literal.
func FloatLiteral(v float64) *Literal {
	return &Literal{Value: FloatValue(v)}
}

// BoolLiteral returns a bool literal.
func BoolLiteral(v bool) *Literal {
	return &Literal{Value: BoolValue(v)}
}

// ZeroLiteral returns the default value of a primitive type.
func ZeroLiteral(t Type) *Literal {
	switch t {
	case TypeFloat:
		return FloatLiteral(0)
	case TypeBool:
		return BoolLiteral(false)
	}
	return IntLiteral(0)
}

func stackTop() *Ident {
	return &Ident{Name: StackTopName, Typ: TypeInt}
}

// stackFor returns the backing store holding components of type t.
func stackFor(t Type) *Ident {
	if t == TypeFloat {
		return &Ident{Name: StackFltName, Typ: TypeFloat}
	}
	return &Ident{Name: StackIntName, Typ: t}
}

func constantOf(e Expr) (Value, bool) {
	if c, ok := e.(ConstantFoldable); ok {
		return c.Constant()
	}
	return Value{}, false
}

// ConstantOf reports the compile-time value of e, if it has one.
func ConstantOf(e Expr) (Value, bool) {
	return constantOf(e)
}

func wasCast(e Expr) bool {
	switch n := e.(type) {
	case *Unary:
		return n.Cast
	case *Binary:
		return n.Cast
	case *Literal:
		return true
	case *Sequence:
		return len(n.Exprs) > 0 && wasCast(n.Exprs[len(n.Exprs)-1])
	}
	return false
}
