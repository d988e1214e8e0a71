package ir

import (
	"modernc.org/mathutil"
)

func isComparison(op string) bool {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=":
		return true
	}
	return false
}

func isRelational(op string) bool {
	switch op {
	case "<", "<=", ">", ">=":
		return true
	}
	return false
}

func isArithmetic(op string) bool {
	switch op {
	case "+", "-", "*", "/":
		return true
	}
	return false
}

func isNumeric(t Type) bool {
	return t == TypeInt || t == TypeFloat
}

// Component returns slot i of e. Scalars are their own only component,
// composites with known elements return the element, and everything else
// reads the backing store at the slot's address. e must be pure; the
// constructors in this package pin anything else before decomposing it.
func Component(e Expr, i int) Expr {
	if IsScalar(e) {
		return e
	}
	if c, ok := e.(ComponentAddressable); ok {
		return c.Component(i)
	}
	typ := ComponentType(e)
	return &Member{
		Object:   stackFor(typ),
		Property: componentAddress(e, i),
		Computed: true,
		Typ:      typ,
		root:     rootOf(e),
	}
}

// pin returns an equivalent of e that can be decomposed, plus the
// expressions that must run first. Pure values are returned as they are;
// composites with side effects are written to the stack and everything else
// impure is stored in a hidden local.
func (c *Context) pin(e Expr) (Expr, []Expr, error) {
	switch n := e.(type) {
	case *Composite:
		bare := &Composite{Elements: n.Elements, Typ: n.Typ, Size: n.Size}
		if pure(bare) {
			return bare, n.Pre, nil
		}
		seq, err := c.materialize(n)
		if err != nil {
			return nil, nil, err
		}
		return c.hold(seq)
	case *Swizzle:
		return &Swizzle{Vector: n.Vector, Offsets: n.Offsets, Typ: n.Typ}, n.Pre, nil
	}
	if pure(e) {
		return e, nil, nil
	}
	return c.hold(e)
}

// hold stores e in a new hidden local.
func (c *Context) hold(e Expr) (Expr, []Expr, error) {
	t, err := c.temp(e.Type(), e.ArraySize())
	if err != nil {
		return nil, nil, err
	}
	return t, []Expr{&Assign{Left: t, Right: mustCast(e, e.Type())}}, nil
}

// pinAddress is pin for consumers that need a real address: composites
// with known elements are materialized first.
func (c *Context) pinAddress(e Expr) (Expr, []Expr, error) {
	switch e.(type) {
	case *Composite, *Swizzle:
		r, err := c.Resolve(e)
		if err != nil {
			return nil, nil, err
		}
		return c.hold(r)
	case *Address:
		r, err := c.Resolve(e)
		if err != nil {
			return nil, nil, err
		}
		return c.pin(r)
	}
	return c.pin(e)
}

// withPre prefixes e with setup expressions.
func withPre(pre []Expr, e Expr) Expr {
	if len(pre) == 0 {
		return e
	}
	switch n := e.(type) {
	case *Composite:
		return &Composite{Elements: n.Elements, Typ: n.Typ, Size: n.Size, Pre: concat(pre, n.Pre)}
	case *Swizzle:
		return &Swizzle{Vector: n.Vector, Offsets: n.Offsets, Typ: n.Typ, Pre: concat(pre, n.Pre)}
	case *Sequence:
		return &Sequence{Exprs: concat(pre, n.Exprs)}
	}
	return &Sequence{Exprs: concat(pre, []Expr{e})}
}

func concat(a, b []Expr) []Expr {
	out := make([]Expr, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// splitPre separates the setup part of a sequence from its value.
func splitPre(e Expr) ([]Expr, Expr) {
	if s, ok := e.(*Sequence); ok && len(s.Exprs) > 1 {
		return s.Exprs[:len(s.Exprs)-1], s.Exprs[len(s.Exprs)-1]
	}
	return nil, e
}

// Resolve turns e into an expression that can be stored in a variable,
// passed to a function or returned: composites with known elements are
// materialized and derived addresses are computed.
func (c *Context) Resolve(e Expr) (Expr, error) {
	switch n := e.(type) {
	case *Composite:
		return c.materialize(n)
	case *Swizzle:
		elems := make([]Expr, len(n.Offsets))
		for i := range elems {
			elems[i] = n.Component(i)
		}
		return c.materialize(&Composite{Elements: elems, Typ: n.Typ, Pre: n.Pre})
	case *Address:
		base := n.Base
		if n.Offset != 0 {
			base = &Binary{Left: base, Op: "+", Right: IntLiteral(n.Offset), Typ: TypeInt}
		}
		return castInt(base, n.Typ, 0), nil
	}
	return e, nil
}

func (c *Context) materialize(n *Composite) (*Sequence, error) {
	pre := append([]Expr(nil), n.Pre...)
	values := make([]Expr, len(n.Elements))
	for i, el := range n.Elements {
		if pure(el) {
			values[i] = el
			continue
		}
		t, p, err := c.hold(el)
		if err != nil {
			return nil, err
		}
		pre = append(pre, p...)
		values[i] = t
	}
	seq := c.Stack.Materialize(ComponentType(n), values, n.Typ, n.Size)
	if len(pre) > 0 {
		seq.Exprs = concat(pre, seq.Exprs)
	}
	return seq, nil
}

// Effect returns what must be evaluated when e is used as a statement, or
// nil if nothing needs to be.
func (c *Context) Effect(e Expr) Expr {
	var exprs []Expr
	switch n := e.(type) {
	case *Composite:
		exprs = append(exprs, n.Pre...)
		for _, el := range n.Elements {
			if !pure(el) {
				exprs = append(exprs, el)
			}
		}
	case *Swizzle:
		exprs = n.Pre
	default:
		return e
	}
	switch len(exprs) {
	case 0:
		return nil
	case 1:
		return exprs[0]
	}
	return &Sequence{Exprs: exprs}
}

// Comma builds the comma operator: every expression but the last is kept
// only for its effects.
func (c *Context) Comma(exprs []Expr) (Expr, error) {
	if len(exprs) == 0 {
		return nil, c.errorf(SyntaxError, "empty expression list")
	}
	var pre []Expr
	for _, e := range exprs[:len(exprs)-1] {
		if IsArray(e) {
			return nil, c.errorf(InvalidOperandType, "cannot apply operation , to an array")
		}
		if x := c.Effect(e); x != nil {
			pre = append(pre, x)
		}
	}
	return withPre(pre, exprs[len(exprs)-1]), nil
}

// Unary builds + - or ! applied to arg. Vector and matrix arguments are
// decomposed into a composite of per-component unaries; constant arguments
// are folded.
func (c *Context) Unary(op string, arg Expr) (Expr, error) {
	if IsArray(arg) {
		return nil, c.errorf(InvalidOperandType, "cannot apply operation %s to an array", op)
	}
	comp := ComponentType(arg)
	switch op {
	case "+", "-":
		if !isNumeric(comp) {
			return nil, c.errorf(InvalidOperandType, "cannot apply operation %s to argument of type %s", op, arg.Type())
		}
	case "!":
		if comp != TypeBool {
			return nil, c.errorf(InvalidOperandType, "cannot apply operation %s to argument of type %s", op, arg.Type())
		}
	default:
		return nil, c.errorf(SyntaxError, "unknown unary operator %s", op)
	}

	if IsScalar(arg) {
		return unary(op, arg), nil
	}

	v, pre, err := c.pin(arg)
	if err != nil {
		return nil, err
	}
	elems := make([]Expr, ComponentCount(v))
	for i := range elems {
		elems[i] = unary(op, Component(v, i))
	}
	return &Composite{Elements: elems, Typ: arg.Type(), Pre: pre}, nil
}

func unary(op string, arg Expr) Expr {
	u := &Unary{Op: op, Arg: arg, Typ: arg.Type()}
	if v, ok := u.Constant(); ok {
		return &Literal{Value: v}
	}
	return u
}

// Binary builds a comparison or arithmetic expression.
//
// Scalar operands must have identical types. When either operand is a
// vector or matrix the operation is applied per component, broadcasting a
// scalar operand; equality of composites reduces to a left-associative &&
// chain, inequality to its negation. Products involving two matrices, or a
// matrix and a vector, are linear-algebraic.
func (c *Context) Binary(left Expr, op string, right Expr) (Expr, error) {
	if !isComparison(op) && !isArithmetic(op) {
		return nil, c.errorf(SyntaxError, "unknown binary operator %s", op)
	}
	if IsArray(left) || IsArray(right) {
		return nil, c.errorf(InvalidOperandType, "cannot apply operation %s to an array", op)
	}

	if IsScalar(left) && IsScalar(right) {
		if left.Type() != right.Type() {
			return nil, c.errorf(TypeMismatch, "left and right arguments are of differing types %s and %s", left.Type(), right.Type())
		}
		if (isArithmetic(op) || isRelational(op)) && !isNumeric(left.Type()) {
			return nil, c.errorf(InvalidOperandType, "cannot apply operation %s to argument of type %s", op, left.Type())
		}
		return scalarBinary(left, op, right), nil
	}

	if isRelational(op) {
		return nil, c.errorf(InvalidOperandType, "cannot apply operation %s to a non-scalar", op)
	}
	if op == "*" && !IsScalar(left) && !IsScalar(right) && (IsMatrix(left) || IsMatrix(right)) {
		return c.matrixProduct(left, right)
	}
	if !IsScalar(left) && !IsScalar(right) && left.Type() != right.Type() {
		return nil, c.errorf(TypeMismatch, "operand types %s and %s do not match", left.Type(), right.Type())
	}
	if ComponentType(left) != ComponentType(right) {
		return nil, c.errorf(TypeMismatch, "left and right arguments are of differing types %s and %s", left.Type(), right.Type())
	}
	if isArithmetic(op) && !isNumeric(ComponentType(left)) {
		return nil, c.errorf(InvalidOperandType, "cannot apply operation %s to argument of type %s", op, left.Type())
	}

	l, lpre, err := c.pin(left)
	if err != nil {
		return nil, err
	}
	r, rpre, err := c.pin(right)
	if err != nil {
		return nil, err
	}
	pre := concat(lpre, rpre)

	n := mathutil.Max(ComponentCount(l), ComponentCount(r))
	elemOp := op
	if op == "!=" {
		elemOp = "=="
	}
	elems := make([]Expr, n)
	for i := range elems {
		elems[i] = scalarBinary(Component(l, i), elemOp, Component(r, i))
	}

	if isComparison(op) {
		chain := elems[0]
		for _, el := range elems[1:] {
			chain = &Logical{Left: chain, Op: "&&", Right: el}
		}
		if op == "!=" {
			chain = &Unary{Op: "!", Arg: chain, Typ: TypeBool}
		}
		return withPre(pre, chain), nil
	}

	typ := left.Type()
	if IsScalar(left) {
		typ = right.Type()
	}
	return &Composite{Elements: elems, Typ: typ, Pre: pre}, nil
}

// scalarBinary builds the node for two scalars of the same type. Integer
// division truncates.
func scalarBinary(left Expr, op string, right Expr) Expr {
	typ := left.Type()
	if isComparison(op) {
		typ = TypeBool
	}
	b := &Binary{Left: left, Op: op, Right: right, Typ: typ}
	if op == "/" && typ == TypeInt {
		return &Binary{Left: b, Op: "|", Right: IntLiteral(0), Typ: TypeInt, Cast: true}
	}
	return b
}

// Logical builds && or || over two bool scalars. ^^ is accepted as the
// inequality of its operands.
func (c *Context) Logical(left Expr, op string, right Expr) (Expr, error) {
	if left.Type() != TypeBool || right.Type() != TypeBool {
		return nil, c.errorf(InvalidOperandType, "logical expression requires boolean arguments")
	}
	if IsArray(left) || IsArray(right) {
		return nil, c.errorf(InvalidOperandType, "cannot apply operation %s to an array", op)
	}
	switch op {
	case "&&", "||":
		return &Logical{Left: left, Op: op, Right: right}, nil
	case "^^":
		return scalarBinary(left, "!=", right), nil
	}
	return nil, c.errorf(SyntaxError, "unknown logical operator %s", op)
}

// Conditional builds test ? consequent : alternate.
func (c *Context) Conditional(test, consequent, alternate Expr) (Expr, error) {
	if test.Type() != TypeBool || IsArray(test) {
		return nil, c.errorf(InvalidOperandType, "boolean expression required")
	}
	if consequent.Type() != alternate.Type() || consequent.ArraySize() != alternate.ArraySize() {
		return nil, c.errorf(TypeMismatch, "consequent and alternate must return the same types")
	}
	if consequent.Type() == TypeVoid {
		return nil, c.errorf(InvalidOperandType, "conditional branches cannot be void")
	}
	a, err := c.Resolve(consequent)
	if err != nil {
		return nil, err
	}
	b, err := c.Resolve(alternate)
	if err != nil {
		return nil, err
	}
	typ := consequent.Type()
	return &Conditional{Test: test, Consequent: mustCast(a, typ), Alternate: mustCast(b, typ)}, nil
}

// isLvalue reports whether e names storage of a declared variable.
func isLvalue(e Expr) bool {
	switch n := e.(type) {
	case *Member:
		if !n.Computed {
			return false
		}
	case *Ident, *Swizzle, *Address:
	default:
		return false
	}
	root := rootOf(e)
	return root != nil && !isHidden(root.Name)
}

func isHidden(name string) bool {
	return len(name) >= 2 && name[:2] == "$$"
}

func (c *Context) markWritten(target Expr) {
	if root := rootOf(target); root != nil && c.fn != nil {
		c.fn.written[root.Name] = true
	}
}

// Assign builds = and the compound assignments += -= *= /=. A compound
// assignment is built as left = left OP right. Composite values are stored
// one component at a time, left to right.
func (c *Context) Assign(left Expr, op string, right Expr) (Expr, error) {
	pre, target := splitPre(left)
	if !isLvalue(target) {
		return nil, c.errorf(InvalidLvalue, "cannot assign to a non-identifier")
	}
	if IsArray(target) || IsArray(right) {
		return nil, c.errorf(InvalidOperandType, "cannot apply operation %s to an array", op)
	}

	value := right
	switch op {
	case "=":
	case "+=", "-=", "*=", "/=":
		v, err := c.Binary(target, op[:1], right)
		if err != nil {
			return nil, err
		}
		value = v
	default:
		return nil, c.errorf(SyntaxError, "unknown assignment operator %s", op)
	}
	if value.Type() != target.Type() {
		return nil, c.errorf(TypeMismatch, "left and right arguments are of differing types %s and %s", target.Type(), value.Type())
	}

	c.markWritten(target)
	if IsScalar(target) {
		return withPre(pre, &Assign{Left: target, Right: mustCast(value, target.Type())}), nil
	}
	return c.assignComponents(pre, target, value)
}

func (c *Context) assignComponents(pre []Expr, target, value Expr) (Expr, error) {
	if err := c.checkSwizzleWrite(target, "assign to"); err != nil {
		return nil, err
	}

	t, tpre, err := c.pin(target)
	if err != nil {
		return nil, err
	}
	pre = concat(pre, tpre)

	// Copy through fresh storage when the value reads what is being written.
	if root := rootOf(t); root != nil && mentions(value, root.Name) {
		switch value.(type) {
		case *Composite, *Swizzle:
			r, err := c.Resolve(value)
			if err != nil {
				return nil, err
			}
			value = r
		}
	}
	v, vpre, err := c.pin(value)
	if err != nil {
		return nil, err
	}
	pre = concat(pre, vpre)

	comp := ComponentType(t)
	n := ComponentCount(t)
	elems := make([]Expr, n)
	for i := 0; i < n; i++ {
		dst := Component(t, i)
		pre = append(pre, &Assign{Left: dst, Right: mustCast(Component(v, i), comp)})
		elems[i] = dst
	}
	return &Composite{Elements: elems, Typ: t.Type(), Size: t.ArraySize(), Pre: pre}, nil
}

// checkSwizzleWrite rejects a swizzle target that names a component more
// than once.
func (c *Context) checkSwizzleWrite(target Expr, verb string) error {
	sw, ok := target.(*Swizzle)
	if !ok {
		return nil
	}
	seen := make(map[int]bool, len(sw.Offsets))
	for _, off := range swizzleTargets(sw) {
		if seen[off] {
			return c.errorf(DuplicateSwizzleTarget, "cannot %s swizzle with duplicate components", verb)
		}
		seen[off] = true
	}
	return nil
}

// swizzleTargets returns the source-vector offsets a swizzle writes to,
// looking through nested swizzles.
func swizzleTargets(sw *Swizzle) []int {
	offsets := sw.Offsets
	for {
		inner, ok := sw.Vector.(*Swizzle)
		if !ok {
			return offsets
		}
		mapped := make([]int, len(offsets))
		for i, off := range offsets {
			mapped[i] = inner.Offsets[off]
		}
		offsets, sw = mapped, inner
	}
}

// Update builds ++ or --, prefix or postfix. Vector and matrix arguments
// decompose into one update per component.
func (c *Context) Update(op string, prefix bool, arg Expr) (Expr, error) {
	if op != "++" && op != "--" {
		return nil, c.errorf(SyntaxError, "unknown update operator %s", op)
	}
	pre, target := splitPre(arg)
	if IsArray(target) {
		return nil, c.errorf(InvalidOperandType, "cannot apply operation %s to an array", op)
	}
	if ComponentType(target) == TypeBool {
		return nil, c.errorf(InvalidOperandType, "cannot update argument of type %s", target.Type())
	}
	if !isLvalue(target) {
		return nil, c.errorf(InvalidLvalue, "cannot update a non-identifier")
	}
	if err := c.checkSwizzleWrite(target, "update"); err != nil {
		return nil, err
	}

	c.markWritten(target)
	if IsScalar(target) {
		return withPre(pre, &Update{Op: op, Prefix: prefix, Arg: target}), nil
	}

	t, tpre, err := c.pin(target)
	if err != nil {
		return nil, err
	}
	elems := make([]Expr, ComponentCount(t))
	for i := range elems {
		elems[i] = &Update{Op: op, Prefix: prefix, Arg: Component(t, i)}
	}
	return &Composite{Elements: elems, Typ: t.Type(), Pre: concat(pre, tpre)}, nil
}
