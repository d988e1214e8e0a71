package ir

import (
	"strings"
)

var swizzleSets = [...]string{"xyzw", "rgba", "stpq"}

// Field builds a swizzle such as v.xy or c.rgb. A single component selects
// the scalar directly.
func (c *Context) Field(e Expr, name string) (Expr, error) {
	if !IsVector(e) || IsArray(e) {
		return nil, c.errorf(InvalidOperandType, "cannot select field %s of %s", name, e.Type())
	}
	if len(name) == 0 || len(name) > 4 {
		return nil, c.errorf(InvalidOperandType, "invalid swizzle %s", name)
	}

	set := ""
	for _, s := range swizzleSets {
		if strings.IndexByte(s, name[0]) >= 0 {
			set = s
			break
		}
	}
	if set == "" {
		return nil, c.errorf(InvalidOperandType, "invalid swizzle %s", name)
	}

	count := ComponentCount(e)
	offsets := make([]int, len(name))
	for i := 0; i < len(name); i++ {
		off := strings.IndexByte(set, name[i])
		if off < 0 {
			return nil, c.errorf(InvalidOperandType, "invalid swizzle %s", name)
		}
		if off >= count {
			return nil, c.errorf(InvalidOperandType, "swizzle %s out of range for %s", name, e.Type())
		}
		offsets[i] = off
	}

	v, pre, err := c.pin(e)
	if err != nil {
		return nil, err
	}
	if len(offsets) == 1 {
		return withPre(pre, Component(v, offsets[0])), nil
	}
	return &Swizzle{
		Vector:  v,
		Offsets: offsets,
		Typ:     VectorOf(ComponentType(e), len(offsets)),
		Pre:     pre,
	}, nil
}

// Index builds e[index] for arrays, vectors and matrices. Indexing a matrix
// selects a column.
func (c *Context) Index(e, index Expr) (Expr, error) {
	if index.Type() != TypeInt || IsArray(index) {
		return nil, c.errorf(InvalidOperandType, "index must be an int, got %s", index.Type())
	}
	if IsScalar(e) {
		return nil, c.errorf(InvalidOperandType, "cannot index a value of type %s", e.Type())
	}

	count := ComponentCount(e)
	dim := e.Type().MatrixDim()
	if IsMatrix(e) && !IsArray(e) {
		count = dim
	}

	k, constant := ConstantOf(index)
	if constant && (k.Int < 0 || int(k.Int) >= count) {
		return nil, c.errorf(InvalidOperandType, "index %d out of range for %s", k.Int, e.Type())
	}

	if IsMatrix(e) && !IsArray(e) {
		return c.column(e, index, dim)
	}

	if constant {
		v, pre, err := c.pin(e)
		if err != nil {
			return nil, err
		}
		return withPre(pre, Component(v, int(k.Int))), nil
	}

	base, pre, err := c.pinAddress(e)
	if err != nil {
		return nil, err
	}
	i, ipre, err := c.pin(index)
	if err != nil {
		return nil, err
	}
	typ := ComponentType(e)
	offset := &Binary{Left: i, Op: "<<", Right: IntLiteral(2), Typ: TypeInt}
	return withPre(concat(pre, ipre), &Member{
		Object:   stackFor(typ),
		Property: wordIndex(&Binary{Left: base, Op: "+", Right: offset, Typ: TypeInt}),
		Computed: true,
		Typ:      typ,
		root:     rootOf(base),
	}), nil
}

func (c *Context) column(m, index Expr, dim int) (Expr, error) {
	col := VectorOf(TypeFloat, dim)
	k, constant := ConstantOf(index)

	if comp, ok := m.(*Composite); ok && constant && pure(comp) {
		at := int(k.Int) * dim
		return &Composite{Elements: comp.Elements[at : at+dim], Typ: col}, nil
	}

	base, pre, err := c.pinAddress(m)
	if err != nil {
		return nil, err
	}
	if constant {
		return withPre(pre, &Address{Base: base, Offset: int(k.Int) * dim * WordSize, Typ: col}), nil
	}

	i, ipre, err := c.pin(index)
	if err != nil {
		return nil, err
	}
	offset := &Binary{Left: i, Op: "*", Right: IntLiteral(dim * WordSize), Typ: TypeInt}
	sum := &Binary{Left: base, Op: "+", Right: offset, Typ: TypeInt}
	return withPre(concat(pre, ipre), &Address{
		Base: &Binary{Left: sum, Op: "|", Right: IntLiteral(0), Typ: TypeInt, Cast: true},
		Typ:  col,
	}), nil
}

// Construct builds a constructor call: a scalar conversion, a vector or
// matrix constructor, or, when size is non-zero, an array constructor.
// A negative size takes the array length from the argument count.
func (c *Context) Construct(t Type, size int, args []Expr) (Expr, error) {
	for _, a := range args {
		if IsArray(a) {
			return nil, c.errorf(InvalidOperandType, "cannot construct %s from an array", t)
		}
		if a.Type() == TypeVoid {
			return nil, c.errorf(TypeMismatch, "cannot construct %s from void", t)
		}
	}

	switch {
	case size != 0:
		return c.constructArray(t, size, args)
	case t.IsPrimitive():
		return c.convert(t, args)
	case t.IsVector():
		return c.constructVector(t, args)
	case t.IsMatrix():
		return c.constructMatrix(t, args)
	}
	return nil, c.errorf(UnsupportedConversion, "cannot construct a value of type %s", t)
}

func (c *Context) constructArray(t Type, size int, args []Expr) (Expr, error) {
	if !t.IsPrimitive() {
		return nil, c.errorf(Unsupported, "arrays of %s are not supported", t)
	}
	if size < 0 {
		size = len(args)
	}
	if size == 0 || len(args) != size {
		return nil, c.errorf(TypeMismatch, "array constructor for %s[%d] given %d arguments", t, size, len(args))
	}
	for _, a := range args {
		if a.Type() != t {
			return nil, c.errorf(TypeMismatch, "array constructor for %s[%d] given %s", t, size, a.Type())
		}
	}
	return &Composite{Elements: append([]Expr(nil), args...), Typ: t, Size: size}, nil
}

// convert builds float(x), int(x) or bool(x). Composite arguments convert
// their first component.
func (c *Context) convert(t Type, args []Expr) (Expr, error) {
	if len(args) != 1 {
		return nil, c.errorf(TypeMismatch, "%s constructor expects one argument, got %d", t, len(args))
	}
	v, pre, err := c.pin(args[0])
	if err != nil {
		return nil, err
	}
	src := Component(v, 0)

	var out Expr
	switch {
	case src.Type() == t:
		out = src
	case t == TypeFloat:
		out = &Unary{Op: "+", Arg: src, Typ: TypeFloat, Cast: true}
	case t == TypeInt && src.Type() == TypeFloat:
		out = &Unary{Op: "~~", Arg: src, Typ: TypeInt, Cast: true}
	case t == TypeInt:
		out = &Binary{Left: src, Op: "|", Right: IntLiteral(0), Typ: TypeInt, Cast: true}
	default:
		out = &Binary{Left: src, Op: "!=", Right: ZeroLiteral(src.Type()), Typ: TypeBool}
	}
	if val, ok := ConstantOf(out); ok {
		out = &Literal{Value: val}
	}
	return withPre(pre, out), nil
}

func (c *Context) constructVector(t Type, args []Expr) (Expr, error) {
	n := t.ComponentCount()
	comp := t.ComponentType()
	for _, a := range args {
		if ComponentType(a) != comp {
			return nil, c.errorf(TypeMismatch, "cannot construct %s from %s", t, a.Type())
		}
	}

	if len(args) == 1 {
		v, pre, err := c.pin(args[0])
		if err != nil {
			return nil, err
		}
		if IsScalar(v) {
			elems := make([]Expr, n)
			for i := range elems {
				elems[i] = v
			}
			return &Composite{Elements: elems, Typ: t, Pre: pre}, nil
		}
		if ComponentCount(v) >= n {
			elems := make([]Expr, n)
			for i := range elems {
				elems[i] = Component(v, i)
			}
			return &Composite{Elements: elems, Typ: t, Pre: pre}, nil
		}
	}
	return c.flatten(t, n, args)
}

func (c *Context) constructMatrix(t Type, args []Expr) (Expr, error) {
	n := t.ComponentCount()
	dim := t.MatrixDim()
	for _, a := range args {
		if ComponentType(a) != TypeFloat {
			return nil, c.errorf(TypeMismatch, "cannot construct %s from %s", t, a.Type())
		}
	}

	if len(args) == 1 {
		if args[0].Type() == t {
			return args[0], nil
		}
		if IsScalar(args[0]) {
			v, pre, err := c.pin(args[0])
			if err != nil {
				return nil, err
			}
			elems := make([]Expr, n)
			for i := range elems {
				if i%(dim+1) == 0 {
					elems[i] = v
				} else {
					elems[i] = FloatLiteral(0)
				}
			}
			return &Composite{Elements: elems, Typ: t, Pre: pre}, nil
		}
	}
	return c.flatten(t, n, args)
}

// flatten concatenates the components of args into a composite of type t
// with exactly n elements.
func (c *Context) flatten(t Type, n int, args []Expr) (Expr, error) {
	var elems, pre []Expr
	for _, a := range args {
		v, p, err := c.pin(a)
		if err != nil {
			return nil, err
		}
		pre = append(pre, p...)
		for i := 0; i < ComponentCount(v); i++ {
			elems = append(elems, Component(v, i))
		}
	}
	if len(elems) != n {
		return nil, c.errorf(TypeMismatch, "%s constructor given %d components, want %d", t, len(elems), n)
	}
	return &Composite{Elements: elems, Typ: t, Pre: pre}, nil
}

// Call builds a call to a built-in or user function. User functions are
// selected by exact parameter types; composite arguments are passed by
// address.
func (c *Context) Call(name string, args []Expr) (Expr, error) {
	if b, ok := builtins[name]; ok {
		return c.callBuiltin(name, b, args)
	}

	sym, ok := c.Symbols.Lookup(name)
	if !ok {
		return nil, c.errorf(UndeclaredIdentifier, "undeclared identifier %s", name)
	}
	if sym.Kind != SymbolFunction {
		return nil, c.errorf(InvalidOperandType, "%s is not a function", name)
	}

	fn := matchOverload(sym.Overloads, args)
	if fn == nil {
		types := make([]string, len(args))
		for i, a := range args {
			types[i] = typeName(a.Type(), a.ArraySize())
		}
		return nil, c.errorf(TypeMismatch, "no matching overload for %s(%s)", name, strings.Join(types, ", "))
	}

	cargs := make([]Expr, len(args))
	for i, a := range args {
		r, err := c.Resolve(a)
		if err != nil {
			return nil, err
		}
		cargs[i] = mustCast(r, fn.Params[i].Type)
	}
	fn.used = true

	call := &Call{Callee: fn.Ident, Args: cargs, Typ: fn.Result}
	if fn.Result == TypeVoid {
		return call, nil
	}
	return mustCast(call, fn.Result), nil
}

func matchOverload(overloads []*Function, args []Expr) *Function {
	for _, fn := range overloads {
		if len(fn.Params) != len(args) {
			continue
		}
		match := true
		for i, p := range fn.Params {
			if p.Type != args[i].Type() || p.Size != args[i].ArraySize() {
				match = false
				break
			}
		}
		if match {
			return fn
		}
	}
	return nil
}
