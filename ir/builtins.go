package ir

import (
	"modernc.org/mathutil"
)

// builtin describes a built-in function.
//
// Elementwise builtins map to a stdlib.Math function applied per component;
// the others are expanded in terms of the expression constructors.
type builtin struct {
	math  string
	arity int
	ints  bool
	lower func(c *Context, args []Expr) (Expr, error)
}

var builtins map[string]*builtin

func init() {
	builtins = map[string]*builtin{
		"sin":   {math: "sin", arity: 1},
		"cos":   {math: "cos", arity: 1},
		"tan":   {math: "tan", arity: 1},
		"asin":  {math: "asin", arity: 1},
		"acos":  {math: "acos", arity: 1},
		"sqrt":  {math: "sqrt", arity: 1},
		"floor": {math: "floor", arity: 1},
		"ceil":  {math: "ceil", arity: 1},
		"exp":   {math: "exp", arity: 1},
		"log":   {math: "log", arity: 1},
		"abs":   {math: "abs", arity: 1, ints: true},
		"pow":   {math: "pow", arity: 2},
		"min":   {math: "min", arity: 2, ints: true},
		"max":   {math: "max", arity: 2, ints: true},

		"atan":      {arity: -1, lower: lowerAtan},
		"dot":       {arity: 2, lower: lowerDot},
		"length":    {arity: 1, lower: lowerLength},
		"distance":  {arity: 2, lower: lowerDistance},
		"normalize": {arity: 1, lower: lowerNormalize},
		"mix":       {arity: 3, lower: lowerMix},
		"clamp":     {arity: 3, lower: lowerClamp},
		"mod":       {arity: 2, lower: lowerMod},
	}
}

// IsBuiltin reports whether name is a built-in function.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

func (c *Context) callBuiltin(name string, b *builtin, args []Expr) (Expr, error) {
	if b.arity >= 0 && len(args) != b.arity {
		return nil, c.errorf(TypeMismatch, "%s expects %d arguments, got %d", name, b.arity, len(args))
	}
	for _, a := range args {
		if IsArray(a) || IsMatrix(a) || a.Type() == TypeVoid {
			return nil, c.errorf(InvalidOperandType, "cannot apply %s to argument of type %s", name, a.Type())
		}
	}
	if b.lower != nil {
		return b.lower(c, args)
	}
	return c.elementwise(name, b.math, b.ints, args)
}

// elementwise applies stdlib.Math.fn per component. Every argument is either
// a scalar or of the widest argument's type.
func (c *Context) elementwise(name, fn string, ints bool, args []Expr) (Expr, error) {
	comp := ComponentType(args[0])
	if comp != TypeFloat && !(ints && comp == TypeInt) {
		return nil, c.errorf(InvalidOperandType, "cannot apply %s to argument of type %s", name, args[0].Type())
	}

	n := 1
	typ := comp
	for _, a := range args {
		if ComponentType(a) != comp {
			return nil, c.errorf(TypeMismatch, "no matching overload for %s", name)
		}
		if !IsScalar(a) {
			if typ != comp && a.Type() != typ {
				return nil, c.errorf(TypeMismatch, "no matching overload for %s", name)
			}
			typ = a.Type()
		}
		n = mathutil.Max(n, ComponentCount(a))
	}

	pinned := make([]Expr, len(args))
	var pre []Expr
	for i, a := range args {
		v, p, err := c.pin(a)
		if err != nil {
			return nil, err
		}
		pinned[i] = v
		pre = append(pre, p...)
	}

	callee := c.Program.importMath(fn)
	elems := make([]Expr, n)
	for i := range elems {
		cargs := make([]Expr, len(pinned))
		for j, v := range pinned {
			cargs[j] = mustCast(Component(v, i), comp)
		}
		elems[i] = mustCast(&Call{Callee: callee, Args: cargs, Typ: comp}, comp)
	}
	if n == 1 {
		return withPre(pre, elems[0]), nil
	}
	return &Composite{Elements: elems, Typ: typ, Pre: pre}, nil
}

func lowerAtan(c *Context, args []Expr) (Expr, error) {
	switch len(args) {
	case 1:
		return c.elementwise("atan", "atan", false, args)
	case 2:
		if args[0].Type() != args[1].Type() {
			return nil, c.errorf(TypeMismatch, "no matching overload for atan")
		}
		return c.elementwise("atan", "atan2", false, args)
	}
	return nil, c.errorf(TypeMismatch, "atan expects 1 or 2 arguments, got %d", len(args))
}

func (c *Context) requireFloats(name string, args ...Expr) error {
	for _, a := range args {
		if ComponentType(a) != TypeFloat {
			return c.errorf(InvalidOperandType, "cannot apply %s to argument of type %s", name, a.Type())
		}
		if a.Type() != args[0].Type() {
			return c.errorf(TypeMismatch, "no matching overload for %s", name)
		}
	}
	return nil
}

func lowerDot(c *Context, args []Expr) (Expr, error) {
	if err := c.requireFloats("dot", args...); err != nil {
		return nil, err
	}
	a, apre, err := c.pin(args[0])
	if err != nil {
		return nil, err
	}
	b, bpre, err := c.pin(args[1])
	if err != nil {
		return nil, err
	}
	n := ComponentCount(a)
	terms := make([][2]Expr, n)
	for i := range terms {
		terms[i] = [2]Expr{Component(a, i), Component(b, i)}
	}
	return withPre(concat(apre, bpre), sumOfProducts(terms)), nil
}

func lowerLength(c *Context, args []Expr) (Expr, error) {
	if err := c.requireFloats("length", args...); err != nil {
		return nil, err
	}
	v, pre, err := c.pin(args[0])
	if err != nil {
		return nil, err
	}
	sq, err := lowerDot(c, []Expr{v, v})
	if err != nil {
		return nil, err
	}
	root, err := c.elementwise("sqrt", "sqrt", false, []Expr{sq})
	if err != nil {
		return nil, err
	}
	return withPre(pre, root), nil
}

func lowerDistance(c *Context, args []Expr) (Expr, error) {
	if err := c.requireFloats("distance", args...); err != nil {
		return nil, err
	}
	d, err := c.Binary(args[0], "-", args[1])
	if err != nil {
		return nil, err
	}
	return lowerLength(c, []Expr{d})
}

func lowerNormalize(c *Context, args []Expr) (Expr, error) {
	if err := c.requireFloats("normalize", args...); err != nil {
		return nil, err
	}
	v, pre, err := c.pin(args[0])
	if err != nil {
		return nil, err
	}
	l, err := lowerLength(c, []Expr{v})
	if err != nil {
		return nil, err
	}
	q, err := c.Binary(v, "/", l)
	if err != nil {
		return nil, err
	}
	return withPre(pre, q), nil
}

// mix(x, y, a) = x*(1-a) + y*a
func lowerMix(c *Context, args []Expr) (Expr, error) {
	if err := c.requireFloats("mix", args[0], args[1]); err != nil {
		return nil, err
	}
	if ComponentType(args[2]) != TypeFloat || !IsScalar(args[2]) && args[2].Type() != args[0].Type() {
		return nil, c.errorf(TypeMismatch, "no matching overload for mix")
	}
	a, pre, err := c.pin(args[2])
	if err != nil {
		return nil, err
	}
	inv, err := c.Binary(FloatLiteral(1), "-", a)
	if err != nil {
		return nil, err
	}
	x, err := c.Binary(args[0], "*", inv)
	if err != nil {
		return nil, err
	}
	y, err := c.Binary(args[1], "*", a)
	if err != nil {
		return nil, err
	}
	sum, err := c.Binary(x, "+", y)
	if err != nil {
		return nil, err
	}
	return withPre(pre, sum), nil
}

// clamp(x, lo, hi) = min(max(x, lo), hi)
func lowerClamp(c *Context, args []Expr) (Expr, error) {
	lo, err := c.elementwise("clamp", "max", true, args[:2])
	if err != nil {
		return nil, err
	}
	return c.elementwise("clamp", "min", true, []Expr{lo, args[2]})
}

// mod(x, y) = x - y*floor(x/y)
func lowerMod(c *Context, args []Expr) (Expr, error) {
	if ComponentType(args[0]) != TypeFloat || ComponentType(args[1]) != TypeFloat {
		return nil, c.errorf(InvalidOperandType, "cannot apply mod to argument of type %s", args[0].Type())
	}
	x, xpre, err := c.pin(args[0])
	if err != nil {
		return nil, err
	}
	y, ypre, err := c.pin(args[1])
	if err != nil {
		return nil, err
	}
	q, err := c.Binary(x, "/", y)
	if err != nil {
		return nil, err
	}
	f, err := c.elementwise("mod", "floor", false, []Expr{q})
	if err != nil {
		return nil, err
	}
	p, err := c.Binary(y, "*", f)
	if err != nil {
		return nil, err
	}
	r, err := c.Binary(x, "-", p)
	if err != nil {
		return nil, err
	}
	return withPre(concat(xpre, ypre), r), nil
}
