package ir

// Cast returns e coerced to the representation of target.
//
// Floats are promoted with a unary +, ints are produced with ~~ from floats
// and with |0 from anything else. Vectors, matrices and arrays are addresses
// and follow the int rule but keep their own type label, as do bools. An
// array can only be cast to its own element type.
// Expressions that already carry the right type and were produced by an
// earlier Cast, or are literals, are returned unchanged.
func Cast(e Expr, target Type) (Expr, error) {
	return castAt(Position{}, e, target)
}

func castAt(pos Position, e Expr, target Type) (Expr, error) {
	if IsArray(e) {
		if target != e.Type() {
			return nil, newError(pos, UnsupportedConversion, "cannot convert %s to %s", typeName(e.Type(), e.ArraySize()), target)
		}
		return castInt(e, target, e.ArraySize()), nil
	}

	switch {
	case target == TypeFloat:
		if e.Type() == TypeFloat && wasCast(e) {
			return e, nil
		}
		return &Unary{Op: "+", Arg: e, Typ: TypeFloat, Cast: true}, nil

	case target == TypeInt, target == TypeBool, target.IsComposite():
		return castInt(e, target, 0), nil
	}

	return nil, newError(pos, UnsupportedConversion, "unsupported type conversion to %s", target)
}

func castInt(e Expr, label Type, size int) Expr {
	if e.Type() == label && e.ArraySize() == size && wasCast(e) {
		return e
	}
	if e.Type() == TypeFloat && size == 0 {
		return &Unary{Op: "~~", Arg: e, Typ: label, Cast: true}
	}
	return &Binary{Left: e, Op: "|", Right: IntLiteral(0), Typ: label, Size: size, Cast: true}
}

// mustCast is Cast for targets known to be supported.
func mustCast(e Expr, target Type) Expr {
	c, err := Cast(e, target)
	if err != nil {
		panic(err)
	}
	return c
}
