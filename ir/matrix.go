package ir

// Matrices are stored column-major: slot col*N + row holds element
// (row, col) of a matN.

// matrixProduct builds the linear-algebraic product of two matrices, a
// matrix and a column vector, or a row vector and a matrix.
func (c *Context) matrixProduct(left, right Expr) (Expr, error) {
	var n int
	var typ Type
	switch {
	case IsMatrix(left) && IsMatrix(right):
		if left.Type() != right.Type() {
			return nil, c.errorf(TypeMismatch, "operand types %s and %s do not match", left.Type(), right.Type())
		}
		n, typ = left.Type().MatrixDim(), left.Type()
	case IsMatrix(left):
		n = left.Type().MatrixDim()
		typ = VectorOf(TypeFloat, n)
		if right.Type() != typ {
			return nil, c.errorf(TypeMismatch, "cannot multiply %s by %s", left.Type(), right.Type())
		}
	default:
		n = right.Type().MatrixDim()
		typ = VectorOf(TypeFloat, n)
		if left.Type() != typ {
			return nil, c.errorf(TypeMismatch, "cannot multiply %s by %s", left.Type(), right.Type())
		}
	}

	l, lpre, err := c.pin(left)
	if err != nil {
		return nil, err
	}
	r, rpre, err := c.pin(right)
	if err != nil {
		return nil, err
	}

	var elems []Expr
	switch {
	case IsMatrix(l) && IsMatrix(r):
		elems = make([]Expr, n*n)
		for col := 0; col < n; col++ {
			for row := 0; row < n; row++ {
				terms := make([][2]Expr, n)
				for k := 0; k < n; k++ {
					terms[k] = [2]Expr{Component(l, k*n+row), Component(r, col*n+k)}
				}
				elems[col*n+row] = sumOfProducts(terms)
			}
		}
	case IsMatrix(l):
		elems = make([]Expr, n)
		for row := 0; row < n; row++ {
			terms := make([][2]Expr, n)
			for k := 0; k < n; k++ {
				terms[k] = [2]Expr{Component(l, k*n+row), Component(r, k)}
			}
			elems[row] = sumOfProducts(terms)
		}
	default:
		elems = make([]Expr, n)
		for col := 0; col < n; col++ {
			terms := make([][2]Expr, n)
			for k := 0; k < n; k++ {
				terms[k] = [2]Expr{Component(l, k), Component(r, col*n+k)}
			}
			elems[col] = sumOfProducts(terms)
		}
	}
	return &Composite{Elements: elems, Typ: typ, Pre: concat(lpre, rpre)}, nil
}

// sumOfProducts returns a0*b0 + a1*b1 + ..., associated to the left.
func sumOfProducts(terms [][2]Expr) Expr {
	var sum Expr
	for _, t := range terms {
		p := scalarBinary(t[0], "*", t[1])
		if sum == nil {
			sum = p
			continue
		}
		sum = scalarBinary(sum, "+", p)
	}
	return sum
}
