package ir

// Walk calls fn for e and, while fn returns true, for every expression
// nested inside it in evaluation order.
func Walk(e Expr, fn func(Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch n := e.(type) {
	case *Unary:
		Walk(n.Arg, fn)
	case *Binary:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Logical:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Assign:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Update:
		Walk(n.Arg, fn)
	case *Conditional:
		Walk(n.Test, fn)
		Walk(n.Consequent, fn)
		Walk(n.Alternate, fn)
	case *Call:
		Walk(n.Callee, fn)
		for _, a := range n.Args {
			Walk(a, fn)
		}
	case *Member:
		Walk(n.Object, fn)
		Walk(n.Property, fn)
	case *Swizzle:
		for _, p := range n.Pre {
			Walk(p, fn)
		}
		Walk(n.Vector, fn)
	case *Composite:
		for _, p := range n.Pre {
			Walk(p, fn)
		}
		for _, el := range n.Elements {
			Walk(el, fn)
		}
	case *Address:
		Walk(n.Base, fn)
	case *New:
		Walk(n.Callee, fn)
		for _, a := range n.Args {
			Walk(a, fn)
		}
	case *Object:
		for _, p := range n.Properties {
			Walk(p, fn)
		}
	case *Property:
		Walk(n.Key, fn)
		Walk(n.Value, fn)
	case *Sequence:
		for _, x := range n.Exprs {
			Walk(x, fn)
		}
	}
}

// pure reports whether e can be evaluated any number of times, or not at
// all, without changing the program's behavior.
func pure(e Expr) bool {
	switch n := e.(type) {
	case *Literal:
		return true
	case *Ident:
		return n.Name != StackTopName
	case *Unary:
		return pure(n.Arg)
	case *Binary:
		return pure(n.Left) && pure(n.Right)
	case *Logical:
		return pure(n.Left) && pure(n.Right)
	case *Conditional:
		return pure(n.Test) && pure(n.Consequent) && pure(n.Alternate)
	case *Member:
		return pure(n.Object) && pure(n.Property)
	case *Address:
		return pure(n.Base)
	case *Swizzle:
		return len(n.Pre) == 0 && pure(n.Vector)
	case *Composite:
		if len(n.Pre) != 0 {
			return false
		}
		for _, el := range n.Elements {
			if !pure(el) {
				return false
			}
		}
		return true
	}
	return false
}

// rootOf returns the variable whose storage e reads or writes, if any.
func rootOf(e Expr) *Ident {
	switch n := e.(type) {
	case *Ident:
		return n
	case *Member:
		return n.root
	case *Swizzle:
		return rootOf(n.Vector)
	case *Address:
		return rootOf(n.Base)
	case *Binary:
		return rootOf(n.Left)
	case *Sequence:
		if len(n.Exprs) > 0 {
			return rootOf(n.Exprs[len(n.Exprs)-1])
		}
	}
	return nil
}

// mentions reports whether e reads the variable called name.
func mentions(e Expr, name string) bool {
	found := false
	Walk(e, func(x Expr) bool {
		switch n := x.(type) {
		case *Ident:
			if n.Name == name {
				found = true
			}
		case *Member:
			if n.root != nil && n.root.Name == name {
				found = true
			}
		}
		return !found
	})
	return found
}
