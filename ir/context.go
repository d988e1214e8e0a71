package ir

import (
	"fmt"
)

// Context is the mutable state of one compilation: the symbol table, the
// stack allocator, the program being assembled, the function whose body is
// being built and the loop nesting depth.
//
// The front end creates one Context per source and drives every constructor
// through it. A Context is not safe for concurrent use.
type Context struct {
	Symbols *SymbolTable
	Stack   *StackAllocator
	Program *Program

	// IgnoreMain disables the entry point checks.
	IgnoreMain bool

	pos       Position
	loopDepth int
	fn        *Function
	names     *namer
}

// NewContext returns a Context for a fresh compilation.
func NewContext() *Context {
	return &Context{
		Symbols: NewSymbolTable(),
		Stack:   NewStackAllocator(),
		Program: NewProgram(),
		names:   newNamer(),
	}
}

// At records the source position that subsequent errors refer to.
func (c *Context) At(pos Position) *Context {
	c.pos = pos
	return c
}

// Pos returns the current source position.
func (c *Context) Pos() Position { return c.pos }

// Function returns the function whose body is being built, or nil at
// global scope.
func (c *Context) Function() *Function { return c.fn }

// EnterScope opens a nested lexical scope.
func (c *Context) EnterScope() { c.Symbols.EnterScope() }

// ExitScope closes the innermost lexical scope.
func (c *Context) ExitScope() { c.Symbols.ExitScope() }

// EnterLoop marks the start of a loop body.
func (c *Context) EnterLoop() { c.loopDepth++ }

// ExitLoop marks the end of a loop body.
func (c *Context) ExitLoop() {
	if c.loopDepth > 0 {
		c.loopDepth--
	}
}

// InLoop reports whether break and continue are legal here.
func (c *Context) InLoop() bool { return c.loopDepth > 0 }

func (c *Context) errorf(kind ErrorKind, format string, args ...interface{}) error {
	return newError(c.pos, kind, format, args...)
}

// temp declares a hidden local of the current function that holds an
// intermediate value of type t.
func (c *Context) temp(t Type, size int) (*Ident, error) {
	if c.fn == nil {
		return nil, c.errorf(Unsupported, "expression of type %s is not supported outside a function", t)
	}
	id := &Ident{Name: fmt.Sprintf("$$t%d", len(c.fn.temps)), Typ: t, Size: size}
	c.fn.temps = append(c.fn.temps, id)
	return id, nil
}

// Lookup resolves a variable reference. Constants resolve to their value.
func (c *Context) Lookup(name string) (Expr, error) {
	sym, ok := c.Symbols.Lookup(name)
	if !ok {
		return nil, c.errorf(UndeclaredIdentifier, "undeclared identifier %s", name)
	}
	if sym.Kind == SymbolFunction {
		return nil, c.errorf(InvalidOperandType, "function %s used as a value", name)
	}
	if sym.Const != nil {
		return &Literal{Value: *sym.Const}, nil
	}
	return sym.Ref, nil
}
