package ir

// Statement is a node of the lowered statement tree.
type Statement interface {
	statementKind()
}

// Block is a sequence of statements executed in order.
type Block []Statement

// StmtBlock is a nested { ... } block.
type StmtBlock struct {
	Block Block
}

func (StmtBlock) statementKind() {}

// StmtExpr evaluates an expression for its effects.
type StmtExpr struct {
	X Expr
}

func (StmtExpr) statementKind() {}

// StmtVar declares one variable.
type StmtVar struct {
	Name *Ident
	Init Expr
}

func (StmtVar) statementKind() {}

// StmtDirective is a directive prologue such as "use asm".
type StmtDirective struct {
	Value string
}

func (StmtDirective) statementKind() {}

// StmtIf executes Then when Test holds, Else otherwise. Else may be nil.
type StmtIf struct {
	Test Expr
	Then Statement
	Else Statement
}

func (StmtIf) statementKind() {}

// StmtWhile is a while loop.
type StmtWhile struct {
	Test Expr
	Body Statement
}

func (StmtWhile) statementKind() {}

// StmtDoWhile is a do-while loop.
type StmtDoWhile struct {
	Body Statement
	Test Expr
}

func (StmtDoWhile) statementKind() {}

// StmtFor is a for loop. Init, Test and Update may be nil.
type StmtFor struct {
	Init   Expr
	Test   Expr
	Update Expr
	Body   Statement
}

func (StmtFor) statementKind() {}

// StmtBreak exits the innermost loop.
type StmtBreak struct{}

func (StmtBreak) statementKind() {}

// StmtContinue starts the next iteration of the innermost loop.
type StmtContinue struct{}

func (StmtContinue) statementKind() {}

// StmtReturn returns from the function, with a value unless Value is nil.
type StmtReturn struct {
	Value Expr
}

func (StmtReturn) statementKind() {}

// StmtFunction is a function declaration.
type StmtFunction struct {
	Func *Function
}

func (StmtFunction) statementKind() {}

// StmtEmpty is the empty statement.
type StmtEmpty struct{}

func (StmtEmpty) statementKind() {}

func (c *Context) condition(test Expr) error {
	if test == nil {
		return nil
	}
	if test.Type() != TypeBool || IsArray(test) {
		return c.errorf(InvalidOperandType, "boolean expression expected")
	}
	return nil
}

// ExprStmt wraps e as a statement. Expressions without effects produce an
// empty statement.
func (c *Context) ExprStmt(e Expr) Statement {
	if x := c.Effect(e); x != nil {
		return &StmtExpr{X: x}
	}
	return &StmtEmpty{}
}

// InitExpr joins the expressions of declaration statements so they can
// serve as the initializer of a for loop.
func InitExpr(stmts []Statement) Expr {
	var exprs []Expr
	for _, s := range stmts {
		if x, ok := s.(*StmtExpr); ok {
			exprs = append(exprs, x.X)
		}
	}
	switch len(exprs) {
	case 0:
		return nil
	case 1:
		return exprs[0]
	}
	return &Sequence{Exprs: exprs}
}

// If builds an if statement.
func (c *Context) If(test Expr, then, els Statement) (Statement, error) {
	if test == nil {
		return nil, c.errorf(SyntaxError, "if statement requires a condition")
	}
	if err := c.condition(test); err != nil {
		return nil, err
	}
	return &StmtIf{Test: test, Then: then, Else: els}, nil
}

// While builds a while loop.
func (c *Context) While(test Expr, body Statement) (Statement, error) {
	if test == nil {
		return nil, c.errorf(SyntaxError, "while statement requires a condition")
	}
	if err := c.condition(test); err != nil {
		return nil, err
	}
	return &StmtWhile{Test: test, Body: body}, nil
}

// DoWhile builds a do-while loop.
func (c *Context) DoWhile(body Statement, test Expr) (Statement, error) {
	if test == nil {
		return nil, c.errorf(SyntaxError, "do statement requires a condition")
	}
	if err := c.condition(test); err != nil {
		return nil, err
	}
	return &StmtDoWhile{Body: body, Test: test}, nil
}

// For builds a for loop. A nil test loops until break.
func (c *Context) For(init, test, update Expr, body Statement) (Statement, error) {
	if err := c.condition(test); err != nil {
		return nil, err
	}
	if update != nil {
		update = c.Effect(update)
	}
	if init != nil {
		init = c.Effect(init)
	}
	return &StmtFor{Init: init, Test: test, Update: update, Body: body}, nil
}

// Break builds a break statement.
func (c *Context) Break() (Statement, error) {
	if !c.InLoop() {
		return nil, c.errorf(SyntaxError, "break statement outside of a loop")
	}
	return &StmtBreak{}, nil
}

// Continue builds a continue statement.
func (c *Context) Continue() (Statement, error) {
	if !c.InLoop() {
		return nil, c.errorf(SyntaxError, "continue statement outside of a loop")
	}
	return &StmtContinue{}, nil
}

// Return builds a return statement. Composite values are stored in the
// return slot at $$rp and the slot's address is returned.
func (c *Context) Return(value Expr) ([]Statement, error) {
	fn := c.fn
	if fn == nil {
		return nil, c.errorf(SyntaxError, "return statement outside of a function")
	}
	if value == nil {
		if fn.Result != TypeVoid {
			return nil, c.errorf(TypeMismatch, "function %s must return a value of type %s", fn.Name, fn.Result)
		}
		return []Statement{&StmtReturn{}}, nil
	}
	if fn.Result == TypeVoid {
		return nil, c.errorf(TypeMismatch, "void function %s cannot return a value", fn.Name)
	}
	if value.Type() != fn.Result || IsArray(value) {
		return nil, c.errorf(TypeMismatch, "cannot return %s from function returning %s",
			typeName(value.Type(), value.ArraySize()), fn.Result)
	}

	if IsScalar(value) {
		return []Statement{&StmtReturn{Value: mustCast(value, fn.Result)}}, nil
	}

	rp := &Ident{Name: ReturnPtr, Typ: fn.Result}
	stored, err := c.assignComponents(nil, rp, value)
	if err != nil {
		return nil, err
	}
	return []Statement{
		c.ExprStmt(stored),
		&StmtReturn{Value: castInt(rp, TypeInt, 0)},
	}, nil
}
