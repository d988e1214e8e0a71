package ir

// Param is a declared function parameter.
type Param struct {
	Name string
	Type Type
	Size int
}

type funcState uint8

const (
	funcDeclaring funcState = iota
	funcBodyAttached
	funcFinalized
)

// Declarator is one name introduced by a variable declaration.
//
// It is created unresolved and gets its type from InitDefault, which also
// supplies the default value of an uninitialized variable.
type Declarator struct {
	Name      string
	Ident     *Ident
	Init      Expr
	ArraySize int

	explicit bool
	hoisted  *Literal
}

// NewDeclarator returns an unresolved declarator. init may be nil.
func NewDeclarator(name string, init Expr, arraySize int) *Declarator {
	return &Declarator{Name: name, Init: init, ArraySize: arraySize, explicit: init != nil}
}

// Type returns the resolved type, or TypeInvalid before InitDefault.
func (d *Declarator) Type() Type {
	if d.Ident == nil {
		return TypeInvalid
	}
	return d.Ident.Typ
}

// InitDefault resolves the declarator to type t and, when it has no
// initializer, gives it the default value: 0, 0.0, false, or a zero-filled
// composite.
func (d *Declarator) InitDefault(t Type) error {
	if d.Ident != nil {
		return newError(Position{}, InternalError, "declaration of %s resolved twice", d.Name)
	}
	if t == TypeVoid || t == TypeInvalid {
		return newError(Position{}, InvalidOperandType, "variable %s cannot have type %s", d.Name, t)
	}
	if d.ArraySize > 0 && !t.IsPrimitive() {
		return newError(Position{}, Unsupported, "arrays of %s are not supported", t)
	}
	if d.Init != nil && (d.Init.Type() != t || d.Init.ArraySize() != d.ArraySize) {
		return newError(Position{}, TypeMismatch, "left and right arguments are of differing types %s and %s",
			typeName(t, d.ArraySize), typeName(d.Init.Type(), d.Init.ArraySize()))
	}

	d.Ident = &Ident{Name: d.Name, Typ: t, Size: d.ArraySize}
	if d.Init != nil {
		return nil
	}
	if IsScalar(d.Ident) {
		d.Init = ZeroLiteral(t)
		return nil
	}
	n := ComponentCount(d.Ident)
	zero := ZeroLiteral(ComponentType(d.Ident))
	elems := make([]Expr, n)
	for i := range elems {
		elems[i] = zero
	}
	d.Init = &Composite{Elements: elems, Typ: t, Size: d.ArraySize}
	return nil
}

// Default returns the value the hoisted var declaration starts with.
func (d *Declarator) Default() *Literal {
	if d.hoisted != nil {
		return d.hoisted
	}
	return hiddenDefault(d.Ident)
}

func hiddenDefault(id *Ident) *Literal {
	if IsScalar(id) && id.Typ == TypeFloat {
		return FloatLiteral(0)
	}
	return IntLiteral(0)
}

// Function is a function declaration being built.
//
// Parameters and locals accumulate while the body is parsed; SetBody then
// synthesizes the prologue exactly once, after which the function must not
// change.
type Function struct {
	Name   string
	Ident  *Ident
	Result Type
	Params []Param

	// Args are the emitted parameter names, in order.
	Args   []*Ident
	Locals []*Declarator

	// UsesStack is set when a local occupies more than one slot.
	UsesStack bool

	Body Block

	temps   []*Ident
	written map[string]bool
	names   *namer
	stack   *StackAllocator
	state   funcState
	defined bool
	used    bool
}

// NewFunction returns a function in the declaring state. ident is the
// emitted name.
func NewFunction(name string, ident *Ident, result Type, params []Param) *Function {
	return &Function{
		Name:    name,
		Ident:   ident,
		Result:  result,
		Params:  params,
		written: make(map[string]bool),
		names:   newNamer(),
	}
}

// Finalized reports whether SetBody has completed.
func (f *Function) Finalized() bool { return f.state == funcFinalized }

// Defined reports whether a body was started for the function.
func (f *Function) Defined() bool { return f.defined }

// Temps returns the hidden locals holding intermediate values.
func (f *Function) Temps() []*Ident { return f.temps }

// AddParam appends an emitted parameter.
func (f *Function) AddParam(id *Ident) error {
	if f.state != funcDeclaring {
		return newError(Position{}, InternalError, "parameter %s added to finalized function %s", id.Name, f.Name)
	}
	f.Args = append(f.Args, id)
	return nil
}

// AddDeclaration records a resolved local so SetBody can hoist it.
func (f *Function) AddDeclaration(d *Declarator) error {
	if f.state != funcDeclaring {
		return newError(Position{}, InternalError, "declaration of %s added to finalized function %s", d.Name, f.Name)
	}
	if d.Ident == nil {
		return newError(Position{}, InternalError, "declaration of %s added before its type is known", d.Name)
	}
	f.Locals = append(f.Locals, d)
	if ComponentCount(d.Ident) > 1 {
		f.UsesStack = true
	}
	return nil
}

// SetBody attaches body and prepends the prologue: parameter coercions,
// hoisted var declarations, the return slot reservation for composite
// results, the frame snapshot when locals live on the stack, and private
// copies of composite parameters the body writes to.
func (f *Function) SetBody(body Block) error {
	if f.state != funcDeclaring {
		return newError(Position{}, InternalError, "body of %s set twice", f.Name)
	}
	f.state = funcBodyAttached
	if f.stack == nil {
		f.stack = NewStackAllocator()
	}

	header := make(Block, 0, len(f.Args)+len(f.Locals)+len(f.temps)+4)
	for _, p := range f.Args {
		header = append(header, &StmtExpr{X: &Assign{Left: p, Right: mustCast(p, p.Typ)}})
	}

	var copies []*Ident
	for _, p := range f.Args {
		if !IsScalar(p) && f.written[p.Name] {
			copies = append(copies, p)
			f.UsesStack = true
		}
	}

	for _, d := range f.Locals {
		header = append(header, &StmtVar{Name: d.Ident, Init: d.Default()})
	}
	rp := &Ident{Name: ReturnPtr, Typ: TypeInt}
	sp := &Ident{Name: FramePtr, Typ: TypeInt}
	returnsComposite := f.Result.IsComposite()
	if returnsComposite {
		header = append(header, &StmtVar{Name: rp, Init: IntLiteral(0)})
	}
	if f.UsesStack {
		header = append(header, &StmtVar{Name: sp, Init: IntLiteral(0)})
	}
	for _, t := range f.temps {
		header = append(header, &StmtVar{Name: t, Init: hiddenDefault(t)})
	}

	switch {
	case returnsComposite:
		header = append(header, &StmtExpr{X: &Assign{Left: rp, Right: stackTop()}})
		bump := f.stack.reserveFrame(f.Result.Size())
		if f.UsesStack {
			header = append(header, &StmtExpr{X: &Assign{Left: sp, Right: bump}})
		} else {
			header = append(header, &StmtExpr{X: bump})
		}
	case f.UsesStack:
		header = append(header, &StmtExpr{X: &Assign{Left: sp, Right: stackTop()}})
	}

	for _, p := range copies {
		n := ComponentCount(p)
		values := make([]Expr, n)
		for i := range values {
			values[i] = Component(p, i)
		}
		seq := f.stack.Materialize(ComponentType(p), values, p.Typ, p.Size)
		header = append(header, &StmtExpr{X: &Assign{Left: p, Right: seq}})
	}

	f.Body = append(header, body...)
	f.state = funcFinalized
	return nil
}

// locate attaches the current position to errors built without one.
func (c *Context) locate(err error) error {
	if e, ok := err.(*Error); ok && e.Pos.Line == 0 {
		e.Pos = c.pos
	}
	return err
}

// DeclareVariable resolves d to type t and declares it in the current
// scope. Inside a function it returns the statements that initialize the
// variable in place; constants and globals produce none.
func (c *Context) DeclareVariable(t Type, d *Declarator, constant bool) ([]Statement, error) {
	if err := d.InitDefault(t); err != nil {
		return nil, c.locate(err)
	}
	if _, exists := c.Symbols.LookupLocal(d.Name); exists {
		return nil, c.errorf(Redeclaration, "%s is already declared in this scope", d.Name)
	}

	switch {
	case constant:
		return nil, c.declareConstant(d)
	case c.fn == nil:
		return nil, c.declareGlobal(d)
	}
	return c.declareLocal(d)
}

func (c *Context) declareConstant(d *Declarator) error {
	if !IsScalar(d.Ident) {
		return c.errorf(Unsupported, "const %s of type %s is not supported", d.Name, typeName(d.Ident.Typ, d.ArraySize))
	}
	if !d.explicit {
		return c.errorf(SyntaxError, "const %s requires an initializer", d.Name)
	}
	v, ok := ConstantOf(d.Init)
	if !ok {
		return c.errorf(InvalidOperandType, "initializer of const %s is not constant", d.Name)
	}
	c.Symbols.Declare(d.Name, &Symbol{Kind: SymbolVariable, Name: d.Name, Const: &v})
	return nil
}

func (c *Context) declareGlobal(d *Declarator) error {
	if !IsScalar(d.Ident) {
		return c.errorf(Unsupported, "global %s of type %s is not supported", d.Name, typeName(d.Ident.Typ, d.ArraySize))
	}
	v, ok := ConstantOf(d.Init)
	if !ok {
		return c.errorf(Unsupported, "initializer of global %s must be constant", d.Name)
	}
	d.Ident.Name = c.names.call(d.Name)
	c.Program.AddGlobal(d.Ident, v)
	c.Symbols.Declare(d.Name, &Symbol{Kind: SymbolVariable, Name: d.Name, Ref: d.Ident})
	return nil
}

func (c *Context) declareLocal(d *Declarator) ([]Statement, error) {
	fn := c.fn
	id := d.Ident
	id.Name = fn.names.call(d.Name)
	if err := fn.AddDeclaration(d); err != nil {
		return nil, c.locate(err)
	}
	c.Symbols.Declare(d.Name, &Symbol{Kind: SymbolVariable, Name: d.Name, Ref: id})

	if IsScalar(id) {
		if lit, ok := d.Init.(*Literal); ok && c.loopDepth == 0 {
			d.hoisted = lit
			return nil, nil
		}
		if !d.explicit {
			return nil, nil
		}
		a, err := c.Assign(id, "=", d.Init)
		if err != nil {
			return nil, err
		}
		return []Statement{&StmtExpr{X: a}}, nil
	}

	if !d.explicit {
		seq, err := c.Resolve(d.Init)
		if err != nil {
			return nil, err
		}
		return []Statement{&StmtExpr{X: &Assign{Left: id, Right: seq}}}, nil
	}

	reserve := &Assign{Left: id, Right: c.Stack.Reserve(id.Typ, id.Size)}
	stored, err := c.assignComponents(nil, id, d.Init)
	if err != nil {
		return nil, err
	}
	exprs := []Expr{reserve}
	if eff := c.Effect(stored); eff != nil {
		if s, ok := eff.(*Sequence); ok {
			exprs = append(exprs, s.Exprs...)
		} else {
			exprs = append(exprs, eff)
		}
	}
	return []Statement{&StmtExpr{X: &Sequence{Exprs: exprs}}}, nil
}

func sameParams(a, b []Param) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Type != b[i].Type || a[i].Size != b[i].Size {
			return false
		}
	}
	return true
}

func (c *Context) declareFunction(result Type, name string, params []Param) (*Function, error) {
	if c.fn != nil {
		return nil, c.errorf(SyntaxError, "function %s declared inside function %s", name, c.fn.Name)
	}
	if IsBuiltin(name) {
		return nil, c.errorf(Redeclaration, "cannot redefine built-in function %s", name)
	}
	if result == TypeInvalid {
		return nil, c.errorf(InvalidOperandType, "function %s has an invalid return type", name)
	}
	for _, p := range params {
		if p.Type == TypeVoid || p.Type == TypeInvalid {
			return nil, c.errorf(InvalidOperandType, "parameter %s of %s cannot have type %s", p.Name, name, p.Type)
		}
		if p.Size > 0 && !p.Type.IsPrimitive() {
			return nil, c.errorf(Unsupported, "arrays of %s are not supported", p.Type)
		}
	}
	if name == "main" && !c.IgnoreMain {
		if result != TypeVoid {
			return nil, c.errorf(EntryPointError, "main function must return void")
		}
		if len(params) != 0 {
			return nil, c.errorf(EntryPointError, "main function cannot accept any arguments")
		}
	}

	sym, ok := c.Symbols.Lookup(name)
	if ok && sym.Kind != SymbolFunction {
		return nil, c.errorf(Redeclaration, "%s is already declared as a variable", name)
	}
	if ok {
		for _, fn := range sym.Overloads {
			if sameParams(fn.Params, params) {
				if fn.Result != result {
					return nil, c.errorf(TypeMismatch, "conflicting return types %s and %s for %s", fn.Result, result, name)
				}
				return fn, nil
			}
		}
	} else {
		sym = &Symbol{Kind: SymbolFunction, Name: name}
		c.Symbols.Declare(name, sym)
	}

	fn := NewFunction(name, &Ident{Name: c.names.call(name), Typ: result}, result, params)
	fn.stack = c.Stack
	sym.Overloads = append(sym.Overloads, fn)
	c.Program.declared = append(c.Program.declared, fn)
	return fn, nil
}

// DeclarePrototype declares a function without a body.
func (c *Context) DeclarePrototype(result Type, name string, params []Param) (*Function, error) {
	return c.declareFunction(result, name, params)
}

// BeginFunction starts the body of a function: it becomes the current
// function and its parameters are declared in a new scope.
func (c *Context) BeginFunction(result Type, name string, params []Param) (*Function, error) {
	fn, err := c.declareFunction(result, name, params)
	if err != nil {
		return nil, err
	}
	if fn.defined {
		return nil, c.errorf(Redeclaration, "function %s is already defined", name)
	}
	fn.defined = true
	fn.names = c.names.fork()
	c.fn = fn
	c.EnterScope()

	for _, p := range params {
		id := &Ident{Name: fn.names.call(p.Name), Typ: p.Type, Size: p.Size}
		if err := fn.AddParam(id); err != nil {
			return nil, c.locate(err)
		}
		if p.Name == "" {
			continue
		}
		if !c.Symbols.Declare(p.Name, &Symbol{Kind: SymbolVariable, Name: p.Name, Ref: id}) {
			return nil, c.errorf(Redeclaration, "parameter %s is declared twice", p.Name)
		}
	}
	return fn, nil
}

// EndFunction finalizes the current function with body and adds it to the
// program.
func (c *Context) EndFunction(body Block) error {
	fn := c.fn
	if fn == nil {
		return c.errorf(InternalError, "no function body in progress")
	}
	c.ExitScope()
	c.fn = nil
	c.loopDepth = 0

	if err := fn.SetBody(body); err != nil {
		return c.locate(err)
	}
	c.Program.AddFunction(fn)
	return nil
}
