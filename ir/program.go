package ir

// DefaultStackSize is the size in bytes of the buffer backing both stores.
const DefaultStackSize = 4096

// Global is a module-scope scalar with a constant initial value.
type Global struct {
	Ident *Ident
	Value Value
}

// Program is a compiled translation unit.
type Program struct {
	Globals   []*Global
	Functions []*Function

	// Main is the exported entry point, if one was defined.
	Main *Function

	// StackSize is the byte length of the buffer passed to the module.
	StackSize int

	// Footprint is the number of stack bytes requested by all allocation
	// sites, each counted once.
	Footprint int

	imports  []*Ident
	imported map[string]*Ident
	declared []*Function
}

// NewProgram returns an empty program.
func NewProgram() *Program {
	return &Program{
		StackSize: DefaultStackSize,
		imported:  make(map[string]*Ident),
	}
}

// Imports returns the stdlib.Math functions the program uses, in order of
// first use.
func (p *Program) Imports() []string {
	names := make([]string, len(p.imports))
	for i, id := range p.imports {
		names[i] = id.Name[len(mathPrefix):]
	}
	return names
}

func (p *Program) importMath(name string) *Ident {
	if id, ok := p.imported[name]; ok {
		return id
	}
	id := &Ident{Name: mathPrefix + name, Typ: TypeVoid}
	p.imported[name] = id
	p.imports = append(p.imports, id)
	return id
}

// AddGlobal appends a module-scope variable.
func (p *Program) AddGlobal(id *Ident, v Value) {
	p.Globals = append(p.Globals, &Global{Ident: id, Value: v})
}

// AddFunction appends a finalized function.
func (p *Program) AddFunction(fn *Function) {
	p.Functions = append(p.Functions, fn)
	if fn.Name == "main" && p.Main == nil {
		p.Main = fn
	}
}

func hostIdent(name string) *Ident {
	return &Ident{Name: name, Typ: TypeVoid}
}

func hostMember(object Expr, name string) *Member {
	return &Member{Object: object, Property: hostIdent(name), Typ: TypeVoid}
}

// Module returns the complete output tree:
//
//	var gl = function (stdlib, env, stack) {
//	    "use asm";
//	    var $$STACKTOP = 0;
//	    var $$STACK_I = new stdlib.Int32Array(stack);
//	    var $$STACK_F = new stdlib.Float32Array(stack);
//	    ...imports, globals and functions...
//	    return { main: main };
//	}({ Math: Math, Int32Array: Int32Array, Float32Array: Float32Array }, {}, new ArrayBuffer(4096));
func (p *Program) Module() Statement {
	stdlib := hostIdent("stdlib")
	stack := hostIdent("stack")

	body := Block{
		&StmtDirective{Value: "use asm"},
		&StmtVar{Name: stackTop(), Init: IntLiteral(0)},
		&StmtVar{
			Name: &Ident{Name: StackIntName, Typ: TypeInt},
			Init: &New{Callee: hostMember(stdlib, "Int32Array"), Args: []Expr{stack}},
		},
		&StmtVar{
			Name: &Ident{Name: StackFltName, Typ: TypeFloat},
			Init: &New{Callee: hostMember(stdlib, "Float32Array"), Args: []Expr{stack}},
		},
	}
	for _, id := range p.imports {
		body = append(body, &StmtVar{
			Name: id,
			Init: hostMember(hostMember(stdlib, "Math"), id.Name[len(mathPrefix):]),
		})
	}
	for _, g := range p.Globals {
		body = append(body, &StmtVar{Name: g.Ident, Init: &Literal{Value: g.Value}})
	}
	for _, fn := range p.Functions {
		body = append(body, &StmtFunction{Func: fn})
	}

	exports := &Object{}
	if p.Main != nil {
		exports.Properties = append(exports.Properties, &Property{Key: hostIdent("main"), Value: p.Main.Ident})
	}
	body = append(body, &StmtReturn{Value: exports})

	hostProp := func(name string) *Property {
		return &Property{Key: hostIdent(name), Value: hostIdent(name)}
	}
	wrapper := &Call{
		Callee: &FunctionExpr{
			Params: []*Ident{stdlib, hostIdent("env"), stack},
			Body:   body,
		},
		Args: []Expr{
			&Object{Properties: []*Property{hostProp("Math"), hostProp("Int32Array"), hostProp("Float32Array")}},
			&Object{},
			&New{Callee: hostIdent("ArrayBuffer"), Args: []Expr{IntLiteral(p.StackSize)}},
		},
		Typ: TypeVoid,
	}
	return &StmtVar{Name: hostIdent("gl"), Init: wrapper}
}

// Finish completes the compilation: it checks the entry point unless
// IgnoreMain is set and that every called prototype has a body.
func (c *Context) Finish() (*Program, error) {
	if c.fn != nil {
		return nil, c.errorf(SyntaxError, "unterminated function %s", c.fn.Name)
	}
	p := c.Program
	for _, fn := range p.declared {
		if fn.used && !fn.defined {
			return nil, c.errorf(UndeclaredIdentifier, "function %s is declared but never defined", fn.Name)
		}
	}
	if !c.IgnoreMain && p.Main == nil {
		return nil, c.errorf(EntryPointError, "no main function found")
	}
	p.Footprint = c.Stack.Footprint()
	return p, nil
}
