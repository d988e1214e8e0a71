package ir

import (
	"fmt"
)

// ValidationError represents a validation error.
type ValidationError struct {
	Message string
	// Optional context
	Function  string
	Statement int
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Function != "" {
		if e.Statement >= 0 {
			return fmt.Sprintf("in function %s, statement %d: %s", e.Function, e.Statement, e.Message)
		}
		return fmt.Sprintf("in function %s: %s", e.Function, e.Message)
	}
	return e.Message
}

// Validator checks that a finished program only contains nodes the
// serializer can emit.
type Validator struct {
	program *Program
	errors  []ValidationError
	context validationContext
}

// validationContext holds current validation context.
type validationContext struct {
	function     *Function
	functionName string
	statement    int
	loopDepth    int
}

// Validate checks the program for correctness.
// Returns validation errors if any, or nil if the program is valid.
func Validate(program *Program) ([]ValidationError, error) {
	if program == nil {
		return nil, fmt.Errorf("program is nil")
	}

	v := &Validator{
		program: program,
		errors:  make([]ValidationError, 0),
	}

	v.ValidateProgram()

	if len(v.errors) > 0 {
		return v.errors, nil
	}
	return nil, nil
}

// ValidateProgram validates the complete program.
func (v *Validator) ValidateProgram() {
	for _, g := range v.program.Globals {
		if !g.Ident.Typ.IsPrimitive() || g.Value.Type != g.Ident.Typ {
			v.addError(fmt.Sprintf("global %s of type %s has a %s value", g.Ident.Name, g.Ident.Typ, g.Value.Type))
		}
	}

	for _, fn := range v.program.Functions {
		v.validateFunction(fn)
	}

	if main := v.program.Main; main != nil && !main.Finalized() {
		v.addError("entry point main is not finalized")
	}
	if v.program.StackSize < 4096 || v.program.StackSize&(v.program.StackSize-1) != 0 {
		v.addError(fmt.Sprintf("stack size %d is not a power of two of at least 4096", v.program.StackSize))
	}
}

func (v *Validator) validateFunction(fn *Function) {
	v.context = validationContext{function: fn, functionName: fn.Name, statement: -1}

	if !fn.Finalized() {
		v.addErrorInFunction("function body was never finalized")
		return
	}
	if len(fn.Args) != len(fn.Params) {
		v.addErrorInFunction(fmt.Sprintf("%d parameters declared but %d emitted", len(fn.Params), len(fn.Args)))
	}

	for i, stmt := range fn.Body {
		v.context.statement = i
		v.validateStatement(stmt)
	}
}

//nolint:gocyclo,cyclop // one case per statement kind
func (v *Validator) validateStatement(stmt Statement) {
	switch s := stmt.(type) {
	case *StmtBlock:
		for _, inner := range s.Block {
			v.validateStatement(inner)
		}
	case *StmtExpr:
		v.validateExpression(s.X)
	case *StmtVar:
		lit, ok := s.Init.(*Literal)
		if !ok {
			v.addErrorInStatement("var initializer must be a literal")
			return
		}
		want := TypeInt
		if IsScalar(s.Name) && s.Name.Typ == TypeFloat {
			want = TypeFloat
		}
		if (lit.Value.Type == TypeFloat) != (want == TypeFloat) {
			v.addErrorInStatement(fmt.Sprintf("var %s of type %s initialized with %s", s.Name.Name, s.Name.Typ, lit.Value.Type))
		}
	case *StmtIf:
		v.validateCondition(s.Test)
		v.validateStatement(s.Then)
		if s.Else != nil {
			v.validateStatement(s.Else)
		}
	case *StmtWhile:
		v.validateCondition(s.Test)
		v.validateLoopBody(s.Body)
	case *StmtDoWhile:
		v.validateLoopBody(s.Body)
		v.validateCondition(s.Test)
	case *StmtFor:
		if s.Init != nil {
			v.validateExpression(s.Init)
		}
		if s.Test != nil {
			v.validateCondition(s.Test)
		}
		if s.Update != nil {
			v.validateExpression(s.Update)
		}
		v.validateLoopBody(s.Body)
	case *StmtBreak:
		if v.context.loopDepth == 0 {
			v.addErrorInStatement("break outside of a loop")
		}
	case *StmtContinue:
		if v.context.loopDepth == 0 {
			v.addErrorInStatement("continue outside of a loop")
		}
	case *StmtReturn:
		v.validateReturn(s)
	case *StmtEmpty:
	case nil:
		v.addErrorInStatement("nil statement")
	default:
		v.addErrorInStatement(fmt.Sprintf("unexpected statement %T in function body", stmt))
	}
}

func (v *Validator) validateLoopBody(body Statement) {
	v.context.loopDepth++
	v.validateStatement(body)
	v.context.loopDepth--
}

func (v *Validator) validateCondition(test Expr) {
	v.validateExpression(test)
	if test != nil && test.Type() != TypeBool {
		v.addErrorInStatement(fmt.Sprintf("condition has type %s, expected bool", test.Type()))
	}
}

func (v *Validator) validateReturn(s *StmtReturn) {
	fn := v.context.function
	switch {
	case s.Value == nil && fn.Result != TypeVoid:
		v.addErrorInStatement(fmt.Sprintf("missing return value of type %s", fn.Result))
	case s.Value != nil && fn.Result == TypeVoid:
		v.addErrorInStatement("void function returns a value")
	case s.Value != nil:
		v.validateExpression(s.Value)
		want := fn.Result
		if want.IsComposite() {
			want = TypeInt
		}
		if s.Value.Type() != want {
			v.addErrorInStatement(fmt.Sprintf("returns %s, expected %s", s.Value.Type(), want))
		}
	}
}

func (v *Validator) validateExpression(e Expr) {
	if e == nil {
		v.addErrorInStatement("nil expression")
		return
	}
	Walk(e, func(x Expr) bool {
		switch n := x.(type) {
		case *Swizzle:
			v.addErrorInStatement("unresolved swizzle left in tree")
			return false
		case *Composite:
			v.addErrorInStatement("composite value was never materialized")
			return false
		case *New, *Object, *Property, *FunctionExpr:
			v.addErrorInStatement(fmt.Sprintf("host node %T inside a function", x))
			return false
		case *Member:
			if n.Computed && n.Property.Type() != TypeInt {
				v.addErrorInStatement(fmt.Sprintf("store index has type %s", n.Property.Type()))
			}
		case *Assign:
			switch n.Left.(type) {
			case *Ident, *Member:
			default:
				v.addErrorInStatement(fmt.Sprintf("cannot assign to %T", n.Left))
			}
		case *Logical:
			if n.Left.Type() != TypeBool || n.Right.Type() != TypeBool {
				v.addErrorInStatement("logical operator on non-bool operands")
			}
		case *Sequence:
			if len(n.Exprs) == 0 {
				v.addErrorInStatement("empty sequence")
			}
		}
		if x.Type() == TypeInvalid {
			v.addErrorInStatement(fmt.Sprintf("expression %T has no type", x))
		}
		return true
	})
}

func (v *Validator) addError(msg string) {
	v.errors = append(v.errors, ValidationError{
		Message:   msg,
		Statement: -1,
	})
}

func (v *Validator) addErrorInFunction(msg string) {
	v.errors = append(v.errors, ValidationError{
		Message:   msg,
		Function:  v.context.functionName,
		Statement: -1,
	})
}

func (v *Validator) addErrorInStatement(msg string) {
	v.errors = append(v.errors, ValidationError{
		Message:   msg,
		Function:  v.context.functionName,
		Statement: v.context.statement,
	})
}
