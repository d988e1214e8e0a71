package glsl

import (
	"strconv"
	"strings"

	"github.com/gogpu/glasm/ir"
)

// Options configures parsing.
type Options struct {
	// IgnoreMain disables the entry point checks, for compiling fragments.
	IgnoreMain bool

	// StackSize is the byte size of the buffer backing the stores.
	// Defaults to ir.DefaultStackSize if zero.
	StackSize int
}

// Parse compiles source into a lowered program.
func Parse(source string, options Options) (*ir.Program, error) {
	tokens, err := NewLexer(source).Tokenize()
	if err != nil {
		return nil, err
	}
	ctx := ir.NewContext()
	ctx.IgnoreMain = options.IgnoreMain
	if options.StackSize != 0 {
		ctx.Program.StackSize = options.StackSize
	}
	return NewParser(tokens, source, ctx).Parse()
}

// Parser parses GLSL tokens and drives an ir.Context with what it
// recognizes. There is no syntax tree: every construct is type checked and
// lowered as soon as its operands are known, and the first error stops the
// parse.
type Parser struct {
	tokens  []Token
	current int
	source  string
	ctx     *ir.Context
}

// NewParser creates a parser that builds into ctx. source is only used for
// error context.
func NewParser(tokens []Token, source string, ctx *ir.Context) *Parser {
	return &Parser{
		tokens:  tokens,
		current: 0,
		source:  source,
		ctx:     ctx,
	}
}

// Parse parses the whole translation unit and finishes the program.
func (p *Parser) Parse() (*ir.Program, error) {
	for !p.isAtEnd() {
		if err := p.declaration(); err != nil {
			return nil, err
		}
	}

	p.at(p.peek())
	program, err := p.ctx.Finish()
	if err != nil {
		return nil, p.wrap(err)
	}
	return program, nil
}

// declaration parses a top-level declaration.
func (p *Parser) declaration() error {
	tok := p.peek()
	switch tok.Kind {
	case TokenSemicolon:
		p.advance()
		return nil
	case TokenPrecision:
		return p.precisionDecl()
	case TokenStruct:
		return p.errorf(ir.Unsupported, tok, "structs are not supported")
	case TokenAttribute, TokenUniform, TokenVarying, TokenIn, TokenOut, TokenInout, TokenInvariant:
		return p.errorf(ir.Unsupported, tok, "storage qualifier %s is not supported", tok.Lexeme)
	}

	constant := p.match(TokenConst)
	t, err := p.typeSpec()
	if err != nil {
		return err
	}
	name, err := p.expect(TokenIdent)
	if err != nil {
		return err
	}
	if p.check(TokenLeftParen) {
		if constant {
			return p.errorf(ir.SyntaxError, tok, "functions cannot be declared const")
		}
		return p.functionDecl(t, name)
	}
	_, err = p.declaratorList(t, name, constant)
	return err
}

// precisionDecl skips a default precision statement such as
// "precision mediump float;".
func (p *Parser) precisionDecl() error {
	p.advance() // consume 'precision'
	if !p.isPrecision(p.peek().Kind) {
		return p.errorf(ir.SyntaxError, p.peek(), "expected precision qualifier, got %s", p.peek().Kind)
	}
	p.advance()
	if _, err := p.expect(TokenTypeName); err != nil {
		return err
	}
	_, err := p.expect(TokenSemicolon)
	return err
}

// typeSpec parses a type keyword, skipping any precision qualifier.
func (p *Parser) typeSpec() (ir.Type, error) {
	for p.isPrecision(p.peek().Kind) {
		p.advance()
	}
	tok := p.peek()
	switch tok.Kind {
	case TokenTypeName:
		p.advance()
		t, _ := ir.TypeByName(tok.Lexeme)
		return t, nil
	case TokenStruct:
		return ir.TypeInvalid, p.errorf(ir.Unsupported, tok, "structs are not supported")
	}
	return ir.TypeInvalid, p.errorf(ir.SyntaxError, tok, "expected type name, got %s", describe(tok))
}

// functionDecl parses the rest of a prototype or definition after its
// name.
func (p *Parser) functionDecl(result ir.Type, name Token) error {
	p.advance() // consume '('
	params, err := p.parameters()
	if err != nil {
		return err
	}

	if p.match(TokenSemicolon) {
		p.at(name)
		if _, err := p.ctx.DeclarePrototype(result, name.Lexeme, params); err != nil {
			return p.wrap(err)
		}
		return nil
	}
	if !p.check(TokenLeftBrace) {
		return p.errorf(ir.SyntaxError, p.peek(), "expected { or ;, got %s", describe(p.peek()))
	}

	p.at(name)
	if _, err := p.ctx.BeginFunction(result, name.Lexeme, params); err != nil {
		return p.wrap(err)
	}
	p.advance() // consume '{'
	body, err := p.statementsUntilBrace()
	if err != nil {
		return err
	}
	p.at(p.previous())
	if err := p.ctx.EndFunction(body); err != nil {
		return p.wrap(err)
	}
	return nil
}

// parameters parses a parameter list after the opening parenthesis.
func (p *Parser) parameters() ([]ir.Param, error) {
	if p.match(TokenRightParen) {
		return nil, nil
	}
	if p.check(TokenTypeName) && p.peek().Lexeme == "void" && p.peekAt(1).Kind == TokenRightParen {
		p.advance()
		p.advance()
		return nil, nil
	}

	var params []ir.Param
	for {
		param, err := p.parameter()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if p.match(TokenComma) {
			continue
		}
		if _, err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return params, nil
	}
}

// parameter parses [const] [in] type [name [size]].
func (p *Parser) parameter() (ir.Param, error) {
	p.match(TokenConst)
	switch tok := p.peek(); tok.Kind {
	case TokenIn:
		p.advance()
	case TokenOut, TokenInout:
		return ir.Param{}, p.errorf(ir.Unsupported, tok, "%s parameters are not supported", tok.Lexeme)
	}
	t, err := p.typeSpec()
	if err != nil {
		return ir.Param{}, err
	}
	param := ir.Param{Type: t}
	if p.check(TokenIdent) {
		param.Name = p.advance().Lexeme
	}
	if p.match(TokenLeftBracket) {
		size, err := p.arraySize()
		if err != nil {
			return ir.Param{}, err
		}
		param.Size = size
	}
	return param, nil
}

// declaratorList parses one or more comma-separated declarators of type t,
// the first named by name, through the closing semicolon.
func (p *Parser) declaratorList(t ir.Type, name Token, constant bool) ([]ir.Statement, error) {
	var stmts []ir.Statement
	for {
		s, err := p.declarator(t, name, constant)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s...)
		if !p.match(TokenComma) {
			break
		}
		if name, err = p.expect(TokenIdent); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) declarator(t ir.Type, name Token, constant bool) ([]ir.Statement, error) {
	size := 0
	if p.match(TokenLeftBracket) {
		n, err := p.arraySize()
		if err != nil {
			return nil, err
		}
		size = n
	}
	var init ir.Expr
	if p.match(TokenEqual) {
		e, err := p.assignment()
		if err != nil {
			return nil, err
		}
		init = e
	}

	p.at(name)
	stmts, err := p.ctx.DeclareVariable(t, ir.NewDeclarator(name.Lexeme, init, size), constant)
	if err != nil {
		return nil, p.wrap(err)
	}
	return stmts, nil
}

// arraySize parses a constant size after '[' through the closing ']'.
func (p *Parser) arraySize() (int, error) {
	tok := p.peek()
	if p.check(TokenRightBracket) {
		return 0, p.errorf(ir.Unsupported, tok, "arrays must have an explicit size")
	}
	e, err := p.conditional()
	if err != nil {
		return 0, err
	}
	v, ok := ir.ConstantOf(e)
	if !ok || v.Type != ir.TypeInt || ir.IsArray(e) {
		return 0, p.errorf(ir.InvalidOperandType, tok, "array size must be a constant integer expression")
	}
	if v.Int <= 0 {
		return 0, p.errorf(ir.InvalidOperandType, tok, "array size must be greater than zero")
	}
	if _, err := p.expect(TokenRightBracket); err != nil {
		return 0, err
	}
	return int(v.Int), nil
}

// Statements

// statement parses a statement. Declarations may produce any number of
// statements, including none.
//
//nolint:gocyclo,cyclop // one case per statement keyword
func (p *Parser) statement() ([]ir.Statement, error) {
	tok := p.peek()
	switch tok.Kind {
	case TokenLeftBrace:
		return one(p.block())
	case TokenIf:
		return one(p.ifStmt())
	case TokenWhile:
		return one(p.whileStmt())
	case TokenDo:
		return one(p.doStmt())
	case TokenFor:
		return one(p.forStmt())
	case TokenBreak, TokenContinue:
		return one(p.jumpStmt())
	case TokenReturn:
		return p.returnStmt()
	case TokenSemicolon:
		p.advance()
		return nil, nil
	case TokenPrecision:
		return nil, p.precisionDecl()
	case TokenDiscard:
		return nil, p.errorf(ir.Unsupported, tok, "discard is not supported")
	case TokenStruct:
		return nil, p.errorf(ir.Unsupported, tok, "structs are not supported")
	}
	if p.isDeclarationStart() {
		return p.declarationStmt()
	}

	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return []ir.Statement{p.ctx.ExprStmt(e)}, nil
}

func one(s ir.Statement, err error) ([]ir.Statement, error) {
	if err != nil {
		return nil, err
	}
	return []ir.Statement{s}, nil
}

func (p *Parser) declarationStmt() ([]ir.Statement, error) {
	constant := p.match(TokenConst)
	t, err := p.typeSpec()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	return p.declaratorList(t, name, constant)
}

// block parses { ... } in a new scope.
func (p *Parser) block() (ir.Statement, error) {
	p.advance() // consume '{'
	p.ctx.EnterScope()
	stmts, err := p.statementsUntilBrace()
	if err != nil {
		return nil, err
	}
	p.ctx.ExitScope()
	return &ir.StmtBlock{Block: stmts}, nil
}

// statementsUntilBrace parses statements through the closing '}'.
func (p *Parser) statementsUntilBrace() (ir.Block, error) {
	stmts := make(ir.Block, 0, 4) // most blocks have a few statements
	for !p.check(TokenRightBrace) {
		if p.isAtEnd() {
			return nil, p.errorf(ir.SyntaxError, p.peek(), "expected }, got end of input")
		}
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s...)
	}
	p.advance() // consume '}'
	return stmts, nil
}

// subStatement parses the body of a branch or loop. An unbraced body gets
// its own scope like a braced one.
func (p *Parser) subStatement() (ir.Statement, error) {
	if p.check(TokenLeftBrace) {
		return p.block()
	}
	p.ctx.EnterScope()
	stmts, err := p.statement()
	if err != nil {
		return nil, err
	}
	p.ctx.ExitScope()
	switch len(stmts) {
	case 0:
		return &ir.StmtEmpty{}, nil
	case 1:
		return stmts[0], nil
	}
	return &ir.StmtBlock{Block: stmts}, nil
}

// condition parses ( expression ).
func (p *Parser) condition() (ir.Expr, error) {
	if _, err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}
	test, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}
	return test, nil
}

func (p *Parser) ifStmt() (ir.Statement, error) {
	tok := p.advance() // consume 'if'
	test, err := p.condition()
	if err != nil {
		return nil, err
	}
	then, err := p.subStatement()
	if err != nil {
		return nil, err
	}
	var els ir.Statement
	if p.match(TokenElse) {
		if els, err = p.subStatement(); err != nil {
			return nil, err
		}
	}
	p.at(tok)
	s, err := p.ctx.If(test, then, els)
	if err != nil {
		return nil, p.wrap(err)
	}
	return s, nil
}

// loopBody parses a loop body with break and continue enabled.
func (p *Parser) loopBody() (ir.Statement, error) {
	p.ctx.EnterLoop()
	body, err := p.subStatement()
	if err != nil {
		return nil, err
	}
	p.ctx.ExitLoop()
	return body, nil
}

func (p *Parser) whileStmt() (ir.Statement, error) {
	tok := p.advance() // consume 'while'
	test, err := p.condition()
	if err != nil {
		return nil, err
	}
	body, err := p.loopBody()
	if err != nil {
		return nil, err
	}
	p.at(tok)
	s, err := p.ctx.While(test, body)
	if err != nil {
		return nil, p.wrap(err)
	}
	return s, nil
}

func (p *Parser) doStmt() (ir.Statement, error) {
	tok := p.advance() // consume 'do'
	body, err := p.loopBody()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenWhile); err != nil {
		return nil, err
	}
	test, err := p.condition()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	p.at(tok)
	s, err := p.ctx.DoWhile(body, test)
	if err != nil {
		return nil, p.wrap(err)
	}
	return s, nil
}

// forStmt parses a for loop. Variables declared in the initializer are
// scoped to the loop.
func (p *Parser) forStmt() (ir.Statement, error) {
	tok := p.advance() // consume 'for'
	if _, err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}
	p.ctx.EnterScope()

	var init ir.Expr
	switch {
	case p.match(TokenSemicolon):
	case p.isDeclarationStart():
		stmts, err := p.declarationStmt()
		if err != nil {
			return nil, err
		}
		init = ir.InitExpr(stmts)
	default:
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenSemicolon); err != nil {
			return nil, err
		}
		init = e
	}

	var test, update ir.Expr
	if !p.check(TokenSemicolon) {
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		test = e
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	if !p.check(TokenRightParen) {
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		update = e
	}
	if _, err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}

	body, err := p.loopBody()
	if err != nil {
		return nil, err
	}
	p.ctx.ExitScope()

	p.at(tok)
	s, err := p.ctx.For(init, test, update, body)
	if err != nil {
		return nil, p.wrap(err)
	}
	return s, nil
}

func (p *Parser) jumpStmt() (ir.Statement, error) {
	tok := p.advance()
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	p.at(tok)
	var s ir.Statement
	var err error
	if tok.Kind == TokenBreak {
		s, err = p.ctx.Break()
	} else {
		s, err = p.ctx.Continue()
	}
	if err != nil {
		return nil, p.wrap(err)
	}
	return s, nil
}

func (p *Parser) returnStmt() ([]ir.Statement, error) {
	tok := p.advance() // consume 'return'
	var value ir.Expr
	if !p.check(TokenSemicolon) {
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		value = e
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	p.at(tok)
	stmts, err := p.ctx.Return(value)
	if err != nil {
		return nil, p.wrap(err)
	}
	return stmts, nil
}

// Expressions

// expression parses a comma-separated expression list.
func (p *Parser) expression() (ir.Expr, error) {
	first, err := p.assignment()
	if err != nil {
		return nil, err
	}
	if !p.check(TokenComma) {
		return first, nil
	}
	exprs := []ir.Expr{first}
	for p.check(TokenComma) {
		tok := p.advance()
		e, err := p.assignment()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		p.at(tok)
	}
	return p.build(p.ctx.Comma(exprs))
}

var assignOps = map[TokenKind]string{
	TokenEqual:      "=",
	TokenPlusEqual:  "+=",
	TokenMinusEqual: "-=",
	TokenStarEqual:  "*=",
	TokenSlashEqual: "/=",

	// Reserved.
	TokenPercentEqual:        "",
	TokenAmpEqual:            "",
	TokenPipeEqual:           "",
	TokenCaretEqual:          "",
	TokenLessLessEqual:       "",
	TokenGreaterGreaterEqual: "",
}

// assignment parses an assignment, which is right associative.
func (p *Parser) assignment() (ir.Expr, error) {
	left, err := p.conditional()
	if err != nil {
		return nil, err
	}
	op, ok := assignOps[p.peek().Kind]
	if !ok {
		return left, nil
	}
	tok := p.advance()
	if op == "" {
		return nil, p.errorf(ir.Unsupported, tok, "operator %s is not supported", tok.Lexeme)
	}
	right, err := p.assignment()
	if err != nil {
		return nil, err
	}
	p.at(tok)
	return p.build(p.ctx.Assign(left, op, right))
}

// conditional parses test ? expression : assignment.
func (p *Parser) conditional() (ir.Expr, error) {
	test, err := p.binary(0)
	if err != nil {
		return nil, err
	}
	if !p.check(TokenQuestion) {
		return test, nil
	}
	tok := p.advance()
	consequent, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	alternate, err := p.assignment()
	if err != nil {
		return nil, err
	}
	p.at(tok)
	return p.build(p.ctx.Conditional(test, consequent, alternate))
}

// binaryLevel is one precedence level of left-associative binary operators.
// Operators mapped to "" are reserved and rejected.
type binaryLevel struct {
	ops     map[TokenKind]string
	logical bool
}

// binaryLevels lists the levels from loosest to tightest binding.
var binaryLevels = []binaryLevel{
	{ops: map[TokenKind]string{TokenPipePipe: "||"}, logical: true},
	{ops: map[TokenKind]string{TokenCaretCaret: "^^"}, logical: true},
	{ops: map[TokenKind]string{TokenAmpAmp: "&&"}, logical: true},
	{ops: map[TokenKind]string{TokenPipe: ""}},
	{ops: map[TokenKind]string{TokenCaret: ""}},
	{ops: map[TokenKind]string{TokenAmpersand: ""}},
	{ops: map[TokenKind]string{TokenEqualEqual: "==", TokenBangEqual: "!="}},
	{ops: map[TokenKind]string{TokenLess: "<", TokenGreater: ">", TokenLessEqual: "<=", TokenGreaterEqual: ">="}},
	{ops: map[TokenKind]string{TokenLessLess: "", TokenGreaterGreater: ""}},
	{ops: map[TokenKind]string{TokenPlus: "+", TokenMinus: "-"}},
	{ops: map[TokenKind]string{TokenStar: "*", TokenSlash: "/", TokenPercent: ""}},
}

// binary parses the binary operators from the given level down.
func (p *Parser) binary(level int) (ir.Expr, error) {
	if level == len(binaryLevels) {
		return p.unary()
	}
	left, err := p.binary(level + 1)
	if err != nil {
		return nil, err
	}
	lv := binaryLevels[level]
	for {
		op, ok := lv.ops[p.peek().Kind]
		if !ok {
			return left, nil
		}
		tok := p.advance()
		if op == "" {
			return nil, p.errorf(ir.Unsupported, tok, "operator %s is not supported", tok.Lexeme)
		}
		right, err := p.binary(level + 1)
		if err != nil {
			return nil, err
		}
		p.at(tok)
		if lv.logical {
			left, err = p.build(p.ctx.Logical(left, op, right))
		} else {
			left, err = p.build(p.ctx.Binary(left, op, right))
		}
		if err != nil {
			return nil, err
		}
	}
}

// unary parses prefix operators.
func (p *Parser) unary() (ir.Expr, error) {
	tok := p.peek()
	switch tok.Kind {
	case TokenPlus, TokenMinus, TokenBang:
		p.advance()
		arg, err := p.unary()
		if err != nil {
			return nil, err
		}
		p.at(tok)
		return p.build(p.ctx.Unary(tok.Lexeme, arg))
	case TokenPlusPlus, TokenMinusMinus:
		p.advance()
		arg, err := p.unary()
		if err != nil {
			return nil, err
		}
		p.at(tok)
		return p.build(p.ctx.Update(tok.Lexeme, true, arg))
	case TokenTilde:
		return nil, p.errorf(ir.Unsupported, tok, "operator ~ is not supported")
	}
	return p.postfix()
}

// postfix parses indexing, field selection and postfix updates.
func (p *Parser) postfix() (ir.Expr, error) {
	e, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenLeftBracket:
			p.advance()
			index, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokenRightBracket); err != nil {
				return nil, err
			}
			p.at(tok)
			if e, err = p.build(p.ctx.Index(e, index)); err != nil {
				return nil, err
			}
		case TokenDot:
			p.advance()
			name, err := p.expect(TokenIdent)
			if err != nil {
				return nil, err
			}
			p.at(name)
			if e, err = p.build(p.ctx.Field(e, name.Lexeme)); err != nil {
				return nil, err
			}
		case TokenPlusPlus, TokenMinusMinus:
			p.advance()
			p.at(tok)
			if e, err = p.build(p.ctx.Update(tok.Lexeme, false, e)); err != nil {
				return nil, err
			}
		default:
			return e, nil
		}
	}
}

// primary parses literals, names, calls, constructors and parentheses.
//
//nolint:gocyclo,cyclop // one case per token kind
func (p *Parser) primary() (ir.Expr, error) {
	tok := p.peek()

	switch tok.Kind {
	case TokenIntLiteral:
		p.advance()
		v, err := strconv.ParseUint(tok.Lexeme, 0, 32)
		if err != nil {
			return nil, p.errorf(ir.SyntaxError, tok, "integer constant %s is out of range", tok.Lexeme)
		}
		return ir.IntLiteral(int(int32(uint32(v)))), nil

	case TokenFloatLiteral:
		p.advance()
		text := strings.TrimRight(tok.Lexeme, "fF")
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, p.errorf(ir.SyntaxError, tok, "invalid float constant %s", tok.Lexeme)
		}
		return ir.FloatLiteral(v), nil

	case TokenBoolLiteral:
		p.advance()
		return ir.BoolLiteral(tok.Lexeme == "true"), nil

	case TokenIdent:
		p.advance()
		if p.check(TokenLeftParen) {
			p.advance()
			args, err := p.arguments()
			if err != nil {
				return nil, err
			}
			p.at(tok)
			return p.build(p.ctx.Call(tok.Lexeme, args))
		}
		p.at(tok)
		return p.build(p.ctx.Lookup(tok.Lexeme))

	case TokenTypeName:
		return p.constructor()

	case TokenLeftParen:
		p.advance()
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return e, nil

	case TokenError:
		return nil, p.errorf(ir.SyntaxError, tok, "invalid token %q", tok.Lexeme)
	}

	return nil, p.errorf(ir.SyntaxError, tok, "unexpected %s in expression", describe(tok))
}

// constructor parses T(args) or T[n](args).
func (p *Parser) constructor() (ir.Expr, error) {
	tok := p.advance()
	t, _ := ir.TypeByName(tok.Lexeme)
	size := 0
	if p.match(TokenLeftBracket) {
		n, err := p.arraySize()
		if err != nil {
			return nil, err
		}
		size = n
	}
	if _, err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}
	args, err := p.arguments()
	if err != nil {
		return nil, err
	}
	p.at(tok)
	return p.build(p.ctx.Construct(t, size, args))
}

// arguments parses a call's arguments after the opening parenthesis.
func (p *Parser) arguments() ([]ir.Expr, error) {
	if p.match(TokenRightParen) {
		return nil, nil
	}
	if p.check(TokenTypeName) && p.peek().Lexeme == "void" && p.peekAt(1).Kind == TokenRightParen {
		p.advance()
		p.advance()
		return nil, nil
	}
	args := make([]ir.Expr, 0, 4)
	for {
		arg, err := p.assignment()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.match(TokenComma) {
			continue
		}
		if _, err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return args, nil
	}
}

// Helper methods

// at points the context's error position at tok.
func (p *Parser) at(tok Token) {
	p.ctx.At(ir.Position{Line: tok.Line, Column: tok.Column})
}

// build converts a constructor result, wrapping its error.
func (p *Parser) build(e ir.Expr, err error) (ir.Expr, error) {
	if err != nil {
		return nil, p.wrap(err)
	}
	return e, nil
}

func (p *Parser) wrap(err error) error {
	return fromIR(err, p.peek().span(), p.source)
}

func (p *Parser) errorf(kind ir.ErrorKind, tok Token, format string, args ...interface{}) error {
	return NewSourceErrorf(kind, tok.span(), p.source, format, args...)
}

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) peekAt(n int) Token {
	if p.current+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current+n]
}

func (p *Parser) previous() Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == TokenEOF
}

func (p *Parser) check(kind TokenKind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) match(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return Token{}, p.errorf(ir.SyntaxError, p.peek(), "expected %s, got %s", kind, describe(p.peek()))
}

func (p *Parser) isPrecision(kind TokenKind) bool {
	return kind == TokenHighp || kind == TokenMediump || kind == TokenLowp
}

// isDeclarationStart reports whether a local declaration starts here: const,
// or a type name (after any precision qualifier) followed by a name.
func (p *Parser) isDeclarationStart() bool {
	if p.check(TokenConst) {
		return true
	}
	i := 0
	for p.isPrecision(p.peekAt(i).Kind) {
		i++
	}
	return p.peekAt(i).Kind == TokenTypeName && p.peekAt(i+1).Kind == TokenIdent
}

// describe names a token for error messages.
func describe(tok Token) string {
	switch tok.Kind {
	case TokenEOF:
		return "end of input"
	case TokenIdent, TokenIntLiteral, TokenFloatLiteral, TokenBoolLiteral, TokenTypeName:
		return strconv.Quote(tok.Lexeme)
	}
	return tok.Kind.String()
}
