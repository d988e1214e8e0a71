// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package asmjs

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/gogpu/glasm/ir"
)

func ident(name string, t ir.Type) *ir.Ident {
	return &ir.Ident{Name: name, Typ: t}
}

func bin(l ir.Expr, op string, r ir.Expr) *ir.Binary {
	return &ir.Binary{Left: l, Op: op, Right: r, Typ: ir.TypeInt}
}

// =============================================================================
// Expression Tests
// =============================================================================

func TestExpression(t *testing.T) {
	a, b, c := ident("a", ir.TypeInt), ident("b", ir.TypeInt), ident("c", ir.TypeInt)
	f := ident("f", ir.TypeFloat)

	tests := []struct {
		name string
		expr ir.Expr
		want string
	}{
		{"int literal", ir.IntLiteral(42), "42"},
		{"float literal keeps point", ir.FloatLiteral(1), "1.0"},
		{"bool literal", ir.BoolLiteral(true), "1"},
		{"left assoc", bin(bin(a, "-", b), "-", c), "a - b - c"},
		{"right grouping", bin(a, "-", bin(b, "-", c)), "a - (b - c)"},
		{"precedence", bin(bin(a, "+", b), "*", c), "(a + b) * c"},
		{"no redundant parens", bin(a, "+", bin(b, "*", c)), "a + b * c"},
		{"int coercion", bin(bin(a, "+", b), "|", ir.IntLiteral(0)), "a + b | 0"},
		{"float coercion", &ir.Unary{Op: "+", Arg: f, Typ: ir.TypeFloat, Cast: true}, "+f"},
		{"truncation", &ir.Unary{Op: "~~", Arg: f, Typ: ir.TypeInt, Cast: true}, "~~f"},
		{"double negation", &ir.Unary{Op: "-", Arg: &ir.Unary{Op: "-", Arg: a, Typ: ir.TypeInt}, Typ: ir.TypeInt}, "- -a"},
		{"negative literal operand", bin(a, "-", ir.IntLiteral(-1)), "a - -1"},
		{"unary on binary", &ir.Unary{Op: "!", Arg: bin(a, "==", b), Typ: ir.TypeBool}, "!(a == b)"},
		{
			"store access",
			&ir.Member{
				Object:   ident(ir.StackFltName, ir.TypeFloat),
				Property: bin(bin(a, "+", ir.IntLiteral(4)), ">>", ir.IntLiteral(2)),
				Computed: true,
				Typ:      ir.TypeFloat,
			},
			"$$STACK_F[a + 4 >> 2]",
		},
		{"assignment chain", &ir.Assign{Left: a, Right: &ir.Assign{Left: b, Right: c}}, "a = b = c"},
		{
			"sequence in call",
			&ir.Call{Callee: ident("g", ir.TypeVoid), Args: []ir.Expr{&ir.Sequence{Exprs: []ir.Expr{a, b}}, c}},
			"g((a, b), c)",
		},
		{
			"conditional",
			&ir.Conditional{Test: ident("p", ir.TypeBool), Consequent: a, Alternate: &ir.Assign{Left: b, Right: c}},
			"p ? a : b = c",
		},
		{"prefix update", &ir.Update{Op: "++", Prefix: true, Arg: a}, "++a"},
		{"postfix update", &ir.Update{Op: "--", Arg: a}, "a--"},
		{"logical", &ir.Logical{Left: ident("p", ir.TypeBool), Op: "||", Right: &ir.Logical{Left: ident("q", ir.TypeBool), Op: "&&", Right: ident("r", ir.TypeBool)}}, "p || q && r"},
		{"address", &ir.Address{Base: a, Offset: 8, Typ: ir.TypeVec2}, "(a + 8) | 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expression(tt.expr)
			be.Err(t, err, nil)
			be.Equal(t, got, tt.want)
		})
	}
}

func TestExpression_Unlowered(t *testing.T) {
	tests := []struct {
		name string
		expr ir.Expr
	}{
		{"composite", &ir.Composite{Elements: []ir.Expr{ir.FloatLiteral(0), ir.FloatLiteral(1)}, Typ: ir.TypeVec2}},
		{"swizzle", &ir.Swizzle{Vector: ident("v", ir.TypeVec4), Offsets: []int{0, 1}, Typ: ir.TypeVec2}},
		{"empty sequence", &ir.Sequence{}},
		{"unknown operator", bin(ident("a", ir.TypeInt), "**", ident("b", ir.TypeInt))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Expression(tt.expr)
			be.True(t, err != nil)
		})
	}
}

// =============================================================================
// Statement Tests
// =============================================================================

func TestStatement(t *testing.T) {
	i := ident("i", ir.TypeInt)
	p := ident("p", ir.TypeBool)

	tests := []struct {
		name string
		stmt ir.Statement
		want string
	}{
		{"directive", &ir.StmtDirective{Value: "use asm"}, `"use asm";`},
		{"var", &ir.StmtVar{Name: i, Init: ir.IntLiteral(0)}, "var i = 0;"},
		{"return void", &ir.StmtReturn{}, "return;"},
		{"return value", &ir.StmtReturn{Value: bin(i, "|", ir.IntLiteral(0))}, "return i | 0;"},
		{
			"if else",
			&ir.StmtIf{Test: p, Then: &ir.StmtBreak{}, Else: &ir.StmtBlock{Block: ir.Block{&ir.StmtContinue{}}}},
			"if (p) {\n    break;\n} else {\n    continue;\n}",
		},
		{
			"else if chain",
			&ir.StmtIf{Test: p, Then: &ir.StmtBlock{}, Else: &ir.StmtIf{Test: p, Then: &ir.StmtBlock{}}},
			"if (p) {\n} else if (p) {\n}",
		},
		{
			"for",
			&ir.StmtFor{
				Init:   &ir.Assign{Left: i, Right: ir.IntLiteral(0)},
				Test:   bin(i, "<", ir.IntLiteral(4)),
				Update: &ir.Update{Op: "++", Arg: i},
				Body:   &ir.StmtBlock{},
			},
			"for (i = 0; i < 4; i++) {\n}",
		},
		{"empty for", &ir.StmtFor{Body: &ir.StmtBreak{}}, "for (;;) {\n    break;\n}"},
		{
			"do while",
			&ir.StmtDoWhile{Body: &ir.StmtBlock{Block: ir.Block{&ir.StmtEmpty{}}}, Test: p},
			"do {\n} while (p);",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Statement(tt.stmt, Options{})
			be.Err(t, err, nil)
			be.Equal(t, got, tt.want)
		})
	}
}

// =============================================================================
// Module Tests
// =============================================================================

func TestCompile_EmptyProgram(t *testing.T) {
	got, err := Compile(ir.NewProgram(), DefaultOptions())
	be.Err(t, err, nil)

	want := strings.Join([]string{
		"var gl = function (stdlib, env, stack) {",
		`    "use asm";`,
		"    var $$STACKTOP = 0;",
		"    var $$STACK_I = new stdlib.Int32Array(stack);",
		"    var $$STACK_F = new stdlib.Float32Array(stack);",
		"    return {};",
		"}({ Math: Math, Int32Array: Int32Array, Float32Array: Float32Array }, {}, new ArrayBuffer(4096));",
		"",
	}, "\n")
	be.Equal(t, got, want)
}

func TestCompile_Function(t *testing.T) {
	ctx := ir.NewContext()
	fn, err := ctx.BeginFunction(ir.TypeVoid, "main", nil)
	be.Err(t, err, nil)
	be.Err(t, ctx.EndFunction(nil), nil)
	program, err := ctx.Finish()
	be.Err(t, err, nil)
	be.Equal(t, program.Main, fn)

	got, err := Compile(program, Options{Indent: "  "})
	be.Err(t, err, nil)
	be.True(t, strings.Contains(got, "\n  function main() {\n  }\n"))
	be.True(t, strings.Contains(got, "\n  return { main: main };\n"))
	be.True(t, !strings.HasSuffix(got, "\n"))
}

func TestCompile_UnfinalizedFunction(t *testing.T) {
	program := ir.NewProgram()
	program.AddFunction(ir.NewFunction("main", ident("main", ir.TypeVoid), ir.TypeVoid, nil))

	_, err := Compile(program, DefaultOptions())
	be.True(t, err != nil)
	be.True(t, strings.HasPrefix(err.Error(), "asmjs: "))
}

func TestCompile_NilProgram(t *testing.T) {
	_, err := Compile(nil, DefaultOptions())
	be.True(t, err != nil)
}
