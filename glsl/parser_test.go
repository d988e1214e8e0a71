package glsl

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"

	"github.com/gogpu/glasm/ir"
)

func parseFragment(t *testing.T, source string) *ir.Program {
	t.Helper()
	program, err := Parse(source, Options{IgnoreMain: true})
	be.Err(t, err, nil)
	return program
}

func globalValues(p *ir.Program) map[string]ir.Value {
	out := make(map[string]ir.Value, len(p.Globals))
	for _, g := range p.Globals {
		out[g.Ident.Name] = g.Value
	}
	return out
}

// =============================================================================
// Declarations
// =============================================================================

func TestParseGlobals(t *testing.T) {
	p := parseFragment(t, `
		const int a = 023;
		int b = 0x10, c = a;
		float d = 1.5e1;
		bool e;
		highp float f = -2.0;
	`)
	got := globalValues(p)
	be.Equal(t, len(got), 5)
	be.Equal(t, got["b"], ir.IntValue(16))
	be.Equal(t, got["c"], ir.IntValue(19))
	be.Equal(t, got["d"], ir.FloatValue(15))
	be.Equal(t, got["e"], ir.BoolValue(false))
	be.Equal(t, got["f"], ir.FloatValue(-2))
}

func TestParseIntegerRange(t *testing.T) {
	got := globalValues(parseFragment(t, "int a = 4294967295; int b = 0xFFFFFFFF;"))
	be.Equal(t, got["a"], ir.IntValue(-1))
	be.Equal(t, got["b"], ir.IntValue(-1))

	_, err := Parse("int a = 4294967296;", Options{IgnoreMain: true})
	be.Err(t, err, ir.SyntaxError)
}

func TestParseFloatForms(t *testing.T) {
	got := globalValues(parseFragment(t, "float a = .5; float b = 2.; float c = 1e-1; float d = 3.0f;"))
	be.Equal(t, got["a"], ir.FloatValue(0.5))
	be.Equal(t, got["b"], ir.FloatValue(2))
	be.Equal(t, got["c"], ir.FloatValue(0.1))
	be.Equal(t, got["d"], ir.FloatValue(3))
}

func TestParseIgnoresPrecisionAndDirectives(t *testing.T) {
	p := parseFragment(t, `
		#version 100
		precision mediump float;
		void f() {
			precision highp int;
			lowp float x = 1.0;
		}
	`)
	be.Equal(t, len(p.Functions), 1)
}

// =============================================================================
// Functions
// =============================================================================

func TestParsePrototypeThenDefinition(t *testing.T) {
	p, err := Parse(`
		float twice(float x);
		void main() {
			float y = twice(1.0);
		}
		float twice(float x) {
			return x * 2.0;
		}
	`, Options{})
	be.Err(t, err, nil)
	be.Equal(t, len(p.Functions), 2)
	be.True(t, p.Main != nil)
	be.Equal(t, p.Main.Name, "main")
	for _, fn := range p.Functions {
		be.True(t, fn.Finalized())
	}
}

func TestParseVoidParameterList(t *testing.T) {
	p := parseFragment(t, "int one(void) { return 1; } int two() { return one() + one(); }")
	be.Equal(t, len(p.Functions), 2)
	be.Equal(t, len(p.Functions[0].Params), 0)
}

func TestParseParameters(t *testing.T) {
	p := parseFragment(t, "float sum(const in float a[3], vec2 v, int) { return a[0] + v.x; }")
	params := p.Functions[0].Params
	be.Equal(t, params, []ir.Param{
		{Name: "a", Type: ir.TypeFloat, Size: 3},
		{Name: "v", Type: ir.TypeVec2},
		{Type: ir.TypeInt},
	})
}

func TestParseOverloads(t *testing.T) {
	p := parseFragment(t, `
		float f(float x) { return x; }
		int f(int x) { return x; }
		void g() { float a = f(1.0); int b = f(1); }
	`)
	be.Equal(t, len(p.Functions), 3)
	be.True(t, p.Functions[0].Ident.Name != p.Functions[1].Ident.Name)
}

// =============================================================================
// Statements and expressions
// =============================================================================

func TestParseStatements(t *testing.T) {
	p := parseFragment(t, `
		int f(int n) {
			int total = 0;
			for (int i = 0; i < n; i++) {
				if (i == 3) continue;
				else if (i > 8) break;
				total += i;
			}
			while (total > 100) total -= 1;
			do { total++; } while (total < 0);
			for (;;) { break; }
			;
			return total;
		}
	`)
	body := p.Functions[0].Body
	var kinds []string
	for _, s := range body {
		switch s.(type) {
		case *ir.StmtFor:
			kinds = append(kinds, "for")
		case *ir.StmtWhile:
			kinds = append(kinds, "while")
		case *ir.StmtDoWhile:
			kinds = append(kinds, "do")
		case *ir.StmtReturn:
			kinds = append(kinds, "return")
		}
	}
	be.Equal(t, kinds, []string{"for", "while", "do", "for", "return"})
}

func TestParseForInitScope(t *testing.T) {
	_, err := Parse(`
		void f() {
			for (int i = 0; i < 2; i++) {}
			i = 1;
		}
	`, Options{IgnoreMain: true})
	be.Err(t, err, ir.UndeclaredIdentifier)
}

func TestParseUnbracedBodyScope(t *testing.T) {
	_, err := Parse(`
		void f(bool p) {
			if (p) int x = 1;
			x = 2;
		}
	`, Options{IgnoreMain: true})
	be.Err(t, err, ir.UndeclaredIdentifier)
}

func TestParseShadowing(t *testing.T) {
	p := parseFragment(t, `
		float x = 1.0;
		void f() {
			int x = 2;
			{ bool x = true; }
			x = 3;
		}
	`)
	be.Equal(t, len(p.Functions), 1)
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"comma", "void f() { int a; int b; a = 1, b = 2; }"},
		{"comma in for", "void f() { int i; int j; for (i = 0, j = 1; i < 3; i++, j++) {} }"},
		{"conditional", "float f(bool p) { return p ? 1.0 : 2.0; }"},
		{"nested conditional", "int f(int a) { return a < 0 ? -1 : a > 0 ? 1 : 0; }"},
		{"logical xor", "bool f(bool a, bool b) { return a ^^ b || !a && b; }"},
		{"right assoc assign", "void f() { float a; float b; a = b = 2.0; }"},
		{"swizzle", "vec2 f(vec4 v) { return v.zy + v.rg * v.st; }"},
		{"swizzle write", "void f() { vec3 v; v.zx = vec2(1.0, 2.0); }"},
		{"matrix column", "vec3 f(mat3 m) { return m[1]; }"},
		{"matrix product", "vec2 f(mat2 m, vec2 v) { return m * v; }"},
		{"array constructor", "float f() { float a[3] = float[3](1.0, 2.0, 3.0); return a[2]; }"},
		{"vector equality", "bool f(vec3 a, vec3 b) { return a == b; }"},
		{"builtins", "float f(vec3 v) { return length(normalize(v)) + sqrt(abs(v.x)); }"},
		{"prefix update", "int f() { int i = 0; return ++i + i--; }"},
		{"negative literal", "int f() { return - -1; }"},
		{"parenthesized", "float f(float a) { return (a + 1.0) * (a - 1.0); }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.source, Options{IgnoreMain: true})
			be.Err(t, err, nil)
		})
	}
}

func TestParseStackSizeOption(t *testing.T) {
	p, err := Parse("void main() {}", Options{StackSize: 1 << 16})
	be.Err(t, err, nil)
	be.Equal(t, p.StackSize, 1<<16)

	p, err = Parse("void main() {}", Options{})
	be.Err(t, err, nil)
	be.Equal(t, p.StackSize, ir.DefaultStackSize)
}

// =============================================================================
// Errors
// =============================================================================

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		kind   ir.ErrorKind
	}{
		{"init type mismatch", "void main() { int x = 1.0; }", ir.TypeMismatch},
		{"binary type mismatch", "void main() { float x = 1.0 + 1; }", ir.TypeMismatch},
		{"struct", "struct S { float x; };", ir.Unsupported},
		{"uniform", "uniform float u;", ir.Unsupported},
		{"out parameter", "void f(out float x) {} void main() {}", ir.Unsupported},
		{"inout parameter", "void f(inout float x) {} void main() {}", ir.Unsupported},
		{"discard", "void main() { discard; }", ir.Unsupported},
		{"modulo", "void main() { int a = 1 % 2; }", ir.Unsupported},
		{"shift", "void main() { int a = 1 << 2; }", ir.Unsupported},
		{"bitwise and", "void main() { int a = 1 & 2; }", ir.Unsupported},
		{"shift assign", "void main() { int a; a <<= 1; }", ir.Unsupported},
		{"bitwise not", "void main() { int a = ~1; }", ir.Unsupported},
		{"composite global", "vec2 v; void main() {}", ir.Unsupported},
		{"break outside loop", "void main() { break; }", ir.SyntaxError},
		{"continue outside loop", "void main() { continue; }", ir.SyntaxError},
		{"undeclared", "void main() { x = 1; }", ir.UndeclaredIdentifier},
		{"undefined prototype", "float f(); void main() { float y = f(); }", ir.UndeclaredIdentifier},
		{"redeclaration", "void main() { int a; int a; }", ir.Redeclaration},
		{"redefinition", "void f() {} void f() {} void main() {}", ir.Redeclaration},
		{"main returns int", "int main() { return 0; }", ir.EntryPointError},
		{"main with params", "void main(int a) {}", ir.EntryPointError},
		{"no main", "void f() {}", ir.EntryPointError},
		{"duplicate swizzle target", "void main() { vec2 v; v.xx = vec2(1.0); }", ir.DuplicateSwizzleTarget},
		{"literal lvalue", "void main() { 1 = 2; }", ir.InvalidLvalue},
		{"const lvalue", "const int k = 1; void main() { k = 2; }", ir.InvalidLvalue},
		{"zero array size", "void main() { float a[0]; }", ir.InvalidOperandType},
		{"float array size", "void main() { float a[1.0]; }", ir.InvalidOperandType},
		{"non-bool condition", "void main() { if (1) {} }", ir.InvalidOperandType},
		{"bad swizzle", "void main() { vec2 v; float x = v.z; }", ir.InvalidOperandType},
		{"missing semicolon", "void main() { int x = 1 }", ir.SyntaxError},
		{"unterminated body", "void main() {", ir.SyntaxError},
		{"bad octal", "void main() { int x = 08; }", ir.SyntaxError},
		{"stray character", "void main() { int x = @; }", ir.SyntaxError},
		{"const function", "const float f() { return 1.0; }", ir.SyntaxError},
		{"missing type", "x = 1;", ir.SyntaxError},
		{"unsized array", "void main() { float a[]; }", ir.Unsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.source, Options{})
			be.Err(t, err, tt.kind)

			var se *SourceError
			be.True(t, errors.As(err, &se))
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	source := "void main() {\n    int x = 1.0;\n}\n"
	_, err := Parse(source, Options{})

	var se *SourceError
	be.True(t, errors.As(err, &se))
	be.Equal(t, se.Span.Start.Line, 2)
	be.Equal(t, se.Span.Start.Column, 9)
	be.Equal(t, se.Error(), "2:9: left and right arguments are of differing types int and float")
}

func TestParseSyntaxErrorPosition(t *testing.T) {
	_, err := Parse("void main() {\n  int x = 1\n}", Options{})
	be.Err(t, err, ir.SyntaxError)
	be.Equal(t, err.Error(), `3:1: expected ;, got }`)
}
