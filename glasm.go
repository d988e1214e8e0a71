// Package glasm compiles a subset of GLSL to asm.js.
//
// Every value in the output is a 32-bit int, a float or a bool held as an
// int. Vectors, matrices and arrays are stored component by component in a
// shared ArrayBuffer viewed as $$STACK_I and $$STACK_F, and passed around
// by byte address.
//
// Example usage:
//
//	source := `
//	float twice(float x) {
//	    return x * 2.0;
//	}
//	void main() {
//	    vec3 v = vec3(1.0, 2.0, 3.0) * twice(0.5);
//	}
//	`
//	js, err := glasm.Compile(source)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The result declares var gl, an asm.js module already linked against a
// fresh buffer; gl.main() runs the entry point.
//
// For lower-level access, glsl.Parse returns the lowered ir.Program and
// asmjs.Compile renders it.
package glasm

import (
	"fmt"

	"github.com/gogpu/glasm/asmjs"
	"github.com/gogpu/glasm/glsl"
	"github.com/gogpu/glasm/ir"
)

// Options configures compilation.
type Options struct {
	// IgnoreMain skips the entry point checks, for compiling fragments
	// without a main function.
	IgnoreMain bool

	// Validate enables tree validation before code generation.
	Validate bool

	// StackSize is the byte size of the ArrayBuffer backing the stores.
	// It must be a power of two of at least 4096.
	StackSize int

	// Indent is the indentation unit of the output.
	Indent string
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		IgnoreMain: false,
		Validate:   true,
		StackSize:  ir.DefaultStackSize,
		Indent:     "    ",
	}
}

// Compile compiles GLSL source code to asm.js using default options.
func Compile(source string) (string, error) {
	return CompileWithOptions(source, DefaultOptions())
}

// CompileWithOptions compiles GLSL source code to asm.js with custom options.
//
// The compilation pipeline is:
//  1. Parse and lower the source to a program
//  2. Validate the program (if enabled)
//  3. Generate the asm.js module
func CompileWithOptions(source string, opts Options) (string, error) {
	program, err := Parse(source, opts)
	if err != nil {
		return "", fmt.Errorf("parse error: %w", err)
	}

	if opts.Validate {
		validationErrors, err := Validate(program)
		if err != nil {
			return "", fmt.Errorf("validation error: %w", err)
		}
		if len(validationErrors) > 0 {
			return "", fmt.Errorf("validation failed: %w", &validationErrors[0])
		}
	}

	return Generate(program, opts)
}

// Parse parses and lowers GLSL source to a program.
//
// Type checking happens during parsing, so the first error of any kind is
// returned here as a *glsl.SourceError.
func Parse(source string, opts Options) (*ir.Program, error) {
	return glsl.Parse(source, glsl.Options{
		IgnoreMain: opts.IgnoreMain,
		StackSize:  opts.StackSize,
	})
}

// Validate checks a program for nodes the serializer cannot emit.
//
// Returns a slice of validation errors. If the slice is empty, validation passed.
func Validate(program *ir.Program) ([]ir.ValidationError, error) {
	return ir.Validate(program)
}

// Generate renders a program as an asm.js module.
func Generate(program *ir.Program, opts Options) (string, error) {
	out, err := asmjs.Compile(program, asmjs.Options{
		Indent:      opts.Indent,
		WriterFlags: asmjs.WriterFlagTrailingNewline,
	})
	if err != nil {
		return "", fmt.Errorf("asm.js generation error: %w", err)
	}
	return out, nil
}
