// Package glsl parses the GLSL ES subset accepted by glasm.
//
// The parser has no syntax tree of its own. As it recognizes each construct
// it calls the matching ir.Context constructor, which type checks and lowers
// it on the spot, so Parse returns a finished ir.Program:
//
//	program, err := glsl.Parse(source, glsl.Options{})
//	if err != nil {
//	    var se *glsl.SourceError
//	    if errors.As(err, &se) {
//	        fmt.Println(se.FormatWithContext())
//	    }
//	}
//
// # Supported Language
//
// Scalars, vectors, square matrices and fixed-size arrays of them, const
// declarations, functions with in parameters, prototypes, the usual
// statements and operators, and the built-in math functions. Preprocessor
// lines and precision qualifiers are accepted and ignored.
//
// Structs, storage qualifiers (uniform, attribute, varying), out and inout
// parameters, discard and the integer bitwise operators are rejected with
// ir.Unsupported.
package glsl
