// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package asmjs

import (
	"fmt"

	"github.com/gogpu/glasm/ir"
)

// WriterFlags control output formatting.
type WriterFlags uint32

const (
	// WriterFlagNone uses default settings.
	WriterFlagNone WriterFlags = 0

	// WriterFlagTrailingNewline ends the output with a newline.
	WriterFlagTrailingNewline WriterFlags = 1 << iota
)

// Options configures asm.js generation.
type Options struct {
	// Indent is the string written once per nesting level.
	// Defaults to four spaces if empty.
	Indent string

	// WriterFlags control output formatting.
	WriterFlags WriterFlags
}

// DefaultOptions returns the options used by glasm.Compile.
func DefaultOptions() Options {
	return Options{
		Indent:      "    ",
		WriterFlags: WriterFlagTrailingNewline,
	}
}

// Compile generates asm.js source for a finished program.
func Compile(program *ir.Program, options Options) (string, error) {
	if program == nil {
		return "", fmt.Errorf("asmjs: program is nil")
	}
	if options.Indent == "" {
		options.Indent = "    "
	}

	w := newWriter(&options)
	if err := w.writeStatement(program.Module()); err != nil {
		return "", fmt.Errorf("asmjs: %w", err)
	}
	return w.String(), nil
}

// Statement renders a single statement, for tests and debugging output.
func Statement(stmt ir.Statement, options Options) (string, error) {
	if options.Indent == "" {
		options.Indent = "    "
	}
	w := newWriter(&options)
	if err := w.writeStatement(stmt); err != nil {
		return "", fmt.Errorf("asmjs: %w", err)
	}
	return w.String(), nil
}

// Expression renders a single expression.
func Expression(e ir.Expr) (string, error) {
	w := newWriter(&Options{Indent: "    "})
	s, err := w.writeExpression(e, precLowest)
	if err != nil {
		return "", fmt.Errorf("asmjs: %w", err)
	}
	return s, nil
}
