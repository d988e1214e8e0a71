// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package asmjs

import (
	"fmt"
	"strings"
)

// Writer generates asm.js source text.
type Writer struct {
	options *Options

	// Output buffer
	out strings.Builder

	// Current indentation level
	indent int
}

func newWriter(options *Options) *Writer {
	return &Writer{options: options}
}

// String returns the generated source, trimmed of the final newline unless
// WriterFlagTrailingNewline is set.
func (w *Writer) String() string {
	s := w.out.String()
	if w.options.WriterFlags&WriterFlagTrailingNewline == 0 {
		s = strings.TrimSuffix(s, "\n")
	}
	return s
}

// nested returns a writer for a function body printed inside an expression.
func (w *Writer) nested() *Writer {
	return &Writer{options: w.options, indent: w.indent + 1}
}

// writeLine writes an indented line.
func (w *Writer) writeLine(format string, args ...any) {
	w.writeIndent()
	if len(args) == 0 {
		w.out.WriteString(format)
	} else {
		fmt.Fprintf(&w.out, format, args...)
	}
	w.out.WriteByte('\n')
}

// writeIndent writes the current indentation.
func (w *Writer) writeIndent() {
	for i := 0; i < w.indent; i++ {
		w.out.WriteString(w.options.Indent)
	}
}

// indentString returns the indentation of the current level.
func (w *Writer) indentString() string {
	return strings.Repeat(w.options.Indent, w.indent)
}

// pushIndent increases indentation.
func (w *Writer) pushIndent() {
	w.indent++
}

// popIndent decreases indentation.
func (w *Writer) popIndent() {
	if w.indent > 0 {
		w.indent--
	}
}
