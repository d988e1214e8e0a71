// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package asmjs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/glasm/ir"
)

// writeBlock writes a block of statements.
func (w *Writer) writeBlock(block ir.Block) error {
	for _, stmt := range block {
		if err := w.writeStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// writeStatement writes a single statement.
//
//nolint:gocyclo,cyclop // one case per statement kind
func (w *Writer) writeStatement(stmt ir.Statement) error {
	switch s := stmt.(type) {
	case *ir.StmtBlock:
		w.writeLine("{")
		if err := w.writeBody(s); err != nil {
			return err
		}
		w.writeLine("}")
		return nil

	case *ir.StmtExpr:
		x, err := w.writeExpression(s.X, precLowest)
		if err != nil {
			return err
		}
		if startsAmbiguously(x) {
			x = "(" + x + ")"
		}
		w.writeLine("%s;", x)
		return nil

	case *ir.StmtVar:
		return w.writeVar(s)

	case *ir.StmtDirective:
		w.writeLine("%s;", strconv.Quote(s.Value))
		return nil

	case *ir.StmtIf:
		return w.writeIf(s, "if")

	case *ir.StmtWhile:
		test, err := w.writeExpression(s.Test, precLowest)
		if err != nil {
			return err
		}
		w.writeLine("while (%s) {", test)
		if err := w.writeBody(s.Body); err != nil {
			return err
		}
		w.writeLine("}")
		return nil

	case *ir.StmtDoWhile:
		w.writeLine("do {")
		if err := w.writeBody(s.Body); err != nil {
			return err
		}
		test, err := w.writeExpression(s.Test, precLowest)
		if err != nil {
			return err
		}
		w.writeLine("} while (%s);", test)
		return nil

	case *ir.StmtFor:
		return w.writeFor(s)

	case *ir.StmtBreak:
		w.writeLine("break;")
		return nil

	case *ir.StmtContinue:
		w.writeLine("continue;")
		return nil

	case *ir.StmtReturn:
		if s.Value == nil {
			w.writeLine("return;")
			return nil
		}
		v, err := w.writeExpression(s.Value, precLowest)
		if err != nil {
			return err
		}
		w.writeLine("return %s;", v)
		return nil

	case *ir.StmtFunction:
		return w.writeFunction(s.Func)

	case *ir.StmtEmpty:
		return nil

	default:
		return fmt.Errorf("unsupported statement %T", stmt)
	}
}

// writeBody writes the statements of a loop or branch body one level
// deeper. Non-block bodies are written as if braced.
func (w *Writer) writeBody(body ir.Statement) error {
	w.pushIndent()
	defer w.popIndent()
	if b, ok := body.(*ir.StmtBlock); ok {
		return w.writeBlock(b.Block)
	}
	if body == nil {
		return nil
	}
	return w.writeStatement(body)
}

func (w *Writer) writeVar(s *ir.StmtVar) error {
	if s.Init == nil {
		w.writeLine("var %s;", s.Name.Name)
		return nil
	}
	init, err := w.writeExpression(s.Init, precAssign)
	if err != nil {
		return err
	}
	w.writeLine("var %s = %s;", s.Name.Name, init)
	return nil
}

// writeIf writes an if statement, chaining else-if branches on one line.
func (w *Writer) writeIf(s *ir.StmtIf, keyword string) error {
	test, err := w.writeExpression(s.Test, precLowest)
	if err != nil {
		return err
	}
	w.writeLine("%s (%s) {", keyword, test)
	if err := w.writeBody(s.Then); err != nil {
		return err
	}
	switch els := s.Else.(type) {
	case nil:
		w.writeLine("}")
	case *ir.StmtIf:
		return w.writeIf(els, "} else if")
	default:
		w.writeLine("} else {")
		if err := w.writeBody(els); err != nil {
			return err
		}
		w.writeLine("}")
	}
	return nil
}

func (w *Writer) writeFor(s *ir.StmtFor) error {
	parts := make([]string, 3)
	for i, e := range []ir.Expr{s.Init, s.Test, s.Update} {
		if e == nil {
			continue
		}
		x, err := w.writeExpression(e, precLowest)
		if err != nil {
			return err
		}
		parts[i] = x
	}
	header := parts[0] + ";"
	if parts[1] != "" {
		header += " " + parts[1]
	}
	header += ";"
	if parts[2] != "" {
		header += " " + parts[2]
	}
	w.writeLine("for (%s) {", header)
	if err := w.writeBody(s.Body); err != nil {
		return err
	}
	w.writeLine("}")
	return nil
}

// writeFunction writes a function declaration.
func (w *Writer) writeFunction(fn *ir.Function) error {
	if fn == nil {
		return fmt.Errorf("nil function")
	}
	if !fn.Finalized() {
		return fmt.Errorf("function %s is not finalized", fn.Name)
	}
	w.writeLine("function %s(%s) {", fn.Ident.Name, identList(fn.Args))
	w.pushIndent()
	if err := w.writeBlock(fn.Body); err != nil {
		return err
	}
	w.popIndent()
	w.writeLine("}")
	return nil
}

func identList(ids []*ir.Ident) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.Name
	}
	return strings.Join(names, ", ")
}

// startsAmbiguously reports whether an expression statement would be read as
// a declaration or block.
func startsAmbiguously(s string) bool {
	return strings.HasPrefix(s, "function") || strings.HasPrefix(s, "{")
}
