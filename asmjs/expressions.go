// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package asmjs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/glasm/ir"
)

// JavaScript operator precedence, lowest first.
const (
	precLowest = iota
	precSequence
	precAssign
	precConditional
	precLogicalOr
	precLogicalAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
	precCall
	precPrimary
)

var binaryPrecedence = map[string]int{
	"||": precLogicalOr,
	"&&": precLogicalAnd,
	"|":  precBitOr,
	"^":  precBitXor,
	"&":  precBitAnd,
	"==": precEquality, "!=": precEquality, "===": precEquality, "!==": precEquality,
	"<": precRelational, "<=": precRelational, ">": precRelational, ">=": precRelational,
	"<<": precShift, ">>": precShift, ">>>": precShift,
	"+": precAdditive, "-": precAdditive,
	"*": precMultiplicative, "/": precMultiplicative, "%": precMultiplicative,
}

// writeExpression returns the source of e, parenthesized if its precedence
// is below prec.
func (w *Writer) writeExpression(e ir.Expr, prec int) (string, error) {
	s, p, err := w.writeExpressionKind(e)
	if err != nil {
		return "", err
	}
	if p < prec {
		return "(" + s + ")", nil
	}
	return s, nil
}

// writeExpressionKind returns the source of e and its precedence.
//
//nolint:gocyclo,cyclop // one case per expression kind
func (w *Writer) writeExpressionKind(e ir.Expr) (string, int, error) {
	switch n := e.(type) {
	case *ir.Literal:
		return w.writeLiteral(n)
	case *ir.Ident:
		return n.Name, precPrimary, nil
	case *ir.Unary:
		return w.writeUnary(n)
	case *ir.Binary:
		return w.writeBinary(n.Left, n.Op, n.Right)
	case *ir.Logical:
		return w.writeBinary(n.Left, n.Op, n.Right)
	case *ir.Assign:
		left, err := w.writeExpression(n.Left, precPostfix)
		if err != nil {
			return "", 0, err
		}
		right, err := w.writeExpression(n.Right, precAssign)
		if err != nil {
			return "", 0, err
		}
		return left + " = " + right, precAssign, nil
	case *ir.Update:
		arg, err := w.writeExpression(n.Arg, precPostfix)
		if err != nil {
			return "", 0, err
		}
		if n.Prefix {
			return n.Op + arg, precUnary, nil
		}
		return arg + n.Op, precPostfix, nil
	case *ir.Conditional:
		return w.writeConditional(n)
	case *ir.Call:
		return w.writeCall(n.Callee, n.Args, "")
	case *ir.New:
		return w.writeCall(n.Callee, n.Args, "new ")
	case *ir.Member:
		return w.writeMember(n)
	case *ir.Address:
		return w.writeAddress(n)
	case *ir.Sequence:
		return w.writeSequence(n)
	case *ir.Object:
		return w.writeObject(n)
	case *ir.FunctionExpr:
		return w.writeFunctionExpr(n)
	case *ir.Swizzle:
		return "", 0, fmt.Errorf("unresolved swizzle of %s", n.Typ)
	case *ir.Composite:
		return "", 0, fmt.Errorf("composite %s was never materialized", n.Typ)
	case nil:
		return "", 0, fmt.Errorf("nil expression")
	default:
		return "", 0, fmt.Errorf("unsupported expression %T", e)
	}
}

func (w *Writer) writeLiteral(n *ir.Literal) (string, int, error) {
	s := n.Value.String()
	if strings.HasPrefix(s, "-") {
		return s, precUnary, nil
	}
	return s, precPrimary, nil
}

func (w *Writer) writeUnary(n *ir.Unary) (string, int, error) {
	arg, err := w.writeExpression(n.Arg, precUnary)
	if err != nil {
		return "", 0, err
	}
	// Keep "- -x" and "+ +x" from reading as decrement or increment.
	if (n.Op == "-" || n.Op == "+") && strings.HasPrefix(arg, n.Op) {
		return n.Op + " " + arg, precUnary, nil
	}
	return n.Op + arg, precUnary, nil
}

func (w *Writer) writeBinary(left ir.Expr, op string, right ir.Expr) (string, int, error) {
	prec, ok := binaryPrecedence[op]
	if !ok {
		return "", 0, fmt.Errorf("unknown binary operator %q", op)
	}
	l, err := w.writeExpression(left, prec)
	if err != nil {
		return "", 0, err
	}
	r, err := w.writeExpression(right, prec+1)
	if err != nil {
		return "", 0, err
	}
	return l + " " + op + " " + r, prec, nil
}

func (w *Writer) writeConditional(n *ir.Conditional) (string, int, error) {
	test, err := w.writeExpression(n.Test, precLogicalOr)
	if err != nil {
		return "", 0, err
	}
	cons, err := w.writeExpression(n.Consequent, precAssign)
	if err != nil {
		return "", 0, err
	}
	alt, err := w.writeExpression(n.Alternate, precAssign)
	if err != nil {
		return "", 0, err
	}
	return test + " ? " + cons + " : " + alt, precConditional, nil
}

func (w *Writer) writeCall(callee ir.Expr, args []ir.Expr, prefix string) (string, int, error) {
	c, err := w.writeExpression(callee, precCall)
	if err != nil {
		return "", 0, err
	}
	list := make([]string, len(args))
	for i, a := range args {
		if list[i], err = w.writeExpression(a, precAssign); err != nil {
			return "", 0, err
		}
	}
	return prefix + c + "(" + strings.Join(list, ", ") + ")", precCall, nil
}

func (w *Writer) writeMember(n *ir.Member) (string, int, error) {
	obj, err := w.writeExpression(n.Object, precCall)
	if err != nil {
		return "", 0, err
	}
	if !n.Computed {
		id, ok := n.Property.(*ir.Ident)
		if !ok {
			return "", 0, fmt.Errorf("non-computed member with %T property", n.Property)
		}
		return obj + "." + id.Name, precCall, nil
	}
	prop, err := w.writeExpression(n.Property, precLowest)
	if err != nil {
		return "", 0, err
	}
	return obj + "[" + prop + "]", precCall, nil
}

// writeAddress prints a derived address as (base + offset) | 0.
func (w *Writer) writeAddress(n *ir.Address) (string, int, error) {
	base, err := w.writeExpression(n.Base, precAdditive+1)
	if err != nil {
		return "", 0, err
	}
	if n.Offset != 0 {
		base = "(" + base + " + " + strconv.Itoa(n.Offset) + ")"
	}
	return base + " | 0", precBitOr, nil
}

func (w *Writer) writeSequence(n *ir.Sequence) (string, int, error) {
	if len(n.Exprs) == 0 {
		return "", 0, fmt.Errorf("empty sequence")
	}
	if len(n.Exprs) == 1 {
		return w.writeExpressionKind(n.Exprs[0])
	}
	list := make([]string, len(n.Exprs))
	for i, x := range n.Exprs {
		var err error
		if list[i], err = w.writeExpression(x, precAssign); err != nil {
			return "", 0, err
		}
	}
	return strings.Join(list, ", "), precSequence, nil
}

func (w *Writer) writeObject(n *ir.Object) (string, int, error) {
	if len(n.Properties) == 0 {
		return "{}", precPrimary, nil
	}
	list := make([]string, len(n.Properties))
	for i, p := range n.Properties {
		v, err := w.writeExpression(p.Value, precAssign)
		if err != nil {
			return "", 0, err
		}
		list[i] = p.Key.Name + ": " + v
	}
	return "{ " + strings.Join(list, ", ") + " }", precPrimary, nil
}

// writeFunctionExpr prints an anonymous function whose body is indented one
// level below the line it starts on.
func (w *Writer) writeFunctionExpr(n *ir.FunctionExpr) (string, int, error) {
	inner := w.nested()
	if err := inner.writeBlock(n.Body); err != nil {
		return "", 0, err
	}
	var b strings.Builder
	b.WriteString("function (")
	b.WriteString(identList(n.Params))
	b.WriteString(") {\n")
	b.WriteString(inner.out.String())
	b.WriteString(w.indentString())
	b.WriteString("}")
	return b.String(), precPrimary, nil
}
