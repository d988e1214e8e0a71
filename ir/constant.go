package ir

import (
	"fmt"
	"math"
	"strconv"
)

// Value is a compile-time constant. Ints and bools use Int (bools as 0 or 1),
// floats use Float.
type Value struct {
	Type  Type
	Int   int32
	Float float64
}

// IntValue returns an int constant.
func IntValue(v int32) Value { return Value{Type: TypeInt, Int: v} }

// FloatValue returns a float constant.
func FloatValue(v float64) Value { return Value{Type: TypeFloat, Float: v} }

// BoolValue returns a bool constant.
func BoolValue(v bool) Value {
	if v {
		return Value{Type: TypeBool, Int: 1}
	}
	return Value{Type: TypeBool}
}

// Bool reports the truth value of an int or bool constant.
func (v Value) Bool() bool {
	if v.Type == TypeFloat {
		return v.Float != 0
	}
	return v.Int != 0
}

// String renders the value the way the serializer prints literals.
func (v Value) String() string {
	if v.Type == TypeFloat {
		return FormatFloat(v.Float)
	}
	return strconv.FormatInt(int64(v.Int), 10)
}

// FormatFloat prints f so that it always reads back as a float: a decimal
// point is added to integral values.
func FormatFloat(f float64) string {
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if math.IsNaN(f) {
		return "NaN"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return s
		}
	}
	return s + ".0"
}

// ToInt32 converts f the way the ~~ and |0 coercions do: truncate toward
// zero, wrap modulo 2^32, and map NaN and infinities to zero.
func ToInt32(f float64) int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	t := math.Mod(math.Trunc(f), 4294967296)
	if t < 0 {
		t += 4294967296
	}
	return int32(uint32(t))
}

func evalUnary(op string, v Value) (Value, error) {
	switch op {
	case "-":
		switch v.Type {
		case TypeInt:
			return IntValue(ToInt32(-float64(v.Int))), nil
		case TypeFloat:
			return FloatValue(-v.Float), nil
		}
	case "+":
		switch v.Type {
		case TypeInt, TypeBool:
			return FloatValue(float64(v.Int)), nil
		case TypeFloat:
			return v, nil
		}
	case "!":
		if v.Type == TypeBool {
			return BoolValue(v.Int == 0), nil
		}
	case "~~":
		switch v.Type {
		case TypeFloat:
			return IntValue(ToInt32(v.Float)), nil
		case TypeInt, TypeBool:
			return IntValue(v.Int), nil
		}
	}
	return Value{}, fmt.Errorf("cannot fold %s%s", op, v.Type)
}

//nolint:gocyclo,cyclop // one case per operator and kind
func evalBinary(l Value, op string, r Value) (Value, error) {
	switch op {
	case "|", ">>", "<<":
		if l.Type == TypeFloat || r.Type == TypeFloat {
			break
		}
		switch op {
		case "|":
			return IntValue(l.Int | r.Int), nil
		case ">>":
			return IntValue(l.Int >> (uint32(r.Int) & 31)), nil
		default:
			return IntValue(l.Int << (uint32(r.Int) & 31)), nil
		}
	case "&&":
		if l.Type == TypeBool && r.Type == TypeBool {
			return BoolValue(l.Bool() && r.Bool()), nil
		}
	case "||":
		if l.Type == TypeBool && r.Type == TypeBool {
			return BoolValue(l.Bool() || r.Bool()), nil
		}
	}

	if l.Type != r.Type {
		return Value{}, fmt.Errorf("cannot fold %s %s %s", l.Type, op, r.Type)
	}

	if l.Type == TypeFloat {
		a, b := l.Float, r.Float
		switch op {
		case "+":
			return FloatValue(a + b), nil
		case "-":
			return FloatValue(a - b), nil
		case "*":
			return FloatValue(a * b), nil
		case "/":
			return FloatValue(a / b), nil
		}
		return compare(a, op, b)
	}

	a, b := float64(l.Int), float64(r.Int)
	switch op {
	case "+":
		return IntValue(ToInt32(a + b)), nil
	case "-":
		return IntValue(ToInt32(a - b)), nil
	case "*":
		return IntValue(ToInt32(a * b)), nil
	case "/":
		return IntValue(ToInt32(a / b)), nil
	}
	return compare(a, op, b)
}

func compare(a float64, op string, b float64) (Value, error) {
	switch op {
	case "==":
		return BoolValue(a == b), nil
	case "!=":
		return BoolValue(a != b), nil
	case "<":
		return BoolValue(a < b), nil
	case "<=":
		return BoolValue(a <= b), nil
	case ">":
		return BoolValue(a > b), nil
	case ">=":
		return BoolValue(a >= b), nil
	}
	return Value{}, fmt.Errorf("cannot fold operator %s", op)
}
