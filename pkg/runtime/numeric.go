package runtime

import (
	"fmt"
	"math"
	"strings"
)

// Centralized numeric semantics: every arithmetic, comparison and logical
// operator accepts either two equal-length per-atom arrays, or one array and
// one scalar (broadcast across all positions), or two scalars (scalar
// result). Results are always freshly allocated; child values are never
// mutated in place.
//
// Arithmetic evaluates in float64 throughout and propagates IEEE-754
// semantics for division (Inf/NaN); comparisons against NaN are false.

// NegativeSqrtError reports sqrt applied to negative operand values. The
// offending values are collected before any root is computed.
type NegativeSqrtError struct {
	Values []float64
}

func (e *NegativeSqrtError) Error() string {
	parts := make([]string, 0, len(e.Values))
	for _, v := range e.Values {
		parts = append(parts, fmt.Sprintf("%g", v))
	}
	return fmt.Sprintf("negative values in sqrt() call: [%s]", strings.Join(parts, " "))
}

// numericOperand normalizes a numeric value to float64 form. Integer arrays
// are copied, not aliased.
type numericOperand struct {
	arr     []float64
	scalar  float64
	isArray bool
}

func toNumericOperand(v Value) (numericOperand, error) {
	switch n := v.(type) {
	case IntValue:
		return numericOperand{scalar: float64(n.Val)}, nil
	case FloatValue:
		return numericOperand{scalar: n.Val}, nil
	case *IntArrayValue:
		arr := make([]float64, len(n.Vals))
		for i, x := range n.Vals {
			arr[i] = float64(x)
		}
		return numericOperand{arr: arr, isArray: true}, nil
	case *FloatArrayValue:
		return numericOperand{arr: n.Vals, isArray: true}, nil
	default:
		return numericOperand{}, fmt.Errorf("operand is %s, expected a number or numeric array", v.Kind())
	}
}

func broadcastNumeric(left, right Value, fn func(a, b float64) float64) (Value, error) {
	l, err := toNumericOperand(left)
	if err != nil {
		return nil, err
	}
	r, err := toNumericOperand(right)
	if err != nil {
		return nil, err
	}
	switch {
	case l.isArray && r.isArray:
		if len(l.arr) != len(r.arr) {
			return nil, fmt.Errorf("array length mismatch: %d vs %d", len(l.arr), len(r.arr))
		}
		out := make([]float64, len(l.arr))
		for i := range out {
			out[i] = fn(l.arr[i], r.arr[i])
		}
		return &FloatArrayValue{Vals: out}, nil
	case l.isArray:
		out := make([]float64, len(l.arr))
		for i := range out {
			out[i] = fn(l.arr[i], r.scalar)
		}
		return &FloatArrayValue{Vals: out}, nil
	case r.isArray:
		out := make([]float64, len(r.arr))
		for i := range out {
			out[i] = fn(l.scalar, r.arr[i])
		}
		return &FloatArrayValue{Vals: out}, nil
	default:
		return FloatValue{Val: fn(l.scalar, r.scalar)}, nil
	}
}

func broadcastComparison(left, right Value, fn func(a, b float64) bool) (Value, error) {
	l, err := toNumericOperand(left)
	if err != nil {
		return nil, err
	}
	r, err := toNumericOperand(right)
	if err != nil {
		return nil, err
	}
	switch {
	case l.isArray && r.isArray:
		if len(l.arr) != len(r.arr) {
			return nil, fmt.Errorf("array length mismatch: %d vs %d", len(l.arr), len(r.arr))
		}
		out := make([]bool, len(l.arr))
		for i := range out {
			out[i] = fn(l.arr[i], r.arr[i])
		}
		return &BoolArrayValue{Vals: out}, nil
	case l.isArray:
		out := make([]bool, len(l.arr))
		for i := range out {
			out[i] = fn(l.arr[i], r.scalar)
		}
		return &BoolArrayValue{Vals: out}, nil
	case r.isArray:
		out := make([]bool, len(r.arr))
		for i := range out {
			out[i] = fn(l.scalar, r.arr[i])
		}
		return &BoolArrayValue{Vals: out}, nil
	default:
		return BoolValue{Val: fn(l.scalar, r.scalar)}, nil
	}
}

// ApplyArithmetic evaluates + - * / with broadcasting.
func ApplyArithmetic(op string, left, right Value) (Value, error) {
	var fn func(a, b float64) float64
	switch op {
	case "+":
		fn = func(a, b float64) float64 { return a + b }
	case "-":
		fn = func(a, b float64) float64 { return a - b }
	case "*":
		fn = func(a, b float64) float64 { return a * b }
	case "/":
		fn = func(a, b float64) float64 { return a / b }
	default:
		return nil, fmt.Errorf("unsupported arithmetic operator %q", op)
	}
	return broadcastNumeric(left, right, fn)
}

// ApplyComparison evaluates = < > <= >= with broadcasting; results are
// boolean (array unless both operands were scalar).
func ApplyComparison(op string, left, right Value) (Value, error) {
	var fn func(a, b float64) bool
	switch op {
	case "=":
		fn = func(a, b float64) bool { return a == b }
	case "<":
		fn = func(a, b float64) bool { return a < b }
	case ">":
		fn = func(a, b float64) bool { return a > b }
	case "<=":
		fn = func(a, b float64) bool { return a <= b }
	case ">=":
		fn = func(a, b float64) bool { return a >= b }
	default:
		return nil, fmt.Errorf("unsupported comparison operator %q", op)
	}
	return broadcastComparison(left, right, fn)
}

// Negate is elementwise unary minus.
func Negate(v Value) (Value, error) {
	return broadcastNumeric(v, FloatValue{Val: -1}, func(a, b float64) float64 { return a * b })
}

// Abs is elementwise absolute value.
func Abs(v Value) (Value, error) {
	return mapNumeric(v, math.Abs)
}

// Sqr is elementwise self-multiplication.
func Sqr(v Value) (Value, error) {
	return mapNumeric(v, func(x float64) float64 { return x * x })
}

// Sqrt is the elementwise square root. Negative operand values are rejected
// before anything is computed, with the offending values reported.
func Sqrt(v Value) (Value, error) {
	op, err := toNumericOperand(v)
	if err != nil {
		return nil, err
	}
	if op.isArray {
		var negative []float64
		for _, x := range op.arr {
			if x < 0 {
				negative = append(negative, x)
			}
		}
		if len(negative) > 0 {
			return nil, &NegativeSqrtError{Values: negative}
		}
	} else if op.scalar < 0 {
		return nil, &NegativeSqrtError{Values: []float64{op.scalar}}
	}
	return mapNumeric(v, math.Sqrt)
}

func mapNumeric(v Value, fn func(x float64) float64) (Value, error) {
	op, err := toNumericOperand(v)
	if err != nil {
		return nil, err
	}
	if !op.isArray {
		return FloatValue{Val: fn(op.scalar)}, nil
	}
	out := make([]float64, len(op.arr))
	for i, x := range op.arr {
		out[i] = fn(x)
	}
	return &FloatArrayValue{Vals: out}, nil
}

// ApplyLogical evaluates elementwise and/or over two boolean arrays.
// Non-boolean operands are a programming error in the tree.
func ApplyLogical(op string, left, right Value) (Value, error) {
	l, ok := left.(*BoolArrayValue)
	if !ok {
		return nil, fmt.Errorf("left operand of %q is %s, expected a boolean array", op, left.Kind())
	}
	r, ok := right.(*BoolArrayValue)
	if !ok {
		return nil, fmt.Errorf("right operand of %q is %s, expected a boolean array", op, right.Kind())
	}
	if len(l.Vals) != len(r.Vals) {
		return nil, fmt.Errorf("mask length mismatch: %d vs %d", len(l.Vals), len(r.Vals))
	}
	out := make([]bool, len(l.Vals))
	switch op {
	case "and":
		for i := range out {
			out[i] = l.Vals[i] && r.Vals[i]
		}
	case "or":
		for i := range out {
			out[i] = l.Vals[i] || r.Vals[i]
		}
	default:
		return nil, fmt.Errorf("unsupported logical operator %q", op)
	}
	return &BoolArrayValue{Vals: out}, nil
}

// Complement is the elementwise boolean not.
func Complement(v Value) (Value, error) {
	mask, ok := v.(*BoolArrayValue)
	if !ok {
		return nil, fmt.Errorf("operand of \"not\" is %s, expected a boolean array", v.Kind())
	}
	out := make([]bool, len(mask.Vals))
	for i, b := range mask.Vals {
		out[i] = !b
	}
	return &BoolArrayValue{Vals: out}, nil
}
