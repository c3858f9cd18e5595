package ast

// Short builder helpers used by tests and by the parser. Mirrors the
// constructor set in ast.go with less ceremony.

func Int(value int) *IntegerLiteral {
	return NewIntegerLiteral(value)
}

func Flt(value float64) *FloatLiteral {
	return NewFloatLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func List(elements ...Expression) *ListLiteral {
	return NewListLiteral(elements)
}

// Ints builds a ListLiteral from integer values; handy for `index 1 2 3`
// style value lists.
func Ints(values ...int) *ListLiteral {
	elements := make([]Expression, 0, len(values))
	for _, v := range values {
		elements = append(elements, NewIntegerLiteral(v))
	}
	return NewListLiteral(elements)
}

// Strs builds a ListLiteral from string values.
func Strs(values ...string) *ListLiteral {
	elements := make([]Expression, 0, len(values))
	for _, v := range values {
		elements = append(elements, NewStringLiteral(v))
	}
	return NewListLiteral(elements)
}

func KW(name string) *Keyword {
	return NewKeyword(name)
}

func Match(property string, value Expression) *PropertyMatch {
	return NewPropertyMatch(property, value)
}

func Modulo(property string, divisor, remainder int) *PropertyModulo {
	return NewPropertyModulo(property, divisor, remainder)
}

func NumProp(name string) *NumericProperty {
	return NewNumericProperty(name)
}

func And(left, right Expression) *Logical {
	return NewLogical(LogicalAnd, left, right)
}

func Or(left, right Expression) *Logical {
	return NewLogical(LogicalOr, left, right)
}

func Not(operand Expression) *Logical {
	return NewLogical(LogicalNot, operand, nil)
}

func Cmp(operator string, left, right Expression) *Comparison {
	return NewComparison(operator, left, right)
}

func Arith(operator string, left, right Expression) *Arithmetic {
	return NewArithmetic(operator, left, right)
}

func Fn(name string, operand Expression) *FunctionCall {
	return NewFunctionCall(name, operand)
}

func Neg(operand Expression) *UnaryMinus {
	return NewUnaryMinus(operand)
}

func Group(inner Expression) *Grouped {
	return NewGrouped(inner)
}

func Same(property string, selection Expression) *SameAs {
	return NewSameAs(property, selection)
}

func Win(cutoff float64, selection Expression) *Within {
	return NewWithin(cutoff, selection, false)
}

func ExWin(cutoff float64, selection Expression) *Within {
	return NewWithin(cutoff, selection, true)
}
