package runtime

import "fmt"

// Kind identifies the evaluation value category.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
	KindList
	KindBoolArray
	KindIntArray
	KindFloatArray
	KindStringArray
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindBoolArray:
		return "bool_array"
	case KindIntArray:
		return "int_array"
	case KindFloatArray:
		return "float_array"
	case KindStringArray:
		return "string_array"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the polymorphic result flowing between AST nodes during one
// evaluation. Array values arising from per-atom properties always have
// length equal to the molecule's atom count; scalars and lists never do
// until broadcast against an array.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars and lists
//-----------------------------------------------------------------------------

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type IntValue struct {
	Val int
}

func (v IntValue) Kind() Kind { return KindInt }

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// ListValue carries the value list of a property test. Elements are scalar
// values (int, float or string); nesting is a malformed tree.
type ListValue struct {
	Elements []Value
}

func (v *ListValue) Kind() Kind { return KindList }

//-----------------------------------------------------------------------------
// Per-atom arrays
//-----------------------------------------------------------------------------

type BoolArrayValue struct {
	Vals []bool
}

func (v *BoolArrayValue) Kind() Kind { return KindBoolArray }

type IntArrayValue struct {
	Vals []int
}

func (v *IntArrayValue) Kind() Kind { return KindIntArray }

type FloatArrayValue struct {
	Vals []float64
}

func (v *FloatArrayValue) Kind() Kind { return KindFloatArray }

type StringArrayValue struct {
	Vals []string
}

func (v *StringArrayValue) Kind() Kind { return KindStringArray }

// IsNumeric reports whether a value can participate in arithmetic and
// comparisons.
func IsNumeric(v Value) bool {
	switch v.Kind() {
	case KindInt, KindFloat, KindIntArray, KindFloatArray:
		return true
	}
	return false
}

// IsArray reports whether a value is a per-atom array.
func IsArray(v Value) bool {
	switch v.Kind() {
	case KindBoolArray, KindIntArray, KindFloatArray, KindStringArray:
		return true
	}
	return false
}
