package ast

// Package ast defines the node set of the atom-selection language. Trees are
// produced by pkg/parser (or built directly with the helpers in dsl.go) and
// consumed read-only by the evaluator; nodes are never mutated after
// construction.

type NodeType string

const (
	NodeIntegerLiteral  NodeType = "IntegerLiteral"
	NodeFloatLiteral    NodeType = "FloatLiteral"
	NodeStringLiteral   NodeType = "StringLiteral"
	NodeListLiteral     NodeType = "ListLiteral"
	NodeKeyword         NodeType = "Keyword"
	NodePropertyMatch   NodeType = "PropertyMatch"
	NodePropertyModulo  NodeType = "PropertyModulo"
	NodeNumericProperty NodeType = "NumericProperty"
	NodeLogical         NodeType = "Logical"
	NodeComparison      NodeType = "Comparison"
	NodeArithmetic      NodeType = "Arithmetic"
	NodeFunctionCall    NodeType = "FunctionCall"
	NodeUnaryMinus      NodeType = "UnaryMinus"
	NodeGrouped         NodeType = "Grouped"
	NodeSameAs          NodeType = "SameAs"
	NodeWithin          NodeType = "Within"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Expression is any node that evaluates to a value (mask, array, scalar or
// list). Every node kind in this language is an expression.
type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

// Literal marks nodes that carry a constant payload and evaluate to
// themselves.
type Literal interface {
	Expression
	literalNode()
}

type literalMarker struct{}

func (literalMarker) literalNode() {}

//-----------------------------------------------------------------------------
// Literals
//-----------------------------------------------------------------------------

type IntegerLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value int `json:"value"`
}

func NewIntegerLiteral(value int) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value float64 `json:"value"`
}

func NewFloatLiteral(value float64) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

// ListLiteral holds the value list of a property test, e.g. the two resnames
// in `resname ACE NME`. Elements are always literals once the parser is done;
// the field is []Expression so the evaluator can reject a bad tree with a
// malformed-AST error instead of panicking.
type ListLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Elements []Expression `json:"elements"`
}

func NewListLiteral(elements []Expression) *ListLiteral {
	return &ListLiteral{nodeImpl: newNodeImpl(NodeListLiteral), Elements: elements}
}

//-----------------------------------------------------------------------------
// Selection nodes
//-----------------------------------------------------------------------------

// Keyword selects a fixed structural class: protein, nucleic, water(s),
// lipid(s), ion(s), backbone, sidechain, hydrogen, noh.
type Keyword struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewKeyword(name string) *Keyword {
	return &Keyword{nodeImpl: newNodeImpl(NodeKeyword), Name: name}
}

// PropertyMatch tests a categorical (string or integer) per-atom property
// against one value or a value list, e.g. `name CA` or `resname ACE NME`.
type PropertyMatch struct {
	nodeImpl
	expressionMarker

	Property string     `json:"property"`
	Value    Expression `json:"value"`
}

func NewPropertyMatch(property string, value Expression) *PropertyMatch {
	return &PropertyMatch{nodeImpl: newNodeImpl(NodePropertyMatch), Property: property, Value: value}
}

// PropertyModulo selects atoms where property % divisor == remainder,
// e.g. `serial % 2 == 0`.
type PropertyModulo struct {
	nodeImpl
	expressionMarker

	Property  string `json:"property"`
	Divisor   int    `json:"divisor"`
	Remainder int    `json:"remainder"`
}

func NewPropertyModulo(property string, divisor, remainder int) *PropertyModulo {
	return &PropertyModulo{nodeImpl: newNodeImpl(NodePropertyModulo), Property: property, Divisor: divisor, Remainder: remainder}
}

// NumericProperty names a per-atom numeric array: a coordinate axis (x, y, z)
// or a numeric property such as mass or beta.
type NumericProperty struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewNumericProperty(name string) *NumericProperty {
	return &NumericProperty{nodeImpl: newNodeImpl(NodeNumericProperty), Name: name}
}

type LogicalOperator string

const (
	LogicalAnd LogicalOperator = "and"
	LogicalOr  LogicalOperator = "or"
	LogicalNot LogicalOperator = "not"
)

// Logical combines boolean masks. Right is nil for the unary "not".
type Logical struct {
	nodeImpl
	expressionMarker

	Operator LogicalOperator `json:"operator"`
	Left     Expression      `json:"left"`
	Right    Expression      `json:"right,omitempty"`
}

func NewLogical(operator LogicalOperator, left, right Expression) *Logical {
	return &Logical{nodeImpl: newNodeImpl(NodeLogical), Operator: operator, Left: left, Right: right}
}

// Comparison compares two numeric operands elementwise: = < > <= >=.
// The parser normalizes "==" to "=".
type Comparison struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewComparison(operator string, left, right Expression) *Comparison {
	return &Comparison{nodeImpl: newNodeImpl(NodeComparison), Operator: operator, Left: left, Right: right}
}

// Arithmetic is an elementwise binary numeric operation: + - * /.
type Arithmetic struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewArithmetic(operator string, left, right Expression) *Arithmetic {
	return &Arithmetic{nodeImpl: newNodeImpl(NodeArithmetic), Operator: operator, Left: left, Right: right}
}

// FunctionCall applies abs, sqr or sqrt elementwise to a numeric operand.
type FunctionCall struct {
	nodeImpl
	expressionMarker

	Name    string     `json:"name"`
	Operand Expression `json:"operand"`
}

func NewFunctionCall(name string, operand Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Name: name, Operand: operand}
}

type UnaryMinus struct {
	nodeImpl
	expressionMarker

	Operand Expression `json:"operand"`
}

func NewUnaryMinus(operand Expression) *UnaryMinus {
	return &UnaryMinus{nodeImpl: newNodeImpl(NodeUnaryMinus), Operand: operand}
}

// Grouped is an explicit parenthesization; evaluation passes through.
type Grouped struct {
	nodeImpl
	expressionMarker

	Inner Expression `json:"inner"`
}

func NewGrouped(inner Expression) *Grouped {
	return &Grouped{nodeImpl: newNodeImpl(NodeGrouped), Inner: inner}
}

// SameAs expands a selection to all atoms sharing a group value with it:
// `same fragment as lipid`, `same residue as within 8 of resid 100`.
type SameAs struct {
	nodeImpl
	expressionMarker

	Property  string     `json:"property"`
	Selection Expression `json:"selection"`
}

func NewSameAs(property string, selection Expression) *SameAs {
	return &SameAs{nodeImpl: newNodeImpl(NodeSameAs), Property: property, Selection: selection}
}

// Within selects atoms within Cutoff of any atom matched by Selection.
// Exclusive (`exwithin`) removes the source atoms from the result.
type Within struct {
	nodeImpl
	expressionMarker

	Cutoff    float64    `json:"cutoff"`
	Selection Expression `json:"selection"`
	Exclusive bool       `json:"exclusive"`
}

func NewWithin(cutoff float64, selection Expression, exclusive bool) *Within {
	return &Within{nodeImpl: newNodeImpl(NodeWithin), Cutoff: cutoff, Selection: selection, Exclusive: exclusive}
}
