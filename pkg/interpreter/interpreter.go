// Package interpreter evaluates atom-selection ASTs against a molecule and
// its precomputed structural analysis, producing one boolean per atom.
// Evaluation is synchronous and purely functional over its inputs: the
// molecule and analysis are only read, every node result is freshly
// allocated, and concurrent evaluations over one shared molecule/analysis
// pair need no synchronization.
package interpreter

import (
	"errors"

	"molsel/atomselect-go/pkg/ast"
	"molsel/atomselect-go/pkg/molecule"
	"molsel/atomselect-go/pkg/runtime"
)

// Evaluator walks selection trees bottom-up for one molecule/analysis pair.
type Evaluator struct {
	mol      *molecule.Molecule
	analysis *molecule.Analysis
}

// New returns an evaluator bound to a molecule and its analysis.
func New(mol *molecule.Molecule, analysis *molecule.Analysis) *Evaluator {
	return &Evaluator{mol: mol, analysis: analysis}
}

// Evaluate resolves one AST node to its value: every child is evaluated
// first (post-order), then the node's own semantics apply. Literals pass
// through unchanged.
func (e *Evaluator) Evaluate(node ast.Expression) (runtime.Value, error) {
	if node == nil {
		return nil, evalErrf(MalformedAST, nil, "nil node")
	}
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntValue{Val: n.Value}, nil
	case *ast.FloatLiteral:
		return runtime.FloatValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.ListLiteral:
		return e.evaluateList(n)
	case *ast.Keyword:
		return e.evaluateKeyword(n)
	case *ast.PropertyMatch:
		return e.evaluatePropertyMatch(n)
	case *ast.PropertyModulo:
		return e.evaluatePropertyModulo(n)
	case *ast.NumericProperty:
		return e.evaluateNumericProperty(n)
	case *ast.Logical:
		return e.evaluateLogical(n)
	case *ast.Comparison:
		return e.evaluateComparison(n)
	case *ast.Arithmetic:
		return e.evaluateArithmetic(n)
	case *ast.FunctionCall:
		return e.evaluateFunctionCall(n)
	case *ast.UnaryMinus:
		operand, err := e.Evaluate(n.Operand)
		if err != nil {
			return nil, err
		}
		result, err := runtime.Negate(operand)
		if err != nil {
			return nil, wrapEvalErr(TypeMismatch, n, err)
		}
		return result, nil
	case *ast.Grouped:
		return e.Evaluate(n.Inner)
	case *ast.SameAs:
		return e.expandSameAs(n)
	case *ast.Within:
		return e.withinCutoff(n)
	default:
		return nil, evalErrf(UnknownOperation, node, "unsupported node kind %s", node.NodeType())
	}
}

func (e *Evaluator) evaluateList(n *ast.ListLiteral) (runtime.Value, error) {
	elements := make([]runtime.Value, 0, len(n.Elements))
	for _, el := range n.Elements {
		if el == nil {
			return nil, evalErrf(MalformedAST, n, "nil list element")
		}
		if _, ok := el.(ast.Literal); !ok {
			return nil, evalErrf(MalformedAST, n, "list element %s is not a literal", el.NodeType())
		}
		val, err := e.Evaluate(el)
		if err != nil {
			return nil, err
		}
		elements = append(elements, val)
	}
	return &runtime.ListValue{Elements: elements}, nil
}

func (e *Evaluator) evaluateKeyword(n *ast.Keyword) (runtime.Value, error) {
	switch n.Name {
	case "lipid", "lipids":
		return copyMask(e.analysis.Lipids), nil
	case "ion", "ions":
		return copyMask(e.analysis.Ions), nil
	case "water", "waters":
		return copyMask(e.analysis.Waters), nil
	case "hydrogen":
		return e.elementMask("H", true), nil
	case "noh":
		return e.elementMask("H", false), nil
	case "backbone":
		out := make([]bool, e.mol.NumAtoms())
		for i := range out {
			out[i] = e.analysis.ProteinBB[i] || e.analysis.NucleicBB[i]
		}
		return &runtime.BoolArrayValue{Vals: out}, nil
	case "sidechain":
		return copyMask(e.analysis.Sidechain), nil
	case "protein":
		return copyMask(e.analysis.Protein), nil
	case "nucleic":
		return copyMask(e.analysis.Nucleic), nil
	default:
		return nil, evalErrf(UnknownKeyword, n, "%q", n.Name)
	}
}

func (e *Evaluator) elementMask(element string, equal bool) *runtime.BoolArrayValue {
	out := make([]bool, e.mol.NumAtoms())
	for i, el := range e.mol.Element {
		out[i] = (el == element) == equal
	}
	return &runtime.BoolArrayValue{Vals: out}
}

func (e *Evaluator) evaluatePropertyMatch(n *ast.PropertyMatch) (runtime.Value, error) {
	property, err := e.resolveProperty(n, n.Property)
	if err != nil {
		return nil, err
	}
	query, err := e.Evaluate(n.Value)
	if err != nil {
		return nil, err
	}
	result, err := runtime.Matches(property, query)
	if err != nil {
		return nil, wrapEvalErr(TypeMismatch, n, err)
	}
	return result, nil
}

func (e *Evaluator) evaluatePropertyModulo(n *ast.PropertyModulo) (runtime.Value, error) {
	property, err := e.resolveProperty(n, n.Property)
	if err != nil {
		return nil, err
	}
	ints, ok := property.(*runtime.IntArrayValue)
	if !ok {
		return nil, evalErrf(TypeMismatch, n, "property %q is %s, modulo needs an integer property", n.Property, property.Kind())
	}
	if n.Divisor == 0 {
		return nil, evalErrf(MalformedAST, n, "zero divisor in modulo test")
	}
	out := make([]bool, len(ints.Vals))
	for i, v := range ints.Vals {
		out[i] = floorMod(v, n.Divisor) == n.Remainder
	}
	return &runtime.BoolArrayValue{Vals: out}, nil
}

// floorMod is the floored modulo: the result has the divisor's sign, so
// negative serials behave the same as in the reference semantics.
func floorMod(x, d int) int {
	m := x % d
	if m != 0 && (m < 0) != (d < 0) {
		m += d
	}
	return m
}

func (e *Evaluator) evaluateNumericProperty(n *ast.NumericProperty) (runtime.Value, error) {
	switch n.Name {
	case "x":
		return &runtime.FloatArrayValue{Vals: e.mol.Axis(0)}, nil
	case "y":
		return &runtime.FloatArrayValue{Vals: e.mol.Axis(1)}, nil
	case "z":
		return &runtime.FloatArrayValue{Vals: e.mol.Axis(2)}, nil
	}
	property, err := e.resolveProperty(n, n.Name)
	if err != nil {
		return nil, err
	}
	if !runtime.IsNumeric(property) {
		return nil, evalErrf(TypeMismatch, n, "property %q is %s, expected a numeric array", n.Name, property.Kind())
	}
	return property, nil
}

func (e *Evaluator) evaluateLogical(n *ast.Logical) (runtime.Value, error) {
	left, err := e.Evaluate(n.Left)
	if err != nil {
		return nil, err
	}
	if n.Operator == ast.LogicalNot {
		if n.Right != nil {
			return nil, evalErrf(MalformedAST, n, "\"not\" takes one operand")
		}
		result, err := runtime.Complement(left)
		if err != nil {
			return nil, wrapEvalErr(TypeMismatch, n, err)
		}
		return result, nil
	}
	if n.Right == nil {
		return nil, evalErrf(MalformedAST, n, "%q needs two operands", n.Operator)
	}
	right, err := e.Evaluate(n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case ast.LogicalAnd, ast.LogicalOr:
		result, err := runtime.ApplyLogical(string(n.Operator), left, right)
		if err != nil {
			return nil, wrapEvalErr(TypeMismatch, n, err)
		}
		return result, nil
	default:
		return nil, evalErrf(UnknownOperation, n, "logical operator %q", n.Operator)
	}
}

func (e *Evaluator) evaluateComparison(n *ast.Comparison) (runtime.Value, error) {
	left, err := e.Evaluate(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.Evaluate(n.Right)
	if err != nil {
		return nil, err
	}
	result, err := runtime.ApplyComparison(n.Operator, left, right)
	if err != nil {
		return nil, wrapEvalErr(TypeMismatch, n, err)
	}
	return result, nil
}

func (e *Evaluator) evaluateArithmetic(n *ast.Arithmetic) (runtime.Value, error) {
	left, err := e.Evaluate(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.Evaluate(n.Right)
	if err != nil {
		return nil, err
	}
	result, err := runtime.ApplyArithmetic(n.Operator, left, right)
	if err != nil {
		return nil, wrapEvalErr(TypeMismatch, n, err)
	}
	return result, nil
}

func (e *Evaluator) evaluateFunctionCall(n *ast.FunctionCall) (runtime.Value, error) {
	operand, err := e.Evaluate(n.Operand)
	if err != nil {
		return nil, err
	}
	var result runtime.Value
	switch n.Name {
	case "abs":
		result, err = runtime.Abs(operand)
	case "sqr":
		result, err = runtime.Sqr(operand)
	case "sqrt":
		result, err = runtime.Sqrt(operand)
	default:
		return nil, evalErrf(UnknownOperation, n, "function %q", n.Name)
	}
	if err != nil {
		var sqrtErr *runtime.NegativeSqrtError
		if errors.As(err, &sqrtErr) {
			return nil, wrapEvalErr(NegativeSqrtArgument, n, err)
		}
		return nil, wrapEvalErr(TypeMismatch, n, err)
	}
	return result, nil
}

func copyMask(mask []bool) *runtime.BoolArrayValue {
	out := make([]bool, len(mask))
	copy(out, mask)
	return &runtime.BoolArrayValue{Vals: out}
}
