// Package checker statically validates selection trees without a molecule:
// unknown names, operator arity and operand classes are all reportable
// before any evaluation. Tooling uses it to lint selections up front; the
// evaluator performs its own checks against the actual molecule.
package checker

import (
	"fmt"

	"molsel/atomselect-go/pkg/ast"
)

// Diagnostic is one static finding against a selection tree.
type Diagnostic struct {
	Message string
	Node    ast.Node
}

// valueClass is the statically known result class of a node.
type valueClass int

const (
	classInvalid valueClass = iota
	classMask
	classNumeric
	classString
	classList
)

var keywordNames = map[string]bool{
	"lipid": true, "lipids": true,
	"ion": true, "ions": true,
	"water": true, "waters": true,
	"hydrogen": true, "noh": true,
	"backbone": true, "sidechain": true,
	"protein": true, "nucleic": true,
}

var stringPropNames = map[string]bool{
	"name": true, "element": true, "resname": true, "chain": true,
	"segid": true, "segname": true, "altloc": true, "insertion": true,
}

var intPropNames = map[string]bool{
	"serial": true, "resid": true, "index": true, "residue": true,
}

var numericPropNames = map[string]bool{
	"mass": true, "charge": true, "occupancy": true, "beta": true,
	"x": true, "y": true, "z": true,
}

var functionNames = map[string]bool{
	"abs": true, "sqr": true, "sqrt": true,
}

var groupPropNames = map[string]bool{
	"fragment": true, "residue": true,
	"serial": true, "resid": true,
	"name": true, "element": true, "resname": true, "chain": true,
	"segid": true, "segname": true, "altloc": true, "insertion": true,
	"mass": true, "charge": true, "occupancy": true, "beta": true,
}

// Checker traverses selection trees and records diagnostics.
type Checker struct {
	diags []Diagnostic
}

// New returns a checker instance.
func New() *Checker {
	return &Checker{}
}

// Check validates one selection tree and returns every finding. The tree as
// a whole must produce an atom mask.
func (c *Checker) Check(tree ast.Expression) []Diagnostic {
	c.diags = nil
	if class := c.classify(tree); class != classMask && class != classInvalid {
		c.report(tree, "selection does not produce an atom mask")
	}
	return c.diags
}

// Check is the package-level one-shot form.
func Check(tree ast.Expression) []Diagnostic {
	return New().Check(tree)
}

func (c *Checker) report(node ast.Node, format string, args ...any) {
	c.diags = append(c.diags, Diagnostic{Message: fmt.Sprintf(format, args...), Node: node})
}

func (c *Checker) classify(node ast.Expression) valueClass {
	if node == nil {
		c.report(nil, "nil node")
		return classInvalid
	}
	switch n := node.(type) {
	case *ast.IntegerLiteral, *ast.FloatLiteral:
		return classNumeric
	case *ast.StringLiteral:
		return classString
	case *ast.ListLiteral:
		return c.classifyList(n)
	case *ast.Keyword:
		if !keywordNames[n.Name] {
			c.report(n, "unknown keyword %q", n.Name)
			return classInvalid
		}
		return classMask
	case *ast.PropertyMatch:
		return c.classifyMatch(n)
	case *ast.PropertyModulo:
		if !intPropNames[n.Property] {
			c.report(n, "modulo needs an integer property, got %q", n.Property)
			return classInvalid
		}
		if n.Divisor == 0 {
			c.report(n, "zero divisor in modulo test")
			return classInvalid
		}
		return classMask
	case *ast.NumericProperty:
		if !numericPropNames[n.Name] && !intPropNames[n.Name] {
			c.report(n, "unknown numeric property %q", n.Name)
			return classInvalid
		}
		return classNumeric
	case *ast.Logical:
		return c.classifyLogical(n)
	case *ast.Comparison:
		c.expect(n.Left, classNumeric, "left of %q", n.Operator)
		c.expect(n.Right, classNumeric, "right of %q", n.Operator)
		return classMask
	case *ast.Arithmetic:
		c.expect(n.Left, classNumeric, "left of %q", n.Operator)
		c.expect(n.Right, classNumeric, "right of %q", n.Operator)
		return classNumeric
	case *ast.FunctionCall:
		if !functionNames[n.Name] {
			c.report(n, "unknown function %q", n.Name)
			return classInvalid
		}
		c.expect(n.Operand, classNumeric, "operand of %s()", n.Name)
		return classNumeric
	case *ast.UnaryMinus:
		c.expect(n.Operand, classNumeric, "operand of unary minus")
		return classNumeric
	case *ast.Grouped:
		return c.classify(n.Inner)
	case *ast.SameAs:
		if !groupPropNames[n.Property] {
			c.report(n, "property %q has no grouping semantics", n.Property)
		}
		c.expect(n.Selection, classMask, "selection of \"same %s as\"", n.Property)
		return classMask
	case *ast.Within:
		if n.Cutoff < 0 {
			c.report(n, "negative cutoff %g", n.Cutoff)
		}
		c.expect(n.Selection, classMask, "selection of a distance test")
		return classMask
	default:
		c.report(node, "unsupported node kind %s", node.NodeType())
		return classInvalid
	}
}

func (c *Checker) classifyList(n *ast.ListLiteral) valueClass {
	for _, el := range n.Elements {
		switch c.classify(el) {
		case classNumeric, classString:
		case classList:
			c.report(n, "nested value list")
		case classInvalid:
		default:
			c.report(n, "list element %s is not a literal", el.NodeType())
		}
	}
	return classList
}

func (c *Checker) classifyMatch(n *ast.PropertyMatch) valueClass {
	isString := stringPropNames[n.Property]
	isInt := intPropNames[n.Property]
	if !isString && !isInt {
		c.report(n, "unknown property %q", n.Property)
		return classInvalid
	}
	switch class := c.classify(n.Value); class {
	case classList, classInvalid:
	case classString:
	case classNumeric:
		if _, isFloat := n.Value.(*ast.FloatLiteral); isFloat && isInt {
			c.report(n, "property %q takes integer values", n.Property)
		}
	default:
		c.report(n, "value of %q test is not a literal", n.Property)
	}
	return classMask
}

func (c *Checker) classifyLogical(n *ast.Logical) valueClass {
	switch n.Operator {
	case ast.LogicalNot:
		if n.Right != nil {
			c.report(n, "\"not\" takes one operand")
		}
		c.expect(n.Left, classMask, "operand of \"not\"")
	case ast.LogicalAnd, ast.LogicalOr:
		if n.Right == nil {
			c.report(n, "%q needs two operands", n.Operator)
		} else {
			c.expect(n.Right, classMask, "right of %q", n.Operator)
		}
		c.expect(n.Left, classMask, "left of %q", n.Operator)
	default:
		c.report(n, "unknown logical operator %q", n.Operator)
	}
	return classMask
}

func (c *Checker) expect(node ast.Expression, want valueClass, format string, args ...any) {
	got := c.classify(node)
	if got == want || got == classInvalid {
		return
	}
	where := fmt.Sprintf(format, args...)
	switch want {
	case classMask:
		c.report(node, "%s is not an atom mask", where)
	case classNumeric:
		c.report(node, "%s is not numeric", where)
	default:
		c.report(node, "%s has the wrong type", where)
	}
}
