package checker

import (
	"strings"
	"testing"

	"molsel/atomselect-go/pkg/ast"
)

func requireClean(t *testing.T, tree ast.Expression) {
	t.Helper()
	if diags := Check(tree); len(diags) > 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
}

func requireDiagnostic(t *testing.T, tree ast.Expression, fragment string) {
	t.Helper()
	diags := Check(tree)
	if len(diags) == 0 {
		t.Fatalf("expected a diagnostic containing %q, got none", fragment)
	}
	for _, d := range diags {
		if strings.Contains(d.Message, fragment) {
			return
		}
	}
	t.Fatalf("no diagnostic contains %q: %v", fragment, diags)
}

func TestCheckAcceptsWellFormedSelections(t *testing.T) {
	trees := []ast.Expression{
		ast.KW("protein"),
		ast.And(ast.KW("protein"), ast.Match("name", ast.Str("CA"))),
		ast.Not(ast.KW("water")),
		ast.Match("resid", ast.Ints(1, 2, 3)),
		ast.Modulo("serial", 2, 0),
		ast.Cmp("<", ast.Fn("abs", ast.NumProp("beta")), ast.Flt(1)),
		ast.Cmp(">", ast.Group(ast.Arith("+", ast.NumProp("x"), ast.NumProp("y"))), ast.Fn("sqr", ast.Int(5))),
		ast.Same("residue", ast.Match("name", ast.Str("CB"))),
		ast.Win(5, ast.KW("water")),
		ast.ExWin(3.5, ast.Not(ast.KW("hydrogen"))),
		ast.Cmp("=", ast.Neg(ast.NumProp("z")), ast.Int(0)),
	}
	for _, tree := range trees {
		requireClean(t, tree)
	}
}

func TestCheckReportsUnknownNames(t *testing.T) {
	requireDiagnostic(t, ast.KW("frobnicate"), `unknown keyword "frobnicate"`)
	requireDiagnostic(t, ast.Match("frobnicate", ast.Str("X")), `unknown property "frobnicate"`)
	requireDiagnostic(t, ast.Cmp("<", ast.NumProp("frobnicate"), ast.Int(1)), `unknown numeric property`)
	requireDiagnostic(t, ast.Cmp("<", ast.Fn("cbrt", ast.NumProp("x")), ast.Int(1)), `unknown function "cbrt"`)
}

func TestCheckReportsClassMismatches(t *testing.T) {
	requireDiagnostic(t, ast.And(ast.KW("protein"), ast.Int(1)), "is not an atom mask")
	requireDiagnostic(t, ast.Not(ast.NumProp("x")), "is not an atom mask")
	requireDiagnostic(t, ast.Cmp("<", ast.KW("protein"), ast.Int(1)), "is not numeric")
	requireDiagnostic(t, ast.Win(5, ast.NumProp("x")), "is not an atom mask")
	requireDiagnostic(t, ast.NumProp("x"), "does not produce an atom mask")
}

func TestCheckReportsMalformedNodes(t *testing.T) {
	requireDiagnostic(t, ast.NewLogical(ast.LogicalNot, ast.KW("protein"), ast.KW("water")), "takes one operand")
	requireDiagnostic(t, ast.NewLogical(ast.LogicalAnd, ast.KW("protein"), nil), "needs two operands")
	requireDiagnostic(t, ast.Modulo("serial", 0, 1), "zero divisor")
	requireDiagnostic(t, ast.Modulo("name", 2, 0), "modulo needs an integer property")
	requireDiagnostic(t, ast.Match("name", ast.List(ast.Ints(1, 2))), "nested value list")
	requireDiagnostic(t, ast.Same("index", ast.KW("protein")), "no grouping semantics")
	requireDiagnostic(t, ast.NewWithin(-2, ast.KW("water"), false), "negative cutoff")
}

func TestCheckCollectsEveryFinding(t *testing.T) {
	tree := ast.And(ast.KW("frobnicate"), ast.Match("bogus", ast.Str("X")))
	diags := Check(tree)
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d: %v", len(diags), diags)
	}
}
