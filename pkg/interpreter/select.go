package interpreter

import (
	"molsel/atomselect-go/pkg/ast"
	"molsel/atomselect-go/pkg/molecule"
	"molsel/atomselect-go/pkg/parser"
	"molsel/atomselect-go/pkg/runtime"
)

// Select evaluates selection text against a molecule and returns the atom
// mask. A nil analysis is computed on the fly from the molecule's bond list;
// callers evaluating many selections should compute it once with
// molecule.Analyze and pass it in.
func Select(mol *molecule.Molecule, analysis *molecule.Analysis, selection string) ([]bool, error) {
	tree, err := parser.Parse(selection)
	if err != nil {
		return nil, &EvalError{Kind: ParseFailure, Detail: selection, Err: err}
	}
	return SelectAST(mol, analysis, tree)
}

// SelectAST evaluates a prebuilt selection tree. The final value must be a
// mask covering every atom; anything else is a type mismatch (a bare numeric
// expression is not a selection).
func SelectAST(mol *molecule.Molecule, analysis *molecule.Analysis, tree ast.Expression) ([]bool, error) {
	if analysis == nil {
		analysis = molecule.Analyze(mol, mol.Bonds)
	}
	value, err := New(mol, analysis).Evaluate(tree)
	if err != nil {
		return nil, err
	}
	mask, ok := value.(*runtime.BoolArrayValue)
	if !ok {
		return nil, evalErrf(TypeMismatch, tree, "selection result is %s, expected a mask", value.Kind())
	}
	if len(mask.Vals) != mol.NumAtoms() {
		return nil, evalErrf(TypeMismatch, tree, "selection mask has length %d, expected %d", len(mask.Vals), mol.NumAtoms())
	}
	return mask.Vals, nil
}
