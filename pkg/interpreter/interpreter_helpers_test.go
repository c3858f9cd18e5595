package interpreter

import (
	"testing"

	"molsel/atomselect-go/pkg/molecule"
	"molsel/atomselect-go/pkg/runtime"
)

// dipeptideMolecule builds the shared test system: an ALA-GLY dipeptide
// (atoms 0-6), one water (7-8) and one sodium ion (9), laid out along x.
func dipeptideMolecule() *molecule.Molecule {
	return &molecule.Molecule{
		Serial:    []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		Name:      []string{"N", "CA", "CB", "C", "O", "N", "CA", "O", "H1", "NA"},
		Element:   []string{"N", "C", "C", "C", "O", "N", "C", "O", "H", "NA"},
		Resname:   []string{"ALA", "ALA", "ALA", "ALA", "ALA", "GLY", "GLY", "HOH", "HOH", "SOD"},
		Resid:     []int{1, 1, 1, 1, 1, 2, 2, 3, 3, 4},
		Insertion: make([]string, 10),
		Chain:     []string{"A", "A", "A", "A", "A", "A", "A", "W", "W", "I"},
		Segid:     []string{"P", "P", "P", "P", "P", "P", "P", "W", "W", "I"},
		Altloc:    make([]string, 10),
		Mass:      []float64{14, 12, 12, 12, 16, 14, 12, 16, 1, 23},
		Beta:      []float64{0, -1, 2, 0, 0, -2, 0, 0, 0, 0},
		Charge:    make([]float64, 10),
		Coords: [][][3]float64{{
			{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {3, 0, 0}, {4, 0, 0},
			{10, 0, 0}, {11, 0, 0}, {20, 0, 0}, {20.5, 0, 0}, {30, 0, 0},
		}},
		Bonds: [][2]int{{0, 1}, {1, 2}, {1, 3}, {3, 4}, {3, 5}, {5, 6}, {7, 8}},
	}
}

func newTestEvaluator() *Evaluator {
	mol := dipeptideMolecule()
	return New(mol, molecule.Analyze(mol, mol.Bonds))
}

func requireMask(t *testing.T, v runtime.Value, want []bool) {
	t.Helper()
	mask, ok := v.(*runtime.BoolArrayValue)
	if !ok {
		t.Fatalf("expected a mask, got %s", v.Kind())
	}
	if len(mask.Vals) != len(want) {
		t.Fatalf("expected mask of length %d, got %d", len(want), len(mask.Vals))
	}
	for i := range want {
		if mask.Vals[i] != want[i] {
			t.Fatalf("atom %d: expected %v, got %v (mask %v)", i, want[i], mask.Vals[i], mask.Vals)
		}
	}
}

func requireKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	got, ok := KindOf(err)
	if !ok {
		t.Fatalf("expected an EvalError, got %T: %v", err, err)
	}
	if got != kind {
		t.Fatalf("expected %s error, got %s: %v", kind, got, err)
	}
}

func maskSubset(sub, super []bool) bool {
	for i := range sub {
		if sub[i] && !super[i] {
			return false
		}
	}
	return true
}
