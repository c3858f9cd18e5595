package molecule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testMolecule builds a small hand-checkable system: an ALA-GLY dipeptide,
// one water and one sodium ion.
func testMolecule() *Molecule {
	return &Molecule{
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

func TestAnalyzeClassMasks(t *testing.T) {
	mol := testMolecule()
	a := Analyze(mol, mol.Bonds)

	assert.Equal(t, []bool{true, true, true, true, true, true, true, false, false, false}, a.Protein)
	assert.Equal(t, []bool{false, false, false, false, false, false, false, true, true, false}, a.Waters)
	assert.Equal(t, []bool{false, false, false, false, false, false, false, false, false, true}, a.Ions)
	assert.Equal(t, []bool{false, false, false, false, false, false, false, false, false, false}, a.Nucleic)
	assert.Equal(t, []bool{false, false, false, false, false, false, false, false, false, false}, a.Lipids)
}

func TestAnalyzeBackboneAndSidechain(t *testing.T) {
	mol := testMolecule()
	a := Analyze(mol, mol.Bonds)

	// CB is the only sidechain atom of the dipeptide.
	assert.Equal(t, []bool{true, true, false, true, true, true, true, false, false, false}, a.ProteinBB)
	assert.Equal(t, []bool{false, false, true, false, false, false, false, false, false, false}, a.Sidechain)
}

func TestAnalyzeFragments(t *testing.T) {
	mol := testMolecule()
	a := Analyze(mol, mol.Bonds)

	// Peptide, water and lone ion are three connected components.
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 0, 1, 1, 2}, a.Fragments)
}

func TestAnalyzeSequentialResidues(t *testing.T) {
	mol := testMolecule()
	a := Analyze(mol, mol.Bonds)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 1, 1, 2, 2, 3}, a.Residues)
}

func TestSequentialResiduesSplitOnChain(t *testing.T) {
	mol := testMolecule()
	// Same resid on both sides of a chain break still starts a new residue.
	mol.Resid = []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	a := Analyze(mol, mol.Bonds)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 0, 1, 1, 2}, a.Residues)
}

func TestAnalyzeNucleicBackbone(t *testing.T) {
	mol := &Molecule{
		Serial:    []int{1, 2, 3},
		Name:      []string{"P", "C4'", "N9"},
		Element:   []string{"P", "C", "N"},
		Resname:   []string{"DA", "DA", "DA"},
		Resid:     []int{1, 1, 1},
		Insertion: make([]string, 3),
		Chain:     []string{"B", "B", "B"},
		Segid:     []string{"N", "N", "N"},
		Altloc:    make([]string, 3),
		Mass:      make([]float64, 3),
		Beta:      make([]float64, 3),
		Charge:    make([]float64, 3),
		Coords:    [][][3]float64{{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}},
	}
	a := Analyze(mol, nil)
	assert.Equal(t, []bool{true, true, true}, a.Nucleic)
	assert.Equal(t, []bool{true, true, false}, a.NucleicBB)
}

func TestValidateCatchesColumnMismatch(t *testing.T) {
	mol := testMolecule()
	require.NoError(t, mol.Validate())

	mol.Name = mol.Name[:5]
	err := mol.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "column name")
}

func TestValidateCatchesBadFrame(t *testing.T) {
	mol := testMolecule()
	mol.Frame = 3
	require.Error(t, mol.Validate())
}

func TestValidateCatchesBadBond(t *testing.T) {
	mol := testMolecule()
	mol.Bonds = append(mol.Bonds, [2]int{0, 99})
	require.Error(t, mol.Validate())
}

func TestAxisCopiesColumn(t *testing.T) {
	mol := testMolecule()
	x := mol.Axis(0)
	require.Equal(t, 2.0, x[2])
	x[2] = 99
	assert.Equal(t, 2.0, mol.Coords[0][2][0], "Axis must return a copy")
}
