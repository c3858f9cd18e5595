package molecule

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Snapshot is the YAML on-disk form of a molecule, used by the CLI and the
// test fixtures. It is deliberately not a structure-file format: columns are
// written out verbatim, one list per property, with omitted columns
// defaulting to zeros/empty strings.
type snapshotDoc struct {
	Frame int               `yaml:"frame"`
	Atoms snapshotColumns   `yaml:"atoms"`
	Coord [][][3]float64    `yaml:"coords"`
	Bonds [][2]int          `yaml:"bonds"`
}

type snapshotColumns struct {
	Serial    []int     `yaml:"serial"`
	Name      []string  `yaml:"name"`
	Element   []string  `yaml:"element"`
	Resname   []string  `yaml:"resname"`
	Resid     []int     `yaml:"resid"`
	Insertion []string  `yaml:"insertion"`
	Chain     []string  `yaml:"chain"`
	Segid     []string  `yaml:"segid"`
	Altloc    []string  `yaml:"altloc"`
	Mass      []float64 `yaml:"mass"`
	Beta      []float64 `yaml:"beta"`
	Charge    []float64 `yaml:"charge"`
}

// LoadSnapshot reads a YAML molecule snapshot from path.
func LoadSnapshot(path string) (*Molecule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	mol, err := DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return mol, nil
}

// DecodeSnapshot parses a YAML molecule snapshot and fills defaulted
// columns so the result satisfies Molecule.Validate.
func DecodeSnapshot(data []byte) (*Molecule, error) {
	var doc snapshotDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	n := snapshotAtomCount(&doc)
	if n == 0 {
		return nil, fmt.Errorf("snapshot declares no atoms")
	}
	mol := &Molecule{
		Serial:    doc.Atoms.Serial,
		Name:      doc.Atoms.Name,
		Element:   doc.Atoms.Element,
		Resname:   doc.Atoms.Resname,
		Resid:     doc.Atoms.Resid,
		Insertion: doc.Atoms.Insertion,
		Chain:     doc.Atoms.Chain,
		Segid:     doc.Atoms.Segid,
		Altloc:    doc.Atoms.Altloc,
		Mass:      doc.Atoms.Mass,
		Beta:      doc.Atoms.Beta,
		Charge:    doc.Atoms.Charge,
		Coords:    doc.Coord,
		Frame:     doc.Frame,
		Bonds:     doc.Bonds,
	}
	if mol.Serial == nil {
		mol.Serial = make([]int, n)
		for i := range mol.Serial {
			mol.Serial[i] = i + 1
		}
	}
	fillStrings(&mol.Name, n)
	fillStrings(&mol.Element, n)
	fillStrings(&mol.Resname, n)
	fillStrings(&mol.Insertion, n)
	fillStrings(&mol.Chain, n)
	fillStrings(&mol.Segid, n)
	fillStrings(&mol.Altloc, n)
	fillInts(&mol.Resid, n)
	fillFloats(&mol.Mass, n)
	fillFloats(&mol.Beta, n)
	fillFloats(&mol.Charge, n)
	if len(mol.Coords) == 0 {
		mol.Coords = [][][3]float64{make([][3]float64, n)}
	}
	if err := mol.Validate(); err != nil {
		return nil, err
	}
	return mol, nil
}

func snapshotAtomCount(doc *snapshotDoc) int {
	if l := len(doc.Atoms.Serial); l > 0 {
		return l
	}
	if l := len(doc.Atoms.Name); l > 0 {
		return l
	}
	if l := len(doc.Atoms.Element); l > 0 {
		return l
	}
	if l := len(doc.Atoms.Resname); l > 0 {
		return l
	}
	if len(doc.Coord) > 0 {
		return len(doc.Coord[0])
	}
	return 0
}

func fillStrings(col *[]string, n int) {
	if *col == nil {
		*col = make([]string, n)
	}
}

func fillInts(col *[]int, n int) {
	if *col == nil {
		*col = make([]int, n)
	}
}

func fillFloats(col *[]float64, n int) {
	if *col == nil {
		*col = make([]float64, n)
	}
}
