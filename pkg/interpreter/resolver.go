package interpreter

import (
	"molsel/atomselect-go/pkg/ast"
	"molsel/atomselect-go/pkg/runtime"
)

// The attribute resolver maps selection-language property names to per-atom
// arrays. Synthetic properties: `index` is the 0-based atom position,
// `residue` the analysis' sequential residue numbering. `occupancy` aliases
// `beta`, `segname` aliases `segid`.

func (e *Evaluator) resolveProperty(node ast.Node, name string) (runtime.Value, error) {
	switch name {
	case "serial":
		return intArray(e.mol.Serial), nil
	case "name":
		return stringArray(e.mol.Name), nil
	case "element":
		return stringArray(e.mol.Element), nil
	case "resname":
		return stringArray(e.mol.Resname), nil
	case "resid":
		return intArray(e.mol.Resid), nil
	case "insertion":
		return stringArray(e.mol.Insertion), nil
	case "chain":
		return stringArray(e.mol.Chain), nil
	case "segid", "segname":
		return stringArray(e.mol.Segid), nil
	case "altloc":
		return stringArray(e.mol.Altloc), nil
	case "mass":
		return floatArray(e.mol.Mass), nil
	case "occupancy", "beta":
		return floatArray(e.mol.Beta), nil
	case "charge":
		return floatArray(e.mol.Charge), nil
	case "index":
		vals := make([]int, e.mol.NumAtoms())
		for i := range vals {
			vals[i] = i
		}
		return &runtime.IntArrayValue{Vals: vals}, nil
	case "residue":
		return intArray(e.analysis.Residues), nil
	default:
		return nil, evalErrf(UnknownProperty, node, "%q", name)
	}
}

func intArray(col []int) *runtime.IntArrayValue {
	vals := make([]int, len(col))
	copy(vals, col)
	return &runtime.IntArrayValue{Vals: vals}
}

func floatArray(col []float64) *runtime.FloatArrayValue {
	vals := make([]float64, len(col))
	copy(vals, col)
	return &runtime.FloatArrayValue{Vals: vals}
}

func stringArray(col []string) *runtime.StringArrayValue {
	vals := make([]string, len(col))
	copy(vals, col)
	return &runtime.StringArrayValue{Vals: vals}
}
