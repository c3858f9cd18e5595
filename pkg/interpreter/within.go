package interpreter

import (
	"molsel/atomselect-go/pkg/ast"
	"molsel/atomselect-go/pkg/runtime"
	"molsel/atomselect-go/pkg/spatial"
)

// withinCutoff implements `within`/`exwithin <cutoff> of <selection>`.
// An empty source selection short-circuits to all-false without any
// distance computation. The distance primitive is self-inclusive; for
// exwithin the source atoms are cleared from the result afterwards, so
// exclusive results never contain the source set.
func (e *Evaluator) withinCutoff(n *ast.Within) (runtime.Value, error) {
	sel, err := e.Evaluate(n.Selection)
	if err != nil {
		return nil, err
	}
	source, ok := sel.(*runtime.BoolArrayValue)
	if !ok {
		return nil, evalErrf(TypeMismatch, n, "selection of \"within\" is %s, expected a mask", sel.Kind())
	}
	numAtoms := e.mol.NumAtoms()
	if len(source.Vals) != numAtoms {
		return nil, evalErrf(TypeMismatch, n, "source mask has length %d, expected %d", len(source.Vals), numAtoms)
	}
	mask := make([]bool, numAtoms)
	var sources []int
	for i, in := range source.Vals {
		if in {
			sources = append(sources, i)
		}
	}
	if len(sources) == 0 {
		return &runtime.BoolArrayValue{Vals: mask}, nil
	}
	coords := e.mol.FrameCoords()
	bboxMin, bboxMax := spatial.SourceBounds(coords, sources)
	spatial.WithinDistance(coords, n.Cutoff, sources, bboxMin, bboxMax, mask)
	if n.Exclusive {
		for _, s := range sources {
			mask[s] = false
		}
	}
	return &runtime.BoolArrayValue{Vals: mask}, nil
}
