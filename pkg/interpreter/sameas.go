package interpreter

import (
	"errors"

	"molsel/atomselect-go/pkg/ast"
	"molsel/atomselect-go/pkg/runtime"
)

// expandSameAs implements `same <property> as <selection>`: the selection's
// mask is expanded to every atom sharing a group value with any selected
// atom. The expansion is self-inclusive, and an empty source selection
// yields an all-false mask.
func (e *Evaluator) expandSameAs(n *ast.SameAs) (runtime.Value, error) {
	sel, err := e.Evaluate(n.Selection)
	if err != nil {
		return nil, err
	}
	source, ok := sel.(*runtime.BoolArrayValue)
	if !ok {
		return nil, evalErrf(TypeMismatch, n, "selection of \"same %s as\" is %s, expected a mask", n.Property, sel.Kind())
	}
	group, err := e.groupArray(n)
	if err != nil {
		return nil, err
	}
	switch g := group.(type) {
	case *runtime.IntArrayValue:
		return expandGroups(g.Vals, source.Vals), nil
	case *runtime.FloatArrayValue:
		return expandGroups(g.Vals, source.Vals), nil
	case *runtime.StringArrayValue:
		return expandGroups(g.Vals, source.Vals), nil
	default:
		return nil, evalErrf(InvalidGroupProperty, n, "property %q has no grouping semantics", n.Property)
	}
}

// groupArray picks the group-value array for a same-as property: fragment
// and residue come from the analysis, everything else from the attribute
// resolver. `index` identifies single atoms and so defines no grouping.
func (e *Evaluator) groupArray(n *ast.SameAs) (runtime.Value, error) {
	switch n.Property {
	case "fragment":
		return intArray(e.analysis.Fragments), nil
	case "residue":
		return intArray(e.analysis.Residues), nil
	case "index":
		return nil, evalErrf(InvalidGroupProperty, n, "%q has no grouping semantics", n.Property)
	}
	group, err := e.resolveProperty(n, n.Property)
	if err != nil {
		var evalErr *EvalError
		if errors.As(err, &evalErr) && evalErr.Kind == UnknownProperty {
			return nil, evalErrf(InvalidGroupProperty, n, "%q has no grouping semantics", n.Property)
		}
		return nil, err
	}
	return group, nil
}

func expandGroups[T comparable](group []T, source []bool) *runtime.BoolArrayValue {
	selected := make(map[T]struct{})
	for i, in := range source {
		if in && i < len(group) {
			selected[group[i]] = struct{}{}
		}
	}
	out := make([]bool, len(group))
	for i, g := range group {
		_, out[i] = selected[g]
	}
	return &runtime.BoolArrayValue{Vals: out}
}
