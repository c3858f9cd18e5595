package runtime

import "testing"

func strArr(vals ...string) *StringArrayValue { return &StringArrayValue{Vals: vals} }

func list(elements ...Value) *ListValue { return &ListValue{Elements: elements} }

func TestMatchSingleString(t *testing.T) {
	names := strArr("N", "CA", "CB", "C", "O")
	got, err := Matches(names, StringValue{Val: "CA"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	requireBools(t, got, []bool{false, true, false, false, false})
}

func TestMatchIsCaseSensitiveAndExact(t *testing.T) {
	names := strArr("CA", "ca", " CA", "CA ")
	got, err := Matches(names, StringValue{Val: "CA"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	requireBools(t, got, []bool{true, false, false, false})
}

func TestMatchWildcardIsPrefixAnchored(t *testing.T) {
	names := strArr("CA", "CB", "N", "OC", "C")
	got, err := Matches(names, StringValue{Val: "C.*"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Matches every name starting with C, none other; "OC" contains C but
	// does not start with it.
	requireBools(t, got, []bool{true, true, false, false, true})
}

func TestMatchStringList(t *testing.T) {
	resnames := strArr("ALA", "ACE", "GLY", "NME", "HOH")
	got, err := Matches(resnames, list(StringValue{Val: "ACE"}, StringValue{Val: "NME"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	requireBools(t, got, []bool{false, true, false, true, false})
}

func TestMatchMixedListWithWildcard(t *testing.T) {
	resnames := strArr("GLU", "GLY", "ALA", "LYS")
	got, err := Matches(resnames, list(StringValue{Val: "GL.*"}, StringValue{Val: "LYS"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	requireBools(t, got, []bool{true, true, false, true})
}

func TestMatchIntMembership(t *testing.T) {
	resids := intArr(1, 2, 3, 4, 5)
	got, err := Matches(resids, list(IntValue{Val: 2}, IntValue{Val: 5}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	requireBools(t, got, []bool{false, true, false, false, true})
}

func TestMatchQuotedIntegerAgainstIntProperty(t *testing.T) {
	resids := intArr(-27, 0, 27)
	got, err := Matches(resids, StringValue{Val: "-27"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	requireBools(t, got, []bool{true, false, false})
}

func TestMatchNumericValueAgainstStringProperty(t *testing.T) {
	chains := strArr("A", "0", "B")
	got, err := Matches(chains, IntValue{Val: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	requireBools(t, got, []bool{false, true, false})
}

func TestMatchRejectsNonIntegerValueForIntProperty(t *testing.T) {
	if _, err := Matches(intArr(1, 2), StringValue{Val: "GL"}); err == nil {
		t.Fatalf("expected error for non-integer value")
	}
}

func TestMatchRejectsNonArrayProperty(t *testing.T) {
	if _, err := Matches(FloatValue{Val: 1}, IntValue{Val: 1}); err == nil {
		t.Fatalf("expected error for scalar property")
	}
	if _, err := Matches(floatArr(1, 2), IntValue{Val: 1}); err == nil {
		t.Fatalf("expected error for float property")
	}
}

func TestMatchRejectsNestedList(t *testing.T) {
	if _, err := Matches(intArr(1), list(list(IntValue{Val: 1}))); err == nil {
		t.Fatalf("expected error for nested list")
	}
}
