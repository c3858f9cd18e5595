package runtime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// WildcardMarker is the in-query token denoting "match any sequence". A
// string value containing it is matched as an anchored-prefix regular
// expression instead of by equality.
const WildcardMarker = ".*"

// Matches implements the categorical matching semantics of property tests,
// in priority order:
//
//  1. single value without wildcard: elementwise equality;
//  2. single string with wildcard: prefix regular-expression match;
//  3. list with no wildcard members: set membership;
//  4. mixed list: equality against plain members or regexp match against
//     wildcard members, folded with OR.
//
// Matching is case-sensitive and exact; no trimming or normalization.
// The property must be an integer or string per-atom array.
func Matches(property, query Value) (Value, error) {
	members, err := queryMembers(query)
	if err != nil {
		return nil, err
	}
	switch prop := property.(type) {
	case *IntArrayValue:
		return matchInts(prop.Vals, members)
	case *StringArrayValue:
		return matchStrings(prop.Vals, members)
	default:
		return nil, fmt.Errorf("property is %s, expected an integer or string array", property.Kind())
	}
}

func queryMembers(query Value) ([]Value, error) {
	if list, ok := query.(*ListValue); ok {
		for _, el := range list.Elements {
			if _, nested := el.(*ListValue); nested {
				return nil, fmt.Errorf("nested value list in property test")
			}
		}
		return list.Elements, nil
	}
	return []Value{query}, nil
}

func matchInts(vals []int, members []Value) (Value, error) {
	want := make(map[int]struct{}, len(members))
	for _, m := range members {
		switch v := m.(type) {
		case IntValue:
			want[v.Val] = struct{}{}
		case StringValue:
			// Quoted integer values, e.g. resid "-27".
			n, err := strconv.Atoi(v.Val)
			if err != nil {
				return nil, fmt.Errorf("value %q does not match an integer property", v.Val)
			}
			want[n] = struct{}{}
		default:
			return nil, fmt.Errorf("value is %s, expected an integer for an integer property", m.Kind())
		}
	}
	out := make([]bool, len(vals))
	for i, x := range vals {
		_, out[i] = want[x]
	}
	return &BoolArrayValue{Vals: out}, nil
}

func matchStrings(vals []string, members []Value) (Value, error) {
	exact := make(map[string]struct{}, len(members))
	var patterns []*regexp.Regexp
	for _, m := range members {
		switch v := m.(type) {
		case StringValue:
			if strings.Contains(v.Val, WildcardMarker) {
				re, err := regexp.Compile("^(?:" + v.Val + ")")
				if err != nil {
					return nil, fmt.Errorf("bad wildcard pattern %q: %w", v.Val, err)
				}
				patterns = append(patterns, re)
			} else {
				exact[v.Val] = struct{}{}
			}
		case IntValue:
			// Bare numeric values against string properties, e.g. chain 0.
			exact[strconv.Itoa(v.Val)] = struct{}{}
		default:
			return nil, fmt.Errorf("value is %s, expected a string for a string property", m.Kind())
		}
	}
	out := make([]bool, len(vals))
	for i, x := range vals {
		if _, ok := exact[x]; ok {
			out[i] = true
			continue
		}
		for _, re := range patterns {
			if re.MatchString(x) {
				out[i] = true
				break
			}
		}
	}
	return &BoolArrayValue{Vals: out}, nil
}
