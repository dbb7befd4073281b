package interp

import (
	"fmt"

	"github.com/flowbylang/flowby/internal/value"
)

// iterate expands an iterable Value into the element sequence a for loop
// walks: a List yields its elements, a Dict its keys, a String
// one-character strings.
func iterate(v value.Value) ([]value.Value, error) {
	switch v.Kind() {
	case value.KindList:
		return v.AsList().Items(), nil
	case value.KindDict:
		keys := v.AsDict().Keys()
		out := make([]value.Value, len(keys))
		for i, k := range keys {
			out[i] = value.String(k)
		}
		return out, nil
	case value.KindString:
		runes := []rune(v.AsString())
		elems := make([]value.Value, len(runes))
		for i, r := range runes {
			elems[i] = value.String(string(r))
		}
		return elems, nil
	default:
		return nil, fmt.Errorf("%s is not iterable", v.Kind())
	}
}

// bindLoopVars binds the for statement's loop variables against one
// element. A single variable gets the element itself; multiple variables
// unpack the element, which must be a sequence of matching arity.
func bindLoopVars(env *Environment, names []string, elem value.Value) error {
	if len(names) == 1 {
		env.Define(names[0], elem)
		return nil
	}
	if elem.Kind() != value.KindList {
		return fmt.Errorf("cannot unpack a %s value into %d loop variables", elem.Kind(), len(names))
	}
	l := elem.AsList()
	if l.Len() != len(names) {
		return fmt.Errorf("cannot unpack %d values into %d loop variables", l.Len(), len(names))
	}
	for i, name := range names {
		env.Define(name, l.Get(i))
	}
	return nil
}
