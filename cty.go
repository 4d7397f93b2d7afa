// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package uritemplates

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// ValuesFromCty converts a cty object or map value to [Values], using
// [ValueFromCty] for each attribute or element. Null attributes are left
// undefined.
func ValuesFromCty(obj cty.Value) (Values, error) {
	obj, _ = obj.UnmarkDeep()
	ty := obj.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("template variables must be given as an object or map, not %s", ty.FriendlyName())
	}
	if obj.IsNull() {
		return nil, fmt.Errorf("template variables must not be null")
	}
	if !obj.IsKnown() {
		return nil, fmt.Errorf("template variables are not yet known")
	}

	ret := make(Values)
	for it := obj.ElementIterator(); it.Next(); {
		k, ev := it.Element()
		name := k.AsString()
		if ev.IsNull() {
			continue
		}
		v, err := ValueFromCty(ev)
		if err != nil {
			return nil, &ValueError{Name: name, Err: err}
		}
		ret[name] = v
	}
	return ret, nil
}

// ValueFromCty converts a single cty value to a [Value].
//
// Primitive values become string values using the usual cty conversion to
// string. Lists, sets and tuples of primitive values become list values,
// while lists and tuples whose elements are all sequences become pairs
// values, in the same way as for [ValueOf]. Maps and objects become pairs
// values ordered by key.
func ValueFromCty(v cty.Value) (Value, error) {
	v, _ = v.UnmarkDeep()
	if v.IsNull() {
		return Value{}, fmt.Errorf("value is null")
	}
	if !v.IsWhollyKnown() {
		return Value{}, fmt.Errorf("value is not yet known")
	}

	ty := v.Type()
	switch {
	case ty.IsPrimitiveType():
		s, err := ctyString(v)
		if err != nil {
			return Value{}, err
		}
		return StringVal(s), nil

	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		return valueFromCtySeq(v)

	case ty.IsMapType() || ty.IsObjectType():
		var pairs []Pair
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			s, err := ctyString(ev)
			if err != nil {
				return Value{}, fmt.Errorf("element %q: %w", k.AsString(), err)
			}
			pairs = append(pairs, Pair{Key: k.AsString(), Value: s})
		}
		return PairsVal(pairs...), nil

	default:
		return Value{}, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}

func valueFromCtySeq(v cty.Value) (Value, error) {
	elems := make([]cty.Value, 0, v.LengthInt())
	for it := v.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		elems = append(elems, ev)
	}

	if len(elems) > 0 && allCtySequences(elems) {
		pairs := make([]Pair, 0, len(elems))
		for i, ev := range elems {
			if ev.LengthInt() < 2 {
				continue
			}
			var kv []string
			for it := ev.ElementIterator(); it.Next() && len(kv) < 2; {
				_, iv := it.Element()
				s, err := ctyString(iv)
				if err != nil {
					return Value{}, fmt.Errorf("element %d: %w", i, err)
				}
				kv = append(kv, s)
			}
			pairs = append(pairs, Pair{Key: kv[0], Value: kv[1]})
		}
		return PairsVal(pairs...), nil
	}

	list := make([]string, len(elems))
	for i, ev := range elems {
		s, err := ctyString(ev)
		if err != nil {
			return Value{}, fmt.Errorf("element %d: %w", i, err)
		}
		list[i] = s
	}
	return ListVal(list...), nil
}

func allCtySequences(elems []cty.Value) bool {
	for _, ev := range elems {
		if ev.IsNull() {
			return false
		}
		ty := ev.Type()
		if !ty.IsListType() && !ty.IsTupleType() {
			return false
		}
	}
	return true
}

func ctyString(v cty.Value) (string, error) {
	if v.IsNull() {
		return "", fmt.Errorf("value is null")
	}
	if !v.Type().IsPrimitiveType() {
		return "", fmt.Errorf("string, number or bool required, but got %s", v.Type().FriendlyName())
	}
	sv, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", err
	}
	return sv.AsString(), nil
}
