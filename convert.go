// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package uritemplates

import (
	"fmt"
	"strconv"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ValueError is returned when converting a named variable to a [Value]
// fails.
type ValueError struct {
	Name string
	Err  error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid value for variable %q: %s", e.Name, e.Err)
}

// Unwrap returns the underlying problem with the value.
func (e *ValueError) Unwrap() error {
	return e.Err
}

// ValuesFromMap converts a map of dynamic values, such as the result of
// decoding a JSON object, to [Values] using [ValueOf] for each element.
// Elements whose value is nil are left undefined.
func ValuesFromMap(m map[string]any) (Values, error) {
	ret := make(Values, len(m))
	for name, raw := range m {
		if raw == nil {
			continue
		}
		v, err := ValueOf(raw)
		if err != nil {
			return nil, &ValueError{Name: name, Err: err}
		}
		ret[name] = v
	}
	return ret, nil
}

// ValueOf converts a dynamic Go value to a [Value].
//
// Strings, booleans, numbers and [fmt.Stringer] implementations become
// string values. Slices of those become list values, unless every member is
// itself a slice, in which case the result is a pairs value taking the first
// two members of each inner slice as key and value; inner slices with fewer
// than two members are skipped. Maps become pairs values ordered by key.
func ValueOf(raw any) (Value, error) {
	switch v := raw.(type) {
	case Value:
		return v, nil
	case []string:
		return ListVal(append([]string(nil), v...)...), nil
	case []Pair:
		return PairsVal(append([]Pair(nil), v...)...), nil
	case [][2]string:
		pairs := make([]Pair, len(v))
		for i, kv := range v {
			pairs[i] = Pair{Key: kv[0], Value: kv[1]}
		}
		return PairsVal(pairs...), nil
	case map[string]string:
		pairs := make([]Pair, 0, len(v))
		for _, k := range sortedKeys(v) {
			pairs = append(pairs, Pair{Key: k, Value: v[k]})
		}
		return PairsVal(pairs...), nil
	case map[string]any:
		pairs := make([]Pair, 0, len(v))
		for _, k := range sortedKeys(v) {
			s, err := scalarString(v[k])
			if err != nil {
				return Value{}, fmt.Errorf("element %q: %w", k, err)
			}
			pairs = append(pairs, Pair{Key: k, Value: s})
		}
		return PairsVal(pairs...), nil
	case []any:
		return valueOfSlice(v)
	}

	s, err := scalarString(raw)
	if err != nil {
		return Value{}, err
	}
	return StringVal(s), nil
}

func valueOfSlice(elems []any) (Value, error) {
	if len(elems) > 0 && allSequences(elems) {
		pairs := make([]Pair, 0, len(elems))
		for i, elem := range elems {
			kv, err := sequenceStrings(elem)
			if err != nil {
				return Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			if len(kv) < 2 {
				continue
			}
			pairs = append(pairs, Pair{Key: kv[0], Value: kv[1]})
		}
		return PairsVal(pairs...), nil
	}

	list := make([]string, len(elems))
	for i, elem := range elems {
		s, err := scalarString(elem)
		if err != nil {
			return Value{}, fmt.Errorf("element %d: %w", i, err)
		}
		list[i] = s
	}
	return ListVal(list...), nil
}

func allSequences(elems []any) bool {
	for _, elem := range elems {
		switch elem.(type) {
		case []any, []string:
		default:
			return false
		}
	}
	return true
}

func sequenceStrings(raw any) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		return v, nil
	case []any:
		ret := make([]string, len(v))
		for i, elem := range v {
			s, err := scalarString(elem)
			if err != nil {
				return nil, err
			}
			ret[i] = s
		}
		return ret, nil
	default:
		return nil, fmt.Errorf("unsupported pair type %T", raw)
	}
}

func scalarString(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		// JSON unmarshaling always produces float64.
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v), nil
	case nil:
		return "", fmt.Errorf("value is null")
	default:
		return "", fmt.Errorf("unsupported value type %T", raw)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
