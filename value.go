// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package uritemplates

import (
	"fmt"
	"strings"
)

// Values maps variable names to the values they expand to. A name that is
// absent from the map is undefined.
type Values map[string]Value

// Kind identifies which of the three shapes a [Value] has.
type Kind uint8

const (
	// KindString is a single string value.
	KindString Kind = iota
	// KindList is an ordered list of strings.
	KindList
	// KindPairs is an ordered list of key/value pairs, the RFC 6570
	// "associative array".
	KindPairs
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindPairs:
		return "pairs"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Pair is a single key/value member of a pairs value.
type Pair struct {
	Key   string
	Value string
}

// Value is a variable value to be substituted into a template. The zero
// value is the empty string.
//
// Use [StringVal], [ListVal] or [PairsVal] to construct values directly, or
// [ValueOf] and [ValueFromCty] to convert from dynamic representations.
type Value struct {
	kind  Kind
	str   string
	list  []string
	pairs []Pair
}

// StringVal returns a string value.
func StringVal(s string) Value {
	return Value{kind: KindString, str: s}
}

// ListVal returns a list value with the given members, in order.
func ListVal(elems ...string) Value {
	return Value{kind: KindList, list: elems}
}

// PairsVal returns an associative value with the given pairs, in order.
func PairsVal(pairs ...Pair) Value {
	return Value{kind: KindPairs, pairs: pairs}
}

// Kind returns the shape of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// Len returns the length of a string value in bytes, or the number of
// members of a list or pairs value.
//
// A string's length in bytes is not the number of characters a prefix
// modifier counts: prefixes count user-perceived characters, so "{v:1}"
// keeps all of "é" even though its Len is 2.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindPairs:
		return len(v.pairs)
	default:
		return len(v.str)
	}
}

// IsEmpty reports whether the value is the empty string, an empty list or
// an empty set of pairs.
func (v Value) IsEmpty() bool {
	return v.Len() == 0
}

// AsString returns the string held by a string value. It panics if the
// value is of another kind.
func (v Value) AsString() string {
	v.assertKind(KindString)
	return v.str
}

// AsList returns the members of a list value. It panics if the value is of
// another kind. The caller must not modify the result.
func (v Value) AsList() []string {
	v.assertKind(KindList)
	return v.list
}

// AsPairs returns the members of a pairs value. It panics if the value is
// of another kind. The caller must not modify the result.
func (v Value) AsPairs() []Pair {
	v.assertKind(KindPairs)
	return v.pairs
}

func (v Value) assertKind(want Kind) {
	if v.kind != want {
		panic(fmt.Sprintf("value is %s, not %s", v.kind, want))
	}
}

// GoString returns a Go expression that would construct the value, which
// makes test failure output easier to read.
func (v Value) GoString() string {
	switch v.kind {
	case KindList:
		quoted := make([]string, len(v.list))
		for i, s := range v.list {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return "uritemplates.ListVal(" + strings.Join(quoted, ", ") + ")"
	case KindPairs:
		quoted := make([]string, len(v.pairs))
		for i, p := range v.pairs {
			quoted[i] = fmt.Sprintf("{%q, %q}", p.Key, p.Value)
		}
		return "uritemplates.PairsVal(" + strings.Join(quoted, ", ") + ")"
	default:
		return fmt.Sprintf("uritemplates.StringVal(%q)", v.str)
	}
}
