// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package uritemplates

import (
	"context"
	"strings"

	"github.com/apparentlymart/go-textseg/v15/textseg"

	"github.com/opentofu/uritemplates/internal/pctencode"
)

// operatorRules is the per-operator behavior table from RFC 6570 Appendix A.
type operatorRules struct {
	// first is written once before the expansion of an expression that
	// has at least one defined variable.
	first string
	// sep separates the expansions of defined variables, and also the
	// members of exploded list and pairs values.
	sep string
	// allowed are the characters that are not percent-encoded.
	allowed pctencode.Class
	// allowEmpty makes empty values count as defined.
	allowEmpty bool
	// named operators write "name=" before each value.
	named bool
	// ifEmpty is written after the name in place of "=value" when a named
	// operator expands an empty value.
	ifEmpty string
}

var rules = [...]operatorRules{
	OpSimple:            {first: "", sep: ",", allowed: pctencode.Unreserved},
	OpReserved:          {first: "", sep: ",", allowed: pctencode.Unreserved | pctencode.Reserved},
	OpFragment:          {first: "#", sep: ",", allowed: pctencode.Unreserved | pctencode.Reserved},
	OpLabel:             {first: ".", sep: ".", allowed: pctencode.Unreserved, allowEmpty: true},
	OpPathSegment:       {first: "/", sep: "/", allowed: pctencode.Unreserved, allowEmpty: true},
	OpPathStyle:         {first: ";", sep: ";", allowed: pctencode.Unreserved, allowEmpty: true, named: true, ifEmpty: ""},
	OpQuery:             {first: "?", sep: "&", allowed: pctencode.Unreserved, allowEmpty: true, named: true, ifEmpty: "="},
	OpQueryContinuation: {first: "&", sep: "&", allowed: pctencode.Unreserved, allowEmpty: true, named: true, ifEmpty: "="},
}

// expandTokens writes the expansion of each token, in order.
func expandTokens(ctx context.Context, sb *strings.Builder, tokens []Token, values Values) {
	trace := expandTraceFromContext(ctx)
	for _, tok := range tokens {
		switch tok := tok.(type) {
		case Literal:
			sb.WriteString(string(tok))
		case Expression:
			expandExpression(ctx, sb, tok, values, trace)
		}
	}
}

func expandExpression(ctx context.Context, sb *strings.Builder, e Expression, values Values, trace *ExpandTrace) {
	op := e.Operator
	if int(op) >= len(rules) {
		op = OpSimple
	}
	r := &rules[op]

	defined := 0
	for _, v := range e.Vars {
		val, ok := values[v.Name]
		if !ok || (!r.allowEmpty && val.IsEmpty()) {
			trace.variableUndefined(ctx, v.Name)
			continue
		}

		if defined == 0 {
			sb.WriteString(r.first)
		} else {
			sb.WriteString(r.sep)
		}
		defined++

		r.expandVar(sb, v, val)
	}
}

func (r *operatorRules) expandVar(sb *strings.Builder, v VarSpec, val Value) {
	explode := v.Modifier == ModifierExplode

	switch val.Kind() {
	case KindPairs:
		pairs := val.AsPairs()
		if explode && len(pairs) > 0 {
			for i, p := range pairs {
				if i > 0 {
					sb.WriteString(r.sep)
				}
				sb.WriteString(r.encode(p.Key))
				sb.WriteByte('=')
				sb.WriteString(r.encode(p.Value))
			}
			return
		}

		r.writeName(sb, v.Name, len(pairs) == 0)
		for i, p := range pairs {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(r.encode(p.Key))
			sb.WriteByte(',')
			sb.WriteString(r.encode(p.Value))
		}

	case KindList:
		list := val.AsList()
		if explode && len(list) > 0 {
			for i, elem := range list {
				if i > 0 {
					sb.WriteString(r.sep)
				}
				if r.named {
					sb.WriteString(v.Name)
					sb.WriteByte('=')
				}
				sb.WriteString(r.encode(elem))
			}
			return
		}

		r.writeName(sb, v.Name, len(list) == 0)
		for i, elem := range list {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(r.encode(elem))
		}

	default:
		s := val.AsString()
		// Emptiness is a property of the value, not of its prefix.
		r.writeName(sb, v.Name, s == "")
		if v.Modifier == ModifierPrefix {
			s = truncate(s, v.MaxLength)
		}
		sb.WriteString(r.encode(s))
	}
}

func (r *operatorRules) writeName(sb *strings.Builder, name string, empty bool) {
	if !r.named {
		return
	}
	sb.WriteString(name)
	if empty {
		sb.WriteString(r.ifEmpty)
	} else {
		sb.WriteByte('=')
	}
}

func (r *operatorRules) encode(s string) string {
	return pctencode.EncodeString(s, r.allowed)
}

// truncate returns the first n user-perceived characters (extended
// grapheme clusters) of s, or all of s if it is shorter than that.
func truncate(s string, n int) string {
	// Every character is at least one byte long.
	if n >= len(s) {
		return s
	}

	buf := []byte(s)
	end := 0
	for i := 0; i < n && end < len(buf); i++ {
		advance, _, err := textseg.ScanGraphemeClusters(buf[end:], true)
		if err != nil || advance == 0 {
			break
		}
		end += advance
	}
	return s[:end]
}
