// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package uritemplates

import (
	"context"
	"strings"
)

// Template is a parsed URI template.
//
// A Template is immutable once constructed, so it is safe to expand the same
// template concurrently from multiple goroutines.
type Template struct {
	tokens []Token
}

// New parses the given template string.
//
// Parsing never fails: any part of the string that is not a valid
// expression is kept as literal text.
func New(template string) *Template {
	return &Template{
		tokens: tokenize(template),
	}
}

// FromTokens returns a template made of the given tokens, in order.
func FromTokens(tokens ...Token) *Template {
	return &Template{
		tokens: cloneTokens(tokens),
	}
}

// Expand is a convenience wrapper that parses the given template and then
// immediately expands it with the given values.
func Expand(template string, values Values) string {
	return New(template).Expand(values)
}

// Tokens returns a copy of the template's tokens. Changing the result does
// not affect the template.
func (t *Template) Tokens() []Token {
	return cloneTokens(t.tokens)
}

func cloneTokens(tokens []Token) []Token {
	ret := make([]Token, len(tokens))
	for i, tok := range tokens {
		if expr, ok := tok.(Expression); ok {
			tok = expr.clone()
		}
		ret[i] = tok
	}
	return ret
}

// Expand substitutes the given values into the template and returns the
// result. Variables that are not present in values are omitted.
func (t *Template) Expand(values Values) string {
	return t.ExpandContext(context.Background(), values)
}

// ExpandContext is like [Template.Expand], but also reports events to any
// [ExpandTrace] carried by the given context.
func (t *Template) ExpandContext(ctx context.Context, values Values) string {
	trace := expandTraceFromContext(ctx)
	ctx = trace.expansionStart(ctx, t)

	var sb strings.Builder
	expandTokens(ctx, &sb, t.tokens, values)
	result := sb.String()

	trace.expansionDone(ctx, t, result)
	return result
}

// VarNames returns the distinct names of the variables the template refers
// to, in order of first appearance.
func (t *Template) VarNames() []string {
	var names []string
	seen := make(map[string]struct{})
	for _, tok := range t.tokens {
		expr, ok := tok.(Expression)
		if !ok {
			continue
		}
		for _, v := range expr.Vars {
			if _, exists := seen[v.Name]; exists {
				continue
			}
			seen[v.Name] = struct{}{}
			names = append(names, v.Name)
		}
	}
	return names
}

// String returns the template source text. For a template created with
// [New] this is exactly the original string.
func (t *Template) String() string {
	var sb strings.Builder
	for _, tok := range t.tokens {
		sb.WriteString(tok.String())
	}
	return sb.String()
}
