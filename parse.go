// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package uritemplates

import (
	"strconv"
	"strings"

	"golang.org/x/exp/utf8string"
)

// maxPrefixLength is the exclusive upper bound of a prefix modifier,
// since RFC 6570 allows at most four digits.
const maxPrefixLength = 10000

// tokenize splits a template into literal and expression tokens.
//
// Tokenizing never fails: any text that cannot be parsed as an expression,
// including unbalanced braces, is kept as literal text so that the tokens
// always cover the whole input.
func tokenize(input string) []Token {
	s := utf8string.NewString(input)
	n := s.RuneCount()

	var tokens []Token
	for pos := 0; pos < n; {
		tok, next := consumeToken(s, pos, n)
		tokens = append(tokens, tok)
		pos = next
	}
	return tokens
}

// consumeToken reads a single token starting at rune index pos, returning
// it along with the index just past its end. pos must be less than n.
func consumeToken(s *utf8string.String, pos, n int) (Token, int) {
	if expr, next, ok := consumeExpression(s, pos, n); ok {
		return expr, next
	}
	return consumeLiteral(s, pos, n)
}

// consumeExpression tries to read an expression starting at pos.
func consumeExpression(s *utf8string.String, pos, n int) (Expression, int, bool) {
	if s.At(pos) != '{' {
		return Expression{}, pos, false
	}
	end := indexRune(s, '}', pos+2, n)
	if end < 0 {
		return Expression{}, pos, false
	}

	expr, ok := parseExpressionBody(s.Slice(pos+1, end))
	if !ok {
		return Expression{}, pos, false
	}
	return expr, end + 1, true
}

// consumeLiteral reads literal text from pos up to the next expression
// boundary, or up to the end of the input if there is none. The rune at pos
// always belongs to the literal, so this makes progress even when pos is
// an opening brace that failed to parse as an expression.
func consumeLiteral(s *utf8string.String, pos, n int) (Literal, int) {
	end := n
	if open, ok := findBoundary(s, pos+1, n); ok {
		end = open
	}
	return Literal(s.Slice(pos, end)), end
}

// findBoundary returns the index of the first "{" at or after from that is
// followed by a "}" at least two runes later.
func findBoundary(s *utf8string.String, from, n int) (int, bool) {
	open := indexRune(s, '{', from, n)
	if open < 0 {
		return 0, false
	}
	if indexRune(s, '}', open+2, n) < 0 {
		return 0, false
	}
	return open, true
}

func indexRune(s *utf8string.String, r rune, from, n int) int {
	for i := from; i < n; i++ {
		if s.At(i) == r {
			return i
		}
	}
	return -1
}

// parseExpressionBody parses the text between the braces of an expression.
func parseExpressionBody(body string) (Expression, bool) {
	if body == "" {
		return Expression{}, false
	}

	op := OpSimple
	list := body
	// All operators are ASCII.
	if o, ok := operatorForRune(rune(body[0])); ok {
		op = o
		list = body[1:]
	}
	if op != OpSimple && list == "" {
		return Expression{}, false
	}

	var vars []VarSpec
	for _, spec := range strings.Split(list, ",") {
		if spec == "" {
			continue
		}
		vars = append(vars, parseVarSpec(spec))
	}
	if len(vars) == 0 {
		return Expression{}, false
	}

	return Expression{
		Operator: op,
		Vars:     vars,
		source:   body,
	}, true
}

// parseVarSpec parses a single non-empty varspec. Malformed modifiers are
// not errors: the whole text then becomes the variable name.
func parseVarSpec(spec string) VarSpec {
	if name, ok := strings.CutSuffix(spec, "*"); ok && name != "" && !strings.Contains(spec, ":") {
		return VarSpec{Name: name, Modifier: ModifierExplode}
	}

	if name, length, ok := strings.Cut(spec, ":"); ok && name != "" && isPrefixLength(length) {
		n, err := strconv.Atoi(length)
		if err == nil && n < maxPrefixLength {
			return VarSpec{Name: name, Modifier: ModifierPrefix, MaxLength: n}
		}
	}

	return VarSpec{Name: spec}
}

// isPrefixLength reports whether s is written as plain decimal digits, with
// no sign and no leading zeros.
func isPrefixLength(s string) bool {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
