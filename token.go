// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package uritemplates

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// Token is one element of a parsed template: either a [Literal] or an
// [Expression]. No other implementations are possible.
type Token interface {
	// String returns the template source text the token represents.
	String() string

	isToken()
}

// Literal is template text that is copied to the expansion result verbatim.
type Literal string

var _ Token = Literal("")

func (l Literal) String() string {
	return string(l)
}

func (Literal) isToken() {}

// Operator selects the expansion rules of an [Expression].
type Operator uint8

const (
	// OpSimple is simple string expansion: {var}
	OpSimple Operator = iota
	// OpReserved is reserved expansion: {+var}
	OpReserved
	// OpFragment is fragment expansion: {#var}
	OpFragment
	// OpLabel is label expansion with dot-prefix: {.var}
	OpLabel
	// OpPathSegment is path segment expansion: {/var}
	OpPathSegment
	// OpPathStyle is path-style parameter expansion: {;var}
	OpPathStyle
	// OpQuery is form-style query expansion: {?var}
	OpQuery
	// OpQueryContinuation is form-style query continuation: {&var}
	OpQueryContinuation
)

// operatorForRune returns the operator introduced by r, if any.
func operatorForRune(r rune) (Operator, bool) {
	switch r {
	case '+':
		return OpReserved, true
	case '#':
		return OpFragment, true
	case '.':
		return OpLabel, true
	case '/':
		return OpPathSegment, true
	case ';':
		return OpPathStyle, true
	case '?':
		return OpQuery, true
	case '&':
		return OpQueryContinuation, true
	default:
		return OpSimple, false
	}
}

// String returns the operator character, or an empty string for OpSimple.
func (op Operator) String() string {
	switch op {
	case OpReserved:
		return "+"
	case OpFragment:
		return "#"
	case OpLabel:
		return "."
	case OpPathSegment:
		return "/"
	case OpPathStyle:
		return ";"
	case OpQuery:
		return "?"
	case OpQueryContinuation:
		return "&"
	default:
		return ""
	}
}

// Modifier is the value modifier attached to a [VarSpec].
type Modifier uint8

const (
	// ModifierNone means the value is expanded as-is.
	ModifierNone Modifier = iota
	// ModifierPrefix truncates a string value to VarSpec.MaxLength
	// characters. It has no effect on list and pairs values.
	ModifierPrefix
	// ModifierExplode is the "*" modifier, which expands each list member
	// or key/value pair as a separate item.
	ModifierExplode
)

// VarSpec is a reference to one variable within an [Expression], with its
// optional modifier.
type VarSpec struct {
	Name     string
	Modifier Modifier

	// MaxLength is the prefix length, used only with ModifierPrefix.
	MaxLength int
}

func (v VarSpec) String() string {
	switch v.Modifier {
	case ModifierPrefix:
		return v.Name + ":" + strconv.Itoa(v.MaxLength)
	case ModifierExplode:
		return v.Name + "*"
	default:
		return v.Name
	}
}

// Expression is a single "{...}" template expression.
type Expression struct {
	Operator Operator
	Vars     []VarSpec

	// source is the text between the braces, when the expression came
	// from a parsed template.
	source string
}

var _ Token = Expression{}

// String returns the expression's template syntax, braces included.
//
// An expression that came from a parsed template returns its original text,
// which may differ in insignificant ways from a canonical rendering, such as
// extra commas. If Operator or Vars have been changed since parsing, the
// text is rebuilt from their current values instead.
func (e Expression) String() string {
	if e.source != "" && e.matchesSource() {
		return "{" + e.source + "}"
	}

	var sb strings.Builder
	sb.WriteByte('{')
	sb.WriteString(e.Operator.String())
	for i, v := range e.Vars {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// matchesSource reports whether the parsed source text still describes e.
func (e Expression) matchesSource() bool {
	parsed, ok := parseExpressionBody(e.source)
	return ok && parsed.Operator == e.Operator && slices.Equal(parsed.Vars, e.Vars)
}

// clone returns a copy of e that shares no memory with it.
func (e Expression) clone() Expression {
	e.Vars = slices.Clone(e.Vars)
	return e
}

func (Expression) isToken() {}
