// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package uritemplates

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var cmpTokens = cmpopts.IgnoreUnexported(Expression{})

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []Token
	}{
		{
			"",
			nil,
		},
		{
			"https://example.com/",
			[]Token{Literal("https://example.com/")},
		},
		{
			"{var}",
			[]Token{
				Expression{Operator: OpSimple, Vars: []VarSpec{{Name: "var"}}},
			},
		},
		{
			"/v1/{namespace}/{name}",
			[]Token{
				Literal("/v1/"),
				Expression{Vars: []VarSpec{{Name: "namespace"}}},
				Literal("/"),
				Expression{Vars: []VarSpec{{Name: "name"}}},
			},
		},
		{
			"{+path}{#frag}{.dom}{/seg}{;p}{?q}{&c}",
			[]Token{
				Expression{Operator: OpReserved, Vars: []VarSpec{{Name: "path"}}},
				Expression{Operator: OpFragment, Vars: []VarSpec{{Name: "frag"}}},
				Expression{Operator: OpLabel, Vars: []VarSpec{{Name: "dom"}}},
				Expression{Operator: OpPathSegment, Vars: []VarSpec{{Name: "seg"}}},
				Expression{Operator: OpPathStyle, Vars: []VarSpec{{Name: "p"}}},
				Expression{Operator: OpQuery, Vars: []VarSpec{{Name: "q"}}},
				Expression{Operator: OpQueryContinuation, Vars: []VarSpec{{Name: "c"}}},
			},
		},
		{
			"{?x,y:3,list*}",
			[]Token{
				Expression{Operator: OpQuery, Vars: []VarSpec{
					{Name: "x"},
					{Name: "y", Modifier: ModifierPrefix, MaxLength: 3},
					{Name: "list", Modifier: ModifierExplode},
				}},
			},
		},
		{
			"{}",
			[]Token{Literal("{}")},
		},
		{
			"a{}b",
			[]Token{Literal("a{}b")},
		},
		{
			"{",
			[]Token{Literal("{")},
		},
		{
			"}",
			[]Token{Literal("}")},
		},
		{
			"foo{bar",
			[]Token{Literal("foo{bar")},
		},
		{
			"a}{b}",
			[]Token{
				Literal("a}"),
				Expression{Vars: []VarSpec{{Name: "b"}}},
			},
		},
		{
			"{{a}",
			[]Token{
				Expression{Vars: []VarSpec{{Name: "{a"}}},
			},
		},
		{
			"{+}x",
			[]Token{Literal("{+}x")},
		},
		{
			"a{+}{b}",
			[]Token{
				Literal("a"),
				Literal("{+}"),
				Expression{Vars: []VarSpec{{Name: "b"}}},
			},
		},
		{
			"{,}{a,,b}",
			[]Token{
				Literal("{,}"),
				Expression{Vars: []VarSpec{{Name: "a"}, {Name: "b"}}},
			},
		},
		{
			"café/{nom}",
			[]Token{
				Literal("café/"),
				Expression{Vars: []VarSpec{{Name: "nom"}}},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got := tokenize(test.input)
			if diff := cmp.Diff(test.want, got, cmpTokens); diff != "" {
				t.Errorf("wrong tokens\n%s", diff)
			}
		})
	}
}

func TestParseVarSpec(t *testing.T) {
	tests := []struct {
		input string
		want  VarSpec
	}{
		{"var", VarSpec{Name: "var"}},
		{"list*", VarSpec{Name: "list", Modifier: ModifierExplode}},
		{"var:3", VarSpec{Name: "var", Modifier: ModifierPrefix, MaxLength: 3}},
		{"var:0", VarSpec{Name: "var", Modifier: ModifierPrefix, MaxLength: 0}},
		{"var:9999", VarSpec{Name: "var", Modifier: ModifierPrefix, MaxLength: 9999}},
		{"var:10000", VarSpec{Name: "var:10000"}},
		{"var:-1", VarSpec{Name: "var:-1"}},
		{"var:+3", VarSpec{Name: "var:+3"}},
		{"var:03", VarSpec{Name: "var:03"}},
		{"var:00", VarSpec{Name: "var:00"}},
		{"var: 3", VarSpec{Name: "var: 3"}},
		{"var:x", VarSpec{Name: "var:x"}},
		{"var:", VarSpec{Name: "var:"}},
		{":3", VarSpec{Name: ":3"}},
		{"var:3*", VarSpec{Name: "var:3*"}},
		{"var:1:2", VarSpec{Name: "var:1:2"}},
		{"*", VarSpec{Name: "*"}},
		{"a.b", VarSpec{Name: "a.b"}},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got := parseVarSpec(test.input)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("wrong result\n%s", diff)
			}
		})
	}
}

func TestParseExpressionBody(t *testing.T) {
	tests := []struct {
		body   string
		want   Expression
		wantOK bool
	}{
		{"", Expression{}, false},
		{"+", Expression{}, false},
		{"?", Expression{}, false},
		{",", Expression{}, false},
		{"?,", Expression{}, false},
		{"var", Expression{Vars: []VarSpec{{Name: "var"}}}, true},
		{"x,y", Expression{Vars: []VarSpec{{Name: "x"}, {Name: "y"}}}, true},
		{"#x", Expression{Operator: OpFragment, Vars: []VarSpec{{Name: "x"}}}, true},
		{"&x,y*", Expression{Operator: OpQueryContinuation, Vars: []VarSpec{
			{Name: "x"},
			{Name: "y", Modifier: ModifierExplode},
		}}, true},
		{"=x", Expression{Vars: []VarSpec{{Name: "=x"}}}, true},
	}

	for _, test := range tests {
		t.Run(test.body, func(t *testing.T) {
			got, ok := parseExpressionBody(test.body)
			if ok != test.wantOK {
				t.Fatalf("wrong ok\ngot:  %v\nwant: %v", ok, test.wantOK)
			}
			if !ok {
				return
			}
			if diff := cmp.Diff(test.want, got, cmpTokens); diff != "" {
				t.Errorf("wrong result\n%s", diff)
			}
		})
	}
}

func TestTokenizeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"{var}",
		"https://example.com/{+path}/x{?q,r*}{&s:3}#{frag}",
		"{a,,b}",
		"a{}b{",
		"}{x}{",
		"{{a}}",
		"café{;p}中文",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			var sb strings.Builder
			for _, tok := range tokenize(input) {
				sb.WriteString(tok.String())
			}
			if got := sb.String(); got != input {
				t.Errorf("tokens do not reproduce the input\ngot:  %s\nwant: %s", got, input)
			}
		})
	}
}

func TestTokenizeVarNamesNeverEmpty(t *testing.T) {
	inputs := []string{
		"{*}",
		"{:1}",
		"{,*,}",
		"{?*}",
		"{a*,*b,:,::}",
	}

	for _, input := range inputs {
		for _, tok := range tokenize(input) {
			expr, ok := tok.(Expression)
			if !ok {
				continue
			}
			for _, v := range expr.Vars {
				if v.Name == "" {
					t.Errorf("%q produced a variable with an empty name: %#v", input, expr)
				}
			}
		}
	}
}

func TestExpressionString(t *testing.T) {
	tests := []struct {
		expr Expression
		want string
	}{
		{
			Expression{Vars: []VarSpec{{Name: "var"}}},
			"{var}",
		},
		{
			Expression{Operator: OpQuery, Vars: []VarSpec{
				{Name: "x"},
				{Name: "y", Modifier: ModifierPrefix, MaxLength: 3},
				{Name: "list", Modifier: ModifierExplode},
			}},
			"{?x,y:3,list*}",
		},
		{
			Expression{Operator: OpPathStyle, Vars: []VarSpec{{Name: "p", Modifier: ModifierPrefix}}},
			"{;p:0}",
		},
	}

	for _, test := range tests {
		t.Run(test.want, func(t *testing.T) {
			if got := test.expr.String(); got != test.want {
				t.Errorf("wrong result\ngot:  %s\nwant: %s", got, test.want)
			}
		})
	}
}

func TestExpressionStringAfterChange(t *testing.T) {
	tokens := New("{?a,,b}").Tokens()
	expr := tokens[0].(Expression)
	if got, want := expr.String(), "{?a,,b}"; got != want {
		t.Errorf("wrong result before change\ngot:  %s\nwant: %s", got, want)
	}

	expr.Vars = append(expr.Vars, VarSpec{Name: "c", Modifier: ModifierExplode})
	if got, want := expr.String(), "{?a,b,c*}"; got != want {
		t.Errorf("wrong result after adding a variable\ngot:  %s\nwant: %s", got, want)
	}

	expr = tokens[0].(Expression)
	expr.Operator = OpPathStyle
	if got, want := expr.String(), "{;a,b}"; got != want {
		t.Errorf("wrong result after changing the operator\ngot:  %s\nwant: %s", got, want)
	}

	expr = tokens[0].(Expression)
	expr.Vars[1].MaxLength = 3
	expr.Vars[1].Modifier = ModifierPrefix
	if got, want := expr.String(), "{?a,b:3}"; got != want {
		t.Errorf("wrong result after changing a modifier\ngot:  %s\nwant: %s", got, want)
	}
}
