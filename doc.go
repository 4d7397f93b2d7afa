// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

// Package uritemplates implements the URI Templates language described in [RFC 6570],
// up to and including Level 4.
//
// A template is parsed once with [New] and can then be expanded any number of
// times, possibly concurrently, against different sets of [Values]:
//
//	tmpl := uritemplates.New("https://example.com/modules{/namespace,name}{?version}")
//	u := tmpl.Expand(uritemplates.Values{
//		"namespace": uritemplates.StringVal("hashicorp"),
//		"name":      uritemplates.StringVal("consul"),
//		"version":   uritemplates.StringVal("1.0.0"),
//	})
//
// Parsing and expansion never fail. Text that cannot be parsed as an
// expression, such as an unbalanced brace, is treated as literal text and
// variables that have no value are omitted from the result, so that callers
// always get the best available expansion.
//
// Values can be constructed directly, converted from dynamic Go values with
// [ValueOf] and [ValuesFromMap], or converted from [cty.Value] with
// [ValueFromCty] and [ValuesFromCty].
//
// The API of this package is currently experimental and primarily intended for
// use in OpenTofu CLI itself, rather than external consumption. We may make
// breaking changes to the API before blessing this module with a stable version
// number, so third-party callers should be prepared to make adjustments if they
// choose to use this library before then.
//
// [RFC 6570]: https://www.rfc-editor.org/rfc/rfc6570
// [cty.Value]: https://pkg.go.dev/github.com/zclconf/go-cty/cty#Value
package uritemplates
