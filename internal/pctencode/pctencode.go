// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

// Package pctencode implements the character classes and percent-encoding
// rules used when expanding URI templates, as described in [RFC 3986]
// section 2.
//
// [RFC 3986]: https://www.rfc-editor.org/rfc/rfc3986#section-2
package pctencode

import (
	"strings"
	"unicode/utf8"
)

// Class is a set of ASCII characters that may appear in an expansion result
// without being percent-encoded. Classes combine with the bitwise OR
// operator.
type Class uint8

const (
	// Alpha is ALPHA from RFC 5234: A-Z and a-z.
	Alpha Class = 1 << iota
	// Digit is DIGIT from RFC 5234: 0-9.
	Digit
	// unreservedMarks are the non-alphanumeric members of unreserved.
	unreservedMarks
	// GenDelims is the gen-delims production: ":/?#[]@".
	GenDelims
	// SubDelims is the sub-delims production: "!$&'()*+,;=".
	SubDelims

	// Unreserved is the unreserved production: ALPHA / DIGIT / "-._~".
	Unreserved = Alpha | Digit | unreservedMarks
	// Reserved is the reserved production: gen-delims / sub-delims.
	Reserved = GenDelims | SubDelims
)

const upperhex = "0123456789ABCDEF"

// classes maps each ASCII byte to the classes it belongs to.
var classes [utf8.RuneSelf]Class

func init() {
	for c := 'A'; c <= 'Z'; c++ {
		classes[c] |= Alpha
		classes[c+'a'-'A'] |= Alpha
	}
	for c := '0'; c <= '9'; c++ {
		classes[c] |= Digit
	}
	for _, b := range []byte("-._~") {
		classes[b] |= unreservedMarks
	}
	for _, b := range []byte(":/?#[]@") {
		classes[b] |= GenDelims
	}
	for _, b := range []byte("!$&'()*+,;=") {
		classes[b] |= SubDelims
	}
}

// Contains reports whether r belongs to at least one of the classes in c.
func (c Class) Contains(r rune) bool {
	return r >= 0 && r < utf8.RuneSelf && classes[r]&c != 0
}

func (c Class) containsByte(b byte) bool {
	return b < utf8.RuneSelf && classes[b]&c != 0
}

// EncodeRune returns the percent-encoded form of r: each octet of its UTF-8
// encoding written as "%XX" with uppercase hexadecimal digits.
func EncodeRune(r rune) string {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)

	var sb strings.Builder
	sb.Grow(3 * n)
	for _, b := range buf[:n] {
		writeEncodedByte(&sb, b)
	}
	return sb.String()
}

// EncodeString returns s with every character outside of the allowed
// classes replaced by its percent-encoding. Characters are never reordered
// or dropped.
func EncodeString(s string, allowed Class) string {
	// A byte loop is correct because all members of every class are ASCII,
	// and the octets of a multi-byte sequence are encoded individually.
	var i int
	for i = 0; i < len(s); i++ {
		if !allowed.containsByte(s[i]) {
			break
		}
	}
	// Nothing to encode, so return original string.
	if i >= len(s) {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 2*(len(s)-i))
	sb.WriteString(s[:i])
	for ; i < len(s); i++ {
		if allowed.containsByte(s[i]) {
			sb.WriteByte(s[i])
			continue
		}
		writeEncodedByte(&sb, s[i])
	}
	return sb.String()
}

func writeEncodedByte(sb *strings.Builder, b byte) {
	sb.WriteByte('%')
	sb.WriteByte(upperhex[b>>4])
	sb.WriteByte(upperhex[b&0x0f])
}
