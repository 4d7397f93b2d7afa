// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package uritemplates

import (
	"context"
)

// ExpandTrace allows a caller of [Template.ExpandContext] to be notified
// about potentially-interesting events during expansion, in case they want
// to generate log messages, telemetry traces, or similar.
//
// Use [ContextWithExpandTrace] to derive a [context.Context] containing
// an instance of this type, and use that context when calling
// [Template.ExpandContext].
//
// All of the function-typed fields may either be left as nil or set to
// a function with the specified signature. If nil then the call for the
// corresponding event will be skipped.
type ExpandTrace struct {
	// ExpansionStart is called before a template is expanded.
	//
	// This should return a [context.Context] that is either exactly the
	// given context or a child of it. The returned context is passed to
	// the other callbacks for the same expansion, which can be used to
	// track per-expansion values such as distributed tracing spans.
	ExpansionStart func(ctx context.Context, template *Template) context.Context

	// VariableUndefined is called for each variable reference that is
	// omitted from the result, either because the name has no value or
	// because its operator does not expand empty values.
	VariableUndefined func(ctx context.Context, name string)

	// ExpansionDone is called with the result once expansion is complete.
	ExpansionDone func(ctx context.Context, template *Template, result string)
}

// ContextWithExpandTrace returns a child of parent that carries the given
// trace callbacks.
func ContextWithExpandTrace(parent context.Context, trace *ExpandTrace) context.Context {
	return context.WithValue(parent, expandTraceKey, trace)
}

func (t *ExpandTrace) expansionStart(ctx context.Context, template *Template) context.Context {
	if t.ExpansionStart == nil {
		return ctx
	}
	return t.ExpansionStart(ctx, template)
}

func (t *ExpandTrace) variableUndefined(ctx context.Context, name string) {
	if t.VariableUndefined == nil {
		return
	}
	t.VariableUndefined(ctx, name)
}

func (t *ExpandTrace) expansionDone(ctx context.Context, template *Template, result string) {
	if t.ExpansionDone == nil {
		return
	}
	t.ExpansionDone(ctx, template, result)
}

func expandTraceFromContext(ctx context.Context) *ExpandTrace {
	trace, ok := ctx.Value(expandTraceKey).(*ExpandTrace)
	if !ok || trace == nil {
		trace = noTrace
	}
	return trace
}

type expandTraceKeyType string

const expandTraceKey = expandTraceKeyType("")

var noTrace = &ExpandTrace{}
