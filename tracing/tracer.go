// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tracing wraps go.opentelemetry.io/otel/trace behind a small
// interface so engine operations can be traced without every call site
// importing otel directly.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer starts and ends spans around engine operations and carries trace
// context across pool boundaries (a lease handed from one goroutine to
// another needs its originating span propagated by hand).
type Tracer interface {
	// StartSpan begins an internal span, e.g. for a single operation.
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)
	// StartServerSpan begins a span for a unit of work entered from outside
	// the engine, such as a coordinator RPC handler.
	StartServerSpan(ctx context.Context, name string) (context.Context, trace.Span)
	// EndSpan ends a span started by StartSpan or StartServerSpan.
	EndSpan(span trace.Span)
	// RecordError records err on span, if non-nil, and sets the span status.
	RecordError(span trace.Span, err error)
	// PropagateTraceContext copies the span recorded in src into dst,
	// returning a context carrying that span.
	PropagateTraceContext(dst context.Context, src context.Context) context.Context
}

type otelTracer struct {
	tracer trace.Tracer
}

// NewTracer wraps the given otel tracer, e.g. otel.Tracer("table_engine").
func NewTracer(tracer trace.Tracer) Tracer {
	return &otelTracer{tracer: tracer}
}

func (t *otelTracer) StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
}

func (t *otelTracer) StartServerSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindServer))
}

func (t *otelTracer) EndSpan(span trace.Span) {
	span.End()
}

func (t *otelTracer) RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func (t *otelTracer) PropagateTraceContext(dst context.Context, src context.Context) context.Context {
	return trace.ContextWithSpan(dst, trace.SpanFromContext(src))
}
