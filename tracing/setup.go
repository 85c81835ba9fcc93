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

package tracing

import (
	"context"

	"github.com/opencolumndb/tableengine/cfg"
	"github.com/opencolumndb/tableengine/common"
	"github.com/opencolumndb/tableengine/internal/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const tracerName = "table_engine"

// Setup wires up distributed tracing according to c.Telemetry.TracingMode
// and installs a W3C trace-context propagator, returning the Tracer engine
// operations should use and a ShutdownFn to flush and release exporter
// resources on shutdown.
func Setup(ctx context.Context, c *cfg.Config) (Tracer, common.ShutdownFn) {
	otel.SetTextMapPropagator(propagation.TraceContext{})

	if !IsTracingEnabled(c) {
		return NewNoopTracer(), func(context.Context) error { return nil }
	}

	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		logger.Errorf("tracing: failed to create stdout exporter, falling back to noop: %v", err)
		return NewNoopTracer(), func(context.Context) error { return nil }
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(tp)

	return NewTracer(tp.Tracer(tracerName)), tp.Shutdown
}

// IsTracingEnabled reports whether c selects a span exporter.
func IsTracingEnabled(c *cfg.Config) bool {
	return c != nil && c.Telemetry.TracingMode != ""
}
