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

package metrics

import (
	"context"
	"net/http"

	ocprometheus "contrib.go.opencensus.io/exporter/prometheus"
	"github.com/opencolumndb/tableengine/cfg"
	"github.com/opencolumndb/tableengine/common"
	"github.com/opencolumndb/tableengine/internal/logger"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opencensus.io/stats/view"
	"go.opentelemetry.io/otel"
	otelprometheus "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Setup wires the engine's OTel and OpenCensus instruments to a single
// Prometheus registry according to c.Telemetry.MetricsAddr, returning the
// MetricHandle engine operations should record against, the HTTP handler
// a caller should mount at a scrape path, and a ShutdownFn to release
// exporter resources.
//
// An empty MetricsAddr disables metrics export entirely: a noop handle is
// returned and the handler is nil.
func Setup(ctx context.Context, c *cfg.Config) (common.MetricHandle, http.Handler, common.ShutdownFn) {
	noop := func(context.Context) error { return nil }

	if !IsMetricsEnabled(c) {
		return common.NewNoopMetrics(), nil, noop
	}

	registry := prom.NewRegistry()

	otelExporter, err := otelprometheus.New(otelprometheus.WithRegisterer(registry))
	if err != nil {
		logger.Errorf("metrics: failed to create OTel Prometheus exporter, falling back to noop: %v", err)
		return common.NewNoopMetrics(), nil, noop
	}

	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(otelExporter))
	otel.SetMeterProvider(mp)

	otelHandle, err := common.NewOTelMetrics()
	if err != nil {
		logger.Errorf("metrics: failed to create OTel instruments, falling back to noop: %v", err)
		return common.NewNoopMetrics(), nil, noop
	}

	ocExporter, err := ocprometheus.NewExporter(ocprometheus.Options{
		Namespace: "table_engine",
		Registry:  registry,
		OnError: func(err error) {
			logger.Errorf("metrics: OpenCensus Prometheus exporter error: %v", err)
		},
	})
	if err != nil {
		logger.Errorf("metrics: failed to create OpenCensus Prometheus exporter, falling back to noop: %v", err)
		return common.NewNoopMetrics(), nil, noop
	}
	view.RegisterExporter(ocExporter)

	ocHandle, err := common.NewOCMetrics()
	if err != nil {
		logger.Errorf("metrics: failed to create OpenCensus instruments, falling back to noop: %v", err)
		return common.NewNoopMetrics(), nil, noop
	}

	handle := &compositeMetrics{otel: otelHandle, oc: ocHandle}
	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	shutdown := func(ctx context.Context) error {
		view.UnregisterExporter(ocExporter)
		return mp.Shutdown(ctx)
	}

	return handle, handler, shutdown
}

// IsMetricsEnabled reports whether c selects a metrics scrape endpoint.
func IsMetricsEnabled(c *cfg.Config) bool {
	return c != nil && c.Telemetry.MetricsAddr != ""
}
