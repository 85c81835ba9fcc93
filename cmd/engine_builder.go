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

package cmd

import (
	"context"
	"os"
	"time"

	"github.com/opencolumndb/tableengine/cfg"
	"github.com/opencolumndb/tableengine/common"
	"github.com/opencolumndb/tableengine/internal/engine"
	"github.com/opencolumndb/tableengine/internal/logger"
	"github.com/opencolumndb/tableengine/internal/security"
	"github.com/opencolumndb/tableengine/metrics"
	"github.com/opencolumndb/tableengine/tracing"
)

// cliPrincipal identifies the administrative client to the engine's
// security gate, distinct from whatever principal a production server
// would authenticate requests as.
const cliPrincipal = "tableenginectl"

// buildEngine wires logging, tracing, and metrics from c and constructs an
// Engine rooted at c.Root. The returned ShutdownFn must be invoked after
// the caller is done with the Engine, in addition to closing the Engine
// itself.
func buildEngine(ctx context.Context, c *cfg.Config) (*engine.Engine, common.ShutdownFn, error) {
	if err := logger.InitLogFile(c.Logging); err != nil {
		return nil, nil, err
	}

	tracer, tracingShutdown := tracing.Setup(ctx, c)
	metricHandle, _, metricsShutdown := metrics.Setup(ctx, c)
	shutdown := common.JoinShutdownFunc(tracingShutdown, metricsShutdown)

	e, err := engine.New(engine.Options{
		Root:                   string(c.Root),
		MkDirMode:              os.FileMode(c.MkDirMode),
		WriterIdleExpiry:       time.Duration(c.Pool.WriterIdleExpiryMs) * time.Millisecond,
		ReaderIdleExpiry:       time.Duration(c.Pool.ReaderIdleExpiryMs) * time.Millisecond,
		IdleCheckInterval:      time.Duration(c.Maintenance.IdleCheckIntervalMs) * time.Millisecond,
		TelemetryQueueCapacity: c.Telemetry.QueueCapacity,
		Security:               security.AllowAll{},
		Metrics:                metricHandle,
		Tracer:                 tracer,
	})
	if err != nil {
		shutdown(ctx)
		return nil, nil, err
	}

	return e, shutdown, nil
}

var sec = security.Context{Principal: cliPrincipal}
