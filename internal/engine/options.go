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

package engine

import (
	"os"
	"time"

	"github.com/opencolumndb/tableengine/clock"
	"github.com/opencolumndb/tableengine/common"
	"github.com/opencolumndb/tableengine/internal/fsfacade"
	"github.com/opencolumndb/tableengine/internal/security"
	"github.com/opencolumndb/tableengine/tracing"
)

// Options configures an Engine's construction. Zero-valued fields other
// than TelemetryQueueCapacity are replaced with production defaults by
// New; tests override individual
// fields (a fake FilesFacade, a SimulatedClock, a small telemetry queue).
type Options struct {
	// Root is the data directory under which every table subdirectory and
	// the index/marker files live.
	Root string

	// MkDirMode is the permission bits used when the engine creates table
	// directories.
	MkDirMode os.FileMode

	// WriterIdleExpiry and ReaderIdleExpiry bound how long an idle pool
	// entry survives before releaseInactive evicts it.
	WriterIdleExpiry time.Duration
	ReaderIdleExpiry time.Duration

	// IdleCheckInterval is the maintenance job's minimum gap between
	// sweeps.
	IdleCheckInterval time.Duration

	// TelemetryQueueCapacity bounds the internal telemetry ring. Zero
	// disables telemetry (every publish is dropped).
	TelemetryQueueCapacity int

	// Clock is the time source for pool eviction and the maintenance job.
	Clock clock.Clock

	// Files is the filesystem facade used for every directory and file
	// operation.
	Files fsfacade.FilesFacade

	// Security is consulted before every write operation.
	Security security.Gate

	// Metrics receives engine/pool/allocator metric events. Nil disables
	// metrics.
	Metrics common.MetricHandle

	// Tracer wraps each public operation in a span. Nil falls back to a
	// noop tracer.
	Tracer tracing.Tracer
}

const (
	defaultMkDirMode         = os.FileMode(0755)
	defaultWriterIdleExpiry  = 2 * time.Minute
	defaultReaderIdleExpiry  = 5 * time.Minute
	defaultIdleCheckInterval = 30 * time.Second
)

func (o Options) withDefaults() Options {
	if o.MkDirMode == 0 {
		o.MkDirMode = defaultMkDirMode
	}
	if o.WriterIdleExpiry == 0 {
		o.WriterIdleExpiry = defaultWriterIdleExpiry
	}
	if o.ReaderIdleExpiry == 0 {
		o.ReaderIdleExpiry = defaultReaderIdleExpiry
	}
	if o.IdleCheckInterval == 0 {
		o.IdleCheckInterval = defaultIdleCheckInterval
	}
	if o.Clock == nil {
		o.Clock = clock.RealClock{}
	}
	if o.Files == nil {
		o.Files = fsfacade.OSFilesFacade{}
	}
	if o.Security == nil {
		o.Security = security.AllowAll{}
	}
	if o.Tracer == nil {
		o.Tracer = tracing.NewNoopTracer()
	}
	return o
}
