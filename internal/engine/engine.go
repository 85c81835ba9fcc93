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

// Package engine implements the table engine coordinator: table lifecycle
// operations backed by a single-writer/many-readers pool discipline, a
// file-backed monotonic table-id allocator, a boot-time metadata upgrade
// procedure, and a cooperative maintenance sweep.
package engine

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/opencolumndb/tableengine/internal/fsfacade"
	"github.com/opencolumndb/tableengine/internal/maintenance"
	"github.com/opencolumndb/tableengine/internal/pool"
	"github.com/opencolumndb/tableengine/internal/security"
	"github.com/opencolumndb/tableengine/internal/tableid"
	"github.com/opencolumndb/tableengine/internal/telemetry"
	"github.com/opencolumndb/tableengine/internal/upgrade"
	"github.com/opencolumndb/tableengine/tracing"
	"github.com/opencolumndb/tableengine/ttlcache"
)

// metaCacheTTL bounds how long the engine trusts a cached metadata version.
// Within the TTL, a cached version that differs from the one GetReader is
// asked for fails the call without leasing; on a miss GetReader leases a
// reader and compares the version that reader read when it was
// constructed. Every mutation invalidates the name outright.
const metaCacheTTL = 30 * time.Second

// Engine is the table engine coordinator. It holds the table-id allocator,
// the writer and reader pools, the filesystem and security collaborators,
// the telemetry ring, and the maintenance job. The zero value is not
// usable; construct with New.
type Engine struct {
	opts Options

	alloc *tableid.Allocator

	writerPool *pool.Pool[*Writer]
	readerPool *pool.Pool[*Reader]

	metaVersionCache *ttlcache.Cache[string, uint32]

	telemetryRing  *telemetry.Ring
	maintenanceJob *maintenance.Job

	tracer tracing.Tracer

	files    fsfacade.FilesFacade
	security security.Gate

	closeOnce sync.Once
}

// New constructs an Engine rooted at opts.Root. It runs the upgrade
// procedure before returning, so that by the time New returns, every
// pre-existing table's _meta file carries a table id. If construction
// fails after the index file has been mapped, Close is invoked to release
// partial state before the error is returned.
func New(opts Options) (*Engine, error) {
	opts = opts.withDefaults()

	if err := opts.Files.MkdirAll(opts.Root, opts.MkDirMode); err != nil {
		return nil, NewCairoException(opts.Root, err)
	}

	alloc, err := tableid.Open(filepath.Join(opts.Root, tableid.IndexFileName), tableid.Options{})
	if err != nil {
		return nil, NewCairoException(opts.Root, err)
	}

	e := &Engine{
		opts:             opts,
		alloc:            alloc,
		metaVersionCache: ttlcache.New[string, uint32](metaCacheTTL, metaCacheTTL),
		telemetryRing:    telemetry.NewRing(opts.TelemetryQueueCapacity),
		tracer:           opts.Tracer,
		files:            opts.Files,
		security:         opts.Security,
	}

	if err := upgrade.Run(opts.Root, opts.Files, alloc); err != nil {
		e.Close()
		return nil, err
	}

	e.writerPool = pool.New[*Writer]("writer", e.constructWriter, opts.Clock, opts.Metrics)
	e.readerPool = pool.New[*Reader]("reader", e.constructReader, opts.Clock, opts.Metrics)
	e.maintenanceJob = maintenance.New(opts.Clock, opts.IdleCheckInterval, e.releaseInactive)

	return e, nil
}

// releaseInactive fans out to both pools' releaseInactive, as invoked by
// the maintenance job. It reports true if either pool released an entry.
func (e *Engine) releaseInactive() bool {
	writerReleased := e.writerPool.ReleaseInactive(e.opts.WriterIdleExpiry)
	readerReleased := e.readerPool.ReleaseInactive(e.opts.ReaderIdleExpiry)
	return writerReleased || readerReleased
}

// MaintenanceJob returns the engine's cooperative maintenance job handle,
// for the host scheduler to Tick.
func (e *Engine) MaintenanceJob() *maintenance.Job {
	return e.maintenanceJob
}

// TelemetryRing returns the engine's internal telemetry ring.
func (e *Engine) TelemetryRing() *telemetry.Ring {
	return e.telemetryRing
}

// WriterBusyCount returns the number of currently leased writers.
func (e *Engine) WriterBusyCount() int {
	return e.writerPool.GetBusyCount()
}

// ReaderBusyCount returns the number of currently leased readers.
func (e *Engine) ReaderBusyCount() int {
	return e.readerPool.GetBusyCount()
}

// Close releases both pools, unmaps the index file, and closes its
// descriptor, in that order. Any subsequent operation on the Engine is
// undefined. Close is idempotent.
func (e *Engine) Close() error {
	var err error
	e.closeOnce.Do(func() {
		if e.writerPool != nil {
			e.writerPool.Close()
		}
		if e.readerPool != nil {
			e.readerPool.Close()
		}
		if e.metaVersionCache != nil {
			e.metaVersionCache.Stop()
		}
		if e.alloc != nil {
			err = e.alloc.Close()
		}
	})
	return err
}

func (e *Engine) tableDir(name string) string {
	return filepath.Join(e.opts.Root, name)
}

func (e *Engine) invalidateMetaCache(name string) {
	e.metaVersionCache.Delete(name)
}
