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
	"context"
	"errors"
	"path/filepath"

	"github.com/opencolumndb/tableengine/clock"
	"github.com/opencolumndb/tableengine/common"
	"github.com/opencolumndb/tableengine/internal/pool"
	"github.com/opencolumndb/tableengine/internal/security"
	"github.com/opencolumndb/tableengine/internal/tablemeta"
	"github.com/opencolumndb/tableengine/internal/telemetry"
)

// traceOp starts a span named op and returns a closure that ends it,
// records the outcome on the telemetry ring, and emits engine metrics. It
// is called at the top of every public operation and deferred with the
// operation's named error result.
func (e *Engine) traceOp(ctx context.Context, op string) (context.Context, func(err error)) {
	ctx, span := e.tracer.StartSpan(ctx, op)
	start := e.opts.Clock.Now()

	return ctx, func(err error) {
		e.tracer.RecordError(span, err)
		e.tracer.EndSpan(span)

		e.telemetryRing.Publish(telemetry.Event{
			Op:               op,
			OccurredAtMicros: clock.NowMicros(e.opts.Clock),
			Failed:           err != nil,
		})

		if e.opts.Metrics != nil {
			common.CaptureEngineOp(ctx, e.opts.Metrics, op, e.opts.Clock.Now().Sub(start), err)
		}
	}
}

// translatePoolErr maps a pool-local lease error onto the engine-level
// sentinel callers are documented to check with errors.Is, the same
// translation Rename already applies to a failed Lock.
func translatePoolErr(err error) error {
	switch {
	case errors.Is(err, pool.ErrEntryUnavailable):
		return ErrEntryUnavailable
	case errors.Is(err, pool.ErrEntryLocked):
		return ErrEntryLocked
	default:
		return err
	}
}

// CreateTable enforces write permission, obtains a fresh id, and creates
// the table directory and metadata file. It is not concurrency-safe
// against a simultaneous GetWriter on the same name; callers are expected
// to hold the engine-level Lock or call CreateTable before any handle
// exists.
func (e *Engine) CreateTable(ctx context.Context, sec security.Context, path string, ts TableStructure) (id uint32, err error) {
	_, end := e.traceOp(ctx, common.OpCreateTable)
	defer func() { end(err) }()

	if err = e.security.CheckWritePermitted(sec, ts.Name); err != nil {
		return 0, ErrSecurityViolation
	}

	allocated := e.alloc.NextID()
	if allocated > uint64(^uint32(0)) {
		return 0, NewCairoException(ts.Name, errors.New("allocated id overflows the 32-bit id word"))
	}
	id = uint32(allocated)

	dir := filepath.Join(path, ts.Name)
	if err = e.files.MkdirAll(dir, e.opts.MkDirMode); err != nil {
		return 0, NewCairoException(dir, err)
	}

	metaPath := filepath.Join(dir, tablemeta.FileName)
	f, openErr := e.files.OpenReadWrite(metaPath, e.opts.MkDirMode)
	if openErr != nil {
		return 0, NewCairoException(metaPath, openErr)
	}
	if len(ts.Schema) > 0 {
		if _, err = f.WriteAt(ts.Schema, 2*tablemeta.WordSize); err != nil {
			f.Close()
			return 0, NewCairoException(metaPath, err)
		}
	}
	if err = f.Close(); err != nil {
		return 0, NewCairoException(metaPath, err)
	}

	if err = tablemeta.Write(metaPath, tablemeta.VersionAndID{Version: tablemeta.CurrentVersion, ID: id}); err != nil {
		return 0, NewCairoException(metaPath, err)
	}

	e.invalidateMetaCache(ts.Name)
	return id, nil
}

// GetReader leases a reader for name. If version is non-nil and the
// leased reader's metadata version differs, the reader is closed and
// ErrReaderOutOfDate is returned; no reader is left leased. A cached
// version, when present and stale, short-circuits the mismatch without
// leasing at all; the cache is refreshed from every successful lease.
func (e *Engine) GetReader(ctx context.Context, sec security.Context, name string, version *uint32) (leased *pool.Leased[*Reader], err error) {
	_, end := e.traceOp(ctx, common.OpGetReader)
	defer func() { end(err) }()

	if version != nil {
		if cached, ok := e.metaVersionCache.Get(name); ok && cached != *version {
			return nil, ErrReaderOutOfDate
		}
	}

	leased, err = e.readerPool.Get(name)
	if err != nil {
		return nil, translatePoolErr(err)
	}

	actual := leased.Handle().Version()
	e.metaVersionCache.Set(name, actual)

	if version != nil && actual != *version {
		_ = leased.Close()
		return nil, ErrReaderOutOfDate
	}

	return leased, nil
}

// GetWriter enforces write permission and leases a writer for name.
func (e *Engine) GetWriter(ctx context.Context, sec security.Context, name string) (leased *pool.Leased[*Writer], err error) {
	_, end := e.traceOp(ctx, common.OpGetWriter)
	defer func() { end(err) }()

	if err = e.security.CheckWritePermitted(sec, name); err != nil {
		return nil, ErrSecurityViolation
	}

	leased, err = e.writerPool.Get(name)
	if err != nil {
		return nil, translatePoolErr(err)
	}
	return leased, nil
}

// GetBackupWriter constructs a fresh, unpooled writer targeting
// filepath.Join(backupDir, name). Backups are one-shot: caching provides
// no benefit and would retain resources past their usefulness, so this
// writer is never registered with the writer pool.
func (e *Engine) GetBackupWriter(ctx context.Context, sec security.Context, name string, backupDir string) (writer *Writer, err error) {
	_, end := e.traceOp(ctx, common.OpGetBackupWriter)
	defer func() { end(err) }()

	if err = e.security.CheckWritePermitted(sec, name); err != nil {
		return nil, ErrSecurityViolation
	}

	srcMetaPath := filepath.Join(e.tableDir(name), tablemeta.FileName)
	srcMeta, err := tablemeta.Read(srcMetaPath)
	if err != nil {
		return nil, NewCairoException(srcMetaPath, err)
	}

	dstDir := filepath.Join(backupDir, name)
	if err = e.files.MkdirAll(dstDir, e.opts.MkDirMode); err != nil {
		return nil, NewCairoException(dstDir, err)
	}

	dstMetaPath := filepath.Join(dstDir, tablemeta.FileName)
	f, openErr := e.files.OpenReadWrite(dstMetaPath, e.opts.MkDirMode)
	if openErr != nil {
		return nil, NewCairoException(dstMetaPath, openErr)
	}
	f.Close()

	if err = tablemeta.Write(dstMetaPath, srcMeta); err != nil {
		return nil, NewCairoException(dstMetaPath, err)
	}

	return &Writer{name: name, tableID: srcMeta.ID, metaPath: dstMetaPath}, nil
}

// Lock enforces write permission, then attempts writerPool.Lock followed
// by readerPool.Lock. On reader-pool failure it rolls back by unlocking
// the writer pool, so success implies both pools report the name as
// locked and failure implies neither does.
func (e *Engine) Lock(ctx context.Context, sec security.Context, name string) (ok bool, err error) {
	_, end := e.traceOp(ctx, common.OpLock)
	defer func() { end(err) }()

	if err = e.security.CheckWritePermitted(sec, name); err != nil {
		return false, ErrSecurityViolation
	}

	if !e.writerPool.Lock(name) {
		return false, nil
	}

	if !e.readerPool.Lock(name) {
		e.writerPool.Unlock(name, nil)
		return false, nil
	}

	return true, nil
}

// Unlock unlocks the reader pool then the writer pool, optionally
// donating writer back into the writer-pool entry.
func (e *Engine) Unlock(ctx context.Context, sec security.Context, name string, writer *Writer) {
	_, end := e.traceOp(ctx, common.OpUnlock)
	defer func() { end(nil) }()

	e.readerPool.Unlock(name, nil)
	if writer != nil {
		e.writerPool.Unlock(name, &writer)
	} else {
		e.writerPool.Unlock(name, nil)
	}
}

// Remove acquires the engine lock, recursively removes the table
// directory, and releases the lock in a failure-safe manner. A lock that
// cannot be taken, or a failing rmdir, both surface as CairoException.
func (e *Engine) Remove(ctx context.Context, sec security.Context, path string, name string) (err error) {
	ctx, end := e.traceOp(ctx, common.OpRemove)
	defer func() { end(err) }()

	if err = e.security.CheckWritePermitted(sec, name); err != nil {
		return ErrSecurityViolation
	}

	ok, lockErr := e.Lock(ctx, sec, name)
	if lockErr != nil {
		return lockErr
	}
	if !ok {
		return NewCairoException(name, errors.New("remove: could not acquire engine lock"))
	}
	defer e.Unlock(ctx, sec, name, nil)

	dir := filepath.Join(path, name)
	if err = e.files.RemoveAll(dir); err != nil {
		return NewCairoException(dir, err)
	}

	e.invalidateMetaCache(name)
	return nil
}

// Rename acquires the engine lock, verifies the source exists and the
// destination does not, renames the directory, and releases the lock. A
// lock that cannot be taken surfaces as ErrEntryUnavailable; filesystem
// errors surface as CairoException.
func (e *Engine) Rename(ctx context.Context, sec security.Context, path string, name string, otherPath string, newName string) (err error) {
	ctx, end := e.traceOp(ctx, common.OpRename)
	defer func() { end(err) }()

	if err = e.security.CheckWritePermitted(sec, name); err != nil {
		return ErrSecurityViolation
	}

	ok, lockErr := e.Lock(ctx, sec, name)
	if lockErr != nil {
		return lockErr
	}
	if !ok {
		return ErrEntryUnavailable
	}
	defer e.Unlock(ctx, sec, name, nil)

	srcDir := filepath.Join(path, name)
	dstDir := filepath.Join(otherPath, newName)

	srcExists, _, existsErr := e.files.Exists(srcDir)
	if existsErr != nil {
		return NewCairoException(srcDir, existsErr)
	}
	if !srcExists {
		return NewCairoException(srcDir, errors.New("rename: source table does not exist"))
	}

	dstExists, _, existsErr := e.files.Exists(dstDir)
	if existsErr != nil {
		return NewCairoException(dstDir, existsErr)
	}
	if dstExists {
		return NewCairoException(dstDir, errors.New("rename: destination already exists"))
	}

	if err = e.files.Rename(srcDir, dstDir); err != nil {
		return NewCairoException(dstDir, err)
	}

	e.invalidateMetaCache(name)
	e.invalidateMetaCache(newName)
	return nil
}

// Status reports DoesNotExist, Exists, or Reserved for name by consulting
// the filesystem facade, without taking any pool entry.
func (e *Engine) Status(ctx context.Context, sec security.Context, path string, name string) (status Status, err error) {
	_, end := e.traceOp(ctx, common.OpStatus)
	defer func() { end(err) }()

	dir := filepath.Join(path, name)
	exists, _, existsErr := e.files.Exists(dir)
	if existsErr != nil {
		return DoesNotExist, NewCairoException(dir, existsErr)
	}
	if !exists {
		return DoesNotExist, nil
	}

	metaPath := filepath.Join(dir, tablemeta.FileName)
	metaExists, _, metaErr := e.files.Exists(metaPath)
	if metaErr != nil {
		return DoesNotExist, NewCairoException(metaPath, metaErr)
	}
	if !metaExists {
		return Reserved, nil
	}

	return Exists, nil
}

// ListTables lists every table directory immediately under path, reporting
// each one's name and Status. It never leases a pool entry: status is
// derived the same way Status derives it, from the filesystem facade alone.
func (e *Engine) ListTables(ctx context.Context, sec security.Context, path string) (tables []TableListing, err error) {
	_, end := e.traceOp(ctx, common.OpListTables)
	defer func() { end(err) }()

	entries, listErr := e.files.Iterate(path)
	if listErr != nil {
		return nil, NewCairoException(path, listErr)
	}

	for _, entry := range entries {
		if !entry.IsDir {
			continue
		}

		status, statusErr := e.Status(ctx, sec, path, entry.Name)
		if statusErr != nil {
			return nil, statusErr
		}
		tables = append(tables, TableListing{Name: entry.Name, Status: status})
	}

	return tables, nil
}

// MigrateNullFlag bumps name's metadata version to tablemeta.CurrentVersion
// if it is below tablemeta.VersionThatAddedNullFlag, holding both a writer
// and a reader lease for the duration. It returns true iff a migration was
// performed.
//
// Per-column has-null backfill is opaque to this package (column storage
// layout is a named Non-goal): the version bump itself, which is the
// observable contract this operation promises, is what's implemented here.
func (e *Engine) MigrateNullFlag(ctx context.Context, sec security.Context, name string) (migrated bool, err error) {
	_, end := e.traceOp(ctx, common.OpMigrateNullFlag)
	defer func() { end(err) }()

	if err = e.security.CheckWritePermitted(sec, name); err != nil {
		return false, ErrSecurityViolation
	}

	writerLeased, err := e.writerPool.Get(name)
	if err != nil {
		return false, translatePoolErr(err)
	}
	defer writerLeased.Close()

	readerLeased, err := e.readerPool.Get(name)
	if err != nil {
		return false, translatePoolErr(err)
	}
	defer readerLeased.Close()

	metaPath := writerLeased.Handle().metaPath
	meta, readErr := tablemeta.Read(metaPath)
	if readErr != nil {
		return false, NewCairoException(metaPath, readErr)
	}

	if meta.Version >= tablemeta.VersionThatAddedNullFlag {
		return false, nil
	}

	next := tablemeta.VersionAndID{Version: tablemeta.CurrentVersion, ID: meta.ID}
	if err = tablemeta.Write(metaPath, next); err != nil {
		return false, NewCairoException(metaPath, err)
	}

	e.invalidateMetaCache(name)
	return true, nil
}

