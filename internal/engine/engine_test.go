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
	"path/filepath"
	"testing"
	"time"

	"github.com/opencolumndb/tableengine/clock"
	"github.com/opencolumndb/tableengine/internal/security"
	"github.com/opencolumndb/tableengine/internal/tablemeta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(Options{
		Root:  t.TempDir(),
		Clock: clock.NewSimulatedClock(time.Unix(1000, 0)),
	})
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

var sec = security.Context{Principal: "test"}

func createTestTable(t *testing.T, e *Engine, name string) uint32 {
	t.Helper()
	id, err := e.CreateTable(context.Background(), sec, e.opts.Root, TableStructure{Name: name, Schema: []byte("col a int")})
	require.NoError(t, err)
	return id
}

func TestCreateTable_ThenGetReaderReturnsSameID(t *testing.T) {
	e := newTestEngine(t)
	id := createTestTable(t, e, "trades")

	leased, err := e.GetReader(context.Background(), sec, "trades", nil)
	require.NoError(t, err)
	defer leased.Close()

	assert.Equal(t, id, leased.Handle().TableID())
}

func TestCreateTable_AssignsDistinctIncreasingIDs(t *testing.T) {
	e := newTestEngine(t)
	first := createTestTable(t, e, "a")
	second := createTestTable(t, e, "b")

	assert.Less(t, first, second)
}

func TestGetWriter_ThenGetWriterAgainIsBusy(t *testing.T) {
	e := newTestEngine(t)
	createTestTable(t, e, "t")

	leased, err := e.GetWriter(context.Background(), sec, "t")
	require.NoError(t, err)
	defer leased.Close()

	_, err = e.GetWriter(context.Background(), sec, "t")
	assert.ErrorIs(t, err, ErrEntryUnavailable)
}

func TestGetReader_ThenGetReaderAgainIsBusy(t *testing.T) {
	e := newTestEngine(t)
	createTestTable(t, e, "t")

	leased, err := e.GetReader(context.Background(), sec, "t", nil)
	require.NoError(t, err)
	defer leased.Close()

	_, err = e.GetReader(context.Background(), sec, "t", nil)
	assert.ErrorIs(t, err, ErrEntryUnavailable)
}

func TestGetReader_VersionMismatchClosesReaderAndLeavesBusyCountUnchanged(t *testing.T) {
	e := newTestEngine(t)
	createTestTable(t, e, "t")

	before := e.ReaderBusyCount()

	wrongVersion := uint32(1)
	leased, err := e.GetReader(context.Background(), sec, "t", &wrongVersion)

	assert.Nil(t, leased)
	assert.ErrorIs(t, err, ErrReaderOutOfDate)
	assert.Equal(t, before, e.ReaderBusyCount())
}

func TestGetReader_MatchingVersionSucceeds(t *testing.T) {
	e := newTestEngine(t)
	createTestTable(t, e, "t")

	reader, err := e.GetReader(context.Background(), sec, "t", nil)
	require.NoError(t, err)
	version := reader.Handle().Version()
	reader.Close()

	reader2, err := e.GetReader(context.Background(), sec, "t", &version)
	require.NoError(t, err)
	defer reader2.Close()
}

func TestLock_RollsBackWriterLockWhenReaderPoolIsBusy(t *testing.T) {
	e := newTestEngine(t)
	createTestTable(t, e, "t")

	readerLeased, err := e.GetReader(context.Background(), sec, "t", nil)
	require.NoError(t, err)
	defer readerLeased.Close()

	ok, err := e.Lock(context.Background(), sec, "t")
	require.NoError(t, err)
	assert.False(t, ok)

	writerLeased, err := e.GetWriter(context.Background(), sec, "t")
	require.NoError(t, err)
	writerLeased.Close()
}

func TestLock_ThenUnlockWithDonatedWriterInstallsHandle(t *testing.T) {
	e := newTestEngine(t)
	createTestTable(t, e, "t")

	ok, err := e.Lock(context.Background(), sec, "t")
	require.NoError(t, err)
	require.True(t, ok)

	donated := &Writer{name: "t", tableID: 1, metaPath: "unused"}
	e.Unlock(context.Background(), sec, "t", donated)

	leased, err := e.GetWriter(context.Background(), sec, "t")
	require.NoError(t, err)
	defer leased.Close()
	assert.Same(t, donated, leased.Handle())
}

func TestRemove_UnderContentionFailsWithCairoExceptionAndLeavesWriterValid(t *testing.T) {
	e := newTestEngine(t)
	createTestTable(t, e, "t")

	writerLeased, err := e.GetWriter(context.Background(), sec, "t")
	require.NoError(t, err)
	defer writerLeased.Close()

	err = e.Remove(context.Background(), sec, e.opts.Root, "t")
	require.Error(t, err)
	var cairoErr CairoException
	assert.ErrorAs(t, err, &cairoErr)

	status, statusErr := e.Status(context.Background(), sec, e.opts.Root, "t")
	require.NoError(t, statusErr)
	assert.Equal(t, Exists, status)

	assert.Equal(t, "t", writerLeased.Handle().Name())
}

func TestRemove_SucceedsWhenUncontended(t *testing.T) {
	e := newTestEngine(t)
	createTestTable(t, e, "t")

	err := e.Remove(context.Background(), sec, e.opts.Root, "t")
	require.NoError(t, err)

	status, err := e.Status(context.Background(), sec, e.opts.Root, "t")
	require.NoError(t, err)
	assert.Equal(t, DoesNotExist, status)
}

func TestRename_MovesTableAndInvalidatesBothNames(t *testing.T) {
	e := newTestEngine(t)
	createTestTable(t, e, "old")

	err := e.Rename(context.Background(), sec, e.opts.Root, "old", e.opts.Root, "new")
	require.NoError(t, err)

	status, err := e.Status(context.Background(), sec, e.opts.Root, "old")
	require.NoError(t, err)
	assert.Equal(t, DoesNotExist, status)

	status, err = e.Status(context.Background(), sec, e.opts.Root, "new")
	require.NoError(t, err)
	assert.Equal(t, Exists, status)
}

func TestRename_FailsWhenDestinationAlreadyExists(t *testing.T) {
	e := newTestEngine(t)
	createTestTable(t, e, "a")
	createTestTable(t, e, "b")

	err := e.Rename(context.Background(), sec, e.opts.Root, "a", e.opts.Root, "b")
	require.Error(t, err)
	var cairoErr CairoException
	assert.ErrorAs(t, err, &cairoErr)
}

func TestStatus_ReservedWhenDirectoryExistsWithoutMeta(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.files.MkdirAll(e.tableDir("partial"), e.opts.MkDirMode))

	status, err := e.Status(context.Background(), sec, e.opts.Root, "partial")
	require.NoError(t, err)
	assert.Equal(t, Reserved, status)
}

func TestStatus_DoesNotExistForUnknownName(t *testing.T) {
	e := newTestEngine(t)

	status, err := e.Status(context.Background(), sec, e.opts.Root, "nope")
	require.NoError(t, err)
	assert.Equal(t, DoesNotExist, status)
}

func TestMigrateNullFlag_NoopWhenAlreadyAtCurrentVersion(t *testing.T) {
	e := newTestEngine(t)
	createTestTable(t, e, "t")

	migrated, err := e.MigrateNullFlag(context.Background(), sec, "t")
	require.NoError(t, err)
	assert.False(t, migrated, "CreateTable already stamps CurrentVersion, which is above the null-flag threshold")
}

func TestMigrateNullFlag_BumpsVersionWhenBelowThreshold(t *testing.T) {
	e := newTestEngine(t)
	id := createTestTable(t, e, "t")

	metaPath := filepath.Join(e.tableDir("t"), tablemeta.FileName)
	require.NoError(t, tablemeta.Write(metaPath, tablemeta.VersionAndID{
		Version: tablemeta.VersionThatAddedNullFlag - 1,
		ID:      id,
	}))

	migrated, err := e.MigrateNullFlag(context.Background(), sec, "t")
	require.NoError(t, err)
	assert.True(t, migrated)

	meta, err := tablemeta.Read(metaPath)
	require.NoError(t, err)
	assert.Equal(t, tablemeta.CurrentVersion, meta.Version)
	assert.Equal(t, id, meta.ID)
}

func TestMigrateNullFlag_FailsWithEntryUnavailableWhenWriterBusy(t *testing.T) {
	e := newTestEngine(t)
	createTestTable(t, e, "t")

	writerLeased, err := e.GetWriter(context.Background(), sec, "t")
	require.NoError(t, err)
	defer writerLeased.Close()

	_, err = e.MigrateNullFlag(context.Background(), sec, "t")
	assert.ErrorIs(t, err, ErrEntryUnavailable)
}

func TestGetBackupWriter_IsIndependentOfWriterPool(t *testing.T) {
	e := newTestEngine(t)
	createTestTable(t, e, "t")

	backupDir := t.TempDir()
	backupWriter, err := e.GetBackupWriter(context.Background(), sec, "t", backupDir)
	require.NoError(t, err)

	leased, err := e.GetWriter(context.Background(), sec, "t")
	require.NoError(t, err)
	defer leased.Close()

	assert.Equal(t, leased.Handle().TableID(), backupWriter.TableID())
}

func TestEngineRoundTrip_AllocatorSurvivesCloseAndReopen(t *testing.T) {
	root := t.TempDir()
	simClock := clock.NewSimulatedClock(time.Unix(1000, 0))

	e1, err := New(Options{Root: root, Clock: simClock})
	require.NoError(t, err)

	var last uint32
	for i := 0; i < 3; i++ {
		last = createTestTable(t, e1, "tbl"+string(rune('a'+i)))
	}
	require.NoError(t, e1.Close())

	e2, err := New(Options{Root: root, Clock: simClock})
	require.NoError(t, err)
	defer e2.Close()

	next := createTestTable(t, e2, "tbl-after-reopen")
	assert.Greater(t, next, last)
}
