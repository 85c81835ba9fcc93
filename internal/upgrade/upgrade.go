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

// Package upgrade implements the one-time, boot-time metadata upgrade
// procedure: scan the data root for legacy per-table metadata files and
// assign each one a table id, recording progress in a marker file so the
// procedure is idempotent and safe to re-run after a crash.
package upgrade

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/opencolumndb/tableengine/internal/engine/errkind"
	"github.com/opencolumndb/tableengine/internal/fsfacade"
	"github.com/opencolumndb/tableengine/internal/tableid"
	"github.com/opencolumndb/tableengine/internal/tablemeta"
)

// MarkerFileName is the upgrade marker file, relative to the data root.
const MarkerFileName = "_upgrade.d"

const markerWordSize = 4

// Run executes the upgrade procedure against root. It is idempotent: once
// the marker records tablemeta.CurrentVersion (or any version at or above
// tablemeta.VersionThatAddedTableID), subsequent calls are no-ops.
//
// Per-table failures are collected and joined rather than aborting the
// whole pass, so one corrupt _meta file doesn't prevent the rest of the
// directory from being upgraded. When any per-table failure occurs, the
// marker is left unwritten so a later run retries every table still below
// the threshold, instead of skipping them as already done. A marker that
// exists but holds fewer than four bytes counts as not yet upgraded.
func Run(root string, ff fsfacade.FilesFacade, alloc *tableid.Allocator) error {
	markerPath := filepath.Join(root, MarkerFileName)

	preexisted, _, err := ff.Exists(markerPath)
	if err != nil {
		return errkind.NewCairoException(markerPath, err)
	}

	marker, err := ff.OpenReadWrite(markerPath, 0644)
	if err != nil {
		return errkind.NewCairoException(markerPath, err)
	}
	defer marker.Close()

	if preexisted {
		version, err := readMarkerVersion(marker)
		if err != nil && !errors.Is(err, io.EOF) {
			return errkind.NewCairoException(markerPath, err)
		}
		if err == nil && version >= tablemeta.VersionThatAddedTableID {
			return nil
		}
	}

	entries, err := ff.Iterate(root)
	if err != nil {
		return errkind.NewCairoException(root, err)
	}

	var errs []error
	for _, e := range entries {
		if !e.IsDir {
			continue
		}
		metaPath := filepath.Join(root, e.Name, tablemeta.FileName)
		exists, _, err := ff.Exists(metaPath)
		if err != nil {
			errs = append(errs, errkind.NewCairoException(metaPath, err))
			continue
		}
		if !exists {
			continue
		}
		if err := assignID(metaPath, alloc); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if err := writeMarkerVersion(marker, tablemeta.CurrentVersion); err != nil {
		return errkind.NewCairoException(markerPath, err)
	}

	return nil
}

// assignID reads the version+id words at metaPath and, if the stored
// version is below tablemeta.VersionThatAddedTableID, overwrites both with
// (tablemeta.CurrentVersion, a freshly allocated id).
func assignID(metaPath string, alloc *tableid.Allocator) error {
	meta, err := tablemeta.Read(metaPath)
	if err != nil {
		return errkind.NewCairoException(metaPath, err)
	}

	if meta.Version >= tablemeta.VersionThatAddedTableID {
		return nil
	}

	id := alloc.NextID()
	if id > uint64(^uint32(0)) {
		return errkind.NewCairoException(metaPath, fmt.Errorf("assigned id %d overflows the 32-bit id word", id))
	}

	next := tablemeta.VersionAndID{Version: tablemeta.CurrentVersion, ID: uint32(id)}
	if err := tablemeta.Write(metaPath, next); err != nil {
		return errkind.NewCairoException(metaPath, err)
	}
	return nil
}

type readerAt interface {
	ReadAt(p []byte, off int64) (int, error)
}

type writerAt interface {
	WriteAt(p []byte, off int64) (int, error)
}

func readMarkerVersion(f readerAt) (uint32, error) {
	buf := make([]byte, markerWordSize)
	n, err := f.ReadAt(buf, 0)
	if err != nil {
		return 0, err
	}
	if n != markerWordSize {
		return 0, fmt.Errorf("short read of upgrade marker: got %d of %d bytes", n, markerWordSize)
	}
	return binary.LittleEndian.Uint32(buf), nil
}

func writeMarkerVersion(f writerAt, version uint32) error {
	buf := make([]byte, markerWordSize)
	binary.LittleEndian.PutUint32(buf, version)
	n, err := f.WriteAt(buf, 0)
	if err != nil {
		return err
	}
	if n != markerWordSize {
		return fmt.Errorf("short write of upgrade marker: wrote %d of %d bytes", n, markerWordSize)
	}
	return nil
}
