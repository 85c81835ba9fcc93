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

// Package tablemeta reads and writes the two fixed-offset words the engine
// owns inside every table's _meta file: a format version and the table id
// assigned by the allocator. Everything else in _meta (schema bytes) is
// opaque to this package, owned by an external collaborator.
package tablemeta

import (
	"encoding/binary"
	"fmt"
	"os"
)

// FileName is the per-table metadata file name, relative to the table's
// directory.
const FileName = "_meta"

// OffsetVersion is the byte offset of the version word within _meta. The
// table id word immediately follows it.
const OffsetVersion = 0

// WordSize is the width of each of the two words (version, id) read and
// written by this package. A caller writing schema bytes after the header
// starts at offset 2*WordSize.
const WordSize = 4

// VersionAndID is the pair of words the engine owns inside a _meta file.
type VersionAndID struct {
	Version uint32
	ID      uint32
}

// Read loads the version and id words from path at OffsetVersion. A short
// read is surfaced as an error naming path.
func Read(path string) (VersionAndID, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return VersionAndID{}, fmt.Errorf("tablemeta: open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, 2*WordSize)
	n, err := f.ReadAt(buf, OffsetVersion)
	if err != nil {
		return VersionAndID{}, fmt.Errorf("tablemeta: read %s: %w", path, err)
	}
	if n != len(buf) {
		return VersionAndID{}, fmt.Errorf("tablemeta: short read at %s: got %d of %d bytes", path, n, len(buf))
	}

	return VersionAndID{
		Version: binary.LittleEndian.Uint32(buf[0:WordSize]),
		ID:      binary.LittleEndian.Uint32(buf[WordSize : 2*WordSize]),
	}, nil
}

// Write overwrites the version and id words in place at OffsetVersion. A
// short write is surfaced as an error naming path.
func Write(path string, v VersionAndID) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("tablemeta: open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, 2*WordSize)
	binary.LittleEndian.PutUint32(buf[0:WordSize], v.Version)
	binary.LittleEndian.PutUint32(buf[WordSize:2*WordSize], v.ID)

	n, err := f.WriteAt(buf, OffsetVersion)
	if err != nil {
		return fmt.Errorf("tablemeta: write %s: %w", path, err)
	}
	if n != len(buf) {
		return fmt.Errorf("tablemeta: short write at %s: wrote %d of %d bytes", path, n, len(buf))
	}

	return nil
}
