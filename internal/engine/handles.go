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

import "sync/atomic"

// TableStructure describes a table to be created. Schema is opaque to the
// engine: it is written verbatim after the version+id header this package
// owns, and interpreted only by the external collaborator that defines
// column storage layout (out of scope here).
type TableStructure struct {
	Name   string
	Schema []byte
}

// TableListing is one entry returned by ListTables: a table directory name
// paired with its Status, exactly as a separate Status(name) call would
// report it.
type TableListing struct {
	Name   string
	Status Status
}

// Status is the result of a status(sec, path, name) query.
type Status int

const (
	// DoesNotExist means no directory exists for the table name.
	DoesNotExist Status = iota
	// Exists means the table's directory and metadata file are both
	// present.
	Exists
	// Reserved means the table's directory exists but its metadata file
	// has not yet been written, i.e. create_table is in progress or was
	// interrupted after mkdir but before the metadata write.
	Reserved
)

func (s Status) String() string {
	switch s {
	case DoesNotExist:
		return "DOES_NOT_EXIST"
	case Exists:
		return "EXISTS"
	case Reserved:
		return "RESERVED"
	default:
		return "UNKNOWN"
	}
}

// Writer is a pooled exclusive handle on a table, used for ingest and
// schema migration. It satisfies pool.Handle.
type Writer struct {
	name     string
	tableID  uint32
	metaPath string
	closed   atomic.Bool
}

// Name returns the table name this writer was constructed for.
func (w *Writer) Name() string { return w.name }

// TableID returns the table id recorded in this writer's _meta file.
func (w *Writer) TableID() uint32 { return w.tableID }

// Close releases the writer's native resources. It does not return the
// writer to its pool; that happens via Leased.Close.
func (w *Writer) Close() error {
	w.closed.Store(true)
	return nil
}

// Reader is a pooled exclusive handle on a table, used for queries and
// version checks. It satisfies pool.Handle.
type Reader struct {
	name     string
	tableID  uint32
	version  uint32
	metaPath string
	closed   atomic.Bool
}

// Name returns the table name this reader was constructed for.
func (r *Reader) Name() string { return r.name }

// TableID returns the table id recorded in this reader's _meta file.
func (r *Reader) TableID() uint32 { return r.tableID }

// Version returns the metadata format version observed when this reader
// was constructed.
func (r *Reader) Version() uint32 { return r.version }

func (r *Reader) Close() error {
	r.closed.Store(true)
	return nil
}
