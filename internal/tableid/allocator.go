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

// Package tableid implements the engine's global table-identifier
// allocator: a file-backed monotonic 64-bit counter, mapped once into
// process memory and mutated through a lock-free compare-and-swap loop.
package tableid

import (
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

// IndexFileName is the well-known name of the table-id counter file under
// the data root.
const IndexFileName = "_tab_index.d"

const pageSize = 4096

// Allocator memory-maps a page-sized index file and hands out strictly
// increasing table ids via a CAS loop on the first 8 bytes of the
// mapping. The value at offset 0 is the last id handed out (0 if none);
// NextID returns that value plus one.
//
// No explicit fsync is performed on the counter word: the OS is
// responsible for writing the dirty page back. A crash may therefore roll
// back the last few allocations, which is an accepted risk because ids
// are only ever compared for equality, never used as an index into
// anything that outlives the counter's own flush.
type Allocator struct {
	file *os.File
	data []byte
	word *atomic.Uint64

	casRetries     *atomic.Uint64
	allowTestReset bool
}

// Options configures the allocator. AllowTestReset must be set before
// ResetForTests is usable; it exists to keep the non-atomic reset from
// being reachable in production builds by accident.
type Options struct {
	AllowTestReset bool
}

// Open opens (creating if necessary) the index file at path, grows it to
// one page, and maps it read-write, shared. path is typically
// filepath.Join(root, IndexFileName).
func Open(path string, opts Options) (*Allocator, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("tableid: cannot allocate index file %s: %w", path, err)
	}

	if err := f.Truncate(pageSize); err != nil {
		f.Close()
		return nil, fmt.Errorf("tableid: cannot grow index file %s to one page: %w", path, err)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, pageSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("tableid: cannot mmap index file %s: %w", path, err)
	}

	a := &Allocator{
		file:           f,
		data:           data,
		word:           (*atomic.Uint64)(unsafe.Pointer(&data[0])),
		casRetries:     new(atomic.Uint64),
		allowTestReset: opts.AllowTestReset,
	}
	return a, nil
}

// NextID returns a value strictly greater than every previously returned
// value from this index file, including across process restarts. It
// never blocks.
func (a *Allocator) NextID() uint64 {
	for {
		v := a.word.Load()
		if a.word.CompareAndSwap(v, v+1) {
			return v + 1
		}
		a.casRetries.Add(1)
	}
}

// CASRetryCount returns the number of failed CAS attempts observed since
// construction, for metrics.
func (a *Allocator) CASRetryCount() uint64 {
	return a.casRetries.Load()
}

// Current returns the last id handed out without allocating a new one.
func (a *Allocator) Current() uint64 {
	return a.word.Load()
}

// ResetForTests performs the documented non-atomic store of 0 to the
// counter word. It is not safe under concurrent access and panics unless
// the allocator was opened with Options.AllowTestReset.
func (a *Allocator) ResetForTests() {
	if !a.allowTestReset {
		panic("tableid: ResetForTests called without Options.AllowTestReset")
	}
	*(*uint64)(unsafe.Pointer(&a.data[0])) = 0
}

// Close unmaps the index file and closes its descriptor. Any subsequent
// operation on the allocator is undefined.
func (a *Allocator) Close() error {
	var err error
	if a.data != nil {
		err = unix.Munmap(a.data)
		a.data = nil
	}
	if cerr := a.file.Close(); err == nil {
		err = cerr
	}
	return err
}
