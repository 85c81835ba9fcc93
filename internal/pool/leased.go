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

package pool

import "sync/atomic"

// PoolReturnSink is the capability a Leased handle invokes on Close,
// instead of holding a back-pointer to its owning Pool. This breaks the
// handle/pool reference cycle: the pool implements the sink and hands it
// to the handle at construction.
type PoolReturnSink[H Handle] interface {
	Return(name string, handle H)
}

// Leased wraps a pooled handle borrowed from Get. Closing it does not
// close the underlying resource; it returns the entry to the pool's idle
// state so a later Get can reuse it.
type Leased[H Handle] struct {
	name     string
	handle   H
	sink     PoolReturnSink[H]
	returned atomic.Bool
}

func (p *Pool[H]) newLeased(name string, handle H) *Leased[H] {
	return &Leased[H]{name: name, handle: handle, sink: p}
}

// Handle returns the leased resource.
func (l *Leased[H]) Handle() H {
	return l.handle
}

// Close returns the lease to the pool. It is idempotent: a second call is
// a no-op.
func (l *Leased[H]) Close() error {
	if l.returned.CompareAndSwap(false, true) {
		l.sink.Return(l.name, l.handle)
	}
	return nil
}
