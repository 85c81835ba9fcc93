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

// Package telemetry implements the engine's internal telemetry ring: a
// bounded queue of Events with publish/subscribe sequence counters, so a
// host-side collector can observe engine activity without the engine
// blocking on it.
package telemetry

import (
	"sync"
	"sync/atomic"

	"github.com/opencolumndb/tableengine/common"
)

// Event is one entry on the telemetry ring: an engine operation that
// completed, tagged with the time it happened and whether it failed.
type Event struct {
	Op               string
	OccurredAtMicros int64
	Failed           bool
}

// Ring is a bounded FIFO of Events, backed by the corpus's generic
// common.Queue. PublishSeq and SubscribeSeq are monotonic counters of
// everything ever published and consumed, independent of the queue's
// current length, so a collector can detect how far behind it has fallen.
type Ring struct {
	mu    sync.Mutex
	queue common.Queue[Event]

	capacity int

	publishSeq   atomic.Uint64
	subscribeSeq atomic.Uint64
}

// NewRing creates a Ring that holds at most capacity events. A capacity of
// zero disables buffering: every Publish is dropped and reports false.
func NewRing(capacity int) *Ring {
	return &Ring{
		queue:    common.NewLinkedListQueue[Event](),
		capacity: capacity,
	}
}

// Publish appends event to the ring and returns true, or returns false
// without blocking if the ring is at capacity. Either way PublishSeq
// advances only on a successful publish.
func (r *Ring) Publish(event Event) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.capacity <= 0 || r.queue.Len() >= r.capacity {
		return false
	}

	r.queue.Push(event)
	r.publishSeq.Add(1)
	return true
}

// Consume removes and returns the oldest event, or reports false if the
// ring is empty.
func (r *Ring) Consume() (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.queue.IsEmpty() {
		return Event{}, false
	}

	event := r.queue.Pop()
	r.subscribeSeq.Add(1)
	return event, true
}

// Len returns the number of events currently queued.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.queue.Len()
}

// Capacity returns the ring's configured capacity.
func (r *Ring) Capacity() int {
	return r.capacity
}

// PublishSeq returns the total number of events successfully published
// over the Ring's lifetime.
func (r *Ring) PublishSeq() uint64 {
	return r.publishSeq.Load()
}

// SubscribeSeq returns the total number of events consumed over the
// Ring's lifetime.
func (r *Ring) SubscribeSeq() uint64 {
	return r.subscribeSeq.Load()
}
