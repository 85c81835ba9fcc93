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

// Package pool implements the engine's generic writer/reader pool: a
// lease/return registry of per-table exclusive resources with lock/unlock
// semantics, inactivity eviction, and pool-listener observability.
package pool

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opencolumndb/tableengine/clock"
	"github.com/opencolumndb/tableengine/common"
)

// Handle is the minimal interface a pooled resource must satisfy.
type Handle interface {
	Close() error
}

type entryState int

const (
	entryAbsent entryState = iota
	entryIdle
	entryBusy
	entryLocked
	entryLockedEmpty
)

// entry is a PoolEntry: owns a constructed handle (when not absent/locked),
// a state tag, and a last-used timestamp. Guarded by its own mutex so that
// the "is this entry idle or absent" check and its transition are one
// indivisible step, independent of any other entry's lock.
type entry[H Handle] struct {
	mu       sync.Mutex
	state    entryState
	handle   H
	lastUsed time.Time
}

// ConstructFunc builds a fresh handle for name on first lease or after
// eviction.
type ConstructFunc[H Handle] func(name string) (H, error)

// Pool is a generic registry of per-table leased resources, keyed by table
// name. The registry itself is guarded by a RWMutex for insertion; each
// entry's state transitions are guarded by its own mutex.
type Pool[H Handle] struct {
	kind      string
	construct ConstructFunc[H]
	clock     clock.Clock

	mu      sync.RWMutex
	entries map[string]*entry[H]

	listenerMu sync.RWMutex
	listener   Listener

	busyCount atomic.Int64
	shutdown  atomic.Bool

	metrics common.PoolMetricHandle
}

// New creates a Pool of the given kind (common.PoolKindWriter or
// common.PoolKindReader) that constructs handles via construct and uses c
// to stamp and compare last-used timestamps.
func New[H Handle](kind string, construct ConstructFunc[H], c clock.Clock, metrics common.PoolMetricHandle) *Pool[H] {
	return &Pool[H]{
		kind:      kind,
		construct: construct,
		clock:     c,
		entries:   make(map[string]*entry[H]),
		metrics:   metrics,
	}
}

func (p *Pool[H]) getOrCreateEntry(name string) *entry[H] {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.entries[name]
	if !ok {
		e = &entry[H]{}
		p.entries[name] = e
	}
	return e
}

func (p *Pool[H]) lookupEntry(name string) (*entry[H], bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	e, ok := p.entries[name]
	return e, ok
}

// Get returns an exclusive lease on the table handle for name. If no entry
// exists, one is constructed. If an entry exists and is idle, it is marked
// busy and returned. A busy entry fails with ErrEntryUnavailable; a locked
// entry fails with ErrEntryLocked. Construction failure leaves no entry
// retained.
func (p *Pool[H]) Get(name string) (*Leased[H], error) {
	e := p.getOrCreateEntry(name)

	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case entryLocked, entryLockedEmpty:
		return nil, ErrEntryLocked
	case entryBusy:
		return nil, ErrEntryUnavailable
	case entryIdle:
		e.state = entryBusy
		p.busyCount.Add(1)
		p.notify(name, common.TransitionAcquired)
		return p.newLeased(name, e.handle), nil
	default: // entryAbsent
		h, err := p.construct(name)
		if err != nil {
			p.notify(name, common.TransitionConstructionFailed)
			return nil, err
		}
		e.handle = h
		e.state = entryBusy
		e.lastUsed = p.clock.Now()
		p.busyCount.Add(1)
		p.notify(name, common.TransitionAcquired)
		return p.newLeased(name, h), nil
	}
}

// Lock atomically transitions the entry for name (creating it in a
// locked-empty state if absent) to locked. It succeeds only if the entry
// is idle or absent; an idle entry's handle is closed and discarded, since
// a locked entry holds no handle.
func (p *Pool[H]) Lock(name string) bool {
	e := p.getOrCreateEntry(name)

	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case entryAbsent:
		e.state = entryLockedEmpty
	case entryIdle:
		_ = e.handle.Close()
		var zero H
		e.handle = zero
		e.state = entryLocked
	default:
		return false
	}

	p.notify(name, common.TransitionLocked)
	return true
}

// Unlock releases the lock on name. If handle is non-nil, its pointee is
// installed into the entry, which becomes idle immediately; otherwise the
// entry becomes absent, for lazy construction on the next Get. Unlocking a
// name that is not currently locked is a no-op.
func (p *Pool[H]) Unlock(name string, handle *H) {
	e, ok := p.lookupEntry(name)
	if !ok {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != entryLocked && e.state != entryLockedEmpty {
		return
	}

	if handle != nil {
		e.handle = *handle
		e.state = entryIdle
		e.lastUsed = p.clock.Now()
	} else {
		var zero H
		e.handle = zero
		e.state = entryAbsent
	}

	p.notify(name, common.TransitionUnlocked)
}

// Return implements PoolReturnSink: it is invoked by a Leased handle's
// Close, transitioning the entry from busy back to idle. Late returns
// after Close (the pool is shut down) are no-ops.
func (p *Pool[H]) Return(name string, handle H) {
	if p.shutdown.Load() {
		return
	}

	e, ok := p.lookupEntry(name)
	if !ok {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != entryBusy {
		return
	}

	e.handle = handle
	e.state = entryIdle
	e.lastUsed = p.clock.Now()
	p.busyCount.Add(-1)
	p.notify(name, common.TransitionReturned)
}

// ReleaseInactive closes and discards every idle entry whose last-used
// timestamp precedes now - ttl. It returns true if any work was done. A
// ttl <= 0 releases every idle entry regardless of age.
func (p *Pool[H]) ReleaseInactive(ttl time.Duration) bool {
	now := p.clock.Now()
	return p.releaseIdleEntries(func(e *entry[H]) bool {
		return ttl <= 0 || now.Sub(e.lastUsed) >= ttl
	})
}

// ReleaseAll closes every idle entry unconditionally; busy entries are
// never affected. It returns true if any were released.
func (p *Pool[H]) ReleaseAll() bool {
	return p.releaseIdleEntries(func(*entry[H]) bool { return true })
}

func (p *Pool[H]) releaseIdleEntries(shouldRelease func(*entry[H]) bool) bool {
	p.mu.RLock()
	names := make([]string, 0, len(p.entries))
	entries := make([]*entry[H], 0, len(p.entries))
	for name, e := range p.entries {
		names = append(names, name)
		entries = append(entries, e)
	}
	p.mu.RUnlock()

	released := false
	for i, e := range entries {
		e.mu.Lock()
		if e.state == entryIdle && shouldRelease(e) {
			_ = e.handle.Close()
			var zero H
			e.handle = zero
			e.state = entryAbsent
			released = true
			p.notify(names[i], common.TransitionEvicted)
		}
		e.mu.Unlock()
	}
	return released
}

// GetBusyCount returns the number of currently leased entries.
func (p *Pool[H]) GetBusyCount() int {
	return int(p.busyCount.Load())
}

// SetPoolListener installs l to receive subsequent transition events.
// Listener invocations happen synchronously under the affected entry's
// lock; l must not block or re-enter the engine.
func (p *Pool[H]) SetPoolListener(l Listener) {
	p.listenerMu.Lock()
	p.listener = l
	p.listenerMu.Unlock()
}

func (p *Pool[H]) notify(name string, transition string) {
	if p.metrics != nil {
		p.recordMetric(transition)
	}

	p.listenerMu.RLock()
	l := p.listener
	p.listenerMu.RUnlock()
	if l == nil {
		return
	}
	l.OnTransition(TransitionEvent{PoolKind: p.kind, Name: name, Transition: transition})
}

func (p *Pool[H]) recordMetric(transition string) {
	attrs := []common.MetricAttr{{Key: common.PoolKindKey, Value: p.kind}, {Key: common.TransitionKey, Value: transition}}
	ctx := context.Background()
	switch transition {
	case common.TransitionAcquired:
		p.metrics.PoolAcquiredCount(ctx, 1, attrs)
	case common.TransitionReturned:
		p.metrics.PoolReturnedCount(ctx, 1, attrs)
	case common.TransitionEvicted:
		p.metrics.PoolEvictedCount(ctx, 1, attrs)
	case common.TransitionConstructionFailed:
		p.metrics.PoolConstructionFailureCount(ctx, 1, attrs)
	}
}

// Close shuts the pool down: every idle entry is released and late returns
// from handles leased before shutdown become no-ops. Busy entries are left
// untouched; the caller is expected to have drained leases first. Unlike
// ReleaseAll, which notifies one TransitionEvicted per discarded entry,
// Close notifies a single TransitionClosed for the pool as a whole.
func (p *Pool[H]) Close() {
	p.shutdown.Store(true)
	p.ReleaseAll()
	p.notify("", common.TransitionClosed)
}
