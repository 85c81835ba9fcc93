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

// Package maintenance implements the engine's cooperative, time-gated
// eviction sweep: a unit of work the host's worker scheduler invokes
// repeatedly, which only does anything once per configured interval.
package maintenance

import (
	"sync/atomic"
	"time"

	"github.com/opencolumndb/tableengine/clock"
)

// ReleaseInactiveFunc fans out to both pools' releaseInactive, returning
// true if any entry was released. Passed as a value at construction time
// rather than an interface hook, matching the rest of the corpus.
type ReleaseInactiveFunc func() bool

// Job is a cooperative unit of work: each Tick call reads a monotonic
// microsecond clock and, if enough time has passed since the last run,
// invokes releaseInactive and reports whether it did useful work.
//
// lastRunMicros is an atomic.Int64 so Tick is safe to call concurrently
// even though the host scheduler is expected to serialize calls; this
// removes a footgun at no cost.
type Job struct {
	clock               clock.Clock
	checkIntervalMicros int64
	releaseInactive     ReleaseInactiveFunc

	lastRunMicros atomic.Int64
}

// New creates a Job that gates releaseInactive to at most once per
// checkInterval, as measured by c.
func New(c clock.Clock, checkInterval time.Duration, releaseInactive ReleaseInactiveFunc) *Job {
	return &Job{
		clock:               c,
		checkIntervalMicros: checkInterval.Microseconds(),
		releaseInactive:     releaseInactive,
	}
}

// Tick reads the current time and, if now >= last_run + check_interval,
// advances last_run and invokes releaseInactive. It returns true iff
// releaseInactive ran and reported useful work, so the host scheduler can
// choose between yielding and backing off.
func (j *Job) Tick() bool {
	now := clock.NowMicros(j.clock)
	last := j.lastRunMicros.Load()

	if now < last+j.checkIntervalMicros {
		return false
	}
	if !j.lastRunMicros.CompareAndSwap(last, now) {
		// Another caller already advanced last_run for this window.
		return false
	}

	return j.releaseInactive()
}

// LastRunMicros returns the microsecond timestamp of the last sweep that
// actually ran, for diagnostics.
func (j *Job) LastRunMicros() int64 {
	return j.lastRunMicros.Load()
}
