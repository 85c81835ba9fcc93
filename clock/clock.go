// Copyright 2025 Google LLC
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

// Package clock provides a time source abstraction used throughout the
// table engine so that pool eviction and the maintenance job can be driven
// by a fake or simulated clock in tests.
package clock

import "time"

// Clock is a source of the current time. Production code uses RealClock;
// tests use FakeClock or SimulatedClock to control the passage of time
// deterministically.
type Clock interface {
	// Now returns the current local time.
	Now() time.Time

	// After returns a channel that receives the time once the given
	// duration has elapsed.
	After(d time.Duration) <-chan time.Time
}

// NowMicros returns c.Now() as a Unix microsecond timestamp. The maintenance
// job gates its sweep on this value rather than time.Duration so that the
// gating check is a single atomic comparison.
func NowMicros(c Clock) int64 {
	return c.Now().UnixMicro()
}

var (
	_ Clock = RealClock{}
	_ Clock = (*FakeClock)(nil)
	_ Clock = (*SimulatedClock)(nil)
)
