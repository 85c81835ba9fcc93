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

package telemetry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishThenConsume_PreservesFIFOOrder(t *testing.T) {
	r := NewRing(4)

	require.True(t, r.Publish(Event{Op: "a"}))
	require.True(t, r.Publish(Event{Op: "b"}))

	first, ok := r.Consume()
	require.True(t, ok)
	assert.Equal(t, "a", first.Op)

	second, ok := r.Consume()
	require.True(t, ok)
	assert.Equal(t, "b", second.Op)
}

func TestPublish_AtCapacityIsRejected(t *testing.T) {
	r := NewRing(2)
	require.True(t, r.Publish(Event{Op: "a"}))
	require.True(t, r.Publish(Event{Op: "b"}))

	ok := r.Publish(Event{Op: "c"})

	assert.False(t, ok)
	assert.Equal(t, 2, r.Len())
}

func TestPublish_ZeroCapacityAlwaysRejects(t *testing.T) {
	r := NewRing(0)

	ok := r.Publish(Event{Op: "a"})

	assert.False(t, ok)
	assert.Equal(t, uint64(0), r.PublishSeq())
}

func TestConsume_OnEmptyRingReportsFalse(t *testing.T) {
	r := NewRing(4)

	_, ok := r.Consume()

	assert.False(t, ok)
}

func TestSequences_AdvanceIndependentlyOfCurrentLength(t *testing.T) {
	r := NewRing(1)

	require.True(t, r.Publish(Event{Op: "a"}))
	_, ok := r.Consume()
	require.True(t, ok)
	require.True(t, r.Publish(Event{Op: "b"}))

	assert.Equal(t, uint64(2), r.PublishSeq())
	assert.Equal(t, uint64(1), r.SubscribeSeq())
	assert.Equal(t, 1, r.Len())
}

func TestRing_ConcurrentPublishNeverExceedsCapacity(t *testing.T) {
	r := NewRing(8)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Publish(Event{Op: "x"})
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, r.Len(), 8)
}
