// Copyright 2024 Google LLC
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

package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/metric"
)

type ShutdownFn func(ctx context.Context) error

// The default time buckets for latency metrics, in microseconds. Engine
// operations are expected to complete well under a second; allocator and
// pool operations are sub-millisecond.
var defaultLatencyDistribution = metric.WithExplicitBucketBoundaries(1, 2, 3, 4, 5, 6, 8, 10, 13, 16, 20, 25, 30, 40, 50, 65, 80, 100, 130, 160, 200, 250, 300, 400, 500, 650, 800, 1000, 2000, 5000, 10000, 20000, 50000, 100000)

// JoinShutdownFunc combines the provided shutdown functions into a single function.
func JoinShutdownFunc(shutdownFns ...ShutdownFn) ShutdownFn {
	return func(ctx context.Context) error {
		var err error
		for _, fn := range shutdownFns {
			if fn == nil {
				continue
			}
			err = errors.Join(err, fn(ctx))
		}
		return err
	}
}

// MetricAttr represents the attributes associated with a metric.
type MetricAttr struct {
	Key, Value string
}

func (a *MetricAttr) String() string {
	return fmt.Sprintf("Key: %s, Value: %s", a.Key, a.Value)
}

// EngineMetricHandle records metrics for the ten public engine coordinator
// operations (create_table, get_reader, get_writer, ...).
type EngineMetricHandle interface {
	OpsCount(ctx context.Context, inc int64, attrs []MetricAttr)
	OpsLatency(ctx context.Context, latency time.Duration, attrs []MetricAttr)
	OpsErrorCount(ctx context.Context, inc int64, attrs []MetricAttr)
}

// PoolMetricHandle records metrics for writer/reader pool lease churn.
type PoolMetricHandle interface {
	PoolAcquiredCount(ctx context.Context, inc int64, attrs []MetricAttr)
	PoolReturnedCount(ctx context.Context, inc int64, attrs []MetricAttr)
	PoolEvictedCount(ctx context.Context, inc int64, attrs []MetricAttr)
	PoolConstructionFailureCount(ctx context.Context, inc int64, attrs []MetricAttr)
}

// AllocatorMetricHandle records metrics for the mmap-backed table-id
// allocator's CAS loop.
type AllocatorMetricHandle interface {
	AllocatorNextIDCount(ctx context.Context, inc int64)
	AllocatorCASRetryCount(ctx context.Context, inc int64)
}

type MetricHandle interface {
	EngineMetricHandle
	PoolMetricHandle
	AllocatorMetricHandle
}

// CaptureEngineOp is a convenience helper mirroring the corpus's
// CaptureGCSReadMetrics pattern: record a count and latency together for one
// engine operation.
func CaptureEngineOp(ctx context.Context, metricHandle MetricHandle, op string, latency time.Duration, err error) {
	attrs := []MetricAttr{{Key: OpKey, Value: op}}
	metricHandle.OpsCount(ctx, 1, attrs)
	metricHandle.OpsLatency(ctx, latency, attrs)
	if err != nil {
		metricHandle.OpsErrorCount(ctx, 1, attrs)
	}
}
