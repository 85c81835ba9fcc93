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
	"fmt"
	"sync"
	"time"

	"github.com/opencolumndb/tableengine/internal/logger"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	ocMetric    *ocMetrics
	ocInitError error
)

var ocOnce sync.Once

// ocLatencyDistribution mirrors defaultLatencyDistribution without pulling
// in the ochttp package purely for its bucket table.
var ocLatencyDistribution = view.Distribution(1, 2, 3, 4, 5, 6, 8, 10, 13, 16, 20, 25, 30, 40, 50, 65, 80, 100, 130, 160, 200, 250, 300, 400, 500, 650, 800, 1000, 2000, 5000, 10000, 20000, 50000, 100000)

type ocMetrics struct {
	opsCount      *stats.Int64Measure
	opsErrorCount *stats.Int64Measure
	opsLatency    *stats.Float64Measure

	poolAcquiredCount            *stats.Int64Measure
	poolReturnedCount            *stats.Int64Measure
	poolEvictedCount             *stats.Int64Measure
	poolConstructionFailureCount *stats.Int64Measure

	allocatorNextIDCount   *stats.Int64Measure
	allocatorCASRetryCount *stats.Int64Measure
}

func attrsToTags(attrs []MetricAttr) []tag.Mutator {
	mutators := make([]tag.Mutator, 0, len(attrs))
	for _, attr := range attrs {
		mutators = append(mutators, tag.Upsert(tag.MustNewKey(attr.Key), attr.Value))
	}
	return mutators
}

func (o *ocMetrics) OpsCount(ctx context.Context, inc int64, attrs []MetricAttr) {
	recordOCMetric(ctx, o.opsCount, inc, attrs, "engine op count")
}

func (o *ocMetrics) OpsLatency(ctx context.Context, latency time.Duration, attrs []MetricAttr) {
	recordOCLatencyMetric(ctx, o.opsLatency, float64(latency.Microseconds()), attrs, "engine op latency")
}

func (o *ocMetrics) OpsErrorCount(ctx context.Context, inc int64, attrs []MetricAttr) {
	recordOCMetric(ctx, o.opsErrorCount, inc, attrs, "engine op error count")
}

func (o *ocMetrics) PoolAcquiredCount(ctx context.Context, inc int64, attrs []MetricAttr) {
	recordOCMetric(ctx, o.poolAcquiredCount, inc, attrs, "pool acquired count")
}

func (o *ocMetrics) PoolReturnedCount(ctx context.Context, inc int64, attrs []MetricAttr) {
	recordOCMetric(ctx, o.poolReturnedCount, inc, attrs, "pool returned count")
}

func (o *ocMetrics) PoolEvictedCount(ctx context.Context, inc int64, attrs []MetricAttr) {
	recordOCMetric(ctx, o.poolEvictedCount, inc, attrs, "pool evicted count")
}

func (o *ocMetrics) PoolConstructionFailureCount(ctx context.Context, inc int64, attrs []MetricAttr) {
	recordOCMetric(ctx, o.poolConstructionFailureCount, inc, attrs, "pool construction failure count")
}

func (o *ocMetrics) AllocatorNextIDCount(ctx context.Context, inc int64) {
	recordOCMetric(ctx, o.allocatorNextIDCount, inc, nil, "allocator next id count")
}

func (o *ocMetrics) AllocatorCASRetryCount(ctx context.Context, inc int64) {
	recordOCMetric(ctx, o.allocatorCASRetryCount, inc, nil, "allocator cas retry count")
}

func recordOCMetric(ctx context.Context, m *stats.Int64Measure, inc int64, attrs []MetricAttr, metricStr string) {
	if err := stats.RecordWithTags(
		ctx,
		attrsToTags(attrs),
		m.M(inc),
	); err != nil {
		logger.Errorf("Cannot record %s: %v: %v", metricStr, attrs, err)
	}
}

func recordOCLatencyMetric(ctx context.Context, m *stats.Float64Measure, inc float64, attrs []MetricAttr, metricStr string) {
	if err := stats.RecordWithTags(
		ctx,
		attrsToTags(attrs),
		m.M(inc),
	); err != nil {
		logger.Errorf("Cannot record %s: %v: %v", metricStr, attrs, err)
	}
}

func NewOCMetrics() (MetricHandle, error) {
	ocOnce.Do(func() {
		ocMetric, ocInitError = initOCMetrics()
	})
	return ocMetric, ocInitError
}

func initOCMetrics() (*ocMetrics, error) {
	opsCount := stats.Int64("engine/ops_count", "The number of engine coordinator operations processed.", stats.UnitDimensionless)
	opsLatency := stats.Float64("engine/ops_latency", "The latency of an engine coordinator operation.", "us")
	opsErrorCount := stats.Int64("engine/ops_error_count", "The number of errors returned by engine coordinator operations.", stats.UnitDimensionless)

	poolAcquiredCount := stats.Int64("pool/acquired_count", "The number of pool entries leased out.", stats.UnitDimensionless)
	poolReturnedCount := stats.Int64("pool/returned_count", "The number of pool entries returned.", stats.UnitDimensionless)
	poolEvictedCount := stats.Int64("pool/evicted_count", "The number of idle pool entries evicted.", stats.UnitDimensionless)
	poolConstructionFailureCount := stats.Int64("pool/construction_failure_count", "The number of failed attempts to construct a pooled handle.", stats.UnitDimensionless)

	allocatorNextIDCount := stats.Int64("tableid/next_id_count", "The number of table IDs allocated.", stats.UnitDimensionless)
	allocatorCASRetryCount := stats.Int64("tableid/cas_retry_count", "The number of CAS retries observed while allocating table IDs.", stats.UnitDimensionless)

	if err := view.Register(
		&view.View{
			Name:        "engine/ops_count",
			Measure:     opsCount,
			Description: "The cumulative number of engine coordinator operations processed.",
			Aggregation: view.Sum(),
			TagKeys:     []tag.Key{tag.MustNewKey(OpKey)},
		},
		&view.View{
			Name:        "engine/ops_error_count",
			Measure:     opsErrorCount,
			Description: "The cumulative number of errors returned by engine coordinator operations.",
			Aggregation: view.Sum(),
			TagKeys:     []tag.Key{tag.MustNewKey(OpKey)},
		},
		&view.View{
			Name:        "engine/ops_latency",
			Measure:     opsLatency,
			Description: "The cumulative distribution of engine coordinator operation latencies.",
			Aggregation: ocLatencyDistribution,
			TagKeys:     []tag.Key{tag.MustNewKey(OpKey)},
		},
		&view.View{
			Name:        "pool/acquired_count",
			Measure:     poolAcquiredCount,
			Description: "The cumulative number of pool entries leased out.",
			Aggregation: view.Sum(),
			TagKeys:     []tag.Key{tag.MustNewKey(PoolKindKey)},
		},
		&view.View{
			Name:        "pool/returned_count",
			Measure:     poolReturnedCount,
			Description: "The cumulative number of pool entries returned.",
			Aggregation: view.Sum(),
			TagKeys:     []tag.Key{tag.MustNewKey(PoolKindKey)},
		},
		&view.View{
			Name:        "pool/evicted_count",
			Measure:     poolEvictedCount,
			Description: "The cumulative number of idle pool entries evicted.",
			Aggregation: view.Sum(),
			TagKeys:     []tag.Key{tag.MustNewKey(PoolKindKey)},
		},
		&view.View{
			Name:        "pool/construction_failure_count",
			Measure:     poolConstructionFailureCount,
			Description: "The cumulative number of failed attempts to construct a pooled handle.",
			Aggregation: view.Sum(),
			TagKeys:     []tag.Key{tag.MustNewKey(PoolKindKey)},
		},
		&view.View{
			Name:        "tableid/next_id_count",
			Measure:     allocatorNextIDCount,
			Description: "The cumulative number of table IDs allocated.",
			Aggregation: view.Sum(),
		},
		&view.View{
			Name:        "tableid/cas_retry_count",
			Measure:     allocatorCASRetryCount,
			Description: "The cumulative number of CAS retries observed while allocating table IDs.",
			Aggregation: view.Sum(),
		}); err != nil {
		return nil, fmt.Errorf("failed to register OpenCensus metrics for table engine coordinator: %w", err)
	}
	return &ocMetrics{
		opsCount:      opsCount,
		opsErrorCount: opsErrorCount,
		opsLatency:    opsLatency,

		poolAcquiredCount:            poolAcquiredCount,
		poolReturnedCount:            poolReturnedCount,
		poolEvictedCount:             poolEvictedCount,
		poolConstructionFailureCount: poolConstructionFailureCount,

		allocatorNextIDCount:   allocatorNextIDCount,
		allocatorCASRetryCount: allocatorCASRetryCount,
	}, nil
}
