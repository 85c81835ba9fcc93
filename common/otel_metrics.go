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
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	engineMeter    = otel.Meter("engine_ops")
	poolMeter      = otel.Meter("pool")
	allocatorMeter = otel.Meter("tableid_allocator")

	opAttributeSet,
	poolKindAttributeSet sync.Map
)

func loadOrStoreAttributeOption[K comparable](mp *sync.Map, key K, attrSetGenFunc func() attribute.Set) metric.MeasurementOption {
	attrSet, ok := mp.Load(key)
	if ok {
		return attrSet.(metric.MeasurementOption)
	}
	v, _ := mp.LoadOrStore(key, metric.WithAttributeSet(attrSetGenFunc()))
	return v.(metric.MeasurementOption)
}

func attrsToAttributeSet(attrs []MetricAttr) metric.MeasurementOption {
	key := ""
	for _, a := range attrs {
		key += a.Key + "=" + a.Value + ";"
	}
	return loadOrStoreAttributeOption(&opAttributeSet, key, func() attribute.Set {
		kvs := make([]attribute.KeyValue, 0, len(attrs))
		for _, a := range attrs {
			kvs = append(kvs, attribute.String(a.Key, a.Value))
		}
		return attribute.NewSet(kvs...)
	})
}

func getPoolKindAttributeSet(poolKind string) metric.MeasurementOption {
	return loadOrStoreAttributeOption(&poolKindAttributeSet, poolKind, func() attribute.Set {
		return attribute.NewSet(attribute.String(PoolKindKey, poolKind))
	})
}

// otelMetrics maintains the OpenTelemetry metric instruments for the table
// engine coordinator.
type otelMetrics struct {
	opsCount      metric.Int64Counter
	opsErrorCount metric.Int64Counter
	opsLatency    metric.Float64Histogram

	poolAcquiredCount            metric.Int64Counter
	poolReturnedCount            metric.Int64Counter
	poolEvictedCount             metric.Int64Counter
	poolConstructionFailureCount metric.Int64Counter

	allocatorNextIDCount   metric.Int64Counter
	allocatorCASRetryCount metric.Int64Counter
}

func (o *otelMetrics) OpsCount(ctx context.Context, inc int64, attrs []MetricAttr) {
	o.opsCount.Add(ctx, inc, attrsToAttributeSet(attrs))
}

func (o *otelMetrics) OpsLatency(ctx context.Context, latency time.Duration, attrs []MetricAttr) {
	o.opsLatency.Record(ctx, float64(latency.Microseconds()), attrsToAttributeSet(attrs))
}

func (o *otelMetrics) OpsErrorCount(ctx context.Context, inc int64, attrs []MetricAttr) {
	o.opsErrorCount.Add(ctx, inc, attrsToAttributeSet(attrs))
}

func (o *otelMetrics) PoolAcquiredCount(ctx context.Context, inc int64, attrs []MetricAttr) {
	o.poolAcquiredCount.Add(ctx, inc, attrsToAttributeSet(attrs))
}

func (o *otelMetrics) PoolReturnedCount(ctx context.Context, inc int64, attrs []MetricAttr) {
	o.poolReturnedCount.Add(ctx, inc, attrsToAttributeSet(attrs))
}

func (o *otelMetrics) PoolEvictedCount(ctx context.Context, inc int64, attrs []MetricAttr) {
	o.poolEvictedCount.Add(ctx, inc, attrsToAttributeSet(attrs))
}

func (o *otelMetrics) PoolConstructionFailureCount(ctx context.Context, inc int64, attrs []MetricAttr) {
	o.poolConstructionFailureCount.Add(ctx, inc, attrsToAttributeSet(attrs))
}

func (o *otelMetrics) AllocatorNextIDCount(ctx context.Context, inc int64) {
	o.allocatorNextIDCount.Add(ctx, inc)
}

func (o *otelMetrics) AllocatorCASRetryCount(ctx context.Context, inc int64) {
	o.allocatorCASRetryCount.Add(ctx, inc)
}

func NewOTelMetrics() (MetricHandle, error) {
	opsCount, err1 := engineMeter.Int64Counter("engine/ops_count", metric.WithDescription("The cumulative number of engine coordinator operations processed."))
	opsLatency, err2 := engineMeter.Float64Histogram("engine/ops_latency", metric.WithDescription("The cumulative distribution of engine coordinator operation latencies"), metric.WithUnit("us"),
		defaultLatencyDistribution)
	opsErrorCount, err3 := engineMeter.Int64Counter("engine/ops_error_count", metric.WithDescription("The cumulative number of errors returned by engine coordinator operations"))

	poolAcquiredCount, err4 := poolMeter.Int64Counter("pool/acquired_count", metric.WithDescription("The cumulative number of pool entries leased out via get/lock."))
	poolReturnedCount, err5 := poolMeter.Int64Counter("pool/returned_count", metric.WithDescription("The cumulative number of pool entries returned via Close/unlock."))
	poolEvictedCount, err6 := poolMeter.Int64Counter("pool/evicted_count", metric.WithDescription("The cumulative number of idle pool entries evicted by releaseInactive/releaseAll."))
	poolConstructionFailureCount, err7 := poolMeter.Int64Counter("pool/construction_failure_count", metric.WithDescription("The cumulative number of failed attempts to construct a pooled handle."))

	allocatorNextIDCount, err8 := allocatorMeter.Int64Counter("tableid/next_id_count", metric.WithDescription("The cumulative number of table IDs allocated."))
	allocatorCASRetryCount, err9 := allocatorMeter.Int64Counter("tableid/cas_retry_count", metric.WithDescription("The cumulative number of CAS retries observed while allocating table IDs."))

	if err := errors.Join(err1, err2, err3, err4, err5, err6, err7, err8, err9); err != nil {
		return nil, err
	}

	return &otelMetrics{
		opsCount:                     opsCount,
		opsErrorCount:                opsErrorCount,
		opsLatency:                   opsLatency,
		poolAcquiredCount:            poolAcquiredCount,
		poolReturnedCount:            poolReturnedCount,
		poolEvictedCount:             poolEvictedCount,
		poolConstructionFailureCount: poolConstructionFailureCount,
		allocatorNextIDCount:         allocatorNextIDCount,
		allocatorCASRetryCount:       allocatorCASRetryCount,
	}, nil
}
