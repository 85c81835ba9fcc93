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

// Package metrics wires the common.MetricHandle implementations (OTel,
// OpenCensus) installed by common to a Prometheus scrape endpoint, and
// fans every recorded metric out to both export paths at once.
package metrics

import (
	"context"
	"time"

	"github.com/opencolumndb/tableengine/common"
)

// compositeMetrics records every metric to two underlying handles, letting
// the engine feed both the OTel and OpenCensus export paths through a
// single common.MetricHandle.
type compositeMetrics struct {
	otel common.MetricHandle
	oc   common.MetricHandle
}

func (c *compositeMetrics) OpsCount(ctx context.Context, inc int64, attrs []common.MetricAttr) {
	c.otel.OpsCount(ctx, inc, attrs)
	c.oc.OpsCount(ctx, inc, attrs)
}

func (c *compositeMetrics) OpsLatency(ctx context.Context, latency time.Duration, attrs []common.MetricAttr) {
	c.otel.OpsLatency(ctx, latency, attrs)
	c.oc.OpsLatency(ctx, latency, attrs)
}

func (c *compositeMetrics) OpsErrorCount(ctx context.Context, inc int64, attrs []common.MetricAttr) {
	c.otel.OpsErrorCount(ctx, inc, attrs)
	c.oc.OpsErrorCount(ctx, inc, attrs)
}

func (c *compositeMetrics) PoolAcquiredCount(ctx context.Context, inc int64, attrs []common.MetricAttr) {
	c.otel.PoolAcquiredCount(ctx, inc, attrs)
	c.oc.PoolAcquiredCount(ctx, inc, attrs)
}

func (c *compositeMetrics) PoolReturnedCount(ctx context.Context, inc int64, attrs []common.MetricAttr) {
	c.otel.PoolReturnedCount(ctx, inc, attrs)
	c.oc.PoolReturnedCount(ctx, inc, attrs)
}

func (c *compositeMetrics) PoolEvictedCount(ctx context.Context, inc int64, attrs []common.MetricAttr) {
	c.otel.PoolEvictedCount(ctx, inc, attrs)
	c.oc.PoolEvictedCount(ctx, inc, attrs)
}

func (c *compositeMetrics) PoolConstructionFailureCount(ctx context.Context, inc int64, attrs []common.MetricAttr) {
	c.otel.PoolConstructionFailureCount(ctx, inc, attrs)
	c.oc.PoolConstructionFailureCount(ctx, inc, attrs)
}

func (c *compositeMetrics) AllocatorNextIDCount(ctx context.Context, inc int64) {
	c.otel.AllocatorNextIDCount(ctx, inc)
	c.oc.AllocatorNextIDCount(ctx, inc)
}

func (c *compositeMetrics) AllocatorCASRetryCount(ctx context.Context, inc int64) {
	c.otel.AllocatorCASRetryCount(ctx, inc)
	c.oc.AllocatorCASRetryCount(ctx, inc)
}

var _ common.MetricHandle = (*compositeMetrics)(nil)
