// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package units

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func counterValue(t *testing.T, rm metricdata.ResourceMetrics, name, pool string) int64 {
	t.Helper()
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "%s is not an int64 sum", name)
			for _, dp := range sum.DataPoints {
				if v, ok := dp.Attributes.Value(attribute.Key("pool")); ok && v.AsString() == pool {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func TestPoolMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	r := NewRegistry(WithName("metrics"), WithMeterProvider(provider))
	m := r.BaseUnit("length", "m", nil)
	_ = r.BaseUnit("length", "m", nil)
	_ = r.BaseUnit("length", "m", nil)
	s := r.BaseUnit("time", "s", nil)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	assert.Equal(t, int64(2), counterValue(t, rm, "units_pool_hits_total", PoolBaseUnits))
	assert.Equal(t, int64(2), counterValue(t, rm, "units_pool_misses_total", PoolBaseUnits))
	assert.Equal(t, int64(0), counterValue(t, rm, "units_pool_misses_total", PoolDerived))
	runtime.KeepAlive(m)
	runtime.KeepAlive(s)
}

func TestPoolMetricsRegistryAttribute(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	r := NewRegistry(WithName("attributes"), WithMeterProvider(provider))
	m := r.BaseUnit("length", "m", nil)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.NotEmpty(t, rm.ScopeMetrics)
	assert.Equal(t, instrumentationName, rm.ScopeMetrics[0].Scope.Name)

	sum := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
	registry, ok := sum.DataPoints[0].Attributes.Value(attribute.Key("registry"))
	require.True(t, ok)
	assert.Equal(t, "attributes", registry.AsString())
	runtime.KeepAlive(m)
}
