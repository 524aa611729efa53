// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package units

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "unitcalc/units"

// poolMetrics counts interning activity for every pool of a registry.
type poolMetrics struct {
	registry  string
	hits      metric.Int64Counter
	misses    metric.Int64Counter
	evictions metric.Int64Counter
}

func newPoolMetrics(registry string, provider metric.MeterProvider, logger *slog.Logger) *poolMetrics {
	m, err := buildPoolMetrics(registry, provider.Meter(instrumentationName))
	if err != nil {
		logger.Warn("unit pool metrics disabled", "registry", registry, "error", err)
		m, _ = buildPoolMetrics(registry, noop.NewMeterProvider().Meter(instrumentationName))
	}
	return m
}

func buildPoolMetrics(registry string, meter metric.Meter) (*poolMetrics, error) {
	m := &poolMetrics{registry: registry}
	var err error

	m.hits, err = meter.Int64Counter(
		"units_pool_hits_total",
		metric.WithDescription("Canonicalization requests answered by an existing instance"),
	)
	if err != nil {
		return nil, err
	}

	m.misses, err = meter.Int64Counter(
		"units_pool_misses_total",
		metric.WithDescription("Canonicalization requests that registered a new instance"),
	)
	if err != nil {
		return nil, err
	}

	m.evictions, err = meter.Int64Counter(
		"units_pool_evictions_total",
		metric.WithDescription("Pool entries dropped after their instance was garbage collected"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *poolMetrics) attrs(pool string) metric.AddOption {
	return metric.WithAttributes(
		attribute.String("registry", m.registry),
		attribute.String("pool", pool),
	)
}

func (m *poolMetrics) hit(pool string) {
	m.hits.Add(context.Background(), 1, m.attrs(pool))
}

func (m *poolMetrics) miss(pool string) {
	m.misses.Add(context.Background(), 1, m.attrs(pool))
}

func (m *poolMetrics) eviction(pool string) {
	m.evictions.Add(context.Background(), 1, m.attrs(pool))
}
