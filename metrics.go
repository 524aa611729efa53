// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"go.opentelemetry.io/otel"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"unitcalc/units"
)

// poolCollector reports the number of live canonical instances per pool.
type poolCollector struct {
	reg  *units.Registry
	desc *prometheus.Desc
}

func newPoolCollector(reg *units.Registry) *poolCollector {
	return &poolCollector{
		reg: reg,
		desc: prometheus.NewDesc(
			"units_pool_live",
			"Live canonical instances held by a unit pool",
			[]string{"pool"},
			prometheus.Labels{"registry": reg.Name()},
		),
	}
}

func (c *poolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *poolCollector) Collect(ch chan<- prometheus.Metric) {
	for pool, live := range c.reg.Stats().ByPool() {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(live), pool)
	}
}

// Metrics exposes the unit pool counters and sizes in Prometheus format.
type Metrics struct {
	registry *prometheus.Registry
	provider *sdkmetric.MeterProvider
}

// setupMetrics routes the global OpenTelemetry meter provider, which the
// Default unit registry records into, to a Prometheus registry.
func setupMetrics(reg *units.Registry) (*Metrics, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	if err := registry.Register(newPoolCollector(reg)); err != nil {
		return nil, fmt.Errorf("register pool collector: %w", err)
	}

	return &Metrics{registry: registry, provider: provider}, nil
}

// Write gathers all metrics and writes them in the text exposition format.
func (m *Metrics) Write(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	return writeFamilies(w, families)
}

func writeFamilies(w io.Writer, families []*dto.MetricFamily) error {
	sort.Slice(families, func(i, j int) bool {
		return families[i].GetName() < families[j].GetName()
	})

	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) Close() error {
	return m.provider.Shutdown(context.Background())
}
