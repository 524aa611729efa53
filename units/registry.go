// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package units

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Pool names, as reported by metrics and Stats.
const (
	PoolFactors    = "factors"
	PoolBaseUnits  = "base_units"
	PoolDerived    = "derived_units"
	PoolScaled     = "scaled_units"
	PoolOffset     = "offset_units"
	PoolTransforms = "transforms"
)

// Registry owns the interning pools of factors, units and transforms.
// Every unit remembers the registry that created it, and algebra on a unit
// produces results in the same registry.
//
// Default serves the package-level constructors and the predefined units;
// tests and embedders may create independent registries with NewRegistry.
// A Registry is safe for concurrent use.
type Registry struct {
	name   string
	logger *slog.Logger

	factors    *pool[factorKey, Factor]
	bases      *pool[string, BaseUnit]
	derived    *pool[string, DerivedUnit]
	scaled     *pool[scaledKey, ScaledUnit]
	offsets    *pool[offsetKey, OffsetUnit]
	transforms *pool[transformKey, Transform]

	// held strongly for the lifetime of the registry
	dimensionless *DerivedUnit
}

type registryOptions struct {
	name          string
	logger        *slog.Logger
	meterProvider metric.MeterProvider
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryOptions)

// WithName names the registry in logs and metric attributes.
func WithName(name string) RegistryOption {
	return func(o *registryOptions) {
		o.name = name
	}
}

// WithLogger sets the logger used for pool diagnostics. Without it the
// registry logs through slog.Default.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(o *registryOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMeterProvider sets the OpenTelemetry meter provider for pool
// counters. The global provider is used otherwise.
func WithMeterProvider(provider metric.MeterProvider) RegistryOption {
	return func(o *registryOptions) {
		if provider != nil {
			o.meterProvider = provider
		}
	}
}

// NewRegistry creates an empty registry with its own dimensionless unit.
func NewRegistry(opts ...RegistryOption) *Registry {
	options := registryOptions{
		name:          "units",
		meterProvider: otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	r := &Registry{
		name:   options.name,
		logger: options.logger,
	}
	metrics := newPoolMetrics(options.name, options.meterProvider, r.log())
	r.factors = newPool[factorKey, Factor](PoolFactors, metrics, r.log)
	r.bases = newPool[string, BaseUnit](PoolBaseUnits, metrics, r.log)
	r.derived = newPool[string, DerivedUnit](PoolDerived, metrics, r.log)
	r.scaled = newPool[scaledKey, ScaledUnit](PoolScaled, metrics, r.log)
	r.offsets = newPool[offsetKey, OffsetUnit](PoolOffset, metrics, r.log)
	r.transforms = newPool[transformKey, Transform](PoolTransforms, metrics, r.log)
	r.dimensionless = &DerivedUnit{reg: r}

	r.log().Debug("created unit registry", "registry", r.name)
	return r
}

// log returns the configured logger, or the slog default at call time.
func (r *Registry) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}

// Default is the process-wide registry.
var Default = NewRegistry(WithName("default"))

// Name returns the name given with WithName.
func (r *Registry) Name() string {
	return r.name
}

// Dimensionless returns the unique unit without factors of this registry.
func (r *Registry) Dimensionless() *DerivedUnit {
	return r.dimensionless
}

// Stats reports the number of live canonical instances per pool.
type Stats struct {
	Factors      int
	BaseUnits    int
	DerivedUnits int
	ScaledUnits  int
	OffsetUnits  int
	Transforms   int
}

// ByPool returns the counts keyed by pool name.
func (s Stats) ByPool() map[string]int {
	return map[string]int{
		PoolFactors:    s.Factors,
		PoolBaseUnits:  s.BaseUnits,
		PoolDerived:    s.DerivedUnits,
		PoolScaled:     s.ScaledUnits,
		PoolOffset:     s.OffsetUnits,
		PoolTransforms: s.Transforms,
	}
}

// Stats returns the live instance counts. The dimensionless unit is not
// pooled and therefore not counted.
func (r *Registry) Stats() Stats {
	return Stats{
		Factors:      r.factors.live(),
		BaseUnits:    r.bases.live(),
		DerivedUnits: r.derived.live(),
		ScaledUnits:  r.scaled.live(),
		OffsetUnits:  r.offsets.live(),
		Transforms:   r.transforms.live(),
	}
}
